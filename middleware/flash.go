package middleware

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash categories, also used as CSS alert classes by the templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
)

var flashCategories = []string{FlashSuccess, FlashWarning, FlashDanger}

const flashesKey = "flashes"

type Flash struct {
	Category string
	Message  string
}

// AddFlash queues a notice for the next page render and saves the session.
func AddFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	if err := session.Save(); err != nil {
		log.Printf("[%s] save flash: %v", GetRequestID(c), err)
	}
}

// LoadFlashes pops the queued notices on GET requests and exposes them to
// handlers through Flashes.
func LoadFlashes(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.Next()
		return
	}
	session := sessions.Default(c)
	var flashes []Flash
	for _, category := range flashCategories {
		for _, msg := range session.Flashes(category) {
			if s, ok := msg.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: s})
			}
		}
	}
	if len(flashes) > 0 {
		if err := session.Save(); err != nil {
			log.Printf("[%s] clear flashes: %v", GetRequestID(c), err)
		}
	}
	c.Set(flashesKey, flashes)
	c.Next()
}

func Flashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashesKey); ok {
		if flashes, ok := v.([]Flash); ok {
			return flashes
		}
	}
	return nil
}
