package controllers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"student-records/middleware"
	"student-records/services"
	"student-records/utils"

	"github.com/gin-gonic/gin"
)

// Handler serves the HTML pages. Every dependency is passed in explicitly.
type Handler struct {
	AppName     string
	Students    *services.StudentService
	Courses     *services.CourseService
	Enrollments *services.EnrollmentService
	Evaluations *services.EvaluationService
	Reports     *services.ReportService
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"inc": utils.Inc,
		"date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
	}
}

func (h *Handler) render(c *gin.Context, page string, data gin.H) {
	data["AppName"] = h.AppName
	data["Flashes"] = middleware.Flashes(c)
	c.HTML(http.StatusOK, page, data)
}

// serverError answers a failed page load. Only GET handlers use it; POST
// failures go back to the form as a notice.
func (h *Handler) serverError(c *gin.Context, action string, err error) {
	log.Printf("[%s] %s: %v", middleware.GetRequestID(c), action, err)
	c.String(http.StatusInternalServerError, "Something went wrong while loading this page.")
}

func (h *Handler) succeed(c *gin.Context, path, msg string) {
	middleware.AddFlash(c, middleware.FlashSuccess, msg)
	c.Redirect(http.StatusSeeOther, path)
}

func (h *Handler) fail(c *gin.Context, path, action string, err error) {
	log.Printf("[%s] %s: %v", middleware.GetRequestID(c), action, err)
	middleware.AddFlash(c, middleware.FlashDanger, "Error: "+userMessage(err))
	c.Redirect(http.StatusSeeOther, path)
}

// userMessage keeps store internals out of the notices.
func userMessage(err error) string {
	if services.IsValidation(err) || services.IsConstraint(err) || services.IsNotFound(err) {
		return err.Error()
	}
	return "the record could not be saved"
}

// queryID reads an optional numeric id from the query string; anything that
// is not a positive integer counts as absent.
func queryID(c *gin.Context, key string) uint {
	id, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// decodePost parses the submitted form into dst.
func decodePost(c *gin.Context, dst interface{}) error {
	if err := c.Request.ParseForm(); err != nil {
		return services.NewValidationError(err)
	}
	return services.DecodeForm(c.Request.PostForm, dst)
}
