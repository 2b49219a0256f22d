package controllers

import (
	"student-records/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowCourses(c *gin.Context) {
	courses, err := h.Courses.List(c.Request.Context(), services.OldestFirst)
	if err != nil {
		h.serverError(c, "list courses", err)
		return
	}
	h.render(c, "courses.html", gin.H{"Courses": courses})
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var in services.NewCourse
	if err := decodePost(c, &in); err != nil {
		h.fail(c, "/courses", "decode course form", err)
		return
	}
	if _, err := h.Courses.Create(c.Request.Context(), in); err != nil {
		h.fail(c, "/courses", "create course", err)
		return
	}
	h.succeed(c, "/courses", "Course Created!")
}
