package controllers

import (
	"student-records/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowStudents(c *gin.Context) {
	students, err := h.Students.List(c.Request.Context(), services.NewestFirst)
	if err != nil {
		h.serverError(c, "list students", err)
		return
	}
	h.render(c, "student.html", gin.H{"Students": students})
}

func (h *Handler) CreateStudent(c *gin.Context) {
	var in services.NewStudent
	if err := decodePost(c, &in); err != nil {
		h.fail(c, "/student", "decode student form", err)
		return
	}
	if _, err := h.Students.Create(c.Request.Context(), in); err != nil {
		h.fail(c, "/student", "create student", err)
		return
	}
	h.succeed(c, "/student", "Student Registered Successfully!")
}
