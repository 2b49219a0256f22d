package controllers

import (
	"net/http"

	"student-records/middleware"
	"student-records/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowEnrollments(c *gin.Context) {
	ctx := c.Request.Context()
	students, err := h.Students.List(ctx, services.OldestFirst)
	if err != nil {
		h.serverError(c, "list students", err)
		return
	}
	courses, err := h.Courses.List(ctx, services.OldestFirst)
	if err != nil {
		h.serverError(c, "list courses", err)
		return
	}
	view, err := h.Enrollments.View(ctx, queryID(c, "view_course_id"))
	if err != nil {
		h.serverError(c, "build enrollment view", err)
		return
	}

	h.render(c, "enrollments.html", gin.H{
		"Students":         students,
		"Courses":          courses,
		"CourseStats":      view.Stats,
		"SelectedCourse":   view.Selected,
		"EnrolledStudents": view.Enrolled,
	})
}

func (h *Handler) Enroll(c *gin.Context) {
	var in services.NewEnrollment
	if err := decodePost(c, &in); err != nil {
		h.fail(c, "/enrollments", "decode enrollment form", err)
		return
	}
	outcome, err := h.Enrollments.Enroll(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "/enrollments", "enroll", err)
		return
	}
	if outcome == services.AlreadyEnrolled {
		middleware.AddFlash(c, middleware.FlashWarning, "Already Enrolled")
		c.Redirect(http.StatusSeeOther, "/enrollments")
		return
	}
	h.succeed(c, "/enrollments", "Enrolled!")
}
