package controllers

import (
	"student-records/models"
	"student-records/services"

	"github.com/gin-gonic/gin"
)

// ShowEvaluations lists marks, narrowed to one course when course_id names
// an existing course.
func (h *Handler) ShowEvaluations(c *gin.Context) {
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

	var filter *models.Course
	if id := queryID(c, "course_id"); id != 0 {
		if crs, err := h.Courses.GetByID(ctx, id); err == nil {
			filter = &crs
		} else if !services.IsNotFound(err) {
			h.serverError(c, "get course", err)
			return
		}
	}

	var evals []models.Evaluation
	if filter != nil {
		evals, err = h.Evaluations.ListForCourse(ctx, filter.ID)
	} else {
		evals, err = h.Evaluations.List(ctx, services.OldestFirst)
	}
	if err != nil {
		h.serverError(c, "list evaluations", err)
		return
	}

	h.render(c, "evaluation.html", gin.H{
		"Students":     students,
		"Courses":      courses,
		"Evaluations":  evals,
		"FilterCourse": filter,
	})
}

func (h *Handler) CreateEvaluation(c *gin.Context) {
	var in services.NewEvaluation
	if err := decodePost(c, &in); err != nil {
		h.fail(c, "/evaluation", "decode evaluation form", err)
		return
	}
	if _, err := h.Evaluations.Create(c.Request.Context(), in); err != nil {
		h.fail(c, "/evaluation", "create evaluation", err)
		return
	}
	h.succeed(c, "/evaluation", "Marks Saved!")
}
