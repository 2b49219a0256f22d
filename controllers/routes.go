package controllers

import (
	"html/template"

	"student-records/middleware"
	"student-records/templates"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func SetupRouter(h *Handler, sessionSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID)

	tmpl := template.Must(template.New("").Funcs(FuncMap()).ParseFS(templates.FS, "*.html"))
	r.SetHTMLTemplate(tmpl)

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 7 * 24 * 3600, HttpOnly: true})
	r.Use(sessions.Sessions("mysession", store))
	r.Use(middleware.LoadFlashes)

	r.GET("/", h.ShowDashboard)

	r.GET("/student", h.ShowStudents)
	r.POST("/student", h.CreateStudent)

	r.GET("/courses", h.ShowCourses)
	r.POST("/courses", h.CreateCourse)

	r.GET("/enrollments", h.ShowEnrollments)
	r.POST("/enrollments", h.Enroll)

	r.GET("/evaluation", h.ShowEvaluations)
	r.POST("/evaluation", h.CreateEvaluation)

	return r
}
