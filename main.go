package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"student-records/controllers"
	"student-records/initializers"
	"student-records/services"

	"github.com/gin-gonic/gin"
)

func main() {
	initializers.LoadEnvVariables()
	cfg := initializers.LoadConfig()
	gin.SetMode(cfg.GinMode)

	db, err := initializers.ConnectToDB(cfg.DB)
	if err != nil {
		log.Fatal("database connection failed: ", err)
	}
	if err := initializers.Migrate(db); err != nil {
		log.Fatal("schema migration failed: ", err)
	}

	h := &controllers.Handler{
		AppName:     cfg.AppName,
		Students:    services.NewStudentService(db),
		Courses:     services.NewCourseService(db),
		Enrollments: services.NewEnrollmentService(db),
		Evaluations: services.NewEvaluationService(db),
		Reports:     services.NewReportService(db, cfg.RecentStudents),
	}
	r := controllers.SetupRouter(h, cfg.SessionSecret)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("server running on :%s (%s store)", cfg.Port, cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
