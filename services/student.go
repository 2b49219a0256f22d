package services

import (
	"context"
	"fmt"
	"time"

	"student-records/models"
	"student-records/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ordering selects the listing order of a collection.
type Ordering int

const (
	OldestFirst Ordering = iota
	NewestFirst
)

func (o Ordering) scope() func(*gorm.DB) *gorm.DB {
	if o == NewestFirst {
		return utils.NewestFirst
	}
	return utils.OldestFirst
}

type NewStudent struct {
	RegisterNumber string    `form:"register_number" binding:"required,max=50"`
	Name           string    `form:"name" binding:"required,max=100"`
	MobileNumber   string    `form:"mobile_number" binding:"required,max=20"`
	EmailAddress   string    `form:"email_address" binding:"required,max=120"`
	Address        string    `form:"address" binding:"required"`
	DOB            time.Time `form:"dob" time_format:"2006-01-02" time_utc:"1" binding:"required"`
	BloodGroup     string    `form:"blood_group" binding:"required,max=5"`
	BatchStartYear *int      `form:"batch_start_year" binding:"required"`
	BatchEndYear   *int      `form:"batch_end_year" binding:"required"`
	Degree         string    `form:"degree" binding:"required,max=20"`
	Program        string    `form:"program" binding:"required,max=100"`
	TotalSemesters *int      `form:"total_semesters" binding:"required"`
}

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

func (s *StudentService) Create(ctx context.Context, ns NewStudent) (models.Student, error) {
	if err := validateInput(ns); err != nil {
		return models.Student{}, err
	}
	stu := models.Student{
		RegisterNumber: ns.RegisterNumber,
		Name:           ns.Name,
		MobileNumber:   ns.MobileNumber,
		EmailAddress:   ns.EmailAddress,
		Address:        ns.Address,
		DOB:            ns.DOB,
		BloodGroup:     ns.BloodGroup,
		BatchStartYear: *ns.BatchStartYear,
		BatchEndYear:   *ns.BatchEndYear,
		Degree:         ns.Degree,
		Program:        ns.Program,
		TotalSemesters: *ns.TotalSemesters,
	}
	dupMsg := fmt.Sprintf("register number %q already exists", ns.RegisterNumber)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Student{}).Where("register_number = ?", ns.RegisterNumber).Count(&n).Error; err != nil {
			return errors.Wrap(err, "check register number")
		}
		if n > 0 {
			return &ConstraintError{Field: "register_number", Message: dupMsg}
		}
		return tx.Create(&stu).Error
	})
	if err != nil {
		return models.Student{}, translateWriteError(err, "register_number", dupMsg)
	}
	return stu, nil
}

func (s *StudentService) List(ctx context.Context, order Ordering) ([]models.Student, error) {
	var students []models.Student
	if err := s.db.WithContext(ctx).Scopes(order.scope()).Find(&students).Error; err != nil {
		return nil, errors.Wrap(err, "list students")
	}
	return students, nil
}

func (s *StudentService) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var stu models.Student
	if err := s.db.WithContext(ctx).First(&stu, id).Error; err != nil {
		return models.Student{}, lookupError(err, "student", id)
	}
	return stu, nil
}

// ListCourses returns the courses the student is enrolled in.
func (s *StudentService) ListCourses(ctx context.Context, studentID uint) ([]models.Course, error) {
	if _, err := s.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	var courses []models.Course
	err := s.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", studentID).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "courses", Name: "id"}}).
		Find(&courses).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list courses of student %d", studentID)
	}
	return courses, nil
}
