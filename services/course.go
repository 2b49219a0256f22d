package services

import (
	"context"
	"fmt"

	"student-records/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Credit and Hours are pointers so that a submitted 0 is told apart from a
// missing field.
type NewCourse struct {
	Name           string `form:"name" binding:"required,max=100"`
	CourseCode     string `form:"course_code" binding:"required,max=20"`
	Credit         *int   `form:"credit" binding:"required,min=0"`
	OfferingDept   string `form:"offering_dept" binding:"required,max=50"`
	Hours          *int   `form:"hours" binding:"required,min=0"`
	InstructorName string `form:"instructor_name" binding:"required,max=100"`
}

type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

func (s *CourseService) Create(ctx context.Context, nc NewCourse) (models.Course, error) {
	if err := validateInput(nc); err != nil {
		return models.Course{}, err
	}
	crs := models.Course{
		Name:           nc.Name,
		CourseCode:     nc.CourseCode,
		Credit:         *nc.Credit,
		OfferingDept:   nc.OfferingDept,
		Hours:          *nc.Hours,
		InstructorName: nc.InstructorName,
	}
	dupMsg := fmt.Sprintf("course code %q already exists", nc.CourseCode)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Course{}).Where("course_code = ?", nc.CourseCode).Count(&n).Error; err != nil {
			return errors.Wrap(err, "check course code")
		}
		if n > 0 {
			return &ConstraintError{Field: "course_code", Message: dupMsg}
		}
		return tx.Create(&crs).Error
	})
	if err != nil {
		return models.Course{}, translateWriteError(err, "course_code", dupMsg)
	}
	return crs, nil
}

func (s *CourseService) List(ctx context.Context, order Ordering) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Scopes(order.scope()).Find(&courses).Error; err != nil {
		return nil, errors.Wrap(err, "list courses")
	}
	return courses, nil
}

func (s *CourseService) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var crs models.Course
	if err := s.db.WithContext(ctx).First(&crs, id).Error; err != nil {
		return models.Course{}, lookupError(err, "course", id)
	}
	return crs, nil
}

// ListStudents returns the students enrolled in the course, in enrollment
// order.
func (s *CourseService) ListStudents(ctx context.Context, courseID uint) ([]models.Student, error) {
	if _, err := s.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return studentsOfCourse(s.db.WithContext(ctx), courseID)
}

func studentsOfCourse(db *gorm.DB, courseID uint) ([]models.Student, error) {
	var students []models.Student
	err := db.
		Joins("JOIN enrollments ON enrollments.student_id = students.id").
		Where("enrollments.course_id = ?", courseID).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "enrollments", Name: "enrolled_at"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "students", Name: "id"}}).
		Find(&students).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list students of course %d", courseID)
	}
	return students, nil
}
