package services

import (
	"context"
	stderrors "errors"

	"student-records/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewEnrollment struct {
	StudentID uint `form:"student_id" binding:"required"`
	CourseID  uint `form:"course_id" binding:"required"`
}

// CourseStat is one row of the enrollment summary table.
type CourseStat struct {
	ID    uint
	Code  string
	Name  string
	Count int64
}

// EnrollmentView is what the enrollments page shows. Selected is nil when no
// course was asked for or the requested one does not exist.
type EnrollmentView struct {
	Stats    []CourseStat
	Selected *models.Course
	Enrolled []models.Student
}

type EnrollmentService struct {
	db *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// Enroll links the student to the course. An existing link is reported as
// AlreadyEnrolled with a nil error.
func (s *EnrollmentService) Enroll(ctx context.Context, ne NewEnrollment) (EnrollOutcome, error) {
	if err := validateInput(ne); err != nil {
		return Enrolled, err
	}
	outcome := Enrolled
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Student{}, ne.StudentID).Error; err != nil {
			return lookupError(err, "student", ne.StudentID)
		}
		if err := tx.Select("id").First(&models.Course{}, ne.CourseID).Error; err != nil {
			return lookupError(err, "course", ne.CourseID)
		}

		var n int64
		err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND course_id = ?", ne.StudentID, ne.CourseID).
			Count(&n).Error
		if err != nil {
			return errors.Wrap(err, "check enrollment")
		}
		if n > 0 {
			outcome = AlreadyEnrolled
			return nil
		}
		return tx.Omit(clause.Associations).Create(&models.Enrollment{
			StudentID: ne.StudentID,
			CourseID:  ne.CourseID,
		}).Error
	})
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent enroll of the same pair
		return AlreadyEnrolled, nil
	}
	if err != nil {
		return Enrolled, translateWriteError(err, "", "")
	}
	return outcome, nil
}

// CourseStats lists every course with the number of enrollment rows that
// reference it, counted on each call.
func (s *EnrollmentService) CourseStats(ctx context.Context) ([]CourseStat, error) {
	return courseStats(s.db.WithContext(ctx))
}

func courseStats(db *gorm.DB) ([]CourseStat, error) {
	var stats []CourseStat
	err := db.Model(&models.Course{}).
		Select("courses.id, courses.course_code AS code, courses.name, COUNT(enrollments.student_id) AS count").
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
		Group("courses.id, courses.course_code, courses.name").
		Order("courses.id ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, errors.Wrap(err, "count enrollments per course")
	}
	return stats, nil
}

// View builds the enrollment summary, resolving courseID when it names an
// existing course. Zero or an unknown id leaves the selection empty.
func (s *EnrollmentService) View(ctx context.Context, courseID uint) (EnrollmentView, error) {
	db := s.db.WithContext(ctx)
	stats, err := courseStats(db)
	if err != nil {
		return EnrollmentView{}, err
	}
	view := EnrollmentView{Stats: stats}
	if courseID == 0 {
		return view, nil
	}

	var crs models.Course
	if err := db.First(&crs, courseID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return EnrollmentView{}, lookupError(err, "course", courseID)
	}
	enrolled, err := studentsOfCourse(db, courseID)
	if err != nil {
		return EnrollmentView{}, err
	}
	view.Selected = &crs
	view.Enrolled = enrolled
	return view, nil
}
