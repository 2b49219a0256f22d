package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"student-records/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewEvaluation carries the raw component marks and the three totals the
// form computed. The totals are stored as given and never cross-checked.
type NewEvaluation struct {
	StudentID       uint     `form:"student_id" binding:"required"`
	CourseID        uint     `form:"course_id" binding:"required"`
	CIA1            *float64 `form:"cia1" binding:"required,finite"`
	CIA2            *float64 `form:"cia2" binding:"required,finite"`
	ModelExam       *float64 `form:"model" binding:"required,finite"`
	Internal        *float64 `form:"internal" binding:"required,finite"`
	Semester        *float64 `form:"semester" binding:"required,finite"`
	TotalInternal40 *float64 `form:"calc_internal" binding:"required,finite"`
	TotalExternal60 *float64 `form:"calc_external" binding:"required,finite"`
	FinalMark100    *float64 `form:"calc_total" binding:"required,finite"`
}

type EvaluationService struct {
	db *gorm.DB
}

func NewEvaluationService(db *gorm.DB) *EvaluationService {
	return &EvaluationService{db: db}
}

func (s *EvaluationService) Create(ctx context.Context, ne NewEvaluation) (models.Evaluation, error) {
	if err := validateInput(ne); err != nil {
		return models.Evaluation{}, err
	}
	ev := models.Evaluation{
		StudentID:       ne.StudentID,
		CourseID:        ne.CourseID,
		CIA1:            *ne.CIA1,
		CIA2:            *ne.CIA2,
		ModelExam:       *ne.ModelExam,
		Internal:        *ne.Internal,
		Semester:        *ne.Semester,
		TotalInternal40: *ne.TotalInternal40,
		TotalExternal60: *ne.TotalExternal60,
		FinalMark100:    *ne.FinalMark100,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Student{}, "student_id", "student", ne.StudentID); err != nil {
			return err
		}
		if err := requireExists(tx, &models.Course{}, "course_id", "course", ne.CourseID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&ev).Error
	})
	if err != nil {
		return models.Evaluation{}, translateWriteError(err, "", "")
	}
	return ev, nil
}

// requireExists turns a missing referenced row into a *ConstraintError.
func requireExists(tx *gorm.DB, model interface{}, field, entity string, id uint) error {
	err := tx.Select("id").First(model, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return &ConstraintError{
			Field:   field,
			Message: fmt.Sprintf("%s %d does not exist", entity, id),
			Err:     errors.Wrapf(ErrNotFound, "%s %d", entity, id),
		}
	}
	if err != nil {
		return errors.Wrapf(err, "get %s %d", entity, id)
	}
	return nil
}

// List returns every evaluation with its student and course loaded.
func (s *EvaluationService) List(ctx context.Context, order Ordering) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := s.db.WithContext(ctx).
		Preload("Student").Preload("Course").
		Scopes(order.scope()).
		Find(&evals).Error
	if err != nil {
		return nil, errors.Wrap(err, "list evaluations")
	}
	return evals, nil
}

func (s *EvaluationService) GetByID(ctx context.Context, id uint) (models.Evaluation, error) {
	var ev models.Evaluation
	if err := s.db.WithContext(ctx).Preload("Student").Preload("Course").First(&ev, id).Error; err != nil {
		return models.Evaluation{}, lookupError(err, "evaluation", id)
	}
	return ev, nil
}

func (s *EvaluationService) ListForCourse(ctx context.Context, courseID uint) ([]models.Evaluation, error) {
	return s.listBy(ctx, "course_id", courseID)
}

func (s *EvaluationService) ListForStudent(ctx context.Context, studentID uint) ([]models.Evaluation, error) {
	return s.listBy(ctx, "student_id", studentID)
}

func (s *EvaluationService) listBy(ctx context.Context, column string, id uint) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := s.db.WithContext(ctx).
		Preload("Student").Preload("Course").
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: column}, Value: id}).
		Scopes(OldestFirst.scope()).
		Find(&evals).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list evaluations by %s %d", column, id)
	}
	return evals, nil
}
