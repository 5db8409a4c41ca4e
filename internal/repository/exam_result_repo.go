package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

// ExamResultRepository provides access to exam results, listed with student
// name and class subject.
type ExamResultRepository interface {
	List(ctx context.Context) ([]models.ExamResultView, error)
	GetByID(ctx context.Context, id uint) (models.ExamResult, bool, error)
	Create(ctx context.Context, result models.ExamResult) (uint, error)
	Update(ctx context.Context, id uint, patch models.ExamResultPatch) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type examResultRepository struct {
	crud     crud[models.ExamResult, *models.ExamResult]
	students store.Table[models.Student]
	classes  store.Table[models.Class]
}

// NewExamResultRepository constructs an exam result repository.
func NewExamResultRepository(s store.Store, validate *validator.Validate) ExamResultRepository {
	return &examResultRepository{
		crud:     newCrud[models.ExamResult, *models.ExamResult](s.ExamResults(), validate),
		students: s.Students(),
		classes:  s.Classes(),
	}
}

func (r *examResultRepository) List(ctx context.Context) ([]models.ExamResultView, error) {
	results, err := r.crud.list(ctx)
	if err != nil {
		return nil, err
	}
	names, err := studentNames(ctx, r.students)
	if err != nil {
		return nil, err
	}
	subjects, err := classSubjects(ctx, r.classes)
	if err != nil {
		return nil, err
	}

	views := make([]models.ExamResultView, 0, len(results))
	for _, result := range results {
		views = append(views, models.ExamResultView{
			ExamResult:  result,
			StudentName: names.lookup(result.StudentID),
			Subject:     subjects.lookup(result.ClassID),
		})
	}
	return views, nil
}

func (r *examResultRepository) GetByID(ctx context.Context, id uint) (models.ExamResult, bool, error) {
	return r.crud.get(ctx, id)
}

func (r *examResultRepository) Create(ctx context.Context, result models.ExamResult) (uint, error) {
	return r.crud.create(ctx, result)
}

func (r *examResultRepository) Update(ctx context.Context, id uint, patch models.ExamResultPatch) (bool, error) {
	return r.crud.update(ctx, id, patch)
}

func (r *examResultRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.crud.delete(ctx, id)
}
