package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

// TeacherRepository provides access to teacher records.
type TeacherRepository interface {
	List(ctx context.Context) ([]models.Teacher, error)
	GetByID(ctx context.Context, id uint) (models.Teacher, bool, error)
	Create(ctx context.Context, teacher models.Teacher) (uint, error)
	Update(ctx context.Context, id uint, patch models.TeacherPatch) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type teacherRepository struct {
	crud crud[models.Teacher, *models.Teacher]
}

// NewTeacherRepository constructs a teacher repository.
func NewTeacherRepository(s store.Store, validate *validator.Validate) TeacherRepository {
	return &teacherRepository{crud: newCrud[models.Teacher, *models.Teacher](s.Teachers(), validate)}
}

func (r *teacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	return r.crud.list(ctx)
}

func (r *teacherRepository) GetByID(ctx context.Context, id uint) (models.Teacher, bool, error) {
	return r.crud.get(ctx, id)
}

func (r *teacherRepository) Create(ctx context.Context, teacher models.Teacher) (uint, error) {
	return r.crud.create(ctx, teacher)
}

func (r *teacherRepository) Update(ctx context.Context, id uint, patch models.TeacherPatch) (bool, error) {
	return r.crud.update(ctx, id, patch)
}

func (r *teacherRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.crud.delete(ctx, id)
}
