package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id uint) (models.Student, bool, error)
	Create(ctx context.Context, student models.Student) (uint, error)
	Update(ctx context.Context, id uint, patch models.StudentPatch) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type studentRepository struct {
	crud crud[models.Student, *models.Student]
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(s store.Store, validate *validator.Validate) StudentRepository {
	return &studentRepository{crud: newCrud[models.Student, *models.Student](s.Students(), validate)}
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	return r.crud.list(ctx)
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, bool, error) {
	return r.crud.get(ctx, id)
}

func (r *studentRepository) Create(ctx context.Context, student models.Student) (uint, error) {
	return r.crud.create(ctx, student)
}

func (r *studentRepository) Update(ctx context.Context, id uint, patch models.StudentPatch) (bool, error) {
	return r.crud.update(ctx, id, patch)
}

// Delete removes the student only. Attendance, exam results and fees that point
// at the student stay in place.
func (r *studentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.crud.delete(ctx, id)
}
