package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

// ClassRepository provides access to classes, listed with their teacher's name.
type ClassRepository interface {
	List(ctx context.Context) ([]models.ClassView, error)
	GetByID(ctx context.Context, id uint) (models.Class, bool, error)
	Create(ctx context.Context, class models.Class) (uint, error)
	Update(ctx context.Context, id uint, patch models.ClassPatch) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type classRepository struct {
	crud     crud[models.Class, *models.Class]
	teachers store.Table[models.Teacher]
}

// NewClassRepository constructs a class repository.
func NewClassRepository(s store.Store, validate *validator.Validate) ClassRepository {
	return &classRepository{
		crud:     newCrud[models.Class, *models.Class](s.Classes(), validate),
		teachers: s.Teachers(),
	}
}

func (r *classRepository) List(ctx context.Context) ([]models.ClassView, error) {
	classes, err := r.crud.list(ctx)
	if err != nil {
		return nil, err
	}
	names, err := teacherNames(ctx, r.teachers)
	if err != nil {
		return nil, err
	}

	views := make([]models.ClassView, 0, len(classes))
	for _, class := range classes {
		views = append(views, models.ClassView{Class: class, TeacherName: names.lookup(class.TeacherID)})
	}
	return views, nil
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (models.Class, bool, error) {
	return r.crud.get(ctx, id)
}

func (r *classRepository) Create(ctx context.Context, class models.Class) (uint, error) {
	return r.crud.create(ctx, class)
}

func (r *classRepository) Update(ctx context.Context, id uint, patch models.ClassPatch) (bool, error) {
	return r.crud.update(ctx, id, patch)
}

func (r *classRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.crud.delete(ctx, id)
}
