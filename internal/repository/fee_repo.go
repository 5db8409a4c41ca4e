package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

// FeeRepository provides access to fees, listed with the student's name.
type FeeRepository interface {
	List(ctx context.Context) ([]models.FeeView, error)
	GetByID(ctx context.Context, id uint) (models.Fee, bool, error)
	Create(ctx context.Context, fee models.Fee) (uint, error)
	Update(ctx context.Context, id uint, patch models.FeePatch) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type feeRepository struct {
	crud     crud[models.Fee, *models.Fee]
	students store.Table[models.Student]
}

// NewFeeRepository constructs a fee repository.
func NewFeeRepository(s store.Store, validate *validator.Validate) FeeRepository {
	return &feeRepository{
		crud:     newCrud[models.Fee, *models.Fee](s.Fees(), validate),
		students: s.Students(),
	}
}

func (r *feeRepository) List(ctx context.Context) ([]models.FeeView, error) {
	fees, err := r.crud.list(ctx)
	if err != nil {
		return nil, err
	}
	names, err := studentNames(ctx, r.students)
	if err != nil {
		return nil, err
	}

	views := make([]models.FeeView, 0, len(fees))
	for _, fee := range fees {
		views = append(views, models.FeeView{Fee: fee, StudentName: names.lookup(fee.StudentID)})
	}
	return views, nil
}

func (r *feeRepository) GetByID(ctx context.Context, id uint) (models.Fee, bool, error) {
	return r.crud.get(ctx, id)
}

func (r *feeRepository) Create(ctx context.Context, fee models.Fee) (uint, error) {
	return r.crud.create(ctx, fee)
}

func (r *feeRepository) Update(ctx context.Context, id uint, patch models.FeePatch) (bool, error) {
	return r.crud.update(ctx, id, patch)
}

func (r *feeRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.crud.delete(ctx, id)
}
