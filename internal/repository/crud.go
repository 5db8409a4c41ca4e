package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

type recordPtr[T any] interface {
	*T
	models.Record
}

// crud validates writes before they reach the table. Not-found is reported as
// false rather than as an error.
type crud[T any, P recordPtr[T]] struct {
	table    store.Table[T]
	validate *validator.Validate
}

func newCrud[T any, P recordPtr[T]](table store.Table[T], validate *validator.Validate) crud[T, P] {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return crud[T, P]{table: table, validate: validate}
}

func (c crud[T, P]) list(ctx context.Context) ([]T, error) {
	rows, err := c.table.List(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (c crud[T, P]) get(ctx context.Context, id uint) (T, bool, error) {
	return c.table.Get(ctx, id)
}

func (c crud[T, P]) create(ctx context.Context, record T) (uint, error) {
	P(&record).SetID(0)
	if err := c.validate.StructCtx(ctx, record); err != nil {
		return 0, err
	}
	if err := c.table.Insert(ctx, &record); err != nil {
		return 0, err
	}
	return P(&record).GetID(), nil
}

func (c crud[T, P]) update(ctx context.Context, id uint, patch store.Patch[T]) (bool, error) {
	if err := c.validate.StructCtx(ctx, patch); err != nil {
		return false, err
	}
	return c.table.Update(ctx, id, patch)
}

func (c crud[T, P]) delete(ctx context.Context, id uint) (bool, error) {
	return c.table.Delete(ctx, id)
}
