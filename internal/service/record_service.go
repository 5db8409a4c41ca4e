package service

import (
	"context"
	"errors"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/events"
	"github.com/noah-isme/schoolboard-api/internal/observability"
)

// ErrRecordNotFound indicates the requested record does not exist.
var ErrRecordNotFound = errors.New("record not found")

// RecordRepository is the repository contract shared by every entity. V is the
// listed shape, which is the record itself or an enriched view of it.
type RecordRepository[T any, P any, V any] interface {
	List(ctx context.Context) ([]V, error)
	GetByID(ctx context.Context, id uint) (T, bool, error)
	Create(ctx context.Context, record T) (uint, error)
	Update(ctx context.Context, id uint, patch P) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// ChangeListener is told about every successful write.
type ChangeListener interface {
	RecordChanged(ctx context.Context, change events.RecordChange)
}

// ChangeListeners fans a change out to several listeners.
type ChangeListeners []ChangeListener

// RecordChanged implements ChangeListener.
func (l ChangeListeners) RecordChanged(ctx context.Context, change events.RecordChange) {
	for _, listener := range l {
		if listener != nil {
			listener.RecordChanged(ctx, change)
		}
	}
}

// RecordService exposes CRUD use cases for one entity.
type RecordService[T any, P any, V any] struct {
	entity     string
	repo       RecordRepository[T, P, V]
	clean      func(*T)
	cleanPatch func(*P)
	listener   ChangeListener
	logger     zerolog.Logger
}

func newRecordService[T any, P any, V any](entity string, repo RecordRepository[T, P, V], listener ChangeListener, logger zerolog.Logger) *RecordService[T, P, V] {
	if listener == nil {
		listener = ChangeListeners(nil)
	}
	return &RecordService[T, P, V]{
		entity:     entity,
		repo:       repo,
		clean:      func(*T) {},
		cleanPatch: func(*P) {},
		listener:   listener,
		logger:     logger.With().Str("component", entity+"_service").Logger(),
	}
}

// Entity returns the entity name used in events and metrics.
func (s *RecordService[T, P, V]) Entity() string { return s.entity }

// List returns every record in insertion order.
func (s *RecordService[T, P, V]) List(ctx context.Context) ([]V, error) {
	return s.repo.List(ctx)
}

// Get returns a record or ErrRecordNotFound.
func (s *RecordService[T, P, V]) Get(ctx context.Context, id uint) (T, error) {
	record, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	if !found {
		var zero T
		return zero, ErrRecordNotFound
	}
	return record, nil
}

// Create cleans and stores the record and returns it with its assigned id.
func (s *RecordService[T, P, V]) Create(ctx context.Context, record T) (T, error) {
	s.clean(&record)

	id, err := s.repo.Create(ctx, record)
	if err != nil {
		var zero T
		return zero, err
	}

	s.written(ctx, events.ActionCreated, id)
	s.logger.Debug().Uint("id", id).Msg("record created")
	return s.Get(ctx, id)
}

// Update applies the patch and returns the updated record. Unknown ids yield
// ErrRecordNotFound.
func (s *RecordService[T, P, V]) Update(ctx context.Context, id uint, patch P) (T, error) {
	s.cleanPatch(&patch)

	found, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		var zero T
		return zero, err
	}
	if !found {
		var zero T
		return zero, ErrRecordNotFound
	}

	s.written(ctx, events.ActionUpdated, id)
	return s.Get(ctx, id)
}

// Delete removes the record. Records that reference it are left untouched.
func (s *RecordService[T, P, V]) Delete(ctx context.Context, id uint) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrRecordNotFound
	}

	s.written(ctx, events.ActionDeleted, id)
	return nil
}

func (s *RecordService[T, P, V]) written(ctx context.Context, action string, id uint) {
	observability.RecordWrites().WithLabelValues(s.entity, action).Inc()
	s.listener.RecordChanged(ctx, events.RecordChange{Entity: s.entity, Action: action, ID: id})
}

// maxCleanPasses bounds how many layers of entity encoding are peeled off.
const maxCleanPasses = 4

// textCleaner strips markup from free text. Entities are decoded before
// sanitising so encoded tags are stripped too, and the plain result is only
// returned once sanitising it again changes nothing but escaping. Names such
// as O'Brien survive intact.
type textCleaner struct {
	policy *bluemonday.Policy
}

func newTextCleaner() textCleaner {
	return textCleaner{policy: bluemonday.StrictPolicy()}
}

func (c textCleaner) text(value string) string {
	current := value
	var sanitized string
	for i := 0; i < maxCleanPasses; i++ {
		sanitized = c.policy.Sanitize(html.UnescapeString(current))
		decoded := html.UnescapeString(sanitized)
		if c.policy.Sanitize(decoded) == sanitized {
			return strings.TrimSpace(decoded)
		}
		current = decoded
	}
	return strings.TrimSpace(sanitized)
}

func (c textCleaner) textPtr(value *string) {
	if value != nil {
		*value = c.text(*value)
	}
}

func (c textCleaner) emailPtr(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}
