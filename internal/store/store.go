// Package store holds the record tables behind the repositories. Two strategies
// implement the same contract: an in-memory one for tests and ephemeral runs, and
// a gorm one backed by SQLite or PostgreSQL.
package store

import (
	"context"

	"github.com/noah-isme/schoolboard-api/internal/models"
)

// Patch describes a partial update restricted to a fixed set of columns.
type Patch[T any] interface {
	Columns() map[string]interface{}
	Apply(record *T)
}

// Table is the storage contract for one entity.
type Table[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (T, bool, error)
	// Insert stores the record and writes the assigned identifier back into it.
	Insert(ctx context.Context, record *T) error
	Update(ctx context.Context, id uint, patch Patch[T]) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// Store bundles the tables of every entity together with their lifecycle.
type Store interface {
	Students() Table[models.Student]
	Teachers() Table[models.Teacher]
	Classes() Table[models.Class]
	Attendance() Table[models.Attendance]
	ExamResults() Table[models.ExamResult]
	Fees() Table[models.Fee]

	// BulkSetAttendanceStatus sets the status of every attendance row on date and
	// reports how many rows matched.
	BulkSetAttendanceStatus(ctx context.Context, date string, status models.AttendanceStatus) (int64, error)

	Init(ctx context.Context) error
	Reset(ctx context.Context) error
	Close() error
}

// recordPtr constrains P to be a pointer to T that exposes its identifier.
type recordPtr[T any] interface {
	*T
	models.Record
}
