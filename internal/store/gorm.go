package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/schoolboard-api/internal/models"
)

// gormTable relies on the database for identifiers. Integer primary keys are
// created as AUTOINCREMENT on SQLite and as sequences on PostgreSQL, neither of
// which hands out a deleted id again.
type gormTable[T any] struct {
	db *gorm.DB
}

func (t gormTable[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	if err := t.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t gormTable[T]) Get(ctx context.Context, id uint) (T, bool, error) {
	var record T
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return record, false, nil
		}
		return record, false, err
	}
	return record, true, nil
}

func (t gormTable[T]) Insert(ctx context.Context, record *T) error {
	return t.db.WithContext(ctx).Create(record).Error
}

func (t gormTable[T]) Update(ctx context.Context, id uint, patch Patch[T]) (bool, error) {
	columns := patch.Columns()
	if len(columns) == 0 {
		var count int64
		if err := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}

	result := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (t gormTable[T]) Delete(ctx context.Context, id uint) (bool, error) {
	result := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Gorm is the Store backed by a relational database.
type Gorm struct {
	db *gorm.DB
}

var _ Store = (*Gorm)(nil)

// NewGorm wraps an open gorm connection.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// DB exposes the underlying connection for health checks.
func (g *Gorm) DB() *gorm.DB { return g.db }

func (g *Gorm) Students() Table[models.Student]       { return gormTable[models.Student]{db: g.db} }
func (g *Gorm) Teachers() Table[models.Teacher]       { return gormTable[models.Teacher]{db: g.db} }
func (g *Gorm) Classes() Table[models.Class]          { return gormTable[models.Class]{db: g.db} }
func (g *Gorm) Attendance() Table[models.Attendance]  { return gormTable[models.Attendance]{db: g.db} }
func (g *Gorm) ExamResults() Table[models.ExamResult] { return gormTable[models.ExamResult]{db: g.db} }
func (g *Gorm) Fees() Table[models.Fee]               { return gormTable[models.Fee]{db: g.db} }

func (g *Gorm) BulkSetAttendanceStatus(ctx context.Context, date string, status models.AttendanceStatus) (int64, error) {
	var affected int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Attendance{}).Where("date = ?", date).Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func allModels() []interface{} {
	return []interface{}{
		&models.Student{},
		&models.Teacher{},
		&models.Class{},
		&models.Attendance{},
		&models.ExamResult{},
		&models.Fee{},
	}
}

// Init creates or migrates every table.
func (g *Gorm) Init(ctx context.Context) error {
	if err := g.db.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Reset drops and recreates every table, which also restarts the identifier sequences.
func (g *Gorm) Reset(ctx context.Context) error {
	if err := g.db.WithContext(ctx).Migrator().DropTable(allModels()...); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return g.Init(ctx)
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
