package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/schoolboard-api/internal/models"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": setupSQLiteStore(t),
	}
}

func setupSQLiteStore(t *testing.T) *Gorm {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	s := NewGorm(db)
	require.NoError(t, s.Reset(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newStudent(name string) models.Student {
	return models.Student{
		Name:          name,
		Email:         strings.ToLower(name) + "@school.com",
		Grade:         models.Grade10,
		Section:       models.SectionA,
		AdmissionDate: "2024-09-01",
	}
}

func TestTableInsertAssignsIncreasingIDs(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			table := s.Students()

			first := newStudent("Ada")
			require.NoError(t, table.Insert(ctx, &first))
			second := newStudent("Grace")
			require.NoError(t, table.Insert(ctx, &second))

			require.Equal(t, uint(1), first.ID)
			require.Equal(t, uint(2), second.ID)

			stored, found, err := table.Get(ctx, second.ID)
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, second, stored)
		})
	}
}

func TestTableDoesNotReuseDeletedIDs(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			table := s.Teachers()

			for _, teacherName := range []string{"John", "Sarah"} {
				teacher := models.Teacher{Name: teacherName, Email: "t@school.com", JoinDate: "2023-01-15"}
				require.NoError(t, table.Insert(ctx, &teacher))
			}

			deleted, err := table.Delete(ctx, 2)
			require.NoError(t, err)
			require.True(t, deleted)

			next := models.Teacher{Name: "Michael", Email: "m@school.com", JoinDate: "2023-03-10"}
			require.NoError(t, table.Insert(ctx, &next))
			require.Equal(t, uint(3), next.ID, "highest id must not be handed out twice")
		})
	}
}

func TestTableUpdateTouchesOnlySuppliedColumns(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			table := s.Students()

			student := newStudent("Ada")
			require.NoError(t, table.Insert(ctx, &student))

			grade := models.Grade12
			found, err := table.Update(ctx, student.ID, models.StudentPatch{Grade: &grade})
			require.NoError(t, err)
			require.True(t, found)

			stored, _, err := table.Get(ctx, student.ID)
			require.NoError(t, err)
			expected := student
			expected.Grade = models.Grade12
			require.Equal(t, expected, stored)

			found, err = table.Update(ctx, 999, models.StudentPatch{Grade: &grade})
			require.NoError(t, err)
			require.False(t, found)

			found, err = table.Update(ctx, student.ID, models.StudentPatch{})
			require.NoError(t, err)
			require.True(t, found, "empty patch reports existence")
		})
	}
}

func TestTableDeleteMissingReturnsFalse(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			table := s.Fees()

			fee := models.Fee{StudentID: 1, Amount: 5000, DueDate: "2025-01-01", Status: models.FeePending}
			require.NoError(t, table.Insert(ctx, &fee))

			deleted, err := table.Delete(ctx, fee.ID)
			require.NoError(t, err)
			require.True(t, deleted)

			_, found, err := table.Get(ctx, fee.ID)
			require.NoError(t, err)
			require.False(t, found)

			deleted, err = table.Delete(ctx, fee.ID)
			require.NoError(t, err)
			require.False(t, deleted)
		})
	}
}

func TestBulkSetAttendanceStatusScopesToDate(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			table := s.Attendance()

			rows := []models.Attendance{
				{StudentID: 1, ClassID: 1, Date: "2025-03-01", Status: models.AttendanceAbsent},
				{StudentID: 2, ClassID: 1, Date: "2025-03-01", Status: models.AttendanceLate},
				{StudentID: 1, ClassID: 1, Date: "2025-03-02", Status: models.AttendanceAbsent},
			}
			for i := range rows {
				require.NoError(t, table.Insert(ctx, &rows[i]))
			}

			affected, err := s.BulkSetAttendanceStatus(ctx, "2025-03-01", models.AttendancePresent)
			require.NoError(t, err)
			require.Equal(t, int64(2), affected)

			stored, err := table.List(ctx)
			require.NoError(t, err)
			require.Len(t, stored, 3)
			require.Equal(t, models.AttendancePresent, stored[0].Status)
			require.Equal(t, models.AttendancePresent, stored[1].Status)
			require.Equal(t, models.AttendanceAbsent, stored[2].Status)

			affected, err = s.BulkSetAttendanceStatus(ctx, "1999-01-01", models.AttendancePresent)
			require.NoError(t, err)
			require.Zero(t, affected)
		})
	}
}

func TestResetEmptiesTablesAndRestartsIDs(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			student := newStudent("Ada")
			require.NoError(t, s.Students().Insert(ctx, &student))
			require.NoError(t, s.Reset(ctx))

			rows, err := s.Students().List(ctx)
			require.NoError(t, err)
			require.Empty(t, rows)

			again := newStudent("Grace")
			require.NoError(t, s.Students().Insert(ctx, &again))
			require.Equal(t, uint(1), again.ID)
		})
	}
}

func TestMemoryListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	student := newStudent("Ada")
	require.NoError(t, s.Students().Insert(ctx, &student))

	rows, err := s.Students().List(ctx)
	require.NoError(t, err)
	rows[0].Name = "Mutated"

	stored, _, err := s.Students().Get(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", stored.Name)
}
