package store

import (
	"context"
	"sync"

	"github.com/noah-isme/schoolboard-api/internal/models"
)

// memoryTable keeps rows in insertion order and hands out identifiers from a
// counter that never moves backwards, so deleting the newest row does not free
// its id.
type memoryTable[T any, P recordPtr[T]] struct {
	mu     *sync.RWMutex
	rows   []T
	nextID uint
}

func newMemoryTable[T any, P recordPtr[T]](mu *sync.RWMutex) *memoryTable[T, P] {
	return &memoryTable[T, P]{mu: mu, nextID: 1}
}

func (t *memoryTable[T, P]) reset() {
	t.rows = nil
	t.nextID = 1
}

func (t *memoryTable[T, P]) indexOf(id uint) int {
	for i := range t.rows {
		if P(&t.rows[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func (t *memoryTable[T, P]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out, nil
}

func (t *memoryTable[T, P]) Get(ctx context.Context, id uint) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := t.indexOf(id)
	if idx < 0 {
		return zero, false, nil
	}
	return t.rows[idx], true, nil
}

func (t *memoryTable[T, P]) Insert(ctx context.Context, record *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	P(record).SetID(t.nextID)
	t.nextID++
	t.rows = append(t.rows, *record)
	return nil
}

func (t *memoryTable[T, P]) Update(ctx context.Context, id uint, patch Patch[T]) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	patch.Apply(&t.rows[idx])
	P(&t.rows[idx]).SetID(id)
	return true, nil
}

func (t *memoryTable[T, P]) Delete(ctx context.Context, id uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	return true, nil
}

// Memory is the in-memory Store. All tables share one lock.
type Memory struct {
	mu          sync.RWMutex
	students    *memoryTable[models.Student, *models.Student]
	teachers    *memoryTable[models.Teacher, *models.Teacher]
	classes     *memoryTable[models.Class, *models.Class]
	attendance  *memoryTable[models.Attendance, *models.Attendance]
	examResults *memoryTable[models.ExamResult, *models.ExamResult]
	fees        *memoryTable[models.Fee, *models.Fee]
}

var _ Store = (*Memory)(nil)

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	m := &Memory{}
	m.students = newMemoryTable[models.Student, *models.Student](&m.mu)
	m.teachers = newMemoryTable[models.Teacher, *models.Teacher](&m.mu)
	m.classes = newMemoryTable[models.Class, *models.Class](&m.mu)
	m.attendance = newMemoryTable[models.Attendance, *models.Attendance](&m.mu)
	m.examResults = newMemoryTable[models.ExamResult, *models.ExamResult](&m.mu)
	m.fees = newMemoryTable[models.Fee, *models.Fee](&m.mu)
	return m
}

func (m *Memory) Students() Table[models.Student]       { return m.students }
func (m *Memory) Teachers() Table[models.Teacher]       { return m.teachers }
func (m *Memory) Classes() Table[models.Class]          { return m.classes }
func (m *Memory) Attendance() Table[models.Attendance]  { return m.attendance }
func (m *Memory) ExamResults() Table[models.ExamResult] { return m.examResults }
func (m *Memory) Fees() Table[models.Fee]               { return m.fees }

func (m *Memory) BulkSetAttendanceStatus(ctx context.Context, date string, status models.AttendanceStatus) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var affected int64
	for i := range m.attendance.rows {
		if m.attendance.rows[i].Date == date {
			m.attendance.rows[i].Status = status
			affected++
		}
	}
	return affected, nil
}

// Init is a no-op; the tables are ready once constructed.
func (m *Memory) Init(context.Context) error { return nil }

// Reset empties every table and restarts the identifier counters.
func (m *Memory) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.students.reset()
	m.teachers.reset()
	m.classes.reset()
	m.attendance.reset()
	m.examResults.reset()
	m.fees.reset()
	return nil
}

func (m *Memory) Close() error { return nil }
