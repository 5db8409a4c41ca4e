package models

// Record is implemented by pointers to every persisted entity.
type Record interface {
	GetID() uint
	SetID(id uint)
}

// Entity names used in logs, metrics and change events.
const (
	EntityStudent    = "student"
	EntityTeacher    = "teacher"
	EntityClass      = "class"
	EntityAttendance = "attendance"
	EntityExamResult = "exam_result"
	EntityFee        = "fee"
)
