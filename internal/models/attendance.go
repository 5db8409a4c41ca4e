package models

// Attendance records whether a student attended a class on a date.
type Attendance struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	StudentID uint             `gorm:"index;not null" json:"student_id" validate:"required"`
	ClassID   uint             `gorm:"index;not null" json:"class_id" validate:"required"`
	Date      string           `gorm:"size:10;index;not null" json:"date" validate:"required,datetime=2006-01-02"`
	Status    AttendanceStatus `gorm:"size:8;not null" json:"status" validate:"required,oneof=PRESENT ABSENT LATE"`
}

// TableName keeps the singular table name used by existing databases.
func (Attendance) TableName() string { return "attendance" }

func (a *Attendance) GetID() uint   { return a.ID }
func (a *Attendance) SetID(id uint) { a.ID = id }

// AttendancePatch carries the fields of a partial attendance update.
type AttendancePatch struct {
	StudentID *uint             `json:"student_id" validate:"omitempty,gt=0"`
	ClassID   *uint             `json:"class_id" validate:"omitempty,gt=0"`
	Date      *string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status    *AttendanceStatus `json:"status" validate:"omitempty,oneof=PRESENT ABSENT LATE"`
}

func (p AttendancePatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.StudentID != nil {
		cols["student_id"] = *p.StudentID
	}
	if p.ClassID != nil {
		cols["class_id"] = *p.ClassID
	}
	if p.Date != nil {
		cols["date"] = *p.Date
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	return cols
}

func (p AttendancePatch) Apply(a *Attendance) {
	if p.StudentID != nil {
		a.StudentID = *p.StudentID
	}
	if p.ClassID != nil {
		a.ClassID = *p.ClassID
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
}

// AttendanceView is an attendance row enriched with the student's name.
type AttendanceView struct {
	Attendance
	StudentName string `json:"student_name"`
}
