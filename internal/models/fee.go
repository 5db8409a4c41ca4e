package models

// Fee is an amount a student owes, in whole currency units.
type Fee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id" validate:"required"`
	Amount    int64     `gorm:"not null" json:"amount" validate:"min=0"`
	DueDate   string    `gorm:"size:10;not null" json:"due_date" validate:"required,datetime=2006-01-02"`
	Status    FeeStatus `gorm:"size:8;not null" json:"status" validate:"required,oneof=PAID PENDING OVERDUE"`
}

func (f *Fee) GetID() uint   { return f.ID }
func (f *Fee) SetID(id uint) { f.ID = id }

// FeePatch carries the fields of a partial fee update.
type FeePatch struct {
	StudentID *uint      `json:"student_id" validate:"omitempty,gt=0"`
	Amount    *int64     `json:"amount" validate:"omitempty,min=0"`
	DueDate   *string    `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status    *FeeStatus `json:"status" validate:"omitempty,oneof=PAID PENDING OVERDUE"`
}

func (p FeePatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.StudentID != nil {
		cols["student_id"] = *p.StudentID
	}
	if p.Amount != nil {
		cols["amount"] = *p.Amount
	}
	if p.DueDate != nil {
		cols["due_date"] = *p.DueDate
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	return cols
}

func (p FeePatch) Apply(f *Fee) {
	if p.StudentID != nil {
		f.StudentID = *p.StudentID
	}
	if p.Amount != nil {
		f.Amount = *p.Amount
	}
	if p.DueDate != nil {
		f.DueDate = *p.DueDate
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
}

// FeeView is a fee enriched with the student's name.
type FeeView struct {
	Fee
	StudentName string `json:"student_name"`
}
