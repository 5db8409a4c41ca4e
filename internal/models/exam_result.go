package models

// ExamResult stores the marks a student obtained in a class exam.
type ExamResult struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID uint   `gorm:"index;not null" json:"student_id" validate:"required"`
	ClassID   uint   `gorm:"index;not null" json:"class_id" validate:"required"`
	ExamDate  string `gorm:"size:10;not null" json:"exam_date" validate:"required,datetime=2006-01-02"`
	Marks     int    `gorm:"not null" json:"marks" validate:"min=0,max=100"`
}

func (e *ExamResult) GetID() uint   { return e.ID }
func (e *ExamResult) SetID(id uint) { e.ID = id }

// ExamResultPatch carries the fields of a partial exam result update.
type ExamResultPatch struct {
	StudentID *uint   `json:"student_id" validate:"omitempty,gt=0"`
	ClassID   *uint   `json:"class_id" validate:"omitempty,gt=0"`
	ExamDate  *string `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
	Marks     *int    `json:"marks" validate:"omitempty,min=0,max=100"`
}

func (p ExamResultPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.StudentID != nil {
		cols["student_id"] = *p.StudentID
	}
	if p.ClassID != nil {
		cols["class_id"] = *p.ClassID
	}
	if p.ExamDate != nil {
		cols["exam_date"] = *p.ExamDate
	}
	if p.Marks != nil {
		cols["marks"] = *p.Marks
	}
	return cols
}

func (p ExamResultPatch) Apply(e *ExamResult) {
	if p.StudentID != nil {
		e.StudentID = *p.StudentID
	}
	if p.ClassID != nil {
		e.ClassID = *p.ClassID
	}
	if p.ExamDate != nil {
		e.ExamDate = *p.ExamDate
	}
	if p.Marks != nil {
		e.Marks = *p.Marks
	}
}

// ExamResultView is an exam result enriched with student name and class subject.
type ExamResultView struct {
	ExamResult
	StudentName string `json:"student_name"`
	Subject     string `json:"subject"`
}
