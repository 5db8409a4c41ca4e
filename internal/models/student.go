package models

// Student represents a learner enrolled in a grade and section.
type Student struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:255;not null" json:"name" validate:"required,max=255"`
	Email         string  `gorm:"size:255;not null" json:"email" validate:"required,email"`
	Grade         Grade   `gorm:"size:8;not null" json:"grade" validate:"required,oneof=9th 10th 11th 12th"`
	Section       Section `gorm:"size:1;not null" json:"section" validate:"required,oneof=A B C"`
	AdmissionDate string  `gorm:"size:10;not null" json:"admission_date" validate:"required,datetime=2006-01-02"`
}

func (s *Student) GetID() uint   { return s.ID }
func (s *Student) SetID(id uint) { s.ID = id }

// StudentPatch carries the fields of a partial student update. Nil fields are left untouched.
type StudentPatch struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Grade         *Grade   `json:"grade" validate:"omitempty,oneof=9th 10th 11th 12th"`
	Section       *Section `json:"section" validate:"omitempty,oneof=A B C"`
	AdmissionDate *string  `json:"admission_date" validate:"omitempty,datetime=2006-01-02"`
}

// Columns returns the supplied fields keyed by column name.
func (p StudentPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Grade != nil {
		cols["grade"] = *p.Grade
	}
	if p.Section != nil {
		cols["section"] = *p.Section
	}
	if p.AdmissionDate != nil {
		cols["admission_date"] = *p.AdmissionDate
	}
	return cols
}

// Apply copies the supplied fields onto the student.
func (p StudentPatch) Apply(s *Student) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Grade != nil {
		s.Grade = *p.Grade
	}
	if p.Section != nil {
		s.Section = *p.Section
	}
	if p.AdmissionDate != nil {
		s.AdmissionDate = *p.AdmissionDate
	}
}
