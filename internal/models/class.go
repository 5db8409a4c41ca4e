package models

// Class is a subject taught to one grade and section.
type Class struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Grade     Grade   `gorm:"size:8;not null" json:"grade" validate:"required,oneof=9th 10th 11th 12th"`
	Section   Section `gorm:"size:1;not null" json:"section" validate:"required,oneof=A B C"`
	Subject   string  `gorm:"size:255;not null" json:"subject" validate:"required,max=255"`
	TeacherID uint    `gorm:"index;not null" json:"teacher_id" validate:"required"`
}

func (c *Class) GetID() uint   { return c.ID }
func (c *Class) SetID(id uint) { c.ID = id }

// ClassPatch carries the fields of a partial class update.
type ClassPatch struct {
	Grade     *Grade   `json:"grade" validate:"omitempty,oneof=9th 10th 11th 12th"`
	Section   *Section `json:"section" validate:"omitempty,oneof=A B C"`
	Subject   *string  `json:"subject" validate:"omitempty,min=1,max=255"`
	TeacherID *uint    `json:"teacher_id" validate:"omitempty,gt=0"`
}

func (p ClassPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Grade != nil {
		cols["grade"] = *p.Grade
	}
	if p.Section != nil {
		cols["section"] = *p.Section
	}
	if p.Subject != nil {
		cols["subject"] = *p.Subject
	}
	if p.TeacherID != nil {
		cols["teacher_id"] = *p.TeacherID
	}
	return cols
}

func (p ClassPatch) Apply(c *Class) {
	if p.Grade != nil {
		c.Grade = *p.Grade
	}
	if p.Section != nil {
		c.Section = *p.Section
	}
	if p.Subject != nil {
		c.Subject = *p.Subject
	}
	if p.TeacherID != nil {
		c.TeacherID = *p.TeacherID
	}
}

// ClassView is a class enriched with its teacher's name.
type ClassView struct {
	Class
	TeacherName string `json:"teacher_name"`
}
