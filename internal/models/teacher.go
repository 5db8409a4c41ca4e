package models

// Teacher is a staff member who can be assigned to classes.
type Teacher struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:255;not null" json:"name" validate:"required,max=255"`
	Email          string `gorm:"size:255;not null" json:"email" validate:"required,email"`
	Specialization string `gorm:"size:255" json:"specialization" validate:"max=255"`
	JoinDate       string `gorm:"size:10;not null" json:"join_date" validate:"required,datetime=2006-01-02"`
}

func (t *Teacher) GetID() uint   { return t.ID }
func (t *Teacher) SetID(id uint) { t.ID = id }

// TeacherPatch carries the fields of a partial teacher update.
type TeacherPatch struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Specialization *string `json:"specialization" validate:"omitempty,max=255"`
	JoinDate       *string `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
}

func (p TeacherPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Specialization != nil {
		cols["specialization"] = *p.Specialization
	}
	if p.JoinDate != nil {
		cols["join_date"] = *p.JoinDate
	}
	return cols
}

func (p TeacherPatch) Apply(t *Teacher) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Email != nil {
		t.Email = *p.Email
	}
	if p.Specialization != nil {
		t.Specialization = *p.Specialization
	}
	if p.JoinDate != nil {
		t.JoinDate = *p.JoinDate
	}
}
