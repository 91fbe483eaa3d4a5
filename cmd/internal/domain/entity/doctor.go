package entity

import "gorm.io/datatypes"

type Doctor struct {
	ID             int    `gorm:"primaryKey" json:"Id"`
	Name           string `gorm:"not null" json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	DepartmentID   int    `gorm:"not null;index" json:"departmentId"` // References: departments(id)

	// Availability is kept as the raw document the client sent: an object
	// keyed by weekday, or that object serialized into a JSON string. It is
	// parsed (and possibly rejected) only when read, see package availability.
	Availability datatypes.JSON `json:"availability,omitempty"`

	// Relations
	Department *Department `gorm:"foreignKey:DepartmentID;references:ID" json:"-"`
}

// DepartmentRef prefers the populated relation over the bare foreign key.
func (d *Doctor) DepartmentRef() Ref {
	if d.Department != nil && d.Department.Name != "" {
		return EmbeddedRef(d.Department.ID, d.Department.Name)
	}
	return RawRef(d.DepartmentID)
}
