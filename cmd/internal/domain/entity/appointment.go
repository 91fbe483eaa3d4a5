package entity

import "strings"

type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []AppointmentStatus{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

// DefaultDuration is used when a draft does not carry a duration, in minutes.
const DefaultDuration = 30

// Durations lists the accepted appointment lengths, in minutes.
var Durations = []int{15, 30, 45, 60, 90}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Next returns the only status reachable from s through the forward
// lifecycle (scheduled -> in-progress -> completed).
func (s AppointmentStatus) Next() (AppointmentStatus, bool) {
	switch s {
	case StatusScheduled:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusCompleted, true
	}
	return "", false
}

// Label is the badge text shown next to an appointment.
func (s AppointmentStatus) Label() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case "":
		return "Unknown"
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

type Appointment struct {
	ID           int               `gorm:"primaryKey" json:"Id"`
	PatientID    int               `gorm:"not null;index" json:"patientId"`    // References: patients(id)
	DoctorID     int               `gorm:"not null;index" json:"doctorId"`     // References: doctors(id)
	DepartmentID int               `gorm:"not null;index" json:"departmentId"` // References: departments(id)
	Date         string            `gorm:"not null;index" json:"date"`         // YYYY-MM-DD
	Time         string            `gorm:"not null" json:"time"`               // HH:MM
	Duration     int               `gorm:"not null;default:30" json:"duration"`
	Reason       string            `gorm:"not null" json:"reason"`
	Notes        string            `json:"notes"`
	Status       AppointmentStatus `gorm:"not null;default:scheduled" json:"status"`

	// Relations
	Patient    *Patient    `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor     *Doctor     `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:ID" json:"-"`
}

// PatientRef returns an embedded reference when the relation was loaded
// and a bare id otherwise. DoctorRef and DepartmentRef do the same.
func (a *Appointment) PatientRef() Ref {
	if a.Patient != nil && a.Patient.Name != "" {
		return EmbeddedRef(a.Patient.ID, a.Patient.Name)
	}
	return RawRef(a.PatientID)
}

func (a *Appointment) DoctorRef() Ref {
	if a.Doctor != nil && a.Doctor.Name != "" {
		return EmbeddedRef(a.Doctor.ID, a.Doctor.Name)
	}
	return RawRef(a.DoctorID)
}

func (a *Appointment) DepartmentRef() Ref {
	if a.Department != nil && a.Department.Name != "" {
		return EmbeddedRef(a.Department.ID, a.Department.Name)
	}
	return RawRef(a.DepartmentID)
}
