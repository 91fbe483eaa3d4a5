// Package resolver joins appointment and doctor references to display names
// using lists already loaded in memory.
package resolver

import (
	"medicore/cmd/internal/domain/entity"
	"strconv"
)

const (
	UnknownPatient    = "Unknown Patient"
	UnknownDoctor     = "Unknown Doctor"
	UnknownDepartment = "Unknown Department"
)

// Directory indexes names by the string form of each record id.
type Directory struct {
	patients    map[string]string
	doctors     map[string]string
	departments map[string]string
}

func New(patients []*entity.Patient, doctors []*entity.Doctor, departments []*entity.Department) *Directory {
	d := &Directory{
		patients:    make(map[string]string, len(patients)),
		doctors:     make(map[string]string, len(doctors)),
		departments: make(map[string]string, len(departments)),
	}
	for _, p := range patients {
		d.patients[strconv.Itoa(p.ID)] = p.Name
	}
	for _, doc := range doctors {
		d.doctors[strconv.Itoa(doc.ID)] = doc.Name
	}
	for _, dep := range departments {
		d.departments[strconv.Itoa(dep.ID)] = dep.Name
	}
	return d
}

func (d *Directory) PatientName(ref entity.Ref) string {
	return lookup(ref, d.patients, UnknownPatient)
}

func (d *Directory) DoctorName(ref entity.Ref) string {
	return lookup(ref, d.doctors, UnknownDoctor)
}

func (d *Directory) DepartmentName(ref entity.Ref) string {
	return lookup(ref, d.departments, UnknownDepartment)
}

type AppointmentNames struct {
	Patient    string `json:"patientName"`
	Doctor     string `json:"doctorName"`
	Department string `json:"departmentName"`
}

func (d *Directory) Appointment(a *entity.Appointment) AppointmentNames {
	return AppointmentNames{
		Patient:    d.PatientName(a.PatientRef()),
		Doctor:     d.DoctorName(a.DoctorRef()),
		Department: d.DepartmentName(a.DepartmentRef()),
	}
}

// lookup uses an embedded name as is and only falls back to the index for
// bare ids.
func lookup(ref entity.Ref, index map[string]string, placeholder string) string {
	if ref.Kind == entity.RefEmbedded && ref.Name != "" {
		return ref.Name
	}
	if name := index[ref.Key]; name != "" {
		return name
	}
	return placeholder
}
