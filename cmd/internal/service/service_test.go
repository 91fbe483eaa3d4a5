package service

import (
	"context"
	"errors"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/domain/memory"
	"medicore/cmd/internal/utils/validators"
	"time"
)

var errStoreDown = errors.New("connection refused")

// wednesday is 2024-06-05, the fixed "now" of every test.
var wednesday = time.Date(2024, time.June, 5, 10, 0, 0, 0, time.UTC)

func fixedClock() Clock {
	return func() time.Time { return wednesday }
}

func newTestRepos() *Repositories {
	return &Repositories{
		Patients: memory.NewPatientRepository(
			&entity.Patient{ID: 1, Name: "Jane Doe", Phone: "555-0100", Email: "jane@example.com"},
			&entity.Patient{ID: 2, Name: "John Roe", Phone: "555-0200", Email: "john@example.com"},
		),
		Doctors: memory.NewDoctorRepository(
			&entity.Doctor{ID: 1, Name: "Dr. House", Specialization: "Diagnostics", DepartmentID: 1},
			&entity.Doctor{ID: 2, Name: "Dr. Grey", Specialization: "Surgery", DepartmentID: 2},
		),
		Departments: memory.NewDepartmentRepository(
			&entity.Department{ID: 1, Name: "Internal Medicine"},
			&entity.Department{ID: 2, Name: "Surgery"},
		),
		Appointments: memory.NewAppointmentRepository(),
	}
}

func newTestAppointmentService(repos *Repositories, strict bool) *DefaultAppointmentService {
	return NewAppointmentService(repos, validators.New(), fixedClock(), strict)
}

func validDraft() *AppointmentRequest {
	return &AppointmentRequest{
		PatientID:    entity.RawRef(1),
		DoctorID:     entity.RawRef(1),
		DepartmentID: entity.RawRef(1),
		Date:         "2024-06-05",
		Time:         "09:30",
		Reason:       "Checkup",
	}
}

type failingPatients struct{ PatientRepository }

func (failingPatients) FindAll(context.Context) ([]*entity.Patient, error) {
	return nil, errStoreDown
}

type failingAppointments struct{ AppointmentRepository }

func (failingAppointments) FindByID(context.Context, int) (*entity.Appointment, error) {
	return nil, errStoreDown
}

func (failingAppointments) UpdateStatus(context.Context, int, entity.AppointmentStatus) (*entity.Appointment, error) {
	return nil, errStoreDown
}
