package service

import (
	"context"
	"medicore/cmd/internal/domain/entity"
)

type PatientRepository interface {
	FindAll(ctx context.Context) ([]*entity.Patient, error)
	FindByID(ctx context.Context, id int) (*entity.Patient, error)
	Search(ctx context.Context, query string) ([]*entity.Patient, error)
	Create(ctx context.Context, patient *entity.Patient) error
	Update(ctx context.Context, id int, fields map[string]any) (*entity.Patient, error)
	Delete(ctx context.Context, id int) error
}

type DoctorRepository interface {
	FindAll(ctx context.Context) ([]*entity.Doctor, error)
	FindByID(ctx context.Context, id int) (*entity.Doctor, error)
	FindByDepartment(ctx context.Context, departmentID int) ([]*entity.Doctor, error)
	Create(ctx context.Context, doctor *entity.Doctor) error
	Update(ctx context.Context, id int, fields map[string]any) (*entity.Doctor, error)
	Delete(ctx context.Context, id int) error
}

type DepartmentRepository interface {
	FindAll(ctx context.Context) ([]*entity.Department, error)
	FindByID(ctx context.Context, id int) (*entity.Department, error)
	Create(ctx context.Context, department *entity.Department) error
	Update(ctx context.Context, id int, fields map[string]any) (*entity.Department, error)
	Delete(ctx context.Context, id int) error
}

type AppointmentRepository interface {
	FindAll(ctx context.Context) ([]*entity.Appointment, error)
	FindByID(ctx context.Context, id int) (*entity.Appointment, error)
	FindByDate(ctx context.Context, date string) ([]*entity.Appointment, error)
	FindBetween(ctx context.Context, from, to string) ([]*entity.Appointment, error)
	Create(ctx context.Context, appointment *entity.Appointment) error
	Update(ctx context.Context, id int, fields map[string]any) (*entity.Appointment, error)
	UpdateStatus(ctx context.Context, id int, status entity.AppointmentStatus) (*entity.Appointment, error)
	Delete(ctx context.Context, id int) error
}

// Repositories bundles one record store per collection. It is built once
// per process (or test) and shared by reference.
type Repositories struct {
	Patients     PatientRepository
	Doctors      DoctorRepository
	Departments  DepartmentRepository
	Appointments AppointmentRepository
}
