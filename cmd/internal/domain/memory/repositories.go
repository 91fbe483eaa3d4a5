package memory

import (
	"context"
	"medicore/cmd/internal/domain/entity"
	"slices"
	"sort"
	"strings"
)

type PatientRepository struct {
	c collection[entity.Patient]
}

func NewPatientRepository(seed ...*entity.Patient) *PatientRepository {
	r := &PatientRepository{c: collection[entity.Patient]{
		idOf:  func(p *entity.Patient) int { return p.ID },
		setID: func(p *entity.Patient, id int) { p.ID = id },
		clone: func(p *entity.Patient) *entity.Patient {
			cp := *p
			cp.Allergies = slices.Clone(p.Allergies)
			return &cp
		},
	}}
	r.c.records = cloneAll(seed, r.c.clone)
	return r
}

func (r *PatientRepository) FindAll(ctx context.Context) ([]*entity.Patient, error) {
	return r.c.all(ctx, nil)
}

func (r *PatientRepository) FindByID(ctx context.Context, id int) (*entity.Patient, error) {
	return r.c.get(ctx, id)
}

func (r *PatientRepository) Create(ctx context.Context, p *entity.Patient) error {
	return r.c.insert(ctx, p)
}

func (r *PatientRepository) Update(ctx context.Context, id int, fields map[string]any) (*entity.Patient, error) {
	return r.c.patch(ctx, id, fields)
}

func (r *PatientRepository) Delete(ctx context.Context, id int) error {
	return r.c.remove(ctx, id)
}

func (r *PatientRepository) Search(ctx context.Context, query string) ([]*entity.Patient, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return r.c.all(ctx, nil)
	}
	return r.c.all(ctx, func(p *entity.Patient) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(p.Phone, term) ||
			strings.Contains(strings.ToLower(p.Email), term)
	})
}

type DoctorRepository struct {
	c collection[entity.Doctor]
}

func NewDoctorRepository(seed ...*entity.Doctor) *DoctorRepository {
	r := &DoctorRepository{c: collection[entity.Doctor]{
		idOf:  func(d *entity.Doctor) int { return d.ID },
		setID: func(d *entity.Doctor, id int) { d.ID = id },
		clone: func(d *entity.Doctor) *entity.Doctor {
			cp := *d
			cp.Availability = slices.Clone(d.Availability)
			cp.Department = nil
			return &cp
		},
	}}
	r.c.records = cloneAll(seed, r.c.clone)
	return r
}

func (r *DoctorRepository) FindAll(ctx context.Context) ([]*entity.Doctor, error) {
	return r.c.all(ctx, nil)
}

func (r *DoctorRepository) FindByID(ctx context.Context, id int) (*entity.Doctor, error) {
	return r.c.get(ctx, id)
}

func (r *DoctorRepository) FindByDepartment(ctx context.Context, departmentID int) ([]*entity.Doctor, error) {
	return r.c.all(ctx, func(d *entity.Doctor) bool { return d.DepartmentID == departmentID })
}

func (r *DoctorRepository) Create(ctx context.Context, d *entity.Doctor) error {
	return r.c.insert(ctx, d)
}

func (r *DoctorRepository) Update(ctx context.Context, id int, fields map[string]any) (*entity.Doctor, error) {
	return r.c.patch(ctx, id, fields)
}

func (r *DoctorRepository) Delete(ctx context.Context, id int) error {
	return r.c.remove(ctx, id)
}

type DepartmentRepository struct {
	c collection[entity.Department]
}

func NewDepartmentRepository(seed ...*entity.Department) *DepartmentRepository {
	r := &DepartmentRepository{c: collection[entity.Department]{
		idOf:  func(d *entity.Department) int { return d.ID },
		setID: func(d *entity.Department, id int) { d.ID = id },
		clone: func(d *entity.Department) *entity.Department {
			cp := *d
			return &cp
		},
	}}
	r.c.records = cloneAll(seed, r.c.clone)
	return r
}

func (r *DepartmentRepository) FindAll(ctx context.Context) ([]*entity.Department, error) {
	return r.c.all(ctx, nil)
}

func (r *DepartmentRepository) FindByID(ctx context.Context, id int) (*entity.Department, error) {
	return r.c.get(ctx, id)
}

func (r *DepartmentRepository) Create(ctx context.Context, d *entity.Department) error {
	return r.c.insert(ctx, d)
}

func (r *DepartmentRepository) Update(ctx context.Context, id int, fields map[string]any) (*entity.Department, error) {
	return r.c.patch(ctx, id, fields)
}

func (r *DepartmentRepository) Delete(ctx context.Context, id int) error {
	return r.c.remove(ctx, id)
}

type AppointmentRepository struct {
	c collection[entity.Appointment]
}

func NewAppointmentRepository(seed ...*entity.Appointment) *AppointmentRepository {
	r := &AppointmentRepository{c: collection[entity.Appointment]{
		idOf:  func(a *entity.Appointment) int { return a.ID },
		setID: func(a *entity.Appointment, id int) { a.ID = id },
		clone: func(a *entity.Appointment) *entity.Appointment {
			cp := *a
			cp.Patient, cp.Doctor, cp.Department = nil, nil, nil
			return &cp
		},
	}}
	r.c.records = cloneAll(seed, r.c.clone)
	return r
}

// FindAll orders by date, then time, like the SQL store.
func (r *AppointmentRepository) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	return r.sorted(r.c.all(ctx, nil))
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id int) (*entity.Appointment, error) {
	return r.c.get(ctx, id)
}

func (r *AppointmentRepository) FindByDate(ctx context.Context, date string) ([]*entity.Appointment, error) {
	appts, err := r.c.all(ctx, func(a *entity.Appointment) bool { return a.Date == date })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appts, func(i, j int) bool { return appts[i].Time < appts[j].Time })
	return appts, nil
}

func (r *AppointmentRepository) FindBetween(ctx context.Context, from, to string) ([]*entity.Appointment, error) {
	return r.sorted(r.c.all(ctx, func(a *entity.Appointment) bool { return a.Date >= from && a.Date <= to }))
}

func (r *AppointmentRepository) sorted(appts []*entity.Appointment, err error) ([]*entity.Appointment, error) {
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
	return appts, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	return r.c.insert(ctx, a)
}

func (r *AppointmentRepository) Update(ctx context.Context, id int, fields map[string]any) (*entity.Appointment, error) {
	return r.c.patch(ctx, id, fields)
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int, status entity.AppointmentStatus) (*entity.Appointment, error) {
	return r.c.patch(ctx, id, map[string]any{"Status": status})
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int) error {
	return r.c.remove(ctx, id)
}

func cloneAll[T any](seed []*T, clone func(*T) *T) []*T {
	out := make([]*T, 0, len(seed))
	for _, s := range seed {
		out = append(out, clone(s))
	}
	return out
}
