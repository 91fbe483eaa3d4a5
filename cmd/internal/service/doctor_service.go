package service

import (
	"context"
	"encoding/json"
	"medicore/cmd/internal/availability"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/resolver"
	"medicore/cmd/internal/utils"
	"medicore/cmd/internal/utils/apierror"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

type DoctorRequest struct {
	Name           string          `json:"name" validate:"required,max=128"`
	Specialization string          `json:"specialization" validate:"required"`
	Phone          string          `json:"phone" validate:"omitempty,phone"`
	Email          string          `json:"email" validate:"omitempty,email"`
	DepartmentID   entity.Ref      `json:"departmentId"`
	Availability   json.RawMessage `json:"availability"`
}

type DoctorPatch struct {
	Name           *string          `json:"name" validate:"omitnil,notblank,max=128"`
	Specialization *string          `json:"specialization" validate:"omitnil,notblank"`
	Phone          *string          `json:"phone" validate:"omitnil,phone"`
	Email          *string          `json:"email" validate:"omitnil,email"`
	DepartmentID   *entity.Ref      `json:"departmentId"`
	Availability   *json.RawMessage `json:"availability"`
}

type DoctorResponse struct {
	*entity.Doctor
	DepartmentID      entity.Ref          `json:"departmentId"`
	DepartmentName    string              `json:"departmentName"`
	AvailabilityToday availability.Result `json:"availabilityToday"`
}

type DoctorAvailabilityResponse struct {
	DoctorID int                          `json:"doctorId"`
	Weekday  string                       `json:"weekday"`
	Today    availability.Result          `json:"today"`
	Schedule *availability.WeeklySchedule `json:"schedule,omitempty"`
}

type DefaultDoctorService struct {
	Repos    *Repositories
	Validate *validator.Validate
	Clock    Clock
}

func NewDoctorService(repos *Repositories, validate *validator.Validate, clock Clock) *DefaultDoctorService {
	return &DefaultDoctorService{Repos: repos, Validate: validate, Clock: clock}
}

// GetDoctors lists the directory, optionally narrowed to one department and
// to doctors whose name or specialization contains query.
func (d *DefaultDoctorService) GetDoctors(ctx context.Context, query string, departmentID int) ([]*DoctorResponse, apierror.ErrorResponse) {
	doctorsFetch := withDoctors(d.Repos)
	if departmentID > 0 {
		doctorsFetch = func(ctx context.Context, s *snapshot) (err error) {
			s.Doctors, err = d.Repos.Doctors.FindByDepartment(ctx, departmentID)
			return err
		}
	}

	snap, apierr := loadBatch(ctx, "doctors", doctorsFetch, withDepartments(d.Repos))
	if apierr != nil {
		return nil, apierr
	}

	dir := snap.directory()
	term := strings.ToLower(strings.TrimSpace(query))
	resp := make([]*DoctorResponse, 0, len(snap.Doctors))
	for _, doc := range snap.Doctors {
		if term != "" &&
			!strings.Contains(strings.ToLower(doc.Name), term) &&
			!strings.Contains(strings.ToLower(doc.Specialization), term) {
			continue
		}
		resp = append(resp, d.toDoctorResponse(doc, dir))
	}
	return resp, nil
}

func (d *DefaultDoctorService) GetDoctor(ctx context.Context, id int) (*DoctorResponse, apierror.ErrorResponse) {
	doc, err := d.Repos.Doctors.FindByID(ctx, id)
	if err != nil {
		return nil, fromStoreError(err, "Doctor", "fetch", id)
	}

	return d.toDoctorResponse(doc, d.departmentDirectory(ctx, doc)), nil
}

func (d *DefaultDoctorService) CreateDoctor(ctx context.Context, req *DoctorRequest) (*DoctorResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := d.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	errs := map[string]string{}
	departmentID := requireRef(errs, "departmentId", "Department", req.DepartmentID)
	if len(errs) > 0 {
		return nil, apierror.NewValidationError(errs)
	}

	doc := &entity.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		Email:          req.Email,
		DepartmentID:   departmentID,
		Availability:   datatypes.JSON(req.Availability),
	}
	if err := d.Repos.Doctors.Create(ctx, doc); err != nil {
		return nil, fromStoreError(err, "Doctor", "create", 0)
	}
	return d.toDoctorResponse(doc, d.departmentDirectory(ctx, doc)), nil
}

func (d *DefaultDoctorService) UpdateDoctor(ctx context.Context, id int, req *DoctorPatch) (*DoctorResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	check := *req
	skipBlank(&check.Phone, &check.Email)
	if valerr := d.Validate.Struct(&check); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	errs := map[string]string{}
	fields := map[string]any{}
	setString(fields, "Name", req.Name)
	setString(fields, "Specialization", req.Specialization)
	setString(fields, "Phone", req.Phone)
	setString(fields, "Email", req.Email)
	if req.DepartmentID != nil {
		fields["DepartmentID"] = requireRef(errs, "departmentId", "Department", *req.DepartmentID)
	}
	if req.Availability != nil {
		fields["Availability"] = datatypes.JSON(*req.Availability)
	}
	if len(errs) > 0 {
		return nil, apierror.NewValidationError(errs)
	}

	doc, err := d.Repos.Doctors.Update(ctx, id, fields)
	if err != nil {
		return nil, fromStoreError(err, "Doctor", "update", id)
	}
	return d.toDoctorResponse(doc, d.departmentDirectory(ctx, doc)), nil
}

func (d *DefaultDoctorService) DeleteDoctor(ctx context.Context, id int) apierror.ErrorResponse {
	if err := d.Repos.Doctors.Delete(ctx, id); err != nil {
		return fromStoreError(err, "Doctor", "delete", id)
	}
	return nil
}

// GetAvailability reports today's availability and, when the stored
// schedule parses, the whole week.
func (d *DefaultDoctorService) GetAvailability(ctx context.Context, id int) (*DoctorAvailabilityResponse, apierror.ErrorResponse) {
	doc, err := d.Repos.Doctors.FindByID(ctx, id)
	if err != nil {
		return nil, fromStoreError(err, "Doctor", "fetch", id)
	}

	now := d.Clock()
	resp := &DoctorAvailabilityResponse{
		DoctorID: doc.ID,
		Weekday:  availability.WeekdayKey(now.Weekday()),
		Today:    availability.Today(doc.Availability, now),
	}
	if schedule, ok, err := availability.Parse(doc.Availability); ok && err == nil {
		resp.Schedule = &schedule
	}
	return resp, nil
}

// departmentDirectory looks the department up when the record store did not
// populate it. A missing department resolves to the placeholder name.
func (d *DefaultDoctorService) departmentDirectory(ctx context.Context, doc *entity.Doctor) *resolver.Directory {
	if doc.Department != nil {
		return resolver.New(nil, nil, nil)
	}
	dep, err := d.Repos.Departments.FindByID(ctx, doc.DepartmentID)
	if err != nil {
		return resolver.New(nil, nil, nil)
	}
	return resolver.New(nil, nil, []*entity.Department{dep})
}

func (d *DefaultDoctorService) toDoctorResponse(doc *entity.Doctor, dir *resolver.Directory) *DoctorResponse {
	ref := doc.DepartmentRef()
	return &DoctorResponse{
		Doctor:            doc,
		DepartmentID:      ref,
		DepartmentName:    dir.DepartmentName(ref),
		AvailabilityToday: availability.Today(doc.Availability, d.Clock()),
	}
}
