package service

import (
	"context"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/utils"
	"medicore/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
)

type DepartmentRequest struct {
	Name          string `json:"name" validate:"required,max=128"`
	Description   string `json:"description" validate:"required"`
	Head          string `json:"head" validate:"required"`
	Phone         string `json:"phone" validate:"omitempty,phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Location      string `json:"location"`
	Floor         string `json:"floor"`
	ContactNumber string `json:"contactNumber" validate:"omitempty,phone"`
}

type DepartmentPatch struct {
	Name          *string `json:"name" validate:"omitnil,notblank,max=128"`
	Description   *string `json:"description" validate:"omitnil,notblank"`
	Head          *string `json:"head" validate:"omitnil,notblank"`
	Phone         *string `json:"phone" validate:"omitnil,phone"`
	Email         *string `json:"email" validate:"omitnil,email"`
	Location      *string `json:"location"`
	Floor         *string `json:"floor"`
	ContactNumber *string `json:"contactNumber" validate:"omitnil,phone"`
}

type DepartmentResponse struct {
	*entity.Department
	DoctorCount int `json:"doctorCount"`
}

type DefaultDepartmentService struct {
	Repos    *Repositories
	Validate *validator.Validate
}

func NewDepartmentService(repos *Repositories, validate *validator.Validate) *DefaultDepartmentService {
	return &DefaultDepartmentService{Repos: repos, Validate: validate}
}

// GetDepartments lists every department with the number of doctors
// assigned to it.
func (d *DefaultDepartmentService) GetDepartments(ctx context.Context) ([]*DepartmentResponse, apierror.ErrorResponse) {
	snap, apierr := loadBatch(ctx, "departments", withDepartments(d.Repos), withDoctors(d.Repos))
	if apierr != nil {
		return nil, apierr
	}

	counts := make(map[int]int, len(snap.Departments))
	for _, doc := range snap.Doctors {
		counts[doc.DepartmentID]++
	}

	resp := make([]*DepartmentResponse, len(snap.Departments))
	for i, dep := range snap.Departments {
		resp[i] = &DepartmentResponse{Department: dep, DoctorCount: counts[dep.ID]}
	}
	return resp, nil
}

func (d *DefaultDepartmentService) GetDepartment(ctx context.Context, id int) (*entity.Department, apierror.ErrorResponse) {
	dep, err := d.Repos.Departments.FindByID(ctx, id)
	if err != nil {
		return nil, fromStoreError(err, "Department", "fetch", id)
	}
	return dep, nil
}

func (d *DefaultDepartmentService) GetDepartmentDoctors(ctx context.Context, id int) ([]*entity.Doctor, apierror.ErrorResponse) {
	if _, err := d.Repos.Departments.FindByID(ctx, id); err != nil {
		return nil, fromStoreError(err, "Department", "fetch", id)
	}
	doctors, err := d.Repos.Doctors.FindByDepartment(ctx, id)
	if err != nil {
		return nil, fromStoreError(err, "Doctor", "list department", id)
	}
	return doctors, nil
}

func (d *DefaultDepartmentService) CreateDepartment(ctx context.Context, req *DepartmentRequest) (*entity.Department, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := d.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	dep := &entity.Department{
		Name:          req.Name,
		Description:   req.Description,
		Head:          req.Head,
		Phone:         req.Phone,
		Email:         req.Email,
		Location:      req.Location,
		Floor:         req.Floor,
		ContactNumber: req.ContactNumber,
	}
	if err := d.Repos.Departments.Create(ctx, dep); err != nil {
		return nil, fromStoreError(err, "Department", "create", 0)
	}
	return dep, nil
}

func (d *DefaultDepartmentService) UpdateDepartment(ctx context.Context, id int, req *DepartmentPatch) (*entity.Department, apierror.ErrorResponse) {
	utils.Sanitize(req)
	check := *req
	skipBlank(&check.Phone, &check.Email, &check.ContactNumber)
	if valerr := d.Validate.Struct(&check); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	fields := map[string]any{}
	setString(fields, "Name", req.Name)
	setString(fields, "Description", req.Description)
	setString(fields, "Head", req.Head)
	setString(fields, "Phone", req.Phone)
	setString(fields, "Email", req.Email)
	setString(fields, "Location", req.Location)
	setString(fields, "Floor", req.Floor)
	setString(fields, "ContactNumber", req.ContactNumber)

	dep, err := d.Repos.Departments.Update(ctx, id, fields)
	if err != nil {
		return nil, fromStoreError(err, "Department", "update", id)
	}
	return dep, nil
}

func (d *DefaultDepartmentService) DeleteDepartment(ctx context.Context, id int) apierror.ErrorResponse {
	if err := d.Repos.Departments.Delete(ctx, id); err != nil {
		return fromStoreError(err, "Department", "delete", id)
	}
	return nil
}
