package service

import (
	"context"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/utils"
	"medicore/cmd/internal/utils/apierror"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

type PatientRequest struct {
	Name             string   `json:"name" validate:"required,max=128"`
	DateOfBirth      string   `json:"dateOfBirth" validate:"required,isodate"`
	Gender           string   `json:"gender" validate:"required"`
	Phone            string   `json:"phone" validate:"required"`
	Email            string   `json:"email" validate:"required,email"`
	Address          string   `json:"address"`
	EmergencyContact string   `json:"emergencyContact"`
	BloodType        string   `json:"bloodType"`
	Allergies        []string `json:"allergies"`
}

// PatientPatch carries only the fields to overwrite; nil means untouched.
// The registration date is not patchable.
type PatientPatch struct {
	Name             *string   `json:"name" validate:"omitnil,notblank,max=128"`
	DateOfBirth      *string   `json:"dateOfBirth" validate:"omitnil,isodate"`
	Gender           *string   `json:"gender" validate:"omitnil,notblank"`
	Phone            *string   `json:"phone" validate:"omitnil,notblank"`
	Email            *string   `json:"email" validate:"omitnil,email"`
	Address          *string   `json:"address"`
	EmergencyContact *string   `json:"emergencyContact"`
	BloodType        *string   `json:"bloodType"`
	Allergies        *[]string `json:"allergies"`
}

type DefaultPatientService struct {
	PatientRepo PatientRepository
	Validate    *validator.Validate
	Clock       Clock
}

func NewPatientService(patientRepo PatientRepository, validate *validator.Validate, clock Clock) *DefaultPatientService {
	return &DefaultPatientService{PatientRepo: patientRepo, Validate: validate, Clock: clock}
}

// GetPatients lists every patient, or those matching query when it is not blank.
func (p *DefaultPatientService) GetPatients(ctx context.Context, query string) ([]*entity.Patient, apierror.ErrorResponse) {
	patients, err := p.PatientRepo.Search(ctx, query)
	if err != nil {
		return nil, fromStoreError(err, "Patient", "search", 0)
	}
	return patients, nil
}

func (p *DefaultPatientService) GetPatient(ctx context.Context, id int) (*entity.Patient, apierror.ErrorResponse) {
	patient, err := p.PatientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fromStoreError(err, "Patient", "fetch", id)
	}
	return patient, nil
}

func (p *DefaultPatientService) CreatePatient(ctx context.Context, req *PatientRequest) (*entity.Patient, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := p.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	patient := &entity.Patient{
		Name:             req.Name,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		BloodType:        req.BloodType,
		Allergies:        allergySet(req.Allergies),
		RegistrationDate: p.Clock.today(),
	}

	if err := p.PatientRepo.Create(ctx, patient); err != nil {
		return nil, fromStoreError(err, "Patient", "create", 0)
	}
	return patient, nil
}

func (p *DefaultPatientService) UpdatePatient(ctx context.Context, id int, req *PatientPatch) (*entity.Patient, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := p.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	fields := map[string]any{}
	setString(fields, "Name", req.Name)
	setString(fields, "DateOfBirth", req.DateOfBirth)
	setString(fields, "Gender", req.Gender)
	setString(fields, "Phone", req.Phone)
	setString(fields, "Email", req.Email)
	setString(fields, "Address", req.Address)
	setString(fields, "EmergencyContact", req.EmergencyContact)
	setString(fields, "BloodType", req.BloodType)
	if req.Allergies != nil {
		fields["Allergies"] = allergySet(*req.Allergies)
	}

	patient, err := p.PatientRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, fromStoreError(err, "Patient", "update", id)
	}
	return patient, nil
}

func (p *DefaultPatientService) DeletePatient(ctx context.Context, id int) apierror.ErrorResponse {
	if err := p.PatientRepo.Delete(ctx, id); err != nil {
		return fromStoreError(err, "Patient", "delete", id)
	}
	return nil
}

// allergySet splits comma separated entries, trims them and drops blanks
// and case-insensitive duplicates, keeping first-seen order.
func allergySet(in []string) datatypes.JSONSlice[string] {
	seen := make(map[string]bool, len(in))
	out := datatypes.JSONSlice[string]{}
	for _, entry := range in {
		for _, a := range strings.Split(entry, ",") {
			a = strings.TrimSpace(a)
			key := strings.ToLower(a)
			if a == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, a)
		}
	}
	return out
}

// skipBlank unsets fields patched to "". A blank optional field clears the
// stored value, so its format rule does not apply. Call it on a copy that
// is only validated.
func skipBlank(fields ...**string) {
	for _, f := range fields {
		if *f != nil && **f == "" {
			*f = nil
		}
	}
}

func setString(fields map[string]any, name string, v *string) {
	if v != nil {
		fields[name] = *v
	}
}
