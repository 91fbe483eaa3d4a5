package routes

import (
	"context"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/service"
	"medicore/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type PatientService interface {
	GetPatients(ctx context.Context, query string) ([]*entity.Patient, apierror.ErrorResponse)
	GetPatient(ctx context.Context, id int) (*entity.Patient, apierror.ErrorResponse)
	CreatePatient(ctx context.Context, req *service.PatientRequest) (*entity.Patient, apierror.ErrorResponse)
	UpdatePatient(ctx context.Context, id int, req *service.PatientPatch) (*entity.Patient, apierror.ErrorResponse)
	DeletePatient(ctx context.Context, id int) apierror.ErrorResponse
}

type DefaultPatientRoute struct {
	PatientService PatientService
}

func NewPatientDefault(patientService PatientService) *DefaultPatientRoute {
	return &DefaultPatientRoute{PatientService: patientService}
}

func (p *DefaultPatientRoute) GetPatients(c echo.Context) error {
	patients, apierr := p.PatientService.GetPatients(c.Request().Context(), c.QueryParam("q"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"patients": patients}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPatientRoute) GetPatient(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	patient, apierr := p.PatientService.GetPatient(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, patient)
}

func (p *DefaultPatientRoute) CreatePatient(c echo.Context) error {
	var req service.PatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	patient, apierr := p.PatientService.CreatePatient(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, patient)
}

func (p *DefaultPatientRoute) UpdatePatient(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.PatientPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	patient, apierr := p.PatientService.UpdatePatient(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, patient)
}

func (p *DefaultPatientRoute) DeletePatient(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := p.PatientService.DeletePatient(c.Request().Context(), id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
