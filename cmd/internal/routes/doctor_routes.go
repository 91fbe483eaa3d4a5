package routes

import (
	"context"
	"medicore/cmd/internal/service"
	"medicore/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type DoctorService interface {
	GetDoctors(ctx context.Context, query string, departmentID int) ([]*service.DoctorResponse, apierror.ErrorResponse)
	GetDoctor(ctx context.Context, id int) (*service.DoctorResponse, apierror.ErrorResponse)
	GetAvailability(ctx context.Context, id int) (*service.DoctorAvailabilityResponse, apierror.ErrorResponse)
	CreateDoctor(ctx context.Context, req *service.DoctorRequest) (*service.DoctorResponse, apierror.ErrorResponse)
	UpdateDoctor(ctx context.Context, id int, req *service.DoctorPatch) (*service.DoctorResponse, apierror.ErrorResponse)
	DeleteDoctor(ctx context.Context, id int) apierror.ErrorResponse
}

type DefaultDoctorRoute struct {
	DoctorService DoctorService
}

func NewDoctorDefault(doctorService DoctorService) *DefaultDoctorRoute {
	return &DefaultDoctorRoute{DoctorService: doctorService}
}

func (d *DefaultDoctorRoute) GetDoctors(c echo.Context) error {
	departmentID, apierr := queryInt(c, "department")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	doctors, apierr := d.DoctorService.GetDoctors(c.Request().Context(), c.QueryParam("q"), departmentID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"doctors": doctors}
	return c.JSON(http.StatusOK, &resp)
}

func (d *DefaultDoctorRoute) GetDoctor(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	doctor, apierr := d.DoctorService.GetDoctor(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, doctor)
}

func (d *DefaultDoctorRoute) GetAvailability(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	avail, apierr := d.DoctorService.GetAvailability(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, avail)
}

func (d *DefaultDoctorRoute) CreateDoctor(c echo.Context) error {
	var req service.DoctorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	doctor, apierr := d.DoctorService.CreateDoctor(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, doctor)
}

func (d *DefaultDoctorRoute) UpdateDoctor(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.DoctorPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	doctor, apierr := d.DoctorService.UpdateDoctor(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, doctor)
}

func (d *DefaultDoctorRoute) DeleteDoctor(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := d.DoctorService.DeleteDoctor(c.Request().Context(), id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
