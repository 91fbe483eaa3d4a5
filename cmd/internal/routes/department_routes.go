package routes

import (
	"context"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/service"
	"medicore/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type DepartmentService interface {
	GetDepartments(ctx context.Context) ([]*service.DepartmentResponse, apierror.ErrorResponse)
	GetDepartment(ctx context.Context, id int) (*entity.Department, apierror.ErrorResponse)
	GetDepartmentDoctors(ctx context.Context, id int) ([]*entity.Doctor, apierror.ErrorResponse)
	CreateDepartment(ctx context.Context, req *service.DepartmentRequest) (*entity.Department, apierror.ErrorResponse)
	UpdateDepartment(ctx context.Context, id int, req *service.DepartmentPatch) (*entity.Department, apierror.ErrorResponse)
	DeleteDepartment(ctx context.Context, id int) apierror.ErrorResponse
}

type DefaultDepartmentRoute struct {
	DepartmentService DepartmentService
}

func NewDepartmentDefault(departmentService DepartmentService) *DefaultDepartmentRoute {
	return &DefaultDepartmentRoute{DepartmentService: departmentService}
}

func (d *DefaultDepartmentRoute) GetDepartments(c echo.Context) error {
	departments, apierr := d.DepartmentService.GetDepartments(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"departments": departments}
	return c.JSON(http.StatusOK, &resp)
}

func (d *DefaultDepartmentRoute) GetDepartment(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	department, apierr := d.DepartmentService.GetDepartment(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, department)
}

func (d *DefaultDepartmentRoute) GetDepartmentDoctors(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	doctors, apierr := d.DepartmentService.GetDepartmentDoctors(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"doctors": doctors}
	return c.JSON(http.StatusOK, &resp)
}

func (d *DefaultDepartmentRoute) CreateDepartment(c echo.Context) error {
	var req service.DepartmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	department, apierr := d.DepartmentService.CreateDepartment(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, department)
}

func (d *DefaultDepartmentRoute) UpdateDepartment(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.DepartmentPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	department, apierr := d.DepartmentService.UpdateDepartment(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, department)
}

func (d *DefaultDepartmentRoute) DeleteDepartment(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := d.DepartmentService.DeleteDepartment(c.Request().Context(), id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
