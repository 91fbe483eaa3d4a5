package routes

import (
	"context"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/service"
	"medicore/cmd/internal/utils"
	"medicore/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type AppointmentService interface {
	GetAppointments(ctx context.Context, date string) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	GetToday(ctx context.Context) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	GetAppointment(ctx context.Context, id int) (*service.AppointmentResponse, apierror.ErrorResponse)
	GetCalendar(ctx context.Context, view, date, step string) (*service.CalendarResponse, apierror.ErrorResponse)
	CreateAppointment(ctx context.Context, req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	UpdateAppointment(ctx context.Context, id int, req *service.AppointmentPatch) (*service.AppointmentResponse, apierror.ErrorResponse)
	SetStatus(ctx context.Context, id int, status string) (*service.AppointmentResponse, apierror.ErrorResponse)
	StartAppointment(ctx context.Context, id int) (*service.AppointmentResponse, apierror.ErrorResponse)
	CompleteAppointment(ctx context.Context, id int) (*service.AppointmentResponse, apierror.ErrorResponse)
	CancelAppointment(ctx context.Context, id int) (*service.AppointmentResponse, apierror.ErrorResponse)
	DeleteAppointment(ctx context.Context, id int) apierror.ErrorResponse
	BulkCreate(ctx context.Context, reqs []*service.AppointmentRequest) []*service.BulkResult
	BulkUpdate(ctx context.Context, patches []*service.BulkAppointmentPatch) []*service.BulkResult
}

type StatusRequest struct {
	Status string `json:"status"`
}

type BulkCreateRequest struct {
	Appointments []*service.AppointmentRequest `json:"appointments"`
}

type BulkUpdateRequest struct {
	Appointments []*service.BulkAppointmentPatch `json:"appointments"`
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
}

func NewAppointmentDefault(apptService AppointmentService) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService}
}

func (a *DefaultAppointmentRoute) GetAppointments(c echo.Context) error {
	appts, apierr := a.AppointmentService.GetAppointments(c.Request().Context(), c.QueryParam("date"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) GetToday(c echo.Context) error {
	appts, apierr := a.AppointmentService.GetToday(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) GetAppointment(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	appt, apierr := a.AppointmentService.GetAppointment(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (a *DefaultAppointmentRoute) CreateAppointment(c echo.Context) error {
	var req service.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.CreateAppointment(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, appt)
}

// ValidateAppointment runs the form's presence checks without saving.
func (a *DefaultAppointmentRoute) ValidateAppointment(c echo.Context) error {
	var req service.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	utils.Sanitize(&req)
	errs := service.ValidateDraft(&req)
	resp := echo.Map{"valid": len(errs) == 0, "errors": errs}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) UpdateAppointment(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.AppointmentPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.UpdateAppointment(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (a *DefaultAppointmentRoute) UpdateStatus(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}
	if req.Status == "" {
		return c.JSON(400, apierror.NewMissingParamError("status"))
	}

	appt, apierr := a.AppointmentService.SetStatus(c.Request().Context(), id, req.Status)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (a *DefaultAppointmentRoute) StartAppointment(c echo.Context) error {
	return a.transition(c, a.AppointmentService.StartAppointment)
}

func (a *DefaultAppointmentRoute) CompleteAppointment(c echo.Context) error {
	return a.transition(c, a.AppointmentService.CompleteAppointment)
}

func (a *DefaultAppointmentRoute) CancelAppointment(c echo.Context) error {
	return a.transition(c, a.AppointmentService.CancelAppointment)
}

func (a *DefaultAppointmentRoute) transition(c echo.Context, move func(context.Context, int) (*service.AppointmentResponse, apierror.ErrorResponse)) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	appt, apierr := move(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (a *DefaultAppointmentRoute) DeleteAppointment(c echo.Context) error {
	id, apierr := paramID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	serr := a.AppointmentService.DeleteAppointment(c.Request().Context(), id)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}

func (a *DefaultAppointmentRoute) BulkCreate(c echo.Context) error {
	var req BulkCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}
	if len(req.Appointments) == 0 {
		return c.JSON(400, apierror.NewMissingParamError("appointments"))
	}

	results := a.AppointmentService.BulkCreate(c.Request().Context(), req.Appointments)
	return bulkResponse(c, results)
}

func (a *DefaultAppointmentRoute) BulkUpdate(c echo.Context) error {
	var req BulkUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}
	if len(req.Appointments) == 0 {
		return c.JSON(400, apierror.NewMissingParamError("appointments"))
	}

	results := a.AppointmentService.BulkUpdate(c.Request().Context(), req.Appointments)
	return bulkResponse(c, results)
}

// bulkResponse answers 207 when only some records went through.
func bulkResponse(c echo.Context, results []*service.BulkResult) error {
	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
	}
	resp := echo.Map{"results": results, "succeeded": len(results) - failed, "failed": failed}
	return c.JSON(status, &resp)
}

func (a *DefaultAppointmentRoute) GetCalendar(c echo.Context) error {
	calendar, apierr := a.AppointmentService.GetCalendar(
		c.Request().Context(),
		c.QueryParam("view"),
		c.QueryParam("date"),
		c.QueryParam("step"),
	)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, &calendar)
}

// statusLabels is served so clients render the same badge text.
var statusLabels = func() map[entity.AppointmentStatus]string {
	m := make(map[entity.AppointmentStatus]string, len(entity.Statuses))
	for _, s := range entity.Statuses {
		m[s] = s.Label()
	}
	return m
}()

// GetOptions lists the values the appointment form offers.
func (a *DefaultAppointmentRoute) GetOptions(c echo.Context) error {
	resp := echo.Map{"statuses": statusLabels, "durations": entity.Durations}
	return c.JSON(http.StatusOK, &resp)
}
