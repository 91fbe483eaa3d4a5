package service

import (
	"context"
	"fmt"
	"medicore/cmd/internal/calendar"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/resolver"
	"medicore/cmd/internal/utils"
	"medicore/cmd/internal/utils/apierror"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AppointmentRequest is an appointment draft as submitted by the form.
// Status is accepted but ignored: new appointments always start scheduled.
type AppointmentRequest struct {
	PatientID    entity.Ref `json:"patientId"`
	DoctorID     entity.Ref `json:"doctorId"`
	DepartmentID entity.Ref `json:"departmentId"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Duration     int        `json:"duration"`
	Reason       string     `json:"reason"`
	Notes        string     `json:"notes"`
	Status       string     `json:"status,omitempty"`
}

// AppointmentPatch holds the fields to overwrite. It has no status: status
// only moves through the transition operations.
type AppointmentPatch struct {
	PatientID    *entity.Ref `json:"patientId"`
	DoctorID     *entity.Ref `json:"doctorId"`
	DepartmentID *entity.Ref `json:"departmentId"`
	Date         *string     `json:"date" validate:"omitnil,isodate"`
	Time         *string     `json:"time" validate:"omitnil,clock"`
	Duration     *int        `json:"duration" validate:"omitnil,oneof=15 30 45 60 90"`
	Reason       *string     `json:"reason" validate:"omitnil,notblank,max=512"`
	Notes        *string     `json:"notes"`
}

type BulkAppointmentPatch struct {
	ID     int              `json:"Id"`
	Fields AppointmentPatch `json:"fields"`
}

// appointmentDraft is the normalized draft checked after the presence
// rules pass.
type appointmentDraft struct {
	Date     string `json:"date" validate:"isodate"`
	Time     string `json:"time" validate:"clock"`
	Duration int    `json:"duration" validate:"oneof=15 30 45 60 90"`
	Reason   string `json:"reason" validate:"max=512"`
}

type AppointmentResponse struct {
	ID           int                      `json:"Id"`
	PatientID    entity.Ref               `json:"patientId"`
	DoctorID     entity.Ref               `json:"doctorId"`
	DepartmentID entity.Ref               `json:"departmentId"`
	Date         string                   `json:"date"`
	Time         string                   `json:"time"`
	Duration     int                      `json:"duration"`
	Reason       string                   `json:"reason"`
	Notes        string                   `json:"notes,omitempty"`
	Status       entity.AppointmentStatus `json:"status"`
	StatusLabel  string                   `json:"statusLabel"`

	*resolver.AppointmentNames
}

type BulkResult struct {
	Index       int                    `json:"index"`
	ID          int                    `json:"Id,omitempty"`
	OK          bool                   `json:"ok"`
	Appointment *AppointmentResponse   `json:"appointment,omitempty"`
	Err         apierror.ErrorResponse `json:"error,omitempty"`
}

type CalendarResponse struct {
	View         calendar.Mode          `json:"view"`
	Date         string                 `json:"date"`
	Start        string                 `json:"start"`
	End          string                 `json:"end"`
	Previous     string                 `json:"previous"`
	Next         string                 `json:"next"`
	Days         []string               `json:"days"`
	Count        int                    `json:"count"`
	Empty        bool                   `json:"empty"`
	Appointments []*AppointmentResponse `json:"appointments"`
}

type DefaultAppointmentService struct {
	Repos    *Repositories
	Validate *validator.Validate
	Clock    Clock

	// StrictTransitions rejects status moves other than scheduled ->
	// in-progress and in-progress -> completed. Off, every requested move
	// to in-progress or completed is written as is.
	StrictTransitions bool
}

func NewAppointmentService(repos *Repositories, validate *validator.Validate, clock Clock, strict bool) *DefaultAppointmentService {
	return &DefaultAppointmentService{Repos: repos, Validate: validate, Clock: clock, StrictTransitions: strict}
}

// ValidateDraft reports the required fields that are missing or blank. It
// performs no I/O; an empty result means the draft may be submitted.
func ValidateDraft(req *AppointmentRequest) map[string]string {
	errs := map[string]string{}
	if req.PatientID.IsZero() {
		errs["patientId"] = "Patient is required"
	}
	if req.DoctorID.IsZero() {
		errs["doctorId"] = "Doctor is required"
	}
	if req.DepartmentID.IsZero() {
		errs["departmentId"] = "Department is required"
	}
	if strings.TrimSpace(req.Date) == "" {
		errs["date"] = "Date is required"
	}
	if strings.TrimSpace(req.Time) == "" {
		errs["time"] = "Time is required"
	}
	if strings.TrimSpace(req.Reason) == "" {
		errs["reason"] = "Reason is required"
	}
	return errs
}

func (a *DefaultAppointmentService) GetAppointments(ctx context.Context, date string) ([]*AppointmentResponse, apierror.ErrorResponse) {
	load := a.Repos.Appointments.FindAll
	if date = strings.TrimSpace(date); date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			return nil, apierror.NewInvalidParamTypeError("date", "YYYY-MM-DD")
		}
		load = func(ctx context.Context) ([]*entity.Appointment, error) {
			return a.Repos.Appointments.FindByDate(ctx, date)
		}
	}

	snap, apierr := a.loadWithDirectory(ctx, "appointments", load)
	if apierr != nil {
		return nil, apierr
	}
	return toAppointmentResponses(snap.Appointments, snap.directory()), nil
}

// GetToday lists today's appointments in time order.
func (a *DefaultAppointmentService) GetToday(ctx context.Context) ([]*AppointmentResponse, apierror.ErrorResponse) {
	today := a.Clock.today()
	snap, apierr := a.loadWithDirectory(ctx, "today's appointments", func(ctx context.Context) ([]*entity.Appointment, error) {
		return a.Repos.Appointments.FindByDate(ctx, today)
	})
	if apierr != nil {
		return nil, apierr
	}

	appts := calendar.Filter(snap.Appointments, calendar.DayWindow(a.Clock()))
	return toAppointmentResponses(appts, snap.directory()), nil
}

func (a *DefaultAppointmentService) GetAppointment(ctx context.Context, id int) (*AppointmentResponse, apierror.ErrorResponse) {
	appt, err := a.Repos.Appointments.FindByID(ctx, id)
	if err != nil {
		return nil, fromStoreError(err, "Appointment", "fetch", id)
	}

	if appt.Patient != nil && appt.Doctor != nil && appt.Department != nil {
		return toAppointmentResponse(appt, resolver.New(nil, nil, nil)), nil
	}

	snap, apierr := loadBatch(ctx, "appointment", withPatients(a.Repos), withDoctors(a.Repos), withDepartments(a.Repos))
	if apierr != nil {
		return nil, apierr
	}
	return toAppointmentResponse(appt, snap.directory()), nil
}

// GetCalendar returns the day or week window around date (today when
// blank), first moved one step when step is next or prev.
func (a *DefaultAppointmentService) GetCalendar(ctx context.Context, view, date, step string) (*CalendarResponse, apierror.ErrorResponse) {
	mode, err := calendar.ParseMode(view)
	if err != nil {
		return nil, apierror.NewSimple(400, err.Error())
	}

	ref := a.Clock()
	if strings.TrimSpace(date) != "" {
		if ref, err = utils.ParseDate(date); err != nil {
			return nil, apierror.NewInvalidParamTypeError("date", "YYYY-MM-DD")
		}
	}
	if strings.TrimSpace(step) != "" {
		dir, err := calendar.ParseDirection(step)
		if err != nil {
			return nil, apierror.NewSimple(400, err.Error())
		}
		ref = calendar.Navigate(ref, dir, mode)
	}

	w := calendar.WindowFor(mode, ref)
	snap, apierr := a.loadWithDirectory(ctx, "calendar", func(ctx context.Context) ([]*entity.Appointment, error) {
		return a.Repos.Appointments.FindBetween(ctx, w.StartDate(), w.EndDate())
	})
	if apierr != nil {
		return nil, apierr
	}

	appts := calendar.Filter(snap.Appointments, w)
	return &CalendarResponse{
		View:         mode,
		Date:         utils.FormatDate(ref),
		Start:        w.StartDate(),
		End:          w.EndDate(),
		Previous:     utils.FormatDate(calendar.Navigate(ref, calendar.Prev, mode)),
		Next:         utils.FormatDate(calendar.Navigate(ref, calendar.Next, mode)),
		Days:         w.Days(),
		Count:        len(appts),
		Empty:        len(appts) == 0,
		Appointments: toAppointmentResponses(appts, snap.directory()),
	}, nil
}

func (a *DefaultAppointmentService) CreateAppointment(ctx context.Context, req *AppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if errs := ValidateDraft(req); len(errs) > 0 {
		return nil, apierror.NewValidationError(errs)
	}

	errs := map[string]string{}
	appt := &entity.Appointment{
		PatientID:    refID(errs, "patientId", req.PatientID),
		DoctorID:     refID(errs, "doctorId", req.DoctorID),
		DepartmentID: refID(errs, "departmentId", req.DepartmentID),
		Date:         req.Date,
		Time:         req.Time,
		Duration:     req.Duration,
		Reason:       req.Reason,
		Notes:        req.Notes,
		Status:       entity.StatusScheduled,
	}
	if appt.Duration == 0 {
		appt.Duration = entity.DefaultDuration
	}

	draft := &appointmentDraft{Date: appt.Date, Time: appt.Time, Duration: appt.Duration, Reason: appt.Reason}
	if valerr := a.Validate.Struct(draft); valerr != nil {
		for field, msg := range apierror.FromValidationError(valerr).Fields {
			errs[field] = msg
		}
	}
	if len(errs) > 0 {
		return nil, apierror.NewValidationError(errs)
	}

	if err := a.Repos.Appointments.Create(ctx, appt); err != nil {
		return nil, fromStoreError(err, "Appointment", "create", 0)
	}
	return toAppointmentResponse(appt, nil), nil
}

// UpdateAppointment overwrites the supplied fields and leaves status alone.
func (a *DefaultAppointmentService) UpdateAppointment(ctx context.Context, id int, req *AppointmentPatch) (*AppointmentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	errs := map[string]string{}
	fields := map[string]any{}
	if req.PatientID != nil {
		fields["PatientID"] = requireRef(errs, "patientId", "Patient", *req.PatientID)
	}
	if req.DoctorID != nil {
		fields["DoctorID"] = requireRef(errs, "doctorId", "Doctor", *req.DoctorID)
	}
	if req.DepartmentID != nil {
		fields["DepartmentID"] = requireRef(errs, "departmentId", "Department", *req.DepartmentID)
	}
	if len(errs) > 0 {
		return nil, apierror.NewValidationError(errs)
	}
	setString(fields, "Date", req.Date)
	setString(fields, "Time", req.Time)
	setString(fields, "Reason", req.Reason)
	setString(fields, "Notes", req.Notes)
	if req.Duration != nil {
		fields["Duration"] = *req.Duration
	}

	appt, err := a.Repos.Appointments.Update(ctx, id, fields)
	if err != nil {
		return nil, fromStoreError(err, "Appointment", "update", id)
	}
	return toAppointmentResponse(appt, nil), nil
}

// TransitionStatus moves an appointment to in-progress or completed by
// writing only its status.
func (a *DefaultAppointmentService) TransitionStatus(ctx context.Context, id int, to entity.AppointmentStatus) (*AppointmentResponse, apierror.ErrorResponse) {
	if to != entity.StatusInProgress && to != entity.StatusCompleted {
		return nil, apierror.NewValidationError(map[string]string{
			"status": fmt.Sprintf("status must be one of: %s %s", entity.StatusInProgress, entity.StatusCompleted),
		})
	}

	if a.StrictTransitions {
		current, err := a.Repos.Appointments.FindByID(ctx, id)
		if err != nil {
			return nil, fromStoreError(err, "Appointment", "fetch", id)
		}
		if next, ok := current.Status.Next(); !ok || next != to {
			return nil, apierror.NewInvalidTransitionError(string(current.Status), string(to))
		}
	}

	appt, err := a.Repos.Appointments.UpdateStatus(ctx, id, to)
	if err != nil {
		return nil, fromStoreError(err, "Appointment", "update status of", id)
	}
	return toAppointmentResponse(appt, nil), nil
}

func (a *DefaultAppointmentService) StartAppointment(ctx context.Context, id int) (*AppointmentResponse, apierror.ErrorResponse) {
	return a.TransitionStatus(ctx, id, entity.StatusInProgress)
}

func (a *DefaultAppointmentService) CompleteAppointment(ctx context.Context, id int) (*AppointmentResponse, apierror.ErrorResponse) {
	return a.TransitionStatus(ctx, id, entity.StatusCompleted)
}

// CancelAppointment writes the cancelled status directly, from any state.
func (a *DefaultAppointmentService) CancelAppointment(ctx context.Context, id int) (*AppointmentResponse, apierror.ErrorResponse) {
	appt, err := a.Repos.Appointments.UpdateStatus(ctx, id, entity.StatusCancelled)
	if err != nil {
		return nil, fromStoreError(err, "Appointment", "cancel", id)
	}
	return toAppointmentResponse(appt, nil), nil
}

// SetStatus is the generic status write: cancelled goes through
// CancelAppointment, everything else through TransitionStatus.
func (a *DefaultAppointmentService) SetStatus(ctx context.Context, id int, status string) (*AppointmentResponse, apierror.ErrorResponse) {
	to := entity.AppointmentStatus(strings.ToLower(strings.TrimSpace(status)))
	if to == entity.StatusCancelled {
		return a.CancelAppointment(ctx, id)
	}
	return a.TransitionStatus(ctx, id, to)
}

func (a *DefaultAppointmentService) DeleteAppointment(ctx context.Context, id int) apierror.ErrorResponse {
	if err := a.Repos.Appointments.Delete(ctx, id); err != nil {
		return fromStoreError(err, "Appointment", "delete", id)
	}
	return nil
}

// BulkCreate creates each draft on its own. Failures are reported per
// record and do not undo the records that succeeded.
func (a *DefaultAppointmentService) BulkCreate(ctx context.Context, reqs []*AppointmentRequest) []*BulkResult {
	results := make([]*BulkResult, len(reqs))
	for i, req := range reqs {
		appt, apierr := a.CreateAppointment(ctx, req)
		results[i] = toBulkResult(i, appt, apierr)
	}
	return results
}

func (a *DefaultAppointmentService) BulkUpdate(ctx context.Context, patches []*BulkAppointmentPatch) []*BulkResult {
	results := make([]*BulkResult, len(patches))
	for i, p := range patches {
		appt, apierr := a.UpdateAppointment(ctx, p.ID, &p.Fields)
		results[i] = toBulkResult(i, appt, apierr)
		results[i].ID = p.ID
	}
	return results
}

func (a *DefaultAppointmentService) loadWithDirectory(ctx context.Context, view string, load func(ctx context.Context) ([]*entity.Appointment, error)) (*snapshot, apierror.ErrorResponse) {
	return loadBatch(ctx, view,
		withAppointments(load),
		withPatients(a.Repos),
		withDoctors(a.Repos),
		withDepartments(a.Repos),
	)
}

func toBulkResult(i int, appt *AppointmentResponse, apierr apierror.ErrorResponse) *BulkResult {
	if apierr != nil {
		return &BulkResult{Index: i, Err: apierr}
	}
	return &BulkResult{Index: i, ID: appt.ID, OK: true, Appointment: appt}
}

func toAppointmentResponses(appts []*entity.Appointment, dir *resolver.Directory) []*AppointmentResponse {
	resp := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		resp[i] = toAppointmentResponse(appt, dir)
	}
	return resp
}

// toAppointmentResponse adds display names only when a directory is given.
func toAppointmentResponse(appt *entity.Appointment, dir *resolver.Directory) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:           appt.ID,
		PatientID:    appt.PatientRef(),
		DoctorID:     appt.DoctorRef(),
		DepartmentID: appt.DepartmentRef(),
		Date:         appt.Date,
		Time:         appt.Time,
		Duration:     appt.Duration,
		Reason:       appt.Reason,
		Notes:        appt.Notes,
		Status:       appt.Status,
		StatusLabel:  appt.Status.Label(),
	}
	if dir != nil {
		names := dir.Appointment(appt)
		resp.AppointmentNames = &names
	}
	return resp
}
