package service

import (
	"context"
	"medicore/cmd/internal/calendar"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/utils/apierror"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDraft(t *testing.T) {
	assert.Empty(t, ValidateDraft(validDraft()))

	errs := ValidateDraft(&AppointmentRequest{Reason: "   "})
	assert.Equal(t, map[string]string{
		"patientId":    "Patient is required",
		"doctorId":     "Doctor is required",
		"departmentId": "Department is required",
		"date":         "Date is required",
		"time":         "Time is required",
		"reason":       "Reason is required",
	}, errs)

	draft := validDraft()
	draft.DoctorID = entity.Ref{}
	assert.Equal(t, map[string]string{"doctorId": "Doctor is required"}, ValidateDraft(draft))
}

func TestCreateAppointment_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestAppointmentService(newTestRepos(), false)

	draft := validDraft()
	draft.Status = "completed"
	draft.Reason = "  Checkup  "

	created, apierr := svc.CreateAppointment(ctx, draft)
	require.Nil(t, apierr)
	assert.Equal(t, entity.StatusScheduled, created.Status, "new appointments always start scheduled")
	assert.Equal(t, entity.DefaultDuration, created.Duration)
	assert.Equal(t, "Checkup", created.Reason)

	got, apierr := svc.GetAppointment(ctx, created.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "2024-06-05", got.Date)
	assert.Equal(t, "09:30", got.Time)
	assert.Equal(t, "Scheduled", got.StatusLabel)
	require.NotNil(t, got.AppointmentNames)
	assert.Equal(t, "Jane Doe", got.Patient)
	assert.Equal(t, "Dr. House", got.Doctor)
	assert.Equal(t, "Internal Medicine", got.Department)
}

func TestCreateAppointment_Rejected(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newTestAppointmentService(repos, false)

	_, apierr := svc.CreateAppointment(ctx, &AppointmentRequest{})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
	assert.Equal(t, apierror.KindValidation, apierr.(*apierror.APIError).Kind)

	draft := validDraft()
	draft.Date = "06/05/2024"
	draft.Time = "25:00"
	draft.Duration = 20
	draft.PatientID = entity.Ref{Kind: entity.RefRaw, Key: "abc"}
	_, apierr = svc.CreateAppointment(ctx, draft)
	require.NotNil(t, apierr)
	fields := apierr.(*apierror.APIError).Fields
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "time")
	assert.Contains(t, fields, "duration")
	assert.Contains(t, fields, "patientId")

	all, err := repos.Appointments.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rejected drafts never reach the store")
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()
	svc := newTestAppointmentService(newTestRepos(), false)

	created, apierr := svc.CreateAppointment(ctx, validDraft())
	require.Nil(t, apierr)
	_, apierr = svc.StartAppointment(ctx, created.ID)
	require.Nil(t, apierr)

	newTime := "11:15"
	doctor := entity.EmbeddedRef(2, "Dr. Grey")
	updated, apierr := svc.UpdateAppointment(ctx, created.ID, &AppointmentPatch{Time: &newTime, DoctorID: &doctor})
	require.Nil(t, apierr)
	assert.Equal(t, "11:15", updated.Time)
	assert.Equal(t, entity.RawRef(2), updated.DoctorID)
	assert.Equal(t, entity.StatusInProgress, updated.Status, "edits leave status alone")

	blank := " "
	_, apierr = svc.UpdateAppointment(ctx, created.ID, &AppointmentPatch{Reason: &blank})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())

	_, apierr = svc.UpdateAppointment(ctx, 999, &AppointmentPatch{Time: &newTime})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())
}

func TestTransitionStatus_Permissive(t *testing.T) {
	ctx := context.Background()
	svc := newTestAppointmentService(newTestRepos(), false)

	created, apierr := svc.CreateAppointment(ctx, validDraft())
	require.Nil(t, apierr)

	done, apierr := svc.CompleteAppointment(ctx, created.ID)
	require.Nil(t, apierr)
	assert.Equal(t, entity.StatusCompleted, done.Status)

	back, apierr := svc.StartAppointment(ctx, created.ID)
	require.Nil(t, apierr)
	assert.Equal(t, entity.StatusInProgress, back.Status, "writes are unconditional by default")
	assert.Equal(t, "In Progress", back.StatusLabel)
	assert.Equal(t, "09:30", back.Time)
}

func TestTransitionStatus_Strict(t *testing.T) {
	ctx := context.Background()
	svc := newTestAppointmentService(newTestRepos(), true)

	created, apierr := svc.CreateAppointment(ctx, validDraft())
	require.Nil(t, apierr)

	_, apierr = svc.CompleteAppointment(ctx, created.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())

	_, apierr = svc.StartAppointment(ctx, created.ID)
	require.Nil(t, apierr)
	_, apierr = svc.CompleteAppointment(ctx, created.ID)
	require.Nil(t, apierr)

	_, apierr = svc.StartAppointment(ctx, created.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, apierror.KindConflict, apierr.(*apierror.APIError).Kind)

	cancelled, apierr := svc.CancelAppointment(ctx, created.ID)
	require.Nil(t, apierr)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status, "cancel is allowed from any state")
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestAppointmentService(newTestRepos(), false)

	created, apierr := svc.CreateAppointment(ctx, validDraft())
	require.Nil(t, apierr)

	appt, apierr := svc.SetStatus(ctx, created.ID, " Cancelled ")
	require.Nil(t, apierr)
	assert.Equal(t, entity.StatusCancelled, appt.Status)

	_, apierr = svc.SetStatus(ctx, created.ID, "scheduled")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())

	_, apierr = svc.SetStatus(ctx, 404, "completed")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())
}

func TestTransitionStatus_StoreFailure(t *testing.T) {
	repos := newTestRepos()
	repos.Appointments = failingAppointments{}

	_, apierr := newTestAppointmentService(repos, false).StartAppointment(context.Background(), 1)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusInternalServerError, apierr.Code())

	_, apierr = newTestAppointmentService(repos, true).StartAppointment(context.Background(), 1)
	require.NotNil(t, apierr)
	assert.Equal(t, apierror.KindStore, apierr.(*apierror.APIError).Kind)
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	svc := newTestAppointmentService(newTestRepos(), false)

	created, apierr := svc.CreateAppointment(ctx, validDraft())
	require.Nil(t, apierr)

	assert.Nil(t, svc.DeleteAppointment(ctx, created.ID))

	apierr = svc.DeleteAppointment(ctx, created.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())

	_, apierr = svc.GetAppointment(ctx, created.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())
}

func TestGetAppointments(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newTestAppointmentService(repos, false)

	for _, at := range []struct{ date, time string }{
		{"2024-06-05", "14:00"},
		{"2024-06-05", "08:00"},
		{"2024-06-06", "09:00"},
	} {
		draft := validDraft()
		draft.Date, draft.Time = at.date, at.time
		_, apierr := svc.CreateAppointment(ctx, draft)
		require.Nil(t, apierr)
	}
	require.NoError(t, repos.Appointments.Create(ctx, &entity.Appointment{
		PatientID: 77, DoctorID: 2, DepartmentID: 2, Date: "2024-06-07", Time: "10:00", Status: entity.StatusScheduled,
	}))

	all, apierr := svc.GetAppointments(ctx, "")
	require.Nil(t, apierr)
	require.Len(t, all, 4)
	assert.Equal(t, "Unknown Patient", all[3].Patient, "dangling references get a placeholder")
	assert.Equal(t, "Dr. Grey", all[3].Doctor)

	onDate, apierr := svc.GetAppointments(ctx, "2024-06-05")
	require.Nil(t, apierr)
	require.Len(t, onDate, 2)
	assert.Equal(t, "08:00", onDate[0].Time)

	today, apierr := svc.GetToday(ctx)
	require.Nil(t, apierr)
	assert.Len(t, today, 2)

	_, apierr = svc.GetAppointments(ctx, "June 5th")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestGetAppointments_BatchFailure(t *testing.T) {
	repos := newTestRepos()
	repos.Patients = failingPatients{}
	svc := newTestAppointmentService(repos, false)

	_, apierr := svc.GetAppointments(context.Background(), "")
	require.NotNil(t, apierr)
	assert.Equal(t, apierror.InternalServerError, apierr)

	_, apierr = svc.GetCalendar(context.Background(), "week", "", "")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusInternalServerError, apierr.Code())
}

func TestGetCalendar(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newTestAppointmentService(repos, false)

	for _, at := range []struct{ date, time string }{
		{"2024-06-09", "16:00"},
		{"2024-06-03", "09:00"},
		{"2024-06-10", "09:00"},
		{"2024-06-02", "09:00"},
	} {
		draft := validDraft()
		draft.Date, draft.Time = at.date, at.time
		_, apierr := svc.CreateAppointment(ctx, draft)
		require.Nil(t, apierr)
	}

	week, apierr := svc.GetCalendar(ctx, "week", "", "")
	require.Nil(t, apierr)
	assert.Equal(t, calendar.Week, week.View)
	assert.Equal(t, "2024-06-03", week.Start)
	assert.Equal(t, "2024-06-09", week.End)
	assert.Len(t, week.Days, 7)
	require.Equal(t, 2, week.Count)
	assert.Equal(t, "2024-06-03", week.Appointments[0].Date, "ordered by time of day")
	assert.False(t, week.Empty)

	nextWeek, apierr := svc.GetCalendar(ctx, "week", "2024-06-05", "next")
	require.Nil(t, apierr)
	assert.Equal(t, "2024-06-10", nextWeek.Start)
	assert.Equal(t, 1, nextWeek.Count)

	day, apierr := svc.GetCalendar(ctx, "", "", "prev")
	require.Nil(t, apierr)
	assert.Equal(t, calendar.Day, day.View)
	assert.Equal(t, "2024-06-04", day.Date)
	assert.True(t, day.Empty)
	assert.NotNil(t, day.Appointments)
	assert.Empty(t, day.Appointments)

	_, apierr = svc.GetCalendar(ctx, "month", "", "")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())

	_, apierr = svc.GetCalendar(ctx, "day", "", "sideways")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestBulkCreate_ReportsPerRecord(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newTestAppointmentService(repos, false)

	bad := validDraft()
	bad.Reason = ""
	results := svc.BulkCreate(ctx, []*AppointmentRequest{validDraft(), bad, validDraft()})
	require.Len(t, results, 3)

	assert.True(t, results[0].OK)
	assert.NotZero(t, results[0].ID)
	assert.False(t, results[1].OK)
	require.NotNil(t, results[1].Err)
	assert.Equal(t, apierror.KindValidation, results[1].Err.(*apierror.APIError).Kind)
	assert.True(t, results[2].OK)

	all, err := repos.Appointments.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "successes are kept when a sibling fails")
}

func TestBulkUpdate_ReportsPerRecord(t *testing.T) {
	ctx := context.Background()
	svc := newTestAppointmentService(newTestRepos(), false)

	created, apierr := svc.CreateAppointment(ctx, validDraft())
	require.Nil(t, apierr)

	notes := "bring lab results"
	results := svc.BulkUpdate(ctx, []*BulkAppointmentPatch{
		{ID: created.ID, Fields: AppointmentPatch{Notes: &notes}},
		{ID: 999, Fields: AppointmentPatch{Notes: &notes}},
	})
	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.Equal(t, notes, results[0].Appointment.Notes)
	assert.Equal(t, 999, results[1].ID)
	assert.Equal(t, http.StatusNotFound, results[1].Err.Code())
}
