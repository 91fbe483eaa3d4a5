package routes

import (
	"encoding/json"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/domain/memory"
	"medicore/cmd/internal/service"
	"medicore/cmd/internal/utils/validators"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, strict bool) *echo.Echo {
	t.Helper()

	clock := service.Clock(func() time.Time { return time.Date(2024, time.June, 5, 10, 0, 0, 0, time.UTC) })
	validate := validators.New()
	repos := &service.Repositories{
		Patients:    memory.NewPatientRepository(&entity.Patient{ID: 1, Name: "Jane Doe"}),
		Doctors:     memory.NewDoctorRepository(&entity.Doctor{ID: 1, Name: "Dr. House", DepartmentID: 1}),
		Departments: memory.NewDepartmentRepository(&entity.Department{ID: 1, Name: "Internal Medicine"}),
		Appointments: memory.NewAppointmentRepository(
			&entity.Appointment{ID: 1, PatientID: 1, DoctorID: 1, DepartmentID: 1, Date: "2024-06-05", Time: "09:00", Duration: 30, Reason: "Checkup", Status: entity.StatusScheduled},
		),
	}

	r := &Routes{
		Patients:     NewPatientDefault(service.NewPatientService(repos.Patients, validate, clock)),
		Doctors:      NewDoctorDefault(service.NewDoctorService(repos, validate, clock)),
		Departments:  NewDepartmentDefault(service.NewDepartmentService(repos, validate)),
		Appointments: NewAppointmentDefault(service.NewAppointmentService(repos, validate, clock, strict)),
		Dashboard:    NewDashboardDefault(service.NewDashboardService(repos, clock)),
	}

	e := echo.New()
	r.Register(e)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAppointmentRoutes_Lifecycle(t *testing.T) {
	e := newTestServer(t, false)

	rec := do(e, http.MethodPost, "/api/appointments",
		`{"patientId":"1","doctorId":{"Id":1,"Name":"Dr. House"},"departmentId":1.0,"date":"2024-06-05","time":"08:15","reason":"Follow-up","status":"completed"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "scheduled", created["status"])
	assert.EqualValues(t, 30, created["duration"])
	id := int(created["Id"].(float64))
	require.Equal(t, 2, id)

	rec = do(e, http.MethodPost, "/api/appointments/2/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "In Progress", decode(t, rec)["statusLabel"])

	rec = do(e, http.MethodPatch, "/api/appointments/2/status", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", decode(t, rec)["status"])

	rec = do(e, http.MethodGet, "/api/appointments/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "Jane Doe", got["patientName"])
	assert.Equal(t, "Dr. House", got["doctorName"])
	assert.Equal(t, "Internal Medicine", got["departmentName"])

	rec = do(e, http.MethodGet, "/api/appointments/today", "")
	require.Equal(t, http.StatusOK, rec.Code)
	today := decode(t, rec)["appointments"].([]any)
	require.Len(t, today, 2)
	assert.Equal(t, "08:15", today[0].(map[string]any)["time"])

	rec = do(e, http.MethodDelete, "/api/appointments/2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(e, http.MethodDelete, "/api/appointments/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode(t, rec)["error"])
}

func TestAppointmentRoutes_StrictTransitions(t *testing.T) {
	e := newTestServer(t, true)

	rec := do(e, http.MethodPost, "/api/appointments/1/complete", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodPost, "/api/appointments/1/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cancelled", decode(t, rec)["status"])
}

func TestAppointmentRoutes_BadInput(t *testing.T) {
	e := newTestServer(t, false)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"non numeric id", http.MethodGet, "/api/appointments/abc", "", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/appointments/42", "", http.StatusNotFound},
		{"malformed body", http.MethodPost, "/api/appointments", `{"date":`, http.StatusBadRequest},
		{"missing fields", http.MethodPost, "/api/appointments", `{"reason":"  "}`, http.StatusBadRequest},
		{"missing status", http.MethodPatch, "/api/appointments/1/status", `{}`, http.StatusBadRequest},
		{"unknown status", http.MethodPatch, "/api/appointments/1/status", `{"status":"done"}`, http.StatusBadRequest},
		{"bad date filter", http.MethodGet, "/api/appointments?date=tomorrow", "", http.StatusBadRequest},
		{"bad calendar view", http.MethodGet, "/api/calendar?view=year", "", http.StatusBadRequest},
		{"empty bulk", http.MethodPost, "/api/appointments/bulk", `{"appointments":[]}`, http.StatusBadRequest},
		{"bad department filter", http.MethodGet, "/api/doctors?department=x", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestAppointmentRoutes_Validate(t *testing.T) {
	e := newTestServer(t, false)

	rec := do(e, http.MethodPost, "/api/appointments/validate", `{"patientId":1,"reason":" "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["valid"])
	errs := body["errors"].(map[string]any)
	assert.Equal(t, "Reason is required", errs["reason"])
	assert.NotContains(t, errs, "patientId")
}

func TestAppointmentRoutes_Bulk(t *testing.T) {
	e := newTestServer(t, false)

	rec := do(e, http.MethodPost, "/api/appointments/bulk", `{"appointments":[
		{"patientId":1,"doctorId":1,"departmentId":1,"date":"2024-06-06","time":"10:00","reason":"Scan"},
		{"patientId":1,"doctorId":1,"departmentId":1,"date":"2024-06-06","time":"99:00","reason":"Scan"}
	]}`)
	require.Equal(t, http.StatusMultiStatus, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["succeeded"])
	assert.EqualValues(t, 1, body["failed"])

	rec = do(e, http.MethodPatch, "/api/appointments/bulk", `{"appointments":[{"Id":1,"fields":{"notes":"fasting"}}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode(t, rec)["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "fasting", results[0].(map[string]any)["appointment"].(map[string]any)["notes"])
}

func TestCalendarRoute(t *testing.T) {
	e := newTestServer(t, false)

	rec := do(e, http.MethodGet, "/api/calendar?view=week&date=2024-06-05", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "2024-06-03", body["start"])
	assert.Equal(t, "2024-06-09", body["end"])
	assert.EqualValues(t, 1, body["count"])

	rec = do(e, http.MethodGet, "/api/calendar?view=day&date=2024-06-05&step=next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "2024-06-06", body["date"])
	assert.Equal(t, true, body["empty"])
	assert.Equal(t, []any{}, body["appointments"])
}

func TestDirectoryRoutes(t *testing.T) {
	e := newTestServer(t, false)

	rec := do(e, http.MethodPost, "/api/patients",
		`{"name":"Ada","dateOfBirth":"1815-12-10","gender":"female","phone":"555-0300","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "2024-06-05", decode(t, rec)["registrationDate"])

	rec = do(e, http.MethodGet, "/api/patients?q=ada", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["patients"], 1)

	rec = do(e, http.MethodPatch, "/api/doctors/1", `{"availability":{"wednesday":["09:00-12:00"]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doctor := decode(t, rec)
	assert.EqualValues(t, 1, doctor["departmentId"])
	assert.Equal(t, "Internal Medicine", doctor["departmentName"])
	assert.Equal(t, "Available Today", doctor["availabilityToday"].(map[string]any)["status"])

	rec = do(e, http.MethodGet, "/api/doctors/1/availability", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "wednesday", decode(t, rec)["weekday"])

	rec = do(e, http.MethodGet, "/api/departments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	deps := decode(t, rec)["departments"].([]any)
	require.Len(t, deps, 1)
	assert.EqualValues(t, 1, deps[0].(map[string]any)["doctorCount"])

	rec = do(e, http.MethodGet, "/api/departments/1/doctors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["doctors"], 1)

	rec = do(e, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.EqualValues(t, 2, stats["totalPatients"])
	assert.EqualValues(t, 1, stats["todayAppointments"])

	rec = do(e, http.MethodGet, "/api/appointments/options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "In Progress", decode(t, rec)["statuses"].(map[string]any)["in-progress"])
}

func TestUnknownAPIPath(t *testing.T) {
	e := newTestServer(t, false)

	rec := do(e, http.MethodGet, "/api/wards", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not_found", body["error"])
	assert.Equal(t, "Record not found", body["message"])
}
