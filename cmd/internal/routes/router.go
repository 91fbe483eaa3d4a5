package routes

import (
	"net/http"

	"medicore/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type Routes struct {
	Patients     *DefaultPatientRoute
	Doctors      *DefaultDoctorRoute
	Departments  *DefaultDepartmentRoute
	Appointments *DefaultAppointmentRoute
	Dashboard    *DefaultDashboardRoute
}

func (r *Routes) Register(e *echo.Echo) {
	api := e.Group("/api")

	// Patients
	api.GET("/patients", r.Patients.GetPatients)
	api.POST("/patients", r.Patients.CreatePatient)
	api.GET("/patients/:id", r.Patients.GetPatient)
	api.PATCH("/patients/:id", r.Patients.UpdatePatient)
	api.DELETE("/patients/:id", r.Patients.DeletePatient)

	// Doctors
	api.GET("/doctors", r.Doctors.GetDoctors)
	api.POST("/doctors", r.Doctors.CreateDoctor)
	api.GET("/doctors/:id", r.Doctors.GetDoctor)
	api.GET("/doctors/:id/availability", r.Doctors.GetAvailability)
	api.PATCH("/doctors/:id", r.Doctors.UpdateDoctor)
	api.DELETE("/doctors/:id", r.Doctors.DeleteDoctor)

	// Departments
	api.GET("/departments", r.Departments.GetDepartments)
	api.POST("/departments", r.Departments.CreateDepartment)
	api.GET("/departments/:id", r.Departments.GetDepartment)
	api.GET("/departments/:id/doctors", r.Departments.GetDepartmentDoctors)
	api.PATCH("/departments/:id", r.Departments.UpdateDepartment)
	api.DELETE("/departments/:id", r.Departments.DeleteDepartment)

	// Appointments
	api.GET("/appointments", r.Appointments.GetAppointments)
	api.POST("/appointments", r.Appointments.CreateAppointment)
	api.GET("/appointments/today", r.Appointments.GetToday)
	api.GET("/appointments/options", r.Appointments.GetOptions)
	api.POST("/appointments/validate", r.Appointments.ValidateAppointment)
	api.POST("/appointments/bulk", r.Appointments.BulkCreate)
	api.PATCH("/appointments/bulk", r.Appointments.BulkUpdate)
	api.GET("/appointments/:id", r.Appointments.GetAppointment)
	api.PATCH("/appointments/:id", r.Appointments.UpdateAppointment)
	api.DELETE("/appointments/:id", r.Appointments.DeleteAppointment)
	api.PATCH("/appointments/:id/status", r.Appointments.UpdateStatus)
	api.POST("/appointments/:id/start", r.Appointments.StartAppointment)
	api.POST("/appointments/:id/complete", r.Appointments.CompleteAppointment)
	api.POST("/appointments/:id/cancel", r.Appointments.CancelAppointment)

	// Pseudo-entity "Calendar": the day or week view of the schedule
	api.GET("/calendar", r.Appointments.GetCalendar)
	api.GET("/dashboard", r.Dashboard.GetDashboard)

	api.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, apierror.NotFoundError)
	})
}
