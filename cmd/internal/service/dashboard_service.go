package service

import (
	"context"
	"medicore/cmd/internal/calendar"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/utils/apierror"
)

type DashboardStats struct {
	Date              string                 `json:"date"`
	TotalPatients     int                    `json:"totalPatients"`
	TotalDoctors      int                    `json:"totalDoctors"`
	TodayAppointments int                    `json:"todayAppointments"`
	InProgress        int                    `json:"inProgress"`
	Upcoming          int                    `json:"upcoming"`
	Today             []*AppointmentResponse `json:"today"`
}

type DefaultDashboardService struct {
	Repos *Repositories
	Clock Clock
}

func NewDashboardService(repos *Repositories, clock Clock) *DefaultDashboardService {
	return &DefaultDashboardService{Repos: repos, Clock: clock}
}

// GetStats loads patients, doctors, today's appointments and the full
// appointment list at once. Any failed fetch fails the whole view.
func (d *DefaultDashboardService) GetStats(ctx context.Context) (*DashboardStats, apierror.ErrorResponse) {
	today := d.Clock.today()

	var all []*entity.Appointment
	snap, apierr := loadBatch(ctx, "dashboard",
		withPatients(d.Repos),
		withDoctors(d.Repos),
		withAppointments(func(ctx context.Context) ([]*entity.Appointment, error) {
			return d.Repos.Appointments.FindByDate(ctx, today)
		}),
		func(ctx context.Context, _ *snapshot) (err error) {
			all, err = d.Repos.Appointments.FindAll(ctx)
			return err
		},
	)
	if apierr != nil {
		return nil, apierr
	}

	inProgress := 0
	for _, a := range all {
		if a.Status == entity.StatusInProgress {
			inProgress++
		}
	}

	todays := calendar.Filter(snap.Appointments, calendar.DayWindow(d.Clock()))
	// upcoming: today's appointments not yet completed or cancelled
	upcoming := 0
	for _, a := range todays {
		if !a.Status.Terminal() {
			upcoming++
		}
	}
	return &DashboardStats{
		Date:              today,
		TotalPatients:     len(snap.Patients),
		TotalDoctors:      len(snap.Doctors),
		TodayAppointments: len(todays),
		InProgress:        inProgress,
		Upcoming:          upcoming,
		Today:             toAppointmentResponses(todays, snap.directory()),
	}, nil
}
