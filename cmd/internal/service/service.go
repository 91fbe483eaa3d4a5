package service

import (
	"context"
	"errors"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/resolver"
	"medicore/cmd/internal/utils"
	"medicore/cmd/internal/utils/apierror"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

// Clock returns the current time in the zone that decides what "today" is.
type Clock func() time.Time

func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

func (c Clock) today() string {
	return utils.FormatDate(c())
}

// fromStoreError turns a record store failure into what the caller shows:
// a not-found for vanished records, a generic store error otherwise.
func fromStoreError(err error, kind, action string, id int) apierror.ErrorResponse {
	if errors.Is(err, entity.ErrNotFound) {
		return apierror.NewNotFound(kind)
	}
	if id > 0 {
		log.Errorf("failed to %s %s %d: %v", action, strings.ToLower(kind), id, err)
	} else {
		log.Errorf("failed to %s %s: %v", action, strings.ToLower(kind), err)
	}
	return apierror.InternalServerError
}

// snapshot is one view's worth of collections, loaded together.
type snapshot struct {
	Patients     []*entity.Patient
	Doctors      []*entity.Doctor
	Departments  []*entity.Department
	Appointments []*entity.Appointment
}

func (s *snapshot) directory() *resolver.Directory {
	return resolver.New(s.Patients, s.Doctors, s.Departments)
}

type fetch func(ctx context.Context, s *snapshot) error

func withPatients(r *Repositories) fetch {
	return func(ctx context.Context, s *snapshot) (err error) {
		s.Patients, err = r.Patients.FindAll(ctx)
		return err
	}
}

func withDoctors(r *Repositories) fetch {
	return func(ctx context.Context, s *snapshot) (err error) {
		s.Doctors, err = r.Doctors.FindAll(ctx)
		return err
	}
}

func withDepartments(r *Repositories) fetch {
	return func(ctx context.Context, s *snapshot) (err error) {
		s.Departments, err = r.Departments.FindAll(ctx)
		return err
	}
}

func withAppointments(load func(ctx context.Context) ([]*entity.Appointment, error)) fetch {
	return func(ctx context.Context, s *snapshot) (err error) {
		s.Appointments, err = load(ctx)
		return err
	}
}

// loadBatch issues every fetch concurrently. If any one fails the whole
// batch fails and no partial snapshot is returned.
func loadBatch(ctx context.Context, view string, fetches ...fetch) (*snapshot, apierror.ErrorResponse) {
	s := &snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range fetches {
		g.Go(func() error { return f(gctx, s) })
	}
	if err := g.Wait(); err != nil {
		log.Errorf("failed to load %s data: %v", view, err)
		return nil, apierror.InternalServerError
	}
	return s, nil
}
