package repository

import (
	"context"
	"medicore/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultAppointmentRepository struct {
	table[entity.Appointment]
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{table[entity.Appointment]{db: db}}
}

// FindAll returns flat records: references are bare ids.
func (a *DefaultAppointmentRepository) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	return a.findAll(ctx, "date asc, time asc")
}

// FindByID returns the appointment with its patient, doctor and department
// populated, so references come back embedded.
func (a *DefaultAppointmentRepository) FindByID(ctx context.Context, id int) (*entity.Appointment, error) {
	return a.findByID(ctx, id, "Patient", "Doctor", "Department")
}

func (a *DefaultAppointmentRepository) FindByDate(ctx context.Context, date string) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time asc").
		Find(&appts).Error
	return appts, err
}

// FindBetween finds appointments dated within [from, to], both inclusive.
func (a *DefaultAppointmentRepository) FindBetween(ctx context.Context, from, to string) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.WithContext(ctx).
		Where("date >= ?", from).
		Where("date <= ?", to).
		Order("date asc, time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return a.create(ctx, appointment)
}

func (a *DefaultAppointmentRepository) Update(ctx context.Context, id int, fields map[string]any) (*entity.Appointment, error) {
	return a.update(ctx, id, fields)
}

// UpdateStatus writes the status column and nothing else.
func (a *DefaultAppointmentRepository) UpdateStatus(ctx context.Context, id int, status entity.AppointmentStatus) (*entity.Appointment, error) {
	res := a.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if res.Error != nil {
		return nil, res.Error
	}

	return a.findByID(ctx, id)
}

func (a *DefaultAppointmentRepository) Delete(ctx context.Context, id int) error {
	return a.delete(ctx, id)
}
