package repository

import (
	"context"
	"medicore/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultDoctorRepository struct {
	table[entity.Doctor]
}

func NewDoctorRepository(db *gorm.DB) *DefaultDoctorRepository {
	return &DefaultDoctorRepository{table[entity.Doctor]{db: db}}
}

func (d *DefaultDoctorRepository) FindAll(ctx context.Context) ([]*entity.Doctor, error) {
	return d.findAll(ctx, "id asc")
}

// FindByID also loads the doctor's department, so the returned record
// carries an embedded department reference.
func (d *DefaultDoctorRepository) FindByID(ctx context.Context, id int) (*entity.Doctor, error) {
	return d.findByID(ctx, id, "Department")
}

func (d *DefaultDoctorRepository) FindByDepartment(ctx context.Context, departmentID int) ([]*entity.Doctor, error) {
	var doctors []*entity.Doctor
	err := d.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("id asc").
		Find(&doctors).Error
	return doctors, err
}

func (d *DefaultDoctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	return d.create(ctx, doctor)
}

func (d *DefaultDoctorRepository) Update(ctx context.Context, id int, fields map[string]any) (*entity.Doctor, error) {
	return d.update(ctx, id, fields)
}

func (d *DefaultDoctorRepository) Delete(ctx context.Context, id int) error {
	return d.delete(ctx, id)
}
