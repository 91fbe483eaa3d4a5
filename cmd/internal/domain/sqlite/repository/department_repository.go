package repository

import (
	"context"
	"medicore/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultDepartmentRepository struct {
	table[entity.Department]
}

func NewDepartmentRepository(db *gorm.DB) *DefaultDepartmentRepository {
	return &DefaultDepartmentRepository{table[entity.Department]{db: db}}
}

func (d *DefaultDepartmentRepository) FindAll(ctx context.Context) ([]*entity.Department, error) {
	return d.findAll(ctx, "id asc")
}

func (d *DefaultDepartmentRepository) FindByID(ctx context.Context, id int) (*entity.Department, error) {
	return d.findByID(ctx, id)
}

func (d *DefaultDepartmentRepository) Create(ctx context.Context, department *entity.Department) error {
	return d.create(ctx, department)
}

func (d *DefaultDepartmentRepository) Update(ctx context.Context, id int, fields map[string]any) (*entity.Department, error) {
	return d.update(ctx, id, fields)
}

func (d *DefaultDepartmentRepository) Delete(ctx context.Context, id int) error {
	return d.delete(ctx, id)
}
