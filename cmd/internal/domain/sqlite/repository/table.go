package repository

import (
	"context"
	"errors"
	"fmt"
	"medicore/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// table holds the CRUD round trips shared by every collection. Each call
// hits the database; nothing is cached between calls.
type table[T any] struct {
	db *gorm.DB
}

func (t table[T]) findAll(ctx context.Context, order string) ([]*T, error) {
	var recs []*T
	err := t.db.WithContext(ctx).Order(order).Find(&recs).Error
	return recs, err
}

func (t table[T]) findByID(ctx context.Context, id int, preload ...string) (*T, error) {
	var rec T
	q := t.db.WithContext(ctx)
	for _, rel := range preload {
		q = q.Preload(rel)
	}
	err := q.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (t table[T]) create(ctx context.Context, rec *T) error {
	return t.db.WithContext(ctx).Create(rec).Error
}

// update overwrites only the given fields, keyed by struct field name, and
// returns the merged record.
func (t table[T]) update(ctx context.Context, id int, fields map[string]any) (*T, error) {
	var rec T
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&rec).Updates(fields).Error; err != nil {
			return fmt.Errorf("update %d: %w", id, err)
		}
		return tx.First(&rec, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (t table[T]) delete(ctx context.Context, id int) error {
	res := t.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
