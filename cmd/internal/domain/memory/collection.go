// Package memory is the in-process record store. Every repository owns its
// records; nothing is shared between instances, so each test or process
// builds its own.
package memory

import (
	"context"
	"medicore/cmd/internal/domain/entity"
	"medicore/cmd/internal/utils"
	"sync"
)

type record interface {
	entity.Patient | entity.Doctor | entity.Department | entity.Appointment
}

type collection[T record] struct {
	mu      sync.RWMutex
	records []*T
	idOf    func(*T) int
	setID   func(*T, int)
	clone   func(*T) *T
}

func (c *collection[T]) all(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*T, 0, len(c.records))
	for _, r := range c.records {
		if keep == nil || keep(r) {
			out = append(out, c.clone(r))
		}
	}
	return out, nil
}

func (c *collection[T]) get(ctx context.Context, id int) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil, entity.ErrNotFound
	}
	return c.clone(c.records[i]), nil
}

// insert assigns max(id)+1 and stores a copy of rec.
func (c *collection[T]) insert(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	maxID := 0
	for _, r := range c.records {
		if id := c.idOf(r); id > maxID {
			maxID = id
		}
	}
	c.setID(rec, maxID+1)
	c.records = append(c.records, c.clone(rec))
	return nil
}

func (c *collection[T]) patch(ctx context.Context, id int, fields map[string]any) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil, entity.ErrNotFound
	}

	merged := c.clone(c.records[i])
	if err := utils.Merge(merged, fields); err != nil {
		return nil, err
	}
	c.records[i] = merged
	return c.clone(merged), nil
}

func (c *collection[T]) remove(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return entity.ErrNotFound
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	return nil
}

func (c *collection[T]) indexOf(id int) int {
	for i, r := range c.records {
		if c.idOf(r) == id {
			return i
		}
	}
	return -1
}
