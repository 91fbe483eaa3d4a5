package repository

import (
	"context"
	"medicore/cmd/internal/domain/entity"
	"strings"

	"gorm.io/gorm"
)

type DefaultPatientRepository struct {
	table[entity.Patient]
}

func NewPatientRepository(db *gorm.DB) *DefaultPatientRepository {
	return &DefaultPatientRepository{table[entity.Patient]{db: db}}
}

func (p *DefaultPatientRepository) FindAll(ctx context.Context) ([]*entity.Patient, error) {
	return p.findAll(ctx, "id asc")
}

func (p *DefaultPatientRepository) FindByID(ctx context.Context, id int) (*entity.Patient, error) {
	return p.findByID(ctx, id)
}

func (p *DefaultPatientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return p.create(ctx, patient)
}

func (p *DefaultPatientRepository) Update(ctx context.Context, id int, fields map[string]any) (*entity.Patient, error) {
	return p.update(ctx, id, fields)
}

func (p *DefaultPatientRepository) Delete(ctx context.Context, id int) error {
	return p.delete(ctx, id)
}

// Search matches the query against name and email case-insensitively and
// against phone as typed. A blank query returns every patient.
func (p *DefaultPatientRepository) Search(ctx context.Context, query string) ([]*entity.Patient, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return p.FindAll(ctx)
	}

	like := "%" + escapeLike(term) + "%"
	var patients []*entity.Patient
	err := p.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, like).
		Or(`phone LIKE ? ESCAPE '\'`, like).
		Or(`LOWER(email) LIKE ? ESCAPE '\'`, like).
		Order("id asc").
		Find(&patients).Error
	return patients, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
