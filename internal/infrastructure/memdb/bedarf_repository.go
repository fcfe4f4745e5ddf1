package memdb

import (
	"slices"
	"strings"

	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/domain/repository"
)

var _ repository.BedarfRepository = (*BedarfRepo)(nil)

// BedarfRepo Bedarfe en memoria.
type BedarfRepo struct {
	t *table[entity.Bedarf]
}

// NewBedarfRepository construye un repositorio vacío.
func NewBedarfRepository() *BedarfRepo {
	return &BedarfRepo{t: newTable((*entity.Bedarf).Clone)}
}

// Create persiste un Bedarf nuevo.
func (r *BedarfRepo) Create(b *entity.Bedarf) error { return r.t.insert(b.ID, b) }

// GetByID obtiene un Bedarf por ID.
func (r *BedarfRepo) GetByID(id string) (*entity.Bedarf, error) { return r.t.get(id), nil }

// Update reemplaza el registro; ErrNotFound si no existe.
func (r *BedarfRepo) Update(b *entity.Bedarf) error { return r.t.replace(b.ID, b) }

// Delete elimina por ID; ErrNotFound si no existe.
func (r *BedarfRepo) Delete(id string) error { return r.t.remove(id) }

// DeleteByBetrieb elimina los Bedarfe del Betrieb.
func (r *BedarfRepo) DeleteByBetrieb(betriebID string) (int, error) {
	return r.t.removeWhere(func(b *entity.Bedarf) bool { return b.BetriebID == betriebID }), nil
}

// List aplica todos los criterios de f.
func (r *BedarfRepo) List(f repository.BedarfFilter) ([]*entity.Bedarf, error) {
	return r.t.scan(func(b *entity.Bedarf) bool { return matches(b, f) }), nil
}

func matches(b *entity.Bedarf, f repository.BedarfFilter) bool {
	switch {
	case f.BetriebID != "" && b.BetriebID != f.BetriebID:
		return false
	case f.Status != "" && b.Status != f.Status:
		return false
	case !containsFold(b.Titel, f.Titel):
		return false
	case !containsFold(b.Adresse, f.Standort):
		return false
	}
	if f.MinStundenlohn != nil && (b.Stundenlohn == nil || b.Stundenlohn.LessThan(*f.MinStundenlohn)) {
		return false
	}
	if f.MaxStundenlohn != nil && (b.Stundenlohn == nil || b.Stundenlohn.GreaterThan(*f.MaxStundenlohn)) {
		return false
	}
	for _, q := range f.Qualifikationen {
		if !slices.ContainsFunc(b.Qualifikationen, func(have string) bool { return strings.EqualFold(have, q) }) {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
