package memdb

import (
	"strings"

	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/domain/repository"
)

var _ repository.BetriebRepository = (*BetriebRepo)(nil)

// BetriebRepo Betriebe en memoria.
type BetriebRepo struct {
	t *table[entity.Betrieb]
}

// NewBetriebRepository construye un repositorio vacío.
func NewBetriebRepository() *BetriebRepo {
	return &BetriebRepo{t: newTable(cloneBetrieb)}
}

// Create persiste un Betrieb nuevo.
func (r *BetriebRepo) Create(b *entity.Betrieb) error { return r.t.insert(b.ID, b) }

// GetByID obtiene un Betrieb por ID.
func (r *BetriebRepo) GetByID(id string) (*entity.Betrieb, error) { return r.t.get(id), nil }

// Update reemplaza el registro; ErrNotFound si no existe.
func (r *BetriebRepo) Update(b *entity.Betrieb) error { return r.t.replace(b.ID, b) }

// Delete elimina por ID; ErrNotFound si no existe.
func (r *BetriebRepo) Delete(id string) error { return r.t.remove(id) }

// List filtra por nombre y estado.
func (r *BetriebRepo) List(f repository.BetriebFilter) ([]*entity.Betrieb, error) {
	name := strings.ToLower(f.Name)
	return r.t.scan(func(b *entity.Betrieb) bool {
		if name != "" && !strings.Contains(strings.ToLower(b.Name), name) {
			return false
		}
		return f.Status == "" || b.Status == f.Status
	}), nil
}

func cloneBetrieb(b *entity.Betrieb) *entity.Betrieb {
	c := *b
	return &c
}
