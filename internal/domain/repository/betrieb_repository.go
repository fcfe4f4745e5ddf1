package repository

import "github.com/jhoicas/bau-portal/internal/domain/entity"

// BetriebFilter criterios del listado; los campos vacíos no filtran.
type BetriebFilter struct {
	Name   string // contiene, sin distinguir mayúsculas
	Status entity.BetriebStatus
}

// BetriebRepository define el puerto de persistencia para Betrieb (DIP).
type BetriebRepository interface {
	Create(b *entity.Betrieb) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(id string) (*entity.Betrieb, error)
	Update(b *entity.Betrieb) error
	Delete(id string) error
	// List devuelve los registros en orden de alta.
	List(f BetriebFilter) ([]*entity.Betrieb, error)
}
