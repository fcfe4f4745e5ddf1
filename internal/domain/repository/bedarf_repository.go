package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

// BedarfFilter criterios del listado; los campos vacíos o nil no filtran.
type BedarfFilter struct {
	BetriebID       string
	Titel           string // contiene, sin distinguir mayúsculas
	Standort        string // contiene en la dirección
	MinStundenlohn  *decimal.Decimal
	MaxStundenlohn  *decimal.Decimal
	Qualifikationen []string // el Bedarf debe tenerlas todas
	Status          entity.BedarfStatus
}

// BedarfRepository define el puerto de persistencia para Bedarf (DIP).
type BedarfRepository interface {
	Create(b *entity.Bedarf) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(id string) (*entity.Bedarf, error)
	Update(b *entity.Bedarf) error
	Delete(id string) error
	// DeleteByBetrieb borra todos los Bedarfe de un Betrieb y devuelve cuántos.
	DeleteByBetrieb(betriebID string) (int, error)
	// List devuelve los registros en orden de alta.
	List(f BedarfFilter) ([]*entity.Bedarf, error)
}
