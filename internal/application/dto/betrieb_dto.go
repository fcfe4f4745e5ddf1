package dto

import (
	"net/url"

	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

// Betrieb salida de un Betrieb (empresa registrada).
type Betrieb struct {
	ID        string               `json:"id,omitempty"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Telefon   string               `json:"telefon,omitempty"`
	Adresse   string               `json:"adresse"`
	Status    entity.BetriebStatus `json:"status"`
	CreatedAt Timestamp            `json:"createdAt"`
	UpdatedAt Timestamp            `json:"updatedAt"`
}

// BetriebCreateRequest entrada para crear un Betrieb.
type BetriebCreateRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Telefon string `json:"telefon,omitempty" validate:"phone"`
	Adresse string `json:"adresse" validate:"required"`
}

// BetriebUpdateRequest entrada para la actualización (PUT) de un Betrieb.
type BetriebUpdateRequest struct {
	Name    string `json:"name,omitempty" validate:"omitempty,min=2"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Telefon string `json:"telefon,omitempty" validate:"phone"`
	Adresse string `json:"adresse,omitempty"`
}

// BetriebStatusUpdate entrada para PATCH /betriebe/{id}/status.
type BetriebStatusUpdate struct {
	Status entity.BetriebStatus `json:"status"`
}

// BetriebSearchParams filtros opcionales del listado de Betriebe.
type BetriebSearchParams struct {
	Page   *int
	Size   *int
	Sort   string
	Name   string
	Status entity.BetriebStatus
}

// Values construye los query params.
func (p *BetriebSearchParams) Values() url.Values {
	q := queryBuilder{url.Values{}}
	if p == nil {
		return q.v
	}
	q.int("page", p.Page)
	q.int("size", p.Size)
	q.str("sort", p.Sort)
	q.str("name", p.Name)
	q.str("status", string(p.Status))
	return q.v
}
