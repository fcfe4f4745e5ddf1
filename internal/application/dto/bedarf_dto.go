package dto

import (
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

func init() {
	// El backend espera stundenlohn como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Bedarf salida de un Bedarf (demanda de personal).
type Bedarf struct {
	ID               string              `json:"id,omitempty"`
	BetriebID        string              `json:"betriebId"`
	BetriebName      string              `json:"betriebName,omitempty"`
	Titel            string              `json:"titel,omitempty"`
	Beschreibung     string              `json:"beschreibung,omitempty"`
	DatumVon         Date                `json:"datumVon"`
	DatumBis         Date                `json:"datumBis"`
	ZimmermannAnzahl int                 `json:"zimmermannAnzahl"`
	HolzbauAnzahl    int                 `json:"holzbauAnzahl"`
	AnzahlArbeiter   int                 `json:"anzahlArbeiter"`
	StundenProTag    int                 `json:"stundenProTag,omitempty"`
	Stundenlohn      *decimal.Decimal    `json:"stundenlohn,omitempty"`
	Qualifikationen  []string            `json:"qualifikationen,omitempty"`
	MitWerkzeug      bool                `json:"mitWerkzeug"`
	MitFahrzeug      bool                `json:"mitFahrzeug"`
	Adresse          string              `json:"adresse"`
	Status           entity.BedarfStatus `json:"status"`
	CreatedAt        Timestamp           `json:"createdAt"`
	UpdatedAt        Timestamp           `json:"updatedAt"`
}

// BedarfCreateRequest entrada para crear un Bedarf.
type BedarfCreateRequest struct {
	BetriebID        string           `json:"betriebId,omitempty"`
	Titel            string           `json:"titel,omitempty" validate:"required,min=3"`
	Beschreibung     string           `json:"beschreibung,omitempty"`
	DatumVon         Date             `json:"datumVon"`
	DatumBis         Date             `json:"datumBis"`
	ZimmermannAnzahl int              `json:"zimmermannAnzahl" validate:"min=0"`
	HolzbauAnzahl    int              `json:"holzbauAnzahl" validate:"min=0"`
	AnzahlArbeiter   int              `json:"anzahlArbeiter"`
	StundenProTag    int              `json:"stundenProTag,omitempty" validate:"omitempty,min=1,max=12"`
	Stundenlohn      *decimal.Decimal `json:"stundenlohn,omitempty" validate:"omitempty,gte=0"`
	Qualifikationen  []string         `json:"qualifikationen"`
	MitWerkzeug      bool             `json:"mitWerkzeug"`
	MitFahrzeug      bool             `json:"mitFahrzeug"`
	Adresse          string           `json:"adresse" validate:"required"`
}

// BedarfUpdateRequest entrada para la actualización completa (PUT) de un Bedarf.
type BedarfUpdateRequest struct {
	Titel            string           `json:"titel,omitempty" validate:"required,min=3"`
	Beschreibung     string           `json:"beschreibung,omitempty"`
	DatumVon         Date             `json:"datumVon"`
	DatumBis         Date             `json:"datumBis"`
	ZimmermannAnzahl int              `json:"zimmermannAnzahl" validate:"min=0"`
	HolzbauAnzahl    int              `json:"holzbauAnzahl" validate:"min=0"`
	AnzahlArbeiter   int              `json:"anzahlArbeiter"`
	StundenProTag    int              `json:"stundenProTag,omitempty" validate:"omitempty,min=1,max=12"`
	Stundenlohn      *decimal.Decimal `json:"stundenlohn,omitempty" validate:"omitempty,gte=0"`
	Qualifikationen  []string         `json:"qualifikationen"`
	MitWerkzeug      bool             `json:"mitWerkzeug"`
	MitFahrzeug      bool             `json:"mitFahrzeug"`
	Adresse          string           `json:"adresse,omitempty" validate:"required"`
}

// BedarfStatusUpdate entrada para PATCH /bedarfe/{id}/status.
type BedarfStatusUpdate struct {
	Status entity.BedarfStatus `json:"status"`
}

// BedarfSearchParams filtros opcionales del listado. Los campos nil/vacíos no se envían.
type BedarfSearchParams struct {
	Page            *int
	Size            *int
	Sort            string
	Titel           string
	Standort        string
	MinStundenlohn  *decimal.Decimal
	MaxStundenlohn  *decimal.Decimal
	Qualifikationen []string
	Status          entity.BedarfStatus
}

// Values construye los query params; las listas repiten la clave.
func (p *BedarfSearchParams) Values() url.Values {
	q := queryBuilder{url.Values{}}
	if p == nil {
		return q.v
	}
	q.int("page", p.Page)
	q.int("size", p.Size)
	q.str("sort", p.Sort)
	q.str("titel", p.Titel)
	q.str("standort", p.Standort)
	q.decimal("minStundenlohn", p.MinStundenlohn)
	q.decimal("maxStundenlohn", p.MaxStundenlohn)
	q.list("qualifikationen", p.Qualifikationen)
	q.str("status", string(p.Status))
	return q.v
}
