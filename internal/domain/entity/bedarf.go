package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bedarf demanda de personal publicada por un Betrieb.
type Bedarf struct {
	ID               string
	BetriebID        string
	Titel            string
	Beschreibung     string
	DatumVon         time.Time
	DatumBis         time.Time
	ZimmermannAnzahl int
	HolzbauAnzahl    int
	StundenProTag    int
	Stundenlohn      *decimal.Decimal // nil = a convenir
	Qualifikationen  []string
	MitWerkzeug      bool
	MitFahrzeug      bool
	Adresse          string
	Status           BedarfStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AnzahlArbeiter total de trabajadores pedidos.
func (b *Bedarf) AnzahlArbeiter() int {
	return b.ZimmermannAnzahl + b.HolzbauAnzahl
}

// Clone copia profunda; los repositorios en memoria no comparten slices ni punteros.
func (b *Bedarf) Clone() *Bedarf {
	c := *b
	if b.Stundenlohn != nil {
		lohn := *b.Stundenlohn
		c.Stundenlohn = &lohn
	}
	c.Qualifikationen = append([]string(nil), b.Qualifikationen...)
	return &c
}
