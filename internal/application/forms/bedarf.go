package forms

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

// DefaultStundenProTag valor inicial de horas por día.
const DefaultStundenProTag = 8

// BedarfForm campos editables de un Bedarf. BetriebID solo lo usa un ADMIN que
// crea en nombre de un Betrieb.
type BedarfForm struct {
	BetriebID        string           `json:"betriebId"`
	Titel            string           `json:"titel" validate:"required,min=3"`
	Beschreibung     string           `json:"beschreibung"`
	Adresse          string           `json:"adresse" validate:"required"`
	DatumVon         time.Time        `json:"datumVon" validate:"required"`
	DatumBis         time.Time        `json:"datumBis" validate:"required,gtefield=DatumVon"`
	StundenProTag    int              `json:"stundenProTag" validate:"min=1,max=12"`
	Stundenlohn      *decimal.Decimal `json:"stundenlohn" validate:"omitempty,gte=0"`
	ZimmermannAnzahl int              `json:"zimmermannAnzahl" validate:"min=0"`
	HolzbauAnzahl    int              `json:"holzbauAnzahl" validate:"min=0"`
	MitWerkzeug      bool             `json:"mitWerkzeug"`
	MitFahrzeug      bool             `json:"mitFahrzeug"`
}

// NewBedarfForm formulario con los valores por defecto.
func NewBedarfForm() BedarfForm {
	return BedarfForm{StundenProTag: DefaultStundenProTag}
}

// BedarfFormFrom rellena el formulario a partir de un registro.
func BedarfFormFrom(b *dto.Bedarf) BedarfForm {
	f := BedarfForm{
		BetriebID:        b.BetriebID,
		Titel:            b.Titel,
		Beschreibung:     b.Beschreibung,
		Adresse:          b.Adresse,
		DatumVon:         b.DatumVon.Time,
		DatumBis:         b.DatumBis.Time,
		StundenProTag:    b.StundenProTag,
		ZimmermannAnzahl: b.ZimmermannAnzahl,
		HolzbauAnzahl:    b.HolzbauAnzahl,
		MitWerkzeug:      b.MitWerkzeug,
		MitFahrzeug:      b.MitFahrzeug,
	}
	if f.StundenProTag == 0 {
		f.StundenProTag = DefaultStundenProTag
	}
	if b.Stundenlohn != nil {
		lohn := *b.Stundenlohn
		f.Stundenlohn = &lohn
	}
	return f
}

// AnzahlArbeiter suma de ambas categorías.
func (f *BedarfForm) AnzahlArbeiter() int {
	return f.ZimmermannAnzahl + f.HolzbauAnzahl
}

// Qualifikationen la descripción separada por comas, sin espacios ni vacíos.
func (f *BedarfForm) Qualifikationen() []string {
	out := []string{}
	for _, part := range strings.Split(f.Beschreibung, ",") {
		if q := strings.TrimSpace(part); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// CreateRequest payload de alta para betriebID.
func (f *BedarfForm) CreateRequest(betriebID string) dto.BedarfCreateRequest {
	return dto.BedarfCreateRequest{
		BetriebID:        betriebID,
		Titel:            f.Titel,
		Beschreibung:     f.Beschreibung,
		DatumVon:         dto.NewDate(f.DatumVon),
		DatumBis:         dto.NewDate(f.DatumBis),
		ZimmermannAnzahl: f.ZimmermannAnzahl,
		HolzbauAnzahl:    f.HolzbauAnzahl,
		AnzahlArbeiter:   f.AnzahlArbeiter(),
		StundenProTag:    f.StundenProTag,
		Stundenlohn:      f.Stundenlohn,
		Qualifikationen:  f.Qualifikationen(),
		MitWerkzeug:      f.MitWerkzeug,
		MitFahrzeug:      f.MitFahrzeug,
		Adresse:          f.Adresse,
	}
}

// UpdateRequest payload de actualización.
func (f *BedarfForm) UpdateRequest() dto.BedarfUpdateRequest {
	return dto.BedarfUpdateRequest{
		Titel:            f.Titel,
		Beschreibung:     f.Beschreibung,
		DatumVon:         dto.NewDate(f.DatumVon),
		DatumBis:         dto.NewDate(f.DatumBis),
		ZimmermannAnzahl: f.ZimmermannAnzahl,
		HolzbauAnzahl:    f.HolzbauAnzahl,
		AnzahlArbeiter:   f.AnzahlArbeiter(),
		StundenProTag:    f.StundenProTag,
		Stundenlohn:      f.Stundenlohn,
		Qualifikationen:  f.Qualifikationen(),
		MitWerkzeug:      f.MitWerkzeug,
		MitFahrzeug:      f.MitFahrzeug,
		Adresse:          f.Adresse,
	}
}

// CanEditBedarf ADMIN edita todo; BETRIEB solo los Bedarfe de su Betrieb.
func CanEditBedarf(id *entity.Identity, b *dto.Bedarf) bool {
	switch {
	case id.IsAdmin():
		return true
	case id.IsBetrieb():
		return id.BetriebID != "" && id.BetriebID == b.BetriebID
	default:
		return false
	}
}

// ActiveBedarfe filtra los Bedarfe en estado AKTIV.
func ActiveBedarfe(items []dto.Bedarf) []dto.Bedarf {
	out := make([]dto.Bedarf, 0, len(items))
	for _, b := range items {
		if b.Status == entity.BedarfAktiv {
			out = append(out, b)
		}
	}
	return out
}

var bedarfMessages = Messages{
	LoadFailed:   "Fehler beim Laden der Bedarfe",
	Created:      "Bedarf erfolgreich erstellt",
	CreateFailed: "Fehler beim Erstellen des Bedarfs",
	Updated:      "Bedarf erfolgreich aktualisiert",
	UpdateFailed: "Fehler beim Aktualisieren des Bedarfs",
	Deleted:      "Bedarf erfolgreich gelöscht",
	DeleteFailed: "Fehler beim Löschen des Bedarfs",
	StatusFailed: "Fehler beim Ändern des Status",
	StatusChanged: func(activated bool) string {
		if activated {
			return "Bedarf aktiviert"
		}
		return "Bedarf deaktiviert"
	},
	ConfirmDelete: func(label string) string {
		return fmt.Sprintf("Möchten Sie den Bedarf %q wirklich löschen?", label)
	},
	SuccessDuration: 3 * time.Second,
}

// BedarfController controlador de la pantalla de Bedarfe.
type BedarfController struct {
	*Controller[dto.Bedarf, BedarfForm]
	binding *bedarfBinding
}

// NewBedarfController construye el controlador sobre el servicio y la sesión.
func NewBedarfController(svc ports.BedarfAPI, ids ports.IdentitySource, opts Options) *BedarfController {
	b := &bedarfBinding{api: svc, ids: ids}
	return &BedarfController{Controller: New[dto.Bedarf, BedarfForm](b, opts), binding: b}
}

// SetFilter fija los filtros de Load. betriebID != "" lista solo los de ese Betrieb.
func (c *BedarfController) SetFilter(betriebID string, params *dto.BedarfSearchParams) {
	c.binding.setFilter(betriebID, params)
}

// CanEdit indica si la identidad efectiva puede editar b.
func (c *BedarfController) CanEdit(b dto.Bedarf) bool {
	return CanEditBedarf(c.binding.ids.EffectiveIdentity(), &b)
}

type bedarfBinding struct {
	api ports.BedarfAPI
	ids ports.IdentitySource

	mu        sync.Mutex
	betriebID string
	params    *dto.BedarfSearchParams
}

var _ Binding[dto.Bedarf, BedarfForm] = (*bedarfBinding)(nil)

func (b *bedarfBinding) setFilter(betriebID string, params *dto.BedarfSearchParams) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.betriebID, b.params = betriebID, params
}

func (b *bedarfBinding) List(ctx context.Context) ([]dto.Bedarf, error) {
	b.mu.Lock()
	betriebID, params := b.betriebID, b.params
	b.mu.Unlock()

	var (
		page *dto.Page[dto.Bedarf]
		err  error
	)
	if betriebID != "" {
		page, err = b.api.ListByBetrieb(ctx, betriebID, params)
	} else {
		page, err = b.api.List(ctx, params)
	}
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

func (b *bedarfBinding) Create(ctx context.Context, f *BedarfForm) error {
	id := b.ids.EffectiveIdentity()
	if id == nil {
		return refuse(domain.ErrNotAuthenticated, "Benutzer nicht authentifiziert")
	}
	betriebID := id.BetriebID
	if id.IsAdmin() && f.BetriebID != "" {
		betriebID = f.BetriebID
	}
	if betriebID == "" {
		return refuse(domain.ErrValidation, "Bitte wählen Sie einen Betrieb aus")
	}
	_, err := b.api.Create(ctx, f.CreateRequest(betriebID))
	return err
}

func (b *bedarfBinding) Update(ctx context.Context, rec *dto.Bedarf, f *BedarfForm) error {
	_, err := b.api.Update(ctx, rec.ID, f.UpdateRequest())
	return err
}

func (b *bedarfBinding) ToggleStatus(ctx context.Context, rec *dto.Bedarf) (bool, error) {
	next, ok := rec.Status.Toggle()
	if !ok {
		return false, refuse(
			fmt.Errorf("%w: %s", domain.ErrInvalidTransition, rec.Status),
			"Abgeschlossene Bedarfe können nicht geändert werden",
		)
	}
	if _, err := b.api.UpdateStatus(ctx, rec.ID, dto.BedarfStatusUpdate{Status: next}); err != nil {
		return false, err
	}
	return next == entity.BedarfAktiv, nil
}

func (b *bedarfBinding) Delete(ctx context.Context, rec *dto.Bedarf) error {
	return b.api.Delete(ctx, rec.ID)
}

func (b *bedarfBinding) Blank() BedarfForm                     { return NewBedarfForm() }
func (b *bedarfBinding) FromRecord(rec *dto.Bedarf) BedarfForm { return BedarfFormFrom(rec) }
func (b *bedarfBinding) Label(rec *dto.Bedarf) string          { return rec.Titel }
func (b *bedarfBinding) Messages() Messages                    { return bedarfMessages }

// Authorize la edición por registro se expone con CanEdit; el controlador no la bloquea.
func (b *bedarfBinding) Authorize(Op, *dto.Bedarf) error { return nil }
