package forms

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

// BetriebForm campos editables de un Betrieb.
type BetriebForm struct {
	Name    string `json:"name" validate:"required,min=2"`
	Adresse string `json:"adresse" validate:"required"`
	Telefon string `json:"telefon" validate:"phone"`
	Email   string `json:"email" validate:"required,email"`
}

// BetriebFormFrom rellena el formulario a partir de un registro.
func BetriebFormFrom(b *dto.Betrieb) BetriebForm {
	return BetriebForm{Name: b.Name, Adresse: b.Adresse, Telefon: b.Telefon, Email: b.Email}
}

// CreateRequest payload de alta.
func (f *BetriebForm) CreateRequest() dto.BetriebCreateRequest {
	return dto.BetriebCreateRequest{Name: f.Name, Email: f.Email, Telefon: f.Telefon, Adresse: f.Adresse}
}

// UpdateRequest payload de actualización.
func (f *BetriebForm) UpdateRequest() dto.BetriebUpdateRequest {
	return dto.BetriebUpdateRequest{Name: f.Name, Email: f.Email, Telefon: f.Telefon, Adresse: f.Adresse}
}

// ActiveBetriebe filtra los Betriebe en estado AKTIV.
func ActiveBetriebe(items []dto.Betrieb) []dto.Betrieb {
	out := make([]dto.Betrieb, 0, len(items))
	for _, b := range items {
		if b.Status == entity.BetriebAktiv {
			out = append(out, b)
		}
	}
	return out
}

var betriebMessages = Messages{
	LoadFailed:   "Fehler beim Laden der Betriebe",
	Created:      "Betrieb erfolgreich erstellt",
	CreateFailed: "Fehler beim Erstellen des Betriebs",
	Updated:      "Betrieb erfolgreich aktualisiert",
	UpdateFailed: "Fehler beim Aktualisieren des Betriebs",
	Deleted:      "Betrieb erfolgreich gelöscht",
	DeleteFailed: "Fehler beim Löschen des Betriebs",
	StatusFailed: "Fehler beim Ändern des Status",
	StatusChanged: func(activated bool) string {
		if activated {
			return "Betrieb erfolgreich aktiviert"
		}
		return "Betrieb erfolgreich deaktiviert"
	},
	ConfirmDelete: func(label string) string {
		return fmt.Sprintf("Möchten Sie den Betrieb %q wirklich löschen?", label)
	},
	SuccessDuration: 5 * time.Second,
}

// Mensajes de rechazo por rol.
var adminOnly = map[Op]string{
	OpCreate: "Nur Administratoren können neue Betriebe erstellen",
	OpEdit:   "Nur Administratoren können Betriebe bearbeiten",
	OpDelete: "Nur Administratoren können Betriebe löschen",
	OpToggle: "Nur Administratoren können den Status ändern",
}

// BetriebController controlador de la pantalla de Betriebe.
type BetriebController struct {
	*Controller[dto.Betrieb, BetriebForm]
	ids     ports.IdentitySource
	binding *betriebBinding
}

// NewBetriebController construye el controlador; solo ADMIN puede modificar.
func NewBetriebController(svc ports.BetriebAPI, ids ports.IdentitySource, opts Options) *BetriebController {
	b := &betriebBinding{api: svc, ids: ids}
	return &BetriebController{Controller: New[dto.Betrieb, BetriebForm](b, opts), ids: ids, binding: b}
}

// IsAdmin rol efectivo ADMIN.
func (c *BetriebController) IsAdmin() bool { return c.ids.EffectiveIdentity().IsAdmin() }

// SetFilter fija los filtros de Load; nil lista todo.
func (c *BetriebController) SetFilter(params *dto.BetriebSearchParams) {
	c.binding.mu.Lock()
	defer c.binding.mu.Unlock()
	c.binding.params = params
}

type betriebBinding struct {
	api ports.BetriebAPI
	ids ports.IdentitySource

	mu     sync.Mutex
	params *dto.BetriebSearchParams
}

var _ Binding[dto.Betrieb, BetriebForm] = (*betriebBinding)(nil)

func (b *betriebBinding) List(ctx context.Context) ([]dto.Betrieb, error) {
	b.mu.Lock()
	params := b.params
	b.mu.Unlock()
	page, err := b.api.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

func (b *betriebBinding) Create(ctx context.Context, f *BetriebForm) error {
	_, err := b.api.Create(ctx, f.CreateRequest())
	return err
}

func (b *betriebBinding) Update(ctx context.Context, rec *dto.Betrieb, f *BetriebForm) error {
	_, err := b.api.Update(ctx, rec.ID, f.UpdateRequest())
	return err
}

func (b *betriebBinding) ToggleStatus(ctx context.Context, rec *dto.Betrieb) (bool, error) {
	next := rec.Status.Toggle()
	if _, err := b.api.UpdateStatus(ctx, rec.ID, dto.BetriebStatusUpdate{Status: next}); err != nil {
		return false, err
	}
	return next == entity.BetriebAktiv, nil
}

func (b *betriebBinding) Delete(ctx context.Context, rec *dto.Betrieb) error {
	return b.api.Delete(ctx, rec.ID)
}

func (b *betriebBinding) Blank() BetriebForm                      { return BetriebForm{} }
func (b *betriebBinding) FromRecord(rec *dto.Betrieb) BetriebForm { return BetriebFormFrom(rec) }
func (b *betriebBinding) Label(rec *dto.Betrieb) string           { return rec.Name }
func (b *betriebBinding) Messages() Messages                      { return betriebMessages }

func (b *betriebBinding) Authorize(op Op, _ *dto.Betrieb) error {
	if b.ids.EffectiveIdentity().IsAdmin() {
		return nil
	}
	return refuse(domain.ErrForbidden, adminOnly[op])
}
