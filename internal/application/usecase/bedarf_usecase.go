package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/validation"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/domain/repository"
)

// defaultStundenProTag se aplica cuando el alta no trae horas por día.
const defaultStundenProTag = 8

var bedarfSort = map[string]comparator[*entity.Bedarf]{
	"createdAt": func(a, b *entity.Bedarf) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"datumVon":  func(a, b *entity.Bedarf) int { return a.DatumVon.Compare(b.DatumVon) },
	"titel":     byString(func(b *entity.Bedarf) string { return b.Titel }),
}

// BedarfUseCase casos de uso CRUD para Bedarfe. Un BETRIEB solo modifica los suyos.
type BedarfUseCase struct {
	repo     repository.BedarfRepository
	betriebe repository.BetriebRepository
	validate *validation.Validator
	now      func() time.Time
}

// NewBedarfUseCase construye el caso de uso.
func NewBedarfUseCase(repo repository.BedarfRepository, betriebe repository.BetriebRepository) *BedarfUseCase {
	return &BedarfUseCase{repo: repo, betriebe: betriebe, validate: validation.New(), now: time.Now}
}

// List filtra, ordena y pagina.
func (uc *BedarfUseCase) List(f repository.BedarfFilter, p PageRequest) (*dto.Page[dto.Bedarf], error) {
	list, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	page, err := paginate(list, p, bedarfSort)
	if err != nil {
		return nil, err
	}
	items := make([]dto.Bedarf, 0, len(page.Content))
	names := map[string]string{}
	for _, b := range page.Content {
		items = append(items, uc.toResponse(b, names))
	}
	out := dto.NewPage(items, page.Number, page.Size, page.TotalElements)
	out.Sort, out.Pageable.Sort = page.Sort, page.Pageable.Sort
	return &out, nil
}

// GetByID obtiene un Bedarf; ErrNotFound si no existe.
func (uc *BedarfUseCase) GetByID(id string) (*dto.Bedarf, error) {
	b, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	out := uc.toResponse(b, map[string]string{})
	return &out, nil
}

// Create da de alta un Bedarf en estado AKTIV. Un BETRIEB crea siempre para el suyo.
func (uc *BedarfUseCase) Create(actor *entity.Identity, in dto.BedarfCreateRequest) (*dto.Bedarf, error) {
	betriebID := in.BetriebID
	if actor.IsBetrieb() {
		if betriebID != "" && betriebID != actor.BetriebID {
			return nil, domain.ErrForbidden
		}
		betriebID = actor.BetriebID
	} else if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var errs fieldErrors
	if err := errs.structTags(uc.validate, in); err != nil {
		return nil, err
	}
	checkDates(&errs, in.DatumVon, in.DatumBis)
	if betriebID == "" {
		errs.add("betriebId", nil, "Dieses Feld ist erforderlich")
	} else if owner, err := uc.betriebe.GetByID(betriebID); err != nil {
		return nil, err
	} else if owner == nil {
		errs.add("betriebId", betriebID, "Betrieb existiert nicht")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	now := uc.now()
	b := &entity.Bedarf{
		ID:        uuid.New().String(),
		BetriebID: betriebID,
		Status:    entity.BedarfAktiv,
		CreatedAt: now,
	}
	applyBedarf(b, updateFromCreate(in), now)
	if err := uc.repo.Create(b); err != nil {
		return nil, fmt.Errorf("crear bedarf: %w", err)
	}
	out := uc.toResponse(b, map[string]string{})
	return &out, nil
}

// Update reemplaza los campos editables.
func (uc *BedarfUseCase) Update(actor *entity.Identity, id string, in dto.BedarfUpdateRequest) (*dto.Bedarf, error) {
	b, err := uc.owned(actor, id)
	if err != nil {
		return nil, err
	}
	var errs fieldErrors
	if err := errs.structTags(uc.validate, in); err != nil {
		return nil, err
	}
	checkDates(&errs, in.DatumVon, in.DatumBis)
	if err := errs.err(); err != nil {
		return nil, err
	}
	applyBedarf(b, in, uc.now())
	if err := uc.repo.Update(b); err != nil {
		return nil, fmt.Errorf("actualizar bedarf: %w", err)
	}
	out := uc.toResponse(b, map[string]string{})
	return &out, nil
}

// UpdateStatus cambia el estado. ABGESCHLOSSEN es final y solo un ADMIN lo asigna.
func (uc *BedarfUseCase) UpdateStatus(actor *entity.Identity, id string, in dto.BedarfStatusUpdate) (*dto.Bedarf, error) {
	b, err := uc.owned(actor, id)
	if err != nil {
		return nil, err
	}
	switch in.Status {
	case entity.BedarfAktiv, entity.BedarfInaktiv:
	case entity.BedarfAbgeschlossen:
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
	default:
		var errs fieldErrors
		errs.add("status", in.Status, "Ungültiger Status")
		return nil, errs.err()
	}
	if b.Status == entity.BedarfAbgeschlossen && in.Status != entity.BedarfAbgeschlossen {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, b.Status, in.Status)
	}
	b.Status = in.Status
	b.UpdatedAt = uc.now()
	if err := uc.repo.Update(b); err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}
	out := uc.toResponse(b, map[string]string{})
	return &out, nil
}

// Delete elimina un Bedarf.
func (uc *BedarfUseCase) Delete(actor *entity.Identity, id string) error {
	if _, err := uc.owned(actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *BedarfUseCase) get(id string) (*entity.Bedarf, error) {
	b, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// owned carga el Bedarf y comprueba que actor pueda modificarlo.
func (uc *BedarfUseCase) owned(actor *entity.Identity, id string) (*entity.Bedarf, error) {
	b, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || (actor.IsBetrieb() && actor.BetriebID == b.BetriebID) {
		return b, nil
	}
	return nil, domain.ErrForbidden
}

// toResponse resuelve el nombre del Betrieb usando names como caché.
func (uc *BedarfUseCase) toResponse(b *entity.Bedarf, names map[string]string) dto.Bedarf {
	name, ok := names[b.BetriebID]
	if !ok {
		if owner, err := uc.betriebe.GetByID(b.BetriebID); err == nil && owner != nil {
			name = owner.Name
		}
		names[b.BetriebID] = name
	}
	return toBedarfResponse(b, name)
}

// updateFromCreate el alta aplica los mismos campos que la actualización.
func updateFromCreate(in dto.BedarfCreateRequest) dto.BedarfUpdateRequest {
	return dto.BedarfUpdateRequest{
		Titel:            in.Titel,
		Beschreibung:     in.Beschreibung,
		DatumVon:         in.DatumVon,
		DatumBis:         in.DatumBis,
		ZimmermannAnzahl: in.ZimmermannAnzahl,
		HolzbauAnzahl:    in.HolzbauAnzahl,
		StundenProTag:    in.StundenProTag,
		Stundenlohn:      in.Stundenlohn,
		Qualifikationen:  in.Qualifikationen,
		MitWerkzeug:      in.MitWerkzeug,
		MitFahrzeug:      in.MitFahrzeug,
		Adresse:          in.Adresse,
	}
}

// applyBedarf anzahlArbeiter se recalcula siempre a partir de ambas categorías.
func applyBedarf(b *entity.Bedarf, in dto.BedarfUpdateRequest, now time.Time) {
	b.Titel = in.Titel
	b.Beschreibung = in.Beschreibung
	b.Adresse = in.Adresse
	b.DatumVon = in.DatumVon.Time
	b.DatumBis = in.DatumBis.Time
	b.ZimmermannAnzahl = in.ZimmermannAnzahl
	b.HolzbauAnzahl = in.HolzbauAnzahl
	b.StundenProTag = in.StundenProTag
	if b.StundenProTag == 0 {
		b.StundenProTag = defaultStundenProTag
	}
	b.Stundenlohn = nil
	if in.Stundenlohn != nil {
		lohn := *in.Stundenlohn
		b.Stundenlohn = &lohn
	}
	b.Qualifikationen = append([]string{}, in.Qualifikationen...)
	b.MitWerkzeug = in.MitWerkzeug
	b.MitFahrzeug = in.MitFahrzeug
	b.UpdatedAt = now
}

func checkDates(errs *fieldErrors, von, bis dto.Date) {
	if von.IsZero() {
		errs.add("datumVon", nil, "Dieses Feld ist erforderlich")
	}
	if bis.IsZero() {
		errs.add("datumBis", nil, "Dieses Feld ist erforderlich")
	}
	if !von.IsZero() && !bis.IsZero() && bis.Before(von.Time) {
		errs.add("datumBis", bis.String(), "Das Enddatum darf nicht vor dem Startdatum liegen")
	}
}

func toBedarfResponse(b *entity.Bedarf, betriebName string) dto.Bedarf {
	out := dto.Bedarf{
		ID:               b.ID,
		BetriebID:        b.BetriebID,
		BetriebName:      betriebName,
		Titel:            b.Titel,
		Beschreibung:     b.Beschreibung,
		DatumVon:         dto.NewDate(b.DatumVon),
		DatumBis:         dto.NewDate(b.DatumBis),
		ZimmermannAnzahl: b.ZimmermannAnzahl,
		HolzbauAnzahl:    b.HolzbauAnzahl,
		AnzahlArbeiter:   b.AnzahlArbeiter(),
		StundenProTag:    b.StundenProTag,
		Qualifikationen:  append([]string{}, b.Qualifikationen...),
		MitWerkzeug:      b.MitWerkzeug,
		MitFahrzeug:      b.MitFahrzeug,
		Adresse:          b.Adresse,
		Status:           b.Status,
		CreatedAt:        dto.Timestamp{Time: b.CreatedAt},
		UpdatedAt:        dto.Timestamp{Time: b.UpdatedAt},
	}
	if b.Stundenlohn != nil {
		lohn := *b.Stundenlohn
		out.Stundenlohn = &lohn
	}
	return out
}
