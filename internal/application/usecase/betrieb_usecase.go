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

var betriebSort = map[string]comparator[*entity.Betrieb]{
	"createdAt": func(a, b *entity.Betrieb) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"name":      byString(func(b *entity.Betrieb) string { return b.Name }),
}

// BetriebUseCase casos de uso CRUD para Betriebe. La restricción a ADMIN la
// aplica el router.
type BetriebUseCase struct {
	repo     repository.BetriebRepository
	bedarfe  repository.BedarfRepository
	validate *validation.Validator
	now      func() time.Time
}

// NewBetriebUseCase construye el caso de uso.
func NewBetriebUseCase(repo repository.BetriebRepository, bedarfe repository.BedarfRepository) *BetriebUseCase {
	return &BetriebUseCase{repo: repo, bedarfe: bedarfe, validate: validation.New(), now: time.Now}
}

// List filtra, ordena y pagina.
func (uc *BetriebUseCase) List(f repository.BetriebFilter, p PageRequest) (*dto.Page[dto.Betrieb], error) {
	list, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	page, err := paginate(list, p, betriebSort)
	if err != nil {
		return nil, err
	}
	items := make([]dto.Betrieb, 0, len(page.Content))
	for _, b := range page.Content {
		items = append(items, toBetriebResponse(b))
	}
	out := dto.NewPage(items, page.Number, page.Size, page.TotalElements)
	out.Sort, out.Pageable.Sort = page.Sort, page.Pageable.Sort
	return &out, nil
}

// GetByID obtiene un Betrieb; ErrNotFound si no existe.
func (uc *BetriebUseCase) GetByID(id string) (*dto.Betrieb, error) {
	b, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	out := toBetriebResponse(b)
	return &out, nil
}

// Create da de alta un Betrieb en estado AKTIV.
func (uc *BetriebUseCase) Create(in dto.BetriebCreateRequest) (*dto.Betrieb, error) {
	var errs fieldErrors
	if err := errs.structTags(uc.validate, in); err != nil {
		return nil, err
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	now := uc.now()
	b := &entity.Betrieb{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Telefon:   in.Telefon,
		Adresse:   in.Adresse,
		Status:    entity.BetriebAktiv,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(b); err != nil {
		return nil, fmt.Errorf("crear betrieb: %w", err)
	}
	out := toBetriebResponse(b)
	return &out, nil
}

// Update aplica solo los campos no vacíos.
func (uc *BetriebUseCase) Update(id string, in dto.BetriebUpdateRequest) (*dto.Betrieb, error) {
	b, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	var errs fieldErrors
	if err := errs.structTags(uc.validate, in); err != nil {
		return nil, err
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	if in.Name != "" {
		b.Name = in.Name
	}
	if in.Email != "" {
		b.Email = in.Email
	}
	if in.Telefon != "" {
		b.Telefon = in.Telefon
	}
	if in.Adresse != "" {
		b.Adresse = in.Adresse
	}
	b.UpdatedAt = uc.now()
	if err := uc.repo.Update(b); err != nil {
		return nil, fmt.Errorf("actualizar betrieb: %w", err)
	}
	out := toBetriebResponse(b)
	return &out, nil
}

// UpdateStatus cambia entre AKTIV e INAKTIV.
func (uc *BetriebUseCase) UpdateStatus(id string, in dto.BetriebStatusUpdate) (*dto.Betrieb, error) {
	b, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	if in.Status != entity.BetriebAktiv && in.Status != entity.BetriebInaktiv {
		var errs fieldErrors
		errs.add("status", in.Status, "Ungültiger Status")
		return nil, errs.err()
	}
	b.Status = in.Status
	b.UpdatedAt = uc.now()
	if err := uc.repo.Update(b); err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}
	out := toBetriebResponse(b)
	return &out, nil
}

// Delete elimina el Betrieb junto con sus Bedarfe.
func (uc *BetriebUseCase) Delete(id string) error {
	if _, err := uc.get(id); err != nil {
		return err
	}
	if _, err := uc.bedarfe.DeleteByBetrieb(id); err != nil {
		return fmt.Errorf("borrar bedarfe del betrieb: %w", err)
	}
	return uc.repo.Delete(id)
}

func (uc *BetriebUseCase) get(id string) (*entity.Betrieb, error) {
	b, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func toBetriebResponse(b *entity.Betrieb) dto.Betrieb {
	return dto.Betrieb{
		ID:        b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Telefon:   b.Telefon,
		Adresse:   b.Adresse,
		Status:    b.Status,
		CreatedAt: dto.Timestamp{Time: b.CreatedAt},
		UpdatedAt: dto.Timestamp{Time: b.UpdatedAt},
	}
}
