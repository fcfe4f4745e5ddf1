package ports

import (
	"context"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

// AuthAPI puerto de salida para login/logout contra el backend.
type AuthAPI interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
}

// BedarfAPI puerto de salida para el recurso Bedarf.
type BedarfAPI interface {
	List(ctx context.Context, params *dto.BedarfSearchParams) (*dto.Page[dto.Bedarf], error)
	ListByBetrieb(ctx context.Context, betriebID string, params *dto.BedarfSearchParams) (*dto.Page[dto.Bedarf], error)
	Get(ctx context.Context, id string) (*dto.Bedarf, error)
	Create(ctx context.Context, in dto.BedarfCreateRequest) (*dto.Bedarf, error)
	Update(ctx context.Context, id string, in dto.BedarfUpdateRequest) (*dto.Bedarf, error)
	UpdateStatus(ctx context.Context, id string, in dto.BedarfStatusUpdate) (*dto.Bedarf, error)
	Delete(ctx context.Context, id string) error
}

// BetriebAPI puerto de salida para el recurso Betrieb.
type BetriebAPI interface {
	List(ctx context.Context, params *dto.BetriebSearchParams) (*dto.Page[dto.Betrieb], error)
	Get(ctx context.Context, id string) (*dto.Betrieb, error)
	Create(ctx context.Context, in dto.BetriebCreateRequest) (*dto.Betrieb, error)
	Update(ctx context.Context, id string, in dto.BetriebUpdateRequest) (*dto.Betrieb, error)
	UpdateStatus(ctx context.Context, id string, in dto.BetriebStatusUpdate) (*dto.Betrieb, error)
	Delete(ctx context.Context, id string) error
}

// IdentitySource entrega la identidad efectiva actual (tras aplicar el override de rol).
type IdentitySource interface {
	EffectiveIdentity() *entity.Identity
}
