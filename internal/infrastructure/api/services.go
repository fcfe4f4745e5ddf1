package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/ports"
)

var (
	_ ports.BedarfAPI  = (*BedarfService)(nil)
	_ ports.BetriebAPI = (*BetriebService)(nil)
	_ ports.AuthAPI    = (*AuthService)(nil)
)

// BedarfService recurso /bedarfe.
type BedarfService struct {
	*Resource[dto.Bedarf, dto.BedarfCreateRequest, dto.BedarfUpdateRequest, dto.BedarfStatusUpdate, *dto.BedarfSearchParams]
}

// NewBedarfService construye el servicio de Bedarfe.
func NewBedarfService(c *Client) *BedarfService {
	return &BedarfService{
		NewResource[dto.Bedarf, dto.BedarfCreateRequest, dto.BedarfUpdateRequest, dto.BedarfStatusUpdate, *dto.BedarfSearchParams](c, "/bedarfe"),
	}
}

// ListByBetrieb GET /bedarfe/betrieb/{betriebId}.
func (s *BedarfService) ListByBetrieb(ctx context.Context, betriebID string, params *dto.BedarfSearchParams) (*dto.Page[dto.Bedarf], error) {
	var page dto.Page[dto.Bedarf]
	path := "/bedarfe/betrieb/" + betriebID
	if err := s.c.do(ctx, http.MethodGet, path, params.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// BetriebService recurso /betriebe.
type BetriebService struct {
	*Resource[dto.Betrieb, dto.BetriebCreateRequest, dto.BetriebUpdateRequest, dto.BetriebStatusUpdate, *dto.BetriebSearchParams]
}

// NewBetriebService construye el servicio de Betriebe.
func NewBetriebService(c *Client) *BetriebService {
	return &BetriebService{
		NewResource[dto.Betrieb, dto.BetriebCreateRequest, dto.BetriebUpdateRequest, dto.BetriebStatusUpdate, *dto.BetriebSearchParams](c, "/betriebe"),
	}
}

// AuthService endpoints /auth.
type AuthService struct {
	c *Client
}

// NewAuthService construye el servicio de autenticación.
func NewAuthService(c *Client) *AuthService { return &AuthService{c: c} }

// Login POST /auth/login.
func (s *AuthService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := s.c.do(ctx, http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout POST /auth/logout.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
