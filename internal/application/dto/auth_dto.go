package dto

import "github.com/jhoicas/bau-portal/internal/domain/entity"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida del login: token + usuario.
type LoginResponse struct {
	Token string          `json:"token"`
	User  entity.Identity `json:"user"`
}

// RegisterRequest alta de usuario en el API de desarrollo; BetriebID solo para BETRIEB.
type RegisterRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	Name      string      `json:"name" validate:"omitempty,max=200"`
	Role      entity.Role `json:"role" validate:"required,oneof=ADMIN BETRIEB"`
	BetriebID string      `json:"betriebId" validate:"required_if=Role BETRIEB"`
}
