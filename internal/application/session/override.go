package session

import "github.com/jhoicas/bau-portal/internal/domain/entity"

// OverrideState los tres estados del override de rol de desarrollo.
type OverrideState int

const (
	// OverrideUnset sin override: rige el rol real.
	OverrideUnset OverrideState = iota
	// OverrideSignedOut "Abgemeldet": vista de sesión cerrada sin cerrar sesión.
	OverrideSignedOut
	// OverrideRole rol explícito.
	OverrideRole
)

// RoleOverride override de rol. El valor cero es OverrideUnset.
type RoleOverride struct {
	State OverrideState
	Role  entity.Role // solo con OverrideRole
}

// SignedOut override "Abgemeldet".
func SignedOut() RoleOverride { return RoleOverride{State: OverrideSignedOut} }

// WithRole override con rol explícito.
func WithRole(r entity.Role) RoleOverride { return RoleOverride{State: OverrideRole, Role: r} }

// String representación para mostrar en el CLI.
func (o RoleOverride) String() string {
	switch o.State {
	case OverrideSignedOut:
		return "abgemeldet"
	case OverrideRole:
		return string(o.Role)
	default:
		return "-"
	}
}

// parseOverride "" → SignedOut; rol válido → WithRole; cualquier otra cosa se ignora.
func parseOverride(stored string) RoleOverride {
	if stored == "" {
		return SignedOut()
	}
	if r, ok := entity.ParseRole(stored); ok {
		return WithRole(r)
	}
	return RoleOverride{}
}
