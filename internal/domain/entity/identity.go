package entity

import "strings"

// Role rol de la plataforma. Los valores coinciden con los que envía el backend.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleBetrieb Role = "BETRIEB"
)

// ParseRole convierte texto libre (case-insensitive) en un Role válido.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleBetrieb:
		return RoleBetrieb, true
	default:
		return "", false
	}
}

// Identity usuario autenticado. BetriebID solo está presente para el rol BETRIEB.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	Role        Role   `json:"role"`
	BetriebID   string `json:"betriebId,omitempty"`
}

// IsAdmin indica si la identidad tiene rol ADMIN.
func (i *Identity) IsAdmin() bool { return i != nil && i.Role == RoleAdmin }

// IsBetrieb indica si la identidad tiene rol BETRIEB.
func (i *Identity) IsBetrieb() bool { return i != nil && i.Role == RoleBetrieb }

// Normalize deja el rol en su forma canónica y comprueba la identidad: id, email,
// rol conocido y BetriebID presente si y solo si el rol es BETRIEB.
func (i *Identity) Normalize() bool {
	if i == nil || i.ID == "" || i.Email == "" {
		return false
	}
	role, ok := ParseRole(string(i.Role))
	if !ok {
		return false
	}
	if (role == RoleBetrieb) != (i.BetriebID != "") {
		return false
	}
	i.Role = role
	return true
}
