package entity

import "time"

// User cuenta de acceso a la plataforma (solo la usa el API de desarrollo).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	BetriebID    string // solo para RoleBetrieb
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity vista pública del usuario.
func (u *User) Identity() Identity {
	return Identity{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.Name,
		Role:        u.Role,
		BetriebID:   u.BetriebID,
	}
}
