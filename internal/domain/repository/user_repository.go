package repository

import "github.com/jhoicas/bau-portal/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// FindByEmail devuelve nil, nil si no existe. La comparación ignora mayúsculas.
	FindByEmail(email string) (*entity.User, error)
}
