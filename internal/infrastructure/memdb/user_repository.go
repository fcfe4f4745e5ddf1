package memdb

import (
	"strings"

	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	t *table[entity.User]
}

// NewUserRepository construye un repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{t: newTable(cloneUser)}
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(user *entity.User) error {
	return r.t.insert(user.ID, user)
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.t.get(id), nil
}

// FindByEmail busca por email sin distinguir mayúsculas.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	found := r.t.scan(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}
