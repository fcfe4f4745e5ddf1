// Package auth autenticación del API de desarrollo: usuarios con bcrypt y JWT.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/validation"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/domain/repository"
	"github.com/jhoicas/bau-portal/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	users    repository.UserRepository
	betriebe repository.BetriebRepository
	jwtCfg   JWTConfig
	validate *validation.Validator
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, betriebe repository.BetriebRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, betriebe: betriebe, jwtCfg: jwtCfg, validate: validation.New()}
}

// RegisterUser crea un usuario con la contraseña hasheada con bcrypt.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*entity.Identity, error) {
	fields, err := uc.validate.Fields(in)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, fields)
	}
	existing, err := uc.users.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s ya registrado", domain.ErrValidation, in.Email)
	}
	if in.Role == entity.RoleBetrieb {
		owner, err := uc.betriebe.GetByID(in.BetriebID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, fmt.Errorf("betrieb %s: %w", in.BetriebID, domain.ErrNotFound)
		}
	} else {
		in.BetriebID = ""
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name, _, _ = strings.Cut(in.Email, "@")
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		BetriebID:    in.BetriebID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	id := user.Identity()
	return &id, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y contraseña incorrecta dan el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		BetriebID: user.BetriebID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: user.Identity()}, nil
}
