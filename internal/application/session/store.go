// Package session mantiene la identidad actual, el token persistido y el
// override de rol de desarrollo. No hay estado global: el Store se construye
// una vez y se pasa a guards, formularios y comandos.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/application/validation"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/pkg/jwt"
	"github.com/jhoicas/bau-portal/pkg/logger"
)

// Identidad sintética del login de desarrollo.
const (
	DevUserID    = "dev-user-id"
	DevBetriebID = "123e4567-e89b-12d3-a456-426614174001"
)

// LoginPath ruta a la que se navega tras cerrar sesión.
const LoginPath = "/login"

// Options dependencias del Store. DevMode se resuelve una sola vez desde la config.
type Options struct {
	DevMode   bool
	Storage   ports.KeyValueStore
	Auth      ports.AuthAPI  // solo se usa fuera de DevMode
	Navigator ports.Navigator // opcional

	// Firma del token de desarrollo; si Secret está vacío se genera un token opaco.
	TokenSecret     string
	TokenIssuer     string
	TokenExpMinutes int

	Logger *logger.Logger
}

// Store estado de sesión del cliente.
type Store struct {
	opts      Options
	validator *validation.Validator
	log       *logger.Logger

	mu            sync.RWMutex
	identity      *entity.Identity
	authenticated bool
	override      RoleOverride
}

// NewStore construye el Store y rehidrata la sesión desde el almacenamiento.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if opts.Storage == nil {
		return nil, fmt.Errorf("session: almacenamiento requerido")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	s := &Store{
		opts:      opts,
		validator: validation.New(),
		log:       opts.Logger.Component("session"),
	}
	if err := s.Restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// DevMode indica si el login simulado y el override de rol están disponibles.
func (s *Store) DevMode() bool { return s.opts.DevMode }

// Login autentica al usuario. En desarrollo sintetiza la identidad a partir del
// email; en producción llama al backend. Los errores se propagan sin modificar.
func (s *Store) Login(ctx context.Context, email, password string) error {
	in := dto.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	fields, err := s.validator.Fields(in)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, joinFields(fields))
	}

	var (
		token string
		user  entity.Identity
	)
	if s.opts.DevMode {
		user = devIdentity(in.Email)
		token, err = s.devToken(user)
		if err != nil {
			return fmt.Errorf("login: token de desarrollo: %w", err)
		}
	} else {
		if s.opts.Auth == nil {
			return fmt.Errorf("login: cliente de autenticación no configurado")
		}
		resp, err := s.opts.Auth.Login(ctx, in)
		if err != nil {
			return err
		}
		token, user = resp.Token, resp.User
		if token == "" || !user.Normalize() {
			return fmt.Errorf("login: %w: respuesta sin token o usuario", domain.ErrCorruptState)
		}
	}

	if err := s.setAuthData(ctx, token, user); err != nil {
		return err
	}
	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("sesión iniciada")
	return nil
}

// Logout notifica al backend (ignorando fallos), borra siempre token, usuario y
// override, reinicia la sesión en memoria y navega al login. Solo devuelve errores
// del almacenamiento; la sesión en memoria queda reiniciada en cualquier caso.
func (s *Store) Logout(ctx context.Context) error {
	if !s.opts.DevMode && s.opts.Auth != nil {
		if err := s.opts.Auth.Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("logout en backend falló; se limpia la sesión local igualmente")
		}
	}
	err := s.clearAuthData(ctx)
	if s.opts.Navigator != nil {
		s.opts.Navigator.Navigate(LoginPath)
	}
	return err
}

// SetLocalRole fija el override de rol (solo desarrollo). role nil significa
// "Abgemeldet": sesión válida que los guards tratan como cerrada.
func (s *Store) SetLocalRole(ctx context.Context, role *entity.Role) error {
	if !s.opts.DevMode {
		return domain.ErrDevOnly
	}
	next := SignedOut()
	stored := ""
	if role != nil {
		r, ok := entity.ParseRole(string(*role))
		if !ok {
			return fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, *role)
		}
		next = WithRole(r)
		stored = string(r)
	}
	if err := s.opts.Storage.Set(ctx, ports.KeyLocalRole, stored); err != nil {
		return fmt.Errorf("guardar rol local: %w", err)
	}
	s.mu.Lock()
	s.override = next
	s.mu.Unlock()
	return nil
}

// ClearLocalRole quita el override (solo desarrollo).
func (s *Store) ClearLocalRole(ctx context.Context) error {
	if !s.opts.DevMode {
		return domain.ErrDevOnly
	}
	if err := s.opts.Storage.Remove(ctx, ports.KeyLocalRole); err != nil {
		return fmt.Errorf("borrar rol local: %w", err)
	}
	s.mu.Lock()
	s.override = RoleOverride{}
	s.mu.Unlock()
	return nil
}

// LocalRole override actual; siempre Unset en producción.
func (s *Store) LocalRole() RoleOverride {
	if !s.opts.DevMode {
		return RoleOverride{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.override
}

// Identity identidad real (sin override); nil si no hay sesión.
func (s *Store) Identity() *entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

// EffectiveIdentity identidad con el rol reemplazado por el override activo (solo desarrollo).
func (s *Store) EffectiveIdentity() *entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	if s.opts.DevMode && s.override.State == OverrideRole {
		cp.Role = s.override.Role
	}
	return &cp
}

// IsAuthenticated flag de autenticación sin considerar el override.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// EffectivelyAuthenticated es false cuando, en desarrollo, el override está en
// "Abgemeldet" aunque la sesión siga abierta.
func (s *Store) EffectivelyAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.opts.DevMode && s.authenticated && s.override.State == OverrideSignedOut {
		return false
	}
	return s.authenticated
}

// IsAdmin rol efectivo ADMIN.
func (s *Store) IsAdmin() bool { return s.EffectiveIdentity().IsAdmin() }

// IsBetrieb rol efectivo BETRIEB.
func (s *Store) IsBetrieb() bool { return s.EffectiveIdentity().IsBetrieb() }

// ShowRoleSelector el selector de rol solo se ofrece en desarrollo con sesión abierta.
func (s *Store) ShowRoleSelector() bool {
	return s.opts.DevMode && s.IsAuthenticated()
}

// Token devuelve el token persistido; "" si no hay.
func (s *Store) Token(ctx context.Context) (string, error) {
	tok, ok, err := s.opts.Storage.Get(ctx, ports.KeyAuthToken)
	if err != nil {
		return "", fmt.Errorf("leer token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return tok, nil
}

// Restore rehidrata la sesión. Un usuario persistido ilegible borra todo el
// estado de autenticación en lugar de fallar.
func (s *Store) Restore(ctx context.Context) error {
	token, hasToken, err := s.opts.Storage.Get(ctx, ports.KeyAuthToken)
	if err != nil {
		return s.restoreFailed(ctx, err)
	}
	raw, hasUser, err := s.opts.Storage.Get(ctx, ports.KeyUser)
	if err != nil {
		return s.restoreFailed(ctx, err)
	}

	if !hasToken || token == "" || !hasUser {
		s.reset()
		return nil
	}

	var user entity.Identity
	if err := json.Unmarshal([]byte(raw), &user); err != nil || !user.Normalize() {
		s.log.Warn().Err(err).Msg("usuario persistido corrupto; se borra la sesión")
		return s.clearAuthData(ctx)
	}

	override := RoleOverride{}
	if s.opts.DevMode {
		stored, ok, err := s.opts.Storage.Get(ctx, ports.KeyLocalRole)
		if err != nil {
			return s.restoreFailed(ctx, err)
		}
		if ok {
			override = parseOverride(stored)
		}
	}

	s.mu.Lock()
	s.identity = &user
	s.authenticated = true
	s.override = override
	s.mu.Unlock()
	return nil
}

// restoreFailed un almacenamiento ilegible se descarta y la sesión arranca sin
// autenticar; los errores de E/S se devuelven.
func (s *Store) restoreFailed(ctx context.Context, err error) error {
	if !errors.Is(err, domain.ErrCorruptState) {
		return fmt.Errorf("restaurar sesión: %w", err)
	}
	s.log.Warn().Err(err).Msg("almacenamiento corrupto; se descarta la sesión")
	s.reset()
	if r, ok := s.opts.Storage.(ports.Resetter); ok {
		if rerr := r.Reset(ctx); rerr != nil {
			return fmt.Errorf("restaurar sesión: %w", rerr)
		}
		return nil
	}
	if cerr := s.clearAuthData(ctx); cerr != nil {
		s.log.Warn().Err(cerr).Msg("no se pudo borrar la sesión corrupta")
	}
	return nil
}

func (s *Store) setAuthData(ctx context.Context, token string, user entity.Identity) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serializar usuario: %w", err)
	}
	if err := s.opts.Storage.Set(ctx, ports.KeyAuthToken, token); err != nil {
		return fmt.Errorf("guardar token: %w", err)
	}
	if err := s.opts.Storage.Set(ctx, ports.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("guardar usuario: %w", err)
	}
	s.mu.Lock()
	s.identity = &user
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

func (s *Store) clearAuthData(ctx context.Context) error {
	var errs []error
	for _, key := range []string{ports.KeyAuthToken, ports.KeyUser, ports.KeyLocalRole} {
		if err := s.opts.Storage.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("borrar %s: %w", key, err))
		}
	}
	s.reset()
	return errors.Join(errs...)
}

func (s *Store) reset() {
	s.mu.Lock()
	s.identity = nil
	s.authenticated = false
	s.override = RoleOverride{}
	s.mu.Unlock()
}

func (s *Store) devToken(user entity.Identity) (string, error) {
	if s.opts.TokenSecret == "" {
		return fmt.Sprintf("dev-token-%d", time.Now().UnixNano()), nil
	}
	exp := s.opts.TokenExpMinutes
	if exp <= 0 {
		exp = 480
	}
	return jwt.Generate(s.opts.TokenSecret, jwt.Subject{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		BetriebID: user.BetriebID,
	}, s.opts.TokenIssuer, exp)
}

// devIdentity rol ADMIN si el email contiene "admin"; si no, BETRIEB con el Betrieb fijo.
func devIdentity(email string) entity.Identity {
	name := email
	if at := strings.Index(email, "@"); at >= 0 {
		name = email[:at]
	}
	user := entity.Identity{
		ID:          DevUserID,
		Email:       email,
		DisplayName: name,
		Role:        entity.RoleBetrieb,
		BetriebID:   DevBetriebID,
	}
	if strings.Contains(email, "admin") {
		user.Role = entity.RoleAdmin
		user.BetriebID = ""
	}
	return user
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}
