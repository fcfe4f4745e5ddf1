// Package theme guarda la preferencia de tema claro/oscuro del usuario.
package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/bau-portal/internal/application/ports"
)

// Theme preferencia persistida.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// Parse valida un valor; ok false si no es light/dark/system.
func Parse(s string) (Theme, bool) {
	switch t := Theme(s); t {
	case Light, Dark, System:
		return t, true
	default:
		return "", false
	}
}

// SystemProbe indica si el sistema prefiere el modo oscuro.
type SystemProbe func() bool

// Service preferencia de tema respaldada por el almacenamiento.
type Service struct {
	store ports.KeyValueStore
	probe SystemProbe

	mu    sync.RWMutex
	theme Theme
}

// NewService carga la preferencia; ausente o inválida = System. probe nil = claro.
func NewService(ctx context.Context, store ports.KeyValueStore, probe SystemProbe) (*Service, error) {
	if probe == nil {
		probe = func() bool { return false }
	}
	s := &Service{store: store, probe: probe, theme: System}
	raw, ok, err := store.Get(ctx, ports.KeyTheme)
	if err != nil {
		return nil, fmt.Errorf("leer tema: %w", err)
	}
	if ok {
		if t, valid := Parse(raw); valid {
			s.theme = t
		}
	}
	return s, nil
}

// Theme preferencia actual.
func (s *Service) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// IsDark modo efectivo; con System consulta la sonda.
func (s *Service) IsDark() bool {
	switch s.Theme() {
	case Dark:
		return true
	case Light:
		return false
	default:
		return s.probe()
	}
}

// SetTheme persiste la preferencia.
func (s *Service) SetTheme(ctx context.Context, t Theme) error {
	if _, ok := Parse(string(t)); !ok {
		return fmt.Errorf("tema desconocido %q", t)
	}
	if err := s.store.Set(ctx, ports.KeyTheme, string(t)); err != nil {
		return fmt.Errorf("guardar tema: %w", err)
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
	return nil
}

// Toggle con System pasa al opuesto de lo que muestra el sistema; si no, alterna claro/oscuro.
func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	next := Dark
	if s.IsDark() {
		next = Light
	}
	if err := s.SetTheme(ctx, next); err != nil {
		return s.Theme(), err
	}
	return next, nil
}
