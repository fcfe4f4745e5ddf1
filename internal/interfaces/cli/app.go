// Package cli es el front-end de línea de comandos: cada comando corresponde a
// una pantalla y opera sobre la sesión, los controladores de formulario y el
// agregador del dashboard.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/jhoicas/bau-portal/internal/application/dashboard"
	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/application/session"
	"github.com/jhoicas/bau-portal/internal/application/theme"
	"github.com/jhoicas/bau-portal/internal/infrastructure/api"
	"github.com/jhoicas/bau-portal/internal/infrastructure/storage"
	"github.com/jhoicas/bau-portal/pkg/config"
	"github.com/jhoicas/bau-portal/pkg/logger"
)

// apiPrefix prefijo REST que se añade a API_BASE_URL.
const apiPrefix = "/api/v1"

// Deps todo lo que necesitan los comandos. In/Out/Err nil = stdin/stdout/stderr.
type Deps struct {
	Session   *session.Store
	Bedarfe   ports.BedarfAPI
	Betriebe  ports.BetriebAPI
	Theme     *theme.Service
	Dashboard *dashboard.Aggregator
	Navigator *Navigator
	Logger    *logger.Logger

	RequestTimeout time.Duration

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// ReadPassword lee la contraseña sin eco; nil = se lee una línea de In.
	ReadPassword func() (string, error)
}

// Bootstrap arma las dependencias desde la configuración. closeFn libera el
// almacenamiento y siempre es no-nil.
func Bootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Deps, func(), error) {
	kv, closeFn, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, closeFn, fmt.Errorf("abrir almacenamiento: %w", err)
	}

	// El cliente se crea antes que la sesión; el token se lee al enviar.
	var store *session.Store
	tokens := api.TokenFunc(func(ctx context.Context) (string, error) {
		if store == nil {
			return "", nil
		}
		return store.Token(ctx)
	})
	client, err := api.NewClient(cfg.API.BaseURL+apiPrefix, cfg.API.Timeout, tokens, log)
	if err != nil {
		return nil, closeFn, err
	}

	nav := NewNavigator(os.Stderr)
	store, err = session.NewStore(ctx, session.Options{
		DevMode:         !cfg.App.IsProduction(),
		Storage:         kv,
		Auth:            api.NewAuthService(client),
		Navigator:       nav,
		TokenSecret:     cfg.JWT.Secret,
		TokenIssuer:     cfg.JWT.Issuer,
		TokenExpMinutes: cfg.JWT.Expiration,
		Logger:          log,
	})
	if err != nil {
		return nil, closeFn, err
	}

	th, err := theme.NewService(ctx, kv, terminalIsDark)
	if err != nil {
		return nil, closeFn, err
	}

	bedarfe := api.NewBedarfService(client)
	betriebe := api.NewBetriebService(client)
	deps := &Deps{
		Session:        store,
		Bedarfe:        bedarfe,
		Betriebe:       betriebe,
		Theme:          th,
		Dashboard:      dashboard.NewAggregator(bedarfe, betriebe, log),
		Navigator:      nav,
		Logger:         log,
		RequestTimeout: cfg.API.Timeout,
		In:             os.Stdin,
		Out:            os.Stdout,
		Err:            os.Stderr,
	}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		deps.ReadPassword = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stderr)
			return string(b), err
		}
	}
	return deps, closeFn, nil
}

// terminalIsDark interpreta COLORFGBG ("fg;bg"); fondo 0-6 u 8 es oscuro.
func terminalIsDark() bool {
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false
	}
	return bg <= 6 || bg == 8
}
