package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bau-portal/internal/application/forms"
	"github.com/jhoicas/bau-portal/internal/application/guard"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/infrastructure/api"
	"github.com/jhoicas/bau-portal/pkg/logger"
)

// annotationRoute clave de anotación con la ruta que protege el comando.
const annotationRoute = "route"

// RedirectError el guard de la ruta no dejó pasar.
type RedirectError struct {
	Path string
}

func (e *RedirectError) Error() string {
	if e.Path == guard.PathDashboard {
		return "Bereits angemeldet. Weiter mit: bau dashboard"
	}
	return "Nicht angemeldet. Bitte zuerst anmelden: bau login"
}

// app estado compartido por los comandos de una ejecución.
type app struct {
	d      *Deps
	in     *bufio.Reader
	output string
	yes    bool
}

// Execute ejecuta el CLI con los argumentos del proceso y devuelve el código de salida.
func Execute(ctx context.Context, d *Deps) int {
	return Run(ctx, d, os.Args[1:])
}

// Run ejecuta el CLI con args y devuelve el código de salida.
func Run(ctx context.Context, d *Deps, args []string) int {
	root := NewRootCmd(d)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root, d.Err, err)
		return 1
	}
	return 0
}

func printError(root *cobra.Command, w io.Writer, err error) {
	output, _ := root.PersistentFlags().GetString("output")
	if output == "json" {
		obj := map[string]any{"error": describe(err)}
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			obj["status"] = apiErr.Status
			if len(apiErr.Envelope.FieldErrors) > 0 {
				obj["fieldErrors"] = apiErr.Envelope.FieldErrors
			}
		}
		_ = printJSON(w, obj)
		return
	}
	var rep *reportedError
	if errors.As(err, &rep) {
		return
	}
	fmt.Fprintf(w, "Fehler: %s\n", describe(err))
}

// describe texto para el usuario; el del servidor si lo hay.
func describe(err error) string {
	var (
		apiErr   *api.APIError
		refusal  *forms.Refusal
		redirect *RedirectError
	)
	switch {
	case errors.As(err, &redirect):
		return redirect.Error()
	case errors.As(err, &refusal):
		return refusal.Msg
	case errors.As(err, &apiErr):
		return apiErr.Message()
	case errors.Is(err, forms.ErrCancelled):
		return "Abgebrochen"
	case errors.Is(err, forms.ErrBusy):
		return "Es läuft bereits eine Anfrage"
	case errors.Is(err, domain.ErrDevOnly):
		return "Nur im Entwicklungsmodus verfügbar"
	case errors.Is(err, domain.ErrTransport):
		return "Server nicht erreichbar"
	default:
		return err.Error()
	}
}

// NewRootCmd construye el árbol de comandos sobre d.
func NewRootCmd(d *Deps) *cobra.Command {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Err == nil {
		d.Err = os.Stderr
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	a := &app{d: d, in: bufio.NewReader(d.In)}

	root := &cobra.Command{
		Use:           "bau",
		Short:         "Bau-Portal: Bedarfe und Betriebe verwalten",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(a.output); err != nil {
				return err
			}
			return a.checkRoute(cmd)
		},
	}
	root.SetIn(d.In)
	root.SetOut(d.Out)
	root.SetErr(d.Err)
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "Ausgabeformat (table, json)")
	root.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "Rückfragen automatisch bestätigen")

	root.AddCommand(
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newWhoamiCmd(),
		a.newRoleCmd(),
		a.newDashboardCmd(),
		a.newBedarfeCmd(),
		a.newBetriebeCmd(),
		a.newThemeCmd(),
		a.newAboutCmd(),
	)
	return root
}

// checkRoute aplica el guard de la ruta anotada en el comando o en sus padres.
func (a *app) checkRoute(cmd *cobra.Command) error {
	for c := cmd; c != nil; c = c.Parent() {
		path, ok := c.Annotations[annotationRoute]
		if !ok {
			continue
		}
		if dec := guard.Resolve(a.d.Session, path); !dec.Allow {
			return &RedirectError{Path: dec.Redirect}
		}
		return nil
	}
	return nil
}

func route(path string) map[string]string {
	return map[string]string{annotationRoute: path}
}

func (a *app) formOptions() forms.Options {
	return forms.Options{
		Notifier:       streamNotifier{w: a.d.Err},
		Confirmer:      promptConfirmer{yes: a.yes, in: a.in, out: a.d.Err},
		Logger:         a.d.Logger,
		RequestTimeout: a.d.RequestTimeout,
	}
}

func (a *app) json() bool { return a.output == "json" }
