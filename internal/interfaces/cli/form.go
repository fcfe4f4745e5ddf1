package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bau-portal/internal/application/forms"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/infrastructure/api"
)

// reportedError el controlador ya notificó el fallo; solo falta el código de salida.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported marca err como ya notificado. ErrBusy no genera notificación y no se marca.
func reported(err error) error {
	if err == nil || errors.Is(err, forms.ErrBusy) {
		return err
	}
	return &reportedError{err: err}
}

// submit envía el formulario abierto; si no valida lista los errores por campo,
// los locales o los que devolvió el servidor.
func submit[R, F any](a *app, cmd *cobra.Command, ctl *forms.Controller[R, F]) error {
	err := ctl.Submit(cmd.Context())
	if err == nil {
		return nil
	}
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		for _, fe := range apiErr.Envelope.FieldErrors {
			fmt.Fprintf(a.d.Err, "  %s: %s\n", fe.Field, fe.Message)
		}
	case errors.Is(err, domain.ErrValidation):
		fields := ctl.FieldErrors()
		for _, name := range slices.Sorted(maps.Keys(fields)) {
			fmt.Fprintf(a.d.Err, "  %s: %s\n", name, fields[name])
		}
	}
	return reported(err)
}
