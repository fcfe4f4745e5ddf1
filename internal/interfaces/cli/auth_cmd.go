package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bau-portal/internal/application/guard"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

func (a *app) newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Anmelden",
		Annotations: route(guard.PathLogin),
		Example: `  bau login --email holz@betrieb.ch
  bau login --email admin@bau.ch --password geheim`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if email == "" {
				if email, err = a.prompt("E-Mail: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.readPassword(); err != nil {
					return err
				}
			}
			if err := a.d.Session.Login(cmd.Context(), email, password); err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					return errors.New("Ungültige E-Mail oder Passwort")
				}
				return err
			}
			id := a.d.Session.Identity()
			if a.json() {
				return printJSON(a.d.Out, id)
			}
			fmt.Fprintf(a.d.Out, "Angemeldet als %s (%s)\n", id.DisplayName, id.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "E-Mail-Adresse")
	cmd.Flags().StringVar(&password, "password", "", "Passwort (sonst interaktive Eingabe)")
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Abmelden",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.d.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.d.Out, "Abgemeldet")
			return nil
		},
	}
}

// whoami vista de la sesión para la salida JSON.
type whoami struct {
	Authenticated bool             `json:"authenticated"`
	DevMode       bool             `json:"devMode"`
	User          *entity.Identity `json:"user,omitempty"`
	Effective     *entity.Identity `json:"effective,omitempty"`
	LocalRole     string           `json:"localRole"`
}

func (a *app) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Aktuelle Sitzung anzeigen",
		RunE: func(_ *cobra.Command, _ []string) error {
			s := a.d.Session
			w := whoami{
				Authenticated: s.IsAuthenticated(),
				DevMode:       s.DevMode(),
				User:          s.Identity(),
				Effective:     s.EffectiveIdentity(),
				LocalRole:     s.LocalRole().String(),
			}
			if a.json() {
				return printJSON(a.d.Out, w)
			}
			if w.User == nil {
				fmt.Fprintln(a.d.Out, "Nicht angemeldet")
				return nil
			}
			role := string(w.User.Role)
			if s.ShowRoleSelector() {
				role = fmt.Sprintf("%s (lokal: %s)", role, w.LocalRole)
			}
			return details(a.d.Out, [][2]string{
				{"Name", w.User.DisplayName},
				{"E-Mail", w.User.Email},
				{"Rolle", role},
				{"Betrieb", orDash(w.User.BetriebID)},
				{"Entwicklungsmodus", yesNo(w.DevMode)},
			})
		},
	}
}

func (a *app) newRoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Rolle lokal überschreiben (nur Entwicklungsmodus)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:       "set ADMIN|BETRIEB|abgemeldet",
		Short:     "Lokale Rolle setzen",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ADMIN", "BETRIEB", "abgemeldet"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireRoleSelector(); err != nil {
				return err
			}
			var role *entity.Role
			if !strings.EqualFold(args[0], "abgemeldet") {
				r, ok := entity.ParseRole(args[0])
				if !ok {
					return fmt.Errorf("Unbekannte Rolle %q", args[0])
				}
				role = &r
			}
			if err := a.d.Session.SetLocalRole(cmd.Context(), role); err != nil {
				return err
			}
			fmt.Fprintf(a.d.Out, "Lokale Rolle: %s\n", a.d.Session.LocalRole())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Lokale Rolle entfernen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireRoleSelector(); err != nil {
				return err
			}
			if err := a.d.Session.ClearLocalRole(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.d.Out, "Lokale Rolle entfernt")
			return nil
		},
	})
	return cmd
}

func (a *app) requireRoleSelector() error {
	switch {
	case !a.d.Session.DevMode():
		return domain.ErrDevOnly
	case !a.d.Session.ShowRoleSelector():
		return &RedirectError{Path: guard.PathLogin}
	}
	return nil
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.d.Err, label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("Eingabe lesen: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (a *app) readPassword() (string, error) {
	if a.d.ReadPassword == nil {
		return a.prompt("Passwort: ")
	}
	fmt.Fprint(a.d.Err, "Passwort: ")
	return a.d.ReadPassword()
}
