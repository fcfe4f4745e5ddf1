package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bau-portal/internal/application/guard"
	"github.com/jhoicas/bau-portal/internal/application/theme"
)

func (a *app) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "dashboard",
		Short:       "Übersicht der Bedarfe und Betriebe",
		Annotations: route(guard.PathDashboard),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats := a.d.Dashboard.Stats(cmd.Context())
			if a.json() {
				return printJSON(a.d.Out, stats)
			}
			if id := a.d.Session.EffectiveIdentity(); id != nil {
				fmt.Fprintf(a.d.Out, "Willkommen, %s\n\n", id.DisplayName)
			}
			if err := details(a.d.Out, [][2]string{
				{"Aktive Bedarfe", strconv.Itoa(stats.ActiveBedarfe)},
				{"Bedarfe gesamt", strconv.Itoa(stats.TotalBedarfe)},
				{"Betriebe", strconv.Itoa(stats.TotalBetriebe)},
				{"Neue Bedarfe (30 Tage)", strconv.Itoa(stats.MonthlyBedarfe)},
			}); err != nil {
				return err
			}
			if stats.Fallback {
				fmt.Fprintln(a.d.Err, "Hinweis: Server nicht erreichbar, Beispielwerte angezeigt")
			}
			return nil
		},
	}
}

func (a *app) newThemeCmd() *cobra.Command {
	show := func() error {
		mode := "hell"
		if a.d.Theme.IsDark() {
			mode = "dunkel"
		}
		if a.json() {
			return printJSON(a.d.Out, map[string]any{"theme": a.d.Theme.Theme(), "dark": a.d.Theme.IsDark()})
		}
		fmt.Fprintf(a.d.Out, "Theme: %s (%s)\n", a.d.Theme.Theme(), mode)
		return nil
	}
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Farbschema anzeigen oder ändern",
		Args:  cobra.NoArgs,
		RunE:  func(*cobra.Command, []string) error { return show() },
	}
	cmd.AddCommand(&cobra.Command{
		Use:       "set light|dark|system",
		Short:     "Farbschema setzen",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(theme.Light), string(theme.Dark), string(theme.System)},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := theme.Parse(args[0])
			if !ok {
				return fmt.Errorf("Unbekanntes Farbschema %q", args[0])
			}
			if err := a.d.Theme.SetTheme(cmd.Context(), t); err != nil {
				return err
			}
			return show()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Zwischen hell und dunkel wechseln",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.d.Theme.Toggle(cmd.Context()); err != nil {
				return err
			}
			return show()
		},
	})
	return cmd
}

func (a *app) newAboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "about",
		Short:       "Über das Bau-Portal",
		Annotations: route(guard.PathAbout),
		Args:        cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			fmt.Fprintln(a.d.Out, "Bau-Portal: Vermittlung von Zimmerleuten und Holzbauern an Betriebe.")
			fmt.Fprintln(a.d.Out, "Bedarfe erfassen, Betriebe verwalten, Übersicht im Dashboard.")
			return nil
		},
	}
}
