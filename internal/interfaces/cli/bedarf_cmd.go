package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/forms"
	"github.com/jhoicas/bau-portal/internal/application/guard"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

// msgNoEdit rechazo cuando la identidad efectiva no puede editar el Bedarf.
const msgNoEdit = "Sie können nur Bedarfe Ihres eigenen Betriebs bearbeiten"

func (a *app) newBedarfeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "bedarfe",
		Aliases:     []string{"bedarf"},
		Short:       "Bedarfe verwalten",
		Annotations: route(guard.PathBedarfe),
	}
	cmd.AddCommand(
		a.newBedarfListCmd(),
		a.newBedarfGetCmd(),
		a.newBedarfCreateCmd(),
		a.newBedarfUpdateCmd(),
		a.newBedarfToggleCmd(),
		a.newBedarfDeleteCmd(),
	)
	return cmd
}

func (a *app) bedarfController() *forms.BedarfController {
	return forms.NewBedarfController(a.d.Bedarfe, a.d.Session, a.formOptions())
}

func (a *app) newBedarfListCmd() *cobra.Command {
	var (
		betriebID, minLohn, maxLohn, status string
		params                              dto.BedarfSearchParams
		page, size                          int
		onlyActive                          bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Bedarfe auflisten",
		Example: `  bau bedarfe list --standort Chur --qualifikation Dachstuhl
  bau bedarfe list --betrieb 123e4567-e89b-12d3-a456-426614174001 --sort datumVon,desc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if params.MinStundenlohn, err = optionalDecimal("min-lohn", minLohn); err != nil {
				return err
			}
			if params.MaxStundenlohn, err = optionalDecimal("max-lohn", maxLohn); err != nil {
				return err
			}
			params.Status = entity.BedarfStatus(strings.ToUpper(status))
			params.Page = changedInt(cmd.Flags(), "page", page)
			params.Size = changedInt(cmd.Flags(), "size", size)

			ctl := a.bedarfController()
			ctl.SetFilter(betriebID, &params)
			if err := ctl.Load(cmd.Context()); err != nil {
				return reported(err)
			}
			items := ctl.Items()
			if onlyActive {
				items = forms.ActiveBedarfe(items)
			}
			if params.Sort == "" {
				sortGerman(items, func(b dto.Bedarf) string { return b.Titel })
			}
			if a.json() {
				return printJSON(a.d.Out, items)
			}
			rows := make([][]string, 0, len(items))
			for _, b := range items {
				rows = append(rows, []string{
					b.ID, b.Titel, orDash(b.BetriebName), b.DatumVon.String(), b.DatumBis.String(),
					strconv.Itoa(b.AnzahlArbeiter), lohn(b.Stundenlohn), b.Status.Label(),
				})
			}
			return table(a.d.Out, []string{"ID", "TITEL", "BETRIEB", "VON", "BIS", "ARBEITER", "LOHN", "STATUS"}, rows)
		},
	}
	f := cmd.Flags()
	f.StringVar(&betriebID, "betrieb", "", "nur Bedarfe dieses Betriebs")
	f.StringVar(&params.Titel, "titel", "", "Titel enthält")
	f.StringVar(&params.Standort, "standort", "", "Adresse enthält")
	f.StringVar(&minLohn, "min-lohn", "", "minimaler Stundenlohn")
	f.StringVar(&maxLohn, "max-lohn", "", "maximaler Stundenlohn")
	f.StringSliceVar(&params.Qualifikationen, "qualifikation", nil, "geforderte Qualifikation (mehrfach)")
	f.StringVar(&status, "status", "", "AKTIV, INAKTIV oder ABGESCHLOSSEN")
	f.StringVar(&params.Sort, "sort", "", "Sortierung, z.B. datumVon,desc")
	f.IntVar(&page, "page", 0, "Seite (ab 0)")
	f.IntVar(&size, "size", 0, "Seitengrösse")
	f.BoolVar(&onlyActive, "aktiv", false, "nur aktive Bedarfe")
	return cmd
}

func (a *app) newBedarfGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Bedarf anzeigen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.d.Bedarfe.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.json() {
				return printJSON(a.d.Out, b)
			}
			return details(a.d.Out, [][2]string{
				{"ID", b.ID},
				{"Titel", b.Titel},
				{"Betrieb", orDash(b.BetriebName)},
				{"Beschreibung", orDash(b.Beschreibung)},
				{"Adresse", b.Adresse},
				{"Zeitraum", b.DatumVon.String() + " bis " + b.DatumBis.String()},
				{"Zimmermann", strconv.Itoa(b.ZimmermannAnzahl)},
				{"Holzbau", strconv.Itoa(b.HolzbauAnzahl)},
				{"Stunden/Tag", strconv.Itoa(b.StundenProTag)},
				{"Stundenlohn", lohn(b.Stundenlohn)},
				{"Qualifikationen", orDash(strings.Join(b.Qualifikationen, ", "))},
				{"Mit Werkzeug", yesNo(b.MitWerkzeug)},
				{"Mit Fahrzeug", yesNo(b.MitFahrzeug)},
				{"Status", b.Status.Label()},
			})
		},
	}
}

// bedarfFlags valores de formulario recibidos por flags.
type bedarfFlags struct {
	betriebID, titel, beschreibung, adresse string
	von, bis, stundenlohn                   string
	stundenProTag, zimmermann, holzbau      int
	werkzeug, fahrzeug                      bool
}

func (bf *bedarfFlags) register(f *pflag.FlagSet) {
	f.StringVar(&bf.betriebID, "betrieb", "", "Betrieb (nur ADMIN)")
	f.StringVar(&bf.titel, "titel", "", "Titel")
	f.StringVar(&bf.beschreibung, "beschreibung", "", "Qualifikationen, kommagetrennt")
	f.StringVar(&bf.adresse, "adresse", "", "Einsatzort")
	f.StringVar(&bf.von, "von", "", "Startdatum YYYY-MM-DD")
	f.StringVar(&bf.bis, "bis", "", "Enddatum YYYY-MM-DD")
	f.StringVar(&bf.stundenlohn, "stundenlohn", "", "Stundenlohn in CHF")
	f.IntVar(&bf.stundenProTag, "stunden", forms.DefaultStundenProTag, "Stunden pro Tag")
	f.IntVar(&bf.zimmermann, "zimmermann", 0, "Anzahl Zimmermann")
	f.IntVar(&bf.holzbau, "holzbau", 0, "Anzahl Holzbau")
	f.BoolVar(&bf.werkzeug, "werkzeug", false, "mit Werkzeug")
	f.BoolVar(&bf.fahrzeug, "fahrzeug", false, "mit Fahrzeug")
}

// apply copia al formulario los flags indicados; en alta todos, en edición solo los cambiados.
func (bf *bedarfFlags) apply(fs *pflag.FlagSet, form *forms.BedarfForm, all bool) error {
	set := func(name string) bool { return all || fs.Changed(name) }
	if set("betrieb") {
		form.BetriebID = bf.betriebID
	}
	if set("titel") {
		form.Titel = bf.titel
	}
	if set("beschreibung") {
		form.Beschreibung = bf.beschreibung
	}
	if set("adresse") {
		form.Adresse = bf.adresse
	}
	if set("von") && bf.von != "" {
		t, err := time.Parse(time.DateOnly, bf.von)
		if err != nil {
			return fmt.Errorf("--von: Datum im Format YYYY-MM-DD erwartet")
		}
		form.DatumVon = t
	}
	if set("bis") && bf.bis != "" {
		t, err := time.Parse(time.DateOnly, bf.bis)
		if err != nil {
			return fmt.Errorf("--bis: Datum im Format YYYY-MM-DD erwartet")
		}
		form.DatumBis = t
	}
	if set("stundenlohn") {
		d, err := optionalDecimal("stundenlohn", bf.stundenlohn)
		if err != nil {
			return err
		}
		form.Stundenlohn = d
	}
	if set("stunden") {
		form.StundenProTag = bf.stundenProTag
	}
	if set("zimmermann") {
		form.ZimmermannAnzahl = bf.zimmermann
	}
	if set("holzbau") {
		form.HolzbauAnzahl = bf.holzbau
	}
	if set("werkzeug") {
		form.MitWerkzeug = bf.werkzeug
	}
	if set("fahrzeug") {
		form.MitFahrzeug = bf.fahrzeug
	}
	return nil
}

func (a *app) newBedarfCreateCmd() *cobra.Command {
	var bf bedarfFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Neuen Bedarf erfassen",
		Example: `  bau bedarfe create --titel "Zimmermann für Dachstuhl" --adresse Chur \
    --von 2025-03-03 --bis 2025-03-28 --zimmermann 2 --beschreibung "Dachstuhl, Schalung"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl := a.bedarfController()
			if err := ctl.OpenCreate(); err != nil {
				return reported(err)
			}
			var err error
			ctl.Edit(func(f *forms.BedarfForm) { err = bf.apply(cmd.Flags(), f, true) })
			if err != nil {
				return err
			}
			return submit(a, cmd, ctl.Controller)
		},
	}
	bf.register(cmd.Flags())
	return cmd
}

func (a *app) newBedarfUpdateCmd() *cobra.Command {
	var bf bedarfFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Bedarf bearbeiten",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, rec, err := a.editableBedarf(cmd, args[0])
			if err != nil {
				return err
			}
			if err := ctl.OpenEdit(*rec); err != nil {
				return reported(err)
			}
			ctl.Edit(func(f *forms.BedarfForm) { err = bf.apply(cmd.Flags(), f, false) })
			if err != nil {
				return err
			}
			return submit(a, cmd, ctl.Controller)
		},
	}
	bf.register(cmd.Flags())
	return cmd
}

func (a *app) newBedarfToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle ID",
		Aliases: []string{"status"},
		Short:   "Bedarf aktivieren oder deaktivieren",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, rec, err := a.editableBedarf(cmd, args[0])
			if err != nil {
				return err
			}
			return reported(ctl.ToggleStatus(cmd.Context(), *rec))
		},
	}
}

func (a *app) newBedarfDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Bedarf löschen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, rec, err := a.editableBedarf(cmd, args[0])
			if err != nil {
				return err
			}
			return a.confirmed(ctl.Delete(cmd.Context(), *rec))
		},
	}
}

// editableBedarf carga el registro y comprueba que la identidad efectiva pueda editarlo.
func (a *app) editableBedarf(cmd *cobra.Command, id string) (*forms.BedarfController, *dto.Bedarf, error) {
	rec, err := a.d.Bedarfe.Get(cmd.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	ctl := a.bedarfController()
	if !ctl.CanEdit(*rec) {
		return nil, nil, &forms.Refusal{Msg: msgNoEdit, Err: domain.ErrForbidden}
	}
	return ctl, rec, nil
}

// confirmed trata la cancelación del usuario como salida normal.
func (a *app) confirmed(err error) error {
	if errors.Is(err, forms.ErrCancelled) {
		fmt.Fprintln(a.d.Err, "Abgebrochen")
		return nil
	}
	return reported(err)
}

func optionalDecimal(flag, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return nil, fmt.Errorf("--%s: keine gültige Zahl: %q", flag, s)
	}
	return &d, nil
}

func changedInt(fs *pflag.FlagSet, name string, v int) *int {
	if !fs.Changed(name) {
		return nil
	}
	return &v
}

func lohn(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return "CHF " + d.StringFixed(2)
}
