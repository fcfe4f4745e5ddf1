package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/forms"
	"github.com/jhoicas/bau-portal/internal/application/guard"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

func (a *app) newBetriebeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "betriebe",
		Aliases:     []string{"betrieb"},
		Short:       "Betriebe verwalten",
		Annotations: route(guard.PathBetriebe),
	}
	cmd.AddCommand(
		a.newBetriebListCmd(),
		a.newBetriebGetCmd(),
		a.newBetriebCreateCmd(),
		a.newBetriebUpdateCmd(),
		a.newBetriebToggleCmd(),
		a.newBetriebDeleteCmd(),
	)
	return cmd
}

func (a *app) betriebController() *forms.BetriebController {
	return forms.NewBetriebController(a.d.Betriebe, a.d.Session, a.formOptions())
}

func (a *app) newBetriebListCmd() *cobra.Command {
	var (
		params     dto.BetriebSearchParams
		status     string
		page, size int
		onlyActive bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Betriebe auflisten",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.Status = entity.BetriebStatus(strings.ToUpper(status))
			params.Page = changedInt(cmd.Flags(), "page", page)
			params.Size = changedInt(cmd.Flags(), "size", size)

			ctl := a.betriebController()
			ctl.SetFilter(&params)
			if err := ctl.Load(cmd.Context()); err != nil {
				return reported(err)
			}
			items := ctl.Items()
			if onlyActive {
				items = forms.ActiveBetriebe(items)
			}
			if params.Sort == "" {
				sortGerman(items, func(b dto.Betrieb) string { return b.Name })
			}
			if a.json() {
				return printJSON(a.d.Out, items)
			}
			rows := make([][]string, 0, len(items))
			for _, b := range items {
				rows = append(rows, []string{b.ID, b.Name, b.Email, orDash(b.Telefon), b.Adresse, b.Status.Label()})
			}
			return table(a.d.Out, []string{"ID", "NAME", "E-MAIL", "TELEFON", "ADRESSE", "STATUS"}, rows)
		},
	}
	f := cmd.Flags()
	f.StringVar(&params.Name, "name", "", "Name enthält")
	f.StringVar(&status, "status", "", "AKTIV oder INAKTIV")
	f.StringVar(&params.Sort, "sort", "", "Sortierung, z.B. name,desc")
	f.IntVar(&page, "page", 0, "Seite (ab 0)")
	f.IntVar(&size, "size", 0, "Seitengrösse")
	f.BoolVar(&onlyActive, "aktiv", false, "nur aktive Betriebe")
	return cmd
}

func (a *app) newBetriebGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Betrieb anzeigen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.d.Betriebe.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.json() {
				return printJSON(a.d.Out, b)
			}
			return details(a.d.Out, [][2]string{
				{"ID", b.ID},
				{"Name", b.Name},
				{"E-Mail", b.Email},
				{"Telefon", orDash(b.Telefon)},
				{"Adresse", b.Adresse},
				{"Status", b.Status.Label()},
			})
		},
	}
}

// betriebFlags valores de formulario recibidos por flags.
type betriebFlags struct {
	name, adresse, telefon, email string
}

func (bf *betriebFlags) register(f *pflag.FlagSet) {
	f.StringVar(&bf.name, "name", "", "Firmenname")
	f.StringVar(&bf.adresse, "adresse", "", "Adresse")
	f.StringVar(&bf.telefon, "telefon", "", "Telefon")
	f.StringVar(&bf.email, "email", "", "E-Mail")
}

func (bf *betriebFlags) apply(fs *pflag.FlagSet, form *forms.BetriebForm, all bool) {
	set := func(name string) bool { return all || fs.Changed(name) }
	if set("name") {
		form.Name = bf.name
	}
	if set("adresse") {
		form.Adresse = bf.adresse
	}
	if set("telefon") {
		form.Telefon = bf.telefon
	}
	if set("email") {
		form.Email = bf.email
	}
}

func (a *app) newBetriebCreateCmd() *cobra.Command {
	var bf betriebFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Neuen Betrieb erfassen (nur ADMIN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl := a.betriebController()
			if err := ctl.OpenCreate(); err != nil {
				return reported(err)
			}
			ctl.Edit(func(f *forms.BetriebForm) { bf.apply(cmd.Flags(), f, true) })
			return submit(a, cmd, ctl.Controller)
		},
	}
	bf.register(cmd.Flags())
	return cmd
}

func (a *app) newBetriebUpdateCmd() *cobra.Command {
	var bf betriebFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Betrieb bearbeiten (nur ADMIN)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := a.betriebController()
			rec, err := a.d.Betriebe.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := ctl.OpenEdit(*rec); err != nil {
				return reported(err)
			}
			ctl.Edit(func(f *forms.BetriebForm) { bf.apply(cmd.Flags(), f, false) })
			return submit(a, cmd, ctl.Controller)
		},
	}
	bf.register(cmd.Flags())
	return cmd
}

func (a *app) newBetriebToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle ID",
		Aliases: []string{"status"},
		Short:   "Betrieb aktivieren oder deaktivieren (nur ADMIN)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.d.Betriebe.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return reported(a.betriebController().ToggleStatus(cmd.Context(), *rec))
		},
	}
}

func (a *app) newBetriebDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Betrieb löschen (nur ADMIN)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.d.Betriebe.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.confirmed(a.betriebController().Delete(cmd.Context(), *rec))
		},
	}
}
