package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"pasika/internal/i18n"
	"pasika/internal/view"
)

// StatsCommand prints the summary cards and season rollup of the dataset.
func StatsCommand(app *App) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print fleet totals and harvest by season",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, cleanup, err := LoadDataset(cmd.Context(), app.Config, app.Logger)
			if err != nil {
				return err
			}
			defer cleanup()

			bundle, err := i18n.Load()
			if err != nil {
				return fmt.Errorf("load translations: %w", err)
			}
			tag := app.Config.DefaultTag()
			if lang != "" {
				if tag, err = language.Parse(lang); err != nil {
					return fmt.Errorf("invalid --lang %q: %w", lang, err)
				}
			}
			l := bundle.Localizer(tag)
			page := view.Build(ds, view.InitialState(), l)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range page.Cards {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Title, c.Value, c.Note)
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%s\n", l.T("harvest.title"))
			for _, s := range page.Seasons {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Label, s.Total, s.Count, l.Percent(s.Progress))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Output language (defaults to DEFAULT_LANG)")
	return cmd
}
