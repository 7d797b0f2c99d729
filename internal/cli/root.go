package cli

import (
	"io"

	"github.com/spf13/cobra"

	"pasika/internal/config"
	"pasika/internal/log"
)

// App carries what every subcommand needs once the root has initialised.
type App struct {
	Config *config.Config
	Logger *log.Logger
}

// RootCommand creates the pasika command tree. logOut receives the process
// logs; nil means stdout.
func RootCommand(logOut io.Writer) *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:           "pasika",
		Short:         "Beekeeping dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadAndValidateConfig()
			if err != nil {
				return err
			}
			logger, err := SetupLogger(cfg, logOut)
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Logger = logger
			return nil
		},
	}

	rootCmd.AddCommand(
		ServeCommand(app),
		StatsCommand(app),
		BuildDBCommand(app),
	)
	return rootCmd
}
