package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pasika/internal/log"
	"pasika/internal/storage"
)

// BuildDBCommand migrates a SQLite dataset file and seeds the sample rows.
func BuildDBCommand(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "build-db",
		Short: "Create or migrate the SQLite dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = app.Config.SQLiteDBPath
			}

			repo, err := storage.NewSQLiteRepository(path)
			if err != nil {
				return err
			}
			if err := repo.Close(); err != nil {
				return fmt.Errorf("close database: %w", err)
			}

			version, dirty, err := storage.SchemaVersion(path)
			if err != nil {
				return err
			}
			app.Logger.WithComponent(log.ComponentStorage).Info("Database ready",
				log.FieldOperation, log.OpMigrate,
				log.FieldDBPath, path,
				log.FieldVersion, version)

			fmt.Fprintf(cmd.OutOrStdout(), "%s: schema version %d", path, version)
			if dirty {
				fmt.Fprint(cmd.OutOrStdout(), " (dirty)")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "db", "", "Database path (defaults to SQLITE_DB_PATH)")
	return cmd
}
