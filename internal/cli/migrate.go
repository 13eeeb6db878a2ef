package cli

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/stemsi/sherlock/internal/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:       "migrate up|down|version",
		Short:     "Apply the students schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := database.NewMigrator(a.cfg.DatabaseURL, dir)
			if err != nil {
				return err
			}
			defer m.Close()

			out := cmd.OutOrStdout()
			switch args[0] {
			case "up":
				if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("migrate up: %w", err)
				}
				fmt.Fprintln(out, "Migrated up successfully")
			case "down":
				if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("migrate down: %w", err)
				}
				fmt.Fprintln(out, "Migrated down successfully")
			case "version":
				v, dirty, err := m.Version()
				if err != nil {
					return fmt.Errorf("migrate version: %w", err)
				}
				fmt.Fprintf(out, "Version: %d, Dirty: %t\n", v, dirty)
			default:
				return fmt.Errorf("unknown migrate command %q", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "path", "", "Migration directory (default: embedded schema)")
	return cmd
}
