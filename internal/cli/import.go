package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stemsi/sherlock/internal/database"
	"github.com/stemsi/sherlock/internal/service"
)

func newImportCmd(a *app) *cobra.Command {
	var opts service.ImportOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the CSV export into the database",
		Long: `Upsert every CSV row into the students table. A row matches an existing
record by enrollment number, or by full name when it has none.

Rows with neither an enrollment number nor a name are skipped. With --seed,
a missing CSV export loads the built-in demo records instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if a.noDB && !opts.DryRun {
				return errors.New("import needs the database; use --dry-run to only validate rows")
			}
			if err := a.connect(ctx); err != nil {
				return err
			}
			if !opts.DryRun {
				if err := a.repository().Ping(ctx); err != nil {
					return fmt.Errorf("database unreachable: %w", err)
				}
			}

			svc := service.NewImportService(a.repository(), a.csvStore(), a.log)
			stats, err := svc.Import(ctx, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stats.Seeded {
				fmt.Fprintln(out, "no CSV export found; seeded built-in records")
			} else {
				fmt.Fprintf(out, "imported %s\n", stats.Path)
			}
			fmt.Fprintf(out, "rows: %d  created: %d  updated: %d  skipped: %d  failed: %d\n",
				stats.Total, stats.Created, stats.Updated, stats.Skipped, stats.Failed)
			if !opts.DryRun {
				a.purgeCache(cmd)
			}
			if stats.Failed > 0 {
				return fmt.Errorf("%d rows failed to import", stats.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.SeedWhenMissing, "seed", false, "Seed built-in records when no CSV export exists")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Normalize rows without writing")
	return cmd
}

// purgeCache drops cached search pages so the server stops serving
// pre-import results. Failures only warn.
func (a *app) purgeCache(cmd *cobra.Command) {
	ctx := cmd.Context()
	rdb, err := database.NewRedisClient(ctx, a.cfg, a.log)
	if err != nil {
		a.log.Warn().Err(err).Msg("search cache not purged")
		return
	}
	if rdb == nil {
		return
	}
	defer rdb.Close()

	n, err := service.NewRedisCache(rdb, a.cfg.SearchCacheTTL).Purge(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("search cache purge failed")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "purged %d cached pages\n", n)
}
