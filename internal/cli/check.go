package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stemsi/sherlock/internal/database"
	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/service"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "check-db",
		Aliases: []string{"check"},
		Short:   "Report database, Redis and CSV availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.connect(ctx); err != nil {
				return err
			}

			rdb, err := database.NewRedisClient(ctx, a.cfg, a.log)
			if err != nil {
				a.log.Warn().Err(err).Msg("redis unavailable")
			}
			if rdb != nil {
				defer rdb.Close()
			}

			d := service.NewDiagnosticsService(a.repository(), rdb, a.csvStore(), a.cfg, a.log).Check(ctx)
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(diagnosticsDoc(d)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

// diagnosticsDoc flattens the report into YAML-friendly keys.
func diagnosticsDoc(d *model.Diagnostics) map[string]any {
	dep := func(s model.DependencyStatus) map[string]any {
		m := map[string]any{"configured": s.Configured, "connection": s.Connection}
		if s.Target != "" {
			m["target"] = s.Target
		}
		if s.Error != "" {
			m["error"] = s.Error
		}
		if s.Records != nil {
			m["records"] = *s.Records
		}
		return m
	}
	return map[string]any{
		"database":     dep(d.Database),
		"redis":        dep(d.Redis),
		"csv":          map[string]any{"found": d.CSV.Found, "path": d.CSV.Path, "paths": d.CSV.Paths},
		"match_policy": d.MatchPolicy,
		"time":         d.Time,
	}
}
