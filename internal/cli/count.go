package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stemsi/sherlock/internal/fallback"
)

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count records in every source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if err := a.connect(ctx); err != nil {
				return err
			}
			if n, err := a.repository().CountAll(ctx); err != nil {
				fmt.Fprintf(out, "database: unavailable (%v)\n", err)
			} else {
				fmt.Fprintf(out, "database: %d\n", n)
			}

			if doc, err := a.csvStore().Read(ctx); err != nil {
				fmt.Fprintf(out, "csv:      unavailable (%v)\n", err)
			} else {
				fmt.Fprintf(out, "csv:      %d (%s)\n", len(doc.Rows), doc.Path)
			}

			fmt.Fprintf(out, "fallback: %d\n", len(fallback.Records()))
			return nil
		},
	}
}
