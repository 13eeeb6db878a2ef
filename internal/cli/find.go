package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/search"
	"github.com/stemsi/sherlock/internal/service"
)

func newFindCmd(a *app) *cobra.Command {
	var (
		surname     string
		field       string
		page, limit int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "find [query...]",
		Short: "Search students by name, enrollment number or other identifiers",
		Long: `Search students the way the API does: database first, then the CSV
export, then the built-in records. The source that answered is printed
above the results.

Examples:
  sherlockctl find rahul patil
  sherlockctl find --surname patil
  sherlockctl find ENRL2023 --limit 5 --json
  sherlockctl find --field registrationNumber REG20230001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				res *model.SearchResult
				err error
			)
			if field != "" {
				res, err = a.findExact(cmd, field, strings.Join(args, " "), limit)
			} else {
				var svc *service.StudentService
				if svc, err = a.studentService(cmd.Context()); err != nil {
					return err
				}
				res, err = svc.Search(cmd.Context(), strings.Join(args, " "), surname, page, limit)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return writeResultTable(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&surname, "surname", "", "Restrict to records with this surname")
	cmd.Flags().StringVar(&field, "field", "", "Match this canonical field exactly, in the database only")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", search.DefaultSearchLimit, "Page size (max 500)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw result as JSON")
	return cmd
}

// fieldFinder matches one canonical field exactly.
type fieldFinder interface {
	FindByField(ctx context.Context, key, value string, limit int) (int, []model.Student, error)
}

// findExact looks a value up in one database column, bypassing the CSV and
// built-in sources.
func (a *app) findExact(cmd *cobra.Command, field, value string, limit int) (*model.SearchResult, error) {
	if value == "" {
		return nil, errors.New("a value is required with --field")
	}
	if err := a.connect(cmd.Context()); err != nil {
		return nil, err
	}
	return lookupExact(cmd.Context(), a.repository(), field, value, limit)
}

func lookupExact(ctx context.Context, store fieldFinder, field, value string, limit int) (*model.SearchResult, error) {
	_, limit = search.Window(1, limit, search.DefaultSearchLimit)
	total, rows, err := store.FindByField(ctx, field, value, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Student{}
	}
	return &model.SearchResult{
		Total:     total,
		Page:      1,
		Limit:     limit,
		Data:      rows,
		Source:    model.SourceDatabase,
		Selection: search.Selection(total),
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResultTable(w io.Writer, res *model.SearchResult) error {
	fmt.Fprintf(w, "source: %s  total: %d  page: %d  limit: %d\n", res.Source, res.Total, res.Page, res.Limit)
	if res.Message != "" {
		fmt.Fprintln(w, "note:", res.Message)
	}
	if res.Hint != "" {
		fmt.Fprintln(w, res.Hint)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tENROLLMENT\tNAME\tBRANCH\tMOBILE")
	for _, s := range res.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.EnrollmentNumber, s.FullName, s.Branch, s.MobileNumber)
	}
	return tw.Flush()
}
