package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stemsi/sherlock/internal/model"
)

func newProfileCmd(a *app) *cobra.Command {
	var req model.ProfileRequest

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show one student's full profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters := req.Filters()
			if len(filters) == 0 {
				return errors.New("one of --enrollment or --registration is required")
			}
			svc, err := a.studentService(cmd.Context())
			if err != nil {
				return err
			}
			p, err := svc.Profile(cmd.Context(), filters)
			if err != nil {
				return err
			}
			writeProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.EnrollmentNumber, "enrollment", "", "Enrollment number")
	cmd.Flags().StringVar(&req.RegistrationNumber, "registration", "", "Registration number")
	return cmd
}

func writeProfile(w io.Writer, p *model.ProfileResult) {
	fmt.Fprintf(w, "%s (source: %s)\n", p.Student.FullName, p.Source)
	for _, sec := range p.Sections {
		fmt.Fprintf(w, "\n[%s]\n", sec.Title)
		for _, f := range sec.Fields {
			fmt.Fprintf(w, "  %-24s %s\n", f.Label+":", f.Value)
		}
	}
}
