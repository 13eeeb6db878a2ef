// Package cli implements sherlockctl, the operator tool for importing,
// querying and checking the student record sources.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stemsi/sherlock/internal/config"
	"github.com/stemsi/sherlock/internal/csvstore"
	"github.com/stemsi/sherlock/internal/database"
	"github.com/stemsi/sherlock/internal/logger"
	"github.com/stemsi/sherlock/internal/repository"
	"github.com/stemsi/sherlock/internal/search"
	"github.com/stemsi/sherlock/internal/service"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// app holds what every subcommand shares. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	cfg  *config.Config
	log  zerolog.Logger
	pool *pgxpool.Pool

	csvPaths []string
	noDB     bool
	logLevel string
}

// NewRootCmd builds the sherlockctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "sherlockctl",
		Short:         "Operate the Sherlock student lookup sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.csvPaths, "csv", nil, "CSV export paths, tried in order (default: CSV_PATHS)")
	flags.BoolVar(&a.noDB, "no-db", false, "Skip the database and resolve from CSV and built-in records")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level written to stderr")

	root.AddCommand(
		newFindCmd(a),
		newProfileCmd(a),
		newCountCmd(a),
		newImportCmd(a),
		newCheckCmd(a),
		newMigrateCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs sherlockctl with os.Args. SIGINT cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Load()
	if len(a.csvPaths) > 0 {
		a.cfg.CSVPaths = a.csvPaths
	}
	a.log = logger.New(cmd.ErrOrStderr(), a.logLevel, "pretty")
	return nil
}

// connect opens the database pool once. With --no-db it is a no-op and
// the repository reports ErrNoDatabase.
func (a *app) connect(ctx context.Context) error {
	if a.noDB || a.pool != nil {
		return nil
	}
	pool, err := database.NewPostgresPool(ctx, a.cfg, a.log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	a.pool = pool
	return nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
}

func (a *app) repository() *repository.StudentRepository {
	return repository.NewStudentRepository(a.pool)
}

func (a *app) csvStore() *csvstore.Store {
	return csvstore.NewStore(a.cfg.CSVPaths)
}

// studentService wires the same resolution chain the HTTP server uses,
// without the response cache.
func (a *app) studentService(ctx context.Context) (*service.StudentService, error) {
	if err := a.connect(ctx); err != nil {
		return nil, err
	}
	policy, err := search.ParsePolicy(a.cfg.MatchPolicy)
	if err != nil {
		return nil, err
	}
	return service.NewStudentService(a.repository(), a.csvStore(), nil, nil, policy, a.log), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sherlockctl %s (%s)\n", Version, GitCommit)
		},
	}
}
