package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stemsi/sherlock/internal/config"
	"github.com/stemsi/sherlock/internal/model"
)

// DatabaseProbe is the part of the record store diagnostics needs.
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	CountAll(ctx context.Context) (int, error)
}

// Locator finds the CSV export on disk.
type Locator interface {
	Locate() (string, error)
}

// DiagnosticsService checks connectivity to every record source.
type DiagnosticsService struct {
	db      DatabaseProbe
	rdb     *redis.Client
	csv     Locator
	cfg     *config.Config
	timeout time.Duration
	log     zerolog.Logger
}

// NewDiagnosticsService creates a new DiagnosticsService. rdb may be nil.
func NewDiagnosticsService(db DatabaseProbe, rdb *redis.Client, csv Locator, cfg *config.Config, log zerolog.Logger) *DiagnosticsService {
	return &DiagnosticsService{
		db:      db,
		rdb:     rdb,
		csv:     csv,
		cfg:     cfg,
		timeout: 3 * time.Second,
		log:     log.With().Str("component", "diagnostics_service").Logger(),
	}
}

// Check probes each source once. Credentials never appear in the report.
func (s *DiagnosticsService) Check(ctx context.Context) *model.Diagnostics {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	d := &model.Diagnostics{
		MatchPolicy: s.cfg.MatchPolicy,
		Time:        time.Now().UTC().Format(time.RFC3339),
		Database:    s.checkDatabase(ctx),
		Redis:       s.checkRedis(ctx),
		CSV:         model.CSVStatus{Paths: s.cfg.CSVPaths},
	}
	if d.CSV.Paths == nil {
		d.CSV.Paths = []string{}
	}
	if path, err := s.csv.Locate(); err == nil {
		d.CSV.Found = true
		d.CSV.Path = path
	}
	return d
}

func (s *DiagnosticsService) checkDatabase(ctx context.Context) model.DependencyStatus {
	st := model.DependencyStatus{
		Configured: s.cfg.DatabaseURL != "",
		Target:     s.cfg.SanitizedDatabaseURL(),
	}
	if err := s.db.Ping(ctx); err != nil {
		st.Connection = model.ConnectionFailed
		st.Error = err.Error()
		s.log.Warn().Err(err).Msg("database check failed")
		return st
	}
	st.Connection = model.ConnectionSuccess
	if n, err := s.db.CountAll(ctx); err == nil {
		st.Records = &n
	}
	return st
}

func (s *DiagnosticsService) checkRedis(ctx context.Context) model.DependencyStatus {
	if s.rdb == nil {
		return model.DependencyStatus{Connection: model.ConnectionNotConfigured}
	}
	st := model.DependencyStatus{Configured: true, Target: config.SanitizeURL(s.cfg.RedisURL)}
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		st.Connection = model.ConnectionFailed
		st.Error = err.Error()
		return st
	}
	st.Connection = model.ConnectionSuccess
	return st
}
