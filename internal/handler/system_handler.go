package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stemsi/sherlock/internal/response"
	"github.com/stemsi/sherlock/internal/service"
)

// SystemHandler serves liveness, dependency diagnostics and the raw CSV export.
type SystemHandler struct {
	diagnostics *service.DiagnosticsService
	csv         service.Locator
	startTime   time.Time
	log         zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(diagnostics *service.DiagnosticsService, csv service.Locator, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		diagnostics: diagnostics,
		csv:         csv,
		startTime:   time.Now(),
		log:         log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Diagnostics godoc
// GET /api/v1/diagnostics
// Reports database, Redis and CSV availability without credentials.
func (h *SystemHandler) Diagnostics(c *gin.Context) {
	response.Success(c, http.StatusOK, h.diagnostics.Check(c.Request.Context()))
}

// RawData godoc
// GET /api/v1/data
// Streams the CSV export as-is.
func (h *SystemHandler) RawData(c *gin.Context) {
	path, err := h.csv.Locate()
	if err != nil {
		h.log.Debug().Err(err).Msg("raw data requested but no CSV export found")
		response.Fail(c, http.StatusNotFound, response.ErrDataMissing)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `inline; filename="`+filepath.Base(path)+`"`)
	c.File(path)
}
