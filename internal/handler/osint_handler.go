package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/osint"
	"github.com/stemsi/sherlock/internal/response"
	"github.com/stemsi/sherlock/internal/validator"
)

// OsintHandler serves the simulated OSINT report.
type OsintHandler struct{}

// NewOsintHandler creates a new OsintHandler.
func NewOsintHandler() *OsintHandler {
	return &OsintHandler{}
}

// Report godoc
// POST /api/v1/osint
// Derives search links, username and email guesses from a name. No
// outbound request is made.
func (h *OsintHandler) Report(c *gin.Context) {
	var req model.OsintRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	response.Success(c, http.StatusOK, osint.Build(req))
}
