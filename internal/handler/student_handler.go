package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/repository"
	"github.com/stemsi/sherlock/internal/response"
	"github.com/stemsi/sherlock/internal/service"
	"github.com/stemsi/sherlock/internal/validator"
)

// StudentHandler serves record search, listing and profile lookups.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// Search godoc
// GET /api/v1/search?q=&surname=&page=&limit=
// Free-text search across identifying fields. Always answers from some
// source; degraded results carry a message.
func (h *StudentHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if fields := validator.BindQuery(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.studentService.Search(c.Request.Context(), req.Q, req.Surname, req.Page, req.Limit)
	if err != nil {
		failLookup(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, res, response.NewPagination(res.Page, res.Limit, res.Total))
}

// List godoc
// GET /api/v1/students?enrollmentNumber=&registrationNumber=&page=&limit=
// Pages through records, optionally narrowed by exact identifiers.
func (h *StudentHandler) List(c *gin.Context) {
	var req model.ListRequest
	if fields := validator.BindQuery(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.studentService.List(c.Request.Context(), req.Filters(), req.Page, req.Limit)
	if err != nil {
		failLookup(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, res, response.NewPagination(res.Page, res.Limit, res.Total))
}

// Profile godoc
// GET /api/v1/students/profile?enrollmentNumber=|registrationNumber=
// Returns exactly one record laid out in display sections.
func (h *StudentHandler) Profile(c *gin.Context) {
	var req model.ProfileRequest
	if fields := validator.BindQuery(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.studentService.Profile(c.Request.Context(), req.Filters())
	if err != nil {
		failLookup(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// failLookup maps service errors onto the response envelope.
func failLookup(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrStudentMissing)
	case errors.Is(err, service.ErrAmbiguousMatch):
		response.Fail(c, http.StatusConflict, response.ErrAmbiguousMatch)
	case errors.Is(err, service.ErrMissingIdentifier):
		response.Fail(c, http.StatusBadRequest, response.ErrMissingID)
	case errors.Is(err, repository.ErrUnknownField):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownFilter)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		_ = c.Error(err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrTimeout)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrSourceUnavailable)
	}
}
