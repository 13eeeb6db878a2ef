package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/sherlock/internal/config"
	"github.com/stemsi/sherlock/internal/csvstore"
	"github.com/stemsi/sherlock/internal/repository"
	"github.com/stemsi/sherlock/internal/service"
	"github.com/stemsi/sherlock/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
	Pagination *struct {
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
}

// newTestEngine wires every handler with no database and the CSV export
// at csvPath, which may not exist.
func newTestEngine(t *testing.T, csvPath string) *gin.Engine {
	t.Helper()
	log := zerolog.Nop()
	cfg := &config.Config{CSVPaths: []string{csvPath}, MatchPolicy: "any"}

	repo := repository.NewStudentRepository(nil)
	docs := csvstore.NewStore(cfg.CSVPaths)
	students := service.NewStudentService(nil, docs, nil, nil, "", log)
	diagnostics := service.NewDiagnosticsService(repo, nil, docs, cfg, log)

	sh := NewStudentHandler(students)
	sys := NewSystemHandler(diagnostics, docs, log)

	r := gin.New()
	r.GET("/health", sys.Health)
	r.GET("/api/v1/search", sh.Search)
	r.GET("/api/v1/students", sh.List)
	r.GET("/api/v1/students/profile", sh.Profile)
	r.GET("/api/v1/data", sys.RawData)
	r.GET("/api/v1/diagnostics", sys.Diagnostics)
	r.POST("/api/v1/osint", NewOsintHandler().Report)
	return r
}

func do(t *testing.T, r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSearch_DegradesToFallback(t *testing.T) {
	r := newTestEngine(t, filepath.Join(t.TempDir(), "missing.csv"))

	w, env := do(t, r, http.MethodGet, "/api/v1/search?q=john", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Total    int    `json:"total"`
		Source   string `json:"source"`
		Degraded bool   `json:"degraded"`
		Message  string `json:"message"`
		Data     []struct {
			FullName string `json:"fullName"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "fallback", res.Source)
	assert.True(t, res.Degraded)
	assert.Equal(t, service.MessageFallback, res.Message)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "John Demo Smith", res.Data[0].FullName)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalItems)
	assert.Equal(t, 1, env.Pagination.TotalPages)
	assert.NotEmpty(t, env.Metadata.RequestID)
}

func TestSearch_ServesCSV(t *testing.T) {
	path := writeCSV(t, "ENROLLMENT NUMBER,NAME\nCSV1,Asha Rao\nCSV2,Vikram Shah\n")
	r := newTestEngine(t, path)

	w, env := do(t, r, http.MethodGet, "/api/v1/search?q=vikram", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"source":"csv"`)
	assert.Contains(t, string(env.Data), `"enrollmentNumber":"CSV2"`)
}

func TestSearch_NoMatchHint(t *testing.T) {
	r := newTestEngine(t, filepath.Join(t.TempDir(), "missing.csv"))

	w, env := do(t, r, http.MethodGet, "/api/v1/search?q=nobody", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"total":0`)
	assert.Contains(t, string(env.Data), `"data":[]`)
	assert.Contains(t, string(env.Data), service.HintNoMatch)
}

func TestSearch_Validation(t *testing.T) {
	r := newTestEngine(t, "")

	w, env := do(t, r, http.MethodGet, "/api/v1/search?q=a&limit=1000", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "limit")

	w, env = do(t, r, http.MethodGet, "/api/v1/search?q=a&page=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "detail")
}

func TestList(t *testing.T) {
	r := newTestEngine(t, "")

	w, env := do(t, r, http.MethodGet, "/api/v1/students", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"limit":10`)
	assert.Contains(t, string(env.Data), `"total":3`)

	w, env = do(t, r, http.MethodGet, "/api/v1/students?registrationNumber=REG20230001", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"total":1`)
	assert.Contains(t, string(env.Data), `"selection":"single"`)
}

func TestProfile(t *testing.T) {
	r := newTestEngine(t, "")

	w, env := do(t, r, http.MethodGet, "/api/v1/students/profile?enrollmentNumber=ENRL20230001", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"title":"Personal Information"`)
	assert.Contains(t, string(env.Data), "1234 1234 1234")

	w, env = do(t, r, http.MethodGet, "/api/v1/students/profile?enrollmentNumber=UNKNOWN", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "STUDENT_NOT_FOUND", env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/students/profile", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "enrollmentNumber")
}

func TestOsint(t *testing.T) {
	r := newTestEngine(t, "")

	w, env := do(t, r, http.MethodPost, "/api/v1/osint", `{"fullName":"Rahul Suresh Patil","fatherName":"Suresh Patil"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"firstName":"Rahul"`)
	assert.Contains(t, string(env.Data), `"disclaimer"`)

	w, env = do(t, r, http.MethodPost, "/api/v1/osint", `{"fullName":"Rahul","emailId":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "emailId")

	w, _ = do(t, r, http.MethodPost, "/api/v1/osint", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRawData(t *testing.T) {
	body := "ENROLLMENT NUMBER,NAME\nCSV1,Asha Rao\n"
	r := newTestEngine(t, writeCSV(t, body))

	w, _ := do(t, r, http.MethodGet, "/api/v1/data", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Equal(t, body, w.Body.String())

	r = newTestEngine(t, filepath.Join(t.TempDir(), "missing.csv"))
	w, env := do(t, r, http.MethodGet, "/api/v1/data", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DATA_FILE_NOT_FOUND", env.Error.Code)
}

func TestDiagnostics(t *testing.T) {
	r := newTestEngine(t, writeCSV(t, "NAME\nA B\n"))

	w, env := do(t, r, http.MethodGet, "/api/v1/diagnostics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"connection":"Failed"`)
	assert.Contains(t, string(env.Data), `"found":true`)
	assert.Contains(t, string(env.Data), `"connection":"Not configured"`)
}

func TestHealth(t *testing.T) {
	w, env := do(t, newTestEngine(t, ""), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"status":"ok"`)
}
