package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/repository"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.csv")
	body := "ENROLLMENT NUMBER,NAME,LAST NAME,BRANCH\n" +
		"CSV1,Asha Rao,Rao,Civil\n" +
		"CSV2,Vikram Shah,Shah,Mechanical\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFind_CSV(t *testing.T) {
	out, err := run(t, "--no-db", "--csv", writeCSV(t), "find", "vikram")
	require.NoError(t, err)

	assert.Contains(t, out, "source: csv")
	assert.Contains(t, out, "Vikram Shah")
	assert.Contains(t, out, "Mechanical")
	assert.NotContains(t, out, "Asha Rao")
}

func TestFind_JSONFallback(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.csv")
	out, err := run(t, "--no-db", "--csv", missing, "find", "--json", "--surname", "doe")
	require.NoError(t, err)

	var res model.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, model.SourceFallback, res.Source)
	assert.True(t, res.Degraded)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Jane Demo Doe", res.Data[0].FullName)
}

func TestFind_NoMatch(t *testing.T) {
	out, err := run(t, "--no-db", "--csv", writeCSV(t), "find", "nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "No student found")
}

func TestProfile(t *testing.T) {
	out, err := run(t, "--no-db", "--csv", writeCSV(t), "profile", "--enrollment", "CSV1")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha Rao (source: csv)")
	assert.Contains(t, out, "[Personal Information]")

	_, err = run(t, "--no-db", "--csv", writeCSV(t), "profile")
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	out, err := run(t, "--no-db", "--csv", writeCSV(t), "count")
	require.NoError(t, err)
	assert.Contains(t, out, "database: unavailable")
	assert.Contains(t, out, "csv:      2")
	assert.Contains(t, out, "fallback: 3")
}

func TestImport_DryRunWithoutDatabase(t *testing.T) {
	out, err := run(t, "--no-db", "--csv", writeCSV(t), "import", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "rows: 2")

	_, err = run(t, "--no-db", "--csv", writeCSV(t), "import")
	assert.ErrorContains(t, err, "needs the database")
}

func TestCheck(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	csv := writeCSV(t)
	out, err := run(t, "--no-db", "--csv", csv, "check-db")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	db := doc["database"].(map[string]any)
	assert.Equal(t, model.ConnectionFailed, db["connection"])
	csvDoc := doc["csv"].(map[string]any)
	assert.Equal(t, true, csvDoc["found"])
	assert.Equal(t, csv, csvDoc["path"])
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sherlockctl dev")
}

func TestFind_ExactFieldNeedsDatabase(t *testing.T) {
	_, err := run(t, "--no-db", "find", "--field", "enrollmentNumber", "E1")
	assert.ErrorIs(t, err, repository.ErrNoDatabase)

	_, err = run(t, "--no-db", "find", "--field", "enrollmentNumber")
	assert.ErrorContains(t, err, "value is required")
}

type stubFinder struct {
	total int
	rows  []model.Student
	limit int
}

func (s *stubFinder) FindByField(_ context.Context, _, _ string, limit int) (int, []model.Student, error) {
	s.limit = limit
	return s.total, s.rows, nil
}

func TestLookupExact_ReportsFullTotal(t *testing.T) {
	finder := &stubFinder{total: 7, rows: []model.Student{{FullName: "A"}, {FullName: "B"}}}

	res, err := lookupExact(context.Background(), finder, "registrationNumber", "REG1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, finder.limit)
	assert.Equal(t, 7, res.Total)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, model.SelectionMultiple, res.Selection)
	assert.Equal(t, model.SourceDatabase, res.Source)
}
