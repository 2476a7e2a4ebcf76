package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRecord_PostsBody(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"success":true,"data":{"id":1}}`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv,
		"attendance", "record", "--user", "7", "--date", "2026-04-01", "--type", "check-in")
	require.NoError(t, rootCmd.Execute())

	last := rec.last()
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/attendance", last.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(last.Body), &body))
	assert.Equal(t, float64(7), body["userId"])
	assert.Equal(t, "2026-04-01", body["date"])
	assert.Equal(t, "check-in", body["type"])
	assert.NotEmpty(t, body["recordId"])
}

func TestAttendanceRecord_RejectsBadDate(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"success":true}`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv,
		"attendance", "record", "--user", "7", "--date", "04/01/2026", "--type", "check-in")
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--date")
}

func TestAttendanceList_FilterQuery(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"success":true,"data":[]}`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv,
		"attendance", "list", "--group", "3", "--from", "2026-04-01", "--to", "2026-04-30")
	require.NoError(t, rootCmd.Execute())

	last := rec.last()
	assert.Equal(t, "/attendance", last.Path)
	assert.Contains(t, last.Query, "groupId=3")
	assert.Contains(t, last.Query, "from=2026-04-01")
	assert.Contains(t, last.Query, "to=2026-04-30")
	assert.NotContains(t, last.Query, "userId")
}

func TestAttendanceExport_WritesFile(t *testing.T) {
	csv := "date,user,status\n2026-04-01,7,present\n"
	rec := &requestRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csv))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "export.csv")
	rootCmd := newTestRootCmd(t, srv, "attendance", "export", "--file", out)
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}

func TestAttendanceExport_BlobErrorSurfaces(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 404,
		`{"success":false,"message":"no records in range"}`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv, "attendance", "export")
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no records in range")
}

func TestAbsenceReject_RequiresComment(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"success":true}`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv, "absence", "reject", "9")
	assert.Error(t, rootCmd.Execute())
}
