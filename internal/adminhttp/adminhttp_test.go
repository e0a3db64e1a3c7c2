package adminhttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/towerclimb/server/internal/persistence"
)

type stubSessions struct{ count int }

func (s stubSessions) ActiveSessionCount() int { return s.count }

func newTestDB(t *testing.T) *persistence.Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := persistence.Open(persistence.DefaultConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHealthzReportsOKWithSessionCount(t *testing.T) {
	db := newTestDB(t)
	srv := New(":0", db, stubSessions{count: 3})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.ActiveSessions)
	assert.True(t, resp.DatabaseOK, "expected database_ok for a freshly opened db")
}

func TestHealthzReportsDegradedAfterDatabaseClose(t *testing.T) {
	db := newTestDB(t)
	srv := New(":0", db, stubSessions{})
	db.Close()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
