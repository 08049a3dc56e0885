package db

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "welllog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPragmasApplied(t *testing.T) {
	db := setupTestDB(t)

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var busyTimeout int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	assert.Equal(t, 5000, busyTimeout)

	var synchronous int
	require.NoError(t, db.QueryRow("PRAGMA synchronous").Scan(&synchronous))
	assert.Equal(t, 1, synchronous)

	var foreignKeys int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys)
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.MigrateUp(MigrationsFS()))

	version, dirty, err := db.MigrateVersion(MigrationsFS())
	require.NoError(t, err)
	assert.False(t, dirty)

	latest, err := LatestMigrationVersion(MigrationsFS())
	require.NoError(t, err)
	assert.Equal(t, latest, version)
	assert.Equal(t, uint(2), latest)
}

func TestMigrateDownAndTo(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.MigrateDown(MigrationsFS()))
	version, _, err := db.MigrateVersion(MigrationsFS())
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	var indexes int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_wells_name'`).Scan(&indexes))
	assert.Zero(t, indexes)

	require.NoError(t, db.MigrateTo(MigrationsFS(), 2))
	version, _, err = db.MigrateVersion(MigrationsFS())
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestMigrateVersionFreshDB(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "fresh.db"))
	require.NoError(t, err)
	defer db.Close()

	version, dirty, err := db.MigrateVersion(MigrationsFS())
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)
}

func TestMigrateForce(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.MigrateForce(MigrationsFS(), 1))
	version, dirty, err := db.MigrateVersion(MigrationsFS())
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestLatestMigrationVersionErrors(t *testing.T) {
	_, err := LatestMigrationVersion(fstest.MapFS{})
	assert.Error(t, err)

	_, err = LatestMigrationVersion(fstest.MapFS{
		"migrations/init.up.sql": {Data: []byte("SELECT 1;")},
	})
	assert.Error(t, err)
}

func TestAttachAdminRoutes(t *testing.T) {
	db := setupTestDB(t)

	mux := http.NewServeMux()
	db.AttachAdminRoutes(mux)

	for _, path := range []string{"/debug/backup", "/debug/tailsql/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "127.0.0.1:12345"
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.NotEqual(t, http.StatusNotFound, rec.Code, "route %s not registered", path)

		if path == "/debug/backup" && rec.Code == http.StatusOK {
			assert.Equal(t, "application/gzip", rec.Header().Get("Content-Type"))
			assert.NotZero(t, rec.Body.Len())
		}
	}
}
