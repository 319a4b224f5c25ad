package testutils

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"addrgen/db"
	"addrgen/internal/config"

	"github.com/stretchr/testify/require"
)

// SetupTestDatabase opens a SQLite file in a temp dir with the schema applied.
func SetupTestDatabase(t *testing.T) (*sql.DB, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	testDB, err := db.ConnectToSQLite(dbPath)
	require.NoError(t, err)

	err = db.InitializeSchema(testDB)
	require.NoError(t, err)

	cleanup := func() {
		testDB.Close()
	}

	return testDB, cleanup
}

// GetTestConfig returns a config pointing the upstream clients at the given
// base URLs.
func GetTestConfig(nominatimURL, randomUserURL string) *config.Config {
	return &config.Config{
		Port:           "0",
		RequestTimeout: 20 * time.Second,
		SessionSecret:  []byte("test_session_secret_for_testing_only"),
		Geocode: config.GeocodeConfig{
			BaseURL:   nominatimURL,
			UserAgent: "addrgen-test",
			RPS:       1000,
			Timeout:   5 * time.Second,
		},
		People: config.PeopleConfig{
			BaseURL: randomUserURL,
			Timeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{
			Backend:  config.MemoryCache,
			Capacity: 50,
			TTL:      5 * time.Minute,
		},
		Log: config.LogConfig{Level: "error", Format: "text"},
	}
}
