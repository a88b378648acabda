package app

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/floorsheet/config"
	"github.com/guttosm/floorsheet/internal/metrics"
)

func invalidPostgres() config.Config {
	return config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
}

// stubStore swaps the opener and migrator for a sqlmock-backed DB.
func stubStore(t *testing.T, migrateErr error) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	oldOpen, oldMigrate := postgresOpener, migrator
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	migrator = func(*sql.DB) error { return migrateErr }
	t.Cleanup(func() {
		postgresOpener, migrator = oldOpen, oldMigrate
		_ = db.Close()
	})
	return db, mock
}

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	db, err := InitPostgres(invalidPostgres())
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when DB cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = invalidPostgres()

	r, cleanup, err := InitializeApp(nil)
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	stubStore(t, nil)

	router, cleanup, err := InitializeApp(metrics.New())
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err=%v", err)
	}
	defer cleanup()

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
	}
}

func TestInitializeApp_MigrationFailure(t *testing.T) {
	stubStore(t, errors.New("dirty schema"))

	_, _, err := InitializeApp(nil)
	if err == nil || !strings.Contains(err.Error(), "dirty schema") {
		t.Fatalf("expected migration error, got %v", err)
	}
}

func TestInitializeStore(t *testing.T) {
	stubStore(t, nil)

	repo, cleanup, err := InitializeStore()
	if err != nil || repo == nil || cleanup == nil {
		t.Fatalf("InitializeStore: repo=%v err=%v", repo, err)
	}
	cleanup()

	postgresOpener = func(config.Config) (*sql.DB, error) { return nil, errors.New("refused") }
	if _, _, err := InitializeStore(); err == nil {
		t.Fatalf("expected error when postgres is unreachable")
	}
}
