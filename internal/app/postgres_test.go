package app

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/floorsheet/config"
)

func storeConfig() config.Config {
	return config.Config{Postgres: config.PostgresConfig{User: "report", Password: "secret", Host: "db", Port: 5433, DBName: "floorsheet", SSLMode: "require"}}
}

func TestInitPostgres(t *testing.T) {
	cases := []struct {
		name    string
		openErr error
		pingErr error
		wantErr string
	}{
		{name: "ok"},
		{name: "open error", openErr: errors.New("bad driver"), wantErr: "failed to open postgres: bad driver"},
		{name: "ping error closes pool", pingErr: errors.New("connection refused"), wantErr: "failed to ping postgres: connection refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			if err != nil {
				t.Fatalf("sqlmock new: %v", err)
			}
			defer func() { _ = db.Close() }()

			var gotDriver, gotDSN string
			old := sqlOpener
			sqlOpener = func(driverName, dsn string) (*sql.DB, error) {
				gotDriver, gotDSN = driverName, dsn
				if tc.openErr != nil {
					return nil, tc.openErr
				}
				return db, nil
			}
			t.Cleanup(func() { sqlOpener = old })

			if tc.openErr == nil {
				mock.ExpectPing().WillReturnError(tc.pingErr)
				if tc.pingErr != nil {
					mock.ExpectClose()
				}
			}

			got, err := InitPostgres(storeConfig())
			if gotDriver != "postgres" || gotDSN != "postgres://report:secret@db:5433/floorsheet?sslmode=require" {
				t.Fatalf("opened %q with %q", gotDriver, gotDSN)
			}
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("err = %v, want %q", err, tc.wantErr)
				}
				if got != nil {
					t.Fatalf("expected nil db on error")
				}
			} else if err != nil || got != db {
				t.Fatalf("InitPostgres: db=%v err=%v", got, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestOpenStore(t *testing.T) {
	t.Run("migrates the opened pool", func(t *testing.T) {
		db, _ := stubStore(t, nil)
		var migrated *sql.DB
		migrator = func(d *sql.DB) error { migrated = d; return nil }

		got, err := OpenStore(storeConfig())
		if err != nil || got != db || migrated != db {
			t.Fatalf("OpenStore: db=%v migrated=%v err=%v", got, migrated, err)
		}
	})

	t.Run("migration failure closes the pool", func(t *testing.T) {
		_, mock := stubStore(t, errors.New("dirty database version 2"))
		mock.ExpectClose()

		got, err := OpenStore(storeConfig())
		if got != nil || err == nil || !strings.HasPrefix(err.Error(), "failed to migrate: dirty database version 2") {
			t.Fatalf("OpenStore: db=%v err=%v", got, err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("pool not closed: %v", err)
		}
	})

	t.Run("open failure skips migration", func(t *testing.T) {
		stubStore(t, nil)
		called := false
		migrator = func(*sql.DB) error { called = true; return nil }
		postgresOpener = func(config.Config) (*sql.DB, error) { return nil, errors.New("refused") }

		if _, err := OpenStore(storeConfig()); err == nil || called {
			t.Fatalf("err=%v migrated=%v", err, called)
		}
	})
}
