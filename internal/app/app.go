package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/floorsheet/config"
	"github.com/guttosm/floorsheet/internal/api"
	"github.com/guttosm/floorsheet/internal/metrics"
	"github.com/guttosm/floorsheet/internal/service"
	"github.com/guttosm/floorsheet/internal/storage"
)

// InitializeApp wires the query API: Postgres (migrated), repository,
// service, handler, router and health probes. The returned cleanup closes
// the database and should run on shutdown.
//
// m may be nil to serve without /metrics.
func InitializeApp(m *metrics.Metrics) (*gin.Engine, func(), error) {
	db, err := OpenStore(config.AppConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewReportRepository(db)
	svc := service.NewBrokerService(repo)
	router := api.NewRouter(api.NewHandler(svc), m)
	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}
	return router, cleanup, nil
}

// InitializeStore returns the report repository the pipeline persists to,
// plus a cleanup that closes the connection.
func InitializeStore() (storage.ReportRepository, func(), error) {
	db, err := OpenStore(config.AppConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	return storage.NewReportRepository(db), func() { _ = db.Close() }, nil
}
