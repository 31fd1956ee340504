package app

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/spimexpulse/config"
	"github.com/guttosm/spimexpulse/internal/api"
	"github.com/guttosm/spimexpulse/internal/service"
	"github.com/guttosm/spimexpulse/internal/storage"
)

// InitializeApp sets up the read API and returns a configured Gin router,
// a cleanup function for graceful shutdown, and any initialization error.
//
// Responsibilities:
//   - Connects to PostgreSQL and applies migrations when DB_AUTO_MIGRATE is set.
//   - Wires repository, service and HTTP handler layers.
//   - Registers health and readiness probes.
//   - Provides a cleanup function that closes the DB connection.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	repo := storage.NewTradingResultsRepository(db)
	svc := service.NewResultsService(repo)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
