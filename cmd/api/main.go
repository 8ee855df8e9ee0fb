package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/db/migrate"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg)

	if cfg.Timezone != "" && !timezone.IsValid(cfg.Timezone) {
		log.WithField("timezone", cfg.Timezone).Warn("unknown timezone, using system clock")
	}
	timezone.Configure(cfg.Timezone)

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer dbpkg.Close(db)

	// ======================================================
	// 🔧 MIGRAÇÕES (falha aborta a inicialização)
	// ======================================================
	runner := migrate.NewRunner(db, migrate.Catalog(migrate.CatalogOptions{
		AdminPassword: cfg.AdminInitialPassword,
	}), log)
	if _, err := runner.Run(context.Background()); err != nil {
		log.WithError(err).Fatal("database migration failed")
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	app := routes.RegisterRoutes(r, db, cfg, log)
	defer app.Close()

	log.Infof("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.WithError(err).Error("failed to start server")
	}
}
