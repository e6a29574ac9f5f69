// Package daemon wires configuration, database and web service together.
package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/udrembiga/manajemen-ud/internal/config"
	"github.com/udrembiga/manajemen-ud/internal/db"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
	"github.com/udrembiga/manajemen-ud/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	cfg        *config.Config
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// WaitShutdown blocks until a termination signal and drains the web service.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		panic("failed to connect database")
	}

	if err = gormDB.AutoMigrate(
		&models.Setting{},
		&models.UD{},
		&models.User{},
		&models.Transaksi{},
		&models.TransaksiItem{},
		&models.ActivityLog{},
	); err != nil {
		panic("failed to migrate database")
	}

	// seeding finishes before the web service accepts traffic
	Seed(cfg, gormDB)

	return &Daemon{
		webService: web.New(cfg, gormDB),
		cfg:        cfg,
	}
}
