// Package db opens the gorm database connection for the configured engine.
package db

import (
	"github.com/glebarez/sqlite"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/config"
	"github.com/udrembiga/manajemen-ud/internal/db/dsn"
)

// Open connects to the configured database engine.
// TranslateError is enabled so unique constraint violations surface as
// gorm.ErrDuplicatedKey regardless of the driver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case config.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	return gorm.Open(dialector, &gorm.Config{TranslateError: true}) //nolint:wrapcheck
}
