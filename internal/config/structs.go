package config

import (
	"github.com/udrembiga/manajemen-ud/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}

// Auth holds the token settings for the JWT bearer authentication.
type Auth struct {
	JWTSecret          string // signing secret for issued tokens
	TokenExpiryMinutes int    // token lifetime, defaults to 60
}

// Seed holds the bootstrap credentials for the initial superuser account.
// An empty SuperuserPassword means a random one is generated at seed time.
type Seed struct {
	SuperuserUsername string
	SuperuserEmail    string
	SuperuserPassword string
}
