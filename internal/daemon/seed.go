package daemon

import (
	"errors"

	"github.com/dchest/uniuri"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/config"
	settingctl "github.com/udrembiga/manajemen-ud/internal/db/controller/setting"
	userctl "github.com/udrembiga/manajemen-ud/internal/db/controller/user"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

// generatedPasswordLen for bootstrap superuser passwords.
const generatedPasswordLen = 24

// Seed ensures the settings row and the bootstrap superuser exist.
// Best effort: every failure is logged and swallowed, the service starts
// regardless. Running it twice changes nothing.
func Seed(cfg *config.Config, db *gorm.DB) {
	log.Info().Msg("initial seeding started")

	seedSettings(db)
	seedSuperuser(cfg, db)

	log.Info().Msg("initial seeding completed")
}

// seedSettings creates the singleton settings row with defaults if missing.
func seedSettings(db *gorm.DB) {
	setting, err := settingctl.Get(db)
	if err != nil {
		log.Error().Err(err).Msg("seeding settings failed")
		return
	}

	log.Info().Bool("isRegistrationAllowed", setting.IsRegistrationAllowed).Msg("settings present")
}

// seedSuperuser ensures a superuser exists at the configured bootstrap
// email, promoting an existing account if necessary.
func seedSuperuser(cfg *config.Config, db *gorm.DB) {
	email := cfg.Seed.SuperuserEmail
	if email == "" {
		log.Warn().Msg("no superuser email configured, skipping superuser seeding")
		return
	}

	existing, err := userctl.FindByEmail(db, email)

	switch {
	case err == nil:
		if existing.Role == models.RoleSuperuser {
			log.Info().Str("email", email).Msg("superuser already exists")
			return
		}

		role := models.RoleSuperuser
		if _, err := userctl.Update(db, existing.ID, userctl.UpdateInput{Role: &role}); err != nil {
			log.Error().Err(err).Str("email", email).Msg("promoting existing user to superuser failed")
			return
		}

		log.Info().Str("email", email).Msg("existing user promoted to superuser")
	case errors.Is(err, userctl.ErrUserNotFound):
		createSuperuser(cfg, db)
	default:
		log.Error().Err(err).Str("email", email).Msg("seeding superuser failed")
	}
}

func createSuperuser(cfg *config.Config, db *gorm.DB) {
	var (
		password  = cfg.Seed.SuperuserPassword
		generated bool
	)

	if password == "" {
		password = uniuri.NewLen(generatedPasswordLen)
		generated = true
	}

	username := cfg.Seed.SuperuserUsername
	if username == "" {
		username = "superuser"
	}

	u, err := userctl.Create(db, userctl.CreateInput{
		Username: username,
		Email:    cfg.Seed.SuperuserEmail,
		Password: password,
		Role:     models.RoleSuperuser,
	})
	if err != nil {
		log.Error().Err(err).Str("email", cfg.Seed.SuperuserEmail).Msg("creating superuser failed")
		return
	}

	if generated {
		if err := db.Model(u).Update("must_change_password", true).Error; err != nil {
			log.Error().Err(err).Msg("marking superuser for password rotation failed")
		}

		// shown exactly once, rotation is forced on first login
		log.Warn().
			Str("email", u.Email).
			Str("password", password).
			Msg("superuser created with generated password")

		return
	}

	log.Info().Str("email", u.Email).Msg("superuser created")
}
