// Package activity implements the audit middleware wrapping mutating routes.
package activity

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/auth"
	"github.com/udrembiga/manajemen-ud/internal/db/controller/activitylog"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

// Log records who performed the wrapped mutation on which entity, including
// the request payload and the response status. A failed recording never
// fails the request.
func Log(db *gorm.DB, action models.ActivityAction, entityType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// the request body is consumed downstream, keep a copy
		body := make([]byte, len(c.Body()))
		copy(body, c.Body())

		err := c.Next()
		if err != nil {
			return err
		}

		entry := models.ActivityLog{
			Action:     action,
			EntityType: entityType,
			Method:     c.Method(),
			Path:       c.OriginalURL(),
			StatusCode: c.Response().StatusCode(),
		}

		if identity, ok := auth.IdentityFrom(c); ok {
			entry.UserID = identity.UserID
			entry.Username = identity.Username
		}

		if id, parseErr := strconv.ParseUint(c.Params("id"), 10, 64); parseErr == nil {
			entry.EntityID = id
		}

		if json.Valid(body) {
			entry.Payload = datatypes.JSON(body)
		}

		if recordErr := activitylog.Record(db, &entry); recordErr != nil {
			log.Error().Err(recordErr).
				Str("entity", entityType).
				Str("action", string(action)).
				Msg("failed to record activity")
		}

		return nil
	}
}
