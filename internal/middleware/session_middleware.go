package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// LocalSessionID is the context key holding the customer's session ID.
const LocalSessionID = "session_id"

// CartSession makes sure every request carries a session; a new session is
// saved right away so the client receives its cookie.
func CartSession(store *session.Store, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			logger.Error("Failed to load session", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not load session",
			})
		}

		// The session must not be used after Save, so read its ID first.
		sessionID := sess.ID()
		if sess.Fresh() {
			sess.Set("started_at", time.Now().Unix())
			if err := sess.Save(); err != nil {
				logger.Error("Failed to save session", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Could not save session",
				})
			}
		}

		c.Locals(LocalSessionID, sessionID)
		return c.Next()
	}
}

// SessionID returns the session ID stored by CartSession.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}
