package http

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio-site/internal/platform/logger"
)

// AdminMiddleware gates every mutation. With a token configured, requests
// must carry it as a bearer token.
type AdminMiddleware struct {
	log     *logger.Logger
	enabled bool
	token   string
}

func NewAdminMiddleware(log *logger.Logger, enabled bool, token string) *AdminMiddleware {
	return &AdminMiddleware{log: log.With("middleware", "admin"), enabled: enabled, token: token}
}

func (am *AdminMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !am.enabled {
			return fiber.NewError(fiber.StatusForbidden, "admin mode is disabled")
		}
		if am.token == "" {
			return c.Next()
		}
		got := bearerToken(c)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(am.token)) != 1 {
			am.log.Warn("admin request rejected", "path", c.Path(), "ip", c.IP())
			return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid token")
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status, _ = statusFor(err)
		}
		log.Debug("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start).String(),
		)
		return err
	}
}
