package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the response (and accepted request) header carrying the ray id.
	Header = "X-Ray-ID"
	// LocalsKey is the fiber.Ctx locals key the ray id is stored under.
	LocalsKey = "ray_id"
)

// New returns a middleware that assigns every request a ray id. An incoming
// X-Ray-ID header is reused so callers can correlate across services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
