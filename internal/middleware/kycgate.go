package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/p2p-exchange/p2p_exchange/internal/kyc"
)

// KYCGate blocks wallet operations until the caller has completed identity
// verification. The caller is identified by the X-User-ID header; the flag
// is read from the verification store on every request.
func KYCGate(store kyc.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing X-User-ID header")
		}

		completed, err := store.Completed(c.UserContext(), userID)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, "verification lookup failed")
		}
		if !completed {
			return fiber.NewError(http.StatusForbidden, "identity verification required")
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
