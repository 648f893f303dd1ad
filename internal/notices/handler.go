package notices

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the per-wallet notice banner.
type Handler struct {
	center *Center
}

// NewHandler constructs a notices handler.
func NewHandler(center *Center) *Handler {
	return &Handler{center: center}
}

// Current returns the wallet's active notice, or 204 when none is showing.
func (h *Handler) Current(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	n, ok := h.center.Current(walletID)
	if !ok {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"level":  n.Level,
		"text":   n.Text,
		"sticky": n.Sticky,
		"at":     n.At,
	})
}

// Dismiss clears the wallet's notice.
func (h *Handler) Dismiss(c *fiber.Ctx) error {
	h.center.Clear(c.Params("walletId"))
	return c.SendStatus(http.StatusNoContent)
}
