package rates

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes exchange rate endpoints backed by the live table.
type Handler struct {
	table *Table
}

// NewHandler constructs a rates handler.
func NewHandler(table *Table) *Handler {
	return &Handler{table: table}
}

// List returns the current per-USD quote for every supported currency.
func (h *Handler) List(c *fiber.Ctx) error {
	snapshot := h.table.Snapshot()
	quotes := make(map[string]string, len(snapshot))
	for code, quote := range snapshot {
		quotes[code] = quote.String()
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"base":   "USD",
		"quotes": quotes,
		"as_of":  time.Now().UTC().Format(time.RFC3339),
	})
}

// Pair returns the cross rate between two currencies.
func (h *Handler) Pair(c *fiber.Ctx) error {
	from := c.Params("from")
	to := c.Params("to")
	rate, err := h.table.Rate(c.UserContext(), from, to)
	if err != nil {
		if errors.Is(err, ErrUnknownPair) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"from": from,
		"to":   to,
		"rate": rate.String(),
	})
}
