package kyc

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes verification endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a verification handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit accepts the completed verification form for the calling user.
func (h *Handler) Submit(c *fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing X-User-ID header")
	}
	var sub Submission
	if err := c.BodyParser(&sub); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.Submit(c.UserContext(), userID, sub); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user_id": userID, "completed": true})
}

// Status reports the calling user's verification state.
func (h *Handler) Status(c *fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing X-User-ID header")
	}
	completed, err := h.service.Status(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user_id": userID, "completed": completed})
}
