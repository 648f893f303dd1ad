package identity

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/p2p-exchange/p2p_exchange/internal/wallet"
)

// Handler exposes identity endpoints and auto-provisions a wallet on signup.
type Handler struct {
	service *Service
	wallets *wallet.Service
	logger  *slog.Logger
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service, wallets *wallet.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, wallets: wallets, logger: logger}
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles user onboarding and provisions the user's wallet.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Register(c.UserContext(), Credentials{Email: req.Email, Name: req.Name, Password: req.Password})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	var walletID string
	if h.wallets != nil {
		w, err := h.wallets.Create(c.UserContext(), wallet.CreateInput{OwnerID: user.ID})
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		walletID = w.ID
	}

	if h.logger != nil {
		h.logger.Info("identity.signup completed",
			slog.String("user_id", user.ID),
			slog.String("email", user.Email),
			slog.String("wallet_id", walletID),
		)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user_id":   user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"wallet_id": walletID,
	})
}

// Login verifies credentials.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Authenticate(c.UserContext(), Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
	})
}
