package funding

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/p2p-exchange/p2p_exchange/internal/ledger"
)

// Handler exposes deposit endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a funding handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type depositRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type cardDepositRequest struct {
	Amount              string `json:"amount"`
	SourceCurrency      string `json:"source_currency"`
	DestinationCurrency string `json:"destination_currency"`
}

// Deposit processes a plain wallet top-up.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Deposit(c.UserContext(), DepositInput{
		WalletID: walletID,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		return depositError(err)
	}
	return c.Status(http.StatusCreated).JSON(depositResponse(res))
}

// CardDeposit processes a card-funded top-up gated on provider authorization.
func (h *Handler) CardDeposit(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	var req cardDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.CardDeposit(c.UserContext(), CardDepositInput{
		WalletID:            walletID,
		Amount:              req.Amount,
		SourceCurrency:      req.SourceCurrency,
		DestinationCurrency: req.DestinationCurrency,
	})
	if err != nil {
		return depositError(err)
	}
	return c.Status(http.StatusCreated).JSON(depositResponse(res))
}

func depositError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	case errors.Is(err, ledger.ErrUnknownCurrency):
		return fiber.NewError(http.StatusBadRequest, "unsupported currency")
	case errors.Is(err, ErrAuthorizationFailed):
		return fiber.NewError(http.StatusPaymentRequired, "payment authorization failed")
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}

func depositResponse(res DepositResult) fiber.Map {
	return fiber.Map{
		"transaction_id":    res.Transaction.ID,
		"new_balance":       res.NewBalance.StringFixed(2),
		"notice":            res.Notice,
		"payment_intent_id": res.PaymentIntentID,
		"completed_at":      res.CompletedAt,
	}
}
