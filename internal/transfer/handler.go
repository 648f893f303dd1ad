package transfer

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/p2p-exchange/p2p_exchange/internal/ledger"
	"github.com/p2p-exchange/p2p_exchange/internal/rates"
)

// Handler exposes the send endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a transfer handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type sendRequest struct {
	Amount       string `json:"amount"`
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	Recipient    string `json:"recipient"`
}

// Send processes an outbound transfer from the wallet.
func (h *Handler) Send(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)

	res, err := h.service.Send(c.UserContext(), SendInput{
		WalletID:        walletID,
		Amount:          req.Amount,
		FromCurrency:    req.FromCurrency,
		ToCurrency:      req.ToCurrency,
		Recipient:       req.Recipient,
		RequestorUserID: uid,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidInput):
			return fiber.NewError(http.StatusBadRequest, "invalid amount or recipient")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, "insufficient balance")
		case errors.Is(err, ledger.ErrUnknownCurrency), errors.Is(err, rates.ErrUnknownPair):
			return fiber.NewError(http.StatusBadRequest, "unsupported currency")
		case errors.Is(err, ErrNotOwner):
			return fiber.NewError(http.StatusForbidden, "not owner of source wallet")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction_id":   res.Transaction.ID,
		"new_balance":      res.NewBalance.StringFixed(2),
		"converted_amount": res.Converted.StringFixed(2),
		"notice":           res.Notice,
		"completed_at":     res.CompletedAt,
	})
}
