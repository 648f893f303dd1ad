package wallet

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/p2p-exchange/p2p_exchange/internal/money"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Balances returns the wallet's balance sheet with display strings.
func (h *Handler) Balances(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	sheet, err := h.service.Balances(c.UserContext(), walletID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}

	balances := make(map[string]fiber.Map, len(sheet.Amounts))
	for currency, amount := range sheet.Amounts {
		balances[currency] = fiber.Map{
			"amount":  amount.StringFixed(2),
			"display": money.Format(amount, currency),
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallet_id": sheet.WalletID,
		"balances":  balances,
		"as_of":     sheet.AsOf,
	})
}

// Me resolves the calling user's wallet.
func (h *Handler) Me(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing user identity")
	}
	w, err := h.service.GetByOwner(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallet_id":  w.ID,
		"owner_id":   w.OwnerID,
		"currencies": w.Currencies,
		"status":     w.Status,
		"created_at": w.CreatedAt,
	})
}

// History returns the wallet's transaction records, most recent first.
func (h *Handler) History(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	history, err := h.service.History(c.UserContext(), walletID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}

	records := make([]fiber.Map, 0, len(history))
	for _, tx := range history {
		records = append(records, fiber.Map{
			"id":            tx.ID,
			"kind":          tx.Kind,
			"amount":        tx.Amount.StringFixed(2),
			"from_currency": tx.FromCurrency,
			"to_currency":   tx.ToCurrency,
			"counterparty":  tx.Counterparty,
			"date":          tx.Date,
			"status":        tx.Status,
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallet_id":    walletID,
		"transactions": records,
	})
}
