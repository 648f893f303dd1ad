package orderbook

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the mock order book endpoints.
type Handler struct {
	book *Book
}

// NewHandler constructs an order book handler.
func NewHandler(book *Book) *Handler {
	return &Handler{book: book}
}

type submitRequest struct {
	Side     string `json:"side"`
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
	Price    string `json:"price"`
	Trader   string `json:"trader"`
}

// List returns all orders, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"orders": h.book.List()})
}

// Submit adds an order to the book.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	order, err := h.book.Add(AddInput{
		Side:     req.Side,
		Currency: req.Currency,
		Amount:   req.Amount,
		Price:    req.Price,
		Trader:   req.Trader,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidOrder) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(order)
}

// Stats returns aggregate book statistics.
func (h *Handler) Stats(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.book.Stats())
}
