package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/p2p-exchange/p2p_exchange/internal/kyc"
)

func setupGateApp(t *testing.T) (*fiber.App, kyc.Store) {
	t.Helper()
	store := kyc.NewMemoryStore()
	app := fiber.New()
	app.Get("/wallet", KYCGate(store), func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		return c.JSON(fiber.Map{"user_id": uid})
	})
	return app, store
}

func TestKYCGateRequiresHeader(t *testing.T) {
	app, _ := setupGateApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/wallet", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestKYCGateBlocksUnverifiedUsers(t *testing.T) {
	app, store := setupGateApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/wallet", nil)
	req.Header.Set("X-User-ID", "u1")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 before verification, got %d", resp.StatusCode)
	}

	if err := store.SetCompleted(context.Background(), "u1"); err != nil {
		t.Fatalf("set completed: %v", err)
	}

	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 after verification, got %d", resp.StatusCode)
	}
}
