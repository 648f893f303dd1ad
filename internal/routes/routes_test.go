package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/p2p-exchange/p2p_exchange/internal/config"
	"github.com/p2p-exchange/p2p_exchange/internal/logging"
	"github.com/p2p-exchange/p2p_exchange/internal/notices"
	"github.com/p2p-exchange/p2p_exchange/internal/rates"
)

func newTestApp(t *testing.T) (*fiber.App, *notices.Center) {
	t.Helper()
	center := notices.NewCenter(time.Minute, logging.Discard())
	t.Cleanup(center.Close)

	app := fiber.New()
	deps := Deps{
		Cfg:     config.Config{AppName: "P2PExchange", Env: "development"},
		Rates:   rates.DefaultTable(),
		Notices: center,
		Logger:  logging.Discard(),
	}
	if err := Setup(app, deps); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app, center
}

func doJSON(t *testing.T, app *fiber.App, method, path, userID string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func completeVerification(t *testing.T, app *fiber.App, userID string) {
	t.Helper()
	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/kyc", userID, fiber.Map{
		"personal": fiber.Map{
			"full_name":     "Ada Lovelace",
			"date_of_birth": "1990-12-10",
			"nationality":   "GB",
		},
		"contact": fiber.Map{
			"phone":   "+442071234567",
			"address": "1 Analytical Way",
			"city":    "London",
			"country": "GB",
		},
		"documents": fiber.Map{
			"id_type":   "passport",
			"id_number": "P1234567",
			"id_front":  "uploads/p-front.png",
			"selfie":    "uploads/selfie.png",
		},
		"additional": fiber.Map{
			"occupation":      "engineer",
			"source_of_funds": "salary",
		},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("verification submit returned %d", status)
	}
}

func TestWalletLifecycleOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/v1/signup", "", fiber.Map{
		"email":    "ada@example.com",
		"name":     "Ada",
		"password": "correct-horse",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("signup returned %d: %v", status, body)
	}
	userID, _ := body["user_id"].(string)
	walletID, _ := body["wallet_id"].(string)
	if userID == "" || walletID == "" {
		t.Fatalf("signup response missing ids: %v", body)
	}

	// Wallet routes are gated until verification completes.
	status, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/wallets/me", userID, nil)
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 before verification, got %d", status)
	}

	completeVerification(t, app, userID)

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/wallets/me", userID, nil)
	if status != fiber.StatusOK {
		t.Fatalf("wallets/me returned %d: %v", status, body)
	}
	if got, _ := body["wallet_id"].(string); got != walletID {
		t.Fatalf("wallets/me returned wallet %q, want %q", got, walletID)
	}

	status, body = doJSON(t, app, fiber.MethodPost, "/api/v1/wallets/"+walletID+"/deposits", userID, fiber.Map{
		"amount":   "250",
		"currency": "USD",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("deposit returned %d: %v", status, body)
	}
	if got, _ := body["new_balance"].(string); got != "250.00" {
		t.Fatalf("deposit new_balance = %q, want 250.00", got)
	}

	status, body = doJSON(t, app, fiber.MethodPost, "/api/v1/wallets/"+walletID+"/send", userID, fiber.Map{
		"amount":        "100",
		"from_currency": "USD",
		"to_currency":   "EUR",
		"recipient":     "Grace",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("send returned %d: %v", status, body)
	}
	if got, _ := body["new_balance"].(string); got != "150.00" {
		t.Fatalf("send new_balance = %q, want 150.00", got)
	}

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/wallets/"+walletID+"/transactions", userID, nil)
	if status != fiber.StatusOK {
		t.Fatalf("transactions returned %d: %v", status, body)
	}
	txs, _ := body["transactions"].([]any)
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	newest, _ := txs[0].(map[string]any)
	if kind, _ := newest["kind"].(string); kind != "send" {
		t.Fatalf("newest transaction kind = %q, want send", kind)
	}

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/wallets/"+walletID+"/notice", userID, nil)
	if status != fiber.StatusOK {
		t.Fatalf("notice returned %d: %v", status, body)
	}
	if level, _ := body["level"].(string); level != "info" {
		t.Fatalf("notice level = %q, want info", level)
	}

	status, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/wallets/"+walletID+"/notice", userID, nil)
	if status != fiber.StatusNoContent {
		t.Fatalf("dismiss notice returned %d", status)
	}
}

func TestPublicRatesAndOrders(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, fiber.MethodGet, "/api/v1/rates/USD/EUR", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("rates pair returned %d: %v", status, body)
	}
	if rate, _ := body["rate"].(string); rate != "0.85" {
		t.Fatalf("USD/EUR rate = %q, want 0.85", rate)
	}

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/rates/USD/XXX", "", nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("unknown pair returned %d: %v", status, body)
	}

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/orders", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("orders returned %d: %v", status, body)
	}
	orders, _ := body["orders"].([]any)
	if len(orders) == 0 {
		t.Fatalf("expected seeded orders, got none")
	}
}
