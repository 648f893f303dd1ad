package funding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/p2p-exchange/p2p_exchange/internal/ledger"
	"github.com/p2p-exchange/p2p_exchange/internal/logging"
	"github.com/p2p-exchange/p2p_exchange/internal/notices"
	"github.com/p2p-exchange/p2p_exchange/internal/wallet"
)

func setup(t *testing.T, provider Provider) (ledger.Ledger, *notices.Center, *Service, wallet.Wallet) {
	t.Helper()
	led := ledger.NewInMemory()
	repo := wallet.NewMemoryRepository()
	walletSvc := wallet.NewService(repo, led, nil)
	center := notices.NewCenter(time.Minute, logging.Discard())
	t.Cleanup(center.Close)

	svc, err := NewService(led, walletSvc, provider, center)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	w, err := walletSvc.Create(context.Background(), wallet.CreateInput{OwnerID: uuid.NewString()})
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	return led, center, svc, w
}

func TestDepositCreditsAndRecords(t *testing.T) {
	_, center, svc, w := setup(t, nil)

	ctx := context.Background()
	res, err := svc.Deposit(ctx, DepositInput{WalletID: w.ID, Amount: "250", Currency: "USD"})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	if !res.NewBalance.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected balance 250, got %s", res.NewBalance)
	}
	if res.Transaction.Kind != ledger.KindDeposit || res.Transaction.Counterparty != ledger.DepositCounterparty {
		t.Fatalf("unexpected record: %+v", res.Transaction)
	}
	if _, ok := center.Current(w.ID); !ok {
		t.Fatal("expected success notice")
	}
}

func TestDepositRejectsInvalidAmount(t *testing.T) {
	led, _, svc, w := setup(t, nil)

	ctx := context.Background()
	for _, amount := range []string{"", "abc", "0", "-20"} {
		if _, err := svc.Deposit(ctx, DepositInput{WalletID: w.ID, Amount: amount, Currency: "USD"}); !errors.Is(err, ledger.ErrInvalidInput) {
			t.Fatalf("amount %q: expected ErrInvalidInput, got %v", amount, err)
		}
	}

	balance, _ := led.Balance(ctx, w.ID, "USD")
	if !balance.IsZero() {
		t.Fatalf("balance changed on invalid input: %s", balance)
	}
}

func TestCardDepositCreditsAfterAuthorization(t *testing.T) {
	_, _, svc, w := setup(t, StaticProvider{})

	res, err := svc.CardDeposit(context.Background(), CardDepositInput{
		WalletID:            w.ID,
		Amount:              "100",
		SourceCurrency:      "USD",
		DestinationCurrency: "USD",
	})
	if err != nil {
		t.Fatalf("card deposit: %v", err)
	}
	if !res.NewBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance 100, got %s", res.NewBalance)
	}
	if res.PaymentIntentID == "" {
		t.Fatal("expected payment intent id on card deposit")
	}
}

func TestCardDepositDeclinedDoesNotCredit(t *testing.T) {
	led, center, svc, w := setup(t, StaticProvider{Outcome: "requires_payment_method"})

	ctx := context.Background()
	_, err := svc.CardDeposit(ctx, CardDepositInput{
		WalletID:            w.ID,
		Amount:              "100",
		SourceCurrency:      "USD",
		DestinationCurrency: "USD",
	})
	if !errors.Is(err, ErrAuthorizationFailed) {
		t.Fatalf("expected ErrAuthorizationFailed, got %v", err)
	}

	balance, _ := led.Balance(ctx, w.ID, "USD")
	if !balance.IsZero() {
		t.Fatalf("declined charge must not credit, got %s", balance)
	}
	history, _ := led.History(ctx, w.ID)
	if len(history) != 0 {
		t.Fatalf("declined charge must not record history: %+v", history)
	}

	n, ok := center.Current(w.ID)
	if !ok || !n.Sticky || n.Level != notices.LevelError {
		t.Fatalf("expected sticky failure banner, got %+v ok=%v", n, ok)
	}
}

// cancellingProvider authorizes the charge but cancels the caller's context
// before the status check returns, simulating a user abandoning the flow
// mid-authorization.
type cancellingProvider struct {
	cancel context.CancelFunc
}

func (p cancellingProvider) CreateIntent(_ context.Context, _ IntentRequest) (Intent, error) {
	return Intent{ClientSecret: "secret"}, nil
}

func (p cancellingProvider) Confirm(_ context.Context, _ string) (Confirmation, error) {
	return Confirmation{PaymentIntentID: "pi_1"}, nil
}

func (p cancellingProvider) Status(_ context.Context, _ string) (string, error) {
	p.cancel()
	return StatusSucceeded, nil
}

func TestCardDepositCancelledFlowNeverCredits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	led, _, svc, w := setup(t, cancellingProvider{cancel: cancel})

	_, err := svc.CardDeposit(ctx, CardDepositInput{
		WalletID:            w.ID,
		Amount:              "100",
		SourceCurrency:      "USD",
		DestinationCurrency: "USD",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	balance, _ := led.Balance(context.Background(), w.ID, "USD")
	if !balance.IsZero() {
		t.Fatalf("late authorization must be discarded, balance %s", balance)
	}
}
