package funding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/p2p-exchange/p2p_exchange/internal/ledger"
	"github.com/p2p-exchange/p2p_exchange/internal/money"
	"github.com/p2p-exchange/p2p_exchange/internal/notices"
	"github.com/p2p-exchange/p2p_exchange/internal/wallet"
)

// Service runs the deposit operations: the plain local credit and the
// card-funded variant gated on provider authorization.
type Service struct {
	ledger   ledger.Ledger
	wallets  *wallet.Service
	provider Provider
	notices  *notices.Center
}

// NewService prepares a funding service. A nil provider falls back to the
// static simulator.
func NewService(led ledger.Ledger, wallets *wallet.Service, provider Provider, center *notices.Center) (*Service, error) {
	if wallets == nil {
		return nil, fmt.Errorf("wallet service is required")
	}
	if provider == nil {
		provider = StaticProvider{}
	}
	return &Service{ledger: led, wallets: wallets, provider: provider, notices: center}, nil
}

// DepositInput captures user input for a deposit.
type DepositInput struct {
	WalletID string
	Amount   string
	Currency string
}

// CardDepositInput captures a card-funded deposit. The charge is taken in the
// source currency; the wallet is credited in the destination currency.
type CardDepositInput struct {
	WalletID            string
	Amount              string
	SourceCurrency      string
	DestinationCurrency string
}

// DepositResult describes a completed deposit.
type DepositResult struct {
	Transaction     ledger.Transaction
	NewBalance      decimal.Decimal
	Notice          string
	PaymentIntentID string
	CompletedAt     time.Time
}

// Deposit credits the wallet unconditionally (the local variant, no external
// authorization involved).
func (s *Service) Deposit(ctx context.Context, input DepositInput) (DepositResult, error) {
	amount, err := money.ParseAmount(input.Amount)
	if err != nil {
		return DepositResult{}, ledger.ErrInvalidInput
	}

	w, err := s.wallets.Get(ctx, input.WalletID)
	if err != nil {
		return DepositResult{}, err
	}

	res, err := s.ledger.Deposit(ctx, w.ID, amount, input.Currency)
	if err != nil {
		return DepositResult{}, err
	}

	return s.completed(w.ID, res, ""), nil
}

// CardDeposit authorizes a card charge with the provider and credits the
// wallet strictly after the charge status reads succeeded. A cancelled
// context discards any authorization result that arrives late: the credit
// never runs.
func (s *Service) CardDeposit(ctx context.Context, input CardDepositInput) (DepositResult, error) {
	amount, err := money.ParseAmount(input.Amount)
	if err != nil {
		return DepositResult{}, ledger.ErrInvalidInput
	}

	w, err := s.wallets.Get(ctx, input.WalletID)
	if err != nil {
		return DepositResult{}, err
	}

	intent, err := s.provider.CreateIntent(ctx, IntentRequest{
		Amount:              amount,
		SourceCurrency:      input.SourceCurrency,
		DestinationCurrency: input.DestinationCurrency,
	})
	if err != nil {
		return DepositResult{}, s.authFailure(w.ID, err)
	}

	confirmation, err := s.provider.Confirm(ctx, intent.ClientSecret)
	if err != nil {
		return DepositResult{}, s.authFailure(w.ID, err)
	}

	status, err := s.provider.Status(ctx, confirmation.PaymentIntentID)
	if err != nil {
		return DepositResult{}, s.authFailure(w.ID, err)
	}
	if status != StatusSucceeded {
		return DepositResult{}, s.authFailure(w.ID, fmt.Errorf("%w: charge status %q", ErrAuthorizationFailed, status))
	}

	// The flow may have been cancelled while the authorization round trip
	// was in flight; an authorization that lands after cancellation must
	// not credit.
	if err := ctx.Err(); err != nil {
		return DepositResult{}, err
	}

	res, err := s.ledger.Deposit(ctx, w.ID, amount, input.DestinationCurrency)
	if err != nil {
		return DepositResult{}, err
	}

	return s.completed(w.ID, res, confirmation.PaymentIntentID), nil
}

func (s *Service) completed(walletID string, res ledger.DepositResult, paymentIntentID string) DepositResult {
	notice := fmt.Sprintf("Successfully added %s to your wallet",
		money.Format(res.Transaction.Amount, res.Transaction.ToCurrency))
	if s.notices != nil {
		s.notices.Publish(walletID, notice)
	}
	return DepositResult{
		Transaction:     res.Transaction,
		NewBalance:      res.NewBalance,
		Notice:          notice,
		PaymentIntentID: paymentIntentID,
		CompletedAt:     time.Now().UTC(),
	}
}

func (s *Service) authFailure(walletID string, cause error) error {
	if s.notices != nil {
		s.notices.Fail(walletID, "Payment authorization failed")
	}
	if errors.Is(cause, ErrAuthorizationFailed) {
		return cause
	}
	return fmt.Errorf("%w: %v", ErrAuthorizationFailed, cause)
}
