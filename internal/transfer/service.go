package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/p2p-exchange/p2p_exchange/internal/ledger"
	"github.com/p2p-exchange/p2p_exchange/internal/money"
	"github.com/p2p-exchange/p2p_exchange/internal/notices"
	"github.com/p2p-exchange/p2p_exchange/internal/rates"
	"github.com/p2p-exchange/p2p_exchange/internal/wallet"
)

// ErrNotOwner indicates the caller does not own the source wallet.
var ErrNotOwner = errors.New("not owner of source wallet")

// Service runs the send operation: validate, debit the source currency,
// record the transaction and publish the outcome notice. Each call is a new
// financial event; deduplication lives at the HTTP boundary.
type Service struct {
	ledger  ledger.Ledger
	wallets *wallet.Service
	rates   rates.Source
	notices *notices.Center
}

// NewService constructs a transfer service.
func NewService(led ledger.Ledger, wallets *wallet.Service, rateSource rates.Source, center *notices.Center) *Service {
	return &Service{ledger: led, wallets: wallets, rates: rateSource, notices: center}
}

// SendInput captures user input for a send. Amount arrives as the raw string
// the user typed so validation owns the parse.
type SendInput struct {
	WalletID        string
	Amount          string
	FromCurrency    string
	ToCurrency      string
	Recipient       string
	RequestorUserID string
}

// SendResult describes a completed send.
type SendResult struct {
	Transaction ledger.Transaction
	NewBalance  decimal.Decimal
	Converted   decimal.Decimal
	Notice      string
	CompletedAt time.Time
}

// Send moves funds out of the wallet. Only the source currency is debited;
// the converted amount is computed for the notice text, not as a balance
// effect.
func (s *Service) Send(ctx context.Context, input SendInput) (SendResult, error) {
	amount, err := money.ParseAmount(input.Amount)
	if err != nil {
		return SendResult{}, ledger.ErrInvalidInput
	}
	recipient := strings.TrimSpace(input.Recipient)
	if recipient == "" {
		return SendResult{}, ledger.ErrInvalidInput
	}

	w, err := s.wallets.Get(ctx, input.WalletID)
	if err != nil {
		return SendResult{}, err
	}
	if input.RequestorUserID != "" && w.OwnerID != input.RequestorUserID {
		return SendResult{}, ErrNotOwner
	}

	rate, err := s.rates.Rate(ctx, input.FromCurrency, input.ToCurrency)
	if err != nil {
		return SendResult{}, err
	}

	res, err := s.ledger.Send(ctx, w.ID, amount, input.FromCurrency, input.ToCurrency, recipient)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) && s.notices != nil {
			s.notices.Publish(w.ID, "Insufficient balance")
		}
		return SendResult{}, err
	}

	converted := amount.Mul(rate)
	notice := fmt.Sprintf("Successfully sent %s %s (%s %s) to %s",
		amount.String(), res.Transaction.FromCurrency, converted.StringFixed(2), res.Transaction.ToCurrency, recipient)
	if s.notices != nil {
		s.notices.Publish(w.ID, notice)
	}

	return SendResult{
		Transaction: res.Transaction,
		NewBalance:  res.NewBalance,
		Converted:   converted,
		Notice:      notice,
		CompletedAt: time.Now().UTC(),
	}, nil
}
