package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/p2p-exchange/p2p_exchange/internal/ledger"
	"github.com/p2p-exchange/p2p_exchange/internal/money"
)

const statusActive = "active"

// Service exposes wallet operations backed by the ledger. Balance mutation is
// never done here; it is funneled exclusively through the transfer and
// funding services.
type Service struct {
	repo       Repository
	ledger     ledger.Ledger
	currencies []string
}

// NewService builds a wallet service. A nil currency set falls back to the
// default supported currencies.
func NewService(repo Repository, led ledger.Ledger, currencies []string) *Service {
	if len(currencies) == 0 {
		currencies = money.Currencies
	}
	return &Service{repo: repo, ledger: led, currencies: currencies}
}

// CreateInput captures data required to create a wallet.
type CreateInput struct {
	OwnerID string
}

// Create provisions a wallet and a zeroed balance sheet for the supported
// currency set.
func (s *Service) Create(ctx context.Context, input CreateInput) (Wallet, error) {
	if _, err := uuid.Parse(input.OwnerID); err != nil {
		return Wallet{}, err
	}

	walletID := uuid.New().String()
	if err := s.ledger.CreateSheet(ctx, walletID, s.currencies); err != nil {
		return Wallet{}, err
	}

	wallet := Wallet{
		ID:         walletID,
		OwnerID:    input.OwnerID,
		Currencies: s.currencies,
		Status:     statusActive,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, wallet); err != nil {
		return Wallet{}, err
	}
	return wallet, nil
}

// Get retrieves wallet metadata.
func (s *Service) Get(ctx context.Context, id string) (Wallet, error) {
	return s.repo.Get(ctx, id)
}

// GetByOwner retrieves the wallet provisioned for an owner.
func (s *Service) GetByOwner(ctx context.Context, ownerID string) (Wallet, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// Balances returns the wallet's full balance sheet.
func (s *Service) Balances(ctx context.Context, id string) (BalanceSheet, error) {
	wallet, err := s.repo.Get(ctx, id)
	if err != nil {
		return BalanceSheet{}, err
	}
	amounts, err := s.ledger.Balances(ctx, wallet.ID)
	if err != nil {
		return BalanceSheet{}, err
	}
	return BalanceSheet{WalletID: wallet.ID, Amounts: amounts, AsOf: time.Now().UTC()}, nil
}

// History returns the wallet's transactions, most recent first.
func (s *Service) History(ctx context.Context, id string) ([]ledger.Transaction, error) {
	wallet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ledger.History(ctx, wallet.ID)
}
