package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresLedger persists balance sheets and transaction history in
// PostgreSQL. Balance rows carry a CHECK (amount >= 0) constraint so a
// negative balance can never be committed.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// CreateSheet provisions zero balances for the wallet's supported currencies.
func (l *PostgresLedger) CreateSheet(ctx context.Context, walletID string, currencies []string) error {
	id, err := uuid.Parse(walletID)
	if err != nil {
		return err
	}
	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	for _, c := range currencies {
		if _, err := tx.Exec(ctx, `INSERT INTO balances (wallet_id, currency, amount) VALUES ($1, $2, 0)
            ON CONFLICT (wallet_id, currency) DO NOTHING`, id, strings.ToUpper(c)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Balance returns the stored balance for one currency.
func (l *PostgresLedger) Balance(ctx context.Context, walletID, currency string) (decimal.Decimal, error) {
	id, err := uuid.Parse(walletID)
	if err != nil {
		return decimal.Zero, ErrUnknownWallet
	}
	var raw string
	err = l.db.QueryRow(ctx, `SELECT amount::text FROM balances WHERE wallet_id = $1 AND currency = $2`,
		id, strings.ToUpper(currency)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrUnknownCurrency
		}
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

// Balances returns the full balance sheet for the wallet.
func (l *PostgresLedger) Balances(ctx context.Context, walletID string) (map[string]decimal.Decimal, error) {
	id, err := uuid.Parse(walletID)
	if err != nil {
		return nil, ErrUnknownWallet
	}
	rows, err := l.db.Query(ctx, `SELECT currency, amount::text FROM balances WHERE wallet_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var currency, raw string
		if err := rows.Scan(&currency, &raw); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		out[currency] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrUnknownWallet
	}
	return out, nil
}

// Send debits the source currency and appends a send record in one
// transaction. The balance row is locked for the duration of the posting.
func (l *PostgresLedger) Send(ctx context.Context, walletID string, amount decimal.Decimal, fromCurrency, toCurrency, recipient string) (SendResult, error) {
	if !amount.IsPositive() || strings.TrimSpace(recipient) == "" {
		return SendResult{}, ErrInvalidInput
	}
	id, err := uuid.Parse(walletID)
	if err != nil {
		return SendResult{}, ErrUnknownWallet
	}
	fromCurrency = strings.ToUpper(fromCurrency)
	toCurrency = strings.ToUpper(toCurrency)

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return SendResult{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	balance, err := lockedBalance(ctx, tx, id, fromCurrency)
	if err != nil {
		return SendResult{}, err
	}
	if balance.LessThan(amount) {
		return SendResult{}, ErrInsufficientFunds
	}

	newBalance := balance.Sub(amount)
	if _, err := tx.Exec(ctx, `UPDATE balances SET amount = $1 WHERE wallet_id = $2 AND currency = $3`,
		newBalance.String(), id, fromCurrency); err != nil {
		return SendResult{}, err
	}

	record := Transaction{
		ID:           newTransactionID(),
		Kind:         KindSend,
		Amount:       amount,
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Counterparty: strings.TrimSpace(recipient),
		Date:         time.Now().UTC().Format("2006-01-02"),
		Status:       StatusCompleted,
	}
	if err := insertTransaction(ctx, tx, id, record); err != nil {
		return SendResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return SendResult{}, err
	}
	return SendResult{Transaction: record, NewBalance: newBalance}, nil
}

// Deposit credits the currency and appends a deposit record.
func (l *PostgresLedger) Deposit(ctx context.Context, walletID string, amount decimal.Decimal, currency string) (DepositResult, error) {
	if !amount.IsPositive() {
		return DepositResult{}, ErrInvalidInput
	}
	id, err := uuid.Parse(walletID)
	if err != nil {
		return DepositResult{}, ErrUnknownWallet
	}
	currency = strings.ToUpper(currency)

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return DepositResult{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	balance, err := lockedBalance(ctx, tx, id, currency)
	if err != nil {
		return DepositResult{}, err
	}

	newBalance := balance.Add(amount)
	if _, err := tx.Exec(ctx, `UPDATE balances SET amount = $1 WHERE wallet_id = $2 AND currency = $3`,
		newBalance.String(), id, currency); err != nil {
		return DepositResult{}, err
	}

	record := Transaction{
		ID:           newTransactionID(),
		Kind:         KindDeposit,
		Amount:       amount,
		FromCurrency: currency,
		ToCurrency:   currency,
		Counterparty: DepositCounterparty,
		Date:         time.Now().UTC().Format("2006-01-02"),
		Status:       StatusCompleted,
	}
	if err := insertTransaction(ctx, tx, id, record); err != nil {
		return DepositResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return DepositResult{}, err
	}
	return DepositResult{Transaction: record, NewBalance: newBalance}, nil
}

// History returns the wallet's transactions, most recent first.
func (l *PostgresLedger) History(ctx context.Context, walletID string) ([]Transaction, error) {
	id, err := uuid.Parse(walletID)
	if err != nil {
		return nil, ErrUnknownWallet
	}
	rows, err := l.db.Query(ctx, `SELECT id, kind, amount::text, from_currency, to_currency, counterparty, booked_on, status
        FROM transactions WHERE wallet_id = $1 ORDER BY id DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []Transaction
	for rows.Next() {
		var (
			record Transaction
			txID   uuid.UUID
			raw    string
			booked time.Time
		)
		if err := rows.Scan(&txID, &record.Kind, &raw, &record.FromCurrency, &record.ToCurrency, &record.Counterparty, &booked, &record.Status); err != nil {
			return nil, err
		}
		record.ID = txID.String()
		record.Date = booked.Format("2006-01-02")
		record.Amount, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		history = append(history, record)
	}
	return history, rows.Err()
}

func lockedBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, currency string) (decimal.Decimal, error) {
	var raw string
	err := tx.QueryRow(ctx, `SELECT amount::text FROM balances WHERE wallet_id = $1 AND currency = $2 FOR UPDATE`,
		walletID, currency).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
		}
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

func insertTransaction(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, record Transaction) error {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO transactions (id, wallet_id, kind, amount, from_currency, to_currency, counterparty, booked_on, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, walletID, record.Kind, record.Amount.String(), record.FromCurrency, record.ToCurrency, record.Counterparty, record.Date, record.Status)
	return err
}
