package funding

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusSucceeded is the only provider status that allows a credit.
const StatusSucceeded = "succeeded"

// ErrAuthorizationFailed indicates the card charge was not authorized. The
// ledger is untouched whenever this error is returned.
var ErrAuthorizationFailed = errors.New("payment authorization failed")

// Provider is the connector to the external card-payment collaborator. The
// deposit credit may only run after Status reports a succeeded charge.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (Intent, error)
	Confirm(ctx context.Context, clientSecret string) (Confirmation, error)
	Status(ctx context.Context, paymentIntentID string) (string, error)
}

// IntentRequest carries the charge details sent to the provider.
type IntentRequest struct {
	Amount              decimal.Decimal
	SourceCurrency      string
	DestinationCurrency string
}

// Intent is the provider's handle for a pending charge.
type Intent struct {
	ClientSecret string
}

// Confirmation is the result of the provider-side confirmation step.
type Confirmation struct {
	PaymentIntentID string
}

// StaticProvider simulates the provider. The zero value authorizes every
// charge; set Outcome to any other status to simulate declines.
type StaticProvider struct {
	Outcome string
}

// CreateIntent issues a synthetic client secret.
func (StaticProvider) CreateIntent(_ context.Context, _ IntentRequest) (Intent, error) {
	return Intent{ClientSecret: uuid.NewString()}, nil
}

// Confirm returns a synthetic payment intent identifier.
func (StaticProvider) Confirm(_ context.Context, _ string) (Confirmation, error) {
	return Confirmation{PaymentIntentID: uuid.NewString()}, nil
}

// Status reports the configured outcome, defaulting to succeeded.
func (p StaticProvider) Status(_ context.Context, _ string) (string, error) {
	if p.Outcome == "" {
		return StatusSucceeded, nil
	}
	return p.Outcome, nil
}
