package funding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPProvider talks to the card-payment collaborator over REST.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider builds a provider client against the given base URL.
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type createIntentRequest struct {
	Amount              string `json:"amount"`
	SourceCurrency      string `json:"sourceCurrency"`
	DestinationCurrency string `json:"destinationCurrency"`
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type confirmRequest struct {
	ClientSecret string `json:"clientSecret"`
}

type confirmResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Error           string `json:"error,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// CreateIntent registers the charge with the provider and returns its client
// secret.
func (p *HTTPProvider) CreateIntent(ctx context.Context, req IntentRequest) (Intent, error) {
	var resp createIntentResponse
	err := p.post(ctx, "/create-payment-intent", createIntentRequest{
		Amount:              req.Amount.StringFixed(2),
		SourceCurrency:      req.SourceCurrency,
		DestinationCurrency: req.DestinationCurrency,
	}, &resp)
	if err != nil {
		return Intent{}, err
	}
	if resp.ClientSecret == "" {
		return Intent{}, fmt.Errorf("provider returned empty client secret")
	}
	return Intent{ClientSecret: resp.ClientSecret}, nil
}

// Confirm runs the provider-side confirmation step.
func (p *HTTPProvider) Confirm(ctx context.Context, clientSecret string) (Confirmation, error) {
	var resp confirmResponse
	if err := p.post(ctx, "/confirm-payment", confirmRequest{ClientSecret: clientSecret}, &resp); err != nil {
		return Confirmation{}, err
	}
	if resp.Error != "" {
		return Confirmation{}, fmt.Errorf("%w: %s", ErrAuthorizationFailed, resp.Error)
	}
	return Confirmation{PaymentIntentID: resp.PaymentIntentID}, nil
}

// Status verifies the charge outcome.
func (p *HTTPProvider) Status(ctx context.Context, paymentIntentID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/payment-status/"+paymentIntentID, nil)
	if err != nil {
		return "", err
	}
	res, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment status check returned %d", res.StatusCode)
	}
	var resp statusResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("provider %s returned %d", path, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
