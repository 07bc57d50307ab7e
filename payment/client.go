package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

var (
	ErrPaymentFailed = errors.New("payment failed")
	ErrInvalidAmount = errors.New("payment amount must be positive")
	ErrMissingHandle = errors.New("payment handle is required")
	ErrMissingKey    = errors.New("payment idempotency key is required")
)

var payoutNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("commish/payouts"))

// PayoutKey is the idempotency key for paying a pool. It is stable for a
// league and pool so a retried payout is deduplicated by the provider.
func PayoutKey(leagueID, poolID string) string {
	return uuid.NewSHA1(payoutNamespace, []byte(leagueID+"/"+poolID)).String()
}

// Receipt is the payment provider's record of a completed transfer.
type Receipt struct {
	ID             string          `json:"id"`
	Handle         string          `json:"recipient"`
	Amount         decimal.Decimal `json:"amount"`
	Memo           string          `json:"note"`
	Status         string          `json:"status"`
	IdempotencyKey string          `json:"-"`
}

type Client interface {
	Send(ctx context.Context, handle string, amount decimal.Decimal, memo, key string) (*Receipt, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

type paymentRequest struct {
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
}

// New returns a client for the payment api at url. Requests carry the access
// token as a bearer token.
func New(url, accessToken string) Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 30 * time.Second

	return &client{
		url:        url,
		httpClient: httpClient,
	}
}

func (c *client) Send(ctx context.Context, handle string, amount decimal.Decimal, memo, key string) (*Receipt, error) {
	if handle == "" {
		return nil, ErrMissingHandle
	}
	if key == "" {
		return nil, ErrMissingKey
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount.StringFixed(2))
	}

	body, err := json.Marshal(paymentRequest{
		Recipient: handle,
		Amount:    amount,
		Note:      memo,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: error sending payment to %s: %v", ErrPaymentFailed, handle, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: unexpected status code paying %s: %d", ErrPaymentFailed, handle, resp.StatusCode)
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("error parsing payment response: %w", err)
	}
	receipt.IdempotencyKey = key
	return &receipt, nil
}
