package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"listings-backend/internal/domain/payment"
)

var _ payment.Rail = (*RailClient)(nil)

type RailClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewRailClient(baseURL string) *RailClient {
	return &RailClient{BaseURL: baseURL, HTTP: &http.Client{Timeout: 10 * time.Second}}
}

// Transfer moves funds between accounts on the rail. A 402 from the
// rail maps to payment.ErrInsufficientFunds so usecases can branch on
// it.
func (c *RailClient) Transfer(ctx context.Context, from, to string, amount uint64) error {
	body := map[string]any{"from": from, "to": to, "amount": amount}
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transfers", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusPaymentRequired {
		return payment.ErrInsufficientFunds
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("payment rail returned %d", resp.StatusCode)
	}
	return nil
}
