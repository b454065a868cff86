// Package collaborator holds thin HTTP clients for the services the
// settlement core delegates to: the custody executor that actually
// freezes and moves assets, the payment rail, and the asset metadata
// oracle.
package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"listings-backend/internal/domain/custody"
)

var _ custody.Service = (*CustodyClient)(nil)

type CustodyClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewCustodyClient(baseURL string) *CustodyClient {
	return &CustodyClient{BaseURL: baseURL, HTTP: &http.Client{Timeout: 10 * time.Second}}
}

func (c *CustodyClient) Freeze(ctx context.Context, mint, authority string) error {
	return c.post(ctx, "/freeze", map[string]string{"mint": mint, "authority": authority})
}

func (c *CustodyClient) Thaw(ctx context.Context, mint, authority string) error {
	return c.post(ctx, "/thaw", map[string]string{"mint": mint, "authority": authority})
}

func (c *CustodyClient) Transfer(ctx context.Context, mint, from, to, authority string) error {
	return c.post(ctx, "/transfer", map[string]string{
		"mint": mint, "from": from, "to": to, "authority": authority,
	})
}

func (c *CustodyClient) post(ctx context.Context, path string, body map[string]string) error {
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("custody executor returned %d on %s", resp.StatusCode, path)
	}
	return nil
}
