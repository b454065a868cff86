package collaborator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"listings-backend/internal/domain/asset"
)

var _ asset.MetadataOracle = (*OracleClient)(nil)

type OracleClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewOracleClient(baseURL string) *OracleClient {
	return &OracleClient{BaseURL: baseURL, HTTP: &http.Client{Timeout: 10 * time.Second}}
}

func (c *OracleClient) Metadata(ctx context.Context, mint string) (*asset.Metadata, error) {
	url := fmt.Sprintf("%s/assets/%s/metadata", c.BaseURL, mint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("metadata oracle returned %d", resp.StatusCode)
	}
	var out asset.Metadata
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	// The usecases cross-check the returned mint; a record without one
	// cannot be trusted to describe the asset we asked about.
	if out.Mint == "" {
		return nil, fmt.Errorf("metadata for %s missing mint field", mint)
	}
	return &out, nil
}
