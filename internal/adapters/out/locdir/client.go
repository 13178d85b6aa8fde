// Package locdir implements the location directory against the network's
// site registry JSON API.
package locdir

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"datadelivery/internal/core/domain/model/location"
	"datadelivery/internal/pkg/errs"
)

const requestTimeout = 10 * time.Second

// Client resolves location references over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a location directory client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

type locationPayload struct {
	ID                string `json:"id"`
	Address           string `json:"address"`
	ManagementCenter  bool   `json:"managementCenter"`
	IntegrationCenter bool   `json:"integrationCenter"`
}

// ResolveLocation resolves a single location reference. Returns a not-found
// error for unknown references.
func (c *Client) ResolveLocation(ctx context.Context, locationID string) (*location.Location, error) {
	if locationID == "" {
		return nil, errs.NewValueIsRequiredError("locationID")
	}

	endpoint := fmt.Sprintf("%s/api/locations/%s", c.baseURL, url.PathEscape(locationID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolve location: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.NewObjectNotFoundError("location", locationID)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("location directory responded with status %d", resp.StatusCode)
	}

	var payload locationPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode location: %w", err)
	}

	return location.NewLocation(payload.ID, payload.Address, payload.ManagementCenter, payload.IntegrationCenter)
}
