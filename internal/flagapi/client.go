// Package flagapi looks up country flag images from a restcountries
// compatible service. Lookup failures are expected to be absorbed by the
// caller: the map quiz degrades to a blank visual aid.
package flagapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client fetches flag image URLs by 3-letter country code.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a flag lookup client against baseURL
// (e.g. https://restcountries.com/v3.1).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type countryPayload struct {
	Flags struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
}

// FlagURL returns the PNG flag image URL for a 3-letter country code.
func (c *Client) FlagURL(ctx context.Context, code string) (string, error) {
	endpoint := fmt.Sprintf("%s/alpha/%s", c.baseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("flag lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("flag lookup: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	// The API answers with a one-element array per code.
	var payload []countryPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	if len(payload) == 0 || payload[0].Flags.PNG == "" {
		return "", fmt.Errorf("no flag for code %s", code)
	}

	return payload[0].Flags.PNG, nil
}
