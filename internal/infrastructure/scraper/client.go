// Package scraper is a thin client for the scrape-as-a-service backend.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"flipscan/internal/config"
	"flipscan/internal/domain"
	"flipscan/pkg/errcodes"
	"flipscan/pkg/httpx"
)

type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	countryCode string
	premium     bool
}

func NewClient(cfg config.Scraper) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport),
		},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		countryCode: cfg.CountryCode,
		premium:     cfg.Premium,
	}
}

// Fetch retrieves the raw markup of targetURL through the scrape backend.
// A 403 means the account ran out of credits and is reported as its own
// error code so callers can degrade instead of retrying.
func (c *Client) Fetch(ctx context.Context, targetURL string) (string, error) {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("url", targetURL)
	query.Set("country_code", c.countryCode)

	if c.premium {
		query.Set("premium", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+query.Encode(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.WrapError(err, errcodes.ScrapeFailed, "scrape request failed")
	}

	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return "", domain.NewError(errcodes.ScrapeCreditsExhausted, "scrape credits exhausted")
	case resp.StatusCode != http.StatusOK:
		return "", domain.NewError(
			errcodes.ScrapeFailed,
			fmt.Sprintf("scrape backend returned status %d", resp.StatusCode),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.WrapError(err, errcodes.ScrapeFailed, "read scrape response")
	}

	return string(body), nil
}
