package payments

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"flipscan/internal/config"
	"flipscan/pkg/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	priceUSD   string
}

func NewClient(cfg config.Payments) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport),
		},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		priceUSD: cfg.ProPriceUSD,
	}
}

type chargeRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	PricingType string            `json:"pricing_type"`
	LocalPrice  localPrice        `json:"local_price"`
	Metadata    map[string]string `json:"metadata"`
}

type localPrice struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type chargeResponse struct {
	Data struct {
		HostedURL string `json:"hosted_url"`
	} `json:"data"`
}

// CreateCharge creates a hosted checkout charge for the pro tier and
// returns its checkout URL. The opaque userID travels in charge metadata
// and comes back on the confirmation webhook.
func (c *Client) CreateCharge(ctx context.Context, userID string) (string, error) {
	payload, err := json.Marshal(chargeRequest{
		Name:        "flipscan pro",
		Description: "Unlimited listing scans",
		PricingType: "fixed_price",
		LocalPrice: localPrice{
			Amount:   c.priceUSD,
			Currency: "USD",
		},
		Metadata: map[string]string{metadataKeyUserID: userID},
	})
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CC-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payment processor returned status %d", resp.StatusCode)
	}

	var charge chargeResponse

	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return "", fmt.Errorf("json.Decode: %w", err)
	}

	return charge.Data.HostedURL, nil
}
