// Package llm is a chat-completion client for an OpenAI-compatible
// inference backend with tool calling.
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"flipscan/internal/config"
	"flipscan/internal/domain"
	"flipscan/pkg/errcodes"
	"flipscan/pkg/httpx"
	"flipscan/pkg/logx"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// ErrUnavailable marks authentication/quota failures of the inference
// backend. Callers fall back to the deterministic local estimate on it.
var ErrUnavailable = errors.New("inference backend unavailable")

type Client struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	temperature float64
}

// staticAuthenticator satisfies the bearer round tripper with a fixed
// API key.
type staticAuthenticator struct {
	token string
}

func (a staticAuthenticator) Authenticate(context.Context) error { return nil }
func (a staticAuthenticator) BearerToken() string                { return a.token }

func NewClient(cfg config.LLM) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: httpx.NewAuthBearerRoundTripper(
				httpx.NewLoggingRoundTripper(
					http.DefaultTransport,
					httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
				),
				staticAuthenticator{token: cfg.APIKey},
			),
		},
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Complete performs one chat-completion call and returns the assistant
// message, which either carries final content or tool-invocation requests.
func (c *Client) Complete(ctx context.Context, messages []Message, tools []ToolSpec) (Message, error) {
	payload, err := jsonCodec.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		Tools:       tools,
		Temperature: c.temperature,
	})
	if err != nil {
		return Message{}, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload),
	)
	if err != nil {
		return Message{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Unreachable backend counts as unavailable the same way a
		// quota rejection does.
		return Message{}, fmt.Errorf("chat completion request failed: %w: %w", ErrUnavailable, err)
	}

	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests, http.StatusPaymentRequired:
		return Message{}, fmt.Errorf("status %d: %w", resp.StatusCode, ErrUnavailable)
	default:
		return Message{}, domain.NewError(
			errcodes.AgentUnavailable,
			fmt.Sprintf("inference backend returned status %d", resp.StatusCode),
		)
	}

	var completion completionResponse

	if err := jsonCodec.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return Message{}, fmt.Errorf("json.Decode: %w", err)
	}

	if completion.Error != nil {
		return Message{}, domain.NewError(errcodes.AgentUnavailable, completion.Error.Message)
	}

	if len(completion.Choices) == 0 {
		return Message{}, domain.NewError(errcodes.AgentUnavailable, "empty choices in completion")
	}

	return completion.Choices[0].Message, nil
}
