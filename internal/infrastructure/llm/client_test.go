package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flipscan/internal/config"
	"flipscan/internal/infrastructure/llm"
)

func newClient(baseURL string) *llm.Client {
	return llm.NewClient(config.LLM{
		BaseURL:     baseURL,
		APIKey:      "sk-test",
		Model:       "gpt-4o",
		Temperature: 0,
		Timeout:     5 * time.Second,
	})
}

func TestClientComplete(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/chat/completions", r.URL.Path)
		rq.Equal("Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model    string         `json:"model"`
			Messages []llm.Message  `json:"messages"`
			Tools    []llm.ToolSpec `json:"tools"`
		}
		rq.NoError(json.NewDecoder(r.Body).Decode(&req))
		rq.Equal("gpt-4o", req.Model)
		rq.Len(req.Messages, 2)
		rq.Len(req.Tools, 1)

		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "FAIRLY PRICED"}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	reply, err := newClient(srv.URL).Complete(context.Background(),
		[]llm.Message{
			{Role: llm.RoleSystem, Content: "system"},
			{Role: llm.RoleUser, Content: "analyze"},
		},
		[]llm.ToolSpec{{
			Type: "function",
			Function: llm.FunctionSpec{
				Name:       "market_value",
				Parameters: json.RawMessage(`{"type":"object"}`),
			},
		}},
	)
	rq.NoError(err)
	rq.Equal("FAIRLY PRICED", reply.Content)
	rq.Empty(reply.ToolCalls)
}

func TestClientCompleteToolCalls(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {
				"role": "assistant",
				"tool_calls": [{
					"id": "call_1",
					"type": "function",
					"function": {"name": "market_value", "arguments": "{\"category\":\"laptop\"}"}
				}]
			}, "finish_reason": "tool_calls"}]
		}`))
	}))
	defer srv.Close()

	reply, err := newClient(srv.URL).Complete(context.Background(),
		[]llm.Message{{Role: llm.RoleUser, Content: "analyze"}}, nil)
	rq.NoError(err)

	rq.Len(reply.ToolCalls, 1)
	rq.Equal("call_1", reply.ToolCalls[0].ID)
	rq.Equal("market_value", reply.ToolCalls[0].Function.Name)
	rq.JSONEq(`{"category":"laptop"}`, reply.ToolCalls[0].Function.Arguments)
}

func TestClientCompleteUnavailable(t *testing.T) {
	rq := require.New(t)

	for _, statusCode := range []int{
		http.StatusUnauthorized,
		http.StatusPaymentRequired,
		http.StatusForbidden,
		http.StatusTooManyRequests,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(statusCode)
		}))

		_, err := newClient(srv.URL).Complete(context.Background(),
			[]llm.Message{{Role: llm.RoleUser, Content: "analyze"}}, nil)
		rq.ErrorIs(err, llm.ErrUnavailable, "status %d", statusCode)

		srv.Close()
	}
}

func TestClientCompleteUnreachableBackend(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	_, err := newClient(srv.URL).Complete(context.Background(),
		[]llm.Message{{Role: llm.RoleUser, Content: "analyze"}}, nil)
	rq.ErrorIs(err, llm.ErrUnavailable)
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Complete(context.Background(),
		[]llm.Message{{Role: llm.RoleUser, Content: "analyze"}}, nil)
	rq.Error(err)
	rq.NotErrorIs(err, llm.ErrUnavailable)
}
