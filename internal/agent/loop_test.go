package agent_test

import (
	"context"
	"encoding/json"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"flipscan/internal/agent"
	"flipscan/internal/infrastructure/llm"
	"flipscan/pkg/errcodes"
)

type fakeTool struct {
	name   string
	invoke func(ctx context.Context, args json.RawMessage) (string, error)

	calls []json.RawMessage
}

func (f *fakeTool) Name() string        { return f.name }
func (f *fakeTool) Description() string { return "fake " + f.name }
func (f *fakeTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{}}`)
}

func (f *fakeTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	f.calls = append(f.calls, args)
	return f.invoke(ctx, args)
}

// scriptedClient replays canned assistant replies and records every request.
type scriptedClient struct {
	replies  []llm.Message
	requests [][]llm.Message
}

func (c *scriptedClient) Complete(_ context.Context, messages []llm.Message, _ []llm.ToolSpec) (llm.Message, error) {
	c.requests = append(c.requests, messages)

	reply := c.replies[0]
	c.replies = c.replies[1:]

	return reply, nil
}

func toolCall(id, name, args string) llm.ToolCall {
	return llm.ToolCall{
		ID:       id,
		Type:     "function",
		Function: llm.FunctionCall{Name: name, Arguments: args},
	}
}

func TestLoopDispatchesToolCalls(t *testing.T) {
	rq := require.New(t)

	scrape := &fakeTool{
		name: "scrape_page",
		invoke: func(_ context.Context, _ json.RawMessage) (string, error) {
			return "Gaming laptop $500", nil
		},
	}

	client := &scriptedClient{replies: []llm.Message{
		{
			Role:      llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{toolCall("call_1", "scrape_page", `{"url":"https://example.com/l"}`)},
		},
		{
			Role:    llm.RoleAssistant,
			Content: "Verdict: UNDERPRICED, buy it.",
		},
	}}

	loop := agent.NewLoop(client, agent.NewRegistry(scrape), "you are a deal analyst")

	answer, err := loop.Run(context.Background(), "analyze https://example.com/l")
	rq.NoError(err)
	rq.Equal("Verdict: UNDERPRICED, buy it.", answer)

	rq.Len(scrape.calls, 1)
	rq.JSONEq(`{"url":"https://example.com/l"}`, string(scrape.calls[0]))

	// Second request carries the assistant turn plus the tool result.
	rq.Len(client.requests, 2)
	last := client.requests[1][len(client.requests[1])-1]
	rq.Equal(llm.RoleTool, last.Role)
	rq.Equal("call_1", last.ToolCallID)
	rq.JSONEq(`{"status":"ok","output":"Gaming laptop $500"}`, last.Content)
}

func TestLoopReportsToolErrorsToModel(t *testing.T) {
	rq := require.New(t)

	failing := &fakeTool{
		name: "scrape_page",
		invoke: func(_ context.Context, _ json.RawMessage) (string, error) {
			return "", failure.NewInvalidArgumentError(
				"bad url",
				failure.WithCode(errcodes.InvalidURL),
				failure.WithDescription("bad url"),
			)
		},
	}

	client := &scriptedClient{replies: []llm.Message{
		{
			Role:      llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{toolCall("call_1", "scrape_page", `{}`)},
		},
		{Role: llm.RoleAssistant, Content: "could not analyze"},
	}}

	loop := agent.NewLoop(client, agent.NewRegistry(failing), "system")

	answer, err := loop.Run(context.Background(), "go")
	rq.NoError(err)
	rq.Equal("could not analyze", answer)

	last := client.requests[1][len(client.requests[1])-1]
	rq.Equal(llm.RoleTool, last.Role)
	rq.Contains(last.Content, `"status":"error"`)
	rq.NotContains(last.Content, `"output"`)
}

func TestLoopUnknownTool(t *testing.T) {
	rq := require.New(t)

	client := &scriptedClient{replies: []llm.Message{
		{
			Role:      llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{toolCall("call_1", "launch_rockets", `{}`)},
		},
		{Role: llm.RoleAssistant, Content: "done"},
	}}

	loop := agent.NewLoop(client, agent.NewRegistry(), "system")

	answer, err := loop.Run(context.Background(), "go")
	rq.NoError(err)
	rq.Equal("done", answer)

	// The failure goes back to the model as a tool-result error, never up
	// the call stack.
	last := client.requests[1][len(client.requests[1])-1]
	rq.Contains(last.Content, `"status":"error"`)
	rq.Contains(last.Content, "unknown tool")
}

func TestLoopStepLimit(t *testing.T) {
	rq := require.New(t)

	noop := &fakeTool{
		name: "noop",
		invoke: func(_ context.Context, _ json.RawMessage) (string, error) {
			return "ok", nil
		},
	}

	// The model never stops asking for tools.
	replies := make([]llm.Message, 0, 3)
	for i := 0; i < 3; i++ {
		replies = append(replies, llm.Message{
			Role:      llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{toolCall("call_x", "noop", `{}`)},
		})
	}

	client := &scriptedClient{replies: replies}
	loop := agent.NewLoop(client, agent.NewRegistry(noop), "system").WithMaxSteps(3)

	_, err := loop.Run(context.Background(), "go")
	rq.Error(err)
	rq.Len(noop.calls, 3)
}

func TestRegistrySpecsOrder(t *testing.T) {
	rq := require.New(t)

	a := &fakeTool{name: "alpha"}
	b := &fakeTool{name: "beta"}

	specs := agent.NewRegistry(b, a).Specs()

	rq.Len(specs, 2)
	rq.Equal("beta", specs[0].Function.Name)
	rq.Equal("alpha", specs[1].Function.Name)
}
