package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"flipscan/internal/domain"
	"flipscan/internal/infrastructure/llm"
	"flipscan/internal/metrics"
	"flipscan/pkg/contextx"
	"flipscan/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultMaxSteps = 6

type chatClient interface {
	Complete(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec) (llm.Message, error)
}

type Loop struct {
	client       chatClient
	registry     *Registry
	systemPrompt string
	maxSteps     int
}

func NewLoop(client chatClient, registry *Registry, systemPrompt string) *Loop {
	return &Loop{
		client:       client,
		registry:     registry,
		systemPrompt: systemPrompt,
		maxSteps:     defaultMaxSteps,
	}
}

func (l *Loop) WithMaxSteps(n int) *Loop {
	if n > 0 {
		l.maxSteps = n
	}

	return l
}

// toolResult is what the model sees back from a tool call. Failures carry
// an explicit status tag instead of masquerading as successful output.
type toolResult struct {
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Run drives the conversation until the model returns a final answer or
// the step limit is reached.
func (l *Loop) Run(ctx context.Context, input string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: l.systemPrompt},
		{Role: llm.RoleUser, Content: input},
	}

	specs := l.registry.Specs()

	for step := 0; step < l.maxSteps; step++ {
		reply, err := l.client.Complete(ctx, messages, specs)
		if err != nil {
			return "", fmt.Errorf("client.Complete: %w", err)
		}

		if len(reply.ToolCalls) == 0 {
			return reply.Content, nil
		}

		messages = append(messages, reply)

		for _, call := range reply.ToolCalls {
			messages = append(messages, l.executeCall(ctx, call))
		}
	}

	return "", domain.NewError(errcodes.AgentStepLimit, "tool loop exceeded step limit")
}

func (l *Loop) executeCall(ctx context.Context, call llm.ToolCall) llm.Message {
	name := call.Function.Name

	output, err := l.registry.Invoke(ctx, name, json.RawMessage(call.Function.Arguments))

	result := toolResult{Status: "ok", Output: output}
	status := "ok"

	if err != nil {
		logger(ctx).Error("tool invocation failed", "tool", name, "error", err)

		result = toolResult{Status: "error", Error: err.Error()}
		status = "error"
	}

	metrics.ToolInvocationsTotal.WithLabelValues(name, status).Inc()

	content, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		content = []byte(`{"status":"error","error":"unserializable tool result"}`)
	}

	return llm.Message{
		Role:       llm.RoleTool,
		Name:       name,
		ToolCallID: call.ID,
		Content:    string(content),
	}
}
