// Package agent runs a generic tool-calling loop over a chat-completion
// client. Tools are capabilities registered by name; the loop dispatches
// whatever the model asks for, up to a step limit.
package agent

import (
	"context"
	"encoding/json"

	"git.appkode.ru/pub/go/failure"

	"flipscan/internal/infrastructure/llm"
	"flipscan/pkg/errcodes"
	"flipscan/pkg/lox"
)

// Tool is a capability the model may invoke.
type Tool interface {
	Name() string
	Description() string
	// Schema is the JSON schema of the tool's arguments object.
	Schema() json.RawMessage
	Invoke(ctx context.Context, args json.RawMessage) (string, error)
}

// Registry maps declared tool names to implementations.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}

	for _, t := range tools {
		r.tools[t.Name()] = t
		r.order = append(r.order, t.Name())
	}

	return r
}

// Specs declares every registered tool to the inference backend, in
// registration order.
func (r *Registry) Specs() []llm.ToolSpec {
	return lox.Map(r.order, func(name string) llm.ToolSpec {
		t := r.tools[name]

		return llm.ToolSpec{
			Type: "function",
			Function: llm.FunctionSpec{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Schema(),
			},
		}
	})
}

// Invoke dispatches by declared tool name.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", failure.NewNotFoundError(
			"unknown tool",
			failure.WithCode(errcodes.UnknownTool),
			failure.WithDescription("model requested undeclared tool: "+name),
		)
	}

	return t.Invoke(ctx, args)
}
