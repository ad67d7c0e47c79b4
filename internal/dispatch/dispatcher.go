package dispatch

import (
	"encoding/json"
	"log/slog"

	"rudder/internal/domain"
	"rudder/internal/tooling"
)

// Option is a functional option for configuring Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a structured logger for the Dispatcher. If l is nil it is
// ignored and the default slog logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// Dispatcher converts completion responses into ordered command sequences.
// It holds no per-call state; one Dispatcher may serve any number of
// concurrent Dispatch calls.
type Dispatcher struct {
	builder *Builder
	logger  *slog.Logger // optional; nil uses slog.Default()
}

// NewDispatcher creates a dispatcher over the given registry. Panics if
// registry is nil.
func NewDispatcher(registry *tooling.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{builder: NewBuilder(registry)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// log returns the Dispatcher's logger, falling back to the default slog logger.
func (d *Dispatcher) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return slog.Default()
}

// Dispatch converts one completion response into the ordered, validated
// command sequence a downstream executor can run. externalTools names
// runtime-registered tools that bypass static schema validation.
//
// The result is never empty: a response without tool calls yields exactly one
// PlainMessage. Output order equals tool-call order, reasoning is merged into
// the first command only, and every command carries provenance back to the
// response. The first failing tool call fails the whole response; commands
// built before it are discarded.
func (d *Dispatcher) Dispatch(resp *domain.CompletionResponse, externalTools []string) ([]domain.Command, error) {
	if len(resp.Choices) != 1 {
		return nil, &ChoiceCountError{Count: len(resp.Choices)}
	}
	msg := &resp.Choices[0].Message

	if len(msg.ToolCalls) == 0 {
		cmd := &domain.PlainMessage{Content: msg.TextContent(), WaitForResponse: true}
		cmd.Base().Provenance = domain.Provenance{ResponseID: resp.ID}
		return []domain.Command{cmd}, nil
	}

	allowed := make(map[string]struct{}, len(externalTools))
	for _, name := range externalTools {
		allowed[name] = struct{}{}
	}

	thought := ExtractReasoning(msg)
	commands := make([]domain.Command, 0, len(msg.ToolCalls))
	for i, tc := range msg.ToolCalls {
		d.log().Debug("dispatching tool call",
			"tool_call_id", tc.ID,
			"function", tc.Function.Name,
			"response_id", resp.ID,
		)
		args, err := decodeArguments(tc.Function.Arguments)
		if err != nil {
			return nil, &ArgumentDecodeError{ToolCallID: tc.ID, Raw: tc.Function.Arguments, Err: err}
		}
		cmd, err := d.builder.Build(tc.Function.Name, args, allowed)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			cmd = CombineReasoning(cmd, thought)
		}
		cmd.Base().Provenance = domain.Provenance{
			ToolCallID:   tc.ID,
			FunctionName: tc.Function.Name,
			ResponseID:   resp.ID,
			TotalCalls:   len(msg.ToolCalls),
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// decodeArguments decodes one tool call's JSON-encoded argument payload into
// a generic mapping. Syntax failures are reported as-is; the caller wraps
// them with the tool call's identity.
func decodeArguments(raw string) (map[string]any, error) {
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	return args, nil
}
