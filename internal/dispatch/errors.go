package dispatch

import (
	"fmt"
	"sort"
)

// The calling loop is expected to catch the per-call error kinds
// (decode, missing, type, unexpected, unknown) and report them back to the
// model as a failed tool call. ChoiceCountError is a provider contract breach
// and is not recoverable that way. Every error carries enough context to
// produce a diagnostic without re-inspecting the original response.

// ChoiceCountError reports a completion response that did not contain exactly
// one choice.
type ChoiceCountError struct {
	Count int
}

func (e *ChoiceCountError) Error() string {
	return fmt.Sprintf("expected exactly one choice in completion response, got %d", e.Count)
}

// ArgumentDecodeError reports a tool call whose arguments payload was not
// valid JSON. Raw preserves the offending payload verbatim.
type ArgumentDecodeError struct {
	ToolCallID string
	Raw        string
	Err        error
}

func (e *ArgumentDecodeError) Error() string {
	return fmt.Sprintf("failed to parse arguments of tool call %q: %s", e.ToolCallID, e.Raw)
}

func (e *ArgumentDecodeError) Unwrap() error { return e.Err }

// MissingArgumentError reports a required key absent from a tool call's
// arguments.
type MissingArgumentError struct {
	Tool string
	Key  string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument %q in tool call %s", e.Key, e.Tool)
}

// ArgumentTypeError reports a supplied value that could not be coerced to the
// key's declared type.
type ArgumentTypeError struct {
	Tool  string
	Key   string
	Value any
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("invalid value %v for argument %q in tool call %s", e.Value, e.Key, e.Tool)
}

// UnexpectedArgumentError reports a key outside the closed key set permitted
// for the tool (or its sub-command).
type UnexpectedArgumentError struct {
	Tool    string
	Key     string
	Allowed []string
}

func (e *UnexpectedArgumentError) Error() string {
	allowed := append([]string(nil), e.Allowed...)
	sort.Strings(allowed)
	return fmt.Sprintf("unexpected argument %q in tool call %s, allowed arguments are: %v", e.Key, e.Tool, allowed)
}

// UnknownToolError reports a tool name matching neither a static schema nor
// the caller-supplied external-tool allowlist.
type UnknownToolError struct {
	Tool      string
	Arguments map[string]any
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("tool %s is not registered (arguments: %v); check the tool name and retry with an existing tool", e.Tool, e.Arguments)
}
