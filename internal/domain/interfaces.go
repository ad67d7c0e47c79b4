package domain

import "context"

// CompletionSource produces completion responses for dispatch. Implementations
// (API clients, replayers, mocks) own prompt assembly, history windowing, and
// transport-level retry; this module only consumes their output.
type CompletionSource interface {
	Complete(ctx context.Context) (*CompletionResponse, error)
}

// Executor runs dispatched commands. Implementations own sandboxing, file
// access, and browsing; commands are handed over in dispatch order and owned
// by the executor thereafter.
type Executor interface {
	Execute(ctx context.Context, cmd Command) error
}
