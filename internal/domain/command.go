package domain

// =============================================================================
// Command Union
// =============================================================================

// CommandKind discriminates the closed set of command variants an executor
// can run.
type CommandKind string

const (
	KindRunCommand        CommandKind = "run_command"
	KindRunCode           CommandKind = "run_code"
	KindDelegateTask      CommandKind = "delegate_task"
	KindFinish            CommandKind = "finish"
	KindEditFileContent   CommandKind = "edit_file_content"
	KindFileEditorCommand CommandKind = "file_editor_command"
	KindThink             CommandKind = "think"
	KindBrowseInteractive CommandKind = "browse_interactive"
	KindExternalToolCall  CommandKind = "external_tool_call"
	KindPlainMessage      CommandKind = "plain_message"
)

// Provenance links a command back to the tool call and response that produced
// it. ToolCallID and FunctionName are empty on the no-tool-call fallback path.
type Provenance struct {
	ToolCallID   string `json:"tool_call_id,omitempty"`
	FunctionName string `json:"function_name,omitempty"`
	ResponseID   string `json:"response_id"`
	TotalCalls   int    `json:"total_calls_in_response"`
}

// CommandBase carries the cross-cutting fields every variant embeds.
// Provenance is attached by the dispatcher after construction.
type CommandBase struct {
	Provenance Provenance `json:"provenance"`
}

// Base exposes the embedded CommandBase for provenance attachment.
func (b *CommandBase) Base() *CommandBase { return b }

// Command is the validated, typed representation of one requested operation,
// ready for execution. Implementations are pointer types so reasoning and
// provenance can be attached after construction.
type Command interface {
	Kind() CommandKind
	Base() *CommandBase
}

// ReasoningCarrier is implemented by the variants that expose a free-text
// reasoning slot. Variants without the slot are left untouched by reasoning
// merging.
type ReasoningCarrier interface {
	Command
	Reasoning() string
	SetReasoning(thought string)
}

// Reasoned is embedded by variants that carry merged free-text reasoning.
type Reasoned struct {
	Thought string `json:"thought,omitempty"`
}

func (r *Reasoned) Reasoning() string           { return r.Thought }
func (r *Reasoned) SetReasoning(thought string) { r.Thought = thought }

// =============================================================================
// Variants
// =============================================================================

// RunCommand executes a shell command (or feeds input to a running one).
type RunCommand struct {
	CommandBase
	Reasoned
	Command string `json:"command"`
	// IsInput marks the command text as input to the previously running
	// process rather than a new command.
	IsInput bool `json:"is_input"`
	// HardTimeout, when set, bounds execution in seconds.
	HardTimeout *float64 `json:"hard_timeout,omitempty"`
}

func (*RunCommand) Kind() CommandKind { return KindRunCommand }

// RunCode executes a code cell in the interactive interpreter.
type RunCode struct {
	CommandBase
	Reasoned
	Code string `json:"code"`
}

func (*RunCode) Kind() CommandKind { return KindRunCode }

// DelegateTask hands a task to a named sub-agent with the full argument
// mapping as its inputs.
type DelegateTask struct {
	CommandBase
	Reasoned
	AgentName string         `json:"agent_name"`
	Inputs    map[string]any `json:"inputs"`
}

func (*DelegateTask) Kind() CommandKind { return KindDelegateTask }

// Finish marks the task as done. TaskCompleted is nil when the model did not
// state an outcome.
type Finish struct {
	CommandBase
	Reasoned
	FinalThought  string `json:"final_thought"`
	TaskCompleted *bool  `json:"task_completed,omitempty"`
}

func (*Finish) Kind() CommandKind { return KindFinish }

// FileEditSource tags which editing implementation produced a file edit.
type FileEditSource string

const (
	FileEditSourceLLM    FileEditSource = "llm_based_edit"
	FileEditSourceEditor FileEditSource = "oh_aci"
)

// EditFileContent replaces a line range of a file with model-written content.
// Start/End are 1-based; End == -1 means end of file.
type EditFileContent struct {
	CommandBase
	Reasoned
	Path      string         `json:"path"`
	Content   string         `json:"content"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	SourceTag FileEditSource `json:"impl_source"`
}

func (*EditFileContent) Kind() CommandKind { return KindEditFileContent }

// FileEditorSubCommand selects the file editor operation.
type FileEditorSubCommand string

const (
	FileEditorView       FileEditorSubCommand = "view"
	FileEditorCreate     FileEditorSubCommand = "create"
	FileEditorStrReplace FileEditorSubCommand = "str_replace"
	FileEditorInsert     FileEditorSubCommand = "insert"
	FileEditorUndoEdit   FileEditorSubCommand = "undo_edit"
)

// FileEditorCommand views or edits a file through the string-replace editor.
// Which optional fields are populated depends on SubCommand; the builder
// enforces each sub-command's permitted key set.
type FileEditorCommand struct {
	CommandBase
	Reasoned
	SubCommand FileEditorSubCommand `json:"sub_command"`
	Path       string               `json:"path"`
	ViewRange  *[2]int              `json:"view_range,omitempty"`
	FileText   string               `json:"file_text,omitempty"`
	OldStr     string               `json:"old_str,omitempty"`
	NewStr     string               `json:"new_str,omitempty"`
	InsertLine *int                 `json:"insert_line,omitempty"`
	SourceTag  FileEditSource       `json:"impl_source"`
}

func (*FileEditorCommand) Kind() CommandKind { return KindFileEditorCommand }

// Think records a reasoning step without performing any operation. The merged
// reasoning slot is the payload.
type Think struct {
	CommandBase
	Reasoned
}

func (*Think) Kind() CommandKind { return KindThink }

// BrowseInteractive runs a browsing script in the interactive browser.
type BrowseInteractive struct {
	CommandBase
	Reasoned
	BrowserScript string `json:"browser_script"`
}

func (*BrowseInteractive) Kind() CommandKind { return KindBrowseInteractive }

// ExternalToolCall invokes a runtime-registered tool. Arguments pass through
// unvalidated; the external tool owns its own argument semantics.
type ExternalToolCall struct {
	CommandBase
	Reasoned
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
}

func (*ExternalToolCall) Kind() CommandKind { return KindExternalToolCall }

// PlainMessage is the fallback when a response contains no tool calls: the
// assistant's text addressed to the user. It has no reasoning slot.
type PlainMessage struct {
	CommandBase
	Content         string `json:"content"`
	WaitForResponse bool   `json:"wait_for_response"`
}

func (*PlainMessage) Kind() CommandKind { return KindPlainMessage }

var (
	_ ReasoningCarrier = (*RunCommand)(nil)
	_ ReasoningCarrier = (*RunCode)(nil)
	_ ReasoningCarrier = (*DelegateTask)(nil)
	_ ReasoningCarrier = (*Finish)(nil)
	_ ReasoningCarrier = (*EditFileContent)(nil)
	_ ReasoningCarrier = (*FileEditorCommand)(nil)
	_ ReasoningCarrier = (*Think)(nil)
	_ ReasoningCarrier = (*BrowseInteractive)(nil)
	_ ReasoningCarrier = (*ExternalToolCall)(nil)
	_ Command          = (*PlainMessage)(nil)
)
