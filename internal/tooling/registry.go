package tooling

import (
	"encoding/json"
	"math"
	"strconv"

	"rudder/internal/domain"
)

// Static tool names. These identify the compile-time-known schemas; anything
// else must arrive through the caller-supplied external-tool allowlist.
const (
	ToolExecuteBash      = "execute_bash"
	ToolExecuteIPython   = "execute_ipython_cell"
	ToolDelegateBrowsing = "delegate_to_browsing_agent"
	ToolFinish           = "finish"
	ToolEditFile         = "edit_file"
	ToolStrReplaceEditor = "str_replace_editor"
	ToolThink            = "think"
	ToolBrowser          = "browser"
)

// ArgType selects the coercion applied to a supplied argument value.
type ArgType int

const (
	ArgString ArgType = iota
	// ArgBool follows the exact-match protocol contract: only the string
	// literal "true" coerces to true, everything else (including "True",
	// "1", and JSON booleans) coerces to false. Never fails.
	ArgBool
	ArgNumber
	ArgInt
	// ArgNullableBool yields *bool: JSON booleans pass through, strings
	// compare against the literal "true", absence stays nil.
	ArgNullableBool
	// ArgAny passes the decoded value through untouched.
	ArgAny
)

// Coerce converts a decoded JSON value according to the arg type. ok is false
// when the value cannot represent the type.
func (t ArgType) Coerce(v any) (any, bool) {
	switch t {
	case ArgString:
		s, ok := v.(string)
		return s, ok
	case ArgBool:
		s, _ := v.(string)
		return s == "true", true
	case ArgNumber:
		switch n := v.(type) {
		case float64:
			return n, true
		case string:
			f, err := strconv.ParseFloat(n, 64)
			return f, err == nil
		}
		return nil, false
	case ArgInt:
		switch n := v.(type) {
		case float64:
			if n != math.Trunc(n) {
				return nil, false
			}
			return int(n), true
		case string:
			i, err := strconv.Atoi(n)
			return i, err == nil
		}
		return nil, false
	case ArgNullableBool:
		switch b := v.(type) {
		case bool:
			return &b, true
		case string:
			val := b == "true"
			return &val, true
		}
		return nil, false
	default:
		return v, true
	}
}

// ArgSpec declares one argument key of a tool schema.
type ArgSpec struct {
	Type     ArgType
	Required bool
	// Default is used when Required is false and the key is absent. A nil
	// default means the key is simply omitted from the validated mapping.
	Default any
}

// Schema declares one tool's argument contract: required and optional keys
// with coercion rules, plus the LLM-facing JSON Schema definition. Schemas
// are immutable after registry construction.
type Schema struct {
	Name        string
	Description string
	Args        map[string]ArgSpec
	// Passthrough disables per-key validation; the full decoded argument
	// mapping is handed to the command as-is (delegation tools).
	Passthrough bool
	// SubCommandKeys, when non-nil, closes the world of permitted extra keys
	// per sub-command value (file editor). Keys not listed for the supplied
	// sub-command are rejected, not ignored.
	SubCommandKeys map[string][]string

	definition json.RawMessage
}

// Definition returns the JSON Schema sent to the LLM function-calling API.
func (s *Schema) Definition() json.RawMessage { return s.definition }

// Registry is the static catalog of supported tools. It is built once, is
// immutable, and is safe to share read-only across concurrent dispatches.
type Registry struct {
	schemas map[string]*Schema
	order   []string
}

// NewRegistry builds the full static catalog. Every definition is generated
// from its parameter struct and compile-checked; a malformed definition is a
// programming error and panics.
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[string]*Schema)}
	r.add(&Schema{
		Name:        ToolExecuteBash,
		Description: "Execute a bash command in the terminal, or send input to a running process.",
		Args: map[string]ArgSpec{
			"command":  {Type: ArgString, Required: true},
			"is_input": {Type: ArgBool, Default: false},
			"timeout":  {Type: ArgNumber},
		},
	}, executeBashParams{})
	r.add(&Schema{
		Name:        ToolExecuteIPython,
		Description: "Run a cell of Python code in an IPython environment.",
		Args: map[string]ArgSpec{
			"code": {Type: ArgString, Required: true},
		},
	}, executeIPythonParams{})
	r.add(&Schema{
		Name:        ToolDelegateBrowsing,
		Description: "Delegate a web browsing task to the browsing agent.",
		Passthrough: true,
	}, delegateBrowsingParams{})
	r.add(&Schema{
		Name:        ToolFinish,
		Description: "Signal that the task is finished.",
		Args: map[string]ArgSpec{
			"message":        {Type: ArgString, Default: ""},
			"task_completed": {Type: ArgNullableBool},
		},
	}, finishParams{})
	r.add(&Schema{
		Name:        ToolEditFile,
		Description: "Edit a file by supplying replacement content for a line range.",
		Args: map[string]ArgSpec{
			"path":        {Type: ArgString, Required: true},
			"content":     {Type: ArgString, Required: true},
			"start":       {Type: ArgInt, Default: 1},
			"end":         {Type: ArgInt, Default: -1},
			"impl_source": {Type: ArgString, Default: string(domain.FileEditSourceLLM)},
		},
	}, editFileParams{})
	r.add(&Schema{
		Name:        ToolStrReplaceEditor,
		Description: "View, create, and edit files with the string-replace editor.",
		Args: map[string]ArgSpec{
			"command": {Type: ArgString, Required: true},
			"path":    {Type: ArgString, Required: true},
		},
		SubCommandKeys: map[string][]string{
			string(domain.FileEditorView):       {"view_range"},
			string(domain.FileEditorCreate):     {"file_text"},
			string(domain.FileEditorStrReplace): {"old_str", "new_str"},
			string(domain.FileEditorInsert):     {"insert_line", "new_str"},
			string(domain.FileEditorUndoEdit):   {},
		},
	}, strReplaceEditorParams{})
	r.add(&Schema{
		Name:        ToolThink,
		Description: "Record a thought without taking any other action.",
		Args: map[string]ArgSpec{
			"thought": {Type: ArgString, Default: ""},
		},
	}, thinkParams{})
	r.add(&Schema{
		Name:        ToolBrowser,
		Description: "Interact with the browser by executing a browsing script.",
		Args: map[string]ArgSpec{
			"code": {Type: ArgString, Required: true},
		},
	}, browserParams{})
	return r
}

// add generates and validates the schema's LLM-facing definition, then
// registers it. Panics on duplicate names or invalid definitions: the catalog
// is fixed at compile time, so either is a programming error.
func (r *Registry) add(s *Schema, params any) {
	if _, exists := r.schemas[s.Name]; exists {
		panic("tooling: schema " + s.Name + " is already registered")
	}
	def := GenerateDefinition(params)
	if err := ValidateDefinition(def); err != nil {
		panic("tooling: invalid definition for " + s.Name + ": " + err.Error())
	}
	s.definition = json.RawMessage(def)
	r.schemas[s.Name] = s
	r.order = append(r.order, s.Name)
}

// Lookup returns the schema for a static tool name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns the static tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Definitions returns a domain.ToolDefinition for every registered tool in
// registration order, ready for the LLM function-calling request.
func (r *Registry) Definitions() []domain.ToolDefinition {
	out := make([]domain.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		s := r.schemas[name]
		out = append(out, domain.ToolDefinition{
			Name:        s.Name,
			Description: s.Description,
			InputSchema: s.definition,
		})
	}
	return out
}
