package dispatch

import (
	"sort"

	"rudder/internal/domain"
	"rudder/internal/tooling"
)

// Builder turns a tool name plus decoded arguments into a typed command using
// the registry's schema for that name. It performs no I/O and is safe for
// concurrent use.
type Builder struct {
	registry *tooling.Registry
}

// NewBuilder creates a builder backed by the given registry. Panics if
// registry is nil.
func NewBuilder(registry *tooling.Registry) *Builder {
	if registry == nil {
		panic("dispatch: registry must not be nil")
	}
	return &Builder{registry: registry}
}

// Build validates args against the static schema for name and constructs the
// matching command variant. Names absent from the static catalog but present
// in externalTools become ExternalToolCall commands without further
// validation; the external tool owns its own argument semantics.
func (b *Builder) Build(name string, args map[string]any, externalTools map[string]struct{}) (domain.Command, error) {
	schema, ok := b.registry.Lookup(name)
	if !ok {
		if _, allowed := externalTools[name]; allowed {
			return &domain.ExternalToolCall{ToolName: name, Arguments: args}, nil
		}
		return nil, &UnknownToolError{Tool: name, Arguments: args}
	}
	if schema.Passthrough {
		return construct(schema, nil, args)
	}
	validated, err := validateArgs(schema, args)
	if err != nil {
		return nil, err
	}
	return construct(schema, validated, args)
}

// validateArgs checks required keys, fills optional defaults, and coerces
// supplied values. Keys are visited in sorted order, required keys first, so
// the reported error is deterministic when several keys are bad.
func validateArgs(schema *tooling.Schema, args map[string]any) (map[string]any, error) {
	keys := make([]string, 0, len(schema.Args))
	for key := range schema.Args {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := schema.Args[keys[i]], schema.Args[keys[j]]
		if a.Required != b.Required {
			return a.Required
		}
		return keys[i] < keys[j]
	})

	out := make(map[string]any, len(keys))
	for _, key := range keys {
		spec := schema.Args[key]
		v, present := args[key]
		if !present {
			if spec.Required {
				return nil, &MissingArgumentError{Tool: schema.Name, Key: key}
			}
			if spec.Default != nil {
				out[key] = spec.Default
			}
			continue
		}
		coerced, ok := spec.Type.Coerce(v)
		if !ok {
			return nil, &ArgumentTypeError{Tool: schema.Name, Key: key, Value: v}
		}
		out[key] = coerced
	}
	return out, nil
}

// construct builds the variant for the schema from validated values. raw is
// the full decoded argument mapping, used by passthrough tools and for the
// file editor's sub-command-specific extra keys.
func construct(schema *tooling.Schema, validated map[string]any, raw map[string]any) (domain.Command, error) {
	switch schema.Name {
	case tooling.ToolExecuteBash:
		cmd := &domain.RunCommand{
			Command: validated["command"].(string),
			IsInput: validated["is_input"].(bool),
		}
		if t, ok := validated["timeout"]; ok {
			seconds := t.(float64)
			cmd.HardTimeout = &seconds
		}
		return cmd, nil
	case tooling.ToolExecuteIPython:
		return &domain.RunCode{Code: validated["code"].(string)}, nil
	case tooling.ToolDelegateBrowsing:
		return &domain.DelegateTask{AgentName: "BrowsingAgent", Inputs: raw}, nil
	case tooling.ToolFinish:
		cmd := &domain.Finish{FinalThought: validated["message"].(string)}
		if tc, ok := validated["task_completed"]; ok {
			cmd.TaskCompleted = tc.(*bool)
		}
		return cmd, nil
	case tooling.ToolEditFile:
		return &domain.EditFileContent{
			Path:      validated["path"].(string),
			Content:   validated["content"].(string),
			Start:     validated["start"].(int),
			End:       validated["end"].(int),
			SourceTag: domain.FileEditSource(validated["impl_source"].(string)),
		}, nil
	case tooling.ToolStrReplaceEditor:
		return constructFileEditor(schema, validated, raw)
	case tooling.ToolThink:
		return &domain.Think{Reasoned: domain.Reasoned{Thought: validated["thought"].(string)}}, nil
	case tooling.ToolBrowser:
		return &domain.BrowseInteractive{BrowserScript: validated["code"].(string)}, nil
	}
	// Unreachable while the catalog and this switch stay in sync; the
	// registry test cross-checks them.
	return nil, &UnknownToolError{Tool: schema.Name, Arguments: raw}
}

// constructFileEditor handles the sub-command variant. The sub-command value
// selects the permitted extra key set; any key outside it is fatal. A
// view_range supplied to an edit-oriented sub-command is dropped, not
// rejected.
func constructFileEditor(schema *tooling.Schema, validated map[string]any, raw map[string]any) (domain.Command, error) {
	sub := domain.FileEditorSubCommand(validated["command"].(string))
	allowed, ok := schema.SubCommandKeys[string(sub)]
	if !ok {
		return nil, &ArgumentTypeError{Tool: schema.Name, Key: "command", Value: string(sub)}
	}

	extras := make(map[string]any, len(raw))
	for key, v := range raw {
		if key != "command" && key != "path" {
			extras[key] = v
		}
	}
	if sub != domain.FileEditorView {
		delete(extras, "view_range")
	}
	extraKeys := make([]string, 0, len(extras))
	for key := range extras {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)
	for _, key := range extraKeys {
		permitted := false
		for _, a := range allowed {
			if key == a {
				permitted = true
				break
			}
		}
		if !permitted {
			return nil, &UnexpectedArgumentError{Tool: schema.Name, Key: key, Allowed: allowed}
		}
	}

	cmd := &domain.FileEditorCommand{
		SubCommand: sub,
		Path:       validated["path"].(string),
		SourceTag:  domain.FileEditSourceEditor,
	}
	if v, ok := extras["view_range"]; ok {
		vr, err := coerceViewRange(schema.Name, v)
		if err != nil {
			return nil, err
		}
		cmd.ViewRange = vr
	}
	if v, ok := extras["file_text"]; ok {
		s, err := coerceString(schema.Name, "file_text", v)
		if err != nil {
			return nil, err
		}
		cmd.FileText = s
	}
	if v, ok := extras["old_str"]; ok {
		s, err := coerceString(schema.Name, "old_str", v)
		if err != nil {
			return nil, err
		}
		cmd.OldStr = s
	}
	if v, ok := extras["new_str"]; ok {
		s, err := coerceString(schema.Name, "new_str", v)
		if err != nil {
			return nil, err
		}
		cmd.NewStr = s
	}
	if v, ok := extras["insert_line"]; ok {
		n, ok := tooling.ArgInt.Coerce(v)
		if !ok {
			return nil, &ArgumentTypeError{Tool: schema.Name, Key: "insert_line", Value: v}
		}
		line := n.(int)
		cmd.InsertLine = &line
	}
	return cmd, nil
}

func coerceString(tool, key string, v any) (string, error) {
	s, ok := tooling.ArgString.Coerce(v)
	if !ok {
		return "", &ArgumentTypeError{Tool: tool, Key: key, Value: v}
	}
	return s.(string), nil
}

// coerceViewRange converts a decoded JSON value into the [start, end] line
// pair the view sub-command takes.
func coerceViewRange(tool string, v any) (*[2]int, error) {
	list, ok := v.([]any)
	if !ok || len(list) != 2 {
		return nil, &ArgumentTypeError{Tool: tool, Key: "view_range", Value: v}
	}
	var out [2]int
	for i, item := range list {
		n, ok := tooling.ArgInt.Coerce(item)
		if !ok {
			return nil, &ArgumentTypeError{Tool: tool, Key: "view_range", Value: v}
		}
		out[i] = n.(int)
	}
	return &out, nil
}
