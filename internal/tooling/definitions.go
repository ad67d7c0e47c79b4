package tooling

import (
	"encoding/json"
	"fmt"

	invopopSchema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Parameter structs for the LLM-facing tool definitions. Field presence
// (omitempty) controls which keys the generated schema marks required.
// Boolean-ish parameters are declared as string enums because the protocol
// transmits them as strings and coerces by exact match.

type executeBashParams struct {
	Command string  `json:"command" jsonschema:"description=The bash command to execute. Can be empty to view additional logs when previous exit code is -1"`
	IsInput string  `json:"is_input,omitempty" jsonschema:"enum=true,enum=false,description=If true the command is input to the running process instead of a new command"`
	Timeout float64 `json:"timeout,omitempty" jsonschema:"description=Hard timeout for the command in seconds"`
}

type executeIPythonParams struct {
	Code string `json:"code" jsonschema:"description=The Python code to execute"`
}

type delegateBrowsingParams struct {
	Task string `json:"task,omitempty" jsonschema:"description=The browsing task to delegate"`
}

type finishParams struct {
	Message       string `json:"message,omitempty" jsonschema:"description=Final message to send to the user"`
	TaskCompleted string `json:"task_completed,omitempty" jsonschema:"enum=true,enum=false,description=Whether the task has been completed"`
}

type editFileParams struct {
	Path    string `json:"path" jsonschema:"description=Absolute path of the file to edit"`
	Content string `json:"content" jsonschema:"description=Replacement content for the targeted line range"`
	Start   int    `json:"start,omitempty" jsonschema:"description=First line of the range (1-based)"`
	End     int    `json:"end,omitempty" jsonschema:"description=Last line of the range; -1 means end of file"`
}

type strReplaceEditorParams struct {
	Command    string `json:"command" jsonschema:"enum=view,enum=create,enum=str_replace,enum=insert,enum=undo_edit,description=The editor sub-command to run"`
	Path       string `json:"path" jsonschema:"description=Absolute path to file or directory"`
	FileText   string `json:"file_text,omitempty" jsonschema:"description=Content for the create sub-command"`
	OldStr     string `json:"old_str,omitempty" jsonschema:"description=Exact string to replace for str_replace"`
	NewStr     string `json:"new_str,omitempty" jsonschema:"description=Replacement string for str_replace or insert"`
	InsertLine int    `json:"insert_line,omitempty" jsonschema:"description=Line after which to insert for the insert sub-command"`
	ViewRange  []int  `json:"view_range,omitempty" jsonschema:"description=Optional [start end] line range for the view sub-command"`
}

type thinkParams struct {
	Thought string `json:"thought,omitempty" jsonschema:"description=The thought to log"`
}

type browserParams struct {
	Code string `json:"code" jsonschema:"description=The browsing script to execute"`
}

// marshalFunc is the JSON marshaler used by GenerateDefinition. Package-level
// so tests can inject a failing marshaler to cover the error return path.
var marshalFunc = func(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// GenerateDefinition generates a JSON Schema string from a Go parameter
// struct using invopop/jsonschema reflection.
func GenerateDefinition(params interface{}) string {
	reflector := invopopSchema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(params)

	schemaBytes, err := marshalFunc(schema)
	if err != nil {
		return ""
	}
	return string(schemaBytes)
}

// ValidateDefinition compiles a JSON Schema string and reports whether it is
// usable. The registry runs this for every generated definition so a broken
// parameter struct fails at construction, not mid-session.
func ValidateDefinition(schemaStr string) error {
	if _, err := jsonschema.CompileString("", schemaStr); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	return nil
}
