package domain

import (
	"encoding/json"
)

// =============================================================================
// Core Configuration
// =============================================================================

type Config struct {
	// ExternalTools lists tool names registered at runtime by the surrounding
	// session (e.g. MCP servers). Calls to these names bypass static schema
	// validation and become ExternalToolCall commands.
	ExternalTools []string    `json:"externalTools"`
	Infra         InfraConfig `json:"infra"`
}

type InfraConfig struct {
	LogFormat string `json:"logFormat"` // "json" | "text"
	LogLevel  string `json:"logLevel"`
}

// =============================================================================
// Completion Response Wire Protocol
// =============================================================================

// ToolCallRequest is one structured operation request embedded in a model
// response. Arguments arrive JSON-encoded inside a string and are decoded
// and validated downstream, never trusted as-is.
type ToolCallRequest struct {
	ID       string       `json:"id"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON-encoded object
}

// AssistantMessage is the message of one completion choice. RawContent holds
// the content JSON; ContentBlocks is populated after UnmarshalJSON for
// polymorphic content (plain string or array of typed blocks).
type AssistantMessage struct {
	Role       string          `json:"role"`
	RawContent json.RawMessage `json:"content"`
	// Parsed blocks (populated after Unmarshal)
	ContentBlocks []ContentBlock    `json:"-"`
	ToolCalls     []ToolCallRequest `json:"tool_calls,omitempty"`
}

// UnmarshalJSON implements custom unmarshaling for polymorphic content.
// If content is a string, it becomes a single TextBlock; if an array, each
// element is decoded by its "type" field into the matching ContentBlock
// implementation.
func (m *AssistantMessage) UnmarshalJSON(data []byte) error {
	type assistantMessage AssistantMessage
	type alias struct {
		Content json.RawMessage `json:"content"`
		assistantMessage
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	m.Role = a.Role
	m.RawContent = a.Content
	m.ToolCalls = a.ToolCalls
	m.ContentBlocks = nil

	if len(a.Content) == 0 {
		return nil
	}
	blocks, err := parseMessageContent(a.Content)
	if err != nil {
		return err
	}
	m.ContentBlocks = blocks
	return nil
}

// TextContent concatenates the text of every text block in order. Non-text
// blocks (e.g. images) are skipped. Returns "" when content is absent or null.
func (m *AssistantMessage) TextContent() string {
	var out string
	for _, b := range m.ContentBlocks {
		if t, ok := b.(TextBlock); ok {
			out += t.Text
		}
	}
	return out
}

// parseMessageContent decodes content (string or array of blocks) into
// ContentBlocks. Used by AssistantMessage.UnmarshalJSON and by tests to cover
// the array-unmarshal error path.
func parseMessageContent(content json.RawMessage) ([]ContentBlock, error) {
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return []ContentBlock{TextBlock{Text: s}}, nil
	}
	if string(content) == "null" {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, err
	}
	blocks := make([]ContentBlock, 0, len(raw))
	for _, r := range raw {
		var typeOnly struct {
			Type BlockType `json:"type"`
		}
		if err := json.Unmarshal(r, &typeOnly); err != nil {
			continue
		}
		switch typeOnly.Type {
		case BlockText:
			var b TextBlock
			if err := json.Unmarshal(r, &b); err == nil {
				blocks = append(blocks, b)
			}
		case BlockImage:
			var b ImageBlock
			if err := json.Unmarshal(r, &b); err == nil {
				blocks = append(blocks, b)
			}
		}
	}
	return blocks, nil
}

type BlockType string

const (
	BlockText  BlockType = "text"
	BlockImage BlockType = "image"
)

type ContentBlock interface {
	Type() BlockType
}

type TextBlock struct {
	Text string `json:"text"`
}

func (TextBlock) Type() BlockType { return BlockText }

type ImageBlock struct {
	Source MediaType `json:"source"`
}

type MediaType struct {
	Type      string `json:"type"`       // e.g., "base64"
	MediaType string `json:"media_type"` // e.g., "image/jpeg"
	Data      string `json:"data"`
}

func (ImageBlock) Type() BlockType { return BlockImage }

// Choice is one completion candidate. The dispatcher requires exactly one per
// response and treats any other count as a provider contract breach.
type Choice struct {
	Message      AssistantMessage `json:"message"`
	FinishReason string           `json:"finish_reason,omitempty"`
}

// CompletionResponse is the input boundary: a chat-completion API response
// carrying an id, exactly one choice, and zero or more tool calls. It is
// consumed and discarded within a single dispatch.
type CompletionResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
}

// =============================================================================
// Tooling
// =============================================================================

type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}
