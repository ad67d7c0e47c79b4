package domain

import (
	"encoding/json"
	"testing"
)

// =============================================================================
// Config
// =============================================================================

func TestConfig_JSONRoundtrip_ShouldPreserveData(t *testing.T) {
	want := Config{
		ExternalTools: []string{"fetch_weather", "search_docs"},
		Infra:         InfraConfig{LogFormat: "json", LogLevel: "debug"},
	}
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Config
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.ExternalTools) != 2 || got.ExternalTools[0] != "fetch_weather" {
		t.Errorf("externalTools: want %v, got %v", want.ExternalTools, got.ExternalTools)
	}
	if got.Infra.LogFormat != "json" || got.Infra.LogLevel != "debug" {
		t.Errorf("infra: want %+v, got %+v", want.Infra, got.Infra)
	}
}

// =============================================================================
// AssistantMessage content unmarshalling
// =============================================================================

func TestAssistantMessage_Unmarshal_ShouldParseStringContent(t *testing.T) {
	raw := `{"role":"assistant","content":"I will list the files."}`
	var m AssistantMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m.ContentBlocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(m.ContentBlocks))
	}
	tb, ok := m.ContentBlocks[0].(TextBlock)
	if !ok {
		t.Fatalf("Expected TextBlock, got %T", m.ContentBlocks[0])
	}
	if tb.Text != "I will list the files." {
		t.Errorf("text: got %q", tb.Text)
	}
}

func TestAssistantMessage_Unmarshal_ShouldParseBlockArrayContent(t *testing.T) {
	raw := `{
		"role": "assistant",
		"content": [
			{"type":"text","text":"first"},
			{"type":"image","source":{"type":"base64","media_type":"image/png","data":"Zm9v"}},
			{"type":"text","text":" second"}
		]
	}`
	var m AssistantMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m.ContentBlocks) != 3 {
		t.Fatalf("Expected 3 blocks, got %d", len(m.ContentBlocks))
	}
	if m.ContentBlocks[1].Type() != BlockImage {
		t.Errorf("block 1 type: got %q", m.ContentBlocks[1].Type())
	}
}

func TestAssistantMessage_Unmarshal_ShouldSkipUnknownBlockTypes(t *testing.T) {
	raw := `{"content":[{"type":"text","text":"keep"},{"type":"audio","data":"x"}]}`
	var m AssistantMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m.ContentBlocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(m.ContentBlocks))
	}
}

func TestAssistantMessage_Unmarshal_ShouldHandleAbsentContent(t *testing.T) {
	var m AssistantMessage
	if err := json.Unmarshal([]byte(`{"role":"assistant"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m.ContentBlocks) != 0 {
		t.Errorf("Expected no blocks, got %d", len(m.ContentBlocks))
	}
	if m.TextContent() != "" {
		t.Errorf("TextContent: want empty, got %q", m.TextContent())
	}
}

func TestAssistantMessage_Unmarshal_ShouldHandleNullContent(t *testing.T) {
	var m AssistantMessage
	if err := json.Unmarshal([]byte(`{"content":null}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m.ContentBlocks) != 0 {
		t.Errorf("Expected no blocks, got %d", len(m.ContentBlocks))
	}
}

func TestAssistantMessage_Unmarshal_ShouldFailOnMalformedContent(t *testing.T) {
	var m AssistantMessage
	if err := json.Unmarshal([]byte(`{"content":42}`), &m); err == nil {
		t.Error("Expected error for non-string, non-array content")
	}
}

func TestAssistantMessage_Unmarshal_ShouldParseToolCalls(t *testing.T) {
	raw := `{
		"role": "assistant",
		"content": "running",
		"tool_calls": [
			{"id":"call_1","function":{"name":"execute_bash","arguments":"{\"command\":\"ls\"}"}}
		]
	}`
	var m AssistantMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m.ToolCalls) != 1 {
		t.Fatalf("Expected 1 tool call, got %d", len(m.ToolCalls))
	}
	tc := m.ToolCalls[0]
	if tc.ID != "call_1" || tc.Function.Name != "execute_bash" {
		t.Errorf("tool call: got %+v", tc)
	}
	if tc.Function.Arguments != `{"command":"ls"}` {
		t.Errorf("arguments: got %q", tc.Function.Arguments)
	}
}

func TestAssistantMessage_TextContent_ShouldConcatenateTextBlocksInOrder(t *testing.T) {
	m := AssistantMessage{ContentBlocks: []ContentBlock{
		TextBlock{Text: "a"},
		ImageBlock{},
		TextBlock{Text: "b"},
	}}
	if got := m.TextContent(); got != "ab" {
		t.Errorf("TextContent: want %q, got %q", "ab", got)
	}
}

// =============================================================================
// CompletionResponse
// =============================================================================

func TestCompletionResponse_Unmarshal_ShouldParseFullWireShape(t *testing.T) {
	raw := `{
		"id": "resp-42",
		"choices": [
			{
				"finish_reason": "tool_calls",
				"message": {
					"role": "assistant",
					"content": [{"type":"text","text":"thinking"}],
					"tool_calls": [
						{"id":"a","function":{"name":"think","arguments":"{}"}},
						{"id":"b","function":{"name":"finish","arguments":"{}"}}
					]
				}
			}
		]
	}`
	var resp CompletionResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ID != "resp-42" {
		t.Errorf("id: got %q", resp.ID)
	}
	if len(resp.Choices) != 1 {
		t.Fatalf("Expected 1 choice, got %d", len(resp.Choices))
	}
	msg := resp.Choices[0].Message
	if msg.TextContent() != "thinking" {
		t.Errorf("content: got %q", msg.TextContent())
	}
	if len(msg.ToolCalls) != 2 || msg.ToolCalls[1].ID != "b" {
		t.Errorf("tool calls: got %+v", msg.ToolCalls)
	}
}
