package domain

import "testing"

// =============================================================================
// Kind discriminators
// =============================================================================

func TestCommand_Kind_ShouldBeDistinctPerVariant(t *testing.T) {
	commands := []Command{
		&RunCommand{},
		&RunCode{},
		&DelegateTask{},
		&Finish{},
		&EditFileContent{},
		&FileEditorCommand{},
		&Think{},
		&BrowseInteractive{},
		&ExternalToolCall{},
		&PlainMessage{},
	}
	seen := map[CommandKind]bool{}
	for _, c := range commands {
		k := c.Kind()
		if k == "" {
			t.Errorf("%T: empty kind", c)
		}
		if seen[k] {
			t.Errorf("%T: duplicate kind %q", c, k)
		}
		seen[k] = true
	}
}

// =============================================================================
// Reasoning slots
// =============================================================================

func TestCommand_ReasoningSlot_ShouldExistOnToolVariantsOnly(t *testing.T) {
	carriers := []Command{
		&RunCommand{},
		&RunCode{},
		&DelegateTask{},
		&Finish{},
		&EditFileContent{},
		&FileEditorCommand{},
		&Think{},
		&BrowseInteractive{},
		&ExternalToolCall{},
	}
	for _, c := range carriers {
		if _, ok := c.(ReasoningCarrier); !ok {
			t.Errorf("%T: expected a reasoning slot", c)
		}
	}
	if _, ok := Command(&PlainMessage{}).(ReasoningCarrier); ok {
		t.Error("PlainMessage: expected no reasoning slot")
	}
}

func TestReasoned_SetReasoning_ShouldStoreThought(t *testing.T) {
	cmd := &RunCommand{Command: "ls"}
	cmd.SetReasoning("checking the directory")
	if cmd.Reasoning() != "checking the directory" {
		t.Errorf("Reasoning: got %q", cmd.Reasoning())
	}
	if cmd.Thought != "checking the directory" {
		t.Errorf("Thought field: got %q", cmd.Thought)
	}
}

// =============================================================================
// Provenance attachment
// =============================================================================

func TestCommandBase_Base_ShouldExposeProvenanceForMutation(t *testing.T) {
	var cmd Command = &Finish{}
	cmd.Base().Provenance = Provenance{
		ToolCallID:   "call_9",
		FunctionName: "finish",
		ResponseID:   "resp-1",
		TotalCalls:   3,
	}
	got := cmd.(*Finish).Provenance
	if got.ToolCallID != "call_9" || got.ResponseID != "resp-1" || got.TotalCalls != 3 {
		t.Errorf("provenance: got %+v", got)
	}
}
