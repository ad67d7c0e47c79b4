package dispatch

import "rudder/internal/domain"

// ExtractReasoning returns the assistant's free-text rationale: the plain
// content string verbatim, or the concatenated text blocks in order, or ""
// when content is absent. Non-text blocks are ignored.
func ExtractReasoning(msg *domain.AssistantMessage) string {
	return msg.TextContent()
}

// CombineReasoning attaches thought to cmd when the variant exposes a
// reasoning slot; variants without one are returned unchanged. When the slot
// is already populated the new thought goes first, separated by a newline.
// An empty thought leaves cmd unchanged.
func CombineReasoning(cmd domain.Command, thought string) domain.Command {
	carrier, ok := cmd.(domain.ReasoningCarrier)
	if !ok || thought == "" {
		return cmd
	}
	if existing := carrier.Reasoning(); existing != "" {
		carrier.SetReasoning(thought + "\n" + existing)
	} else {
		carrier.SetReasoning(thought)
	}
	return cmd
}
