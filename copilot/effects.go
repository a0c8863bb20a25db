package copilot

import "strings"

// MessageKind selects how the UI shell renders a chat log entry.
type MessageKind string

const (
	MessageSystem    MessageKind = "system"
	MessageUser      MessageKind = "user"
	MessageAssistant MessageKind = "assistant"
	MessageError     MessageKind = "error"
	MessageSuccess   MessageKind = "success"
	MessageWarning   MessageKind = "warning"
)

// Effect is one UI-facing outcome of a dispatcher turn. The adapter
// executes effects in order; the dispatcher itself never touches the UI.
type Effect interface {
	isEffect()
}

// ShowMessage appends one entry to the chat log.
type ShowMessage struct {
	Text string
	Kind MessageKind
}

// RefreshGrid re-fetches authoritative rows scoped to Filter and
// re-renders the grid, discarding any client-held state. When
// OpenFirstRow is set the adapter flips the first rendered row into
// edit mode after the refresh completes.
type RefreshGrid struct {
	Filter       Filter
	OpenFirstRow bool
}

// OpenForm opens the structured receiving form, pre-seeded empty.
type OpenForm struct{}

func (ShowMessage) isEffect() {}
func (RefreshGrid) isEffect() {}
func (OpenForm) isEffect()    {}

// StatusMessage classifies a backend status string by its prefix, the
// convention the interpreter uses for success/error/warning statuses.
func StatusMessage(text string) ShowMessage {
	kind := MessageAssistant
	switch {
	case strings.HasPrefix(text, "✅"):
		kind = MessageSuccess
	case strings.HasPrefix(text, "❌"):
		kind = MessageError
	case strings.HasPrefix(text, "⚠️"):
		kind = MessageWarning
	}
	return ShowMessage{Text: text, Kind: kind}
}

func errorMessage(text string) ShowMessage {
	if !strings.HasPrefix(text, "❌") {
		text = "❌ " + text
	}
	return ShowMessage{Text: text, Kind: MessageError}
}
