package copilot

// SessionState is the per-client conversational memory. It holds only
// the slots of the last interpretation; multi-turn flows work because
// the interpreter recognizes follow-up utterances ("yes", a bare number)
// in context and re-emits the action with merged slots.
type SessionState struct {
	PendingSlots Slots
}

func NewSessionState() *SessionState {
	return &SessionState{PendingSlots: Slots{}}
}

// Observe replaces — never merges — the carried slots with those of the
// new interpretation.
func (s *SessionState) Observe(res InterpretationResult) {
	if res.Slots == nil {
		s.PendingSlots = Slots{}
		return
	}
	s.PendingSlots = res.Slots
}
