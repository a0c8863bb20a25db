package chat

import "context"

// Extraction is what an extractor returns for one message: the intent,
// raw slot values and the slot names still required.
type Extraction struct {
	Intent  string         `json:"intent"`
	Slots   map[string]any `json:"slots"`
	Missing []string       `json:"missing"`
}

// Extractor turns a free-text message into intent and slots.
type Extractor interface {
	Extract(ctx context.Context, message string) (Extraction, error)
}

// Responder produces a free-text reply for messages no structured
// action covers.
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
}

// Transcriber converts an audio clip into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// InterpretRequest is the body of POST /chat/interpret.
type InterpretRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// InterpretResult is the full interpretation sent back to the client.
// Status drives the chat transcript; Action drives what the client does
// next.
type InterpretResult struct {
	Intent    string         `json:"intent"`
	Slots     map[string]any `json:"slots"`
	Missing   []string       `json:"missing"`
	Action    string         `json:"action"`
	Status    string         `json:"status,omitempty"`
	Response  string         `json:"response,omitempty"`
	Confirmed bool           `json:"confirmed,omitempty"`
}
