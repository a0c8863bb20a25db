package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"warecopilot/infrastructure/cache"
)

// Service runs the interpretation pipeline: pending-delete
// confirmations first, then intent extraction, then the action and
// status the client reacts to.
type Service struct {
	extractor Extractor
	fallback  Extractor
	pending   *cache.PendingDeleteCache
}

func NewService(extractor Extractor, pending *cache.PendingDeleteCache) *Service {
	return &Service{
		extractor: extractor,
		fallback:  NewFallbackExtractor(),
		pending:   pending,
	}
}

const promptEnterCommand = "Please enter a command."

func (s *Service) Interpret(ctx context.Context, message, sessionID string) InterpretResult {
	message = strings.TrimSpace(message)
	if sessionID == "" {
		sessionID = "default"
	}

	if message == "" {
		return InterpretResult{
			Intent:   "unknown",
			Slots:    map[string]any{},
			Missing:  []string{},
			Action:   "chat_reply",
			Status:   promptEnterCommand,
			Response: promptEnterCommand,
		}
	}

	// A stored pending delete consumes this message as the answer to
	// the confirmation prompt, whatever it says.
	if query, ok := s.pending.Take(sessionID); ok {
		if isConfirmation(message) {
			return InterpretResult{
				Intent:    "delete_line",
				Slots:     map[string]any{"query": query},
				Missing:   []string{},
				Action:    "execute_delete",
				Status:    fmt.Sprintf("Deleting '%s'...", query),
				Confirmed: true,
			}
		}
		return InterpretResult{
			Intent:   "delete_line",
			Slots:    map[string]any{"query": query},
			Missing:  []string{},
			Action:   "delete_cancelled",
			Status:   "Delete cancelled.",
			Response: "Delete operation cancelled.",
		}
	}

	extraction, err := s.extractor.Extract(ctx, message)
	if err != nil {
		slog.Warn("remote extraction failed, using fallback parser", slog.Any("err", err))
		extraction, _ = s.fallback.Extract(ctx, message)
	}
	if extraction.Slots == nil {
		extraction.Slots = map[string]any{}
	}
	if extraction.Missing == nil {
		extraction.Missing = []string{}
	}
	if extraction.Intent == "" {
		extraction.Intent = "unknown"
	}

	action, status := statusMessage(extraction.Intent, extraction.Slots, extraction.Missing)

	if extraction.Intent == "delete_line" && len(extraction.Missing) == 0 {
		if query := firstSlotText(extraction.Slots, "query", "reference_no", "customer", "batch_no"); query != "" {
			s.pending.Put(sessionID, query)
		}
	}

	response := ""
	if extraction.Intent == "unknown" {
		response = cannedReply(message)
		if response == "" {
			response = status
		}
	}

	return InterpretResult{
		Intent:   extraction.Intent,
		Slots:    extraction.Slots,
		Missing:  extraction.Missing,
		Action:   action,
		Status:   status,
		Response: response,
	}
}

func isConfirmation(message string) bool {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "yes", "confirm", "y":
		return true
	}
	return false
}

var missingLabels = map[string]string{
	"item_code": "Item Code",
	"quantity":  "Quantity",
	"warehouse": "Warehouse",
	"location":  "Location",
	"query":     "Reference / Search Keyword",
}

// statusMessage maps an extraction to the action the client performs
// and the status line shown in the transcript.
func statusMessage(intent string, slots map[string]any, missing []string) (action, status string) {
	query := firstSlotText(slots, "query", "reference_no", "customer", "batch_no", "item_code")

	if len(missing) > 0 {
		labels := make([]string, 0, len(missing))
		for _, m := range missing {
			label, ok := missingLabels[m]
			if !ok {
				label = m
			}
			labels = append(labels, label)
		}
		return "request_info", "Please provide: " + strings.Join(labels, ", ")
	}

	switch intent {
	case "adjust_quantity":
		return "adjust_quantity", fmt.Sprintf("Adding %s more quantity to '%s'...", slotNumberText(slots["quantity"]), query)
	case "delete_line":
		return "confirm_delete", fmt.Sprintf("⚠️ Are you sure you want to delete '%s'? Type 'yes' to confirm.", query)
	case "open_record":
		return "open_record", fmt.Sprintf("Searching for '%s'...", query)
	case "receive_stock":
		return "open_receive_form", "Opening Goods Receiving form..."
	case "check_inventory":
		return "show_inventory", "Loading inventory data..."
	case "report":
		return "show_report", "Generating report..."
	}
	return "chat_reply", ""
}

func firstSlotText(slots map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := slots[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func slotNumberText(v any) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%d", int64(n))
	case int64:
		return fmt.Sprintf("%d", n)
	case int:
		return fmt.Sprintf("%d", n)
	case string:
		return n
	}
	return "0"
}

func cannedReply(message string) string {
	low := strings.ToLower(message)
	for _, w := range []string{"hi", "hello", "hey"} {
		if strings.Contains(low, w) {
			return "Hello! I am your Warehouse Assistant.\n" +
				"Receive, edit, delete and search stock right from this chat."
		}
	}
	for _, w := range []string{"help", "commands", "what can you do"} {
		if strings.Contains(low, w) {
			return "Try these commands:\n" +
				"• \"receive stock\" — record new incoming stock\n" +
				"• \"add 10 qty in POS-123\" — update a quantity\n" +
				"• \"delete POS-456\" — delete a line\n" +
				"• \"search customer Ali\" — find a record\n" +
				"• \"check inventory\" — view inventory"
		}
	}
	return ""
}
