package copilot

import (
	"context"
	"errors"
	"fmt"
)

// Dispatcher routes one interpreted utterance to its effect on the
// inventory and the UI. It keeps no state of its own across turns;
// everything carried between utterances lives in SessionState.
type Dispatcher struct {
	Inventory Inventory
	Mutator   Mutator
	Chatter   Chatter
}

// Handle runs one dispatcher turn. Every failure is absorbed at its
// branch boundary and rendered as a single error message effect, so a
// bad turn never leaks into the next one or corrupts the session.
func (d *Dispatcher) Handle(ctx context.Context, utterance string, res InterpretationResult, st *SessionState) []Effect {
	st.Observe(res)
	slots := st.PendingSlots

	action := res.Action
	if action == "" {
		action = "chat_reply"
	}
	intent := res.Intent

	var effects []Effect
	if res.Status != "" && action != "chat_reply" {
		effects = append(effects, StatusMessage(res.Status))
	}

	switch {
	case action == "request_info":
		// Status already asked the operator for the missing slots.
		return effects

	case action == "open_receive_form" || intent == "receive_stock":
		return append(effects, OpenForm{})

	case action == "show_inventory" || intent == "check_inventory" || intent == "report":
		return append(effects, RefreshGrid{})

	case action == "open_record" || intent == "open_record":
		return append(effects, d.openRecord(ctx, slots)...)

	case action == "adjust_quantity" || intent == "adjust_quantity":
		return append(effects, d.adjustQuantity(ctx, slots)...)

	case action == "confirm_delete" || intent == "delete_line":
		// Confirmation prompt already shown; nothing destructive yet.
		return effects

	case action == "execute_delete" && res.Confirmed:
		return append(effects, d.deleteLine(ctx, slots)...)

	case action == "delete_cancelled":
		return effects
	}

	if res.Response != "" {
		return append(effects, ShowMessage{Text: res.Response, Kind: MessageAssistant})
	}

	reply, err := d.Chatter.ChatReply(ctx, utterance)
	if err != nil {
		return append(effects, errorMessage("Error processing command. Please try again."))
	}
	return append(effects, ShowMessage{Text: reply, Kind: MessageAssistant})
}

// openRecord refreshes the grid scoped to the keyword and asks the
// adapter to flip the first rendered row into edit mode. Unlike the
// mutating commands it tolerates multiple matches; the operator picks
// the row in the grid.
func (d *Dispatcher) openRecord(ctx context.Context, slots Slots) []Effect {
	query := slots.Keyword()
	if query == "" {
		return []Effect{errorMessage("Please specify which record to open.")}
	}

	rows, err := d.Inventory.SearchInventory(ctx, Filter{Q: query})
	if err != nil {
		return []Effect{errorMessage(err.Error())}
	}
	if len(rows) == 0 {
		return []Effect{errorMessage(fmt.Sprintf("No record found for '%s'.", query))}
	}
	return []Effect{
		RefreshGrid{Filter: Filter{Q: query}, OpenFirstRow: true},
		StatusMessage(fmt.Sprintf("✅ Record for '%s' opened for editing. Make changes and click Save.", query)),
	}
}

// adjustQuantity applies an additive delta to the single matching line.
// A negative delta decreases stock.
func (d *Dispatcher) adjustQuantity(ctx context.Context, slots Slots) []Effect {
	query := slots.Keyword()
	delta, ok := slots.Number("quantity")
	if query == "" || !ok || delta == 0 {
		return []Effect{ShowMessage{Text: "Please specify quantity and reference keyword.", Kind: MessageError}}
	}

	row, err := Resolve(ctx, d.Inventory, query)
	if err != nil {
		return d.resolveFailure(query, err)
	}

	newQty := row.Quantity + delta
	if err := d.Mutator.PatchLine(ctx, row.LineID, LinePatch{Quantity: &newQty}); err != nil {
		return []Effect{errorMessage(err.Error())}
	}
	return []Effect{
		RefreshGrid{Filter: Filter{Q: query}},
		StatusMessage(fmt.Sprintf("✅ Successfully received %d more quantity in %s. New total: %d.", delta, query, newQty)),
	}
}

// deleteLine performs the confirmed delete, then an unscoped refresh so
// the grid drops the row from the authoritative response.
func (d *Dispatcher) deleteLine(ctx context.Context, slots Slots) []Effect {
	query := slots.Keyword()
	if query == "" {
		return []Effect{errorMessage("Please specify which record to delete.")}
	}

	row, err := Resolve(ctx, d.Inventory, query)
	if err != nil {
		return d.resolveFailure(query, err)
	}

	if err := d.Mutator.DeleteLine(ctx, row.LineID); err != nil {
		return []Effect{errorMessage(err.Error())}
	}
	return []Effect{
		RefreshGrid{},
		StatusMessage(fmt.Sprintf("✅ Successfully deleted line for '%s'.", query)),
	}
}

// resolveFailure turns a resolver error into effects. The ambiguous case
// still re-renders the grid scoped to the keyword so the operator can
// disambiguate visually; failure must leave the UI useful, not blank.
func (d *Dispatcher) resolveFailure(query string, err error) []Effect {
	var ambiguous *AmbiguousError
	if errors.As(err, &ambiguous) {
		return []Effect{
			RefreshGrid{Filter: Filter{Q: query}},
			errorMessage(err.Error()),
		}
	}
	return []Effect{errorMessage(err.Error())}
}
