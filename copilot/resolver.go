package copilot

import "context"

// slot precedence when picking the search keyword for a command.
var keywordSlots = []string{"query", "reference_no", "item_code", "batch_no", "customer"}

// Keyword picks the free-text search term from extracted slots.
func (s Slots) Keyword() string {
	for _, key := range keywordSlots {
		if v := s.Text(key); v != "" {
			return v
		}
	}
	return ""
}

// Resolve finds the single inventory row a keyword refers to. The
// keyword is one opaque term, not parsed into fields. Zero matches yield
// a NotFoundError, more than one an AmbiguousError; Resolve itself has
// no side effects — the caller decides what to do with ambiguity.
func Resolve(ctx context.Context, inv Inventory, keyword string) (InventoryRow, error) {
	rows, err := inv.SearchInventory(ctx, Filter{Q: keyword})
	if err != nil {
		return InventoryRow{}, err
	}
	switch len(rows) {
	case 0:
		return InventoryRow{}, &NotFoundError{Keyword: keyword}
	case 1:
		return rows[0], nil
	default:
		return InventoryRow{}, &AmbiguousError{Keyword: keyword, Count: len(rows)}
	}
}
