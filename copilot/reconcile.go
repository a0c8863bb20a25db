package copilot

import "context"

// GridView is the rendered state of the inventory grid: the rows of the
// last authoritative fetch plus which single row, if any, is in edit
// mode. Exactly one of populated/empty/failed holds after a refresh.
type GridView struct {
	Filter  Filter
	Rows    []InventoryRow
	EditRow int // index into Rows; -1 when every row is in view mode
	Failed  bool
}

// Reconcile fetches fresh rows for the filter and builds the view from
// the authoritative response, discarding whatever the client held. Every
// row comes back in view mode; open_record's first-row edit is applied
// by the caller afterwards.
func Reconcile(ctx context.Context, inv Inventory, f Filter) GridView {
	rows, err := inv.SearchInventory(ctx, f)
	if err != nil {
		return GridView{Filter: f, EditRow: -1, Failed: true}
	}
	return GridView{Filter: f, Rows: rows, EditRow: -1}
}

// Empty reports a successful refresh that matched nothing.
func (g GridView) Empty() bool {
	return !g.Failed && len(g.Rows) == 0
}

// OpenRow flips one row into edit mode; any other editing row returns
// to view mode, edit being exclusive per grid.
func (g *GridView) OpenRow(i int) bool {
	if i < 0 || i >= len(g.Rows) {
		return false
	}
	g.EditRow = i
	return true
}

// CloseEdit returns every row to view mode.
func (g *GridView) CloseEdit() {
	g.EditRow = -1
}

// RemoveRow drops a row locally after a committed delete. This is the
// one mutation rendered without a refetch, for responsiveness.
func (g *GridView) RemoveRow(i int) {
	if i < 0 || i >= len(g.Rows) {
		return
	}
	g.Rows = append(g.Rows[:i], g.Rows[i+1:]...)
	if g.EditRow == i {
		g.EditRow = -1
	} else if g.EditRow > i {
		g.EditRow--
	}
}
