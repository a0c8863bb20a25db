package inventory

import (
	"context"
	"strings"

	"github.com/uptrace/bun"

	"warecopilot/infrastructure/sqlite"
)

const baseSelect = `
SELECT rh.id AS header_id, rl.id AS line_id, rh.customer, rh.receiving_date, rh.reference_no,
       w.code AS warehouse, i.code AS item_code, l.code AS location, rl.batch_no,
       rl.manufacturing_date, rl.expiry_date, rl.shelf_expiry_date, rl.quantity, rl.status
FROM receiving_headers rh
JOIN receiving_lines rl ON rl.receiving_id = rh.id
JOIN items i ON i.id = rl.item_id
JOIN warehouses w ON w.id = rh.warehouse_id
JOIN locations l ON l.id = rl.location_id`

// SearchRows returns joined header+line rows matching the query, newest
// receiving date first.
func SearchRows(ctx context.Context, db *sqlite.DB, q Query) ([]Row, error) {
	var conds []string
	var args []any

	if q.Q != "" {
		like := "%" + q.Q + "%"
		conds = append(conds, `(rh.customer LIKE ? OR rh.reference_no LIKE ? OR w.code LIKE ?
   OR i.code LIKE ? OR l.code LIKE ? OR rl.batch_no LIKE ? OR rl.status LIKE ?)`)
		for i := 0; i < 7; i++ {
			args = append(args, like)
		}
	}
	if q.Customer != "" {
		conds = append(conds, `rh.customer LIKE ?`)
		args = append(args, "%"+q.Customer+"%")
	}
	if q.ReferenceNo != "" {
		conds = append(conds, `rh.reference_no LIKE ?`)
		args = append(args, "%"+q.ReferenceNo+"%")
	}
	if q.DateFrom != "" {
		conds = append(conds, `rh.receiving_date >= ?`)
		args = append(args, q.DateFrom)
	}
	if q.DateTo != "" {
		conds = append(conds, `rh.receiving_date <= ?`)
		args = append(args, q.DateTo)
	}
	if q.ItemCode != "" {
		conds = append(conds, `i.code = ?`)
		args = append(args, q.ItemCode)
	}
	if q.Warehouse != "" {
		conds = append(conds, `w.code = ?`)
		args = append(args, q.Warehouse)
	}
	if q.Location != "" {
		conds = append(conds, `l.code = ?`)
		args = append(args, q.Location)
	}

	query := baseSelect
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += "\nORDER BY rh.receiving_date DESC, rh.id DESC"

	rows := make([]Row, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(query, args...).Scan(ctx, &rows)
	})
	return rows, err
}
