package exports

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/uptrace/bun"

	"warecopilot/frontend/inventory"
	"warecopilot/infrastructure/audit"
	"warecopilot/infrastructure/sqlite"
)

func writeInventoryCSV(w io.Writer, rows []inventory.Row) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"reference_no", "customer", "receiving_date", "warehouse", "item_code", "location", "batch_no", "quantity", "status"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.ReferenceNo,
			r.Customer,
			r.ReceivingDate,
			r.Warehouse,
			r.ItemCode,
			r.Location,
			r.BatchNo,
			strconv.FormatInt(r.Quantity, 10),
			r.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}

func recordExportRun(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actor string, rowCount int) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return auditSvc.Write(ctx, tx, actor, "inventory.export", "inventory", "", nil, map[string]any{"rows": rowCount})
	})
}
