package exports

import (
	"log/slog"
	"net/http"

	"warecopilot/frontend/inventory"
	"warecopilot/infrastructure/audit"
	"warecopilot/infrastructure/sqlite"
)

// InventoryExportCSVHandler serves the current inventory as a CSV
// download, scoped by the same query parameters as the JSON endpoint.
func InventoryExportCSVHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		q := inventory.Query{
			Q:           params.Get("q"),
			Customer:    params.Get("customer"),
			ReferenceNo: params.Get("reference_no"),
			DateFrom:    params.Get("date_from"),
			DateTo:      params.Get("date_to"),
			ItemCode:    params.Get("item_code"),
			Warehouse:   params.Get("warehouse"),
			Location:    params.Get("location"),
		}

		rows, err := inventory.SearchRows(r.Context(), db, q)
		if err != nil {
			slog.Error("inventory export failed", slog.Any("err", err))
			http.Error(w, "failed to export csv", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=inventory.csv")
		if err := writeInventoryCSV(w, rows); err != nil {
			http.Error(w, "failed to export csv", http.StatusInternalServerError)
			return
		}
		if err := recordExportRun(r.Context(), db, auditSvc, r.Header.Get("X-Session-ID"), len(rows)); err != nil {
			slog.Error("record export run failed", slog.Any("err", err))
		}
	}
}
