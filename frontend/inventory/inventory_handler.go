package inventory

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"warecopilot/infrastructure/sqlite"
)

// InventoryQueryHandler serves GET /api/inventory: the authoritative
// joined rows every grid refresh is rebuilt from.
func InventoryQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		q := Query{
			Q:           params.Get("q"),
			Customer:    params.Get("customer"),
			ReferenceNo: params.Get("reference_no"),
			DateFrom:    params.Get("date_from"),
			DateTo:      params.Get("date_to"),
			ItemCode:    params.Get("item_code"),
			Warehouse:   params.Get("warehouse"),
			Location:    params.Get("location"),
		}

		rows, err := SearchRows(r.Context(), db, q)
		if err != nil {
			slog.Error("inventory search failed", slog.Any("err", err))
			http.Error(w, "failed to load inventory", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{"rows": rows})
	}
}
