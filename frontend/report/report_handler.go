package report

import (
	"log/slog"
	"net/http"

	"warecopilot/frontend/inventory"
	"warecopilot/infrastructure/sqlite"
	"warecopilot/models"
)

// ReportPageQueryHandler serves GET /report: the server-rendered
// printable view over the same rows the API returns.
func ReportPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
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
			slog.Error("report query failed", slog.Any("err", err))
			http.Error(w, "failed to load report", http.StatusInternalServerError)
			return
		}

		data := PageData{Query: q, Rows: rows}
		for _, row := range rows {
			data.TotalQuantity += row.Quantity
			if row.Status == models.LineStatusDamaged {
				data.DamagedLines++
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ReportPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render report", http.StatusInternalServerError)
			return
		}
	}
}
