package report

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"warecopilot/frontend/inventory"
)

// PageData is everything the report page renders.
type PageData struct {
	Query         inventory.Query
	Rows          []inventory.Row
	TotalQuantity int64
	DamagedLines  int
}

// ReportPage renders the inventory report as a plain printable table.
func ReportPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Inventory Report</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
th { background: #eee; }
tr.damaged td { background: #fdd; }
.summary { margin: 1rem 0; }
</style>
</head>
<body>
<h1>Inventory Report</h1>
`); err != nil {
			return err
		}
		if data.Query.Q != "" {
			if _, err := fmt.Fprintf(w, `<p>Filter: %s</p>
`, templ.EscapeString(data.Query.Q)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<p class="summary">%d lines, %d total quantity, %d damaged</p>
<table>
<tr><th>Customer</th><th>Date</th><th>Reference</th><th>Warehouse</th><th>Item</th><th>Location</th><th>Batch</th><th>Qty</th><th>Status</th></tr>
`, len(data.Rows), data.TotalQuantity, data.DamagedLines); err != nil {
			return err
		}
		for _, row := range data.Rows {
			class := ""
			if row.Status == "damaged" {
				class = ` class="damaged"`
			}
			if _, err := fmt.Fprintf(w, `<tr%s><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>
`,
				class,
				templ.EscapeString(row.Customer),
				templ.EscapeString(row.ReceivingDate),
				templ.EscapeString(row.ReferenceNo),
				templ.EscapeString(row.Warehouse),
				templ.EscapeString(row.ItemCode),
				templ.EscapeString(row.Location),
				templ.EscapeString(row.BatchNo),
				row.Quantity,
				templ.EscapeString(row.Status),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>
</body>
</html>
`)
		return err
	})
}
