package receiving

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderGRNPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	pdf, err := renderGRNPDFAt(GRNData{
		HeaderID:      7,
		Customer:      "Ali Traders",
		ReceivingDate: "2026-08-01",
		ReferenceNo:   "POS-123",
		Warehouse:     "WH1",
		Lines: []GRNLine{
			{ItemCode: "ITEM-A", ItemName: "Item A", Location: "A1", BatchNo: "BATCH-01", Quantity: 50, Status: "ok"},
			{ItemCode: "ITEM-B", ItemName: "Item B", Location: "B2", Quantity: 20, Status: "damaged"},
		},
	}, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderGRNPDFAt returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes")
	}
}

func TestRenderGRNPDF_FallsBackToHeaderIDBarcode(t *testing.T) {
	t.Parallel()

	pdf, err := renderGRNPDFAt(GRNData{HeaderID: 3, Customer: "Ali Traders"}, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderGRNPDFAt returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty pdf bytes")
	}
}
