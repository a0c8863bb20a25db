package chat

import (
	"context"
	"testing"
)

func extract(t *testing.T, message string) Extraction {
	t.Helper()
	ext, err := NewFallbackExtractor().Extract(context.Background(), message)
	if err != nil {
		t.Fatalf("extract %q: %v", message, err)
	}
	return ext
}

func TestNormalizeMessageCorrectsSpelling(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"delet POS-123", "delete POS-123"},
		{"Serch customer Ali", "Search customer Ali"},
		{"chek inventry now", "check inventory now"},
		{"recieve stok.", "receive stock."},
		{"nothing wrong here", "nothing wrong here"},
	}
	for _, tt := range tests {
		if got := NormalizeMessage(tt.in); got != tt.want {
			t.Fatalf("NormalizeMessage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractQueryPriorities(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"add 10 more quantity in POS-123", "POS-123"},
		{"open grn 45", "grn 45"},
		{"search customer: Ali Afzal", "Ali Afzal"},
		{"find 'Irtaza Traders'", "Irtaza Traders"},
		{"add 10 in WIDGET-A", "WIDGET-A"},
		{"open widget", "widget"},
	}
	for _, tt := range tests {
		if got := extractQuery(tt.message); got != tt.want {
			t.Fatalf("extractQuery(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestDetectIntentKeywordRouting(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"delete POS-123 item line", "delete_line"},
		{"add 10 more quantity in POS-123", "adjust_quantity"},
		{"open POS-456", "open_record"},
		{"check inventory", "check_inventory"},
		{"receive stock", "receive_stock"},
		{"show me the report", "report"},
		{"good morning", "unknown"},
	}
	for _, tt := range tests {
		if got := extract(t, tt.message); got.Intent != tt.want {
			t.Fatalf("intent for %q = %q, want %q", tt.message, got.Intent, tt.want)
		}
	}
}

func TestDetectIntentToleratesTypos(t *testing.T) {
	// "delet" is spell-corrected, "remobe" is only reachable by fuzzy
	// matching.
	for _, message := range []string{"delet POS-123", "remobe POS-123"} {
		if got := extract(t, message); got.Intent != "delete_line" {
			t.Fatalf("intent for %q = %q, want delete_line", message, got.Intent)
		}
	}
}

func TestExtractFillsSlotsAndMissing(t *testing.T) {
	ext := extract(t, "add 10 more quantity in POS-123")
	if q, _ := ext.Slots["quantity"].(int64); q != 10 {
		t.Fatalf("quantity slot = %v", ext.Slots["quantity"])
	}
	if ext.Slots["query"] != "POS-123" {
		t.Fatalf("query slot = %v", ext.Slots["query"])
	}
	if len(ext.Missing) != 0 {
		t.Fatalf("expected nothing missing, got %v", ext.Missing)
	}

	ext = extract(t, "receive stock")
	if ext.Intent != "receive_stock" {
		t.Fatalf("intent = %q", ext.Intent)
	}
	want := map[string]bool{"item_code": true, "quantity": true, "warehouse": true, "location": true}
	if len(ext.Missing) != len(want) {
		t.Fatalf("missing = %v", ext.Missing)
	}
	for _, m := range ext.Missing {
		if !want[m] {
			t.Fatalf("unexpected missing slot %q", m)
		}
	}
}
