package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInventoryQueryHandlerReturnsRows(t *testing.T) {
	db := openTestDB(t)
	seedReceivings(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory?q=POS-123", nil)
	rec := httptest.NewRecorder()
	InventoryQueryHandler(db)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Rows []Row `json:"rows"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(body.Rows))
	}
	if body.Rows[0].ReferenceNo != "POS-123" || body.Rows[0].ItemCode != "ITEM-A" {
		t.Fatalf("unexpected row: %+v", body.Rows[0])
	}
}

func TestInventoryQueryHandlerEmptyResultIsAnArray(t *testing.T) {
	db := openTestDB(t)
	seedReceivings(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory?q=nothing-matches", nil)
	rec := httptest.NewRecorder()
	InventoryQueryHandler(db)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(body["rows"]) != "[]" {
		t.Fatalf("expected empty array, got %s", body["rows"])
	}
}

func TestInventoryQueryHandlerAppliesNamedFilters(t *testing.T) {
	db := openTestDB(t)
	seedReceivings(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory?customer=Bilal&date_from=2026-08-02", nil)
	rec := httptest.NewRecorder()
	InventoryQueryHandler(db)(rec, req)

	var body struct {
		Rows []Row `json:"rows"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Rows) != 1 || body.Rows[0].Customer != "Bilal & Co" {
		t.Fatalf("unexpected rows: %+v", body.Rows)
	}
}
