package receiving

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"warecopilot/infrastructure/audit"
	"warecopilot/infrastructure/sqlite"
)

func newTestRouter(db *sqlite.DB) http.Handler {
	auditSvc := audit.NewService()
	r := chi.NewRouter()
	r.Post("/receiving/confirm", ConfirmCommandHandler(db, auditSvc))
	r.Patch("/receiving/lines/{id}", PatchLineCommandHandler(db, auditSvc))
	r.Patch("/receiving/headers/{id}", PatchHeaderCommandHandler(db, auditSvc))
	r.Delete("/receiving/lines/{id}", DeleteLineCommandHandler(db, auditSvc))
	r.Get("/receiving/{id}/grn.pdf", GRNQueryHandler(db))
	return r
}

func TestConfirmCommandHandlerReturnsGRNID(t *testing.T) {
	db := openTestDB(t)
	seedMasterData(t, db)
	router := newTestRouter(db)

	body, _ := json.Marshal(ConfirmRequest{
		Customer:      "Ali Traders",
		ReceivingDate: "2026-08-01",
		Warehouse:     "WH1",
		ReferenceNo:   "POS-123",
		Items:         []LineInput{{ItemCode: "ITEM-A", Location: "A1", Quantity: 10}},
	})
	req := httptest.NewRequest(http.MethodPost, "/receiving/confirm", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
		GRNID  int64  `json:"grn_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "success" || resp.GRNID == 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestConfirmCommandHandlerMapsErrors(t *testing.T) {
	db := openTestDB(t)
	seedMasterData(t, db)
	router := newTestRouter(db)

	// missing customer
	body, _ := json.Marshal(ConfirmRequest{
		ReceivingDate: "2026-08-01",
		Warehouse:     "WH1",
		ReferenceNo:   "POS-123",
		Items:         []LineInput{{ItemCode: "ITEM-A", Location: "A1", Quantity: 10}},
	})
	req := httptest.NewRequest(http.MethodPost, "/receiving/confirm", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload, got %d", rec.Code)
	}

	// unknown warehouse
	body, _ = json.Marshal(ConfirmRequest{
		Customer:      "Ali Traders",
		ReceivingDate: "2026-08-01",
		Warehouse:     "NOPE",
		ReferenceNo:   "POS-123",
		Items:         []LineInput{{ItemCode: "ITEM-A", Location: "A1", Quantity: 10}},
	})
	req = httptest.NewRequest(http.MethodPost, "/receiving/confirm", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown warehouse, got %d", rec.Code)
	}
}

func TestPatchLineCommandHandler(t *testing.T) {
	db := openTestDB(t)
	seedMasterData(t, db)
	confirmOne(t, db)
	router := newTestRouter(db)

	req := httptest.NewRequest(http.MethodPatch, "/receiving/lines/1", bytes.NewReader([]byte(`{"quantity": 60}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if line := loadLine(t, db, 1); line.Quantity != 60 {
		t.Fatalf("expected quantity 60, got %d", line.Quantity)
	}

	req = httptest.NewRequest(http.MethodPatch, "/receiving/lines/99", bytes.NewReader([]byte(`{"quantity": 60}`)))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown line, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPatch, "/receiving/lines/abc", bytes.NewReader([]byte(`{}`)))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
}

func TestPatchHeaderCommandHandler(t *testing.T) {
	db := openTestDB(t)
	seedMasterData(t, db)
	confirmOne(t, db)
	router := newTestRouter(db)

	req := httptest.NewRequest(http.MethodPatch, "/receiving/headers/1", bytes.NewReader([]byte(`{"customer": "Bilal & Co"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteLineCommandHandler(t *testing.T) {
	db := openTestDB(t)
	seedMasterData(t, db)
	confirmOne(t, db)
	router := newTestRouter(db)

	req := httptest.NewRequest(http.MethodDelete, "/receiving/lines/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := countRows(t, db, "receiving_lines"); got != 1 {
		t.Fatalf("expected 1 remaining line, got %d", got)
	}
}

func TestGRNQueryHandlerServesPDF(t *testing.T) {
	db := openTestDB(t)
	seedMasterData(t, db)
	confirmOne(t, db)
	router := newTestRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/receiving/1/grn.pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes")
	}

	req = httptest.NewRequest(http.MethodGet, "/receiving/999/grn.pdf", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown receiving, got %d", rec.Code)
	}
}
