package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warecopilot/copilot"
)

func TestSearchInventorySendsOnlyPresentFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/inventory" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{"rows": []copilot.InventoryRow{{LineID: 1, ReferenceNo: "POS-1"}}})
	}))
	defer srv.Close()

	rows, err := New(srv.URL).SearchInventory(context.Background(), copilot.Filter{Q: "POS-1"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].ReferenceNo != "POS-1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if gotQuery != "q=POS-1" {
		t.Fatalf("empty filter fields must not be sent, got %q", gotQuery)
	}
}

func TestPatchLineMarshalsOnlySetFields(t *testing.T) {
	var gotBody map[string]any
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer srv.Close()

	qty := int64(60)
	err := New(srv.URL).PatchLine(context.Background(), 7, copilot.LinePatch{Quantity: &qty})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/receiving/lines/7" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if len(gotBody) != 1 || gotBody["quantity"] != float64(60) {
		t.Fatalf("absent fields must be omitted, got %v", gotBody)
	}
}

func TestNonSuccessStatusIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteLine(context.Background(), 7)
	var netErr *copilot.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected network error, got %v", err)
	}
	if netErr.Status != http.StatusBadGateway || netErr.Op != "Delete line" {
		t.Fatalf("wrong error payload: %+v", netErr)
	}
}

func TestConfirmReceivingReturnsGRNID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var draft copilot.ReceivingDraft
		_ = json.NewDecoder(r.Body).Decode(&draft)
		if draft.ReferenceNo != "POS-9" || len(draft.Items) != 1 {
			t.Fatalf("draft not carried: %+v", draft)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "grn_id": 42})
	}))
	defer srv.Close()

	id, err := New(srv.URL).ConfirmReceiving(context.Background(), copilot.ReceivingDraft{
		Customer:      "Ali Traders",
		Warehouse:     "WH1",
		ReceivingDate: "2026-08-01",
		ReferenceNo:   "POS-9",
		Items:         []copilot.LineItemDraft{{ItemCode: "ITEM-A", Location: "A1", Quantity: 5, Status: "ok"}},
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected grn 42, got %d", id)
	}
}

func TestInterpretCarriesSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["session_id"] != "tab-1" || body["message"] != "delete POS-1" {
			t.Fatalf("request not carried: %v", body)
		}
		_ = json.NewEncoder(w).Encode(copilot.InterpretationResult{
			Intent: "delete_line",
			Action: "confirm_delete",
			Status: "⚠️ Are you sure?",
			Slots:  copilot.Slots{"query": "POS-1"},
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL).Interpret(context.Background(), "delete POS-1", "tab-1")
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if res.Action != "confirm_delete" || res.Slots.Text("query") != "POS-1" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestTranscribeUploadsMultipartClip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "voice.webm" {
			t.Fatalf("unexpected filename %s", header.Filename)
		}
		clip, _ := io.ReadAll(file)
		if string(clip) != "audio-bytes" {
			t.Fatalf("clip not carried: %q", clip)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "add ten quantity"})
	}))
	defer srv.Close()

	text, err := New(srv.URL).Transcribe(context.Background(), strings.NewReader("audio-bytes"), "voice.webm")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "add ten quantity" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestChatReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": "Hello there."})
	}))
	defer srv.Close()

	reply, err := New(srv.URL).ChatReply(context.Background(), "hi")
	if err != nil {
		t.Fatalf("chat reply: %v", err)
	}
	if reply != "Hello there." {
		t.Fatalf("unexpected reply %q", reply)
	}
}
