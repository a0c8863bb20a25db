package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warecopilot/infrastructure/cache"
)

type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) Respond(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

type stubTranscriber struct {
	text     string
	err      error
	gotBytes []byte
	gotName  string
}

func (s *stubTranscriber) Transcribe(_ context.Context, audio []byte, filename string) (string, error) {
	s.gotBytes = audio
	s.gotName = filename
	return s.text, s.err
}

func TestInterpretCommandHandler(t *testing.T) {
	ext := &stubExtractor{result: Extraction{
		Intent:  "check_inventory",
		Slots:   map[string]any{},
		Missing: []string{},
	}}
	svc := NewService(ext, cache.NewPendingDeleteCache(cache.DefaultPendingDeleteTTL))

	req := httptest.NewRequest(http.MethodPost, "/chat/interpret", strings.NewReader(`{"message": "check inventory", "session_id": "s1"}`))
	rec := httptest.NewRecorder()
	InterpretCommandHandler(svc)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res InterpretResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Action != "show_inventory" || res.Status != "Loading inventory data..." {
		t.Fatalf("unexpected result: %+v", res)
	}

	req = httptest.NewRequest(http.MethodPost, "/chat/interpret", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	InterpretCommandHandler(svc)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", rec.Code)
	}
}

func TestRespondCommandHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat/respond", strings.NewReader(`{"message": "how are you"}`))
	rec := httptest.NewRecorder()
	RespondCommandHandler(&stubResponder{reply: "All good here."})(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Reply != "All good here." {
		t.Fatalf("unexpected reply: %q", res.Reply)
	}

	req = httptest.NewRequest(http.MethodPost, "/chat/respond", strings.NewReader(`{"message": "hi"}`))
	rec = httptest.NewRecorder()
	RespondCommandHandler(&stubResponder{err: errors.New("upstream down")})(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on responder failure, got %d", rec.Code)
	}
}

func TestTranscribeCommandHandler(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "clip.webm")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("audio-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = mw.Close()

	transcriber := &stubTranscriber{text: "add 10 qty in POS-123"}
	req := httptest.NewRequest(http.MethodPost, "/chat/transcribe", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	TranscribeCommandHandler(transcriber)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Text != "add 10 qty in POS-123" {
		t.Fatalf("unexpected text: %q", res.Text)
	}
	if string(transcriber.gotBytes) != "audio-bytes" || transcriber.gotName != "clip.webm" {
		t.Fatalf("transcriber got %q %q", transcriber.gotBytes, transcriber.gotName)
	}
}

func TestTranscribeCommandHandlerRequiresFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("other", "value")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/chat/transcribe", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	TranscribeCommandHandler(&stubTranscriber{})(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", rec.Code)
	}
}
