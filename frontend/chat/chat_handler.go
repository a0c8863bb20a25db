package chat

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// 10 MB cap on uploaded audio clips.
const maxAudioBytes = 10 << 20

// InterpretCommandHandler serves POST /chat/interpret.
func InterpretCommandHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InterpretRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		writeJSON(w, svc.Interpret(r.Context(), req.Message, req.SessionID))
	}
}

// RespondCommandHandler serves POST /chat/respond, the free-text
// fallback when interpretation produced no reply.
func RespondCommandHandler(responder Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InterpretRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		reply, err := responder.Respond(r.Context(), req.Message)
		if err != nil {
			slog.Error("chat respond failed", slog.Any("err", err))
			http.Error(w, "failed to generate reply", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"reply": reply})
	}
}

// TranscribeCommandHandler serves POST /chat/transcribe: multipart
// audio in the "file" field, transcript out.
func TranscribeCommandHandler(transcriber Transcriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "audio file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
		if err != nil {
			http.Error(w, "failed to read audio", http.StatusBadRequest)
			return
		}
		text, err := transcriber.Transcribe(r.Context(), audio, header.Filename)
		if err != nil {
			slog.Error("transcription failed", slog.Any("err", err))
			http.Error(w, "failed to transcribe audio", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"text": text})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
