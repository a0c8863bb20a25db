package receiving

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"warecopilot/infrastructure/audit"
	"warecopilot/infrastructure/sqlite"
)

// ConfirmCommandHandler serves POST /receiving/confirm.
func ConfirmCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		grnID, err := ConfirmReceiving(r.Context(), db, auditSvc, actor(r), req)
		if err != nil {
			writeMutationError(w, "confirm receiving", err)
			return
		}
		writeJSON(w, map[string]any{"status": "success", "grn_id": grnID})
	}
}

// PatchLineCommandHandler serves PATCH /receiving/lines/{id}.
func PatchLineCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			http.Error(w, "invalid line id", http.StatusBadRequest)
			return
		}
		var patch LinePatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := PatchLine(r.Context(), db, auditSvc, actor(r), id, patch); err != nil {
			writeMutationError(w, "update line", err)
			return
		}
		writeJSON(w, map[string]any{"status": "success"})
	}
}

// PatchHeaderCommandHandler serves PATCH /receiving/headers/{id}.
func PatchHeaderCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			http.Error(w, "invalid header id", http.StatusBadRequest)
			return
		}
		var patch HeaderPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := PatchHeader(r.Context(), db, auditSvc, actor(r), id, patch); err != nil {
			writeMutationError(w, "update header", err)
			return
		}
		writeJSON(w, map[string]any{"status": "success"})
	}
}

// DeleteLineCommandHandler serves DELETE /receiving/lines/{id}.
func DeleteLineCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			http.Error(w, "invalid line id", http.StatusBadRequest)
			return
		}
		if err := DeleteLine(r.Context(), db, auditSvc, actor(r), id); err != nil {
			writeMutationError(w, "delete line", err)
			return
		}
		writeJSON(w, map[string]any{"status": "success"})
	}
}

// GRNQueryHandler serves GET /receiving/{id}/grn.pdf.
func GRNQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			http.Error(w, "invalid receiving id", http.StatusBadRequest)
			return
		}
		data, err := LoadGRNData(r.Context(), db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "receiving not found", http.StatusNotFound)
				return
			}
			slog.Error("grn load failed", slog.Int64("receiving_id", id), slog.Any("err", err))
			http.Error(w, "failed to load receiving", http.StatusInternalServerError)
			return
		}
		pdf, err := renderGRNPDF(data)
		if err != nil {
			slog.Error("grn render failed", slog.Int64("receiving_id", id), slog.Any("err", err))
			http.Error(w, "failed to render GRN", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="grn-%d.pdf"`, id))
		_, _ = w.Write(pdf)
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func actor(r *http.Request) string {
	return r.Header.Get("X-Session-ID")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

func writeMutationError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		slog.Error(op+" failed", slog.Any("err", err))
		http.Error(w, "failed to "+op, http.StatusInternalServerError)
	}
}
