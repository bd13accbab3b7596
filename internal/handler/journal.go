package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dailyaura/journal-service/internal/apperr"
	"github.com/dailyaura/journal-service/internal/middleware"
	"github.com/dailyaura/journal-service/internal/service"
)

// SaveJournal persists today's entry for the acting user
func (h *Handler) SaveJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, apperr.Unauthorized("Unauthorized. Token missing."))
		return
	}
	var in service.JournalInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	if _, err := h.journal.Save(r.Context(), userID, &in); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"message": "Journal saved successfully!"})
}

// ListJournal returns the acting user's entries, newest first
func (h *Handler) ListJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, apperr.Unauthorized("Unauthorized. Token missing."))
		return
	}
	entries, err := h.journal.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}
