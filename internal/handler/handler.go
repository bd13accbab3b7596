package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/dailyaura/journal-service/internal/apperr"
	"github.com/dailyaura/journal-service/internal/integrations/google"
	"github.com/dailyaura/journal-service/internal/service"
)

type Handler struct {
	auth        *service.AuthService
	journal     *service.JournalService
	google      *google.Client
	log         *logrus.Logger
	frontendURL string
}

func NewHandler(auth *service.AuthService, journal *service.JournalService, googleClient *google.Client, log *logrus.Logger, frontendURL string) *Handler {
	return &Handler{
		auth:        auth,
		journal:     journal,
		google:      googleClient,
		log:         log,
		frontendURL: frontendURL,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// writeError maps an error onto the HTTP taxonomy. Anything that is not an
// apperr.Error degrades to an opaque 500; the cause is logged, not exposed.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal(err)
	}
	if ae.Kind == apperr.KindInternal {
		h.log.Errorf("Internal error: %v", ae.Unwrap())
	}

	body := map[string]any{"error": ae.Message}
	if len(ae.Fields) > 0 {
		body["details"] = ae.Fields
	}
	h.writeJSON(w, ae.Status(), body)
}
