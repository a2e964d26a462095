package metadata

import (
	"encoding/json"
	"net/http"

	"docmeta/internal/metadata/service"
	"docmeta/middleware"
	"docmeta/pkg/logger"
	"docmeta/pkg/metrics"
)

type MetadataHandler struct {
	Service *service.MetadataService
}

func NewMetadataHandler(service *service.MetadataService) *MetadataHandler {
	return &MetadataHandler{Service: service}
}

// LastOpened handles GET /document-metadata/last-opened/{uid}/{documentId}.
// It responds with the previous last-opened record and, as a side effect,
// persists a new one stamped with the current time and the authenticated
// actor.
func (h *MetadataHandler) LastOpened(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uid := r.PathValue("uid")
	documentID := r.PathValue("documentId")
	if uid == "" || documentID == "" {
		http.Error(w, "Missing uid or documentId path parameter", http.StatusBadRequest)
		return
	}

	var locale *string
	if v := r.URL.Query().Get("locale"); v != "" {
		locale = &v
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	previous, err := h.Service.OpenDocument(uid, documentID, locale, actor.ID, actor.DisplayName())
	if err != nil {
		metrics.DocumentOpenFailures.WithLabelValues(uid).Inc()
		logger.Sugar.Errorf("Handler: Failed to record open for %s/%s: %v", uid, documentID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.DocumentOpens.WithLabelValues(uid).Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(previous)
}
