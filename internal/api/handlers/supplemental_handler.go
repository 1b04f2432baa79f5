package handlers

import (
	"net/http"
	"strings"

	"github.com/urgences-proches/backend/internal/domain/providers"
)

// SupplementalHandler exposes the curated supplemental dataset
type SupplementalHandler struct {
	supplemental providers.SupplementalProvider
}

// NewSupplementalHandler creates a new supplemental handler
func NewSupplementalHandler(supplemental providers.SupplementalProvider) *SupplementalHandler {
	return &SupplementalHandler{supplemental: supplemental}
}

// Search handles GET /api/hospitals/supplemental/search?name=
func (h *SupplementalHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respondWithError(r.Context(), w, http.StatusBadRequest, "name is required")
		return
	}

	record, err := h.supplemental.FindByName(r.Context(), name)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}

	respondWithJSON(r.Context(), w, http.StatusOK, record)
}

// GetByPlaceID handles GET /api/hospitals/supplemental/{placeId}
func (h *SupplementalHandler) GetByPlaceID(w http.ResponseWriter, r *http.Request) {
	placeID := strings.TrimSpace(r.PathValue("placeId"))
	if placeID == "" {
		respondWithError(r.Context(), w, http.StatusBadRequest, "place ID is required")
		return
	}

	record, err := h.supplemental.FindByPlaceID(r.Context(), placeID)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}

	respondWithJSON(r.Context(), w, http.StatusOK, record)
}
