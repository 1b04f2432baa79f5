package handlers

import (
	"net/http"
	"strings"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
)

// AccessibilityHandler proxies place details for a single place identifier
type AccessibilityHandler struct {
	places providers.PlacesProvider
}

// NewAccessibilityHandler creates a new accessibility handler
func NewAccessibilityHandler(places providers.PlacesProvider) *AccessibilityHandler {
	return &AccessibilityHandler{places: places}
}

type accessibilityResponse struct {
	FormattedAddress string `json:"formattedAddress"`
	// AccessibilityOptions is an empty object when the place reports none
	AccessibilityOptions interface{} `json:"accessibilityOptions"`
}

// GetAccessibility handles GET /api/hospitals/accessibility/{placeId}
func (h *AccessibilityHandler) GetAccessibility(w http.ResponseWriter, r *http.Request) {
	placeID := strings.TrimSpace(r.PathValue("placeId"))
	if !entities.HasUsablePlaceID(placeID) {
		respondWithError(r.Context(), w, http.StatusBadRequest, "a real place ID is required")
		return
	}

	details, err := h.places.GetPlaceDetails(r.Context(), placeID)
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}

	resp := accessibilityResponse{AccessibilityOptions: struct{}{}}
	if details != nil {
		resp.FormattedAddress = details.FormattedAddress
		if details.Accessibility != nil {
			resp.AccessibilityOptions = details.Accessibility
		}
	}
	respondWithJSON(r.Context(), w, http.StatusOK, resp)
}
