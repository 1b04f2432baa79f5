package handlers

import (
	"net/http"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
)

// AttendanceHandler exposes the real-time attendance feed
type AttendanceHandler struct {
	attendance providers.AttendanceProvider
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendance providers.AttendanceProvider) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// ListInstitutions handles GET /api/institutions
func (h *AttendanceHandler) ListInstitutions(w http.ResponseWriter, r *http.Request) {
	institutions, err := h.attendance.ListInstitutions(r.Context())
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}
	if institutions == nil {
		institutions = []entities.Institution{}
	}

	respondWithJSON(r.Context(), w, http.StatusOK, map[string]interface{}{
		"institutions": institutions,
		"count":        len(institutions),
	})
}

// ListAttendance handles GET /api/attendance
func (h *AttendanceHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendance.ListAttendance(r.Context())
	if err != nil {
		respondWithAppError(r.Context(), w, err)
		return
	}
	if records == nil {
		records = []entities.AttendanceRecord{}
	}

	respondWithJSON(r.Context(), w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}
