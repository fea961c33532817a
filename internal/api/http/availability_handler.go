package http

import (
	"net/http"

	"gearmarket-backend/internal/service"
)

type AvailabilityHandler struct {
	availability service.AvailabilityService
}

func NewAvailabilityHandler(availability service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Calendar lists a product's blocked dates within an optional window.
func (h *AvailabilityHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		respondError(w, err)
		return
	}
	q := r.URL.Query()
	blocked, err := h.availability.GetCalendar(r.Context(), productID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"blocked_dates": blocked})
}

func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		respondError(w, err)
		return
	}
	q := r.URL.Query()
	available, err := h.availability.CheckAvailability(r.Context(), productID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"available": available})
}

type blockMaintenanceRequest struct {
	Dates []string `json:"dates"`
	Notes string   `json:"notes,omitempty"`
}

func (h *AvailabilityHandler) BlockMaintenance(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	productID, err := pathID(r, "productID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req blockMaintenanceRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.availability.BlockMaintenance(r.Context(), userID, productID, req.Dates, req.Notes); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
