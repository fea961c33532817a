package http

import (
	"net/http"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/service"
)

type RentalHandler struct {
	rentals      service.RentalService
	reservations service.ReservationService
}

func NewRentalHandler(rentals service.RentalService, reservations service.ReservationService) *RentalHandler {
	return &RentalHandler{rentals: rentals, reservations: reservations}
}

type createRentalRequest struct {
	ProductID int32  `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes,omitempty"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	var req createRentalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	rental, err := h.rentals.RequestRental(r.Context(), userID, req.ProductID, req.StartDate, req.EndDate, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	rentalID, err := pathID(r, "rentalID")
	if err != nil {
		respondError(w, err)
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), userID, rentalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	page, pageSize := pagination(r)
	rentals, total, err := h.rentals.ListMyRentals(r.Context(), userID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"rentals": rentals,
		"total":   total,
		"page":    page,
	})
}

func (h *RentalHandler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	productID, err := pathID(r, "productID")
	if err != nil {
		respondError(w, err)
		return
	}
	rentals, err := h.rentals.ListProductRentals(r.Context(), userID, productID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"rentals": rentals})
}

type updateRentalStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

func (h *RentalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	rentalID, err := pathID(r, "rentalID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req updateRentalStatusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	rental, err := h.reservations.TransitionRental(r.Context(), userID, rentalID, domain.RentalStatus(req.Status), req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

// Cancel is the renter- or owner-initiated cancellation, which also frees
// the rental's blocked dates.
func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	rentalID, err := pathID(r, "rentalID")
	if err != nil {
		respondError(w, err)
		return
	}
	rental, err := h.reservations.CancelRental(r.Context(), userID, rentalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}
