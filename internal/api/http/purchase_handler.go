package http

import (
	"net/http"

	"gearmarket-backend/internal/service"
)

type PurchaseHandler struct {
	purchases    service.PurchaseService
	reservations service.ReservationService
}

func NewPurchaseHandler(purchases service.PurchaseService, reservations service.ReservationService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, reservations: reservations}
}

type createPurchaseRequest struct {
	ProductID int32  `json:"product_id"`
	Notes     string `json:"notes,omitempty"`
}

func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	var req createPurchaseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	purchase, err := h.purchases.RequestPurchase(r.Context(), userID, req.ProductID, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, purchase)
}

func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	purchaseID, err := pathID(r, "purchaseID")
	if err != nil {
		respondError(w, err)
		return
	}
	purchase, err := h.purchases.GetPurchase(r.Context(), userID, purchaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, purchase)
}

func (h *PurchaseHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	page, pageSize := pagination(r)
	purchases, total, err := h.purchases.ListMyPurchases(r.Context(), userID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"purchases": purchases,
		"total":     total,
		"page":      page,
	})
}

func (h *PurchaseHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	purchaseID, err := pathID(r, "purchaseID")
	if err != nil {
		respondError(w, err)
		return
	}
	purchase, err := h.reservations.CompletePurchase(r.Context(), userID, purchaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, purchase)
}

// Cancel restores the product's availability for sale.
func (h *PurchaseHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	purchaseID, err := pathID(r, "purchaseID")
	if err != nil {
		respondError(w, err)
		return
	}
	purchase, err := h.reservations.CancelPurchase(r.Context(), userID, purchaseID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, purchase)
}
