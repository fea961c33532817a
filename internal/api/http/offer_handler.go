package http

import (
	"net/http"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/service"
)

type OfferHandler struct {
	offers service.OfferService
}

func NewOfferHandler(offers service.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

type createOfferRequest struct {
	ProductID   int32  `json:"product_id"`
	Kind        string `json:"kind"`
	AmountCents int32  `json:"amount_cents"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Message     string `json:"message,omitempty"`
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	conversationID, err := pathID(r, "conversationID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req createOfferRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	offer, err := h.offers.CreateOffer(r.Context(), userID, conversationID, service.CreateOfferInput{
		ProductID:   req.ProductID,
		Kind:        domain.OfferKind(req.Kind),
		AmountCents: req.AmountCents,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Message:     req.Message,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, offer)
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	conversationID, err := pathID(r, "conversationID")
	if err != nil {
		respondError(w, err)
		return
	}
	page, pageSize := pagination(r)
	offers, total, err := h.offers.ListOffers(r.Context(), userID, conversationID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"offers": offers,
		"total":  total,
		"page":   page,
	})
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	offerID, err := pathID(r, "offerID")
	if err != nil {
		respondError(w, err)
		return
	}
	offer, err := h.offers.GetOffer(r.Context(), userID, offerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, offer)
}

func (h *OfferHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	offerID, err := pathID(r, "offerID")
	if err != nil {
		respondError(w, err)
		return
	}
	result, err := h.offers.AcceptOffer(r.Context(), userID, offerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *OfferHandler) Reject(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	offerID, err := pathID(r, "offerID")
	if err != nil {
		respondError(w, err)
		return
	}
	offer, err := h.offers.RejectOffer(r.Context(), userID, offerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, offer)
}

func (h *OfferHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	offerID, err := pathID(r, "offerID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.offers.WithdrawOffer(r.Context(), userID, offerID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
