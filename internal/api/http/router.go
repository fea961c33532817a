package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"gearmarket-backend/internal/security"
	"gearmarket-backend/internal/service"
)

type RouterConfig struct {
	Tokens        security.TokenManager
	Offers        service.OfferService
	Rentals       service.RentalService
	Purchases     service.PurchaseService
	Reservations  service.ReservationService
	Availability  service.AvailabilityService
	Notifications service.NotificationService
}

// NewRouter wires all API routes under /api/v1. Everything except the
// health check and the public availability reads requires a bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware, LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	availabilityHandler := NewAvailabilityHandler(cfg.Availability)
	api.HandleFunc("/products/{productID}/calendar", availabilityHandler.Calendar).Methods(http.MethodGet)
	api.HandleFunc("/products/{productID}/availability", availabilityHandler.Check).Methods(http.MethodGet)

	auth := api.NewRoute().Subrouter()
	auth.Use(AuthMiddleware(cfg.Tokens))

	auth.HandleFunc("/products/{productID}/maintenance-blocks", availabilityHandler.BlockMaintenance).Methods(http.MethodPost)

	offerHandler := NewOfferHandler(cfg.Offers)
	auth.HandleFunc("/conversations/{conversationID}/offers", offerHandler.Create).Methods(http.MethodPost)
	auth.HandleFunc("/conversations/{conversationID}/offers", offerHandler.List).Methods(http.MethodGet)
	auth.HandleFunc("/offers/{offerID}", offerHandler.Get).Methods(http.MethodGet)
	auth.HandleFunc("/offers/{offerID}/accept", offerHandler.Accept).Methods(http.MethodPost)
	auth.HandleFunc("/offers/{offerID}/reject", offerHandler.Reject).Methods(http.MethodPost)
	auth.HandleFunc("/offers/{offerID}", offerHandler.Withdraw).Methods(http.MethodDelete)

	rentalHandler := NewRentalHandler(cfg.Rentals, cfg.Reservations)
	auth.HandleFunc("/rentals", rentalHandler.Create).Methods(http.MethodPost)
	auth.HandleFunc("/rentals", rentalHandler.ListMine).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{rentalID}", rentalHandler.Get).Methods(http.MethodGet)
	auth.HandleFunc("/rentals/{rentalID}/status", rentalHandler.UpdateStatus).Methods(http.MethodPatch)
	auth.HandleFunc("/rentals/{rentalID}/cancel", rentalHandler.Cancel).Methods(http.MethodPost)
	auth.HandleFunc("/products/{productID}/rentals", rentalHandler.ListForProduct).Methods(http.MethodGet)

	purchaseHandler := NewPurchaseHandler(cfg.Purchases, cfg.Reservations)
	auth.HandleFunc("/purchases", purchaseHandler.Create).Methods(http.MethodPost)
	auth.HandleFunc("/purchases", purchaseHandler.ListMine).Methods(http.MethodGet)
	auth.HandleFunc("/purchases/{purchaseID}", purchaseHandler.Get).Methods(http.MethodGet)
	auth.HandleFunc("/purchases/{purchaseID}/complete", purchaseHandler.Complete).Methods(http.MethodPost)
	auth.HandleFunc("/purchases/{purchaseID}/cancel", purchaseHandler.Cancel).Methods(http.MethodPost)

	notificationHandler := NewNotificationHandler(cfg.Notifications)
	auth.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{notificationID}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)
	auth.HandleFunc("/device-tokens", notificationHandler.RegisterDevice).Methods(http.MethodPost)

	return r
}
