package service

import (
	"context"
	"fmt"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/repository"
)

// notifier fans state changes out to the other party over three channels:
// an in-app notification row, FCM push, and email. All three are
// best-effort; the reservation/offer transaction has already committed by
// the time any of this runs.
type notifier struct {
	noteRepo  repository.NotificationRepository
	tokenRepo repository.DeviceTokenRepository
	userRepo  repository.UserRepository
	push      PushSender
	email     EmailSender
}

func NewNotifier(
	noteRepo repository.NotificationRepository,
	tokenRepo repository.DeviceTokenRepository,
	userRepo repository.UserRepository,
	push PushSender,
	email EmailSender,
) Notifier {
	return &notifier{
		noteRepo:  noteRepo,
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		push:      push,
		email:     email,
	}
}

func (n *notifier) dispatch(ctx context.Context, userID int32, eventType, title, message string, attrs map[string]string) {
	attrs["type"] = eventType

	note := &domain.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to store notification", "userID", userID, "type", eventType, "error", err)
	}

	if n.push != nil {
		tokens, err := n.tokenRepo.ListByUser(ctx, userID)
		if err != nil {
			logger.Error("Failed to load device tokens", "userID", userID, "error", err)
		}
		for _, t := range tokens {
			logger.ExternalServiceCall("fcm", "send", "userID", userID, "type", eventType)
			err := n.push.Send(ctx, t.Token, title, message, attrs)
			logger.ExternalServiceResult("fcm", "send", err, "userID", userID)
			if err != nil {
				// Stale tokens are pruned on delivery failure.
				_ = n.tokenRepo.DeleteByToken(ctx, t.Token)
			}
		}
	}

	if n.email != nil {
		user, err := n.userRepo.GetByID(ctx, userID)
		if err != nil {
			logger.Error("Failed to load user for email notification", "userID", userID, "error", err)
			return
		}
		logger.ExternalServiceCall("email", "send", "userID", userID, "type", eventType)
		err = n.email.Send(ctx, user.Email, user.Name, title, message)
		logger.ExternalServiceResult("email", "send", err, "userID", userID)
	}
}

func dollars(cents int32) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func (n *notifier) OfferReceived(ctx context.Context, offer *domain.Offer, product *domain.Product) {
	n.dispatch(ctx, offer.ReceiverID, "OFFER_RECEIVED", "New Offer",
		fmt.Sprintf("You received a %s offer of %s for %s", offer.Kind, dollars(offer.AmountCents), product.Title),
		map[string]string{"offer_id": fmt.Sprintf("%d", offer.ID), "product_id": fmt.Sprintf("%d", product.ID)})
}

func (n *notifier) OfferAccepted(ctx context.Context, offer *domain.Offer, product *domain.Product) {
	n.dispatch(ctx, offer.SenderID, "OFFER_ACCEPTED", "Offer Accepted",
		fmt.Sprintf("Your offer for %s was accepted", product.Title),
		map[string]string{"offer_id": fmt.Sprintf("%d", offer.ID), "product_id": fmt.Sprintf("%d", product.ID)})
}

func (n *notifier) OfferRejected(ctx context.Context, offer *domain.Offer, product *domain.Product) {
	n.dispatch(ctx, offer.SenderID, "OFFER_REJECTED", "Offer Declined",
		fmt.Sprintf("Your offer for %s was declined", product.Title),
		map[string]string{"offer_id": fmt.Sprintf("%d", offer.ID), "product_id": fmt.Sprintf("%d", product.ID)})
}

func (n *notifier) RentalRequested(ctx context.Context, rental *domain.Rental, product *domain.Product) {
	n.dispatch(ctx, product.OwnerID, "RENTAL_REQUESTED", "New Rental Request",
		fmt.Sprintf("%s was requested for %s to %s", product.Title, rental.StartDate, rental.EndDate),
		map[string]string{"rental_id": fmt.Sprintf("%d", rental.ID), "product_id": fmt.Sprintf("%d", product.ID)})
}

func (n *notifier) RentalStatusChanged(ctx context.Context, rental *domain.Rental, product *domain.Product) {
	attrs := map[string]string{"rental_id": fmt.Sprintf("%d", rental.ID), "product_id": fmt.Sprintf("%d", product.ID)}
	switch rental.Status {
	case domain.RentalStatusApproved:
		n.dispatch(ctx, rental.RenterID, "RENTAL_CONFIRMED", "Rental Confirmed",
			fmt.Sprintf("Your rental of %s was confirmed", product.Title), attrs)
	case domain.RentalStatusCompleted:
		// Both parties hear about completion.
		msg := fmt.Sprintf("The rental of %s is complete", product.Title)
		n.dispatch(ctx, rental.RenterID, "RENTAL_COMPLETED", "Rental Completed", msg, attrs)
		n.dispatch(ctx, product.OwnerID, "RENTAL_COMPLETED", "Rental Completed", msg, cloneAttrs(attrs))
	case domain.RentalStatusCancelled:
		n.dispatch(ctx, product.OwnerID, "RENTAL_CANCELLED", "Rental Cancelled",
			fmt.Sprintf("The rental of %s was cancelled", product.Title), attrs)
	default:
		n.dispatch(ctx, rental.RenterID, "RENTAL_STATUS_CHANGED", "Rental Updated",
			fmt.Sprintf("Your rental of %s is now %s", product.Title, rental.Status), attrs)
	}
}

func (n *notifier) PurchaseOrdered(ctx context.Context, purchase *domain.Purchase, product *domain.Product) {
	n.dispatch(ctx, product.OwnerID, "PURCHASE_ORDERED", "New Purchase Order",
		fmt.Sprintf("%s was ordered for %s", product.Title, dollars(purchase.PriceCents)),
		map[string]string{"purchase_id": fmt.Sprintf("%d", purchase.ID), "product_id": fmt.Sprintf("%d", product.ID)})
}

func (n *notifier) PurchaseCompleted(ctx context.Context, purchase *domain.Purchase, product *domain.Product) {
	n.dispatch(ctx, purchase.BuyerID, "PURCHASE_COMPLETED", "Purchase Completed",
		fmt.Sprintf("Your purchase of %s is complete", product.Title),
		map[string]string{"purchase_id": fmt.Sprintf("%d", purchase.ID), "product_id": fmt.Sprintf("%d", product.ID)})
}

func cloneAttrs(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
