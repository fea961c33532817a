package service

import (
	"context"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/repository"
)

type offerService struct {
	offerRepo   repository.OfferRepository
	convRepo    repository.ConversationRepository
	messageRepo repository.MessageRepository
	productRepo repository.ProductRepository
	availRepo   repository.AvailabilityRepository
	reservation ReservationService
	notifier    Notifier
	ttl         time.Duration
}

func NewOfferService(
	offerRepo repository.OfferRepository,
	convRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	productRepo repository.ProductRepository,
	availRepo repository.AvailabilityRepository,
	reservation ReservationService,
	notifier Notifier,
	ttlDays int,
) OfferService {
	return &offerService{
		offerRepo:   offerRepo,
		convRepo:    convRepo,
		messageRepo: messageRepo,
		productRepo: productRepo,
		availRepo:   availRepo,
		reservation: reservation,
		notifier:    notifier,
		ttl:         time.Duration(ttlDays) * 24 * time.Hour,
	}
}

func (s *offerService) CreateOffer(ctx context.Context, senderID, conversationID int32, in CreateOfferInput) (*domain.Offer, error) {
	if in.Kind != domain.OfferKindRental && in.Kind != domain.OfferKindSale {
		return nil, &domain.ValidationError{Field: "kind", Reason: "must be rental or sale"}
	}
	if in.AmountCents <= 0 {
		return nil, &domain.ValidationError{Field: "amount_cents", Reason: "must be positive"}
	}

	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, &domain.AuthorizationError{Reason: "you are not a participant in this conversation"}
	}

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, &domain.ConflictError{Reason: "product is not available"}
	}

	if in.Kind == domain.OfferKindRental {
		start, end, err := parseRange(in.StartDate, in.EndDate)
		if err != nil {
			return nil, err
		}
		if !start.Before(end) {
			return nil, &domain.ValidationError{Field: "end_date", Reason: "end date must be after start date"}
		}
		// Advisory only: the authoritative check runs again inside the
		// acceptance transaction.
		free, err := s.availRepo.IsRangeFree(ctx, in.ProductID, in.StartDate, in.EndDate)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, &domain.ConflictError{Reason: "product is not available for the selected dates"}
		}
	} else {
		if !product.IsForSale {
			return nil, &domain.ConflictError{Reason: "product is not for sale"}
		}
		in.StartDate, in.EndDate = "", ""
	}

	now := time.Now()
	offer := &domain.Offer{
		ConversationID: conversationID,
		ProductID:      in.ProductID,
		SenderID:       senderID,
		ReceiverID:     conv.OtherParticipant(senderID),
		Kind:           in.Kind,
		AmountCents:    in.AmountCents,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Message:        in.Message,
		Status:         domain.OfferStatusPending,
		ExpiresAt:      now.Add(s.ttl),
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}
	logger.Info("Offer created", "offerID", offer.ID, "kind", offer.Kind, "productID", offer.ProductID)

	s.notifier.OfferReceived(ctx, offer, product)
	return offer, nil
}

func (s *offerService) ListOffers(ctx context.Context, userID, conversationID int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !conv.HasParticipant(userID) {
		return nil, 0, &domain.AuthorizationError{Reason: "you are not a participant in this conversation"}
	}
	return s.offerRepo.ListByConversation(ctx, conversationID, page, pageSize)
}

func (s *offerService) GetOffer(ctx context.Context, userID, offerID int32) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if userID != offer.SenderID && userID != offer.ReceiverID {
		return nil, &domain.AuthorizationError{Reason: "offer does not involve you"}
	}
	return offer, nil
}

func (s *offerService) AcceptOffer(ctx context.Context, userID, offerID int32) (*AcceptResult, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if userID != offer.ReceiverID {
		return nil, &domain.AuthorizationError{Reason: "only the receiver can accept an offer"}
	}
	if !offer.CanBeResponded(time.Now()) {
		return nil, &domain.ConflictError{Reason: "offer can no longer be responded to"}
	}

	accept := &repository.OfferAcceptance{
		OfferID:        offer.ID,
		ConversationID: offer.ConversationID,
		ActorID:        userID,
		SystemMessage:  "Offer accepted!",
	}

	result := &AcceptResult{Offer: offer}
	switch offer.Kind {
	case domain.OfferKindRental:
		rental, err := s.reservation.MaterializeRental(ctx, RentalIntent{
			ProductID: offer.ProductID,
			RenterID:  offer.SenderID,
			StartDate: offer.StartDate,
			EndDate:   offer.EndDate,
			Notes:     "Created from accepted offer",
			Accept:    accept,
		})
		if err != nil {
			return nil, err
		}
		result.Rental = rental
	case domain.OfferKindSale:
		purchase, err := s.reservation.MaterializeSale(ctx, SaleIntent{
			ProductID:  offer.ProductID,
			BuyerID:    offer.SenderID,
			PriceCents: offer.AmountCents,
			Notes:      "Created from accepted offer",
			Accept:     accept,
		})
		if err != nil {
			return nil, err
		}
		result.Purchase = purchase
	}

	now := time.Now()
	offer.Status = domain.OfferStatusAccepted
	offer.RespondedAt = &now
	logger.Info("Offer accepted", "offerID", offer.ID, "kind", offer.Kind)

	if product, err := s.productRepo.GetByID(ctx, offer.ProductID); err == nil {
		s.notifier.OfferAccepted(ctx, offer, product)
	}
	return result, nil
}

func (s *offerService) RejectOffer(ctx context.Context, userID, offerID int32) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if userID != offer.ReceiverID {
		return nil, &domain.AuthorizationError{Reason: "only the receiver can reject an offer"}
	}
	if !offer.CanBeResponded(time.Now()) {
		return nil, &domain.ConflictError{Reason: "offer can no longer be responded to"}
	}

	now := time.Now()
	rows, err := s.offerRepo.Reject(ctx, offerID, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, &domain.ConflictError{Reason: "offer can no longer be responded to"}
	}
	offer.Status = domain.OfferStatusRejected
	offer.RespondedAt = &now

	// Messaging is a collaborator; its failure never undoes the rejection.
	msg := &domain.Message{ConversationID: offer.ConversationID, SenderID: userID, Content: "Offer declined."}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		logger.Error("Failed to post rejection message", "offerID", offer.ID, "error", err)
	}

	if product, err := s.productRepo.GetByID(ctx, offer.ProductID); err == nil {
		s.notifier.OfferRejected(ctx, offer, product)
	}
	return offer, nil
}

func (s *offerService) WithdrawOffer(ctx context.Context, userID, offerID int32) error {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return err
	}
	if userID != offer.SenderID {
		return &domain.AuthorizationError{Reason: "only the sender can withdraw an offer"}
	}
	rows, err := s.offerRepo.DeletePending(ctx, offerID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.ConflictError{Reason: "offer is no longer pending"}
	}
	logger.Info("Offer withdrawn", "offerID", offerID)
	return nil
}
