package service

import (
	"context"
	"log/slog"

	"github.com/tripkitty/tripkitty/internal/models"
	"github.com/tripkitty/tripkitty/internal/storage"
)

// PaymentService records direct settlements and ad-hoc keeper contributions.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a new PaymentService with the given storage backend.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

// RecordPayment records a direct payment from the acting user to another
// trip member.
func (s *PaymentService) RecordPayment(ctx context.Context, tripID, actorID, receiverID string, amount float64, description string) (*models.Payment, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.MemberByID(actorID) == nil {
		return nil, ErrPermissionDenied
	}

	if amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	if trip.MemberByID(receiverID) == nil {
		return nil, invalidf("receiver must be a trip member")
	}
	if receiverID == actorID {
		return nil, invalidf("cannot record a payment to yourself")
	}

	payment := &models.Payment{
		TripID:      tripID,
		PayerID:     actorID,
		ReceiverID:  receiverID,
		Amount:      amount,
		Description: description,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	slog.Info("payment recorded", "trip_id", tripID, "payment_id", payment.ID,
		"payer_id", actorID, "receiver_id", receiverID, "amount", amount)
	return payment, nil
}

// ListPayments retrieves all direct payments of a trip; the actor must be a member.
func (s *PaymentService) ListPayments(ctx context.Context, tripID, actorID string) ([]models.Payment, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.MemberByID(actorID) == nil {
		return nil, ErrPermissionDenied
	}
	return s.store.ListPayments(ctx, tripID)
}

// DeletePayment removes a payment. Permitted to the payment's payer or
// receiver, or to an ADMIN member of the trip.
func (s *PaymentService) DeletePayment(ctx context.Context, tripID, paymentID, actorID string) error {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.MemberByID(actorID) == nil {
		return ErrPermissionDenied
	}

	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.TripID != tripID {
		return storage.ErrNotFound
	}
	if payment.PayerID != actorID && payment.ReceiverID != actorID && !trip.IsAdmin(actorID) {
		return ErrPermissionDenied
	}

	if err := s.store.DeletePayment(ctx, paymentID); err != nil {
		return err
	}
	slog.Info("payment deleted", "trip_id", tripID, "payment_id", paymentID, "by", actorID)
	return nil
}

// RecordAdhocPayment records a member pre-funding the trip's central money
// keeper. Only the keeper records these, and the receiver is always the
// keeper; there is no way to direct an ad-hoc payment elsewhere.
func (s *PaymentService) RecordAdhocPayment(ctx context.Context, tripID, actorID, payerID string, amount float64, description string) (*models.AdhocPayment, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.MemberByID(actorID) == nil {
		return nil, ErrPermissionDenied
	}

	if trip.CentralKeeperID == "" {
		return nil, invalidf("trip has no central money keeper")
	}
	if actorID != trip.CentralKeeperID {
		return nil, ErrPermissionDenied
	}
	if amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	if trip.MemberByID(payerID) == nil {
		return nil, invalidf("payer must be a trip member")
	}
	if payerID == trip.CentralKeeperID {
		return nil, invalidf("the keeper cannot contribute to themselves")
	}

	payment := &models.AdhocPayment{
		TripID:      tripID,
		PayerID:     payerID,
		ReceiverID:  trip.CentralKeeperID,
		Amount:      amount,
		Description: description,
	}
	if err := s.store.CreateAdhocPayment(ctx, payment); err != nil {
		slog.Error("RecordAdhocPayment failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	slog.Info("adhoc payment recorded", "trip_id", tripID, "payment_id", payment.ID,
		"payer_id", payerID, "amount", amount)
	return payment, nil
}

// ListAdhocPayments retrieves all ad-hoc payments of a trip; the actor must
// be a member.
func (s *PaymentService) ListAdhocPayments(ctx context.Context, tripID, actorID string) ([]models.AdhocPayment, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.MemberByID(actorID) == nil {
		return nil, ErrPermissionDenied
	}
	return s.store.ListAdhocPayments(ctx, tripID)
}
