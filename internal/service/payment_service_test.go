package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment(t *testing.T) {
	store := newTestStore(t)
	trip := seedTrip(t, store)
	svc := NewPaymentService(store)
	ctx := context.Background()

	payment, err := svc.RecordPayment(ctx, trip.ID, "bob", "alice", 30, "settling dinner")
	require.NoError(t, err)
	assert.Equal(t, "bob", payment.PayerID)
	assert.Equal(t, "alice", payment.ReceiverID)

	list, err := svc.ListPayments(ctx, trip.ID, "carol")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecordPayment_Rejections(t *testing.T) {
	store := newTestStore(t)
	trip := seedTrip(t, store)
	svc := NewPaymentService(store)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, trip.ID, "bob", "alice", 0, "")
	assert.True(t, IsValidation(err))

	_, err = svc.RecordPayment(ctx, trip.ID, "bob", "stranger", 10, "")
	assert.True(t, IsValidation(err))

	_, err = svc.RecordPayment(ctx, trip.ID, "bob", "bob", 10, "")
	assert.True(t, IsValidation(err))

	_, err = svc.RecordPayment(ctx, trip.ID, "stranger", "alice", 10, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDeletePayment_Permissions(t *testing.T) {
	store := newTestStore(t)
	trip := seedTrip(t, store)
	svc := NewPaymentService(store)
	ctx := context.Background()

	payment, err := svc.RecordPayment(ctx, trip.ID, "bob", "carol", 15, "")
	require.NoError(t, err)

	// Receiver may delete; a third member may not.
	other, err := svc.RecordPayment(ctx, trip.ID, "bob", "carol", 5, "")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.DeletePayment(ctx, trip.ID, other.ID, "nobody"), ErrPermissionDenied)
	require.NoError(t, svc.DeletePayment(ctx, trip.ID, other.ID, "carol"))

	// Admin may delete.
	require.NoError(t, svc.DeletePayment(ctx, trip.ID, payment.ID, "alice"))
}

func TestRecordAdhocPayment(t *testing.T) {
	store := newTestStore(t)
	trip := seedTrip(t, store)
	ctx := context.Background()

	trips := NewTripService(store)
	require.NoError(t, trips.SetKeeper(ctx, trip.ID, "alice", "alice"))

	svc := NewPaymentService(store)
	payment, err := svc.RecordAdhocPayment(ctx, trip.ID, "alice", "bob", 100, "kitty top-up")
	require.NoError(t, err)
	// Receiver is forced to the keeper.
	assert.Equal(t, "alice", payment.ReceiverID)
	assert.Equal(t, "bob", payment.PayerID)

	list, err := svc.ListAdhocPayments(ctx, trip.ID, "bob")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecordAdhocPayment_Rejections(t *testing.T) {
	store := newTestStore(t)
	trip := seedTrip(t, store)
	ctx := context.Background()
	svc := NewPaymentService(store)

	// No keeper assigned yet.
	_, err := svc.RecordAdhocPayment(ctx, trip.ID, "alice", "bob", 100, "")
	assert.True(t, IsValidation(err))

	trips := NewTripService(store)
	require.NoError(t, trips.SetKeeper(ctx, trip.ID, "alice", "alice"))

	// Only the keeper records contributions.
	_, err = svc.RecordAdhocPayment(ctx, trip.ID, "bob", "bob", 100, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// The keeper cannot contribute to themselves.
	_, err = svc.RecordAdhocPayment(ctx, trip.ID, "alice", "alice", 100, "")
	assert.True(t, IsValidation(err))

	_, err = svc.RecordAdhocPayment(ctx, trip.ID, "alice", "bob", -1, "")
	assert.True(t, IsValidation(err))

	_, err = svc.RecordAdhocPayment(ctx, trip.ID, "alice", "stranger", 10, "")
	assert.True(t, IsValidation(err))
}
