package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tripkitty/tripkitty/internal/models"
	"github.com/tripkitty/tripkitty/internal/storage"
	"github.com/tripkitty/tripkitty/internal/storage/sqlite"
)

// newTestStore creates a sqlite store over a temp database file.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "tripkitty-svc-*.db")
	require.NoError(t, err)
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpFile.Name())
	})
	return store
}

// seedTrip creates a trip with Alice (admin), Bob and Carol, plus the
// matching user accounts for login-based flows.
func seedTrip(t *testing.T, store storage.Store) *models.Trip {
	t.Helper()
	ctx := context.Background()

	alice := &models.User{ID: "alice", Name: "Alice", Email: "alice@example.com", PasswordHash: "x", CreatedAt: 1}
	require.NoError(t, store.CreateUser(ctx, alice))

	trips := NewTripService(store)
	trip, err := trips.CreateTrip(ctx, alice, CreateTripInput{Name: "Goa 2026", Currency: "INR"})
	require.NoError(t, err)

	require.NoError(t, store.AddTripMember(ctx, trip.ID, models.Member{
		ID: "bob", Name: "Bob", Email: "bob@example.com", Role: models.RoleMember,
	}))
	require.NoError(t, store.AddTripMember(ctx, trip.ID, models.Member{
		ID: "carol", Name: "Carol", Email: "carol@example.com", Role: models.RoleMember,
	}))

	full, err := store.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	return full
}
