package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tripkitty/tripkitty/internal/models"
	"github.com/tripkitty/tripkitty/internal/storage"
)

// TripService manages trips, their membership, and the central keeper.
type TripService struct {
	store storage.Store
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTripInput carries the fields for a new trip.
type CreateTripInput struct {
	Name        string
	Description string
	Currency    string
	// CreatorIsKeeper assigns the creator as central money keeper up front.
	CreatorIsKeeper bool
}

// CreateTrip creates a trip with the creator as its first ADMIN member.
func (s *TripService) CreateTrip(ctx context.Context, creator *models.User, in CreateTripInput) (*models.Trip, error) {
	if in.Name == "" {
		return nil, invalidf("trip name is required")
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	trip := &models.Trip{
		Name:        in.Name,
		Description: in.Description,
		Currency:    in.Currency,
		CreatedBy:   creator.ID,
		Members: []models.Member{{
			ID:    creator.ID,
			Name:  creator.Name,
			Email: creator.Email,
			Role:  models.RoleAdmin,
		}},
	}
	if in.CreatorIsKeeper {
		trip.CentralKeeperID = creator.ID
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, err
	}
	slog.Info("trip created", "trip_id", trip.ID, "created_by", creator.ID)
	return trip, nil
}

// GetTrip retrieves a trip; the acting user must be a member.
func (s *TripService) GetTrip(ctx context.Context, tripID, actorID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.MemberByID(actorID) == nil {
		return nil, ErrPermissionDenied
	}
	return trip, nil
}

// ListTrips retrieves all trips the acting user belongs to.
func (s *TripService) ListTrips(ctx context.Context, actorID string) ([]models.Trip, error) {
	return s.store.ListTripsByMember(ctx, actorID)
}

// AddMember adds a member to the trip. Only ADMIN members may do this.
// If a registered user exists for the email, the membership links to their
// account; otherwise the member gets a fresh ID.
func (s *TripService) AddMember(ctx context.Context, tripID, actorID, name, email string) (*models.Member, error) {
	if name == "" || email == "" {
		return nil, invalidf("member name and email are required")
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsAdmin(actorID) {
		return nil, ErrPermissionDenied
	}

	member := models.Member{
		Name:  name,
		Email: email,
		Role:  models.RoleMember,
	}
	if user, err := s.store.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if user != nil {
		member.ID = user.ID
	} else {
		member.ID = uuid.New().String()
	}

	if trip.MemberByID(member.ID) != nil {
		return nil, invalidf("member %s is already on the trip", email)
	}

	if err := s.store.AddTripMember(ctx, tripID, member); err != nil {
		return nil, err
	}
	slog.Info("member added", "trip_id", tripID, "member_id", member.ID)
	return &member, nil
}

// RemoveMember removes a member from the trip. Only ADMIN members may do
// this, and they cannot remove themselves. Removing the central keeper also
// clears the keeper assignment.
func (s *TripService) RemoveMember(ctx context.Context, tripID, actorID, memberID string) error {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if !trip.IsAdmin(actorID) {
		return ErrPermissionDenied
	}
	if memberID == actorID {
		return invalidf("admins cannot remove themselves")
	}
	if trip.MemberByID(memberID) == nil {
		return storage.ErrNotFound
	}

	if trip.CentralKeeperID == memberID {
		if err := s.store.SetCentralKeeper(ctx, tripID, ""); err != nil {
			return err
		}
	}

	if err := s.store.RemoveTripMember(ctx, tripID, memberID); err != nil {
		return err
	}
	slog.Info("member removed", "trip_id", tripID, "member_id", memberID)
	return nil
}

// SetKeeper assigns or clears the trip's central money keeper. Only ADMIN
// members may change it; a non-empty keeper must be a trip member.
func (s *TripService) SetKeeper(ctx context.Context, tripID, actorID, keeperID string) error {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if !trip.IsAdmin(actorID) {
		return ErrPermissionDenied
	}
	if keeperID != "" && trip.MemberByID(keeperID) == nil {
		return invalidf("keeper must be a trip member")
	}

	if err := s.store.SetCentralKeeper(ctx, tripID, keeperID); err != nil {
		return err
	}
	slog.Info("central keeper changed", "trip_id", tripID, "keeper_id", keeperID)
	return nil
}
