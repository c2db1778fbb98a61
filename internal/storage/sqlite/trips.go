package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripkitty/tripkitty/internal/models"
	"github.com/tripkitty/tripkitty/internal/storage"
)

// CreateTrip persists a new trip and its initial members.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	// Generate IDs if not set
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, description, currency, central_keeper_id, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Description, trip.Currency, trip.CentralKeeperID,
		trip.CreatedBy, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	for _, m := range trip.Members {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO trip_members (trip_id, user_id, name, email, role) VALUES (?, ?, ?, ?, ?)`,
			trip.ID, m.ID, m.Name, m.Email, string(m.Role),
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID, including its members in insertion order.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, currency, central_keeper_id, created_by, created_at
		 FROM trips WHERE id = ?`,
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.Description, &trip.Currency,
		&trip.CentralKeeperID, &trip.CreatedBy, &trip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	members, err := s.tripMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip.Members = members

	return trip, nil
}

// tripMembers loads a trip's membership in insertion (rowid) order.
func (s *SQLiteStore) tripMembers(ctx context.Context, tripID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, name, email, role FROM trip_members WHERE trip_id = ? ORDER BY rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var role string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &role); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %w", err)
		}
		m.Role = models.Role(role)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip members: %w", err)
	}
	return members, nil
}

// ListTripsByMember retrieves all trips the given user belongs to.
func (s *SQLiteStore) ListTripsByMember(ctx context.Context, userID string) ([]models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.description, t.currency, t.central_keeper_id, t.created_by, t.created_at
		 FROM trips t
		 JOIN trip_members tm ON tm.trip_id = t.id
		 WHERE tm.user_id = ?
		 ORDER BY t.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(&trip.ID, &trip.Name, &trip.Description, &trip.Currency,
			&trip.CentralKeeperID, &trip.CreatedBy, &trip.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	for i := range trips {
		members, err := s.tripMembers(ctx, trips[i].ID)
		if err != nil {
			return nil, err
		}
		trips[i].Members = members
	}

	return trips, nil
}

// AddTripMember appends a member to the trip's membership.
func (s *SQLiteStore) AddTripMember(ctx context.Context, tripID string, member models.Member) error {
	if err := s.ensureTripExists(ctx, tripID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trip_members (trip_id, user_id, name, email, role) VALUES (?, ?, ?, ?, ?)`,
		tripID, member.ID, member.Name, member.Email, string(member.Role),
	)
	if err != nil {
		return fmt.Errorf("failed to add trip member: %w", err)
	}
	return nil
}

// RemoveTripMember removes a member from the trip.
func (s *SQLiteStore) RemoveTripMember(ctx context.Context, tripID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM trip_members WHERE trip_id = ? AND user_id = ?`,
		tripID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove trip member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removed rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member %s in trip %s: %w", memberID, tripID, storage.ErrNotFound)
	}
	return nil
}

// SetCentralKeeper assigns the trip's central money keeper; empty clears it.
func (s *SQLiteStore) SetCentralKeeper(ctx context.Context, tripID, keeperID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE trips SET central_keeper_id = ? WHERE id = ?`,
		keeperID, tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to set central keeper: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) ensureTripExists(ctx context.Context, tripID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", tripID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}
	return nil
}
