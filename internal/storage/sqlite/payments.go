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

// CreatePayment persists a new direct payment.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, trip_id, payer_id, receiver_id, amount, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.TripID, payment.PayerID, payment.ReceiverID,
		payment.Amount, payment.Description, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID.
func (s *SQLiteStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment := &models.Payment{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, payer_id, receiver_id, amount, description, created_at
		 FROM payments WHERE id = ?`,
		paymentID,
	).Scan(&payment.ID, &payment.TripID, &payment.PayerID, &payment.ReceiverID,
		&payment.Amount, &payment.Description, &payment.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// ListPayments retrieves all direct payments of a trip, newest first.
func (s *SQLiteStore) ListPayments(ctx context.Context, tripID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, payer_id, receiver_id, amount, description, created_at
		 FROM payments WHERE trip_id = ? ORDER BY created_at DESC, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.TripID, &p.PayerID, &p.ReceiverID,
			&p.Amount, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// DeletePayment removes a payment by ID.
func (s *SQLiteStore) DeletePayment(ctx context.Context, paymentID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return nil
}

// CreateAdhocPayment persists a new ad-hoc contribution to the central keeper.
func (s *SQLiteStore) CreateAdhocPayment(ctx context.Context, payment *models.AdhocPayment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO adhoc_payments (id, trip_id, payer_id, receiver_id, amount, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.TripID, payment.PayerID, payment.ReceiverID,
		payment.Amount, payment.Description, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert adhoc payment: %w", err)
	}
	return nil
}

// ListAdhocPayments retrieves all ad-hoc payments of a trip, newest first.
func (s *SQLiteStore) ListAdhocPayments(ctx context.Context, tripID string) ([]models.AdhocPayment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, payer_id, receiver_id, amount, description, created_at
		 FROM adhoc_payments WHERE trip_id = ? ORDER BY created_at DESC, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list adhoc payments: %w", err)
	}
	defer rows.Close()

	var payments []models.AdhocPayment
	for rows.Next() {
		var p models.AdhocPayment
		if err := rows.Scan(&p.ID, &p.TripID, &p.PayerID, &p.ReceiverID,
			&p.Amount, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan adhoc payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate adhoc payments: %w", err)
	}
	return payments, nil
}
