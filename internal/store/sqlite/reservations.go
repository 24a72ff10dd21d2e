package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/giftwell/giftwell-server/internal/domain"
	"github.com/giftwell/giftwell-server/internal/store"
)

// CreateReservation inserts a reservation for an item. The UNIQUE
// index on item_id is the arbiter under concurrency: the first insert
// wins and every racer gets store.ErrConflict.
func (s *Store) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reservations (id, item_id, user_id, created_at)
		VALUES (?, ?, ?, ?)`,
		res.ID,
		res.ItemID,
		res.UserID,
		formatTime(res.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrConflict
		}
		return err
	}
	return nil
}

// GetReservationForItem retrieves the reservation on an item, if any.
// Returns store.ErrNotFound when the item is unreserved.
func (s *Store) GetReservationForItem(ctx context.Context, itemID string) (*domain.Reservation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, item_id, user_id, created_at FROM reservations WHERE item_id = ?`, itemID)

	var res domain.Reservation
	var createdAt string
	err := row.Scan(&res.ID, &res.ItemID, &res.UserID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	res.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteReservation removes a reservation by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteReservation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
