package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/giftwell/giftwell-server/internal/domain"
	"github.com/giftwell/giftwell-server/internal/store"
)

// wishlistColumns is the ordered list of columns selected in wishlist
// queries. Must match the scan order in scanWishlist.
const wishlistColumns = `id, public_id, owner_id, title, description, event_date, created_at, updated_at`

func scanWishlist(scanner interface{ Scan(dest ...any) error }) (*domain.Wishlist, error) {
	var wl domain.Wishlist
	var (
		description sql.NullString
		eventDate   sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&wl.ID,
		&wl.PublicID,
		&wl.OwnerID,
		&wl.Title,
		&description,
		&eventDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		wl.Description = description.String
	}
	wl.EventDate, err = parseNullableTime(eventDate)
	if err != nil {
		return nil, err
	}
	wl.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	wl.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &wl, nil
}

// CreateWishlist inserts a new wishlist.
func (s *Store) CreateWishlist(ctx context.Context, wl *domain.Wishlist) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wishlists (id, public_id, owner_id, title, description, event_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		wl.ID,
		wl.PublicID,
		wl.OwnerID,
		wl.Title,
		nullString(wl.Description),
		nullTimeString(wl.EventDate),
		formatTime(wl.CreatedAt),
		formatTime(wl.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetWishlist retrieves a wishlist by its owner-facing ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetWishlist(ctx context.Context, id string) (*domain.Wishlist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE id = ?`, id)
	return wishlistFromRow(row)
}

// GetWishlistByPublicID retrieves a wishlist by its shareable handle.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetWishlistByPublicID(ctx context.Context, publicID string) (*domain.Wishlist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE public_id = ?`, publicID)
	return wishlistFromRow(row)
}

func wishlistFromRow(row *sql.Row) (*domain.Wishlist, error) {
	wl, err := scanWishlist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wl, nil
}

// ListWishlistsByOwner returns all wishlists owned by a user, newest first.
func (s *Store) ListWishlistsByOwner(ctx context.Context, ownerID string) ([]*domain.Wishlist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*domain.Wishlist
	for rows.Next() {
		wl, err := scanWishlist(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, wl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lists, nil
}

// DeleteWishlist removes a wishlist. Items, reservations, and
// contributions go with it via ON DELETE CASCADE.
// Returns store.ErrNotFound if the wishlist does not exist.
func (s *Store) DeleteWishlist(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM wishlists WHERE id = ?`, id)
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

// LoadWishlistAggregate loads the wishlist with all items, their
// reservations, and contributions inside one read transaction so the
// snapshot is consistent.
func (s *Store) LoadWishlistAggregate(ctx context.Context, id string) (*domain.WishlistAggregate, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE id = ?`, id)
	wl, err := scanWishlist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	agg := &domain.WishlistAggregate{Wishlist: *wl}

	items, err := loadItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	// Index for attaching reservations and contributions. The slice is
	// fully sized up front so the pointers stay valid.
	agg.Items = make([]domain.ItemAggregate, len(items))
	byItemID := make(map[string]*domain.ItemAggregate, len(items))
	for i, item := range items {
		agg.Items[i] = domain.ItemAggregate{Item: *item}
		byItemID[item.ID] = &agg.Items[i]
	}

	if err := attachReservations(ctx, tx, id, byItemID); err != nil {
		return nil, err
	}
	if err := attachContributions(ctx, tx, id, byItemID); err != nil {
		return nil, err
	}

	return agg, tx.Commit()
}

func loadItems(ctx context.Context, tx *sql.Tx, wishlistID string) ([]*domain.Item, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM wishlist_items WHERE wishlist_id = ? ORDER BY id`, wishlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func attachReservations(ctx context.Context, tx *sql.Tx, wishlistID string, byItemID map[string]*domain.ItemAggregate) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT r.id, r.item_id, r.user_id, r.created_at
		FROM reservations r
		JOIN wishlist_items i ON i.id = r.item_id
		WHERE i.wishlist_id = ?`, wishlistID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var res domain.Reservation
		var createdAt string
		if err := rows.Scan(&res.ID, &res.ItemID, &res.UserID, &createdAt); err != nil {
			return err
		}
		res.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return err
		}
		if agg, ok := byItemID[res.ItemID]; ok {
			agg.Reservation = &res
		}
	}
	return rows.Err()
}

func attachContributions(ctx context.Context, tx *sql.Tx, wishlistID string, byItemID map[string]*domain.ItemAggregate) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT c.id, c.item_id, c.user_id, c.amount, c.created_at
		FROM contributions c
		JOIN wishlist_items i ON i.id = c.item_id
		WHERE i.wishlist_id = ?
		ORDER BY c.created_at`, wishlistID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Contribution
		var amount, createdAt string
		if err := rows.Scan(&c.ID, &c.ItemID, &c.UserID, &amount, &createdAt); err != nil {
			return err
		}
		c.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("parse contribution amount %q: %w", amount, err)
		}
		c.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return err
		}
		if agg, ok := byItemID[c.ItemID]; ok {
			agg.Contributions = append(agg.Contributions, c)
		}
	}
	return rows.Err()
}
