package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/giftwell/giftwell-server/internal/domain"
	"github.com/giftwell/giftwell-server/internal/store"
)

// itemColumns is the ordered list of columns selected in item queries.
// Must match the scan order in scanItem.
const itemColumns = `id, wishlist_id, name, url, price, image_url, created_at`

func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	var item domain.Item
	var (
		url       sql.NullString
		price     string
		imageURL  sql.NullString
		createdAt string
	)

	err := scanner.Scan(
		&item.ID,
		&item.WishlistID,
		&item.Name,
		&url,
		&price,
		&imageURL,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if url.Valid {
		item.URL = url.String
	}
	if imageURL.Valid {
		item.ImageURL = imageURL.String
	}
	item.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse item price %q: %w", price, err)
	}
	item.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// CreateItem inserts a new wishlist item.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (id, wishlist_id, name, url, price, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.WishlistID,
		item.Name,
		nullString(item.URL),
		item.Price.String(),
		nullString(item.ImageURL),
		formatTime(item.CreatedAt),
	)
	return err
}

// GetItem retrieves an item by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM wishlist_items WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}
