// Package store defines the persistence interface for the GiftWell
// server. The sqlite subpackage provides the production implementation.
package store

import (
	"context"

	"github.com/giftwell/giftwell-server/internal/domain"
)

// Store is the persistence interface used by the service layer.
type Store interface {
	UserStore
	WishlistStore
	ItemStore
	ReservationStore
	ContributionStore

	// Close releases the underlying database handle.
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// WishlistStore persists wishlists.
type WishlistStore interface {
	CreateWishlist(ctx context.Context, wl *domain.Wishlist) error
	GetWishlist(ctx context.Context, id string) (*domain.Wishlist, error)
	GetWishlistByPublicID(ctx context.Context, publicID string) (*domain.Wishlist, error)
	ListWishlistsByOwner(ctx context.Context, ownerID string) ([]*domain.Wishlist, error)
	DeleteWishlist(ctx context.Context, id string) error

	// LoadWishlistAggregate returns the wishlist with all items, their
	// reservations, and their contributions in one consistent read.
	LoadWishlistAggregate(ctx context.Context, id string) (*domain.WishlistAggregate, error)
}

// ItemStore persists wishlist items.
type ItemStore interface {
	CreateItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
}

// ReservationStore persists item reservations.
type ReservationStore interface {
	// CreateReservation inserts a reservation. If the item already has
	// one, ErrConflict is returned and nothing is written.
	CreateReservation(ctx context.Context, res *domain.Reservation) error
	GetReservationForItem(ctx context.Context, itemID string) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

// ContributionStore persists contributions.
type ContributionStore interface {
	CreateContribution(ctx context.Context, c *domain.Contribution) error
}
