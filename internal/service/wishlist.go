package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/giftwell/giftwell-server/internal/domain"
	"github.com/giftwell/giftwell-server/internal/errors"
	"github.com/giftwell/giftwell-server/internal/id"
	"github.com/giftwell/giftwell-server/internal/projection"
	"github.com/giftwell/giftwell-server/internal/store"
)

// WishlistService manages wishlists and their items.
type WishlistService struct {
	store    store.Store
	notifier Notifier
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(st store.Store, notifier Notifier, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		store:    st,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateWishlistInput holds the fields for creating a wishlist.
type CreateWishlistInput struct {
	Title       string
	Description string
	EventDate   *time.Time
}

// Create creates a wishlist owned by the given user.
func (s *WishlistService) Create(ctx context.Context, ownerID string, input CreateWishlistInput) (*domain.Wishlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Validation("title is required")
	}

	wishlistID, err := id.Generate("wl")
	if err != nil {
		return nil, fmt.Errorf("generate wishlist ID: %w", err)
	}
	publicID, err := id.GeneratePublic()
	if err != nil {
		return nil, fmt.Errorf("generate public ID: %w", err)
	}

	now := time.Now()
	wl := &domain.Wishlist{
		ID:          wishlistID,
		PublicID:    publicID,
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		EventDate:   input.EventDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateWishlist(ctx, wl); err != nil {
		return nil, fmt.Errorf("create wishlist: %w", err)
	}

	s.logger.Info("wishlist created",
		slog.String("wishlist_id", wl.ID),
		slog.String("owner_id", ownerID))

	return wl, nil
}

// ListMine returns all wishlists owned by the user, newest first.
func (s *WishlistService) ListMine(ctx context.Context, ownerID string) ([]*domain.Wishlist, error) {
	lists, err := s.store.ListWishlistsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wishlists: %w", err)
	}
	return lists, nil
}

// Get returns the full projection of a wishlist for its owner.
func (s *WishlistService) Get(ctx context.Context, wishlistID, userID string) (*projection.Wishlist, error) {
	wl, err := s.store.GetWishlist(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("wishlist not found")
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	if wl.OwnerID != userID {
		return nil, errors.Forbidden("you do not own this wishlist")
	}

	return s.project(ctx, wl.ID, projection.ForUser(userID))
}

// GetByPublicID returns the projection of a shared wishlist. The
// viewer may be anonymous; authenticated viewers get their own
// reservations and contributions flagged.
func (s *WishlistService) GetByPublicID(ctx context.Context, publicID string, viewer projection.Viewer) (*projection.Wishlist, error) {
	wl, err := s.store.GetWishlistByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("wishlist not found")
		}
		return nil, fmt.Errorf("get wishlist by public ID: %w", err)
	}

	return s.project(ctx, wl.ID, viewer)
}

// WishlistExists reports whether a public ID resolves to a wishlist.
// Used by the websocket handler to reject subscriptions before upgrade.
func (s *WishlistService) WishlistExists(ctx context.Context, publicID string) (bool, error) {
	_, err := s.store.GetWishlistByPublicID(ctx, publicID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a wishlist. Only the owner may delete it.
func (s *WishlistService) Delete(ctx context.Context, wishlistID, userID string) error {
	wl, err := s.store.GetWishlist(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFound("wishlist not found")
		}
		return fmt.Errorf("get wishlist: %w", err)
	}
	if wl.OwnerID != userID {
		return errors.Forbidden("only the owner can delete a wishlist")
	}

	if err := s.store.DeleteWishlist(ctx, wishlistID); err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}

	s.logger.Info("wishlist deleted",
		slog.String("wishlist_id", wishlistID),
		slog.String("owner_id", userID))

	return nil
}

// AddItemInput holds the fields for adding an item to a wishlist.
type AddItemInput struct {
	Name     string
	URL      string
	Price    string
	ImageURL string
}

// AddItem adds an item to a wishlist. Only the owner may add items.
// Subscribers are notified after the item is committed.
func (s *WishlistService) AddItem(ctx context.Context, wishlistID, userID string, input AddItemInput) (*projection.Wishlist, error) {
	wl, err := s.store.GetWishlist(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("wishlist not found")
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	if wl.OwnerID != userID {
		return nil, errors.Forbidden("only the owner can add items")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Validation("item name is required")
	}

	price, err := domain.ParsePrice(input.Price)
	if err != nil {
		return nil, errors.Validation(err.Error())
	}

	itemID, err := id.Generate("item")
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}

	item := &domain.Item{
		ID:         itemID,
		WishlistID: wishlistID,
		Name:       name,
		URL:        strings.TrimSpace(input.URL),
		Price:      price,
		ImageURL:   strings.TrimSpace(input.ImageURL),
		CreatedAt:  time.Now(),
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Info("item added",
		slog.String("item_id", item.ID),
		slog.String("wishlist_id", wishlistID))

	s.notifier.WishlistUpdated(ctx, wishlistID)

	return s.project(ctx, wishlistID, projection.ForUser(userID))
}

// project loads the aggregate and builds a projection for the viewer.
func (s *WishlistService) project(ctx context.Context, wishlistID string, viewer projection.Viewer) (*projection.Wishlist, error) {
	agg, err := s.store.LoadWishlistAggregate(ctx, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist aggregate: %w", err)
	}
	return projection.BuildWishlist(agg, viewer), nil
}
