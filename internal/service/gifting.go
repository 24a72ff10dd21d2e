package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/giftwell/giftwell-server/internal/domain"
	"github.com/giftwell/giftwell-server/internal/errors"
	"github.com/giftwell/giftwell-server/internal/id"
	"github.com/giftwell/giftwell-server/internal/projection"
	"github.com/giftwell/giftwell-server/internal/store"
)

// GiftingService handles reservations and contributions by gifters.
type GiftingService struct {
	store    store.Store
	notifier Notifier
	logger   *slog.Logger
}

// NewGiftingService creates a new gifting service.
func NewGiftingService(st store.Store, notifier Notifier, logger *slog.Logger) *GiftingService {
	return &GiftingService{
		store:    st,
		notifier: notifier,
		logger:   logger,
	}
}

// ToggleReservation reserves an unreserved item for the user, or
// releases the user's own reservation. An item reserved by someone
// else cannot be toggled. Owners cannot reserve their own items.
func (s *GiftingService) ToggleReservation(ctx context.Context, itemID, userID string) (*projection.Wishlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("item not found")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	wl, err := s.store.GetWishlist(ctx, item.WishlistID)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	if wl.OwnerID == userID {
		return nil, errors.Forbidden("you cannot reserve items on your own wishlist")
	}

	existing, err := s.store.GetReservationForItem(ctx, itemID)
	switch {
	case err == nil && existing.UserID == userID:
		// Releasing our own reservation. A racing release may have
		// removed the row already; the item is unreserved either way.
		if err := s.store.DeleteReservation(ctx, existing.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("delete reservation: %w", err)
		}
		s.logger.Info("reservation released",
			slog.String("item_id", itemID),
			slog.String("user_id", userID))

	case err == nil:
		return nil, errors.Conflict("this item is already reserved by someone else")

	case errors.Is(err, store.ErrNotFound):
		if err := s.createReservation(ctx, itemID, userID); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("get reservation: %w", err)
	}

	s.notifier.WishlistUpdated(ctx, wl.ID)

	agg, err := s.store.LoadWishlistAggregate(ctx, wl.ID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist aggregate: %w", err)
	}
	return projection.BuildWishlist(agg, projection.ForUser(userID)), nil
}

func (s *GiftingService) createReservation(ctx context.Context, itemID, userID string) error {
	resID, err := id.Generate("res")
	if err != nil {
		return fmt.Errorf("generate reservation ID: %w", err)
	}

	res := &domain.Reservation{
		ID:        resID,
		ItemID:    itemID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateReservation(ctx, res); err != nil {
		// A racing gifter beat us to the insert.
		if errors.Is(err, store.ErrConflict) {
			return errors.Conflict("this item is already reserved by someone else")
		}
		return fmt.Errorf("create reservation: %w", err)
	}

	s.logger.Info("item reserved",
		slog.String("item_id", itemID),
		slog.String("user_id", userID))

	return nil
}

// Contribute records a contribution toward an item. The amount must be
// strictly positive; totals may exceed the item price. Owners cannot
// contribute to their own items.
func (s *GiftingService) Contribute(ctx context.Context, itemID, userID, rawAmount string) (*projection.Wishlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	amount, err := domain.ParseAmount(rawAmount)
	if err != nil {
		return nil, errors.Validation(err.Error())
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("item not found")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	wl, err := s.store.GetWishlist(ctx, item.WishlistID)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	if wl.OwnerID == userID {
		return nil, errors.Forbidden("you cannot contribute to items on your own wishlist")
	}

	contribID, err := id.Generate("contrib")
	if err != nil {
		return nil, fmt.Errorf("generate contribution ID: %w", err)
	}

	contrib := &domain.Contribution{
		ID:        contribID,
		ItemID:    itemID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateContribution(ctx, contrib); err != nil {
		return nil, fmt.Errorf("create contribution: %w", err)
	}

	s.logger.Info("contribution recorded",
		slog.String("item_id", itemID),
		slog.String("user_id", userID),
		slog.String("amount", amount.String()))

	s.notifier.WishlistUpdated(ctx, wl.ID)

	agg, err := s.store.LoadWishlistAggregate(ctx, wl.ID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist aggregate: %w", err)
	}
	return projection.BuildWishlist(agg, projection.ForUser(userID)), nil
}
