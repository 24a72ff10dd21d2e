package service

import (
	"context"
	"log/slog"

	"github.com/giftwell/giftwell-server/internal/projection"
	"github.com/giftwell/giftwell-server/internal/realtime"
	"github.com/giftwell/giftwell-server/internal/store"
)

// Notifier pushes wishlist changes to live subscribers. Services call
// it after every committed mutation.
type Notifier interface {
	WishlistUpdated(ctx context.Context, wishlistID string)
}

// Broadcaster reloads committed wishlist state, anonymizes it, and
// fans it out to everyone subscribed to the wishlist's public ID.
type Broadcaster struct {
	store    store.Store
	registry *realtime.Registry
	logger   *slog.Logger
}

// NewBroadcaster creates a broadcaster.
func NewBroadcaster(st store.Store, registry *realtime.Registry, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		store:    st,
		registry: registry,
		logger:   logger,
	}
}

// WishlistUpdated broadcasts the current state of a wishlist. Delivery
// is best effort: the mutation has already committed, so failures here
// are logged and swallowed rather than surfaced to the caller.
func (b *Broadcaster) WishlistUpdated(ctx context.Context, wishlistID string) {
	agg, err := b.store.LoadWishlistAggregate(ctx, wishlistID)
	if err != nil {
		b.logger.Error("failed to load wishlist for broadcast",
			slog.String("wishlist_id", wishlistID),
			slog.String("error", err.Error()))
		return
	}

	// Broadcast payloads go to everyone holding the share link, so the
	// projection never carries viewer-specific fields.
	view := projection.BuildWishlist(agg, projection.Anonymous())
	b.registry.Broadcast(agg.Wishlist.PublicID, realtime.NewWishlistUpdated(view))
}
