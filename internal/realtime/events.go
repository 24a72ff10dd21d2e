package realtime

import "github.com/giftwell/giftwell-server/internal/projection"

// MessageType identifies the kind of payload pushed to subscribers.
type MessageType string

const (
	// MessageWishlistUpdated carries the full anonymized wishlist state
	// after any mutation.
	MessageWishlistUpdated MessageType = "wishlist_updated"
)

// Message is the envelope pushed over a subscriber socket.
type Message struct {
	Type     MessageType          `json:"type"`
	Wishlist *projection.Wishlist `json:"wishlist,omitempty"`
}

// NewWishlistUpdated wraps an anonymized wishlist projection for broadcast.
func NewWishlistUpdated(view *projection.Wishlist) Message {
	return Message{Type: MessageWishlistUpdated, Wishlist: view}
}
