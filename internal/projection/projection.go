// Package projection builds viewer-specific read models of a wishlist.
//
// The same aggregate produces different JSON depending on who is
// looking: owners see their list without gifting secrets spoiled for
// them elsewhere, gifters see their own reservations and contributions
// flagged, and anonymous broadcast payloads carry no viewer-specific
// fields at all.
package projection

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/giftwell/giftwell-server/internal/domain"
)

// Viewer identifies who a projection is being built for. The zero
// value is not valid; use ForUser or Anonymous.
type Viewer struct {
	userID string
	known  bool
}

// ForUser returns a viewer for an authenticated user.
func ForUser(userID string) Viewer {
	return Viewer{userID: userID, known: true}
}

// Anonymous returns the viewer used for broadcast payloads and
// unauthenticated reads. All viewer-specific fields render as their
// zero values.
func Anonymous() Viewer {
	return Viewer{}
}

// Item is the read model of a single wishlist entry.
type Item struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	URL              string          `json:"url,omitempty"`
	Price            decimal.Decimal `json:"price"`
	ImageURL         string          `json:"image_url,omitempty"`
	TotalContributed decimal.Decimal `json:"total_contributed"`
	IsFullyFunded    bool            `json:"is_fully_funded"`
	HasReservation   bool            `json:"has_reservation"`
	YouReserved      bool            `json:"you_reserved"`
	YourContribution decimal.Decimal `json:"your_contribution"`
}

// Wishlist is the read model of a whole wishlist.
type Wishlist struct {
	ID          string     `json:"id"`
	PublicID    string     `json:"public_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	IsOwner     bool       `json:"is_owner"`
	Items       []Item     `json:"items"`
}

// BuildWishlist projects an aggregate for the given viewer. Items are
// ordered by ID ascending so repeated builds of the same state are
// byte-for-byte identical.
func BuildWishlist(agg *domain.WishlistAggregate, viewer Viewer) *Wishlist {
	items := make([]Item, 0, len(agg.Items))
	for i := range agg.Items {
		items = append(items, buildItem(&agg.Items[i], viewer))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return &Wishlist{
		ID:          agg.Wishlist.ID,
		PublicID:    agg.Wishlist.PublicID,
		Title:       agg.Wishlist.Title,
		Description: agg.Wishlist.Description,
		EventDate:   agg.Wishlist.EventDate,
		CreatedAt:   agg.Wishlist.CreatedAt,
		IsOwner:     viewer.known && viewer.userID == agg.Wishlist.OwnerID,
		Items:       items,
	}
}

func buildItem(agg *domain.ItemAggregate, viewer Viewer) Item {
	yourContribution := decimal.Zero
	if viewer.known {
		for _, c := range agg.Contributions {
			if c.UserID == viewer.userID {
				yourContribution = yourContribution.Add(c.Amount)
			}
		}
	}

	return Item{
		ID:               agg.Item.ID,
		Name:             agg.Item.Name,
		URL:              agg.Item.URL,
		Price:            agg.Item.Price,
		ImageURL:         agg.Item.ImageURL,
		TotalContributed: agg.TotalContributed(),
		IsFullyFunded:    agg.IsFullyFunded(),
		HasReservation:   agg.Reservation != nil,
		YouReserved:      viewer.known && agg.Reservation != nil && agg.Reservation.UserID == viewer.userID,
		YourContribution: yourContribution,
	}
}
