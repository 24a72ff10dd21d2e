package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wishlist is a collection of giftable items owned by a single user.
// The PublicID is the shareable handle: anyone holding it can view the
// list and participate, without ever learning the owner-facing ID.
type Wishlist struct {
	ID          string     `json:"id"`
	PublicID    string     `json:"public_id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Item is a single entry on a wishlist. Price is optional context for
// gifters; contributions are not capped by it.
type Item struct {
	ID         string          `json:"id"`
	WishlistID string          `json:"wishlist_id"`
	Name       string          `json:"name"`
	URL        string          `json:"url,omitempty"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"image_url,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Reservation marks an item as claimed by one gifter. At most one
// reservation exists per item; the database enforces this.
type Reservation struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Contribution is a pledge of money toward an item. Multiple users can
// contribute to the same item, and a single user can contribute more
// than once. Totals may exceed the item price.
type Contribution struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// ItemAggregate bundles an item with its reservation and contributions,
// as loaded in one pass for projection building.
type ItemAggregate struct {
	Item          Item
	Reservation   *Reservation
	Contributions []Contribution
}

// WishlistAggregate is the full state of a wishlist and its items,
// loaded in one pass for projection building and broadcasting.
type WishlistAggregate struct {
	Wishlist Wishlist
	Items    []ItemAggregate
}

// TotalContributed sums all contribution amounts for the item.
func (a *ItemAggregate) TotalContributed() decimal.Decimal {
	total := decimal.Zero
	for _, c := range a.Contributions {
		total = total.Add(c.Amount)
	}
	return total
}

// IsFullyFunded reports whether contributions meet or exceed the item
// price. A zero-price item counts as funded from the start.
func (a *ItemAggregate) IsFullyFunded() bool {
	return a.TotalContributed().GreaterThanOrEqual(a.Item.Price)
}
