package projection

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwell/giftwell-server/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testAggregate() *domain.WishlistAggregate {
	now := time.Now().UTC()
	return &domain.WishlistAggregate{
		Wishlist: domain.Wishlist{
			ID:        "wl-1",
			PublicID:  "abc123def456",
			OwnerID:   "usr-owner",
			Title:     "Birthday",
			CreatedAt: now,
		},
		Items: []domain.ItemAggregate{
			{
				Item:        domain.Item{ID: "item-b", WishlistID: "wl-1", Name: "Headphones", Price: dec("100")},
				Reservation: &domain.Reservation{ID: "res-1", ItemID: "item-b", UserID: "usr-alice"},
				Contributions: []domain.Contribution{
					{ID: "contrib-1", ItemID: "item-b", UserID: "usr-alice", Amount: dec("40")},
					{ID: "contrib-2", ItemID: "item-b", UserID: "usr-bob", Amount: dec("60")},
				},
			},
			{
				Item: domain.Item{ID: "item-a", WishlistID: "wl-1", Name: "Book", Price: dec("20")},
			},
		},
	}
}

func TestBuildWishlist_SortsItemsByID(t *testing.T) {
	view := BuildWishlist(testAggregate(), Anonymous())

	require.Len(t, view.Items, 2)
	assert.Equal(t, "item-a", view.Items[0].ID)
	assert.Equal(t, "item-b", view.Items[1].ID)
}

func TestBuildWishlist_TotalsAreExact(t *testing.T) {
	view := BuildWishlist(testAggregate(), Anonymous())

	headphones := view.Items[1]
	assert.True(t, dec("100").Equal(headphones.TotalContributed))
	assert.True(t, headphones.IsFullyFunded)

	book := view.Items[0]
	assert.True(t, book.TotalContributed.IsZero())
	assert.False(t, book.IsFullyFunded)
}

func TestBuildWishlist_ViewerSeesOwnParticipation(t *testing.T) {
	view := BuildWishlist(testAggregate(), ForUser("usr-alice"))

	headphones := view.Items[1]
	assert.True(t, headphones.YouReserved)
	assert.True(t, dec("40").Equal(headphones.YourContribution))
	assert.False(t, view.IsOwner)
}

func TestBuildWishlist_OtherViewerSeesReservationButNotWhose(t *testing.T) {
	view := BuildWishlist(testAggregate(), ForUser("usr-bob"))

	headphones := view.Items[1]
	assert.True(t, headphones.HasReservation)
	assert.False(t, headphones.YouReserved)
	assert.True(t, dec("60").Equal(headphones.YourContribution))
}

func TestBuildWishlist_OwnerFlag(t *testing.T) {
	view := BuildWishlist(testAggregate(), ForUser("usr-owner"))

	assert.True(t, view.IsOwner)
}

func TestBuildWishlist_AnonymousLeaksNothing(t *testing.T) {
	view := BuildWishlist(testAggregate(), Anonymous())

	assert.False(t, view.IsOwner)
	for _, item := range view.Items {
		assert.False(t, item.YouReserved)
		assert.True(t, item.YourContribution.IsZero())
	}
	// Presence of a reservation is still public.
	assert.True(t, view.Items[1].HasReservation)
}

func TestBuildWishlist_MultipleContributionsFromSameUserSummed(t *testing.T) {
	agg := testAggregate()
	agg.Items[0].Contributions = append(agg.Items[0].Contributions,
		domain.Contribution{ID: "contrib-3", ItemID: "item-b", UserID: "usr-alice", Amount: dec("5")})

	view := BuildWishlist(agg, ForUser("usr-alice"))

	assert.True(t, dec("45").Equal(view.Items[1].YourContribution))
	assert.True(t, dec("105").Equal(view.Items[1].TotalContributed))
}
