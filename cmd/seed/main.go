// Package main provides a tool to seed the database with demo wishlist data.
//
// This creates a handful of users, a shared wishlist with items, and some
// reservations and contributions so the live views have something to show.
//
// Usage:
//
//	DATA_PATH=~/GiftWell/data go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/giftwell/giftwell-server/internal/auth"
	"github.com/giftwell/giftwell-server/internal/domain"
	"github.com/giftwell/giftwell-server/internal/id"
	"github.com/giftwell/giftwell-server/internal/store"
	"github.com/giftwell/giftwell-server/internal/store/sqlite"
)

var password = flag.String("password", "gift well demo", "Password assigned to the demo accounts")

type seedItem struct {
	name  string
	url   string
	price string
}

func main() {
	flag.Parse()

	basePath := os.Getenv("DATA_PATH")
	if basePath == "" {
		basePath = os.ExpandEnv("$HOME/GiftWell/data")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	dbPath := filepath.Join(basePath, "giftwell.db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	owner := seedUser(ctx, s, "alice@example.com", "Alice")
	gifters := []*domain.User{
		seedUser(ctx, s, "bob@example.com", "Bob"),
		seedUser(ctx, s, "carol@example.com", "Carol"),
	}

	wl := seedWishlist(ctx, s, owner, "Alice's Birthday", "Gifts for the big day")
	items := seedItems(ctx, s, wl, []seedItem{
		{name: "Espresso machine", url: "https://example.com/espresso", price: "349.00"},
		{name: "Hiking boots", url: "https://example.com/boots", price: "179.50"},
		{name: "Novel box set", price: "59.99"},
	})

	// Bob reserves the boots, both chip in on the espresso machine.
	seedReservation(ctx, s, items[1], gifters[0])
	seedContribution(ctx, s, items[0], gifters[0], "100.00")
	seedContribution(ctx, s, items[0], gifters[1], "75.00")

	fmt.Printf("\nSeeded wishlist %s (public ID %s)\n", wl.ID, wl.PublicID)
	fmt.Printf("Share URL path: /api/v1/wishlists/public/%s\n", wl.PublicID)
	fmt.Printf("Demo accounts use password: %q\n", *password)
}

func seedUser(ctx context.Context, s store.Store, email, name string) *domain.User {
	if existing, err := s.GetUserByEmail(ctx, email); err == nil {
		fmt.Printf("User %s already exists, reusing\n", email)
		return existing
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	userID, err := id.Generate("usr")
	if err != nil {
		log.Fatalf("Failed to generate user ID: %v", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           userID,
		Email:        email,
		DisplayName:  name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}
	fmt.Printf("Created user %s (%s)\n", name, user.ID)
	return user
}

func seedWishlist(ctx context.Context, s store.Store, owner *domain.User, title, description string) *domain.Wishlist {
	wlID, err := id.Generate("wl")
	if err != nil {
		log.Fatalf("Failed to generate wishlist ID: %v", err)
	}
	publicID, err := id.GeneratePublic()
	if err != nil {
		log.Fatalf("Failed to generate public ID: %v", err)
	}

	now := time.Now().UTC()
	wl := &domain.Wishlist{
		ID:          wlID,
		PublicID:    publicID,
		OwnerID:     owner.ID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CreateWishlist(ctx, wl); err != nil {
		log.Fatalf("Failed to create wishlist: %v", err)
	}
	fmt.Printf("Created wishlist %q (%s)\n", title, wl.ID)
	return wl
}

func seedItems(ctx context.Context, s store.Store, wl *domain.Wishlist, specs []seedItem) []*domain.Item {
	items := make([]*domain.Item, 0, len(specs))
	for _, spec := range specs {
		itemID, err := id.Generate("item")
		if err != nil {
			log.Fatalf("Failed to generate item ID: %v", err)
		}
		price, err := decimal.NewFromString(spec.price)
		if err != nil {
			log.Fatalf("Bad seed price %q: %v", spec.price, err)
		}

		item := &domain.Item{
			ID:         itemID,
			WishlistID: wl.ID,
			Name:       spec.name,
			URL:        spec.url,
			Price:      price,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.CreateItem(ctx, item); err != nil {
			log.Fatalf("Failed to create item %q: %v", spec.name, err)
		}
		fmt.Printf("  Added item %q at %s\n", spec.name, price.StringFixed(2))
		items = append(items, item)
	}
	return items
}

func seedReservation(ctx context.Context, s store.Store, item *domain.Item, user *domain.User) {
	resID, err := id.Generate("res")
	if err != nil {
		log.Fatalf("Failed to generate reservation ID: %v", err)
	}
	res := &domain.Reservation{
		ID:        resID,
		ItemID:    item.ID,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateReservation(ctx, res); err != nil {
		log.Fatalf("Failed to reserve item %q: %v", item.Name, err)
	}
	fmt.Printf("  %s reserved %q\n", user.DisplayName, item.Name)
}

func seedContribution(ctx context.Context, s store.Store, item *domain.Item, user *domain.User, amount string) {
	contribID, err := id.Generate("contrib")
	if err != nil {
		log.Fatalf("Failed to generate contribution ID: %v", err)
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		log.Fatalf("Bad seed amount %q: %v", amount, err)
	}
	c := &domain.Contribution{
		ID:        contribID,
		ItemID:    item.ID,
		UserID:    user.ID,
		Amount:    amt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateContribution(ctx, c); err != nil {
		log.Fatalf("Failed to record contribution: %v", err)
	}
	fmt.Printf("  %s contributed %s toward %q\n", user.DisplayName, amt.StringFixed(2), item.Name)
}
