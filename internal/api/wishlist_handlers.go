package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/giftwell/giftwell-server/internal/domain"
	"github.com/giftwell/giftwell-server/internal/projection"
	"github.com/giftwell/giftwell-server/internal/service"
)

func (s *Server) registerWishlistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createWishlist",
		Method:      http.MethodPost,
		Path:        "/api/v1/wishlists",
		Summary:     "Create wishlist",
		Description: "Creates a wishlist owned by the authenticated user.",
		Tags:        []string{"Wishlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateWishlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "listWishlists",
		Method:      http.MethodGet,
		Path:        "/api/v1/wishlists",
		Summary:     "List my wishlists",
		Description: "Lists wishlists owned by the authenticated user, newest first.",
		Tags:        []string{"Wishlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListWishlists)

	huma.Register(s.api, huma.Operation{
		OperationID: "getWishlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/wishlists/{id}",
		Summary:     "Get wishlist",
		Description: "Returns a wishlist with items. Owner only.",
		Tags:        []string{"Wishlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetWishlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteWishlist",
		Method:      http.MethodDelete,
		Path:        "/api/v1/wishlists/{id}",
		Summary:     "Delete wishlist",
		Description: "Deletes a wishlist and everything on it. Owner only.",
		Tags:        []string{"Wishlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteWishlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "addWishlistItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/wishlists/{id}/items",
		Summary:     "Add item",
		Description: "Adds an item to a wishlist. Owner only.",
		Tags:        []string{"Wishlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPublicWishlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/wishlists/public/{publicId}",
		Summary:     "Get shared wishlist",
		Description: "Returns a wishlist by its shareable handle. Works without authentication; authenticated viewers see their own reservations and contributions flagged.",
		Tags:        []string{"Wishlists"},
	}, s.handleGetPublicWishlist)
}

// === DTOs ===

// WishlistSummary contains wishlist metadata without items.
type WishlistSummary struct {
	ID          string     `json:"id" doc:"Wishlist ID"`
	PublicID    string     `json:"public_id" doc:"Shareable handle"`
	Title       string     `json:"title" doc:"Title"`
	Description string     `json:"description,omitempty" doc:"Description"`
	EventDate   *time.Time `json:"event_date,omitempty" doc:"Date of the occasion"`
	CreatedAt   time.Time  `json:"created_at" doc:"Creation time"`
}

func toWishlistSummary(wl *domain.Wishlist) WishlistSummary {
	return WishlistSummary{
		ID:          wl.ID,
		PublicID:    wl.PublicID,
		Title:       wl.Title,
		Description: wl.Description,
		EventDate:   wl.EventDate,
		CreatedAt:   wl.CreatedAt,
	}
}

// CreateWishlistRequest is the request body for creating a wishlist.
type CreateWishlistRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200" doc:"Title"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=2000" doc:"Description"`
	EventDate   *time.Time `json:"event_date,omitempty" doc:"Date of the occasion"`
}

// CreateWishlistInput wraps the create request for Huma.
type CreateWishlistInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateWishlistRequest
}

// WishlistSummaryOutput wraps a wishlist summary for Huma.
type WishlistSummaryOutput struct {
	Body WishlistSummary
}

func (s *Server) handleCreateWishlist(ctx context.Context, input *CreateWishlistInput) (*WishlistSummaryOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	wl, err := s.services.Wishlist.Create(ctx, user.ID, service.CreateWishlistInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		EventDate:   input.Body.EventDate,
	})
	if err != nil {
		return nil, err
	}

	return &WishlistSummaryOutput{Body: toWishlistSummary(wl)}, nil
}

// ListWishlistsInput carries the Authorization header for Huma.
type ListWishlistsInput struct {
	Authorization string `header:"Authorization"`
}

// ListWishlistsOutput wraps the wishlist collection for Huma.
type ListWishlistsOutput struct {
	Body struct {
		Wishlists []WishlistSummary `json:"wishlists" doc:"Wishlists owned by the caller"`
	}
}

func (s *Server) handleListWishlists(ctx context.Context, input *ListWishlistsInput) (*ListWishlistsOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	lists, err := s.services.Wishlist.ListMine(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := &ListWishlistsOutput{}
	out.Body.Wishlists = make([]WishlistSummary, 0, len(lists))
	for _, wl := range lists {
		out.Body.Wishlists = append(out.Body.Wishlists, toWishlistSummary(wl))
	}
	return out, nil
}

// GetWishlistInput identifies a wishlist by owner-facing ID.
type GetWishlistInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Wishlist ID"`
}

// WishlistOutput wraps a full wishlist projection for Huma.
type WishlistOutput struct {
	Body projection.Wishlist
}

func (s *Server) handleGetWishlist(ctx context.Context, input *GetWishlistInput) (*WishlistOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Wishlist.Get(ctx, input.ID, user.ID)
	if err != nil {
		return nil, err
	}
	return &WishlistOutput{Body: *view}, nil
}

// DeleteWishlistInput identifies a wishlist to delete.
type DeleteWishlistInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Wishlist ID"`
}

func (s *Server) handleDeleteWishlist(ctx context.Context, input *DeleteWishlistInput) (*struct{}, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Wishlist.Delete(ctx, input.ID, user.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

// AddItemRequest is the request body for adding an item.
type AddItemRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200" doc:"Item name"`
	URL      string `json:"url,omitempty" validate:"omitempty,url,max=2000" doc:"Product link"`
	Price    string `json:"price,omitempty" doc:"Price as a decimal string, e.g. \"49.99\""`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url,max=2000" doc:"Image link"`
}

// AddItemInput wraps the add item request for Huma.
type AddItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Wishlist ID"`
	Body          AddItemRequest
}

func (s *Server) handleAddItem(ctx context.Context, input *AddItemInput) (*WishlistOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	view, err := s.services.Wishlist.AddItem(ctx, input.ID, user.ID, service.AddItemInput{
		Name:     input.Body.Name,
		URL:      input.Body.URL,
		Price:    input.Body.Price,
		ImageURL: input.Body.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return &WishlistOutput{Body: *view}, nil
}

// GetPublicWishlistInput identifies a wishlist by its shareable handle.
type GetPublicWishlistInput struct {
	Authorization string `header:"Authorization"`
	PublicID      string `path:"publicId" doc:"Shareable wishlist handle"`
}

func (s *Server) handleGetPublicWishlist(ctx context.Context, input *GetPublicWishlistInput) (*WishlistOutput, error) {
	viewer := s.viewerFromHeader(ctx, input.Authorization)

	view, err := s.services.Wishlist.GetByPublicID(ctx, input.PublicID, viewer)
	if err != nil {
		return nil, err
	}
	return &WishlistOutput{Body: *view}, nil
}
