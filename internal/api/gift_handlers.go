package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerGiftRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleReservation",
		Method:      http.MethodPost,
		Path:        "/api/v1/items/{itemId}/reserve",
		Summary:     "Toggle reservation",
		Description: "Reserves an unreserved item for the caller, or releases the caller's own reservation. Items reserved by someone else return a conflict.",
		Tags:        []string{"Gifting"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleReservation)

	huma.Register(s.api, huma.Operation{
		OperationID: "contribute",
		Method:      http.MethodPost,
		Path:        "/api/v1/items/{itemId}/contribute",
		Summary:     "Contribute toward an item",
		Description: "Records a contribution toward an item. Amounts must be positive; totals may exceed the item price.",
		Tags:        []string{"Gifting"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleContribute)
}

// ToggleReservationInput identifies the item to reserve or release.
type ToggleReservationInput struct {
	Authorization string `header:"Authorization"`
	ItemID        string `path:"itemId" doc:"Item ID"`
}

func (s *Server) handleToggleReservation(ctx context.Context, input *ToggleReservationInput) (*WishlistOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Gifting.ToggleReservation(ctx, input.ItemID, user.ID)
	if err != nil {
		return nil, err
	}
	return &WishlistOutput{Body: *view}, nil
}

// ContributeRequest is the request body for a contribution.
type ContributeRequest struct {
	Amount string `json:"amount" validate:"required" doc:"Amount as a decimal string, e.g. \"25.00\""`
}

// ContributeInput wraps the contribution request for Huma.
type ContributeInput struct {
	Authorization string `header:"Authorization"`
	ItemID        string `path:"itemId" doc:"Item ID"`
	Body          ContributeRequest
}

func (s *Server) handleContribute(ctx context.Context, input *ContributeInput) (*WishlistOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	view, err := s.services.Gifting.Contribute(ctx, input.ItemID, user.ID, input.Body.Amount)
	if err != nil {
		return nil, err
	}
	return &WishlistOutput{Body: *view}, nil
}
