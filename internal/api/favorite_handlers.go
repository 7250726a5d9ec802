package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the user's favorited prompts in the order they were added",
		Tags:        []string{"Favorites"},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "addFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/favorites",
		Summary:     "Add favorite",
		Description: "Favorites a prompt for a user. Re-adding is a no-op.",
		Tags:        []string{"Favorites"},
	}, s.handleAddFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{promptID}",
		Summary:     "Remove favorite",
		Description: "Unfavorites a prompt. Removing an absent favorite is a no-op.",
		Tags:        []string{"Favorites"},
	}, s.handleRemoveFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearFavorites",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites",
		Summary:     "Clear favorites",
		Description: "Removes every favorite of the user",
		Tags:        []string{"Favorites"},
	}, s.handleClearFavorites)
}

// === DTOs ===

// ListFavoritesInput contains parameters for listing favorites.
type ListFavoritesInput struct {
	UserID string `query:"user_id" doc:"Owner of the favorites"`
}

// ListFavoritesResponse contains a user's favorited prompts.
type ListFavoritesResponse struct {
	Favorites []*domain.Prompt `json:"favorites" doc:"Favorited prompts, oldest first"`
}

// ListFavoritesOutput wraps the favorites listing for Huma.
type ListFavoritesOutput struct {
	Body ListFavoritesResponse
}

// AddFavoriteRequest is the request body for favoriting a prompt.
type AddFavoriteRequest struct {
	UserID   string `json:"user_id" validate:"required,min=1,max=64" doc:"Owner of the favorite"`
	PromptID string `json:"prompt_id" validate:"required,min=1" doc:"Prompt to favorite"`
}

// AddFavoriteInput wraps the add favorite request for Huma.
type AddFavoriteInput struct {
	Body AddFavoriteRequest
}

// RemoveFavoriteInput contains parameters for removing a favorite.
type RemoveFavoriteInput struct {
	PromptID string `path:"promptID" doc:"Prompt to unfavorite"`
	UserID   string `query:"user_id" doc:"Owner of the favorite"`
}

// ClearFavoritesInput contains parameters for clearing favorites.
type ClearFavoritesInput struct {
	UserID string `query:"user_id" doc:"Owner of the favorites"`
}

// ClearFavoritesResponse reports how many favorites were removed.
type ClearFavoritesResponse struct {
	Removed int `json:"removed" doc:"Number of favorites removed"`
}

// ClearFavoritesOutput wraps the clear favorites response for Huma.
type ClearFavoritesOutput struct {
	Body ClearFavoritesResponse
}

// === Handlers ===

func (s *Server) handleListFavorites(ctx context.Context, input *ListFavoritesInput) (*ListFavoritesOutput, error) {
	if input.UserID == "" {
		return nil, domainerrors.Validation("user_id is required")
	}

	favorites, err := s.store.ListFavoritePrompts(ctx, input.UserID)
	if err != nil {
		s.logger.Error("failed to list favorites", "error", err, "user_id", input.UserID)
		return nil, err
	}

	return &ListFavoritesOutput{Body: ListFavoritesResponse{Favorites: favorites}}, nil
}

func (s *Server) handleAddFavorite(ctx context.Context, input *AddFavoriteInput) (*MessageOutput, error) {
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	if err := s.store.AddFavorite(ctx, input.Body.UserID, input.Body.PromptID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Prompt favorited"}}, nil
}

func (s *Server) handleRemoveFavorite(ctx context.Context, input *RemoveFavoriteInput) (*MessageOutput, error) {
	if input.UserID == "" {
		return nil, domainerrors.Validation("user_id is required")
	}

	if err := s.store.RemoveFavorite(ctx, input.UserID, input.PromptID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Favorite removed"}}, nil
}

func (s *Server) handleClearFavorites(ctx context.Context, input *ClearFavoritesInput) (*ClearFavoritesOutput, error) {
	if input.UserID == "" {
		return nil, domainerrors.Validation("user_id is required")
	}

	removed, err := s.store.ClearFavorites(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("favorites cleared", "user_id", input.UserID, "removed", removed)
	return &ClearFavoritesOutput{Body: ClearFavoritesResponse{Removed: removed}}, nil
}
