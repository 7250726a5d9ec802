package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
	"github.com/promptdeckapp/promptdeck/internal/id"
)

func (s *Server) registerCollectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCollections",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections",
		Summary:     "List collections",
		Description: "Returns the user's collections",
		Tags:        []string{"Collections"},
	}, s.handleListCollections)

	huma.Register(s.api, huma.Operation{
		OperationID: "createCollection",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections",
		Summary:     "Create collection",
		Description: "Creates a new collection for a user",
		Tags:        []string{"Collections"},
	}, s.handleCreateCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCollection",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Get collection",
		Description: "Returns a collection by ID",
		Tags:        []string{"Collections"},
	}, s.handleGetCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCollection",
		Method:      http.MethodDelete,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Delete collection",
		Description: "Deletes a collection",
		Tags:        []string{"Collections"},
	}, s.handleDeleteCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "addPromptToCollection",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/prompts",
		Summary:     "Add prompt to collection",
		Description: "Adds a prompt to a collection. Adding an existing member is a no-op.",
		Tags:        []string{"Collections"},
	}, s.handleAddPromptToCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "removePromptFromCollection",
		Method:      http.MethodDelete,
		Path:        "/api/v1/collections/{id}/prompts/{promptID}",
		Summary:     "Remove prompt from collection",
		Description: "Removes a prompt from a collection",
		Tags:        []string{"Collections"},
	}, s.handleRemovePromptFromCollection)
}

// === DTOs ===

// ListCollectionsInput contains parameters for listing collections.
type ListCollectionsInput struct {
	UserID string `query:"user_id" doc:"Owner of the collections"`
}

// ListCollectionsResponse contains a user's collections.
type ListCollectionsResponse struct {
	Collections []*domain.Collection `json:"collections" doc:"The user's collections"`
}

// ListCollectionsOutput wraps the collection listing for Huma.
type ListCollectionsOutput struct {
	Body ListCollectionsResponse
}

// CreateCollectionRequest is the request body for creating a collection.
type CreateCollectionRequest struct {
	UserID      string   `json:"user_id" validate:"required,min=1,max=64" doc:"Owner of the collection"`
	ID          string   `json:"id,omitempty" validate:"omitempty,max=64" doc:"Collection ID. Generated when omitted."`
	Name        string   `json:"name" validate:"required,min=1,max=100" doc:"Collection name, unique per user"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=500" doc:"Short description"`
	Prompts     []string `json:"prompts,omitempty" validate:"omitempty,dive,min=1" doc:"Initial prompt IDs"`
}

// CreateCollectionInput wraps the create collection request for Huma.
type CreateCollectionInput struct {
	Body CreateCollectionRequest
}

// CollectionOutput wraps a single collection for Huma.
type CollectionOutput struct {
	Body *domain.Collection
}

// GetCollectionInput contains parameters for getting a collection.
type GetCollectionInput struct {
	ID string `path:"id" doc:"Collection ID"`
}

// DeleteCollectionInput contains parameters for deleting a collection.
type DeleteCollectionInput struct {
	ID string `path:"id" doc:"Collection ID"`
}

// AddPromptRequest is the request body for adding a prompt to a collection.
type AddPromptRequest struct {
	PromptID string `json:"prompt_id" validate:"required,min=1" doc:"Prompt to add"`
}

// AddPromptInput wraps the add prompt request for Huma.
type AddPromptInput struct {
	ID   string `path:"id" doc:"Collection ID"`
	Body AddPromptRequest
}

// RemovePromptInput contains parameters for removing a prompt from a collection.
type RemovePromptInput struct {
	ID       string `path:"id" doc:"Collection ID"`
	PromptID string `path:"promptID" doc:"Prompt to remove"`
}

// === Handlers ===

func (s *Server) handleListCollections(ctx context.Context, input *ListCollectionsInput) (*ListCollectionsOutput, error) {
	if input.UserID == "" {
		return nil, domainerrors.Validation("user_id is required")
	}

	collections, err := s.store.ListCollections(ctx, input.UserID)
	if err != nil {
		s.logger.Error("failed to list collections", "error", err, "user_id", input.UserID)
		return nil, err
	}
	if collections == nil {
		collections = []*domain.Collection{}
	}

	return &ListCollectionsOutput{Body: ListCollectionsResponse{Collections: collections}}, nil
}

func (s *Server) handleCreateCollection(ctx context.Context, input *CreateCollectionInput) (*CollectionOutput, error) {
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	collectionID := input.Body.ID
	if collectionID == "" {
		var err error
		if collectionID, err = id.Generate(id.PrefixCollection); err != nil {
			return nil, err
		}
	}

	c := &domain.Collection{
		CreatedAt:   time.Now().UTC(),
		ID:          collectionID,
		Name:        input.Body.Name,
		Description: input.Body.Description,
		PromptIDs:   input.Body.Prompts,
	}

	if err := s.store.CreateCollection(ctx, input.Body.UserID, c); err != nil {
		return nil, err
	}
	if c.PromptIDs == nil {
		c.PromptIDs = []string{}
	}

	s.logger.Info("collection created", "id", c.ID, "name", c.Name, "user_id", input.Body.UserID)
	return &CollectionOutput{Body: c}, nil
}

func (s *Server) handleGetCollection(ctx context.Context, input *GetCollectionInput) (*CollectionOutput, error) {
	c, err := s.store.GetCollection(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CollectionOutput{Body: c}, nil
}

func (s *Server) handleDeleteCollection(ctx context.Context, input *DeleteCollectionInput) (*MessageOutput, error) {
	if err := s.store.DeleteCollection(ctx, input.ID); err != nil {
		return nil, err
	}

	s.logger.Info("collection deleted", "id", input.ID)
	return &MessageOutput{Body: MessageResponse{Message: "Collection deleted"}}, nil
}

func (s *Server) handleAddPromptToCollection(ctx context.Context, input *AddPromptInput) (*MessageOutput, error) {
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	if err := s.store.AddPromptToCollection(ctx, input.ID, input.Body.PromptID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Prompt added to collection"}}, nil
}

func (s *Server) handleRemovePromptFromCollection(ctx context.Context, input *RemovePromptInput) (*MessageOutput, error) {
	if err := s.store.RemovePromptFromCollection(ctx, input.ID, input.PromptID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Prompt removed from collection"}}, nil
}
