package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
	"github.com/promptdeckapp/promptdeck/internal/id"
	"github.com/promptdeckapp/promptdeck/internal/store"
)

func (s *Server) registerPromptRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPrompts",
		Method:      http.MethodGet,
		Path:        "/api/v1/prompts",
		Summary:     "List prompts",
		Description: "Returns prompts matching the optional filters",
		Tags:        []string{"Prompts"},
	}, s.handleListPrompts)

	huma.Register(s.api, huma.Operation{
		OperationID: "createPrompt",
		Method:      http.MethodPost,
		Path:        "/api/v1/prompts",
		Summary:     "Create prompt",
		Description: "Creates a new prompt",
		Tags:        []string{"Prompts"},
	}, s.handleCreatePrompt)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPrompt",
		Method:      http.MethodGet,
		Path:        "/api/v1/prompts/{id}",
		Summary:     "Get prompt",
		Description: "Returns a prompt by ID",
		Tags:        []string{"Prompts"},
	}, s.handleGetPrompt)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePrompt",
		Method:      http.MethodDelete,
		Path:        "/api/v1/prompts/{id}",
		Summary:     "Delete prompt",
		Description: "Deletes a prompt",
		Tags:        []string{"Prompts"},
	}, s.handleDeletePrompt)

	huma.Register(s.api, huma.Operation{
		OperationID: "ratePrompt",
		Method:      http.MethodPost,
		Path:        "/api/v1/prompts/{id}/ratings",
		Summary:     "Rate prompt",
		Description: "Records a star rating and returns the prompt with its updated average",
		Tags:        []string{"Prompts"},
	}, s.handleRatePrompt)
}

// === DTOs ===

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Human-readable result"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// ListPromptsInput contains parameters for listing prompts.
type ListPromptsInput struct {
	Category   string `query:"category" doc:"Filter by category"`
	Difficulty string `query:"difficulty" doc:"Filter by difficulty"`
	Featured   string `query:"featured" doc:"Filter by featured flag (true or false)"`
	Query      string `query:"q" doc:"Match against title and description"`
	Sort       string `query:"sort" doc:"Sort order: rating. Omit for newest first."`
	Page       int    `query:"page" doc:"Page number (default 1)"`
	PageSize   int    `query:"page_size" doc:"Prompts per page. Omit for all."`
}

// ListPromptsResponse contains a page of prompts.
type ListPromptsResponse struct {
	Prompts []*domain.Prompt `json:"prompts" doc:"Matching prompts"`
	Total   int              `json:"total" doc:"Total matches across all pages"`
}

// ListPromptsOutput wraps the prompt listing for Huma.
type ListPromptsOutput struct {
	Body ListPromptsResponse
}

// CreatePromptRequest is the request body for creating a prompt.
type CreatePromptRequest struct {
	ID          string   `json:"id,omitempty" validate:"omitempty,max=64" doc:"Prompt ID. Generated when omitted."`
	Title       string   `json:"title" validate:"required,min=1,max=200" doc:"Prompt title"`
	Content     string   `json:"content" validate:"required,min=1" doc:"Prompt text"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=1000" doc:"Short description"`
	Category    string   `json:"category,omitempty" validate:"omitempty,max=50" doc:"Category slug"`
	Author      string   `json:"author,omitempty" validate:"omitempty,max=100" doc:"Author name"`
	Difficulty  string   `json:"difficulty,omitempty" validate:"omitempty,max=20" doc:"Difficulty level"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=50" doc:"Tag slugs"`
	Featured    bool     `json:"featured,omitempty" doc:"Feature this prompt"`
}

// CreatePromptInput wraps the create prompt request for Huma.
type CreatePromptInput struct {
	Body CreatePromptRequest
}

// PromptOutput wraps a single prompt for Huma.
type PromptOutput struct {
	Body *domain.Prompt
}

// GetPromptInput contains parameters for getting a prompt.
type GetPromptInput struct {
	ID string `path:"id" doc:"Prompt ID"`
}

// DeletePromptInput contains parameters for deleting a prompt.
type DeletePromptInput struct {
	ID string `path:"id" doc:"Prompt ID"`
}

// RatePromptRequest is the request body for rating a prompt.
type RatePromptRequest struct {
	Stars int `json:"stars" validate:"gte=1,lte=5" doc:"Star rating from 1 to 5"`
}

// RatePromptInput wraps the rating request for Huma.
type RatePromptInput struct {
	ID   string `path:"id" doc:"Prompt ID"`
	Body RatePromptRequest
}

// === Handlers ===

func (s *Server) handleListPrompts(ctx context.Context, input *ListPromptsInput) (*ListPromptsOutput, error) {
	filter := store.ListFilter{
		Category:   input.Category,
		Difficulty: input.Difficulty,
		Query:      input.Query,
		Sort:       input.Sort,
	}

	switch input.Featured {
	case "":
	case "true":
		v := true
		filter.Featured = &v
	case "false":
		v := false
		filter.Featured = &v
	default:
		return nil, domainerrors.Validationf("invalid featured value %q, want true or false", input.Featured)
	}

	if input.PageSize > 0 {
		filter.Limit = input.PageSize
		filter.Offset = (max(input.Page, 1) - 1) * input.PageSize
	}

	total, err := s.store.CountPrompts(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count prompts", "error", err)
		return nil, err
	}

	prompts, err := s.store.ListPrompts(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list prompts", "error", err)
		return nil, err
	}
	if prompts == nil {
		prompts = []*domain.Prompt{}
	}

	return &ListPromptsOutput{Body: ListPromptsResponse{
		Prompts: prompts,
		Total:   total,
	}}, nil
}

func (s *Server) handleCreatePrompt(ctx context.Context, input *CreatePromptInput) (*PromptOutput, error) {
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	promptID := input.Body.ID
	if promptID == "" {
		var err error
		if promptID, err = id.Generate(id.PrefixPrompt); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	p := &domain.Prompt{
		CreatedAt:   now,
		UpdatedAt:   now,
		ID:          promptID,
		Title:       input.Body.Title,
		Content:     input.Body.Content,
		Description: input.Body.Description,
		Category:    input.Body.Category,
		Author:      input.Body.Author,
		Difficulty:  input.Body.Difficulty,
		Tags:        input.Body.Tags,
		Featured:    input.Body.Featured,
	}

	if err := s.store.CreatePrompt(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("prompt created", "id", p.ID, "title", p.Title)
	return &PromptOutput{Body: p}, nil
}

func (s *Server) handleGetPrompt(ctx context.Context, input *GetPromptInput) (*PromptOutput, error) {
	p, err := s.store.GetPrompt(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PromptOutput{Body: p}, nil
}

func (s *Server) handleDeletePrompt(ctx context.Context, input *DeletePromptInput) (*MessageOutput, error) {
	if err := s.store.DeletePrompt(ctx, input.ID); err != nil {
		return nil, err
	}

	s.logger.Info("prompt deleted", "id", input.ID)
	return &MessageOutput{Body: MessageResponse{Message: "Prompt deleted"}}, nil
}

func (s *Server) handleRatePrompt(ctx context.Context, input *RatePromptInput) (*PromptOutput, error) {
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	p, err := s.store.ApplyRating(ctx, input.ID, input.Body.Stars)
	if err != nil {
		return nil, err
	}

	return &PromptOutput{Body: p}, nil
}
