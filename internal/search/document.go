// Package search provides full-text prompt search using Bleve, with fuzzy
// matching, prefix completion and faceted filtering on category, difficulty
// and tags.
package search

import (
	"github.com/promptdeckapp/promptdeck/internal/domain"
)

// SearchDocument is the document structure stored in the Bleve index, a
// flattened projection of domain.Prompt.
type SearchDocument struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content,omitempty"`
	Category    string   `json:"category,omitempty"`
	Author      string   `json:"author,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Rating      float64  `json:"rating"`
	Featured    bool     `json:"featured"`

	// Unix millis, for sorting by recency.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve maps struct fields by their Go names, but the index mapping uses
// lowercase names, so the conversion is explicit.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"rating":     d.Rating,
		"featured":   d.Featured,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Content != "" {
		m["content"] = d.Content
	}
	if d.Category != "" {
		m["category"] = d.Category
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.Difficulty != "" {
		m["difficulty"] = d.Difficulty
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}

	return m
}

// PromptToSearchDocument converts a domain Prompt to a SearchDocument.
func PromptToSearchDocument(p *domain.Prompt) *SearchDocument {
	return &SearchDocument{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
		Category:    p.Category,
		Author:      p.Author,
		Difficulty:  p.Difficulty,
		Tags:        p.Tags,
		Rating:      p.Rating,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt.UnixMilli(),
		UpdatedAt:   p.UpdatedAt.UnixMilli(),
	}
}
