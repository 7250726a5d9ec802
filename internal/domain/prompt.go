// Package domain contains the core business entities and domain logic for the PromptDeck prompt library.
package domain

import (
	"slices"
	"strings"
	"time"
)

// Difficulty levels conventionally used by prompts.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Prompt represents a shared prompt in the library.
type Prompt struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Author      string    `json:"author,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	Featured    bool      `json:"featured"`
}

// MatchesQuery reports whether the query occurs in the title or description.
// Matching is case-insensitive; an empty query matches everything.
func (p *Prompt) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// HasTag checks if a tag is attached to this prompt.
func (p *Prompt) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// ApplyRating folds one more star rating into the running average.
func (p *Prompt) ApplyRating(stars int) {
	total := p.Rating*float64(p.RatingCount) + float64(stars)
	p.RatingCount++
	p.Rating = total / float64(p.RatingCount)
}

// KnownDifficulty reports whether s is one of the conventional difficulty levels.
func KnownDifficulty(s string) bool {
	switch s {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
