package domain

import (
	"slices"
	"time"
)

// Collection represents a user-curated list of prompts.
// Collections are personal - each belongs to one user, who organizes prompts
// by theme, workflow, or any other personal categorization. The JSON shape
// doubles as the locally persisted format, so field names are part of the
// client state contract.
type Collection struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PromptIDs   []string  `json:"prompts"`
}

// AddPrompt adds a prompt ID to the collection if not already present.
func (c *Collection) AddPrompt(promptID string) bool {
	if slices.Contains(c.PromptIDs, promptID) {
		return false // Already present
	}
	c.PromptIDs = append(c.PromptIDs, promptID)
	return true
}

// RemovePrompt removes every occurrence of a prompt ID from the collection.
// Duplicates can exist in state written by older clients that did not
// deduplicate on add. Returns false if the prompt was not present.
func (c *Collection) RemovePrompt(promptID string) bool {
	before := len(c.PromptIDs)
	c.PromptIDs = slices.DeleteFunc(c.PromptIDs, func(id string) bool {
		return id == promptID
	})
	return len(c.PromptIDs) != before
}

// ContainsPrompt checks if a prompt ID is in this collection.
func (c *Collection) ContainsPrompt(promptID string) bool {
	return slices.Contains(c.PromptIDs, promptID)
}
