package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollection_AddPrompt_Appends(t *testing.T) {
	col := &Collection{
		ID:        "col-1",
		Name:      "Code Helpers",
		PromptIDs: []string{"prm-1", "prm-2"},
	}

	added := col.AddPrompt("prm-3")

	assert.True(t, added)
	assert.Equal(t, []string{"prm-1", "prm-2", "prm-3"}, col.PromptIDs)
}

func TestCollection_AddPrompt_IgnoresDuplicates(t *testing.T) {
	col := &Collection{
		ID:        "col-1",
		Name:      "Code Helpers",
		PromptIDs: []string{"prm-1", "prm-2"},
	}

	added := col.AddPrompt("prm-1")

	assert.False(t, added)
	assert.Equal(t, []string{"prm-1", "prm-2"}, col.PromptIDs)
}

func TestCollection_AddPrompt_ToNilList(t *testing.T) {
	col := &Collection{ID: "col-1", Name: "Fresh"}

	added := col.AddPrompt("prm-1")

	assert.True(t, added)
	assert.Equal(t, []string{"prm-1"}, col.PromptIDs)
}

func TestCollection_RemovePrompt_Works(t *testing.T) {
	col := &Collection{
		ID:        "col-1",
		Name:      "Code Helpers",
		PromptIDs: []string{"prm-1", "prm-2", "prm-3"},
	}

	removed := col.RemovePrompt("prm-2")

	assert.True(t, removed)
	assert.Equal(t, []string{"prm-1", "prm-3"}, col.PromptIDs)
}

func TestCollection_RemovePrompt_AllOccurrences(t *testing.T) {
	// State written by older clients can contain duplicates.
	col := &Collection{
		ID:        "col-1",
		Name:      "Code Helpers",
		PromptIDs: []string{"prm-1", "prm-2", "prm-1", "prm-1"},
	}

	removed := col.RemovePrompt("prm-1")

	assert.True(t, removed)
	assert.Equal(t, []string{"prm-2"}, col.PromptIDs)
}

func TestCollection_RemovePrompt_HandlesNonExistentGracefully(t *testing.T) {
	col := &Collection{
		ID:        "col-1",
		Name:      "Code Helpers",
		PromptIDs: []string{"prm-1", "prm-2"},
	}

	removed := col.RemovePrompt("prm-nonexistent")

	assert.False(t, removed)
	assert.Equal(t, []string{"prm-1", "prm-2"}, col.PromptIDs)
}

func TestCollection_RemovePrompt_FromEmptyList(t *testing.T) {
	col := &Collection{ID: "col-1", Name: "Empty", PromptIDs: []string{}}

	removed := col.RemovePrompt("prm-1")

	assert.False(t, removed)
	assert.Empty(t, col.PromptIDs)
}

func TestCollection_ContainsPrompt(t *testing.T) {
	col := &Collection{
		ID:        "col-1",
		Name:      "Code Helpers",
		PromptIDs: []string{"prm-1", "prm-2"},
	}

	assert.True(t, col.ContainsPrompt("prm-1"))
	assert.True(t, col.ContainsPrompt("prm-2"))
	assert.False(t, col.ContainsPrompt("prm-3"))
}

func TestCollection_ContainsPrompt_NilList(t *testing.T) {
	col := &Collection{ID: "col-1", Name: "Fresh"}

	assert.False(t, col.ContainsPrompt("prm-1"))
}
