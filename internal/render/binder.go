package render

import (
	"log/slog"
	"strconv"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	"github.com/promptdeckapp/promptdeck/internal/library"
)

// Ids, classes and attributes the binder targets on its surface. Embedding
// markup and stylesheets address cards through these.
const (
	// GridID identifies the listing container.
	GridID = "prompt-grid"
	// FavoritesCountID identifies the favorites counter display.
	FavoritesCountID = "favorites-count"
	// ToggleClass marks favorite-toggle controls.
	ToggleClass = "favorite-btn"
	// FavoritedClass marks a toggle whose prompt is currently favorited.
	FavoritedClass = "favorited"
	// CardClass marks a rendered prompt card.
	CardClass = "prompt-card"
	// NoResultsClass marks the empty-listing placeholder.
	NoResultsClass = "no-results"
	// PromptIDAttr carries the prompt identifier on a toggle.
	PromptIDAttr = "data-prompt-id"
)

// Binder keeps a surface in sync with the prompt library.
type Binder struct {
	surface Surface
	library *library.Library
	logger  *slog.Logger
}

// NewBinder returns a binder drawing on surface from lib. logger may be nil.
func NewBinder(surface Surface, lib *library.Library, logger *slog.Logger) *Binder {
	return &Binder{surface: surface, library: lib, logger: logger}
}

// PromptCard builds a card element for p: title, optional description, star
// rating and a favorite toggle reflecting the library's current state. A nil
// prompt yields a placeholder card.
func (b *Binder) PromptCard(p *domain.Prompt) Element {
	card := b.surface.NewElement("article")
	card.ToggleClass(CardClass, true)

	title := b.surface.NewElement("h3")
	if p == nil {
		title.SetText("Untitled prompt")
		card.Append(title)
		return card
	}
	title.SetText(p.Title)
	card.Append(title)

	if p.Description != "" {
		desc := b.surface.NewElement("p")
		desc.SetText(p.Description)
		card.Append(desc)
	}

	stars := b.surface.NewElement("span")
	stars.ToggleClass("stars", true)
	stars.SetText(GenerateStars(p.Rating))
	card.Append(stars)

	toggle := b.surface.NewElement("button")
	toggle.ToggleClass(ToggleClass, true)
	toggle.SetAttr(PromptIDAttr, p.ID)
	b.applyFavoriteState(toggle, b.library.IsFavorited(p.ID))
	card.Append(toggle)

	return card
}

// RenderPrompts clears the listing container and draws one card per prompt.
// A missing container makes the call a no-op. An empty listing renders a
// single placeholder instead.
func (b *Binder) RenderPrompts(prompts []*domain.Prompt) {
	grid, ok := b.surface.ElementByID(GridID)
	if !ok {
		if b.logger != nil {
			b.logger.Debug("prompt grid not on surface, skipping render")
		}
		return
	}
	grid.Clear()

	if len(prompts) == 0 {
		placeholder := b.surface.NewElement("div")
		placeholder.ToggleClass(NoResultsClass, true)
		heading := b.surface.NewElement("h3")
		heading.SetText("No prompts found")
		placeholder.Append(heading)
		grid.Append(placeholder)
		return
	}

	for _, p := range prompts {
		grid.Append(b.PromptCard(p))
	}
	if b.logger != nil {
		b.logger.Debug("prompts rendered", "count", len(prompts))
	}
}

// UpdateFavoritesCount writes the current favorites count into the counter
// display. A missing display makes the call a no-op.
func (b *Binder) UpdateFavoritesCount() {
	display, ok := b.surface.ElementByID(FavoritesCountID)
	if !ok {
		return
	}
	display.SetText(strconv.Itoa(b.library.FavoritesCount()))
}

// UpdateFavoriteButtons syncs every toggle's visual state with the library.
func (b *Binder) UpdateFavoriteButtons() {
	for _, toggle := range b.surface.FavoriteToggles() {
		id := toggle.Attr(PromptIDAttr)
		if id == "" {
			continue
		}
		b.applyFavoriteState(toggle, b.library.IsFavorited(id))
	}
}

// ToggleFavorite flips membership for promptID and synchronously refreshes
// the toggles and the counter, mirroring a click on a favorite control.
func (b *Binder) ToggleFavorite(promptID string) {
	if promptID == "" {
		return
	}
	if b.library.IsFavorited(promptID) {
		b.library.RemoveFromFavorites(promptID)
	} else {
		b.library.AddToFavorites(promptID)
	}
	b.UpdateFavoriteButtons()
	b.UpdateFavoritesCount()
}

func (b *Binder) applyFavoriteState(toggle Element, favorited bool) {
	toggle.ToggleClass(FavoritedClass, favorited)
	if favorited {
		toggle.SetText("★ Favorited")
	} else {
		toggle.SetText("☆ Favorite")
	}
}
