package catalog

import (
	"cmp"
	"slices"

	"github.com/promptdeckapp/promptdeck/internal/domain"
)

// SortRating sorts filtered prompts by rating, highest first.
const SortRating = "rating"

// Filter narrows a prompt listing. Zero-valued criteria are ignored; set
// criteria combine conjunctively.
type Filter struct {
	// Category matches the prompt category exactly.
	Category string
	// Difficulty matches the prompt difficulty exactly.
	Difficulty string
	// Query matches case-insensitively against title and description.
	Query string
	// Featured, when set, matches the featured flag exactly.
	Featured *bool
	// Sort orders the result; only SortRating is recognized.
	Sort string
}

// filterList applies f to prompts without mutating the input.
func filterList(prompts []*domain.Prompt, f Filter) []*domain.Prompt {
	result := make([]*domain.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && p.Difficulty != f.Difficulty {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if !p.MatchesQuery(f.Query) {
			continue
		}
		result = append(result, p)
	}

	if f.Sort == SortRating {
		slices.SortStableFunc(result, func(a, b *domain.Prompt) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	}

	return result
}
