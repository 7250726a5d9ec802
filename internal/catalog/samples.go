package catalog

import (
	"time"

	"github.com/promptdeckapp/promptdeck/internal/domain"
)

// SamplePrompts returns the built-in sample set used when the listing cannot
// be fetched. The same set seeds a fresh server, so an offline client and a
// freshly seeded server agree on what exists.
//
// Returns fresh copies; callers may mutate the results freely.
func SamplePrompts() []*domain.Prompt {
	created := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	return []*domain.Prompt{
		{
			ID:          "prm-code-review",
			Title:       "AI Code Review Assistant",
			Content:     "You are a senior engineer reviewing a pull request. Examine the diff below for correctness, readability, and hidden failure modes. For each finding, cite the line, explain the risk, and suggest a concrete fix. Close with a short summary ranking the findings by severity.\n\n{{diff}}",
			Description: "Thorough, severity-ranked review of pull requests with concrete fixes",
			Category:    "development",
			Author:      "PromptDeck Team",
			Difficulty:  domain.DifficultyIntermediate,
			Tags:        []string{"code-review", "engineering"},
			Rating:      4.8,
			RatingCount: 127,
			Featured:    true,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "prm-story-starter",
			Title:       "Short Story Starter",
			Content:     "Write the opening scene of a short story. Setting: {{setting}}. Protagonist: {{protagonist}}. Establish tone and stakes within 300 words, end on a hook, and avoid naming the central conflict outright.",
			Description: "Opening scenes with tone, stakes, and a hook in under 300 words",
			Category:    "writing",
			Author:      "PromptDeck Team",
			Difficulty:  domain.DifficultyBeginner,
			Tags:        []string{"fiction", "creative"},
			Rating:      4.6,
			RatingCount: 89,
			Featured:    true,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "prm-campaign-brief",
			Title:       "Product Launch Campaign Brief",
			Content:     "Draft a launch campaign brief for {{product}}. Cover: target audience and the single insight that moves them, positioning statement, three channel ideas with expected reach, one measurable success criterion per channel, and the biggest risk to the launch narrative.",
			Description: "Structured campaign briefs from audience insight to measurable goals",
			Category:    "marketing",
			Author:      "PromptDeck Team",
			Difficulty:  domain.DifficultyIntermediate,
			Tags:        []string{"launch", "strategy"},
			Rating:      4.3,
			RatingCount: 54,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "prm-data-explorer",
			Title:       "Exploratory Data Analysis Guide",
			Content:     "Act as a data analyst handed the dataset described below. Propose an exploration plan: distributions to inspect, relationships worth testing, and data quality checks to run first. For each step, state what finding would change the analysis direction.\n\n{{dataset_description}}",
			Description: "Step-by-step exploration plans with decision points for any dataset",
			Category:    "analysis",
			Author:      "PromptDeck Team",
			Difficulty:  domain.DifficultyAdvanced,
			Tags:        []string{"data", "statistics"},
			Rating:      4.7,
			RatingCount: 73,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "prm-study-coach",
			Title:       "Socratic Study Coach",
			Content:     "You are a tutor who never gives the answer directly. I am studying {{topic}}. Ask me one question at a time, chosen to expose gaps in my understanding. After each of my answers, correct misconceptions briefly, then go one level deeper.",
			Description: "One-question-at-a-time tutoring that adapts to your answers",
			Category:    "education",
			Author:      "PromptDeck Team",
			Difficulty:  domain.DifficultyBeginner,
			Tags:        []string{"learning", "tutoring"},
			Rating:      4.1,
			RatingCount: 38,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}
}
