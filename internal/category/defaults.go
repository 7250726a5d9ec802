package category

// Seed defines a category for seeding the default taxonomy.
type Seed struct {
	Name        string
	Slug        string
	Description string
}

// DefaultCategories is the default category set.
// Users can extend this after initial setup.
var DefaultCategories = []Seed{
	{
		Name:        "Development",
		Slug:        "development",
		Description: "Code review, debugging, architecture, and engineering workflows",
	},
	{
		Name:        "Writing",
		Slug:        "writing",
		Description: "Creative writing, copy, and editorial assistance",
	},
	{
		Name:        "Marketing",
		Slug:        "marketing",
		Description: "Campaigns, positioning, and audience growth",
	},
	{
		Name:        "Analysis",
		Slug:        "analysis",
		Description: "Data exploration, statistics, and insight generation",
	},
	{
		Name:        "Education",
		Slug:        "education",
		Description: "Lesson plans, explanations, and study aids",
	},
	{
		Name:        "Productivity",
		Slug:        "productivity",
		Description: "Planning, prioritization, and personal workflows",
	},
	{
		Name:        "Design",
		Slug:        "design",
		Description: "UX critique, visual direction, and design systems",
	},
	{
		Name:        "Research",
		Slug:        "research",
		Description: "Source gathering, summarization, and synthesis",
	},
}

// IsKnown reports whether slug names a default category.
func IsKnown(slug string) bool {
	for _, c := range DefaultCategories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}
