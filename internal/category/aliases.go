package category

// CanonicalAliases maps common label variations to canonical slugs.
// Keys are already-slugified forms of labels seen in imported prompt sets.
var CanonicalAliases = map[string]string{
	// Development variations
	"dev":                  "development",
	"coding":               "development",
	"programming":          "development",
	"software-engineering": "development",
	"code":                 "development",

	// Writing variations
	"creative-writing": "writing",
	"copywriting":      "writing",
	"content-writing":  "writing",
	"storytelling":     "writing",

	// Marketing variations
	"growth":       "marketing",
	"social-media": "marketing",
	"seo":          "marketing",
	"advertising":  "marketing",

	// Analysis variations
	"data-analysis": "analysis",
	"data-science":  "analysis",
	"analytics":     "analysis",
	"statistics":    "analysis",

	// Education variations
	"learning": "education",
	"teaching": "education",
	"tutoring": "education",
	"study":    "education",

	// Productivity variations
	"planning":        "productivity",
	"time-management": "productivity",
	"organization":    "productivity",

	// Design variations
	"ux": "design",
	"ui": "design",

	// Research variations
	"summarization":    "research",
	"literature-review": "research",
}
