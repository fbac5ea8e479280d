package service

import (
	"strings"

	"museai_server/server/shadow/domain"
)

// curatedEntry pairs a fallback piece with the mission keywords that make it
// a better-than-default pick.
type curatedEntry struct {
	keywords []string
	item     domain.CuratedContent
}

// baseCurated is always included; it covers missions no keyword bucket hits.
var baseCurated = []domain.CuratedContent{
	{
		Type:            "quote",
		Content:         "The way to get started is to quit talking and begin doing.",
		Source:          "Walt Disney",
		Category:        "Action",
		RelevanceReason: "Emphasizes the importance of taking action toward your mission",
	},
	{
		Type:            "quote",
		Content:         "Success is not final, failure is not fatal: it is the courage to continue that counts.",
		Source:          "Winston Churchill",
		Category:        "Resilience",
		RelevanceReason: "Reminds us that persistence is key to achieving our mission",
	},
	{
		Type:            "quote",
		Content:         "The only way to do great work is to love what you do.",
		Source:          "Steve Jobs",
		Category:        "Passion",
		RelevanceReason: "Aligns passion with purpose in pursuit of your goals",
	},
	{
		Type:            "quote",
		Content:         "Innovation distinguishes between a leader and a follower.",
		Source:          "Steve Jobs",
		Category:        "Innovation",
		RelevanceReason: "Highlights the value of creative thinking and leadership",
	},
	{
		Type:            "quote",
		Content:         "Focus on being productive instead of busy.",
		Source:          "Tim Ferriss",
		Category:        "Productivity",
		RelevanceReason: "Helps maintain focus on what truly matters for your mission",
	},
}

var keywordCurated = []curatedEntry{
	{
		keywords: []string{"art", "creat", "design", "write", "music"},
		item: domain.CuratedContent{
			Type:            "quote",
			Content:         "Creativity takes courage.",
			Source:          "Henri Matisse",
			Category:        "Creativity",
			RelevanceReason: "Creative missions demand the courage to share unfinished work",
		},
	},
	{
		keywords: []string{"art", "creat", "design", "write", "music"},
		item: domain.CuratedContent{
			Type:            "quote",
			Content:         "Every artist was first an amateur.",
			Source:          "Ralph Waldo Emerson",
			Category:        "Creativity",
			RelevanceReason: "Mastery in creative work starts with permission to be a beginner",
		},
	},
	{
		keywords: []string{"lead", "team", "inspire", "manage"},
		item: domain.CuratedContent{
			Type:            "quote",
			Content:         "A leader is one who knows the way, goes the way, and shows the way.",
			Source:          "John C. Maxwell",
			Category:        "Leadership",
			RelevanceReason: "Leading others starts with modeling the path yourself",
		},
	},
	{
		keywords: []string{"found", "business", "product", "startup", "build"},
		item: domain.CuratedContent{
			Type:            "quote",
			Content:         "Make something people want.",
			Source:          "Paul Graham",
			Category:        "Building",
			RelevanceReason: "Keeps a builder's mission anchored on the people it serves",
		},
	},
	{
		keywords: []string{"learn", "teach", "grow", "student"},
		item: domain.CuratedContent{
			Type:            "quote",
			Content:         "Live as if you were to die tomorrow. Learn as if you were to live forever.",
			Source:          "Mahatma Gandhi",
			Category:        "Growth",
			RelevanceReason: "Frames learning as a lifelong part of the mission",
		},
	},
	{
		keywords: []string{"health", "fit", "run", "strength"},
		item: domain.CuratedContent{
			Type:            "quote",
			Content:         "Take care of your body. It's the only place you have to live.",
			Source:          "Jim Rohn",
			Category:        "Health",
			RelevanceReason: "A health mission compounds into everything else you pursue",
		},
	},
}

// fallbackContent selects curated pieces by keyword matching against the
// mission text. No model call is made.
func fallbackContent(mission string) ([]domain.CuratedContent, []string) {
	lower := strings.ToLower(mission)

	content := append([]domain.CuratedContent(nil), baseCurated...)
	for _, entry := range keywordCurated {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				content = append(content, entry.item)
				break
			}
		}
	}

	seen := map[string]struct{}{}
	var categories []string
	for _, c := range content {
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		categories = append(categories, c.Category)
	}
	return content, categories
}
