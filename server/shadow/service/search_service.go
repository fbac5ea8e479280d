package service

import (
	"context"
	"fmt"
	"strings"

	"museai_server/server/common/log"
	"museai_server/server/shadow/domain"
	"museai_server/server/shadow/llm"
)

const (
	// NoMatchAnswer is returned, with no generation call, when nothing in the
	// caller's museboard clears the similarity threshold.
	NoMatchAnswer = "I couldn't find any relevant items in your Museboard for that query."

	contextSeparator = "\n\n---\n\n"
)

var generateAnswer = llm.Signature{
	Instruction: "Answer the user's question based *only* on the provided context from their Museboard. " +
		"Synthesize the information from the context into a cohesive answer.",
	Inputs: []llm.Field{
		{Name: "context", Desc: "Relevant items from the user's Museboard."},
		{Name: "question", Desc: "The user's original question."},
	},
	Outputs: []llm.Field{
		{Name: "answer", Desc: "A comprehensive answer synthesized from the context."},
	},
}

// ItemMatcher is the retrieval seam; the store applies the owner filter and
// threshold itself and returns hits ordered by descending similarity.
type ItemMatcher interface {
	MatchItems(ctx context.Context, queryVector []float32, userID string, threshold float64, limit int) ([]domain.RetrievedItem, error)
}

// SearchService answers free-text questions over a user's saved items:
// embed the question, retrieve similar items, fold them into a generation
// prompt. Steps are strictly sequential; each depends on the previous output.
type SearchService struct {
	embedder  llm.Embedder
	generator llm.Generator
	items     ItemMatcher

	threshold  float64
	matchCount int
	charBudget int
}

func NewSearchService(embedder llm.Embedder, generator llm.Generator, items ItemMatcher, threshold float64, matchCount, charBudget int) *SearchService {
	return &SearchService{
		embedder:   embedder,
		generator:  generator,
		items:      items,
		threshold:  threshold,
		matchCount: matchCount,
		charBudget: charBudget,
	}
}

// Answer returns the synthesized answer plus the original, untruncated
// retrieved records so the caller can display full sources even though the
// model saw truncated versions.
func (s *SearchService) Answer(ctx context.Context, query, userID string) (string, []domain.RetrievedItem, error) {
	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("embed query: %w", err)
	}

	retrieved, err := s.items.MatchItems(ctx, queryVector, userID, s.threshold, s.matchCount)
	if err != nil {
		return "", nil, fmt.Errorf("retrieve items: %w", err)
	}
	if len(retrieved) == 0 {
		log.Infof("search: no items above threshold %.2f for user %s", s.threshold, userID)
		return NoMatchAnswer, []domain.RetrievedItem{}, nil
	}

	out, err := s.generator.ChainOfThought(ctx, generateAnswer, llm.Values{
		"context":  s.renderContext(retrieved),
		"question": query,
	})
	if err != nil {
		return "", nil, fmt.Errorf("generate answer: %w", err)
	}
	return out["answer"], retrieved, nil
}

// renderContext formats each hit into a bounded block so prompt size stays
// predictable regardless of item length.
func (s *SearchService) renderContext(items []domain.RetrievedItem) string {
	blocks := make([]string, len(items))
	for i, it := range items {
		desc := it.Description
		if desc == "" {
			desc = "N/A"
		}
		blocks[i] = fmt.Sprintf("Type: %s\nContent: %s\nDescription: %s",
			it.ContentType, truncate(it.Content, s.charBudget), desc)
	}
	return strings.Join(blocks, contextSeparator)
}

func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit]
}
