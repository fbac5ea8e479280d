package service

import (
	"context"

	"museai_server/server/shadow/domain"
	"museai_server/server/shadow/llm"
)

type stubEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	return s.vec, s.err
}

type stubMatcher struct {
	items []domain.RetrievedItem
	err   error

	gotVector    []float32
	gotUserID    string
	gotThreshold float64
	gotLimit     int
}

func (s *stubMatcher) MatchItems(ctx context.Context, queryVector []float32, userID string, threshold float64, limit int) ([]domain.RetrievedItem, error) {
	s.gotVector = queryVector
	s.gotUserID = userID
	s.gotThreshold = threshold
	s.gotLimit = limit
	return s.items, s.err
}

type stubGenerator struct {
	out llm.Values
	err error

	predictCalls int
	cotCalls     int
	lastSig      llm.Signature
	lastIn       llm.Values
}

func (g *stubGenerator) Predict(ctx context.Context, sig llm.Signature, in llm.Values) (llm.Values, error) {
	g.predictCalls++
	g.lastSig = sig
	g.lastIn = in
	return g.out, g.err
}

func (g *stubGenerator) ChainOfThought(ctx context.Context, sig llm.Signature, in llm.Values) (llm.Values, error) {
	g.cotCalls++
	g.lastSig = sig
	g.lastIn = in
	return g.out, g.err
}

type stubTurnSaver struct {
	err error

	calls            int
	gotConversation  string
	gotUserMessage   string
	gotAssistantText string
}

func (s *stubTurnSaver) SaveTurn(ctx context.Context, conversationID, userMessage, assistantMessage string) error {
	s.calls++
	s.gotConversation = conversationID
	s.gotUserMessage = userMessage
	s.gotAssistantText = assistantMessage
	return s.err
}
