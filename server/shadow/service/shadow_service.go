package service

import (
	"context"
	"fmt"
	"strings"

	"museai_server/server/common/log"
	"museai_server/server/shadow/domain"
	"museai_server/server/shadow/llm"
)

var generateShadowResponse = llm.Signature{
	Instruction: "Act as Shadow, an AI thinking partner. Your tone must be deterministic, focused, and precise. " +
		"Avoid conversational fillers or speculation. Provide direct, actionable insights.\n\n" +
		"Given the user's mission, their recent activity, and their latest message, generate a helpful response.",
	Inputs: []llm.Field{
		{Name: "mission", Desc: "The user's overarching personal mission statement."},
		{Name: "context", Desc: "A summary of the user's recent Museboard items and conversation history."},
		{Name: "question", Desc: "The user's most recent message to Shadow."},
	},
	Outputs: []llm.Field{
		{Name: "response", Desc: "A concise and focused response from Shadow that is directly helpful."},
	},
}

// TurnSaver persists one user/assistant exchange.
type TurnSaver interface {
	SaveTurn(ctx context.Context, conversationID, userMessage, assistantMessage string) error
}

// ShadowService runs the stateless chat flow: one generation call per
// invocation over caller-supplied context, then a best-effort write of the
// turn pair. A write failure is logged and swallowed; the reply still goes
// back to the caller.
type ShadowService struct {
	generator llm.Generator
	messages  TurnSaver
	persist   bool
}

func NewShadowService(generator llm.Generator, messages TurnSaver, persist bool) *ShadowService {
	return &ShadowService{generator: generator, messages: messages, persist: persist}
}

func (s *ShadowService) Chat(ctx context.Context, userContext domain.ShadowContext, userMessage, conversationID string) (string, error) {
	historySummary := renderHistory(userContext.ConversationHistory)
	itemsSummary := fmt.Sprintf("User has %d items. Recent themes: %s",
		userContext.TotalItems, strings.Join(userContext.TopCategories, ", "))

	out, err := s.generator.ChainOfThought(ctx, generateShadowResponse, llm.Values{
		"mission":  userContext.Mission,
		"context":  fmt.Sprintf("CONVERSATION HISTORY:\n%s\n\nMUSEBOARD SUMMARY:\n%s", historySummary, itemsSummary),
		"question": userMessage,
	})
	if err != nil {
		return "", fmt.Errorf("generate shadow response: %w", err)
	}
	response := out["response"]

	if s.persist && s.messages != nil {
		if err := s.messages.SaveTurn(ctx, conversationID, userMessage, response); err != nil {
			log.Errorf("save conversation turn %s: %v", conversationID, err)
		}
	}
	return response, nil
}

func renderHistory(history []domain.AIMessage) string {
	lines := make([]string, len(history))
	for i, msg := range history {
		lines[i] = fmt.Sprintf("%s: %s", msg.Role, msg.Content)
	}
	return strings.Join(lines, "\n")
}
