package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"museai_server/server/common/log"
	"museai_server/server/shadow/domain"
	"museai_server/server/shadow/llm"
)

var enhanceMission = llm.Signature{
	Instruction: `You are Shadow, an AI muse for MuseboardLM. Your job is to take a user's raw input about their goals/dreams and craft it into a clear, inspiring mission statement.

Rules:
- Keep it under 20 words when possible
- Make it inspiring and personal
- Focus on the outcome/impact they want to create
- Use active language
- If their input is already clear, you can return it with minor refinements
- If it's vague, ask ONE clarifying question max and then enhance based on what they gave you

Examples:
Input: "Help solo founders succeed" -> Mission: "Help solo founders build profitable products"
Input: "I want to be a better leader" -> Mission: "Become a leader who inspires teams to achieve extraordinary results"
Input: "Create art" -> Mission: "Create meaningful art that moves people and sparks conversations"`,
	Inputs: []llm.Field{
		{Name: "user_input", Desc: "The user's raw input about their goals/mission"},
	},
	Outputs: []llm.Field{
		{Name: "mission", Desc: "A refined, inspiring mission statement under 20 words"},
	},
}

var craftMission = llm.Signature{
	Instruction: `You are Shadow, an AI muse companion helping users articulate their deepest life mission.
Your goal is to help them discover and refine what truly matters to them through thoughtful questions.

Guidelines:
- Ask thoughtful, deep questions that help uncover their core values and aspirations
- Be encouraging and supportive while pushing them to think deeper
- Help them move from vague to specific, from external to internal motivation
- When their mission feels complete and authentic, set mission_complete to "true"
- Keep responses conversational and warm, like a wise friend`,
	Inputs: []llm.Field{
		{Name: "current_mission", Desc: "The current state of the user's mission"},
		{Name: "user_response", Desc: "The user's latest response in the conversation"},
		{Name: "conversation_history", Desc: "Previous conversation context"},
	},
	Outputs: []llm.Field{
		{Name: "refined_mission", Desc: "Updated/refined version of their mission"},
		{Name: "next_question", Desc: "Next question to ask them"},
		{Name: "mission_complete", Desc: "'true' if mission is complete, 'false' if needs more work"},
	},
}

var suggestInterests = llm.Signature{
	Instruction: `Analyze the user's mission. Generate a list of 8-10 inspiring figures (heroes) and 5-6 broad interest categories relevant to this mission.

You MUST format your entire response as a single, valid JSON object, structured exactly like this:
{
  "heroes": [
    {"name": "Person Name", "reason": "A brief explanation of why they are relevant."}
  ],
  "interests": [
    {"category": "Category Name", "description": "A brief explanation of its relevance."}
  ]
}

Ensure the JSON is perfectly formed. Do not include any text, explanations, or markdown backticks outside of the JSON object itself.`,
	Inputs: []llm.Field{
		{Name: "mission_statement", Desc: "The user's refined mission statement"},
	},
	Outputs: []llm.Field{
		{Name: "suggestions_json", Desc: "A single, valid JSON object containing lists of suggested heroes and interests."},
	},
}

var curateContent = llm.Signature{
	Instruction: `Create 10-15 pieces of inspirational content that would perfectly fit the user's Museboard.
Include quotes, insights, principles, and actionable advice from their heroes or related to their interests.

Format as JSON:
{
  "content": [
    {
      "type": "quote",
      "content": "The actual quote or insight",
      "source": "Who said it or where it's from",
      "category": "Suggested category",
      "relevance_reason": "Why this matters for their mission"
    }
  ],
  "categories": ["List of suggested categories for organization"]
}

Make these deeply relevant and inspirational - content they'd genuinely want to remember and revisit.`,
	Inputs: []llm.Field{
		{Name: "mission", Desc: "User's mission statement"},
		{Name: "heroes", Desc: "List of their selected heroes"},
		{Name: "interests", Desc: "List of their selected interests"},
	},
	Outputs: []llm.Field{
		{Name: "content_json", Desc: "JSON object with curated content pieces and suggested categories"},
	},
}

// MissionCraftResult is one step of the conversational mission refinement.
type MissionCraftResult struct {
	RefinedMission  string `json:"refined_mission"`
	NextQuestion    string `json:"next_question"`
	MissionComplete bool   `json:"mission_complete"`
}

// OnboardingService holds the single-shot prompt-and-parse flows: mission
// enhancement and crafting, interest suggestion, content curation.
type OnboardingService struct {
	generator llm.Generator
}

func NewOnboardingService(generator llm.Generator) *OnboardingService {
	return &OnboardingService{generator: generator}
}

// EnhanceMission refines raw input into a concise mission statement. Any
// failure propagates; the serving layer echoes the original input instead of
// erroring the caller.
func (s *OnboardingService) EnhanceMission(ctx context.Context, userInput string) (string, error) {
	out, err := s.generator.ChainOfThought(ctx, enhanceMission, llm.Values{
		"user_input": userInput,
	})
	if err != nil {
		return "", fmt.Errorf("enhance mission: %w", err)
	}
	mission := strings.TrimSpace(out["mission"])
	if mission == "" {
		mission = userInput
	}
	return mission, nil
}

// CraftMission runs one turn of the guided mission conversation.
func (s *OnboardingService) CraftMission(ctx context.Context, currentMission, userResponse, conversationHistory string) (MissionCraftResult, error) {
	if currentMission == "" {
		currentMission = "Not yet defined"
	}
	out, err := s.generator.ChainOfThought(ctx, craftMission, llm.Values{
		"current_mission":      currentMission,
		"user_response":        userResponse,
		"conversation_history": conversationHistory,
	})
	if err != nil {
		return MissionCraftResult{}, fmt.Errorf("craft mission: %w", err)
	}
	return MissionCraftResult{
		RefinedMission:  out["refined_mission"],
		NextQuestion:    out["next_question"],
		MissionComplete: strings.EqualFold(strings.TrimSpace(out["mission_complete"]), "true"),
	}, nil
}

// SuggestInterests asks for heroes and interest categories as strict JSON.
// Reasoning text would contaminate the parse, so this is a direct Predict.
// A violation of the format contract is treated as an upstream fault, not
// retried or repaired.
func (s *OnboardingService) SuggestInterests(ctx context.Context, mission string) (domain.InterestSuggestions, error) {
	out, err := s.generator.Predict(ctx, suggestInterests, llm.Values{
		"mission_statement": mission,
	})
	if err != nil {
		return domain.InterestSuggestions{}, fmt.Errorf("suggest interests: %w", err)
	}

	var suggestions domain.InterestSuggestions
	if err := json.Unmarshal([]byte(out["suggestions_json"]), &suggestions); err != nil {
		log.Errorf("suggestions JSON decode failed: %v", err)
		return domain.InterestSuggestions{}, fmt.Errorf("%w: decode suggestions json: %v", domain.ErrMalformedOutput, err)
	}
	return suggestions, nil
}

// CurateContent asks the model for museboard seed content; on upstream or
// parse failure it degrades to the static curated set matched against the
// mission text.
func (s *OnboardingService) CurateContent(ctx context.Context, mission string, heroes, interests []string) ([]domain.CuratedContent, []string, error) {
	out, err := s.generator.ChainOfThought(ctx, curateContent, llm.Values{
		"mission":   mission,
		"heroes":    strings.Join(heroes, ", "),
		"interests": strings.Join(interests, ", "),
	})
	if err != nil {
		log.Warnf("content curation unavailable, using fallback: %v", err)
		content, categories := fallbackContent(mission)
		return content, categories, nil
	}

	var parsed struct {
		Content    []domain.CuratedContent `json:"content"`
		Categories []string                `json:"categories"`
	}
	if err := json.Unmarshal([]byte(out["content_json"]), &parsed); err != nil || len(parsed.Content) == 0 {
		log.Warnf("content curation JSON decode failed, using fallback: %v", err)
		content, categories := fallbackContent(mission)
		return content, categories, nil
	}
	return parsed.Content, parsed.Categories, nil
}
