package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// AIMessage is one persisted turn of a Shadow conversation.
type AIMessage struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id"`
	Role           Role           `json:"role"`
	Content        string         `json:"content"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// MuseItem is a saved museboard entry. Embeddings are written by the offline
// backfill, never by request handling.
type MuseItem struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Content      string    `json:"content"`
	ContentType  string    `json:"content_type"`
	Description  string    `json:"description,omitempty"`
	AICategories []string  `json:"ai_categories,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ShadowContext is supplied wholesale by the caller on every chat request.
// The service never loads any of it on its own. Field names keep the caller's
// camelCase wire format.
type ShadowContext struct {
	Mission             string      `json:"mission"`
	RecentItems         []MuseItem  `json:"recentItems"`
	TotalItems          int         `json:"totalItems"`
	TopCategories       []string    `json:"topCategories"`
	ConversationHistory []AIMessage `json:"conversationHistory"`
}

// RetrievedItem is a similarity-search hit, ordered by descending similarity.
type RetrievedItem struct {
	MuseItem
	Similarity float64 `json:"similarity"`
}

type Hero struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type Interest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// InterestSuggestions is the strict JSON contract the suggestion prompt asks
// the model to honor.
type InterestSuggestions struct {
	Heroes    []Hero     `json:"heroes"`
	Interests []Interest `json:"interests"`
}

type CuratedContent struct {
	Type            string `json:"type"`
	Content         string `json:"content"`
	Source          string `json:"source"`
	Category        string `json:"category"`
	RelevanceReason string `json:"relevance_reason"`
}
