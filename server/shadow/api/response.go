package api

import (
	"museai_server/server/common/transport/httpresp"
	"museai_server/server/shadow/domain"
	"museai_server/server/shadow/service"
)

const ServiceName = "museboard-ai"

type ErrorResponse = httpresp.ErrorResponse
type HealthResponse = httpresp.HealthResponse

type ChatResponse struct {
	Response string `json:"response"`
}

type SearchResponse struct {
	Answer  string                 `json:"answer"`
	Sources []domain.RetrievedItem `json:"sources"`
}

type MissionResponse struct {
	Mission  string `json:"mission"`
	Enhanced bool   `json:"enhanced"`
}

type MissionCraftResponse = service.MissionCraftResult

type SuggestionsResponse struct {
	Heroes    []domain.Hero     `json:"heroes"`
	Interests []domain.Interest `json:"interests"`
}

type CurateResponse struct {
	Content    []domain.CuratedContent `json:"content"`
	Categories []string                `json:"categories,omitempty"`
}

func NewErrorResponse(message string) ErrorResponse {
	return httpresp.NewErrorResponse(message)
}

func NewHealthResponse() HealthResponse {
	return httpresp.NewHealthResponse("ok", ServiceName)
}
