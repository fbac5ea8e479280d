package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"museai_server/server/common/log"
	"museai_server/server/common/transport/httpresp"
	"museai_server/server/shadow/domain"
	"museai_server/server/shadow/service"
)

type Handler struct {
	shadow     *service.ShadowService
	search     *service.SearchService
	onboarding *service.OnboardingService
}

func NewHandler(shadow *service.ShadowService, search *service.SearchService, onboarding *service.OnboardingService) *Handler {
	return &Handler{shadow: shadow, search: search, onboarding: onboarding}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, NewHealthResponse()) })

	api := r.Group("/api/v1")
	{
		api.POST("/shadow/chat", h.chat)
		api.POST("/shadow/search", h.searchItems)
		api.POST("/onboarding/mission/enhance", h.enhanceMission)
		api.POST("/onboarding/mission/craft", h.craftMission)
		api.POST("/onboarding/suggestions", h.suggestInterests)
		api.POST("/onboarding/content/curate", h.curateContent)
	}
}

func (h *Handler) chat(c *gin.Context) {
	var req struct {
		Context        domain.ShadowContext `json:"context"`
		UserMessage    string               `json:"user_message" binding:"required"`
		ConversationID string               `json:"conversation_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
		return
	}

	response, err := h.shadow.Chat(c.Request.Context(), req.Context, req.UserMessage, req.ConversationID)
	if err != nil {
		log.Errorf("shadow chat: %v", err)
		c.JSON(http.StatusInternalServerError, NewErrorResponse(httpresp.ErrAIService))
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Response: response})
}

func (h *Handler) searchItems(c *gin.Context) {
	var req struct {
		Query  string `json:"query" binding:"required"`
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
		return
	}

	answer, sources, err := h.search.Answer(c.Request.Context(), req.Query, req.UserID)
	if err != nil {
		log.Errorf("shadow search: %v", err)
		c.JSON(http.StatusInternalServerError, NewErrorResponse(httpresp.ErrAIService))
		return
	}
	c.JSON(http.StatusOK, SearchResponse{Answer: answer, Sources: sources})
}

func (h *Handler) enhanceMission(c *gin.Context) {
	var req struct {
		UserInput string `json:"user_input" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
		return
	}

	// Enhancement is best-effort: on any failure the caller gets their input
	// back unchanged instead of an error.
	mission, err := h.onboarding.EnhanceMission(c.Request.Context(), req.UserInput)
	if err != nil {
		log.Warnf("mission enhance unavailable, echoing input: %v", err)
		c.JSON(http.StatusOK, MissionResponse{Mission: req.UserInput, Enhanced: false})
		return
	}
	c.JSON(http.StatusOK, MissionResponse{Mission: mission, Enhanced: true})
}

func (h *Handler) craftMission(c *gin.Context) {
	var req struct {
		CurrentMission      string `json:"current_mission"`
		UserResponse        string `json:"user_response" binding:"required"`
		ConversationHistory string `json:"conversation_history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
		return
	}

	result, err := h.onboarding.CraftMission(c.Request.Context(), req.CurrentMission, req.UserResponse, req.ConversationHistory)
	if err != nil {
		log.Errorf("mission craft: %v", err)
		c.JSON(http.StatusInternalServerError, NewErrorResponse(httpresp.ErrAIService))
		return
	}
	c.JSON(http.StatusOK, MissionCraftResponse(result))
}

func (h *Handler) suggestInterests(c *gin.Context) {
	var req struct {
		Mission string `json:"mission"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
		return
	}
	if strings.TrimSpace(req.Mission) == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse("mission is required"))
		return
	}

	suggestions, err := h.onboarding.SuggestInterests(c.Request.Context(), req.Mission)
	if err != nil {
		log.Errorf("interest suggestions: %v", err)
		c.JSON(http.StatusInternalServerError, NewErrorResponse(httpresp.ErrAIService))
		return
	}
	c.JSON(http.StatusOK, SuggestionsResponse{Heroes: suggestions.Heroes, Interests: suggestions.Interests})
}

func (h *Handler) curateContent(c *gin.Context) {
	var req struct {
		Mission   string   `json:"mission" binding:"required"`
		Heroes    []string `json:"heroes"`
		Interests []string `json:"interests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
		return
	}

	content, categories, err := h.onboarding.CurateContent(c.Request.Context(), req.Mission, req.Heroes, req.Interests)
	if err != nil {
		log.Errorf("content curation: %v", err)
		c.JSON(http.StatusInternalServerError, NewErrorResponse(httpresp.ErrAIService))
		return
	}
	c.JSON(http.StatusOK, CurateResponse{Content: content, Categories: categories})
}
