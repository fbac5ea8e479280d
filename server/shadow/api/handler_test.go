package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museai_server/server/shadow/domain"
	"museai_server/server/shadow/llm"
	"museai_server/server/shadow/service"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vec, f.err
}

type fakeMatcher struct {
	items []domain.RetrievedItem
	err   error
}

func (f *fakeMatcher) MatchItems(ctx context.Context, queryVector []float32, userID string, threshold float64, limit int) ([]domain.RetrievedItem, error) {
	return f.items, f.err
}

type fakeGenerator struct {
	out llm.Values
	err error
}

func (f *fakeGenerator) Predict(ctx context.Context, sig llm.Signature, in llm.Values) (llm.Values, error) {
	return f.out, f.err
}

func (f *fakeGenerator) ChainOfThought(ctx context.Context, sig llm.Signature, in llm.Values) (llm.Values, error) {
	return f.out, f.err
}

func newTestRouter(generator llm.Generator, embedder llm.Embedder, matcher service.ItemMatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)

	shadowSvc := service.NewShadowService(generator, nil, false)
	searchSvc := service.NewSearchService(embedder, generator, matcher, 0.70, 5, 500)
	onboardingSvc := service.NewOnboardingService(generator)

	r := gin.New()
	NewHandler(shadowSvc, searchSvc, onboardingSvc).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "museboard-ai", resp.Service)
}

func TestSearch_ReturnsOrderedSources(t *testing.T) {
	matcher := &fakeMatcher{items: []domain.RetrievedItem{
		{MuseItem: domain.MuseItem{ID: "i1", Content: "keep moving", ContentType: "text"}, Similarity: 0.82},
		{MuseItem: domain.MuseItem{ID: "i2", Content: "start small", ContentType: "text"}, Similarity: 0.75},
	}}
	generator := &fakeGenerator{out: llm.Values{"answer": "stay in motion"}}
	r := newTestRouter(generator, &fakeEmbedder{vec: []float32{0.1}}, matcher)

	w := doJSON(t, r, http.MethodPost, "/api/v1/shadow/search", map[string]string{
		"query": "motivation", "user_id": "u1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "stay in motion", resp.Answer)
	require.Len(t, resp.Sources, 2)
	assert.Equal(t, "i1", resp.Sources[0].ID)
	assert.InDelta(t, 0.82, resp.Sources[0].Similarity, 1e-9)
	assert.Equal(t, "i2", resp.Sources[1].ID)
}

func TestSearch_NoMatchesReturnsEmptySourceList(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, &fakeEmbedder{vec: []float32{0.1}}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/shadow/search", map[string]string{
		"query": "anything", "user_id": "u1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.NoMatchAnswer, resp.Answer)
	assert.NotNil(t, resp.Sources)
	assert.Empty(t, resp.Sources)
}

func TestSearch_MissingFieldsRejectedBeforeExternalCalls(t *testing.T) {
	embedder := &fakeEmbedder{err: domain.ErrUpstream}
	r := newTestRouter(&fakeGenerator{}, embedder, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/shadow/search", map[string]string{"query": "q"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch_UpstreamFailureIsGeneric500(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, &fakeEmbedder{err: domain.ErrUpstream}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/shadow/search", map[string]string{
		"query": "q", "user_id": "u1",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "An error occurred in the AI service.", resp.Error)
}

func TestChat_ReturnsResponse(t *testing.T) {
	generator := &fakeGenerator{out: llm.Values{"response": "hello from shadow"}}
	r := newTestRouter(generator, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/shadow/chat", map[string]any{
		"context": map[string]any{
			"mission":             "Create art",
			"recentItems":         []any{},
			"totalItems":          0,
			"topCategories":       []string{},
			"conversationHistory": []any{},
		},
		"user_message":    "hi",
		"conversation_id": "conv-1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hello from shadow", resp.Response)
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/shadow/chat", map[string]any{
		"context":         map[string]any{},
		"user_message":    "",
		"conversation_id": "conv-1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissionEnhance_Success(t *testing.T) {
	generator := &fakeGenerator{out: llm.Values{"mission": "Create meaningful art that moves people"}}
	r := newTestRouter(generator, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/onboarding/mission/enhance", map[string]string{
		"user_input": "Create art",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp MissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Create meaningful art that moves people", resp.Mission)
	assert.True(t, resp.Enhanced)
}

func TestMissionEnhance_FallsBackToInputOnFailure(t *testing.T) {
	r := newTestRouter(&fakeGenerator{err: domain.ErrUpstream}, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/onboarding/mission/enhance", map[string]string{
		"user_input": "Create art",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp MissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Create art", resp.Mission)
	assert.False(t, resp.Enhanced)
}

func TestSuggestions_BlankMissionRejected(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/onboarding/suggestions", map[string]string{
		"mission": "   ",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestions_MalformedModelJSONIs500(t *testing.T) {
	generator := &fakeGenerator{out: llm.Values{"suggestions_json": "{not json"}}
	r := newTestRouter(generator, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/onboarding/suggestions", map[string]string{
		"mission": "Create art",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "An error occurred in the AI service.", resp.Error)
}

func TestSuggestions_ValidJSONPassedThrough(t *testing.T) {
	generator := &fakeGenerator{out: llm.Values{
		"suggestions_json": `{"heroes":[{"name":"Maya Angelou","reason":"Voice."}],"interests":[{"category":"Writing","description":"Craft."}]}`,
	}}
	r := newTestRouter(generator, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/onboarding/suggestions", map[string]string{
		"mission": "Write stories that matter",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp SuggestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Heroes, 1)
	assert.Equal(t, "Maya Angelou", resp.Heroes[0].Name)
	require.Len(t, resp.Interests, 1)
	assert.Equal(t, "Writing", resp.Interests[0].Category)
}

func TestCurate_FallsBackWhenModelUnavailable(t *testing.T) {
	r := newTestRouter(&fakeGenerator{err: domain.ErrUpstream}, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/onboarding/content/curate", map[string]any{
		"mission": "Lead teams well",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp CurateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Content)
	assert.NotEmpty(t, resp.Categories)
}

func TestCraftMission_ReturnsThreeFields(t *testing.T) {
	generator := &fakeGenerator{out: llm.Values{
		"refined_mission":  "Mentor new engineers",
		"next_question":    "What pulled you toward mentoring?",
		"mission_complete": "false",
	}}
	r := newTestRouter(generator, &fakeEmbedder{}, &fakeMatcher{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/onboarding/mission/craft", map[string]string{
		"user_response": "I like helping juniors",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp MissionCraftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Mentor new engineers", resp.RefinedMission)
	assert.False(t, resp.MissionComplete)
}
