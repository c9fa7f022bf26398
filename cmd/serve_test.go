package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panorama-labs/survey-engine/internal/bank"
	"github.com/panorama-labs/survey-engine/internal/rules"
	"github.com/panorama-labs/survey-engine/internal/store"
	"github.com/panorama-labs/survey-engine/internal/survey"
	"github.com/panorama-labs/survey-engine/pkg/anthropic"
)

// failingLLM forces the generator down its fallback path so handler tests
// need no scripted model output.
type failingLLM struct{}

func (failingLLM) CreateMessage(context.Context, anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	return nil, assert.AnError
}

func newTestAPIServer(t *testing.T) *apiServer {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	gen := survey.NewGenerator(failingLLM{}, "claude-test", rules.Defaults(rules.PhasePlan), bank.All())
	return &apiServer{generator: gen, store: st}
}

func testRouter(api *apiServer) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/surveys/generate", api.handleGenerate)
	r.Get("/api/goals/{phase}", api.handleGoals)
	return r
}

func TestHandleGenerate(t *testing.T) {
	api := newTestAPIServer(t)
	router := testRouter(api)

	t.Run("falls back when the model is unavailable", func(t *testing.T) {
		body := `{"context":{"event_name":"Summer Fest","goals":{"must_have":["lineup_perception"]}}}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/surveys/generate", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"outcome":"fallback"`)
		assert.Contains(t, rec.Body.String(), "First Name")
	})

	t.Run("rejects empty context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/surveys/generate", strings.NewReader(`{"context":{}}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/surveys/generate", strings.NewReader(`{not json`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGoals(t *testing.T) {
	api := newTestAPIServer(t)
	router := testRouter(api)

	t.Run("known phase", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/goals/plan", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"templates"`)
	})

	t.Run("unknown phase", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/goals/retro", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
