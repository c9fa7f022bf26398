package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/panorama-labs/survey-engine/internal/cache"
	"github.com/panorama-labs/survey-engine/internal/merge"
	"github.com/panorama-labs/survey-engine/internal/model"
	"github.com/panorama-labs/survey-engine/internal/rules"
	"github.com/panorama-labs/survey-engine/internal/store"
	"github.com/panorama-labs/survey-engine/internal/strategy"
	"github.com/panorama-labs/survey-engine/internal/survey"
	"github.com/panorama-labs/survey-engine/internal/universal"
)

var servePort int

// shutdownGrace bounds how long in-flight requests may drain after a
// termination signal.
const shutdownGrace = 15 * time.Second

// apiServer holds the long-lived pipeline components behind the HTTP API.
type apiServer struct {
	generator  *survey.Generator
	extraction *merge.Service
	store      store.Store
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the survey generation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		gen, err := initGenerator()
		if err != nil {
			return err
		}
		svc, err := initExtraction(cache.NewMemory())
		if err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		api := &apiServer{generator: gen, extraction: svc, store: st}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Post("/api/surveys/generate", api.handleGenerate)
		r.Post("/api/events/extract", api.handleExtract)
		r.Get("/api/goals/{phase}", api.handleGoals)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go shutdownOnSignal(ctx, srv)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// shutdownOnSignal blocks until ctx is canceled, then drains the server.
// The signal context is already canceled at that point, so in-flight
// requests get their own drain window.
func shutdownOnSignal(ctx context.Context, srv *http.Server) {
	<-ctx.Done()
	zap.L().Info("shutting down server")
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

type generateRequest struct {
	Context   model.SurveyContext `json:"context"`
	EventDate string              `json:"event_date"`
	URLs      []string            `json:"urls"`
	BarBrands []string            `json:"bar_brands"`
	Universal []string            `json:"universal"`
	Save      bool                `json:"save"`
}

func (s *apiServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var eventData model.ExtractedEventData
	if len(req.URLs) > 0 {
		data, err := s.extraction.ExtractFromURLs(r.Context(), req.URLs)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		eventData = data
	}
	facts := strategy.FactsFrom(req.Context.EventName, req.EventDate, eventData, req.BarBrands)

	result, err := s.generator.Generate(r.Context(), req.Context, facts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	flags := make(map[string]bool, len(req.Universal))
	for _, key := range req.Universal {
		flags[key] = true
	}
	questions := append(universal.Select(flags), result.Questions...)

	var savedID string
	if req.Save {
		rec, err := s.store.SaveQuestionSet(r.Context(), req.Context.EventName, cfg.Survey.Phase, result.Outcome.String(), questions)
		if err != nil {
			zap.L().Error("save question set failed", zap.Error(err))
		} else {
			savedID = rec.ID
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"outcome":   result.Outcome.String(),
		"questions": questions,
		"id":        savedID,
	})
}

func (s *apiServer) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URLs []string `json:"urls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.URLs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "urls is required"})
		return
	}

	data, err := s.extraction.ExtractFromURLs(r.Context(), req.URLs)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *apiServer) handleGoals(w http.ResponseWriter, r *http.Request) {
	phase := rules.Phase(chi.URLParam(r, "phase"))
	if !phase.Valid() {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown phase"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"phase":     string(phase),
		"info":      rules.Info(phase),
		"templates": rules.GoalTemplates(phase),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
