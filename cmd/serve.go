package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prospectiq/brief-cli/internal/enrich"
	"github.com/prospectiq/brief-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP enrichment API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnrichment(cfg, true)
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/health", handleHealth)
		r.Post("/api/enrich", handleEnrich(env))
		r.Post("/api/insights", handleInsights(env))
		r.Get("/api/search", handleSearch(env))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleEnrich runs one enrichment synchronously. Invalid input fails
// before any provider is called.
func handleEnrich(env *enrichEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name    string `json:"name"`
			Website string `json:"website"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		q := model.Query{Name: req.Name, Website: req.Website}
		if err := enrich.ValidateQuery(q); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		report, err := env.Pipeline.Run(r.Context(), q)
		if err != nil {
			var reqErr *enrich.RequestError
			if errors.As(err, &reqErr) {
				writeError(w, http.StatusBadRequest, reqErr.Error())
				return
			}
			zap.L().Error("enrich request failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "enrichment failed")
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// handleInsights generates sections for a caller-supplied record without
// re-running aggregation.
func handleInsights(env *enrichEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if env.Generator == nil {
			writeError(w, http.StatusServiceUnavailable, "no insight provider configured")
			return
		}

		var record model.CompanyRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if record.Name == "" {
			writeError(w, http.StatusBadRequest, "company name is required")
			return
		}

		record = enrich.Clean(record)
		prompt := enrich.BuildPrompt(record)

		sections, err := env.Generator.Generate(r.Context(), prompt)
		if err != nil {
			zap.L().Error("insight generation failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "insight generation failed")
			return
		}

		writeJSON(w, http.StatusOK, sections)
	}
}

// handleSearch runs aggregation and cleaning only, returning the merged
// record and per-provider outcomes.
func handleSearch(env *enrichEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := model.Query{
			Name:    r.URL.Query().Get("name"),
			Website: r.URL.Query().Get("website"),
		}
		if err := enrich.ValidateQuery(q); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		record, outcomes, err := env.Aggregator.Aggregate(r.Context(), q)
		if err != nil {
			zap.L().Error("search request failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
		record = enrich.Clean(record)

		writeJSON(w, http.StatusOK, map[string]any{
			"record":   record,
			"outcomes": outcomes,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
