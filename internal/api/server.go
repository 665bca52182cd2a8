package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/textinsight/backend/internal/batch"
	"github.com/textinsight/backend/internal/engine"
)

// Version is reported by the status endpoint; set at build time.
var Version = "dev"

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
}

func NewServer(eng *engine.Engine, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/text/v1/sentiment", s.handleBatch("sentiment", s.Engine.Sentiment))
	s.Router.HandleFunc("/text/v1/topics", s.handleBatch("topics", s.Engine.Topics))
	s.Router.HandleFunc("/text/v1/status", s.handleStatus)
}

// Handler returns the router wrapped with CORS handling when enabled.
func (s *Server) Handler() http.Handler {
	if !s.Engine.Config.Server.EnableCORS {
		return s.Router
	}
	return withCORS(s.Router)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	cfg := s.Engine.Config.Server
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Logger.Infof("Starting API Server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		s.Logger.Info("Shutting down API Server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Responses
type StatusResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	SentimentBackend string `json:"sentiment_backend"`
	BatchesProcessed int64  `json:"batches_processed"`
	UnitsAnalyzed    int64  `json:"units_analyzed"`
	LastError        string `json:"last_error,omitempty"`
	Uptime           string `json:"uptime"`
}

// Handlers

func (s *Server) handleBatch(mode string, pipeline batch.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		log := s.Logger.WithFields(logrus.Fields{
			"request_id": uuid.NewString(),
			"mode":       mode,
		})

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Engine.Config.Server.MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				jsonResponse(w, http.StatusRequestEntityTooLarge, batch.ErrorResponse{Errors: "request body too large"})
				return
			}
			jsonResponse(w, http.StatusBadRequest, batch.ErrorResponse{Errors: batch.ErrIncomplete.Error()})
			return
		}

		start := time.Now()
		resp := batch.Handle(r.Context(), body, r.URL.Query().Get("keyword"), pipeline)
		entry := log.WithFields(logrus.Fields{
			"status":   resp.Status,
			"duration": time.Since(start).String(),
		})
		if resp.Status >= http.StatusInternalServerError {
			entry.Error("Batch failed")
		} else {
			entry.Info("Batch processed")
		}
		jsonResponse(w, resp.Status, resp.Payload)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats := s.Engine.Stats()

	jsonResponse(w, http.StatusOK, StatusResponse{
		Status:           "ok",
		Version:          Version,
		SentimentBackend: s.Engine.Config.Sentiment.Backend,
		BatchesProcessed: stats.BatchesProcessed,
		UnitsAnalyzed:    stats.UnitsAnalyzed,
		LastError:        stats.LastError,
		Uptime:           time.Since(stats.StartTime).Round(time.Second).String(),
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
