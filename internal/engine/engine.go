package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/textinsight/backend/internal/analysis"
	"github.com/textinsight/backend/internal/batch"
	"github.com/textinsight/backend/internal/config"
	"github.com/textinsight/backend/internal/provider"
	"github.com/textinsight/backend/internal/sentiment"
	"github.com/textinsight/backend/internal/topics"
)

// Engine wires the analysis pipelines to their collaborators
type Engine struct {
	Config     *config.Config
	Logger     *logrus.Entry
	Dispatcher *analysis.Dispatcher
	Topic      *topics.Adapter
	Scorer     analysis.Scorer

	mu    sync.RWMutex
	stats EngineStats
}

type EngineStats struct {
	BatchesProcessed int64     `json:"batches_processed"`
	UnitsAnalyzed    int64     `json:"units_analyzed"`
	LastError        string    `json:"last_error,omitempty"`
	StartTime        time.Time `json:"start_time"`
}

func NewEngine(cfg *config.Config, logger *logrus.Entry) (*Engine, error) {
	scorer, err := NewScorer(cfg)
	if err != nil {
		return nil, err
	}

	lda := topics.NewLDA(cfg.Topics.TopWords, cfg.Topics.Processes)
	lda.TransformationPasses = cfg.Topics.TransformationPasses

	return &Engine{
		Config:     cfg,
		Logger:     logger,
		Dispatcher: analysis.NewDispatcher(logger.WithField("component", "dispatcher")),
		Topic:      topics.NewAdapter(lda, logger.WithField("component", "topics")),
		Scorer:     scorer,
		stats:      EngineStats{StartTime: time.Now()},
	}, nil
}

// NewScorer builds the sentiment scorer named by the configured backend.
// The "llm" backend uses the configured LLM provider; "ollama" and "openai"
// name the provider directly.
func NewScorer(cfg *config.Config) (analysis.Scorer, error) {
	switch backend := strings.ToLower(cfg.Sentiment.Backend); backend {
	case "", "lexicon":
		return sentiment.NewLexicon(), nil
	case "llm", "ollama", "openai":
		name := backend
		if backend == "llm" {
			name = strings.ToLower(cfg.LLM.Provider)
		}
		if name != "ollama" && name != "openai" {
			return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
		}
		llm := provider.New(provider.Config{
			Provider: name,
			BaseURL:  cfg.LLM.BaseURL,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			Timeout:  cfg.LLM.Timeout,
		})
		return sentiment.NewLLMScorer(llm), nil
	default:
		return nil, fmt.Errorf("unknown sentiment backend %q", cfg.Sentiment.Backend)
	}
}

// Sentiment scores every unit of the request.
func (e *Engine) Sentiment(ctx context.Context, req *batch.Request) (batch.Payload, error) {
	report := e.Dispatcher.Analyze(ctx, req.Documents, req.Dictionary, req.Options, analysis.SentenceScorer(e.Scorer))
	e.record(len(report.Documents)+len(report.Errors), nil)
	return report, nil
}

// Topics fits a topic model over the request as one corpus.
func (e *Engine) Topics(ctx context.Context, req *batch.Request) (batch.Payload, error) {
	out, err := e.Topic.Run(ctx, req.Documents, req.Dictionary, req.Options)
	if err != nil {
		e.record(0, err)
		return nil, err
	}
	e.record(len(req.Documents), nil)
	return out, nil
}

func (e *Engine) record(units int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.BatchesProcessed++
	e.stats.UnitsAnalyzed += int64(units)
	if err != nil {
		e.stats.LastError = err.Error()
	}
}

// Stats returns a snapshot of the processing counters.
func (e *Engine) Stats() EngineStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}
