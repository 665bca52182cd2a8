// Package topics adapts a batch to a topic-model collaborator.
package topics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/textinsight/backend/internal/analysis"
	"github.com/textinsight/backend/internal/batch"
	"github.com/textinsight/backend/internal/lexical"
)

// Defaults applied to unset batch options, and the caps applied to
// requested ones.
const (
	DefaultNumberTopics = 10
	DefaultSweeps       = 200
	MaxNumberTopics     = 100
	MaxSweeps           = 5000
)

// ErrEmptyCorpus is returned by a model that found nothing to learn from.
var ErrEmptyCorpus = errors.New("no usable words in documents")

// Settings configure one model run.
type Settings struct {
	NumberTopics int
	Sweeps       int
	Language     string
	StopWords    []string
}

// Model is the topic-model collaborator. A run is all-or-nothing.
type Model interface {
	Fit(ctx context.Context, settings Settings, docs []batch.Unit) (*Output, error)
}

// Word is a topic word with its probability within the topic.
type Word struct {
	Word        string  `json:"word"`
	Probability float64 `json:"probability"`
}

// Topic is one learned topic.
type Topic struct {
	Topic     int    `json:"topic"`
	TopicText string `json:"topicText"`
	Words     []Word `json:"words"`
}

// DocumentScore is a document's weight within a topic.
type DocumentScore struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// TopicDocuments lists the documents assigned to a topic.
type TopicDocuments struct {
	Topic     int             `json:"topic"`
	Documents []DocumentScore `json:"documents"`
}

// VocabEntry is a vocabulary word with its corpus count and how specific
// it is to a single topic.
type VocabEntry struct {
	Word        string  `json:"word"`
	Count       int     `json:"count"`
	Specificity float64 `json:"specificity"`
}

// Output is the topic-mode payload.
type Output struct {
	Topics         []Topic          `json:"topics"`
	TopicDocuments []TopicDocuments `json:"topicDocuments"`
	Vocab          []VocabEntry     `json:"vocab"`
}

// EmptyOutput has empty, non-nil lists.
func EmptyOutput() *Output {
	return &Output{Topics: []Topic{}, TopicDocuments: []TopicDocuments{}, Vocab: []VocabEntry{}}
}

// FailureCount is always zero: topic mode has no per-unit errors.
func (o *Output) FailureCount() int { return 0 }

// Adapter prepares a batch for the model and passes it through once.
type Adapter struct {
	model  Model
	logger *logrus.Entry
}

func NewAdapter(model Model, logger *logrus.Entry) *Adapter {
	if logger == nil {
		logger = logrus.WithField("component", "topics")
	}
	return &Adapter{model: model, logger: logger}
}

// Run segments the batch when asked, expands contractions in every text,
// applies the setting defaults and hands the whole batch to the model.
func (a *Adapter) Run(ctx context.Context, units []batch.Unit, dictionary json.RawMessage, opts batch.Options) (*Output, error) {
	docs := analysis.Prepare(units, opts)
	if len(docs) == 0 {
		return EmptyOutput(), nil
	}
	for i := range docs {
		docs[i].Text = lexical.ExpandContractions(docs[i].Text)
	}

	settings := SettingsFor(opts, docs, dictionary)
	a.logger.WithFields(logrus.Fields{
		"documents": len(docs),
		"topics":    settings.NumberTopics,
		"sweeps":    settings.Sweeps,
		"language":  settings.Language,
	}).Debug("Fitting topic model")

	out, err := a.model.Fit(ctx, settings, docs)
	if err != nil {
		return nil, fmt.Errorf("topic model: %w", err)
	}
	return out, nil
}

// SettingsFor resolves model settings from batch options. The language is
// the batch option, else the first document's, else "en". Topic and sweep
// counts are clamped to MaxNumberTopics and MaxSweeps. A dictionary
// given as an array of strings adds stop words.
func SettingsFor(opts batch.Options, docs []batch.Unit, dictionary json.RawMessage) Settings {
	s := Settings{
		NumberTopics: opts.NumberTopics,
		Sweeps:       opts.Sweeps,
		Language:     opts.Language,
	}
	if s.NumberTopics <= 0 {
		s.NumberTopics = DefaultNumberTopics
	}
	if s.Sweeps <= 0 {
		s.Sweeps = DefaultSweeps
	}
	s.NumberTopics = min(s.NumberTopics, MaxNumberTopics)
	s.Sweeps = min(s.Sweeps, MaxSweeps)
	if s.Language == "" {
		s.Language = batch.FirstLanguage(docs)
	}

	var words []any
	if err := json.Unmarshal(dictionary, &words); err == nil {
		for _, w := range words {
			if str, ok := w.(string); ok && str != "" {
				s.StopWords = append(s.StopWords, str)
			}
		}
	}
	return s
}
