package topics_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/textinsight/backend/internal/batch"
	"github.com/textinsight/backend/internal/topics"
)

type MockModel struct {
	mock.Mock
}

func (m *MockModel) Fit(ctx context.Context, settings topics.Settings, docs []batch.Unit) (*topics.Output, error) {
	args := m.Called(ctx, settings, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*topics.Output), args.Error(1)
}

func newAdapter(model topics.Model) *topics.Adapter {
	return topics.NewAdapter(model, logrus.New().WithField("test", "topics"))
}

func TestAdapterAppliesDefaults(t *testing.T) {
	out := &topics.Output{Topics: []topics.Topic{{Topic: 0, TopicText: "coffee"}}}
	model := new(MockModel)
	model.On("Fit", mock.Anything,
		topics.Settings{NumberTopics: 10, Sweeps: 200, Language: "de"},
		[]batch.Unit{{ID: "1", Text: "I am here", Language: "de"}, {ID: "2", Text: ""}},
	).Return(out, nil)

	units := []batch.Unit{{ID: "1", Text: "I'm here", Language: "de"}, {ID: "2", Text: ""}}
	got, err := newAdapter(model).Run(context.Background(), units, nil, batch.Options{})

	require.NoError(t, err)
	assert.Same(t, out, got)
	model.AssertExpectations(t)
}

func TestAdapterSegmentsAndHonoursOptions(t *testing.T) {
	model := new(MockModel)
	model.On("Fit", mock.Anything, mock.Anything, mock.Anything).Return(topics.EmptyOutput(), nil)

	units := []batch.Unit{{ID: "a", Text: "We can't stop. Coffee is great."}}
	opts := batch.Options{Sentence: true, NumberTopics: 3, Sweeps: 50, Language: "fr"}
	_, err := newAdapter(model).Run(context.Background(), units, json.RawMessage(`["Coffee", 7]`), opts)
	require.NoError(t, err)

	settings := model.Calls[0].Arguments.Get(1).(topics.Settings)
	docs := model.Calls[0].Arguments.Get(2).([]batch.Unit)
	assert.Equal(t, topics.Settings{NumberTopics: 3, Sweeps: 50, Language: "fr", StopWords: []string{"Coffee"}}, settings)
	assert.Equal(t, []batch.Unit{
		{ID: "a-0", Text: "We cannot stop."},
		{ID: "a-1", Text: "Coffee is great."},
	}, docs)
}

func TestAdapterEmptyBatch(t *testing.T) {
	model := new(MockModel)

	out, err := newAdapter(model).Run(context.Background(), []batch.Unit{}, nil, batch.Options{})

	require.NoError(t, err)
	assert.Equal(t, topics.EmptyOutput(), out)
	assert.Zero(t, out.FailureCount())
	model.AssertNotCalled(t, "Fit", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdapterPropagatesModelError(t *testing.T) {
	model := new(MockModel)
	model.On("Fit", mock.Anything, mock.Anything, mock.Anything).Return(nil, topics.ErrEmptyCorpus)

	_, err := newAdapter(model).Run(context.Background(), []batch.Unit{{ID: "1", Text: "x"}}, nil, batch.Options{})

	assert.True(t, errors.Is(err, topics.ErrEmptyCorpus))
	assert.EqualError(t, err, "topic model: no usable words in documents")
}

func TestSettingsForLanguageFallback(t *testing.T) {
	s := topics.SettingsFor(batch.Options{NumberTopics: -1}, nil, nil)
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, topics.DefaultNumberTopics, s.NumberTopics)
	assert.Equal(t, topics.DefaultSweeps, s.Sweeps)
	assert.Empty(t, s.StopWords)
}

func TestSettingsForClampsCounts(t *testing.T) {
	s := topics.SettingsFor(batch.Options{NumberTopics: 10000000, Sweeps: 1 << 30}, nil, nil)
	assert.Equal(t, topics.MaxNumberTopics, s.NumberTopics)
	assert.Equal(t, topics.MaxSweeps, s.Sweeps)

	s = topics.SettingsFor(batch.Options{NumberTopics: 7, Sweeps: 50}, nil, nil)
	assert.Equal(t, 7, s.NumberTopics)
	assert.Equal(t, 50, s.Sweeps)
}

func TestAdapterClampsRequestedCounts(t *testing.T) {
	model := new(MockModel)
	model.On("Fit", mock.Anything, mock.Anything, mock.Anything).Return(topics.EmptyOutput(), nil)

	opts := batch.Options{NumberTopics: 10000000, Sweeps: 10000000}
	_, err := newAdapter(model).Run(context.Background(), []batch.Unit{{ID: "1", Text: "coffee"}}, nil, opts)
	require.NoError(t, err)

	settings := model.Calls[0].Arguments.Get(1).(topics.Settings)
	assert.Equal(t, topics.MaxNumberTopics, settings.NumberTopics)
	assert.Equal(t, topics.MaxSweeps, settings.Sweeps)
}

func TestLDAOutputShape(t *testing.T) {
	docs := []batch.Unit{
		{ID: "1", Text: "coffee beans roast espresso coffee"},
		{ID: "2", Text: "espresso coffee milk latte beans"},
		{ID: "3", Text: "football match goal striker football"},
		{ID: "4", Text: "goal keeper match football league football"},
	}
	lda := topics.NewLDA(3, 1)

	out, err := lda.Fit(context.Background(), topics.Settings{NumberTopics: 2, Sweeps: 30, Language: "en"}, docs)
	require.NoError(t, err)

	require.Len(t, out.Topics, 2)
	for i, topic := range out.Topics {
		assert.Equal(t, i, topic.Topic)
		assert.Len(t, topic.Words, 3)
		assert.NotEmpty(t, topic.TopicText)
		assert.True(t, sort.SliceIsSorted(topic.Words, func(a, b int) bool {
			return topic.Words[a].Probability > topic.Words[b].Probability
		}))
	}

	require.Len(t, out.TopicDocuments, 2)
	for _, td := range out.TopicDocuments {
		assert.Len(t, td.Documents, len(docs))
		assert.True(t, sort.SliceIsSorted(td.Documents, func(a, b int) bool {
			return td.Documents[a].Score > td.Documents[b].Score
		}))
	}

	require.NotEmpty(t, out.Vocab)
	assert.Equal(t, "football", out.Vocab[0].Word)
	assert.Equal(t, 4, out.Vocab[0].Count)
	for _, v := range out.Vocab {
		assert.GreaterOrEqual(t, v.Specificity, 0.5)
		assert.LessOrEqual(t, v.Specificity, 1.0)
	}
}

func TestLDAEmptyCorpus(t *testing.T) {
	docs := []batch.Unit{{ID: "1", Text: "the and of"}, {ID: "2", Text: "it is"}}

	_, err := topics.NewLDA(0, 0).Fit(context.Background(), topics.Settings{NumberTopics: 2, Sweeps: 10, Language: "en"}, docs)

	assert.ErrorIs(t, err, topics.ErrEmptyCorpus)
}

func TestLDACancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := topics.NewLDA(0, 0).Fit(ctx, topics.Settings{NumberTopics: 2, Sweeps: 10}, []batch.Unit{{ID: "1", Text: "coffee"}})

	assert.ErrorIs(t, err, context.Canceled)
}
