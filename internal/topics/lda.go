package topics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"

	"github.com/textinsight/backend/internal/batch"
)

const defaultTopWords = 10

// LDA is a Model backed by latent Dirichlet allocation over word counts.
// A fresh model is trained for every call, so an LDA value can be shared.
type LDA struct {
	// TopWords is the number of words reported per topic.
	TopWords int
	// Processes bounds the goroutines used while fitting; 0 keeps the
	// library default.
	Processes int
	// TransformationPasses is the inference passes per document; 0 keeps
	// the library default.
	TransformationPasses int
}

func NewLDA(topWords, processes int) *LDA {
	return &LDA{TopWords: topWords, Processes: processes}
}

// Fit learns settings.NumberTopics topics over the document texts.
func (l *LDA) Fit(ctx context.Context, settings Settings, docs []batch.Unit) (out *Output, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// degenerate count matrices make the numeric code panic
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("lda: %v", r)
		}
	}()

	corpus := make([]string, len(docs))
	for i, d := range docs {
		corpus[i] = d.Text
	}

	vectoriser := nlp.NewCountVectoriser(stopWords(settings.Language, settings.StopWords)...)
	vectoriser.Fit(corpus...)
	if len(vectoriser.Vocabulary) == 0 {
		return nil, ErrEmptyCorpus
	}
	counts, err := vectoriser.Transform(corpus...)
	if err != nil {
		return nil, fmt.Errorf("vectorise documents: %w", err)
	}

	lda := nlp.NewLatentDirichletAllocation(settings.NumberTopics)
	lda.Iterations = settings.Sweeps
	if l.Processes > 0 {
		lda.Processes = l.Processes
	}
	if l.TransformationPasses > 0 {
		lda.TransformationPasses = l.TransformationPasses
	}

	docsOverTopics, err := lda.FitTransform(counts)
	if err != nil {
		return nil, fmt.Errorf("fit topics: %w", err)
	}
	topicsOverWords := lda.Components()

	vocab := make([]string, len(vectoriser.Vocabulary))
	for word, idx := range vectoriser.Vocabulary {
		vocab[idx] = word
	}

	topN := l.TopWords
	if topN <= 0 {
		topN = defaultTopWords
	}
	return &Output{
		Topics:         topicWords(topicsOverWords, vocab, topN),
		TopicDocuments: topicDocuments(docsOverTopics, docs),
		Vocab:          vocabulary(counts, topicsOverWords, vocab),
	}, nil
}

// topicWords - most probable words for each topic
func topicWords(topicsOverWords mat.Matrix, vocab []string, topN int) []Topic {
	tr, tc := topicsOverWords.Dims()
	if topN > tc {
		topN = tc
	}

	topics := make([]Topic, tr)
	for topic := 0; topic < tr; topic++ {
		words := make([]Word, tc)
		total := 0.0
		for w := 0; w < tc; w++ {
			v := topicsOverWords.At(topic, w)
			words[w] = Word{Word: vocab[w], Probability: v}
			total += v
		}
		if total > 0 {
			for i := range words {
				words[i].Probability /= total
			}
		}
		sort.SliceStable(words, func(i, j int) bool {
			if words[i].Probability != words[j].Probability {
				return words[i].Probability > words[j].Probability
			}
			return words[i].Word < words[j].Word
		})
		words = words[:topN]

		names := make([]string, len(words))
		for i, w := range words {
			names[i] = w.Word
		}
		topics[topic] = Topic{Topic: topic, TopicText: strings.Join(names, ", "), Words: words}
	}
	return topics
}

// topicDocuments - every document's weight within each topic, heaviest first
func topicDocuments(docsOverTopics mat.Matrix, docs []batch.Unit) []TopicDocuments {
	dr, dc := docsOverTopics.Dims()

	colSums := make([]float64, dc)
	for doc := 0; doc < dc; doc++ {
		for topic := 0; topic < dr; topic++ {
			colSums[doc] += docsOverTopics.At(topic, doc)
		}
	}

	out := make([]TopicDocuments, dr)
	for topic := 0; topic < dr; topic++ {
		scores := make([]DocumentScore, 0, dc)
		for doc := 0; doc < dc && doc < len(docs); doc++ {
			score := docsOverTopics.At(topic, doc)
			if colSums[doc] > 0 {
				score /= colSums[doc]
			}
			scores = append(scores, DocumentScore{ID: docs[doc].ID, Text: docs[doc].Text, Score: score})
		}
		sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
		out[topic] = TopicDocuments{Topic: topic, Documents: scores}
	}
	return out
}

// vocabulary - corpus counts and topic specificity of every word
func vocabulary(counts, topicsOverWords mat.Matrix, vocab []string) []VocabEntry {
	wr, wc := counts.Dims()
	tr, _ := topicsOverWords.Dims()

	entries := make([]VocabEntry, 0, wr)
	for w := 0; w < wr && w < len(vocab); w++ {
		count := 0.0
		for doc := 0; doc < wc; doc++ {
			count += counts.At(w, doc)
		}

		peak, mass := 0.0, 0.0
		for topic := 0; topic < tr; topic++ {
			v := topicsOverWords.At(topic, w)
			mass += v
			if v > peak {
				peak = v
			}
		}
		specificity := 0.0
		if mass > 0 {
			specificity = peak / mass
		}
		entries = append(entries, VocabEntry{Word: vocab[w], Count: int(count), Specificity: specificity})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	return entries
}
