package analysis

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/textinsight/backend/internal/batch"
	"github.com/textinsight/backend/internal/markup"
	"github.com/textinsight/backend/internal/match"
	"github.com/textinsight/backend/internal/segment"
)

// ScoreFunc analyzes one unit. The returned error's message becomes the
// unit's error item.
type ScoreFunc func(ctx context.Context, text batch.Content, language string, dictionary json.RawMessage) (float64, error)

// Dispatcher runs a ScoreFunc over a batch and sorts the outcome into
// successes and failures.
type Dispatcher struct {
	logger *logrus.Entry
}

func NewDispatcher(logger *logrus.Entry) *Dispatcher {
	if logger == nil {
		logger = logrus.WithField("component", "dispatcher")
	}
	return &Dispatcher{logger: logger}
}

// Prepare applies the unit-level options shared by every analysis mode:
// markup stripping, then sentence segmentation. The input is not modified.
func Prepare(units []batch.Unit, opts batch.Options) []batch.Unit {
	prepared := make([]batch.Unit, len(units))
	copy(prepared, units)
	if opts.HTML {
		for i := range prepared {
			prepared[i].Text = markup.Strip(prepared[i].Text)
		}
	}
	if opts.Sentence {
		prepared = segment.Documents(prepared)
	}
	return prepared
}

// Analyze scores each unit in order, one at a time. Units rejected by the
// search are skipped; a failing unit is recorded and the batch goes on.
func (d *Dispatcher) Analyze(ctx context.Context, units []batch.Unit, dictionary json.RawMessage, opts batch.Options, fn ScoreFunc) *batch.Report {
	report := batch.NewReport()
	units = Prepare(units, opts)
	matcher := match.New(opts.Search)

	skipped := 0
	for _, u := range units {
		request := batch.PlainText(u.Text)
		result := request

		if opts.Search.Active() {
			m, ok := matcher.Match(u.Text)
			if !ok {
				skipped++
				continue
			}
			request, result = m.Request, m.Display
		}

		score, err := fn(ctx, request, u.LanguageOrDefault(), dictionary)
		if err != nil {
			d.logger.WithField("id", u.ID).WithError(err).Debug("Unit analysis failed")
			report.Errors = append(report.Errors, batch.ErrorItem{ID: u.ID, Msg: err.Error()})
			continue
		}
		report.Documents = append(report.Documents, batch.ResultItem{ID: u.ID, Score: score, Text: result})
	}

	d.logger.WithFields(logrus.Fields{
		"units":     len(units),
		"scored":    len(report.Documents),
		"failed":    len(report.Errors),
		"unmatched": skipped,
	}).Debug("Batch analyzed")
	return report
}
