package alignment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jamesohortle/japanese-utilities/internal/candidates"
	"github.com/jamesohortle/japanese-utilities/internal/logging"
	"github.com/jamesohortle/japanese-utilities/internal/reading"
	"github.com/jamesohortle/japanese-utilities/internal/services"
	"github.com/jamesohortle/japanese-utilities/internal/textutil"
)

// Option configures a Matcher.
type Option func(*Matcher)

// WithNormalizer overrides the default normalizer.
func WithNormalizer(n *textutil.Normalizer) Option {
	return func(m *Matcher) {
		if n != nil {
			m.normalizer = n
		}
	}
}

// WithExtractor sets the extractor whose splitting characters the
// denormalizer keeps as trailing punctuation.
func WithExtractor(e *candidates.Extractor) Option {
	return func(m *Matcher) {
		if e != nil {
			m.extractor = e
		}
	}
}

// WithWeights overrides DefaultWeights.
func WithWeights(w Weights) Option {
	return func(m *Matcher) { m.weights = w }
}

// WithTopK sets how many ranked candidates each batch channel keeps.
func WithTopK(k int) Option {
	return func(m *Matcher) {
		if k > 0 {
			m.topK = k
		}
	}
}

// WithWindowCutoff sets the minimum reading similarity a window needs.
func WithWindowCutoff(cutoff int) Option {
	return func(m *Matcher) { m.windowCutoff = cutoff }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Matcher aligns transcriptions to candidates. It holds no per-work state and
// is safe for concurrent use when its Transcriber is.
type Matcher struct {
	normalizer   *textutil.Normalizer
	extractor    *candidates.Extractor
	transcriber  reading.Transcriber
	weights      Weights
	topK         int
	windowCutoff int
	logger       *slog.Logger
}

// New constructs a Matcher around a reading transcriber.
func New(transcriber reading.Transcriber, opts ...Option) (*Matcher, error) {
	if transcriber == nil {
		return nil, services.Wrap(services.ErrConfiguration, "alignment", "new matcher", "reading transcriber required", nil)
	}
	m := &Matcher{
		normalizer:  textutil.Default(),
		extractor:   candidates.NewExtractor(),
		transcriber: transcriber,
		weights:     DefaultWeights(),
		topK:        DefaultTopK,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.weights.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "alignment", "new matcher", err.Error(), nil)
	}
	m.logger = logging.NewComponentLogger(m.logger, "alignment")
	return m, nil
}

// Version identifies the matcher's scoring configuration.
func (m *Matcher) Version(extra ...string) string {
	return Version(m.weights, m.topK, m.windowCutoff, extra...)
}

// PrepareCandidates normalizes raw candidate texts and computes their readings.
func (m *Matcher) PrepareCandidates(ctx context.Context, raws []string) ([]Candidate, error) {
	norms, readings, err := m.prepare(ctx, raws)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, len(raws))
	for i, raw := range raws {
		out[i] = Candidate{Index: i, Raw: raw, Normalized: norms[i], Reading: readings[i]}
	}
	return out, nil
}

// PrepareTranscriptions normalizes raw transcriptions, in recording order, and
// computes their readings. paths may be nil.
func (m *Matcher) PrepareTranscriptions(ctx context.Context, paths, raws []string) ([]Transcription, error) {
	if paths != nil && len(paths) != len(raws) {
		return nil, services.Wrap(services.ErrInvariant, "alignment", "prepare transcriptions",
			fmt.Sprintf("%d paths for %d transcriptions", len(paths), len(raws)), nil)
	}
	norms, readings, err := m.prepare(ctx, raws)
	if err != nil {
		return nil, err
	}
	out := make([]Transcription, len(raws))
	for i, raw := range raws {
		out[i] = Transcription{Index: i, Raw: raw, Normalized: norms[i], Reading: readings[i]}
		if paths != nil {
			out[i].Path = paths[i]
		}
	}
	return out, nil
}

func (m *Matcher) prepare(ctx context.Context, raws []string) ([]string, []string, error) {
	norms := make([]string, len(raws))
	for i, raw := range raws {
		norms[i] = m.normalizer.Normalize(raw)
	}
	readings, err := m.readings(ctx, raws)
	if err != nil {
		return nil, nil, err
	}
	return norms, readings, nil
}

// readings transcribes texts and normalizes the result.
func (m *Matcher) readings(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out, err := m.transcriber.Readings(ctx, texts)
	if err != nil {
		return nil, services.Wrap(services.ErrCollaborator, "alignment", "reading", "transcriber failed", err)
	}
	if len(out) != len(texts) {
		return nil, services.Wrap(services.ErrCollaborator, "alignment", "reading",
			fmt.Sprintf("transcriber returned %d readings for %d texts", len(out), len(texts)), nil)
	}
	for i := range out {
		out[i] = m.normalizer.Normalize(out[i])
	}
	return out, nil
}
