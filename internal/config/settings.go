package config

import (
	"log/slog"
	"strings"

	"github.com/jamesohortle/japanese-utilities/internal/alignment"
	"github.com/jamesohortle/japanese-utilities/internal/candidates"
	"github.com/jamesohortle/japanese-utilities/internal/reading"
)

// ReadingSettings returns the transcriber settings for reading.New.
func (c *Config) ReadingSettings() reading.Settings {
	return reading.Settings{
		Backend:        c.Reading.Backend,
		MecabPath:      c.Reading.MecabPath,
		MecabArgs:      append([]string(nil), c.Reading.MecabArgs...),
		TimeoutSeconds: c.Reading.TimeoutSeconds,
		CacheEntries:   c.Reading.CacheEntries,
	}
}

// Weights returns the configured scoring constants.
func (c *Config) Weights() alignment.Weights {
	return alignment.Weights{
		Phonetic:  c.Matching.PhoneticWeight,
		Position:  c.Matching.PositionWeight,
		Threshold: c.Matching.AcceptanceThreshold,
	}
}

// SplittingRunes returns the configured sentence delimiters.
func (c *Config) SplittingRunes() []rune {
	return candidates.ParseSplittingChars(c.Source.SplittingChars)
}

// MatcherOptions returns the alignment options derived from the configuration.
func (c *Config) MatcherOptions(logger *slog.Logger) []alignment.Option {
	return []alignment.Option{
		alignment.WithExtractor(candidates.NewExtractor(c.SplittingRunes()...)),
		alignment.WithWeights(c.Weights()),
		alignment.WithTopK(c.Matching.TopK),
		alignment.WithWindowCutoff(c.Matching.WindowScoreCutoff),
		alignment.WithLogger(logger),
	}
}

// VersionParts lists the settings outside the matcher that change results.
// MeCab's binary and arguments count only when it is the backend, since a
// different dictionary yields different readings.
func (c *Config) VersionParts() []string {
	parts := []string{
		"backend=" + c.Reading.Backend,
		"splitting=" + strings.Join(c.Source.SplittingChars, ""),
		"strategy=" + c.Matching.Strategy,
	}
	if c.Reading.Backend == reading.BackendMecab {
		parts = append(parts, "mecab="+strings.Join(append([]string{c.Reading.MecabPath}, c.Reading.MecabArgs...), " "))
	}
	return parts
}
