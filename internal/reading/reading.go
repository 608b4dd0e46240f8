package reading

import (
	"context"
	"fmt"
	"strings"
)

// Transcriber renders texts as readings. The result has one entry per input,
// in input order.
type Transcriber interface {
	Readings(ctx context.Context, texts []string) ([]string, error)
}

// Reading transcribes a single text.
func Reading(ctx context.Context, tr Transcriber, text string) (string, error) {
	out, err := tr.Readings(ctx, []string{text})
	if err != nil {
		return "", err
	}
	if len(out) != 1 {
		return "", fmt.Errorf("transcriber returned %d readings for 1 text", len(out))
	}
	return out[0], nil
}

// Backend names accepted by New.
const (
	BackendKana  = "kana"
	BackendMecab = "mecab"
)

// Settings selects and configures a backend.
type Settings struct {
	Backend        string
	MecabPath      string
	MecabArgs      []string
	TimeoutSeconds int
	// CacheEntries bounds the memoized readings; zero means
	// DefaultCacheEntries.
	CacheEntries int
}

// New builds the configured transcriber wrapped in a Cache.
func New(settings Settings) (*Cache, error) {
	switch strings.ToLower(strings.TrimSpace(settings.Backend)) {
	case "", BackendKana:
		return NewCache(Kana{}, settings.CacheEntries), nil
	case BackendMecab:
		m, err := NewMecab(settings.MecabPath, settings.MecabArgs, settings.TimeoutSeconds)
		if err != nil {
			return nil, err
		}
		return NewCache(m, settings.CacheEntries), nil
	default:
		return nil, fmt.Errorf("unknown reading backend %q", settings.Backend)
	}
}
