package testsupport

import (
	"context"
	"testing"

	"github.com/jamesohortle/japanese-utilities/internal/config"
	"github.com/jamesohortle/japanese-utilities/internal/store"
)

// MustOpenStore creates the database of a work for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config, workID string) *store.Store {
	t.Helper()

	st, err := store.Create(context.Background(), store.DatabasePath(cfg.Paths.DataDir, workID))
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SeedWork creates a work with the given source text and transcriptions.
// Transcriptions are keyed by path.
func SeedWork(t testing.TB, cfg *config.Config, workID, source string, transcriptions []store.Transcription) *store.Store {
	t.Helper()

	WriteSource(t, cfg, workID, source)
	st := MustOpenStore(t, cfg, workID)
	if _, err := st.Insert(context.Background(), transcriptions); err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return st
}
