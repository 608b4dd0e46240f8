package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesohortle/japanese-utilities/internal/config"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSource writes the source text of a work at the configured location.
func WriteSource(t testing.TB, cfg *config.Config, workID, text string) {
	t.Helper()
	WriteFile(t, cfg.SourcePath(workID), text)
}
