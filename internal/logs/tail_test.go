package logs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/jamesohortle/japanese-utilities/internal/logs"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func TestLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aligner-20260101-000000.log")
	writeLog(t, path, "a\nb\nc\npartial")

	tests := []struct {
		limit int
		want  []string
	}{
		{2, []string{"b", "c"}},
		{5, []string{"a", "b", "c"}},
		{0, nil},
	}
	for _, tt := range tests {
		lines, offset, err := logs.Last(path, tt.limit)
		if err != nil {
			t.Fatalf("Last(%d): %v", tt.limit, err)
		}
		if !slices.Equal(lines, tt.want) {
			t.Fatalf("Last(%d) = %q, want %q", tt.limit, lines, tt.want)
		}
		if tt.limit > 0 && offset != int64(len("a\nb\nc\n")) {
			t.Fatalf("Last(%d) offset = %d, want offset before partial line", tt.limit, offset)
		}
	}

	lines, offset, err := logs.Last(filepath.Join(t.TempDir(), "missing.log"), 3)
	if err != nil || lines != nil || offset != 0 {
		t.Fatalf("missing file: lines=%q offset=%d err=%v", lines, offset, err)
	}
}

func TestLatestRunLog(t *testing.T) {
	dir := t.TempDir()
	if _, err := logs.LatestRunLog(dir); !errors.Is(err, logs.ErrNoRunLogs) {
		t.Fatalf("expected ErrNoRunLogs, got %v", err)
	}
	for _, name := range []string{"aligner-20260101-090000.log", "aligner-20260301-120000.log", "aligner-20260201-000000.log", "other.log"} {
		writeLog(t, filepath.Join(dir, name), "")
	}
	got, err := logs.LatestRunLog(dir)
	if err != nil {
		t.Fatalf("LatestRunLog: %v", err)
	}
	if filepath.Base(got) != "aligner-20260301-120000.log" {
		t.Fatalf("unexpected latest log %s", got)
	}
}

func TestFollowStreamsAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aligner-20260101-000000.log")
	writeLog(t, path, "start\n")
	_, offset, err := logs.Last(path, 1)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	lines := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, func(line string) { lines <- line })
	}()

	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString("later\n"); err != nil {
		t.Fatalf("append log: %v", err)
	}
	_ = f.Close()

	select {
	case line := <-lines:
		if line != "later" {
			t.Fatalf("unexpected line %q", line)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("follow did not deliver the appended line")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Follow returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not stop after cancel")
	}
}
