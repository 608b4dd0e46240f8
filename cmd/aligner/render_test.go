package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/jamesohortle/japanese-utilities/internal/deps"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("MeCab", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "MeCab:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Data directory", statusOK, "", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
	if !strings.Contains(got, "[OK]") {
		t.Fatalf("expected bare OK label, got %q", got)
	}
}

func TestStatusKindForOutcome(t *testing.T) {
	tests := map[string]statusKind{
		"ok":           statusOK,
		"skipped":      statusWarn,
		"review":       statusWarn,
		"degraded":     statusWarn,
		"invariant":    statusError,
		"collaborator": statusError,
		"failed":       statusError,
	}
	for status, want := range tests {
		if got := statusKindForOutcome(status); got != want {
			t.Fatalf("%s: expected %v, got %v", status, want, got)
		}
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "MeCab", Command: "mecab", Available: true},
		{Name: "Julius", Available: false, Optional: true, Detail: "not found"},
		{Name: "iconv", Available: false},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "[OK] Ready (command: mecab)") {
		t.Fatalf("unexpected ready line %q", lines[0])
	}
	if !strings.Contains(lines[1], "[WARN] not found (optional)") {
		t.Fatalf("unexpected optional line %q", lines[1])
	}
	if !strings.Contains(lines[2], "[ERROR] not available") {
		t.Fatalf("unexpected missing line %q", lines[2])
	}
	if !strings.Contains(lines[3], "Missing dependencies") || !strings.Contains(lines[3], "iconv") {
		t.Fatalf("unexpected summary line %q", lines[3])
	}
}

func TestRenderTableWrapsTextColumns(t *testing.T) {
	long := strings.Repeat("あいうえお ", 20)
	out := renderTable([]string{"Path", "Text"}, [][]string{{"001.wav", long}}, []columnAlignment{alignLeft, alignWrap})
	if !strings.Contains(out, "001.wav") {
		t.Fatalf("expected path in table:\n%s", out)
	}
	if strings.Count(out, "\n") < 4 {
		t.Fatalf("expected wrapped rows, got:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty table for no headers")
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatal("expected non-file writer to disable color")
	}
}
