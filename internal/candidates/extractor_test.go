package candidates

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "full stops",
			source: "今日は晴れです。明日は雨です。",
			want:   []string{"今日は晴れです。", "明日は雨です。"},
		},
		{
			name:   "trailing text without delimiter",
			source: "一行目\n二行目",
			want:   []string{"一行目\n", "二行目"},
		},
		{
			name:   "consecutive delimiters dropped",
			source: "あ。\n\nい。",
			want:   []string{"あ。", "い。"},
		},
		{
			name:   "leading delimiters",
			source: "\n\n始まり。",
			want:   []string{"始まり。"},
		},
		{
			name:   "empty",
			source: "",
			want:   nil,
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Split(tt.source)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Split(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestScanReconstructsSource(t *testing.T) {
	sources := []string{
		"今日は晴れです。明日は雨です。",
		"\n\nあ。。い\n",
		"no delimiters at all",
		"。",
	}
	e := NewExtractor()
	for _, src := range sources {
		if got := Join(e.Scan(src)); got != src {
			t.Errorf("Join(Scan(%q)) = %q", src, got)
		}
		for s := range e.Sentences(src) {
			if len([]rune(s)) == 1 && e.IsSplitting([]rune(s)[0]) {
				t.Errorf("sentence %q is a bare delimiter", s)
			}
		}
	}
}

func TestSentencesRestartable(t *testing.T) {
	e := NewExtractor()
	seq := e.Sentences("一。二。三。")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) || len(first) != 3 {
		t.Fatalf("expected identical passes of 3 sentences, got %q and %q", first, second)
	}
}

func TestCustomSplittingChars(t *testing.T) {
	e := NewExtractor(ParseSplittingChars([]string{"、", "invalid", ""})...)
	got := e.Split("あ、い。う")
	want := []string{"あ、", "い。う"}
	if !slices.Equal(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestLoadSourceCollapsesBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stripped.txt")
	if err := os.WriteFile(path, []byte("\n一。\n\n\n二。\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSource(path, "utf-8")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if got != "一。\n二。" {
		t.Fatalf("LoadSource() = %q", got)
	}
}
