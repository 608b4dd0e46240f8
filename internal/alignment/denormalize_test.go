package alignment_test

import (
	"testing"

	"github.com/jamesohortle/japanese-utilities/internal/reading"
	"github.com/jamesohortle/japanese-utilities/internal/textutil"
)

func TestDenormalize(t *testing.T) {
	m := newMatcher(t, reading.Kana{})
	tests := []struct {
		name      string
		best      string
		candidate string
		want      string
	}{
		{"keeps trailing full stop", "今日は晴れです", "今日は晴れです。", "今日は晴れです。"},
		{"keeps closing bracket", "今日は晴れです", "「今日は晴れです」と彼は言った。", "今日は晴れです」"},
		{"restores inner punctuation", "日本語 abc", "日本語、abc!", "日本語、abc!"},
		{"first tail wins", "です", "晴れです。雨です。", "です。"},
		{"splitting character kept", "行く", "行く\n", "行く\n"},
		{"no trailing punctuation", "晴れ", "晴れです", "晴れ"},
		{"falls back when no span normalizes", "ABC", "ＡＢＣ", "ABC"},
		{"empty best", "", "何か", ""},
		{"span at end of candidate", "雨です", "明日は雨です", "雨です"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Denormalize(tt.best, tt.candidate); got != tt.want {
				t.Fatalf("Denormalize(%q, %q) = %q, want %q", tt.best, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestDenormalizeRoundTrip(t *testing.T) {
	m := newMatcher(t, reading.Kana{})
	candidates := []string{
		"「今日は、晴れです。」",
		"Hello, 世界！ また 明日。",
		"人々は――走った……\n",
	}
	for _, c := range candidates {
		rs := []rune(c)
		for i := range rs {
			for j := i + 1; j <= len(rs); j++ {
				best := textutil.Normalize(string(rs[i:j]))
				if best == "" {
					continue
				}
				got := m.Denormalize(best, c)
				if textutil.Normalize(got) != best {
					t.Fatalf("Denormalize(%q, %q) = %q, normalizes to %q", best, c, got, textutil.Normalize(got))
				}
			}
		}
	}
}
