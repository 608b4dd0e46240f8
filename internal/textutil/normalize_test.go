package textutil

import (
	"testing"
	"unicode"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sentence with full stop", "今日は晴れです。", "今日は晴れです"},
		{"ascii punctuation", "Hello,  World!", "Hello World"},
		{"brackets and comma join japanese", "「こんにちは」、世界", "こんにちは世界"},
		{"fullwidth ascii", "ＡＢＣ　１２３", "ABC 123"},
		{"space kept next to ascii", "日本 語 abc 漢字", "日本語 abc 漢字"},
		{"halfwidth katakana", "ｶﾀｶﾅ", "カタカナ"},
		{"emoji removed", "😀絵文字", "絵文字"},
		{"control whitespace", "a\tb\nc", "a b c"},
		{"iteration mark kept", "人々", "人々"},
		{"ellipsis only", "……", ""},
		{"punctuation only", "。、！？", ""},
		{"empty", "", ""},
		{"chained japanese spaces", "あ い う え", "あいうえ"},
		{"mixed runs", "テスト test テスト", "テスト test テスト"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"吾輩は猫である。名前はまだ無い。",
		"「ｶﾀｶﾅ」と ＡＢＣ、そして……",
		"  spaced   out\ttext  ",
		"第１章　先生と私",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	input := "彼は「さようなら」と言った――。Then he left… ☆ ①"
	got := Normalize(input)
	for _, r := range got {
		if IsPunctuation(r) {
			t.Fatalf("output %q contains punctuation %q", got, r)
		}
		if !unicode.Is(JapaneseAlphabet, r) {
			t.Fatalf("output %q contains out-of-alphabet rune %q", got, r)
		}
	}
}

func TestCustomNormalizerAlphabet(t *testing.T) {
	latinOnly := &unicode.RangeTable{
		R16:         []unicode.Range16{{Lo: 0x0020, Hi: 0x007F, Stride: 1}},
		LatinOffset: 1,
	}
	n := NewNormalizer(nil, latinOnly)
	if got := n.Normalize("abc 日本 def"); got != "abc def" {
		t.Fatalf("Normalize() = %q, want %q", got, "abc def")
	}
}
