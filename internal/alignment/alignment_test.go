package alignment_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jamesohortle/japanese-utilities/internal/alignment"
	"github.com/jamesohortle/japanese-utilities/internal/candidates"
	"github.com/jamesohortle/japanese-utilities/internal/reading"
	"github.com/jamesohortle/japanese-utilities/internal/services"
)

// dictionaryTranscriber reads a handful of kanji and folds hiragana to katakana.
type dictionaryTranscriber map[rune]string

func (d dictionaryTranscriber) Readings(_ context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	for i, text := range texts {
		var b strings.Builder
		for _, r := range text {
			switch {
			case d[r] != "":
				b.WriteString(d[r])
			case r >= 'ぁ' && r <= 'ゖ':
				b.WriteRune(r + 0x60)
			default:
				b.WriteRune(r)
			}
		}
		out[i] = b.String()
	}
	return out, nil
}

var yomi = dictionaryTranscriber{'私': "ワタシ", '行': "イ", '言': "イ"}

type failingTranscriber struct{}

func (failingTranscriber) Readings(context.Context, []string) ([]string, error) {
	return nil, errors.New("mecab exploded")
}

func newMatcher(t *testing.T, tr reading.Transcriber, opts ...alignment.Option) *alignment.Matcher {
	t.Helper()
	m, err := alignment.New(tr, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func prepare(t *testing.T, m *alignment.Matcher, source string, transcriptions ...string) ([]alignment.Transcription, []alignment.Candidate) {
	t.Helper()
	ctx := context.Background()
	cands, err := m.PrepareCandidates(ctx, candidates.NewExtractor().Split(source))
	if err != nil {
		t.Fatalf("PrepareCandidates: %v", err)
	}
	trans, err := m.PrepareTranscriptions(ctx, nil, transcriptions)
	if err != nil {
		t.Fatalf("PrepareTranscriptions: %v", err)
	}
	return trans, cands
}

const weather = "今日は晴れです。明日は雨です。"

func TestAlignWeatherScenario(t *testing.T) {
	m := newMatcher(t, reading.Kana{})
	trans, cands := prepare(t, m, weather, "今日は晴れです", "明日は雨です")
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}

	want := []alignment.MatchResult{
		{TranscriptionIndex: 0, CandidateIndex: 0, Text: "今日は晴れです。"},
		{TranscriptionIndex: 1, CandidateIndex: 1, Text: "明日は雨です。"},
	}
	for i, tr := range trans {
		got, err := m.Align(context.Background(), tr, cands)
		if err != nil {
			t.Fatalf("Align(%q): %v", tr.Raw, err)
		}
		if got != want[i] {
			t.Errorf("Align(%q) = %+v, want %+v", tr.Raw, got, want[i])
		}
	}
}

func TestAlignWorkWeatherScenario(t *testing.T) {
	m := newMatcher(t, reading.Kana{})
	trans, cands := prepare(t, m, weather, "今日は晴れです", "明日は雨です")

	got, err := m.AlignWork(context.Background(), trans, cands)
	if err != nil {
		t.Fatalf("AlignWork: %v", err)
	}
	want := []alignment.MatchResult{
		{TranscriptionIndex: 0, CandidateIndex: 0, Text: "今日は晴れです。"},
		{TranscriptionIndex: 1, CandidateIndex: 1, Text: "明日は雨です。"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAlignEmptyTranscriptionIsUnmatched(t *testing.T) {
	m := newMatcher(t, reading.Kana{})
	trans, cands := prepare(t, m, weather, "。、！？", "……")

	for _, tr := range trans {
		got, err := m.Align(context.Background(), tr, cands)
		if err != nil {
			t.Fatalf("Align: %v", err)
		}
		if got.Matched() || got.CandidateIndex != alignment.Unmatched || got.Text != "" {
			t.Errorf("Align(%q) = %+v, want unmatched", tr.Raw, got)
		}
	}
	results, err := m.AlignWork(context.Background(), trans, cands)
	if err != nil {
		t.Fatalf("AlignWork: %v", err)
	}
	for _, r := range results {
		if r.Matched() || r.Text != "" {
			t.Errorf("AlignWork result %+v, want unmatched", r)
		}
	}
}

func TestAlignNoConfidentCandidate(t *testing.T) {
	m := newMatcher(t, reading.Kana{})
	trans, cands := prepare(t, m, weather, "ABCDEFG")
	got, err := m.Align(context.Background(), trans[0], cands)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got.Matched() {
		t.Fatalf("expected unmatched, got %+v", got)
	}
	results, err := m.AlignWork(context.Background(), trans, cands)
	if err != nil {
		t.Fatalf("AlignWork: %v", err)
	}
	if results[0].Matched() {
		t.Fatalf("expected empty intersection, got %+v", results[0])
	}
}

func TestAlignSelfMatch(t *testing.T) {
	source := "吾輩は猫である。名前はまだ無い。どこで生れたかとんと見当がつかぬ。"
	m := newMatcher(t, reading.Kana{})
	_, cands := prepare(t, m, source)

	for _, c := range cands {
		trans, err := m.PrepareTranscriptions(context.Background(), nil, []string{c.Raw})
		if err != nil {
			t.Fatalf("PrepareTranscriptions: %v", err)
		}
		got, err := m.Align(context.Background(), trans[0], cands)
		if err != nil {
			t.Fatalf("Align(%q): %v", c.Raw, err)
		}
		if got.CandidateIndex != c.Index {
			t.Errorf("Align(%q) index = %d, want %d", c.Raw, got.CandidateIndex, c.Index)
		}
	}
}

func TestAlignSelfMatchInsideEarlierCandidate(t *testing.T) {
	m := newMatcher(t, reading.Kana{})
	trans, cands := prepare(t, m, "明日は雨ですね。雨です。", "雨です")

	got, err := m.Align(context.Background(), trans[0], cands)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got.CandidateIndex != 1 || got.Text != "雨です。" {
		t.Fatalf("Align = %+v, want candidate 1 \"雨です。\"", got)
	}
}

func TestAlignWindowSearchBelowCutoffIsUnmatched(t *testing.T) {
	// No window reads exactly like the misrecognized 腫れ.
	m := newMatcher(t, reading.Kana{}, alignment.WithWindowCutoff(100))
	trans, cands := prepare(t, m, weather, "今日は腫れ")

	got, err := m.Align(context.Background(), trans[0], cands)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got.Matched() || got.CandidateIndex != alignment.Unmatched || got.Text != "" {
		t.Fatalf("Align = %+v, want unmatched with empty text", got)
	}

	m = newMatcher(t, reading.Kana{})
	got, err = m.Align(context.Background(), trans[0], cands)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got.CandidateIndex != 0 {
		t.Fatalf("default cutoff: Align = %+v, want candidate 0", got)
	}
}

func TestPositionalTermFavoursEarlierCandidate(t *testing.T) {
	m := newMatcher(t, yomi)
	trans, cands := prepare(t, m, "私は行く。私は行く、と言った。", "わたしはいく", "ほかの文")

	results, err := m.AlignWork(context.Background(), trans, cands)
	if err != nil {
		t.Fatalf("AlignWork: %v", err)
	}
	if results[0].CandidateIndex != 0 || results[0].Text != "私は行く。" {
		t.Fatalf("batch result = %+v, want candidate 0", results[0])
	}

	single, err := m.Align(context.Background(), trans[0], cands)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if single.CandidateIndex != 0 || single.Text != "私は行く。" {
		t.Fatalf("single result = %+v, want candidate 0", single)
	}
}

func TestPositionBreaksExactTies(t *testing.T) {
	m := newMatcher(t, reading.Kana{})
	trans, cands := prepare(t, m, "はい。\nはい。", "はい", "はい")

	for run := 0; run < 3; run++ {
		results, err := m.AlignWork(context.Background(), trans, cands)
		if err != nil {
			t.Fatalf("AlignWork: %v", err)
		}
		if results[0].CandidateIndex != 0 || results[1].CandidateIndex != 1 {
			t.Fatalf("run %d: results = %+v, want [0 1]", run, results)
		}
	}
}

func TestZeroPositionWeightFallsBackToFirstMaximum(t *testing.T) {
	w := alignment.DefaultWeights()
	w.Position = 0
	m := newMatcher(t, reading.Kana{}, alignment.WithWeights(w))
	trans, cands := prepare(t, m, "はい。\nはい。", "はい", "はい")

	results, err := m.AlignWork(context.Background(), trans, cands)
	if err != nil {
		t.Fatalf("AlignWork: %v", err)
	}
	for _, r := range results {
		if r.CandidateIndex != 0 {
			t.Fatalf("expected first maximum to win, got %+v", results)
		}
	}
}

func TestCollaboratorFailurePropagates(t *testing.T) {
	m := newMatcher(t, failingTranscriber{})
	_, err := m.PrepareCandidates(context.Background(), []string{"あ。"})
	if !errors.Is(err, services.ErrCollaborator) {
		t.Fatalf("expected collaborator error, got %v", err)
	}
}

func TestAlignWorkRejectsSparseIndices(t *testing.T) {
	m := newMatcher(t, reading.Kana{})
	trans, cands := prepare(t, m, weather, "今日は晴れです")
	cands[1].Index = 5
	if _, err := m.AlignWork(context.Background(), trans, cands); !errors.Is(err, services.ErrInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
}

func TestNewValidatesWeights(t *testing.T) {
	if _, err := alignment.New(nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for nil transcriber, got %v", err)
	}
	bad := alignment.DefaultWeights()
	bad.Threshold = 1.5
	if _, err := alignment.New(reading.Kana{}, alignment.WithWeights(bad)); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestVersionTracksConfiguration(t *testing.T) {
	w := alignment.DefaultWeights()
	a := alignment.Version(w, 5, 0, "kana")
	if a != alignment.Version(w, 5, 0, "kana") {
		t.Fatal("Version is not deterministic")
	}
	w.Phonetic = 0.5
	if a == alignment.Version(w, 5, 0, "kana") {
		t.Fatal("Version ignores weights")
	}
	if a == alignment.Version(alignment.DefaultWeights(), 5, 0, "mecab") {
		t.Fatal("Version ignores extra parts")
	}
}
