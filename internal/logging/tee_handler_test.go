package logging

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestNewTeeHandlerCollapses(t *testing.T) {
	if _, ok := newTeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler for all nil handlers")
	}
	inner := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	if h := newTeeHandler(nil, inner, nil); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsEachLevel(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	infoHandler := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newTeeHandler(infoHandler, debugHandler)).With("work_id", "kokoro")
	logger.Debug("window search")
	logger.Info("work aligned", slog.Int("matched", 3))

	if bytes.Contains(infoBuf.Bytes(), []byte("window search")) {
		t.Error("info handler should not receive debug records")
	}
	if !bytes.Contains(debugBuf.Bytes(), []byte("window search")) {
		t.Error("debug handler should receive debug records")
	}
	for name, buf := range map[string]*bytes.Buffer{"info": &infoBuf, "debug": &debugBuf} {
		if !bytes.Contains(buf.Bytes(), []byte(`"work_id":"kokoro"`)) || !bytes.Contains(buf.Bytes(), []byte(`"matched":3`)) {
			t.Errorf("%s handler missing attrs: %s", name, buf.String())
		}
	}
}

func TestFormatValueQuotingAndTruncation(t *testing.T) {
	long := string(bytes.Repeat([]byte("あ"), maxConsoleValueRunes+5))
	tests := []struct {
		name  string
		value slog.Value
		want  string
	}{
		{"plain", slog.StringValue("今日は晴れです。"), "今日は晴れです。"},
		{"ideographic space", slog.StringValue("今日は　晴れ"), "\"今日は　晴れ\""},
		{"empty", slog.StringValue(""), `""`},
		{"int", slog.IntValue(-1), "-1"},
		{"long", slog.StringValue(long), string([]rune(long)[:maxConsoleValueRunes]) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.value); got != tt.want {
				t.Fatalf("formatValue = %q, want %q", got, tt.want)
			}
		})
	}
}
