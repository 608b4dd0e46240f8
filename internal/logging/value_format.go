package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	logTimestampLayout = "2006-01-02 15:04:05.000"
	// maxConsoleValueRunes truncates long values, typically whole source
	// lines, in console output. JSON output is never truncated.
	maxConsoleValueRunes = 120
)

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(logTimestampLayout)
}

// attrString renders a value for the console header, unquoted.
func attrString(v slog.Value) string {
	return rawValue(v.Resolve())
}

// formatValue renders a value for a console detail line, quoting strings
// that contain spaces (including U+3000) or control characters.
func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString, slog.KindAny:
		s := truncate(rawValue(v))
		if needsQuotes(s) {
			return strconv.Quote(s)
		}
		return s
	default:
		return rawValue(v)
	}
}

func rawValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxConsoleValueRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxConsoleValueRunes]) + "…"
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '=' || r == '"' {
			return true
		}
	}
	return false
}
