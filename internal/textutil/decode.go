package textutil

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// LookupEncoding resolves a configured source encoding name. The empty string
// means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "shift_jis", "shift-jis", "sjis", "cp932":
		return japanese.ShiftJIS, nil
	case "euc-jp", "eucjp":
		return japanese.EUCJP, nil
	case "iso-2022-jp":
		return japanese.ISO2022JP, nil
	default:
		return nil, fmt.Errorf("unsupported text encoding %q", name)
	}
}

// DecodeText converts raw file contents in the named encoding to UTF-8 and
// unifies line endings to "\n".
func DecodeText(data []byte, encodingName string) (string, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s text: %w", encodingName, err)
	}
	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}
