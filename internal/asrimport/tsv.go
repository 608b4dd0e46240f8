package asrimport

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jamesohortle/japanese-utilities/internal/store"
)

// ReadTSV parses "path<TAB>text" lines. A line without a tab stores an empty
// transcription for its path. Blank lines are skipped.
func ReadTSV(r io.Reader) ([]store.Transcription, error) {
	var out []store.Transcription
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		path, text, _ := strings.Cut(raw, "\t")
		path = strings.TrimSpace(path)
		if path == "" {
			return nil, fmt.Errorf("line %d: empty path", line)
		}
		out = append(out, store.Transcription{Path: path, Text: strings.TrimSpace(text)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}
	return out, nil
}

// ReadFileList parses one path per line, skipping blank lines.
func ReadFileList(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if path := strings.TrimSpace(scanner.Text()); path != "" {
			out = append(out, path)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file list: %w", err)
	}
	return out, nil
}
