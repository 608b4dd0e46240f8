package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
)

// RunLogPattern matches the per-run log files under the log directory.
const RunLogPattern = "aligner-*.log"

// ErrNoRunLogs is returned by LatestRunLog when the directory holds no run logs.
var ErrNoRunLogs = errors.New("no run logs")

// LatestRunLog returns the newest run log in dir. Run log names embed a
// sortable timestamp, so the lexically greatest name is the newest.
func LatestRunLog(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, RunLogPattern))
	if err != nil {
		return "", fmt.Errorf("list run logs: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoRunLogs, dir)
	}
	return slices.Max(matches), nil
}

// Last returns up to limit trailing lines of path and the offset just past
// them. A missing file yields no lines and offset 0.
func Last(path string, limit int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		offset, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("seek log file: %w", err)
		}
		return nil, offset, nil
	}

	ring := make([]string, limit)
	count, next := 0, 0
	offset, err := scanLines(file, func(line string) {
		ring[next] = line
		next = (next + 1) % limit
		count = min(count+1, limit)
	})
	if err != nil {
		return nil, 0, err
	}

	lines := make([]string, 0, count)
	start := 0
	if count == limit {
		start = next
	}
	for i := range count {
		lines = append(lines, ring[(start+i)%limit])
	}
	return lines, offset, nil
}

// Follow calls onLine for every complete line appended to path after offset
// until ctx is done. A file truncated below offset is reread from the start.
func Follow(ctx context.Context, path string, offset int64, onLine func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create log watcher: %w", err)
	}
	defer watcher.Close()
	// Watching the directory survives the file being replaced.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	offset, err = readFrom(path, offset, onLine)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("log watcher: %w", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if offset, err = readFrom(path, offset, onLine); err != nil {
				return err
			}
		}
	}
}

func readFrom(path string, offset int64, onLine func(string)) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return offset, fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() < offset {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("seek log file: %w", err)
	}
	consumed, err := scanLines(file, onLine)
	if err != nil {
		return offset, err
	}
	return offset + consumed, nil
}

// scanLines feeds every newline-terminated line of r to onLine and reports how
// many bytes those lines spanned. A trailing partial line is left unread.
func scanLines(r io.Reader, onLine func(string)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var consumed int64
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return consumed, nil
		}
		if err != nil {
			return consumed, fmt.Errorf("read log file: %w", err)
		}
		consumed += int64(len(line))
		onLine(line[:len(line)-1])
	}
}
