package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DatabaseName is the per-work database file name.
const DatabaseName = "data.db"

// ErrUnknownPath is returned when a result names a file path with no row.
var ErrUnknownPath = errors.New("file path not stored")

// DatabasePath returns the database location for a work under dataDir.
func DatabasePath(dataDir, work string) string {
	return filepath.Join(dataDir, work, DatabaseName)
}

// DiscoverWorks lists the directories under dataDir that hold a database,
// sorted by name.
func DiscoverWorks(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var works []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := os.Stat(DatabasePath(dataDir, entry.Name()))
		if err != nil || info.IsDir() {
			continue
		}
		works = append(works, entry.Name())
	}
	sort.Strings(works)
	return works, nil
}
