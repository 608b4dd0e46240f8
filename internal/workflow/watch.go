package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jamesohortle/japanese-utilities/internal/logging"
	"github.com/jamesohortle/japanese-utilities/internal/store"
)

// Watch re-aligns works whose database or source text changes, and works
// that appear under the data directory, until ctx ends. Changes are batched
// until the tree has been quiet for settle. Events caused by the runner's own
// writes are ignored for settle after each pass.
func (r *Runner) Watch(ctx context.Context, settle time.Duration, onReport func(*Report)) error {
	if settle <= 0 {
		settle = time.Second
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dataDir := r.cfg.Paths.DataDir
	if err := watcher.Add(dataDir); err != nil {
		return fmt.Errorf("watch dir %q: %w", dataDir, err)
	}
	works, err := r.Works()
	if err != nil {
		return err
	}
	for _, work := range works {
		r.watchWork(watcher, work)
	}

	logger := logging.WithContext(ctx, r.logger)
	logger.Info("watching for changes",
		logging.String("data_dir", dataDir),
		logging.Int("works", len(works)),
		logging.String(logging.FieldEventType, "watch_started"),
	)

	pending := make(map[string]struct{})
	quietUntil := make(map[string]time.Time)
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			work := r.workForEvent(event)
			if work == "" || time.Now().Before(quietUntil[work]) {
				continue
			}
			if event.Has(fsnotify.Create) {
				r.watchWork(watcher, work)
			}
			pending[work] = struct{}{}
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(logger, "watcher error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "some changes may be missed until the next event"))
		case <-timer.C:
			batch := r.readyWorks(pending)
			clear(pending)
			if len(batch) == 0 {
				continue
			}
			report, err := r.Run(ctx, batch...)
			for _, work := range batch {
				quietUntil[work] = time.Now().Add(settle)
			}
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if onReport != nil {
				onReport(report)
			}
		}
	}
}

// workForEvent maps a path under the data directory to its work, or "" when
// the event is irrelevant.
func (r *Runner) workForEvent(event fsnotify.Event) string {
	if filepath.Base(event.Name) == LockName {
		return ""
	}
	rel, err := filepath.Rel(r.cfg.Paths.DataDir, event.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	work, rest, _ := strings.Cut(rel, string(filepath.Separator))
	if rest == "" {
		// The work directory itself only matters when it appears.
		if !event.Has(fsnotify.Create) {
			return ""
		}
		return work
	}
	if strings.HasPrefix(filepath.Base(event.Name), store.DatabaseName) {
		return work
	}
	if event.Name == r.cfg.SourcePath(work) || filepath.Dir(event.Name) == filepath.Dir(r.cfg.SourcePath(work)) {
		return work
	}
	if filepath.Dir(event.Name) == r.cfg.WorkDir(work) && event.Has(fsnotify.Create) {
		// A new subdirectory may hold the source text.
		return work
	}
	return ""
}

// watchWork adds the work directory and the directory of its source text.
// Missing directories are picked up later through Create events.
func (r *Runner) watchWork(watcher *fsnotify.Watcher, work string) {
	for _, dir := range []string{r.cfg.WorkDir(work), filepath.Dir(r.cfg.SourcePath(work))} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if slices.Contains(watcher.WatchList(), dir) {
			continue
		}
		_ = watcher.Add(dir)
	}
}

// readyWorks returns the pending works that have a database, sorted.
func (r *Runner) readyWorks(pending map[string]struct{}) []string {
	out := make([]string, 0, len(pending))
	for work := range pending {
		info, err := os.Stat(store.DatabasePath(r.cfg.Paths.DataDir, work))
		if err != nil || info.IsDir() {
			continue
		}
		out = append(out, work)
	}
	slices.Sort(out)
	return out
}
