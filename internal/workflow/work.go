package workflow

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/jamesohortle/japanese-utilities/internal/alignment"
	"github.com/jamesohortle/japanese-utilities/internal/candidates"
	"github.com/jamesohortle/japanese-utilities/internal/config"
	"github.com/jamesohortle/japanese-utilities/internal/logging"
	"github.com/jamesohortle/japanese-utilities/internal/matchcache"
	"github.com/jamesohortle/japanese-utilities/internal/services"
	"github.com/jamesohortle/japanese-utilities/internal/store"
)

// LockName is the per-work lock file created inside the work directory.
const LockName = ".aligner.lock"

func (r *Runner) processWork(ctx context.Context, workID string) WorkOutcome {
	started := time.Now()
	ctx = services.WithWorkID(ctx, workID)
	logger := logging.WithContext(ctx, r.logger)

	outcome, err := r.alignWork(ctx, workID)
	outcome.WorkID = workID
	outcome.Duration = time.Since(started)
	outcome.Status = services.Classify(err)
	outcome.Err = err
	if err == nil && outcome.ItemFailures > 0 {
		outcome.Status = "degraded"
	}

	switch {
	case outcome.Status == "degraded":
		logging.WarnWithContext(logger, "work complete with failed transcriptions", "work_degraded",
			logging.Int("transcriptions", outcome.Total),
			logging.Int("matched", outcome.Matched),
			logging.Int("failed_items", outcome.ItemFailures),
			logging.String(logging.FieldErrorHint, "check the reading backend; the work is re-aligned on the next run"),
			logging.String(logging.FieldImpact, "failed transcriptions stored as unmatched"))
	case err == nil:
		logger.Info("work complete",
			logging.Int("transcriptions", outcome.Total),
			logging.Int("matched", outcome.Matched),
			logging.Bool("cache_hit", outcome.CacheHit),
			logging.Duration("elapsed", outcome.Duration),
			logging.String(logging.FieldEventType, "work_complete"),
		)
	case errors.Is(err, services.ErrLocked):
		logging.WarnWithContext(logger, "work skipped", "work_locked",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "another aligner process holds the work lock"),
			logging.String(logging.FieldImpact, "work left unchanged this run"))
	default:
		logging.ErrorWithContext(logger, "work failed", "work_failed",
			logging.Error(err),
			logging.String("outcome", outcome.Status),
			logging.String(logging.FieldErrorHint, hintFor(err)),
			logging.Alert("work_failure"))
	}
	return outcome
}

func (r *Runner) alignWork(ctx context.Context, workID string) (WorkOutcome, error) {
	var outcome WorkOutcome

	if info, err := os.Stat(r.cfg.WorkDir(workID)); err != nil || !info.IsDir() {
		return outcome, services.Wrap(services.ErrNotFound, "workflow", "lock work", "no such work "+workID, err)
	}
	lock := flock.New(filepath.Join(r.cfg.WorkDir(workID), LockName))
	locked, err := lock.TryLock()
	if err != nil {
		return outcome, services.Wrap(services.ErrCollaborator, "workflow", "lock work", workID, err)
	}
	if !locked {
		return outcome, services.Wrap(services.ErrLocked, "workflow", "lock work", workID, nil)
	}
	defer func() { _ = lock.Unlock() }()

	if seconds := r.cfg.Workflow.WorkTimeoutSeconds; seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
		defer cancel()
	}

	ctx = services.WithStage(ctx, "load")
	st, err := store.Open(ctx, store.DatabasePath(r.cfg.Paths.DataDir, workID))
	if err != nil {
		if errors.Is(err, store.ErrNoDatabase) {
			return outcome, services.Wrap(services.ErrNotFound, "load", "open database", workID, err)
		}
		return outcome, services.Wrap(services.ErrCollaborator, "load", "open database", workID, err)
	}
	defer st.Close()

	in, err := r.loadInputs(ctx, st, workID)
	if err != nil {
		return outcome, err
	}
	outcome.Total = len(in.paths)
	outcome.Candidates = len(in.candidates)

	ctx = services.WithStage(ctx, "align")
	key := matchcache.Key{WorkID: workID, Version: r.version}
	results, hit, err := r.cache.Resolve(key, in.digest(), func() ([]alignment.MatchResult, error) {
		results, failures, err := r.align(ctx, in)
		if err != nil {
			return nil, err
		}
		outcome.ItemFailures = failures
		if failures > 0 {
			return results, matchcache.SkipStore
		}
		return results, nil
	})
	if err != nil {
		return outcome, err
	}
	outcome.CacheHit = hit
	logging.WithContext(ctx, r.logger).Debug("alignment resolved",
		logging.Args(logging.DecisionAttrs("match_cache", cacheResult(hit), "keyed by work and version")...)...)

	ctx = services.WithStage(ctx, "persist")
	rows, err := resultsToRows(in.paths, results)
	if err != nil {
		return outcome, err
	}
	if err := st.PutAll(ctx, rows); err != nil {
		if errors.Is(err, store.ErrUnknownPath) {
			return outcome, services.Wrap(services.ErrInvariant, "persist", "write results", workID, err)
		}
		return outcome, services.Wrap(services.ErrCollaborator, "persist", "write results", workID, err)
	}
	for _, res := range results {
		if res.Matched() {
			outcome.Matched++
		}
	}
	return outcome, nil
}

type workInputs struct {
	paths      []string
	texts      []string
	candidates []string
}

func (in workInputs) digest() string {
	keyed := make([]string, len(in.paths))
	for i := range in.paths {
		keyed[i] = in.paths[i] + "\t" + in.texts[i]
	}
	return matchcache.InputDigest(keyed, in.candidates)
}

func (r *Runner) loadInputs(ctx context.Context, st *store.Store, workID string) (workInputs, error) {
	var in workInputs
	source, err := candidates.LoadSource(r.cfg.SourcePath(workID), r.cfg.Source.Encoding)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return in, services.Wrap(services.ErrNotFound, "load", "read source text", r.cfg.SourcePath(workID), err)
		}
		return in, services.Wrap(services.ErrCollaborator, "load", "read source text", r.cfg.SourcePath(workID), err)
	}
	in.candidates = r.extractor.Split(source)

	stored, err := st.Transcriptions(ctx)
	if err != nil {
		return in, services.Wrap(services.ErrCollaborator, "load", "read transcriptions", workID, err)
	}
	in.paths = make([]string, len(stored))
	in.texts = make([]string, len(stored))
	for i, t := range stored {
		in.paths[i] = t.Path
		in.texts[i] = t.Text
	}
	return in, nil
}

// align runs the configured strategy. In the single-item strategy a failed
// transcription is stored as unmatched and counted; only cancellation and
// invariant violations abort the work.
func (r *Runner) align(ctx context.Context, in workInputs) ([]alignment.MatchResult, int, error) {
	cands, err := r.matcher.PrepareCandidates(ctx, in.candidates)
	if err != nil {
		return nil, 0, err
	}
	trans, err := r.matcher.PrepareTranscriptions(ctx, in.paths, in.texts)
	if err != nil {
		return nil, 0, err
	}
	if r.cfg.Matching.Strategy != config.StrategySingle {
		results, err := r.matcher.AlignWork(ctx, trans, cands)
		return results, 0, err
	}
	logger := logging.WithContext(ctx, r.logger)
	results := make([]alignment.MatchResult, len(trans))
	failures := 0
	for i, t := range trans {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		res, err := r.matcher.Align(ctx, t, cands)
		switch {
		case err == nil:
			results[i] = res
		case ctx.Err() != nil:
			return nil, 0, ctx.Err()
		case errors.Is(err, services.ErrInvariant):
			return nil, 0, err
		default:
			failures++
			logging.WarnWithContext(logger, "transcription alignment failed", "item_failed",
				logging.String("file_path", in.paths[i]),
				logging.Error(err),
				logging.String(logging.FieldImpact, "transcription stored as unmatched"))
			results[i] = alignment.MatchResult{TranscriptionIndex: t.Index, CandidateIndex: alignment.Unmatched}
		}
	}
	return results, failures, nil
}

func resultsToRows(paths []string, results []alignment.MatchResult) ([]store.Result, error) {
	rows := make([]store.Result, 0, len(results))
	for _, res := range results {
		if res.TranscriptionIndex < 0 || res.TranscriptionIndex >= len(paths) {
			return nil, services.Wrap(services.ErrInvariant, "persist", "map results",
				"transcription index out of range", nil)
		}
		rows = append(rows, store.Result{
			Path:        paths[res.TranscriptionIndex],
			SourceIndex: res.CandidateIndex,
			Text:        res.Text,
		})
	}
	return rows, nil
}

func cacheResult(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return "check the work directory holds data.db and the source text"
	case errors.Is(err, services.ErrCollaborator):
		return "check the reading backend and database access"
	case errors.Is(err, services.ErrInvariant):
		return "stored results may be stale; rerun with the cache cleared"
	case errors.Is(err, context.DeadlineExceeded):
		return "raise workflow.work_timeout_seconds"
	default:
		return "rerun with --log-level debug"
	}
}
