package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jamesohortle/japanese-utilities/internal/alignment"
	"github.com/jamesohortle/japanese-utilities/internal/candidates"
	"github.com/jamesohortle/japanese-utilities/internal/config"
	"github.com/jamesohortle/japanese-utilities/internal/logging"
	"github.com/jamesohortle/japanese-utilities/internal/matchcache"
	"github.com/jamesohortle/japanese-utilities/internal/reading"
	"github.com/jamesohortle/japanese-utilities/internal/services"
	"github.com/jamesohortle/japanese-utilities/internal/store"
)

// Runner coordinates alignment across works.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	matcher   *alignment.Matcher
	extractor *candidates.Extractor
	cache     *matchcache.Cache
	version   string
}

// RunnerOption configures optional Runner behavior.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	transcriber reading.Transcriber
	cache       *matchcache.Cache
}

// WithTranscriber replaces the configured reading backend.
func WithTranscriber(tr reading.Transcriber) RunnerOption {
	return func(o *runnerOptions) { o.transcriber = tr }
}

// WithCache replaces the match cache derived from the configuration.
func WithCache(cache *matchcache.Cache) RunnerOption {
	return func(o *runnerOptions) { o.cache = cache }
}

// NewRunner builds the matcher and cache described by cfg.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...RunnerOption) (*Runner, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "new runner", "config required", nil)
	}
	options := &runnerOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger = logging.NewComponentLogger(logger, "workflow")

	tr := options.transcriber
	if tr == nil {
		cached, err := reading.New(cfg.ReadingSettings())
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "workflow", "new runner", "build reading backend", err)
		}
		tr = cached
	}
	matcher, err := alignment.New(tr, cfg.MatcherOptions(logger)...)
	if err != nil {
		return nil, err
	}

	cache := options.cache
	if cache == nil {
		path := ""
		if cfg.Workflow.CacheEnabled {
			path = cfg.MatchCachePath()
		}
		cache = matchcache.NewCache(path, logger)
	}

	return &Runner{
		cfg:       cfg,
		logger:    logger,
		matcher:   matcher,
		extractor: candidates.NewExtractor(cfg.SplittingRunes()...),
		cache:     cache,
		version:   matcher.Version(cfg.VersionParts()...),
	}, nil
}

// Matcher exposes the configured matcher.
func (r *Runner) Matcher() *alignment.Matcher {
	return r.matcher
}

// Version identifies the configuration results are cached under.
func (r *Runner) Version() string {
	return r.version
}

// Works returns the works discovered under the data directory.
func (r *Runner) Works() ([]string, error) {
	works, err := store.DiscoverWorks(r.cfg.Paths.DataDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "discover works", r.cfg.Paths.DataDir, err)
	}
	return works, nil
}

// Run aligns the named works, or every discovered work when none are named.
// Per-work failures are recorded in the report; the returned error is set only
// when discovery fails or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, works ...string) (*Report, error) {
	if len(works) == 0 {
		discovered, err := r.Works()
		if err != nil {
			return nil, err
		}
		works = discovered
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)
	report := &Report{
		RunID:   runID,
		Version: r.version,
		Started: time.Now(),
		Works:   make([]WorkOutcome, len(works)),
	}
	logger.Info("alignment run started",
		logging.Int("works", len(works)),
		logging.Int("workers", r.cfg.Workflow.Workers),
		logging.String("strategy", r.cfg.Matching.Strategy),
		logging.String("version", r.version),
		logging.String(logging.FieldEventType, "run_started"),
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Workflow.Workers)
	for i, workID := range works {
		group.Go(func() error {
			report.Works[i] = r.processWork(groupCtx, workID)
			return nil
		})
	}
	_ = group.Wait()
	report.Finished = time.Now()

	logger.Info("alignment run finished",
		logging.Int("works", len(works)),
		logging.Int("failed", report.Failed()),
		logging.Int("degraded", report.Degraded()),
		logging.Duration("elapsed", report.Finished.Sub(report.Started)),
		logging.String(logging.FieldEventType, "run_finished"),
	)
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("alignment run interrupted: %w", err)
	}
	return report, nil
}
