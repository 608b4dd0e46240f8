package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/config"
	"github.com/jamesohortle/japanese-utilities/internal/logging"
	"github.com/jamesohortle/japanese-utilities/internal/logs"
	"github.com/jamesohortle/japanese-utilities/internal/matchcache"
	"github.com/jamesohortle/japanese-utilities/internal/store"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// logger builds the command logger on the command's stderr. When runLog is
// true a JSON copy goes to a per-run file under the log directory and old run
// logs are pruned.
func (c *commandContext) logger(cmd *cobra.Command, runLog bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
		level = *c.logLevelFlag
	}
	opts := logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	}
	if runLog {
		opts.LogFile = logging.RunLogPath(cfg.Paths.LogDir, time.Now())
	}
	logger, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if runLog {
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
			Dir:     cfg.Paths.LogDir,
			Pattern: logs.RunLogPattern,
			Exclude: []string{opts.LogFile},
		})
	}
	return logger, nil
}

func (c *commandContext) matchCache(logger *slog.Logger) (*matchcache.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return matchcache.NewCache(cfg.MatchCachePath(), logger), nil
}

// openWork opens the database of an existing work.
func (c *commandContext) openWork(cmd *cobra.Command, workID string) (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cmd.Context(), store.DatabasePath(cfg.Paths.DataDir, workID))
	if err != nil {
		return nil, fmt.Errorf("open work %s: %w", workID, err)
	}
	return st, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
