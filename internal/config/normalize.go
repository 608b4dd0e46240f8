package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSource()
	c.normalizeReading()
	c.normalizeMatching()
	c.normalizeWorkflow()
	c.normalizeLogging()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv("ALIGNER_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(strings.TrimSpace(c.Paths.CacheDir)); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSource() {
	c.Source.File = strings.TrimSpace(c.Source.File)
	if c.Source.File == "" {
		c.Source.File = defaultSourceFile
	}
	c.Source.Encoding = strings.ToLower(strings.TrimSpace(c.Source.Encoding))
	if c.Source.Encoding == "" {
		c.Source.Encoding = defaultSourceEncoding
	}
	if len(c.Source.SplittingChars) == 0 {
		c.Source.SplittingChars = append([]string(nil), defaultSplittingChars...)
	}
}

func (c *Config) normalizeReading() {
	c.Reading.Backend = strings.ToLower(strings.TrimSpace(c.Reading.Backend))
	if c.Reading.Backend == "" {
		c.Reading.Backend = defaultReadingBackend
	}
	c.Reading.MecabPath = strings.TrimSpace(c.Reading.MecabPath)
	if value, ok := os.LookupEnv("ALIGNER_MECAB_PATH"); ok && strings.TrimSpace(value) != "" {
		c.Reading.MecabPath = strings.TrimSpace(value)
	}
	if c.Reading.MecabPath == "" {
		c.Reading.MecabPath = defaultMecabPath
	}
	if len(c.Reading.MecabArgs) == 0 {
		c.Reading.MecabArgs = append([]string(nil), defaultMecabArgs...)
	}
	if c.Reading.TimeoutSeconds <= 0 {
		c.Reading.TimeoutSeconds = defaultReadingTimeout
	}
	if c.Reading.CacheEntries <= 0 {
		c.Reading.CacheEntries = defaultReadingCacheSize
	}
}

func (c *Config) normalizeMatching() {
	c.Matching.Strategy = strings.ToLower(strings.TrimSpace(c.Matching.Strategy))
	if c.Matching.Strategy == "" {
		c.Matching.Strategy = defaultStrategy
	}
	if c.Matching.TopK == 0 {
		c.Matching.TopK = defaultTopK
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Workflow.WorkTimeoutSeconds < 0 {
		c.Workflow.WorkTimeoutSeconds = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if value, ok := os.LookupEnv("ALIGNER_NTFY_TOPIC"); ok && strings.TrimSpace(value) != "" {
		c.Notifications.NtfyTopic = strings.TrimSpace(value)
	}
	if c.Notifications.RequestTimeoutSeconds <= 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNtfyTimeout
	}
}
