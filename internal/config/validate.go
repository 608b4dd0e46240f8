package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/jamesohortle/japanese-utilities/internal/reading"
	"github.com/jamesohortle/japanese-utilities/internal/textutil"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateReading(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("paths.data_dir is required. Set ALIGNER_DATA_DIR env var or edit %s (create with 'aligner config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateSource() error {
	if _, err := textutil.LookupEncoding(c.Source.Encoding); err != nil {
		return fmt.Errorf("source.encoding: %w", err)
	}
	for _, value := range c.Source.SplittingChars {
		if utf8.RuneCountInString(value) != 1 {
			return fmt.Errorf("source.splitting_chars: %q must be a single character", value)
		}
	}
	return nil
}

func (c *Config) validateReading() error {
	switch c.Reading.Backend {
	case reading.BackendKana:
	case reading.BackendMecab:
		if strings.TrimSpace(c.Reading.MecabPath) == "" {
			return errors.New("reading.mecab_path must be set when reading.backend is mecab")
		}
	default:
		return fmt.Errorf("reading.backend must be %q or %q, got %q", reading.BackendKana, reading.BackendMecab, c.Reading.Backend)
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	switch {
	case math.IsNaN(m.PhoneticWeight) || m.PhoneticWeight < 0:
		return errors.New("matching.phonetic_weight must be >= 0")
	case math.IsNaN(m.PositionWeight) || m.PositionWeight < 0:
		return errors.New("matching.position_weight must be >= 0")
	case math.IsNaN(m.AcceptanceThreshold) || m.AcceptanceThreshold < 0 || m.AcceptanceThreshold > 1:
		return errors.New("matching.acceptance_threshold must be between 0 and 1")
	case m.TopK < 0:
		return errors.New("matching.top_k must be positive")
	case m.WindowScoreCutoff < 0 || m.WindowScoreCutoff > 100:
		return errors.New("matching.window_score_cutoff must be between 0 and 100")
	}
	switch m.Strategy {
	case StrategyBatch, StrategySingle:
	default:
		return fmt.Errorf("matching.strategy must be %q or %q, got %q", StrategyBatch, StrategySingle, m.Strategy)
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.Workers <= 0 {
		return errors.New("workflow.workers must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	u, err := url.Parse(topic)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic must be an http(s) URL, got %q", topic)
	}
	return nil
}
