package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	CacheDir string `toml:"cache_dir"`
}

// Source describes where the source text of a work lives and how it is split.
type Source struct {
	File           string   `toml:"file"`
	Encoding       string   `toml:"encoding"`
	SplittingChars []string `toml:"splitting_chars"`
}

// Reading selects the phonetic transcriber.
type Reading struct {
	Backend        string   `toml:"backend"`
	MecabPath      string   `toml:"mecab_path"`
	MecabArgs      []string `toml:"mecab_args"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	CacheEntries   int      `toml:"cache_entries"`
}

// Matching holds the scoring constants and the alignment strategy.
type Matching struct {
	PhoneticWeight      float64 `toml:"phonetic_weight"`
	PositionWeight      float64 `toml:"position_weight"`
	AcceptanceThreshold float64 `toml:"acceptance_threshold"`
	TopK                int     `toml:"top_k"`
	WindowScoreCutoff   int     `toml:"window_score_cutoff"`
	Strategy            string  `toml:"strategy"`
}

// Workflow contains worker pool settings.
type Workflow struct {
	Workers            int  `toml:"workers"`
	WorkTimeoutSeconds int  `toml:"work_timeout_seconds"`
	CacheEnabled       bool `toml:"cache_enabled"`
}

// Logging contains log output settings.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Notifications configures ntfy delivery of run summaries.
type Notifications struct {
	NtfyTopic             string `toml:"ntfy_topic"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	NotifyOnSuccess       bool   `toml:"notify_on_success"`
}

// Config encapsulates all configuration values for the aligner.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Source   Source   `toml:"source"`
	Reading  Reading  `toml:"reading"`
	Matching Matching `toml:"matching"`
	Workflow Workflow `toml:"workflow"`
	Logging  Logging  `toml:"logging"`

	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("aligner.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and cache directories. The data directory
// must already exist since works are produced upstream.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.CacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// WorkDir returns the directory of the named work.
func (c *Config) WorkDir(workID string) string {
	return filepath.Join(c.Paths.DataDir, workID)
}

// SourcePath returns the source text file of the named work.
func (c *Config) SourcePath(workID string) string {
	if filepath.IsAbs(c.Source.File) {
		return c.Source.File
	}
	return filepath.Join(c.WorkDir(workID), c.Source.File)
}

// MatchCachePath returns the location of the match cache file.
func (c *Config) MatchCachePath() string {
	return filepath.Join(c.Paths.CacheDir, matchCacheFile)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
