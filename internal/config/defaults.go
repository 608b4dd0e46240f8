package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	defaultConfigPath        = "~/.config/aligner/config.toml"
	defaultDataDir           = "~/.local/share/aligner/data"
	defaultLogDir            = "~/.local/share/aligner/logs"
	defaultSourceFile        = "stripped_text/stripped.txt"
	defaultSourceEncoding    = "utf-8"
	defaultReadingBackend    = "kana"
	defaultMecabPath         = "mecab"
	defaultReadingTimeout    = 120
	defaultReadingCacheSize  = 50000
	defaultPhoneticWeight    = 0.75
	defaultPositionWeight    = 5
	defaultAcceptance        = 0.5
	defaultTopK              = 5
	defaultStrategy          = StrategyBatch
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultLogRetentionDays  = 30
	defaultWorkTimeout       = 0
	defaultCacheEnabled      = true
	defaultWindowScoreCutoff = 0
	defaultNtfyTimeout       = 10
	matchCacheFile           = "match_cache.json"
)

// Strategy names accepted in matching.strategy.
const (
	StrategyBatch  = "batch"
	StrategySingle = "single"
)

var (
	defaultSplittingChars = []string{"\n", "。"}
	defaultMecabArgs      = []string{"-Oyomi"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir(),
		},
		Source: Source{
			File:           defaultSourceFile,
			Encoding:       defaultSourceEncoding,
			SplittingChars: append([]string(nil), defaultSplittingChars...),
		},
		Reading: Reading{
			Backend:        defaultReadingBackend,
			MecabPath:      defaultMecabPath,
			MecabArgs:      append([]string(nil), defaultMecabArgs...),
			TimeoutSeconds: defaultReadingTimeout,
			CacheEntries:   defaultReadingCacheSize,
		},
		Matching: Matching{
			PhoneticWeight:      defaultPhoneticWeight,
			PositionWeight:      defaultPositionWeight,
			AcceptanceThreshold: defaultAcceptance,
			TopK:                defaultTopK,
			WindowScoreCutoff:   defaultWindowScoreCutoff,
			Strategy:            defaultStrategy,
		},
		Workflow: Workflow{
			Workers:            runtime.GOMAXPROCS(0),
			WorkTimeoutSeconds: defaultWorkTimeout,
			CacheEnabled:       defaultCacheEnabled,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeout,
		},
	}
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "aligner")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/aligner"
	}
	return filepath.Join(home, ".cache", "aligner")
}
