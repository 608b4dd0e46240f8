package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/jamesohortle/japanese-utilities/internal/config"
	"github.com/jamesohortle/japanese-utilities/internal/deps"
	"github.com/jamesohortle/japanese-utilities/internal/reading"
)

// mecabProbe is a sentence every dictionary can read.
const mecabProbe = "今日は晴れです"

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckMecab runs the configured MeCab once on a probe sentence. It uses a
// 10-second timeout regardless of the configured one.
func CheckMecab(ctx context.Context, settings reading.Settings) Result {
	const name = "MeCab"

	status := deps.CheckBinaries(ctx, []deps.Requirement{{Name: name, Command: settings.MecabPath}})[0]
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	m, err := reading.NewMecab(settings.MecabPath, settings.MecabArgs, 0)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	got, err := reading.Reading(checkCtx, m, mecabProbe)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{Name: name, Detail: "probe timed out (mecab unresponsive)"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("probe failed (%v)", err)}
	}
	if got == "" {
		return Result{Name: name, Detail: "probe returned an empty reading"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s -> %s", mecabProbe, got)}
}

// CheckSystemDeps evaluates the external programs the configuration can use.
// MeCab is optional unless it is the selected reading backend. Julius is
// always optional; it only produces input for 'aligner import julius'.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "MeCab",
			Command:     cfg.Reading.MecabPath,
			Description: "Required for the mecab reading backend",
			Optional:    cfg.Reading.Backend != reading.BackendMecab,
			VersionArgs: []string{"-v"},
		},
		{
			Name:        "Julius",
			Command:     "julius",
			Description: "Speech recognizer whose module-mode output can be imported",
			Optional:    true,
			VersionArgs: []string{"-version"},
		},
	}
	return deps.CheckBinaries(ctx, requirements)
}
