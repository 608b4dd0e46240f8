package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// versionTimeout bounds a single version probe.
const versionTimeout = 5 * time.Second

// Requirement describes an external program the aligner can call.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArgs, when set, are passed to the program to print its version.
	VersionArgs []string
}

// Status reports whether a requirement was found and, if probed, its version.
type Status struct {
	Name        string
	Command     string
	Path        string
	Version     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries resolves each requirement on PATH and probes the version of
// the ones found. A failed version probe leaves the program available.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, check(ctx, req))
	}
	return results
}

func check(ctx context.Context, req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(status.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Path = path
	status.Available = true
	if len(req.VersionArgs) > 0 {
		status.Version = probeVersion(ctx, path, req.VersionArgs)
	}
	return status
}

// probeVersion returns the first non-empty output line of the version
// command. Some tools exit non-zero after printing it, so the exit status is
// ignored.
func probeVersion(ctx context.Context, path string, args []string) string {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	_ = cmd.Run()

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return ""
}
