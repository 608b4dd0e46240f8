package reading

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// DefaultMecabArgs asks MeCab for one katakana reading line per input line.
var DefaultMecabArgs = []string{"-Oyomi"}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stdin io.Reader, onStdout func(string)) error
}

// MecabOption configures a Mecab transcriber.
type MecabOption func(*Mecab)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) MecabOption {
	return func(m *Mecab) {
		if exec != nil {
			m.exec = exec
		}
	}
}

// Mecab produces readings with the MeCab morphological analyzer.
type Mecab struct {
	binary  string
	args    []string
	timeout time.Duration
	exec    Executor
}

// NewMecab constructs a MeCab-backed transcriber.
func NewMecab(binary string, args []string, timeoutSeconds int, opts ...MecabOption) (*Mecab, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mecab binary required")
	}
	if len(args) == 0 {
		args = DefaultMecabArgs
	}
	m := &Mecab{
		binary:  binary,
		args:    append([]string(nil), args...),
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Readings implements Transcriber. Empty texts are answered without running
// MeCab; the rest are sent as one line each.
func (m *Mecab) Readings(ctx context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	var (
		input strings.Builder
		slots []int
	)
	for i, text := range texts {
		line := flattenLine(text)
		if line == "" {
			continue
		}
		input.WriteString(line)
		input.WriteByte('\n')
		slots = append(slots, i)
	}
	if len(slots) == 0 {
		return out, nil
	}

	runCtx := ctx
	if m.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	lines := make([]string, 0, len(slots))
	err := m.exec.Run(runCtx, m.binary, m.args, strings.NewReader(input.String()), func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		return nil, fmt.Errorf("mecab: %w", err)
	}
	if len(lines) != len(slots) {
		return nil, fmt.Errorf("mecab returned %d lines for %d inputs", len(lines), len(slots))
	}
	for j, slot := range slots {
		out[slot] = strings.TrimSpace(lines[j])
	}
	return out, nil
}

// flattenLine keeps one input per line; MeCab treats a newline as a sentence
// boundary and would otherwise emit extra output lines.
func flattenLine(text string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text))
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stdin io.Reader, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdin = stdin
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		onStdout(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("wait command: %w: %s", err, msg)
		}
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
