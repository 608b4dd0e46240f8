package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jamesohortle/japanese-utilities/internal/config"
)

const userAgent = "aligner/0.1.0"

// Summary is the part of a run report worth telling a human about.
type Summary struct {
	RunID       string
	Works       int
	Failed      int
	Skipped     int
	FailedItems int
	Matched     int
	Unmatched   int
	Duration    time.Duration
	FailedWorks []string
}

// Service is the notification surface used by the command layer.
type Service interface {
	NotifyRunCompleted(ctx context.Context, summary Summary) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds an ntfy-backed service, or a no-op one when
// notifications.ntfy_topic is empty.
func NewService(cfg config.Notifications) Service {
	topic := strings.TrimSpace(cfg.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: timeout},
		onSuccess: cfg.NotifyOnSuccess,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	onSuccess bool
}

// NotifyRunCompleted reports a finished run. Clean runs are only sent when
// notify_on_success is set.
func (n *ntfyService) NotifyRunCompleted(ctx context.Context, s Summary) error {
	if s.Works == 0 {
		return nil
	}
	if s.Failed == 0 && s.FailedItems == 0 && !n.onSuccess {
		return nil
	}
	return n.send(ctx, runPayload(s))
}

func runPayload(s Summary) payload {
	duration := s.Duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	counts := fmt.Sprintf("%d matched, %d unmatched", s.Matched, s.Unmatched)
	if s.Failed == 0 && s.FailedItems == 0 {
		message := fmt.Sprintf("Aligned %d works in %s (%s)", s.Works-s.Skipped, duration, counts)
		if s.Skipped > 0 {
			message += fmt.Sprintf("\n%d skipped while locked", s.Skipped)
		}
		return payload{
			title:   "Aligner - Run Complete",
			message: message,
			tags:    []string{"aligner", "run", "completed"},
		}
	}
	message := fmt.Sprintf("%d of %d works failed in %s (%s)", s.Failed, s.Works, duration, counts)
	if s.Failed == 0 {
		message = fmt.Sprintf("Aligned %d works in %s (%s)", s.Works-s.Skipped, duration, counts)
	}
	if s.FailedItems > 0 {
		message += fmt.Sprintf("\n%d transcriptions could not be aligned", s.FailedItems)
	}
	if len(s.FailedWorks) > 0 {
		message += "\nFailed: " + strings.Join(s.FailedWorks, ", ")
	}
	return payload{
		title:    "Aligner - Run Complete (with errors)",
		message:  message,
		tags:     []string{"aligner", "run", "failed"},
		priority: "high",
	}
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}
	return n.send(ctx, payload{
		title:    "Aligner - Error",
		message:  builder.String(),
		tags:     []string{"aligner", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "Aligner - Test",
		message:  "Notification system test",
		tags:     []string{"aligner", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, Summary) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error  { return nil }
func (noopService) TestNotification(context.Context) error            { return nil }
