package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jamesohortle/japanese-utilities/internal/config"
	"github.com/jamesohortle/japanese-utilities/internal/notifications"
)

type capturedRequest struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, func() []capturedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []capturedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, capturedRequest{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), reqs...)
	}
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	svc := notifications.NewService(config.Notifications{})
	if err := svc.NotifyRunCompleted(context.Background(), notifications.Summary{Works: 1, Failed: 1}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := svc.TestNotification(context.Background()); err != nil {
		t.Fatalf("expected noop test notification to return nil, got %v", err)
	}
}

func TestNotifyRunCompleted(t *testing.T) {
	tests := []struct {
		name          string
		onSuccess     bool
		summary       notifications.Summary
		expectSent    bool
		expectTitle   string
		expectMessage string
		expectTags    string
		expectPrio    string
	}{
		{
			name:       "clean run suppressed by default",
			summary:    notifications.Summary{Works: 2, Matched: 10},
			expectSent: false,
		},
		{
			name:          "clean run with notify_on_success",
			onSuccess:     true,
			summary:       notifications.Summary{Works: 3, Skipped: 1, Matched: 8, Unmatched: 2, Duration: 90 * time.Second},
			expectSent:    true,
			expectTitle:   "Aligner - Run Complete",
			expectMessage: "Aligned 2 works in 1m30s (8 matched, 2 unmatched)\n1 skipped while locked",
			expectTags:    "aligner,run,completed",
		},
		{
			name:          "failed run",
			summary:       notifications.Summary{Works: 2, Failed: 1, Matched: 4, Unmatched: 1, Duration: 2 * time.Second, FailedWorks: []string{"missing"}},
			expectSent:    true,
			expectTitle:   "Aligner - Run Complete (with errors)",
			expectMessage: "1 of 2 works failed in 2s (4 matched, 1 unmatched)\nFailed: missing",
			expectTags:    "aligner,run,failed",
			expectPrio:    "high",
		},
		{
			name:          "failed transcriptions are reported",
			summary:       notifications.Summary{Works: 1, FailedItems: 2, Matched: 3, Unmatched: 2, Duration: time.Second},
			expectSent:    true,
			expectTitle:   "Aligner - Run Complete (with errors)",
			expectMessage: "Aligned 1 works in 1s (3 matched, 2 unmatched)\n2 transcriptions could not be aligned",
			expectTags:    "aligner,run,failed",
			expectPrio:    "high",
		},
		{
			name:       "empty run",
			onSuccess:  true,
			summary:    notifications.Summary{},
			expectSent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, requests := newCaptureServer(t, http.StatusOK)
			svc := notifications.NewService(config.Notifications{NtfyTopic: srv.URL, NotifyOnSuccess: tt.onSuccess})
			if err := svc.NotifyRunCompleted(context.Background(), tt.summary); err != nil {
				t.Fatalf("NotifyRunCompleted: %v", err)
			}
			got := requests()
			if !tt.expectSent {
				if len(got) != 0 {
					t.Fatalf("expected no request, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 request, got %d", len(got))
			}
			req := got[0]
			if req.title != tt.expectTitle || req.body != tt.expectMessage || req.tags != tt.expectTags || req.priority != tt.expectPrio {
				t.Fatalf("unexpected request %+v", req)
			}
		})
	}
}

func TestNotifyErrorAndServerFailure(t *testing.T) {
	srv, requests := newCaptureServer(t, http.StatusOK)
	svc := notifications.NewService(config.Notifications{NtfyTopic: srv.URL})
	if err := svc.NotifyError(context.Background(), errors.New("watch stopped "), "watch"); err != nil {
		t.Fatalf("NotifyError: %v", err)
	}
	if got := requests(); len(got) != 1 || got[0].body != "Error with watch: watch stopped" {
		t.Fatalf("unexpected requests %+v", got)
	}

	failing, _ := newCaptureServer(t, http.StatusForbidden)
	svc = notifications.NewService(config.Notifications{NtfyTopic: failing.URL})
	err := svc.TestNotification(context.Background())
	if err == nil || !strings.Contains(err.Error(), "ntfy returned 403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}
