package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/logging"
	"github.com/jamesohortle/japanese-utilities/internal/notifications"
	"github.com/jamesohortle/japanese-utilities/internal/workflow"
)

func newNotifyCommand(ctx *commandContext) *cobra.Command {
	notifyCmd := &cobra.Command{
		Use:   "notify",
		Short: "Notification utilities",
	}
	notifyCmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test notification to the configured ntfy topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Notifications.NtfyTopic == "" {
				fmt.Fprintln(out, renderStatusLine("Notifications", statusWarn, "notifications.ntfy_topic is not set", shouldColorize(out)))
				return nil
			}
			if err := notifications.NewService(cfg.Notifications).TestNotification(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Sent test notification to %s\n", cfg.Notifications.NtfyTopic)
			return nil
		},
	})
	return notifyCmd
}

func runSummary(report *workflow.Report) notifications.Summary {
	s := notifications.Summary{
		RunID:    report.RunID,
		Works:    len(report.Works),
		Failed:   report.Failed(),
		Skipped:  report.Skipped(),
		Duration: report.Finished.Sub(report.Started),
	}
	for _, w := range report.Works {
		s.Matched += w.Matched
		s.Unmatched += w.Unmatched()
		s.FailedItems += w.ItemFailures
		if w.Err != nil && w.Status != "skipped" {
			s.FailedWorks = append(s.FailedWorks, w.WorkID)
		}
	}
	return s
}

// notifyRun publishes a run summary. Delivery failures are logged, never
// returned.
func notifyRun(ctx context.Context, svc notifications.Service, logger *slog.Logger, report *workflow.Report) {
	if err := svc.NotifyRunCompleted(ctx, runSummary(report)); err != nil {
		logging.WarnWithContext(logger, "run notification failed", "notification_failed",
			logging.String("run_id", report.RunID),
			logging.Error(err),
			logging.String(logging.FieldImpact, "run summary was not delivered"))
	}
}
