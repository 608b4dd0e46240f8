package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/notifications"
	"github.com/jamesohortle/japanese-utilities/internal/workflow"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var settle time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-align works whenever their database or source text changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := requirePreflight(cmd, cfg); err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, true)
			if err != nil {
				return err
			}
			runner, err := workflow.NewRunner(cfg, logger)
			if err != nil {
				return err
			}
			notifier := notifications.NewService(cfg.Notifications)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			err = runner.Watch(cmd.Context(), settle, func(report *workflow.Report) {
				printReport(out, report, colorize)
				notifyRun(cmd.Context(), notifier, logger, report)
			})
			if err != nil {
				// The command context may already be done; give the alert its own deadline.
				notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), 15*time.Second)
				defer cancel()
				_ = notifier.NotifyError(notifyCtx, err, "watch")
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&settle, "settle", 2*time.Second, "Quiet period before a changed work is re-aligned")
	return cmd
}
