package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/config"
	"github.com/jamesohortle/japanese-utilities/internal/notifications"
	"github.com/jamesohortle/japanese-utilities/internal/preflight"
	"github.com/jamesohortle/japanese-utilities/internal/workflow"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var (
		strategy  string
		workers   int
		noCache   bool
		skipCheck bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "align [work...]",
		Short: "Align the named works, or every work under the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyAlignOverrides(cfg, strategy, workers, noCache); err != nil {
				return err
			}
			if !skipCheck {
				if err := requirePreflight(cmd, cfg); err != nil {
					return err
				}
			}
			logger, err := ctx.logger(cmd, true)
			if err != nil {
				return err
			}
			runner, err := workflow.NewRunner(cfg, logger)
			if err != nil {
				return err
			}
			report, err := runner.Run(cmd.Context(), args...)
			if err != nil && report == nil {
				return err
			}
			notifyRun(cmd.Context(), notifications.NewService(cfg.Notifications), logger, report)
			if handled, werr := writeStructured(cmd, format, reportView(report)); handled {
				if werr != nil {
					return werr
				}
			} else {
				printReport(cmd.OutOrStdout(), report, shouldColorize(cmd.OutOrStdout()))
			}
			if err != nil {
				return err
			}
			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d works failed", failed, len(report.Works))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Override matching.strategy (batch or single)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Override workflow.workers")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Recompute every work instead of reusing cached results")
	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "Skip preflight checks")
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "Output format (table, json, yaml)")
	return cmd
}

func applyAlignOverrides(cfg *config.Config, strategy string, workers int, noCache bool) error {
	if s := strings.ToLower(strings.TrimSpace(strategy)); s != "" {
		cfg.Matching.Strategy = s
	}
	if workers > 0 {
		cfg.Workflow.Workers = workers
	}
	if noCache {
		cfg.Workflow.CacheEnabled = false
	}
	return cfg.Validate()
}

func requirePreflight(cmd *cobra.Command, cfg *config.Config) error {
	failed := preflight.Failed(preflight.RunAll(cmd.Context(), cfg))
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(failed))
	for _, r := range failed {
		parts = append(parts, r.Name+": "+r.Detail)
	}
	return fmt.Errorf("preflight failed (run 'aligner check' for details): %s", strings.Join(parts, "; "))
}

type workView struct {
	WorkID      string  `json:"work_id" yaml:"work_id"`
	Status      string  `json:"status" yaml:"status"`
	Total       int     `json:"transcriptions" yaml:"transcriptions"`
	Matched     int     `json:"matched" yaml:"matched"`
	Unmatched   int     `json:"unmatched" yaml:"unmatched"`
	Candidates  int     `json:"candidates" yaml:"candidates"`
	FailedItems int     `json:"failed_items,omitempty" yaml:"failed_items,omitempty"`
	CacheHit    bool    `json:"cache_hit" yaml:"cache_hit"`
	Seconds     float64 `json:"seconds" yaml:"seconds"`
	Error       string  `json:"error,omitempty" yaml:"error,omitempty"`
}

type reportOutput struct {
	RunID   string     `json:"run_id" yaml:"run_id"`
	Version string     `json:"version" yaml:"version"`
	Works   []workView `json:"works" yaml:"works"`
}

func reportView(report *workflow.Report) reportOutput {
	out := reportOutput{RunID: report.RunID, Version: report.Version}
	for _, w := range report.Works {
		view := workView{
			WorkID:      w.WorkID,
			Status:      w.Status,
			Total:       w.Total,
			Matched:     w.Matched,
			Unmatched:   w.Unmatched(),
			Candidates:  w.Candidates,
			FailedItems: w.ItemFailures,
			CacheHit:    w.CacheHit,
			Seconds:     w.Duration.Round(time.Millisecond).Seconds(),
		}
		if w.Err != nil {
			view.Error = w.Err.Error()
		}
		out.Works = append(out.Works, view)
	}
	return out
}

func printReport(out io.Writer, report *workflow.Report, colorize bool) {
	if len(report.Works) == 0 {
		fmt.Fprintln(out, "No works found")
		return
	}
	rows := make([][]string, 0, len(report.Works))
	for _, w := range report.Works {
		rows = append(rows, []string{
			w.WorkID,
			w.Status,
			strconv.Itoa(w.Total),
			strconv.Itoa(w.Matched),
			strconv.Itoa(w.Unmatched()),
			yesNo(w.CacheHit),
			w.Duration.Round(time.Millisecond).String(),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Work", "Status", "Transcriptions", "Matched", "Unmatched", "Cached", "Elapsed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight},
	))
	for _, w := range report.Works {
		switch {
		case w.Err != nil:
			fmt.Fprintln(out, renderStatusLine(w.WorkID, statusKindForOutcome(w.Status), w.Err.Error(), colorize))
		case w.ItemFailures > 0:
			detail := fmt.Sprintf("%d transcriptions failed to align and were stored as unmatched", w.ItemFailures)
			fmt.Fprintln(out, renderStatusLine(w.WorkID, statusKindForOutcome(w.Status), detail, colorize))
		}
	}
}
