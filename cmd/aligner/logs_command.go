package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		lines  int
		follow bool
		path   string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the log of the most recent align or watch run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := strings.TrimSpace(path)
			if target == "" {
				if target, err = logs.LatestRunLog(cfg.Paths.LogDir); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			tail, offset, err := logs.Last(target, lines)
			if err != nil {
				return err
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), target, offset, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as they are written")
	cmd.Flags().StringVar(&path, "file", "", "Read this log file instead of the latest run log")
	return cmd
}
