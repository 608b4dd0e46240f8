package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear cached alignment results",
	}
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached works",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(cmd, false)
			if err != nil {
				return err
			}
			cache, err := ctx.matchCache(logger)
			if err != nil {
				return err
			}
			entries := cache.List()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Match cache is empty")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				matched := 0
				for _, r := range e.Results {
					if r.Matched() {
						matched++
					}
				}
				rows = append(rows, []string{
					e.WorkID,
					e.Version,
					strconv.Itoa(len(e.Results)),
					strconv.Itoa(matched),
					e.CachedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Work", "Version", "Results", "Matched", "Cached at"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [work]",
		Short: "Remove cached results for one work, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(cmd, false)
			if err != nil {
				return err
			}
			cache, err := ctx.matchCache(logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				if err := cache.Remove(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed cached results for %s\n", args[0])
				return nil
			}
			count := cache.Count()
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %d cached entries\n", count)
			return nil
		},
	}
}
