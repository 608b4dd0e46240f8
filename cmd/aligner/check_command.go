package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/preflight"
	"github.com/jamesohortle/japanese-utilities/internal/store"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify directories, external tools, and discovered works",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			lines = append(lines,
				renderStatusLine("Config file", statusInfo, ctx.configPath, colorize),
				renderStatusLine("Reading backend", statusInfo, cfg.Reading.Backend, colorize),
				renderStatusLine("Strategy", statusInfo, cfg.Matching.Strategy, colorize),
			)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Preflight", colorize)...)
			results := preflight.RunAll(cmd.Context(), cfg)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(preflight.CheckSystemDeps(cmd.Context(), cfg), colorize)...)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Works", colorize)...)
			works, err := store.DiscoverWorks(cfg.Paths.DataDir)
			switch {
			case err != nil:
				lines = append(lines, renderStatusLine("Discovery", statusError, err.Error(), colorize))
			case len(works) == 0:
				lines = append(lines, renderStatusLine("Discovery", statusWarn, "no works with "+store.DatabaseName, colorize))
			default:
				lines = append(lines, renderStatusLine("Discovery", statusOK, fmt.Sprintf("%d works", len(works)), colorize))
			}

			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d preflight checks failed", len(failed))
			}
			return nil
		},
	}
}
