package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/alignment"
	"github.com/jamesohortle/japanese-utilities/internal/candidates"
	"github.com/jamesohortle/japanese-utilities/internal/reading"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "match <work> <text>",
		Short: "Match one transcription against a work's source text",
		Long: "Match runs the single-item matcher: candidates are filtered by combined surface\n" +
			"and reading similarity, then the best window of the surviving candidates is\n" +
			"restored with its original punctuation.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, false)
			if err != nil {
				return err
			}
			workID := args[0]
			text := strings.Join(args[1:], " ")

			source, err := candidates.LoadSource(cfg.SourcePath(workID), cfg.Source.Encoding)
			if err != nil {
				return fmt.Errorf("load source for %s: %w", workID, err)
			}
			tr, err := reading.New(cfg.ReadingSettings())
			if err != nil {
				return err
			}
			matcher, err := alignment.New(tr, cfg.MatcherOptions(logger)...)
			if err != nil {
				return err
			}

			runCtx := cmd.Context()
			extractor := candidates.NewExtractor(cfg.SplittingRunes()...)
			cands, err := matcher.PrepareCandidates(runCtx, extractor.Split(source))
			if err != nil {
				return err
			}
			trans, err := matcher.PrepareTranscriptions(runCtx, nil, []string{text})
			if err != nil {
				return err
			}
			result, err := matcher.Align(runCtx, trans[0], cands)
			if err != nil {
				return err
			}

			if handled, werr := writeStructured(cmd, format, result); handled {
				return werr
			}
			out := cmd.OutOrStdout()
			if !result.Matched() {
				fmt.Fprintln(out, renderStatusLine("Match", statusWarn, "no confident match", shouldColorize(out)))
				return nil
			}
			fmt.Fprintf(out, "%d\t%s\n", result.CandidateIndex, result.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "Output format (table, json, yaml)")
	return cmd
}
