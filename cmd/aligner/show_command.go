package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/store"
)

type recordView struct {
	Path          string `json:"path" yaml:"path"`
	Transcription string `json:"transcription" yaml:"transcription"`
	SourceIndex   *int   `json:"source_index" yaml:"source_index"`
	BestMatch     string `json:"best_match,omitempty" yaml:"best_match,omitempty"`
	Final         string `json:"final_transcription,omitempty" yaml:"final_transcription,omitempty"`
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var (
		format        string
		unmatchedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "show <work>",
		Short: "Display the transcriptions and alignment results of a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openWork(cmd, args[0])
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.Records(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]recordView, 0, len(records))
			for _, rec := range records {
				if unmatchedOnly && isMatched(rec) {
					continue
				}
				views = append(views, recordView{
					Path:          rec.Path,
					Transcription: rec.Transcription,
					SourceIndex:   rec.SourceIndex,
					BestMatch:     rec.BestMatch,
					Final:         rec.FinalTranscription,
				})
			}

			if handled, werr := writeStructured(cmd, format, views); handled {
				return werr
			}
			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No transcriptions")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Path, v.Transcription, indexLabel(v.SourceIndex), v.BestMatch})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Path", "Transcription", "Index", "Best match"},
				rows,
				[]columnAlignment{alignLeft, alignWrap, alignRight, alignWrap},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&unmatchedOnly, "unmatched", false, "Only list transcriptions without a match")
	return cmd
}

func isMatched(rec store.Record) bool {
	return rec.SourceIndex != nil && *rec.SourceIndex >= 0
}

func indexLabel(idx *int) string {
	switch {
	case idx == nil:
		return "-"
	case *idx < 0:
		return "none"
	default:
		return strconv.Itoa(*idx)
	}
}
