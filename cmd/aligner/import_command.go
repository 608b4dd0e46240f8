package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/asrimport"
	"github.com/jamesohortle/japanese-utilities/internal/logging"
	"github.com/jamesohortle/japanese-utilities/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Load recognizer output into a work database",
	}
	importCmd.AddCommand(newImportTSVCommand(ctx))
	importCmd.AddCommand(newImportJuliusCommand(ctx))
	return importCmd
}

func newImportTSVCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tsv <work> <file|->",
		Short: "Import path<TAB>transcription lines; existing paths are left untouched",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readInput(cmd, args[1], asrimport.ReadTSV)
			if err != nil {
				return err
			}
			st, err := ctx.createWork(cmd, args[0])
			if err != nil {
				return err
			}
			defer st.Close()

			added, err := st.Insert(cmd.Context(), rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d transcriptions into %s\n", added, len(rows), args[0])
			return nil
		},
	}
}

func newImportJuliusCommand(ctx *commandContext) *cobra.Command {
	var fileList string

	cmd := &cobra.Command{
		Use:   "julius <work> <xml|->",
		Short: "Import Julius module-mode output; existing paths get the new transcription",
		Long: "Julius results carry no file names, so --filelist must name the list of audio\n" +
			"files that was fed to the recognizer, in the same order.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(fileList) == "" {
				return fmt.Errorf("--filelist is required")
			}
			listFile, err := os.Open(fileList)
			if err != nil {
				return fmt.Errorf("open file list: %w", err)
			}
			defer listFile.Close()
			paths, err := asrimport.ReadFileList(listFile)
			if err != nil {
				return err
			}
			sentences, err := readInput(cmd, args[1], asrimport.ReadJulius)
			if err != nil {
				return err
			}
			rows, dropped := asrimport.Pair(paths, sentences)
			if dropped > 0 {
				logger, err := ctx.logger(cmd, false)
				if err != nil {
					return err
				}
				logging.WarnWithContext(logger, "file list and recognizer output differ in length", "julius_pair_mismatch",
					logging.Int("paths", len(paths)),
					logging.Int("sentences", len(sentences)),
					logging.Int("dropped", dropped),
					logging.String(logging.FieldImpact, "unpaired entries were not imported"))
			}

			st, err := ctx.createWork(cmd, args[0])
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Upsert(cmd.Context(), rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transcriptions into %s\n", len(rows), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&fileList, "filelist", "", "Audio file list given to Julius, one path per line")
	return cmd
}

// createWork opens the database of a work, creating it when needed.
func (c *commandContext) createWork(cmd *cobra.Command, workID string) (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Create(cmd.Context(), store.DatabasePath(cfg.Paths.DataDir, workID))
	if err != nil {
		return nil, fmt.Errorf("open work %s: %w", workID, err)
	}
	return st, nil
}

// readInput parses a file, or stdin when name is "-".
func readInput[T any](cmd *cobra.Command, name string, parse func(io.Reader) (T, error)) (T, error) {
	if name == "-" {
		return parse(cmd.InOrStdin())
	}
	f, err := os.Open(name)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return parse(f)
}
