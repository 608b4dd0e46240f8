package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesohortle/japanese-utilities/internal/alignment"
	"github.com/jamesohortle/japanese-utilities/internal/config"
	"github.com/jamesohortle/japanese-utilities/internal/logging"
	"github.com/jamesohortle/japanese-utilities/internal/reading"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the aligner configuration",
	}
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration with the reference matching constants",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("check config path: %w", statErr)
				}
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			defaults := config.Default()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Each work is a directory under paths.data_dir (or ALIGNER_DATA_DIR) holding:")
			fmt.Fprintln(out, "  data.db   transcriptions, created by 'aligner import'")
			fmt.Fprintf(out, "  %s   source text (source.file)\n", defaults.Source.File)
			fmt.Fprintln(out, "Set reading.backend = \"mecab\" for dictionary readings; run 'aligner config validate' after editing.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

// configTarget resolves the init destination, defaulting to the standard
// config location.
func configTarget(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		target, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return target, nil
	}
	target, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return target, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and build the reading backend and matcher from it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			tr, err := reading.New(cfg.ReadingSettings())
			if err != nil {
				return fmt.Errorf("reading backend: %w", err)
			}
			matcher, err := alignment.New(tr, cfg.MatcherOptions(logging.NewNop())...)
			if err != nil {
				return fmt.Errorf("matcher: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if _, err := os.Stat(ctx.configPath); errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			printConfigSummary(out, cfg, matcher.Version(cfg.VersionParts()...))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func printConfigSummary(out io.Writer, cfg *config.Config, version string) {
	fmt.Fprintf(out, "Data directory: %s\n", cfg.Paths.DataDir)
	fmt.Fprintf(out, "Source text: <work>/%s (%s, split on %q)\n",
		cfg.Source.File, cfg.Source.Encoding, string(cfg.SplittingRunes()))
	backend := cfg.Reading.Backend
	if backend == reading.BackendMecab {
		backend += " (" + strings.Join(append([]string{cfg.Reading.MecabPath}, cfg.Reading.MecabArgs...), " ") + ")"
	}
	fmt.Fprintf(out, "Reading backend: %s\n", backend)
	w := cfg.Weights()
	fmt.Fprintf(out, "Matching: %s strategy, top %d, phonetic %.2f, position %.2f, threshold %.2f\n",
		cfg.Matching.Strategy, cfg.Matching.TopK, w.Phonetic, w.Position, w.Threshold)
	fmt.Fprintf(out, "Algorithm version: %s\n", version)
}
