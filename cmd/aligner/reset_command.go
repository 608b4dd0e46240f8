package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <work>",
		Short: "Forget the stored and cached alignment results of a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workID := args[0]
			st, err := ctx.openWork(cmd, workID)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.ClearResults(cmd.Context()); err != nil {
				return err
			}

			logger, err := ctx.logger(cmd, false)
			if err != nil {
				return err
			}
			cache, err := ctx.matchCache(logger)
			if err != nil {
				return err
			}
			if err := cache.Remove(workID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared alignment results for %s\n", workID)
			return nil
		},
	}
}
