package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traingame/internal/output"
	"traingame/internal/solver"
)

func newSolveCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "solve <a b c d | abcd>",
		Short: "Print every expression over four numbers that equals 10",
		Example: `  traingame solve 1234
  traingame solve 1 2 3 4
  traingame solve -5,5,5,5 --format json`,
		Args: cobra.RangeArgs(1, 4),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(output.Formats(), format) {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(output.Formats(), ", "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := solver.ParseOperands(args)
			if err != nil {
				return err
			}
			rep := a.solver.Solve(ops)
			a.logger.Debug("solved",
				zap.Stringer("operands", ops),
				zap.Int("solutions", len(rep.Solutions)),
				zap.Int("evaluated", rep.Evaluated),
				zap.Int("pruned", rep.Pruned),
				zap.Duration("elapsed", rep.Elapsed))
			return output.Write(format, cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: "+strings.Join(output.Formats(), ", "))
	return cmd
}
