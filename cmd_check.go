package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"traingame/internal/arith"
	"traingame/internal/expr"
	"traingame/internal/shape"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <expression>",
		Short: "Evaluate an expression exactly",
		Long: `check parses an expression such as "(2 ÷ ((6 ÷ 5) - 1))" and prints its
exact value. Both × ÷ and * / are accepted. It fails on a syntax error or a
division by zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := expr.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			v, err := expr.Eval(n, arith.Exact)
			if err != nil {
				return err
			}
			mark := ""
			if v.EqualInt(shape.Target) {
				mark = "  ✓"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s%s\n",
				expr.Render(n, a.cfg.Solver.SymbolStyle()), v, mark)
			return err
		},
	}
}
