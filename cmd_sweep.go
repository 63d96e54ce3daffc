package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"traingame/internal/arith"
	"traingame/internal/output"
	"traingame/internal/solver"
)

// sweepRecord is one JSONL line of a sweep.
type sweepRecord struct {
	Digits       string `json:"digits"`
	Count        int    `json:"count"`
	CompareCount *int   `json:"compare_count,omitempty"`
}

type sweepOptions struct {
	from, to int
	compare  string
	diffOnly bool
}

func newSweepCmd(a *app) *cobra.Command {
	var opts sweepOptions

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Count solutions for every carriage number 0000-9999",
		Long: `sweep solves every four-digit carriage number in the range and writes one
JSON line per number with its solution count. With --compare it also solves in
the other arithmetic and records both counts; --diff-only keeps just the
numbers where they disagree.`,
		Example: `  traingame sweep --compare float --diff-only`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var other *solver.Solver
			if opts.compare != "" {
				mode, err := arith.ParseMode(opts.compare)
				if err != nil {
					return err
				}
				sc := a.cfg.Solver
				sc.Arithmetic = string(mode)
				if other, err = newSolver(sc, a.logger); err != nil {
					return err
				}
			} else if opts.diffOnly {
				return fmt.Errorf("--diff-only needs --compare")
			}
			return runSweep(cmd.Context(), cmd, a, other, opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.from, "from", 0, "First carriage number")
	f.IntVar(&opts.to, "to", 9999, "Last carriage number")
	f.StringVar(&opts.compare, "compare", "", "Also count with this arithmetic: exact or float")
	f.BoolVar(&opts.diffOnly, "diff-only", false, "Only write numbers whose counts differ")
	return cmd
}

func runSweep(ctx context.Context, cmd *cobra.Command, a *app, other *solver.Solver, opts sweepOptions) error {
	if opts.from < 0 || opts.to > 9999 || opts.from > opts.to {
		return fmt.Errorf("invalid range %d-%d: want 0 <= from <= to <= 9999", opts.from, opts.to)
	}
	start := time.Now()

	records := make([]sweepRecord, opts.to-opts.from+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Solver.Workers)
	for i := range records {
		n := opts.from + i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ops := solver.Operands{n / 1000, n / 100 % 10, n / 10 % 10, n % 10}
			rec := sweepRecord{
				Digits: fmt.Sprintf("%04d", n),
				Count:  len(a.solver.Search(ops)),
			}
			if other != nil {
				c := len(other.Search(ops))
				rec.CompareCount = &c
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	in, done := output.StartJSONL[sweepRecord](cmd.OutOrStdout(), 256)
	written, solvable := 0, 0
	for _, rec := range records {
		if rec.Count > 0 {
			solvable++
		}
		if opts.diffOnly && *rec.CompareCount == rec.Count {
			continue
		}
		in <- rec
		written++
	}
	close(in)
	if err := <-done; err != nil {
		return err
	}

	a.logger.Info("sweep finished",
		zap.Int("numbers", len(records)),
		zap.Int("solvable", solvable),
		zap.Int("written", written),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
