// Command traingame finds every way to make 10 from the four digits of a
// train carriage number using + - × ÷ and brackets.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traingame/internal/config"
	"traingame/internal/logging"
	"traingame/internal/solver"
)

// app is the state every subcommand shares once the root has run.
type app struct {
	// Global flags
	configPath string
	verbose    bool
	arithmetic string
	shapes     string
	ascii      bool
	workers    int

	cfg    *config.Config
	logger *zap.Logger
	solver *solver.Solver
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "traingame",
		Short: "Make 10 from four digits",
		Long: `traingame searches every bracketing and operator choice over four numbers,
kept in their given order, and prints each expression that equals 10.

Division by zero is never produced. Results come out fully parenthesized,
in a fixed, repeatable order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&a.arithmetic, "arithmetic", "", "Arithmetic: exact or float (default from config)")
	pf.StringVar(&a.shapes, "shapes", "", "Shape plan: legacy or complete (default from config)")
	pf.BoolVar(&a.ascii, "ascii", false, "Render * and / instead of × and ÷")
	pf.IntVar(&a.workers, "workers", 0, "Passes searched at once (default from config)")

	root.AddCommand(
		newSolveCmd(a),
		newCheckCmd(a),
		newPlayCmd(a),
		newServeCmd(a),
		newSweepCmd(a),
	)
	return root
}

// setup loads the config, lets explicit flags win over it and builds the
// logger and solver.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("arithmetic") {
		cfg.Solver.Arithmetic = a.arithmetic
	}
	if flags.Changed("shapes") {
		cfg.Solver.Shapes = a.shapes
	}
	if flags.Changed("ascii") && a.ascii {
		cfg.Solver.Symbols = "ascii"
	}
	if flags.Changed("workers") {
		cfg.Solver.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, a.verbose)
	if err != nil {
		return err
	}

	s, err := newSolver(cfg.Solver, logger)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.solver = s
	logger.Debug("configured",
		zap.String("arithmetic", cfg.Solver.Arithmetic),
		zap.String("shapes", cfg.Solver.Shapes),
		zap.Int("workers", cfg.Solver.Workers))
	return nil
}

func newSolver(sc config.SolverConfig, logger *zap.Logger) (*solver.Solver, error) {
	plan, opts, err := sc.Options()
	if err != nil {
		return nil, err
	}
	return solver.New(plan, append(opts, solver.WithLogger(logger))...)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
