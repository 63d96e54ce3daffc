// Package solver searches every operator assignment over every shape of a
// plan and reports the expressions equal to the plan's target.
package solver

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"traingame/internal/arith"
	"traingame/internal/expr"
	"traingame/internal/shape"
)

// Solution is one expression equal to the target.
type Solution struct {
	Expr    string    `json:"expr"`
	Shape   string    `json:"shape"`
	Negated bool      `json:"negated,omitempty"`
	Tree    expr.Node `json:"-"`
}

// Report is the outcome of one search.
type Report struct {
	Operands  Operands   `json:"operands"`
	Solutions []Solution `json:"solutions"`
	// Evaluated counts complete operator assignments compared with the target.
	Evaluated int `json:"evaluated"`
	// Pruned counts ÷ branches skipped for a zero divisor.
	Pruned  int           `json:"pruned"`
	Elapsed time.Duration `json:"-"`
}

// Expressions returns the solution texts in order.
func (r Report) Expressions() []string {
	out := make([]string, len(r.Solutions))
	for i, s := range r.Solutions {
		out[i] = s.Expr
	}
	return out
}

// Option configures a Solver.
type Option func(*Solver)

// WithArithmetic selects exact or float evaluation. Default exact.
func WithArithmetic(m arith.Mode) Option { return func(s *Solver) { s.mode = m } }

// WithSymbols selects the operator symbols of rendered solutions.
func WithSymbols(sym expr.Symbols) Option { return func(s *Solver) { s.symbols = sym } }

// WithWorkers runs up to n passes at once. n <= 1 searches sequentially.
func WithWorkers(n int) Option { return func(s *Solver) { s.workers = n } }

// WithLogger sets the logger. Searches log at debug level only.
func WithLogger(l *zap.Logger) Option { return func(s *Solver) { s.logger = l } }

// Solver is immutable after New and safe for concurrent use.
type Solver struct {
	plan    shape.Plan
	mode    arith.Mode
	symbols expr.Symbols
	workers int
	logger  *zap.Logger
}

// New returns a Solver for plan. The plan is copied.
func New(plan shape.Plan, opts ...Option) (*Solver, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{
		plan:    plan.Clone(),
		mode:    arith.Exact,
		symbols: expr.Unicode,
		workers: 1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mode != arith.Exact && s.mode != arith.Float {
		return nil, fmt.Errorf("unknown arithmetic mode: %s", s.mode)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// Default is the legacy plan with exact arithmetic and Unicode symbols.
func Default() *Solver {
	s, err := New(shape.Legacy())
	if err != nil {
		panic(err)
	}
	return s
}

// Search returns the expressions over a, b, c, d that equal 10, using the
// default solver.
func Search(a, b, c, d int) []string {
	return Default().Expressions(Operands{a, b, c, d})
}

// Plan returns a copy of the solver's plan.
func (s *Solver) Plan() shape.Plan { return s.plan.Clone() }

// Mode returns the arithmetic in use.
func (s *Solver) Mode() arith.Mode { return s.mode }

// Expressions returns the rendered solutions for ops.
func (s *Solver) Expressions(ops Operands) []string {
	return s.Solve(ops).Expressions()
}

// Search returns the solutions for ops in pass order, then enumeration order.
func (s *Solver) Search(ops Operands) []Solution {
	return s.Solve(ops).Solutions
}

// Solve runs every pass of the plan. Passes are independent; with more than
// one worker they run concurrently, each into its own slice, and are joined
// in plan order so the output never depends on scheduling.
func (s *Solver) Solve(ops Operands) Report {
	start := time.Now()
	passes := make([]passResult, len(s.plan.Passes))

	if s.workers <= 1 {
		for i, p := range s.plan.Passes {
			passes[i] = s.searchPass(p, ops)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for i, p := range s.plan.Passes {
			g.Go(func() error {
				passes[i] = s.searchPass(p, ops)
				return nil
			})
		}
		_ = g.Wait()
	}

	rep := Report{Operands: ops, Solutions: []Solution{}}
	for _, pr := range passes {
		rep.Solutions = append(rep.Solutions, pr.solutions...)
		rep.Evaluated += pr.evaluated
		rep.Pruned += pr.pruned
	}
	rep.Elapsed = time.Since(start)

	s.logger.Debug("search finished",
		zap.Stringer("operands", ops),
		zap.String("arithmetic", string(s.mode)),
		zap.Int("solutions", len(rep.Solutions)),
		zap.Int("evaluated", rep.Evaluated),
		zap.Int("pruned", rep.Pruned),
		zap.Duration("elapsed", rep.Elapsed))
	return rep
}

// partial is a search node: a finished sub-expression and its value.
type partial struct {
	node  expr.Node
	value arith.Number
}

type passResult struct {
	solutions []Solution
	evaluated int
	pruned    int
}

func (s *Solver) searchPass(p shape.Pass, ops Operands) passResult {
	var operands [shape.Operands]partial
	for i, v := range ops {
		leaf := &expr.Leaf{Value: v, Negated: i == 0 && p.NegateFirst}
		val := s.mode.FromInt(v)
		if leaf.Negated {
			val = val.Neg()
		}
		operands[i] = partial{node: leaf, value: val}
	}

	var res passResult
	steps := p.Shape.Steps
	// frame[i] holds the current choice for step i; deeper steps overwrite
	// only their own slot.
	frame := make([]partial, len(steps))

	resolve := func(r shape.Ref) partial {
		if r.Step {
			return frame[r.Index]
		}
		return operands[r.Index]
	}

	var descend func(i int)
	descend = func(i int) {
		if i == len(steps) {
			res.evaluated++
			root := frame[i-1]
			if root.value.EqualInt(s.plan.Target) {
				res.solutions = append(res.solutions, Solution{
					Expr:    expr.Render(root.node, s.symbols),
					Shape:   p.Shape.Name,
					Negated: p.NegateFirst,
					Tree:    root.node,
				})
			}
			return
		}
		st := steps[i]
		l, r := resolve(st.Left), resolve(st.Right)
		for _, op := range st.Ops {
			v, ok := op.Apply(l.value, r.value)
			if !ok {
				res.pruned++
				continue
			}
			frame[i] = partial{
				node:  &expr.Binary{Op: op, Left: l.node, Right: r.node},
				value: v,
			}
			descend(i + 1)
		}
	}
	descend(0)
	return res
}
