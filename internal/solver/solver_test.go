package solver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"traingame/internal/arith"
	"traingame/internal/expr"
	"traingame/internal/shape"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newSolver(t *testing.T, plan shape.Plan, opts ...Option) *Solver {
	t.Helper()
	s, err := New(plan, opts...)
	require.NoError(t, err)
	return s
}

func TestSearchGoldens(t *testing.T) {
	tests := []struct {
		name string
		ops  Operands
		want []string
	}{
		{"1234", Operands{1, 2, 3, 4}, []string{
			"(((1 + 2) + 3) + 4)",
			"(((1 × 2) × 3) + 4)",
			"(((-1 ÷ 2) + 3) × 4)",
			"((1 + (2 + 3)) + 4)",
			"((1 × (2 × 3)) + 4)",
			"((1 + 2) + (3 + 4))",
			"(1 + ((2 + 3) + 4))",
			"(1 × ((2 × 3) + 4))",
		}},
		{"5555", Operands{5, 5, 5, 5}, []string{
			"(((5 + 5) + 5) - 5)",
			"(((5 + 5) - 5) + 5)",
			"(((5 + 5) × 5) ÷ 5)",
			"(((5 + 5) ÷ 5) × 5)",
			"(((5 - 5) + 5) + 5)",
			"(((5 × 5) ÷ 5) + 5)",
			"(((5 ÷ 5) × 5) + 5)",
			"(((-5 + 5) + 5) + 5)",
			"((5 + (5 + 5)) - 5)",
			"((5 × (5 + 5)) ÷ 5)",
			"((5 + (5 - 5)) + 5)",
			"((5 - (5 - 5)) + 5)",
			"((5 × (5 ÷ 5)) + 5)",
			"((5 ÷ (5 ÷ 5)) + 5)",
			"((5 - 5) + (5 + 5))",
			"((5 ÷ 5) × (5 + 5))",
			"((5 + 5) + (5 - 5))",
			"((5 + 5) - (5 - 5))",
			"((5 + 5) × (5 ÷ 5))",
			"((5 + 5) ÷ (5 ÷ 5))",
			"(5 + ((5 + 5) - 5))",
			"(5 × ((5 + 5) ÷ 5))",
			"(5 + ((5 × 5) ÷ 5))",
			"(5 + ((5 - 5) + 5))",
			"(5 - ((5 - 5) - 5))",
			"(5 + ((5 ÷ 5) × 5))",
		}},
		{"0000", Operands{0, 0, 0, 0}, []string{}},
		{"negative first operand", Operands{-5, 5, 5, 5}, []string{
			"(((-5 + 5) + 5) + 5)",
			"(((-(-5) + 5) + 5) - 5)",
			"(((-(-5) + 5) - 5) + 5)",
			"(((-(-5) + 5) × 5) ÷ 5)",
			"(((-(-5) + 5) ÷ 5) × 5)",
			"(((-(-5) - 5) + 5) + 5)",
			"(((-(-5) × 5) ÷ 5) + 5)",
			"(((-(-5) ÷ 5) × 5) + 5)",
			"((-5 + (5 + 5)) + 5)",
			"((-5 + 5) + (5 + 5))",
			"(-5 + ((5 + 5) + 5))",
		}},
		{"exact finds what float misses", Operands{2, 6, 5, 1}, []string{
			"(((-2 + 6) + 5) + 1)",
			"(2 ÷ ((6 ÷ 5) - 1))",
		}},
	}
	s := newSolver(t, shape.Legacy())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Expressions(tt.ops)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Expressions(%v) mismatch (-want +got):\n%s", tt.ops, diff)
			}
		})
	}
}

func TestPackageSearch(t *testing.T) {
	got := Search(9, 1, 1, 1)
	require.Len(t, got, 44)
	assert.Equal(t, "(((9 + 1) + 1) - 1)", got[0])
	assert.Contains(t, got, "((9 + (1 + 1)) - 1)")
	assert.Equal(t, "(9 + ((1 ÷ 1) ÷ 1))", got[len(got)-1])

	assert.Empty(t, Search(1, 1, 1, 1))
	assert.NotNil(t, Search(1, 1, 1, 1))
}

// reference_float.json holds the listings of the legacy float64 web solver for a
// sample of digit quadruples.
func loadReference(t *testing.T) map[string][]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "reference_float.json"))
	require.NoError(t, err)
	ref := map[string][]string{}
	require.NoError(t, json.Unmarshal(data, &ref))
	return ref
}

func digits(t *testing.T, key string) Operands {
	t.Helper()
	ops, err := ParseOperands([]string{key})
	require.NoError(t, err)
	return ops
}

func TestFloatModeMatchesReference(t *testing.T) {
	s := newSolver(t, shape.Legacy(), WithArithmetic(arith.Float))
	for key, want := range loadReference(t) {
		got := s.Expressions(digits(t, key))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", key, diff)
		}
	}
}

func TestExactModeOnlyAddsSolutions(t *testing.T) {
	exact := newSolver(t, shape.Legacy())
	extra := map[string][]string{
		"2651": {"(2 ÷ ((6 ÷ 5) - 1))"},
		"2757": {"(((2 ÷ 7) × 5) × 7)"},
		"4751": {"(4 ÷ ((7 ÷ 5) - 1))"},
		"5277": {"((5 × (2 ÷ 7)) × 7)"},
		"5316": {"((5 ÷ 3) ÷ (1 ÷ 6))"},
		"6153": {"(6 ÷ ((1 ÷ 5) × 3))"},
		"6851": {"(6 ÷ ((8 ÷ 5) - 1))"},
		"7275": {"(7 × ((2 ÷ 7) × 5))"},
	}
	for key, want := range loadReference(t) {
		got := exact.Expressions(digits(t, key))
		var added []string
		for _, g := range got {
			if !contains(want, g) {
				added = append(added, g)
			}
		}
		for _, w := range want {
			assert.Contains(t, got, w, key)
		}
		assert.Equal(t, extra[key], added, key)
	}
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// Every reported expression, parsed back from its text and evaluated exactly,
// equals the target, and no divisor in it is zero.
func TestSolutionsReparseToTarget(t *testing.T) {
	s := newSolver(t, shape.Complete())
	for a := -3; a <= 9; a += 3 {
		for b := 0; b <= 9; b += 2 {
			for c := 0; c <= 9; c += 3 {
				for d := 1; d <= 9; d += 2 {
					for _, sol := range s.Search(Operands{a, b, c, d}) {
						n, err := expr.Parse(sol.Expr)
						require.NoError(t, err, sol.Expr)
						v, err := expr.Eval(n, arith.Exact)
						require.NoError(t, err, sol.Expr)
						assert.True(t, v.EqualInt(10), "%s = %s", sol.Expr, v)
						assertNoZeroDivisor(t, n)
					}
				}
			}
		}
	}
}

func assertNoZeroDivisor(t *testing.T, n expr.Node) {
	t.Helper()
	expr.Walk(n, func(n expr.Node) {
		b, ok := n.(*expr.Binary)
		if !ok || b.Op != expr.Div {
			return
		}
		v, err := expr.Eval(b.Right, arith.Exact)
		require.NoError(t, err)
		assert.False(t, v.IsZero())
	})
}

// bruteForce evaluates every operator assignment of every pass as a whole tree.
func bruteForce(plan shape.Plan, ops Operands) []string {
	out := []string{}
	for _, p := range plan.Passes {
		steps := p.Shape.Steps
		choice := make([]expr.Op, len(steps))
		var rec func(i int)
		rec = func(i int) {
			if i < len(steps) {
				for _, op := range steps[i].Ops {
					choice[i] = op
					rec(i + 1)
				}
				return
			}
			built := make([]expr.Node, len(steps))
			ref := func(r shape.Ref) expr.Node {
				if r.Step {
					return built[r.Index]
				}
				return &expr.Leaf{Value: ops[r.Index], Negated: r.Index == 0 && p.NegateFirst}
			}
			for j, st := range steps {
				built[j] = &expr.Binary{Op: choice[j], Left: ref(st.Left), Right: ref(st.Right)}
			}
			root := built[len(built)-1]
			v, err := expr.Eval(root, arith.Exact)
			if errors.Is(err, expr.ErrDivisionByZero) {
				return
			}
			if v.EqualInt(plan.Target) {
				out = append(out, expr.Render(root, expr.Unicode))
			}
		}
		rec(0)
	}
	return out
}

func TestCompletenessAgainstBruteForce(t *testing.T) {
	for _, plan := range []shape.Plan{shape.Legacy(), shape.Complete()} {
		s := newSolver(t, plan)
		for n := 0; n < 10000; n += 37 {
			ops := Operands{n / 1000, n / 100 % 10, n / 10 % 10, n % 10}
			if diff := cmp.Diff(bruteForce(plan, ops), s.Expressions(ops)); diff != "" {
				t.Fatalf("%v mismatch (-brute +solver):\n%s", ops, diff)
			}
		}
	}
}

func TestSolutionsAreDistinctWithinPass(t *testing.T) {
	s := newSolver(t, shape.Legacy())
	for _, ops := range []Operands{{5, 5, 5, 5}, {9, 1, 1, 1}, {1, 1, 2, 5}} {
		seen := map[string]bool{}
		for _, sol := range s.Search(ops) {
			key := fmt.Sprintf("%s|%t|%s", sol.Shape, sol.Negated, sol.Expr)
			assert.False(t, seen[key], "duplicate %s", key)
			seen[key] = true
		}
	}
}

func TestDeterministicAndParallelOrder(t *testing.T) {
	seq := newSolver(t, shape.Complete())
	par := newSolver(t, shape.Complete(), WithWorkers(4))
	for _, ops := range []Operands{{1, 2, 3, 4}, {5, 5, 5, 5}, {9, 1, 1, 1}, {-5, 5, 5, 5}, {3, 3, 8, 8}} {
		first := seq.Expressions(ops)
		assert.Equal(t, first, seq.Expressions(ops))
		assert.Equal(t, first, par.Expressions(ops))
	}
}

func TestSolveStats(t *testing.T) {
	s := newSolver(t, shape.Legacy())

	rep := s.Solve(Operands{1, 2, 3, 4})
	assert.Equal(t, 5*64, rep.Evaluated)
	assert.Zero(t, rep.Pruned)

	rep = s.Solve(Operands{0, 0, 0, 0})
	assert.Empty(t, rep.Solutions)
	assert.Equal(t, 135, rep.Evaluated)
	assert.Equal(t, 65, rep.Pruned)

	rep = s.Solve(Operands{5, 5, 5, 5})
	assert.Equal(t, 310, rep.Evaluated)
	assert.Equal(t, 7, rep.Pruned)
}

func TestSolutionMetadata(t *testing.T) {
	sols := newSolver(t, shape.Legacy()).Search(Operands{5, 5, 5, 5})
	shapes := map[string]int{}
	for _, sol := range sols {
		shapes[sol.Shape]++
		require.NotNil(t, sol.Tree)
		assert.Equal(t, sol.Expr, expr.Render(sol.Tree, expr.Unicode))
	}
	assert.Equal(t, map[string]int{"left-deep": 8, "inner-left": 6, "balanced": 6, "inner-right": 6}, shapes)

	var negated []string
	for _, sol := range sols {
		if sol.Negated {
			negated = append(negated, sol.Expr)
		}
	}
	assert.Equal(t, []string{"(((-5 + 5) + 5) + 5)"}, negated)
}

func TestRightDeepOnlyInCompletePlan(t *testing.T) {
	legacy := newSolver(t, shape.Legacy()).Expressions(Operands{1, 2, 3, 4})
	complete := newSolver(t, shape.Complete()).Expressions(Operands{1, 2, 3, 4})
	assert.Equal(t, legacy, complete[:len(legacy)])
	assert.Equal(t, []string{"(1 + (2 + (3 + 4)))"}, complete[len(legacy):])
}

func TestASCIISymbols(t *testing.T) {
	got := newSolver(t, shape.Legacy(), WithSymbols(expr.ASCII)).Expressions(Operands{3, 3, 8, 8})
	assert.Equal(t, []string{"(((-3 - 3) + 8) + 8)", "((3 * 3) + (8 / 8))"}, got)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(shape.Plan{Target: 10})
	assert.True(t, errors.Is(err, shape.ErrInvalidShape))

	_, err = New(shape.Legacy(), WithArithmetic("decimal"))
	assert.Error(t, err)
}

func TestPlanIsCopied(t *testing.T) {
	plan := shape.Legacy()
	s := newSolver(t, plan)
	plan.Passes[0].Shape.Steps[0].Ops = nil
	plan.Passes = plan.Passes[:1]

	got := s.Plan()
	assert.Len(t, got.Passes, 5)
	assert.NoError(t, got.Validate())
}

func TestParseOperands(t *testing.T) {
	tests := []struct {
		args []string
		want Operands
	}{
		{[]string{"1234"}, Operands{1, 2, 3, 4}},
		{[]string{"1", "2", "3", "4"}, Operands{1, 2, 3, 4}},
		{[]string{"-5", "5", "5", "5"}, Operands{-5, 5, 5, 5}},
		{[]string{"1,2,3,-4"}, Operands{1, 2, 3, -4}},
		{[]string{"12 0 7 3"}, Operands{12, 0, 7, 3}},
	}
	for _, tt := range tests {
		got, err := ParseOperands(tt.args)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, got, tt.args)
	}

	for _, bad := range [][]string{nil, {"123"}, {"12345"}, {"1", "2", "3"}, {"1", "2", "x", "4"}, {"1.5", "2", "3", "4"}} {
		_, err := ParseOperands(bad)
		assert.True(t, errors.Is(err, ErrInvalidOperand), "%v: %v", bad, err)
	}
}

func TestOperandsString(t *testing.T) {
	assert.Equal(t, "1, 2, -3, 4", Operands{1, 2, -3, 4}.String())
}

func TestResultsKeepEnumerationOrder(t *testing.T) {
	got := Search(5, 5, 5, 5)
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	assert.NotEqual(t, sorted, got)
}
