// Package shape describes the parenthesization shapes searched over four
// ordered operands.
//
// A Shape is a straight-line program of three steps. Each step combines two
// values, each either an operand or the result of an earlier step, and lists
// the operators to try there in order. The last step is the whole expression.
// Step order is also enumeration order: step 0 is the outermost loop of the
// search, so it decides the order results come out in.
package shape

import (
	"errors"
	"fmt"

	"traingame/internal/expr"
)

// Operands is the number of values every shape consumes.
const Operands = 4

// Target is the value every reported expression must equal.
const Target = 10

// Ref points at an operand or at the result of an earlier step.
type Ref struct {
	Step  bool
	Index int
}

// Operand refers to operand i (0 = a).
func Operand(i int) Ref { return Ref{Index: i} }

// Result refers to the value produced by step i.
func Result(i int) Ref { return Ref{Step: true, Index: i} }

func (r Ref) String() string {
	if r.Step {
		return fmt.Sprintf("s%d", r.Index)
	}
	return string(rune('a' + r.Index))
}

// Step is one operator slot.
type Step struct {
	Left, Right Ref
	Ops         []expr.Op
}

// Shape is a named parenthesization.
type Shape struct {
	Name    string
	Pattern string
	Steps   []Step
}

// Pass is one search over a shape. NegateFirst starts from -a instead of a.
type Pass struct {
	Shape       Shape
	NegateFirst bool
}

// Plan is the full search configuration handed to the solver.
type Plan struct {
	Target int
	Passes []Pass
}

var (
	// standard is the slot order used everywhere except the first step of the
	// grouped shapes.
	standard = []expr.Op{expr.Add, expr.Sub, expr.Mul, expr.Div}
	// grouped is the order the inner pair of shapes 2-4 is tried in.
	grouped = []expr.Op{expr.Add, expr.Mul, expr.Sub, expr.Div}
)

// LeftDeep is ((a∘b)∘c)∘d.
func LeftDeep() Shape {
	return Shape{
		Name:    "left-deep",
		Pattern: "((a∘b)∘c)∘d",
		Steps: []Step{
			{Operand(0), Operand(1), standard},
			{Result(0), Operand(2), standard},
			{Result(1), Operand(3), standard},
		},
	}
}

// InnerLeft is (a∘(b∘c))∘d.
func InnerLeft() Shape {
	return Shape{
		Name:    "inner-left",
		Pattern: "(a∘(b∘c))∘d",
		Steps: []Step{
			{Operand(1), Operand(2), grouped},
			{Operand(0), Result(0), standard},
			{Result(1), Operand(3), standard},
		},
	}
}

// Balanced is (a∘b)∘(c∘d). The right pair is the outer loop.
func Balanced() Shape {
	return Shape{
		Name:    "balanced",
		Pattern: "(a∘b)∘(c∘d)",
		Steps: []Step{
			{Operand(2), Operand(3), grouped},
			{Operand(0), Operand(1), standard},
			{Result(1), Result(0), standard},
		},
	}
}

// InnerRight is a∘((b∘c)∘d).
func InnerRight() Shape {
	return Shape{
		Name:    "inner-right",
		Pattern: "a∘((b∘c)∘d)",
		Steps: []Step{
			{Operand(1), Operand(2), grouped},
			{Result(0), Operand(3), standard},
			{Operand(0), Result(1), standard},
		},
	}
}

// RightDeep is a∘(b∘(c∘d)), the fifth binary tree over four leaves. It is
// only part of the Complete plan.
func RightDeep() Shape {
	return Shape{
		Name:    "right-deep",
		Pattern: "a∘(b∘(c∘d))",
		Steps: []Step{
			{Operand(2), Operand(3), standard},
			{Operand(1), Result(0), standard},
			{Operand(0), Result(1), standard},
		},
	}
}

// Legacy returns the five passes of the classic solver: left-deep, left-deep
// from -a, then the three grouped shapes.
func Legacy() Plan {
	return Plan{
		Target: Target,
		Passes: []Pass{
			{Shape: LeftDeep()},
			{Shape: LeftDeep(), NegateFirst: true},
			{Shape: InnerLeft()},
			{Shape: Balanced()},
			{Shape: InnerRight()},
		},
	}
}

// Complete is Legacy plus the right-deep shape.
func Complete() Plan {
	p := Legacy()
	p.Passes = append(p.Passes, Pass{Shape: RightDeep()})
	return p
}

// ByName returns the plan called "legacy" or "complete".
func ByName(name string) (Plan, error) {
	switch name {
	case "legacy", "":
		return Legacy(), nil
	case "complete":
		return Complete(), nil
	}
	return Plan{}, fmt.Errorf("unknown shape set: %s", name)
}

// ErrInvalidShape is wrapped by every Validate failure.
var ErrInvalidShape = errors.New("invalid shape")

// Validate checks that each step only reads operands or earlier steps, that
// every operand and every non-final step result is used exactly once, and that
// every step has at least one operator.
func (s Shape) Validate() error {
	if len(s.Steps) != Operands-1 {
		return fmt.Errorf("%w: %s has %d steps, want %d", ErrInvalidShape, s.Name, len(s.Steps), Operands-1)
	}
	var operandUses [Operands]int
	stepUses := make([]int, len(s.Steps))
	for i, st := range s.Steps {
		if len(st.Ops) == 0 {
			return fmt.Errorf("%w: %s step %d has no operators", ErrInvalidShape, s.Name, i)
		}
		for _, r := range []Ref{st.Left, st.Right} {
			switch {
			case r.Step && (r.Index < 0 || r.Index >= i):
				return fmt.Errorf("%w: %s step %d reads %s before it exists", ErrInvalidShape, s.Name, i, r)
			case r.Step:
				stepUses[r.Index]++
			case r.Index < 0 || r.Index >= Operands:
				return fmt.Errorf("%w: %s step %d reads operand %d", ErrInvalidShape, s.Name, i, r.Index)
			default:
				operandUses[r.Index]++
			}
		}
	}
	for i, n := range operandUses {
		if n != 1 {
			return fmt.Errorf("%w: %s uses operand %s %d times", ErrInvalidShape, s.Name, Operand(i), n)
		}
	}
	for i, n := range stepUses[:len(stepUses)-1] {
		if n != 1 {
			return fmt.Errorf("%w: %s uses step %d %d times", ErrInvalidShape, s.Name, i, n)
		}
	}
	if stepUses[len(stepUses)-1] != 0 {
		return fmt.Errorf("%w: %s reads its final step", ErrInvalidShape, s.Name)
	}
	return nil
}

// Validate checks every pass.
func (p Plan) Validate() error {
	if len(p.Passes) == 0 {
		return fmt.Errorf("%w: plan has no passes", ErrInvalidShape)
	}
	for _, ps := range p.Passes {
		if err := ps.Shape.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy, so a caller can't reach into a solver's plan.
func (p Plan) Clone() Plan {
	out := Plan{Target: p.Target, Passes: make([]Pass, len(p.Passes))}
	for i, ps := range p.Passes {
		steps := make([]Step, len(ps.Shape.Steps))
		for j, st := range ps.Shape.Steps {
			steps[j] = Step{Left: st.Left, Right: st.Right, Ops: append([]expr.Op(nil), st.Ops...)}
		}
		ps.Shape.Steps = steps
		out.Passes[i] = ps
	}
	return out
}
