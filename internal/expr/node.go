// Package expr holds the expression trees the solver builds, their text form,
// and a parser for reading that text back.
package expr

import (
	"errors"
	"strconv"
	"strings"

	"traingame/internal/arith"
)

// ErrDivisionByZero is returned by Eval when a divisor evaluates to zero.
var ErrDivisionByZero = errors.New("division by zero")

// Node is either a *Leaf or a *Binary.
type Node interface {
	isNode()
}

// Leaf is one operand. Negated marks the unary minus applied to the first
// operand by the negated search pass.
type Leaf struct {
	Value   int
	Negated bool
}

// Binary combines two sub-expressions.
type Binary struct {
	Op          Op
	Left, Right Node
}

func (*Leaf) isNode()   {}
func (*Binary) isNode() {}

// Eval evaluates n strictly by its tree structure.
func Eval(n Node, m arith.Mode) (arith.Number, error) {
	switch v := n.(type) {
	case *Leaf:
		x := m.FromInt(v.Value)
		if v.Negated {
			x = x.Neg()
		}
		return x, nil
	case *Binary:
		l, err := Eval(v.Left, m)
		if err != nil {
			return nil, err
		}
		r, err := Eval(v.Right, m)
		if err != nil {
			return nil, err
		}
		out, ok := v.Op.Apply(l, r)
		if !ok {
			return nil, ErrDivisionByZero
		}
		return out, nil
	}
	return nil, errors.New("expr: unknown node")
}

// Render writes n fully parenthesized: every Binary is wrapped in ( ).
func Render(n Node, s Symbols) string {
	var sb strings.Builder
	render(&sb, n, s)
	return sb.String()
}

func render(sb *strings.Builder, n Node, s Symbols) {
	switch v := n.(type) {
	case *Leaf:
		if !v.Negated {
			sb.WriteString(strconv.Itoa(v.Value))
			return
		}
		// -(-5) rather than --5
		if v.Value < 0 {
			sb.WriteString("-(")
			sb.WriteString(strconv.Itoa(v.Value))
			sb.WriteString(")")
			return
		}
		sb.WriteString("-")
		sb.WriteString(strconv.Itoa(v.Value))
	case *Binary:
		sb.WriteString("(")
		render(sb, v.Left, s)
		sb.WriteString(" ")
		sb.WriteString(v.Op.Symbol(s))
		sb.WriteString(" ")
		render(sb, v.Right, s)
		sb.WriteString(")")
	}
}

// Walk calls fn for n and every node below it, parents first.
func Walk(n Node, fn func(Node)) {
	fn(n)
	if b, ok := n.(*Binary); ok {
		Walk(b.Left, fn)
		Walk(b.Right, fn)
	}
}

// Leaves returns the operands in left-to-right order.
func Leaves(n Node) []*Leaf {
	var out []*Leaf
	Walk(n, func(n Node) {
		if l, ok := n.(*Leaf); ok {
			out = append(out, l)
		}
	})
	return out
}
