package expr

import (
	"fmt"

	"traingame/internal/arith"
)

// Op is one of the four binary operators.
type Op byte

const (
	Add Op = iota
	Sub
	Mul
	Div
)

// Symbols selects how operators are written.
type Symbols int

const (
	// Unicode writes × and ÷, the way the puzzle is printed on the page.
	Unicode Symbols = iota
	// ASCII writes * and /.
	ASCII
)

var symbols = [2][4]string{
	Unicode: {"+", "-", "×", "÷"},
	ASCII:   {"+", "-", "*", "/"},
}

// Symbol returns the operator's text in the given style.
func (o Op) Symbol(s Symbols) string {
	if int(o) >= len(symbols[0]) {
		return fmt.Sprintf("Op(%d)", byte(o))
	}
	if s != ASCII {
		s = Unicode
	}
	return symbols[s][o]
}

func (o Op) String() string { return o.Symbol(ASCII) }

// Apply computes l o r. It reports false for a zero divisor and never
// evaluates that branch.
func (o Op) Apply(l, r arith.Number) (arith.Number, bool) {
	switch o {
	case Add:
		return l.Add(r), true
	case Sub:
		return l.Sub(r), true
	case Mul:
		return l.Mul(r), true
	case Div:
		if r.IsZero() {
			return nil, false
		}
		return l.Quo(r), true
	}
	return nil, false
}

// ParseOp maps "+", "-", "−", "*", "×", "/", "÷" to an Op.
func ParseOp(s string) (Op, bool) {
	switch s {
	case "+":
		return Add, true
	case "-", "−":
		return Sub, true
	case "*", "×":
		return Mul, true
	case "/", "÷":
		return Div, true
	}
	return 0, false
}
