package solver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"traingame/internal/shape"
)

// ErrInvalidOperand is wrapped by every ParseOperands failure.
var ErrInvalidOperand = errors.New("invalid operand")

// Operands are the four numbers in the order they appear in every expression.
type Operands [shape.Operands]int

func (o Operands) String() string {
	parts := make([]string, len(o))
	for i, v := range o {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// ParseOperands reads four integers from command-line style arguments.
// It accepts four separate arguments ("1" "2" "3" "4"), one run of four
// digits as printed on a carriage ("1234"), or one argument separated by
// commas or spaces ("1,2,3,-4").
func ParseOperands(args []string) (Operands, error) {
	var ops Operands

	var toks []string
	for _, a := range args {
		toks = append(toks, strings.FieldsFunc(a, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})...)
	}
	if len(toks) == 1 && len(toks[0]) == len(ops) && isDigits(toks[0]) {
		for i, c := range toks[0] {
			ops[i] = int(c - '0')
		}
		return ops, nil
	}
	if len(toks) != len(ops) {
		return ops, fmt.Errorf("%w: want %d numbers, got %d", ErrInvalidOperand, len(ops), len(toks))
	}
	for i, t := range toks {
		n, err := strconv.Atoi(t)
		if err != nil {
			return ops, fmt.Errorf("%w: %q is not an integer", ErrInvalidOperand, t)
		}
		ops[i] = n
	}
	return ops, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
