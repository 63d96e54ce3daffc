// Package arith provides the two number systems the solver can evaluate in:
// exact rationals and float64.
package arith

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Mode selects the number system.
type Mode string

const (
	// Exact evaluates with math/big rationals. 1 ÷ 3 × 3 is exactly 1.
	Exact Mode = "exact"
	// Float evaluates with float64 and compares with ==, so rounding can hide
	// or invent a match.
	Float Mode = "float"
)

// ParseMode accepts "exact", "rational", "float" or "float64".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "exact", "rational", "":
		return Exact, nil
	case "float", "float64":
		return Float, nil
	}
	return "", fmt.Errorf("unknown arithmetic mode: %s", s)
}

// Number is an immutable value. Operations return new values.
type Number interface {
	Add(Number) Number
	Sub(Number) Number
	Mul(Number) Number
	// Quo panics on a zero divisor; callers check IsZero first.
	Quo(Number) Number
	Neg() Number
	IsZero() bool
	// EqualInt reports exact equality with n in this number system.
	EqualInt(n int) bool
	String() string
}

// FromInt builds n in the given mode.
func (m Mode) FromInt(n int) Number {
	if m == Float {
		return floatNum(float64(n))
	}
	return ratNum{r: new(big.Rat).SetInt64(int64(n))}
}

type ratNum struct{ r *big.Rat }

func (a ratNum) Add(b Number) Number { return ratNum{new(big.Rat).Add(a.r, b.(ratNum).r)} }
func (a ratNum) Sub(b Number) Number { return ratNum{new(big.Rat).Sub(a.r, b.(ratNum).r)} }
func (a ratNum) Mul(b Number) Number { return ratNum{new(big.Rat).Mul(a.r, b.(ratNum).r)} }
func (a ratNum) Quo(b Number) Number { return ratNum{new(big.Rat).Quo(a.r, b.(ratNum).r)} }
func (a ratNum) Neg() Number         { return ratNum{new(big.Rat).Neg(a.r)} }
func (a ratNum) IsZero() bool        { return a.r.Sign() == 0 }
func (a ratNum) String() string      { return a.r.RatString() }

func (a ratNum) EqualInt(n int) bool {
	return a.r.IsInt() && a.r.Num().IsInt64() && a.r.Num().Int64() == int64(n)
}

type floatNum float64

func (a floatNum) Add(b Number) Number { return a + b.(floatNum) }
func (a floatNum) Sub(b Number) Number { return a - b.(floatNum) }
func (a floatNum) Mul(b Number) Number { return a * b.(floatNum) }
func (a floatNum) Quo(b Number) Number {
	if b.(floatNum) == 0 {
		panic("arith: division by zero")
	}
	return a / b.(floatNum)
}
func (a floatNum) Neg() Number         { return -a }
func (a floatNum) IsZero() bool        { return a == 0 }
func (a floatNum) EqualInt(n int) bool { return float64(a) == float64(n) }

func (a floatNum) String() string {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(f)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Rat converts a Number to an exact rational. Float values convert to the
// rational the float64 actually holds.
func Rat(n Number) *big.Rat {
	switch v := n.(type) {
	case ratNum:
		return new(big.Rat).Set(v.r)
	case floatNum:
		r := new(big.Rat)
		if r.SetFloat64(float64(v)) == nil {
			return nil
		}
		return r
	}
	return nil
}
