package types

import "strconv"

// Number is the type of all numbers, an IEEE-754 double. Identity contexts
// (equality, Cmp) use a total order with NaN sorted above +Inf; the
// comparison operators of the language use IEEE semantics and go through
// float64 directly.
type Number float64

var (
	_ Value   = Number(0)
	_ Ordered = Number(0)
)

// String renders the shortest decimal representation that round-trips;
// integral values print without a fractional part.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (n Number) Type() string { return "Number" }
func (n Number) Truth() Bool  { return True }

// Cmp implements the total-order comparison of two Number values.
func (n Number) Cmp(y Value) int {
	return numberCmp(n, y.(Number))
}

// numberCmp performs a three-valued comparison on numbers, which are totally
// ordered with NaN > +Inf.
func numberCmp(x, y Number) int {
	if x > y {
		return +1
	} else if x < y {
		return -1
	} else if x == y {
		return 0
	}

	// At least one operand is NaN.
	if x == x {
		return -1 // y is NaN
	} else if y == y {
		return +1 // x is NaN
	}
	return 0 // both NaN
}
