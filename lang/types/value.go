// Package types provides the runtime representation of the values
// manipulated by the evaluator: nil, booleans, numbers, strings, functions,
// native functions, classes and instances, along with the environment that
// scopes variable bindings.
package types

// Value is the interface implemented by any value manipulated by the
// evaluator.
type Value interface {
	// String returns the string representation of the value, as rendered by
	// the print statement.
	String() string

	// Type returns a short string describing the value's type, used in error
	// messages.
	Type() string

	// Truth returns the truth value of the object. Only nil and false are
	// falsey.
	Truth() Bool
}

// A Callable value may be the operand of a function call. The evaluator
// dispatches on the concrete type; Callable only exposes what every callable
// has: a name and an arity.
type Callable interface {
	Value
	Name() string
	Arity() int
}

// An Ordered type is a type whose values are ordered: if x and y are of the
// same Ordered type, then x must be less than y, greater than y, or equal to
// y.
type Ordered interface {
	Value

	// Cmp compares two values x and y of the same ordered type. It returns
	// negative if x < y, positive if x > y, and zero if the values are equal.
	Cmp(y Value) int
}

// Equal reports whether two values are equal: structural within a variant,
// false across variants, identity for functions, classes and instances. It
// never fails. Numbers compare in their total order, so a value always
// equals itself.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case NilType:
		_, ok := y.(NilType)
		return ok
	case Bool:
		yv, ok := y.(Bool)
		return ok && x == yv
	case Number:
		yv, ok := y.(Number)
		return ok && x.Cmp(yv) == 0
	case String:
		yv, ok := y.(String)
		return ok && x == yv
	default:
		// reference identity for functions, builtins, classes and instances
		return x == y
	}
}
