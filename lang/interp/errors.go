package interp

import (
	"errors"
	"fmt"

	"github.com/JBreidfjord/loxide/lang/token"
	"github.com/JBreidfjord/loxide/lang/types"
)

// Kind identifies the category of a runtime error.
type Kind int

// List of runtime error kinds.
const (
	InvalidOperand Kind = iota
	UnsupportedUnary
	UnsupportedBinary
	UndefinedVariable
	NotCallable
	ArityMismatch
	PropertyOnNonObject
	UndefinedProperty
	SuperclassNotAClass
	CallDepthExceeded
	NativeFailure
)

var kindNames = [...]string{
	InvalidOperand:      "invalid operand",
	UnsupportedUnary:    "unsupported unary",
	UnsupportedBinary:   "unsupported binary",
	UndefinedVariable:   "undefined variable",
	NotCallable:         "not callable",
	ArityMismatch:       "arity mismatch",
	PropertyOnNonObject: "property on non-object",
	UndefinedProperty:   "undefined property",
	SuperclassNotAClass: "superclass not a class",
	CallDepthExceeded:   "call depth exceeded",
	NativeFailure:       "native failure",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("<invalid Kind %d>", int(k))
	}
	return kindNames[k]
}

// Error is a runtime error raised by the evaluator. It records the position
// of the failing token when the AST provides one.
type Error struct {
	Kind Kind
	Pos  token.Position
	msg  string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() || e.Pos.Filename != "" {
		return e.Pos.String() + ": " + e.msg
	}
	return e.msg
}

// errBreak is the control-flow signal of a break statement. It is trapped by
// the innermost enclosing loop and is never user-visible: the resolver
// rejects a break outside a loop.
var errBreak = errors.New("break")

// returnSignal is the control-flow signal of a return statement, carrying
// the evaluated value. It is trapped by the enclosing function call and is
// never user-visible: the resolver rejects a top-level return.
type returnSignal struct {
	value types.Value
}

func (*returnSignal) Error() string { return "return" }
