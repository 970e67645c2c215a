package types

import (
	"github.com/JBreidfjord/loxide/lang/ast"
)

// A Function is a function defined by a function statement, a function
// expression or a method. Its closure is the environment in force at the
// point of its declaration; for bound methods, the closure is extended with
// the instance (see Bind).
type Function struct {
	Decl    *ast.FnDecl
	Closure *Environment

	// IsInit is true for methods named init; an initializer always yields
	// the bound instance.
	IsInit bool
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
)

func (fn *Function) String() string {
	if nm := fn.Name(); nm != "" {
		return "<fn " + nm + ">"
	}
	return "<fn>"
}

func (fn *Function) Type() string { return "<fn>" }
func (fn *Function) Truth() Bool  { return True }

// Name returns the declared name of the function, empty for an anonymous
// function expression.
func (fn *Function) Name() string {
	if fn.Decl.Name != nil {
		return fn.Decl.Name.Lit
	}
	return ""
}

func (fn *Function) Arity() int { return len(fn.Decl.Params) }

// Bind joins the method to an instance: it returns a new Function whose
// closure is extended with a scope where 'this' refers to the instance.
func (fn *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(fn.Closure)
	env.Define("this", inst)
	return &Function{Decl: fn.Decl, Closure: env, IsInit: fn.IsInit}
}

// A Builtin is a function provided by the host, such as clock.
type Builtin struct {
	name  string
	arity int
	fn    func(args []Value) (Value, error)
}

var (
	_ Value    = (*Builtin)(nil)
	_ Callable = (*Builtin)(nil)
)

// NewBuiltin creates a builtin function value with the given name, arity and
// implementation.
func NewBuiltin(name string, arity int, fn func(args []Value) (Value, error)) *Builtin {
	return &Builtin{name: name, arity: arity, fn: fn}
}

func (b *Builtin) String() string { return "<native fn " + b.name + ">" }
func (b *Builtin) Type() string   { return "<native fn>" }
func (b *Builtin) Truth() Bool    { return True }
func (b *Builtin) Name() string   { return b.name }
func (b *Builtin) Arity() int     { return b.arity }

// Call invokes the builtin. The evaluator has already checked the argument
// count against the arity.
func (b *Builtin) Call(args []Value) (Value, error) {
	return b.fn(args)
}
