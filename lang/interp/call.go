package interp

import (
	"fmt"

	"github.com/JBreidfjord/loxide/lang/token"
	"github.com/JBreidfjord/loxide/lang/types"
)

// call invokes a callable value with the evaluated arguments. The position
// of the call's closing paren anchors the errors.
func (i *Interp) call(callee types.Value, args []types.Value, rparen token.Pos) (types.Value, error) {
	c, ok := callee.(types.Callable)
	if !ok {
		return nil, i.errorf(rparen, NotCallable,
			"cannot call non-callable value of type %s", callee.Type())
	}
	if len(args) != c.Arity() {
		return nil, i.errorf(rparen, ArityMismatch,
			"expected %d arguments but found %d", c.Arity(), len(args))
	}

	if i.MaxCallDepth > 0 && i.depth >= i.MaxCallDepth {
		return nil, i.errorf(rparen, CallDepthExceeded, "max call stack depth exceeded")
	}
	i.depth++
	defer func() { i.depth-- }()

	switch c := c.(type) {
	case *types.Builtin:
		v, err := c.Call(args)
		if err != nil {
			return nil, i.errorf(rparen, NativeFailure, "%s: %s", c.Name(), err)
		}
		return v, nil

	case *types.Function:
		return i.callFunction(c, args)

	case *types.Class:
		instance := types.NewInstance(c)
		if init := c.FindMethod("init"); init != nil {
			if _, err := i.callFunction(init.Bind(instance), args); err != nil {
				return nil, err
			}
		}
		return instance, nil

	default:
		panic(fmt.Sprintf("unexpected callable %T", c))
	}
}

// callFunction executes a user function: the parameters are bound in a fresh
// child of the function's closure and the body runs in that scope, matching
// the single scope the resolver introduced for the function body.
func (i *Interp) callFunction(fn *types.Function, args []types.Value) (types.Value, error) {
	env := types.NewEnvironment(fn.Closure)
	for ix, p := range fn.Decl.Params {
		env.Define(p.Lit, args[ix])
	}

	if err := i.execBlock(fn.Decl.Body.Stmts, env); err != nil {
		ret, ok := err.(*returnSignal)
		if !ok {
			return nil, err
		}
		if fn.IsInit {
			return i.boundThis(fn), nil
		}
		return ret.value, nil
	}

	if fn.IsInit {
		return i.boundThis(fn), nil
	}
	return types.Nil, nil
}

// boundThis reads the instance an initializer is bound to, which Bind placed
// in the closure's innermost scope.
func (i *Interp) boundThis(fn *types.Function) types.Value {
	v, ok := fn.Closure.GetAt(0, "this")
	if !ok {
		panic("initializer is not bound to an instance")
	}
	return v
}
