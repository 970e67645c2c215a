package interp

import (
	"fmt"

	"github.com/JBreidfjord/loxide/lang/ast"
	"github.com/JBreidfjord/loxide/lang/token"
	"github.com/JBreidfjord/loxide/lang/types"
)

func (i *Interp) evalExpr(expr ast.Expr) (types.Value, error) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		switch v := expr.Value.(type) {
		case nil:
			return types.Nil, nil
		case bool:
			return types.Bool(v), nil
		case float64:
			return types.Number(v), nil
		case string:
			return types.String(v), nil
		default:
			panic(fmt.Sprintf("unexpected literal %T", expr.Value))
		}

	case *ast.GroupExpr:
		return i.evalExpr(expr.Expr)

	case *ast.UnaryExpr:
		return i.evalUnaryExpr(expr)

	case *ast.BinExpr:
		return i.evalBinExpr(expr)

	case *ast.LogicalExpr:
		left, err := i.evalExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		// short-circuit: the operand's value is returned, not a coerced bool
		if expr.Type == token.OR {
			if left.Truth() {
				return left, nil
			}
		} else if !left.Truth() {
			return left, nil
		}
		return i.evalExpr(expr.Right)

	case *ast.IdentExpr:
		return i.lookupVariable(expr, expr.Lit, expr.Start)

	case *ast.ThisExpr:
		return i.lookupVariable(expr, "this", expr.Start)

	case *ast.AssignExpr:
		value, err := i.evalExpr(expr.Value)
		if err != nil {
			return nil, err
		}
		var ok bool
		if distance, bound := i.bindings[expr]; bound {
			ok = i.env.SetAt(distance, expr.Name.Lit, value)
		} else {
			ok = i.globals.Set(expr.Name.Lit, value)
		}
		if !ok {
			return nil, i.errorf(expr.Name.Start, UndefinedVariable,
				"undefined variable: %s", expr.Name.Lit)
		}
		return value, nil

	case *ast.CallExpr:
		callee, err := i.evalExpr(expr.Fn)
		if err != nil {
			return nil, err
		}
		args := make([]types.Value, 0, len(expr.Args))
		for _, a := range expr.Args {
			v, err := i.evalExpr(a)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return i.call(callee, args, expr.Rparen)

	case *ast.FnExpr:
		return &types.Function{Decl: expr.Decl, Closure: i.env}, nil

	case *ast.GetExpr:
		obj, err := i.evalExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*types.Instance)
		if !ok {
			return nil, i.errorf(expr.Name.Start, PropertyOnNonObject,
				"cannot access property %s on non-object %s of type %s",
				expr.Name.Lit, obj, obj.Type())
		}
		v, ok := inst.Attr(expr.Name.Lit)
		if !ok {
			return nil, i.errorf(expr.Name.Start, UndefinedProperty,
				"undefined property %s on object %s", expr.Name.Lit, obj)
		}
		return v, nil

	case *ast.SetExpr:
		obj, err := i.evalExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*types.Instance)
		if !ok {
			return nil, i.errorf(expr.Name.Start, PropertyOnNonObject,
				"cannot access property %s on non-object %s of type %s",
				expr.Name.Lit, obj, obj.Type())
		}
		value, err := i.evalExpr(expr.Value)
		if err != nil {
			return nil, err
		}
		inst.SetField(expr.Name.Lit, value)
		return value, nil

	case *ast.BadExpr:
		panic("bad expr must not reach the evaluator")

	default:
		panic(fmt.Sprintf("unexpected expr %T", expr))
	}
}

// lookupVariable reads a variable use: at the recorded scope distance when
// the binding table has one, otherwise in the global scope.
func (i *Interp) lookupVariable(expr ast.Expr, name string, pos token.Pos) (types.Value, error) {
	var v types.Value
	var ok bool
	if distance, bound := i.bindings[expr]; bound {
		v, ok = i.env.GetAt(distance, name)
	} else {
		v, ok = i.globals.Get(name)
	}
	if !ok {
		return nil, i.errorf(pos, UndefinedVariable, "undefined variable: %s", name)
	}
	return v, nil
}

func (i *Interp) evalUnaryExpr(expr *ast.UnaryExpr) (types.Value, error) {
	right, err := i.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Type {
	case token.MINUS:
		n, ok := right.(types.Number)
		if !ok {
			return nil, i.invalidOperand(expr.Op, expr.Type, right, "Number")
		}
		return -n, nil

	case token.BANG:
		return !right.Truth(), nil
	}
	return nil, i.errorf(expr.Op, UnsupportedUnary,
		"unsupported unary operator %s on type %s", expr.Type.GoString(), right.Type())
}

func (i *Interp) evalBinExpr(expr *ast.BinExpr) (types.Value, error) {
	left, err := i.evalExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Type {
	case token.EQEQ:
		return types.Bool(types.Equal(left, right)), nil
	case token.BANGEQ:
		return types.Bool(!types.Equal(left, right)), nil

	case token.PLUS:
		switch left := left.(type) {
		case types.Number:
			if rn, ok := right.(types.Number); ok {
				return left + rn, nil
			}
			return nil, i.invalidOperand(expr.Op, expr.Type, right, "Number")
		case types.String:
			if rs, ok := right.(types.String); ok {
				return left + rs, nil
			}
			return nil, i.invalidOperand(expr.Op, expr.Type, right, "String")
		}
		return nil, i.invalidOperand(expr.Op, expr.Type, left, "Number", "String")
	}

	// the remaining operators require two numbers
	ln, ok := left.(types.Number)
	if !ok {
		return nil, i.invalidOperand(expr.Op, expr.Type, left, "Number")
	}
	rn, ok := right.(types.Number)
	if !ok {
		return nil, i.invalidOperand(expr.Op, expr.Type, right, "Number")
	}

	switch expr.Type {
	case token.MINUS:
		return ln - rn, nil
	case token.STAR:
		return ln * rn, nil
	case token.SLASH:
		return ln / rn, nil

	// ordered comparisons use IEEE semantics
	case token.LT:
		return types.Bool(ln < rn), nil
	case token.LE:
		return types.Bool(ln <= rn), nil
	case token.GT:
		return types.Bool(ln > rn), nil
	case token.GE:
		return types.Bool(ln >= rn), nil
	}
	return nil, i.errorf(expr.Op, UnsupportedBinary,
		"unsupported binary operator %s on types %s and %s",
		expr.Type.GoString(), left.Type(), right.Type())
}

func (i *Interp) invalidOperand(pos token.Pos, op token.Token, found types.Value, expected ...string) *Error {
	list := ""
	for ix, e := range expected {
		if ix > 0 {
			list += ", "
		}
		list += e
	}
	return i.errorf(pos, InvalidOperand,
		"operator %s expected one of: [%s], found %s of type %s",
		op.GoString(), list, found, found.Type())
}
