// Package interp implements the tree-walking evaluator that executes a
// resolved abstract syntax tree. It owns the environment model (a
// parent-pointer tree of scopes shared by reference) and the observable
// effects of a program: output written to the print sink and runtime errors.
package interp

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JBreidfjord/loxide/lang/ast"
	"github.com/JBreidfjord/loxide/lang/resolver"
	"github.com/JBreidfjord/loxide/lang/token"
	"github.com/JBreidfjord/loxide/lang/types"
)

// Interp executes chunks. A single Interp may run several chunks in
// sequence (e.g. REPL lines) against the same global scope. Execution is
// single-threaded and synchronous; there are no internal suspension points.
type Interp struct {
	// Stdout is the sink for the print statement. If nil, os.Stdout is used.
	Stdout io.Writer

	// Now is the wall-clock source for the clock builtin. If nil, time.Now
	// is used.
	Now func() time.Time

	// MaxCallDepth limits the number of nested function calls. If the limit
	// is reached, a runtime error is raised. A value <= 0 means no limit.
	MaxCallDepth int

	fset     *token.FileSet
	globals  *types.Environment
	env      *types.Environment
	bindings resolver.Bindings
	depth    int

	stdout io.Writer
	now    func() time.Time
}

// New creates an evaluator. The file set is used to report positions in
// runtime errors and must be the one the chunks were parsed with.
func New(fset *token.FileSet) *Interp {
	i := &Interp{
		fset:     fset,
		globals:  types.NewEnvironment(nil),
		bindings: make(resolver.Bindings),
	}
	i.env = i.globals
	return i
}

// RunChunk executes the statements of the chunk against the evaluator's
// global scope, using the provided binding table for variable lookups. It
// returns the first error raised, which is a *Error for runtime errors.
func (i *Interp) RunChunk(ctx context.Context, ch *ast.Chunk, bindings resolver.Bindings) error {
	i.init()
	for k, v := range bindings {
		i.bindings[k] = v
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	for _, s := range ch.Block.Stmts {
		if err := i.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// one-time initialization of the evaluator
func (i *Interp) init() {
	if i.stdout != nil {
		return
	}
	if i.Stdout != nil {
		i.stdout = i.Stdout
	} else {
		i.stdout = os.Stdout
	}
	if i.Now != nil {
		i.now = i.Now
	} else {
		i.now = time.Now
	}
	installUniverse(i)
}

func (i *Interp) errorf(pos token.Pos, kind Kind, format string, args ...any) *Error {
	var lpos token.Position
	if i.fset != nil && pos.IsValid() {
		if f := i.fset.File(pos); f != nil {
			lpos = f.Position(pos)
		}
	}
	return &Error{Kind: kind, Pos: lpos, msg: fmt.Sprintf(format, args...)}
}

func (i *Interp) execStmt(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		_, err := i.evalExpr(stmt.Expr)
		return err

	case *ast.PrintStmt:
		v, err := i.evalExpr(stmt.Expr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(i.stdout, v.String())
		return err

	case *ast.VarStmt:
		value := types.Value(types.Nil)
		if stmt.Init != nil {
			v, err := i.evalExpr(stmt.Init)
			if err != nil {
				return err
			}
			value = v
		}
		i.env.Define(stmt.Name.Lit, value)
		return nil

	case *ast.Block:
		return i.execBlock(stmt.Stmts, types.NewEnvironment(i.env))

	case *ast.IfStmt:
		cond, err := i.evalExpr(stmt.Cond)
		if err != nil {
			return err
		}
		if cond.Truth() {
			return i.execStmt(stmt.Then)
		}
		if stmt.Else != nil {
			return i.execStmt(stmt.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evalExpr(stmt.Cond)
			if err != nil {
				return err
			}
			if !cond.Truth() {
				return nil
			}
			if err := i.execStmt(stmt.Body); err != nil {
				if err == errBreak {
					return nil
				}
				return err
			}
		}

	case *ast.BreakStmt:
		return errBreak

	case *ast.FnStmt:
		fn := &types.Function{Decl: stmt.Decl, Closure: i.env}
		i.env.Define(stmt.Decl.Name.Lit, fn)
		return nil

	case *ast.ReturnStmt:
		value := types.Value(types.Nil)
		if stmt.Expr != nil {
			v, err := i.evalExpr(stmt.Expr)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *ast.ClassStmt:
		return i.execClassStmt(stmt)

	case *ast.BadStmt:
		return nil

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

// execBlock executes the statements in the provided scope, restoring the
// prior scope on all exits, including error propagation.
func (i *Interp) execBlock(stmts []ast.Stmt, env *types.Environment) error {
	prev := i.env
	i.env = env
	defer func() { i.env = prev }()

	for _, s := range stmts {
		if err := i.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interp) execClassStmt(stmt *ast.ClassStmt) error {
	var super *types.Class
	if stmt.Super != nil {
		sv, err := i.evalExpr(stmt.Super)
		if err != nil {
			return err
		}
		cls, ok := sv.(*types.Class)
		if !ok {
			return i.errorf(stmt.Super.Start, SuperclassNotAClass,
				"superclass %s must be a class", sv)
		}
		super = cls
	}

	// declare the name before building the methods so they may refer to the
	// class itself through their closure
	i.env.Define(stmt.Name.Lit, types.Nil)

	methods := make(map[string]*types.Function, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods[m.Name.Lit] = &types.Function{
			Decl:    m,
			Closure: i.env,
			IsInit:  m.Name.Lit == "init",
		}
	}

	class := types.NewClass(stmt.Name.Lit, super, methods)
	i.env.Set(stmt.Name.Lit, class)
	return nil
}
