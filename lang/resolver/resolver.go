// Package resolver implements the static resolution pass that runs between
// the parser and the evaluator. It binds each variable use to a lexical
// scope distance and validates structural rules that cannot be checked
// during parsing.
//
// # Scopes
//
// The resolver walks the AST with a stack of lexical scopes, each a mapping
// from a declared name to whether its initializer has completed. The global
// scope is implicit: the stack is empty at the top level and global names
// are always late-bound, so a use that resolves to no scope is simply not
// recorded and the evaluator falls back to the globals.
//
// For every variable use that does resolve, the resolver records the number
// of scopes between the use and the declaration in the binding table, keyed
// by the expression node. The parser allocates a distinct node per source
// occurrence, so two textually identical uses at different positions are
// distinct keys.
//
// # Structural rules
//
// The resolver rejects: reading a variable (local or global) in its own
// initializer,
// declaring the same name twice in the same non-global scope, return outside
// a function, returning a value from an initializer, break outside a loop,
// and 'this' outside a class.
package resolver

import (
	"context"
	"fmt"

	"github.com/JBreidfjord/loxide/lang/ast"
	"github.com/JBreidfjord/loxide/lang/scanner"
	"github.com/JBreidfjord/loxide/lang/token"
)

// Bindings is the binding table produced by the resolver: the lexical scope
// distance of each resolved variable use, keyed by expression occurrence.
// Absence of a key means the name resolves in the global scope. The table is
// read-only after resolution.
type Bindings map[ast.Expr]int

// ResolveFiles takes the file set and corresponding list of chunks from a
// successful parse result and resolves the variable bindings used in the
// source code, returning the combined binding table.
//
// An AST that resulted in errors in the parse phase should never be passed to
// the resolver, the behavior is undefined.
//
// The returned error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ResolveFiles(ctx context.Context, fset *token.FileSet, chunks []*ast.Chunk) (Bindings, error) {
	var r resolver
	r.bindings = make(Bindings)

	for _, ch := range chunks {
		start, _ := ch.Span()
		r.init(fset.File(start))
		for _, s := range ch.Block.Stmts {
			r.stmt(s)
		}
	}
	r.errors.Sort()
	return r.bindings, r.errors.Err()
}

// ResolveChunk resolves a single chunk, returning its binding table. The
// error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ResolveChunk(ctx context.Context, fset *token.FileSet, ch *ast.Chunk) (Bindings, error) {
	return ResolveFiles(ctx, fset, []*ast.Chunk{ch})
}

// funcContext classifies the closest enclosing function for context-dependent
// rules.
type funcContext int

const (
	funcNone funcContext = iota
	funcFunction
	funcMethod
	funcInitializer
)

// classContext classifies whether resolution is inside a class body.
type classContext int

const (
	classNone classContext = iota
	classClass
)

type resolver struct {
	file   *token.File
	errors scanner.ErrorList

	// scopes is the stack of lexical scopes, innermost last. Each scope maps
	// a declared name to true once its initializer has completed.
	scopes []map[string]bool

	bindings Bindings

	fn    funcContext
	class classContext
	loops int

	// declaring is the name of the global variable whose initializer is
	// being resolved. Local self-references are caught through the scope
	// stack; the implicit global scope needs this extra bit of state.
	declaring string
}

func (r *resolver) init(file *token.File) {
	r.file = file
	r.scopes = r.scopes[:0]
	r.fn = funcNone
	r.class = classNone
	r.loops = 0
}

func (r *resolver) errorf(p token.Pos, format string, args ...interface{}) {
	r.errors.Add(r.file.Position(p), fmt.Sprintf(format, args...))
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts the name in the innermost scope, not yet usable. In the
// global scope declarations are unchecked and unrecorded.
func (r *resolver) declare(ident *ast.IdentExpr) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[ident.Lit]; ok {
		// rule: can only shadow in a child scope
		r.errorf(ident.Start, "already declared in this scope: %s", ident.Lit)
		return
	}
	scope[ident.Lit] = false
}

// define marks the name as fully initialized and usable.
func (r *resolver) define(ident *ast.IdentExpr) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][ident.Lit] = true
}

// resolveLocal searches the scopes innermost-first for name and, on a hit,
// records the distance from the current scope in the binding table. A miss
// is not recorded: the name resolves in the global scope at runtime.
func (r *resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.bindings[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		for _, s := range stmt.Stmts {
			r.stmt(s)
		}
		r.endScope()

	case *ast.VarStmt:
		r.declare(stmt.Name)
		if stmt.Init != nil {
			if len(r.scopes) == 0 {
				prev := r.declaring
				r.declaring = stmt.Name.Lit
				r.expr(stmt.Init)
				r.declaring = prev
			} else {
				r.expr(stmt.Init)
			}
		}
		r.define(stmt.Name)

	case *ast.FnStmt:
		// bind the name before the body so the function may recurse
		r.declare(stmt.Decl.Name)
		r.define(stmt.Decl.Name)
		r.function(stmt.Decl, funcFunction)

	case *ast.ClassStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name)

		if stmt.Super != nil {
			if stmt.Super.Lit == stmt.Name.Lit {
				r.errorf(stmt.Super.Start, "a class cannot inherit from itself: %s", stmt.Name.Lit)
			}
			r.expr(stmt.Super)
		}

		prevClass := r.class
		r.class = classClass
		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true
		for _, m := range stmt.Methods {
			ctx := funcMethod
			if m.Name.Lit == "init" {
				ctx = funcInitializer
			}
			r.function(m, ctx)
		}
		r.endScope()
		r.class = prevClass

	case *ast.ExprStmt:
		r.expr(stmt.Expr)

	case *ast.PrintStmt:
		r.expr(stmt.Expr)

	case *ast.IfStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Then)
		if stmt.Else != nil {
			r.stmt(stmt.Else)
		}

	case *ast.WhileStmt:
		r.expr(stmt.Cond)
		r.loops++
		r.stmt(stmt.Body)
		r.loops--

	case *ast.BreakStmt:
		if r.loops == 0 {
			r.errorf(stmt.Break, "invalid break: not inside a loop")
		}

	case *ast.ReturnStmt:
		if r.fn == funcNone {
			r.errorf(stmt.Return, "invalid return: not inside a function")
		}
		if stmt.Expr != nil {
			if r.fn == funcInitializer {
				r.errorf(stmt.Return, "invalid return: cannot return a value from an initializer")
			}
			r.expr(stmt.Expr)
		}

	case *ast.BadStmt:
		// nothing to resolve

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

func (r *resolver) expr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.IdentExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Lit]; ok && !defined {
				r.errorf(expr.Start, "cannot read variable %s in its own initializer", expr.Lit)
			}
		} else if r.declaring != "" && expr.Lit == r.declaring {
			r.errorf(expr.Start, "cannot read variable %s in its own initializer", expr.Lit)
		}
		r.resolveLocal(expr, expr.Lit)

	case *ast.AssignExpr:
		r.expr(expr.Value)
		r.resolveLocal(expr, expr.Name.Lit)

	case *ast.ThisExpr:
		if r.class == classNone {
			r.errorf(expr.Start, "invalid 'this': not inside a class")
			return
		}
		r.resolveLocal(expr, "this")

	case *ast.FnExpr:
		r.function(expr.Decl, funcFunction)

	case *ast.CallExpr:
		r.expr(expr.Fn)
		for _, e := range expr.Args {
			r.expr(e)
		}

	case *ast.GetExpr:
		// ignore the name, properties are late-bound at runtime
		r.expr(expr.Left)

	case *ast.SetExpr:
		r.expr(expr.Value)
		r.expr(expr.Left)

	case *ast.BinExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.LogicalExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.UnaryExpr:
		r.expr(expr.Right)

	case *ast.GroupExpr:
		r.expr(expr.Expr)

	case *ast.LiteralExpr, *ast.BadExpr:
		// nothing to resolve

	default:
		panic(fmt.Sprintf("unexpected expr %T", expr))
	}
}

// function resolves a function declaration: the parameters are injected in
// the function body's scope, and the body statements are resolved directly
// in that scope. The evaluator mirrors this by binding parameters and
// executing the body in a single child scope of the closure.
func (r *resolver) function(decl *ast.FnDecl, ctx funcContext) {
	prevFn := r.fn
	prevLoops := r.loops
	r.fn = ctx
	r.loops = 0

	r.beginScope()
	for _, param := range decl.Params {
		r.declare(param)
		r.define(param)
	}
	for _, s := range decl.Body.Stmts {
		r.stmt(s)
	}
	r.endScope()

	r.fn = prevFn
	r.loops = prevLoops
}
