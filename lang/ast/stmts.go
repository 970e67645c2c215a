package ast

import (
	"fmt"

	"github.com/JBreidfjord/loxide/lang/token"
)

type (
	// BadStmt represents a bad statement that failed to parse.
	BadStmt struct {
		Start token.Pos
		End   token.Pos
	}

	// BreakStmt represents a break statement.
	BreakStmt struct {
		Break token.Pos
		Semi  token.Pos
	}

	// ClassStmt represents a class declaration statement.
	ClassStmt struct {
		Class   token.Pos
		Name    *IdentExpr
		Lt      token.Pos  // zero if no superclass clause
		Super   *IdentExpr // nil if no superclass clause
		Lbrace  token.Pos
		Methods []*FnDecl
		Rbrace  token.Pos
	}

	// ExprStmt represents an expression used as a statement.
	ExprStmt struct {
		Expr Expr
		Semi token.Pos
	}

	// FnStmt represents a named function declaration statement.
	FnStmt struct {
		Decl *FnDecl
	}

	// IfStmt represents an if statement with an optional else branch.
	IfStmt struct {
		If     token.Pos
		Lparen token.Pos
		Cond   Expr
		Rparen token.Pos
		Then   Stmt
		Else   Stmt // nil if no else branch
	}

	// PrintStmt represents a print statement.
	PrintStmt struct {
		Print token.Pos
		Expr  Expr
		Semi  token.Pos
	}

	// ReturnStmt represents a return statement with an optional value.
	ReturnStmt struct {
		Return token.Pos
		Expr   Expr // nil if no value
		Semi   token.Pos
	}

	// VarStmt represents a variable declaration with an optional
	// initializer.
	VarStmt struct {
		Var  token.Pos
		Name *IdentExpr
		Eq   token.Pos // zero if no initializer
		Init Expr      // nil if no initializer
		Semi token.Pos
	}

	// WhileStmt represents a while loop. The parser also produces WhileStmt
	// nodes for 'for' loops, desugared into an initializer block around a
	// while with the increment appended to the body.
	WhileStmt struct {
		While  token.Pos
		Lparen token.Pos
		Cond   Expr
		Rparen token.Pos
		Body   Stmt
	}
)

func (n *BadStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "!bad stmt!", nil)
}
func (n *BadStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *BadStmt) Walk(v Visitor)               {}
func (n *BadStmt) stmt()                        {}

func (n *BreakStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "break", nil)
}
func (n *BreakStmt) Span() (start, end token.Pos) {
	return n.Break, n.Semi + token.Pos(len(token.SEMICOLON.String()))
}
func (n *BreakStmt) Walk(v Visitor) {}
func (n *BreakStmt) stmt()          {}

func (n *ClassStmt) Format(f fmt.State, verb rune) {
	var superCount int
	if n.Super != nil {
		superCount = 1
	}
	format(f, verb, n, "class "+n.Name.Lit, map[string]int{
		"super":   superCount,
		"methods": len(n.Methods),
	})
}
func (n *ClassStmt) Span() (start, end token.Pos) {
	return n.Class, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *ClassStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	if n.Super != nil {
		Walk(v, n.Super)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}
func (n *ClassStmt) stmt() {}

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos) {
	start, end = n.Expr.Span()
	if n.Semi.IsValid() {
		end = n.Semi + token.Pos(len(token.SEMICOLON.String()))
	}
	return start, end
}
func (n *ExprStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *ExprStmt) stmt()          {}

func (n *FnStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fn decl "+n.Decl.Name.Lit, map[string]int{"params": len(n.Decl.Params)})
}
func (n *FnStmt) Span() (start, end token.Pos) { return n.Decl.Span() }
func (n *FnStmt) Walk(v Visitor)               { Walk(v, n.Decl) }
func (n *FnStmt) stmt()                        {}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	lbl := "if"
	if n.Else != nil {
		lbl += " else"
	}
	format(f, verb, n, lbl, nil)
}
func (n *IfStmt) Span() (start, end token.Pos) {
	if n.Else != nil {
		_, end = n.Else.Span()
	} else {
		_, end = n.Then.Span()
	}
	return n.If, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfStmt) stmt() {}

func (n *PrintStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "print", nil) }
func (n *PrintStmt) Span() (start, end token.Pos) {
	return n.Print, n.Semi + token.Pos(len(token.SEMICOLON.String()))
}
func (n *PrintStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *PrintStmt) stmt()          {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) {
	lbl := "return"
	if n.Expr != nil {
		lbl += " value"
	}
	format(f, verb, n, lbl, nil)
}
func (n *ReturnStmt) Span() (start, end token.Pos) {
	return n.Return, n.Semi + token.Pos(len(token.SEMICOLON.String()))
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Expr != nil {
		Walk(v, n.Expr)
	}
}
func (n *ReturnStmt) stmt() {}

func (n *VarStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "var decl "+n.Name.Lit, nil)
}
func (n *VarStmt) Span() (start, end token.Pos) {
	return n.Var, n.Semi + token.Pos(len(token.SEMICOLON.String()))
}
func (n *VarStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *VarStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.While, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}
