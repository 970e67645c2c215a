package ast

import (
	"fmt"

	"github.com/JBreidfjord/loxide/lang/token"
)

type (
	// AssignExpr represents an assignment to a variable, e.g. x = 1. It is
	// created by the parser by rewriting an IdentExpr on the left of '='.
	AssignExpr struct {
		Name  *IdentExpr
		Eq    token.Pos
		Value Expr
	}

	// BadExpr represents a bad expression that failed to parse.
	BadExpr struct {
		Start token.Pos
		End   token.Pos
	}

	// BinExpr represents a binary expression, e.g. x + y.
	BinExpr struct {
		Left  Expr
		Type  token.Token // binary operator token type
		Op    token.Pos
		Right Expr
	}

	// CallExpr represents a function call, e.g. x(y, z). The closing paren
	// position is kept for error reporting.
	CallExpr struct {
		Fn     Expr
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
	}

	// FnExpr represents an anonymous function expression.
	FnExpr struct {
		Decl *FnDecl
	}

	// GetExpr represents a property read, e.g. x.y.
	GetExpr struct {
		Left Expr
		Dot  token.Pos
		Name *IdentExpr
	}

	// GroupExpr represents an expression wrapped in parentheses.
	GroupExpr struct {
		Lparen token.Pos
		Expr   Expr
		Rparen token.Pos
	}

	// IdentExpr represents an identifier in expression position, i.e. a
	// variable reference.
	IdentExpr struct {
		Start token.Pos
		Lit   string
	}

	// LiteralExpr represents a literal nil, boolean, number or string.
	LiteralExpr struct {
		Type  token.Token // NIL, TRUE, FALSE, NUMBER or STRING
		Start token.Pos
		Raw   string // uninterpreted text
		Value any    // nil | bool | float64 | string
	}

	// LogicalExpr represents a short-circuiting binary expression, 'and' or
	// 'or'.
	LogicalExpr struct {
		Left  Expr
		Type  token.Token // AND or OR
		Op    token.Pos
		Right Expr
	}

	// SetExpr represents a property write, e.g. x.y = z. It is created by
	// the parser by rewriting a GetExpr on the left of '='.
	SetExpr struct {
		Left  Expr
		Dot   token.Pos
		Name  *IdentExpr
		Eq    token.Pos
		Value Expr
	}

	// ThisExpr represents the 'this' keyword in expression position.
	ThisExpr struct {
		Start token.Pos
	}

	// UnaryExpr represents a unary operator expression, e.g. -4 or !ok.
	UnaryExpr struct {
		Type  token.Token // BANG or MINUS
		Op    token.Pos
		Right Expr
	}
)

func (n *AssignExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Name.Lit, nil)
}
func (n *AssignExpr) Span() (start, end token.Pos) {
	start, _ = n.Name.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *AssignExpr) Walk(v Visitor) {
	Walk(v, n.Value)
}
func (n *AssignExpr) expr() {}

func (n *BadExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "!bad expr!", nil)
}
func (n *BadExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *BadExpr) Walk(v Visitor)               {}
func (n *BadExpr) expr()                        {}

func (n *BinExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Type.GoString(), nil)
}
func (n *BinExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	return start, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, e := range n.Args {
		Walk(v, e)
	}
}
func (n *CallExpr) expr() {}

func (n *FnExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fn expr", map[string]int{"params": len(n.Decl.Params)})
}
func (n *FnExpr) Span() (start, end token.Pos) { return n.Decl.Span() }
func (n *FnExpr) Walk(v Visitor)               { Walk(v, n.Decl) }
func (n *FnExpr) expr()                        {}

func (n *GetExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "get "+n.Name.Lit, nil)
}
func (n *GetExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Name.Span()
	return start, end
}
func (n *GetExpr) Walk(v Visitor) {
	Walk(v, n.Left)
}
func (n *GetExpr) expr() {}

func (n *GroupExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "(expr)", nil)
}
func (n *GroupExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *GroupExpr) Walk(v Visitor) {
	Walk(v, n.Expr)
}
func (n *GroupExpr) expr() {}

func (n *IdentExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Lit, nil)
}
func (n *IdentExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Lit))
}
func (n *IdentExpr) Walk(v Visitor) {}
func (n *IdentExpr) expr()          {}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	lbl := n.Type.String()
	if n.Type == token.NUMBER || n.Type == token.STRING {
		lbl += " " + n.Raw
	}
	format(f, verb, n, lbl, nil)
}
func (n *LiteralExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *LiteralExpr) Walk(v Visitor) {}
func (n *LiteralExpr) expr()          {}

func (n *LogicalExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "logical "+n.Type.String(), nil)
}
func (n *LogicalExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *LogicalExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *LogicalExpr) expr() {}

func (n *SetExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "set "+n.Name.Lit, nil)
}
func (n *SetExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *SetExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Value)
}
func (n *SetExpr) expr() {}

func (n *ThisExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "this", nil)
}
func (n *ThisExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(token.THIS.String()))
}
func (n *ThisExpr) Walk(v Visitor) {}
func (n *ThisExpr) expr()          {}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Type.GoString(), nil)
}
func (n *UnaryExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.Op, end
}
func (n *UnaryExpr) Walk(v Visitor) {
	Walk(v, n.Right)
}
func (n *UnaryExpr) expr() {}
