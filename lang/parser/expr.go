package parser

import (
	"github.com/JBreidfjord/loxide/lang/ast"
	"github.com/JBreidfjord/loxide/lang/token"
)

// maxParams caps both function parameters and call arguments. Exceeding it
// is reported but does not synchronize.
const maxParams = 255

var binopPriority = [...]struct{ left, right int }{
	token.OR:  {1, 1},
	token.AND: {2, 2},
	token.EQEQ: {3, 3}, token.BANGEQ: {3, 3},
	token.LT: {4, 4}, token.LE: {4, 4},
	token.GT: {4, 4}, token.GE: {4, 4},
	token.PLUS: {5, 5}, token.MINUS: {5, 5},
	token.STAR: {6, 6}, token.SLASH: {6, 6},
}

const unopPriority = 7

func (p *parser) parseExpr() ast.Expr {
	if p.tok == token.FN {
		return p.parseFnExpr()
	}
	return p.parseAssignExpr()
}

func (p *parser) parseFnExpr() *ast.FnExpr {
	fnPos := p.expect(token.FN)
	return &ast.FnExpr{Decl: p.parseFnDecl(fnPos, false)}
}

// parseAssignExpr parses the target as an expression and rewrites it when an
// '=' follows: an identifier becomes an assignment, a property read becomes a
// property write, anything else is a syntax error at the '=' token.
func (p *parser) parseAssignExpr() ast.Expr {
	left := p.parseSubExpr(0)
	if p.tok != token.EQ {
		return left
	}

	eqPos := p.expect(token.EQ)
	value := p.parseExpr()

	switch left := left.(type) {
	case *ast.IdentExpr:
		return &ast.AssignExpr{Name: left, Eq: eqPos, Value: value}
	case *ast.GetExpr:
		return &ast.SetExpr{Left: left.Left, Dot: left.Dot, Name: left.Name, Eq: eqPos, Value: value}
	default:
		p.error(eqPos, "invalid assignment target")
		panic(errPanicMode)
	}
}

// parses a SubExpr where the binary operator has a priority higher than the
// provided priority (for precedence climbing).
func (p *parser) parseSubExpr(priority int) ast.Expr {
	var left ast.Expr

	if p.tok.IsUnop() {
		var unop ast.UnaryExpr
		unop.Type = p.tok
		unop.Op = p.expect(p.tok)
		unop.Right = p.parseSubExpr(unopPriority)
		left = &unop
	} else {
		left = p.parseCallExpr()
	}

	for p.tok.IsBinop() && binopPriority[p.tok].left > priority {
		opType := p.tok
		opPos := p.expect(p.tok)
		right := p.parseSubExpr(binopPriority[opType].right)
		if opType == token.AND || opType == token.OR {
			left = &ast.LogicalExpr{Left: left, Type: opType, Op: opPos, Right: right}
		} else {
			left = &ast.BinExpr{Left: left, Type: opType, Op: opPos, Right: right}
		}
	}

	return left
}

// parseCallExpr parses a primary expression followed by any number of call
// and property access suffixes.
func (p *parser) parseCallExpr() ast.Expr {
	expr := p.parsePrimaryExpr()
	for {
		switch p.tok {
		case token.LPAREN:
			expr = p.parseCallSuffix(expr)
		case token.DOT:
			var get ast.GetExpr
			get.Left = expr
			get.Dot = p.expect(token.DOT)
			get.Name = p.parseIdentExpr()
			expr = &get
		default:
			return expr
		}
	}
}

func (p *parser) parseCallSuffix(fn ast.Expr) *ast.CallExpr {
	var call ast.CallExpr
	call.Fn = fn
	call.Lparen = p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		call.Args = append(call.Args, p.parseExpr())
		for p.tok == token.COMMA {
			p.expect(token.COMMA)
			if len(call.Args) >= maxParams {
				start, _ := call.Fn.Span()
				p.error(start, "cannot have more than 255 arguments")
			}
			call.Args = append(call.Args, p.parseExpr())
		}
	}
	call.Rparen = p.expect(token.RPAREN)
	return &call
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch {
	case p.tok.IsAtom():
		return p.parseAtomExpr()

	case p.tok == token.THIS:
		return &ast.ThisExpr{Start: p.expect(token.THIS)}

	case p.tok == token.IDENT:
		return p.parseIdentExpr()

	case p.tok == token.LPAREN:
		var group ast.GroupExpr
		group.Lparen = p.expect(token.LPAREN)
		group.Expr = p.parseExpr()
		group.Rparen = p.expect(token.RPAREN)
		return &group

	default:
		p.errorExpected(p.val.Pos, "expression")
		panic(errPanicMode)
	}
}

func (p *parser) parseAtomExpr() *ast.LiteralExpr {
	var val any
	switch p.tok {
	case token.NUMBER:
		val = p.val.Num
	case token.STRING:
		val = p.val.String
	case token.TRUE:
		val = true
	case token.FALSE:
		val = false
	}
	lit := &ast.LiteralExpr{
		Type:  p.tok,
		Raw:   p.val.Raw,
		Value: val,
	}
	lit.Start = p.expect(p.tok)
	return lit
}

func (p *parser) parseIdentExpr() *ast.IdentExpr {
	var exp ast.IdentExpr
	exp.Lit = p.val.Raw
	exp.Start = p.expect(token.IDENT)
	return &exp
}
