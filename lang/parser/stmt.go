package parser

import (
	"github.com/JBreidfjord/loxide/lang/ast"
	"github.com/JBreidfjord/loxide/lang/token"
)

// parseDecl parses a declaration: a class, function or variable declaration,
// or any other statement. It is the recovery point for panic-mode errors,
// producing a BadStmt spanning to the next synchronization point.
func (p *parser) parseDecl() (stmt ast.Stmt) {
	start := p.val.Pos

	defer func() {
		if err := recover(); err != nil {
			if err == errPanicMode {
				stmt = &ast.BadStmt{
					Start: start,
					End:   p.syncAfterError(),
				}
				return
			}
			panic(err)
		}
	}()

	switch p.tok {
	case token.CLASS:
		return p.parseClassStmt()

	case token.FN:
		if p.nextTok == token.IDENT {
			// named function declaration; 'fn' followed by anything else is an
			// anonymous function expression statement
			fnPos := p.expect(token.FN)
			return &ast.FnStmt{Decl: p.parseFnDecl(fnPos, true)}
		}
		return p.parseStmt()

	case token.VAR:
		return p.parseVarStmt()

	default:
		return p.parseStmt()
	}
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.PRINT:
		return p.parsePrintStmt()
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		return p.parseBreakStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseBlock() *ast.Block {
	var block ast.Block
	block.Start = p.expect(token.LBRACE)
	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		if stmt := p.parseDecl(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	block.End = p.expect(token.RBRACE)
	return &block
}

func (p *parser) parseVarStmt() *ast.VarStmt {
	var stmt ast.VarStmt
	stmt.Var = p.expect(token.VAR)
	stmt.Name = p.parseIdentExpr()
	if p.tok == token.EQ {
		stmt.Eq = p.expect(token.EQ)
		stmt.Init = p.parseExpr()
	}
	stmt.Semi = p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parsePrintStmt() *ast.PrintStmt {
	var stmt ast.PrintStmt
	stmt.Print = p.expect(token.PRINT)
	stmt.Expr = p.parseExpr()
	stmt.Semi = p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	var stmt ast.IfStmt
	stmt.If = p.expect(token.IF)
	stmt.Lparen = p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	stmt.Rparen = p.expect(token.RPAREN)
	stmt.Then = p.parseStmt()
	if p.tok == token.ELSE {
		p.expect(token.ELSE)
		stmt.Else = p.parseStmt()
	}
	return &stmt
}

func (p *parser) parseWhileStmt() *ast.WhileStmt {
	var stmt ast.WhileStmt
	stmt.While = p.expect(token.WHILE)
	stmt.Lparen = p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	stmt.Rparen = p.expect(token.RPAREN)
	stmt.Body = p.parseStmt()
	return &stmt
}

// parseForStmt parses a for loop and desugars it to a while loop:
// `for (I; C; U) B` becomes `{ I; while (C) { B; U; } }`. A missing
// condition becomes `true` and a missing increment removes the inner block
// wrapper.
func (p *parser) parseForStmt() ast.Stmt {
	forPos := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Stmt
	switch p.tok {
	case token.SEMICOLON:
		p.expect(token.SEMICOLON)
	case token.VAR:
		init = p.parseVarStmt()
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	condPos := p.val.Pos
	if p.tok != token.SEMICOLON {
		cond = p.parseExpr()
	}
	p.expect(token.SEMICOLON)

	var incr ast.Expr
	if p.tok != token.RPAREN {
		incr = p.parseExpr()
	}
	p.expect(token.RPAREN)

	body := p.parseStmt()

	if incr != nil {
		bodyStart, _ := body.Span()
		_, incrEnd := incr.Span()
		body = &ast.Block{
			Start: bodyStart,
			End:   incrEnd,
			Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: incr}},
		}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{
			Type:  token.TRUE,
			Start: condPos,
			Raw:   token.TRUE.String(),
			Value: true,
		}
	}

	var loop ast.Stmt = &ast.WhileStmt{While: forPos, Cond: cond, Body: body}
	if init != nil {
		initStart, _ := init.Span()
		_, bodyEnd := body.Span()
		loop = &ast.Block{
			Start: initStart,
			End:   bodyEnd,
			Stmts: []ast.Stmt{init, loop},
		}
	}
	return loop
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	var stmt ast.ReturnStmt
	stmt.Return = p.expect(token.RETURN)
	if p.tok != token.SEMICOLON {
		stmt.Expr = p.parseExpr()
	}
	stmt.Semi = p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseBreakStmt() *ast.BreakStmt {
	var stmt ast.BreakStmt
	stmt.Break = p.expect(token.BREAK)
	stmt.Semi = p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseExprStmt() *ast.ExprStmt {
	var stmt ast.ExprStmt
	stmt.Expr = p.parseExpr()
	stmt.Semi = p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseClassStmt() *ast.ClassStmt {
	var stmt ast.ClassStmt
	stmt.Class = p.expect(token.CLASS)
	stmt.Name = p.parseIdentExpr()
	if p.tok == token.LT {
		stmt.Lt = p.expect(token.LT)
		stmt.Super = p.parseIdentExpr()
	}
	stmt.Lbrace = p.expect(token.LBRACE)
	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		stmt.Methods = append(stmt.Methods, p.parseFnDecl(token.NoPos, true))
	}
	stmt.Rbrace = p.expect(token.RBRACE)
	return &stmt
}

// parseFnDecl parses a function's name (if named), parameter list and body.
// The 'fn' keyword, when present, has already been consumed by the caller;
// methods have none.
func (p *parser) parseFnDecl(fnPos token.Pos, named bool) *ast.FnDecl {
	var decl ast.FnDecl
	decl.Fn = fnPos
	if named {
		decl.Name = p.parseIdentExpr()
	}
	decl.Lparen = p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		decl.Params = append(decl.Params, p.parseIdentExpr())
		for p.tok == token.COMMA {
			p.expect(token.COMMA)
			if len(decl.Params) >= maxParams {
				start, _ := decl.Params[0].Span()
				p.error(start, "cannot have more than 255 parameters")
			}
			decl.Params = append(decl.Params, p.parseIdentExpr())
		}
	}
	decl.Rparen = p.expect(token.RPAREN)
	decl.Body = p.parseBlock()
	return &decl
}
