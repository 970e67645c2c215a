// Package parser implements the parser that transforms source code into an
// abstract syntax tree (AST).
package parser

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/JBreidfjord/loxide/lang/ast"
	"github.com/JBreidfjord/loxide/lang/scanner"
	"github.com/JBreidfjord/loxide/lang/token"
)

// ParseFiles is a helper function that parses the source files and returns the
// fileset along with the ASTs and any error encountered. The error, if
// non-nil, is guaranteed to be a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) (*token.FileSet, []*ast.Chunk, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var p parser
	res := make([]*ast.Chunk, 0, len(files))
	fs := token.NewFileSet()

	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		p.init(fs, file, b)
		ch := p.parseChunk()
		ch.Name = file
		res = append(res, ch)
	}
	p.errors.Sort()
	return fs, res, p.errors.Err()
}

// ParseChunk is a helper function that parses a single chunk from a slice of
// bytes and returns the AST and any error encountered. The chunk is added to
// the provided fset for position reporting under the name specified in
// filename. The error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ParseChunk(ctx context.Context, fset *token.FileSet, filename string, src []byte) (*ast.Chunk, error) {
	var p parser
	p.init(fset, filename, src)
	ch := p.parseChunk()
	ch.Name = filename
	return ch, p.errors.Err()
}

// parser parses source files and generates an AST.
type parser struct {
	// those fields are immutable after p.init
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File

	// current token and one token of lookahead, needed to distinguish a
	// function declaration from an anonymous function expression after 'fn'.
	tok     token.Token
	val     token.Value
	nextTok token.Token
	nextVal token.Value
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, -1, len(src))
	p.scanner.Init(p.file, src, p.errors.Add)

	// fill the current and lookahead tokens
	p.nextTok = p.scanner.Scan(&p.nextVal)
	p.advance()
}

func (p *parser) advance() {
	p.tok, p.val = p.nextTok, p.nextVal
	if p.tok != token.EOF {
		p.nextTok = p.scanner.Scan(&p.nextVal)
	}
}

func (p *parser) parseChunk() *ast.Chunk {
	var chunk ast.Chunk
	var block ast.Block

	block.Start = p.val.Pos
	for p.tok != token.EOF {
		if stmt := p.parseDecl(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	block.End = p.val.Pos

	chunk.Block = &block
	chunk.EOF = p.expect(token.EOF)
	return &chunk
}

var errPanicMode = errors.New("panic")

// expect returns the position of the current token and consumes it if it is
// one of the expected tokens, otherwise it reports an error and panics with
// errPanicMode which gets recovered at the declaration level, resulting in a
// BadStmt.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos

	var buf strings.Builder
	var ok bool
	for i, tok := range toks {
		if p.tok == tok {
			ok = true
			break
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tok.GoString())
	}

	if !ok {
		var lbl string
		if len(toks) > 1 {
			lbl = "one of " + buf.String()
		} else {
			lbl = buf.String()
		}
		p.errorExpected(pos, lbl)
		panic(errPanicMode)
	}

	p.advance()
	return pos
}

func (p *parser) error(pos token.Pos, msg string) {
	lpos := p.file.Position(pos)
	p.errors.Add(lpos, msg)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.val.Pos {
		// the error happened at the current position;
		// make the error message more specific
		switch lit := p.tok.Literal(p.val); lit {
		case "":
			msg += ", found " + p.tok.GoString()
		default:
			// print 123 rather than 'NUMBER', etc.
			msg += ", found " + lit
		}
	}
	p.error(pos, msg)
}

// syncAfterError advances to the next synchronization point: the token after
// the next semicolon, or the next token that may start a declaration. It
// returns the position reached, for the span of the BadStmt.
func (p *parser) syncAfterError() token.Pos {
	for p.tok != token.EOF {
		if p.tok == token.SEMICOLON {
			p.advance()
			break
		}
		switch p.tok {
		case token.CLASS, token.FN, token.VAR, token.FOR, token.IF,
			token.WHILE, token.PRINT, token.RETURN:
			return p.val.Pos
		}
		p.advance()
	}
	return p.val.Pos
}

func tokenIn(t token.Token, toks ...token.Token) bool {
	for _, tok := range toks {
		if t == tok {
			return true
		}
	}
	return false
}
