// Package scanner implements the scanner that tokenizes source files for the
// parser to consume. Errors are accumulated in a go/scanner ErrorList so that
// a single pass can report every lexical error in a file.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"go/scanner"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/JBreidfjord/loxide/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// TokenAndValue combines the token type with the token value type in the same
// struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles is a helper function that tokenizes the source files and returns
// the list of tokens, grouped by the file at the same index, and produces any
// error encountered. The error, if non-nil, is guaranteed to be an
// ErrorList.
func ScanFiles(ctx context.Context, files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		fsf := fs.AddFile(file, -1, len(b))
		s.Init(fsf, b, el.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{
				Token: tok,
				Value: tokVal,
			})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return fs, tokensByFile, el.Err()
}

// Scanner tokenizes source files for the parser to consume.
type Scanner struct {
	// immutable state after Init
	file *token.File // source file handle
	src  []byte
	err  func(pos token.Position, msg string)

	// mutable scanning state
	invalidByte byte // when cur==RuneError due to failed utf8 decode, this is the invalid byte
	cur         rune // current character
	off         int  // character offset in bytes of cur
	roff        int  // reading offset in bytes (position after current character)
}

// Init initializes the scanner to tokenize a new file. It panics if the file
// size is not the same as the length of the src slice.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}

	s.file = file
	s.src = src
	s.err = errHandler

	s.invalidByte = 0
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.advance()
}

// peek returns the byte following the most recently read character without
// advancing the scanner. If the scanner is at EOF, peek returns 0.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// read the next Unicode char into s.cur; s.cur < 0 means end-of-file.
func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.file.AddLine(s.off)
		}
		s.cur = -1
		return
	}

	s.off = s.roff
	if s.cur == '\n' {
		s.file.AddLine(s.off)
	}

	// fast path if the rune is an ASCII char, no decoding necessary
	s.invalidByte = 0
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		// not ASCII
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
			// store the actual invalid byte
			s.invalidByte = s.src[s.roff]
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

// advance only if the current char matches the specified one.
func (s *Scanner) advanceIf(match byte) bool {
	if s.cur == rune(match) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source file.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
again:
	s.skipWhitespace()

	// current token start
	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		// keywords and identifiers
		lit := s.ident()
		tok = token.IDENT
		if len(lit) > 1 {
			// keywords are longer than one letter - avoid lookup otherwise
			tok = token.LookupKw(lit)
		}
		*tokVal = token.Value{Raw: lit, Pos: pos}

	case isDigit(cur):
		var lit string
		tok, lit = s.number()
		*tokVal = token.Value{Raw: lit, Pos: pos}
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				s.error(start, "number literal value out of range")
			} else {
				s.errorf(start, "invalid number literal %s", lit)
			}
		}
		tokVal.Num = v

	default:
		// keywords, identifiers and numbers are done

		s.advance() // always make progress
		switch cur {
		case '(', ')', '{', '}', ',', '.', '-', '+', ';', '*':
			// unambiguous single-char punctuation
			tok = lookupPunct(string(cur))
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '!', '=', '<', '>':
			// single-char operators that can be followed by '=' and nothing else
			if s.advanceIf('=') {
				tok = lookupPunct(string(s.src[start:s.off]))
			} else {
				tok = lookupPunct(string(cur))
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '/':
			// slash or start of a line comment (//)
			if s.advanceIf('/') {
				// comments are discarded up to but not including the newline
				for s.cur != '\n' && s.cur != -1 {
					s.advance()
				}
				goto again
			}
			tok = token.SLASH
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '"':
			tok = token.STRING
			lit, val := s.stringLit()
			*tokVal = token.Value{Raw: lit, Pos: pos, String: val}

		case -1:
			tok = token.EOF
			*tokVal = token.Value{Raw: "", Pos: pos}

		default:
			if cur == utf8.RuneError && s.invalidByte > 0 {
				cur = rune(s.invalidByte)
				s.invalidByte = 0
			}
			s.errorf(start, "illegal character %#U", cur)
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: string(cur), Pos: pos}
		}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// number scans a NUMBER literal: an integer part and an optional fractional
// part. A trailing '.' with no fractional digit is not consumed.
func (s *Scanner) number() (token.Token, string) {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDigit(rune(s.peek())) {
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
	return token.NUMBER, string(s.src[start:s.off])
}

// stringLit scans a string literal after the opening quote has been
// consumed. Strings may span multiple lines. It returns the raw lexeme
// including the quotes and the decoded text.
func (s *Scanner) stringLit() (lit, val string) {
	start := s.off - 1 // opening quote already consumed
	for s.cur != '"' {
		if s.cur == -1 {
			s.error(start, "unterminated string literal")
			raw := string(s.src[start:s.off])
			return raw, string(s.src[start+1 : s.off])
		}
		s.advance()
	}
	s.advance() // closing quote
	raw := string(s.src[start:s.off])
	return raw, raw[1 : len(raw)-1]
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.cur) {
		s.advance()
	}
}

var puncts = map[string]token.Token{
	"(": token.LPAREN, ")": token.RPAREN, "{": token.LBRACE, "}": token.RBRACE,
	",": token.COMMA, ".": token.DOT, "-": token.MINUS, "+": token.PLUS,
	";": token.SEMICOLON, "*": token.STAR, "/": token.SLASH,
	"!": token.BANG, "!=": token.BANGEQ, "=": token.EQ, "==": token.EQEQ,
	"<": token.LT, "<=": token.LE, ">": token.GT, ">=": token.GE,
}

func lookupPunct(s string) token.Token {
	if tok, ok := puncts[s]; ok {
		return tok
	}
	return token.ILLEGAL
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' || 'A' <= rn && rn <= 'Z' || rn == '_'
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
