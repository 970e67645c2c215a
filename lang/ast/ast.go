// Package ast defines the types to represent the abstract syntax tree (AST)
// of the language. The parser allocates a distinct node for every source
// occurrence, so node pointer identity is occurrence identity - the resolver
// relies on this to key its binding table.
package ast

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/JBreidfjord/loxide/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements the fmt.Formatter interface so they can print a
	// description of themselves. The only supported verbs are 'v' and 's'.
	// The '#' flag can be used to print count information about children
	// nodes. A width can be set to define the number of runes to print for
	// the node description - by default, that width is padded with spaces
	// on the left if the description is shorter, otherwise it is truncated
	// to that width. The '-' flag can be used to pad with spaces on the
	// right instead, and the '+' flag can be used to prevent padding
	// altogether - it only truncates if longer.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each node inside itself to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmt()
}

type (
	// Chunk represents a whole source file (or REPL line). It is exactly the
	// same as Block except that it keeps track of its name and the EOF, which
	// is useful for empty files to get a valid position.
	Chunk struct {
		// Name is the filename, which may be empty if the chunk is not a file.
		Name string

		// Block is the list of statements contained in the chunk.
		Block *Block
		EOF   token.Pos // position of the EOF marker
	}

	// Block represents a block of statements. At the top level of a chunk the
	// Start and End positions span the statements; for a braced block they
	// are the positions of the braces.
	Block struct {
		Start token.Pos
		End   token.Pos
		Stmts []Stmt
	}

	// FnDecl represents a function declaration: a named function statement, a
	// method, or an anonymous function expression (Name is nil for the
	// latter).
	FnDecl struct {
		Fn     token.Pos   // position of the 'fn' keyword, zero for methods
		Name   *IdentExpr  // nil for an anonymous function
		Lparen token.Pos
		Params []*IdentExpr
		Rparen token.Pos
		Body   *Block
	}
)

func (n *Chunk) Format(f fmt.State, verb rune) {
	lbl := "chunk"
	if n.Name != "" {
		lbl += " " + strings.ReplaceAll(n.Name, string(os.PathSeparator), "/")
	}
	format(f, verb, n, lbl, nil)
}
func (n *Chunk) Span() (start, end token.Pos) {
	if n.Block != nil && len(n.Block.Stmts) > 0 {
		return n.Block.Span()
	}
	return n.EOF, n.EOF
}
func (n *Chunk) Walk(v Visitor) {
	if n.Block != nil {
		Walk(v, n.Block)
	}
}

func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *Block) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *Block) stmt() {}

func (n *FnDecl) Format(f fmt.State, verb rune) {
	lbl := "fn"
	if n.Name != nil {
		lbl += " " + n.Name.Lit
	}
	format(f, verb, n, lbl, map[string]int{"params": len(n.Params)})
}
func (n *FnDecl) Span() (start, end token.Pos) {
	start = n.Fn
	if !start.IsValid() && n.Name != nil {
		start, _ = n.Name.Span()
	}
	_, end = n.Body.Span()
	return start, end
}
func (n *FnDecl) Walk(v Visitor) {
	for _, e := range n.Params {
		Walk(v, e)
	}
	Walk(v, n.Body)
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	// replace tabs and newlines with the corresponding unicode key
	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
