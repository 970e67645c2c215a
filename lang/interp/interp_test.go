package interp_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBreidfjord/loxide/lang/interp"
	"github.com/JBreidfjord/loxide/lang/parser"
	"github.com/JBreidfjord/loxide/lang/resolver"
	"github.com/JBreidfjord/loxide/lang/token"
)

// run executes the full pipeline on src and returns the print output and the
// first error raised by the evaluator. Parse and resolve errors fail the
// test: these cases belong to the parser and resolver tests.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	ctx := context.Background()
	fset := token.NewFileSet()
	ch, err := parser.ParseChunk(ctx, fset, "test", []byte(src))
	require.NoError(t, err)
	bindings, err := resolver.ResolveChunk(ctx, fset, ch)
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New(fset)
	it.Stdout = &buf
	err = it.RunChunk(ctx, ch, bindings)
	return buf.String(), err
}

func TestRunOutput(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"arithmetic precedence", `print 1 + 2 * 3;`, "7\n"},
		{"division", `print 7 / 2;`, "3.5\n"},
		{"unary", `print -3; print !nil; print !0;`, "-3\ntrue\nfalse\n"},
		{"string concat", `var a = "hi"; var b = " there"; print a + b;`, "hi there\n"},
		{"comparison", `print 1 < 2; print 2 <= 1; print 3 > 2; print 2 >= 3;`, "true\nfalse\ntrue\nfalse\n"},
		{"equality", `print 1 == 1; print 1 == "1"; print nil == nil; print "a" != "b";`, "true\nfalse\ntrue\ntrue\n"},
		{"logical operand values", `print "a" or "b"; print nil or "b"; print nil and 1; print 1 and 2;`, "a\nb\nnil\n2\n"},
		{"if else", `if (1 > 2) print "then"; else print "else";`, "else\n"},
		{"while", `var i = 0; var s = 0; while (i < 5) { s = s + i; i = i + 1; } print s;`, "10\n"},
		{"for with break", `for (var i = 0; i < 3; i = i + 1) { if (i == 2) break; print i; }`, "0\n1\n"},
		{"break exits only its loop", `var s = ""; for (var i = 0; i < 2; i = i + 1) { while (true) { break; } s = s + "x"; } print s;`, "xx\n"},
		{"shadowing", `var x = 1; { var x = 2; { var x = 3; print x; } print x; } print x;`, "3\n2\n1\n"},
		{"assign is an expression", `var a = 1; print a = 2; print a;`, "2\n2\n"},
		{"closure counter", `
fn make() { var i = 0; fn tick() { i = i + 1; return i; } return tick; }
var t = make(); print t(); print t(); print t();`, "1\n2\n3\n"},
		{"closures are independent", `
fn make() { var i = 0; fn tick() { i = i + 1; return i; } return tick; }
var t1 = make(); var t2 = make(); print t1(); print t2();`, "1\n1\n"},
		{"closure sees later mutation", `{ var a = 1; fn get() { return a; } a = 2; print get(); }`, "2\n"},
		{"global late binding", `fn f() { return g(); } fn g() { return 41; } print f() + 1;`, "42\n"},
		{"recursion", `fn fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); } print fib(10);`, "55\n"},
		{"lambda", `var dbl = fn (x) { return x * 2; }; print dbl(21);`, "42\n"},
		{"lambda as argument", `fn apply(f, x) { return f(x); } print apply(fn (n) { return n + 1; }, 41);`, "42\n"},
		{"implicit return is nil", `fn noop() {} print noop();`, "nil\n"},
		{"function rendering", `fn foo() {} print foo; print clock;`, "<fn foo>\n<native fn clock>\n"},
		{"class rendering", `class Point {} print Point; print Point();`, "<class Point>\n<Point instance>\n"},
		{"init and this", `
class Greeter { init(name) { this.name = name; } hi() { return "hi " + this.name; } }
print Greeter("lox").hi();`, "hi lox\n"},
		{"object identity", `class Foo {} var a = Foo(); var b = a; a.x = 1; print b.x;`, "1\n"},
		{"fields shadow methods", `class A { x() { return "method"; } } var a = A(); a.x = "field"; print a.x;`, "field\n"},
		{"inherited method", `class A { hi() { return "A"; } } class B < A {} print B().hi();`, "A\n"},
		{"inherited init", `class A { init(n) { this.n = n; } } class B < A {} print B(3).n;`, "3\n"},
		{"method overriding", `class A { hi() { return "A"; } } class B < A { hi() { return "B"; } } print B().hi();`, "B\n"},
		{"initializer returns this", `class A { init() { this.x = 1; } } var a = A(); print a.init() == a;`, "true\n"},
		{"bare return in init yields this", `class A { init() { this.x = 1; if (true) return; this.x = 2; } } print A().x;`, "1\n"},
		{"bound method as value", `
class Greeter { init(name) { this.name = name; } hi() { return "hi " + this.name; } }
var m = Greeter("lox").hi; print m();`, "hi lox\n"},
		{"method sees class through closure", `class A { make() { return A(); } } print A().make();`, "<A instance>\n"},
		{"number rendering", `print 0.1; print 100; print 2.5 * 2; print 1 / 3;`, "0.1\n100\n5\n0.3333333333333333\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := run(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind interp.Kind
		want string // expected substring of the error
	}{
		{"string plus number", `print "a" + 1;`, interp.InvalidOperand,
			"operator '+' expected one of: [String], found 1 of type Number"},
		{"number plus string", `print 1 + "a";`, interp.InvalidOperand,
			"operator '+' expected one of: [Number], found a of type String"},
		{"bool plus bool", `print true + true;`, interp.InvalidOperand,
			"operator '+' expected one of: [Number, String], found true of type Bool"},
		{"negate string", `print -"a";`, interp.InvalidOperand,
			"operator '-' expected one of: [Number], found a of type String"},
		{"compare mixed", `print 1 < "a";`, interp.InvalidOperand,
			"operator '<' expected one of: [Number], found a of type String"},
		{"call nil", `nil();`, interp.NotCallable,
			"cannot call non-callable value of type Nil"},
		{"call string", `"str"();`, interp.NotCallable,
			"cannot call non-callable value of type String"},
		{"arity mismatch", `fn f(a, b) {} f(1);`, interp.ArityMismatch,
			"expected 2 arguments but found 1"},
		{"class arity", `class A {} A(1);`, interp.ArityMismatch,
			"expected 0 arguments but found 1"},
		{"undefined variable", `print nope;`, interp.UndefinedVariable,
			"undefined variable: nope"},
		{"assign undefined", `nope = 1;`, interp.UndefinedVariable,
			"undefined variable: nope"},
		{"property on non-object", `var n = 4; print n.x;`, interp.PropertyOnNonObject,
			"cannot access property x on non-object 4 of type Number"},
		{"set on non-object", `var n = 4; n.x = 1;`, interp.PropertyOnNonObject,
			"cannot access property x on non-object 4 of type Number"},
		{"undefined property", `class A {} print A().missing;`, interp.UndefinedProperty,
			"undefined property missing on object <A instance>"},
		{"superclass not a class", `var NotAClass = 1; class B < NotAClass {}`, interp.SuperclassNotAClass,
			"superclass 1 must be a class"},
		{"error unwinds loop", `while (true) { nil(); }`, interp.NotCallable,
			"cannot call non-callable value"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := run(t, c.src)
			require.Error(t, err)

			var runErr *interp.Error
			require.ErrorAs(t, err, &runErr)
			assert.Equal(t, c.kind, runErr.Kind, "kind %s", runErr.Kind)
			assert.ErrorContains(t, err, c.want)
			// runtime errors carry the source position
			assert.Contains(t, err.Error(), "test:1:")
		})
	}
}

func TestRunErrorShortCircuitsStatement(t *testing.T) {
	// the failing statement stops the run; prior output is preserved
	got, err := run(t, `print "before"; nil(); print "after";`)
	require.Error(t, err)
	assert.Equal(t, "before\n", got)
}

func TestForWhileEquivalence(t *testing.T) {
	forSrc := `for (var i = 0; i < 4; i = i + 1) { print i * i; }`
	whileSrc := `{ var i = 0; while (i < 4) { { print i * i; } i = i + 1; } }`

	forOut, err := run(t, forSrc)
	require.NoError(t, err)
	whileOut, err := run(t, whileSrc)
	require.NoError(t, err)
	assert.Equal(t, whileOut, forOut)
	assert.Equal(t, "0\n1\n4\n9\n", forOut)
}

func TestClock(t *testing.T) {
	ctx := context.Background()
	fset := token.NewFileSet()
	ch, err := parser.ParseChunk(ctx, fset, "test", []byte(`print clock();`))
	require.NoError(t, err)
	bindings, err := resolver.ResolveChunk(ctx, fset, ch)
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New(fset)
	it.Stdout = &buf
	it.Now = func() time.Time { return time.Unix(1000, 250000000) }
	require.NoError(t, it.RunChunk(ctx, ch, bindings))

	// epoch seconds with sub-second precision
	assert.Equal(t, "1000.25\n", buf.String())
}

func TestMaxCallDepth(t *testing.T) {
	ctx := context.Background()
	fset := token.NewFileSet()
	ch, err := parser.ParseChunk(ctx, fset, "test", []byte(`fn f() { return f(); } f();`))
	require.NoError(t, err)
	bindings, err := resolver.ResolveChunk(ctx, fset, ch)
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New(fset)
	it.Stdout = &buf
	it.MaxCallDepth = 64
	err = it.RunChunk(ctx, ch, bindings)
	require.Error(t, err)

	var runErr *interp.Error
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, interp.CallDepthExceeded, runErr.Kind)
}

func TestGlobalsPersistAcrossChunks(t *testing.T) {
	// the REPL runs successive chunks against the same evaluator
	ctx := context.Background()
	fset := token.NewFileSet()
	var buf bytes.Buffer
	it := interp.New(fset)
	it.Stdout = &buf

	for _, src := range []string{`var a = 20;`, `fn dbl(x) { return x * 2; }`, `print dbl(a) + 2;`} {
		ch, err := parser.ParseChunk(ctx, fset, "repl", []byte(src))
		require.NoError(t, err)
		bindings, err := resolver.ResolveChunk(ctx, fset, ch)
		require.NoError(t, err)
		require.NoError(t, it.RunChunk(ctx, ch, bindings))
	}
	assert.Equal(t, "42\n", buf.String())
}
