package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBreidfjord/loxide/lang/ast"
)

func declWithParams(name string, params ...string) *ast.FnDecl {
	decl := &ast.FnDecl{Body: &ast.Block{}}
	if name != "" {
		decl.Name = &ast.IdentExpr{Lit: name}
	}
	for _, p := range params {
		decl.Params = append(decl.Params, &ast.IdentExpr{Lit: p})
	}
	return decl
}

func TestFunctionBasics(t *testing.T) {
	env := NewEnvironment(nil)
	fn := &Function{Decl: declWithParams("add", "x", "y"), Closure: env}

	assert.Equal(t, "add", fn.Name())
	assert.Equal(t, 2, fn.Arity())
	assert.Equal(t, "<fn add>", fn.String())
	assert.Equal(t, "<fn>", fn.Type())

	anon := &Function{Decl: declWithParams(""), Closure: env}
	assert.Equal(t, "", anon.Name())
	assert.Equal(t, "<fn>", anon.String())
}

func TestFindMethod(t *testing.T) {
	env := NewEnvironment(nil)
	baseHi := &Function{Decl: declWithParams("hi"), Closure: env}
	baseBye := &Function{Decl: declWithParams("bye"), Closure: env}
	base := NewClass("Base", nil, map[string]*Function{"hi": baseHi, "bye": baseBye})

	derivedHi := &Function{Decl: declWithParams("hi"), Closure: env}
	derived := NewClass("Derived", base, map[string]*Function{"hi": derivedHi})

	// own method shadows the superclass's
	assert.Same(t, derivedHi, derived.FindMethod("hi"))
	// inherited through the chain
	assert.Same(t, baseBye, derived.FindMethod("bye"))
	assert.Nil(t, derived.FindMethod("nope"))
}

func TestClassArity(t *testing.T) {
	env := NewEnvironment(nil)
	noInit := NewClass("A", nil, nil)
	assert.Equal(t, 0, noInit.Arity())

	init := &Function{Decl: declWithParams("init", "a", "b"), Closure: env, IsInit: true}
	withInit := NewClass("B", nil, map[string]*Function{"init": init})
	assert.Equal(t, 2, withInit.Arity())

	// the initializer arity is inherited with the initializer
	sub := NewClass("C", withInit, nil)
	assert.Equal(t, 2, sub.Arity())
}

func TestInstanceFields(t *testing.T) {
	cls := NewClass("Point", nil, nil)
	inst := NewInstance(cls)

	_, ok := inst.Attr("x")
	assert.False(t, ok)

	inst.SetField("x", Number(1))
	v, ok := inst.Attr("x")
	require.True(t, ok)
	assert.Equal(t, Number(1), v)

	inst.SetField("x", Number(2))
	v, _ = inst.Attr("x")
	assert.Equal(t, Number(2), v)

	inst.SetField("a", Nil)
	assert.Equal(t, []string{"a", "x"}, inst.AttrNames())
}

func TestInstanceBoundMethod(t *testing.T) {
	env := NewEnvironment(nil)
	hi := &Function{Decl: declWithParams("hi"), Closure: env}
	cls := NewClass("Greeter", nil, map[string]*Function{"hi": hi})
	inst := NewInstance(cls)

	v, ok := inst.Attr("hi")
	require.True(t, ok)
	bound, ok := v.(*Function)
	require.True(t, ok)

	// the bound method's closure is extended with 'this'
	this, ok := bound.Closure.GetAt(0, "this")
	require.True(t, ok)
	assert.Same(t, inst, this)
	assert.Same(t, hi.Decl, bound.Decl)

	// fields shadow methods
	inst.SetField("hi", String("shadowed"))
	v, _ = inst.Attr("hi")
	assert.Equal(t, String("shadowed"), v)
}

func TestBindIsInit(t *testing.T) {
	env := NewEnvironment(nil)
	init := &Function{Decl: declWithParams("init"), Closure: env, IsInit: true}
	cls := NewClass("A", nil, map[string]*Function{"init": init})
	inst := NewInstance(cls)

	bound := init.Bind(inst)
	assert.True(t, bound.IsInit)
}
