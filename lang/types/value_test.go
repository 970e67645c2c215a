package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruth(t *testing.T) {
	falsey := []Value{Nil, False}
	truthy := []Value{
		True,
		Number(0),
		Number(1),
		Number(math.NaN()),
		String(""),
		String("x"),
		NewBuiltin("f", 0, nil),
		NewClass("C", nil, nil),
	}

	for _, v := range falsey {
		assert.Equal(t, False, v.Truth(), "%s", v)
	}
	for _, v := range truthy {
		assert.Equal(t, True, v.Truth(), "%s", v)
	}
}

func TestEqual(t *testing.T) {
	cls := NewClass("C", nil, nil)
	inst1 := NewInstance(cls)
	inst2 := NewInstance(cls)
	bi := NewBuiltin("f", 0, nil)

	cases := []struct {
		x, y Value
		want bool
	}{
		{Nil, Nil, true},
		{Nil, False, false},
		{True, True, true},
		{True, False, false},
		{Number(1), Number(1), true},
		{Number(1), Number(2), false},
		{Number(0), Number(math.Copysign(0, -1)), true}, // -0 == +0
		{Number(math.NaN()), Number(math.NaN()), true},  // total order
		{Number(1), String("1"), false},
		{String("a"), String("a"), true},
		{String("a"), String("b"), false},
		{String(""), Nil, false},
		{inst1, inst1, true},
		{inst1, inst2, false},
		{cls, cls, true},
		{bi, bi, true},
		{bi, cls, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Equal(c.x, c.y), "%s == %s", c.x, c.y)
		// symmetry
		assert.Equal(t, c.want, Equal(c.y, c.x), "%s == %s", c.y, c.x)
	}

	// reflexivity for every variant
	for _, v := range []Value{Nil, True, False, Number(0), Number(math.NaN()),
		String("s"), bi, cls, inst1} {
		assert.True(t, Equal(v, v), "%s == %s", v, v)
	}
}

func TestNumberString(t *testing.T) {
	cases := []struct {
		n    float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-3, "-3"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{math.Inf(1), "+Inf"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Number(c.n).String())
	}
}

func TestNumberCmp(t *testing.T) {
	nan := Number(math.NaN())
	inf := Number(math.Inf(1))

	require.Equal(t, 0, nan.Cmp(nan))
	require.Equal(t, 1, nan.Cmp(inf))
	require.Equal(t, -1, inf.Cmp(nan))
	require.Equal(t, -1, Number(1).Cmp(Number(2)))
	require.Equal(t, 1, Number(2).Cmp(Number(1)))
	require.Equal(t, 0, Number(2).Cmp(Number(2)))
}

func TestRendering(t *testing.T) {
	cls := NewClass("Point", nil, nil)
	inst := NewInstance(cls)
	bi := NewBuiltin("clock", 0, nil)

	require.Equal(t, "nil", Nil.String())
	require.Equal(t, "true", True.String())
	require.Equal(t, "false", False.String())
	require.Equal(t, "raw text", String("raw text").String())
	require.Equal(t, "<native fn clock>", bi.String())
	require.Equal(t, "<class Point>", cls.String())
	require.Equal(t, "<Point instance>", inst.String())
}
