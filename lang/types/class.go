package types

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

// A Class is a user-defined class: a name, an optional superclass and the
// methods declared in its body.
type Class struct {
	name    string
	super   *Class
	methods map[string]*Function
}

var (
	_ Value    = (*Class)(nil)
	_ Callable = (*Class)(nil)
)

// NewClass creates a class value. The methods map is owned by the class
// after the call.
func NewClass(name string, super *Class, methods map[string]*Function) *Class {
	return &Class{name: name, super: super, methods: methods}
}

func (c *Class) String() string { return "<class " + c.name + ">" }
func (c *Class) Type() string   { return "<class>" }
func (c *Class) Truth() Bool    { return True }
func (c *Class) Name() string   { return c.name }

// Arity returns the arity of the class's initializer, or zero if the class
// (and its superclass chain) has none.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// FindMethod returns the method with the given name, walking the superclass
// chain, or nil if no class in the chain declares it.
func (c *Class) FindMethod(name string) *Function {
	for cl := c; cl != nil; cl = cl.super {
		if m, ok := cl.methods[name]; ok {
			return m
		}
	}
	return nil
}

// An Instance is an instance of a class. Its field map is shared by
// reference: all values referring to the instance observe the same fields,
// preserving object identity across assignments.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, Value]
}

var _ Value = (*Instance)(nil)

// NewInstance creates an instance of the class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: swiss.NewMap[string, Value](8)}
}

func (inst *Instance) String() string { return "<" + inst.class.name + " instance>" }
func (inst *Instance) Type() string   { return "<instance>" }
func (inst *Instance) Truth() Bool    { return True }
func (inst *Instance) Class() *Class  { return inst.class }

// Attr returns the field or bound method with the given name. Fields shadow
// methods; a method hit returns a new Function bound to this instance.
func (inst *Instance) Attr(name string) (Value, bool) {
	if v, ok := inst.fields.Get(name); ok {
		return v, true
	}
	if m := inst.class.FindMethod(name); m != nil {
		return m.Bind(inst), true
	}
	return nil, false
}

// SetField writes the field in the instance's shared field map.
func (inst *Instance) SetField(name string, v Value) {
	inst.fields.Put(name, v)
}

// AttrNames returns the sorted names of the fields set on the instance.
func (inst *Instance) AttrNames() []string {
	names := make([]string, 0, inst.fields.Count())
	inst.fields.Iter(func(k string, _ Value) bool {
		names = append(names, k)
		return false
	})
	slices.Sort(names)
	return names
}
