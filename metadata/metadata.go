// Copyright 2024 The ClarifierEx Authors. All Rights Reserved.
// This file is available under the Apache license.

package metadata

import "iter"

// MethodBody is the ordered instruction stream implementing a method.  A
// method with no body (abstract, extern) carries a nil *MethodBody, which is
// distinct from an empty one.
type MethodBody struct {
	Instrs []Instr
}

// Len returns the instruction count, tolerating a nil receiver so callers
// can ask about absent bodies without a guard.
func (b *MethodBody) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Instrs)
}

// MethodDef is a method as decoded from its declaring type.
type MethodDef struct {
	Name string
	Body *MethodBody // nil when the method has no body.
}

// HasBody reports whether the method carries an instruction stream.
func (m *MethodDef) HasBody() bool {
	return m.Body != nil
}

// TypeDef is a type owning methods and, possibly, nested types.
type TypeDef struct {
	Name        string
	Methods     []*MethodDef
	NestedTypes []*TypeDef
}

// Module is a decoded assembly module owning top-level types.  Nested types
// are reachable through their enclosing TypeDef only.
type Module struct {
	Name  string
	Types []*TypeDef
}

// AllTypes yields this type and then every descendant nested type,
// depth-first in declaration order.  The walk is lazy; an abandoned range
// loop visits no further types.
func (t *TypeDef) AllTypes() iter.Seq[*TypeDef] {
	return func(yield func(*TypeDef) bool) {
		t.walk(yield)
	}
}

func (t *TypeDef) walk(yield func(*TypeDef) bool) bool {
	if !yield(t) {
		return false
	}
	for _, nested := range t.NestedTypes {
		if !nested.walk(yield) {
			return false
		}
	}
	return true
}

// AllTypes yields every type in the module, nested types included,
// depth-first in declaration order.
func (m *Module) AllTypes() iter.Seq[*TypeDef] {
	return func(yield func(*TypeDef) bool) {
		for _, t := range m.Types {
			if !t.walk(yield) {
				return
			}
		}
	}
}
