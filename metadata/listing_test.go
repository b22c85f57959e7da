// Copyright 2024 The ClarifierEx Authors. All Rights Reserved.
// This file is available under the Apache license.

package metadata_test

import (
	"strings"
	"testing"

	"github.com/n3t3h/ClarifierEx/internal/testutil"
	"github.com/n3t3h/ClarifierEx/metadata"
)

func TestParseListing(t *testing.T) {
	listing := `
# a decoded module, textual form
module Sample
  type Renderer
    method Paint
      ldarg 0
      call Flush
      ret
    extern method Native
    method Empty
    type Inner
      method Helper
        999 raw
        ret
  type Util
`
	mod, err := metadata.ParseListing("sample", strings.NewReader(listing))
	testutil.FatalIfErr(t, err)

	expected := &metadata.Module{
		Name: "Sample",
		Types: []*metadata.TypeDef{
			{
				Name: "Renderer",
				Methods: []*metadata.MethodDef{
					{
						Name: "Paint",
						Body: &metadata.MethodBody{Instrs: []metadata.Instr{
							{Opcode: metadata.LoadArg, Operand: "0"},
							{Opcode: metadata.Call, Operand: "Flush"},
							{Opcode: metadata.Ret},
						}},
					},
					{Name: "Native"},
					{Name: "Empty", Body: &metadata.MethodBody{}},
				},
				NestedTypes: []*metadata.TypeDef{
					{
						Name: "Inner",
						Methods: []*metadata.MethodDef{
							{
								Name: "Helper",
								Body: &metadata.MethodBody{Instrs: []metadata.Instr{
									{Opcode: metadata.Opcode(999), Operand: "raw"},
									{Opcode: metadata.Ret},
								}},
							},
						},
					},
				},
			},
			{Name: "Util"},
		},
	}
	testutil.ExpectNoDiff(t, expected, mod)
}

func TestParseListingErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		listing string
	}{
		{"no module", "type Foo\n"},
		{"duplicate module", "module A\nmodule B\n"},
		{"odd indent", "module A\n type Foo\n"},
		{"tab indent", "module A\n\ttype Foo\n"},
		{"type too deep", "module A\n    type Foo\n"},
		{"method outside type", "module A\n  method Bar\n"},
		{"instruction outside method", "module A\n  type Foo\n    ret\n"},
		{"instruction in extern method", "module A\n  type Foo\n    extern method Bar\n      ret\n"},
		{"unknown opcode", "module A\n  type Foo\n    method Bar\n      frobnicate\n"},
		{"extern without method", "module A\n  type Foo\n    extern Bar\n"},
		{"empty listing", ""},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mod, err := metadata.ParseListing(tc.name, strings.NewReader(tc.listing))
			if err == nil {
				t.Errorf("expected a parse error, got module %v", mod)
			}
		})
	}
}

func TestParseListingSiblingAfterNested(t *testing.T) {
	listing := `module A
  type Outer
    type Inner
      method Deep
        ret
    method Shallow
      ret
`
	mod, err := metadata.ParseListing("siblings", strings.NewReader(listing))
	testutil.FatalIfErr(t, err)
	outer := mod.Types[0]
	if len(outer.Methods) != 1 || outer.Methods[0].Name != "Shallow" {
		t.Errorf("Shallow not attached to Outer: %+v", outer.Methods)
	}
	if len(outer.NestedTypes) != 1 || len(outer.NestedTypes[0].Methods) != 1 {
		t.Errorf("Inner.Deep not attached: %+v", outer.NestedTypes)
	}
}
