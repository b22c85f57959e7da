// Copyright 2024 The ClarifierEx Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package metadata holds the in-memory model of a decoded assembly that the
// matching engine consumes: modules owning types, types owning methods and
// nested types, methods owning an ordered instruction stream.  The model is
// produced elsewhere (a binary reader, or ParseListing for textual fixtures)
// and is read-only as far as this library is concerned.
package metadata

import "fmt"

// Opcode identifies the operation kind of an instruction.  Matching compares
// opcodes by value only; any int is a valid Opcode as far as the matcher is
// concerned, and hosts decoding a real binary supply their own values.  The
// constants below cover the vocabulary used in tests and fixtures.
type Opcode int

const (
	Bad Opcode = iota // Invalid instruction, indicates a decoder bug.
	Nop
	LoadArg
	LoadLocal
	LoadConst
	LoadField
	StoreLocal
	StoreField
	Call
	CallVirt
	New
	Ret
	Br
	BrTrue
	BrFalse
	Add
	Sub
	Mul
	Cmp
	Conv
	Throw
	Pop
	Dup

	lastOpcode
)

var opNames = map[Opcode]string{
	Bad:        "bad",
	Nop:        "nop",
	LoadArg:    "ldarg",
	LoadLocal:  "ldloc",
	LoadConst:  "ldc",
	LoadField:  "ldfld",
	StoreLocal: "stloc",
	StoreField: "stfld",
	Call:       "call",
	CallVirt:   "callvirt",
	New:        "newobj",
	Ret:        "ret",
	Br:         "br",
	BrTrue:     "brtrue",
	BrFalse:    "brfalse",
	Add:        "add",
	Sub:        "sub",
	Mul:        "mul",
	Cmp:        "cmp",
	Conv:       "conv",
	Throw:      "throw",
	Pop:        "pop",
	Dup:        "dup",
}

var opcodesByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

func (o Opcode) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("opcode(%d)", int(o))
}

// Instr is one instruction of a method body.  Only the Opcode participates
// in matching; the Operand is carried for the host and for debug printing.
type Instr struct {
	Opcode  Opcode
	Operand interface{}
}

// debug print for instructions.
func (i Instr) String() string {
	if i.Operand == nil {
		return fmt.Sprintf("{%s}", i.Opcode)
	}
	return fmt.Sprintf("{%s %v}", i.Opcode, i.Operand)
}
