// Copyright 2024 The ClarifierEx Authors. All Rights Reserved.
// This file is available under the Apache license.

package metadata_test

import (
	"testing"

	"github.com/n3t3h/ClarifierEx/internal/testutil"
	"github.com/n3t3h/ClarifierEx/metadata"
)

func TestInstrString(t *testing.T) {
	testutil.ExpectNoDiff(t, "{call Flush}", metadata.Instr{Opcode: metadata.Call, Operand: "Flush"}.String())
	testutil.ExpectNoDiff(t, "{ret}", metadata.Instr{Opcode: metadata.Ret}.String())
}

func TestOpcodeString(t *testing.T) {
	testutil.ExpectNoDiff(t, "ldarg", metadata.LoadArg.String())
	testutil.ExpectNoDiff(t, "opcode(1234)", metadata.Opcode(1234).String())
}
