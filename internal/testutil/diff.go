// Copyright 2024 The ClarifierEx Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package testutil wraps the go-cmp diffing helpers used throughout the
// tests.  The name 'cmp' is avoided at call sites as it collides with the
// cmp opcode in the instruction model.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func Diff(a, b interface{}, opts ...cmp.Option) string {
	return cmp.Diff(a, b, opts...)
}

func IgnoreUnexported(types ...interface{}) cmp.Option {
	return cmpopts.IgnoreUnexported(types...)
}

func AllowUnexported(types ...interface{}) cmp.Option {
	return cmp.AllowUnexported(types...)
}

func IgnoreFields(typ interface{}, names ...string) cmp.Option {
	return cmpopts.IgnoreFields(typ, names...)
}

// ExpectNoDiff fails the test when expected and received differ, and reports
// whether they were equal.
func ExpectNoDiff(tb testing.TB, expected, received interface{}, opts ...cmp.Option) bool {
	tb.Helper()
	if diff := Diff(expected, received, opts...); diff != "" {
		tb.Errorf("Unexpected diff, -expected +received:\n%s", diff)
		return false
	}
	return true
}
