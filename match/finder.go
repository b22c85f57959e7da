// Copyright 2024 The ClarifierEx Authors. All Rights Reserved.
// This file is available under the Apache license.

package match

import (
	"fmt"
	"iter"

	"github.com/golang/glog"

	"github.com/n3t3h/ClarifierEx/metadata"
)

// Mode selects the comparison a Finder applies to each candidate method.
type Mode struct {
	fuzzy     bool
	threshold float64
}

// ModeExact matches only identical opcode sequences.
func ModeExact() Mode {
	return Mode{}
}

// ModeFuzzy matches when fuzzy coverage of the reference method strictly
// exceeds threshold.
func ModeFuzzy(threshold float64) Mode {
	return Mode{fuzzy: true, threshold: threshold}
}

func (m Mode) String() string {
	if m.fuzzy {
		return fmt.Sprintf("fuzzy(%.2f)", m.threshold)
	}
	return "exact"
}

// Option configures a new Finder.
type Option func(*Finder) error

// CompareHook installs fn to be called with each candidate method just
// before it is compared.  Tests use it to observe how far a search ran.
func CompareHook(fn func(*metadata.MethodDef)) Option {
	return func(f *Finder) error {
		f.compareHook = fn
		return nil
	}
}

// Finder enumerates the methods of a type or module that match a reference
// method.  A Finder holds no per-search state and may be reused across
// searches and goroutines.
type Finder struct {
	mode        Mode
	compareHook func(*metadata.MethodDef)
}

// NewFinder creates a Finder applying the given mode.
func NewFinder(mode Mode, options ...Option) (*Finder, error) {
	f := &Finder{mode: mode}
	for _, option := range options {
		if err := option(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// FindInType yields the direct methods of t matching reference, in
// declaration order.  Nested types are not descended into; use FindInModule
// for a whole-tree search.  The sequence is lazy: each comparison runs only
// when the consumer pulls the next result, and abandoning the loop stops
// the search.  Methods without a body are never yielded.
func (f *Finder) FindInType(t *metadata.TypeDef, reference *metadata.MethodDef) iter.Seq[*metadata.MethodDef] {
	return func(yield func(*metadata.MethodDef) bool) {
		f.findInType(t, reference, yield)
	}
}

func (f *Finder) findInType(t *metadata.TypeDef, reference *metadata.MethodDef, yield func(*metadata.MethodDef) bool) bool {
	for _, m := range t.Methods {
		if !f.matches(reference, m) {
			continue
		}
		glog.V(2).Infof("%s: %s.%s matches reference %s", f.mode, t.Name, m.Name, reference.Name)
		if !yield(m) {
			return false
		}
	}
	return true
}

// FindInModule yields every method in mod matching reference, walking the
// full type tree including nested types, concatenating per-type results in
// traversal order.  Laziness and ordering are as for FindInType.  Each call
// starts a fresh search; the sequence is not restartable.
func (f *Finder) FindInModule(mod *metadata.Module, reference *metadata.MethodDef) iter.Seq[*metadata.MethodDef] {
	return func(yield func(*metadata.MethodDef) bool) {
		for t := range mod.AllTypes() {
			if !f.findInType(t, reference, yield) {
				return
			}
		}
	}
}

func (f *Finder) matches(reference, candidate *metadata.MethodDef) bool {
	if f.compareHook != nil {
		f.compareHook(candidate)
	}
	if f.mode.fuzzy {
		return Fuzzy(reference.Body, candidate.Body, f.mode.threshold)
	}
	return Exact(candidate.Body, reference.Body)
}
