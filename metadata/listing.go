// Copyright 2024 The ClarifierEx Authors. All Rights Reserved.
// This file is available under the Apache license.

package metadata

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ParseListing reads the textual form of a decoded module and builds the
// in-memory model.  Listings exist for test fixtures and golden corpora;
// decoding an actual binary container is the host's job.
//
// The format is line oriented and indentation structured, two spaces per
// level:
//
//	module Sample
//	  type Renderer
//	    method Paint
//	      ldarg 0
//	      call Flush
//	      ret
//	    extern method Native
//	    type Inner
//	      method Helper
//	        ret
//
// Blank lines and lines starting with '#' are ignored.  "extern method" and
// "abstract method" declare a method without a body.  An instruction line is
// a mnemonic from the opcode table, or a bare integer for opcodes outside
// it, followed by an optional operand kept verbatim.
//
// name labels the listing in error messages, usually its filename.
func ParseListing(name string, r io.Reader) (*Module, error) {
	var (
		module      *Module
		typeStack   []*TypeDef // typeStack[k] is the open type at depth k+1.
		method      *MethodDef
		methodDepth int
	)

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), " \t")
		text := strings.TrimLeft(line, " \t")
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			glog.V(2).Infof("%s:%d: skipping comment", name, lineno)
			continue
		}
		indent := line[:len(line)-len(text)]
		if strings.Contains(indent, "\t") {
			return nil, errors.Errorf("%s:%d: indentation must use spaces", name, lineno)
		}
		if len(indent)%2 != 0 {
			return nil, errors.Errorf("%s:%d: odd indentation %d", name, lineno, len(indent))
		}
		depth := len(indent) / 2

		fields := strings.Fields(text)
		keyword := fields[0]
		if keyword == "extern" || keyword == "abstract" {
			if len(fields) < 2 || fields[1] != "method" {
				return nil, errors.Errorf("%s:%d: %q must be followed by \"method\"", name, lineno, keyword)
			}
			fields = fields[1:]
		}

		switch fields[0] {
		case "module":
			if module != nil {
				return nil, errors.Errorf("%s:%d: duplicate module directive", name, lineno)
			}
			if depth != 0 || len(fields) != 2 {
				return nil, errors.Errorf("%s:%d: malformed module directive", name, lineno)
			}
			module = &Module{Name: fields[1]}

		case "type":
			if module == nil {
				return nil, errors.Errorf("%s:%d: type before module directive", name, lineno)
			}
			if depth < 1 || depth > len(typeStack)+1 || len(fields) != 2 {
				return nil, errors.Errorf("%s:%d: misplaced type %q", name, lineno, fields[1])
			}
			t := &TypeDef{Name: fields[1]}
			typeStack = typeStack[:depth-1]
			method = nil
			if depth == 1 {
				module.Types = append(module.Types, t)
			} else {
				parent := typeStack[depth-2]
				parent.NestedTypes = append(parent.NestedTypes, t)
			}
			typeStack = append(typeStack, t)

		case "method":
			if depth < 2 || depth-1 > len(typeStack) || len(fields) != 2 {
				return nil, errors.Errorf("%s:%d: method outside a type", name, lineno)
			}
			typeStack = typeStack[:depth-1]
			method = &MethodDef{Name: fields[1]}
			if keyword == "method" {
				method.Body = &MethodBody{}
			}
			methodDepth = depth
			parent := typeStack[depth-2]
			parent.Methods = append(parent.Methods, method)

		default:
			if method == nil || depth != methodDepth+1 {
				return nil, errors.Errorf("%s:%d: instruction %q outside a method body", name, lineno, fields[0])
			}
			if method.Body == nil {
				return nil, errors.Errorf("%s:%d: instruction in bodiless method %s", name, lineno, method.Name)
			}
			op, ok := opcodesByName[fields[0]]
			if !ok {
				n, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, errors.Errorf("%s:%d: unknown opcode %q", name, lineno, fields[0])
				}
				op = Opcode(n)
			}
			instr := Instr{Opcode: op}
			if len(fields) > 1 {
				instr.Operand = strings.Join(fields[1:], " ")
			}
			method.Body.Instrs = append(method.Body.Instrs, instr)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read listing %q", name)
	}
	if module == nil {
		return nil, errors.Errorf("%s: no module directive found", name)
	}
	glog.V(2).Infof("parsed listing %q: module %s with %d top-level types", name, module.Name, len(module.Types))
	return module, nil
}
