// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"fmt"
	"runtime"

	"github.com/dsnet/golib/errs"
)

// Kind discriminates the error categories a caller can recover on (§7).
// Every error this package returns through a public API, other than plain
// I/O errors passed through verbatim, is a *Error with one of these kinds.
type Kind int

const (
	// IO wraps an underlying file or mmap error.
	IO Kind = iota
	// ConfigParse covers a .properties file that cannot be used: a text
	// the properties parser rejects, an unsupported zeta parameter, an
	// unrecognized compression flag or endianness, or an endianness/version
	// mismatch. A missing key, or an integer value that does not parse, is
	// not reported: internal/properties substitutes its default for it.
	ConfigParse
	// Corruption covers a decoded value inconsistent with the format's
	// invariants, e.g. a negative residual count or a successor stream that
	// ends before the declared outdegree.
	Corruption
	// Argument covers a caller-supplied value that violates a documented
	// precondition, e.g. a negative compression window, or a positive
	// window with a max-ref-count of zero.
	Argument
	// State covers an operation invalid in the object's current state, e.g.
	// calling Next on an exhausted iterator or asking for random access on
	// a graph loaded without offsets.
	State
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "I/O"
	case ConfigParse:
		return "config-parse"
	case Corruption:
		return "corruption"
	case Argument:
		return "argument"
	case State:
		return "state"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type every named-kind failure in this package uses.
// Op names the operation that failed (e.g. "bvgraph: load", "bvgraph:
// decode"); Node, when >= 0, names the node being processed.
type Error struct {
	Kind Kind
	Op   string
	Node int64
	Err  error
}

func (e *Error) Error() string {
	if e.Node >= 0 {
		return fmt.Sprintf("%s: node %d: %s: %v", e.Op, e.Node, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func errorf(kind Kind, op string, node int64, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Node: node, Err: fmt.Errorf(format, args...)}
}

func errWrap(kind Kind, op string, node int64, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: kind, Op: op, Node: node, Err: err}
}

// panicf panics with a *Error of the given kind, to be caught by
// errRecover at the top of an exported method. This mirrors the teacher's
// flate/common.go errRecover idiom: internal helpers panic on the first bad
// input they see rather than threading an error return through a deep call
// chain, and the exported entry point recovers it back into a normal
// error return.
func panicf(kind Kind, op string, node int64, format string, args ...interface{}) {
	panic(errorf(kind, op, node, format, args...))
}

// assertf checks an internal invariant, one the package's own logic must
// uphold regardless of input (not a user-data validation, which gets its
// own named-kind error return instead). It uses the same
// github.com/dsnet/golib/errs helper the teacher's xflate/meta package
// builds its invariant checks on.
func assertf(cond bool, kind Kind, op string, node int64, format string, args ...interface{}) {
	errs.Assert(cond, errorf(kind, op, node, format, args...))
}

// errRecover turns a panic raised by panicf (or by a *Error propagated from
// a called helper) into a normal error return in *err. Any other panic,
// including a runtime.Error from an out-of-bounds slice access or similar
// programmer mistake, is re-raised: those indicate a bug in this package,
// not a malformed input, and must not be silently swallowed.
func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case *Error:
		*err = ex
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
