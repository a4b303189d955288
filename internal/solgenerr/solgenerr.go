// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package solgenerr defines the error kinds raised across the solution
// generator pipeline (AAG loading, BDD construction, sampling, and emission).
// Every package in this module that can fail wraps the underlying cause in an
// Error so that cmd/solgen can pick the right exit behaviour without string
// matching.
package solgenerr

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed. The six kinds mirror the error
// table in the design document: each one has a distinct recovery policy in
// the driver.
type Kind int

const (
	// IoError signals that the AAG could not be read or the JSON output
	// could not be written.
	IoError Kind = iota
	// BadFormat signals a malformed AAG: wrong magic, wrong section
	// lengths, or an unparsable integer.
	BadFormat
	// Unsupported signals an AAG shape outside the supported core (L != 0,
	// O != 1, or a gate referencing an undefined node).
	Unsupported
	// BddOpFailed signals that the BDD kernel could not allocate a node or
	// grow its tables.
	BddOpFailed
	// SamplerGaveUp signals that the sampler could not reach the requested
	// number of unique solutions within its attempt budget. Unlike the
	// other kinds this is a warning: the run still exits 0.
	SamplerGaveUp
	// Internal signals an invariant violation, such as a DFS landing on
	// the wrong leaf for the current parity target.
	Internal
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "io error"
	case BadFormat:
		return "bad format"
	case Unsupported:
		return "unsupported"
	case BddOpFailed:
		return "bdd operation failed"
	case SamplerGaveUp:
		return "sampler gave up"
	case Internal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error wraps an underlying cause with a Kind and the operation that raised
// it, in the style of os.PathError: Op names the call site ("aag.Load",
// "bddkernel.and", ...), Kind classifies the failure for the driver, and Err
// carries the original cause for Unwrap/Is.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error for op/kind wrapping err. It is a thin constructor, not
// a control-flow helper: callers still decide when a condition is an error.
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Newf is like New but formats the cause from a format string, mirroring the
// teacher's seterror(format, args...) idiom.
func Newf(op string, kind Kind, format string, a ...interface{}) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, a...)}
}

// KindOf extracts the Kind of err if it is (or wraps) an *Error, defaulting
// to Internal for anything else — an un-kinded error reaching the driver is
// itself a bug in the kind-tagging discipline.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
