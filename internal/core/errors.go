package core

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation reports grid dimensions the backend cannot hold.
	ErrAllocation = errors.New("grid allocation failed")
	// ErrCompile reports a generator expression that cannot be compiled.
	ErrCompile = errors.New("kernel compilation failed")
)

// AllocationError describes rejected grid dimensions.
type AllocationError struct {
	W, H   int
	Limit  int
	Reason string
}

func (e *AllocationError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("%v: %dx%d (limit %d): %s", ErrAllocation, e.W, e.H, e.Limit, e.Reason)
	}
	return fmt.Sprintf("%v: %dx%d: %s", ErrAllocation, e.W, e.H, e.Reason)
}

func (e *AllocationError) Unwrap() error { return ErrAllocation }

// CompileError describes a malformed per-channel generator expression.
type CompileError struct {
	Channel int
	Source  string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%v: channel %d %q: %v", ErrCompile, e.Channel, e.Source, e.Err)
}

// Unwrap exposes both the sentinel and the underlying parser error.
func (e *CompileError) Unwrap() []error { return []error{ErrCompile, e.Err} }
