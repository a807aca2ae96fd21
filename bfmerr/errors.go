// Package bfmerr defines the typed error surface for the pscbfm engine.
//
// Every error the engine returns carries a Kind (Configuration, StateOrder,
// InvariantViolation, or Device) so callers can branch on errors.Is against
// the sentinels below rather than matching strings. Sentinels are never
// wrapped with formatted text at definition site; constructors attach
// context by returning an *Error that carries the Kind, a context string,
// and the sentinel as its wrapped cause.
package bfmerr

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed, per the engine's error-handling
// design: Configuration and StateOrder errors are recoverable by the caller
// (state is left unchanged); InvariantViolation and Device errors are fatal
// to the current run.
type Kind int

const (
	// KindConfiguration marks a synchronous validation failure from a staging
	// call: non-power-of-two box, wrong allowed-bond count, neighbor overflow,
	// periodicity mismatch, out-of-range coordinate.
	KindConfiguration Kind = iota
	// KindStateOrder marks a lifecycle ordering violation: Initialize called
	// twice without Cleanup, or staging after Initialize.
	KindStateOrder
	// KindInvariantViolation marks a verifier-detected bug: broken bond,
	// overlap, host/device adjacency mismatch.
	KindInvariantViolation
	// KindDevice marks an underlying compute failure surfaced verbatim.
	KindDevice
)

// String renders the Kind for log lines and error messages.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindStateOrder:
		return "state-order"
	case KindInvariantViolation:
		return "invariant-violation"
	case KindDevice:
		return "device"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every exported engine call
// that can fail. It wraps a sentinel (see the var block below) with a Kind
// and optional free-form context.
type Error struct {
	Kind    Kind
	Context string
	Err     error
}

// Error implements the error interface, formatting as "<kind>: <context>: <cause>".
func (e *Error) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.Err)
}

// Unwrap exposes the wrapped sentinel so errors.Is/errors.As work transparently.
func (e *Error) Unwrap() error { return e.Err }

// Sentinel causes. Callers branch with errors.Is(err, bfmerr.ErrX); they
// never match on Error.Error()'s formatted string.
var (
	// ErrNotPowerOfTwo indicates a box edge was not a power of two.
	ErrNotPowerOfTwo = errors.New("box edge must be a power of two")
	// ErrBadAllowedBondCount indicates the allowed-bond table did not finalize
	// with exactly 108 allowed entries.
	ErrBadAllowedBondCount = errors.New("allowed-bond table must contain exactly 108 entries")
	// ErrNeighborOverflow indicates a monomer was given more than MAX_CONNECTIVITY neighbors.
	ErrNeighborOverflow = errors.New("monomer exceeds maximum connectivity")
	// ErrPeriodicityMismatch indicates SetPeriodicity was called with a
	// configuration inconsistent with the engine's compiled/selected mode.
	ErrPeriodicityMismatch = errors.New("periodicity configuration mismatch")
	// ErrCoordOutOfRange indicates a staged bond delta component fell
	// outside [-4,3] (SetAllowedBond).
	ErrCoordOutOfRange = errors.New("coordinate out of representable range")
	// ErrBadMonomerIndex indicates a staging call referenced an out-of-range monomer index.
	ErrBadMonomerIndex = errors.New("monomer index out of range")
	// ErrMonomerCountNotSet indicates a staging call was made before SetNumMonomers.
	ErrMonomerCountNotSet = errors.New("monomer count not set; call SetNumMonomers first")
	// ErrBoxNotSet indicates Initialize was called before SetBoxSize.
	ErrBoxNotSet = errors.New("box size not set; call SetBoxSize first")
	// ErrPeriodicityNotSet indicates Initialize was called before SetPeriodicity.
	ErrPeriodicityNotSet = errors.New("periodicity not set; call SetPeriodicity first")
	// ErrMonomerCountAlreadySet indicates SetNumMonomers was called more than once in a lifecycle.
	ErrMonomerCountAlreadySet = errors.New("setNumMonomers already called this lifecycle")

	// ErrAlreadyInitialized indicates Initialize was called twice without an intervening Cleanup.
	ErrAlreadyInitialized = errors.New("engine already initialized; call Cleanup first")
	// ErrNotInitialized indicates RunSweeps/GetPosition was called before Initialize.
	ErrNotInitialized = errors.New("engine not initialized")
	// ErrStagingAfterInit indicates a staging call (SetPosition, AddBond, ...) was made after Initialize.
	ErrStagingAfterInit = errors.New("staging call after initialize")

	// ErrOverlap indicates the verifier found two monomers occupying the same cube corner.
	ErrOverlap = errors.New("excluded-volume violation: overlapping monomer corners")
	// ErrBrokenBond indicates the verifier found an edge whose bond vector is not allowed.
	ErrBrokenBond = errors.New("bond validity violation: forbidden or over-length bond")
	// ErrAdjacencyMismatch indicates host and device (sorted) adjacency disagree.
	ErrAdjacencyMismatch = errors.New("adjacency mismatch between original and sorted layout")
	// ErrScratchNotClean indicates the scratch lattice was non-zero at a point it must be zero.
	ErrScratchNotClean = errors.New("scratch lattice is not all-zero")
	// ErrColoringViolation indicates two adjacent monomers share a color.
	ErrColoringViolation = errors.New("coloring violation: adjacent monomers share a species")
)

// Configuration wraps cause with KindConfiguration and the given context.
func Configuration(context string, cause error) error {
	return &Error{Kind: KindConfiguration, Context: context, Err: cause}
}

// StateOrder wraps cause with KindStateOrder and the given context.
func StateOrder(context string, cause error) error {
	return &Error{Kind: KindStateOrder, Context: context, Err: cause}
}

// InvariantViolation wraps cause with KindInvariantViolation and the given context.
func InvariantViolation(context string, cause error) error {
	return &Error{Kind: KindInvariantViolation, Context: context, Err: cause}
}

// Device wraps cause with KindDevice and the given context.
func Device(context string, cause error) error {
	return &Error{Kind: KindDevice, Context: context, Err: cause}
}

// Is reports whether target is an *Error with the same Kind whose cause
// matches this error's cause under errors.Is; a target with a nil cause
// never matches. Most callers should prefer errors.Is against the sentinel
// vars above, which Unwrap already supports.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind && errors.Is(e.Err, other.Err)
	}
	return false
}
