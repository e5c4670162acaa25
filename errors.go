package routingtable

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which validation rule a RoutingTableValidationError
// violates.
type Kind int

const (
	// KindInvalidAddress means the address library rejected an input
	// prefix, address, or wildcard mask.
	KindInvalidAddress Kind = iota
	// KindNoExactMatch means an operation that requires an existing bucket
	// at the exact prefix (Parent, Children, Delete) found none.
	KindNoExactMatch
	// KindNoAttrMatch means a Delete/Flush with a non-empty attribute
	// filter matched nothing at the targeted bucket.
	KindNoAttrMatch
	// KindUsageError means an operation was called with an invalid
	// combination of arguments (Show with as_root set but no prefix).
	KindUsageError
)

func (k Kind) String() string {
	switch k {
	case KindInvalidAddress:
		return "invalid address"
	case KindNoExactMatch:
		return "no exact match"
	case KindNoAttrMatch:
		return "no attribute match"
	case KindUsageError:
		return "usage error"
	default:
		return "unknown"
	}
}

// RoutingTableValidationError is the single error type raised by
// RoutingTable operations. Absence of coverage (no route matches an
// address or wildcard range) is reported as an empty result, never as an
// error; this type is reserved for the cases in §7 of the spec where the
// operation conceptually requires something that is not there.
type RoutingTableValidationError struct {
	Kind   Kind
	Prefix fmt.Stringer
	cause  error
}

func (e *RoutingTableValidationError) Error() string {
	if e.Prefix != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Prefix)
	}
	return e.Kind.String()
}

// Unwrap exposes the underlying parse error for KindInvalidAddress, so
// callers can errors.As into *net.AddrError-style causes.
func (e *RoutingTableValidationError) Unwrap() error {
	return e.cause
}

func newNoExactMatchError(p fmt.Stringer) error {
	return &RoutingTableValidationError{Kind: KindNoExactMatch, Prefix: p}
}

func newNoAttrMatchError(p fmt.Stringer) error {
	return &RoutingTableValidationError{Kind: KindNoAttrMatch, Prefix: p}
}

func newUsageError(msg string) error {
	return &RoutingTableValidationError{Kind: KindUsageError, Prefix: stringerString(msg)}
}

func newInvalidAddressError(raw string, cause error) error {
	wrapped := errors.Wrapf(cause, "parse address %q", raw)
	return &RoutingTableValidationError{Kind: KindInvalidAddress, Prefix: stringerString(raw), cause: wrapped}
}

type stringerString string

func (s stringerString) String() string { return string(s) }
