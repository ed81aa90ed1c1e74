package types

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the SDK.
const (
	// -----------------------------
	// CAPABILITY DISPATCH
	// -----------------------------
	ErrExtensionNotImplemented        = "extension_not_implemented"
	ErrCompositeCapabilityUnsatisfied = "composite_capability_unsatisfied"
	ErrStaleContext                   = "stale_context"

	// -----------------------------
	// RESOLUTION
	// -----------------------------
	ErrDescriptorFetchFailed = "descriptor_fetch_failed"
	ErrInvalidABI            = "invalid_abi"

	// -----------------------------
	// GENERIC
	// -----------------------------
	ErrOperationAborted   = "operation_aborted"
	ErrInvalidArgument    = "invalid_argument"
	ErrUnsupportedNetwork = "unsupported_network"
)

// SDKError is the uniform error envelope for recoverable SDK failures.
type SDKError struct {
	Code    string
	Message string
}

func (e *SDKError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ExtensionNotImplementedError is raised at the point of use when a caller
// invokes an optional capability the contract does not implement. It carries
// everything needed to diagnose the failure without consulting source:
// the capability, its standard family, and the on-chain interface the
// contract must implement to unlock it.
type ExtensionNotImplementedError struct {
	Capability CapabilityName
	Family     StandardFamily
	Hint       string
}

func (e *ExtensionNotImplementedError) Error() string {
	msg := fmt.Sprintf("contract does not implement the %s extension of %s", e.Capability, e.Family)
	if e.Hint != "" {
		msg += fmt.Sprintf(" (implement %s to unlock it)", e.Hint)
	}
	return fmt.Sprintf("%s: %s", ErrExtensionNotImplemented, msg)
}

// CompositeCapabilityUnsatisfiedError reports a composite capability that was
// forced absent because one of its dependencies is missing, even though the
// capability's own selectors are present.
type CompositeCapabilityUnsatisfiedError struct {
	Capability        CapabilityName
	MissingDependency CapabilityName
	Family            StandardFamily
}

func (e *CompositeCapabilityUnsatisfiedError) Error() string {
	return fmt.Sprintf("%s: %s on %s requires %s, which the contract does not implement",
		ErrCompositeCapabilityUnsatisfied, e.Capability, e.Family, e.MissingDependency)
}

// DescriptorFetchError wraps a failure to materialize a contract's interface
// descriptor. The underlying network/RPC cause is preserved; retry policy
// belongs to the caller.
type DescriptorFetchError struct {
	Address string
	Cause   error
}

func (e *DescriptorFetchError) Error() string {
	return fmt.Sprintf("%s: could not resolve interface of %s: %v", ErrDescriptorFetchFailed, e.Address, e.Cause)
}

func (e *DescriptorFetchError) Unwrap() error {
	return e.Cause
}

// AbortedError reports a long-running client-side operation cancelled via
// its context, distinguishable from a generic failure.
type AbortedError struct {
	Op    string
	Cause error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("%s: %s aborted: %v", ErrOperationAborted, e.Op, e.Cause)
}

func (e *AbortedError) Unwrap() error {
	return e.Cause
}

// StaleContextError reports use of a capability handle built against a
// provider/signer context that has since been replaced. The façade must be
// re-fetched; handles are never patched in place.
type StaleContextError struct {
	BuiltAt uint64
	Current uint64
}

func (e *StaleContextError) Error() string {
	return fmt.Sprintf("%s: handle was built against context generation %d but the active generation is %d; re-fetch the contract",
		ErrStaleContext, e.BuiltAt, e.Current)
}

// IsExtensionNotImplemented reports whether err is an
// ExtensionNotImplementedError, optionally inspecting wrapped errors.
func IsExtensionNotImplemented(err error) bool {
	var target *ExtensionNotImplementedError
	return errors.As(err, &target)
}

// IsAborted reports whether err is an AbortedError.
func IsAborted(err error) bool {
	var target *AbortedError
	return errors.As(err, &target)
}
