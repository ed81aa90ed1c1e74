package contracts

import (
	"github.com/lumos-labs/chainkit/types"
)

// CapabilityRequirement declares what a contract must expose for one optional
// extension: the full selector set, an optional minimal subset sufficient for
// degraded read-path operation, and an optional composite dependency.
type CapabilityRequirement struct {
	Name types.CapabilityName

	// Interface is the on-chain interface that satisfies the requirement,
	// surfaced in remediation hints (e.g. "IMintableERC721").
	Interface string

	Required []Selector

	// Minimal is the subset sufficient for a degraded fallback handle.
	// Empty means the capability has no PARTIAL tier.
	Minimal []Selector

	// DependsOn marks a composite capability that is forced absent unless
	// the named capability is also present. Empty for standalone extensions.
	DependsOn types.CapabilityName
}

// Supports computes set-intersection coverage between a descriptor's
// selectors and a requirement. FULL if every required selector is present,
// PARTIAL if the designated minimal subset is covered, NONE otherwise.
//
// Pure function over an already-materialized descriptor: no side effects,
// no network access, deterministic for identical inputs.
func Supports(d *InterfaceDescriptor, req CapabilityRequirement) types.SupportLevel {
	if d == nil || len(req.Required) == 0 {
		return types.SupportNone
	}
	if d.SupportsAll(req.Required) {
		return types.SupportFull
	}
	if len(req.Minimal) > 0 && d.SupportsAll(req.Minimal) {
		return types.SupportPartial
	}
	return types.SupportNone
}
