package contracts

import (
	"github.com/lumos-labs/chainkit/metrics"
	"github.com/lumos-labs/chainkit/types"
)

// requireExtension is the guarded accessor behind every optional-capability
// getter. A present handle is returned unchanged, same ownership. An absent
// handle fails synchronously at the point of use with a structured error
// naming the capability, its family, and the on-chain interface that would
// unlock it; a handle built against a replaced provider/signer context fails
// as stale instead of operating on mixed generations.
func requireExtension[H any](h *H, cc *CallContext, det *detection, name types.CapabilityName) (*H, error) {
	if h == nil {
		cc.Metrics.IncCounter(metrics.CounterGuardFailure, map[string]string{
			"family":     det.family.String(),
			"capability": name.String(),
		})
		if forced := det.forced[name]; forced != nil {
			return nil, forced
		}
		return nil, &types.ExtensionNotImplementedError{
			Capability: name,
			Family:     det.family,
			Hint:       interfaceHint(det.family, name),
		}
	}
	if cc.Stale() {
		return nil, &types.StaleContextError{BuiltAt: cc.Generation(), Current: cc.currentGeneration()}
	}
	return h, nil
}
