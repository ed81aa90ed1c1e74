package contracts

import (
	"github.com/lumos-labs/chainkit/metrics"
	"github.com/lumos-labs/chainkit/types"
)

// detection is the probe result for one contract instance: the support level
// of every capability applicable to its family, plus any composite
// capabilities that were forced absent. Computed once per façade from an
// immutable descriptor, so rebuilding from the same descriptor always yields
// identical presence.
type detection struct {
	family types.StandardFamily
	order  []types.CapabilityName
	levels map[types.CapabilityName]types.SupportLevel
	forced map[types.CapabilityName]*types.CompositeCapabilityUnsatisfiedError
}

// detectCapabilities probes every registry entry of the family against the
// descriptor. Each capability is probed independently; composite
// dependencies are resolved in a second pass so table order never matters.
// Absence is recorded as data, never raised.
func detectCapabilities(cc *CallContext, d *InterfaceDescriptor, family types.StandardFamily) *detection {
	reqs := RequirementsFor(family)

	det := &detection{
		family: family,
		order:  make([]types.CapabilityName, 0, len(reqs)),
		levels: make(map[types.CapabilityName]types.SupportLevel, len(reqs)),
		forced: make(map[types.CapabilityName]*types.CompositeCapabilityUnsatisfiedError),
	}

	// The family baseline is mandatory; a contract missing part of it is
	// probably bound under the wrong family.
	if missing := missingBaseline(d, family); missing > 0 {
		cc.Log.Warn("contract missing baseline selectors", map[string]any{
			"contract": cc.Address.Hex(),
			"family":   family.String(),
			"missing":  missing,
		})
	}

	for _, req := range reqs {
		level := Supports(d, req)
		det.order = append(det.order, req.Name)
		det.levels[req.Name] = level

		cc.Metrics.IncCounter(metrics.CounterProbe, map[string]string{
			"family":     family.String(),
			"capability": req.Name.String(),
		})
		cc.Log.Debug("capability probed", map[string]any{
			"contract":   cc.Address.Hex(),
			"family":     family.String(),
			"capability": req.Name.String(),
			"level":      level.String(),
		})
	}

	// Composite pass: a capability whose dependency is absent is forced
	// absent even when its own selectors are present, so callers never see
	// a batch-style API without its single-item counterpart.
	for _, req := range reqs {
		if req.DependsOn == "" {
			continue
		}
		if det.levels[req.Name] == types.SupportNone {
			continue
		}
		if det.levels[req.DependsOn] != types.SupportFull {
			det.levels[req.Name] = types.SupportNone
			det.forced[req.Name] = &types.CompositeCapabilityUnsatisfiedError{
				Capability:        req.Name,
				MissingDependency: req.DependsOn,
				Family:            family,
			}
			cc.Log.Warn("composite capability forced absent", map[string]any{
				"contract":   cc.Address.Hex(),
				"capability": req.Name.String(),
				"missing":    req.DependsOn.String(),
			})
		}
	}

	return det
}

// missingBaseline counts the family's mandatory selectors the descriptor
// does not expose.
func missingBaseline(d *InterfaceDescriptor, family types.StandardFamily) int {
	missing := 0
	for _, sel := range BaselineSelectors(family) {
		if !d.Supports(sel) {
			missing++
		}
	}
	return missing
}

// Level reports the detected support level of a capability.
func (det *detection) Level(name types.CapabilityName) types.SupportLevel {
	return det.levels[name]
}

// built records a constructed handle for logging and metrics.
func (det *detection) built(cc *CallContext, name types.CapabilityName, degraded bool) {
	cc.Metrics.IncCounter(metrics.CounterExtension, map[string]string{
		"family":     det.family.String(),
		"capability": name.String(),
	})
	if degraded {
		cc.Log.Warn("extension running in degraded mode", map[string]any{
			"contract":   cc.Address.Hex(),
			"family":     det.family.String(),
			"capability": name.String(),
			"fallback":   "client-side event log scan",
		})
		return
	}
	cc.Log.Debug("extension wired", map[string]any{
		"contract":   cc.Address.Hex(),
		"family":     det.family.String(),
		"capability": name.String(),
	})
}

// CapabilityStatus is one row of a contract's detected capability table.
type CapabilityStatus struct {
	Name      types.CapabilityName
	Level     types.SupportLevel
	Interface string
}

// statuses renders the detection as an ordered table.
func (det *detection) statuses() []CapabilityStatus {
	out := make([]CapabilityStatus, 0, len(det.order))
	for _, name := range det.order {
		out = append(out, CapabilityStatus{
			Name:      name,
			Level:     det.levels[name],
			Interface: interfaceHint(det.family, name),
		})
	}
	return out
}
