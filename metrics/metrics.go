package metrics

import "time"

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// Counter and operation names recorded by the SDK.
const (
	CounterProbe        = "capability_probe"
	CounterExtension    = "extension_built"
	CounterGuardFailure = "guard_failure"

	OpResolveDescriptor = "resolve_descriptor"
	OpLogScan           = "log_scan"
	OpContractCall      = "contract_call"
)
