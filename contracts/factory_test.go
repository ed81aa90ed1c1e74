package contracts

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumos-labs/chainkit/types"
)

func newTestCallContext() *CallContext {
	return NewCallContext(types.NetworkLocalhost, common.HexToAddress("0xabc"), nil, 0, nil)
}

// warnRecorder keeps every warning message logged through it.
type warnRecorder struct {
	warnings []string
}

func (w *warnRecorder) Debug(string, map[string]any) {}
func (w *warnRecorder) Info(string, map[string]any)  {}
func (w *warnRecorder) Error(string, map[string]any) {}
func (w *warnRecorder) Warn(msg string, _ map[string]any) {
	w.warnings = append(w.warnings, msg)
}

func TestDetectCapabilitiesIndependent(t *testing.T) {
	cc := newTestCallContext()
	d := descriptorOf(sigMintTo721, sigBurn721)

	det := detectCapabilities(cc, d, types.FamilyERC721)

	assert.Equal(t, types.SupportFull, det.Level(types.CapabilityMintable))
	assert.Equal(t, types.SupportFull, det.Level(types.CapabilityBurnable))
	assert.Equal(t, types.SupportNone, det.Level(types.CapabilityEnumerable))
	assert.Equal(t, types.SupportNone, det.Level(types.CapabilityLazyMintable))
}

func TestDetectCompositeForcedAbsent(t *testing.T) {
	cc := newTestCallContext()

	// Batch selectors present, single-mint absent: BatchMintable is forced
	// absent even though its own selectors match.
	d := descriptorOf(sigMulticall, sigBurn721)
	det := detectCapabilities(cc, d, types.FamilyERC721)

	assert.Equal(t, types.SupportNone, det.Level(types.CapabilityBatchMintable))

	forced := det.forced[types.CapabilityBatchMintable]
	require.NotNil(t, forced)
	assert.Equal(t, types.CapabilityBatchMintable, forced.Capability)
	assert.Equal(t, types.CapabilityMintable, forced.MissingDependency)
}

func TestDetectCompositeSatisfied(t *testing.T) {
	cc := newTestCallContext()
	d := descriptorOf(sigMulticall, sigMintTo721)
	det := detectCapabilities(cc, d, types.FamilyERC721)

	assert.Equal(t, types.SupportFull, det.Level(types.CapabilityBatchMintable))
	assert.Empty(t, det.forced)
}

func TestDetectIdempotent(t *testing.T) {
	cc := newTestCallContext()
	d := descriptorOf(sigMintTo721, sigMulticall, sigTotalSupply, sigLazyMint)

	first := detectCapabilities(cc, d, types.FamilyERC721)
	second := detectCapabilities(cc, d, types.FamilyERC721)

	require.Equal(t, first.order, second.order)
	for _, name := range first.order {
		assert.Equal(t, first.Level(name), second.Level(name), "capability %s", name)
	}
}

func TestDetectWarnsOnMissingBaseline(t *testing.T) {
	rec := &warnRecorder{}
	cc := newTestCallContext()
	cc.Log = rec

	// Extension selectors only, none of the ERC-721 baseline.
	detectCapabilities(cc, descriptorOf(sigMintTo721), types.FamilyERC721)
	require.Contains(t, rec.warnings, "contract missing baseline selectors")

	// A descriptor covering the full baseline stays quiet.
	rec.warnings = nil
	full := NewInterfaceDescriptor(common.HexToAddress("0x1"), BaselineSelectors(types.FamilyERC721), 0)
	detectCapabilities(cc, full, types.FamilyERC721)
	assert.Empty(t, rec.warnings)
}

func TestDetectionStatusesOrdered(t *testing.T) {
	cc := newTestCallContext()
	det := detectCapabilities(cc, descriptorOf(sigMintTo721), types.FamilyERC721)

	statuses := det.statuses()
	reqs := RequirementsFor(types.FamilyERC721)
	require.Len(t, statuses, len(reqs))
	for i, st := range statuses {
		assert.Equal(t, reqs[i].Name, st.Name)
		assert.Equal(t, reqs[i].Interface, st.Interface)
	}
}
