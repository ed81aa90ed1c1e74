package contracts

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumos-labs/chainkit/storage"
	"github.com/lumos-labs/chainkit/types"
)

func TestERC1155BurnableOnlyContract(t *testing.T) {
	cc := newTestCallContext()
	cc.Backend = &fakeBackend{}
	sender := &fakeSender{}
	cc.Sender = sender

	c, err := NewERC1155(context.Background(), cc, erc1155BurnableABI)
	require.NoError(t, err)

	// Burnable is wired and usable.
	burner, err := c.Burnable()
	require.NoError(t, err)

	tx, err := burner.Burn(context.Background(), common.HexToAddress("0x2"), big.NewInt(1), big.NewInt(5))
	require.NoError(t, err)
	assert.NotEqual(t, common.Hash{}, tx)
	selBurn := SelectorOf(sigBurn1155)
	assert.True(t, bytes.HasPrefix(sender.calldata, selBurn[:]))

	// Mintable is absent: the accessor fails with a structured error naming
	// the exact capability and family.
	_, err = c.Mintable()
	require.Error(t, err)

	var notImpl *types.ExtensionNotImplementedError
	require.ErrorAs(t, err, &notImpl)
	assert.Equal(t, types.CapabilityMintable, notImpl.Capability)
	assert.Equal(t, types.FamilyERC1155, notImpl.Family)
	assert.Contains(t, err.Error(), "IMintableERC1155")
}

func TestERC1155AllAbsentAccessorsRaise(t *testing.T) {
	cc := newTestCallContext()
	cc.Backend = &fakeBackend{}

	c, err := NewERC1155(context.Background(), cc, erc1155BurnableABI)
	require.NoError(t, err)

	for name, accessor := range map[types.CapabilityName]func() error{
		types.CapabilityEnumerable:              func() error { _, err := c.Enumerable(); return err },
		types.CapabilityMintable:                func() error { _, err := c.Mintable(); return err },
		types.CapabilityLazyMintable:            func() error { _, err := c.LazyMintable(); return err },
		types.CapabilityClaimableWithConditions: func() error { _, err := c.Claimable(); return err },
		types.CapabilitySignatureMintable:       func() error { _, err := c.SignatureMintable(); return err },
		types.CapabilityRevealable:              func() error { _, err := c.Revealable(); return err },
	} {
		err := accessor()
		var notImpl *types.ExtensionNotImplementedError
		require.ErrorAs(t, err, &notImpl, "capability %s", name)
		assert.Equal(t, name, notImpl.Capability)
	}
}

func TestERC1155DescriptorFetchFailure(t *testing.T) {
	cc := newTestCallContext()
	cc.Backend = &fakeBackend{callFn: func(ethereum.CallMsg) ([]byte, error) {
		return nil, errors.New("connection refused")
	}}

	// No explicit ABI forces auto-detection, which hits the failing RPC.
	c, err := NewERC1155(context.Background(), cc, "")
	require.Error(t, err)
	assert.Nil(t, c, "no partial façade may be observable")

	var fetchErr *types.DescriptorFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Cause.Error(), "connection refused")
}

func TestERC1155RebuildSamePresence(t *testing.T) {
	cc := newTestCallContext()
	cc.Backend = &fakeBackend{}

	first, err := NewERC1155(context.Background(), cc, erc1155BurnableABI)
	require.NoError(t, err)
	second, err := NewERC1155(context.Background(), cc, erc1155BurnableABI)
	require.NoError(t, err)

	a, b := first.Capabilities(), second.Capabilities()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestERC1155AutoDetectFromPublishedMetadata(t *testing.T) {
	store := storage.NewMemoryStore()
	uri, err := store.Upload(context.Background(), map[string]any{
		"name": "Edition Drop",
		"abi":  mustJSONABI(t, erc1155BurnableABI),
	})
	require.NoError(t, err)

	packedURI, err := stringABIArgs.Pack(uri)
	require.NoError(t, err)

	cc := newTestCallContext()
	cc.Storage = store
	cc.Backend = &fakeBackend{callFn: func(call ethereum.CallMsg) ([]byte, error) {
		if bytes.Equal(call.Data, contractURISelector[:]) {
			return packedURI, nil
		}
		return nil, errors.New("unexpected call")
	}}

	c, err := NewERC1155(context.Background(), cc, "")
	require.NoError(t, err)
	assert.Equal(t, types.SupportFull, c.SupportLevel(types.CapabilityBurnable))
	assert.Equal(t, types.SupportNone, c.SupportLevel(types.CapabilityMintable))
}

func TestERC1155GetPopulatesSupply(t *testing.T) {
	// Baseline plus the per-token supply accessor: Enumerable lands at
	// PARTIAL, which is enough for Get to report circulating supply.
	const supplyABI = `[
		{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"},{"name":"id","type":"uint256"}],"outputs":[{"type":"uint256"}]},
		{"type":"function","name":"balanceOfBatch","stateMutability":"view","inputs":[{"name":"accounts","type":"address[]"},{"name":"ids","type":"uint256[]"}],"outputs":[{"type":"uint256[]"}]},
		{"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"id","type":"uint256"},{"name":"amount","type":"uint256"},{"name":"data","type":"bytes"}],"outputs":[]},
		{"type":"function","name":"safeBatchTransferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"ids","type":"uint256[]"},{"name":"amounts","type":"uint256[]"},{"name":"data","type":"bytes"}],"outputs":[]},
		{"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],"outputs":[]},
		{"type":"function","name":"isApprovedForAll","stateMutability":"view","inputs":[{"name":"account","type":"address"},{"name":"operator","type":"address"}],"outputs":[{"type":"bool"}]},
		{"type":"function","name":"uri","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],"outputs":[{"type":"string"}]},
		{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],"outputs":[{"type":"uint256"}]}
	]`

	packedURI, err := stringABIArgs.Pack("ipfs://QmEdition")
	require.NoError(t, err)
	packedSupply, err := abi.Arguments{{Type: mustABIType("uint256")}}.Pack(big.NewInt(42))
	require.NoError(t, err)

	cc := newTestCallContext()
	selURI := SelectorOf(sigURI)
	selTotalSupplyOf := SelectorOf(sigTotalSupplyOf)
	cc.Backend = &fakeBackend{callFn: func(call ethereum.CallMsg) ([]byte, error) {
		switch {
		case bytes.HasPrefix(call.Data, selURI[:]):
			return packedURI, nil
		case bytes.HasPrefix(call.Data, selTotalSupplyOf[:]):
			return packedSupply, nil
		}
		return nil, errors.New("unexpected call")
	}}

	c, err := NewERC1155(context.Background(), cc, supplyABI)
	require.NoError(t, err)
	require.Equal(t, types.SupportPartial, c.SupportLevel(types.CapabilityEnumerable))

	nft, err := c.Get(context.Background(), big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmEdition", nft.URI)
	assert.Equal(t, "42", nft.Supply)
}

func TestERC1155StaleContext(t *testing.T) {
	gen := uint64(3)
	cc := NewCallContext(types.NetworkLocalhost, common.HexToAddress("0xabc"), &fakeBackend{}, 3, func() uint64 { return gen })

	c, err := NewERC1155(context.Background(), cc, erc1155BurnableABI)
	require.NoError(t, err)

	_, err = c.Burnable()
	require.NoError(t, err)

	// Signer swap: the active generation moves on, the façade goes stale.
	gen = 4
	_, err = c.Burnable()
	var stale *types.StaleContextError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, uint64(3), stale.BuiltAt)
	assert.Equal(t, uint64(4), stale.Current)
}
