package contracts

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumos-labs/chainkit/storage"
	"github.com/lumos-labs/chainkit/types"
)

func TestERC721MintToUploadsMetadata(t *testing.T) {
	store := storage.NewMemoryStore()
	cc := newTestCallContext()
	cc.Backend = &fakeBackend{}
	cc.Storage = store
	sender := &fakeSender{}
	cc.Sender = sender

	c, err := NewERC721(context.Background(), cc, erc721MintableABI)
	require.NoError(t, err)

	minter, err := c.Mintable()
	require.NoError(t, err)

	tx, err := minter.MintTo(context.Background(), common.HexToAddress("0x2"), types.NFTMetadata{Name: "One"})
	require.NoError(t, err)
	assert.NotEqual(t, common.Hash{}, tx)
	selMintTo := SelectorOf(sigMintTo721)
	assert.True(t, bytes.HasPrefix(sender.calldata, selMintTo[:]))

	// The minted URI must resolve back to the uploaded metadata.
	uri, err := store.Upload(context.Background(), types.NFTMetadata{Name: "One"})
	require.NoError(t, err)
	var md types.NFTMetadata
	require.NoError(t, store.Fetch(context.Background(), uri, &md))
	assert.Equal(t, "One", md.Name)
}

func TestERC721MintWithoutSenderFails(t *testing.T) {
	cc := newTestCallContext()
	cc.Backend = &fakeBackend{}
	cc.Storage = storage.NewMemoryStore()

	c, err := NewERC721(context.Background(), cc, erc721MintableABI)
	require.NoError(t, err)

	minter, err := c.Mintable()
	require.NoError(t, err)

	_, err = minter.MintTo(context.Background(), common.HexToAddress("0x2"), types.NFTMetadata{Name: "One"})
	require.Error(t, err)

	var sdkErr *types.SDKError
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, types.ErrInvalidArgument, sdkErr.Code)
}

func TestERC721BatchMintPresentWithMintable(t *testing.T) {
	cc := newTestCallContext()
	cc.Backend = &fakeBackend{}
	cc.Storage = storage.NewMemoryStore()
	sender := &fakeSender{}
	cc.Sender = sender

	c, err := NewERC721(context.Background(), cc, erc721MintableABI)
	require.NoError(t, err)

	batch, err := c.BatchMintable()
	require.NoError(t, err)

	tx, err := batch.MintBatchTo(context.Background(), common.HexToAddress("0x2"), []types.NFTMetadata{
		{Name: "One"}, {Name: "Two"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, common.Hash{}, tx)
	selMulticall := SelectorOf(sigMulticall)
	assert.True(t, bytes.HasPrefix(sender.calldata, selMulticall[:]))
}

func TestERC721BatchForcedAbsentWithoutMintable(t *testing.T) {
	// Synthetic contract exposing only the batch entry point.
	const batchOnlyABI = `[
		{"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"type":"address"}]},
		{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"type":"uint256"}]},
		{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]},
		{"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"type":"string"}]},
		{"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],"outputs":[]},
		{"type":"function","name":"isApprovedForAll","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],"outputs":[{"type":"bool"}]},
		{"type":"function","name":"multicall","stateMutability":"nonpayable","inputs":[{"name":"data","type":"bytes[]"}],"outputs":[{"type":"bytes[]"}]}
	]`

	cc := newTestCallContext()
	cc.Backend = &fakeBackend{}

	c, err := NewERC721(context.Background(), cc, batchOnlyABI)
	require.NoError(t, err)
	assert.Equal(t, types.SupportNone, c.SupportLevel(types.CapabilityBatchMintable))

	_, err = c.BatchMintable()
	var composite *types.CompositeCapabilityUnsatisfiedError
	require.ErrorAs(t, err, &composite)
	assert.Equal(t, types.CapabilityBatchMintable, composite.Capability)
	assert.Equal(t, types.CapabilityMintable, composite.MissingDependency)
}

func TestERC721TransferPacksBaselineCall(t *testing.T) {
	cc := newTestCallContext()
	cc.Backend = &fakeBackend{}
	sender := &fakeSender{}
	cc.Sender = sender

	c, err := NewERC721(context.Background(), cc, erc721MintableABI)
	require.NoError(t, err)

	_, err = c.Transfer(context.Background(), common.HexToAddress("0x2"), common.HexToAddress("0x3"), big.NewInt(7))
	require.NoError(t, err)
	selTransferFrom := SelectorOf(sigTransferFrom)
	assert.True(t, bytes.HasPrefix(sender.calldata, selTransferFrom[:]))
	assert.Equal(t, cc.Address, sender.to)
}
