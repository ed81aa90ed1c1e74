package chainkit

import (
	"context"
	"errors"
	"math/big"
	"testing"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumos-labs/chainkit/types"
)

const mintableERC721ABI = `[
	{"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"mintTo","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"uri","type":"string"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const testContractAddr = "0x1111111111111111111111111111111111111111"

type stubBackend struct{}

func (stubBackend) CallContract(_ context.Context, _ ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	return nil, errors.New("no call expected")
}

func (stubBackend) FilterLogs(_ context.Context, _ ethereum.FilterQuery) ([]ethtypes.Log, error) {
	return nil, nil
}

type stubSender struct{}

func (stubSender) SendCall(_ context.Context, _ common.Address, _ []byte, _ *big.Int) (common.Hash, error) {
	return common.HexToHash("0x01"), nil
}

func TestSDKRequiresRegisteredBackend(t *testing.T) {
	sdk := New()

	_, err := sdk.GetERC721(context.Background(), types.NetworkLocalhost, testContractAddr, mintableERC721ABI)
	require.Error(t, err)

	var sdkErr *types.SDKError
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, types.ErrUnsupportedNetwork, sdkErr.Code)
}

func TestSDKRejectsMalformedAddress(t *testing.T) {
	sdk := New()
	sdk.SetBackend(types.NetworkLocalhost, stubBackend{})

	_, err := sdk.GetERC721(context.Background(), types.NetworkLocalhost, "not-an-address", mintableERC721ABI)
	require.Error(t, err)

	var sdkErr *types.SDKError
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, types.ErrInvalidArgument, sdkErr.Code)
}

func TestSDKGetERC721(t *testing.T) {
	sdk := New()
	sdk.SetBackend(types.NetworkLocalhost, stubBackend{})
	sdk.SetSender(types.NetworkLocalhost, stubSender{})

	nft, err := sdk.GetERC721(context.Background(), types.NetworkLocalhost, testContractAddr, mintableERC721ABI)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testContractAddr), nft.Address())

	assert.Equal(t, types.SupportFull, nft.SupportLevel(types.CapabilityMintable))
	_, err = nft.Mintable()
	require.NoError(t, err)

	_, err = nft.Burnable()
	var notImpl *types.ExtensionNotImplementedError
	require.ErrorAs(t, err, &notImpl)
	assert.Equal(t, types.CapabilityBurnable, notImpl.Capability)
}

func TestSDKGenerationAdvancesOnProviderSwap(t *testing.T) {
	sdk := New()
	assert.Equal(t, uint64(0), sdk.Generation())

	// First registration is not a swap.
	sdk.SetBackend(types.NetworkLocalhost, stubBackend{})
	assert.Equal(t, uint64(0), sdk.Generation())

	sdk.SetBackend(types.NetworkLocalhost, stubBackend{})
	assert.Equal(t, uint64(1), sdk.Generation())

	sdk.SetSender(types.NetworkLocalhost, stubSender{})
	assert.Equal(t, uint64(2), sdk.Generation())
}

func TestSDKAddNetworkReplacementAdvancesGeneration(t *testing.T) {
	sdk := New()

	require.NoError(t, sdk.AddNetwork(types.NetworkLocalhost, "http://127.0.0.1:8545"))
	assert.Equal(t, uint64(0), sdk.Generation())

	// Re-dialing an already-registered network is a provider swap.
	require.NoError(t, sdk.AddNetwork(types.NetworkLocalhost, "http://127.0.0.1:9545"))
	assert.Equal(t, uint64(1), sdk.Generation())

	require.NoError(t, sdk.AddNetwork(types.NetworkSolanaDevnet, "http://127.0.0.1:8899"))
	assert.Equal(t, uint64(1), sdk.Generation())
	require.NoError(t, sdk.AddNetwork(types.NetworkSolanaDevnet, "http://127.0.0.1:9899"))
	assert.Equal(t, uint64(2), sdk.Generation())
}

func TestSDKFacadeStaleAfterAddNetworkReplacement(t *testing.T) {
	sdk := New()
	sdk.SetBackend(types.NetworkLocalhost, stubBackend{})
	sdk.SetSender(types.NetworkLocalhost, stubSender{})

	nft, err := sdk.GetERC721(context.Background(), types.NetworkLocalhost, testContractAddr, mintableERC721ABI)
	require.NoError(t, err)
	_, err = nft.Mintable()
	require.NoError(t, err)

	// The second registration replaces the backend installed above.
	require.NoError(t, sdk.AddNetwork(types.NetworkLocalhost, "http://127.0.0.1:8545"))

	_, err = nft.Mintable()
	var stale *types.StaleContextError
	require.ErrorAs(t, err, &stale)
}

func TestSDKFacadeStaleAfterSenderSwap(t *testing.T) {
	sdk := New()
	sdk.SetBackend(types.NetworkLocalhost, stubBackend{})
	sdk.SetSender(types.NetworkLocalhost, stubSender{})

	nft, err := sdk.GetERC721(context.Background(), types.NetworkLocalhost, testContractAddr, mintableERC721ABI)
	require.NoError(t, err)

	_, err = nft.Mintable()
	require.NoError(t, err)

	sdk.SetSender(types.NetworkLocalhost, stubSender{})

	_, err = nft.Mintable()
	var stale *types.StaleContextError
	require.ErrorAs(t, err, &stale)

	// A freshly fetched façade picks up the new context.
	nft, err = sdk.GetERC721(context.Background(), types.NetworkLocalhost, testContractAddr, mintableERC721ABI)
	require.NoError(t, err)
	_, err = nft.Mintable()
	require.NoError(t, err)
}

func TestSDKEditions(t *testing.T) {
	sdk := New()

	_, err := sdk.Editions(types.NetworkSolanaDevnet)
	var sdkErr *types.SDKError
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, types.ErrUnsupportedNetwork, sdkErr.Code)

	require.NoError(t, sdk.AddNetwork(types.NetworkSolanaDevnet, "http://localhost:8899"))
	client, err := sdk.Editions(types.NetworkSolanaDevnet)
	require.NoError(t, err)
	assert.NotNil(t, client)
}
