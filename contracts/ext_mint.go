package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lumos-labs/chainkit/types"
)

// NewTokenID is the sentinel token id that asks an ERC-1155 mint to create a
// fresh token instead of adding supply to an existing one.
var NewTokenID = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ERC721Minter mints single NFTs on contracts implementing IMintableERC721.
type ERC721Minter struct {
	cc *CallContext
}

func newERC721Minter(cc *CallContext) *ERC721Minter {
	return &ERC721Minter{cc: cc}
}

// MintTo uploads the metadata document and mints the resulting URI to the
// recipient.
func (m *ERC721Minter) MintTo(ctx context.Context, to common.Address, metadata types.NFTMetadata) (common.Hash, error) {
	uri, err := m.uploadMetadata(ctx, metadata)
	if err != nil {
		return common.Hash{}, err
	}
	return m.MintToURI(ctx, to, uri)
}

// MintToURI mints an already-uploaded metadata URI to the recipient.
func (m *ERC721Minter) MintToURI(ctx context.Context, to common.Address, uri string) (common.Hash, error) {
	return m.cc.Send(ctx, "mintTo", nil, to, uri)
}

func (m *ERC721Minter) uploadMetadata(ctx context.Context, metadata types.NFTMetadata) (string, error) {
	if m.cc.Storage == nil {
		return "", &types.SDKError{Code: types.ErrInvalidArgument, Message: "no storage configured for metadata upload"}
	}
	uri, err := m.cc.Storage.Upload(ctx, metadata)
	if err != nil {
		return "", fmt.Errorf("metadata upload failed: %w", err)
	}
	return uri, nil
}

// ERC721BatchMinter batches several mints into one multicall transaction.
// Composite capability: only wired when the contract also implements single
// minting.
type ERC721BatchMinter struct {
	cc     *CallContext
	minter *ERC721Minter
}

func newERC721BatchMinter(cc *CallContext, minter *ERC721Minter) *ERC721BatchMinter {
	return &ERC721BatchMinter{cc: cc, minter: minter}
}

// MintBatchTo mints one NFT per metadata document to the recipient in a
// single transaction.
func (m *ERC721BatchMinter) MintBatchTo(ctx context.Context, to common.Address, metadatas []types.NFTMetadata) (common.Hash, error) {
	if len(metadatas) == 0 {
		return common.Hash{}, &types.SDKError{Code: types.ErrInvalidArgument, Message: "empty mint batch"}
	}

	calls := make([][]byte, 0, len(metadatas))
	for _, md := range metadatas {
		uri, err := m.minter.uploadMetadata(ctx, md)
		if err != nil {
			return common.Hash{}, err
		}
		calldata, err := m.cc.Pack("mintTo", to, uri)
		if err != nil {
			return common.Hash{}, err
		}
		calls = append(calls, calldata)
	}

	batch, err := m.cc.Pack("multicall", calls)
	if err != nil {
		return common.Hash{}, err
	}
	return m.cc.SendRaw(ctx, batch, nil)
}

// ERC1155Minter mints editions on contracts implementing IMintableERC1155.
type ERC1155Minter struct {
	cc *CallContext
}

func newERC1155Minter(cc *CallContext) *ERC1155Minter {
	return &ERC1155Minter{cc: cc}
}

// MintTo mints supply of a new token (tokenID == NewTokenID) or adds supply
// to an existing one.
func (m *ERC1155Minter) MintTo(ctx context.Context, to common.Address, tokenID *big.Int, metadata types.NFTMetadata, supply *big.Int) (common.Hash, error) {
	uri := ""
	if tokenID.Cmp(NewTokenID) == 0 {
		if m.cc.Storage == nil {
			return common.Hash{}, &types.SDKError{Code: types.ErrInvalidArgument, Message: "no storage configured for metadata upload"}
		}
		u, err := m.cc.Storage.Upload(ctx, metadata)
		if err != nil {
			return common.Hash{}, fmt.Errorf("metadata upload failed: %w", err)
		}
		uri = u
	}
	return m.cc.Send(ctx, "mintTo", nil, to, tokenID, uri, supply)
}

// MintAdditionalSupply adds supply to an existing token, keeping its URI.
func (m *ERC1155Minter) MintAdditionalSupply(ctx context.Context, to common.Address, tokenID, supply *big.Int) (common.Hash, error) {
	return m.cc.Send(ctx, "mintTo", nil, to, tokenID, "", supply)
}

// ERC1155BatchMinter batches edition mints through multicall.
type ERC1155BatchMinter struct {
	cc     *CallContext
	minter *ERC1155Minter
}

func newERC1155BatchMinter(cc *CallContext, minter *ERC1155Minter) *ERC1155BatchMinter {
	return &ERC1155BatchMinter{cc: cc, minter: minter}
}

// BatchMintArg is one entry of an ERC-1155 batch mint.
type BatchMintArg struct {
	Metadata types.NFTMetadata
	Supply   *big.Int
}

// MintBatchTo mints several new tokens to the recipient in one transaction.
func (m *ERC1155BatchMinter) MintBatchTo(ctx context.Context, to common.Address, args []BatchMintArg) (common.Hash, error) {
	if len(args) == 0 {
		return common.Hash{}, &types.SDKError{Code: types.ErrInvalidArgument, Message: "empty mint batch"}
	}
	if m.cc.Storage == nil {
		return common.Hash{}, &types.SDKError{Code: types.ErrInvalidArgument, Message: "no storage configured for metadata upload"}
	}

	calls := make([][]byte, 0, len(args))
	for _, arg := range args {
		uri, err := m.cc.Storage.Upload(ctx, arg.Metadata)
		if err != nil {
			return common.Hash{}, fmt.Errorf("metadata upload failed: %w", err)
		}
		calldata, err := m.cc.Pack("mintTo", to, NewTokenID, uri, arg.Supply)
		if err != nil {
			return common.Hash{}, err
		}
		calls = append(calls, calldata)
	}

	batch, err := m.cc.Pack("multicall", calls)
	if err != nil {
		return common.Hash{}, err
	}
	return m.cc.SendRaw(ctx, batch, nil)
}

// ERC20Minter mints fungible supply on contracts implementing IMintableERC20.
type ERC20Minter struct {
	cc *CallContext
}

func newERC20Minter(cc *CallContext) *ERC20Minter {
	return &ERC20Minter{cc: cc}
}

// MintTo mints the given amount of atomic units to the recipient.
func (m *ERC20Minter) MintTo(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	return m.cc.Send(ctx, "mintTo", nil, to, amount)
}

// ERC20BatchMinter batches fungible mints through multicall.
type ERC20BatchMinter struct {
	cc *CallContext
}

func newERC20BatchMinter(cc *CallContext) *ERC20BatchMinter {
	return &ERC20BatchMinter{cc: cc}
}

// MintRecipient is one entry of a fungible batch mint.
type MintRecipient struct {
	To     common.Address
	Amount *big.Int
}

// MintBatchTo mints to several recipients in one transaction.
func (m *ERC20BatchMinter) MintBatchTo(ctx context.Context, recipients []MintRecipient) (common.Hash, error) {
	if len(recipients) == 0 {
		return common.Hash{}, &types.SDKError{Code: types.ErrInvalidArgument, Message: "empty mint batch"}
	}

	calls := make([][]byte, 0, len(recipients))
	for _, r := range recipients {
		calldata, err := m.cc.Pack("mintTo", r.To, r.Amount)
		if err != nil {
			return common.Hash{}, err
		}
		calls = append(calls, calldata)
	}

	batch, err := m.cc.Pack("multicall", calls)
	if err != nil {
		return common.Hash{}, err
	}
	return m.cc.SendRaw(ctx, batch, nil)
}
