package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lumos-labs/chainkit/types"
)

// LazyMinter queues batches of token metadata on contracts implementing
// ILazyMint: the metadata is uploaded up front, the tokens themselves are
// created later when claimed. Shared by the ERC-721 and ERC-1155 façades;
// the lazyMint entry point is identical in both families.
type LazyMinter struct {
	cc *CallContext
}

func newLazyMinter(cc *CallContext) *LazyMinter {
	return &LazyMinter{cc: cc}
}

// LazyMint uploads the metadata batch and registers it on chain. Returns the
// submission hash; token ids are assigned by the contract at claim time.
func (l *LazyMinter) LazyMint(ctx context.Context, metadatas []types.NFTMetadata) (common.Hash, error) {
	uri, err := l.uploadBatch(ctx, metadatas)
	if err != nil {
		return common.Hash{}, err
	}
	return l.cc.Send(ctx, "lazyMint", nil, big.NewInt(int64(len(metadatas))), uri, []byte{})
}

// LazyMintEncrypted registers a batch whose real base URI is revealed later;
// the encrypted URI payload travels in the extra-data argument for the
// Revealable extension to decrypt.
func (l *LazyMinter) LazyMintEncrypted(ctx context.Context, placeholders []types.NFTMetadata, encryptedURI []byte) (common.Hash, error) {
	uri, err := l.uploadBatch(ctx, placeholders)
	if err != nil {
		return common.Hash{}, err
	}
	return l.cc.Send(ctx, "lazyMint", nil, big.NewInt(int64(len(placeholders))), uri, encryptedURI)
}

func (l *LazyMinter) uploadBatch(ctx context.Context, metadatas []types.NFTMetadata) (string, error) {
	if len(metadatas) == 0 {
		return "", &types.SDKError{Code: types.ErrInvalidArgument, Message: "empty lazy mint batch"}
	}
	if l.cc.Storage == nil {
		return "", &types.SDKError{Code: types.ErrInvalidArgument, Message: "no storage configured for metadata upload"}
	}
	uri, err := l.cc.Storage.Upload(ctx, metadatas)
	if err != nil {
		return "", fmt.Errorf("metadata batch upload failed: %w", err)
	}
	return uri, nil
}
