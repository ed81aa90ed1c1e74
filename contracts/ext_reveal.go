package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lumos-labs/chainkit/types"
)

// Revealer manages delayed-reveal batches on contracts implementing
// IDelayedReveal: lazy-minted batches whose real base URI stays encrypted on
// chain until revealed with the batch password. Shared by the ERC-721 and
// ERC-1155 façades.
type Revealer struct {
	cc *CallContext
}

func newRevealer(cc *CallContext) *Revealer {
	return &Revealer{cc: cc}
}

// EncryptURI asks the contract to encrypt a base URI with the given key,
// producing the payload LazyMintEncrypted registers on chain. encryptDecrypt
// is symmetric, so the same call later decrypts it.
func (r *Revealer) EncryptURI(ctx context.Context, baseURI string, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, &types.SDKError{Code: types.ErrInvalidArgument, Message: "empty reveal key"}
	}
	out, err := r.cc.Call(ctx, "encryptDecrypt", []byte(baseURI), key)
	if err != nil {
		return nil, err
	}
	return out[0].([]byte), nil
}

// Reveal publishes the real base URI of a batch by submitting its key.
func (r *Revealer) Reveal(ctx context.Context, batchID *big.Int, key []byte) (common.Hash, error) {
	if len(key) == 0 {
		return common.Hash{}, &types.SDKError{Code: types.ErrInvalidArgument, Message: "empty reveal key"}
	}
	return r.cc.Send(ctx, "reveal", nil, batchID, key)
}
