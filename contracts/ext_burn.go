package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lumos-labs/chainkit/types"
)

// ERC721Burner burns NFTs on contracts implementing IBurnableERC721.
type ERC721Burner struct {
	cc *CallContext
}

func newERC721Burner(cc *CallContext) *ERC721Burner {
	return &ERC721Burner{cc: cc}
}

// Burn destroys the given token. The caller must own it or be approved.
func (b *ERC721Burner) Burn(ctx context.Context, tokenID *big.Int) (common.Hash, error) {
	return b.cc.Send(ctx, "burn", nil, tokenID)
}

// ERC1155Burner burns edition supply on contracts implementing
// IBurnableERC1155.
type ERC1155Burner struct {
	cc *CallContext
}

func newERC1155Burner(cc *CallContext) *ERC1155Burner {
	return &ERC1155Burner{cc: cc}
}

// Burn destroys amount units of a token held by account.
func (b *ERC1155Burner) Burn(ctx context.Context, account common.Address, tokenID, amount *big.Int) (common.Hash, error) {
	return b.cc.Send(ctx, "burn", nil, account, tokenID, amount)
}

// BurnBatch destroys several tokens held by account in one transaction.
func (b *ERC1155Burner) BurnBatch(ctx context.Context, account common.Address, tokenIDs, amounts []*big.Int) (common.Hash, error) {
	if len(tokenIDs) != len(amounts) {
		return common.Hash{}, &types.SDKError{Code: types.ErrInvalidArgument, Message: "tokenIDs and amounts length mismatch"}
	}
	return b.cc.Send(ctx, "burnBatch", nil, account, tokenIDs, amounts)
}

// ERC20Burner burns fungible supply on contracts implementing
// IBurnableERC20.
type ERC20Burner struct {
	cc *CallContext
}

func newERC20Burner(cc *CallContext) *ERC20Burner {
	return &ERC20Burner{cc: cc}
}

// Burn destroys amount atomic units held by the caller.
func (b *ERC20Burner) Burn(ctx context.Context, amount *big.Int) (common.Hash, error) {
	return b.cc.Send(ctx, "burn", nil, amount)
}

// BurnFrom destroys amount atomic units from holder using the caller's
// allowance.
func (b *ERC20Burner) BurnFrom(ctx context.Context, holder common.Address, amount *big.Int) (common.Hash, error) {
	return b.cc.Send(ctx, "burnFrom", nil, holder, amount)
}
