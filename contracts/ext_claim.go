package contracts

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/lumos-labs/chainkit/types"
)

// NativeTokenAddress is the conventional pseudo-address claim conditions use
// to denote payment in the chain's native currency.
var NativeTokenAddress = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// AllowlistProof is the merkle-proof tuple passed alongside a claim.
type AllowlistProof struct {
	Proof                  [][32]byte
	QuantityLimitPerWallet *big.Int
	PricePerToken          *big.Int
	Currency               common.Address
}

// OnChainClaimCondition mirrors the claim-condition tuple drop contracts
// return from getClaimConditionById.
type OnChainClaimCondition struct {
	StartTimestamp         *big.Int
	MaxClaimableSupply     *big.Int
	SupplyClaimed          *big.Int
	QuantityLimitPerWallet *big.Int
	MerkleRoot             [32]byte
	PricePerToken          *big.Int
	Currency               common.Address
	Metadata               string
}

// PriceDecimal converts the atomic-unit price into human-readable units of a
// currency with the given number of decimals.
func (c OnChainClaimCondition) PriceDecimal(decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(c.PricePerToken, -decimals)
}

// Active reports whether the condition has started at the given instant.
func (c OnChainClaimCondition) Active(at time.Time) bool {
	return c.StartTimestamp.Int64() <= at.Unix()
}

// ERC721Claimer claims lazy-minted drop tokens under the contract's active
// claim condition.
type ERC721Claimer struct {
	cc *CallContext
}

func newERC721Claimer(cc *CallContext) *ERC721Claimer {
	return &ERC721Claimer{cc: cc}
}

// ActiveConditionID returns the id of the claim phase currently live.
func (c *ERC721Claimer) ActiveConditionID(ctx context.Context) (*big.Int, error) {
	out, err := c.cc.Call(ctx, "getActiveClaimConditionId")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// ConditionByID fetches one claim phase.
func (c *ERC721Claimer) ConditionByID(ctx context.Context, id *big.Int) (*OnChainClaimCondition, error) {
	out, err := c.cc.Call(ctx, "getClaimConditionById", id)
	if err != nil {
		return nil, err
	}
	return convertCondition(out[0])
}

// ActiveCondition fetches the claim phase currently live.
func (c *ERC721Claimer) ActiveCondition(ctx context.Context) (*OnChainClaimCondition, error) {
	id, err := c.ActiveConditionID(ctx)
	if err != nil {
		return nil, err
	}
	return c.ConditionByID(ctx, id)
}

// ClaimTo claims quantity tokens to the recipient under the active phase,
// paying the phase price. Claims in the native currency carry the payment as
// transaction value.
func (c *ERC721Claimer) ClaimTo(ctx context.Context, to common.Address, quantity *big.Int) (common.Hash, error) {
	cond, err := c.ActiveCondition(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	proof := defaultProof(cond)
	return c.cc.Send(ctx, "claim", claimValue(cond, quantity),
		to, quantity, cond.Currency, cond.PricePerToken, proof, []byte{})
}

// ERC1155Claimer claims edition drop tokens under per-token claim phases.
type ERC1155Claimer struct {
	cc *CallContext
}

func newERC1155Claimer(cc *CallContext) *ERC1155Claimer {
	return &ERC1155Claimer{cc: cc}
}

// ActiveConditionID returns the live phase id for one token.
func (c *ERC1155Claimer) ActiveConditionID(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	out, err := c.cc.Call(ctx, "getActiveClaimConditionId", tokenID)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// ConditionByID fetches one claim phase of one token.
func (c *ERC1155Claimer) ConditionByID(ctx context.Context, tokenID, id *big.Int) (*OnChainClaimCondition, error) {
	out, err := c.cc.Call(ctx, "getClaimConditionById", tokenID, id)
	if err != nil {
		return nil, err
	}
	return convertCondition(out[0])
}

// ClaimTo claims quantity units of tokenID to the recipient under the
// token's active phase.
func (c *ERC1155Claimer) ClaimTo(ctx context.Context, to common.Address, tokenID, quantity *big.Int) (common.Hash, error) {
	id, err := c.ActiveConditionID(ctx, tokenID)
	if err != nil {
		return common.Hash{}, err
	}
	cond, err := c.ConditionByID(ctx, tokenID, id)
	if err != nil {
		return common.Hash{}, err
	}
	proof := defaultProof(cond)
	return c.cc.Send(ctx, "claim", claimValue(cond, quantity),
		to, tokenID, quantity, cond.Currency, cond.PricePerToken, proof, []byte{})
}

// ERC20Claimer claims fungible drop supply under the active claim condition.
type ERC20Claimer struct {
	cc *CallContext
}

func newERC20Claimer(cc *CallContext) *ERC20Claimer {
	return &ERC20Claimer{cc: cc}
}

// ActiveConditionID returns the id of the claim phase currently live.
func (c *ERC20Claimer) ActiveConditionID(ctx context.Context) (*big.Int, error) {
	out, err := c.cc.Call(ctx, "getActiveClaimConditionId")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// ConditionByID fetches one claim phase.
func (c *ERC20Claimer) ConditionByID(ctx context.Context, id *big.Int) (*OnChainClaimCondition, error) {
	out, err := c.cc.Call(ctx, "getClaimConditionById", id)
	if err != nil {
		return nil, err
	}
	return convertCondition(out[0])
}

// ClaimTo claims amount atomic units to the recipient under the active
// phase. Prices are per whole token unit scaled by the contract.
func (c *ERC20Claimer) ClaimTo(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	id, err := c.ActiveConditionID(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	cond, err := c.ConditionByID(ctx, id)
	if err != nil {
		return common.Hash{}, err
	}
	proof := defaultProof(cond)
	return c.cc.Send(ctx, "claim", claimValue(cond, amount),
		to, amount, cond.Currency, cond.PricePerToken, proof, []byte{})
}

func convertCondition(v interface{}) (*OnChainClaimCondition, error) {
	cond, ok := abi.ConvertType(v, new(OnChainClaimCondition)).(*OnChainClaimCondition)
	if !ok {
		return nil, &types.SDKError{Code: types.ErrInvalidABI, Message: "claim condition tuple has unexpected shape"}
	}
	return cond, nil
}

// defaultProof builds the open-claim proof: no merkle path, limits and price
// taken from the public phase.
func defaultProof(cond *OnChainClaimCondition) AllowlistProof {
	return AllowlistProof{
		Proof:                  [][32]byte{},
		QuantityLimitPerWallet: cond.QuantityLimitPerWallet,
		PricePerToken:          cond.PricePerToken,
		Currency:               cond.Currency,
	}
}

// claimValue computes the transaction value of a claim: price*quantity for
// native-currency phases, zero otherwise (ERC-20 payment moves via
// allowance).
func claimValue(cond *OnChainClaimCondition, quantity *big.Int) *big.Int {
	if cond.Currency != NativeTokenAddress || cond.PricePerToken.Sign() == 0 {
		return nil
	}
	return new(big.Int).Mul(cond.PricePerToken, quantity)
}
