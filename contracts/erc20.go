package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/lumos-labs/chainkit/types"
)

// ERC20Contract is the façade over one deployed ERC-20 contract.
type ERC20Contract struct {
	cc         *CallContext
	descriptor *InterfaceDescriptor
	det        *detection

	minter          *ERC20Minter
	batchMinter     *ERC20BatchMinter
	burner          *ERC20Burner
	claimer         *ERC20Claimer
	signatureMinter *SignatureMinter
}

// NewERC20 binds a façade to the contract the CallContext points at.
func NewERC20(ctx context.Context, cc *CallContext, abiJSON string) (*ERC20Contract, error) {
	d, err := ResolveDescriptor(ctx, cc, abiJSON)
	if err != nil {
		return nil, err
	}

	c := &ERC20Contract{cc: cc, descriptor: d}
	c.det = detectCapabilities(cc, d, types.FamilyERC20)

	if c.det.Level(types.CapabilityMintable) == types.SupportFull {
		c.minter = newERC20Minter(cc)
		c.det.built(cc, types.CapabilityMintable, false)
	}
	if c.det.Level(types.CapabilityBatchMintable) == types.SupportFull {
		c.batchMinter = newERC20BatchMinter(cc)
		c.det.built(cc, types.CapabilityBatchMintable, false)
	}
	if c.det.Level(types.CapabilityBurnable) == types.SupportFull {
		c.burner = newERC20Burner(cc)
		c.det.built(cc, types.CapabilityBurnable, false)
	}
	if c.det.Level(types.CapabilityClaimableWithConditions) == types.SupportFull {
		c.claimer = newERC20Claimer(cc)
		c.det.built(cc, types.CapabilityClaimableWithConditions, false)
	}
	if c.det.Level(types.CapabilitySignatureMintable) == types.SupportFull {
		c.signatureMinter = newSignatureMinter(cc, types.FamilyERC20)
		c.det.built(cc, types.CapabilitySignatureMintable, false)
	}

	return c, nil
}

// Address returns the contract address.
func (c *ERC20Contract) Address() common.Address {
	return c.cc.Address
}

// Descriptor returns the immutable interface descriptor the façade was
// built from.
func (c *ERC20Contract) Descriptor() *InterfaceDescriptor {
	return c.descriptor
}

// Capabilities returns the detected support table in registry order.
func (c *ERC20Contract) Capabilities() []CapabilityStatus {
	return c.det.statuses()
}

// SupportLevel reports the detected level of one capability.
func (c *ERC20Contract) SupportLevel(name types.CapabilityName) types.SupportLevel {
	return c.det.Level(name)
}

// --- baseline operations ---

// Name returns the token name.
func (c *ERC20Contract) Name(ctx context.Context) (string, error) {
	out, err := c.cc.Call(ctx, "name")
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Symbol returns the token symbol.
func (c *ERC20Contract) Symbol(ctx context.Context) (string, error) {
	out, err := c.cc.Call(ctx, "symbol")
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Decimals returns the token's decimal places.
func (c *ERC20Contract) Decimals(ctx context.Context) (uint8, error) {
	out, err := c.cc.Call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	return out[0].(uint8), nil
}

// TotalSupply returns the total supply in atomic units.
func (c *ERC20Contract) TotalSupply(ctx context.Context) (*big.Int, error) {
	out, err := c.cc.Call(ctx, "totalSupply")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// BalanceOf returns account's balance in atomic units.
func (c *ERC20Contract) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := c.cc.Call(ctx, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// BalanceDisplay returns account's balance scaled to human-readable units.
func (c *ERC20Contract) BalanceDisplay(ctx context.Context, account common.Address) (decimal.Decimal, error) {
	balance, err := c.BalanceOf(ctx, account)
	if err != nil {
		return decimal.Zero, err
	}
	decimals, err := c.Decimals(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(balance, -int32(decimals)), nil
}

// Allowance returns the spending allowance of spender on owner's balance.
func (c *ERC20Contract) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	out, err := c.cc.Call(ctx, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Transfer sends atomic units to the recipient.
func (c *ERC20Contract) Transfer(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	return c.cc.Send(ctx, "transfer", nil, to, amount)
}

// Approve grants spender an allowance.
func (c *ERC20Contract) Approve(ctx context.Context, spender common.Address, amount *big.Int) (common.Hash, error) {
	return c.cc.Send(ctx, "approve", nil, spender, amount)
}

// --- guarded capability accessors ---

// Mintable returns the minting handle.
func (c *ERC20Contract) Mintable() (*ERC20Minter, error) {
	return requireExtension(c.minter, c.cc, c.det, types.CapabilityMintable)
}

// BatchMintable returns the batch minting handle. Absent unless the contract
// also implements single minting.
func (c *ERC20Contract) BatchMintable() (*ERC20BatchMinter, error) {
	return requireExtension(c.batchMinter, c.cc, c.det, types.CapabilityBatchMintable)
}

// Burnable returns the burning handle.
func (c *ERC20Contract) Burnable() (*ERC20Burner, error) {
	return requireExtension(c.burner, c.cc, c.det, types.CapabilityBurnable)
}

// Claimable returns the claim handle.
func (c *ERC20Contract) Claimable() (*ERC20Claimer, error) {
	return requireExtension(c.claimer, c.cc, c.det, types.CapabilityClaimableWithConditions)
}

// SignatureMintable returns the signature-minting handle.
func (c *ERC20Contract) SignatureMintable() (*SignatureMinter, error) {
	return requireExtension(c.signatureMinter, c.cc, c.det, types.CapabilitySignatureMintable)
}
