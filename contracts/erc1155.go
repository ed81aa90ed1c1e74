package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lumos-labs/chainkit/types"
)

// ERC1155Contract is the façade over one deployed ERC-1155 contract.
// Construction mirrors NewERC721: descriptor resolution, capability
// detection, then eager wiring of every implemented extension.
type ERC1155Contract struct {
	cc         *CallContext
	descriptor *InterfaceDescriptor
	det        *detection

	enumerable      *ERC1155Enumerable
	minter          *ERC1155Minter
	batchMinter     *ERC1155BatchMinter
	burner          *ERC1155Burner
	lazyMinter      *LazyMinter
	claimer         *ERC1155Claimer
	signatureMinter *SignatureMinter
	revealer        *Revealer
}

// NewERC1155 binds a façade to the contract the CallContext points at.
func NewERC1155(ctx context.Context, cc *CallContext, abiJSON string) (*ERC1155Contract, error) {
	d, err := ResolveDescriptor(ctx, cc, abiJSON)
	if err != nil {
		return nil, err
	}

	c := &ERC1155Contract{cc: cc, descriptor: d}
	c.det = detectCapabilities(cc, d, types.FamilyERC1155)

	if lvl := c.det.Level(types.CapabilityEnumerable); lvl.AtLeast(types.SupportPartial) {
		c.enumerable = newERC1155Enumerable(cc, lvl == types.SupportPartial)
		c.det.built(cc, types.CapabilityEnumerable, lvl == types.SupportPartial)
	}
	if c.det.Level(types.CapabilityMintable) == types.SupportFull {
		c.minter = newERC1155Minter(cc)
		c.det.built(cc, types.CapabilityMintable, false)
	}
	if c.det.Level(types.CapabilityBatchMintable) == types.SupportFull {
		c.batchMinter = newERC1155BatchMinter(cc, c.minter)
		c.det.built(cc, types.CapabilityBatchMintable, false)
	}
	if c.det.Level(types.CapabilityBurnable) == types.SupportFull {
		c.burner = newERC1155Burner(cc)
		c.det.built(cc, types.CapabilityBurnable, false)
	}
	if c.det.Level(types.CapabilityLazyMintable) == types.SupportFull {
		c.lazyMinter = newLazyMinter(cc)
		c.det.built(cc, types.CapabilityLazyMintable, false)
	}
	if c.det.Level(types.CapabilityClaimableWithConditions) == types.SupportFull {
		c.claimer = newERC1155Claimer(cc)
		c.det.built(cc, types.CapabilityClaimableWithConditions, false)
	}
	if c.det.Level(types.CapabilitySignatureMintable) == types.SupportFull {
		c.signatureMinter = newSignatureMinter(cc, types.FamilyERC1155)
		c.det.built(cc, types.CapabilitySignatureMintable, false)
	}
	if c.det.Level(types.CapabilityRevealable) == types.SupportFull {
		c.revealer = newRevealer(cc)
		c.det.built(cc, types.CapabilityRevealable, false)
	}

	return c, nil
}

// Address returns the contract address.
func (c *ERC1155Contract) Address() common.Address {
	return c.cc.Address
}

// Descriptor returns the immutable interface descriptor the façade was
// built from.
func (c *ERC1155Contract) Descriptor() *InterfaceDescriptor {
	return c.descriptor
}

// Capabilities returns the detected support table in registry order.
func (c *ERC1155Contract) Capabilities() []CapabilityStatus {
	return c.det.statuses()
}

// SupportLevel reports the detected level of one capability.
func (c *ERC1155Contract) SupportLevel(name types.CapabilityName) types.SupportLevel {
	return c.det.Level(name)
}

// --- baseline operations ---

// BalanceOf returns the holding of one token id by account.
func (c *ERC1155Contract) BalanceOf(ctx context.Context, account common.Address, tokenID *big.Int) (*big.Int, error) {
	out, err := c.cc.Call(ctx, "balanceOf", account, tokenID)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// BalanceOfBatch returns holdings for several account/token pairs.
func (c *ERC1155Contract) BalanceOfBatch(ctx context.Context, accounts []common.Address, tokenIDs []*big.Int) ([]*big.Int, error) {
	if len(accounts) != len(tokenIDs) {
		return nil, &types.SDKError{Code: types.ErrInvalidArgument, Message: "accounts and tokenIDs length mismatch"}
	}
	out, err := c.cc.Call(ctx, "balanceOfBatch", accounts, tokenIDs)
	if err != nil {
		return nil, err
	}
	return out[0].([]*big.Int), nil
}

// URI returns the metadata URI of one token id.
func (c *ERC1155Contract) URI(ctx context.Context, tokenID *big.Int) (string, error) {
	out, err := c.cc.Call(ctx, "uri", tokenID)
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Get resolves a token into its URI and fetched metadata.
func (c *ERC1155Contract) Get(ctx context.Context, tokenID *big.Int) (*types.NFT, error) {
	uri, err := c.URI(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	nft := &types.NFT{TokenID: tokenID.String(), URI: uri}
	if c.enumerable != nil {
		// totalSupply(uint256) is part of the enumeration minimal subset,
		// so it is callable at PARTIAL support too.
		if supply, err := c.enumerable.TotalSupply(ctx, tokenID); err == nil {
			nft.Supply = supply.String()
		}
	}
	if c.cc.Storage != nil {
		if err := c.cc.Storage.Fetch(ctx, uri, &nft.Metadata); err != nil {
			c.cc.Log.Warn("token metadata fetch failed", map[string]any{
				"contract": c.cc.Address.Hex(),
				"tokenId":  tokenID.String(),
				"error":    err.Error(),
			})
		}
	}
	return nft, nil
}

// Transfer moves token units between addresses.
func (c *ERC1155Contract) Transfer(ctx context.Context, from, to common.Address, tokenID, amount *big.Int) (common.Hash, error) {
	return c.cc.Send(ctx, "safeTransferFrom", nil, from, to, tokenID, amount, []byte{})
}

// --- guarded capability accessors ---

// Enumerable returns the enumeration handle.
func (c *ERC1155Contract) Enumerable() (*ERC1155Enumerable, error) {
	return requireExtension(c.enumerable, c.cc, c.det, types.CapabilityEnumerable)
}

// Mintable returns the minting handle.
func (c *ERC1155Contract) Mintable() (*ERC1155Minter, error) {
	return requireExtension(c.minter, c.cc, c.det, types.CapabilityMintable)
}

// BatchMintable returns the batch minting handle. Absent unless the contract
// also implements single minting.
func (c *ERC1155Contract) BatchMintable() (*ERC1155BatchMinter, error) {
	return requireExtension(c.batchMinter, c.cc, c.det, types.CapabilityBatchMintable)
}

// Burnable returns the burning handle.
func (c *ERC1155Contract) Burnable() (*ERC1155Burner, error) {
	return requireExtension(c.burner, c.cc, c.det, types.CapabilityBurnable)
}

// LazyMintable returns the lazy-minting handle.
func (c *ERC1155Contract) LazyMintable() (*LazyMinter, error) {
	return requireExtension(c.lazyMinter, c.cc, c.det, types.CapabilityLazyMintable)
}

// Claimable returns the claim handle.
func (c *ERC1155Contract) Claimable() (*ERC1155Claimer, error) {
	return requireExtension(c.claimer, c.cc, c.det, types.CapabilityClaimableWithConditions)
}

// SignatureMintable returns the signature-minting handle.
func (c *ERC1155Contract) SignatureMintable() (*SignatureMinter, error) {
	return requireExtension(c.signatureMinter, c.cc, c.det, types.CapabilitySignatureMintable)
}

// Revealable returns the delayed-reveal handle.
func (c *ERC1155Contract) Revealable() (*Revealer, error) {
	return requireExtension(c.revealer, c.cc, c.det, types.CapabilityRevealable)
}
