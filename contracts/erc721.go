package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lumos-labs/chainkit/types"
)

// ERC721Contract is the façade over one deployed ERC-721 contract: baseline
// operations always present, optional capabilities behind guarded accessors.
// The constructor resolves the contract's interface descriptor and wires
// every extension the contract actually implements; a returned façade is
// fully bound, no partially-constructed state is ever observable.
type ERC721Contract struct {
	cc         *CallContext
	descriptor *InterfaceDescriptor
	det        *detection

	enumerable      *ERC721Enumerable
	minter          *ERC721Minter
	batchMinter     *ERC721BatchMinter
	burner          *ERC721Burner
	lazyMinter      *LazyMinter
	claimer         *ERC721Claimer
	signatureMinter *SignatureMinter
	revealer        *Revealer
}

// NewERC721 binds a façade to the contract the CallContext points at.
// abiJSON may be empty, in which case the interface is auto-detected from
// the contract's published metadata. Resolution failures surface as
// DescriptorFetchError with no façade returned.
func NewERC721(ctx context.Context, cc *CallContext, abiJSON string) (*ERC721Contract, error) {
	d, err := ResolveDescriptor(ctx, cc, abiJSON)
	if err != nil {
		return nil, err
	}

	c := &ERC721Contract{cc: cc, descriptor: d}
	c.det = detectCapabilities(cc, d, types.FamilyERC721)

	if lvl := c.det.Level(types.CapabilityEnumerable); lvl.AtLeast(types.SupportPartial) {
		c.enumerable = newERC721Enumerable(cc, lvl == types.SupportPartial)
		c.det.built(cc, types.CapabilityEnumerable, lvl == types.SupportPartial)
	}
	if c.det.Level(types.CapabilityMintable) == types.SupportFull {
		c.minter = newERC721Minter(cc)
		c.det.built(cc, types.CapabilityMintable, false)
	}
	if c.det.Level(types.CapabilityBatchMintable) == types.SupportFull {
		c.batchMinter = newERC721BatchMinter(cc, c.minter)
		c.det.built(cc, types.CapabilityBatchMintable, false)
	}
	if c.det.Level(types.CapabilityBurnable) == types.SupportFull {
		c.burner = newERC721Burner(cc)
		c.det.built(cc, types.CapabilityBurnable, false)
	}
	if c.det.Level(types.CapabilityLazyMintable) == types.SupportFull {
		c.lazyMinter = newLazyMinter(cc)
		c.det.built(cc, types.CapabilityLazyMintable, false)
	}
	if c.det.Level(types.CapabilityClaimableWithConditions) == types.SupportFull {
		c.claimer = newERC721Claimer(cc)
		c.det.built(cc, types.CapabilityClaimableWithConditions, false)
	}
	if c.det.Level(types.CapabilitySignatureMintable) == types.SupportFull {
		c.signatureMinter = newSignatureMinter(cc, types.FamilyERC721)
		c.det.built(cc, types.CapabilitySignatureMintable, false)
	}
	if c.det.Level(types.CapabilityRevealable) == types.SupportFull {
		c.revealer = newRevealer(cc)
		c.det.built(cc, types.CapabilityRevealable, false)
	}

	return c, nil
}

// Address returns the contract address.
func (c *ERC721Contract) Address() common.Address {
	return c.cc.Address
}

// Descriptor returns the immutable interface descriptor the façade was
// built from.
func (c *ERC721Contract) Descriptor() *InterfaceDescriptor {
	return c.descriptor
}

// Capabilities returns the detected support table in registry order.
func (c *ERC721Contract) Capabilities() []CapabilityStatus {
	return c.det.statuses()
}

// SupportLevel reports the detected level of one capability.
func (c *ERC721Contract) SupportLevel(name types.CapabilityName) types.SupportLevel {
	return c.det.Level(name)
}

// --- baseline operations ---

// OwnerOf returns the current owner of a token.
func (c *ERC721Contract) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	out, err := c.cc.Call(ctx, "ownerOf", tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// BalanceOf returns the number of tokens held by owner.
func (c *ERC721Contract) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	out, err := c.cc.Call(ctx, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// TokenURI returns the metadata URI of a token.
func (c *ERC721Contract) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	out, err := c.cc.Call(ctx, "tokenURI", tokenID)
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Get resolves a token into its owner, URI and fetched metadata.
func (c *ERC721Contract) Get(ctx context.Context, tokenID *big.Int) (*types.NFT, error) {
	uri, err := c.TokenURI(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	owner, err := c.OwnerOf(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	nft := &types.NFT{TokenID: tokenID.String(), Owner: owner.Hex(), URI: uri}
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

// Transfer moves a token from the connected wallet to another address.
func (c *ERC721Contract) Transfer(ctx context.Context, from, to common.Address, tokenID *big.Int) (common.Hash, error) {
	return c.cc.Send(ctx, "transferFrom", nil, from, to, tokenID)
}

// --- guarded capability accessors ---

// Enumerable returns the enumeration handle, or fails when the contract
// implements no enumeration index and no fallback is possible.
func (c *ERC721Contract) Enumerable() (*ERC721Enumerable, error) {
	return requireExtension(c.enumerable, c.cc, c.det, types.CapabilityEnumerable)
}

// Mintable returns the minting handle.
func (c *ERC721Contract) Mintable() (*ERC721Minter, error) {
	return requireExtension(c.minter, c.cc, c.det, types.CapabilityMintable)
}

// BatchMintable returns the batch minting handle. Absent unless the contract
// also implements single minting.
func (c *ERC721Contract) BatchMintable() (*ERC721BatchMinter, error) {
	return requireExtension(c.batchMinter, c.cc, c.det, types.CapabilityBatchMintable)
}

// Burnable returns the burning handle.
func (c *ERC721Contract) Burnable() (*ERC721Burner, error) {
	return requireExtension(c.burner, c.cc, c.det, types.CapabilityBurnable)
}

// LazyMintable returns the lazy-minting handle.
func (c *ERC721Contract) LazyMintable() (*LazyMinter, error) {
	return requireExtension(c.lazyMinter, c.cc, c.det, types.CapabilityLazyMintable)
}

// Claimable returns the claim handle.
func (c *ERC721Contract) Claimable() (*ERC721Claimer, error) {
	return requireExtension(c.claimer, c.cc, c.det, types.CapabilityClaimableWithConditions)
}

// SignatureMintable returns the signature-minting handle.
func (c *ERC721Contract) SignatureMintable() (*SignatureMinter, error) {
	return requireExtension(c.signatureMinter, c.cc, c.det, types.CapabilitySignatureMintable)
}

// Revealable returns the delayed-reveal handle.
func (c *ERC721Contract) Revealable() (*Revealer, error) {
	return requireExtension(c.revealer, c.cc, c.det, types.CapabilityRevealable)
}
