package contracts

import (
	"fmt"

	"github.com/lumos-labs/chainkit/types"
)

// Canonical signatures the registry derives its selector sets from. Grouped
// by the on-chain interface they belong to.
const (
	// ERC-721 baseline (EIP-721)
	sigOwnerOf           = "ownerOf(uint256)"
	sigBalanceOf721      = "balanceOf(address)"
	sigTransferFrom      = "transferFrom(address,address,uint256)"
	sigTokenURI          = "tokenURI(uint256)"
	sigSetApprovalForAll = "setApprovalForAll(address,bool)"
	sigIsApprovedForAll  = "isApprovedForAll(address,address)"

	// ERC-1155 baseline (EIP-1155)
	sigBalanceOf1155         = "balanceOf(address,uint256)"
	sigBalanceOfBatch        = "balanceOfBatch(address[],uint256[])"
	sigSafeTransferFrom1155  = "safeTransferFrom(address,address,uint256,uint256,bytes)"
	sigSafeBatchTransferFrom = "safeBatchTransferFrom(address,address,uint256[],uint256[],bytes)"
	sigURI                   = "uri(uint256)"

	// ERC-20 baseline (EIP-20)
	sigName           = "name()"
	sigSymbol         = "symbol()"
	sigDecimals       = "decimals()"
	sigTotalSupply    = "totalSupply()"
	sigTransfer       = "transfer(address,uint256)"
	sigAllowance      = "allowance(address,address)"
	sigApprove        = "approve(address,uint256)"
	sigTransferFrom20 = "transferFrom(address,address,uint256)"

	// Enumeration
	sigTokenByIndex        = "tokenByIndex(uint256)"
	sigTokenOfOwnerByIndex = "tokenOfOwnerByIndex(address,uint256)"
	sigNextTokenIdToMint   = "nextTokenIdToMint()"
	sigTotalSupplyOf       = "totalSupply(uint256)"

	// Minting
	sigMintTo721  = "mintTo(address,string)"
	sigMintTo1155 = "mintTo(address,uint256,string,uint256)"
	sigMintTo20   = "mintTo(address,uint256)"
	sigMulticall  = "multicall(bytes[])"

	// Burning
	sigBurn721   = "burn(uint256)"
	sigBurn1155  = "burn(address,uint256,uint256)"
	sigBurnBatch = "burnBatch(address,uint256[],uint256[])"
	sigBurn20    = "burn(uint256)"
	sigBurnFrom  = "burnFrom(address,uint256)"

	// Lazy minting
	sigLazyMint = "lazyMint(uint256,string,bytes)"

	// Claiming with conditions
	sigClaim721                 = "claim(address,uint256,address,uint256,(bytes32[],uint256,uint256,address),bytes)"
	sigClaim1155                = "claim(address,uint256,uint256,address,uint256,(bytes32[],uint256,uint256,address),bytes)"
	sigClaim20                  = "claim(address,uint256,address,uint256,(bytes32[],uint256,uint256,address),bytes)"
	sigActiveClaimCondition     = "getActiveClaimConditionId()"
	sigClaimConditionByID       = "getClaimConditionById(uint256)"
	sigActiveClaimCondition1155 = "getActiveClaimConditionId(uint256)"
	sigClaimConditionByID1155   = "getClaimConditionById(uint256,uint256)"

	// Signature minting
	sigMintWithSignature721  = "mintWithSignature((address,address,uint256,address,string,uint256,address,uint128,uint128,bytes32),bytes)"
	sigMintWithSignature1155 = "mintWithSignature((address,address,uint256,address,uint256,string,uint256,uint256,address,uint128,uint128,bytes32),bytes)"
	sigMintWithSignature20   = "mintWithSignature((address,address,uint256,uint256,address,uint128,uint128,bytes32),bytes)"

	// Delayed reveal
	sigReveal         = "reveal(uint256,bytes)"
	sigEncryptDecrypt = "encryptDecrypt(bytes,bytes)"
)

var (
	erc721Baseline = []Selector{
		SelectorOf(sigOwnerOf),
		SelectorOf(sigBalanceOf721),
		SelectorOf(sigTransferFrom),
		SelectorOf(sigTokenURI),
		SelectorOf(sigSetApprovalForAll),
		SelectorOf(sigIsApprovedForAll),
	}

	erc1155Baseline = []Selector{
		SelectorOf(sigBalanceOf1155),
		SelectorOf(sigBalanceOfBatch),
		SelectorOf(sigSafeTransferFrom1155),
		SelectorOf(sigSafeBatchTransferFrom),
		SelectorOf(sigSetApprovalForAll),
		SelectorOf(sigIsApprovedForAll),
		SelectorOf(sigURI),
	}

	erc20Baseline = []Selector{
		SelectorOf(sigName),
		SelectorOf(sigSymbol),
		SelectorOf(sigDecimals),
		SelectorOf(sigTotalSupply),
		SelectorOf(sigBalanceOf721),
		SelectorOf(sigTransfer),
		SelectorOf(sigAllowance),
		SelectorOf(sigApprove),
		SelectorOf(sigTransferFrom20),
	}

	erc721Requirements = []CapabilityRequirement{
		{
			Name:      types.CapabilityEnumerable,
			Interface: "IERC721Enumerable",
			Required: []Selector{
				SelectorOf(sigTotalSupply),
				SelectorOf(sigTokenByIndex),
				SelectorOf(sigTokenOfOwnerByIndex),
			},
			// totalSupply alone is enough for the event-log fallback.
			Minimal: []Selector{SelectorOf(sigTotalSupply)},
		},
		{
			Name:      types.CapabilityMintable,
			Interface: "IMintableERC721",
			Required:  []Selector{SelectorOf(sigMintTo721)},
		},
		{
			Name:      types.CapabilityBatchMintable,
			Interface: "IMulticall",
			Required:  []Selector{SelectorOf(sigMulticall)},
			DependsOn: types.CapabilityMintable,
		},
		{
			Name:      types.CapabilityBurnable,
			Interface: "IBurnableERC721",
			Required:  []Selector{SelectorOf(sigBurn721)},
		},
		{
			Name:      types.CapabilityLazyMintable,
			Interface: "ILazyMint",
			Required:  []Selector{SelectorOf(sigLazyMint)},
		},
		{
			Name:      types.CapabilityClaimableWithConditions,
			Interface: "IDropERC721",
			Required: []Selector{
				SelectorOf(sigClaim721),
				SelectorOf(sigActiveClaimCondition),
				SelectorOf(sigClaimConditionByID),
			},
		},
		{
			Name:      types.CapabilitySignatureMintable,
			Interface: "ISignatureMintERC721",
			Required:  []Selector{SelectorOf(sigMintWithSignature721)},
		},
		{
			Name:      types.CapabilityRevealable,
			Interface: "IDelayedReveal",
			Required: []Selector{
				SelectorOf(sigReveal),
				SelectorOf(sigEncryptDecrypt),
			},
		},
	}

	erc1155Requirements = []CapabilityRequirement{
		{
			Name:      types.CapabilityEnumerable,
			Interface: "IERC1155Enumerable",
			Required: []Selector{
				SelectorOf(sigNextTokenIdToMint),
				SelectorOf(sigTotalSupplyOf),
			},
			Minimal: []Selector{SelectorOf(sigTotalSupplyOf)},
		},
		{
			Name:      types.CapabilityMintable,
			Interface: "IMintableERC1155",
			Required:  []Selector{SelectorOf(sigMintTo1155)},
		},
		{
			Name:      types.CapabilityBatchMintable,
			Interface: "IMulticall",
			Required:  []Selector{SelectorOf(sigMulticall)},
			DependsOn: types.CapabilityMintable,
		},
		{
			Name:      types.CapabilityBurnable,
			Interface: "IBurnableERC1155",
			Required: []Selector{
				SelectorOf(sigBurn1155),
				SelectorOf(sigBurnBatch),
			},
		},
		{
			Name:      types.CapabilityLazyMintable,
			Interface: "ILazyMint",
			Required:  []Selector{SelectorOf(sigLazyMint)},
		},
		{
			Name:      types.CapabilityClaimableWithConditions,
			Interface: "IDropERC1155",
			Required: []Selector{
				SelectorOf(sigClaim1155),
				SelectorOf(sigActiveClaimCondition1155),
				SelectorOf(sigClaimConditionByID1155),
			},
		},
		{
			Name:      types.CapabilitySignatureMintable,
			Interface: "ISignatureMintERC1155",
			Required:  []Selector{SelectorOf(sigMintWithSignature1155)},
		},
		{
			Name:      types.CapabilityRevealable,
			Interface: "IDelayedReveal",
			Required: []Selector{
				SelectorOf(sigReveal),
				SelectorOf(sigEncryptDecrypt),
			},
		},
	}

	erc20Requirements = []CapabilityRequirement{
		{
			Name:      types.CapabilityMintable,
			Interface: "IMintableERC20",
			Required:  []Selector{SelectorOf(sigMintTo20)},
		},
		{
			Name:      types.CapabilityBatchMintable,
			Interface: "IMulticall",
			Required:  []Selector{SelectorOf(sigMulticall)},
			DependsOn: types.CapabilityMintable,
		},
		{
			Name:      types.CapabilityBurnable,
			Interface: "IBurnableERC20",
			Required: []Selector{
				SelectorOf(sigBurn20),
				SelectorOf(sigBurnFrom),
			},
		},
		{
			Name:      types.CapabilityClaimableWithConditions,
			Interface: "IDropERC20",
			Required: []Selector{
				SelectorOf(sigClaim20),
				SelectorOf(sigActiveClaimCondition),
				SelectorOf(sigClaimConditionByID),
			},
		},
		{
			Name:      types.CapabilitySignatureMintable,
			Interface: "ISignatureMintERC20",
			Required:  []Selector{SelectorOf(sigMintWithSignature20)},
		},
	}
)

// RequirementsFor returns the ordered requirement table for a standard
// family. Order is fixed so construction logging is deterministic.
// Looking up an unknown family is a programmer error and panics.
func RequirementsFor(family types.StandardFamily) []CapabilityRequirement {
	switch family {
	case types.FamilyERC721:
		return erc721Requirements
	case types.FamilyERC1155:
		return erc1155Requirements
	case types.FamilyERC20:
		return erc20Requirements
	default:
		panic(fmt.Sprintf("contracts: unknown standard family %q", family))
	}
}

// BaselineSelectors returns the mandatory selector set of a family.
func BaselineSelectors(family types.StandardFamily) []Selector {
	switch family {
	case types.FamilyERC721:
		return erc721Baseline
	case types.FamilyERC1155:
		return erc1155Baseline
	case types.FamilyERC20:
		return erc20Baseline
	default:
		panic(fmt.Sprintf("contracts: unknown standard family %q", family))
	}
}

// interfaceHint returns the on-chain interface whose implementation unlocks
// a capability on the given family, for remediation messages.
func interfaceHint(family types.StandardFamily, name types.CapabilityName) string {
	for _, req := range RequirementsFor(family) {
		if req.Name == name {
			return req.Interface
		}
	}
	return ""
}
