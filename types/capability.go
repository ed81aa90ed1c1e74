package types

// StandardFamily identifies a token standard whose contracts share a
// mandatory baseline and a family-specific set of optional extensions.
type StandardFamily string

const (
	FamilyERC20   StandardFamily = "ERC20"
	FamilyERC721  StandardFamily = "ERC721"
	FamilyERC1155 StandardFamily = "ERC1155"
)

func (f StandardFamily) String() string {
	return string(f)
}

// CapabilityName tags an optional contract extension. Names are stable
// across standard families; each family defines its own applicable subset.
type CapabilityName string

const (
	CapabilityEnumerable              CapabilityName = "Enumerable"
	CapabilityMintable                CapabilityName = "Mintable"
	CapabilityBatchMintable           CapabilityName = "BatchMintable"
	CapabilityBurnable                CapabilityName = "Burnable"
	CapabilityLazyMintable            CapabilityName = "LazyMintable"
	CapabilityClaimableWithConditions CapabilityName = "ClaimableWithConditions"
	CapabilitySignatureMintable       CapabilityName = "SignatureMintable"
	CapabilityRevealable              CapabilityName = "Revealable"
)

func (c CapabilityName) String() string {
	return string(c)
}

// SupportLevel is the ordered result of probing a contract for one
// capability: NONE < PARTIAL < FULL.
type SupportLevel int

const (
	SupportNone SupportLevel = iota
	SupportPartial
	SupportFull
)

func (s SupportLevel) String() string {
	switch s {
	case SupportFull:
		return "FULL"
	case SupportPartial:
		return "PARTIAL"
	default:
		return "NONE"
	}
}

// AtLeast reports whether s meets or exceeds the given level.
func (s SupportLevel) AtLeast(min SupportLevel) bool {
	return s >= min
}
