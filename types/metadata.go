package types

import "encoding/json"

// NFTMetadata is the off-chain metadata document associated with a token.
// Shape follows the common ERC-721/ERC-1155 metadata JSON schema.
type NFTMetadata struct {
	Name            string          `json:"name,omitempty"`
	Description     string          `json:"description,omitempty"`
	Image           string          `json:"image,omitempty"`
	ExternalURL     string          `json:"external_url,omitempty"`
	AnimationURL    string          `json:"animation_url,omitempty"`
	BackgroundColor string          `json:"background_color,omitempty"`
	Attributes      []NFTAttribute  `json:"attributes,omitempty"`
	Properties      json.RawMessage `json:"properties,omitempty"`
}

// NFTAttribute is a single trait entry in token metadata.
type NFTAttribute struct {
	TraitType string      `json:"trait_type,omitempty"`
	Value     interface{} `json:"value"`
}

// NFT pairs an on-chain token id with its resolved metadata.
type NFT struct {
	TokenID  string      `json:"tokenId"`
	Owner    string      `json:"owner,omitempty"`
	URI      string      `json:"uri,omitempty"`
	Supply   string      `json:"supply,omitempty"` // ERC-1155 only
	Metadata NFTMetadata `json:"metadata"`
}
