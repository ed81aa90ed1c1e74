package contracts

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// SignatureMintDomain identifies the EIP-712 domain a signature-mint payload
// is signed under.
type SignatureMintDomain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// MintRequest721 is the payload an authorized wallet signs to allow a
// one-off ERC-721 mint. Field order matches the on-chain request tuple.
type MintRequest721 struct {
	To                     common.Address
	RoyaltyRecipient       common.Address
	RoyaltyBps             *big.Int
	PrimarySaleRecipient   common.Address
	Uri                    string
	Price                  *big.Int
	Currency               common.Address
	ValidityStartTimestamp *big.Int
	ValidityEndTimestamp   *big.Int
	Uid                    [32]byte
}

// TypedData renders the request as EIP-712 typed data for external signing.
func (r MintRequest721) TypedData(domain SignatureMintDomain) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"MintRequest": {
				{Name: "to", Type: "address"},
				{Name: "royaltyRecipient", Type: "address"},
				{Name: "royaltyBps", Type: "uint256"},
				{Name: "primarySaleRecipient", Type: "address"},
				{Name: "uri", Type: "string"},
				{Name: "price", Type: "uint256"},
				{Name: "currency", Type: "address"},
				{Name: "validityStartTimestamp", Type: "uint128"},
				{Name: "validityEndTimestamp", Type: "uint128"},
				{Name: "uid", Type: "bytes32"},
			},
		},
		PrimaryType: "MintRequest",
		Domain: apitypes.TypedDataDomain{
			Name:              domain.Name,
			Version:           domain.Version,
			ChainId:           (*math.HexOrDecimal256)(domain.ChainID),
			VerifyingContract: domain.VerifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"to":                     r.To.Hex(),
			"royaltyRecipient":       r.RoyaltyRecipient.Hex(),
			"royaltyBps":             r.RoyaltyBps,
			"primarySaleRecipient":   r.PrimarySaleRecipient.Hex(),
			"uri":                    r.Uri,
			"price":                  r.Price,
			"currency":               r.Currency.Hex(),
			"validityStartTimestamp": r.ValidityStartTimestamp,
			"validityEndTimestamp":   r.ValidityEndTimestamp,
			"uid":                    hexutil.Encode(r.Uid[:]),
		},
	}
}

// HashTypedData computes the EIP-712 digest of typed data.
func HashTypedData(typedData apitypes.TypedData) (common.Hash, error) {
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return common.BytesToHash(hash), nil
}

// VerifyTypedDataSignature verifies an EIP-712 signature against the
// expected signer.
func VerifyTypedDataSignature(typedData apitypes.TypedData, signature string, expectedSigner common.Address) (bool, error) {
	hash, err := HashTypedData(typedData)
	if err != nil {
		return false, err
	}
	recovered, err := RecoverAddressFromSignature(hash.Bytes(), signature)
	if err != nil {
		return false, err
	}
	return recovered == expectedSigner, nil
}

// RecoverAddressFromSignature recovers the Ethereum address that produced a
// 65-byte signature over the given hash.
func RecoverAddressFromSignature(hash []byte, signature string) (common.Address, error) {
	signature = strings.TrimPrefix(signature, "0x")

	sigBytes, err := hex.DecodeString(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to decode signature: %w", err)
	}

	if len(sigBytes) != 65 {
		return common.Address{}, fmt.Errorf("signature must be 65 bytes, got %d", len(sigBytes))
	}

	// Adjust recovery ID for Ethereum
	if sigBytes[64] >= 27 {
		sigBytes[64] -= 27
	}

	pubKey, err := crypto.SigToPub(hash, sigBytes)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}
