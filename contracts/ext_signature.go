package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lumos-labs/chainkit/types"
)

// MintRequest1155 is the signed-mint payload of ERC-1155 contracts. Field
// order matches the on-chain request tuple.
type MintRequest1155 struct {
	To                     common.Address
	RoyaltyRecipient       common.Address
	RoyaltyBps             *big.Int
	PrimarySaleRecipient   common.Address
	TokenId                *big.Int
	Uri                    string
	Quantity               *big.Int
	PricePerToken          *big.Int
	Currency               common.Address
	ValidityStartTimestamp *big.Int
	ValidityEndTimestamp   *big.Int
	Uid                    [32]byte
}

// MintRequest20 is the signed-mint payload of ERC-20 contracts.
type MintRequest20 struct {
	To                     common.Address
	PrimarySaleRecipient   common.Address
	Quantity               *big.Int
	Price                  *big.Int
	Currency               common.Address
	ValidityStartTimestamp *big.Int
	ValidityEndTimestamp   *big.Int
	Uid                    [32]byte
}

// SignatureMinter redeems mint payloads signed off chain by an authorized
// wallet. Signing itself is delegated to the caller (the SDK never holds
// keys); this handle packs and submits the redemption and offers local
// signature verification for ERC-721 requests.
type SignatureMinter struct {
	cc     *CallContext
	family types.StandardFamily
}

func newSignatureMinter(cc *CallContext, family types.StandardFamily) *SignatureMinter {
	return &SignatureMinter{cc: cc, family: family}
}

// Mint redeems a signed request. The request must be the family's request
// struct (MintRequest721, MintRequest1155 or MintRequest20); signature is
// the 65-byte EIP-712 signature over it.
func (s *SignatureMinter) Mint(ctx context.Context, request interface{}, signature []byte) (common.Hash, error) {
	if len(signature) != 65 {
		return common.Hash{}, &types.SDKError{Code: types.ErrInvalidArgument, Message: "signature must be 65 bytes"}
	}
	value := mintRequestValue(request)
	return s.cc.Send(ctx, "mintWithSignature", value, request, signature)
}

// Verify checks an ERC-721 request signature locally against the expected
// authorized signer, without submitting anything.
func (s *SignatureMinter) Verify(domain SignatureMintDomain, request MintRequest721, signature string, signer common.Address) (bool, error) {
	return VerifyTypedDataSignature(request.TypedData(domain), signature, signer)
}

// mintRequestValue computes the native-currency payment a redemption must
// carry.
func mintRequestValue(request interface{}) *big.Int {
	switch r := request.(type) {
	case MintRequest721:
		if r.Currency == NativeTokenAddress && r.Price != nil && r.Price.Sign() > 0 {
			return r.Price
		}
	case MintRequest1155:
		if r.Currency == NativeTokenAddress && r.PricePerToken != nil && r.PricePerToken.Sign() > 0 {
			return new(big.Int).Mul(r.PricePerToken, r.Quantity)
		}
	case MintRequest20:
		if r.Currency == NativeTokenAddress && r.Price != nil && r.Price.Sign() > 0 {
			return r.Price
		}
	}
	return nil
}
