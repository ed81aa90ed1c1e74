package types

import (
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	_ = validate.RegisterValidation("decimal_amount", validateDecimalAmount)
}

func validateDecimalAmount(fl validator.FieldLevel) bool {
	dec, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !dec.IsNegative()
}

// ClaimCondition is one phase of a claimable drop: who may claim, how many,
// at what price, starting when.
type ClaimCondition struct {
	// StartTime is when this phase becomes active.
	StartTime time.Time `json:"startTime"`

	// MaxClaimableSupply caps the total claimable under this phase.
	// Empty means unlimited.
	MaxClaimableSupply string `json:"maxClaimableSupply,omitempty"`

	// QuantityLimitPerWallet caps claims per wallet. Empty means unlimited.
	QuantityLimitPerWallet string `json:"quantityLimitPerWallet,omitempty"`

	// Price per token in human-readable units of Currency.
	Price string `json:"price" validate:"required,decimal_amount"`

	// Currency is the ERC-20 address payment is taken in; the zero address
	// denotes the chain's native currency.
	Currency string `json:"currency" validate:"required"`

	// MerkleRoot restricts claiming to an allowlist when non-empty.
	MerkleRoot string `json:"merkleRoot,omitempty"`
}

// Validate checks a claim condition for well-formedness before it is
// submitted on chain.
func (c *ClaimCondition) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &SDKError{Code: ErrInvalidArgument, Message: fmt.Sprintf("invalid claim condition: %v", err)}
	}
	for _, q := range []string{c.MaxClaimableSupply, c.QuantityLimitPerWallet} {
		if q == "" {
			continue
		}
		if _, ok := new(big.Int).SetString(q, 10); !ok {
			return &SDKError{Code: ErrInvalidArgument, Message: fmt.Sprintf("invalid quantity %q", q)}
		}
	}
	return nil
}

// PriceDecimal returns the phase price as a decimal.
func (c *ClaimCondition) PriceDecimal() (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(c.Price)
	if err != nil {
		return decimal.Zero, &SDKError{Code: ErrInvalidArgument, Message: fmt.Sprintf("invalid price %q: %v", c.Price, err)}
	}
	return dec, nil
}

// ActiveAt reports whether the condition is live at the given instant.
func (c *ClaimCondition) ActiveAt(t time.Time) bool {
	return !c.StartTime.After(t)
}
