package contracts

import (
	"encoding/hex"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Selector is the stable 4-byte identifier of one function in a contract's
// interface, derived from its canonical signature.
type Selector [4]byte

// SelectorOf computes the selector of a canonical signature,
// e.g. SelectorOf("balanceOf(address)").
func SelectorOf(signature string) Selector {
	var sel Selector
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

func (s Selector) Hex() string {
	return "0x" + hex.EncodeToString(s[:])
}

// InterfaceDescriptor is the content-derived set of function selectors
// supported by one deployed contract instance. Immutable once fetched and
// cached for the lifetime of the contract handle; it also records the
// provider/signer context generation it was fetched under.
type InterfaceDescriptor struct {
	address    common.Address
	selectors  map[Selector]struct{}
	generation uint64
}

// NewInterfaceDescriptor builds a descriptor from an explicit selector set.
func NewInterfaceDescriptor(address common.Address, selectors []Selector, generation uint64) *InterfaceDescriptor {
	set := make(map[Selector]struct{}, len(selectors))
	for _, sel := range selectors {
		set[sel] = struct{}{}
	}
	return &InterfaceDescriptor{address: address, selectors: set, generation: generation}
}

// DescriptorFromABI derives a descriptor from a parsed contract ABI.
func DescriptorFromABI(address common.Address, contractABI abi.ABI, generation uint64) *InterfaceDescriptor {
	set := make(map[Selector]struct{}, len(contractABI.Methods))
	for _, method := range contractABI.Methods {
		var sel Selector
		copy(sel[:], method.ID)
		set[sel] = struct{}{}
	}
	return &InterfaceDescriptor{address: address, selectors: set, generation: generation}
}

func (d *InterfaceDescriptor) Address() common.Address {
	return d.address
}

// Generation reports the context generation the descriptor was fetched under.
func (d *InterfaceDescriptor) Generation() uint64 {
	return d.generation
}

// Supports reports whether the contract exposes the given selector.
func (d *InterfaceDescriptor) Supports(sel Selector) bool {
	_, ok := d.selectors[sel]
	return ok
}

// SupportsAll reports whether every selector in the list is present.
func (d *InterfaceDescriptor) SupportsAll(sels []Selector) bool {
	for _, sel := range sels {
		if !d.Supports(sel) {
			return false
		}
	}
	return true
}

// Selectors returns the selector set in stable sorted order.
func (d *InterfaceDescriptor) Selectors() []Selector {
	out := make([]Selector, 0, len(d.selectors))
	for sel := range d.selectors {
		out = append(out, sel)
	}
	sort.Slice(out, func(i, j int) bool {
		return string(out[i][:]) < string(out[j][:])
	})
	return out
}

func (d *InterfaceDescriptor) Len() int {
	return len(d.selectors)
}
