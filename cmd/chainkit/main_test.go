package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumos-labs/chainkit/contracts"
	"github.com/lumos-labs/chainkit/types"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, "0xabc", "erc721", []contracts.CapabilityStatus{
		{Name: types.CapabilityEnumerable, Level: types.SupportPartial, Interface: "IERC721Enumerable"},
		{Name: types.CapabilityMintable, Level: types.SupportFull, Interface: "IMintableERC721"},
		{Name: types.CapabilityBurnable, Level: types.SupportNone, Interface: "IBurnableERC721"},
	})

	out := buf.String()
	assert.Contains(t, out, "contract 0xabc (erc721)")
	assert.Contains(t, out, "CAPABILITY")
	assert.Contains(t, out, "Enumerable")
	assert.Contains(t, out, "PARTIAL")
	assert.Contains(t, out, "IMintableERC721")
	assert.Contains(t, out, "NONE")
}
