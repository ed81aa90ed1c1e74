// Package solana tracks printed-edition supply for master edition NFTs,
// whose prints are recorded in an on-chain bitfield ledger instead of a
// direct counter.
package solana

import (
	"context"

	"github.com/lumos-labs/chainkit/types"
)

const (
	// ledgerBytes is the width of one edition-marker bitmask.
	ledgerBytes = 31

	// Page 0 loses its first bit to an internal marker flag, so a full
	// first page tracks 247 editions and every later page 248.
	firstPageSkip = 1
)

// EditionLedger yields the packed bitmask of one edition-marker page.
// A nil page means the marker account does not exist (no editions reach
// that page).
type EditionLedger interface {
	Page(ctx context.Context, page uint64) ([]byte, error)
}

// CountSupply computes the total supply of a master edition: 1 for the
// original plus the number of printed editions.
//
// Editions are minted in contiguous, densely-packed order with no gaps, so
// the count is the number of set bits encountered walking the marker pages
// sequentially, MSB-first within each byte, stopping at the first unset bit.
// The walk starts after page 0's flag bit; a page that ends with every bit
// set continues onto the next page.
func CountSupply(ctx context.Context, ledger EditionLedger) (uint64, error) {
	var printed uint64

	for page := uint64(0); ; page++ {
		select {
		case <-ctx.Done():
			return 0, &types.AbortedError{Op: "edition ledger walk", Cause: ctx.Err()}
		default:
		}

		data, err := ledger.Page(ctx, page)
		if err != nil {
			return 0, err
		}
		if len(data) == 0 {
			break
		}

		start := 0
		if page == 0 {
			start = firstPageSkip
		}

		gap := false
		for i := start; i < len(data)*8; i++ {
			if data[i/8]&(1<<(7-uint(i)%8)) == 0 {
				gap = true
				break
			}
			printed++
		}
		if gap {
			break
		}
	}

	return 1 + printed, nil
}
