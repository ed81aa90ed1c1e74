package contracts

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lumos-labs/chainkit/metrics"
	"github.com/lumos-labs/chainkit/types"
)

var (
	transferEventTopic       = common.BytesToHash(crypto.Keccak256([]byte("Transfer(address,address,uint256)")))
	transferSingleEventTopic = common.BytesToHash(crypto.Keccak256([]byte("TransferSingle(address,address,address,uint256,uint256)")))
)

// ERC721Enumerable lists tokens and holdings. At FULL support it reads the
// contract's on-chain enumeration index; at PARTIAL support it falls back to
// a client-side Transfer-log scan, which is materially slower and flagged
// through Degraded(). The fallback honors context cancellation and fails
// with a distinguishable aborted condition.
type ERC721Enumerable struct {
	cc       *CallContext
	degraded bool
}

func newERC721Enumerable(cc *CallContext, degraded bool) *ERC721Enumerable {
	return &ERC721Enumerable{cc: cc, degraded: degraded}
}

// Degraded reports whether the handle operates on the log-scan fallback.
func (e *ERC721Enumerable) Degraded() bool {
	return e.degraded
}

// TotalCount returns the number of minted tokens.
func (e *ERC721Enumerable) TotalCount(ctx context.Context) (*big.Int, error) {
	out, err := e.cc.Call(ctx, "totalSupply")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// AllTokenIDs returns every minted token id.
func (e *ERC721Enumerable) AllTokenIDs(ctx context.Context) ([]*big.Int, error) {
	if e.degraded {
		owners, err := e.scanOwnership(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]*big.Int, 0, len(owners))
		for id := range owners {
			ids = append(ids, new(big.Int).SetBytes(common.HexToHash(id).Bytes()))
		}
		sortBigInts(ids)
		return ids, nil
	}

	total, err := e.TotalCount(ctx)
	if err != nil {
		return nil, err
	}
	if !total.IsInt64() {
		return nil, fmt.Errorf("token count %s is out of enumerable range", total)
	}
	ids := make([]*big.Int, 0, total.Int64())
	for i := int64(0); i < total.Int64(); i++ {
		out, err := e.cc.Call(ctx, "tokenByIndex", big.NewInt(i))
		if err != nil {
			return nil, err
		}
		ids = append(ids, out[0].(*big.Int))
	}
	return ids, nil
}

// OwnedTokenIDs returns the token ids currently held by owner.
func (e *ERC721Enumerable) OwnedTokenIDs(ctx context.Context, owner common.Address) ([]*big.Int, error) {
	if e.degraded {
		owners, err := e.scanOwnership(ctx)
		if err != nil {
			return nil, err
		}
		var ids []*big.Int
		for id, holder := range owners {
			if holder == owner {
				ids = append(ids, new(big.Int).SetBytes(common.HexToHash(id).Bytes()))
			}
		}
		sortBigInts(ids)
		return ids, nil
	}

	out, err := e.cc.Call(ctx, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	balance := out[0].(*big.Int)
	if !balance.IsInt64() {
		return nil, fmt.Errorf("balance %s is out of enumerable range", balance)
	}

	ids := make([]*big.Int, 0, balance.Int64())
	for i := int64(0); i < balance.Int64(); i++ {
		out, err := e.cc.Call(ctx, "tokenOfOwnerByIndex", owner, big.NewInt(i))
		if err != nil {
			return nil, err
		}
		ids = append(ids, out[0].(*big.Int))
	}
	return ids, nil
}

// scanOwnership replays all Transfer logs of the contract and materializes
// the current owner of every live token. Burned tokens (owner == zero
// address) are dropped.
func (e *ERC721Enumerable) scanOwnership(ctx context.Context) (map[string]common.Address, error) {
	start := time.Now()
	defer func() {
		e.cc.Metrics.ObserveLatency(metrics.OpLogScan, time.Since(start), map[string]string{"network": e.cc.Network.String()})
	}()

	logs, err := e.cc.Backend.FilterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{e.cc.Address},
		Topics:    [][]common.Hash{{transferEventTopic}},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &types.AbortedError{Op: "transfer log scan", Cause: err}
		}
		return nil, err
	}

	owners := make(map[string]common.Address)
	for _, lg := range logs {
		select {
		case <-ctx.Done():
			return nil, &types.AbortedError{Op: "transfer log scan", Cause: ctx.Err()}
		default:
		}
		if len(lg.Topics) < 4 {
			continue
		}
		to := common.BytesToAddress(lg.Topics[2].Bytes())
		tokenID := lg.Topics[3].Hex()
		if to == (common.Address{}) {
			delete(owners, tokenID)
			continue
		}
		owners[tokenID] = to
	}
	return owners, nil
}

// ERC1155Enumerable lists tokens of a multi-edition contract. FULL support
// walks nextTokenIdToMint; PARTIAL support scans TransferSingle logs for the
// set of token ids ever minted.
type ERC1155Enumerable struct {
	cc       *CallContext
	degraded bool
}

func newERC1155Enumerable(cc *CallContext, degraded bool) *ERC1155Enumerable {
	return &ERC1155Enumerable{cc: cc, degraded: degraded}
}

// Degraded reports whether the handle operates on the log-scan fallback.
func (e *ERC1155Enumerable) Degraded() bool {
	return e.degraded
}

// TotalSupply returns the circulating supply of one token id.
func (e *ERC1155Enumerable) TotalSupply(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	out, err := e.cc.Call(ctx, "totalSupply", tokenID)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// AllTokenIDs returns every token id the contract has minted.
func (e *ERC1155Enumerable) AllTokenIDs(ctx context.Context) ([]*big.Int, error) {
	if e.degraded {
		return e.scanTokenIDs(ctx)
	}

	out, err := e.cc.Call(ctx, "nextTokenIdToMint")
	if err != nil {
		return nil, err
	}
	next := out[0].(*big.Int)
	if !next.IsInt64() {
		return nil, fmt.Errorf("token count %s is out of enumerable range", next)
	}

	ids := make([]*big.Int, 0, next.Int64())
	for i := int64(0); i < next.Int64(); i++ {
		ids = append(ids, big.NewInt(i))
	}
	return ids, nil
}

func (e *ERC1155Enumerable) scanTokenIDs(ctx context.Context) ([]*big.Int, error) {
	start := time.Now()
	defer func() {
		e.cc.Metrics.ObserveLatency(metrics.OpLogScan, time.Since(start), map[string]string{"network": e.cc.Network.String()})
	}()

	logs, err := e.cc.Backend.FilterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{e.cc.Address},
		Topics:    [][]common.Hash{{transferSingleEventTopic}},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &types.AbortedError{Op: "transfer log scan", Cause: err}
		}
		return nil, err
	}

	seen := make(map[string]*big.Int)
	for _, lg := range logs {
		select {
		case <-ctx.Done():
			return nil, &types.AbortedError{Op: "transfer log scan", Cause: ctx.Err()}
		default:
		}
		// TransferSingle carries id and value in the data segment.
		if len(lg.Data) < 32 {
			continue
		}
		id := new(big.Int).SetBytes(lg.Data[:32])
		seen[id.String()] = id
	}

	ids := make([]*big.Int, 0, len(seen))
	for _, id := range seen {
		ids = append(ids, id)
	}
	sortBigInts(ids)
	return ids, nil
}

func sortBigInts(ids []*big.Int) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Cmp(ids[j]) < 0 })
}
