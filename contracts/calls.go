package contracts

import (
	"context"
	"fmt"
	"math/big"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/lumos-labs/chainkit/logger"
	"github.com/lumos-labs/chainkit/metrics"
	"github.com/lumos-labs/chainkit/storage"
	"github.com/lumos-labs/chainkit/types"
)

// CallBackend is the read-side boundary to an EVM node. Satisfied by
// *ethclient.Client.
type CallBackend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]ethtypes.Log, error)
}

// TransactionSender is the write-side boundary: an opaque transaction
// submission service (signing, gas, nonce management all live behind it).
type TransactionSender interface {
	SendCall(ctx context.Context, to common.Address, calldata []byte, value *big.Int) (common.Hash, error)
}

// CallContext is the contract-call plumbing shared by a façade and every
// capability handle built for it. Handles hold a non-owning reference; the
// façade owns its handles. A context is pinned to the provider/signer
// generation it was built under and is never mutated after construction;
// when the active generation moves on, the whole façade is rebuilt.
type CallContext struct {
	Network types.Network
	Address common.Address
	ABI     abi.ABI
	Backend CallBackend
	Sender  TransactionSender
	Storage storage.Store
	Log     logger.Logger
	Metrics metrics.Recorder

	generation uint64
	liveGen    func() uint64
}

// NewCallContext pins the plumbing to the current context generation.
// liveGen reports the active generation; nil pins the context forever fresh
// (useful for tests and single-signer programs).
func NewCallContext(network types.Network, address common.Address, backend CallBackend, generation uint64, liveGen func() uint64) *CallContext {
	return &CallContext{
		Network:    network,
		Address:    address,
		Backend:    backend,
		Log:        logger.NoopLogger{},
		Metrics:    metrics.NoopRecorder{},
		generation: generation,
		liveGen:    liveGen,
	}
}

// Generation reports the context generation this plumbing was built under.
func (cc *CallContext) Generation() uint64 {
	return cc.generation
}

// Stale reports whether the provider/signer context has been replaced since
// this plumbing was built.
func (cc *CallContext) Stale() bool {
	if cc.liveGen == nil {
		return false
	}
	return cc.liveGen() != cc.generation
}

func (cc *CallContext) currentGeneration() uint64 {
	if cc.liveGen == nil {
		return cc.generation
	}
	return cc.liveGen()
}

// Call packs a read-only method call, executes it against the backend and
// unpacks the results.
func (cc *CallContext) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	calldata, err := cc.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	start := time.Now()
	raw, err := cc.Backend.CallContract(ctx, ethereum.CallMsg{To: &cc.Address, Data: calldata}, nil)
	cc.Metrics.ObserveLatency(metrics.OpContractCall, time.Since(start), map[string]string{"network": cc.Network.String()})
	if err != nil {
		return nil, fmt.Errorf("call %s on %s failed: %w", method, cc.Address.Hex(), err)
	}

	out, err := cc.ABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return out, nil
}

// Send packs a state-changing method call and submits it through the
// transaction sender.
func (cc *CallContext) Send(ctx context.Context, method string, value *big.Int, args ...interface{}) (common.Hash, error) {
	if cc.Sender == nil {
		return common.Hash{}, &types.SDKError{
			Code:    types.ErrInvalidArgument,
			Message: fmt.Sprintf("no transaction sender configured for network %s", cc.Network),
		}
	}

	calldata, err := cc.ABI.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	return cc.Sender.SendCall(ctx, cc.Address, calldata, value)
}

// SendRaw submits pre-packed calldata (used by multicall batching).
func (cc *CallContext) SendRaw(ctx context.Context, calldata []byte, value *big.Int) (common.Hash, error) {
	if cc.Sender == nil {
		return common.Hash{}, &types.SDKError{
			Code:    types.ErrInvalidArgument,
			Message: fmt.Sprintf("no transaction sender configured for network %s", cc.Network),
		}
	}
	return cc.Sender.SendCall(ctx, cc.Address, calldata, value)
}

// Pack encodes calldata without submitting it.
func (cc *CallContext) Pack(method string, args ...interface{}) ([]byte, error) {
	return cc.ABI.Pack(method, args...)
}
