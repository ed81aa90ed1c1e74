// Package chainkit is a multi-chain smart-contract SDK. It resolves a
// deployed contract's interface at runtime, detects which optional standard
// extensions the contract implements, and returns typed façades exposing
// only the capabilities that exist, with structured errors for the ones
// that don't.
package chainkit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/lumos-labs/chainkit/contracts"
	"github.com/lumos-labs/chainkit/logger"
	"github.com/lumos-labs/chainkit/metrics"
	"github.com/lumos-labs/chainkit/solana"
	"github.com/lumos-labs/chainkit/storage"
	"github.com/lumos-labs/chainkit/types"
	"github.com/lumos-labs/chainkit/utils"
)

const defaultTimeout = 30 * time.Second

// SDK is the entry point: a registry of per-network chain backends plus the
// shared logger, metrics and storage every contract façade is wired with.
//
// Swapping a network's sender (or backend) bumps the SDK's context
// generation: façades built before the swap refuse further use and must be
// re-fetched, so no handle ever mixes old and new signer contexts.
type SDK struct {
	log     logger.Logger
	metrics metrics.Recorder
	store   storage.Store
	timeout time.Duration

	generation atomic.Uint64

	mu             sync.RWMutex
	evmBackends    map[types.Network]contracts.CallBackend
	evmSenders     map[types.Network]contracts.TransactionSender
	editionClients map[types.Network]*solana.EditionClient
}

// New creates an SDK instance. Defaults: noop logger, noop metrics, no
// storage, 30s per-operation timeout.
func New(opts ...Option) *SDK {
	s := &SDK{
		log:            logger.NoopLogger{},
		metrics:        metrics.NoopRecorder{},
		timeout:        defaultTimeout,
		evmBackends:    make(map[types.Network]contracts.CallBackend),
		evmSenders:     make(map[types.Network]contracts.TransactionSender),
		editionClients: make(map[types.Network]*solana.EditionClient),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddNetwork dials the appropriate chain client for a network and registers
// it. Re-adding a network replaces its client and advances the context
// generation, exactly like SetBackend.
func (s *SDK) AddNetwork(network types.Network, rpcURL string) error {
	var existed bool

	switch network.Family() {
	case types.ChainEVM:
		client, err := ethclient.Dial(rpcURL)
		if err != nil {
			return fmt.Errorf("failed to connect to EVM RPC: %w", err)
		}
		s.mu.Lock()
		_, existed = s.evmBackends[network]
		s.evmBackends[network] = client
		s.mu.Unlock()

	case types.ChainSolana:
		client, err := solana.NewEditionClient(network, rpcURL)
		if err != nil {
			return err
		}
		s.mu.Lock()
		_, existed = s.editionClients[network]
		s.editionClients[network] = client
		s.mu.Unlock()
	}

	if existed {
		s.bumpGeneration(network)
	}

	s.log.Info("network added", map[string]any{"network": network.String()})
	return nil
}

// SetBackend registers an EVM read backend directly. Replacing an existing
// backend advances the context generation.
func (s *SDK) SetBackend(network types.Network, backend contracts.CallBackend) {
	s.mu.Lock()
	_, existed := s.evmBackends[network]
	s.evmBackends[network] = backend
	s.mu.Unlock()

	if existed {
		s.bumpGeneration(network)
	}
}

// SetSender installs the transaction submission service for a network.
// Any previously built façade for that network becomes stale.
func (s *SDK) SetSender(network types.Network, sender contracts.TransactionSender) {
	s.mu.Lock()
	s.evmSenders[network] = sender
	s.mu.Unlock()

	s.bumpGeneration(network)
}

func (s *SDK) bumpGeneration(network types.Network) {
	gen := s.generation.Add(1)
	s.log.Info("provider context replaced", map[string]any{
		"network":    network.String(),
		"generation": gen,
	})
}

// Generation reports the current provider/signer context generation.
func (s *SDK) Generation() uint64 {
	return s.generation.Load()
}

// GetERC721 resolves and binds an ERC-721 façade. abiJSON may be empty to
// auto-detect the contract's interface from its published metadata.
func (s *SDK) GetERC721(ctx context.Context, network types.Network, address string, abiJSON string) (*contracts.ERC721Contract, error) {
	cc, err := s.callContext(network, address)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return contracts.NewERC721(ctx, cc, abiJSON)
}

// GetERC1155 resolves and binds an ERC-1155 façade.
func (s *SDK) GetERC1155(ctx context.Context, network types.Network, address string, abiJSON string) (*contracts.ERC1155Contract, error) {
	cc, err := s.callContext(network, address)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return contracts.NewERC1155(ctx, cc, abiJSON)
}

// GetERC20 resolves and binds an ERC-20 façade.
func (s *SDK) GetERC20(ctx context.Context, network types.Network, address string, abiJSON string) (*contracts.ERC20Contract, error) {
	cc, err := s.callContext(network, address)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return contracts.NewERC20(ctx, cc, abiJSON)
}

// Editions returns the edition-supply client of a Solana network.
func (s *SDK) Editions(network types.Network) (*solana.EditionClient, error) {
	s.mu.RLock()
	client, ok := s.editionClients[network]
	s.mu.RUnlock()

	if !ok {
		return nil, &types.SDKError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("no Solana client registered for network %s", network),
		}
	}
	return client, nil
}

// callContext assembles the call plumbing a façade and its handles share,
// pinned to the current context generation.
func (s *SDK) callContext(network types.Network, address string) (*contracts.CallContext, error) {
	if err := utils.ValidateAddress(network, address); err != nil {
		return nil, &types.SDKError{Code: types.ErrInvalidArgument, Message: err.Error()}
	}

	s.mu.RLock()
	backend, ok := s.evmBackends[network]
	sender := s.evmSenders[network]
	s.mu.RUnlock()

	if !ok {
		return nil, &types.SDKError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("no backend registered for network %s; call AddNetwork first", network),
		}
	}

	cc := contracts.NewCallContext(network, common.HexToAddress(address), backend, s.generation.Load(), s.generation.Load)
	cc.Sender = sender
	cc.Storage = s.store
	cc.Log = logger.WithFields(s.log, map[string]any{"network": network.String()})
	cc.Metrics = s.metrics
	return cc, nil
}

func (s *SDK) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
