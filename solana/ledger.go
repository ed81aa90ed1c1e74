package solana

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/lumos-labs/chainkit/types"
)

// TokenMetadataProgramID is the program owning metadata, master edition and
// edition marker accounts.
var TokenMetadataProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

// editionsPerPage is how many edition numbers one marker account covers.
const editionsPerPage = 248

// MasterEdition mirrors the master edition account layout.
type MasterEdition struct {
	Key       uint8
	Supply    uint64
	MaxSupply *uint64 `bin:"optional"`
}

// RPCEditionLedger reads edition-marker pages of one master edition mint
// over Solana RPC.
type RPCEditionLedger struct {
	client *rpc.Client
	mint   solana.PublicKey
}

func NewRPCEditionLedger(client *rpc.Client, mint solana.PublicKey) *RPCEditionLedger {
	return &RPCEditionLedger{client: client, mint: mint}
}

// Page fetches the bitmask of one marker page. Marker accounts are keyed by
// the first edition number they cover divided by the page width; an absent
// account means no edition has reached that page.
func (l *RPCEditionLedger) Page(ctx context.Context, page uint64) ([]byte, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{
			[]byte("metadata"),
			TokenMetadataProgramID.Bytes(),
			l.mint.Bytes(),
			[]byte("edition"),
			[]byte(strconv.FormatUint(page, 10)),
		},
		TokenMetadataProgramID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to derive edition marker address: %w", err)
	}

	out, err := l.client.GetAccountInfo(ctx, addr)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &types.AbortedError{Op: "edition marker fetch", Cause: err}
		}
		return nil, fmt.Errorf("failed to fetch edition marker %s: %w", addr, err)
	}

	data := out.Value.Data.GetBinary()
	// 1 key byte followed by the 31-byte ledger.
	if len(data) < 1+ledgerBytes {
		return nil, fmt.Errorf("edition marker %s truncated: %d bytes", addr, len(data))
	}
	return data[1 : 1+ledgerBytes], nil
}

// EditionClient answers supply queries for master edition NFTs on one
// Solana network.
type EditionClient struct {
	network types.Network
	client  *rpc.Client
}

func NewEditionClient(network types.Network, rpcURL string) (*EditionClient, error) {
	if !network.IsSolana() {
		return nil, &types.SDKError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("network %s is not a Solana network", network),
		}
	}
	return &EditionClient{network: network, client: rpc.New(rpcURL)}, nil
}

// Network returns the network this client is bound to.
func (c *EditionClient) Network() types.Network {
	return c.network
}

// Supply walks the mint's edition-marker ledger and returns total supply
// (original plus printed editions).
func (c *EditionClient) Supply(ctx context.Context, mint solana.PublicKey) (uint64, error) {
	return CountSupply(ctx, NewRPCEditionLedger(c.client, mint))
}

// MasterEditionAccount fetches and decodes the mint's master edition
// account.
func (c *EditionClient) MasterEditionAccount(ctx context.Context, mint solana.PublicKey) (*MasterEdition, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{
			[]byte("metadata"),
			TokenMetadataProgramID.Bytes(),
			mint.Bytes(),
			[]byte("edition"),
		},
		TokenMetadataProgramID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to derive master edition address: %w", err)
	}

	out, err := c.client.GetAccountInfo(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch master edition %s: %w", addr, err)
	}

	var edition MasterEdition
	dec := bin.NewBorshDecoder(out.Value.Data.GetBinary())
	if err := dec.Decode(&edition); err != nil {
		return nil, fmt.Errorf("failed to decode master edition: %w", err)
	}
	return &edition, nil
}
