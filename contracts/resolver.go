package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/lumos-labs/chainkit/metrics"
	"github.com/lumos-labs/chainkit/types"
)

// contractURI() is the published-metadata entry point probed during
// auto-detection.
var contractURISelector = SelectorOf("contractURI()")

// publishedMetadata is the shape of the document a contract's metadata URI
// resolves to. Only the ABI is consumed here.
type publishedMetadata struct {
	Name   string          `json:"name"`
	ABI    json.RawMessage `json:"abi"`
	Output struct {
		ABI json.RawMessage `json:"abi"`
	} `json:"output"`
}

// ResolveDescriptor materializes the interface descriptor of the contract a
// CallContext points at, either from an explicit ABI JSON document or by
// auto-detecting the contract's published metadata on chain. On success the
// parsed ABI is installed on the CallContext.
//
// Resolution failures are returned as DescriptorFetchError wrapping the RPC
// or storage cause; no retry is attempted here.
func ResolveDescriptor(ctx context.Context, cc *CallContext, abiJSON string) (*InterfaceDescriptor, error) {
	start := time.Now()
	defer func() {
		cc.Metrics.ObserveLatency(metrics.OpResolveDescriptor, time.Since(start), map[string]string{"network": cc.Network.String()})
	}()

	if abiJSON != "" {
		parsed, err := abi.JSON(strings.NewReader(abiJSON))
		if err != nil {
			return nil, &types.SDKError{Code: types.ErrInvalidABI, Message: fmt.Sprintf("failed to parse ABI: %v", err)}
		}
		cc.ABI = parsed
		return DescriptorFromABI(cc.Address, parsed, cc.Generation()), nil
	}

	raw, err := cc.Backend.CallContract(ctx, ethereum.CallMsg{To: &cc.Address, Data: contractURISelector[:]}, nil)
	if err != nil {
		return nil, &types.DescriptorFetchError{Address: cc.Address.Hex(), Cause: err}
	}

	uri, err := unpackString(raw)
	if err != nil {
		return nil, &types.DescriptorFetchError{
			Address: cc.Address.Hex(),
			Cause:   fmt.Errorf("contract did not publish a metadata URI: %w", err),
		}
	}

	if cc.Storage == nil {
		return nil, &types.DescriptorFetchError{
			Address: cc.Address.Hex(),
			Cause:   fmt.Errorf("no storage configured to fetch published metadata %s", uri),
		}
	}

	var meta publishedMetadata
	if err := cc.Storage.Fetch(ctx, uri, &meta); err != nil {
		return nil, &types.DescriptorFetchError{Address: cc.Address.Hex(), Cause: err}
	}

	abiDoc := meta.ABI
	if len(abiDoc) == 0 {
		abiDoc = meta.Output.ABI
	}
	if len(abiDoc) == 0 {
		return nil, &types.DescriptorFetchError{
			Address: cc.Address.Hex(),
			Cause:   fmt.Errorf("published metadata %s carries no ABI", uri),
		}
	}

	parsed, err := abi.JSON(strings.NewReader(string(abiDoc)))
	if err != nil {
		return nil, &types.DescriptorFetchError{
			Address: cc.Address.Hex(),
			Cause:   fmt.Errorf("published ABI is invalid: %w", err),
		}
	}
	cc.ABI = parsed
	return DescriptorFromABI(cc.Address, parsed, cc.Generation()), nil
}

var stringABIArgs = abi.Arguments{{Type: mustABIType("string")}}

func unpackString(raw []byte) (string, error) {
	vals, err := stringABIArgs.Unpack(raw)
	if err != nil {
		return "", err
	}
	s, ok := vals[0].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("empty string result")
	}
	return s, nil
}

func mustABIType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("contracts: bad abi type %q: %v", t, err))
	}
	return typ
}
