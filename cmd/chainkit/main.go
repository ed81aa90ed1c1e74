// Command chainkit inspects deployed contracts: it resolves a contract's
// interface, probes which optional extensions it implements and prints the
// support table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	chainkit "github.com/lumos-labs/chainkit"
	"github.com/lumos-labs/chainkit/contracts"
	"github.com/lumos-labs/chainkit/logger"
	"github.com/lumos-labs/chainkit/types"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "detect":
		if err := runDetect(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: chainkit detect -rpc URL -address 0x... [-abi FILE] [-family erc721|erc1155|erc20] [-network NAME] [-v]`)
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	rpcURL := fs.String("rpc", "", "EVM RPC endpoint")
	address := fs.String("address", "", "contract address")
	abiPath := fs.String("abi", "", "path to an explicit ABI JSON file (omit to auto-detect)")
	family := fs.String("family", "erc721", "standard family: erc721, erc1155 or erc20")
	network := fs.String("network", string(types.NetworkLocalhost), "network name for logging")
	verbose := fs.Bool("v", false, "debug logging")
	timeout := fs.Duration("timeout", 30*time.Second, "resolution timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rpcURL == "" || *address == "" {
		return fmt.Errorf("-rpc and -address are required")
	}

	abiJSON := ""
	if *abiPath != "" {
		data, err := os.ReadFile(*abiPath)
		if err != nil {
			return fmt.Errorf("failed to read ABI file: %w", err)
		}
		abiJSON = string(data)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}

	sdk := chainkit.New(
		chainkit.WithLogger(logger.NewZapLogger(level)),
		chainkit.WithTimeout(*timeout),
	)

	net := types.Network(*network)
	if err := sdk.AddNetwork(net, *rpcURL); err != nil {
		return err
	}

	ctx := context.Background()

	var statuses []contracts.CapabilityStatus
	switch *family {
	case "erc721":
		c, err := sdk.GetERC721(ctx, net, *address, abiJSON)
		if err != nil {
			return err
		}
		statuses = c.Capabilities()
	case "erc1155":
		c, err := sdk.GetERC1155(ctx, net, *address, abiJSON)
		if err != nil {
			return err
		}
		statuses = c.Capabilities()
	case "erc20":
		c, err := sdk.GetERC20(ctx, net, *address, abiJSON)
		if err != nil {
			return err
		}
		statuses = c.Capabilities()
	default:
		return fmt.Errorf("unknown family %q", *family)
	}

	printTable(os.Stdout, *address, *family, statuses)
	return nil
}

func printTable(w io.Writer, address, family string, statuses []contracts.CapabilityStatus) {
	fmt.Fprintf(w, "contract %s (%s)\n\n", address, family)
	fmt.Fprintf(w, "%-26s %-8s %s\n", "CAPABILITY", "LEVEL", "INTERFACE")
	for _, st := range statuses {
		fmt.Fprintf(w, "%-26s %-8s %s\n", st.Name, st.Level, st.Interface)
	}
}
