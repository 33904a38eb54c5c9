package config

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/mosaicdev/mosaic-registry/transact"
)

// DefaultNetwork is used when NETWORK is not set.
const DefaultNetwork = "mantle-sepolia"

// mantleGasPrice is the price Mantle recommends for every transaction (0.02 gwei).
var mantleGasPrice = big.NewInt(20_000_000)

// Network is a named chain preset.
type Network struct {
	Name    string
	ChainID *big.Int

	// RPCURL is the endpoint used when no override is configured.
	RPCURL string

	// RPCEnv names the network-specific environment variable that overrides RPCURL.
	RPCEnv string

	GasPolicy transact.GasPricePolicy
}

var networks = map[string]Network{
	"mantle-sepolia": {
		Name:      "mantle-sepolia",
		ChainID:   big.NewInt(5003),
		RPCURL:    "https://rpc.sepolia.mantle.xyz",
		RPCEnv:    "MANTLE_SEPOLIA_RPC",
		GasPolicy: transact.FixedGasPrice(mantleGasPrice),
	},
	"mantle": {
		Name:      "mantle",
		ChainID:   big.NewInt(5000),
		RPCURL:    "https://rpc.mantle.xyz",
		RPCEnv:    "MANTLE_RPC",
		GasPolicy: transact.FixedGasPrice(mantleGasPrice),
	},
	"localhost": {
		Name:      "localhost",
		ChainID:   big.NewInt(31337),
		RPCURL:    "http://127.0.0.1:8545",
		RPCEnv:    "LOCALHOST_RPC",
		GasPolicy: transact.MinGasPrice(nil),
	},
}

// LookupNetwork returns the preset registered under name. Lookup is case-insensitive
// and accepts the camel-cased Hardhat names (mantleSepolia).
func LookupNetwork(name string) (Network, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultNetwork
	}
	if key == "mantlesepolia" {
		key = "mantle-sepolia"
	}

	n, ok := networks[key]
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q, expected one of %s", name, strings.Join(NetworkNames(), ", "))
	}
	n.ChainID = new(big.Int).Set(n.ChainID)
	return n, nil
}

// NetworkNames lists the known presets in alphabetical order.
func NetworkNames() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
