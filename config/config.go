package config

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mosaicdev/mosaic-registry/transact"
)

const (
	DefaultArtifactPath   = "MosaicRegistry.json"
	DefaultDeploymentFile = "deployment.json"
)

var ErrChainIDMismatch = errors.New("chain id mismatch")

// Config is the resolved configuration shared by the binaries.
type Config struct {
	Network Network

	// RPCURL overrides the network endpoint when set.
	RPCURL string

	ArtifactPath   string
	DeploymentFile string

	// Mirrors are record store URIs written after the deployment file.
	Mirrors []string

	// GasPrice replaces the preset price but keeps the preset's fixed or floor mode.
	GasPrice *big.Int

	ConfirmTimeout time.Duration

	RegistryAddress common.Address
}

// New returns a Config for the named network with defaults applied.
func New(network string) (*Config, error) {
	n, err := LookupNetwork(network)
	if err != nil {
		return nil, err
	}
	return &Config{
		Network:        n,
		ArtifactPath:   DefaultArtifactPath,
		DeploymentFile: DefaultDeploymentFile,
		ConfirmTimeout: transact.DefaultConfirmTimeout,
	}, nil
}

// Endpoint resolves the RPC endpoint: explicit RPCURL first, then the
// network's own environment variable, then the preset.
func (c *Config) Endpoint() string {
	if c.RPCURL != "" {
		return c.RPCURL
	}
	if c.Network.RPCEnv != "" {
		if url := strings.TrimSpace(os.Getenv(c.Network.RPCEnv)); url != "" {
			return url
		}
	}
	return c.Network.RPCURL
}

// GasPolicy returns the gas-price policy for transactions on this network.
func (c *Config) GasPolicy() transact.GasPricePolicy {
	policy := c.Network.GasPolicy
	if c.GasPrice != nil {
		policy.Min = new(big.Int).Set(c.GasPrice)
	}
	return policy
}

func (c *Config) Confirmer() transact.Confirmer {
	confirmer := transact.DefaultConfirmer
	confirmer.Timeout = c.ConfirmTimeout
	return confirmer
}

// Validate checks the configuration before anything touches the network.
func (c *Config) Validate() error {
	if c.Network.Name == "" || c.Network.ChainID == nil {
		return errors.New("no network configured")
	}
	if c.Endpoint() == "" {
		return fmt.Errorf("no RPC endpoint configured for network %s", c.Network.Name)
	}
	if c.ConfirmTimeout <= 0 {
		return fmt.Errorf("confirm timeout must be positive, got %s", c.ConfirmTimeout)
	}
	if c.GasPrice != nil && c.GasPrice.Sign() <= 0 {
		return errors.New("gas price must be positive")
	}
	policy := c.GasPolicy()
	if policy.Fixed && (policy.Min == nil || policy.Min.Sign() <= 0) {
		return fmt.Errorf("network %s needs a fixed gas price", c.Network.Name)
	}
	return nil
}

// ChainIDReader is satisfied by ethclient.Client and the simulated backend client.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// VerifyChainID fails when the dialled node serves a different chain than the preset.
func (c *Config) VerifyChainID(ctx context.Context, reader ChainIDReader) error {
	chainID, err := reader.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("could not read chain id: %w", transact.Classify(err))
	}
	if chainID.Cmp(c.Network.ChainID) != 0 {
		return fmt.Errorf("%w: network %s expects %s, endpoint serves %s", ErrChainIDMismatch, c.Network.Name, c.Network.ChainID, chainID)
	}
	return nil
}
