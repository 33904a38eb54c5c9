package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TimestampLayout is the ISO-8601 layout used for deployment record timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DeploymentRecord describes a single registry deployment on one network.
// It is persisted as deployment.json and overwritten on every redeploy.
type DeploymentRecord struct {
	Network   string
	Address   common.Address
	Timestamp time.Time
	Deployer  common.Address
	ChainID   *big.Int
	TxHash    common.Hash
}

type deploymentRecordJSON struct {
	Network   string `json:"network"`
	Address   string `json:"address"`
	Timestamp string `json:"timestamp"`
	Deployer  string `json:"deployer,omitempty"`
	ChainID   string `json:"chainId,omitempty"`
	TxHash    string `json:"txHash,omitempty"`
}

// MarshalJSON encodes the record with checksummed addresses and an ISO-8601 UTC timestamp.
func (r DeploymentRecord) MarshalJSON() ([]byte, error) {
	enc := deploymentRecordJSON{
		Network:   r.Network,
		Address:   r.Address.Hex(),
		Timestamp: r.Timestamp.UTC().Format(TimestampLayout),
	}
	if r.Deployer != (common.Address{}) {
		enc.Deployer = r.Deployer.Hex()
	}
	if r.ChainID != nil {
		enc.ChainID = r.ChainID.String()
	}
	if r.TxHash != (common.Hash{}) {
		enc.TxHash = r.TxHash.Hex()
	}
	return json.Marshal(enc)
}

// UnmarshalJSON decodes a record written by MarshalJSON. Only network, address
// and timestamp are required.
func (r *DeploymentRecord) UnmarshalJSON(data []byte) error {
	var dec deploymentRecordJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}

	if !common.IsHexAddress(dec.Address) {
		return fmt.Errorf("invalid deployment address %q", dec.Address)
	}
	ts, err := time.Parse(time.RFC3339Nano, dec.Timestamp)
	if err != nil {
		return fmt.Errorf("invalid deployment timestamp %q: %w", dec.Timestamp, err)
	}

	*r = DeploymentRecord{
		Network:   dec.Network,
		Address:   common.HexToAddress(dec.Address),
		Timestamp: ts.UTC(),
	}

	if dec.Deployer != "" {
		if !common.IsHexAddress(dec.Deployer) {
			return fmt.Errorf("invalid deployer address %q", dec.Deployer)
		}
		r.Deployer = common.HexToAddress(dec.Deployer)
	}
	if dec.ChainID != "" {
		chainID, ok := new(big.Int).SetString(dec.ChainID, 10)
		if !ok {
			return fmt.Errorf("invalid chain id %q", dec.ChainID)
		}
		r.ChainID = chainID
	}
	if dec.TxHash != "" {
		raw, err := hexutil.Decode(dec.TxHash)
		if err != nil || len(raw) != common.HashLength {
			return fmt.Errorf("invalid transaction hash %q", dec.TxHash)
		}
		r.TxHash = common.BytesToHash(raw)
	}
	return nil
}

// DeploymentEntry is a registry entry as stored on-chain.
type DeploymentEntry struct {
	ID              *big.Int       `json:"id"`
	ContractAddress common.Address `json:"contractAddress"`
	Deployer        common.Address `json:"deployer"`
	ContractType    string         `json:"contractType"`
	DeploymentTime  time.Time      `json:"deploymentTime"`
	SourceCodeHash  common.Hash    `json:"sourceCodeHash"`
	Verified        bool           `json:"verified"`
}

// DeploymentEvent is a ContractDeployed notification observed in a block.
type DeploymentEvent struct {
	DeploymentID    *big.Int       `json:"deploymentId"`
	ContractAddress common.Address `json:"contractAddress"`
	Deployer        common.Address `json:"deployer"`
	ContractType    string         `json:"contractType"`
	BlockNumber     uint64         `json:"blockNumber"`
	TxHash          common.Hash    `json:"txHash"`
}

// ParseDeploymentID parses a deployment identifier given either in decimal or as 0x-prefixed hex.
func ParseDeploymentID(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty deployment id")
	}

	id, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid deployment id %q", s)
	}
	if id.Sign() < 0 || id.BitLen() > 256 {
		return nil, fmt.Errorf("deployment id %q out of uint256 range", s)
	}
	return id, nil
}

// ParseAddress parses a 20-byte hex address with or without the 0x prefix.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}
