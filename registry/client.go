package registry

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/mosaicdev/mosaic-registry/bindings/mosaicregistry"
	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/transact"
)

// ErrNoTransactOpts is returned when a transaction is attempted without first setting transaction options.
var ErrNoTransactOpts = transact.ErrNoTransactOpts

// MosaicRegistryClient implements interfaces.MosaicRegistry and
// interfaces.DeploymentHistory for a MosaicRegistry contract deployed at a
// fixed address.
type MosaicRegistryClient struct {
	contract  *mosaicregistry.MosaicRegistry
	client    bind.ContractBackend
	backend   bind.DeployBackend
	address   common.Address
	auth      *bind.TransactOpts
	gasPolicy transact.GasPricePolicy
	confirmer transact.Confirmer
}

// NewMosaicRegistryClient creates a new client for interacting with the MosaicRegistry contract
// at the specified address. It requires a ContractBackend for reading from the blockchain
// and a DeployBackend for waiting on transactions.
func NewMosaicRegistryClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) (*MosaicRegistryClient, error) {
	contract, err := mosaicregistry.NewMosaicRegistry(address, client)
	if err != nil {
		return nil, err
	}

	return &MosaicRegistryClient{
		contract:  contract,
		client:    client,
		backend:   backend,
		address:   address,
		gasPolicy: transact.MinGasPrice(nil),
		confirmer: transact.DefaultConfirmer,
	}, nil
}

// SetTransactOpts sets the transaction options required for RecordDeployment.
// A client without transact options is read-only.
func (c *MosaicRegistryClient) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// SetGasPricePolicy overrides the default policy of paying the node's suggested gas price.
func (c *MosaicRegistryClient) SetGasPricePolicy(policy transact.GasPricePolicy) {
	c.gasPolicy = policy
}

// SetConfirmer overrides how long RecordDeployment waits for inclusion.
func (c *MosaicRegistryClient) SetConfirmer(confirmer transact.Confirmer) {
	c.confirmer = confirmer
}

// Address returns the registry contract address.
func (c *MosaicRegistryClient) Address() common.Address {
	return c.address
}

// ReadOnly reports whether the client has no signer.
func (c *MosaicRegistryClient) ReadOnly() bool {
	return c.auth == nil
}

// SourceCodeHash returns the keccak256 digest of the UTF-8 encoded source,
// the fingerprint stored with every registry entry.
func SourceCodeHash(sourceCode string) common.Hash {
	return crypto.Keccak256Hash([]byte(sourceCode))
}

// RecordDeployment submits recordDeployment, waits for the transaction to be
// confirmed and returns the deploymentId carried by the ContractDeployed event.
func (c *MosaicRegistryClient) RecordDeployment(ctx context.Context, contractAddress common.Address, contractType string, sourceCode string) (*big.Int, error) {
	if c.auth == nil {
		return nil, ErrNoTransactOpts
	}

	opts, err := c.gasPolicy.Apply(ctx, c.auth, c.client)
	if err != nil {
		return nil, err
	}

	tx, err := c.contract.RecordDeployment(opts, contractAddress, contractType, SourceCodeHash(sourceCode))
	if err != nil {
		return nil, fmt.Errorf("recordDeployment: %w", transact.Classify(err))
	}

	receipt, err := c.confirmer.Confirm(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("recordDeployment: %w", err)
	}

	event, err := transact.FindEvent(receipt, c.address, c.contract.ParseContractDeployed)
	if err != nil {
		return nil, fmt.Errorf("recordDeployment: %w", err)
	}
	return event.DeploymentId, nil
}

// GetContractData retrieves the registry entry for deploymentID. Unknown ids
// fail with transact.ErrExecutionReverted.
func (c *MosaicRegistryClient) GetContractData(ctx context.Context, deploymentID *big.Int) (*interfaces.DeploymentEntry, error) {
	if deploymentID == nil {
		return nil, fmt.Errorf("getContractData: nil deployment id")
	}

	data, err := c.contract.GetContractData(&bind.CallOpts{Context: ctx}, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("getContractData(%s): %w", deploymentID, transact.Classify(err))
	}

	entry := &interfaces.DeploymentEntry{
		ID:              new(big.Int).Set(deploymentID),
		ContractAddress: data.ContractAddress,
		Deployer:        data.Deployer,
		ContractType:    data.ContractType,
		SourceCodeHash:  data.SourceCodeHash,
		Verified:        data.Verified,
	}
	if data.DeploymentTime != nil && data.DeploymentTime.IsInt64() {
		entry.DeploymentTime = time.Unix(data.DeploymentTime.Int64(), 0).UTC()
	}
	return entry, nil
}

// GetDeployerContracts returns the ids of the entries recorded by deployer, in ledger order.
func (c *MosaicRegistryClient) GetDeployerContracts(ctx context.Context, deployer common.Address) ([]*big.Int, error) {
	ids, err := c.contract.GetDeployerContracts(&bind.CallOpts{Context: ctx}, deployer)
	if err != nil {
		return nil, fmt.Errorf("getDeployerContracts(%s): %w", deployer.Hex(), transact.Classify(err))
	}
	return ids, nil
}

// GetTotalDeployments returns the number of entries recorded so far.
func (c *MosaicRegistryClient) GetTotalDeployments(ctx context.Context) (*big.Int, error) {
	total, err := c.contract.TotalDeployments(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, fmt.Errorf("totalDeployments: %w", transact.Classify(err))
	}
	return total, nil
}

// DeploymentEvents returns the ContractDeployed notifications emitted since
// fromBlock, optionally restricted to the given deployers.
func (c *MosaicRegistryClient) DeploymentEvents(ctx context.Context, fromBlock uint64, deployers ...common.Address) ([]interfaces.DeploymentEvent, error) {
	it, err := c.contract.FilterContractDeployed(&bind.FilterOpts{Start: fromBlock, Context: ctx}, nil, nil, deployers)
	if err != nil {
		return nil, fmt.Errorf("filter ContractDeployed: %w", transact.Classify(err))
	}
	defer it.Close()

	var events []interfaces.DeploymentEvent
	for it.Next() {
		events = append(events, interfaces.DeploymentEvent{
			DeploymentID:    it.Event.DeploymentId,
			ContractAddress: it.Event.ContractAddress,
			Deployer:        it.Event.Deployer,
			ContractType:    it.Event.ContractType,
			BlockNumber:     it.Event.Raw.BlockNumber,
			TxHash:          it.Event.Raw.TxHash,
		})
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("filter ContractDeployed: %w", transact.Classify(err))
	}
	return events, nil
}

var (
	_ interfaces.MosaicRegistry    = (*MosaicRegistryClient)(nil)
	_ interfaces.DeploymentHistory = (*MosaicRegistryClient)(nil)
)
