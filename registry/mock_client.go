package registry

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/transact"
)

// MockRegistryClient provides a simple in-memory implementation of the MosaicRegistry
// interface for testing purposes without requiring a blockchain connection.
// Ids are assigned sequentially from zero, as the contract does.
type MockRegistryClient struct {
	mutex      sync.RWMutex
	entries    []interfaces.DeploymentEntry
	byDeployer map[common.Address][]*big.Int
	events     []interfaces.DeploymentEvent
	deployer   common.Address
	canWrite   bool
	now        func() time.Time
}

// NewMockRegistryClient creates a new mock registry client with empty initial state.
// The client starts in a read-only state - call SetTransactOpts to enable RecordDeployment.
func NewMockRegistryClient() *MockRegistryClient {
	return &MockRegistryClient{
		byDeployer: make(map[common.Address][]*big.Int),
		now:        time.Now,
	}
}

// SetTransactOpts enables writes on the mock client. Entries recorded afterwards
// are attributed to deployer.
func (m *MockRegistryClient) SetTransactOpts(deployer common.Address) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.deployer = deployer
	m.canWrite = true
}

// ReadOnly reports whether SetTransactOpts has not been called yet.
func (m *MockRegistryClient) ReadOnly() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return !m.canWrite
}

// RecordDeployment appends an entry and returns its id.
func (m *MockRegistryClient) RecordDeployment(ctx context.Context, contractAddress common.Address, contractType string, sourceCode string) (*big.Int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.canWrite {
		return nil, ErrNoTransactOpts
	}

	id := big.NewInt(int64(len(m.entries)))
	m.entries = append(m.entries, interfaces.DeploymentEntry{
		ID:              id,
		ContractAddress: contractAddress,
		Deployer:        m.deployer,
		ContractType:    contractType,
		DeploymentTime:  m.now().UTC().Truncate(time.Second),
		SourceCodeHash:  SourceCodeHash(sourceCode),
	})
	m.byDeployer[m.deployer] = append(m.byDeployer[m.deployer], new(big.Int).Set(id))
	m.events = append(m.events, interfaces.DeploymentEvent{
		DeploymentID:    new(big.Int).Set(id),
		ContractAddress: contractAddress,
		Deployer:        m.deployer,
		ContractType:    contractType,
		BlockNumber:     uint64(len(m.entries)),
	})

	return new(big.Int).Set(id), nil
}

// GetContractData returns a copy of the entry, or a revert for unknown ids.
func (m *MockRegistryClient) GetContractData(ctx context.Context, deploymentID *big.Int) (*interfaces.DeploymentEntry, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if deploymentID == nil || deploymentID.Sign() < 0 || !deploymentID.IsInt64() || deploymentID.Int64() >= int64(len(m.entries)) {
		return nil, &transact.RevertError{Reason: "invalid deployment id"}
	}

	entry := m.entries[deploymentID.Int64()]
	entry.ID = new(big.Int).Set(entry.ID)
	return &entry, nil
}

// GetDeployerContracts returns the ids recorded by deployer in insertion order.
func (m *MockRegistryClient) GetDeployerContracts(ctx context.Context, deployer common.Address) ([]*big.Int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	// Return a copy to prevent modification of internal state
	ids := make([]*big.Int, 0, len(m.byDeployer[deployer]))
	for _, id := range m.byDeployer[deployer] {
		ids = append(ids, new(big.Int).Set(id))
	}
	return ids, nil
}

// GetTotalDeployments returns the number of recorded entries.
func (m *MockRegistryClient) GetTotalDeployments(ctx context.Context) (*big.Int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return big.NewInt(int64(len(m.entries))), nil
}

// DeploymentEvents returns the recorded notifications. Each entry is reported
// in its own block, numbered from one.
func (m *MockRegistryClient) DeploymentEvents(ctx context.Context, fromBlock uint64, deployers ...common.Address) ([]interfaces.DeploymentEvent, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var events []interfaces.DeploymentEvent
	for _, ev := range m.events {
		if ev.BlockNumber < fromBlock {
			continue
		}
		if len(deployers) > 0 && !containsAddress(deployers, ev.Deployer) {
			continue
		}
		ev.DeploymentID = new(big.Int).Set(ev.DeploymentID)
		events = append(events, ev)
	}
	return events, nil
}

func containsAddress(list []common.Address, addr common.Address) bool {
	for _, a := range list {
		if a == addr {
			return true
		}
	}
	return false
}

var (
	_ interfaces.MosaicRegistry    = (*MockRegistryClient)(nil)
	_ interfaces.DeploymentHistory = (*MockRegistryClient)(nil)
)
