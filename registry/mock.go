package registry

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockRegistry mocks the MosaicRegistry and DeploymentHistory interfaces
type MockRegistry struct {
	mock.Mock
}

// RecordDeployment mocks the RecordDeployment method
func (m *MockRegistry) RecordDeployment(ctx context.Context, contractAddress common.Address, contractType string, sourceCode string) (*big.Int, error) {
	args := m.Called(ctx, contractAddress, contractType, sourceCode)
	id, _ := args.Get(0).(*big.Int)
	return id, args.Error(1)
}

// GetContractData mocks the GetContractData method
func (m *MockRegistry) GetContractData(ctx context.Context, deploymentID *big.Int) (*interfaces.DeploymentEntry, error) {
	args := m.Called(ctx, deploymentID)
	entry, _ := args.Get(0).(*interfaces.DeploymentEntry)
	return entry, args.Error(1)
}

// GetDeployerContracts mocks the GetDeployerContracts method
func (m *MockRegistry) GetDeployerContracts(ctx context.Context, deployer common.Address) ([]*big.Int, error) {
	args := m.Called(ctx, deployer)
	ids, _ := args.Get(0).([]*big.Int)
	return ids, args.Error(1)
}

// GetTotalDeployments mocks the GetTotalDeployments method
func (m *MockRegistry) GetTotalDeployments(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	total, _ := args.Get(0).(*big.Int)
	return total, args.Error(1)
}

// DeploymentEvents mocks the DeploymentEvents method
func (m *MockRegistry) DeploymentEvents(ctx context.Context, fromBlock uint64, deployers ...common.Address) ([]interfaces.DeploymentEvent, error) {
	args := m.Called(ctx, fromBlock, deployers)
	events, _ := args.Get(0).([]interfaces.DeploymentEvent)
	return events, args.Error(1)
}

var (
	_ interfaces.MosaicRegistry    = (*MockRegistry)(nil)
	_ interfaces.DeploymentHistory = (*MockRegistry)(nil)
)
