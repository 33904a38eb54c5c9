package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MosaicRegistry is the client-side view of the MosaicRegistry contract.
// Reads are single round trips against the ledger; RecordDeployment blocks
// until the transaction is confirmed and its ContractDeployed event observed.
type MosaicRegistry interface {
	// RecordDeployment registers a deployed contract and returns the ledger-assigned id.
	RecordDeployment(ctx context.Context, contractAddress common.Address, contractType string, sourceCode string) (*big.Int, error)

	// GetContractData looks up a single entry. Unknown ids revert.
	GetContractData(ctx context.Context, deploymentID *big.Int) (*DeploymentEntry, error)

	// GetDeployerContracts lists entry ids created by deployer, in ledger order.
	GetDeployerContracts(ctx context.Context, deployer common.Address) ([]*big.Int, error)

	// GetTotalDeployments returns the number of recorded entries.
	GetTotalDeployments(ctx context.Context) (*big.Int, error)
}

// DeploymentHistory reads past ContractDeployed notifications.
type DeploymentHistory interface {
	DeploymentEvents(ctx context.Context, fromBlock uint64, deployers ...common.Address) ([]DeploymentEvent, error)
}
