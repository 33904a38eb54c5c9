package httpserver

import (
	"math/big"
	"time"

	"github.com/mosaicdev/mosaic-registry/interfaces"
)

// RecordRequest is the body of POST /api/v1/deployments.
type RecordRequest struct {
	ContractAddress string `json:"contractAddress"`
	ContractType    string `json:"contractType"`
	SourceCode      string `json:"sourceCode"`
}

// RecordResponse carries the ledger-assigned id.
type RecordResponse struct {
	DeploymentID   string `json:"deploymentId"`
	SourceCodeHash string `json:"sourceCodeHash"`
}

type TotalResponse struct {
	Total string `json:"total"`
}

// EntryResponse is a registry entry with ids as decimal strings and
// checksummed addresses.
type EntryResponse struct {
	ID              string    `json:"id"`
	ContractAddress string    `json:"contractAddress"`
	Deployer        string    `json:"deployer"`
	ContractType    string    `json:"contractType"`
	DeploymentTime  time.Time `json:"deploymentTime"`
	SourceCodeHash  string    `json:"sourceCodeHash"`
	Verified        bool      `json:"verified"`
}

type DeployerResponse struct {
	Deployer      string   `json:"deployer"`
	DeploymentIDs []string `json:"deploymentIds"`
}

type EventResponse struct {
	DeploymentID    string `json:"deploymentId"`
	ContractAddress string `json:"contractAddress"`
	Deployer        string `json:"deployer"`
	ContractType    string `json:"contractType"`
	BlockNumber     uint64 `json:"blockNumber"`
	TxHash          string `json:"txHash"`
}

// ErrorResponse is the body of every non-2xx gateway reply. Class is set
// for registry failures and names the transact error class.
type ErrorResponse struct {
	Error string `json:"error"`
	Class string `json:"class,omitempty"`
}

func NewEntryResponse(entry *interfaces.DeploymentEntry) *EntryResponse {
	return &EntryResponse{
		ID:              idString(entry.ID),
		ContractAddress: entry.ContractAddress.Hex(),
		Deployer:        entry.Deployer.Hex(),
		ContractType:    entry.ContractType,
		DeploymentTime:  entry.DeploymentTime.UTC(),
		SourceCodeHash:  entry.SourceCodeHash.Hex(),
		Verified:        entry.Verified,
	}
}

func NewEventResponse(event interfaces.DeploymentEvent) EventResponse {
	return EventResponse{
		DeploymentID:    idString(event.DeploymentID),
		ContractAddress: event.ContractAddress.Hex(),
		Deployer:        event.Deployer.Hex(),
		ContractType:    event.ContractType,
		BlockNumber:     event.BlockNumber,
		TxHash:          event.TxHash.Hex(),
	}
}

func idString(id *big.Int) string {
	if id == nil {
		return "0"
	}
	return id.String()
}
