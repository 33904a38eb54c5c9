package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/transact"
)

// GatewayClient implements interfaces.MosaicRegistry and
// interfaces.DeploymentHistory against a remote gateway. Gateway status
// codes are mapped back onto the transact error taxonomy.
type GatewayClient struct {
	// ServerAddr is the base URL of the gateway
	ServerAddr string

	// HTTPClient defaults to a client with a 10 minute timeout, long enough
	// for the gateway to wait out a confirmation.
	HTTPClient *http.Client
}

func NewGatewayClient(serverAddr string) *GatewayClient {
	return &GatewayClient{
		ServerAddr: strings.TrimRight(serverAddr, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

func (c *GatewayClient) RecordDeployment(ctx context.Context, contractAddress common.Address, contractType string, sourceCode string) (*big.Int, error) {
	body, err := json.Marshal(RecordRequest{
		ContractAddress: contractAddress.Hex(),
		ContractType:    contractType,
		SourceCode:      sourceCode,
	})
	if err != nil {
		return nil, err
	}

	var resp RecordResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/deployments", bytes.NewReader(body), true, &resp); err != nil {
		return nil, fmt.Errorf("recordDeployment: %w", err)
	}
	return parseID(resp.DeploymentID)
}

func (c *GatewayClient) GetContractData(ctx context.Context, deploymentID *big.Int) (*interfaces.DeploymentEntry, error) {
	if deploymentID == nil {
		return nil, errors.New("getContractData: nil deployment id")
	}

	var resp EntryResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/deployments/"+deploymentID.String(), nil, false, &resp); err != nil {
		return nil, fmt.Errorf("getContractData(%s): %w", deploymentID, err)
	}

	id, err := parseID(resp.ID)
	if err != nil {
		return nil, err
	}
	return &interfaces.DeploymentEntry{
		ID:              id,
		ContractAddress: common.HexToAddress(resp.ContractAddress),
		Deployer:        common.HexToAddress(resp.Deployer),
		ContractType:    resp.ContractType,
		DeploymentTime:  resp.DeploymentTime.UTC(),
		SourceCodeHash:  common.HexToHash(resp.SourceCodeHash),
		Verified:        resp.Verified,
	}, nil
}

func (c *GatewayClient) GetDeployerContracts(ctx context.Context, deployer common.Address) ([]*big.Int, error) {
	var resp DeployerResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/deployers/"+deployer.Hex()+"/deployments", nil, false, &resp); err != nil {
		return nil, fmt.Errorf("getDeployerContracts(%s): %w", deployer.Hex(), err)
	}

	ids := make([]*big.Int, 0, len(resp.DeploymentIDs))
	for _, raw := range resp.DeploymentIDs {
		id, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *GatewayClient) GetTotalDeployments(ctx context.Context) (*big.Int, error) {
	var resp TotalResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/deployments/total", nil, false, &resp); err != nil {
		return nil, fmt.Errorf("totalDeployments: %w", err)
	}
	return parseID(resp.Total)
}

func (c *GatewayClient) DeploymentEvents(ctx context.Context, fromBlock uint64, deployers ...common.Address) ([]interfaces.DeploymentEvent, error) {
	query := url.Values{}
	query.Set("fromBlock", strconv.FormatUint(fromBlock, 10))
	for _, deployer := range deployers {
		query.Add("deployer", deployer.Hex())
	}

	var resp []EventResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/deployments/events?"+query.Encode(), nil, false, &resp); err != nil {
		return nil, fmt.Errorf("deploymentEvents: %w", err)
	}

	events := make([]interfaces.DeploymentEvent, 0, len(resp))
	for _, e := range resp {
		id, err := parseID(e.DeploymentID)
		if err != nil {
			return nil, err
		}
		events = append(events, interfaces.DeploymentEvent{
			DeploymentID:    id,
			ContractAddress: common.HexToAddress(e.ContractAddress),
			Deployer:        common.HexToAddress(e.Deployer),
			ContractType:    e.ContractType,
			BlockNumber:     e.BlockNumber,
			TxHash:          common.HexToHash(e.TxHash),
		})
	}
	return events, nil
}

func (c *GatewayClient) do(ctx context.Context, method, path string, body io.Reader, write bool, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.ServerAddr+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not request gateway: %w", transact.Classify(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		var errResp ErrorResponse
		if json.Unmarshal(bodyBytes, &errResp) != nil || errResp.Error == "" {
			errResp = ErrorResponse{Error: strings.TrimSpace(string(bodyBytes))}
		}
		return errorFromStatus(resp.StatusCode, errResp, write)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not parse gateway response: %w", err)
	}
	return nil
}

// errorFromStatus is the inverse of StatusFor. A 404 or 422 is only a
// revert when the gateway classed it as one; a 404 from anything else means
// the address does not point at a gateway.
func errorFromStatus(status int, resp ErrorResponse, write bool) error {
	msg := resp.Error
	remote := fmt.Errorf("gateway returned %d: %s", status, msg)
	reverted := resp.Class == classReverted
	switch {
	case status == http.StatusForbidden && write:
		return fmt.Errorf("%w: %w", transact.ErrNoTransactOpts, remote)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", transact.ErrSignerRejected, remote)
	case reverted && (status == http.StatusNotFound && !write || status == http.StatusUnprocessableEntity && write):
		revert := &transact.RevertError{Err: remote}
		if idx := strings.Index(msg, "execution reverted: "); idx >= 0 {
			revert.Reason = msg[idx+len("execution reverted: "):]
		}
		return revert
	case status == http.StatusNotFound:
		return fmt.Errorf("%w (is the gateway address correct?)", remote)
	case status == http.StatusPaymentRequired:
		return fmt.Errorf("%w: %w", transact.ErrInsufficientFunds, remote)
	case status == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", transact.ErrConfirmationTimeout, remote)
	case status == http.StatusBadGateway && strings.Contains(msg, transact.ErrEventNotFound.Error()):
		return fmt.Errorf("%w: %w", transact.ErrEventNotFound, remote)
	case status == http.StatusBadGateway:
		return fmt.Errorf("%w: %w", transact.ErrConnectivity, remote)
	default:
		return remote
	}
}

func parseID(s string) (*big.Int, error) {
	id, err := interfaces.ParseDeploymentID(s)
	if err != nil {
		return nil, fmt.Errorf("could not parse gateway response: %w", err)
	}
	return id, nil
}

var (
	_ interfaces.MosaicRegistry    = (*GatewayClient)(nil)
	_ interfaces.DeploymentHistory = (*GatewayClient)(nil)
)
