package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/registry"
	"github.com/mosaicdev/mosaic-registry/transact"
)

var (
	testDeployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	tokenAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	vaultAddress = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, reg interfaces.MosaicRegistry) *httptest.Server {
	t.Helper()
	srv, err := New(&HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      discardLogger(),
		DrainDuration:            time.Millisecond,
		GracefulShutdownDuration: time.Second,
	}, NewHandler(reg, discardLogger()))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postRecord(t *testing.T, ts *httptest.Server, req RecordRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/api/v1/deployments", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGatewayRoundTrip(t *testing.T) {
	reg := registry.NewMockRegistryClient()
	reg.SetTransactOpts(testDeployer)
	ts := newTestServer(t, reg)

	resp := postRecord(t, ts, RecordRequest{ContractAddress: tokenAddress.Hex(), ContractType: "ERC20", SourceCode: "contract Token {}"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var recorded RecordResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recorded))
	assert.Equal(t, "0", recorded.DeploymentID)
	assert.Equal(t, registry.SourceCodeHash("contract Token {}").Hex(), recorded.SourceCodeHash)

	// Address without the 0x prefix is accepted
	resp = postRecord(t, ts, RecordRequest{ContractAddress: strings.TrimPrefix(vaultAddress.Hex(), "0x"), ContractType: "Vault", SourceCode: "contract Vault {}"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var total TotalResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/v1/deployments/total", &total))
	assert.Equal(t, "2", total.Total)

	var entry EntryResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/v1/deployments/1", &entry))
	assert.Equal(t, "1", entry.ID)
	assert.Equal(t, vaultAddress.Hex(), entry.ContractAddress)
	assert.Equal(t, testDeployer.Hex(), entry.Deployer)
	assert.Equal(t, "Vault", entry.ContractType)
	assert.Equal(t, registry.SourceCodeHash("contract Vault {}").Hex(), entry.SourceCodeHash)
	assert.False(t, entry.Verified)

	// Hex ids resolve to the same entry
	var hexEntry EntryResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/v1/deployments/0x1", &hexEntry))
	assert.Equal(t, entry, hexEntry)

	var byDeployer DeployerResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/v1/deployers/"+strings.ToLower(testDeployer.Hex())+"/deployments", &byDeployer))
	assert.Equal(t, testDeployer.Hex(), byDeployer.Deployer)
	assert.Equal(t, []string{"0", "1"}, byDeployer.DeploymentIDs)

	var nobody DeployerResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/v1/deployers/"+tokenAddress.Hex()+"/deployments", &nobody))
	assert.Empty(t, nobody.DeploymentIDs)
	assert.NotNil(t, nobody.DeploymentIDs)

	var events []EventResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/v1/deployments/events?fromBlock=2&deployer="+testDeployer.Hex(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].DeploymentID)
	assert.Equal(t, "Vault", events[0].ContractType)
}

func TestGatewayReadOnly(t *testing.T) {
	ts := newTestServer(t, registry.NewMockRegistryClient())

	resp := postRecord(t, ts, RecordRequest{ContractAddress: tokenAddress.Hex(), ContractType: "ERC20"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var total TotalResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/api/v1/deployments/total", &total))
	assert.Equal(t, "0", total.Total)
}

func TestGatewayUnknownDeployment(t *testing.T) {
	ts := newTestServer(t, registry.NewMockRegistryClient())

	var errResp ErrorResponse
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts, "/api/v1/deployments/42", &errResp))
	assert.Equal(t, "execution reverted: invalid deployment id", errResp.Error)
	assert.Equal(t, classReverted, errResp.Class)
}

func TestGatewayBadInput(t *testing.T) {
	reg := registry.NewMockRegistryClient()
	reg.SetTransactOpts(testDeployer)
	ts := newTestServer(t, reg)

	tests := []struct {
		name string
		path string
	}{
		{"non-numeric id", "/api/v1/deployments/abc"},
		{"negative id", "/api/v1/deployments/-1"},
		{"bad deployer", "/api/v1/deployers/0x1234/deployments"},
		{"bad fromBlock", "/api/v1/deployments/events?fromBlock=latest"},
		{"bad event deployer", "/api/v1/deployments/events?deployer=nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp ErrorResponse
			assert.Equal(t, http.StatusBadRequest, getJSON(t, ts, tt.path, &errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}

	t.Run("bad body", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/deployments", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad contract address", func(t *testing.T) {
		resp := postRecord(t, ts, RecordRequest{ContractAddress: "0xnothex", ContractType: "ERC20"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("body too large", func(t *testing.T) {
		resp := postRecord(t, ts, RecordRequest{ContractAddress: tokenAddress.Hex(), SourceCode: strings.Repeat("x", maxBodySize)})
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	var total TotalResponse
	getJSON(t, ts, "/api/v1/deployments/total", &total)
	assert.Equal(t, "0", total.Total)
}

func TestGatewayWriteErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		class  string
	}{
		{"reverted", &transact.RevertError{Reason: "MosaicRegistry: zero address"}, http.StatusUnprocessableEntity, classReverted},
		{"funding", fmt.Errorf("%w: balance 0", transact.ErrInsufficientFunds), http.StatusPaymentRequired, "funding"},
		{"connectivity", fmt.Errorf("%w: dial tcp", transact.ErrConnectivity), http.StatusBadGateway, "connectivity"},
		{"timeout", fmt.Errorf("recordDeployment: %w", transact.ErrConfirmationTimeout), http.StatusGatewayTimeout, "timeout"},
		{"event missing", fmt.Errorf("recordDeployment: %w", transact.ErrEventNotFound), http.StatusBadGateway, "event_missing"},
		{"signer", fmt.Errorf("%w: invalid sender", transact.ErrSignerRejected), http.StatusUnauthorized, "signer"},
		{"read-only", transact.ErrNoTransactOpts, http.StatusForbidden, "read_only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := new(registry.MockRegistry)
			reg.On("RecordDeployment", mock.Anything, tokenAddress, "ERC20", "src").Return(nil, tt.err)
			ts := newTestServer(t, reg)

			resp := postRecord(t, ts, RecordRequest{ContractAddress: tokenAddress.Hex(), ContractType: "ERC20", SourceCode: "src"})
			assert.Equal(t, tt.status, resp.StatusCode)

			var errResp ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.Equal(t, tt.err.Error(), errResp.Error)
			assert.Equal(t, tt.class, errResp.Class)
			reg.AssertExpectations(t)
		})
	}
}

func TestGatewayReadErrors(t *testing.T) {
	reg := new(registry.MockRegistry)
	reg.On("GetTotalDeployments", mock.Anything).Return(nil, fmt.Errorf("%w: connection refused", transact.ErrConnectivity))
	reg.On("GetContractData", mock.Anything, mock.MatchedBy(func(id *big.Int) bool { return id.Int64() == 3 })).Return(nil, errors.New("abi: cannot unmarshal"))
	ts := newTestServer(t, reg)

	assert.Equal(t, http.StatusBadGateway, getJSON(t, ts, "/api/v1/deployments/total", nil))
	assert.Equal(t, http.StatusInternalServerError, getJSON(t, ts, "/api/v1/deployments/3", nil))

	// MockRegistry does not read history
	assert.Equal(t, http.StatusOK, getJSON(t, ts, "/livez", nil))
	reg.AssertExpectations(t)
}

func TestStatusFor(t *testing.T) {
	revert := &transact.RevertError{Reason: "invalid deployment id"}
	assert.Equal(t, http.StatusNotFound, StatusFor(revert, false))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(revert, true))
	assert.Equal(t, http.StatusGatewayTimeout, StatusFor(fmt.Errorf("wrapped: %w", transact.ErrConfirmationTimeout), true))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(fmt.Errorf("%w: invalid sender", transact.ErrSignerRejected), true))
	assert.Equal(t, http.StatusTeapot, StatusFor(&RequestError{StatusCode: http.StatusTeapot, Err: errors.New("tea")}, false))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom"), false))
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t, registry.NewMockRegistryClient())

	status := func(path string) (int, string) {
		var body map[string]string
		code := getJSON(t, ts, path, &body)
		return code, body["status"]
	}

	code, s := status("/livez")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alive", s)

	code, s = status("/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", s)

	_, s = status("/drain")
	assert.Equal(t, "draining", s)
	_, s = status("/drain")
	assert.Equal(t, "already draining", s)

	code, s = status("/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not ready", s)

	_, s = status("/undrain")
	assert.Equal(t, "ready", s)
	_, s = status("/undrain")
	assert.Equal(t, "already ready", s)

	code, _ = status("/readyz")
	assert.Equal(t, http.StatusOK, code)
}
