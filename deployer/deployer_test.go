package deployer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicdev/mosaic-registry/artifact"
	"github.com/mosaicdev/mosaic-registry/bindings/mosaicregistry"
	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/storage"
	"github.com/mosaicdev/mosaic-registry/transact"
)

// Runtime code answers every call with 32 zero bytes, so totalDeployments reads as 0.
const zeroRuntimeInit = "0x600a600c600039600a6000f3600060005260206000f3"

// Runtime code reverts every call.
const revertingRuntimeInit = "0x6005600c60003960056000f360006000fd"

// Init code reverts, so no contract is created.
const revertingInit = "0x60006000fd"

var testChainID = big.NewInt(1337)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTestChain creates a simulated chain with one funded account.
func SetupTestChain(t *testing.T) (*simulated.Backend, *bind.TransactOpts) {
	t.Helper()

	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	auth, err := bind.NewKeyedTransactorWithChainID(privateKey, testChainID)
	require.NoError(t, err)

	balance := new(big.Int)
	balance.SetString("10000000000000000000", 10) // 10 ETH

	genesisAlloc := map[common.Address]types.Account{
		auth.From: {Balance: balance},
	}
	backend := simulated.NewBackend(genesisAlloc, simulated.WithBlockGasLimit(8000000))
	t.Cleanup(func() { _ = backend.Close() })

	autoCommit(t, backend)
	return backend, auth
}

// autoCommit mines a block every few milliseconds until the test ends.
func autoCommit(t *testing.T, backend *simulated.Backend) {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				backend.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		close(done)
		<-stopped
	})
}

func testArtifact(t *testing.T, bytecode string) *artifact.Artifact {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(mosaicregistry.MosaicRegistryMetaData.ABI))
	require.NoError(t, err)
	return &artifact.Artifact{
		ContractName: "MosaicRegistry",
		ABI:          parsed,
		Bytecode:     hexutil.MustDecode(bytecode),
	}
}

func testConfig() Config {
	return Config{
		Network:   "localhost",
		ChainID:   testChainID,
		GasPolicy: transact.MinGasPrice(nil),
		Confirmer: transact.Confirmer{Timeout: 10 * time.Second, PollInterval: 10 * time.Millisecond},
	}
}

func newFileStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), discardLogger())
	require.NoError(t, err)
	return store
}

func TestDeployWritesRecord(t *testing.T) {
	backend, auth := SetupTestChain(t)
	store := newFileStore(t)

	d, err := NewDeployer(backend.Client(), auth, store, testConfig(), discardLogger())
	require.NoError(t, err)
	fixed := time.Date(2025, 3, 1, 12, 30, 45, 123456789, time.FixedZone("CET", 3600))
	d.now = func() time.Time { return fixed }

	record, err := d.Deploy(context.Background(), testArtifact(t, zeroRuntimeInit))
	require.NoError(t, err)

	assert.Equal(t, "localhost", record.Network)
	assert.Equal(t, auth.From, record.Deployer)
	assert.Equal(t, "1337", record.ChainID.String())
	assert.NotEqual(t, common.Hash{}, record.TxHash)
	assert.Equal(t, "2025-03-01T11:30:45.123Z", record.Timestamp.Format(interfaces.TimestampLayout))

	code, err := backend.Client().CodeAt(context.Background(), record.Address, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, code)

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, record.Address, saved.Address)
	assert.Equal(t, record.TxHash, saved.TxHash)
	assert.True(t, record.Timestamp.Equal(saved.Timestamp))
}

func TestDeployZeroBalance(t *testing.T) {
	backend, _ := SetupTestChain(t)
	store := newFileStore(t)

	poorKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	poor, err := bind.NewKeyedTransactorWithChainID(poorKey, testChainID)
	require.NoError(t, err)

	d, err := NewDeployer(backend.Client(), poor, store, testConfig(), discardLogger())
	require.NoError(t, err)

	_, err = d.Deploy(context.Background(), testArtifact(t, zeroRuntimeInit))
	assert.ErrorIs(t, err, transact.ErrInsufficientFunds)

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "no deployment file may be written")
}

func TestRedeployOverwritesRecord(t *testing.T) {
	backend, auth := SetupTestChain(t)
	store := newFileStore(t)

	d, err := NewDeployer(backend.Client(), auth, store, testConfig(), discardLogger())
	require.NoError(t, err)

	first, err := d.Deploy(context.Background(), testArtifact(t, zeroRuntimeInit))
	require.NoError(t, err)
	second, err := d.Deploy(context.Background(), testArtifact(t, zeroRuntimeInit))
	require.NoError(t, err)
	require.NotEqual(t, first.Address, second.Address)

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.Address, saved.Address)

	raw, err := os.ReadFile(filepath.Join(filepath.Dir(store.Path()), storage.DeploymentFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), first.Address.Hex())
}

func TestDeployRevertingInitCode(t *testing.T) {
	backend, auth := SetupTestChain(t)
	store := newFileStore(t)

	d, err := NewDeployer(backend.Client(), auth, store, testConfig(), discardLogger())
	require.NoError(t, err)

	_, err = d.Deploy(context.Background(), testArtifact(t, revertingInit))
	assert.ErrorIs(t, err, transact.ErrExecutionReverted)

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeployProbeFailureIsNotFatal(t *testing.T) {
	backend, auth := SetupTestChain(t)
	store := newFileStore(t)

	d, err := NewDeployer(backend.Client(), auth, store, testConfig(), discardLogger())
	require.NoError(t, err)

	record, err := d.Deploy(context.Background(), testArtifact(t, revertingRuntimeInit))
	require.NoError(t, err)

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, record.Address, saved.Address)
}

type failingStore struct{}

func (failingStore) Save(context.Context, *interfaces.DeploymentRecord) error {
	return errors.New("disk full")
}
func (failingStore) Available(context.Context) bool { return false }
func (failingStore) Name() string                   { return "failing" }
func (failingStore) LocationURI() string            { return "file:///dev/full" }

func TestDeployStoreFailure(t *testing.T) {
	backend, auth := SetupTestChain(t)

	d, err := NewDeployer(backend.Client(), auth, failingStore{}, testConfig(), discardLogger())
	require.NoError(t, err)

	_, err = d.Deploy(context.Background(), testArtifact(t, zeroRuntimeInit))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deployment record was not saved")
	assert.Contains(t, err.Error(), "disk full")
}

func TestNewDeployerValidation(t *testing.T) {
	backend, auth := SetupTestChain(t)
	store := newFileStore(t)

	_, err := NewDeployer(nil, auth, store, testConfig(), nil)
	assert.Error(t, err)

	_, err = NewDeployer(backend.Client(), nil, store, testConfig(), nil)
	assert.ErrorIs(t, err, transact.ErrNoTransactOpts)

	_, err = NewDeployer(backend.Client(), auth, nil, testConfig(), nil)
	assert.Error(t, err)

	_, err = NewDeployer(backend.Client(), auth, store, Config{}, nil)
	assert.Error(t, err)

	d, err := NewDeployer(backend.Client(), auth, store, testConfig(), nil)
	require.NoError(t, err)
	_, err = d.Deploy(context.Background(), &artifact.Artifact{})
	assert.ErrorIs(t, err, artifact.ErrEmptyBytecode)
}
