package deployer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/mosaicdev/mosaic-registry/artifact"
	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/metrics"
	"github.com/mosaicdev/mosaic-registry/registry"
	"github.com/mosaicdev/mosaic-registry/transact"
)

// Backend is what a deployment needs from the node. Both ethclient.Client
// and the simulated backend client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Config holds the per-network deployment settings.
type Config struct {
	// Network is written to the deployment record as-is.
	Network string

	// ChainID is written to the record when set.
	ChainID *big.Int

	GasPolicy transact.GasPricePolicy
	Confirmer transact.Confirmer

	// SkipProbe disables the post-deployment totalDeployments call.
	SkipProbe bool
}

// Deployer submits contract-creation transactions and persists the result.
type Deployer struct {
	backend Backend
	auth    *bind.TransactOpts
	store   interfaces.RecordStore
	cfg     Config
	log     *slog.Logger

	now func() time.Time
}

// NewDeployer creates a deployer signing with auth and saving records to store.
func NewDeployer(backend Backend, auth *bind.TransactOpts, store interfaces.RecordStore, cfg Config, log *slog.Logger) (*Deployer, error) {
	if backend == nil {
		return nil, errors.New("deployer needs a backend")
	}
	if auth == nil {
		return nil, transact.ErrNoTransactOpts
	}
	if store == nil {
		return nil, errors.New("deployer needs a record store")
	}
	if cfg.Network == "" {
		return nil, errors.New("deployer needs a network name")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Deployer{
		backend: backend,
		auth:    auth,
		store:   store,
		cfg:     cfg,
		log:     log.With("network", cfg.Network),
		now:     time.Now,
	}, nil
}

// Deploy creates the contract, waits for its code to appear and saves the
// deployment record. Nothing is written when the deployment itself fails.
// The post-deployment probe only logs.
func (d *Deployer) Deploy(ctx context.Context, art *artifact.Artifact) (record *interfaces.DeploymentRecord, err error) {
	defer func() {
		metrics.ContractDeployments.WithLabelValues(d.cfg.Network, metrics.Result(err)).Inc()
	}()

	if art == nil || len(art.Bytecode) == 0 {
		return nil, artifact.ErrEmptyBytecode
	}

	log := d.log.With("contract", art.ContractName)
	log.Info("Deploying contract", "deployer", d.auth.From.Hex(), "gasPrice", d.cfg.GasPolicy.String())

	if err := d.checkBalance(ctx); err != nil {
		return nil, err
	}

	opts, err := d.cfg.GasPolicy.Apply(ctx, d.auth, d.backend)
	if err != nil {
		return nil, err
	}

	_, tx, _, err := bind.DeployContract(opts, art.ABI, art.Bytecode, d.backend)
	if err != nil {
		return nil, fmt.Errorf("could not submit deployment: %w", transact.Classify(err))
	}

	log.Info("Waiting for deployment", "txHash", tx.Hash().Hex(), "timeout", d.cfg.Confirmer.Timeout)
	address, receipt, err := d.cfg.Confirmer.ConfirmDeployment(ctx, d.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("deployment %s not confirmed: %w", tx.Hash().Hex(), err)
	}
	log.Info("Contract deployed", "address", address.Hex(), "block", receipt.BlockNumber, "gasUsed", receipt.GasUsed)

	record = &interfaces.DeploymentRecord{
		Network:   d.cfg.Network,
		Address:   address,
		Timestamp: d.now().UTC().Truncate(time.Millisecond),
		Deployer:  d.auth.From,
		TxHash:    tx.Hash(),
	}
	if d.cfg.ChainID != nil {
		record.ChainID = new(big.Int).Set(d.cfg.ChainID)
	}

	if err := d.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("contract deployed at %s but the deployment record was not saved: %w", address.Hex(), err)
	}
	log.Info("Deployment info saved", "location", d.store.LocationURI())

	if !d.cfg.SkipProbe {
		d.probe(ctx, log, address)
	}
	return record, nil
}

func (d *Deployer) checkBalance(ctx context.Context) error {
	balance, err := d.backend.BalanceAt(ctx, d.auth.From, nil)
	if err != nil {
		return fmt.Errorf("could not read deployer balance: %w", transact.Classify(err))
	}
	if balance.Sign() == 0 {
		return fmt.Errorf("%w: deployer %s has a zero balance", transact.ErrInsufficientFunds, d.auth.From.Hex())
	}
	d.log.Debug("Deployer balance", "wei", balance.String())
	return nil
}

// probe calls totalDeployments on the fresh contract.
func (d *Deployer) probe(ctx context.Context, log *slog.Logger, address common.Address) {
	client, err := registry.NewMosaicRegistryClient(d.backend, d.backend, address)
	if err != nil {
		log.Warn("Could not bind deployed contract", "err", err)
		return
	}

	total, err := client.GetTotalDeployments(ctx)
	if err != nil {
		log.Warn("Contract probe failed", "address", address.Hex(), "err", err)
		return
	}
	log.Info("Contract verified", "totalDeployments", total.String())
}
