package transact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	DefaultConfirmTimeout = 5 * time.Minute
	DefaultPollInterval   = time.Second
)

// Confirmer waits for transactions to be included. A zero Timeout waits
// until ctx is done.
type Confirmer struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// DefaultConfirmer bounds every wait to DefaultConfirmTimeout.
var DefaultConfirmer = Confirmer{
	Timeout:      DefaultConfirmTimeout,
	PollInterval: DefaultPollInterval,
}

// Confirm blocks until tx has a receipt. A receipt with failed status is
// returned together with an ErrExecutionReverted error.
func (c Confirmer) Confirm(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	receipt, err := c.waitReceipt(waitCtx, backend, tx.Hash())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: transaction %s", ErrConfirmationTimeout, tx.Hash().Hex())
		}
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, &RevertError{Err: fmt.Errorf("transaction %s failed in block %v", tx.Hash().Hex(), receipt.BlockNumber)}
	}
	return receipt, nil
}

// ConfirmDeployment waits for a contract-creation transaction and returns
// the address of the created contract once code is present there.
func (c Confirmer) ConfirmDeployment(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction) (common.Address, *types.Receipt, error) {
	if tx.To() != nil {
		return common.Address{}, nil, errors.New("transaction is not a contract creation")
	}

	receipt, err := c.Confirm(ctx, backend, tx)
	if err != nil {
		return common.Address{}, receipt, err
	}
	if receipt.ContractAddress == (common.Address{}) {
		return common.Address{}, receipt, fmt.Errorf("%w: receipt carries no contract address", ErrNoCode)
	}

	code, err := backend.CodeAt(ctx, receipt.ContractAddress, nil)
	if err != nil {
		return common.Address{}, receipt, Classify(err)
	}
	if len(code) == 0 {
		return common.Address{}, receipt, fmt.Errorf("%w: %s", ErrNoCode, receipt.ContractAddress.Hex())
	}
	return receipt.ContractAddress, receipt, nil
}

func (c Confirmer) waitReceipt(ctx context.Context, backend bind.DeployBackend, hash common.Hash) (*types.Receipt, error) {
	interval := c.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		// NotFound and RPC hiccups are retried until the deadline.
		if errors.Is(err, context.Canceled) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
