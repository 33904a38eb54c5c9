package transact

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// FindEvent scans the receipt logs emitted by emitter and returns the first
// one parse accepts. Logs from other contracts and logs parse rejects, such
// as other event signatures, are skipped.
func FindEvent[T any](receipt *types.Receipt, emitter common.Address, parse func(types.Log) (T, error)) (T, error) {
	var zero T
	if receipt == nil {
		return zero, ErrEventNotFound
	}

	for _, l := range receipt.Logs {
		if l == nil || l.Address != emitter {
			continue
		}
		event, err := parse(*l)
		if err != nil {
			continue
		}
		return event, nil
	}

	return zero, fmt.Errorf("%w: transaction %s", ErrEventNotFound, receipt.TxHash.Hex())
}
