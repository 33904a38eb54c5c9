package registry

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mosaicdev/mosaic-registry/bindings/mosaicregistry"
)

// ledgerRevert mimics the JSON-RPC error nodes return for reverted calls.
type ledgerRevert struct {
	reason string
	data   []byte
}

func (e *ledgerRevert) Error() string          { return "execution reverted: " + e.reason }
func (e *ledgerRevert) ErrorCode() int         { return 3 }
func (e *ledgerRevert) ErrorData() interface{} { return hexutil.Encode(e.data) }

func newLedgerRevert(reason string) error {
	stringType, _ := abi.NewType("string", "", nil)
	packed, _ := abi.Arguments{{Type: stringType}}.Pack(reason)
	return &ledgerRevert{reason: reason, data: append([]byte{0x08, 0xc3, 0x79, 0xa0}, packed...)}
}

// fakeLedger is an in-memory MosaicRegistry reachable through the
// bind.ContractBackend and bind.DeployBackend interfaces. Every accepted
// transaction is mined immediately in its own block.
type fakeLedger struct {
	mu       sync.Mutex
	abi      abi.ABI
	chainID  *big.Int
	registry common.Address

	entries    []mosaicregistry.MosaicRegistryContractData
	byDeployer map[common.Address][]*big.Int
	nonces     map[common.Address]uint64
	receipts   map[common.Hash]*types.Receipt
	logs       []types.Log
	block      uint64
	now        time.Time

	dropEvents       bool
	withholdReceipts bool
	revertRecord     string
	callErr          error
}

func newFakeLedger(chainID *big.Int, registry common.Address) *fakeLedger {
	parsed, err := abi.JSON(strings.NewReader(mosaicregistry.MosaicRegistryMetaData.ABI))
	if err != nil {
		panic(err)
	}
	return &fakeLedger{
		abi:        parsed,
		chainID:    chainID,
		registry:   registry,
		byDeployer: make(map[common.Address][]*big.Int),
		nonces:     make(map[common.Address]uint64),
		receipts:   make(map[common.Hash]*types.Receipt),
		now:        time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (l *fakeLedger) decode(data []byte) (*abi.Method, []interface{}, error) {
	if len(data) < 4 {
		return nil, nil, errors.New("calldata too short")
	}
	method, err := l.abi.MethodById(data[:4])
	if err != nil {
		return nil, nil, err
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, err
	}
	return method, args, nil
}

func (l *fakeLedger) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	if account == l.registry {
		return []byte{0x60, 0x80}, nil
	}
	return nil, nil
}

func (l *fakeLedger) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return l.CodeAt(ctx, account, nil)
}

func (l *fakeLedger) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.callErr != nil {
		return nil, l.callErr
	}
	if call.To == nil || *call.To != l.registry {
		return nil, nil
	}

	method, args, err := l.decode(call.Data)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "totalDeployments":
		return method.Outputs.Pack(big.NewInt(int64(len(l.entries))))
	case "getDeployerContracts":
		ids := l.byDeployer[args[0].(common.Address)]
		if ids == nil {
			ids = []*big.Int{}
		}
		return method.Outputs.Pack(ids)
	case "getContractData":
		id := args[0].(*big.Int)
		if !id.IsInt64() || id.Int64() >= int64(len(l.entries)) {
			return nil, newLedgerRevert("MosaicRegistry: invalid deployment id")
		}
		return method.Outputs.Pack(l.entries[id.Int64()])
	case "recordDeployment":
		if l.revertRecord != "" {
			return nil, newLedgerRevert(l.revertRecord)
		}
		return method.Outputs.Pack(big.NewInt(int64(len(l.entries))))
	}
	return nil, fmt.Errorf("unsupported method %s", method.Name)
}

func (l *fakeLedger) PendingCallContract(ctx context.Context, call ethereum.CallMsg) ([]byte, error) {
	return l.CallContract(ctx, call, nil)
}

func (l *fakeLedger) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &types.Header{Number: new(big.Int).SetUint64(l.block), BaseFee: big.NewInt(1)}, nil
}

func (l *fakeLedger) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nonces[account], nil
}

func (l *fakeLedger) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (l *fakeLedger) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (l *fakeLedger) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	if _, err := l.CallContract(ctx, call, nil); err != nil {
		return 0, err
	}
	return 150_000, nil
}

func (l *fakeLedger) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	from, err := types.Sender(types.LatestSignerForChainID(l.chainID), tx)
	if err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if tx.Nonce() != l.nonces[from] {
		return fmt.Errorf("nonce too low: have %d, want %d", tx.Nonce(), l.nonces[from])
	}
	if tx.To() == nil || *tx.To() != l.registry {
		return errors.New("unexpected recipient")
	}
	method, args, err := l.decode(tx.Data())
	if err != nil {
		return err
	}
	if method.Name != "recordDeployment" {
		return fmt.Errorf("%s is not a transaction", method.Name)
	}

	l.nonces[from]++
	l.block++

	id := big.NewInt(int64(len(l.entries)))
	contractAddress := args[0].(common.Address)
	contractType := args[1].(string)
	l.entries = append(l.entries, mosaicregistry.MosaicRegistryContractData{
		ContractAddress: contractAddress,
		Deployer:        from,
		ContractType:    contractType,
		DeploymentTime:  big.NewInt(l.now.Add(time.Duration(l.block) * time.Second).Unix()),
		SourceCodeHash:  args[2].([32]byte),
	})
	l.byDeployer[from] = append(l.byDeployer[from], id)

	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(l.block),
		GasUsed:     50_000,
	}
	if !l.dropEvents {
		ev := l.abi.Events["ContractDeployed"]
		data, err := ev.Inputs.NonIndexed().Pack(contractType)
		if err != nil {
			return err
		}
		log := types.Log{
			Address: l.registry,
			Topics: []common.Hash{
				ev.ID,
				common.BigToHash(id),
				common.BytesToHash(contractAddress.Bytes()),
				common.BytesToHash(from.Bytes()),
			},
			Data:        data,
			BlockNumber: l.block,
			TxHash:      tx.Hash(),
		}
		l.logs = append(l.logs, log)
		receipt.Logs = []*types.Log{&log}
	}
	if !l.withholdReceipts {
		l.receipts[tx.Hash()] = receipt
	}
	return nil
}

func (l *fakeLedger) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	receipt, ok := l.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (l *fakeLedger) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []types.Log
	for _, log := range l.logs {
		if len(q.Addresses) > 0 && !containsAddress(q.Addresses, log.Address) {
			continue
		}
		if q.FromBlock != nil && log.BlockNumber < q.FromBlock.Uint64() {
			continue
		}
		if q.ToBlock != nil && q.ToBlock.Sign() >= 0 && log.BlockNumber > q.ToBlock.Uint64() {
			continue
		}
		if !topicsMatch(q.Topics, log.Topics) {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

func topicsMatch(filter [][]common.Hash, topics []common.Hash) bool {
	for i, alternatives := range filter {
		if len(alternatives) == 0 {
			continue
		}
		if i >= len(topics) {
			return false
		}
		matched := false
		for _, want := range alternatives {
			if topics[i] == want {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func (l *fakeLedger) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("subscriptions not supported")
}
