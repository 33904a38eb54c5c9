package transact

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mosaicdev/mosaic-registry/bindings/mosaicregistry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDeployedLog(t *testing.T, emitter common.Address, id int64, contract, deployer common.Address, contractType string) *types.Log {
	parsed, err := abi.JSON(strings.NewReader(mosaicregistry.MosaicRegistryMetaData.ABI))
	require.NoError(t, err)
	ev := parsed.Events["ContractDeployed"]

	data, err := ev.Inputs.NonIndexed().Pack(contractType)
	require.NoError(t, err)

	return &types.Log{
		Address: emitter,
		Topics: []common.Hash{
			ev.ID,
			common.BigToHash(big.NewInt(id)),
			common.BytesToHash(contract.Bytes()),
			common.BytesToHash(deployer.Bytes()),
		},
		Data: data,
	}
}

func TestFindEvent(t *testing.T) {
	registry := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	other := common.HexToAddress("0x9999999999999999999999999999999999999999")
	contract := common.HexToAddress("0x1111111111111111111111111111111111111111")
	deployer := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	filterer, err := mosaicregistry.NewMosaicRegistryFilterer(registry, nil)
	require.NoError(t, err)

	unrelated := &types.Log{Address: registry, Topics: []common.Hash{common.HexToHash("0x01")}}

	receipt := &types.Receipt{
		TxHash: common.HexToHash("0xabc"),
		Logs: []*types.Log{
			contractDeployedLog(t, other, 99, contract, deployer, "Spoofed"),
			unrelated,
			contractDeployedLog(t, registry, 7, contract, deployer, "ERC20"),
		},
	}

	ev, err := FindEvent(receipt, registry, filterer.ParseContractDeployed)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), ev.DeploymentId)
	assert.Equal(t, contract, ev.ContractAddress)
	assert.Equal(t, deployer, ev.Deployer)
	assert.Equal(t, "ERC20", ev.ContractType)

	t.Run("missing", func(t *testing.T) {
		receipt := &types.Receipt{Logs: []*types.Log{unrelated}}
		_, err := FindEvent(receipt, registry, filterer.ParseContractDeployed)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("nil receipt", func(t *testing.T) {
		_, err := FindEvent(nil, registry, filterer.ParseContractDeployed)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}
