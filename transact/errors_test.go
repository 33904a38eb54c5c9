package transact

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcDataError mimics the JSON-RPC error returned by nodes for reverted calls.
type rpcDataError struct {
	msg  string
	data interface{}
}

func (e *rpcDataError) Error() string          { return e.msg }
func (e *rpcDataError) ErrorCode() int         { return 3 }
func (e *rpcDataError) ErrorData() interface{} { return e.data }

func encodeRevertReason(t *testing.T, reason string) []byte {
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	// Error(string) selector
	return append([]byte{0x08, 0xc3, 0x79, 0xa0}, packed...)
}

func TestClassify_Revert(t *testing.T) {
	t.Run("revert data", func(t *testing.T) {
		data := encodeRevertReason(t, "MosaicRegistry: invalid deployment id")
		err := Classify(&rpcDataError{msg: "execution reverted", data: hexutil.Encode(data)})

		require.ErrorIs(t, err, ErrExecutionReverted)
		var revert *RevertError
		require.ErrorAs(t, err, &revert)
		assert.Equal(t, "MosaicRegistry: invalid deployment id", revert.Reason)
		assert.Equal(t, data, revert.Data)
		assert.Equal(t, "execution reverted: MosaicRegistry: invalid deployment id", err.Error())
	})

	t.Run("message only", func(t *testing.T) {
		err := Classify(errors.New("execution reverted: not found"))

		require.ErrorIs(t, err, ErrExecutionReverted)
		var revert *RevertError
		require.ErrorAs(t, err, &revert)
		assert.Equal(t, "not found", revert.Reason)
	})

	t.Run("bare revert", func(t *testing.T) {
		err := Classify(errors.New("execution reverted"))

		require.ErrorIs(t, err, ErrExecutionReverted)
		var revert *RevertError
		require.ErrorAs(t, err, &revert)
		assert.Empty(t, revert.Reason)
	})
}

func TestClassify_Taxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "insufficient funds from txpool",
			err:      errors.New("insufficient funds for gas * price + value: balance 0"),
			expected: ErrInsufficientFunds,
		},
		{
			name:     "estimation capped by balance",
			err:      errors.New("gas required exceeds allowance (0)"),
			expected: ErrInsufficientFunds,
		},
		{
			name:     "insufficient funds for transfer",
			err:      errors.New("insufficient funds for transfer"),
			expected: ErrInsufficientFunds,
		},
		{
			name:     "invalid sender",
			err:      errors.New("invalid sender"),
			expected: ErrSignerRejected,
		},
		{
			name:     "chain id mismatch",
			err:      errors.New("only replay-protected (EIP-155) transactions allowed over RPC"),
			expected: ErrSignerRejected,
		},
		{
			name:     "dial refused",
			err:      &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			expected: ErrConnectivity,
		},
		{
			name:     "deadline",
			err:      fmt.Errorf("eth_call: %w", context.DeadlineExceeded),
			expected: ErrConnectivity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.err)
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, tt.err, "original error must stay in the chain")
		})
	}
}

func TestClassify_PassThrough(t *testing.T) {
	assert.NoError(t, Classify(nil))

	unknown := errors.New("something else")
	assert.Same(t, unknown, Classify(unknown))

	classified := fmt.Errorf("%w: tx 0x01", ErrEventNotFound)
	assert.Same(t, classified, Classify(classified))

	canceled := fmt.Errorf("call: %w", context.Canceled)
	assert.Same(t, canceled, Classify(canceled))
}
