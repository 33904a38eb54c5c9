package transact

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	// ErrNoTransactOpts is returned when a transaction is attempted without first setting transaction options.
	ErrNoTransactOpts = errors.New("no authorized transactor available")

	ErrConnectivity        = errors.New("rpc endpoint unreachable")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSignerRejected      = errors.New("signer rejected")
	ErrExecutionReverted   = errors.New("execution reverted")
	ErrEventNotFound       = errors.New("expected event not found in receipt")
	ErrConfirmationTimeout = errors.New("timed out waiting for confirmation")
	ErrNoCode              = errors.New("no contract code at deployed address")
)

// RevertError is a remote execution failure. Reason holds the decoded
// Error(string) message when the node returned revert data.
type RevertError struct {
	Reason string
	Data   []byte
	Err    error
}

func (e *RevertError) Error() string {
	switch {
	case e.Reason != "":
		return ErrExecutionReverted.Error() + ": " + e.Reason
	case e.Err != nil:
		return e.Err.Error()
	default:
		return ErrExecutionReverted.Error()
	}
}

func (e *RevertError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExecutionReverted}
	}
	return []error{ErrExecutionReverted, e.Err}
}

var taxonomy = []error{
	ErrNoTransactOpts,
	ErrConnectivity,
	ErrInsufficientFunds,
	ErrSignerRejected,
	ErrExecutionReverted,
	ErrEventNotFound,
	ErrConfirmationTimeout,
	ErrNoCode,
}

var (
	fundingMarkers  = []string{"insufficient funds", "exceeds allowance", "insufficient balance"}
	signerMarkers   = []string{"invalid sender", "unauthorized", "not authorized", "unknown account", "authentication needed", "only replay-protected", "invalid chain id"}
	networkMarkers  = []string{"connection refused", "no such host", "i/o timeout", "connection reset", "network is unreachable", "eof"}
	revertMarker    = "execution reverted"
	revertSeparator = "execution reverted: "
)

// Classify maps a raw RPC or signing error onto the package taxonomy so
// callers can use errors.Is. Errors already in the taxonomy and unknown
// errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range taxonomy {
		if errors.Is(err, known) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if revert := revertFromData(dataErr.ErrorData(), err); revert != nil {
			return revert
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, revertMarker):
		revert := &RevertError{Err: err}
		if idx := strings.Index(msg, revertSeparator); idx >= 0 {
			revert.Reason = err.Error()[idx+len(revertSeparator):]
		}
		return revert
	case containsAny(msg, fundingMarkers):
		return fmt.Errorf("%w: %w", ErrInsufficientFunds, err)
	case containsAny(msg, signerMarkers):
		return fmt.Errorf("%w: %w", ErrSignerRejected, err)
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.As(err, &netErr) ||
		errors.As(err, &urlErr) ||
		containsAny(msg, networkMarkers) {
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	}

	return err
}

func revertFromData(data interface{}, cause error) *RevertError {
	var raw []byte
	switch d := data.(type) {
	case string:
		decoded, err := hexutil.Decode(d)
		if err != nil {
			return nil
		}
		raw = decoded
	case []byte:
		raw = d
	default:
		return nil
	}

	revert := &RevertError{Data: raw, Err: cause}
	if reason, err := abi.UnpackRevert(raw); err == nil {
		revert.Reason = reason
	}
	return revert
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
