package evm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

const revertPrefix = "execution reverted:"

// ExecutionError is returned when a contract call or transaction is rejected by the node,
// carrying the decoded revert reason when one is available.
type ExecutionError struct {
	// RawRevertData is the revert payload returned by the node, if any.
	RawRevertData []byte
	// RevertReason is the decoded Error(string) or Panic(uint256) reason.
	RevertReason string
	// OriginalError is the error returned by the binding.
	OriginalError error
}

// NewExecutionError extracts the revert reason from err.
func NewExecutionError(err error) *ExecutionError {
	e := &ExecutionError{OriginalError: err}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if s, ok := dataErr.ErrorData().(string); ok {
			if data, decErr := hexutil.Decode(s); decErr == nil {
				e.RawRevertData = data
			}
		}
	}

	if len(e.RawRevertData) > 0 {
		if reason, unpackErr := abi.UnpackRevert(e.RawRevertData); unpackErr == nil {
			e.RevertReason = reason
		}
	}

	if e.RevertReason == "" && err != nil {
		if idx := strings.Index(err.Error(), revertPrefix); idx >= 0 {
			e.RevertReason = strings.TrimSpace(err.Error()[idx+len(revertPrefix):])
		}
	}

	return e
}

func (e *ExecutionError) Error() string {
	if e.RevertReason != "" {
		return fmt.Sprintf("execution failed: %v (revert reason: %s)", e.OriginalError, e.RevertReason)
	}
	if len(e.RawRevertData) > 0 {
		return fmt.Sprintf("execution failed: %v (raw revert data: %s)", e.OriginalError, common.Bytes2Hex(e.RawRevertData))
	}

	return fmt.Sprintf("execution failed: %v", e.OriginalError)
}

func (e *ExecutionError) Unwrap() error {
	return e.OriginalError
}
