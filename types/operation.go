package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Operation is the execution mode the delay module uses when it finally runs a call.
type Operation uint8

const (
	// OperationCall executes the call with CALL.
	OperationCall Operation = 0
	// OperationDelegateCall executes the call with DELEGATECALL. Never produced by the builders.
	OperationDelegateCall Operation = 1
)

func (o Operation) String() string {
	switch o {
	case OperationCall:
		return "call"
	case OperationDelegateCall:
		return "delegatecall"
	default:
		return fmt.Sprintf("operation(%d)", uint8(o))
	}
}

// WrappedCall is a call addressed to a delay module which queues an inner call, either in
// the clear or as a commitment to a sealed payload.
type WrappedCall struct {
	Call

	Operation Operation    `json:"operation"`
	Kind      ProposalKind `json:"kind"`

	// Inner is the target call being queued. Set for public proposals only.
	Inner *Call `json:"inner,omitempty"`

	// CommitmentHash and Locator are set for private proposals only.
	CommitmentHash common.Hash `json:"commitmentHash,omitempty"`
	Locator        string      `json:"locator,omitempty"`
}
