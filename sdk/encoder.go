package sdk

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/kolektivo/delaygov/types"
)

// Composer populates calls against a known contract interface without sending them.
type Composer interface {
	Populate(to common.Address, method string, params ...any) (types.Call, error)
}

// DelayEncoder wraps calls so they are queued at a delay module.
type DelayEncoder interface {
	WrapPublic(inner types.Call) (types.WrappedCall, error)
	WrapPrivate(commitment common.Hash, locator string) (types.WrappedCall, error)
	WrapVeto(newQueuePointer uint64) (types.WrappedCall, error)
}
