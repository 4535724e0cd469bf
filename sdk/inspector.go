package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/kolektivo/delaygov/types"
)

// DelayInspector reads the state of a delay module. Calls are read-only and can be made by
// anyone.
type DelayInspector interface {
	// Salt returns the salt the next private proposal will be committed under. It must be
	// read again for every private proposal.
	Salt(ctx context.Context) (*big.Int, error)
	// QueuePointer returns the index of the oldest entry that has not been executed or vetoed.
	QueuePointer(ctx context.Context) (uint64, error)
	// QueueNonce returns the index the next queued entry will receive.
	QueueNonce(ctx context.Context) (uint64, error)
	// SecretTransactionHash asks the delay module for the commitment hash of a call.
	SecretTransactionHash(ctx context.Context, call types.Call, op types.Operation, salt *big.Int) (common.Hash, error)
}

// BadgeInspector reads badge balances from a badger contract.
type BadgeInspector interface {
	BalanceOf(ctx context.Context, holder common.Address, id types.BadgeID) (*big.Int, error)
}
