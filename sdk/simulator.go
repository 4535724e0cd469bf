package sdk

import (
	"context"

	"github.com/kolektivo/delaygov/types"
)

// Simulator dry-runs a submission against the current chain state without sending it.
//
// This is only required if the chain supports simulation.
type Simulator interface {
	SimulateSubmit(ctx context.Context, wrapped types.WrappedCall, badge types.BadgeID) error
}
