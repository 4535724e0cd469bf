package sdk

import (
	"context"

	"github.com/kolektivo/delaygov/types"
)

// Submitter sends wrapped calls through a badge-gated access-control module.
//
// This must be implemented by any chain.
type Submitter interface {
	// Submit sends the wrapped call, waits for it to be mined and returns the queue index
	// read from the delay module event of the wrapped call's kind.
	Submit(ctx context.Context, wrapped types.WrappedCall, badge types.BadgeID) (types.SubmissionResult, error)
}
