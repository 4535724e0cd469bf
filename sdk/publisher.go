package sdk

import (
	"context"

	"github.com/kolektivo/delaygov/types"
)

// PayloadPublisher seals a private proposal under an access policy and publishes it to
// off-chain storage. The returned locator is what the delay module records.
type PayloadPublisher interface {
	Publish(ctx context.Context, payload types.SecretPayload, policy types.AccessPolicy) (types.SealedPayload, error)
}
