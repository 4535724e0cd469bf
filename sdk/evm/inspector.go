package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/kolektivo/delaygov/sdk"
	"github.com/kolektivo/delaygov/sdk/evm/bindings"
	"github.com/kolektivo/delaygov/types"
)

var _ sdk.DelayInspector = (*DelayInspector)(nil)

// DelayInspector is an Inspector implementation for EVM chains, giving access to the state
// of a SecretDelay module.
type DelayInspector struct {
	client ContractDeployBackend
	delay  common.Address
}

// NewDelayInspector creates a new DelayInspector for the delay module at the given address.
func NewDelayInspector(client ContractDeployBackend, delay common.Address) *DelayInspector {
	return &DelayInspector{
		client: client,
		delay:  delay,
	}
}

// Salt reads salt(). It is never cached.
func (i *DelayInspector) Salt(ctx context.Context) (*big.Int, error) {
	delay, err := bindings.NewSecretDelay(i.delay, i.client)
	if err != nil {
		return nil, err
	}

	return delay.Salt(&bind.CallOpts{Context: ctx})
}

// QueuePointer reads queuePointer().
func (i *DelayInspector) QueuePointer(ctx context.Context) (uint64, error) {
	delay, err := bindings.NewSecretDelay(i.delay, i.client)
	if err != nil {
		return 0, err
	}

	pointer, err := delay.QueuePointer(&bind.CallOpts{Context: ctx})
	if err != nil {
		return 0, err
	}

	return bigToUint64("queue pointer", pointer)
}

// QueueNonce reads queueNonce().
func (i *DelayInspector) QueueNonce(ctx context.Context) (uint64, error) {
	delay, err := bindings.NewSecretDelay(i.delay, i.client)
	if err != nil {
		return 0, err
	}

	nonce, err := delay.QueueNonce(&bind.CallOpts{Context: ctx})
	if err != nil {
		return 0, err
	}

	return bigToUint64("queue nonce", nonce)
}

// SecretTransactionHash reads getSecretTransactionHash(to, value, data, operation, salt).
func (i *DelayInspector) SecretTransactionHash(
	ctx context.Context, call types.Call, op types.Operation, salt *big.Int,
) (common.Hash, error) {
	delay, err := bindings.NewSecretDelay(i.delay, i.client)
	if err != nil {
		return common.Hash{}, err
	}

	h, err := delay.GetSecretTransactionHash(
		&bind.CallOpts{Context: ctx}, call.To, call.ValueOrZero(), call.Data, uint8(op), salt,
	)
	if err != nil {
		return common.Hash{}, err
	}

	return common.Hash(h), nil
}

var _ sdk.BadgeInspector = (*BadgeInspector)(nil)

// BadgeInspector reads badge balances from a badger contract.
type BadgeInspector struct {
	client ContractDeployBackend
	badger common.Address
}

// NewBadgeInspector creates a new BadgeInspector for the badger at the given address.
func NewBadgeInspector(client ContractDeployBackend, badger common.Address) *BadgeInspector {
	return &BadgeInspector{
		client: client,
		badger: badger,
	}
}

// BalanceOf reads balanceOf(holder, id).
func (i *BadgeInspector) BalanceOf(ctx context.Context, holder common.Address, id types.BadgeID) (*big.Int, error) {
	badger, err := bindings.NewBadger(i.badger, i.client)
	if err != nil {
		return nil, err
	}

	return badger.BalanceOf(&bind.CallOpts{Context: ctx}, holder, badgeToBig(id))
}

// BalancesOf reads balanceOfBatch for one holder across several badge ids, the same read
// the decryption network performs when evaluating a badge ownership policy.
func (i *BadgeInspector) BalancesOf(ctx context.Context, holder common.Address, ids []types.BadgeID) ([]*big.Int, error) {
	badger, err := bindings.NewBadger(i.badger, i.client)
	if err != nil {
		return nil, err
	}

	holders := make([]common.Address, len(ids))
	bigIDs := make([]*big.Int, len(ids))
	for n, id := range ids {
		holders[n] = holder
		bigIDs[n] = badgeToBig(id)
	}

	return badger.BalanceOfBatch(&bind.CallOpts{Context: ctx}, holders, bigIDs)
}
