package evm

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/kolektivo/delaygov/sdk"
	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/sdk/evm/bindings"
	"github.com/kolektivo/delaygov/types"
)

var (
	_ sdk.Submitter = (*Submitter)(nil)
	_ sdk.Simulator = (*Submitter)(nil)
)

// Submitter sends wrapped delay module calls through a BACRoles access-control module.
type Submitter struct {
	client        ContractDeployBackend
	auth          *bind.TransactOpts
	accessControl common.Address
	delay         common.Address
	badges        sdk.BadgeInspector
}

// NewSubmitter creates a new Submitter. Receipts are searched for events emitted by the
// delay module; badge balances are read from the badger.
func NewSubmitter(
	client ContractDeployBackend,
	auth *bind.TransactOpts,
	accessControl common.Address,
	delay common.Address,
	badger common.Address,
) *Submitter {
	return &Submitter{
		client:        client,
		auth:          auth,
		accessControl: accessControl,
		delay:         delay,
		badges:        NewBadgeInspector(client, badger),
	}
}

// Submit checks the signer's badge balance, sends
// execTransactionFromModule(to, value, data, operation, badgeId) to the access-control
// module and waits for the receipt. Confirmation is bounded only by ctx.
func (s *Submitter) Submit(
	ctx context.Context, wrapped types.WrappedCall, badge types.BadgeID,
) (types.SubmissionResult, error) {
	logger := sdk.LoggerFrom(ctx)

	if err := s.preflight(ctx, wrapped, badge); err != nil {
		return types.SubmissionResult{}, err
	}

	bac, err := bindings.NewBACRoles(s.accessControl, s.client)
	if err != nil {
		return types.SubmissionResult{}, err
	}

	opts := *s.auth
	opts.Context = ctx

	tx, err := bac.ExecTransactionFromModule(
		&opts, wrapped.To, wrapped.ValueOrZero(), wrapped.Data, uint8(wrapped.Operation), badgeToBig(badge),
	)
	if err != nil {
		return types.SubmissionResult{}, sdkerrors.NewSubmissionError(common.Hash{}, "send failed", NewExecutionError(err))
	}
	logger.Infof("Sent %s submission %s through access-control module %s", wrapped.Kind, tx.Hash().Hex(), s.accessControl.Hex())

	receipt, err := bind.WaitMined(ctx, s.client, tx)
	if err != nil {
		return types.SubmissionResult{}, sdkerrors.NewSubmissionError(tx.Hash(), "confirmation failed", err)
	}
	if receipt.Status != gethtypes.ReceiptStatusSuccessful {
		return types.SubmissionResult{}, sdkerrors.NewSubmissionError(tx.Hash(), "transaction reverted", nil)
	}

	result := types.SubmissionResult{
		TxHash:  tx.Hash(),
		Kind:    wrapped.Kind,
		RawData: receipt,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	if wrapped.Kind.EventName() == "" {
		return result, nil
	}

	result.QueueIndex, err = s.queueIndexFromReceipt(receipt, wrapped)
	if err != nil {
		return types.SubmissionResult{}, err
	}
	logger.Infof("Submission %s queued at index %d", tx.Hash().Hex(), result.QueueIndex)

	return result, nil
}

// preflight validates the wrapped call and checks the badge balance. No transaction is sent
// when it fails.
func (s *Submitter) preflight(ctx context.Context, wrapped types.WrappedCall, badge types.BadgeID) error {
	if s.auth == nil || s.auth.Signer == nil {
		return sdkerrors.NewSignerUnavailableError(nil)
	}
	if wrapped.Operation != types.OperationCall {
		return sdkerrors.NewEncodingError("", fmt.Errorf("unsupported operation %s", wrapped.Operation))
	}
	if wrapped.To != s.delay {
		return sdkerrors.NewEncodingError("", fmt.Errorf("wrapped call targets %s, not delay module %s", wrapped.To.Hex(), s.delay.Hex()))
	}
	if err := wrapped.Call.Validate(); err != nil {
		return sdkerrors.NewEncodingError("", err)
	}

	balance, err := s.badges.BalanceOf(ctx, s.auth.From, badge)
	if err != nil {
		return fmt.Errorf("failed to read balance of badge %d: %w", badge, err)
	}
	if balance == nil || balance.Sign() <= 0 {
		return sdkerrors.NewUnauthorizedError(s.auth.From, badge, "")
	}

	return nil
}

// queueIndexFromReceipt finds the delay module event of the wrapped call's kind in the
// receipt. A successful receipt without it is still a failed submission.
func (s *Submitter) queueIndexFromReceipt(receipt *gethtypes.Receipt, wrapped types.WrappedCall) (uint64, error) {
	delay, err := bindings.NewSecretDelay(s.delay, s.client)
	if err != nil {
		return 0, err
	}

	name := wrapped.Kind.EventName()
	eventID, ok := delay.EventID(name)
	if !ok {
		return 0, fmt.Errorf("event %s not found in delay ABI", name)
	}

	for _, l := range receipt.Logs {
		if l == nil || l.Address != s.delay || len(l.Topics) == 0 || l.Topics[0] != eventID {
			continue
		}

		switch wrapped.Kind {
		case types.KindPublic:
			ev, err := delay.ParseTransactionAdded(*l)
			if err != nil {
				return 0, sdkerrors.NewSubmissionError(receipt.TxHash, "malformed "+name+" event", err)
			}

			return bigToUint64("queue index", ev.QueueIndex)
		case types.KindPrivate:
			ev, err := delay.ParseSecretTransactionAdded(*l)
			if err != nil {
				return 0, sdkerrors.NewSubmissionError(receipt.TxHash, "malformed "+name+" event", err)
			}
			if common.Hash(ev.TxHash) != wrapped.CommitmentHash {
				return 0, sdkerrors.NewSubmissionError(receipt.TxHash, "queued commitment does not match", nil)
			}

			return bigToUint64("queue index", ev.QueueIndex)
		default:
			return 0, errors.New("no queue event for kind " + string(wrapped.Kind))
		}
	}

	return 0, sdkerrors.NewSubmissionError(receipt.TxHash, "missing "+name+" event", nil)
}
