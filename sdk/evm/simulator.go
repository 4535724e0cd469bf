package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/sdk/evm/bindings"
	"github.com/kolektivo/delaygov/types"
)

// SimulateSubmit runs the submission as an eth_call from the signer without sending it.
func (s *Submitter) SimulateSubmit(ctx context.Context, wrapped types.WrappedCall, badge types.BadgeID) error {
	if err := s.preflight(ctx, wrapped, badge); err != nil {
		return err
	}

	bac, err := bindings.NewBACRoles(s.accessControl, s.client)
	if err != nil {
		return err
	}

	data, err := bac.PackExecTransactionFromModule(
		wrapped.To, wrapped.ValueOrZero(), wrapped.Data, uint8(wrapped.Operation), badgeToBig(badge),
	)
	if err != nil {
		return sdkerrors.NewEncodingError("execTransactionFromModule", err)
	}

	if _, err = s.client.CallContract(ctx, callMsg(s.auth.From, s.accessControl, data), nil); err != nil {
		return NewExecutionError(err)
	}

	return nil
}

// callMsg builds a zero-value eth_call message.
func callMsg(from common.Address, to common.Address, data []byte) ethereum.CallMsg {
	return ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: big.NewInt(0),
		Data:  data,
	}
}
