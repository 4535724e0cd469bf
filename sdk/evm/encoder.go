package evm

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/kolektivo/delaygov/sdk"
	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/sdk/evm/bindings"
	"github.com/kolektivo/delaygov/types"
)

var _ sdk.DelayEncoder = (*Encoder)(nil)

// Encoder wraps calls into the format expected by the EVM SecretDelay module. Wrapped calls
// always carry a zero value; the inner value travels inside the calldata.
type Encoder struct {
	Delay common.Address
	abi   *abi.ABI
}

// NewEncoder returns a new Encoder for the delay module at the given address.
func NewEncoder(delay common.Address) (*Encoder, error) {
	parsed, err := bindings.SecretDelayMetaData.GetAbi()
	if err != nil {
		return nil, err
	}

	return &Encoder{Delay: delay, abi: parsed}, nil
}

// WrapPublic wraps the inner call as execTransactionFromModule(to, value, data, CALL) so the
// delay module queues it in the clear. An absent inner value is treated as zero.
func (e *Encoder) WrapPublic(inner types.Call) (types.WrappedCall, error) {
	const method = "execTransactionFromModule"

	if err := inner.Validate(); err != nil {
		return types.WrappedCall{}, sdkerrors.NewEncodingError(method, err)
	}
	inner = inner.WithDefaults()

	data, err := e.abi.Pack(method, inner.To, inner.Value, inner.Data, uint8(types.OperationCall))
	if err != nil {
		return types.WrappedCall{}, sdkerrors.NewEncodingError(method, err)
	}

	return types.WrappedCall{
		Call:      e.delayCall(data),
		Operation: types.OperationCall,
		Kind:      types.KindPublic,
		Inner:     &inner,
	}, nil
}

// WrapPrivate wraps enqueueSecretTx(commitment, locator). The commitment must have been
// derived under the current salt and the locator must point at the published descriptor.
func (e *Encoder) WrapPrivate(commitment common.Hash, locator string) (types.WrappedCall, error) {
	const method = "enqueueSecretTx"

	if commitment == (common.Hash{}) {
		return types.WrappedCall{}, sdkerrors.NewEncodingError(method, errors.New("commitment hash is unset"))
	}
	if locator == "" {
		return types.WrappedCall{}, sdkerrors.NewEncodingError(method, errors.New("payload locator is unset"))
	}

	data, err := e.abi.Pack(method, [32]byte(commitment), locator)
	if err != nil {
		return types.WrappedCall{}, sdkerrors.NewEncodingError(method, err)
	}

	return types.WrappedCall{
		Call:           e.delayCall(data),
		Operation:      types.OperationCall,
		Kind:           types.KindPrivate,
		CommitmentHash: commitment,
		Locator:        locator,
	}, nil
}

// WrapVeto wraps vetoTransactionsTill(newQueuePointer).
func (e *Encoder) WrapVeto(newQueuePointer uint64) (types.WrappedCall, error) {
	const method = "vetoTransactionsTill"

	data, err := e.abi.Pack(method, new(big.Int).SetUint64(newQueuePointer))
	if err != nil {
		return types.WrappedCall{}, sdkerrors.NewEncodingError(method, err)
	}

	return types.WrappedCall{
		Call:      e.delayCall(data),
		Operation: types.OperationCall,
		Kind:      types.KindVeto,
	}, nil
}

func (e *Encoder) delayCall(data []byte) types.Call {
	return types.NewCall(e.Delay, big.NewInt(0), data)
}
