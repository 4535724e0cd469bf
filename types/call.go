package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrCallTargetUnset is returned when a call has no target address.
	ErrCallTargetUnset = errors.New("call target is unset")

	// ErrCallDataUnset is returned when a call carries no calldata.
	ErrCallDataUnset = errors.New("call data is unset")
)

// Call is a single populated contract invocation that has not been signed or submitted.
type Call struct {
	To    common.Address `json:"to"`
	Value *big.Int       `json:"value"`
	Data  []byte         `json:"data"`
}

// NewCall returns a Call with a copy of the given value and data.
func NewCall(to common.Address, value *big.Int, data []byte) Call {
	c := Call{To: to, Data: common.CopyBytes(data)}
	if value != nil {
		c.Value = new(big.Int).Set(value)
	}

	return c
}

// ValueOrZero returns the call value, treating an absent value as a zero-value transfer.
func (c Call) ValueOrZero() *big.Int {
	if c.Value == nil {
		return big.NewInt(0)
	}

	return new(big.Int).Set(c.Value)
}

// WithDefaults returns a copy of the call with an absent value replaced by zero.
func (c Call) WithDefaults() Call {
	return NewCall(c.To, c.ValueOrZero(), c.Data)
}

// Validate checks that the target and calldata are set and the value is not negative.
func (c Call) Validate() error {
	if c.To == (common.Address{}) {
		return ErrCallTargetUnset
	}
	if c.Data == nil {
		return ErrCallDataUnset
	}
	if c.Value != nil && c.Value.Sign() < 0 {
		return errors.New("call value is negative")
	}

	return nil
}
