package delaygov

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/kolektivo/delaygov/types"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		expected string
	}{
		{NewSignerUnavailableError(nil), "signer not defined"},
		{NewSignerUnavailableError(errors.New("ledger locked")), "signer not defined: ledger locked"},
		{NewUnknownModuleError("cultural"), `unknown governance module "cultural"`},
		{&MissingPublisherError{Module: "monetary"}, "module monetary: private proposals need a payload publisher"},
		{&InvalidVetoOffsetError{Offset: -2}, "invalid veto offset: -2"},
		{&InvalidVetoOffsetError{Offset: 9, Reason: "target 11 is past queue nonce 5"}, "invalid veto offset 9: target 11 is past queue nonce 5"},
		{
			newUnauthorizedError(common.HexToAddress("0x1"), 3, types.RoleTreasuryVetoDelegate),
			"unauthorized: signer 0x0000000000000000000000000000000000000001 doesn't hold treasury-veto-delegate badge 3",
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.err.Error())
	}
}

func TestSignerUnavailableError_Is(t *testing.T) {
	t.Parallel()

	locked := errors.New("ledger locked")
	err := error(NewSignerUnavailableError(locked))
	assert.ErrorIs(t, err, ErrSignerUnavailable)
	assert.ErrorIs(t, err, locked)
	assert.ErrorIs(t, NewSignerUnavailableError(nil), ErrSignerUnavailable)
}
