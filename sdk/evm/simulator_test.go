package evm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/sdk/evm"
	"github.com/kolektivo/delaygov/types"
)

func TestSubmitter_SimulateSubmit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	f.backend.Mint(f.auth.From, uint64(proposerBadge), 1)
	f.backend.SetQueue(f.module.Delay, 0, 2, 0)

	wrapped, err := f.encoder.WrapPublic(types.NewCall(f.target, nil, []byte{0x01}))
	require.NoError(t, err)

	require.NoError(t, f.submitter.SimulateSubmit(testContext(t), wrapped, proposerBadge))

	// Dry runs leave the chain untouched.
	_, nonce, _ := f.backend.QueueState(f.module.Delay)
	assert.Equal(t, uint64(2), nonce)
	assert.Equal(t, 0, f.backend.Sent())
}

func TestSubmitter_SimulateSubmit_Failures(t *testing.T) {
	t.Parallel()

	t.Run("reverts with reason", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, false)
		f.backend.Mint(f.auth.From, uint64(proposerBadge), 1)
		wrapped, err := f.encoder.WrapVeto(1)
		require.NoError(t, err)

		err = f.submitter.SimulateSubmit(testContext(t), wrapped, proposerBadge)
		var execErr *evm.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "Cannot be higher than current queueNonce", execErr.RevertReason)
		assert.NotEmpty(t, execErr.RawRevertData)
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, false)
		wrapped, err := f.encoder.WrapVeto(1)
		require.NoError(t, err)

		err = f.submitter.SimulateSubmit(testContext(t), wrapped, proposerBadge)
		var unauth *sdkerrors.UnauthorizedError
		require.ErrorAs(t, err, &unauth)
	})
}
