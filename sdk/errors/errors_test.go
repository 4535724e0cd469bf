package sdkerrors

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	hash := common.HexToHash("0x01")

	tests := []struct {
		err      error
		expected string
	}{
		{NewEncodingError("deregisterERC20", errors.New("argument count mismatch")), "encoding error: method deregisterERC20: argument count mismatch"},
		{NewEncodingError("", errors.New("call target is unset")), "encoding error: call target is unset"},
		{NewUnauthorizedError(common.HexToAddress("0x1"), uint64(3), "treasury-delegate"), "unauthorized: signer 0x0000000000000000000000000000000000000001 doesn't hold treasury-delegate badge 3"},
		{NewUnauthorizedError(common.HexToAddress("0x1"), uint64(3), ""), "unauthorized: signer 0x0000000000000000000000000000000000000001 doesn't hold badge 3"},
		{NewPublishError(StagePinJSON, ErrMissingContentID), "publish failed at pin-json: storage returned no content identifier"},
		{NewSubmissionError(common.Hash{}, "transaction reverted", nil), "submission failed: transaction reverted"},
		{NewSubmissionError(hash, "missing TransactionAdded event", nil), "submission failed for tx " + hash.Hex() + ": missing TransactionAdded event"},
		{NewCommitmentMismatchError(hash, common.Hash{}), "commitment hash mismatch: local " + hash.Hex() + ", on-chain " + common.Hash{}.Hex()},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.err.Error())
	}
}

func TestPublishError_Unwrap(t *testing.T) {
	t.Parallel()

	err := error(NewPublishError(StagePinFile, ErrMissingContentID))

	assert.ErrorIs(t, err, ErrMissingContentID)

	var perr *PublishError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, StagePinFile, perr.Stage)
}
