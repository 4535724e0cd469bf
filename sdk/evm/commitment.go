package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/kolektivo/delaygov/sdk"
	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/types"
)

// HashSecretTransaction computes the commitment hash of a private proposal:
//
//	keccak256(abi.encodePacked(address to, uint256 value, bytes data, uint8 operation, uint256 salt))
//
// This matches SecretDelay.getSecretTransactionHash and can be recomputed by anyone holding
// the plaintext.
func HashSecretTransaction(to common.Address, value *big.Int, data []byte, op types.Operation, salt *big.Int) common.Hash {
	if value == nil {
		value = big.NewInt(0)
	}
	if salt == nil {
		salt = big.NewInt(0)
	}

	packed := make([]byte, 0, common.AddressLength+32+len(data)+1+32)
	packed = append(packed, to.Bytes()...)
	packed = append(packed, math.U256Bytes(new(big.Int).Set(value))...)
	packed = append(packed, data...)
	packed = append(packed, byte(op))
	packed = append(packed, math.U256Bytes(new(big.Int).Set(salt))...)

	return crypto.Keccak256Hash(packed)
}

// Commitment is a derived commitment and the plaintext it commits to.
type Commitment struct {
	Hash    common.Hash
	Salt    *big.Int
	Payload types.SecretPayload
}

// CommitmentDeriver derives commitment hashes for private proposals.
type CommitmentDeriver struct {
	inspector     sdk.DelayInspector
	verifyOnChain bool
}

// NewCommitmentDeriver returns a deriver reading salts from the inspector. When
// verifyOnChain is set every local hash is checked against getSecretTransactionHash.
func NewCommitmentDeriver(inspector sdk.DelayInspector, verifyOnChain bool) *CommitmentDeriver {
	return &CommitmentDeriver{
		inspector:     inspector,
		verifyOnChain: verifyOnChain,
	}
}

// Derive reads the current salt and derives the commitment of call. A failed salt read is
// not retried; a mismatch between the local and on-chain hash is returned as a
// CommitmentMismatchError and the proposal must be abandoned.
func (d *CommitmentDeriver) Derive(ctx context.Context, call types.Call) (Commitment, error) {
	logger := sdk.LoggerFrom(ctx)

	if err := call.Validate(); err != nil {
		return Commitment{}, sdkerrors.NewEncodingError("", err)
	}
	call = call.WithDefaults()

	salt, err := d.inspector.Salt(ctx)
	if err != nil {
		return Commitment{}, fmt.Errorf("failed to read salt: %w", err)
	}
	logger.Infof("Read salt %s from delay module", salt)

	local := HashSecretTransaction(call.To, call.Value, call.Data, types.OperationCall, salt)

	if d.verifyOnChain {
		onChain, err := d.inspector.SecretTransactionHash(ctx, call, types.OperationCall, salt)
		if err != nil {
			return Commitment{}, fmt.Errorf("failed to read secret transaction hash: %w", err)
		}
		if onChain != local {
			return Commitment{}, sdkerrors.NewCommitmentMismatchError(local, onChain)
		}
	}
	logger.Infof("Derived commitment hash %s", local.Hex())

	return Commitment{
		Hash:    local,
		Salt:    salt,
		Payload: types.NewSecretPayload(call, types.OperationCall, salt),
	}, nil
}
