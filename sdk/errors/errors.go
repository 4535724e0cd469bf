package sdkerrors

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrSignerUnavailable is returned when no signer is connected.
var ErrSignerUnavailable = errors.New("signer not defined")

// SignerUnavailableError is returned when a flow is started without a usable signer. Err
// carries the reason the signer could not be loaded, if any.
type SignerUnavailableError struct {
	Err error
}

func (e *SignerUnavailableError) Error() string {
	if e.Err == nil {
		return ErrSignerUnavailable.Error()
	}

	return fmt.Sprintf("%s: %v", ErrSignerUnavailable, e.Err)
}

// Unwrap matches ErrSignerUnavailable and the underlying reason.
func (e *SignerUnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSignerUnavailable}
	}

	return []error{ErrSignerUnavailable, e.Err}
}

func NewSignerUnavailableError(err error) *SignerUnavailableError {
	return &SignerUnavailableError{Err: err}
}

// EncodingError is returned when a call cannot be constructed against a contract
// interface, or when an upstream call is malformed.
type EncodingError struct {
	Method string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("encoding error: %v", e.Err)
	}

	return fmt.Sprintf("encoding error: method %s: %v", e.Method, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

func NewEncodingError(method string, err error) *EncodingError {
	return &EncodingError{Method: method, Err: err}
}

// UnauthorizedError is returned when the signer does not hold the badge required for the
// action. It is raised before anything is sent to the chain.
type UnauthorizedError struct {
	Signer  common.Address
	BadgeID uint64
	Role    string
}

func (e *UnauthorizedError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("unauthorized: signer %s doesn't hold badge %d", e.Signer.Hex(), e.BadgeID)
	}

	return fmt.Sprintf("unauthorized: signer %s doesn't hold %s badge %d", e.Signer.Hex(), e.Role, e.BadgeID)
}

func NewUnauthorizedError[T ~uint64](signer common.Address, badgeID T, role string) *UnauthorizedError {
	return &UnauthorizedError{Signer: signer, BadgeID: uint64(badgeID), Role: role}
}

// PublishStage names the step of sealed payload publication that failed.
type PublishStage string

const (
	StageConnect  PublishStage = "connect"
	StageAuth     PublishStage = "auth"
	StageEncrypt  PublishStage = "encrypt"
	StageEscrow   PublishStage = "escrow"
	StagePinFile  PublishStage = "pin-file"
	StagePinJSON  PublishStage = "pin-json"
	StageMarshal  PublishStage = "marshal"
	StageValidate PublishStage = "validate"
)

// ErrMissingContentID is returned when storage accepts an upload but returns no identifier.
var ErrMissingContentID = errors.New("storage returned no content identifier")

// PublishError is returned when a sealed payload could not be encrypted or published.
type PublishError struct {
	Stage PublishStage
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed at %s: %v", e.Stage, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

func NewPublishError(stage PublishStage, err error) *PublishError {
	return &PublishError{Stage: stage, Err: err}
}

// SubmissionError is returned when a submitted transaction reverts, or when it is mined
// without the event that carries the queue index.
type SubmissionError struct {
	TxHash common.Hash
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	msg := "submission failed"
	if e.TxHash != (common.Hash{}) {
		msg += " for tx " + e.TxHash.Hex()
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func NewSubmissionError(txHash common.Hash, reason string, err error) *SubmissionError {
	return &SubmissionError{TxHash: txHash, Reason: reason, Err: err}
}

// CommitmentMismatchError is returned when the locally derived commitment hash differs
// from the one the delay module computes. The proposal must not be submitted.
type CommitmentMismatchError struct {
	Local   common.Hash
	OnChain common.Hash
}

func (e *CommitmentMismatchError) Error() string {
	return fmt.Sprintf("commitment hash mismatch: local %s, on-chain %s", e.Local.Hex(), e.OnChain.Hex())
}

func NewCommitmentMismatchError(local, onChain common.Hash) *CommitmentMismatchError {
	return &CommitmentMismatchError{Local: local, OnChain: onChain}
}
