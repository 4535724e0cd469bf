package delaygov

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/types"
)

// The taxonomy lives in sdk/errors so that chain and storage packages can return it without
// importing this package. The aliases below are the public names.
type (
	// EncodingError is returned when a call cannot be constructed or wrapped.
	EncodingError = sdkerrors.EncodingError
	// UnauthorizedError is returned when the signer holds none of the required badge.
	UnauthorizedError = sdkerrors.UnauthorizedError
	// PublishError is returned when a sealed payload cannot be encrypted or uploaded.
	PublishError = sdkerrors.PublishError
	// SubmissionError is returned when a mined submission reverts or lacks the expected event.
	SubmissionError = sdkerrors.SubmissionError
	// CommitmentMismatchError is returned when the local and on-chain commitment hashes differ.
	CommitmentMismatchError = sdkerrors.CommitmentMismatchError
	// SignerUnavailableError is returned when a flow is started without a usable signer.
	SignerUnavailableError = sdkerrors.SignerUnavailableError
)

// ErrSignerUnavailable is returned when no signer is connected.
var ErrSignerUnavailable = sdkerrors.ErrSignerUnavailable

// NewSignerUnavailableError creates a new SignerUnavailableError.
func NewSignerUnavailableError(err error) *SignerUnavailableError {
	return sdkerrors.NewSignerUnavailableError(err)
}

// UnknownModuleError is returned when a governance module name has no configuration.
type UnknownModuleError struct {
	Name string
}

// NewUnknownModuleError creates a new UnknownModuleError.
func NewUnknownModuleError(name string) *UnknownModuleError {
	return &UnknownModuleError{Name: name}
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown governance module %q", e.Name)
}

// MissingPublisherError is returned when a private proposal is requested from a governor
// that was built without a payload publisher.
type MissingPublisherError struct {
	Module string
}

func (e *MissingPublisherError) Error() string {
	return fmt.Sprintf("module %s: private proposals need a payload publisher", e.Module)
}

// InvalidVetoOffsetError is returned when a veto offset names no index the queue pointer can
// be advanced to.
type InvalidVetoOffsetError struct {
	Offset int64
	Reason string
}

func (e *InvalidVetoOffsetError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid veto offset: %d", e.Offset)
	}

	return fmt.Sprintf("invalid veto offset %d: %s", e.Offset, e.Reason)
}

// newUnauthorizedError is a shorthand used by the flows.
func newUnauthorizedError(signer common.Address, badge types.BadgeID, role types.BadgeRole) *UnauthorizedError {
	return sdkerrors.NewUnauthorizedError(signer, badge, string(role))
}
