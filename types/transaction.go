package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SubmissionResult is the outcome of a mined access-gated submission.
type SubmissionResult struct {
	TxHash      common.Hash  `json:"txHash"`
	BlockNumber uint64       `json:"blockNumber"`
	Kind        ProposalKind `json:"kind"`

	// QueueIndex is the delay module queue slot assigned to the new entry. Zero for vetoes.
	QueueIndex uint64 `json:"queueIndex"`
	// RawData holds the chain-specific transaction or receipt.
	RawData any `json:"-"`
}

// ProposalResult is returned from a proposal flow.
type ProposalResult struct {
	Kind  ProposalKind `json:"kind"`
	Inner Call         `json:"inner"`

	// Salt, CommitmentHash and Sealed are set for private proposals.
	Salt           *big.Int       `json:"salt,omitempty"`
	CommitmentHash common.Hash    `json:"commitmentHash,omitempty"`
	Sealed         *SealedPayload `json:"sealed,omitempty"`

	Submission SubmissionResult `json:"submission"`
}

// VetoResult is returned from a veto flow.
type VetoResult struct {
	PreviousPointer uint64           `json:"previousPointer"`
	TargetIndex     uint64           `json:"targetIndex"`
	Submission      SubmissionResult `json:"submission"`
}
