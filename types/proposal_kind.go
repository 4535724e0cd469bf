package types //nolint:revive

// ProposalKind selects how a proposal is queued at the delay module.
type ProposalKind string

const (
	// KindPublic queues the call in the clear.
	KindPublic ProposalKind = "public"
	// KindPrivate queues a commitment hash of the call and a locator of its sealed payload.
	KindPrivate ProposalKind = "private"
	// KindVeto advances the queue pointer past pending entries.
	KindVeto ProposalKind = "veto"
)

// EventName is the delay module event that carries the queue index of a new entry of this
// kind. Vetoes do not add entries and return an empty name.
func (k ProposalKind) EventName() string {
	switch k {
	case KindPublic:
		return "TransactionAdded"
	case KindPrivate:
		return "SecretTransactionAdded"
	default:
		return ""
	}
}
