package seal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/kolektivo/delaygov/sdk"
	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/types"
)

var _ sdk.PayloadPublisher = (*Publisher)(nil)

// Pinner stores content in content-addressed storage.
type Pinner interface {
	PinFile(ctx context.Context, content []byte, name string) (string, error)
	PinJSON(ctx context.Context, v any, name string) (string, error)
}

// PublisherOpts describe how the publisher introduces itself to the access-control network.
type PublisherOpts struct {
	Domain  string
	URI     string
	ChainID uint64
}

// Publisher seals private proposals, escrows their keys and pins the results.
type Publisher struct {
	network *Network
	pinner  Pinner
	signer  Signer
	opts    PublisherOpts
	now     func() time.Time
}

// NewPublisher creates a Publisher.
func NewPublisher(network *Network, pinner Pinner, signer Signer, opts PublisherOpts) *Publisher {
	return &Publisher{
		network: network,
		pinner:  pinner,
		signer:  signer,
		opts:    opts,
		now:     time.Now,
	}
}

// ProposalName is the storage name of the ciphertext and descriptor for a salt.
func ProposalName(payload types.SecretPayload) string {
	return fmt.Sprintf("Private Proposal %s", payload.Salt.ToInt().String())
}

// Publish encrypts payload, escrows the key under policy and pins the ciphertext and its
// descriptor. The session with the network is closed on every path. The returned Locator
// is the descriptor's content identifier.
func (p *Publisher) Publish(
	ctx context.Context, payload types.SecretPayload, policy types.AccessPolicy,
) (types.SealedPayload, error) {
	if payload.Salt == nil {
		return types.SealedPayload{}, sdkerrors.NewPublishError(sdkerrors.StageValidate, errors.New("payload salt is unset"))
	}
	if len(policy.Conditions) == 0 {
		return types.SealedPayload{}, sdkerrors.NewPublishError(sdkerrors.StageValidate, errors.New("access policy has no conditions"))
	}

	var sealed types.SealedPayload
	err := p.network.WithSession(ctx, func(session *Session) error {
		var err error
		sealed, err = p.seal(ctx, session, payload, policy)

		return err
	})
	var connectErr *ConnectError
	if errors.As(err, &connectErr) {
		return types.SealedPayload{}, sdkerrors.NewPublishError(sdkerrors.StageConnect, connectErr.Err)
	}
	if err != nil {
		return types.SealedPayload{}, err
	}

	return sealed, nil
}

// seal runs the publication steps inside an open session.
func (p *Publisher) seal(
	ctx context.Context, session *Session, payload types.SecretPayload, policy types.AccessPolicy,
) (types.SealedPayload, error) {
	lggr := sdk.LoggerFrom(ctx)
	lggr.Infof("Connected to access-control network, session %s", session.ID())

	authSig, err := SignAuthMessage(p.signer, AuthMessage{
		Domain:   p.opts.Domain,
		URI:      p.opts.URI,
		ChainID:  p.opts.ChainID,
		Nonce:    session.Nonce(),
		IssuedAt: p.now(),
	})
	if err != nil {
		return types.SealedPayload{}, sdkerrors.NewPublishError(sdkerrors.StageAuth, err)
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return types.SealedPayload{}, sdkerrors.NewPublishError(sdkerrors.StageMarshal, err)
	}

	ciphertext, key, err := Encrypt(plaintext)
	if err != nil {
		return types.SealedPayload{}, sdkerrors.NewPublishError(sdkerrors.StageEncrypt, err)
	}

	encryptedKey, err := session.SaveEncryptionKey(ctx, policy, key, authSig)
	if err != nil {
		return types.SealedPayload{}, sdkerrors.NewPublishError(sdkerrors.StageEscrow, err)
	}

	name := ProposalName(payload)
	fileCID, err := p.pinner.PinFile(ctx, ciphertext, name)
	if err != nil {
		return types.SealedPayload{}, sdkerrors.NewPublishError(sdkerrors.StagePinFile, err)
	}
	lggr.Infof("Pinned sealed payload %s as %s", name, fileCID)

	descriptor := types.PayloadDescriptor{
		EncryptedDataPin:      fileCID,
		Name:                  name,
		EncryptedSymmetricKey: hexutil.Encode(encryptedKey),
		Chain:                 policy.Chain,
		Conditions:            policy.Conditions,
	}
	locator, err := p.pinner.PinJSON(ctx, descriptor, name)
	if err != nil {
		return types.SealedPayload{}, sdkerrors.NewPublishError(sdkerrors.StagePinJSON, err)
	}
	lggr.Infof("Pinned payload descriptor as %s", locator)

	return types.SealedPayload{
		Ciphertext:    ciphertext,
		EncryptedKey:  encryptedKey,
		Policy:        policy,
		CiphertextCID: fileCID,
		Locator:       locator,
	}, nil
}
