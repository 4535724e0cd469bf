package delaygov

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/kolektivo/delaygov/internal/utils/safecast"
	"github.com/kolektivo/delaygov/sdk"
	"github.com/kolektivo/delaygov/sdk/evm"
	"github.com/kolektivo/delaygov/types"
)

// dryRunLocator stands in for the payload locator when private proposals are simulated.
const dryRunLocator = "dry-run"

// Module is one governance domain: a delay module, the access-control module in front of it,
// the badger issuing its badges and the target contract it governs.
type Module struct {
	Name          string
	Delay         common.Address
	AccessControl common.Address
	Badger        common.Address
	Target        common.Address
	TargetABI     string

	Roles  ModuleRoles
	Badges types.BadgeSet

	// PolicyChain is the chain name access conditions of private proposals refer to.
	PolicyChain string
	Preset      RegistrationPreset
}

// ModuleRoles are the badge roles a module checks for each action.
type ModuleRoles struct {
	Proposer types.BadgeRole
	Veto     types.BadgeRole
	// Policy roles may decrypt private proposals.
	Policy []types.BadgeRole
}

// Validate checks that every role of the module resolves to a badge and that proposing and
// vetoing use different badges.
func (m Module) Validate() error {
	if m.Name == "" {
		return errors.New("module name is empty")
	}
	for _, addr := range []common.Address{m.Delay, m.AccessControl, m.Badger, m.Target} {
		if addr == (common.Address{}) {
			return fmt.Errorf("module %s: contract address is unset", m.Name)
		}
	}

	proposer, err := m.Badges.Get(m.Roles.Proposer)
	if err != nil {
		return fmt.Errorf("module %s: %w", m.Name, err)
	}
	veto, err := m.Badges.Get(m.Roles.Veto)
	if err != nil {
		return fmt.Errorf("module %s: %w", m.Name, err)
	}
	if proposer == veto {
		return fmt.Errorf("module %s: badge %d is used to propose and to veto", m.Name, proposer)
	}
	if _, err := m.Badges.IDs(m.Roles.Policy...); err != nil {
		return fmt.Errorf("module %s: %w", m.Name, err)
	}

	return nil
}

// Governor creates and vetoes delayed proposals on a set of governance modules. Every flow
// is strictly sequential and nothing is retried.
type Governor struct {
	client  evm.ContractDeployBackend
	auth    *bind.TransactOpts
	modules map[string]Module

	publisher     sdk.PayloadPublisher
	verifyOnChain bool
	dryRun        bool
}

type Option func(*Governor)

// WithPublisher sets the publisher private proposals are sealed with.
func WithPublisher(p sdk.PayloadPublisher) Option {
	return func(g *Governor) {
		g.publisher = p
	}
}

// WithCommitmentVerification compares each derived commitment with the delay module's own
// getSecretTransactionHash before anything is published.
func WithCommitmentVerification(enabled bool) Option {
	return func(g *Governor) {
		g.verifyOnChain = enabled
	}
}

// WithDryRun simulates submissions with eth_call instead of sending them. Private
// proposals are not published in a dry run.
func WithDryRun(enabled bool) Option {
	return func(g *Governor) {
		g.dryRun = enabled
	}
}

// NewGovernor creates a Governor. auth may be nil for read-only use.
func NewGovernor(client evm.ContractDeployBackend, auth *bind.TransactOpts, modules []Module, opts ...Option) (*Governor, error) {
	g := &Governor{
		client:        client,
		auth:          auth,
		modules:       make(map[string]Module, len(modules)),
		verifyOnChain: true,
	}
	for _, m := range modules {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, ok := g.modules[m.Name]; ok {
			return nil, fmt.Errorf("module %s is configured twice", m.Name)
		}
		g.modules[m.Name] = m
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Module returns the module called name.
func (g *Governor) Module(name string) (Module, error) {
	m, ok := g.modules[name]
	if !ok {
		return Module{}, NewUnknownModuleError(name)
	}

	return m, nil
}

// ProposePublic queues target.method(params...) in the clear at the module's delay.
func (g *Governor) ProposePublic(ctx context.Context, module string, method string, params ...any) (types.ProposalResult, error) {
	lggr := sdk.LoggerFrom(ctx)

	m, err := g.prepare(module)
	if err != nil {
		return types.ProposalResult{}, err
	}
	lggr.Infof("Creating a public proposal on %s delay %s", m.Name, m.Delay.Hex())

	call, err := g.populate(m, method, params...)
	if err != nil {
		return types.ProposalResult{}, err
	}
	lggr.Infof("Populated %s call to %s", method, m.Target.Hex())

	encoder, err := evm.NewEncoder(m.Delay)
	if err != nil {
		return types.ProposalResult{}, err
	}
	wrapped, err := encoder.WrapPublic(call)
	if err != nil {
		return types.ProposalResult{}, err
	}

	submission, err := g.submit(ctx, m, wrapped, m.Roles.Proposer)
	if err != nil {
		return types.ProposalResult{}, err
	}

	return types.ProposalResult{
		Kind:       types.KindPublic,
		Inner:      call,
		Submission: submission,
	}, nil
}

// ProposePrivate commits to target.method(params...) at the module's delay. The call is
// sealed so that only holders of the module's policy badges can read it; the delay module
// only sees its commitment hash and the locator of the sealed payload.
func (g *Governor) ProposePrivate(ctx context.Context, module string, method string, params ...any) (types.ProposalResult, error) {
	lggr := sdk.LoggerFrom(ctx)

	m, err := g.prepare(module)
	if err != nil {
		return types.ProposalResult{}, err
	}
	if g.publisher == nil && !g.dryRun {
		return types.ProposalResult{}, &MissingPublisherError{Module: m.Name}
	}
	lggr.Infof("Creating a private proposal on %s delay %s", m.Name, m.Delay.Hex())

	// Nothing is published for a signer that could not submit.
	policyIDs, err := g.checkBadges(ctx, m)
	if err != nil {
		return types.ProposalResult{}, err
	}

	call, err := g.populate(m, method, params...)
	if err != nil {
		return types.ProposalResult{}, err
	}
	lggr.Infof("Populated %s call to %s", method, m.Target.Hex())

	deriver := evm.NewCommitmentDeriver(evm.NewDelayInspector(g.client, m.Delay), g.verifyOnChain)
	commitment, err := deriver.Derive(ctx, call)
	if err != nil {
		return types.ProposalResult{}, err
	}

	policy := types.NewBadgeOwnershipPolicy(m.PolicyChain, m.Badger, policyIDs)

	var sealed *types.SealedPayload
	locator := dryRunLocator
	if !g.dryRun {
		published, err := g.publisher.Publish(ctx, commitment.Payload, policy)
		if err != nil {
			return types.ProposalResult{}, err
		}
		sealed = &published
		locator = published.Locator
		lggr.Infof("Published sealed payload at %s", locator)
	}

	encoder, err := evm.NewEncoder(m.Delay)
	if err != nil {
		return types.ProposalResult{}, err
	}
	wrapped, err := encoder.WrapPrivate(commitment.Hash, locator)
	if err != nil {
		return types.ProposalResult{}, err
	}

	submission, err := g.submit(ctx, m, wrapped, m.Roles.Proposer)
	if err != nil {
		return types.ProposalResult{}, err
	}

	return types.ProposalResult{
		Kind:           types.KindPrivate,
		Inner:          call,
		Salt:           commitment.Salt,
		CommitmentHash: commitment.Hash,
		Sealed:         sealed,
		Submission:     submission,
	}, nil
}

// VetoTarget is the queue index a veto advances the pointer to: pointer + offset + 1.
//
// offset counts entries past the pointer starting at zero, so the result is one past the
// entry the offset names. This is kept as the index the delegates are used to.
func VetoTarget(pointer uint64, offset int64) (uint64, error) {
	uoffset, err := safecast.Int64ToUint64(offset)
	if err != nil {
		return 0, &InvalidVetoOffsetError{Offset: offset}
	}
	if uoffset >= math.MaxUint64-pointer {
		return 0, &InvalidVetoOffsetError{Offset: offset, Reason: fmt.Sprintf("overflows queue pointer %d", pointer)}
	}

	return pointer + uoffset + 1, nil
}

// Veto reads the module's queue pointer and vetoes every entry up to VetoTarget(pointer,
// offset) using the module's veto badge. A target past the queue nonce is rejected before
// anything is sent.
func (g *Governor) Veto(ctx context.Context, module string, offset int64) (types.VetoResult, error) {
	lggr := sdk.LoggerFrom(ctx)

	m, err := g.prepare(module)
	if err != nil {
		return types.VetoResult{}, err
	}

	inspector := evm.NewDelayInspector(g.client, m.Delay)
	pointer, err := inspector.QueuePointer(ctx)
	if err != nil {
		return types.VetoResult{}, fmt.Errorf("failed to read queue pointer: %w", err)
	}
	target, err := VetoTarget(pointer, offset)
	if err != nil {
		return types.VetoResult{}, err
	}

	nonce, err := inspector.QueueNonce(ctx)
	if err != nil {
		return types.VetoResult{}, fmt.Errorf("failed to read queue nonce: %w", err)
	}
	if target > nonce {
		return types.VetoResult{}, &InvalidVetoOffsetError{
			Offset: offset,
			Reason: fmt.Sprintf("target %d is past queue nonce %d", target, nonce),
		}
	}
	lggr.Infof("Vetoing %s delay entries from %d until %d", m.Name, pointer, target)

	encoder, err := evm.NewEncoder(m.Delay)
	if err != nil {
		return types.VetoResult{}, err
	}
	wrapped, err := encoder.WrapVeto(target)
	if err != nil {
		return types.VetoResult{}, err
	}

	submission, err := g.submit(ctx, m, wrapped, m.Roles.Veto)
	if err != nil {
		return types.VetoResult{}, err
	}

	return types.VetoResult{
		PreviousPointer: pointer,
		TargetIndex:     target,
		Submission:      submission,
	}, nil
}

// QueuePointer reads the module's queue pointer. It needs no signer.
func (g *Governor) QueuePointer(ctx context.Context, module string) (uint64, error) {
	m, err := g.Module(module)
	if err != nil {
		return 0, err
	}

	return evm.NewDelayInspector(g.client, m.Delay).QueuePointer(ctx)
}

// Methods lists the methods of the module's target.
func (g *Governor) Methods(module string) ([]string, error) {
	m, err := g.Module(module)
	if err != nil {
		return nil, err
	}
	composer, err := evm.NewComposer(m.TargetABI)
	if err != nil {
		return nil, err
	}

	return composer.Methods(), nil
}

// ParseParams converts textual arguments of a target method into call parameters.
func (g *Governor) ParseParams(module string, method string, args []string) ([]any, error) {
	m, err := g.Module(module)
	if err != nil {
		return nil, err
	}
	composer, err := evm.NewComposer(m.TargetABI)
	if err != nil {
		return nil, err
	}

	return composer.ParseParams(method, args)
}

func (g *Governor) prepare(module string) (Module, error) {
	if g.auth == nil || g.auth.Signer == nil {
		return Module{}, NewSignerUnavailableError(nil)
	}

	return g.Module(module)
}

func (g *Governor) populate(m Module, method string, params ...any) (types.Call, error) {
	composer, err := evm.NewComposer(m.TargetABI)
	if err != nil {
		return types.Call{}, err
	}

	return composer.Populate(m.Target, method, params...)
}

// checkBadges reads the signer's proposer and policy badges in one batch and returns the
// policy badge ids. The proposer badge is required.
func (g *Governor) checkBadges(ctx context.Context, m Module) ([]types.BadgeID, error) {
	proposer, err := m.Badges.Get(m.Roles.Proposer)
	if err != nil {
		return nil, err
	}
	policyIDs, err := m.Badges.IDs(m.Roles.Policy...)
	if err != nil {
		return nil, err
	}

	ids := append([]types.BadgeID{proposer}, policyIDs...)
	balances, err := evm.NewBadgeInspector(g.client, m.Badger).BalancesOf(ctx, g.auth.From, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to read badge balances: %w", err)
	}
	if len(balances) != len(ids) {
		return nil, fmt.Errorf("badger returned %d balances for %d badges", len(balances), len(ids))
	}
	if balances[0] == nil || balances[0].Sign() <= 0 {
		return nil, newUnauthorizedError(g.auth.From, proposer, m.Roles.Proposer)
	}

	held := 0
	for _, balance := range balances[1:] {
		if balance != nil && balance.Sign() > 0 {
			held++
		}
	}
	sdk.LoggerFrom(ctx).Infof("Signer %s holds %d of %d policy badges of %s", g.auth.From.Hex(), held, len(policyIDs), m.Name)

	return policyIDs, nil
}

func (g *Governor) submit(ctx context.Context, m Module, wrapped types.WrappedCall, role types.BadgeRole) (types.SubmissionResult, error) {
	badge, err := m.Badges.Get(role)
	if err != nil {
		return types.SubmissionResult{}, err
	}

	submitter := evm.NewSubmitter(g.client, g.auth, m.AccessControl, m.Delay, m.Badger)
	if g.dryRun {
		if err = submitter.SimulateSubmit(ctx, wrapped, badge); err != nil {
			return types.SubmissionResult{}, withRole(err, role)
		}
		sdk.LoggerFrom(ctx).Infof("Dry run of %s submission to %s succeeded", wrapped.Kind, m.AccessControl.Hex())

		return types.SubmissionResult{Kind: wrapped.Kind}, nil
	}

	result, err := submitter.Submit(ctx, wrapped, badge)
	if err != nil {
		return types.SubmissionResult{}, withRole(err, role)
	}

	return result, nil
}

// withRole names the missing role on unauthorized errors raised below the governor.
func withRole(err error, role types.BadgeRole) error {
	var unauthorized *UnauthorizedError
	if errors.As(err, &unauthorized) && unauthorized.Role == "" {
		unauthorized.Role = string(role)
	}

	return err
}
