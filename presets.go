package delaygov

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/kolektivo/delaygov/config"
	"github.com/kolektivo/delaygov/sdk/evm/bindings"
	"github.com/kolektivo/delaygov/types"
)

const (
	methodRegisterERC20   = "registerERC20"
	methodDeregisterERC20 = "deregisterERC20"
)

// TreasuryRoles are the roles of the Kolektivo module.
var TreasuryRoles = ModuleRoles{
	Proposer: types.RoleTreasuryDelegate,
	Veto:     types.RoleTreasuryVetoDelegate,
	Policy: []types.BadgeRole{
		types.RoleTreasuryDelegate,
		types.RoleKolektivoMultisigMember,
		types.RoleTreasuryVetoDelegate,
	},
}

// ReserveRoles are the roles of the Monetary module.
var ReserveRoles = ModuleRoles{
	Proposer: types.RoleReserveDelegate,
	Veto:     types.RoleReserveVetoDelegate,
	Policy: []types.BadgeRole{
		types.RoleReserveDelegate,
		types.RoleLocalMultisigMember,
		types.RoleReserveVetoDelegate,
	},
}

// RegistrationPreset holds the arguments of the asset registration proposals of a module.
type RegistrationPreset struct {
	Token     common.Address
	Oracle    common.Address
	AssetType uint8
	RiskLevel uint8
}

// ModulesFromConfig builds the governance modules of a deployment.
func ModulesFromConfig(cfg *config.Config) ([]Module, error) {
	names := []string{config.ModuleKolektivo, config.ModuleMonetary}

	modules := make([]Module, 0, len(names))
	for _, name := range names {
		mc, _ := cfg.Module(name)

		m, err := moduleFromConfig(name, cfg.PolicyChain, mc)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}

	return modules, nil
}

func moduleFromConfig(name string, policyChain string, mc config.Module) (Module, error) {
	var (
		targetABI string
		roles     ModuleRoles
	)
	switch mc.TargetKind {
	case "treasury":
		targetABI, roles = bindings.ITreasuryABI, TreasuryRoles
	case "reserve":
		targetABI, roles = bindings.IReserveABI, ReserveRoles
	default:
		return Module{}, fmt.Errorf("module %s: unknown target kind %q", name, mc.TargetKind)
	}

	assetType, riskLevel, err := mc.Preset.PresetArgs()
	if err != nil {
		return Module{}, fmt.Errorf("module %s: %w", name, err)
	}

	delay, accessControl, badger, target := mc.Addresses()
	m := Module{
		Name:          name,
		Delay:         delay,
		AccessControl: accessControl,
		Badger:        badger,
		Target:        target,
		TargetABI:     targetABI,
		Roles:         roles,
		Badges:        mc.BadgeSet(),
		PolicyChain:   policyChain,
		Preset: RegistrationPreset{
			Token:     common.HexToAddress(mc.Preset.Token),
			Oracle:    common.HexToAddress(mc.Preset.Oracle),
			AssetType: assetType,
			RiskLevel: riskLevel,
		},
	}

	return m, m.Validate()
}

// ProposeRegistration creates the preset proposal of a module. A private proposal
// registers the preset token with its oracle; a public one deregisters the token.
func (g *Governor) ProposeRegistration(ctx context.Context, module string, private bool) (types.ProposalResult, error) {
	m, err := g.Module(module)
	if err != nil {
		return types.ProposalResult{}, err
	}
	p := m.Preset

	if private {
		return g.ProposePrivate(ctx, module, methodRegisterERC20, p.Token, p.Oracle, p.AssetType, p.RiskLevel)
	}

	return g.ProposePublic(ctx, module, methodDeregisterERC20, p.Token)
}

// ProposeTreasury creates the preset proposal of the Kolektivo module.
func (g *Governor) ProposeTreasury(ctx context.Context, private bool) (types.ProposalResult, error) {
	return g.ProposeRegistration(ctx, config.ModuleKolektivo, private)
}

// ProposeReserve creates the preset proposal of the Monetary module.
func (g *Governor) ProposeReserve(ctx context.Context, private bool) (types.ProposalResult, error) {
	return g.ProposeRegistration(ctx, config.ModuleMonetary, private)
}
