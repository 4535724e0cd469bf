// Package config loads the deployment configuration of the governance modules.
package config

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/kolektivo/delaygov/internal/utils/safecast"
	"github.com/kolektivo/delaygov/types"
)

const (
	// ModuleKolektivo governs the treasury.
	ModuleKolektivo = "kolektivo"
	// ModuleMonetary governs the reserve.
	ModuleMonetary = "monetary"

	// CeloAlfajoresSelector is the chain selector of the Celo Alfajores testnet.
	CeloAlfajoresSelector = uint64(3552045678561919002)
)

// Config is the deployment the CLI operates on.
type Config struct {
	ChainSelector uint64 `mapstructure:"chain_selector" validate:"required"`
	// PolicyChain is the chain name the decryption network evaluates access conditions on.
	PolicyChain string `mapstructure:"policy_chain" validate:"required"`
	// VerifyCommitmentOnChain compares every derived commitment with getSecretTransactionHash.
	VerifyCommitmentOnChain bool `mapstructure:"verify_commitment_on_chain"`

	Modules Modules `mapstructure:"modules"`
	Pinning Pinning `mapstructure:"pinning"`
	Escrow  Escrow  `mapstructure:"escrow"`
}

// Modules holds the two governance domains.
type Modules struct {
	Kolektivo Module `mapstructure:"kolektivo"`
	Monetary  Module `mapstructure:"monetary"`
}

// Module is one delay module with its access control, badges and target.
type Module struct {
	Delay         string `mapstructure:"delay" validate:"required,eth_addr"`
	AccessControl string `mapstructure:"access_control" validate:"required,eth_addr"`
	Badger        string `mapstructure:"badger" validate:"required,eth_addr"`
	Target        string `mapstructure:"target" validate:"required,eth_addr"`
	// TargetKind selects the bound interface of the target.
	TargetKind string `mapstructure:"target_kind" validate:"required,oneof=treasury reserve"`

	// Badges maps badge roles, such as treasury-delegate, to the ids the badger issues.
	Badges map[string]uint64 `mapstructure:"badges" validate:"required,min=1"`

	Preset Preset `mapstructure:"preset"`
}

// Preset holds the arguments of the registration proposals the CLI can create.
type Preset struct {
	Token     string `mapstructure:"token" validate:"required,eth_addr"`
	Oracle    string `mapstructure:"oracle" validate:"required,eth_addr"`
	AssetType int    `mapstructure:"asset_type" validate:"gte=0,lte=255"`
	RiskLevel int    `mapstructure:"risk_level" validate:"gte=0,lte=255"`
}

// Pinning configures the content-addressed storage service.
type Pinning struct {
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Escrow configures the access-control network that holds payload keys.
type Escrow struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	Domain  string        `mapstructure:"domain" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Default returns the Celo test deployment. Contract addresses of the modules and the badge
// ids are deployment specific and have to come from the configuration file.
func Default() Config {
	return Config{
		ChainSelector:           CeloAlfajoresSelector,
		PolicyChain:             "celo",
		VerifyCommitmentOnChain: true,
		Modules: Modules{
			Kolektivo: Module{
				Target:     "0x74b06277Cd1efaA9f6595D25AdB54b4530d15BF5",
				TargetKind: "treasury",
				Preset: Preset{
					Token:     "0xe15043634c27384E99a3A4373f1d61bbDFf1da39",
					Oracle:    "0x044bE97050A7225176391d47615CE0667DCBa134",
					AssetType: 1,
					RiskLevel: 1,
				},
			},
			Monetary: Module{
				Target:     "0xdb2B19C8e3ce01E7f5101652B9dEb500D1298716",
				TargetKind: "reserve",
				Preset: Preset{
					Token:     "0xe15043634c27384E99a3A4373f1d61bbDFf1da39",
					Oracle:    "0x86baecC60c5c1CCe2c73f2Ff42588E6EBce18707",
					AssetType: 1,
					RiskLevel: 1,
				},
			},
		},
		Pinning: Pinning{
			BaseURL: "https://api.pinata.cloud",
			Timeout: 30 * time.Second,
		},
		Escrow: Escrow{
			Domain:  "delaygov",
			Timeout: 30 * time.Second,
		},
	}
}

// Load reads the configuration from v on top of Default and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := types.ChainSelector(c.ChainSelector).EVMChainID(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// Module returns the module configuration called name.
func (c *Config) Module(name string) (Module, bool) {
	switch name {
	case ModuleKolektivo:
		return c.Modules.Kolektivo, true
	case ModuleMonetary:
		return c.Modules.Monetary, true
	default:
		return Module{}, false
	}
}

// BadgeSet returns the configured badges by role.
func (m Module) BadgeSet() types.BadgeSet {
	set := make(types.BadgeSet, len(m.Badges))
	for role, id := range m.Badges {
		set[types.BadgeRole(role)] = types.BadgeID(id)
	}

	return set
}

// Addresses returns the parsed contract addresses of the module.
func (m Module) Addresses() (delay, accessControl, badger, target common.Address) {
	return common.HexToAddress(m.Delay), common.HexToAddress(m.AccessControl),
		common.HexToAddress(m.Badger), common.HexToAddress(m.Target)
}

// PresetArgs returns the preset asset type and risk level as uint8 contract arguments.
func (p Preset) PresetArgs() (assetType uint8, riskLevel uint8, err error) {
	if assetType, err = safecast.IntToUint8(p.AssetType); err != nil {
		return 0, 0, fmt.Errorf("asset type: %w", err)
	}
	if riskLevel, err = safecast.IntToUint8(p.RiskLevel); err != nil {
		return 0, 0, fmt.Errorf("risk level: %w", err)
	}

	return assetType, riskLevel, nil
}
