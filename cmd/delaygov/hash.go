package delaygov

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/kolektivo/delaygov"
	"github.com/kolektivo/delaygov/config"
	"github.com/kolektivo/delaygov/sdk/evm"
	"github.com/kolektivo/delaygov/types"
)

// buildHashCmd computes commitment hashes without touching the network, so that a revealed
// payload can be checked against the hash queued on chain.
func buildHashCmd(flags *rootFlags) *cobra.Command {
	var salt string

	cmd := cobra.Command{
		Use:   "hash <module> <method> [args...]",
		Short: "Compute the commitment hash of a target call offline",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			m, err := lookupModule(cfg, args[0])
			if err != nil {
				return err
			}

			s, ok := new(big.Int).SetString(salt, 0)
			if !ok || s.Sign() < 0 || s.BitLen() > 256 {
				return fmt.Errorf("invalid salt %q", salt)
			}

			composer, err := newComposer(m)
			if err != nil {
				return err
			}
			call, err := composer.PopulateFromStrings(m.Target, args[1], args[2:])
			if err != nil {
				return err
			}

			hash := evm.HashSecretTransaction(call.To, call.Value, call.Data, types.OperationCall, s)

			table := newTable([]string{"Field", "Value"})
			table.Append([]string{"Target", call.To.Hex()})
			table.Append([]string{"Call data", fmt.Sprintf("0x%x", call.Data)})
			table.Append([]string{"Salt", s.String()})
			table.Append([]string{"Commitment", hash.Hex()})
			table.Render()

			return nil
		},
	}
	cmd.Flags().StringVar(&salt, "salt", "", "Salt the call is committed under")
	_ = cmd.MarkFlagRequired("salt")

	return &cmd
}

func lookupModule(cfg *config.Config, name string) (delaygov.Module, error) {
	modules, err := delaygov.ModulesFromConfig(cfg)
	if err != nil {
		return delaygov.Module{}, err
	}
	for _, m := range modules {
		if m.Name == name {
			return m, nil
		}
	}

	return delaygov.Module{}, delaygov.NewUnknownModuleError(name)
}

func newComposer(m delaygov.Module) (*evm.Composer, error) {
	if m.TargetABI == "" {
		return nil, errors.New("module " + m.Name + " has no target interface")
	}

	return evm.NewComposer(m.TargetABI)
}
