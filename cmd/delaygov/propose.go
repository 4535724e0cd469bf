package delaygov

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolektivo/delaygov/config"
	"github.com/kolektivo/delaygov/types"
)

func buildProposeCmd(flags *rootFlags) *cobra.Command {
	var private bool

	cmd := cobra.Command{
		Use:   "propose",
		Short: "Queue a proposal at a delay module",
		Long: `Queue a proposal at a delay module through its access-control module. Public proposals
are queued in the clear. Private proposals queue a commitment hash and the locator of a sealed
payload that only badge holders can decrypt.`,
	}
	cmd.PersistentFlags().BoolVar(&private, "private", false, "Seal the call and queue its commitment")

	cmd.AddCommand(buildProposePresetCmd(flags, &private, "treasury", config.ModuleKolektivo))
	cmd.AddCommand(buildProposePresetCmd(flags, &private, "reserve", config.ModuleMonetary))
	cmd.AddCommand(buildProposeCallCmd(flags, &private))

	return &cmd
}

func buildProposePresetCmd(flags *rootFlags, private *bool, target string, module string) *cobra.Command {
	return &cobra.Command{
		Use:   target,
		Short: fmt.Sprintf("Propose the preset %s registration on the %s module", target, module),
		Long: `Without --private the preset token is deregistered. With --private the preset token is
registered with its oracle, asset type and risk level.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, flags)
			defer cancel()

			s, err := openSession(ctx, flags, true)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.governor.ProposeRegistration(ctx, module, *private)
			if err != nil {
				return err
			}
			printProposal(module, result, flags.dryRun)

			return nil
		},
	}
}

func buildProposeCallCmd(flags *rootFlags, private *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "call <module> <method> [args...]",
		Short: "Propose any method of a module's target",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, method := args[0], args[1]

			ctx, cancel := commandContext(cmd, flags)
			defer cancel()

			s, err := openSession(ctx, flags, true)
			if err != nil {
				return err
			}
			defer s.Close()

			params, err := s.governor.ParseParams(module, method, args[2:])
			if err != nil {
				return err
			}

			var result types.ProposalResult
			if *private {
				result, err = s.governor.ProposePrivate(ctx, module, method, params...)
			} else {
				result, err = s.governor.ProposePublic(ctx, module, method, params...)
			}
			if err != nil {
				return err
			}
			printProposal(module, result, flags.dryRun)

			return nil
		},
	}
}

func buildMethodsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "methods <module>",
		Short: "List the methods of a module's target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			m, err := lookupModule(cfg, args[0])
			if err != nil {
				return err
			}

			composer, err := newComposer(m)
			if err != nil {
				return err
			}
			for _, name := range composer.Methods() {
				fmt.Println(name)
			}

			return nil
		},
	}
}
