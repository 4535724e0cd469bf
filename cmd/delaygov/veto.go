package delaygov

import (
	"fmt"

	"github.com/spf13/cobra"
)

func buildVetoCmd(flags *rootFlags) *cobra.Command {
	var offset int64

	cmd := cobra.Command{
		Use:   "veto <kolektivo|monetary>",
		Short: "Veto queued entries of a delay module",
		Long: `Veto every queued entry up to pointer + offset + 1, where pointer is the module's current
queue pointer. Requires the module's veto badge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module := args[0]

			ctx, cancel := commandContext(cmd, flags)
			defer cancel()

			s, err := openSession(ctx, flags, true)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.governor.Veto(ctx, module, offset)
			if err != nil {
				return err
			}
			printVeto(module, result, flags.dryRun)

			return nil
		},
	}
	cmd.Flags().Int64Var(&offset, "offset", 0, "Position past the queue pointer, starting at zero")

	return &cmd
}

func buildQueuePointerCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "queue-pointer <kolektivo|monetary>",
		Short: "Print the queue pointer of a delay module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, flags)
			defer cancel()

			s, err := openSession(ctx, flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			pointer, err := s.governor.QueuePointer(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(pointer)

			return nil
		},
	}
}
