package delaygov

import (
	"time"

	"github.com/spf13/cobra"
)

// rootFlags are shared by every command.
type rootFlags struct {
	configPath     string
	envPath        string
	ledger         bool
	derivationPath string
	dryRun         bool
	fastHash       bool
	timeout        time.Duration
}

func BuildDelayGovCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := cobra.Command{
		Use:   "delaygov",
		Short: "Create and veto delayed governance proposals",
		Long: `Create public and private proposals on the Kolektivo and Monetary delay modules,
veto queued entries and inspect the queue. Secrets (PRIVATE_KEY, RPC_URL, PINATA_API_KEY,
PINATA_API_SECRET, PINATA_JWT) are read from the environment or a .env file.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Deployment configuration file (defaults to ./delaygov.yaml)")
	cmd.PersistentFlags().StringVar(&flags.envPath, "env", ".env", "File the secrets are loaded from")
	cmd.PersistentFlags().BoolVar(&flags.ledger, "ledger", false, "Sign with a Ledger instead of PRIVATE_KEY")
	cmd.PersistentFlags().StringVar(&flags.derivationPath, "derivationPath", "m/44'/60'/0'/0/0", "The derivation path for the ledger")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Simulate submissions instead of sending them; private payloads are not published")
	cmd.PersistentFlags().BoolVar(&flags.fastHash, "fast-hash", false, "Skip the on-chain check of commitment hashes")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "Time allowed for a command, including confirmation (0 waits indefinitely)")

	cmd.AddCommand(buildProposeCmd(flags))
	cmd.AddCommand(buildVetoCmd(flags))
	cmd.AddCommand(buildQueuePointerCmd(flags))
	cmd.AddCommand(buildMethodsCmd(flags))
	cmd.AddCommand(buildHashCmd(flags))

	return &cmd
}
