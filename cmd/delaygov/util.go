package delaygov

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kolektivo/delaygov"
	"github.com/kolektivo/delaygov/config"
	"github.com/kolektivo/delaygov/sdk"
	"github.com/kolektivo/delaygov/sdk/pinning"
	"github.com/kolektivo/delaygov/sdk/seal"
	"github.com/kolektivo/delaygov/types"
)

const defaultConfigName = "delaygov"

func loadConfig(path string) (*config.Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("DELAYGOV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	return config.Load(v)
}

// commandContext attaches the logger and, when --timeout is set, bounds the command by it.
func commandContext(cmd *cobra.Command, flags *rootFlags) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	lggr := zap.Must(zap.NewProduction()).Sugar()

	ctx = sdk.WithLogger(ctx, lggr)

	var cancel context.CancelFunc
	if flags.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	return ctx, func() {
		cancel()
		_ = lggr.Sync()
	}
}

func loadSigner(flags *rootFlags, secrets config.Secrets) (delaygov.Signer, error) {
	if flags.ledger {
		path, err := accounts.ParseDerivationPath(flags.derivationPath)
		if err != nil {
			return nil, delaygov.NewSignerUnavailableError(fmt.Errorf("failed to parse derivation path: %w", err))
		}

		return delaygov.NewLedgerSigner(path), nil
	}

	pk, err := secrets.ECDSAKey()
	if err != nil {
		return nil, delaygov.NewSignerUnavailableError(err)
	}

	return delaygov.NewPrivateKeySigner(pk), nil
}

// session is everything a command needs to talk to the deployment.
type session struct {
	cfg      *config.Config
	client   *ethclient.Client
	governor *delaygov.Governor
}

func (s *session) Close() {
	s.client.Close()
}

// openSession dials the RPC and builds a governor. With withSigner unset the governor can
// only read.
func openSession(ctx context.Context, flags *rootFlags, withSigner bool) (*session, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	secrets, err := config.LoadSecrets(flags.envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	rpcURL, err := secrets.RPC()
	if err != nil {
		return nil, err
	}

	chainID, err := types.ChainSelector(cfg.ChainSelector).EVMChainID()
	if err != nil {
		return nil, err
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}

	remoteID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}
	if remoteID.Uint64() != chainID {
		client.Close()
		return nil, fmt.Errorf("RPC serves chain %d, configuration expects %d", remoteID.Uint64(), chainID)
	}

	modules, err := delaygov.ModulesFromConfig(cfg)
	if err != nil {
		client.Close()
		return nil, err
	}

	opts := []delaygov.Option{
		delaygov.WithCommitmentVerification(cfg.VerifyCommitmentOnChain && !flags.fastHash),
		delaygov.WithDryRun(flags.dryRun),
	}

	var governor *delaygov.Governor
	if withSigner {
		signer, err := loadSigner(flags, secrets)
		if err != nil {
			client.Close()
			return nil, err
		}
		auth, err := signer.TransactOpts(new(big.Int).SetUint64(chainID))
		if err != nil {
			client.Close()
			return nil, delaygov.NewSignerUnavailableError(fmt.Errorf("failed to create transactor: %w", err))
		}

		opts = append(opts, delaygov.WithPublisher(newPublisher(cfg, secrets, signer, chainID)))
		governor, err = delaygov.NewGovernor(client, auth, modules, opts...)
		if err != nil {
			client.Close()
			return nil, err
		}
	} else {
		governor, err = delaygov.NewGovernor(client, nil, modules, opts...)
		if err != nil {
			client.Close()
			return nil, err
		}
	}

	return &session{cfg: cfg, client: client, governor: governor}, nil
}

func newPublisher(cfg *config.Config, secrets config.Secrets, signer seal.Signer, chainID uint64) *seal.Publisher {
	pinner := pinning.NewClient(cfg.Pinning.BaseURL, pinning.Credentials{
		APIKey:    secrets.PinataAPIKey,
		APISecret: secrets.PinataAPISecret,
		JWT:       secrets.PinataJWT,
	}, cfg.Pinning.Timeout)
	network := seal.NewNetwork(cfg.Escrow.URL, cfg.Escrow.Timeout)

	return seal.NewPublisher(network, pinner, signer, seal.PublisherOpts{
		Domain:  cfg.Escrow.Domain,
		URI:     cfg.Escrow.URL,
		ChainID: chainID,
	})
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoWrapText(false)
	table.SetHeader(header)

	return table
}

func printProposal(module string, result types.ProposalResult, dryRun bool) {
	table := newTable([]string{"Field", "Value"})
	table.Append([]string{"Module", module})
	table.Append([]string{"Kind", string(result.Kind)})
	table.Append([]string{"Target", result.Inner.To.Hex()})
	table.Append([]string{"Call data", fmt.Sprintf("0x%x", result.Inner.Data)})
	if result.Kind == types.KindPrivate {
		table.Append([]string{"Salt", result.Salt.String()})
		table.Append([]string{"Commitment", result.CommitmentHash.Hex()})
		if result.Sealed != nil {
			table.Append([]string{"Ciphertext CID", result.Sealed.CiphertextCID})
			table.Append([]string{"Locator", result.Sealed.Locator})
		}
	}
	if dryRun {
		table.Append([]string{"Submission", "simulated"})
	} else {
		table.Append([]string{"Transaction", result.Submission.TxHash.Hex()})
		table.Append([]string{"Queue index", fmt.Sprint(result.Submission.QueueIndex)})
	}
	table.Render()
}

func printVeto(module string, result types.VetoResult, dryRun bool) {
	table := newTable([]string{"Field", "Value"})
	table.Append([]string{"Module", module})
	table.Append([]string{"Previous pointer", fmt.Sprint(result.PreviousPointer)})
	table.Append([]string{"Vetoed until", fmt.Sprint(result.TargetIndex)})
	if dryRun {
		table.Append([]string{"Submission", "simulated"})
	} else {
		table.Append([]string{"Transaction", result.Submission.TxHash.Hex()})
	}
	table.Render()
}
