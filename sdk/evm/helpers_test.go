package evm_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kolektivo/delaygov/internal/testutils/evmfake"
	"github.com/kolektivo/delaygov/sdk"
	"github.com/kolektivo/delaygov/sdk/evm"
	"github.com/kolektivo/delaygov/types"
)

const proposerBadge = types.BadgeID(1)

type fixture struct {
	backend   *evmfake.Backend
	module    evmfake.Module
	target    common.Address
	auth      *bind.TransactOpts
	encoder   *evm.Encoder
	submitter *evm.Submitter
}

// newFixture deploys one governance module. With skipEstimate the transactor uses a fixed
// gas limit so reverting transactions are mined instead of failing estimation.
func newFixture(t *testing.T, skipEstimate bool) *fixture {
	t.Helper()

	backend := evmfake.New()
	module := backend.DeployModule("kolektivo")
	auth, _ := evmfake.NewTransactOpts(t, skipEstimate)

	encoder, err := evm.NewEncoder(module.Delay)
	require.NoError(t, err)

	return &fixture{
		backend:   backend,
		module:    module,
		target:    backend.DeployTarget("treasury"),
		auth:      auth,
		encoder:   encoder,
		submitter: evm.NewSubmitter(backend, auth, module.AccessControl, module.Delay, backend.Badger()),
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	return sdk.WithLogger(t.Context(), zaptest.NewLogger(t).Sugar())
}
