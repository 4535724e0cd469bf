// Package evmfake is an in-memory chain backend that executes the badger, BACRoles and
// SecretDelay contract semantics. It implements bind.ContractBackend and
// bind.DeployBackend so bindings and bind.WaitMined run against it unchanged.
package evmfake

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/kolektivo/delaygov/internal/testutils"
)

const (
	// ChainID is the chain id transactions must be signed for.
	ChainID = 1337

	defaultGas = uint64(250_000)
)

var (
	_ bind.ContractBackend = (*Backend)(nil)
	_ bind.DeployBackend   = (*Backend)(nil)
)

// Module is one delay module and the access-control module in front of it.
type Module struct {
	AccessControl common.Address
	Delay         common.Address
}

// Backend is a single-node chain that mines every accepted transaction immediately.
type Backend struct {
	mu sync.Mutex

	signer  gethtypes.Signer
	badger  common.Address
	modules []Module
	code    map[common.Address]bool

	state    *chainState
	block    uint64
	nonces   map[common.Address]uint64
	receipts map[common.Hash]*gethtypes.Receipt
	logs     []gethtypes.Log
	sent     int

	tamperSecretHash bool
	dropEvents       bool
	callErrors       map[string]error
	sendErr          error
}

// New creates an empty chain with a badger contract deployed.
func New() *Backend {
	return &Backend{
		signer:     gethtypes.LatestSignerForChainID(big.NewInt(ChainID)),
		badger:     addressOf("badger"),
		code:       map[common.Address]bool{addressOf("badger"): true},
		state:      newChainState(),
		nonces:     map[common.Address]uint64{},
		receipts:   map[common.Hash]*gethtypes.Receipt{},
		callErrors: map[string]error{},
	}
}

func addressOf(name string) common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte("evmfake/" + name)))
}

// Badger returns the address of the badge contract.
func (b *Backend) Badger() common.Address {
	return b.badger
}

// DeployModule deploys a SecretDelay module and a BACRoles module forwarding to it.
func (b *Backend) DeployModule(name string) Module {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := Module{
		AccessControl: addressOf(name + "/access-control"),
		Delay:         addressOf(name + "/delay"),
	}
	b.modules = append(b.modules, m)
	b.code[m.AccessControl] = true
	b.code[m.Delay] = true
	b.state.delays[m.Delay] = &delayState{}

	return m
}

// DeployTarget marks address as holding code, for composed calls that name it.
func (b *Backend) DeployTarget(name string) common.Address {
	b.mu.Lock()
	defer b.mu.Unlock()

	addr := addressOf(name)
	b.code[addr] = true

	return addr
}

func (b *Backend) delayOf(accessControl common.Address) common.Address {
	for _, m := range b.modules {
		if m.AccessControl == accessControl {
			return m.Delay
		}
	}

	return common.Address{}
}

func (b *Backend) accessControlOf(delay common.Address) common.Address {
	for _, m := range b.modules {
		if m.Delay == delay {
			return m.AccessControl
		}
	}

	return common.Address{}
}

// Mint gives holder amount of badge id.
func (b *Backend) Mint(holder common.Address, id uint64, amount int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.badges[holder] == nil {
		b.state.badges[holder] = map[uint64]*big.Int{}
	}
	b.state.badges[holder][id] = big.NewInt(amount)
}

// SetQueue overwrites the salt, queue nonce and pointer of a delay module. Queue entries
// below the nonce are filled with zero hashes.
func (b *Backend) SetQueue(delay common.Address, salt, nonce, pointer uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.state.delays[delay]
	d.salt, d.queueNonce, d.queuePointer = salt, nonce, pointer
	for uint64(len(d.hashes)) < nonce {
		d.hashes = append(d.hashes, common.Hash{})
		d.uris = append(d.uris, "")
	}
}

// QueueState returns the salt, queue nonce and pointer of a delay module.
func (b *Backend) QueueState(delay common.Address) (salt, nonce, pointer uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.state.delays[delay]

	return d.salt, d.queueNonce, d.queuePointer
}

// Queued returns the hash and locator queued at index.
func (b *Backend) Queued(delay common.Address, index uint64) (common.Hash, string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := b.state.delays[delay]
	if index >= uint64(len(d.hashes)) {
		return common.Hash{}, "", false
	}

	return d.hashes[index], d.uris[index], true
}

// Sent returns the number of transactions accepted by SendTransaction.
func (b *Backend) Sent() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.sent
}

// TamperSecretHash makes getSecretTransactionHash return a corrupted hash.
func (b *Backend) TamperSecretHash(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tamperSecretHash = on
}

// DropEvents mines successful receipts without logs.
func (b *Backend) DropEvents(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.dropEvents = on
}

// FailCall makes every read of the named delay or badger method fail with err.
func (b *Backend) FailCall(method string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.callErrors[method] = err
}

// FailSend makes SendTransaction reject every transaction with err.
func (b *Backend) FailSend(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sendErr = err
}

// NewTransactOpts returns options for a fresh key. Gas is fixed so reverting transactions
// are still mined when skipEstimate is set.
func NewTransactOpts(t *testing.T, skipEstimate bool) (*bind.TransactOpts, *ecdsa.PrivateKey) {
	t.Helper()

	key := testutils.NewECDSASigner().Key

	auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(ChainID))
	require.NoError(t, err)
	if skipEstimate {
		auth.GasLimit = defaultGas
	}

	return auth, key
}

func (b *Backend) run(st *chainState, msg ethereum.CallMsg) ([]byte, []*gethtypes.Log, error) {
	if msg.To == nil {
		return nil, nil, errors.New("contract creation is not supported")
	}
	c := &call{backend: b, state: st}
	out, err := c.execute(msg.From, *msg.To, msg.Data)

	return out, c.logs, err
}

// CodeAt implements bind.ContractCaller.
func (b *Backend) CodeAt(_ context.Context, contract common.Address, _ *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.code[contract] {
		return []byte{0x60, 0x80}, nil
	}

	return nil, nil
}

// CallContract implements bind.ContractCaller.
func (b *Backend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out, _, err := b.run(b.state.clone(), msg)

	return out, err
}

// PendingCallContract implements bind.PendingContractCaller.
func (b *Backend) PendingCallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return b.CallContract(ctx, msg, nil)
}

// HeaderByNumber returns a header without a base fee so transactors build legacy txs.
func (b *Backend) HeaderByNumber(_ context.Context, _ *big.Int) (*gethtypes.Header, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return &gethtypes.Header{Number: new(big.Int).SetUint64(b.block)}, nil
}

func (b *Backend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return b.CodeAt(ctx, account, nil)
}

func (b *Backend) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.nonces[account], nil
}

func (b *Backend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *Backend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

// EstimateGas executes msg on a copy of the state and fails when it reverts.
func (b *Backend) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, _, err := b.run(b.state.clone(), msg); err != nil {
		return 0, err
	}

	return defaultGas, nil
}

// SendTransaction executes tx and mines it into its own block.
func (b *Backend) SendTransaction(_ context.Context, tx *gethtypes.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sendErr != nil {
		return b.sendErr
	}

	from, err := gethtypes.Sender(b.signer, tx)
	if err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if tx.Nonce() != b.nonces[from] {
		return fmt.Errorf("invalid nonce %d for %s, expected %d", tx.Nonce(), from.Hex(), b.nonces[from])
	}
	b.nonces[from]++
	b.sent++
	b.block++

	st := b.state.clone()
	_, logs, runErr := b.run(st, ethereum.CallMsg{From: from, To: tx.To(), Data: tx.Data(), Value: tx.Value()})

	receipt := &gethtypes.Receipt{
		Type:        tx.Type(),
		Status:      gethtypes.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		GasUsed:     tx.Gas(),
		BlockNumber: new(big.Int).SetUint64(b.block),
	}
	if runErr != nil {
		receipt.Status = gethtypes.ReceiptStatusFailed
	} else {
		b.state = st
		if !b.dropEvents {
			for i, l := range logs {
				l.TxHash = tx.Hash()
				l.BlockNumber = b.block
				l.Index = uint(i)
				receipt.Logs = append(receipt.Logs, l)
				b.logs = append(b.logs, *l)
			}
		}
	}
	b.receipts[tx.Hash()] = receipt

	return nil
}

// TransactionReceipt implements bind.DeployBackend.
func (b *Backend) TransactionReceipt(_ context.Context, txHash common.Hash) (*gethtypes.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	receipt, ok := b.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}

	return receipt, nil
}

// FilterLogs returns mined logs matching the query addresses and first topic.
func (b *Backend) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]gethtypes.Log, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []gethtypes.Log
	for _, l := range b.logs {
		if len(q.Addresses) > 0 && !slices.Contains(q.Addresses, l.Address) {
			continue
		}
		if len(q.Topics) > 0 && len(q.Topics[0]) > 0 && !slices.Contains(q.Topics[0], l.Topics[0]) {
			continue
		}
		out = append(out, l)
	}

	return out, nil
}

func (b *Backend) SubscribeFilterLogs(
	context.Context, ethereum.FilterQuery, chan<- gethtypes.Log,
) (ethereum.Subscription, error) {
	return nil, errors.New("log subscriptions are not supported")
}
