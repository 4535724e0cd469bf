package evmfake

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	abiutil "github.com/kolektivo/delaygov/internal/utils/abi"
	"github.com/kolektivo/delaygov/sdk/evm/bindings"
)

// Argument lists of the contract methods the fake executes.
var argSpecs = map[string]string{
	"balanceOf":                               `[{"type":"address"},{"type":"uint256"}]`,
	"balanceOfBatch":                          `[{"type":"address[]"},{"type":"uint256[]"}]`,
	"accessControl.execTransactionFromModule": `[{"type":"address"},{"type":"uint256"},{"type":"bytes"},{"type":"uint8"},{"type":"uint256"}]`,
	"execTransactionFromModule":               `[{"type":"address"},{"type":"uint256"},{"type":"bytes"},{"type":"uint8"}]`,
	"enqueueSecretTx":                         `[{"type":"bytes32"},{"type":"string"}]`,
	"getSecretTransactionHash":                `[{"type":"address"},{"type":"uint256"},{"type":"bytes"},{"type":"uint8"},{"type":"uint256"}]`,
	"vetoTransactionsTill":                    `[{"type":"uint256"}]`,
	"salt":                                    `[]`,
	"queuePointer":                            `[]`,
	"queueNonce":                              `[]`,
}

var (
	delayABI  = mustABI(bindings.SecretDelayMetaData.GetAbi())
	bacABI    = mustABI(bindings.BACRolesMetaData.GetAbi())
	badgerABI = mustABI(bindings.BadgerMetaData.GetAbi())
)

func mustABI(parsed *abi.ABI, err error) *abi.ABI {
	if err != nil {
		panic(err)
	}

	return parsed
}

// RevertError is returned for calls that revert. It carries Error(string) revert data the
// way a JSON-RPC node does.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	return "execution reverted: " + e.Reason
}

func (e *RevertError) ErrorCode() int {
	return 3
}

func (e *RevertError) ErrorData() any {
	encoded, err := abiutil.Encode(`[{"type":"string"}]`, e.Reason)
	if err != nil {
		return nil
	}

	return hexutil.Encode(append(common.CopyBytes(revertSelector), encoded...))
}

var revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

func revert(format string, args ...any) *RevertError {
	return &RevertError{Reason: fmt.Sprintf(format, args...)}
}

// delayState is the storage of one SecretDelay module.
type delayState struct {
	salt         uint64
	queueNonce   uint64
	queuePointer uint64
	hashes       []common.Hash
	uris         []string
}

// chainState is everything a transaction can change. It is cloned for calls, estimates and
// reverted transactions.
type chainState struct {
	badges map[common.Address]map[uint64]*big.Int
	delays map[common.Address]*delayState
}

func newChainState() *chainState {
	return &chainState{
		badges: map[common.Address]map[uint64]*big.Int{},
		delays: map[common.Address]*delayState{},
	}
}

func (s *chainState) clone() *chainState {
	out := newChainState()
	for holder, ids := range s.badges {
		cp := make(map[uint64]*big.Int, len(ids))
		for id, bal := range ids {
			cp[id] = new(big.Int).Set(bal)
		}
		out.badges[holder] = cp
	}
	for addr, d := range s.delays {
		cp := *d
		cp.hashes = append([]common.Hash(nil), d.hashes...)
		cp.uris = append([]string(nil), d.uris...)
		out.delays[addr] = &cp
	}

	return out
}

func (s *chainState) balance(holder common.Address, id uint64) *big.Int {
	if bal, ok := s.badges[holder][id]; ok {
		return new(big.Int).Set(bal)
	}

	return big.NewInt(0)
}

// call is one message execution against chainState.
type call struct {
	backend *Backend
	state   *chainState
	logs    []*gethtypes.Log
}

func (c *call) execute(from, to common.Address, data []byte) ([]byte, error) {
	switch {
	case to == c.backend.badger:
		return c.executeBadger(data)
	case c.backend.delayOf(to) != (common.Address{}):
		return c.executeAccessControl(from, to, data)
	case c.state.delays[to] != nil:
		return c.executeDelay(from, to, data)
	default:
		return nil, nil
	}
}

func decode(parsed *abi.ABI, argsJSON string, data []byte) (*abi.Method, []any, error) {
	if len(data) < 4 {
		return nil, nil, revert("missing selector")
	}
	method, err := parsed.MethodById(data[:4])
	if err != nil {
		return nil, nil, revert("unknown selector %x", data[:4])
	}
	if argsJSON == "" {
		argsJSON = argSpecs[method.Name]
	}
	args, err := abiutil.Decode(argsJSON, data[4:])
	if err != nil {
		return nil, nil, revert("malformed calldata for %s", method.Name)
	}

	return method, args, nil
}

func (c *call) executeBadger(data []byte) ([]byte, error) {
	method, args, err := decode(badgerABI, "", data)
	if err != nil {
		return nil, err
	}

	if fail := c.backend.callErrors[method.Name]; fail != nil {
		return nil, fail
	}

	switch method.Name {
	case "balanceOf":
		holder := args[0].(common.Address)
		id := args[1].(*big.Int)

		return method.Outputs.Pack(c.state.balance(holder, id.Uint64()))
	case "balanceOfBatch":
		holders := args[0].([]common.Address)
		ids := args[1].([]*big.Int)
		if len(holders) != len(ids) {
			return nil, revert("ERC1155: accounts and ids length mismatch")
		}
		out := make([]*big.Int, len(ids))
		for i := range ids {
			out[i] = c.state.balance(holders[i], ids[i].Uint64())
		}

		return method.Outputs.Pack(out)
	}

	return nil, revert("unsupported badger method %s", method.Name)
}

func (c *call) executeAccessControl(from, accessControl common.Address, data []byte) ([]byte, error) {
	method, args, err := decode(bacABI, argSpecs["accessControl.execTransactionFromModule"], data)
	if err != nil {
		return nil, err
	}

	to := args[0].(common.Address)
	inner := args[2].([]byte)
	op := args[3].(uint8)
	badge := args[4].(*big.Int)

	if c.state.balance(from, badge.Uint64()).Sign() <= 0 {
		return nil, revert("BACRoles: sender does not hold badge %s", badge)
	}
	if op != 0 {
		return nil, revert("BACRoles: delegate calls are not allowed")
	}
	if to != c.backend.delayOf(accessControl) {
		return nil, revert("BACRoles: target %s is not allowed", to.Hex())
	}

	if _, err := c.executeDelay(accessControl, to, inner); err != nil {
		return nil, err
	}

	return method.Outputs.Pack(true)
}

func (c *call) executeDelay(from, delay common.Address, data []byte) ([]byte, error) {
	method, args, err := decode(delayABI, "", data)
	if err != nil {
		return nil, err
	}
	d := c.state.delays[delay]

	if fail := c.backend.callErrors[method.Name]; fail != nil {
		return nil, fail
	}

	switch method.Name {
	case "salt":
		return method.Outputs.Pack(new(big.Int).SetUint64(d.salt))
	case "queuePointer":
		return method.Outputs.Pack(new(big.Int).SetUint64(d.queuePointer))
	case "queueNonce":
		return method.Outputs.Pack(new(big.Int).SetUint64(d.queueNonce))
	case "getSecretTransactionHash":
		h := secretTransactionHash(
			args[0].(common.Address), args[1].(*big.Int), args[2].([]byte), args[3].(uint8), args[4].(*big.Int),
		)
		if c.backend.tamperSecretHash {
			h[31] ^= 0xff
		}

		return method.Outputs.Pack([32]byte(h))
	}

	if from != c.backend.accessControlOf(delay) {
		return nil, revert("Module not authorized")
	}

	switch method.Name {
	case "execTransactionFromModule":
		to := args[0].(common.Address)
		value := args[1].(*big.Int)
		inner := args[2].([]byte)
		op := args[3].(uint8)

		h := transactionHash(to, value, inner, op)
		logData, err := abiutil.Encode(
			`[{"type":"address"},{"type":"uint256"},{"type":"bytes"},{"type":"uint8"}]`, to, value, inner, op,
		)
		if err != nil {
			return nil, err
		}
		c.emit(delay, "TransactionAdded", logData, common.BigToHash(new(big.Int).SetUint64(d.queueNonce)), h)
		d.enqueue(h, "")

		return method.Outputs.Pack(true)
	case "enqueueSecretTx":
		h := common.Hash(args[0].([32]byte))
		uri := args[1].(string)

		logData, err := abiutil.Encode(`[{"type":"string"},{"type":"uint256"}]`, uri, new(big.Int).SetUint64(d.salt))
		if err != nil {
			return nil, err
		}
		c.emit(delay, "SecretTransactionAdded", logData, common.BigToHash(new(big.Int).SetUint64(d.queueNonce)), h)
		d.enqueue(h, uri)
		d.salt++

		return nil, nil
	case "vetoTransactionsTill":
		next := args[0].(*big.Int)
		if !next.IsUint64() || next.Uint64() <= d.queuePointer {
			return nil, revert("Cannot be lower than current queuePointer")
		}
		if next.Uint64() > d.queueNonce {
			return nil, revert("Cannot be higher than current queueNonce")
		}

		vetoed := new(big.Int).SetUint64(next.Uint64() - d.queuePointer)
		logData, err := abiutil.Encode(`[{"type":"uint256"}]`, vetoed)
		if err != nil {
			return nil, err
		}
		c.emit(delay, "TransactionsVetoed", logData, common.BigToHash(new(big.Int).SetUint64(d.queuePointer)))
		d.queuePointer = next.Uint64()

		return nil, nil
	}

	return nil, revert("unsupported delay method %s", method.Name)
}

func (d *delayState) enqueue(h common.Hash, uri string) {
	d.hashes = append(d.hashes, h)
	d.uris = append(d.uris, uri)
	d.queueNonce++
}

// emit appends a delay module log. The event id is prepended to the indexed topics.
func (c *call) emit(address common.Address, event string, data []byte, indexed ...common.Hash) {
	topics := append([]common.Hash{delayABI.Events[event].ID}, indexed...)
	c.logs = append(c.logs, &gethtypes.Log{Address: address, Topics: topics, Data: data})
}

// secretTransactionHash is keccak256(abi.encodePacked(to, value, data, operation, salt)).
func secretTransactionHash(to common.Address, value *big.Int, data []byte, op uint8, salt *big.Int) common.Hash {
	return crypto.Keccak256Hash(
		to.Bytes(),
		math.U256Bytes(new(big.Int).Set(value)),
		data,
		[]byte{op},
		math.U256Bytes(new(big.Int).Set(salt)),
	)
}

// transactionHash is keccak256(abi.encodePacked(to, value, data, operation)).
func transactionHash(to common.Address, value *big.Int, data []byte, op uint8) common.Hash {
	return crypto.Keccak256Hash(to.Bytes(), math.U256Bytes(new(big.Int).Set(value)), data, []byte{op})
}
