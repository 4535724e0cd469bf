package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SecretDelayMetaData contains the parts of the SecretDelay module ABI used by this module.
var SecretDelayMetaData = &bind.MetaData{
	ABI: `[
	{"type":"function","name":"execTransactionFromModule","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"}],"outputs":[{"name":"success","type":"bool"}]},
	{"type":"function","name":"enqueueSecretTx","stateMutability":"nonpayable","inputs":[{"name":"hashedTransaction","type":"bytes32"},{"name":"uri","type":"string"}],"outputs":[]},
	{"type":"function","name":"getSecretTransactionHash","stateMutability":"view","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"},{"name":"_salt","type":"uint256"}],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"salt","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"queuePointer","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"queueNonce","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"vetoTransactionsTill","stateMutability":"nonpayable","inputs":[{"name":"_newQueuePointer","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"TransactionAdded","anonymous":false,"inputs":[{"name":"queueIndex","type":"uint256","indexed":true},{"name":"txHash","type":"bytes32","indexed":true},{"name":"to","type":"address","indexed":false},{"name":"value","type":"uint256","indexed":false},{"name":"data","type":"bytes","indexed":false},{"name":"operation","type":"uint8","indexed":false}]},
	{"type":"event","name":"SecretTransactionAdded","anonymous":false,"inputs":[{"name":"queueIndex","type":"uint256","indexed":true},{"name":"txHash","type":"bytes32","indexed":true},{"name":"uri","type":"string","indexed":false},{"name":"salt","type":"uint256","indexed":false}]},
	{"type":"event","name":"TransactionsVetoed","anonymous":false,"inputs":[{"name":"startIndex","type":"uint256","indexed":true},{"name":"numberOfTransactionsVetoed","type":"uint256","indexed":false}]}
]`,
}

// SecretDelay is a binding of the SecretDelay module.
type SecretDelay struct {
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
}

// SecretDelayTransactionAdded is a TransactionAdded event raised by the SecretDelay module.
type SecretDelayTransactionAdded struct {
	QueueIndex *big.Int
	TxHash     [32]byte
	To         common.Address
	Value      *big.Int
	Data       []byte
	Operation  uint8
	Raw        types.Log
}

// SecretDelaySecretTransactionAdded is a SecretTransactionAdded event raised by the
// SecretDelay module.
type SecretDelaySecretTransactionAdded struct {
	QueueIndex *big.Int
	TxHash     [32]byte
	Uri        string //nolint:revive,stylecheck // matches the ABI argument name
	Salt       *big.Int
	Raw        types.Log
}

// NewSecretDelay binds a SecretDelay module deployed at address.
func NewSecretDelay(address common.Address, backend bind.ContractBackend) (*SecretDelay, error) {
	parsed, err := SecretDelayMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, errors.New("GetABI returned nil")
	}

	return &SecretDelay{
		address:  address,
		abi:      *parsed,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

// Address returns the address the binding points at.
func (d *SecretDelay) Address() common.Address {
	return d.address
}

func (d *SecretDelay) callUint(opts *bind.CallOpts, method string) (*big.Int, error) {
	var out []any
	if err := d.contract.Call(opts, &out, method); err != nil {
		return nil, err
	}

	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// Salt calls salt().
func (d *SecretDelay) Salt(opts *bind.CallOpts) (*big.Int, error) {
	return d.callUint(opts, "salt")
}

// QueuePointer calls queuePointer().
func (d *SecretDelay) QueuePointer(opts *bind.CallOpts) (*big.Int, error) {
	return d.callUint(opts, "queuePointer")
}

// QueueNonce calls queueNonce().
func (d *SecretDelay) QueueNonce(opts *bind.CallOpts) (*big.Int, error) {
	return d.callUint(opts, "queueNonce")
}

// GetSecretTransactionHash calls getSecretTransactionHash(to, value, data, operation, salt).
func (d *SecretDelay) GetSecretTransactionHash(
	opts *bind.CallOpts, to common.Address, value *big.Int, data []byte, operation uint8, salt *big.Int,
) ([32]byte, error) {
	var out []any
	if err := d.contract.Call(opts, &out, "getSecretTransactionHash", to, value, data, operation, salt); err != nil {
		return [32]byte{}, err
	}

	return *abi.ConvertType(out[0], new([32]byte)).(*[32]byte), nil
}

// ParseTransactionAdded decodes a TransactionAdded log.
func (d *SecretDelay) ParseTransactionAdded(log types.Log) (*SecretDelayTransactionAdded, error) {
	event := new(SecretDelayTransactionAdded)
	if err := d.contract.UnpackLog(event, "TransactionAdded", log); err != nil {
		return nil, err
	}
	event.Raw = log

	return event, nil
}

// ParseSecretTransactionAdded decodes a SecretTransactionAdded log.
func (d *SecretDelay) ParseSecretTransactionAdded(log types.Log) (*SecretDelaySecretTransactionAdded, error) {
	event := new(SecretDelaySecretTransactionAdded)
	if err := d.contract.UnpackLog(event, "SecretTransactionAdded", log); err != nil {
		return nil, err
	}
	event.Raw = log

	return event, nil
}

// EventID returns the topic hash of a SecretDelay event.
func (d *SecretDelay) EventID(name string) (common.Hash, bool) {
	ev, ok := d.abi.Events[name]
	if !ok {
		return common.Hash{}, false
	}

	return ev.ID, true
}
