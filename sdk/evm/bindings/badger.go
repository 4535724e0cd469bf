package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// BadgerMetaData contains the ERC1155 reads of the badger contract.
var BadgerMetaData = &bind.MetaData{
	ABI: `[
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"},{"name":"id","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOfBatch","stateMutability":"view","inputs":[{"name":"accounts","type":"address[]"},{"name":"ids","type":"uint256[]"}],"outputs":[{"name":"","type":"uint256[]"}]}
]`,
}

// Badger is a binding of the badger contract.
type Badger struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewBadger binds a badger contract deployed at address.
func NewBadger(address common.Address, backend bind.ContractBackend) (*Badger, error) {
	parsed, err := BadgerMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, errors.New("GetABI returned nil")
	}

	return &Badger{
		address:  address,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

// Address returns the address the binding points at.
func (b *Badger) Address() common.Address {
	return b.address
}

// BalanceOf calls balanceOf(account, id).
func (b *Badger) BalanceOf(opts *bind.CallOpts, account common.Address, id *big.Int) (*big.Int, error) {
	var out []any
	if err := b.contract.Call(opts, &out, "balanceOf", account, id); err != nil {
		return nil, err
	}

	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// BalanceOfBatch calls balanceOfBatch(accounts, ids).
func (b *Badger) BalanceOfBatch(opts *bind.CallOpts, accounts []common.Address, ids []*big.Int) ([]*big.Int, error) {
	var out []any
	if err := b.contract.Call(opts, &out, "balanceOfBatch", accounts, ids); err != nil {
		return nil, err
	}

	return *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int), nil
}
