package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// BACRolesMetaData contains the ABI of the badge-gated access-control module.
var BACRolesMetaData = &bind.MetaData{
	ABI: `[
	{"type":"function","name":"execTransactionFromModule","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"},{"name":"badgeId","type":"uint256"}],"outputs":[{"name":"success","type":"bool"}]}
]`,
}

// BACRoles is a binding of the badge-gated access-control module.
type BACRoles struct {
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
}

// NewBACRoles binds an access-control module deployed at address.
func NewBACRoles(address common.Address, backend bind.ContractBackend) (*BACRoles, error) {
	parsed, err := BACRolesMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, errors.New("GetABI returned nil")
	}

	return &BACRoles{
		address:  address,
		abi:      *parsed,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

// Address returns the address the binding points at.
func (b *BACRoles) Address() common.Address {
	return b.address
}

// ExecTransactionFromModule sends execTransactionFromModule(to, value, data, operation, badgeId).
func (b *BACRoles) ExecTransactionFromModule(
	opts *bind.TransactOpts, to common.Address, value *big.Int, data []byte, operation uint8, badgeID *big.Int,
) (*types.Transaction, error) {
	return b.contract.Transact(opts, "execTransactionFromModule", to, value, data, operation, badgeID)
}

// PackExecTransactionFromModule returns the calldata of execTransactionFromModule.
func (b *BACRoles) PackExecTransactionFromModule(
	to common.Address, value *big.Int, data []byte, operation uint8, badgeID *big.Int,
) ([]byte, error) {
	return b.abi.Pack("execTransactionFromModule", to, value, data, operation, badgeID)
}
