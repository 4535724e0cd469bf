package sdk

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// ContractDeployBackend is what the EVM implementations need from a node: contract reads,
// transaction sending and receipts.
type ContractDeployBackend interface {
	bind.ContractBackend
	bind.DeployBackend
}
