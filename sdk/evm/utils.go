package evm

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/kolektivo/delaygov/sdk"
	"github.com/kolektivo/delaygov/types"
)

type ContractDeployBackend = sdk.ContractDeployBackend

// badgeToBig converts a badge id to the uint256 argument the contracts expect.
func badgeToBig(id types.BadgeID) *big.Int {
	return new(big.Int).SetUint64(uint64(id))
}

// bigToUint64 converts a uint256 read from chain into a uint64 index.
func bigToUint64(name string, v *big.Int) (uint64, error) {
	if v == nil {
		return 0, errors.New(name + " is nil")
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%s %s exceeds uint64 range", name, v)
	}

	return v.Uint64(), nil
}
