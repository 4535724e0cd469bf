package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ChainSelector is a unique identifier for a chain.
//
// These values are defined in the chain-selectors dependency.
// https://github.com/smartcontractkit/chain-selectors
type ChainSelector uint64

// ErrChainNotFound is returned when a selector is not known to chain-selectors.
var ErrChainNotFound = errors.New("chain not found")

// EVMChainID returns the EVM chain id of the selector.
func (s ChainSelector) EVMChainID() (uint64, error) {
	chain, ok := chainsel.ChainBySelector(uint64(s))
	if !ok {
		return 0, fmt.Errorf("%w for selector %d", ErrChainNotFound, s)
	}

	return chain.EvmChainID, nil
}
