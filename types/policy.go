package types

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// UserAddressPlaceholder is replaced by the requesting wallet address when the
	// decryption network evaluates a condition.
	UserAddressPlaceholder = ":userAddress"

	standardContractTypeERC1155 = "ERC1155"
	methodBalanceOfBatch        = "balanceOfBatch"
)

// ReturnValueTest compares the result of a condition call against a value.
type ReturnValueTest struct {
	Comparator string `json:"comparator"`
	Value      string `json:"value"`
}

// AccessCondition is one on-chain read that the decryption network evaluates before it
// releases a symmetric key.
type AccessCondition struct {
	ContractAddress      string          `json:"contractAddress"`
	StandardContractType string          `json:"standardContractType"`
	Chain                string          `json:"chain"`
	Method               string          `json:"method"`
	Parameters           []string        `json:"parameters"`
	ReturnValueTest      ReturnValueTest `json:"returnValueTest"`
}

// AccessPolicy is the set of conditions guarding a sealed payload.
type AccessPolicy struct {
	Chain      string            `json:"chain"`
	Conditions []AccessCondition `json:"accessControlConditions"`
}

// NewBadgeOwnershipPolicy builds a policy that grants access to any holder of a non-zero
// balance of one of the badge ids on the given badger contract.
//
// balanceOfBatch is called with one ":userAddress" per badge so the requester is checked
// against every id in a single read.
func NewBadgeOwnershipPolicy(chain string, badger common.Address, ids []BadgeID) AccessPolicy {
	accounts := make([]string, len(ids))
	badges := make([]string, len(ids))
	for i, id := range ids {
		accounts[i] = UserAddressPlaceholder
		badges[i] = id.String()
	}

	return AccessPolicy{
		Chain: chain,
		Conditions: []AccessCondition{
			{
				ContractAddress:      badger.Hex(),
				StandardContractType: standardContractTypeERC1155,
				Chain:                chain,
				Method:               methodBalanceOfBatch,
				Parameters:           []string{strings.Join(accounts, ","), strings.Join(badges, ",")},
				ReturnValueTest: ReturnValueTest{
					Comparator: ">",
					Value:      "0",
				},
			},
		},
	}
}
