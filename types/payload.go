package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SecretPayload is the plaintext of a private proposal: everything needed to recompute its
// commitment hash and execute it after reveal.
type SecretPayload struct {
	To        common.Address `json:"to"`
	Value     *hexutil.Big   `json:"value"`
	Data      hexutil.Bytes  `json:"data"`
	Operation Operation      `json:"operation"`
	Salt      *hexutil.Big   `json:"salt"`
}

// NewSecretPayload captures a call, its operation and the salt it was committed under.
func NewSecretPayload(call Call, op Operation, salt *big.Int) SecretPayload {
	return SecretPayload{
		To:        call.To,
		Value:     (*hexutil.Big)(call.ValueOrZero()),
		Data:      common.CopyBytes(call.Data),
		Operation: op,
		Salt:      (*hexutil.Big)(new(big.Int).Set(salt)),
	}
}

// SealedPayload is an encrypted SecretPayload published to content-addressed storage.
type SealedPayload struct {
	Ciphertext   []byte       `json:"-"`
	EncryptedKey []byte       `json:"encryptedSymmetricKey"`
	Policy       AccessPolicy `json:"policy"`

	// CiphertextCID identifies the uploaded ciphertext.
	CiphertextCID string `json:"ciphertextCid"`
	// Locator identifies the descriptor that names the ciphertext. This is the value
	// recorded on chain next to the commitment hash.
	Locator string `json:"locator"`
}

// PayloadDescriptor is the small JSON document that points at a sealed ciphertext.
type PayloadDescriptor struct {
	EncryptedDataPin      string            `json:"encryptedDataPin"`
	Name                  string            `json:"name"`
	EncryptedSymmetricKey string            `json:"encryptedSymmetricKey"`
	Chain                 string            `json:"chain"`
	Conditions            []AccessCondition `json:"accessControlConditions"`
}
