package testutils

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Note: should only be used for testing purposes
type ECDSASigner struct {
	Key *ecdsa.PrivateKey
}

func NewECDSASigner() *ECDSASigner {
	key, _ := crypto.GenerateKey()
	return &ECDSASigner{Key: key}
}

func (s *ECDSASigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.Key.PublicKey)
}

// Sign personal-signs the payload, adding the EIP 191 prefix.
func (s *ECDSASigner) Sign(payload []byte) ([]byte, error) {
	return crypto.Sign(accounts.TextHash(payload), s.Key)
}

func (s *ECDSASigner) GetAddress() (common.Address, error) {
	return s.Address(), nil
}
