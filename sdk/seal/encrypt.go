// Package seal encrypts private proposal payloads and escrows their keys with an
// access-control network that only releases them to badge holders.
package seal

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/oasisprotocol/deoxysii"
)

// KeySize is the size of a payload symmetric key.
const KeySize = deoxysii.KeySize

var (
	ErrCiphertextTooShort = errors.New("ciphertext too short")
	ErrInvalidKeySize     = errors.New("invalid key size")
)

// Encrypt seals plaintext under a fresh random key with Deoxys-II-256-128. The nonce is
// prepended to the returned ciphertext.
func Encrypt(plaintext []byte) (ciphertext []byte, key []byte, err error) {
	key = make([]byte, KeySize)
	if _, err = rand.Read(key); err != nil {
		return nil, nil, fmt.Errorf("failed to generate key: %w", err)
	}

	aead, err := deoxysii.New(key)
	if err != nil {
		return nil, nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), key, nil
}

// Decrypt opens a ciphertext produced by Encrypt.
func Decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	aead, err := deoxysii.New(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]

	return aead.Open(nil, nonce, sealed, nil)
}
