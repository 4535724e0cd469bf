package config

import (
	"crypto/ecdsa"
	"errors"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
)

// Secrets are read from the environment, optionally seeded from a .env file.
type Secrets struct {
	PrivateKey      string
	RPCURL          string
	PinataAPIKey    string
	PinataAPISecret string
	PinataJWT       string
}

// LoadSecrets loads envFile, if it exists, into the environment and reads the secrets.
// Variables already set in the environment win over the file.
func LoadSecrets(envFile string) (Secrets, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Secrets{}, err
		}
	}

	return Secrets{
		PrivateKey:      os.Getenv("PRIVATE_KEY"),
		RPCURL:          os.Getenv("RPC_URL"),
		PinataAPIKey:    os.Getenv("PINATA_API_KEY"),
		PinataAPISecret: os.Getenv("PINATA_API_SECRET"),
		PinataJWT:       os.Getenv("PINATA_JWT"),
	}, nil
}

// ECDSAKey parses the private key.
func (s Secrets) ECDSAKey() (*ecdsa.PrivateKey, error) {
	if s.PrivateKey == "" {
		return nil, errors.New("PRIVATE_KEY not found in environment or .env file")
	}

	return crypto.HexToECDSA(strings.TrimPrefix(s.PrivateKey, "0x"))
}

// RPC returns the RPC URL or an error when it is unset.
func (s Secrets) RPC() (string, error) {
	if s.RPCURL == "" {
		return "", errors.New("RPC_URL not found in environment or .env file")
	}

	return s.RPCURL, nil
}
