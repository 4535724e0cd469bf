package delaygov

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/usbwallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/kolektivo/delaygov/sdk/seal"
)

// Signer is a wallet that can sign auth messages and chain transactions.
type Signer interface {
	// Sign signs payload with the EIP-191 personal message prefix.
	Sign(payload []byte) ([]byte, error)
	GetAddress() (common.Address, error)
	// TransactOpts returns transactor options that sign for chainID.
	TransactOpts(chainID *big.Int) (*bind.TransactOpts, error)
}

var (
	_ Signer      = &PrivateKeySigner{}
	_ seal.Signer = &PrivateKeySigner{}
)

// PrivateKeySigner signs using a private key held in memory.
type PrivateKeySigner struct {
	pk *ecdsa.PrivateKey
}

// NewPrivateKeySigner creates a new PrivateKeySigner.
func NewPrivateKeySigner(pk *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{pk: pk}
}

// Sign signs the payload using the private key.
// The payload here should be without the EIP 191 prefix,
// and the function will add it before signing.
func (s *PrivateKeySigner) Sign(payload []byte) ([]byte, error) {
	return crypto.Sign(accounts.TextHash(payload), s.pk)
}

// GetAddress returns the address of the signer.
func (s *PrivateKeySigner) GetAddress() (common.Address, error) {
	return crypto.PubkeyToAddress(s.pk.PublicKey), nil
}

func (s *PrivateKeySigner) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(s.pk, chainID)
}

var (
	_ Signer      = &LedgerSigner{}
	_ seal.Signer = &LedgerSigner{}
)

// LedgerSigner signs using the first wallet found on a Ledger.
type LedgerSigner struct {
	derivationPath accounts.DerivationPath
}

// NewLedgerSigner creates a new LedgerSigner. A nil path uses the default Ethereum path.
func NewLedgerSigner(derivationPath accounts.DerivationPath) *LedgerSigner {
	if derivationPath == nil {
		derivationPath = accounts.DefaultBaseDerivationPath
	}

	return &LedgerSigner{derivationPath: derivationPath}
}

// Sign signs the payload with EIP 191. go-ethereum's ledger driver only signs transactions
// and returns accounts.ErrNotSupported here, so private proposals need a key signer.
func (s *LedgerSigner) Sign(payload []byte) ([]byte, error) {
	wallet, account, err := s.setupLedgerAccount()
	if err != nil {
		return nil, err
	}
	defer wallet.Close()

	return wallet.SignText(account, payload)
}

func (s *LedgerSigner) GetAddress() (common.Address, error) {
	wallet, account, err := s.setupLedgerAccount()
	if err != nil {
		return common.Address{}, err
	}
	defer wallet.Close()

	return account.Address, nil
}

// TransactOpts returns options whose signer asks the ledger to sign each transaction.
func (s *LedgerSigner) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	from, err := s.GetAddress()
	if err != nil {
		return nil, err
	}

	return &bind.TransactOpts{
		From: from,
		Signer: func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if addr != from {
				return nil, bind.ErrNotAuthorized
			}

			wallet, account, err := s.setupLedgerAccount()
			if err != nil {
				return nil, err
			}
			defer wallet.Close()

			return wallet.SignTx(account, tx, chainID)
		},
	}, nil
}

// setupLedgerAccount loads the wallet and account from the ledger. Caller is responsible for closing the wallet.
func (s *LedgerSigner) setupLedgerAccount() (accounts.Wallet, accounts.Account, error) {
	ledgerhub, err := usbwallet.NewLedgerHub()
	if err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open ledger hub: %w", err)
	}

	wallets := ledgerhub.Wallets()
	if len(wallets) == 0 {
		return nil, accounts.Account{}, errors.New("no wallets found")
	}
	wallet := wallets[0]

	if err = wallet.Open(""); err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open wallet: %w", err)
	}

	account, err := wallet.Derive(s.derivationPath, true)
	if err != nil {
		wallet.Close() // Only close on error since caller won't be able to
		return nil, accounts.Account{}, fmt.Errorf("is your ledger ethereum app open? Failed to derive account: %w derivation path %v", err, s.derivationPath)
	}

	return wallet, account, nil
}
