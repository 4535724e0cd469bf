package seal

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const derivedViaPersonalSign = "web3.eth.personal.sign"

// signatureVOffset is added to a 0/1 recovery id to give the 27/28 v of personal_sign.
const signatureVOffset = 27

// Signer signs EIP-191 personal messages.
type Signer interface {
	Sign(payload []byte) ([]byte, error)
	GetAddress() (common.Address, error)
}

// AuthSig proves to the access-control network that the caller controls an address.
type AuthSig struct {
	Sig           string `json:"sig"`
	DerivedVia    string `json:"derivedVia"`
	SignedMessage string `json:"signedMessage"`
	Address       string `json:"address"`
}

// AuthMessage is the sign-in message presented to the signer.
type AuthMessage struct {
	Domain   string
	URI      string
	Address  common.Address
	ChainID  uint64
	Nonce    string
	IssuedAt time.Time
}

// String renders the message in the EIP-4361 layout.
func (m AuthMessage) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s wants you to sign in with your Ethereum account:\n", m.Domain)
	fmt.Fprintf(&b, "%s\n\n", m.Address.Hex())
	b.WriteString("Authorize key escrow for a delayed private proposal.\n\n")
	fmt.Fprintf(&b, "URI: %s\n", m.URI)
	b.WriteString("Version: 1\n")
	fmt.Fprintf(&b, "Chain ID: %d\n", m.ChainID)
	fmt.Fprintf(&b, "Nonce: %s\n", m.Nonce)
	fmt.Fprintf(&b, "Issued At: %s", m.IssuedAt.UTC().Format(time.RFC3339))

	return b.String()
}

// SignAuthMessage signs msg with signer. The message address is replaced with the signer's.
func SignAuthMessage(signer Signer, msg AuthMessage) (AuthSig, error) {
	addr, err := signer.GetAddress()
	if err != nil {
		return AuthSig{}, err
	}
	msg.Address = addr

	text := msg.String()
	sig, err := signer.Sign([]byte(text))
	if err != nil {
		return AuthSig{}, err
	}
	if len(sig) != crypto.SignatureLength {
		return AuthSig{}, fmt.Errorf("signature has %d bytes, want %d", len(sig), crypto.SignatureLength)
	}
	if sig[64] < signatureVOffset {
		sig[64] += signatureVOffset
	}

	return AuthSig{
		Sig:           hexutil.Encode(sig),
		DerivedVia:    derivedViaPersonalSign,
		SignedMessage: text,
		Address:       addr.Hex(),
	}, nil
}
