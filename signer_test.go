package delaygov

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKeyHex = "b17c4c6a409cebce4b39977689180900d9009d5c55a57ff9fd9cb962b24ae99d"

func Test_PrivateKeySigner_Sign(t *testing.T) {
	t.Parallel()

	privKey, err := crypto.HexToECDSA(testPrivateKeyHex)
	require.NoError(t, err)
	signer := NewPrivateKeySigner(privKey)

	want, err := signer.GetAddress()
	require.NoError(t, err)

	tests := []struct {
		name string
		give []byte
	}{
		{name: "short message", give: []byte("0x0")},
		{name: "hash sized message", give: common.HexToHash("0x01").Bytes()},
		{name: "auth message", give: []byte("delaygov wants you to sign in with your Ethereum account:\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sig, err := signer.Sign(tt.give)
			require.NoError(t, err)
			require.Len(t, sig, crypto.SignatureLength)

			pub, err := crypto.SigToPub(accounts.TextHash(tt.give), sig)
			require.NoError(t, err)
			assert.Equal(t, want, crypto.PubkeyToAddress(*pub))
		})
	}
}

func Test_PrivateKeySigner_TransactOpts(t *testing.T) {
	t.Parallel()

	privKey, err := crypto.HexToECDSA(testPrivateKeyHex)
	require.NoError(t, err)
	signer := NewPrivateKeySigner(privKey)
	chainID := big.NewInt(1337)

	opts, err := signer.TransactOpts(chainID)
	require.NoError(t, err)

	addr, err := signer.GetAddress()
	require.NoError(t, err)
	assert.Equal(t, addr, opts.From)

	tx := types.NewTx(&types.LegacyTx{Nonce: 1, GasPrice: big.NewInt(1), Gas: 21000, To: &addr})
	signed, err := opts.Signer(opts.From, tx)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, addr, sender)
}
