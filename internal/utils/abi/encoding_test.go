package abi

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveABI    string
		giveValues []any
		want       string
		wantError  bool
	}{
		{
			name:       "success: encode queue index",
			giveABI:    `[{"type":"uint256"}]`,
			giveValues: []any{big.NewInt(30)},
			want:       "000000000000000000000000000000000000000000000000000000000000001e",
		},
		{
			name:       "success: encode address",
			giveABI:    `[{"type":"address"}]`,
			giveValues: []any{common.HexToAddress("0x5b38da6a701c568545dcfcb03fcb875f56beddc4")},
			want:       "0000000000000000000000005b38da6a701c568545dcfcb03fcb875f56beddc4",
		},
		{
			name:       "success: encode locator",
			giveABI:    `[{"type":"string"}]`,
			giveValues: []any{"Hello World"},
			want: "0000000000000000000000000000000000000000000000000000000000000020" +
				"000000000000000000000000000000000000000000000000000000000000000b" +
				"48656c6c6f20576f726c64000000000000000000000000000000000000000000",
		},
		{
			name:      "failure: invalid ABI string",
			giveABI:   `[{"type":"invalid"}]`,
			wantError: true,
		},
		{
			name:       "failure: missing values",
			giveABI:    `[{"type":"uint256"}]`,
			giveValues: []any{},
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Encode(tt.giveABI, tt.giveValues...)

			if tt.wantError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			wantBytes, err := hex.DecodeString(tt.want)
			require.NoError(t, err)
			assert.Equal(t, wantBytes, got)
		})
	}
}

func Test_Decode(t *testing.T) {
	t.Parallel()

	data, err := Encode(`[{"type":"bytes32"},{"type":"string"}]`, [32]byte{1}, "bafy")
	require.NoError(t, err)

	got, err := Decode(`[{"type":"bytes32"},{"type":"string"}]`, data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, [32]byte{1}, got[0])
	assert.Equal(t, "bafy", got[1])

	_, err = Decode(`[{"type":"uint256"}]`, []byte{0x01})
	require.Error(t, err)
}
