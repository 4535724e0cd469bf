package evm_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/sdk/evm"
	"github.com/kolektivo/delaygov/sdk/evm/bindings"
)

var (
	treasuryAddr = common.HexToAddress("0x1000000000000000000000000000000000000001")
	tokenAddr    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	oracleAddr   = common.HexToAddress("0x3000000000000000000000000000000000000003")
)

func TestComposer_Populate(t *testing.T) {
	t.Parallel()

	composer, err := evm.NewComposer(bindings.ITreasuryABI)
	require.NoError(t, err)
	parsed, err := abi.JSON(strings.NewReader(bindings.ITreasuryABI))
	require.NoError(t, err)

	wantRegister, err := parsed.Pack("registerERC20", tokenAddr, oracleAddr, uint8(1), uint8(1))
	require.NoError(t, err)
	wantDeregister, err := parsed.Pack("deregisterERC20", tokenAddr)
	require.NoError(t, err)

	tests := []struct {
		name     string
		to       common.Address
		method   string
		params   []any
		wantData []byte
		wantErr  bool
	}{
		{
			name:     "success: registerERC20",
			to:       treasuryAddr,
			method:   "registerERC20",
			params:   []any{tokenAddr, oracleAddr, uint8(1), uint8(1)},
			wantData: wantRegister,
		},
		{
			name:     "success: deregisterERC20",
			to:       treasuryAddr,
			method:   "deregisterERC20",
			params:   []any{tokenAddr},
			wantData: wantDeregister,
		},
		{
			name:    "failure: unknown method",
			to:      treasuryAddr,
			method:  "drain",
			wantErr: true,
		},
		{
			name:    "failure: wrong parameter count",
			to:      treasuryAddr,
			method:  "deregisterERC20",
			params:  []any{tokenAddr, oracleAddr},
			wantErr: true,
		},
		{
			name:    "failure: wrong parameter type",
			to:      treasuryAddr,
			method:  "deregisterERC20",
			params:  []any{"not an address"},
			wantErr: true,
		},
		{
			name:    "failure: unset target",
			method:  "deregisterERC20",
			params:  []any{tokenAddr},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := composer.Populate(tt.to, tt.method, tt.params...)

			if tt.wantErr {
				var encErr *sdkerrors.EncodingError
				require.ErrorAs(t, err, &encErr)
				assert.Equal(t, tt.method, encErr.Method)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, got.To)
			assert.Equal(t, tt.wantData, got.Data)
			assert.Equal(t, 0, got.Value.Cmp(big.NewInt(0)))
		})
	}
}

func TestComposer_PopulateFromStrings(t *testing.T) {
	t.Parallel()

	composer, err := evm.NewComposer(bindings.IReserveABI)
	require.NoError(t, err)

	fromStrings, err := composer.PopulateFromStrings(treasuryAddr, "registerERC20",
		[]string{tokenAddr.Hex(), oracleAddr.Hex(), "1", "0x01"})
	require.NoError(t, err)

	direct, err := composer.Populate(treasuryAddr, "registerERC20", tokenAddr, oracleAddr, uint8(1), uint8(1))
	require.NoError(t, err)
	assert.Equal(t, direct, fromStrings)

	_, err = composer.PopulateFromStrings(treasuryAddr, "registerERC20",
		[]string{tokenAddr.Hex(), oracleAddr.Hex(), "300", "1"})
	var encErr *sdkerrors.EncodingError
	require.ErrorAs(t, err, &encErr)

	assert.Equal(t, []string{"deregisterERC20", "registerERC20", "setMinBacking"}, composer.Methods())
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	uint256Ty, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)
	int8Ty, err := abi.NewType("int8", "", nil)
	require.NoError(t, err)
	boolTy, err := abi.NewType("bool", "", nil)
	require.NoError(t, err)
	bytes32Ty, err := abi.NewType("bytes32", "", nil)
	require.NoError(t, err)
	bytesTy, err := abi.NewType("bytes", "", nil)
	require.NoError(t, err)
	int256Ty, err := abi.NewType("int256", "", nil)
	require.NoError(t, err)
	int24Ty, err := abi.NewType("int24", "", nil)
	require.NoError(t, err)

	minInt256 := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	maxInt256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))

	tests := []struct {
		name    string
		ty      abi.Type
		give    string
		want    any
		wantErr bool
	}{
		{name: "uint256 decimal", ty: uint256Ty, give: "1000000000000000000000", want: new(big.Int).Exp(big.NewInt(10), big.NewInt(21), nil)},
		{name: "uint256 negative", ty: uint256Ty, give: "-1", wantErr: true},
		{name: "int8 in range", ty: int8Ty, give: "-128", want: int8(-128)},
		{name: "int8 out of range", ty: int8Ty, give: "128", wantErr: true},
		{name: "int256 minimum", ty: int256Ty, give: minInt256.String(), want: minInt256},
		{name: "int256 maximum", ty: int256Ty, give: maxInt256.String(), want: maxInt256},
		{name: "int256 below minimum", ty: int256Ty, give: new(big.Int).Sub(minInt256, big.NewInt(1)).String(), wantErr: true},
		{name: "int256 above maximum", ty: int256Ty, give: "0x8" + strings.Repeat("0", 63), wantErr: true},
		{name: "int24 minimum", ty: int24Ty, give: "-8388608", want: big.NewInt(-8388608)},
		{name: "int24 above maximum", ty: int24Ty, give: "8388608", wantErr: true},
		{name: "bool", ty: boolTy, give: "true", want: true},
		{name: "bool invalid", ty: boolTy, give: "maybe", wantErr: true},
		{name: "bytes32", ty: bytes32Ty, give: common.HexToHash("0x01").Hex(), want: common.HexToHash("0x01")},
		{name: "bytes32 short", ty: bytes32Ty, give: "0x01", wantErr: true},
		{name: "bytes", ty: bytesTy, give: "0xdead", want: []byte{0xde, 0xad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := evm.ParseArgs(abi.Arguments{{Name: "x", Type: tt.ty}}, []string{tt.give})

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}

	_, err = evm.ParseArgs(abi.Arguments{{Name: "x", Type: boolTy}}, nil)
	require.Error(t, err)
}
