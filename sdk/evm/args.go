package evm

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cast"
)

// ParseArgs converts textual arguments into the Go values the ABI packer expects for the
// given inputs. Only the elementary types used by governance targets are supported.
func ParseArgs(inputs abi.Arguments, args []string) ([]any, error) {
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("argument count mismatch: got %d for %d", len(args), len(inputs))
	}

	values := make([]any, len(args))
	for i, in := range inputs {
		v, err := parseArg(in.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s %s): %w", i, in.Type.String(), in.Name, err)
		}
		values[i] = v
	}

	return values, nil
}

func parseArg(t abi.Type, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}

		return common.HexToAddress(raw), nil
	case abi.BoolTy:
		return cast.ToBoolE(raw)
	case abi.StringTy:
		return raw, nil
	case abi.BytesTy:
		return hexutil.Decode(raw)
	case abi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		if t.Size == common.HashLength {
			return common.BytesToHash(b), nil
		}

		return b, nil
	case abi.UintTy:
		return parseUint(t.Size, raw)
	case abi.IntTy:
		return parseInt(t.Size, raw)
	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

func parseUint(size int, raw string) (any, error) {
	if size <= 64 {
		v, err := strconv.ParseUint(raw, 0, size)
		if err != nil {
			return nil, err
		}

		switch size {
		case 8:
			return uint8(v), nil
		case 16:
			return uint16(v), nil
		case 32:
			return uint32(v), nil
		case 64:
			return v, nil
		}
	}

	n, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}
	if n.Sign() < 0 || n.BitLen() > size {
		return nil, errors.New("integer out of range")
	}

	return n, nil
}

func parseInt(size int, raw string) (any, error) {
	if size <= 64 {
		v, err := strconv.ParseInt(raw, 0, size)
		if err != nil {
			return nil, err
		}

		switch size {
		case 8:
			return int8(v), nil
		case 16:
			return int16(v), nil
		case 32:
			return int32(v), nil
		case 64:
			return v, nil
		}
	}

	n, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}
	// Two's complement range: [-2^(size-1), 2^(size-1)-1].
	limit := new(big.Int).Lsh(big.NewInt(1), uint(size-1))
	if n.Cmp(new(big.Int).Neg(limit)) < 0 || n.Cmp(limit) >= 0 {
		return nil, errors.New("integer out of range")
	}

	return n, nil
}

func sortStrings(s []string) []string {
	slices.Sort(s)

	return s
}
