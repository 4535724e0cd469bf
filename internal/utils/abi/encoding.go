// Package abi wraps go-ethereum's ABI codec for ad-hoc argument lists.
package abi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Encode is the equivalent of abi.encode for the argument list in argsJSON, for example
// `[{"type":"string"},{"type":"uint256"}]`.
func Encode(argsJSON string, values ...any) ([]byte, error) {
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "inputs": %s}]`, argsJSON)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	res, err := inAbi.Pack("method", values...)
	if err != nil {
		return nil, err
	}

	// Drop the selector.
	return res[4:], nil
}

// Decode is the equivalent of abi.decode.
func Decode(argsJSON string, data []byte) ([]any, error) {
	outDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "outputs": %s}]`, argsJSON)
	outAbi, err := abi.JSON(strings.NewReader(outDef))
	if err != nil {
		return nil, err
	}

	return outAbi.Unpack("method", data)
}
