package evm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/kolektivo/delaygov/sdk"
	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/types"
)

var _ sdk.Composer = (*Composer)(nil)

// Composer populates calls against a target contract interface. It never touches the
// network.
type Composer struct {
	abi abi.ABI
}

// NewComposer parses the target interface.
func NewComposer(abiJSON string) (*Composer, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse target ABI: %w", err)
	}

	return &Composer{abi: parsed}, nil
}

// Populate packs method(params...) into a call to the target at `to`. The returned call has
// a zero value.
func (c *Composer) Populate(to common.Address, method string, params ...any) (types.Call, error) {
	if to == (common.Address{}) {
		return types.Call{}, sdkerrors.NewEncodingError(method, types.ErrCallTargetUnset)
	}
	if _, ok := c.abi.Methods[method]; !ok {
		return types.Call{}, sdkerrors.NewEncodingError(method, errors.New("method not found in target interface"))
	}

	data, err := c.abi.Pack(method, params...)
	if err != nil {
		return types.Call{}, sdkerrors.NewEncodingError(method, err)
	}

	return types.NewCall(to, nil, data).WithDefaults(), nil
}

// PopulateFromStrings parses textual arguments against the method's inputs and populates
// the call. It is used where arguments come from the command line.
func (c *Composer) PopulateFromStrings(to common.Address, method string, args []string) (types.Call, error) {
	params, err := c.ParseParams(method, args)
	if err != nil {
		return types.Call{}, err
	}

	return c.Populate(to, method, params...)
}

// ParseParams converts textual arguments into the values Populate expects for method.
func (c *Composer) ParseParams(method string, args []string) ([]any, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, sdkerrors.NewEncodingError(method, errors.New("method not found in target interface"))
	}

	params, err := ParseArgs(m.Inputs, args)
	if err != nil {
		return nil, sdkerrors.NewEncodingError(method, err)
	}

	return params, nil
}

// Methods lists the methods of the target interface, sorted by name.
func (c *Composer) Methods() []string {
	names := make([]string, 0, len(c.abi.Methods))
	for name := range c.abi.Methods {
		names = append(names, name)
	}

	return sortStrings(names)
}
