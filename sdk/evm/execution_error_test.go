package evm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolektivo/delaygov/internal/testutils/evmfake"
	"github.com/kolektivo/delaygov/sdk/evm"
)

func TestNewExecutionError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		give             error
		wantReason       string
		wantRaw          bool
		expectedContains []string
	}{
		{
			name:             "revert data from node",
			give:             &evmfake.RevertError{Reason: "Module not authorized"},
			wantReason:       "Module not authorized",
			wantRaw:          true,
			expectedContains: []string{"execution failed", "revert reason: Module not authorized"},
		},
		{
			name:             "revert data behind wrapping",
			give:             fmt.Errorf("call failed: %w", &evmfake.RevertError{Reason: "BACRoles: delegate calls are not allowed"}),
			wantReason:       "BACRoles: delegate calls are not allowed",
			wantRaw:          true,
			expectedContains: []string{"call failed"},
		},
		{
			name:             "reason only in message",
			give:             errors.New("failed to estimate gas needed: execution reverted: Cannot be lower than current queuePointer"),
			wantReason:       "Cannot be lower than current queuePointer",
			expectedContains: []string{"failed to estimate gas needed"},
		},
		{
			name:             "no revert information",
			give:             errors.New("connection refused"),
			expectedContains: []string{"execution failed: connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := evm.NewExecutionError(tt.give)

			assert.Equal(t, tt.wantReason, got.RevertReason)
			assert.Equal(t, tt.wantRaw, len(got.RawRevertData) > 0)
			require.ErrorIs(t, got, tt.give)
			for _, s := range tt.expectedContains {
				assert.Contains(t, got.Error(), s)
			}
		})
	}
}
