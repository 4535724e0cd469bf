package seal

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolektivo/delaygov/internal/testutils"
	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
	"github.com/kolektivo/delaygov/types"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

type escrowServer struct {
	*httptest.Server

	connects    atomic.Int32
	disconnects atomic.Int32
	stored      atomic.Value // []byte
	failStore   bool
}

func newEscrowServer(t *testing.T, failStore bool) *escrowServer {
	t.Helper()

	s := &escrowServer{failStore: failStore}
	mux := http.NewServeMux()
	mux.HandleFunc("/web/handshake", func(w http.ResponseWriter, _ *http.Request) {
		s.connects.Add(1)
		writeJSON(w, http.StatusOK, `{"sessionId":"s-1","nonce":"n-1"}`)
	})
	mux.HandleFunc("/web/encryption/store", func(w http.ResponseWriter, r *http.Request) {
		if s.failStore {
			writeJSON(w, http.StatusForbidden, `{"error":"not allowed"}`)

			return
		}

		var req storeKeyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "s-1", req.SessionID)
		assert.Contains(t, req.AuthSig.SignedMessage, "Nonce: n-1")
		key, err := hexutil.Decode(req.SymmetricKey)
		assert.NoError(t, err)
		s.stored.Store(key)

		writeJSON(w, http.StatusOK, `{"encryptedSymmetricKey":"0xc0ffee"}`)
	})
	mux.HandleFunc("/web/disconnect", func(w http.ResponseWriter, _ *http.Request) {
		s.disconnects.Add(1)
		writeJSON(w, http.StatusOK, `{}`)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

type fakePinner struct {
	files       map[string][]byte
	descriptors map[string]types.PayloadDescriptor
	fileErr     error
	jsonErr     error
}

func newFakePinner() *fakePinner {
	return &fakePinner{files: map[string][]byte{}, descriptors: map[string]types.PayloadDescriptor{}}
}

func (p *fakePinner) PinFile(_ context.Context, content []byte, name string) (string, error) {
	if p.fileErr != nil {
		return "", p.fileErr
	}
	p.files[name] = content

	return "bafy-file", nil
}

func (p *fakePinner) PinJSON(_ context.Context, v any, _ string) (string, error) {
	if p.jsonErr != nil {
		return "", p.jsonErr
	}
	p.descriptors["bafy-descriptor"] = v.(types.PayloadDescriptor)

	return "bafy-descriptor", nil
}

func testPayload() types.SecretPayload {
	call := types.NewCall(common.HexToAddress("0x01"), big.NewInt(7), []byte{0xaa, 0xbb})
	return types.NewSecretPayload(call, types.OperationCall, big.NewInt(5))
}

func testPolicy() types.AccessPolicy {
	return types.NewBadgeOwnershipPolicy("celo", common.HexToAddress("0x0b"), []types.BadgeID{1, 2})
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	escrow := newEscrowServer(t, false)
	pinner := newFakePinner()
	pub := NewPublisher(NewNetwork(escrow.URL, 0), pinner, testutils.NewECDSASigner(), PublisherOpts{Domain: "delaygov", ChainID: 1})

	sealed, err := pub.Publish(t.Context(), testPayload(), testPolicy())
	require.NoError(t, err)

	assert.Equal(t, "bafy-descriptor", sealed.Locator)
	assert.Equal(t, "bafy-file", sealed.CiphertextCID)
	assert.Equal(t, []byte{0xc0, 0xff, 0xee}, sealed.EncryptedKey)
	assert.Equal(t, pinner.files["Private Proposal 5"], sealed.Ciphertext)

	desc := pinner.descriptors["bafy-descriptor"]
	assert.Equal(t, "bafy-file", desc.EncryptedDataPin)
	assert.Equal(t, "Private Proposal 5", desc.Name)
	assert.Equal(t, "0xc0ffee", desc.EncryptedSymmetricKey)
	assert.Equal(t, testPolicy().Conditions, desc.Conditions)

	// The escrowed key opens the pinned ciphertext back into the payload.
	key, ok := escrow.stored.Load().([]byte)
	require.True(t, ok)
	plaintext, err := Decrypt(sealed.Ciphertext, key)
	require.NoError(t, err)
	var got types.SecretPayload
	require.NoError(t, json.Unmarshal(plaintext, &got))
	assert.Equal(t, testPayload(), got)

	assert.Equal(t, int32(1), escrow.connects.Load())
	assert.Equal(t, int32(1), escrow.disconnects.Load())
}

func TestPublisher_Publish_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		failStore      bool
		fileErr        error
		jsonErr        error
		payload        func() types.SecretPayload
		policy         types.AccessPolicy
		wantStage      sdkerrors.PublishStage
		wantDisconnect int32
	}{
		{
			name:           "escrow rejected",
			failStore:      true,
			wantStage:      sdkerrors.StageEscrow,
			wantDisconnect: 1,
		},
		{
			name:           "ciphertext upload fails",
			fileErr:        errors.New("boom"),
			wantStage:      sdkerrors.StagePinFile,
			wantDisconnect: 1,
		},
		{
			name:           "descriptor without content id",
			jsonErr:        sdkerrors.ErrMissingContentID,
			wantStage:      sdkerrors.StagePinJSON,
			wantDisconnect: 1,
		},
		{
			name: "missing salt",
			payload: func() types.SecretPayload {
				p := testPayload()
				p.Salt = nil

				return p
			},
			wantStage: sdkerrors.StageValidate,
		},
		{
			name:      "empty policy",
			policy:    types.AccessPolicy{Chain: "celo"},
			wantStage: sdkerrors.StageValidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			escrow := newEscrowServer(t, tt.failStore)
			pinner := newFakePinner()
			pinner.fileErr = tt.fileErr
			pinner.jsonErr = tt.jsonErr
			pub := NewPublisher(NewNetwork(escrow.URL, 0), pinner, testutils.NewECDSASigner(), PublisherOpts{})

			payload := testPayload()
			if tt.payload != nil {
				payload = tt.payload()
			}
			policy := testPolicy()
			if tt.policy.Chain != "" {
				policy = tt.policy
			}

			_, err := pub.Publish(t.Context(), payload, policy)
			require.Error(t, err)

			var pubErr *sdkerrors.PublishError
			require.ErrorAs(t, err, &pubErr)
			assert.Equal(t, tt.wantStage, pubErr.Stage)
			assert.Equal(t, tt.wantDisconnect, escrow.disconnects.Load())
		})
	}
}

func TestNetwork_ConnectFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	pub := NewPublisher(NewNetwork(srv.URL, 0), newFakePinner(), testutils.NewECDSASigner(), PublisherOpts{})
	_, err := pub.Publish(t.Context(), testPayload(), testPolicy())

	var pubErr *sdkerrors.PublishError
	require.ErrorAs(t, err, &pubErr)
	assert.Equal(t, sdkerrors.StageConnect, pubErr.Stage)
}

func TestSession_Close(t *testing.T) {
	t.Parallel()

	escrow := newEscrowServer(t, false)
	network := NewNetwork(escrow.URL, 0)

	err := network.WithSession(t.Context(), func(s *Session) error {
		assert.Equal(t, "s-1", s.ID())
		return nil
	})
	require.NoError(t, err)

	session, err := network.Connect(t.Context())
	require.NoError(t, err)
	require.NoError(t, session.Close(t.Context()))
	require.NoError(t, session.Close(t.Context()))

	_, err = session.SaveEncryptionKey(t.Context(), testPolicy(), []byte{1}, AuthSig{})
	require.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, int32(2), escrow.disconnects.Load())
}

// The network's answers are decoded as JSON even without a Content-Type header.
func TestNetwork_UnlabeledJSONResponses(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/web/handshake", func(w http.ResponseWriter, _ *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte(`{"sessionId":"s-9","nonce":"n-9"}`))
	})
	mux.HandleFunc("/web/encryption/store", func(w http.ResponseWriter, _ *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte(`{"encryptedSymmetricKey":"0xbeef"}`))
	})
	mux.HandleFunc("/web/disconnect", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	err := NewNetwork(srv.URL, 0).WithSession(t.Context(), func(s *Session) error {
		assert.Equal(t, "s-9", s.ID())
		assert.Equal(t, "n-9", s.Nonce())

		key, err := s.SaveEncryptionKey(t.Context(), testPolicy(), []byte{1}, AuthSig{})
		require.NoError(t, err)
		assert.Equal(t, []byte{0xbe, 0xef}, key)

		return nil
	})
	require.NoError(t, err)
}

func TestNetwork_WithSession_ClosesOnError(t *testing.T) {
	t.Parallel()

	escrow := newEscrowServer(t, false)
	boom := errors.New("boom")

	err := NewNetwork(escrow.URL, 0).WithSession(t.Context(), func(*Session) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), escrow.connects.Load())
	assert.Equal(t, int32(1), escrow.disconnects.Load())
}
