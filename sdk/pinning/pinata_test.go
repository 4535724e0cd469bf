package pinning

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestClient_PinFile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pinFilePath, r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("pinata_api_key"))
		assert.Equal(t, "secret", r.Header.Get("pinata_secret_api_key"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		assert.Equal(t, []byte{0xde, 0xad}, body)
		assert.Equal(t, "proposal.bin", header.Filename)
		assert.JSONEq(t, `{"name":"Private Proposal 7"}`, r.FormValue("pinataMetadata"))

		writeJSON(w, http.StatusOK, `{"IpfsHash":"bafyfile","PinSize":2}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, Credentials{APIKey: "key", APISecret: "secret"}, 0)
	cid, err := client.PinFile(t.Context(), []byte{0xde, 0xad}, "Private Proposal 7")
	require.NoError(t, err)
	assert.Equal(t, "bafyfile", cid)
}

func TestClient_PinJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pinJSONPath, r.URL.Path)
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]any{"cidVersion": float64(1)}, req["pinataOptions"])
		assert.Equal(t, map[string]any{"name": "descriptor"}, req["pinataMetadata"])
		assert.Equal(t, map[string]any{"a": "b"}, req["pinataContent"])

		writeJSON(w, http.StatusOK, `{"IpfsHash":"bafyjson"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, Credentials{JWT: "jwt"}, 0)
	cid, err := client.PinJSON(t.Context(), map[string]string{"a": "b"}, "descriptor")
	require.NoError(t, err)
	assert.Equal(t, "bafyjson", cid)
}

// Responses are decoded as JSON even when the service omits or mislabels the Content-Type.
func TestClient_UnlabeledJSONResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
	}{
		{name: "no content type"},
		{name: "plain text", contentType: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				} else {
					w.Header()["Content-Type"] = nil
				}
				_, _ = w.Write([]byte(`{"IpfsHash":"bafyjson"}`))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, Credentials{APIKey: "k", APISecret: "s", JWT: "jwt"}, 0)

			cid, err := client.PinJSON(t.Context(), map[string]string{"a": "b"}, "descriptor")
			require.NoError(t, err)
			assert.Equal(t, "bafyjson", cid)

			cid, err = client.PinFile(t.Context(), []byte{1}, "file")
			require.NoError(t, err)
			assert.Equal(t, "bafyjson", cid)
		})
	}
}

func TestClient_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		creds   Credentials
		status  int
		body    string
		json    bool
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing key pair",
			creds:   Credentials{JWT: "jwt"},
			wantErr: ErrMissingKeyPair,
		},
		{
			name:    "missing jwt",
			creds:   Credentials{APIKey: "k", APISecret: "s"},
			json:    true,
			wantErr: ErrMissingJWT,
		},
		{
			name:    "empty content id",
			creds:   Credentials{APIKey: "k", APISecret: "s"},
			status:  http.StatusOK,
			body:    `{"IpfsHash":""}`,
			wantErr: sdkerrors.ErrMissingContentID,
		},
		{
			name:    "http error",
			creds:   Credentials{JWT: "jwt"},
			json:    true,
			status:  http.StatusUnauthorized,
			body:    `{"error":"bad jwt"}`,
			wantMsg: "pinning service responded 401",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, tt.creds, 0)
			var err error
			if tt.json {
				_, err = client.PinJSON(t.Context(), map[string]string{}, "x")
			} else {
				_, err = client.PinFile(t.Context(), []byte{1}, "x")
			}

			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
