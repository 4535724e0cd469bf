package seal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-resty/resty/v2"

	"github.com/kolektivo/delaygov/sdk"
	"github.com/kolektivo/delaygov/types"
)

// The network always answers in JSON, whatever Content-Type it sends.
const jsonContentType = "application/json"

// ErrSessionClosed is returned when a closed session is used.
var ErrSessionClosed = errors.New("session is closed")

// Network is a client of the access-control network that escrows payload keys.
type Network struct {
	client *resty.Client
}

// NewNetwork creates a client for the network at baseURL.
func NewNetwork(baseURL string, timeout time.Duration) *Network {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", jsonContentType)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Network{client: client}
}

type handshakeResponse struct {
	SessionID string `json:"sessionId"`
	Nonce     string `json:"nonce"`
}

type storeKeyRequest struct {
	SessionID               string                  `json:"sessionId"`
	Chain                   string                  `json:"chain"`
	AccessControlConditions []types.AccessCondition `json:"accessControlConditions"`
	SymmetricKey            string                  `json:"symmetricKey"`
	AuthSig                 AuthSig                 `json:"authSig"`
}

type storeKeyResponse struct {
	EncryptedSymmetricKey string `json:"encryptedSymmetricKey"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Connect opens a session. The caller must Close it.
func (n *Network) Connect(ctx context.Context) (*Session, error) {
	resp, err := n.client.R().
		SetContext(ctx).
		SetResult(&handshakeResponse{}).
		SetError(&errorResponse{}).
		ForceContentType(jsonContentType).
		Post("/web/handshake")
	if err != nil {
		return nil, fmt.Errorf("handshake failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("handshake failed: %s", describe(resp))
	}

	hs, ok := resp.Result().(*handshakeResponse)
	if !ok || hs.SessionID == "" {
		return nil, errors.New("handshake failed: no session id returned")
	}

	return &Session{network: n, id: hs.SessionID, nonce: hs.Nonce}, nil
}

// WithSession opens a session, runs fn and always closes the session afterwards. The
// session is closed even when ctx is done. A failed close is logged and does not undo the
// work fn completed.
func (n *Network) WithSession(ctx context.Context, fn func(*Session) error) error {
	session, err := n.Connect(ctx)
	if err != nil {
		return &ConnectError{Err: err}
	}
	defer func() {
		if closeErr := session.Close(context.WithoutCancel(ctx)); closeErr != nil {
			sdk.LoggerFrom(ctx).Infof("Failed to close session %s: %v", session.ID(), closeErr)
		}
	}()

	return fn(session)
}

// ConnectError is returned by WithSession when no session could be opened.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return e.Err.Error()
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// Session is a connected, explicitly scoped handle on the network.
type Session struct {
	network *Network
	id      string
	nonce   string

	mu     sync.Mutex
	closed bool
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Nonce returns the nonce the network expects in auth messages of this session.
func (s *Session) Nonce() string {
	return s.nonce
}

// SaveEncryptionKey escrows symmetricKey under policy. The network returns the key
// encrypted to its own threshold key; that value is needed later to request decryption.
func (s *Session) SaveEncryptionKey(
	ctx context.Context, policy types.AccessPolicy, symmetricKey []byte, authSig AuthSig,
) ([]byte, error) {
	if s.isClosed() {
		return nil, ErrSessionClosed
	}

	resp, err := s.network.client.R().
		SetContext(ctx).
		SetBody(storeKeyRequest{
			SessionID:               s.id,
			Chain:                   policy.Chain,
			AccessControlConditions: policy.Conditions,
			SymmetricKey:            hexutil.Encode(symmetricKey),
			AuthSig:                 authSig,
		}).
		SetResult(&storeKeyResponse{}).
		SetError(&errorResponse{}).
		ForceContentType(jsonContentType).
		Post("/web/encryption/store")
	if err != nil {
		return nil, fmt.Errorf("store encryption key failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("store encryption key failed: %s", describe(resp))
	}

	out, ok := resp.Result().(*storeKeyResponse)
	if !ok || out.EncryptedSymmetricKey == "" {
		return nil, errors.New("store encryption key failed: no key returned")
	}

	return hexutil.Decode(out.EncryptedSymmetricKey)
}

// Close ends the session. Closing twice is a no-op.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	resp, err := s.network.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"sessionId": s.id}).
		Post("/web/disconnect")
	if err != nil {
		return fmt.Errorf("disconnect failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("disconnect failed: %s", describe(resp))
	}

	return nil
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

func describe(resp *resty.Response) string {
	if e, ok := resp.Error().(*errorResponse); ok && e.Error != "" {
		return fmt.Sprintf("%s: %s", resp.Status(), e.Error)
	}

	return resp.Status()
}
