// Package pinning uploads content to an IPFS pinning service.
package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	sdkerrors "github.com/kolektivo/delaygov/sdk/errors"
)

const (
	DefaultBaseURL = "https://api.pinata.cloud"

	pinFilePath = "/pinning/pinFileToIPFS"
	pinJSONPath = "/pinning/pinJSONToIPFS"

	// Responses are decoded as JSON whatever Content-Type they carry.
	jsonContentType = "application/json"
)

var (
	ErrMissingKeyPair = errors.New("pinning api key and secret are required to pin files")
	ErrMissingJWT     = errors.New("pinning jwt is required to pin json")
)

// Credentials authenticate against the pinning service. Files are pinned with the key
// pair, JSON documents with the JWT.
type Credentials struct {
	APIKey    string
	APISecret string
	JWT       string
}

// Client is a Pinata API client.
type Client struct {
	client *resty.Client
	creds  Credentials
}

// NewClient creates a client for baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, creds Credentials, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New().SetBaseURL(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{client: client, creds: creds}
}

type metadata struct {
	Name string `json:"name"`
}

type options struct {
	CIDVersion int `json:"cidVersion"`
}

type pinJSONRequest struct {
	PinataOptions  options  `json:"pinataOptions"`
	PinataMetadata metadata `json:"pinataMetadata"`
	PinataContent  any      `json:"pinataContent"`
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// PinFile uploads content as a file named name and returns its content identifier.
func (c *Client) PinFile(ctx context.Context, content []byte, name string) (string, error) {
	if c.creds.APIKey == "" || c.creds.APISecret == "" {
		return "", ErrMissingKeyPair
	}

	meta, err := json.Marshal(metadata{Name: name})
	if err != nil {
		return "", err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("pinata_api_key", c.creds.APIKey).
		SetHeader("pinata_secret_api_key", c.creds.APISecret).
		SetMultipartField("file", "proposal.bin", "application/octet-stream", bytes.NewReader(content)).
		SetMultipartFormData(map[string]string{"pinataMetadata": string(meta)}).
		SetResult(&pinResponse{}).
		ForceContentType(jsonContentType).
		Post(pinFilePath)

	return contentID(resp, err)
}

// PinJSON uploads v as a JSON document named name and returns its content identifier.
func (c *Client) PinJSON(ctx context.Context, v any, name string) (string, error) {
	if c.creds.JWT == "" {
		return "", ErrMissingJWT
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.creds.JWT).
		SetBody(pinJSONRequest{
			PinataOptions:  options{CIDVersion: 1},
			PinataMetadata: metadata{Name: name},
			PinataContent:  v,
		}).
		SetResult(&pinResponse{}).
		ForceContentType(jsonContentType).
		Post(pinJSONPath)

	return contentID(resp, err)
}

func contentID(resp *resty.Response, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("pinning service responded %s: %s", resp.Status(), resp.String())
	}

	out, ok := resp.Result().(*pinResponse)
	if !ok || out.IpfsHash == "" {
		return "", sdkerrors.ErrMissingContentID
	}

	return out.IpfsHash, nil
}
