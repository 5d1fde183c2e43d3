package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Client calls the smart contract service's REST API for one deployed
// ERC-721 contract.
//
// Client provides:
//   - Token numbering via the total-supply query
//   - Minting to a recipient address
//   - Administrative verbs: collect reserves, start the public sale,
//     pause/unpause, set the base URI
//
// Example usage:
//
//	addr, _ := contract.ParseAddress("0x1234...")
//	client := contract.NewClient("https://contracts.example.com", addr, token)
//
//	supply, err := client.TotalSupply(ctx)
//	txHash, err := client.Mint(ctx, recipient)
type Client struct {
	httpClient *http.Client
	baseURL    string
	contract   common.Address
	token      string
}

// NewClient creates a new contract service client.
//
// The client is configured with a 60 second timeout. The bearer token is
// attached to every request; pass "" for unauthenticated services.
func NewClient(baseURL string, contractAddr common.Address, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		contract: contractAddr,
		token:    token,
	}
}

// ParseAddress validates and parses a hex address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// Contract returns the contract address this client operates on.
func (c *Client) Contract() common.Address {
	return c.contract
}

// TotalSupply returns the number of tokens minted so far.
//
// The service responds with a bare JSON value; both numeric and
// decimal-string forms are accepted.
func (c *Client) TotalSupply(ctx context.Context) (uint64, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.contractPath("/total-supply"), nil, &raw); err != nil {
		return 0, err
	}

	value := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	supply, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("contract service: unexpected total supply %q", value)
	}
	return supply, nil
}

// Mint mints one token to the recipient and returns the transaction hash.
// The id of the minted token is not part of the response; read the total
// supply afterwards to learn it.
func (c *Client) Mint(ctx context.Context, to common.Address) (string, error) {
	return c.postTx(ctx, "/mint", map[string]string{"to": to.Hex()})
}

// CollectReserves mints the reserved tokens to the contract owner.
func (c *Client) CollectReserves(ctx context.Context) (string, error) {
	return c.postTx(ctx, "/collect-reserves", nil)
}

// StartPublicSale opens public minting.
func (c *Client) StartPublicSale(ctx context.Context) (string, error) {
	return c.postTx(ctx, "/start-public-sale", nil)
}

// Pause halts transfers and minting.
func (c *Client) Pause(ctx context.Context) (string, error) {
	return c.postTx(ctx, "/pause", nil)
}

// Unpause resumes transfers and minting.
func (c *Client) Unpause(ctx context.Context) (string, error) {
	return c.postTx(ctx, "/unpause", nil)
}

// SetBaseURI points the contract's token URIs at a new metadata location.
func (c *Client) SetBaseURI(ctx context.Context, uri string) (string, error) {
	return c.postTx(ctx, "/set-base-uri", map[string]string{"baseURI": uri})
}

// postTx performs a POST that the service answers with a transaction hash.
func (c *Client) postTx(ctx context.Context, suffix string, body any) (string, error) {
	var out struct {
		TransactionHash string `json:"transactionHash"`
	}
	if err := c.do(ctx, http.MethodPost, c.contractPath(suffix), body, &out); err != nil {
		return "", err
	}
	return out.TransactionHash, nil
}

// contractPath builds the request path for this client's contract.
func (c *Client) contractPath(suffix string) string {
	return fmt.Sprintf("/erc-721/%s%s", c.contract.Hex(), suffix)
}

// do performs one JSON request. Non-2xx responses become errors carrying
// the method, path, status and trimmed body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("contract service: encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("contract service: %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contract service: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("contract service: %s %s: reading response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("contract service: %s %s: HTTP %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("contract service: %s %s: parsing response: %w", method, path, err)
		}
	}
	return nil
}
