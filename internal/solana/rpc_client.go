package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// Default configuration values.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
	DefaultBackoffMult = 2.0
)

// HTTPClient implements RPCClient using HTTP JSON-RPC 2.0.
type HTTPClient struct {
	endpoint    string
	client      *http.Client
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
	requestID   atomic.Uint64
}

// Compile-time interface check.
var _ RPCClient = (*HTTPClient)(nil)

// ClientOption configures HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) ClientOption {
	return func(c *HTTPClient) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.retryDelay = d
	}
}

// WithMaxDelay sets maximum retry delay.
func WithMaxDelay(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.maxDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// NewHTTPClient creates a new Solana RPC HTTP client.
func NewHTTPClient(endpoint string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint:    endpoint,
		client:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rpcRequest represents a JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// rpcResponse represents a JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError represents a JSON-RPC 2.0 error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// call performs a JSON-RPC call with retries and exponential backoff.
func (c *HTTPClient) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	reqID := c.requestID.Add(1)
	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      reqID,
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			// Exponential backoff
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("http status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("http status %d: %s", resp.StatusCode, respBody)
		}

		var rpcResp rpcResponse
		if err := json.Unmarshal(respBody, &rpcResp); err != nil {
			lastErr = fmt.Errorf("unmarshal response: %w", err)
			continue
		}
		if rpcResp.Error != nil {
			return rpcResp.Error
		}

		if result != nil && rpcResp.Result != nil {
			if err := json.Unmarshal(rpcResp.Result, result); err != nil {
				return fmt.Errorf("unmarshal result: %w", err)
			}
		}
		return nil
	}

	return fmt.Errorf("rpc %s failed after %d retries: %w", method, c.maxRetries, lastErr)
}

// GetTransaction retrieves a transaction by signature, including the
// balance metadata needed to derive wallet transfers.
func (c *HTTPClient) GetTransaction(ctx context.Context, signature string) (*Transaction, error) {
	params := []interface{}{
		signature,
		map[string]interface{}{
			"encoding":                       "json",
			"maxSupportedTransactionVersion": 0,
		},
	}

	var result getTransactionResult
	if err := c.call(ctx, "getTransaction", params, &result); err != nil {
		return nil, err
	}

	if result.Slot == 0 && result.BlockTime == nil {
		// Transaction not found
		return nil, nil
	}

	tx := &Transaction{
		Slot:      result.Slot,
		Signature: signature,
	}

	if result.BlockTime != nil {
		tx.BlockTime = *result.BlockTime
	}

	if result.Meta != nil {
		tx.Meta = &TransactionMeta{
			Err:          result.Meta.Err,
			Fee:          result.Meta.Fee,
			PreBalances:  result.Meta.PreBalances,
			PostBalances: result.Meta.PostBalances,
			LogMessages:  result.Meta.LogMessages,
		}
		tx.Meta.PreTokenBalances = convertTokenBalances(result.Meta.PreTokenBalances)
		tx.Meta.PostTokenBalances = convertTokenBalances(result.Meta.PostTokenBalances)
	}

	if result.Transaction != nil && result.Transaction.Message != nil {
		tx.Message = &TransactionMessage{
			AccountKeys: result.Transaction.Message.AccountKeys,
		}
	}

	return tx, nil
}

// GetSignaturesForAddress retrieves signatures for an address, newest first.
func (c *HTTPClient) GetSignaturesForAddress(ctx context.Context, address string, opts *SignaturesOpts) ([]SignatureInfo, error) {
	cfg := map[string]interface{}{}
	if opts != nil {
		if opts.Before != "" {
			cfg["before"] = opts.Before
		}
		if opts.Until != "" {
			cfg["until"] = opts.Until
		}
		if opts.Limit > 0 {
			cfg["limit"] = opts.Limit
		}
	}
	params := []interface{}{address, cfg}

	var result []getSignatureEntry
	if err := c.call(ctx, "getSignaturesForAddress", params, &result); err != nil {
		return nil, err
	}

	infos := make([]SignatureInfo, 0, len(result))
	for _, entry := range result {
		infos = append(infos, SignatureInfo{
			Signature: entry.Signature,
			Slot:      entry.Slot,
			BlockTime: entry.BlockTime,
			Err:       entry.Err,
		})
	}
	return infos, nil
}

func convertTokenBalances(raw []rawTokenBalance) []TokenBalance {
	if len(raw) == 0 {
		return nil
	}
	balances := make([]TokenBalance, 0, len(raw))
	for _, b := range raw {
		tb := TokenBalance{
			AccountIndex: b.AccountIndex,
			Mint:         b.Mint,
			Owner:        b.Owner,
		}
		if b.UITokenAmount != nil && b.UITokenAmount.UIAmount != nil {
			tb.UIAmount = *b.UITokenAmount.UIAmount
		}
		balances = append(balances, tb)
	}
	return balances
}

// getTransactionResult is the raw RPC response for getTransaction.
type getTransactionResult struct {
	Slot        int64               `json:"slot"`
	BlockTime   *int64              `json:"blockTime"`
	Meta        *getTransactionMeta `json:"meta"`
	Transaction *getTransactionTx   `json:"transaction"`
}

type getTransactionMeta struct {
	Err               interface{}       `json:"err"`
	Fee               int64             `json:"fee"`
	PreBalances       []int64           `json:"preBalances"`
	PostBalances      []int64           `json:"postBalances"`
	PreTokenBalances  []rawTokenBalance `json:"preTokenBalances"`
	PostTokenBalances []rawTokenBalance `json:"postTokenBalances"`
	LogMessages       []string          `json:"logMessages"`
}

type rawTokenBalance struct {
	AccountIndex  int            `json:"accountIndex"`
	Mint          string         `json:"mint"`
	Owner         string         `json:"owner"`
	UITokenAmount *uiTokenAmount `json:"uiTokenAmount"`
}

type uiTokenAmount struct {
	UIAmount *float64 `json:"uiAmount"`
	Decimals int      `json:"decimals"`
	Amount   string   `json:"amount"`
}

type getTransactionTx struct {
	Message *getTransactionMessage `json:"message"`
}

type getTransactionMessage struct {
	AccountKeys []string `json:"accountKeys"`
}

// getSignatureEntry is one raw entry from getSignaturesForAddress.
type getSignatureEntry struct {
	Signature string      `json:"signature"`
	Slot      int64       `json:"slot"`
	BlockTime *int64      `json:"blockTime"`
	Err       interface{} `json:"err"`
}
