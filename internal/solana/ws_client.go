package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// WSClientConfig configures WebSocket client behavior.
type WSClientConfig struct {
	// PingInterval is interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
	// WriteTimeout is timeout for writing messages.
	WriteTimeout time.Duration
	// SubscribeTimeout bounds the wait for a subscription confirmation.
	SubscribeTimeout time.Duration
}

// DefaultWSConfig returns default WebSocket configuration.
func DefaultWSConfig() WSClientConfig {
	return WSClientConfig{
		PingInterval:     30 * time.Second,
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     10 * time.Second,
		SubscribeTimeout: 30 * time.Second,
	}
}

// WSClientImpl implements WSClient using gorilla/websocket. It supports
// one logs subscription per connection, which is all the wallet monitor
// needs; reconnection is the caller's responsibility.
type WSClientImpl struct {
	endpoint string
	config   WSClientConfig

	conn      *websocket.Conn
	connMu    sync.Mutex
	closed    atomic.Bool
	requestID atomic.Uint64

	notifications chan LogNotification
	confirmCh     chan int64

	done       chan struct{}
	doneOnce   sync.Once
	notifyOnce sync.Once
	wg         sync.WaitGroup
}

// Compile-time interface check.
var _ WSClient = (*WSClientImpl)(nil)

// NewWSClient creates a new WebSocket client and connects to the endpoint.
func NewWSClient(ctx context.Context, endpoint string, config *WSClientConfig) (*WSClientImpl, error) {
	cfg := DefaultWSConfig()
	if config != nil {
		cfg = *config
	}

	c := &WSClientImpl{
		endpoint:      endpoint,
		config:        cfg,
		notifications: make(chan LogNotification, 64),
		confirmCh:     make(chan int64, 1),
		done:          make(chan struct{}),
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	c.conn = conn

	c.wg.Add(2)
	go c.readLoop()
	go c.pingLoop()

	return c, nil
}

// SubscribeLogs subscribes to logs matching the filter and returns the
// notification channel. May be called at most once per client.
func (c *WSClientImpl) SubscribeLogs(ctx context.Context, filter LogsFilter) (<-chan LogNotification, error) {
	if c.closed.Load() {
		return nil, fmt.Errorf("client closed")
	}

	mentionsFilter := make(map[string]interface{})
	if len(filter.Mentions) > 0 {
		mentionsFilter["mentions"] = filter.Mentions
	} else {
		mentionsFilter["all"] = nil
	}

	req := wsRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  "logsSubscribe",
		Params: []interface{}{
			mentionsFilter,
			map[string]string{"commitment": "confirmed"},
		},
	}

	c.connMu.Lock()
	c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	err := c.conn.WriteJSON(req)
	c.connMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("write subscribe: %w", err)
	}

	select {
	case <-c.confirmCh:
		return c.notifications, nil
	case <-time.After(c.config.SubscribeTimeout):
		return nil, fmt.Errorf("subscription timeout after %s", c.config.SubscribeTimeout)
	case <-c.done:
		return nil, fmt.Errorf("client closed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close closes the connection and stops background goroutines.
func (c *WSClientImpl) Close() error {
	c.closed.Store(true)
	c.doneOnce.Do(func() { close(c.done) })

	c.connMu.Lock()
	err := c.conn.Close()
	c.connMu.Unlock()

	c.wg.Wait()
	c.notifyOnce.Do(func() { close(c.notifications) })
	return err
}

// readLoop reads messages until the connection closes.
func (c *WSClientImpl) readLoop() {
	defer c.wg.Done()

	for {
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			// Connection dropped or closed; the caller observes the
			// closed notification channel and reconnects.
			c.closed.Store(true)
			c.doneOnce.Do(func() { close(c.done) })
			c.notifyOnce.Do(func() { close(c.notifications) })
			return
		}
		c.handleMessage(message)
	}
}

// pingLoop sends periodic ping frames to keep the connection alive.
func (c *WSClientImpl) pingLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.connMu.Lock()
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.connMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches one incoming WebSocket message.
func (c *WSClientImpl) handleMessage(message []byte) {
	// Subscription confirmation
	var resp wsSubscribeResponse
	if err := json.Unmarshal(message, &resp); err == nil && resp.Result > 0 {
		select {
		case c.confirmCh <- resp.Result:
		default:
		}
		return
	}

	// Logs notification
	var notif wsNotification
	if err := json.Unmarshal(message, &notif); err == nil && notif.Method == "logsNotification" {
		n := LogNotification{
			Signature: notif.Params.Result.Value.Signature,
			Slot:      notif.Params.Result.Context.Slot,
			Logs:      notif.Params.Result.Value.Logs,
			Err:       notif.Params.Result.Value.Err,
		}
		select {
		case c.notifications <- n:
		case <-c.done:
		}
	}
}

// wsRequest is a JSON-RPC 2.0 request over WebSocket.
type wsRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// wsSubscribeResponse confirms a subscription with its ID.
type wsSubscribeResponse struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Result  int64  `json:"result"`
}

// wsNotification is a logsNotification message.
type wsNotification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  struct {
		Subscription int64 `json:"subscription"`
		Result       struct {
			Context struct {
				Slot int64 `json:"slot"`
			} `json:"context"`
			Value struct {
				Signature string      `json:"signature"`
				Err       interface{} `json:"err"`
				Logs      []string    `json:"logs"`
			} `json:"value"`
		} `json:"result"`
	} `json:"params"`
}
