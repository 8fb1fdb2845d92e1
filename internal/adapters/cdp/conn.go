// Package cdp implements a minimal Chrome DevTools Protocol client: one websocket,
// requests correlated to responses by numeric id. Events are ignored.
package cdp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	DefaultCallTimeout = 15 * time.Second
	defaultDialTimeout = 15 * time.Second
	closeWriteTimeout  = time.Second
	maxMessageBytes    = 64 << 20
)

type Conn struct {
	ws      *websocket.Conn
	logger  *zap.Logger
	timeout time.Duration

	nextID atomic.Int64

	mu       sync.Mutex
	pending  map[int64]*pendingCall
	closeErr error

	writeMu   sync.Mutex
	closeOnce sync.Once
	readDone  chan struct{}
}

type pendingCall struct {
	method string
	ch     chan callResult
}

type callResult struct {
	result json.RawMessage
	err    error
}

type request struct {
	ID        int64  `json:"id"`
	Method    string `json:"method"`
	Params    any    `json:"params,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

type response struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// RPCError is an error object returned by the browser for a command.
type RPCError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Data)
	}
	return e.Message
}

type Option func(*Conn)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Conn) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultTimeout sets the timeout used when a call does not carry its own.
// Zero or negative disables it.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Conn) { c.timeout = d }
}

// Dial opens a connection to a browser or page debugger endpoint.
func Dial(ctx context.Context, wsURL string, opts ...Option) (*Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: defaultDialTimeout}

	ws, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", domain.ErrConnection, wsURL, err)
	}

	return newConn(ws, opts...), nil
}

func newConn(ws *websocket.Conn, opts ...Option) *Conn {
	c := &Conn{
		ws:       ws,
		logger:   zap.NewNop(),
		timeout:  DefaultCallTimeout,
		pending:  make(map[int64]*pendingCall),
		readDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	ws.SetReadLimit(maxMessageBytes)

	go c.readLoop()

	return c
}

type callOptions struct {
	sessionID string
	timeout   time.Duration
}

type CallOption func(*callOptions)

// WithSessionID routes the command to an attached target session.
func WithSessionID(sessionID string) CallOption {
	return func(o *callOptions) { o.sessionID = sessionID }
}

// WithTimeout overrides the connection default for one call.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

// Send issues method and blocks until the matching response, the call timeout,
// ctx cancellation, or connection shutdown.
func (c *Conn) Send(ctx context.Context, method string, params any, opts ...CallOption) (json.RawMessage, error) {
	callOpts := callOptions{timeout: c.timeout}
	for _, opt := range opts {
		opt(&callOpts)
	}

	id := c.nextID.Add(1)
	call := &pendingCall{method: method, ch: make(chan callResult, 1)}

	c.mu.Lock()
	if c.closeErr != nil {
		err := c.closeErr
		c.mu.Unlock()
		return nil, err
	}
	c.pending[id] = call
	c.mu.Unlock()

	if err := c.write(request{ID: id, Method: method, Params: params, SessionID: callOpts.sessionID}); err != nil {
		c.evict(id)
		return nil, fmt.Errorf("%w: write %s: %v", domain.ErrConnection, method, err)
	}

	var timeout <-chan time.Time
	if callOpts.timeout > 0 {
		timer := time.NewTimer(callOpts.timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case res := <-call.ch:
		return res.result, res.err
	case <-timeout:
		c.evict(id)
		return nil, fmt.Errorf("%w: %s after %s", domain.ErrRPCTimeout, method, callOpts.timeout)
	case <-ctx.Done():
		c.evict(id)
		return nil, fmt.Errorf("%s: %w", method, ctx.Err())
	}
}

// Call is Send followed by decoding the result into out. A nil out discards the result.
func (c *Conn) Call(ctx context.Context, method string, params any, out any, opts ...CallOption) error {
	raw, err := c.Send(ctx, method, params, opts...)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}

	return nil
}

// Close fails every pending call and closes the socket. It is safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.shutdown(fmt.Errorf("%w: connection closed", domain.ErrConnection))

		c.writeMu.Lock()
		_ = c.ws.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeWriteTimeout),
		)
		c.writeMu.Unlock()

		err = c.ws.Close()
		<-c.readDone
	})

	return err
}

func (c *Conn) write(req request) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.ws.WriteJSON(req)
}

func (c *Conn) evict(id int64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Conn) shutdown(reason error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closeErr == nil {
		c.closeErr = reason
	}
	for id, call := range c.pending {
		call.ch <- callResult{err: fmt.Errorf("%s: %w", call.method, c.closeErr)}
		delete(c.pending, id)
	}
}

func (c *Conn) readLoop() {
	defer close(c.readDone)

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.shutdown(fmt.Errorf("%w: read: %v", domain.ErrConnection, err))
			return
		}
		c.dispatch(data)
	}
}

func (c *Conn) dispatch(data []byte) {
	var msg response
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Debug("ignoring undecodable message", zap.Error(err))
		return
	}
	if msg.ID == 0 {
		return
	}

	c.mu.Lock()
	call, ok := c.pending[msg.ID]
	delete(c.pending, msg.ID)
	c.mu.Unlock()

	if !ok {
		c.logger.Debug("ignoring response for unknown id", zap.Int64("id", msg.ID))
		return
	}

	if msg.Error != nil {
		call.ch <- callResult{err: fmt.Errorf("%s: %w", call.method, msg.Error)}
		return
	}
	call.ch <- callResult{result: msg.Result}
}

func (c *Conn) pendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}
