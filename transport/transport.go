// Package transport implements the analysis-service connection: JSON-RPC
// 2.0 with Content-Length framing over stdio pipes or a WebSocket.
//
// The completion core never imports this package; it sees the Client only
// through the completion.Service interface.
package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Transport handles JSON-RPC 2.0 communication with the service over a
// byte stream, with Content-Length message framing.
type Transport struct {
	reader *bufio.Reader
	writer io.Writer
	closer io.Closer
	logger *zap.SugaredLogger

	mu      sync.Mutex
	nextID  atomic.Int64
	pending map[int64]chan *response

	closed atomic.Bool
	done   chan struct{}
}

// request is a JSON-RPC request.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// response is a JSON-RPC response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// NewTransport creates a transport over the given connection. The closer
// may be nil when the caller owns the underlying streams.
func NewTransport(r io.Reader, w io.Writer, c io.Closer, logger *zap.SugaredLogger) *Transport {
	return &Transport{
		reader:  bufio.NewReaderSize(r, 64*1024),
		writer:  w,
		closer:  c,
		logger:  logger,
		pending: make(map[int64]chan *response),
		done:    make(chan struct{}),
	}
}

// Start begins reading responses from the connection.
func (t *Transport) Start() {
	go t.readLoop()
}

// Close closes the transport. Callers blocked in Call return
// ErrClientClosed.
func (t *Transport) Close() error {
	if t.closed.Swap(true) {
		return nil // Already closed
	}

	close(t.done)

	// Drop the pending map rather than closing its channels; waiters
	// observe t.done instead, which avoids racing handleResponse.
	t.mu.Lock()
	t.pending = make(map[int64]chan *response)
	t.mu.Unlock()

	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// Call sends a request and waits for the matching response. A response
// that arrives after ctx is canceled is dropped; the call returns
// ctx.Err().
func (t *Transport) Call(ctx context.Context, method string, params, result any) error {
	if t.closed.Load() {
		return ErrClientClosed
	}

	id := t.nextID.Add(1)
	ch := make(chan *response, 1)

	t.mu.Lock()
	t.pending[id] = ch
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
	}()

	req := &request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}
	if err := t.send(req); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return ErrClientClosed
	case resp := <-ch:
		if resp.Error != nil {
			return resp.Error
		}
		if result != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
			}
		}
		return nil
	}
}

// send writes a message with a Content-Length header.
func (t *Transport) send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := io.WriteString(t.writer, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := t.writer.Write(data); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// readLoop reads and dispatches messages until the connection closes.
func (t *Transport) readLoop() {
	for {
		select {
		case <-t.done:
			return
		default:
		}

		msg, err := t.readMessage()
		if err != nil {
			if t.closed.Load() || err == io.EOF || err == io.ErrClosedPipe {
				return
			}
			if t.logger != nil {
				t.logger.Warnw("transport read error", "error", err)
			}
			continue
		}

		t.dispatch(msg)
	}
}

// readMessage reads one Content-Length framed message.
func (t *Transport) readMessage() (json.RawMessage, error) {
	var contentLength int
	for {
		line, err := t.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break // End of headers
		}
		if strings.HasPrefix(strings.ToLower(line), "content-length:") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				if length, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
					contentLength = length
				}
			}
		}
		// Other headers (Content-Type) are ignored.
	}

	if contentLength == 0 {
		return nil, fmt.Errorf("%w: missing Content-Length header", ErrInvalidResponse)
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(t.reader, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// dispatch routes a response to its waiting caller. Messages without a
// matching pending call (late responses, server-initiated traffic) are
// dropped.
func (t *Transport) dispatch(data json.RawMessage) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		if t.logger != nil {
			t.logger.Warnw("transport dropped unparseable message", "error", err)
		}
		return
	}
	if resp.Result == nil && resp.Error == nil {
		return
	}

	if t.closed.Load() {
		return
	}

	t.mu.Lock()
	ch, ok := t.pending[resp.ID]
	if ok {
		delete(t.pending, resp.ID)
	}
	t.mu.Unlock()

	if ok {
		select {
		case ch <- &resp:
		default:
		}
	}
}

// IsClosed returns true if the transport has been closed.
func (t *Transport) IsClosed() bool {
	return t.closed.Load()
}
