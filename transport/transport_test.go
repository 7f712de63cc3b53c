package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/compass/protocol"
)

// readFrame reads one Content-Length framed message the way the service
// would.
func readFrame(r *bufio.Reader) (json.RawMessage, error) {
	var contentLength int
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if strings.HasPrefix(strings.ToLower(line), "content-length:") {
			parts := strings.SplitN(line, ":", 2)
			contentLength, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
		}
	}
	body := make([]byte, contentLength)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

func writeFrame(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// newLoopback wires a client to an in-process fake service and returns
// the service's ends of the pipes.
func newLoopback(t *testing.T) (*Client, *bufio.Reader, io.Writer) {
	t.Helper()

	clientIn, serviceOut := io.Pipe()
	serviceIn, clientOut := io.Pipe()

	client := NewClient(clientIn, clientOut, nil, zap.NewNop().Sugar())
	t.Cleanup(func() {
		client.Close()
		serviceOut.Close()
		serviceIn.Close()
	})

	return client, bufio.NewReader(serviceIn), serviceOut
}

func TestClientGetCompletion(t *testing.T) {
	client, serviceReader, serviceWriter := newLoopback(t)

	go func() {
		data, err := readFrame(serviceReader)
		if err != nil {
			return
		}

		var req struct {
			ID     int64                      `json:"id"`
			Method string                     `json:"method"`
			Params protocol.CompletionRequest `json:"params"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return
		}
		if req.Method != MethodCompletion {
			writeFrame(serviceWriter, map[string]any{
				"jsonrpc": "2.0", "id": req.ID,
				"error": map[string]any{"code": CodeMethodNotFound, "message": "unknown method"},
			})
			return
		}

		writeFrame(serviceWriter, map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": protocol.CompletionResponse{
				Items: []protocol.CompletionItem{
					{Label: "ReadAll", Kind: protocol.KindFunction},
				},
			},
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.GetCompletion(ctx, &protocol.CompletionRequest{
		FileName: "/f.go", Line: 1, Column: 1,
		CompletionTrigger: protocol.TriggerInvoked,
	})
	if err != nil {
		t.Fatalf("GetCompletion() error = %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Label != "ReadAll" {
		t.Errorf("Items = %+v, want single ReadAll item", resp.Items)
	}
}

func TestClientServiceError(t *testing.T) {
	client, serviceReader, serviceWriter := newLoopback(t)

	go func() {
		data, err := readFrame(serviceReader)
		if err != nil {
			return
		}
		var req struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return
		}
		writeFrame(serviceWriter, map[string]any{
			"jsonrpc": "2.0", "id": req.ID,
			"error": map[string]any{"code": CodeInternalError, "message": "analysis failed"},
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.GetCompletionResolve(ctx, &protocol.CompletionResolveRequest{})
	if err == nil {
		t.Fatal("GetCompletionResolve() error = nil, want RPC error")
	}

	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("error type = %T, want *RPCError", err)
	}
	if rpcErr.Code != CodeInternalError {
		t.Errorf("Code = %d, want %d", rpcErr.Code, CodeInternalError)
	}
}

func TestClientCancellation(t *testing.T) {
	client, serviceReader, _ := newLoopback(t)

	// The service reads the request but never answers.
	go func() {
		readFrame(serviceReader)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetCompletion(ctx, &protocol.CompletionRequest{FileName: "/f.go"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestClientCallAfterClose(t *testing.T) {
	client, _, _ := newLoopback(t)

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, err := client.GetCompletion(context.Background(), &protocol.CompletionRequest{})
	if !errors.Is(err, ErrClientClosed) {
		t.Errorf("error = %v, want ErrClientClosed", err)
	}
}

func TestTransportIgnoresUnknownMessages(t *testing.T) {
	client, serviceReader, serviceWriter := newLoopback(t)

	go func() {
		data, err := readFrame(serviceReader)
		if err != nil {
			return
		}
		var req struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return
		}

		// Noise before the real answer: a notification and a response
		// for an id nobody is waiting on.
		writeFrame(serviceWriter, map[string]any{
			"jsonrpc": "2.0", "method": "telemetry/event", "params": map[string]any{},
		})
		writeFrame(serviceWriter, map[string]any{
			"jsonrpc": "2.0", "id": req.ID + 1000, "result": map[string]any{},
		})
		writeFrame(serviceWriter, map[string]any{
			"jsonrpc": "2.0", "id": req.ID,
			"result": protocol.CompletionAfterInsertResponse{},
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.GetCompletionAfterInsert(ctx, &protocol.CompletionAfterInsertRequest{})
	if err != nil {
		t.Fatalf("GetCompletionAfterInsert() error = %v", err)
	}
	if resp.Change != nil {
		t.Errorf("Change = %+v, want nil", resp.Change)
	}
}
