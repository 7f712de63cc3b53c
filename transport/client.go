package transport

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"go.uber.org/zap"

	"github.com/dshills/compass/completion"
	"github.com/dshills/compass/protocol"
)

// Wire method names for the completion protocol.
const (
	MethodCompletion            = "completion"
	MethodCompletionResolve     = "completion/resolve"
	MethodCompletionAfterInsert = "completion/afterInsert"
)

// Client is a completion.Service backed by a JSON-RPC connection to the
// analysis service.
type Client struct {
	transport *Transport
	logger    *zap.SugaredLogger

	// cmd is set only for spawned subprocess connections.
	cmd *exec.Cmd
}

// NewClient creates a client over an existing connection and starts its
// read loop. The closer may be nil.
func NewClient(r io.Reader, w io.Writer, c io.Closer, logger *zap.SugaredLogger) *Client {
	t := NewTransport(r, w, c, logger)
	t.Start()
	return &Client{transport: t, logger: logger}
}

// Spawn starts the analysis service as a subprocess and connects to it
// over its stdio pipes.
func Spawn(command string, args []string, logger *zap.SugaredLogger) (*Client, error) {
	cmd := exec.Command(command, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", command, err)
	}

	if logger != nil {
		logger.Infow("analysis service started", "command", command, "pid", cmd.Process.Pid)
	}

	c := NewClient(stdout, stdin, stdin, logger)
	c.cmd = cmd
	return c, nil
}

// GetCompletion requests completion candidates.
func (c *Client) GetCompletion(ctx context.Context, req *protocol.CompletionRequest) (*protocol.CompletionResponse, error) {
	var resp protocol.CompletionResponse
	if err := c.transport.Call(ctx, MethodCompletion, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCompletionResolve requests details for a single item.
func (c *Client) GetCompletionResolve(ctx context.Context, req *protocol.CompletionResolveRequest) (*protocol.CompletionResolveResponse, error) {
	var resp protocol.CompletionResolveResponse
	if err := c.transport.Call(ctx, MethodCompletionResolve, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCompletionAfterInsert requests the follow-up edit for an accepted
// item.
func (c *Client) GetCompletionAfterInsert(ctx context.Context, req *protocol.CompletionAfterInsertRequest) (*protocol.CompletionAfterInsertResponse, error) {
	var resp protocol.CompletionAfterInsertResponse
	if err := c.transport.Call(ctx, MethodCompletionAfterInsert, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Close shuts down the connection and, for spawned services, waits for
// the process to exit.
func (c *Client) Close() error {
	err := c.transport.Close()
	if c.cmd != nil {
		if waitErr := c.cmd.Wait(); waitErr != nil && err == nil {
			err = waitErr
		}
		if c.logger != nil {
			c.logger.Infow("analysis service stopped")
		}
	}
	return err
}

// Verify Client implements completion.Service.
var _ completion.Service = (*Client)(nil)
