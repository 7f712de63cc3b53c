package transport

import (
	"errors"
	"fmt"
)

// Standard errors returned by the transport.
var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("transport client closed")

	// ErrInvalidResponse indicates a malformed response from the service.
	ErrInvalidResponse = errors.New("invalid response from service")
)

// RPCError is a JSON-RPC error reported by the service.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("rpc error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	CodeRequestCancelled = -32800
	CodeContentModified  = -32801
)
