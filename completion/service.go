package completion

import (
	"context"

	"github.com/dshills/compass/protocol"
)

// Service is the outbound interface to the analysis service. The
// transport package provides a JSON-RPC implementation; tests supply
// in-memory fakes.
type Service interface {
	// GetCompletion returns completion candidates at the request position.
	GetCompletion(ctx context.Context, req *protocol.CompletionRequest) (*protocol.CompletionResponse, error)

	// GetCompletionResolve fills in expensive details for a single item.
	GetCompletionResolve(ctx context.Context, req *protocol.CompletionResolveRequest) (*protocol.CompletionResolveResponse, error)

	// GetCompletionAfterInsert returns the follow-up edit for an
	// accepted item, if the service has one.
	GetCompletionAfterInsert(ctx context.Context, req *protocol.CompletionAfterInsertRequest) (*protocol.CompletionAfterInsertResponse, error)
}
