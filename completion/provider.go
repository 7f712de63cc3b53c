package completion

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/compass/config"
	"github.com/dshills/compass/coords"
	"github.com/dshills/compass/editor"
	"github.com/dshills/compass/protocol"
)

// ProvideResult is the outcome of one completion request. Degraded
// reports that the service call failed or was canceled; the host shows
// no completions but the editing session is unaffected.
type ProvideResult struct {
	Items    []*editor.CompletionItem
	Degraded bool
}

// ResolveOutcome tells the host what to do with the result of a resolve
// request.
type ResolveOutcome int

const (
	// ResolveResolved means the service returned a richer item.
	ResolveResolved ResolveOutcome = iota

	// ResolveStale means the item's session was superseded; the input
	// item is returned unchanged.
	ResolveStale

	// ResolveKeptPrior means the service call failed; the host keeps
	// the item it already has.
	ResolveKeptPrior
)

// Config configures a Provider.
type Config struct {
	// Service is the analysis-service transport. Required.
	Service Service

	// Host is the editing surface. Required.
	Host editor.Host

	// Remapper rewrites edits for virtual documents before application.
	// Optional.
	Remapper editor.EditRemapper

	// Options returns the current user options. Defaults to
	// config.Default when nil.
	Options func() config.Options

	// Logger is required.
	Logger *zap.SugaredLogger
}

// Provider orchestrates the completion session lifecycle: it issues
// completion requests, retains the correlation table for the most recent
// response, serves resolve requests against it, and drives the
// after-insert edit workflow.
//
// Provider is safe for concurrent use. The session is the only shared
// mutable state: ProvideCompletionItems is its sole writer and replaces
// it wholesale, never incrementally.
type Provider struct {
	service  Service
	host     editor.Host
	remapper editor.EditRemapper
	options  func() config.Options
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	session *session
}

// NewProvider creates a completion provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("service is required")
	}
	if cfg.Host == nil {
		return nil, fmt.Errorf("host is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	opts := cfg.Options
	if opts == nil {
		opts = func() config.Options { return config.Default() }
	}

	return &Provider{
		service:  cfg.Service,
		host:     cfg.Host,
		remapper: cfg.Remapper,
		options:  opts,
		logger:   cfg.Logger,
	}, nil
}

// ProvideCompletionItems requests completions at the given position and
// installs a fresh correlation session for the response. It never
// returns an error: any failure, including cancellation, yields a
// degraded empty result and leaves the previous session in place.
func (p *Provider) ProvideCompletionItems(ctx context.Context, path string, pos editor.Position, cctx editor.CompletionContext) ProvideResult {
	opts := p.options()

	line, column := coords.ServicePoint(pos)
	req := &protocol.CompletionRequest{
		FileName:           path,
		Line:               line,
		Column:             column,
		CompletionTrigger:  protocol.CompletionTriggerKind(int(cctx.TriggerKind) + 1),
		TriggerCharacter:   cctx.TriggerCharacter,
		UseAsyncCompletion: opts.UseAsyncCompletion,
	}

	ctx, cancel := context.WithTimeout(ctx, opts.RequestTimeout)
	defer cancel()

	resp, err := p.service.GetCompletion(ctx, req)
	if err != nil {
		p.logger.Debugw("completion request failed", "file", path, "error", err)
		return ProvideResult{Degraded: true}
	}
	if ctx.Err() != nil {
		// The response arrived after cancellation; do not act on it.
		p.logger.Debugw("completion response discarded after cancellation", "file", path)
		return ProvideResult{Degraded: true}
	}
	if resp == nil {
		resp = &protocol.CompletionResponse{}
	}

	items := make([]*editor.CompletionItem, len(resp.Items))
	for i, rec := range resp.Items {
		items[i] = Convert(rec, opts.UseAsyncCompletion)
	}

	sess := newSession(items, resp.Items)
	p.mu.Lock()
	p.session = sess
	p.mu.Unlock()

	return ProvideResult{Items: items}
}

// ResolveCompletionItem fills in expensive details for an item the host
// is about to display. A stale item (its session was superseded) is
// returned unchanged; a service failure tells the host to keep the item
// it already has.
func (p *Provider) ResolveCompletionItem(ctx context.Context, item *editor.CompletionItem) (*editor.CompletionItem, ResolveOutcome) {
	p.mu.Lock()
	sess := p.session
	p.mu.Unlock()

	record, ok := sess.lookup(item)
	if !ok {
		return item, ResolveStale
	}

	// The item keeps the async behavior it was created with even if
	// configuration changed since, so infer the flag from the item's own
	// shape rather than live options.
	asyncEnabled := item.Command != nil

	ctx, cancel := context.WithTimeout(ctx, p.options().RequestTimeout)
	defer cancel()

	resp, err := p.service.GetCompletionResolve(ctx, &protocol.CompletionResolveRequest{Item: record})
	if err != nil {
		p.logger.Debugw("completion resolve failed", "session", sess.id, "label", item.Label, "error", err)
		return nil, ResolveKeptPrior
	}
	if ctx.Err() != nil || resp == nil || resp.Item == nil {
		return nil, ResolveKeptPrior
	}

	return Convert(*resp.Item, asyncEnabled), ResolveResolved
}

// AfterInsert drives the follow-up edit workflow for an accepted item.
// It asks the service for a post-insert change at the current cursor,
// applies it to the live document, and repositions the cursor. Every
// failure path ends the workflow silently and without side effects.
func (p *Provider) AfterInsert(ctx context.Context, item protocol.CompletionItem) {
	view, ok := p.host.ActiveView()
	if !ok {
		return
	}

	line, column := coords.ServicePoint(view.Cursor())
	req := &protocol.CompletionAfterInsertRequest{
		Item:     item,
		FileName: view.Path(),
		Line:     line,
		Column:   column,
	}

	ctx, cancel := context.WithTimeout(ctx, p.options().RequestTimeout)
	defer cancel()

	resp, err := p.service.GetCompletionAfterInsert(ctx, req)
	if err != nil {
		p.logger.Debugw("after-insert request failed", "file", req.FileName, "label", item.Label, "error", err)
		return
	}
	if resp == nil || resp.Change == nil || resp.Line == nil || resp.Column == nil {
		// The service declined to provide a follow-up edit. Normal for
		// items that need no post-processing.
		return
	}

	path := view.Path()
	edits := []editor.TextEdit{coords.EditorTextEdit(*resp.Change)}

	if p.remapper != nil {
		path, edits, err = p.remapper.Remap(path, edits)
		if err != nil {
			p.logger.Debugw("after-insert remap failed", "file", path, "error", err)
			return
		}
	}

	applied, err := p.host.ApplyEdit(path, edits)
	if err != nil || !applied {
		p.logger.Debugw("after-insert edit rejected", "file", path, "error", err)
		return
	}

	view.Select(editor.CursorAt(coords.EditorPosition(*resp.Line, *resp.Column)))
}
