package completion

import (
	"github.com/google/uuid"

	"github.com/dshills/compass/editor"
	"github.com/dshills/compass/protocol"
)

// session correlates the UI items handed to the host with the service
// records they were derived from, for exactly one completion response.
// A Provider holds at most one session; a successful provide call
// replaces it wholesale, invalidating every item of the previous one.
type session struct {
	// id identifies the originating request, for logging only.
	id string

	// table is keyed by pointer identity. Labels are not unique, so
	// value equality would conflate distinct items.
	table map[*editor.CompletionItem]protocol.CompletionItem
}

// newSession builds the correlation table for one completion response.
// items[i] must be the conversion of records[i].
func newSession(items []*editor.CompletionItem, records []protocol.CompletionItem) *session {
	s := &session{
		id:    uuid.NewString(),
		table: make(map[*editor.CompletionItem]protocol.CompletionItem, len(items)),
	}
	for i, item := range items {
		s.table[item] = records[i]
	}
	return s
}

// lookup returns the originating record for a UI item. A miss means the
// item belongs to a superseded session; callers treat that as a normal,
// silently-degraded case.
func (s *session) lookup(item *editor.CompletionItem) (protocol.CompletionItem, bool) {
	if s == nil {
		return protocol.CompletionItem{}, false
	}
	rec, ok := s.table[item]
	return rec, ok
}
