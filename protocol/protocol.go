// Package protocol defines the wire shapes of the analysis service's
// completion protocol.
//
// The service owns these shapes: field names and the 1-based line/column
// convention are dictated by it and must be matched exactly on the wire.
// Nothing in this package translates coordinates; that is the job of the
// coords package at the boundary.
package protocol

// CompletionTriggerKind describes why completion was invoked (1-based).
type CompletionTriggerKind int

const (
	// TriggerInvoked means completion was requested explicitly.
	TriggerInvoked CompletionTriggerKind = 1

	// TriggerCharacter means a registered trigger character was typed.
	TriggerCharacter CompletionTriggerKind = 2

	// TriggerIncompleteRetrigger means a previous incomplete list is
	// being re-requested as the user keeps typing.
	TriggerIncompleteRetrigger CompletionTriggerKind = 3
)

// CompletionItemKind classifies a completion candidate (1-based).
type CompletionItemKind int

const (
	KindText          CompletionItemKind = 1
	KindMethod        CompletionItemKind = 2
	KindFunction      CompletionItemKind = 3
	KindConstructor   CompletionItemKind = 4
	KindField         CompletionItemKind = 5
	KindVariable      CompletionItemKind = 6
	KindClass         CompletionItemKind = 7
	KindInterface     CompletionItemKind = 8
	KindModule        CompletionItemKind = 9
	KindProperty      CompletionItemKind = 10
	KindUnit          CompletionItemKind = 11
	KindValue         CompletionItemKind = 12
	KindEnum          CompletionItemKind = 13
	KindKeyword       CompletionItemKind = 14
	KindSnippet       CompletionItemKind = 15
	KindColor         CompletionItemKind = 16
	KindFile          CompletionItemKind = 17
	KindReference     CompletionItemKind = 18
	KindFolder        CompletionItemKind = 19
	KindEnumMember    CompletionItemKind = 20
	KindConstant      CompletionItemKind = 21
	KindStruct        CompletionItemKind = 22
	KindEvent         CompletionItemKind = 23
	KindOperator      CompletionItemKind = 24
	KindTypeParameter CompletionItemKind = 25
)

// CompletionItemTag marks special properties of an item.
type CompletionItemTag int

const (
	// TagDeprecated marks the item as deprecated.
	TagDeprecated CompletionItemTag = 1
)

// InsertTextFormat defines how InsertText should be interpreted.
type InsertTextFormat int

const (
	// InsertFormatPlainText inserts the text verbatim.
	InsertFormatPlainText InsertTextFormat = 1

	// InsertFormatSnippet interprets the text as a snippet with
	// tabstops and placeholders.
	InsertFormatSnippet InsertTextFormat = 2
)

// TextChange is a single text replacement. All coordinates are 1-based.
type TextChange struct {
	NewText     string `json:"NewText"`
	StartLine   int    `json:"StartLine"`
	StartColumn int    `json:"StartColumn"`
	EndLine     int    `json:"EndLine"`
	EndColumn   int    `json:"EndColumn"`
}

// CompletionRequest asks for completions at a cursor position.
// Line and Column are 1-based.
type CompletionRequest struct {
	FileName           string                `json:"FileName"`
	Line               int                   `json:"Line"`
	Column             int                   `json:"Column"`
	CompletionTrigger  CompletionTriggerKind `json:"CompletionTrigger"`
	TriggerCharacter   string                `json:"TriggerCharacter,omitempty"`
	UseAsyncCompletion bool                  `json:"UseAsyncCompletion"`
}

// CompletionItem is one completion candidate as the service describes it.
// It is treated as immutable once received.
type CompletionItem struct {
	Label               string              `json:"Label"`
	Detail              string              `json:"Detail,omitempty"`
	Kind                CompletionItemKind  `json:"Kind"`
	Documentation       string              `json:"Documentation,omitempty"`
	CommitCharacters    []string            `json:"CommitCharacters,omitempty"`
	Preselect           bool                `json:"Preselect"`
	FilterText          string              `json:"FilterText,omitempty"`
	SortText            string              `json:"SortText,omitempty"`
	InsertText          string              `json:"InsertText,omitempty"`
	InsertTextFormat    InsertTextFormat    `json:"InsertTextFormat"`
	TextEdit            *TextChange         `json:"TextEdit,omitempty"`
	AdditionalTextEdits []TextChange        `json:"AdditionalTextEdits,omitempty"`
	Tags                []CompletionItemTag `json:"Tags,omitempty"`
}

// CompletionResponse is the service's answer to a CompletionRequest.
type CompletionResponse struct {
	IsIncomplete bool             `json:"IsIncomplete"`
	Items        []CompletionItem `json:"Items"`
}

// CompletionResolveRequest asks the service to fill in expensive item
// details (documentation, additional edits) on demand.
type CompletionResolveRequest struct {
	Item CompletionItem `json:"Item"`
}

// CompletionResolveResponse carries the enriched item, or nil when the
// service has nothing to add.
type CompletionResolveResponse struct {
	Item *CompletionItem `json:"Item,omitempty"`
}

// CompletionAfterInsertRequest asks for a follow-up document change after
// an item has been accepted. Line and Column are the 1-based cursor
// position after insertion.
type CompletionAfterInsertRequest struct {
	Item     CompletionItem `json:"Item"`
	FileName string         `json:"FileName"`
	Line     int            `json:"Line"`
	Column   int            `json:"Column"`
}

// CompletionAfterInsertResponse describes the follow-up edit and the
// resulting cursor position. Fields are pointers so that an absent field
// is distinguishable from a zero value; a response missing any of them
// means the service declined to provide a follow-up edit.
type CompletionAfterInsertResponse struct {
	Change *TextChange `json:"Change,omitempty"`
	Line   *int        `json:"Line,omitempty"`
	Column *int        `json:"Column,omitempty"`
}
