// Package editor defines the editor-facing completion model and the host
// collaborator interfaces.
//
// All coordinates in this package are 0-based. Types here are what the
// host renders and hands back; the completion package owns the mapping
// between them and the service's protocol shapes.
package editor

// Position in a document expressed as zero-based line and character.
type Position struct {
	Line      int
	Character int
}

// Range in a document expressed as start and end positions.
type Range struct {
	Start Position
	End   Position
}

// Selection is a cursor selection. A zero-width selection has
// Anchor == Active.
type Selection struct {
	Anchor Position
	Active Position
}

// CursorAt returns a zero-width selection at the given position.
func CursorAt(pos Position) Selection {
	return Selection{Anchor: pos, Active: pos}
}

// TextEdit is a single text replacement applicable to a document.
type TextEdit struct {
	Range   Range
	NewText string
}

// SnippetString is insertion text with tabstop and placeholder support.
type SnippetString struct {
	Value string
}

// MarkupKind describes the content type of a MarkupContent.
type MarkupKind string

const (
	MarkupPlainText MarkupKind = "plaintext"
	MarkupMarkdown  MarkupKind = "markdown"
)

// MarkupContent is rich documentation text.
type MarkupContent struct {
	Kind  MarkupKind
	Value string
}

// Command is a host command reference attached to a completion item.
type Command struct {
	Title     string
	Command   string
	Arguments []any
}

// CompletionTriggerKind describes why the host invoked completion
// (0-based, the host's convention).
type CompletionTriggerKind int

const (
	// TriggerInvoked means the user requested completion explicitly.
	TriggerInvoked CompletionTriggerKind = 0

	// TriggerCharacter means a trigger character was typed.
	TriggerCharacter CompletionTriggerKind = 1

	// TriggerIncomplete means an incomplete list is being re-requested.
	TriggerIncomplete CompletionTriggerKind = 2
)

// CompletionContext carries the host's trigger information for one
// completion invocation.
type CompletionContext struct {
	TriggerKind      CompletionTriggerKind
	TriggerCharacter string
}

// CompletionItemKind classifies a completion item (0-based, exactly one
// less than the service's enumeration).
type CompletionItemKind int

const (
	KindText          CompletionItemKind = 0
	KindMethod        CompletionItemKind = 1
	KindFunction      CompletionItemKind = 2
	KindConstructor   CompletionItemKind = 3
	KindField         CompletionItemKind = 4
	KindVariable      CompletionItemKind = 5
	KindClass         CompletionItemKind = 6
	KindInterface     CompletionItemKind = 7
	KindModule        CompletionItemKind = 8
	KindProperty      CompletionItemKind = 9
	KindUnit          CompletionItemKind = 10
	KindValue         CompletionItemKind = 11
	KindEnum          CompletionItemKind = 12
	KindKeyword       CompletionItemKind = 13
	KindSnippet       CompletionItemKind = 14
	KindColor         CompletionItemKind = 15
	KindFile          CompletionItemKind = 16
	KindReference     CompletionItemKind = 17
	KindFolder        CompletionItemKind = 18
	KindEnumMember    CompletionItemKind = 19
	KindConstant      CompletionItemKind = 20
	KindStruct        CompletionItemKind = 21
	KindEvent         CompletionItemKind = 22
	KindOperator      CompletionItemKind = 23
	KindTypeParameter CompletionItemKind = 24
)

// CompletionItemTag marks special properties of an item.
type CompletionItemTag int

const (
	// TagDeprecated marks the item as deprecated.
	TagDeprecated CompletionItemTag = 1
)

// CompletionItem is the editor-facing projection of a service completion
// record. Exactly one of InsertText and InsertSnippet is populated.
// A nil Range tells the host to use its default word-range behavior.
type CompletionItem struct {
	Label               string
	Kind                CompletionItemKind
	Tags                []CompletionItemTag
	Detail              string
	Documentation       *MarkupContent
	SortText            string
	FilterText          string
	Preselect           bool
	CommitCharacters    []string
	InsertText          string
	InsertSnippet       *SnippetString
	Range               *Range
	AdditionalTextEdits []TextEdit

	// KeepWhitespace tells the host not to trim trailing whitespace
	// from inserted text.
	KeepWhitespace bool

	// Command, when set, is invoked by the host after the item has been
	// inserted.
	Command *Command
}

// --- Host collaborators ---

// View is the focused editor view.
type View interface {
	// Path identifies the document shown in the view.
	Path() string

	// Cursor returns the current cursor position.
	Cursor() Position

	// Select replaces the view's selection.
	Select(sel Selection)
}

// Host is the editing surface the completion layer drives.
type Host interface {
	// ActiveView returns the focused view, or false when no editor view
	// has focus.
	ActiveView() (View, bool)

	// ApplyEdit applies edits to the document at path. It returns false
	// when the host rejected the edit, e.g. because the document changed
	// concurrently.
	ApplyEdit(path string, edits []TextEdit) (bool, error)
}

// EditRemapper rewrites an edit before it is applied, for
// virtual/embedded document scenarios. Implementations outside this
// module; a nil remapper means edits apply as-is.
type EditRemapper interface {
	Remap(path string, edits []TextEdit) (string, []TextEdit, error)
}
