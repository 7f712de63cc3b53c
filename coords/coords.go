// Package coords translates between the analysis service's 1-based
// line/column convention and the editor's 0-based convention.
//
// Every boundary crossing must go through this package. An off-by-one
// here corrupts cursor placement and edit application without raising
// any error, so the transforms live in one place and are tested in
// isolation.
package coords

import (
	"github.com/dshills/compass/editor"
	"github.com/dshills/compass/protocol"
)

// ToEditor converts a 1-based service (line, column) pair to a 0-based
// editor pair.
func ToEditor(line, column int) (int, int) {
	return line - 1, column - 1
}

// ToService converts a 0-based editor (line, character) pair to a
// 1-based service pair.
func ToService(line, character int) (int, int) {
	return line + 1, character + 1
}

// EditorPosition converts a 1-based service point to an editor Position.
func EditorPosition(line, column int) editor.Position {
	l, c := ToEditor(line, column)
	return editor.Position{Line: l, Character: c}
}

// ServicePoint converts an editor Position to a 1-based service
// (line, column) pair.
func ServicePoint(pos editor.Position) (line, column int) {
	return ToService(pos.Line, pos.Character)
}

// EditorRange converts the span of a service text change to an editor
// Range.
func EditorRange(change protocol.TextChange) editor.Range {
	return editor.Range{
		Start: EditorPosition(change.StartLine, change.StartColumn),
		End:   EditorPosition(change.EndLine, change.EndColumn),
	}
}

// EditorTextEdit converts a service text change to an editor TextEdit.
func EditorTextEdit(change protocol.TextChange) editor.TextEdit {
	return editor.TextEdit{
		Range:   EditorRange(change),
		NewText: change.NewText,
	}
}
