package completion

import (
	"github.com/dshills/compass/coords"
	"github.com/dshills/compass/editor"
	"github.com/dshills/compass/protocol"
)

// AfterInsertCommand is the host command identifier the after-insert
// workflow is bound to.
const AfterInsertCommand = "compass.completion.afterInsert"

// Convert maps one service completion record to its editor projection.
//
// Convert is total over well-formed input: validation is the service's
// responsibility and no field combination causes an error here. When
// asyncEnabled is true the returned item carries an after-insert command
// whose sole argument is the original, untranslated service record; the
// after-insert workflow needs the unresolved item, not the projection.
func Convert(item protocol.CompletionItem, asyncEnabled bool) *editor.CompletionItem {
	ui := &editor.CompletionItem{
		Label:            item.Label,
		Kind:             editor.CompletionItemKind(int(item.Kind) - 1),
		Detail:           item.Detail,
		SortText:         item.SortText,
		FilterText:       item.FilterText,
		Preselect:        item.Preselect,
		CommitCharacters: item.CommitCharacters,
		KeepWhitespace:   true,
	}

	// Absent documentation stays absent; never an empty rich-text block.
	if item.Documentation != "" {
		ui.Documentation = &editor.MarkupContent{
			Kind:  editor.MarkupMarkdown,
			Value: item.Documentation,
		}
	}

	for _, tag := range item.Tags {
		ui.Tags = append(ui.Tags, editor.CompletionItemTag(tag))
	}

	// The primary edit's replacement text wins over the plain insert
	// text, and its translated span becomes the explicit replacement
	// range. Without a primary edit the host falls back to its default
	// word-range behavior.
	text := item.InsertText
	if item.TextEdit != nil {
		text = item.TextEdit.NewText
		rng := coords.EditorRange(*item.TextEdit)
		ui.Range = &rng
	}

	if item.InsertTextFormat == protocol.InsertFormatSnippet {
		ui.InsertSnippet = &editor.SnippetString{Value: text}
	} else {
		ui.InsertText = text
	}

	for _, change := range item.AdditionalTextEdits {
		ui.AdditionalTextEdits = append(ui.AdditionalTextEdits, coords.EditorTextEdit(change))
	}

	if asyncEnabled {
		ui.Command = &editor.Command{
			Title:     "Complete insertion",
			Command:   AfterInsertCommand,
			Arguments: []any{item},
		}
	}

	return ui
}
