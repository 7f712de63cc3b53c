package editor

import "testing"

func TestCursorAt(t *testing.T) {
	pos := Position{Line: 3, Character: 8}
	sel := CursorAt(pos)

	if sel.Anchor != pos || sel.Active != pos {
		t.Errorf("CursorAt(%+v) = %+v, want zero-width selection at position", pos, sel)
	}
}
