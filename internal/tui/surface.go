package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/charmbracelet/bubbles/textarea"
)

// sanitizer matches the rewriting the textarea applies to inserted text:
// tabs become four spaces and control characters other than newlines are
// dropped.
var sanitizer = runeutil.NewSanitizer()

// textareaSurface lets the editor session drive a bubbles textarea.
// Offsets are runes from the start of the document.
type textareaSurface struct {
	ta *textarea.Model
}

func (s textareaSurface) SetText(text string) {
	s.ta.SetValue(text)
}

// Normalize returns text as the textarea will hold it.
func (textareaSurface) Normalize(text string) string {
	return string(sanitizer.Sanitize([]rune(text)))
}

func (s textareaSurface) SetCursor(pos int) {
	row, col := rowCol(s.ta.Value(), pos)
	moveToRow(s.ta, row)
	s.ta.SetCursor(col)
}

// cursorOffset returns the caret position of ta as a document offset.
func cursorOffset(ta *textarea.Model) int {
	lines := strings.Split(ta.Value(), "\n")
	row := ta.Line()
	offset := 0
	for i := 0; i < row && i < len(lines); i++ {
		offset += utf8.RuneCountInString(lines[i]) + 1
	}
	info := ta.LineInfo()
	return offset + info.StartColumn + info.ColumnOffset
}

// rowCol converts a document offset into a line and rune column. Offsets
// past the end land on the last position.
func rowCol(text string, pos int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	row, col := 0, 0
	for _, r := range text {
		if pos == 0 {
			break
		}
		pos--
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}

// moveToRow walks the caret line by line. Soft-wrapped lines take several
// steps, so the walk is bounded by the number of visual rows.
func moveToRow(ta *textarea.Model, row int) {
	limit := strings.Count(ta.Value(), "\n") + utf8.RuneCountInString(ta.Value()) + 1
	for i := 0; ta.Line() > row && i < limit; i++ {
		ta.CursorUp()
	}
	for i := 0; ta.Line() < row && i < limit; i++ {
		ta.CursorDown()
	}
}
