// Package inserter splices snippets into text at a selection and reports
// where the cursor should land afterwards. Offsets count runes.
package inserter

import (
	"errors"
	"fmt"
	"unicode/utf8"

	goerrors "github.com/goliatone/go-errors"
)

const selectionOutOfRangeCode = "SELECTION_OUT_OF_RANGE"

// ErrSelectionOutOfRange reports a selection outside 0 <= start <= end <= len(text).
var ErrSelectionOutOfRange = errors.New("inserter: selection out of range")

// Tab key policy: a tab inserts two spaces and moves the cursor past them.
const (
	IndentSnippet = "  "
	IndentOffset  = 2
)

// Selection is a [Start, End) rune range into a document.
type Selection struct {
	Start int
	End   int
}

// Collapsed returns an empty selection at pos.
func Collapsed(pos int) Selection {
	return Selection{Start: pos, End: pos}
}

// Span returns the selection covering a and b in either order.
func Span(a, b int) Selection {
	if a > b {
		a, b = b, a
	}
	return Selection{Start: a, End: b}
}

// Empty reports whether the selection covers no text.
func (s Selection) Empty() bool {
	return s.Start == s.End
}

// Len returns the number of runes covered.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Validate checks the selection against a document of length runes.
func (s Selection) Validate(length int) error {
	if s.Start < 0 || s.Start > s.End || s.End > length {
		return goerrors.Wrap(
			fmt.Errorf("%w: [%d,%d) of %d", ErrSelectionOutOfRange, s.Start, s.End, length),
			goerrors.CategoryValidation,
			"selection out of range",
		).WithTextCode(selectionOutOfRangeCode)
	}
	return nil
}

// Result is the outcome of an insertion.
type Result struct {
	Text   string
	Cursor int
}

// Insert replaces text[start:end] with snippet. The cursor lands at
// start+cursorOffset; cursorOffset is not checked against the snippet.
func Insert(text string, start, end int, snippet string, cursorOffset int) (Result, error) {
	sel := Selection{Start: start, End: end}
	runes := []rune(text)
	if err := sel.Validate(len(runes)); err != nil {
		return Result{}, err
	}
	if sel.Empty() && snippet == "" {
		return Result{Text: text, Cursor: start + cursorOffset}, nil
	}

	head := string(runes[:start])
	tail := string(runes[end:])
	return Result{
		Text:   head + snippet + tail,
		Cursor: start + cursorOffset,
	}, nil
}

// InsertAt is Insert with a Selection.
func InsertAt(text string, sel Selection, snippet string, cursorOffset int) (Result, error) {
	return Insert(text, sel.Start, sel.End, snippet, cursorOffset)
}

// Indent applies the tab key policy at sel.
func Indent(text string, sel Selection) (Result, error) {
	return InsertAt(text, sel, IndentSnippet, IndentOffset)
}

// Selected returns the text covered by sel, or "" when sel is invalid.
func Selected(text string, sel Selection) string {
	runes := []rune(text)
	if sel.Validate(len(runes)) != nil {
		return ""
	}
	return string(runes[sel.Start:sel.End])
}

// Len returns the length of text in runes.
func Len(text string) int {
	return utf8.RuneCountInString(text)
}
