// Package toolbar lists the markdown formatting actions offered by the
// editor and the snippet each one inserts.
package toolbar

import (
	"strings"
	"unicode/utf8"
)

// Action identifies a toolbar button.
type Action string

const (
	Bold          Action = "bold"
	Italic        Action = "italic"
	InlineCode    Action = "code"
	Strikethrough Action = "strike"
	Heading1      Action = "h1"
	Heading2      Action = "h2"
	Heading3      Action = "h3"
	BulletList    Action = "bullet"
	OrderedList   Action = "ordered"
	Quote         Action = "quote"
	CodeBlock     Action = "codeblock"
	Link          Action = "link"
)

// Markup describes the text placed around the selection. The cursor lands
// len(Before)+Extra runes after the start of the selection.
type Markup struct {
	Label  string
	Before string
	After  string
	Extra  int
}

var catalogue = []struct {
	action Action
	markup Markup
}{
	{Bold, Markup{Label: "Bold", Before: "**", After: "**"}},
	{Italic, Markup{Label: "Italic", Before: "*", After: "*"}},
	{InlineCode, Markup{Label: "Inline code", Before: "`", After: "`"}},
	{Strikethrough, Markup{Label: "Strikethrough", Before: "~~", After: "~~"}},
	{Heading1, Markup{Label: "Heading 1", Before: "# "}},
	{Heading2, Markup{Label: "Heading 2", Before: "## "}},
	{Heading3, Markup{Label: "Heading 3", Before: "### "}},
	{BulletList, Markup{Label: "Bullet list", Before: "- "}},
	{OrderedList, Markup{Label: "Numbered list", Before: "1. "}},
	{Quote, Markup{Label: "Quote", Before: "> "}},
	{CodeBlock, Markup{Label: "Code block", Before: "```\n", After: "\n```"}},
	{Link, Markup{Label: "Link", Before: "[", After: "](url)", Extra: 1}},
}

// Actions returns every action in toolbar order.
func Actions() []Action {
	out := make([]Action, len(catalogue))
	for i, entry := range catalogue {
		out[i] = entry.action
	}
	return out
}

// Lookup returns the markup for action. Names are matched case-insensitively.
func Lookup(action Action) (Markup, bool) {
	name := Action(strings.ToLower(strings.TrimSpace(string(action))))
	for _, entry := range catalogue {
		if entry.action == name {
			return entry.markup, true
		}
	}
	return Markup{}, false
}

// Snippet wraps selected in the markup and returns the text to insert with
// the cursor offset relative to the start of the selection.
func (m Markup) Snippet(selected string) (string, int) {
	return m.Before + selected + m.After, utf8.RuneCountInString(m.Before) + m.Extra
}
