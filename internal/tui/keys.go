package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/goliatone/go-mdpad/internal/toolbar"
)

type keyMap struct {
	Bold          key.Binding
	Italic        key.Binding
	InlineCode    key.Binding
	Strikethrough key.Binding
	Heading1      key.Binding
	Heading2      key.Binding
	Heading3      key.Binding
	BulletList    key.Binding
	OrderedList   key.Binding
	Quote         key.Binding
	CodeBlock     key.Binding
	Link          key.Binding

	Indent  key.Binding
	Mark    key.Binding
	Load    key.Binding
	Export  key.Binding
	Preview key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Bold:          key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
		Italic:        key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "italic")),
		InlineCode:    key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "code")),
		Strikethrough: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "strike")),
		Heading1:      key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "h1")),
		Heading2:      key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "h2")),
		Heading3:      key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "h3")),
		BulletList:    key.NewBinding(key.WithKeys("alt+l"), key.WithHelp("alt+l", "list")),
		OrderedList:   key.NewBinding(key.WithKeys("alt+o"), key.WithHelp("alt+o", "numbered")),
		Quote:         key.NewBinding(key.WithKeys("alt+q"), key.WithHelp("alt+q", "quote")),
		CodeBlock:     key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "code block")),
		Link:          key.NewBinding(key.WithKeys("alt+k"), key.WithHelp("alt+k", "link")),

		Indent:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
		Mark:    key.NewBinding(key.WithKeys("ctrl+@"), key.WithHelp("ctrl+space", "mark")),
		Load:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "load")),
		Export:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "export")),
		Preview: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview")),
		Copy:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Help:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// toolbarBindings pairs each formatting key with its toolbar action.
func (k keyMap) toolbarBindings() []struct {
	binding key.Binding
	action  toolbar.Action
} {
	return []struct {
		binding key.Binding
		action  toolbar.Action
	}{
		{k.Bold, toolbar.Bold},
		{k.Italic, toolbar.Italic},
		{k.InlineCode, toolbar.InlineCode},
		{k.Strikethrough, toolbar.Strikethrough},
		{k.Heading1, toolbar.Heading1},
		{k.Heading2, toolbar.Heading2},
		{k.Heading3, toolbar.Heading3},
		{k.BulletList, toolbar.BulletList},
		{k.OrderedList, toolbar.OrderedList},
		{k.Quote, toolbar.Quote},
		{k.CodeBlock, toolbar.CodeBlock},
		{k.Link, toolbar.Link},
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Bold, k.Italic, k.Indent, k.Mark, k.Load, k.Export, k.Preview, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Bold, k.Italic, k.InlineCode, k.Strikethrough, k.Link},
		{k.Heading1, k.Heading2, k.Heading3, k.Quote, k.CodeBlock},
		{k.BulletList, k.OrderedList, k.Indent, k.Mark},
		{k.Load, k.Export, k.Preview, k.Copy, k.Help, k.Quit},
	}
}
