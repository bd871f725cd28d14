// Package tui is the Bubble Tea front end of the editor: a toolbar, the
// text surface, a live preview pane and file load and export prompts.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	editorcmd "github.com/goliatone/go-mdpad/internal/commands/editor"
	"github.com/goliatone/go-mdpad/internal/editor"
	"github.com/goliatone/go-mdpad/internal/files"
	"github.com/goliatone/go-mdpad/internal/inserter"
	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/internal/slots"
	"github.com/goliatone/go-mdpad/internal/toolbar"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// Importer reads a chosen file. It runs off the update loop.
type Importer interface {
	Read(ctx context.Context, path string) (string, error)
}

// Config carries the services the model drives.
type Config struct {
	Session       *editor.Session
	Importer      Importer
	Renderer      interfaces.Renderer
	RenderOptions interfaces.RenderOptions
	Events        <-chan slots.ChangeEvent
	Degraded      bool
	Logger        interfaces.Logger
	// Clipboard overrides the system clipboard writer.
	Clipboard func(string) error
	// Register builds the command handlers once the surface is attached.
	Register func(session *editor.Session, hooks editorcmd.Hooks) (*editorcmd.HandlerSet, error)
}

type (
	textCommittedMsg struct{}
	fileReadMsg      struct {
		path string
		text string
		err  error
	}
	exportedMsg struct {
		artifact *files.Artifact
		err      error
	}
	previewMsg struct {
		seq     int
		content string
		err     error
	}
	slotChangedMsg struct {
		event slots.ChangeEvent
		ok    bool
	}
	clipboardMsg struct{ err error }
)

// Model is the root Bubble Tea model. It is used through a pointer so the
// session surface and the model share one textarea.
type Model struct {
	ctx      context.Context
	session  *editor.Session
	handlers *editorcmd.HandlerSet
	importer Importer
	renderer interfaces.Renderer
	opts     interfaces.RenderOptions
	events   <-chan slots.ChangeEvent
	logger   interfaces.Logger
	copyText func(string) error
	exports  chan *files.Artifact

	ta        *textarea.Model
	preview   viewport.Model
	prompt    textinput.Model
	help      help.Model
	keys      keyMap
	styles    styles
	prompting bool
	mark      *int

	notice     string
	status     string
	statusErr  bool
	previewSeq int
	width      int
	height     int
}

// New builds the model and attaches the textarea to the session.
func New(ctx context.Context, cfg Config) (*Model, error) {
	if cfg.Session == nil {
		return nil, editorcmd.ErrEditorRequired
	}
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.Placeholder = "Start typing..."
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.Focus()

	prompt := textinput.New()
	prompt.Placeholder = "path/to/file.md"
	prompt.CharLimit = 4096

	m := &Model{
		ctx:      ctx,
		session:  cfg.Session,
		importer: cfg.Importer,
		renderer: cfg.Renderer,
		opts:     cfg.RenderOptions,
		events:   cfg.Events,
		logger:   logging.Ensure(cfg.Logger),
		copyText: cfg.Clipboard,
		exports:  make(chan *files.Artifact, 1),
		ta:       &ta,
		preview:  viewport.New(40, 20),
		prompt:   prompt,
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   defaultStyles(),
	}
	if m.copyText == nil {
		m.copyText = clipboard.WriteAll
	}

	cfg.Session.AttachSurface(ctx, textareaSurface{ta: m.ta})
	textareaSurface{ta: m.ta}.SetCursor(inserter.Len(cfg.Session.Text()))

	hooks := editorcmd.Hooks{
		OnLoaded: func(path string, runes int) {
			m.setStatus(fmt.Sprintf("loaded %s (%d characters)", path, runes), false)
		},
		OnExported: func(artifact *files.Artifact) {
			select {
			case m.exports <- artifact:
			default:
			}
		},
	}
	register := cfg.Register
	if register == nil {
		register = func(session *editor.Session, hooks editorcmd.Hooks) (*editorcmd.HandlerSet, error) {
			return editorcmd.RegisterEditorCommands(nil, editorcmd.Dependencies{Editor: session, Hooks: hooks}, nil)
		}
	}
	handlers, err := register(cfg.Session, hooks)
	if err != nil {
		return nil, err
	}
	m.handlers = handlers

	if cfg.Degraded {
		m.setStatus("storage unavailable, changes are kept in memory only", true)
	}
	return m, nil
}

// Init starts listening for slot changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForSlotEvent())
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.renderPreview()
	case textCommittedMsg:
		m.session.Committed()
		return m, nil
	case fileReadMsg:
		return m, m.applyFile(msg)
	case exportedMsg:
		if msg.err != nil {
			m.setStatus("export failed: "+msg.err.Error(), true)
			return m, nil
		}
		if msg.artifact != nil {
			m.setStatus(fmt.Sprintf("exported %s (%s)", msg.artifact.Path, msg.artifact.MediaType), false)
		}
		return m, nil
	case previewMsg:
		if msg.seq != m.previewSeq {
			return m, nil
		}
		if msg.err != nil {
			m.preview.SetContent(m.session.Text() + "\n\n" + msg.err.Error())
			return m, nil
		}
		m.preview.SetContent(msg.content)
		return m, nil
	case slotChangedMsg:
		if !msg.ok {
			return m, nil
		}
		if !m.statusErr || m.status == "" {
			m.status = "saved " + msg.event.Slot.UpdatedAt.Format(time.TimeOnly)
		}
		return m, m.waitForSlotEvent()
	case clipboardMsg:
		if msg.err != nil {
			m.setStatus("copy failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("document copied to clipboard", false)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	*m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notice != "" {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc || msg.Type == tea.KeySpace {
			m.notice = ""
		}
		return m, nil
	}
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Mark):
		m.toggleMark()
		return m, nil
	case key.Matches(msg, m.keys.Indent):
		return m, m.runInsert(func() error {
			return m.handlers.Indent.Execute(m.ctx, editorcmd.IndentCommand{})
		})
	case key.Matches(msg, m.keys.Load):
		m.prompting = true
		m.prompt.SetValue("")
		m.ta.Blur()
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.Export):
		return m, m.export()
	case key.Matches(msg, m.keys.Preview):
		if err := m.handlers.Preview.Execute(m.ctx, editorcmd.TogglePreviewCommand{}); err != nil {
			m.setStatus(err.Error(), true)
		}
		m.resize(m.width, m.height)
		return m, m.renderPreview()
	case key.Matches(msg, m.keys.Copy):
		text := m.session.Text()
		copyText := m.copyText
		return m, func() tea.Msg { return clipboardMsg{err: copyText(text)} }
	}

	for _, entry := range m.keys.toolbarBindings() {
		if key.Matches(msg, entry.binding) {
			action := entry.action
			return m, m.runInsert(func() error {
				return m.handlers.Toolbar.Execute(m.ctx, editorcmd.ApplyToolbarCommand{Action: action})
			})
		}
	}

	before := m.ta.Value()
	var cmd tea.Cmd
	*m.ta, cmd = m.ta.Update(msg)
	if after := m.ta.Value(); after != before {
		m.session.SetText(m.ctx, after, cursorOffset(m.ta))
		m.mark = nil
		return m, tea.Batch(cmd, m.renderPreview())
	}
	return m, cmd
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		return m, m.readFile(path)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.ta.Focus()
}

// runInsert syncs the selection, runs an insertion and defers the cursor
// move until the textarea has taken the new text.
func (m *Model) runInsert(run func() error) tea.Cmd {
	if err := m.session.SetSelection(m.selection()); err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	m.mark = nil
	if err := run(); err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	return tea.Batch(commitCmd, m.renderPreview())
}

func commitCmd() tea.Msg {
	return textCommittedMsg{}
}

func (m *Model) selection() inserter.Selection {
	cursor := cursorOffset(m.ta)
	if m.mark == nil {
		return inserter.Collapsed(cursor)
	}
	return inserter.Span(*m.mark, cursor)
}

func (m *Model) toggleMark() {
	if m.mark != nil {
		m.mark = nil
		m.setStatus("mark cleared", false)
		return
	}
	pos := cursorOffset(m.ta)
	m.mark = &pos
	m.setStatus("mark set, move the cursor to select", false)
}

func (m *Model) readFile(path string) tea.Cmd {
	if m.importer == nil {
		m.notice = "Loading files is not available."
		return nil
	}
	ctx, importer := m.ctx, m.importer
	return func() tea.Msg {
		text, err := importer.Read(ctx, path)
		return fileReadMsg{path: path, text: text, err: err}
	}
}

// applyFile replaces the document once a read finished. A failed read
// leaves the document as it was and raises a blocking notice.
func (m *Model) applyFile(msg fileReadMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("tui.file.load_failed", "file_path", msg.path, "error", msg.err)
		m.notice = "Error reading file\n\n" + msg.err.Error()
		return nil
	}
	m.mark = nil
	err := m.handlers.Replace.Execute(m.ctx, editorcmd.ReplaceDocumentCommand{Content: msg.text, Source: msg.path})
	if err != nil {
		m.notice = "Error reading file\n\n" + err.Error()
		return nil
	}
	return tea.Batch(commitCmd, m.renderPreview())
}

func (m *Model) export() tea.Cmd {
	if m.handlers.Export == nil {
		m.setStatus("export is not available", true)
		return nil
	}
	ctx, handler, exports := m.ctx, m.handlers.Export, m.exports
	return func() tea.Msg {
		if err := handler.Execute(ctx, editorcmd.ExportFileCommand{}); err != nil {
			return exportedMsg{err: err}
		}
		select {
		case artifact := <-exports:
			return exportedMsg{artifact: artifact}
		default:
			return exportedMsg{}
		}
	}
}

func (m *Model) renderPreview() tea.Cmd {
	if !m.session.PreviewVisible() || m.renderer == nil {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	ctx, renderer := m.ctx, m.renderer
	opts := m.opts
	opts.Width = m.preview.Width
	text := m.session.Text()
	return func() tea.Msg {
		out, err := renderer.Render(ctx, []byte(text), opts)
		if err != nil {
			return previewMsg{seq: seq, err: err}
		}
		return previewMsg{seq: seq, content: string(out.Output)}
	}
}

func (m *Model) waitForSlotEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		evt, ok := <-events
		return slotChangedMsg{event: evt, ok: ok}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.help.Width = width

	bodyHeight := height - 6
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	editorWidth := width - 2
	if m.session.PreviewVisible() {
		editorWidth = width/2 - 2
		m.preview.Width = width - width/2 - 2
		m.preview.Height = bodyHeight
	}
	m.ta.SetWidth(editorWidth)
	m.ta.SetHeight(bodyHeight)
}

// View renders the screen.
func (m *Model) View() string {
	if m.notice != "" && m.width > 0 {
		box := m.styles.notice.Render(m.notice + "\n\n[enter] dismiss")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	body := m.styles.pane.Render(m.ta.View())
	if m.session.PreviewVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.styles.preview.Render(m.preview.View()))
	}

	var b strings.Builder
	b.WriteString(m.toolbarView())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.prompting {
		b.WriteString(m.styles.prompt.Render("Load file: "))
		b.WriteString(m.prompt.View())
	} else {
		b.WriteString(m.statusView())
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) toolbarView() string {
	labels := make([]string, 0, len(toolbar.Actions()))
	for _, entry := range m.keys.toolbarBindings() {
		markup, _ := toolbar.Lookup(entry.action)
		labels = append(labels, m.styles.button.Render(markup.Label+" "+entry.binding.Help().Key))
	}
	return m.styles.toolbar.Render(strings.Join(labels, ""))
}

func (m *Model) statusView() string {
	sel := m.selection()
	parts := []string{fmt.Sprintf("%d chars", inserter.Len(m.session.Text()))}
	if !sel.Empty() {
		parts = append(parts, fmt.Sprintf("selection %d-%d", sel.Start, sel.End))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	line := strings.Join(parts, " | ")
	if m.statusErr {
		return m.styles.statusErr.Render(line)
	}
	return m.styles.status.Render(line)
}
