package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tisearch/tisearch/internal/engine"
	"github.com/tisearch/tisearch/internal/types"
)

// Options configures a TUI session.
type Options struct {
	// Root and Term prefill the inputs; empty values fall back to the last
	// session's, then to the working directory.
	Root string
	Term string

	Config engine.Config
	Logger engine.Logger

	// StateDir holds persisted preferences; empty disables persistence.
	StateDir string

	// OnComplete runs after every finished search, stopped or not.
	OnComplete func(req engine.Request, matches []types.Match, sum engine.CompletionEvent)
}

type focusArea int

const (
	focusFolder focusArea = iota
	focusTerm
	focusTable
	focusCount
)

const (
	// title, two inputs and the progress line
	headerHeight = 4
	footerHeight = 1
	lineColWidth = 6
)

// Model represents the main state of the TUI application.
type Model struct {
	opts   Options
	engine *engine.Engine
	events <-chan engine.Event
	req    engine.Request

	folderInput textinput.Model
	termInput   textinput.Model
	saveInput   textinput.Model
	focus       focusArea
	saving      bool

	table    table.Model
	viewport viewport.Model
	spinner  spinner.Model
	progress progress.Model

	matches    []types.Match
	rows       []table.Row
	completed  bool
	summary    engine.CompletionEvent
	percent    int
	filesDone  int
	filesTotal int

	previewKey    string
	prefs         Prefs
	statusMessage string
	statusIsError bool

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel initializes a new TUI model.
func NewModel(opts Options) Model {
	columns := []table.Column{
		{Title: "File Path", Width: 40},
		{Title: "Line Number", Width: lineColWidth},
		{Title: "Line Text", Width: 40},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	// Line spinner avoids Braille characters that render poorly on some terminals
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prefs := LoadPrefs(opts.StateDir)

	folder := newInput("folder to search", opts.Root, prefs.LastFolder)
	if folder.Value() == "" {
		if wd, err := os.Getwd(); err == nil {
			folder.SetValue(wd)
		}
	}
	term := newInput("word to find", opts.Term, prefs.LastTerm)

	save := textinput.New()
	save.Prompt = "Save to: "
	save.CharLimit = 4096
	save.Width = 60

	m := Model{
		opts:        opts,
		engine:      engine.New(opts.Config, engine.WithLogger(opts.Logger)),
		folderInput: folder,
		termInput:   term,
		saveInput:   save,
		table:       t,
		spinner:     sp,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		prefs:       prefs,
	}
	m.setFocus(focusTerm)
	m.setStatus("enter: search | esc: stop | tab: switch field | ctrl+w: save | ctrl+c: quit", false)
	return m
}

func newInput(placeholder string, values ...string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	for _, v := range values {
		if v != "" {
			ti.SetValue(v)
			break
		}
	}
	return ti
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMessage = msg
	m.statusIsError = isErr
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.folderInput.Blur()
	m.termInput.Blur()
	m.table.Blur()
	switch f {
	case focusFolder:
		m.folderInput.Focus()
	case focusTerm:
		m.termInput.Focus()
	case focusTable:
		m.table.Focus()
	}
}

func (m *Model) cycleFocus(delta int) {
	next := (int(m.focus) + delta + int(focusCount)) % int(focusCount)
	m.setFocus(focusArea(next))
}

func (m *Model) changeContext(delta int) {
	n := m.prefs.ContextLines + delta
	if n < minContextLines {
		n = minContextLines
	}
	if n > maxContextLines {
		n = maxContextLines
	}
	if n == m.prefs.ContextLines {
		return
	}
	m.prefs.ContextLines = n
	m.previewKey = ""
	m.updatePreview()
}

// updatePreview refreshes the detail pane when the selected match changed.
func (m *Model) updatePreview() {
	mt := m.selectedMatch()
	if mt == nil {
		if m.previewKey != "" {
			m.viewport.SetContent("")
			m.previewKey = ""
		}
		return
	}
	key := fmt.Sprintf("%s:%d", mt.Path, mt.Line)
	if key == m.previewKey {
		return
	}
	m.previewKey = key
	m.viewport.SetContent(renderPreview(*mt, m.req.Term, m.prefs.ContextLines))
	m.viewport.GotoTop()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.ready = true

	usable := width - 8
	pathWidth := int(float64(usable-lineColWidth) * 0.45)
	if pathWidth < 20 {
		pathWidth = 20
	}
	textWidth := usable - lineColWidth - pathWidth
	if textWidth < 20 {
		textWidth = 20
	}
	cols := m.table.Columns()
	cols[0].Width = pathWidth
	cols[1].Width = lineColWidth
	cols[2].Width = textWidth
	m.table.SetColumns(cols)

	frames := tableBorderStyle.GetVerticalFrameSize() + previewBorderStyle.GetVerticalFrameSize()
	available := height - headerHeight - footerHeight - frames
	tableHeight := available * 55 / 100
	if tableHeight < 3 {
		tableHeight = 3
	}
	previewHeight := available - tableHeight
	if previewHeight < 3 {
		previewHeight = 3
	}
	m.table.SetWidth(width - tableBorderStyle.GetHorizontalFrameSize())
	m.table.SetHeight(tableHeight)

	if m.viewport.Height == 0 {
		m.viewport = viewport.New(width-previewBorderStyle.GetHorizontalFrameSize(), previewHeight)
	} else {
		m.viewport.Width = width - previewBorderStyle.GetHorizontalFrameSize()
		m.viewport.Height = previewHeight
	}
	m.previewKey = ""
	m.updatePreview()

	m.progress.Width = width / 3
	m.folderInput.Width = width - 12
	m.termInput.Width = width - 12
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case scanEventsMsg:
		return m, m.handleEvents(msg)

	case statusMsg:
		m.setStatus(string(msg), strings.Contains(string(msg), "error"))
		return m, nil

	case savedMsg:
		m.saving = false
		m.saveInput.Blur()
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Save failed: %v", msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("Saved %d matches to %s", msg.n, msg.path), false)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.engine.Stop()
		m.quitting = true
		return m, tea.Quit
	}

	if m.saving {
		switch msg.String() {
		case "esc":
			m.cancelSave()
			return m, nil
		case "enter":
			path := expandPath(m.saveInput.Value())
			if path == "" {
				return m, nil
			}
			return m, m.saveTo(path)
		}
		var cmd tea.Cmd
		m.saveInput, cmd = m.saveInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "ctrl+s":
		if m.running() {
			m.stopScan()
			return m, nil
		}
		if msg.String() == "esc" && m.focus == focusTable {
			m.setFocus(focusTerm)
			return m, nil
		}
		return m, nil
	case "ctrl+w":
		return m, m.beginSave()
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	case "enter":
		if m.focus != focusTable {
			return m, m.startScan()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusFolder:
		m.folderInput, cmd = m.folderInput.Update(msg)
	case focusTerm:
		m.termInput, cmd = m.termInput.Update(msg)
	case focusTable:
		switch msg.String() {
		case "q":
			if !m.running() {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		case "y":
			return m, m.copyLocationToClipboard()
		case "c":
			return m, m.copyLineToClipboard()
		case "i":
			return m, m.ignoreSelectedFile()
		case "+", "=":
			m.changeContext(2)
			return m, m.savePrefs()
		case "-", "_":
			m.changeContext(-2)
			return m, m.savePrefs()
		case "pgdown", "ctrl+d":
			m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
			return m, nil
		case "pgup", "ctrl+u":
			m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
			return m, nil
		}
		m.table, cmd = m.table.Update(msg)
		m.updatePreview()
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("tisearch") + "\n")
	b.WriteString(labelStyle.Render("Folder") + m.folderInput.View() + "\n")
	b.WriteString(labelStyle.Render("Word") + m.termInput.View() + "\n")
	b.WriteString(m.progressLine() + "\n")
	b.WriteString(tableBorderStyle.Render(m.table.View()) + "\n")
	b.WriteString(previewBorderStyle.Render(m.viewport.View()) + "\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) progressLine() string {
	bar := m.progress.ViewAs(float64(m.percent) / 100)
	var state string
	switch {
	case m.running():
		state = m.spinner.View() + " "
	case m.completed && m.summary.Cancelled:
		state = "stopped "
	case m.completed:
		state = "done "
	}
	files := ""
	if m.filesTotal > 0 {
		files = fmt.Sprintf("  Files: %d/%d", m.filesDone, m.filesTotal)
	}
	return fmt.Sprintf(" %s %3d%% %s Matches: %d%s", bar, m.percent, state, len(m.matches), files)
}

func (m Model) footer() string {
	if m.saving {
		return statusStyle.Width(m.width).Render(m.saveInput.View() + dimStyle.Render("  enter: save | esc: cancel"))
	}
	msg := m.statusMessage
	if m.statusIsError {
		msg = errorStyle.Render(msg)
	}
	return statusStyle.Width(m.width).Render(msg)
}
