// Package ui provides the terminal interface for browsing a paginated record
// source.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/folio/pkg/host"
	"github.com/macropower/folio/pkg/keys"
	"github.com/macropower/folio/pkg/paginator"
	"github.com/macropower/folio/pkg/paginator/widgets"
	"github.com/macropower/folio/pkg/ui/statusbar"
	"github.com/macropower/folio/pkg/ui/theme"
)

// StatusMessageTimeout is how long status messages are shown.
const StatusMessageTimeout = 3 * time.Second

const (
	// headerContainer is rendered above the records.
	headerContainer = "header"

	// wrapBreakpoints are preferred places to wrap long records.
	wrapBreakpoints = " /-"
)

// NewProgram returns a new Tea program running m in the alternate screen.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	slog.Debug("starting folio ui", slog.String("source", m.name))

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)

	return tea.NewProgram(modelAdapter{m}, opts...)
}

type (
	hostEventMsg struct {
		evt host.Event
	}

	statusTimeoutMsg struct {
		id int
	}
)

// promptMode selects what the text input is used for.
type promptMode int

const (
	promptNone promptMode = iota
	promptGoto
	promptFind
)

type statusMessage struct {
	text  string
	style statusbar.Style
	id    int
}

// Opt configures a [Model].
type Opt func(*Model)

// WithTheme sets the theme. It should match the styles the paginator
// components were registered with.
func WithTheme(t *theme.Theme) Opt {
	return func(m *Model) {
		m.theme = t
	}
}

// WithSourceName sets the name shown in the status bar.
func WithSourceName(name string) Opt {
	return func(m *Model) {
		m.name = name
	}
}

// Model is the Bubble Tea model of the pager. Update returns the concrete
// type.
type Model struct {
	ctrl        *host.Controller
	theme       *theme.Theme
	kb          *KeyBinds
	events      chan host.Event
	name        string
	status      statusMessage
	input       textinput.Model
	snap        host.Snapshot
	query       string
	width       int
	height      int
	match       int
	prompt      promptMode
	lineNumbers bool
	wrap        bool
	showHelp    bool
}

// NewModel creates a [Model] driving ctrl.
func NewModel(ctrl *host.Controller, cfg *Config, opts ...Opt) Model {
	if cfg == nil {
		cfg = NewConfig()
	}

	m := Model{
		ctrl:        ctrl,
		theme:       theme.Default,
		kb:          cfg.KeyBinds,
		events:      make(chan host.Event, 64),
		lineNumbers: cfg.LineNumbers == nil || *cfg.LineNumbers,
		wrap:        cfg.Wrap != nil && *cfg.Wrap,
		match:       -1,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.input = textinput.New()
	m.input.PromptStyle = m.theme.PromptStyle
	m.input.CharLimit = 256

	ctrl.Subscribe(m.events)
	m.snap = ctrl.Snapshot()

	return m
}

func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return hostEventMsg{evt: <-m.events}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.prompt != promptNone {
			m, cmd = m.handlePromptKey(msg)
		} else {
			m, cmd = m.handleKey(msg)
		}

		cmds = append(cmds, cmd)

	case hostEventMsg:
		var cmd tea.Cmd

		m, cmd = m.handleHostEvent(msg.evt)
		cmds = append(cmds, cmd, m.waitForEvent())

	case statusTimeoutMsg:
		if msg.id == m.status.id {
			m.status.text = ""
		}
	}

	m.snap = m.ctrl.Snapshot()

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	ctx := context.Background()
	key := msg.String()
	kb := m.kb

	switch {
	case kb.Quit.Match(key):
		return m, tea.Quit

	case kb.Suspend.Match(key):
		return m, tea.Suspend

	case kb.Help.Match(key):
		m.showHelp = !m.showHelp

	case kb.Next.Match(key):
		m.ctrl.NextPage(ctx)

	case kb.Prev.Match(key):
		m.ctrl.PreviousPage(ctx)

	case kb.First.Match(key):
		m.ctrl.FirstPage(ctx)

	case kb.Last.Match(key):
		m.ctrl.LastPage(ctx)

	case kb.MoreRows.Match(key):
		m.cycleRowsPerPage(ctx, 1)

	case kb.FewerRows.Match(key):
		m.cycleRowsPerPage(ctx, -1)

	case kb.Copy.Match(key):
		return m.copyPage()

	case kb.Wrap.Match(key):
		m.wrap = !m.wrap

	case kb.Goto.Match(key):
		return m.openPrompt(promptGoto, "Page: ")

	case kb.Find.Match(key):
		return m.openPrompt(promptFind, "Find: ")

	case kb.FindNext.Match(key):
		if m.query == "" {
			return m.openPrompt(promptFind, "Find: ")
		}

		return m.find(m.query)
	}

	return m, nil
}

func (m Model) openPrompt(mode promptMode, prompt string) (Model, tea.Cmd) {
	m.prompt = mode
	m.input.Prompt = prompt
	m.input.Reset()

	return m, m.input.Focus()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if !keys.IsTextInputAction(key) {
		switch key {
		case "enter":
			mode := m.prompt
			m.prompt = promptNone
			m.input.Blur()

			if mode == promptFind {
				return m.find(m.input.Value())
			}

			return m.jumpTo(m.input.Value())

		case "esc":
			m.prompt = promptNone
			m.input.Blur()

			return m, nil

		case "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) jumpTo(value string) (Model, tea.Cmd) {
	page, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return m.sendStatus(fmt.Sprintf("not a page: %q", value), statusbar.StyleError)
	}

	if !m.ctrl.RequestPage(context.Background(), page) && page != m.snap.State.Page {
		return m.sendStatus(fmt.Sprintf("cannot go to page %d", page), statusbar.StyleError)
	}

	return m, nil
}

func (m Model) find(query string) (Model, tea.Cmd) {
	if query == "" {
		return m, nil
	}

	m.query = query

	match, ok := m.ctrl.Find(context.Background(), query)
	if !ok {
		m.match = -1

		return m.sendStatus(fmt.Sprintf("no match for %q", query), statusbar.StyleError)
	}

	m.match = match.Record
	if !match.Accepted {
		return m, nil
	}

	return m.sendStatus(fmt.Sprintf("match on line %s", humanize.Comma(int64(match.Record+1))), statusbar.StyleNormal)
}

// cycleRowsPerPage requests the next rows per page option in dir.
func (m Model) cycleRowsPerPage(ctx context.Context, dir int) bool {
	return m.ctrl.Do(ctx, "cycle_rows_per_page", func(p *paginator.Paginator) bool {
		opts := rowsPerPageOptions(p)
		if len(opts) == 0 {
			return false
		}

		rpp := p.RowsPerPage()
		i, found := slices.BinarySearch(opts, rpp)

		switch {
		case dir > 0 && found:
			i++
		case dir < 0:
			i--
		}

		if i < 0 || i >= len(opts) {
			return false
		}

		return p.RequestRowsPerPage(opts[i])
	})
}

// rowsPerPageOptions returns the sorted positive choices, with
// [widgets.AllRows] replaced by the record count.
func rowsPerPageOptions(p *paginator.Paginator) []int {
	values, _ := p.Get(paginator.AttrRowsPerPageOptions).([]int) //nolint:errcheck // Empty on mismatch.
	total := p.TotalRecords()

	var opts []int

	for _, v := range values {
		if v == widgets.AllRows {
			v = total
		}

		if v > 0 {
			opts = append(opts, v)
		}
	}

	slices.Sort(opts)

	return slices.Compact(opts)
}

func (m Model) copyPage() (Model, tea.Cmd) {
	content := strings.Join(m.snap.Records, "\n")

	// Copy using OSC 52.
	termenv.Copy(content)

	err := clipboard.WriteAll(content)
	if err != nil {
		slog.Debug("native clipboard unavailable", slog.Any("err", err))
	}

	return m.sendStatus(fmt.Sprintf("copied %s records", humanize.Comma(int64(len(m.snap.Records)))), statusbar.StyleSuccess)
}

func (m Model) handleHostEvent(evt host.Event) (Model, tea.Cmd) {
	switch e := evt.(type) {
	case host.EventDenied:
		if e.Decision.Err != nil {
			return m.sendStatus(fmt.Sprintf("rule %q failed: %v", e.Decision.Rule, e.Decision.Err), statusbar.StyleError)
		}

		return m.sendStatus(fmt.Sprintf("denied by rule %q", e.Decision.Rule), statusbar.StyleError)

	case host.EventRecords:
		if e.Err != nil {
			return m.sendStatus(fmt.Sprintf("reload: %v", e.Err), statusbar.StyleError)
		}

		return m.sendStatus(fmt.Sprintf("loaded %s records", humanize.Comma(int64(e.Total))), statusbar.StyleSuccess)
	}

	return m, nil
}

// sendStatus shows a status message until [StatusMessageTimeout] passes.
// The returned command must be run for the message to be cleared.
func (m Model) sendStatus(text string, style statusbar.Style) (Model, tea.Cmd) {
	id := m.status.id + 1
	m.status = statusMessage{text: text, style: style, id: id}

	return m, tea.Tick(StatusMessageTimeout, func(time.Time) tea.Msg {
		return statusTimeoutMsg{id: id}
	})
}

func (m Model) View() string {
	var (
		header, footer []string
		bottom         []string
	)

	for _, c := range m.snap.Containers {
		if c.View == "" {
			continue
		}

		v := ansi.Truncate(c.View, m.width, m.theme.Ellipsis)
		if c.ID == headerContainer {
			header = append(header, v)
		} else {
			footer = append(footer, v)
		}
	}

	if m.prompt != promptNone {
		bottom = append(bottom, m.input.View())
	}

	bottom = append(bottom, m.statusBarView())

	if m.showHelp {
		bottom = append(bottom, statusbar.NewHelpRenderer(m.theme, m.kb.renderer()).Render(m.width))
	}

	used := lineCount(header) + lineCount(footer) + lineCount(bottom)
	records := m.recordsView(max(0, m.height-used))

	sections := slices.Concat(header, []string{records}, footer, bottom)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) recordsView(height int) string {
	first := m.snap.State.RecordOffset
	width := len(strconv.Itoa(first + len(m.snap.Records)))

	lines := make([]string, 0, height)
	for i, r := range m.snap.Records {
		if m.height > 0 && len(lines) >= height {
			break
		}

		if first+i == m.match {
			r = m.theme.SelectedStyle.Render(r)
		}

		prefix := ""
		if m.lineNumbers {
			prefix = m.theme.LineNumberStyle.Render(fmt.Sprintf("%*d ", width, first+i+1))
		}

		if m.wrap && m.width > 0 {
			indent := strings.Repeat(" ", ansi.StringWidth(prefix))
			wrapped := strings.Split(cellbuf.Wrap(r, max(1, m.width-len(indent)), wrapBreakpoints), "\n")

			for j, w := range wrapped {
				if j == 0 {
					lines = append(lines, prefix+w)
				} else {
					lines = append(lines, indent+w)
				}
			}

			continue
		}

		line := prefix + r
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, m.theme.Ellipsis)
		}

		lines = append(lines, line)
	}

	if m.height > 0 && len(lines) > height {
		lines = lines[:height]
	}

	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (m Model) statusBarView() string {
	var opts []statusbar.StatusBarOpt
	if m.status.text != "" {
		opts = append(opts, statusbar.WithMessage(m.status.text, m.status.style))
	}

	s := m.snap.State
	position := fmt.Sprintf("%d/%d", s.Page, m.snap.TotalPages)

	if s.TotalRecords == paginator.Unlimited {
		position = fmt.Sprintf("%d/?", s.Page)
	}

	return statusbar.NewStatusBarRenderer(m.theme, m.width, opts...).Render(m.name, position)
}

func lineCount(sections []string) int {
	n := 0
	for _, s := range sections {
		n += strings.Count(s, "\n") + 1
	}

	return n
}

// modelAdapter satisfies [tea.Model].
type modelAdapter struct {
	m Model
}

func (a modelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

//nolint:ireturn // Must satisfy [tea.Model].
func (a modelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.m.Update(msg)

	return modelAdapter{m}, cmd
}

func (a modelAdapter) View() string {
	return a.m.View()
}
