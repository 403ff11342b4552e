// Package repl implements the interactive evaluation session of the fee
// command line interface, built on Bubble Tea.
//
// The session keeps a persistent history and completes variable and
// function names with fuzzy matching: Tab and Shift-Tab cycle through
// candidates for the word at the cursor.
package repl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/fee/expr"
	"github.com/ardnew/fee/log"
)

const prompt = "fee> "

//nolint:gochecknoglobals
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Run starts the REPL against the given evaluation context, persisting
// history at historyPath.
func Run(
	ctx context.Context,
	ectx *expr.Context,
	historyPath string,
	logger log.Logger,
) error {
	if ectx == nil {
		return ErrNoContext
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.Any("error", err))
	}

	logger.DebugContext(ctx, "repl start",
		slog.String("history", historyPath),
		slog.Int("entries", history.Len()),
	)

	m := newModel(ectx, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}

	if err := history.Save(); err != nil {
		logger.WarnContext(ctx, "could not save history",
			slog.Any("error", err))
	}

	return nil
}

const defaultWidth = 80

// model is the Bubble Tea model for the REPL.
type model struct {
	input        textinput.Model
	ectx         *expr.Context
	logger       log.Logger
	history      *History
	historyIdx   int
	candidates   []string
	matches      []string
	wordStart    int
	wordEnd      int
	suggIdx      int
	preTabText   string
	preTabCursor int
	width        int
	tabActive    bool
	quitting     bool
}

func newModel(ectx *expr.Context, history *History, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		input:      ti,
		ectx:       ectx,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		candidates: nameCandidates(ectx),
		width:      defaultWidth,
	}
}

// nameCandidates gathers the completable names from both resolvers.
func nameCandidates(ectx *expr.Context) []string {
	var names []string

	if lister, ok := ectx.Vars().(expr.NameLister); ok {
		names = append(names, lister.Names()...)
	}

	if lister, ok := ectx.Funcs().(expr.NameLister); ok {
		names = append(names, lister.Names()...)
	}

	return names
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d", "esc":
		m.quitting = true

		return m, tea.Quit

	case "enter":
		return m.submit()

	case "tab":
		return m.cycle(1), nil

	case "shift+tab":
		return m.cycle(-1), nil

	case "up":
		return m.recall(-1), nil

	case "down":
		return m.recall(1), nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m = m.refreshMatches()

	return m, cmd
}

// submit evaluates the current input line.
func (m model) submit() (tea.Model, tea.Cmd) {
	src := strings.TrimSpace(m.input.Value())

	m.resetCompletion()
	m.input.SetValue("")

	if src == "" {
		return m, nil
	}

	if src == "quit" || src == "exit" {
		m.quitting = true

		return m, tea.Quit
	}

	m.history.Append(src)
	m.historyIdx = m.history.Len()

	echo := promptStyle.Render(prompt) + inputStyle.Render(src)

	num, err := m.eval(src)
	if err != nil {
		return m, tea.Sequence(
			tea.Println(echo),
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	return m, tea.Sequence(
		tea.Println(echo),
		tea.Println(resultStyle.Render(strconv.FormatFloat(num, 'g', -1, 64))),
	)
}

func (m model) eval(src string) (float64, error) {
	x, err := expr.Compile(src, m.ectx)
	if err != nil {
		return 0, err
	}

	m.logger.Debug("compiled",
		slog.String("expr", src),
		slog.Int("instructions", x.Len()),
	)

	return x.Eval(m.ectx)
}

// recall steps through history; direction is -1 for older, 1 for newer.
func (m model) recall(direction int) model {
	idx := m.historyIdx + direction
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.historyIdx = idx
	m.resetCompletion()

	if idx == m.history.Len() {
		m.input.SetValue("")

		return m
	}

	line := m.history.At(idx)
	m.input.SetValue(line)
	m.input.SetCursor(len(line))

	return m
}

// refreshMatches recomputes the fuzzy candidates for the word at the
// cursor. Typing always leaves tab-cycling.
func (m model) refreshMatches() model {
	m.tabActive = false
	m.suggIdx = 0

	word, start, end := wordBounds(m.input.Value(), m.input.Position())
	m.wordStart, m.wordEnd = start, end

	if word == "" {
		m.matches = nil

		return m
	}

	m.matches = expr.Complete(word, m.candidates)

	return m
}

// cycle steps through the completion candidates, replacing the word at the
// cursor with the selected candidate.
func (m model) cycle(direction int) model {
	if len(m.matches) == 0 {
		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.suggIdx = 0
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
	} else {
		n := len(m.matches)
		m.suggIdx = (m.suggIdx + direction + n) % n
	}

	chosen := m.matches[m.suggIdx]
	text := m.preTabText[:m.wordStart] + chosen + m.preTabText[m.wordEnd:]

	m.input.SetValue(text)
	m.input.SetCursor(m.wordStart + len(chosen))

	return m
}

func (m *model) resetCompletion() {
	m.matches = nil
	m.suggIdx = 0
	m.tabActive = false
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render(
			"Type an expression; Tab completes names; Ctrl+D exits"))
	}

	b.WriteString("\n")

	return b.String()
}
