package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/ormasoftchile/pitwall/pkg/diffreport"
	"github.com/ormasoftchile/pitwall/pkg/report"
	"github.com/ormasoftchile/pitwall/pkg/store"
	"github.com/ormasoftchile/pitwall/pkg/strategy"
	"github.com/ormasoftchile/pitwall/pkg/validate"
)

const (
	modeList   = "list"
	modeDetail = "detail"
)

// Model is the Bubble Tea model for the strategy review TUI.
type Model struct {
	store  store.Store
	policy validate.Policy

	names    []string
	selected int
	mode     string

	detailTitle string
	viewport    viewport.Model

	width  int
	height int
	err    error
}

// NewModel creates the review TUI over a store. Strategy names are loaded
// up front; the store is only hit again when the user asks for a document.
func NewModel(st store.Store) (Model, error) {
	names, err := st.List(context.Background())
	if err != nil {
		return Model{}, fmt.Errorf("list strategies: %w", err)
	}
	return Model{
		store:    st,
		policy:   validate.DefaultPolicy(),
		names:    names,
		mode:     modeList,
		viewport: viewport.New(80, 20),
	}, nil
}

// Run starts the TUI and blocks until the user quits.
func Run(st store.Store) error {
	m, err := NewModel(st)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// --- Messages ---

type detailMsg struct {
	title   string
	content string
}

type errMsg struct{ err error }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4 // header + help lines
		return m, nil

	case detailMsg:
		m.mode = modeDetail
		m.detailTitle = msg.title
		m.err = nil
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeDetail {
		switch msg.String() {
		case "q", "esc":
			m.mode = modeList
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.names)-1 {
			m.selected++
		}
	case "enter", "v":
		return m, m.validateSelected()
	case "b":
		return m, m.briefSelected()
	case "d":
		return m, m.diffSelected()
	}
	return m, nil
}

// --- Commands ---

func (m Model) selectedName() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.names) {
		return "", false
	}
	return m.names[m.selected], true
}

func (m Model) validateSelected() tea.Cmd {
	name, ok := m.selectedName()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		text, err := m.store.Load(context.Background(), name)
		if err != nil {
			return errMsg{err}
		}
		rep := m.policy.ValidateText(text)
		return detailMsg{
			title:   name + " validation",
			content: verdictBanner(rep) + "\n\n" + rep,
		}
	}
}

// verdictBanner turns the report's first line into a styled one-line verdict.
func verdictBanner(report string) string {
	switch {
	case report == "OK":
		return verdictOK.Render(GlyphOK + " strategy is race-legal")
	case strings.HasPrefix(report, "WARNINGS:"):
		return verdictWarning.Render(GlyphWarning + " passes with warnings")
	default:
		return verdictErrors.Render(GlyphErrors + " strategy rejected")
	}
}

func (m Model) briefSelected() tea.Cmd {
	name, ok := m.selectedName()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		text, err := m.store.Load(context.Background(), name)
		if err != nil {
			return errMsg{err}
		}
		doc, err := strategy.Parse(text)
		if err != nil {
			return errMsg{fmt.Errorf("parse %s: %w", name, err)}
		}
		return detailMsg{
			title:   name + " briefing",
			content: renderMarkdown(report.Briefing(doc)),
		}
	}
}

func (m Model) diffSelected() tea.Cmd {
	name, ok := m.selectedName()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		baseline, err := m.store.Load(ctx, store.DefaultName)
		if err != nil {
			return errMsg{fmt.Errorf("load baseline: %w", err)}
		}
		candidate, err := m.store.Load(ctx, name)
		if err != nil {
			return errMsg{err}
		}
		diff := diffreport.Unified(baseline, candidate)
		if diff == "" {
			diff = "(no differences)"
		}
		return detailMsg{
			title:   name + " diff vs " + store.DefaultName,
			content: diff,
		}
	}
}

// --- View ---

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("pitwall strategy review"))
	b.WriteString("\n\n")

	if m.mode == modeDetail {
		b.WriteString(headerStyle.Render(m.detailTitle))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back · ↑/↓ scroll · ctrl+c quit"))
		return b.String()
	}

	if len(m.names) == 0 {
		b.WriteString(helpStyle.Render("no strategies stored"))
		b.WriteString("\n")
	}
	for i, name := range m.names {
		line := "  " + name
		style := itemNormal
		if name == store.DefaultName {
			style = itemBaseline
		}
		if i == m.selected {
			line = GlyphCursor + " " + name
			style = itemSelected
		}
		if m.width > 0 {
			line = runewidth.Truncate(line, m.width-1, "…")
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(verdictErrors.Render(GlyphErrors + " " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter validate · b briefing · d diff · q quit"))
	return b.String()
}
