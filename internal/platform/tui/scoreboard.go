package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/calc-climb/internal/registry"
	"github.com/vovakirdan/calc-climb/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	maxScores          = 100
	onlineTabID        = "online"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextTab: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type scoreTab struct {
	id    string
	title string
}

// ScoreboardModel shows solo runs per mode and recent online matches.
type ScoreboardModel struct {
	tabs        []scoreTab
	cursor      int
	store       *storage.Store
	rows        []table.Row
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard over store.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	games := registry.List()
	tabs := make([]scoreTab, 0, len(games)+1)
	for _, g := range games {
		tabs = append(tabs, scoreTab{id: g.ID, title: g.Title})
	}
	tabs = append(tabs, scoreTab{id: onlineTabID, title: "Online Matches"})

	m := ScoreboardModel{
		tabs:        tabs,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.tabs[m.cursor].id == onlineTabID {
		return []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Room", Width: 7},
			{Title: "Level", Width: 6},
			{Title: "Winner", Width: 10},
			{Title: "Reason", Width: 8},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Stages", Width: 7},
		{Title: "Tier", Width: 5},
		{Title: "Seed", Width: 10},
		{Title: "Date", Width: 14},
	}
}

func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load rebuilds the table for the selected tab.
func (m *ScoreboardModel) load() {
	m.table = m.createTable()
	m.rows = nil
	if m.store != nil {
		if m.tabs[m.cursor].id == onlineTabID {
			m.rows = m.matchRows()
		} else {
			m.rows = m.scoreRows(m.tabs[m.cursor].id)
		}
	}
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) scoreRows(mode string) []table.Row {
	scores, err := m.store.TopScores(mode, maxScores)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Stages),
			fmt.Sprintf("%d", s.Tier),
			fmt.Sprintf("%d", s.Seed),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) matchRows() []table.Row {
	matches, err := m.store.RecentOnlineMatches(maxScores)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(matches))
	for i, r := range matches {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.RoomCode,
			fmt.Sprintf("%d", r.LevelIndex+1),
			shortID(r.WinnerSession),
			r.Reason,
		}
	}
	return rows
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.cursor = (m.cursor + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.cursor = (m.cursor - 1 + len(m.tabs)) % len(m.tabs)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("HIGH SCORES - %s", m.tabs[m.cursor].title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, tab := range m.tabs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := tab.title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	left := panelStyle.Width(sidebarWidth).Render(sidebar.String())
	right := panelStyle.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m ScoreboardModel) renderNarrowLayout() string {
	tabLine := fmt.Sprintf("< %s >", m.tabs[m.cursor].title)
	return centerText(tabLine, m.width) + "\n\n" + centerText(panelStyle.Render(m.renderTableContent()), m.width)
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.store == nil {
			return empty.Render("Score storage is disabled.")
		}
		return empty.Render("Nothing recorded yet.\nClear a stage to get on the board!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the player went back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard until the player leaves.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
