package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/registry"
)

// MenuItemKind says what a menu entry opens.
type MenuItemKind int

const (
	MenuItemGame MenuItemKind = iota
	MenuItemOnline
	MenuItemScores
)

// MenuItem is one selectable entry.
type MenuItem struct {
	Kind   MenuItemKind
	GameID string
	Title  string
}

// MenuModel is the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	notice    string
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel lists the registered solo modes, plus online play and
// scores when they are available.
func NewMenuModel(cfg core.RuntimeConfig, online, scores bool) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+2)
	for _, g := range games {
		items = append(items, MenuItem{Kind: MenuItemGame, GameID: g.ID, Title: g.Title})
	}
	if online {
		items = append(items, MenuItem{Kind: MenuItemOnline, Title: "Online Match"})
	}
	if scores {
		items = append(items, MenuItem{Kind: MenuItemScores, Title: "High Scores"})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// WithNotice returns the menu showing a one-line message.
func (m MenuModel) WithNotice(notice string) MenuModel {
	m.notice = notice
	return m
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("C A L C   C L I M B"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("collect numbers and operators, hit the target", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(centerText(errorStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("up/down navigate  enter select  q quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the player quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
