package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stacktower/internal/core"
	"github.com/vovakirdan/stacktower/internal/storage"
)

// MenuChoice identifies what a menu entry leads to.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceCampaign
	ChoiceEndless
	ChoiceLevels
	ChoiceScoreboard
)

// MenuItem is one line of the main menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var defaultMenuItems = []MenuItem{
	{Choice: ChoiceCampaign, Title: "Campaign"},
	{Choice: ChoiceEndless, Title: "Endless"},
	{Choice: ChoiceLevels, Title: "Select Level..."},
	{Choice: ChoiceScoreboard, Title: "High Scores"},
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the main menu. It ends its program once an entry is chosen;
// the caller reads Selected.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	store     *storage.Store
	player    string
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  MenuChoice
}

func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, player string) MenuModel {
	return MenuModel{
		items:     defaultMenuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		player:    player,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
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
			m.selected = m.items[m.cursor].Choice
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.selected = ChoiceScoreboard
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	subtitle := "Drop each platform onto the stack"
	if m.player != "" {
		subtitle = "Welcome, " + m.player
	}
	lines := []string{menuTitleStyle.Render("S T A C K   T O W E R"), "", subtitle, ""}

	for i, item := range m.items {
		if i == m.cursor {
			lines = append(lines, menuCursorStyle.Render("> "+item.Title+"  "))
		} else {
			lines = append(lines, "  "+item.Title+"  ")
		}
	}
	if best := m.bestLine(); best != "" {
		lines = append(lines, "", menuDimStyle.Render(best))
	}

	k := m.keyMapper.Menu
	lines = append(lines, "", m.keyMapper.MenuHelp(k.Up, k.Down, k.Select, k.Scores, k.Quit))

	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// bestLine reports the stored high scores, or "" before any run.
func (m MenuModel) bestLine() string {
	if m.store == nil {
		return ""
	}
	var parts []string
	for _, mode := range []struct{ id, name string }{{"stack", "campaign"}, {"stack_endless", "endless"}} {
		if best, err := m.store.HighScore(mode.id); err == nil && best > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", best, mode.name))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Best: " + strings.Join(parts, " / ")
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting reports whether the player asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the runtime config, resized to the latest window.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText left-pads text to center it in width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult is what RunMenu hands back to the CLI loop.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu shows the menu in its own program until the player picks an
// entry or quits.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, player string) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg, player), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return MenuResult{
		Choice: m.Selected(),
		Config: m.Config(),
		Quit:   m.IsQuitting() || m.Selected() == ChoiceNone,
	}, nil
}
