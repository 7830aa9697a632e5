package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stacktower/internal/core"
)

// LevelSelectModel lets players pick a campaign level to start on.
// Levels past the first uncleared one are locked.
type LevelSelectModel struct {
	names     []string
	unlocked  int // number of selectable levels
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	notice    string
	selected  int // 1-based, 0 while choosing
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a selector over the given level names.
// highestCleared is the player's best cleared level; negative unlocks all.
func NewLevelSelectModel(names []string, highestCleared, width, height int) LevelSelectModel {
	unlocked := len(names)
	if highestCleared >= 0 {
		unlocked = min(len(names), highestCleared+1)
	}
	return LevelSelectModel{
		names:     names,
		unlocked:  unlocked,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor >= m.unlocked {
			m.notice = fmt.Sprintf("Clear level %d to unlock", m.unlocked)
			return m, nil
		}
		m.selected = m.cursor + 1
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelSelectModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("SELECT LEVEL", m.width)))
	b.WriteString("\n\n")

	for i, name := range m.names {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		lock := ""
		if i >= m.unlocked {
			lock = " [locked]"
		}
		line := fmt.Sprintf("%s%2d. %s%s", cursor, i+1, name, lock)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(m.notice, m.width))
		b.WriteString("\n")
	}
	k := m.keyMapper.Menu
	b.WriteString(centerText(m.keyMapper.MenuHelp(k.Up, k.Down, k.Select, k.Back, k.Quit), m.width))

	return b.String()
}

// Selected returns the chosen 1-based level, or 0 if none.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// IsQuitting reports whether the player asked to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack reports whether the player backed out to the menu.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector shows the picker in its own program. level is 0 when
// the player backed out.
func RunLevelSelector(names []string, highestCleared int, cfg core.RuntimeConfig) (level int, quit bool, err error) {
	final, err := tea.NewProgram(NewLevelSelectModel(names, highestCleared, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen()).Run()
	if err != nil {
		return 0, false, err
	}
	m, ok := final.(LevelSelectModel)
	if !ok {
		return 0, true, nil
	}
	return m.Selected(), m.IsQuitting(), nil
}
