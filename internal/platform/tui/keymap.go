package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stacktower/internal/core"
)

// GameKeyMap holds the in-game bindings.
type GameKeyMap struct {
	Drop       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// MenuKeyMap holds the bindings shared by the menu and level picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultGameKeyMap returns the in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Drop:       key.NewBinding(key.WithKeys(" ", "enter", "up", "w"), key.WithHelp("space", "drop")),
		Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
	}
}

// DefaultMenuKeyMap returns the menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper resolves key messages against the game and menu bindings.
type KeyMapper struct {
	Game GameKeyMap
	Menu MenuKeyMap
	help help.Model
}

// NewKeyMapper returns a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		Game: DefaultGameKeyMap(),
		Menu: DefaultMenuKeyMap(),
		help: help.New(),
	}
}

// MapKey resolves msg to an in-game action. isQuit is set for the quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	g := km.Game
	switch {
	case key.Matches(msg, g.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, g.Drop):
		return core.ActionTap, false
	case key.Matches(msg, g.Back):
		return core.ActionBack, false
	case key.Matches(msg, g.Pause):
		return core.ActionPause, false
	case key.Matches(msg, g.Restart):
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MenuAction is a navigation action in the menu screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction resolves msg against the menu bindings.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	m := km.Menu
	switch {
	case key.Matches(msg, m.Quit):
		return MenuActionQuit
	case key.Matches(msg, m.Up):
		return MenuActionUp
	case key.Matches(msg, m.Down):
		return MenuActionDown
	case key.Matches(msg, m.Select):
		return MenuActionSelect
	case key.Matches(msg, m.Back):
		return MenuActionBack
	case key.Matches(msg, m.Scores):
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// MenuHelp renders a one-line help for the given menu bindings.
func (km *KeyMapper) MenuHelp(bindings ...key.Binding) string {
	return km.help.ShortHelpView(bindings)
}
