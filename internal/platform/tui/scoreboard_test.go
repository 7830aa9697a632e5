package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stacktower/internal/storage"
)

func TestScoreboardBoards(t *testing.T) {
	store := openStore(t)
	store.SaveScore("stack", "ann", 40)
	store.SaveScore("stack", "bob", 90)
	store.SaveScore("stack_endless", "ann", 12)
	store.SaveRun(storage.Run{GameID: "stack", Player: "ann", Level: 1, Outcome: "failed", Score: 40})

	m := NewScoreboardModel(store, 100, 30)
	if len(m.rows) != 2 || m.rows[0][1] != "bob" {
		t.Fatalf("campaign rows = %v", m.rows)
	}
	if m.stats == nil || m.stats.HighScore != 90 {
		t.Errorf("campaign stats = %+v", m.stats)
	}
	if !strings.Contains(m.View(), "Best: 90") {
		t.Error("view should show the board summary")
	}

	press := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(ScoreboardModel)
	}

	press(tea.KeyMsg{Type: tea.KeyTab})
	if m.board().GameID != "stack_endless" || len(m.rows) != 1 {
		t.Errorf("endless board: %q %v", m.board().GameID, m.rows)
	}

	press(tea.KeyMsg{Type: tea.KeyTab})
	if m.stats != nil || len(m.rows) != 1 || m.rows[0][4] != "failed" {
		t.Errorf("history board rows = %v", m.rows)
	}

	press(tea.KeyMsg{Type: tea.KeyShiftTab})
	press(tea.KeyMsg{Type: tea.KeyShiftTab})
	press(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.current != 2 {
		t.Errorf("prev should wrap, current = %d", m.current)
	}

	press(tea.KeyMsg{Type: tea.KeyEscape})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back without quitting")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if len(m.rows) != 0 {
		t.Fatalf("rows = %v", m.rows)
	}
	if !strings.Contains(m.View(), "Nothing here yet") {
		t.Error("empty board should explain itself")
	}
	next, _ := m.Update(runeKey('q'))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}
