package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stacktower/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	maxScores          = 100
	maxRuns            = 50
	boardDateLayout    = "Jan 02 15:04"
)

// board is one page of the scoreboard. Leaderboards have a GameID; the run
// history spans every mode.
type board struct {
	Title   string
	GameID  string
	Columns []table.Column
	Load    func(s *storage.Store, gameID string) []table.Row
}

var boards = []board{
	{Title: "Campaign", GameID: "stack", Columns: scoreColumns, Load: loadScoreRows},
	{Title: "Endless", GameID: "stack_endless", Columns: scoreColumns, Load: loadScoreRows},
	{Title: "Recent Runs", Columns: runColumns, Load: loadRunRows},
}

var scoreColumns = []table.Column{
	{Title: "Rank", Width: 6},
	{Title: "Player", Width: 12},
	{Title: "Score", Width: 10},
	{Title: "Date", Width: 14},
}

var runColumns = []table.Column{
	{Title: "Date", Width: 12},
	{Title: "Player", Width: 10},
	{Title: "Mode", Width: 8},
	{Title: "Lvl", Width: 4},
	{Title: "Result", Width: 7},
	{Title: "Score", Width: 6},
	{Title: "Perf", Width: 5},
}

func loadScoreRows(s *storage.Store, gameID string) []table.Row {
	//nolint:errcheck // an unreadable board shows as empty
	scores, _ := s.TopScores(gameID, maxScores)
	rows := make([]table.Row, len(scores))
	for i, e := range scores {
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			playerName(e.Player),
			strconv.Itoa(e.Score),
			e.CreatedAt.Format(boardDateLayout),
		}
	}
	return rows
}

func loadRunRows(s *storage.Store, _ string) []table.Row {
	//nolint:errcheck // an unreadable history shows as empty
	runs, _ := s.RecentRuns("", maxRuns)
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		mode := "campaign"
		if r.GameID == "stack_endless" {
			mode = "endless"
		}
		rows[i] = table.Row{
			r.CreatedAt.Format(boardDateLayout),
			playerName(r.Player),
			mode,
			strconv.Itoa(r.Level),
			r.Outcome,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Perfects),
		}
	}
	return rows
}

func playerName(p string) string {
	if p == "" {
		return "-"
	}
	return p
}

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next board")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev board")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardIdleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardEmptyStyle  = boardDimStyle.Italic(true).Padding(2, 4)
)

// ScoreboardModel pages through the leaderboards and the run history.
type ScoreboardModel struct {
	boards    []board
	current   int
	store     *storage.Store
	rows      []table.Row
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on the campaign board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: boards,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

func (m *ScoreboardModel) board() board { return m.boards[m.current] }

func (m *ScoreboardModel) wide() bool { return m.width >= minWidthForSidebar }

// load fetches the current board and rebuilds the table around it.
func (m *ScoreboardModel) load() {
	b := m.board()
	m.rows, m.stats = nil, nil
	if m.store != nil {
		m.rows = b.Load(m.store, b.GameID)
		if b.GameID != "" {
			//nolint:errcheck // the summary line is optional
			m.stats, _ = m.store.GetGameStats(b.GameID)
		}
	}
	m.layout()
}

func (m *ScoreboardModel) layout() {
	cols := make([]table.Column, len(m.board().Columns))
	copy(cols, m.board().Columns)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(styles),
	)
	m.help.Width = m.width
}

func (m *ScoreboardModel) move(delta int) {
	n := len(m.boards)
	m.current = ((m.current+delta)%n + n) % n
	m.load()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.move(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText("HIGH SCORES - "+m.board().Title, m.width)))
	b.WriteString("\n\n")

	body := boardFrameStyle.Render(m.tableView())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(body, m.width))
	}

	if s := m.stats; s != nil && s.GamesCount > 0 {
		b.WriteString("\n")
		b.WriteString(boardDimStyle.Render(fmt.Sprintf("Games: %d   Best: %d   Average: %.1f", s.GamesCount, s.HighScore, s.AvgScore)))
	}
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) sidebar() string {
	items := []string{"Boards", strings.Repeat("-", sidebarWidth-4)}
	for i, bd := range m.boards {
		if i == m.current {
			items = append(items, boardTitleStyle.Render("> "+bd.Title))
		} else {
			items = append(items, "  "+bd.Title)
		}
	}
	return boardFrameStyle.Width(sidebarWidth).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.boards))
	for i, bd := range m.boards {
		style := boardIdleStyle
		if i == m.current {
			style = boardActiveStyle
		}
		tabs[i] = style.Render(bd.Title)
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return "< " + m.board().Title + " >"
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.rows) == 0 {
		return boardEmptyStyle.Render("Nothing here yet.\nStack a few platforms to set a score!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program. goBack is false
// when the player quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
