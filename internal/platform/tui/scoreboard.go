package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/beambox/internal/storage"
)

// maxRounds is how many rounds the scoreboard loads.
const maxRounds = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "shots"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists the best rounds in the log and the shots of a
// selected round.
type ScoreboardModel struct {
	store     *storage.Store
	rounds    []storage.RoundRecord
	shots     []storage.ShotRecord
	stats     *storage.Stats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	showShots bool
	err       error
	quitting  bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	return m
}

func styledTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, height-10)),
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

func (m *ScoreboardModel) load() {
	if m.store == nil {
		m.table = m.roundTable()
		return
	}
	m.rounds, m.err = m.store.TopRounds(maxRounds)
	if m.err == nil {
		m.stats, m.err = m.store.Stats()
	}
	m.table = m.roundTable()
}

func (m ScoreboardModel) roundTable() table.Model {
	t := styledTable([]table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Payout", Width: 7},
		{Title: "Level", Width: 5},
		{Title: "Shots", Width: 5},
		{Title: "End", Width: 13},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}, m.height)

	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		end := r.EndReason
		if r.Jackpot {
			end += " ★"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Payout),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Shots),
			end,
			r.Player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	t.SetRows(rows)
	return t
}

func (m ScoreboardModel) shotTable() table.Model {
	t := styledTable([]table.Column{
		{Title: "#", Width: 3},
		{Title: "Beam", Width: 13},
		{Title: "From", Width: 8},
		{Title: "Result", Width: 10},
		{Title: "Prize", Width: 13},
		{Title: "Amount", Width: 6},
	}, m.height)

	rows := make([]table.Row, len(m.shots))
	for i, s := range m.shots {
		rows[i] = table.Row{
			fmt.Sprintf("%d", s.Seq),
			s.Beam,
			fmt.Sprintf("(%d,%d)", s.EntryRow, s.EntryCol),
			s.Terminal,
			s.Prize,
			fmt.Sprintf("%+d", s.Amount),
		}
	}
	t.SetRows(rows)
	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.showShots {
				m.showShots = false
				m.table = m.roundTable()
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if m.showShots || m.store == nil || len(m.rounds) == 0 {
				return m, nil
			}
			selected := m.rounds[m.table.Cursor()]
			m.shots, m.err = m.store.RoundShots(selected.RoundID)
			m.showShots = true
			m.table = m.shotTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showShots {
			m.table = m.shotTable()
		} else {
			m.table = m.roundTable()
		}
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "TOP ROUNDS"
	if m.showShots {
		title = "SHOTS"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.stats != nil {
		b.WriteString(dim.Render(fmt.Sprintf(
			"%d rounds · %d shots · best %d · avg %.1f · %d jackpots · %d bombs",
			m.stats.Rounds, m.stats.Shots, m.stats.HighPayout, m.stats.AvgPayout,
			m.stats.Jackpots, m.stats.Bombs,
		)))
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.err.Error()))
	case len(m.rounds) == 0:
		emptyStyle := dim.Italic(true).Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No rounds recorded yet.\nPlay a round to get on the board!")))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
