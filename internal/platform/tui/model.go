package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/round"
	"github.com/vovakirdan/beambox/internal/storage"
)

// Options configures a play session.
type Options struct {
	Game   *round.Game
	Store  *storage.Store // may be nil
	Player string
	Seed   int64  // generator seed, recorded with saved rounds
	Theme  *Theme // nil uses DefaultTheme
	Width  int
	Height int
	Logger *log.Logger
}

// Model is the Bubble Tea model for a beambox session.
type Model struct {
	game   *round.Game
	store  *storage.Store
	player string
	seed   int64
	theme  Theme
	logger *log.Logger

	keys  KeyMap
	help  help.Model
	shots table.Model

	ring     Ring
	selected beam.Kind
	last     *round.Outcome
	saved    bool // current round written to the store

	reveal      bool
	showHistory bool
	status      string
	statusID    int
	warn        bool
	outOfCredit bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a model and deals the first round.
func NewModel(opts Options) (Model, error) {
	if opts.Game == nil {
		return Model{}, errors.New("tui: no game")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		game:     opts.Game,
		store:    opts.Store,
		player:   opts.Player,
		seed:     opts.Seed,
		theme:    theme,
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     h,
		shots:    newShotTable(),
		selected: beam.Normal,
		width:    opts.Width,
		height:   opts.Height,
	}

	if m.game.Round == nil {
		if _, err := m.game.NextRound(); err != nil {
			return Model{}, err
		}
	}
	m.ring = Ring{Length: m.game.Round.Board.Config.Length}
	return m, nil
}

func newShotTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Beam", Width: 13},
			{Title: "From", Width: 8},
			{Title: "Result", Width: 10},
			{Title: "Prize", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
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

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.shots.SetHeight(max(3, msg.Height-12))
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.warn = false
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishRound()
		m.game.Settle()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		m.refreshShots()
		return m, nil

	case key.Matches(msg, m.keys.Reveal):
		m.reveal = !m.reveal
		return m, nil
	}

	if m.outOfCredit {
		return m, nil
	}
	if m.game.Round == nil {
		// The last deal failed; only another one can put a board in play.
		if key.Matches(msg, m.keys.NextRound) {
			return m.nextRound()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.ring = m.ring.Move(-1)
	case key.Matches(msg, m.keys.Right):
		m.ring = m.ring.Move(1)
	case key.Matches(msg, m.keys.SideUp):
		if m.showHistory {
			var cmd tea.Cmd
			m.shots, cmd = m.shots.Update(msg)
			return m, cmd
		}
		m.ring = m.ring.JumpSide(-1)
	case key.Matches(msg, m.keys.SideDown):
		if m.showHistory {
			var cmd tea.Cmd
			m.shots, cmd = m.shots.Update(msg)
			return m, cmd
		}
		m.ring = m.ring.JumpSide(1)
	case key.Matches(msg, m.keys.NextBeam):
		m.cycleBeam(1)
	case key.Matches(msg, m.keys.PrevBeam):
		m.cycleBeam(-1)
	case key.Matches(msg, m.keys.NextRound):
		return m.nextRound()
	case key.Matches(msg, m.keys.Fire):
		return m.fire()
	}
	return m, nil
}

func (m *Model) cycleBeam(step int) {
	if m.game.Round == nil {
		return
	}
	beams := m.game.Round.Beams()
	if len(beams) == 0 {
		return
	}
	idx := 0
	for i, k := range beams {
		if k == m.selected {
			idx = i + step
			break
		}
	}
	m.selected = beams[(idx%len(beams)+len(beams))%len(beams)]
}

func (m Model) fire() (tea.Model, tea.Cmd) {
	r := m.game.Round
	if r == nil {
		return m.setStatus("no board in play, press n to deal one", true)
	}
	if r.Over() {
		return m.setStatus("round over, press n for the next one", false)
	}
	entry, _ := r.Board.TileCoord(m.ring.Index)

	out, err := r.Fire(m.selected, entry)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.last = &out
	if r.Inventory[m.selected] == 0 {
		m.cycleBeam(1)
	}
	m.refreshShots()

	msg := describeOutcome(out)
	if r.Over() {
		msg += fmt.Sprintf(" · round over (%s), payout %d", r.Ended, r.Payout)
		m.finishRound()
	}
	return m.setStatus(msg, out.Exploded)
}

func (m Model) nextRound() (tea.Model, tea.Cmd) {
	m.finishRound()
	if _, err := m.game.NextRound(); err != nil {
		if errors.Is(err, round.ErrNoCredit) {
			m.outOfCredit = true
			return m.setStatus("out of credit, game over", true)
		}
		m.last = nil
		m.refreshShots()
		return m.setStatus(fmt.Sprintf("cannot deal a round: %v (press n to retry)", err), true)
	}
	m.ring = Ring{Length: m.game.Round.Board.Config.Length, Index: m.ring.Index}
	m.selected = beam.Normal
	m.last = nil
	m.saved = false
	m.refreshShots()
	return m.setStatus(fmt.Sprintf("round %d, level %d", m.game.Rounds, m.game.Level), false)
}

// finishRound writes the current round to the store once it has been
// played. Unfinished rounds are closed first.
func (m *Model) finishRound() {
	r := m.game.Round
	if r == nil || m.saved || r.Shots == 0 {
		return
	}
	r.Quit()
	m.saved = true
	if m.store == nil {
		return
	}
	id, err := m.store.SaveFinishedRound(r, m.player, m.seed)
	if err != nil {
		m.logger.Warn("could not save round", "error", err)
		return
	}
	m.logger.Debug("round saved", "id", id, "payout", r.Payout)
}

func (m Model) setStatus(text string, warn bool) (tea.Model, tea.Cmd) {
	m.statusID++
	m.status = text
	m.warn = warn
	return m, clearStatusCmd(m.statusID)
}

func (m *Model) refreshShots() {
	var rows []table.Row
	if r := m.game.Round; r != nil {
		for i, out := range r.Outcomes {
			rows = append(rows, shotRow(i+1, out))
		}
	}
	m.shots.SetRows(rows)
	m.shots.GotoBottom()
}

func shotRow(n int, out round.Outcome) table.Row {
	from := ""
	if c, ok := out.Path.Entry(); ok {
		from = c.String()
	}
	result := "lost"
	if last, ok := out.Path.Last(); ok {
		result = last.Type.String()
	}
	got := ""
	if out.Prize != nil {
		got = out.Prize.String()
	}
	return table.Row{fmt.Sprintf("%d", n), out.Path.Beam.String(), from, result, got}
}

func describeOutcome(out round.Outcome) string {
	last, ok := out.Path.Last()
	switch {
	case !ok:
		return "the beam was lost"
	case out.Exploded:
		return fmt.Sprintf("BOOM! bomb at %s went off, payout lost", last.Coord)
	case out.Defused:
		return fmt.Sprintf("bomb at %s defused", last.Coord)
	case out.Prize != nil:
		return fmt.Sprintf("%s at %s: %+d", out.Prize.String(), last.Coord, out.Amount)
	case last.Type == board.PointHit:
		return fmt.Sprintf("beam absorbed at %s", last.Coord)
	case last.Type == board.PointEmit:
		return fmt.Sprintf("beam left at %s, nothing there", last.Coord)
	default:
		return "the beam went astray"
	}
}

// View renders the session.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	r := m.game.Round

	var b strings.Builder
	b.WriteString(m.renderHUD())
	b.WriteString("\n\n")

	if r != nil {
		cursor, _ := r.Board.TileCoord(m.ring.Index)
		view := BoardView{Cursor: &cursor, Reveal: m.reveal}
		if m.last != nil {
			view.Path = &m.last.Path
		}
		boardView := RenderBoard(r.Board, view, m.theme)
		if m.showHistory {
			history := m.theme.OverlayBorder.Render(
				m.theme.OverlayTitle.Render("Shots") + "\n" + m.shots.View(),
			)
			boardView = lipgloss.JoinHorizontal(lipgloss.Top, boardView, "  ", history)
		}
		b.WriteString(boardView)
		b.WriteString("\n\n")
		b.WriteString(m.renderBeams())
		b.WriteString("\n")
	}

	if m.status != "" {
		style := m.theme.Status
		if m.warn {
			style = m.theme.Warning
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderHUD() string {
	sep := m.theme.HUDSeparator.Render(" │ ")
	field := func(label string, value any) string {
		return m.theme.HUDLabel.Render(label+" ") + m.theme.HUDValue.Render(fmt.Sprint(value))
	}

	parts := []string{
		m.theme.HUDTitle.Render("BEAMBOX"),
		field("level", m.game.Level),
		field("credit", m.game.Credit),
		field("round", m.game.Rounds),
	}
	if r := m.game.Round; r != nil {
		parts = append(parts, field("payout", r.Payout))
	}
	return strings.Join(parts, sep)
}

func (m Model) renderBeams() string {
	r := m.game.Round
	var parts []string
	for _, k := range beam.All() {
		n := r.Inventory[k]
		if n == 0 {
			continue
		}
		text := fmt.Sprintf("%s ×%d", k.Title(), n)
		if k == m.selected {
			parts = append(parts, m.theme.HUDActive.Render("▸ "+text))
		} else {
			parts = append(parts, m.theme.HUDValue.Render("  "+text))
		}
	}
	if len(parts) == 0 {
		return m.theme.HUDLabel.Render("no beams left")
	}
	return strings.Join(parts, " ")
}

// Game returns the game driven by the model.
func (m Model) Game() *round.Game {
	return m.game
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
