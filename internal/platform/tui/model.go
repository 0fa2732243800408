package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/games/ballbreaker"
	"github.com/vovakirdan/ball-breaker/internal/registry"
	"github.com/vovakirdan/ball-breaker/internal/storage"
)

// ResultReporter is implemented by games that describe a finished session
// in more detail than its score.
type ResultReporter interface {
	Summary() ballbreaker.Result
}

// Options configures a Model.
type Options struct {
	Store    *storage.Store // nil disables persistence
	Source   string         // Recorded with each session: "play" or "ssh"
	Player   string
	Renderer *lipgloss.Renderer // nil uses the local terminal
	Logger   *log.Logger        // nil discards
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	config  core.RuntimeConfig
	opts    Options
	palette Palette
	keys    GameKeyMap

	inputFrame core.InputFrame
	gameState  core.GameState

	scoreboard ScoreboardModel
	showScores bool

	quitting  bool
	saved     bool // Whether the current game over has been recorded
	sessionID string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Source == "" {
		opts.Source = "play"
	}

	sb := NewScoreboardModel(opts.Store, registry.GameInfo{ID: game.ID(), Title: game.Title()}, cfg.ScreenW, cfg.ScreenH)
	sb.embedded = true

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		palette:    NewPalette(opts.Renderer),
		keys:       DefaultGameKeyMap(),
		inputFrame: core.NewInputFrame(),
		scoreboard: sb,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showScores {
		sb, cmd := m.scoreboard.Update(msg)
		m.scoreboard = sb.(ScoreboardModel)
		if m.scoreboard.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		if m.scoreboard.IsGoingBack() {
			m.showScores = false
			m.scoreboard.goingBack = false
		}
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "tab":
		m.showScores = true
		m.scoreboard.Refresh()
		return m, nil
	}

	if a := m.keys.MapKey(msg); a != core.ActionNone {
		m.inputFrame.Set(a)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	sb, _ := m.scoreboard.Update(msg)
	m.scoreboard = sb.(ScoreboardModel)

	// The arena is sized from the screen, so a resize starts a new field
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.showScores {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.saved {
		m.sessionID = m.record()
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record stores the finished session and returns its ID. Persistence is
// best-effort: failures are logged and play continues.
func (m Model) record() string {
	if m.opts.Store == nil {
		return ""
	}

	rec := storage.SessionRecord{
		GameID: m.game.ID(),
		Source: m.opts.Source,
		Player: m.opts.Player,
		Seed:   m.config.Seed,
		Won:    m.gameState.Won,
		Score:  m.gameState.Score,
	}
	if rr, ok := m.game.(ResultReporter); ok {
		res := rr.Summary()
		rec.SpinsUsed = res.SpinsUsed
		rec.BlocksLeft = res.BlocksLeft
		rec.DurationMs = int64(res.DurationMs)
	}

	id, err := m.opts.Store.SaveSession(rec)
	if err != nil {
		m.opts.Logger.Error("could not save session", "error", err)
		return ""
	}
	m.opts.Logger.Info("session saved", "id", id, "score", rec.Score, "won", rec.Won)
	return id
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".ballbreaker", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// SessionID returns the stored ID of the last finished session, if any.
func (m Model) SessionID() string { return m.sessionID }

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// Run starts the Bubble Tea program for game in the local terminal.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
