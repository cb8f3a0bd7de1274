// Package tui provides the Bubble Tea watch screen: the engine plays
// 2048 on its own while the terminal shows the board, the tier in
// charge, and the running score. Also hosts the Wish SSH server that
// serves the same screen to remote sessions.
package tui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ttc24/2048-Duel/internal/board"
	"github.com/ttc24/2048-Duel/internal/engine"
	"github.com/ttc24/2048-Duel/internal/sim"
	"github.com/ttc24/2048-Duel/internal/storage"
)

// TickMsg is sent to trigger the next engine move.
type TickMsg time.Time

// speeds are the selectable delays between engine moves.
var speeds = []time.Duration{
	800 * time.Millisecond,
	400 * time.Millisecond,
	200 * time.Millisecond,
	100 * time.Millisecond,
	50 * time.Millisecond,
}

const defaultSpeedIdx = 2

// tickCmd schedules the next move after the given delay.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchConfig holds settings for a watch session.
type WatchConfig struct {
	Level int
	Seed  int64
	Tiers []engine.Tier
	Store *storage.Store // optional, runs are saved on game over
}

// WatchModel is the Bubble Tea model for watching the engine play.
type WatchModel struct {
	tiers    []engine.Tier
	selector *engine.Selector
	spawnRNG *rand.Rand
	store    *storage.Store

	board   board.Board
	score   int
	moves   int
	level   int
	seed    int64
	started time.Time

	speedIdx int
	paused   bool
	gameOver bool
	runSaved bool
	quitting bool

	keys   WatchKeyMap
	help   help.Model
	width  int
	height int
}

// NewWatchModel creates a watch model for the given configuration.
func NewWatchModel(cfg WatchConfig) WatchModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Tiers == nil {
		cfg.Tiers = engine.DefaultTiers()
	}

	h := help.New()
	h.ShowAll = false

	m := WatchModel{
		tiers:    cfg.Tiers,
		selector: engine.NewSelector(cfg.Tiers, rand.New(rand.NewSource(cfg.Seed+1)), nil),
		spawnRNG: rand.New(rand.NewSource(cfg.Seed)),
		store:    cfg.Store,
		level:    cfg.Level,
		seed:     cfg.Seed,
		started:  time.Now(),
		speedIdx: defaultSpeedIdx,
		keys:     DefaultWatchKeyMap(),
		help:     h,
	}
	m.board = sim.SpawnTile(m.board, m.spawnRNG)
	m.board = sim.SpawnTile(m.board, m.spawnRNG)
	return m
}

// Init starts the move loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(speeds[m.speedIdx])
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if !m.paused && !m.gameOver {
			return m, tickCmd(speeds[m.speedIdx])
		}

	case key.Matches(msg, m.keys.Restart):
		return m.restart()

	case key.Matches(msg, m.keys.Faster):
		if m.speedIdx < len(speeds)-1 {
			m.speedIdx++
		}

	case key.Matches(msg, m.keys.Slower):
		if m.speedIdx > 0 {
			m.speedIdx--
		}

	case key.Matches(msg, m.keys.LevelUp):
		if m.level < len(m.tiers) {
			m.level++
		}

	case key.Matches(msg, m.keys.LevelDn):
		if m.level > 1 {
			m.level--
		}

	case key.Matches(msg, m.keys.ShowFull):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// restart begins a fresh game with a new time-based seed.
func (m WatchModel) restart() (tea.Model, tea.Cmd) {
	m.seed = time.Now().UnixNano()
	m.selector = engine.NewSelector(m.tiers, rand.New(rand.NewSource(m.seed+1)), nil)
	m.spawnRNG = rand.New(rand.NewSource(m.seed))
	m.board = board.Board{}
	m.board = sim.SpawnTile(m.board, m.spawnRNG)
	m.board = sim.SpawnTile(m.board, m.spawnRNG)
	m.score = 0
	m.moves = 0
	m.started = time.Now()
	m.gameOver = false
	m.runSaved = false
	m.paused = false
	return m, tickCmd(speeds[m.speedIdx])
}

// handleTick plays one engine move.
func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.gameOver || m.quitting {
		return m, nil
	}

	if !board.CanMove(m.board) {
		return m.finishGame()
	}

	dir := m.selector.Pick(m.board, m.score, m.level)
	out := board.Apply(m.board, dir)
	if !out.Moved {
		return m.finishGame()
	}

	m.board = out.Board
	m.score += out.ScoreDelta
	m.moves++
	m.board = sim.SpawnTile(m.board, m.spawnRNG)

	if !board.CanMove(m.board) {
		return m.finishGame()
	}

	return m, tickCmd(speeds[m.speedIdx])
}

// finishGame marks the game over and saves the run once.
func (m WatchModel) finishGame() (tea.Model, tea.Cmd) {
	m.gameOver = true
	if m.store != nil && !m.runSaved {
		//nolint:errcheck // Best-effort save, the screen stays up regardless
		m.store.SaveRun(storage.RunEntry{
			Level:      m.level,
			Seed:       m.seed,
			Score:      m.score,
			MaxTile:    board.MaxTile(m.board),
			Moves:      m.moves,
			Won:        board.MaxTile(m.board) >= sim.WinTile,
			DurationMS: time.Since(m.started).Milliseconds(),
		})
		m.runSaved = true
	}
	return m, nil
}

// Run starts the watch screen in the local terminal.
func Run(cfg WatchConfig) error {
	p := tea.NewProgram(
		NewWatchModel(cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
