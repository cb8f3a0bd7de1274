// Package sim plays complete seeded games of 2048 with the engine at
// the controls. It backs the calibrate and duel commands and the
// statistical tier tests: given a seed, every game is reproducible.
package sim

import (
	"math/rand"
	"time"

	"github.com/ttc24/2048-Duel/internal/board"
	"github.com/ttc24/2048-Duel/internal/engine"
)

// Spawn distribution for new tiles.
const spawn4Prob = 0.10

// MaxMoves caps runaway games; a finished 4x4 game is far shorter.
const MaxMoves = 20000

// WinTile is the classic victory tile.
const WinTile = 2048

// Result summarizes one completed game.
type Result struct {
	Level    int
	Seed     int64
	Score    int
	MaxTile  int
	Moves    int
	Won      bool // reached the 2048 tile
	Duration time.Duration
}

// DuelResult is the outcome of two tiers racing the same spawn stream.
type DuelResult struct {
	LevelA, LevelB int
	A, B           Result
	Winner         int // winning level, 0 on a draw
}

// Runner plays games against a fixed tier table.
type Runner struct {
	tiers []engine.Tier
	now   func() time.Time
}

// NewRunner creates a runner. nil tiers selects the built-in table;
// nil now defaults to time.Now.
func NewRunner(tiers []engine.Tier, now func() time.Time) *Runner {
	if tiers == nil {
		tiers = engine.DefaultTiers()
	}
	if now == nil {
		now = time.Now
	}
	return &Runner{tiers: tiers, now: now}
}

// Play runs one full game at the given level. The seed feeds two
// separate streams: one for tile spawns and one for the engine's
// policy randomness, so duels can share spawns while policies differ.
func (r *Runner) Play(level int, seed int64) Result {
	return r.play(level, seed, seed+1)
}

// play runs a game with distinct spawn and policy seeds.
func (r *Runner) play(level int, spawnSeed, policySeed int64) Result {
	spawnRNG := rand.New(rand.NewSource(spawnSeed))
	sel := engine.NewSelector(r.tiers, rand.New(rand.NewSource(policySeed)), r.now)

	var b board.Board
	b = SpawnTile(b, spawnRNG)
	b = SpawnTile(b, spawnRNG)

	res := Result{Level: level, Seed: spawnSeed}
	start := r.now()

	for res.Moves < MaxMoves && board.CanMove(b) {
		dir := sel.Pick(b, res.Score, level)
		out := board.Apply(b, dir)
		if !out.Moved {
			// The selector's safety net failed only if the game is
			// over, which the loop condition already excludes.
			break
		}
		b = out.Board
		res.Score += out.ScoreDelta
		res.Moves++
		b = SpawnTile(b, spawnRNG)
	}

	res.MaxTile = board.MaxTile(b)
	res.Won = res.MaxTile >= WinTile
	res.Duration = r.now().Sub(start)
	return res
}

// Duel races two levels against identical spawn streams and declares
// the higher final score the winner.
func (r *Runner) Duel(levelA, levelB int, seed int64) DuelResult {
	res := DuelResult{
		LevelA: levelA,
		LevelB: levelB,
		A:      r.play(levelA, seed, seed+1),
		B:      r.play(levelB, seed, seed+2),
	}
	switch {
	case res.A.Score > res.B.Score:
		res.Winner = levelA
	case res.B.Score > res.A.Score:
		res.Winner = levelB
	}
	return res
}

// SpawnTile places a 2 (90%) or 4 (10%) in a uniformly random empty
// cell. A full board is returned unchanged.
func SpawnTile(b board.Board, rng *rand.Rand) board.Board {
	cells := board.EmptyCells(b)
	if len(cells) == 0 {
		return b
	}
	cell := cells[rng.Intn(len(cells))]
	value := 2
	if rng.Float64() < spawn4Prob {
		value = 4
	}
	return board.WithTile(b, cell, value)
}

// Stats aggregates results for a calibration batch.
type Stats struct {
	Games     int
	MeanScore float64
	MaxScore  int
	MaxTile   int
	Wins      int
}

// Summarize computes batch statistics over a set of results.
func Summarize(results []Result) Stats {
	s := Stats{Games: len(results)}
	if len(results) == 0 {
		return s
	}
	total := 0
	for _, r := range results {
		total += r.Score
		if r.Score > s.MaxScore {
			s.MaxScore = r.Score
		}
		if r.MaxTile > s.MaxTile {
			s.MaxTile = r.MaxTile
		}
		if r.Won {
			s.Wins++
		}
	}
	s.MeanScore = float64(total) / float64(len(results))
	return s
}
