package engine

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/ttc24/2048-Duel/internal/board"
)

// Tile-spawn distribution: 2 with probability 0.9, 4 with 0.1.
const (
	spawn2Prob = 0.9
	spawn4Prob = 0.1
)

// Risk-score bonuses for spawn cells on the rim of the board. Edge and
// corner spawns disturb the structured region most, so sampled chance
// nodes prefer them.
const (
	riskEdgeBonus   = 2.0
	riskCornerBonus = 4.0
)

// deadlineCheckEvery bounds how often the wall clock is read during
// the recursive search.
const deadlineCheckEvery = 64

// searcher holds the per-call state of one expectimax search.
type searcher struct {
	cfg      Effective
	rng      *rand.Rand
	now      func() time.Time
	deadline time.Time
	cache    *transCache
	nodes    int
	aborted  bool
}

// BestMove runs iterative-deepening expectimax and returns the best
// direction found at the deepest completed level, with its value.
// Deterministic for a fixed rng and clock. With no legal move it
// returns the sentinel Left, which callers must not act on without a
// legality check.
func BestMove(b board.Board, score int, cfg Effective, rng *rand.Rand, now func() time.Time) (board.Direction, float64) {
	if now == nil {
		now = time.Now
	}
	s := &searcher{
		cfg:      cfg,
		rng:      rng,
		now:      now,
		deadline: now().Add(time.Duration(cfg.TimeBudgetMS) * time.Millisecond),
	}
	if cfg.CacheEnabled {
		s.cache = newTransCache()
	}

	legal := board.LegalMoves(b)
	if len(legal) == 0 {
		return board.Left, s.evaluate(b, score)
	}

	bestDir := legal[0]
	bestVal := math.Inf(-1)
	completedAny := false

	for depth := cfg.Depth; depth <= cfg.Depth+cfg.Boost; depth++ {
		dir, val, completed := s.searchRoot(b, score, depth)
		if !completed {
			break
		}
		bestDir, bestVal = dir, val
		completedAny = true
		if s.timeUp() {
			break
		}
	}

	if !completedAny {
		// Deadline hit before the base depth finished: fall back to
		// the best one-ply move.
		bestDir, bestVal = s.greedyMove(b, score, legal)
	}
	return bestDir, bestVal
}

// searchRoot explores every legal direction at the given depth.
// Returns completed=false if the deadline interrupted the level.
func (s *searcher) searchRoot(b board.Board, score, depth int) (board.Direction, float64, bool) {
	s.aborted = false

	bestDir := board.Left
	bestVal := math.Inf(-1)
	found := false

	for _, cand := range s.orderedMoves(b, score) {
		val := s.chanceValue(cand.out.Board, score+cand.out.ScoreDelta, depth-1)
		if s.aborted {
			return bestDir, bestVal, false
		}
		if !found || val > bestVal {
			bestDir, bestVal = cand.dir, val
			found = true
		}
	}
	return bestDir, bestVal, found
}

type candidate struct {
	dir board.Direction
	out board.Outcome
	key float64
}

// orderedMoves returns the legal moves sorted by one-ply evaluation,
// best first. Stable sort over the priority-ordered direction list
// keeps the fixed left<up<right<down tie-break.
func (s *searcher) orderedMoves(b board.Board, score int) []candidate {
	cands := make([]candidate, 0, 4)
	for _, dir := range board.Directions {
		out := board.Apply(b, dir)
		if !out.Moved {
			continue
		}
		cands = append(cands, candidate{
			dir: dir,
			out: out,
			key: Evaluate(out.Board, score+out.ScoreDelta, 0, nil),
		})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].key > cands[j].key
	})
	return cands
}

// maxValue is the agent's turn: pick the move maximizing the value of
// the resulting chance node one ply deeper.
func (s *searcher) maxValue(b board.Board, score, depth int) float64 {
	if s.timeUp() {
		s.aborted = true
		return s.evaluate(b, score)
	}
	if depth <= 0 {
		return s.evaluate(b, score)
	}

	cands := s.orderedMoves(b, score)
	if len(cands) == 0 {
		return s.evaluate(b, score)
	}

	best := math.Inf(-1)
	for _, cand := range cands {
		val := s.chanceValue(cand.out.Board, score+cand.out.ScoreDelta, depth-1)
		if s.aborted {
			return best
		}
		if val > best {
			best = val
		}
	}
	return best
}

// chanceValue is the environment's turn: average the value of spawning
// a 2 or a 4 over the considered empty cells. Outside full-chance mode
// only the SampleK riskiest cells are expanded.
func (s *searcher) chanceValue(b board.Board, score, depth int) float64 {
	if s.timeUp() {
		s.aborted = true
		return s.evaluate(b, score)
	}
	if depth <= 0 {
		return s.evaluate(b, score)
	}

	if s.cache != nil {
		if val, ok := s.cache.probe(b, depth); ok {
			return val
		}
	}

	cells := board.EmptyCells(b)
	if len(cells) == 0 {
		return s.evaluate(b, score)
	}
	if !s.cfg.FullChance && len(cells) > s.cfg.SampleK {
		cells = riskiest(b, cells, s.cfg.SampleK)
	}

	total := 0.0
	for _, cell := range cells {
		v2 := s.maxValue(board.WithTile(b, cell, 2), score, depth)
		if s.aborted {
			return total
		}
		v4 := s.maxValue(board.WithTile(b, cell, 4), score, depth)
		if s.aborted {
			return total
		}
		total += spawn2Prob*v2 + spawn4Prob*v4
	}
	val := total / float64(len(cells))

	if s.cache != nil {
		s.cache.store(b, depth, val)
	}
	return val
}

// riskiest returns the k cells with the highest risk score, preserving
// row-major order among ties.
func riskiest(b board.Board, cells []board.Cell, k int) []board.Cell {
	type scored struct {
		cell board.Cell
		risk float64
	}
	ranked := make([]scored, len(cells))
	for i, c := range cells {
		ranked[i] = scored{cell: c, risk: riskScore(b, c)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].risk > ranked[j].risk
	})
	top := make([]board.Cell, k)
	for i := range k {
		top[i] = ranked[i].cell
	}
	return top
}

// riskScore rates a spawn location by the exponents of its orthogonal
// neighbors plus a bonus for edge cells and a larger one for corners.
func riskScore(b board.Board, c board.Cell) float64 {
	risk := 0.0
	if c.Row > 0 {
		risk += exponent(b[c.Row-1][c.Col])
	}
	if c.Row < board.Size-1 {
		risk += exponent(b[c.Row+1][c.Col])
	}
	if c.Col > 0 {
		risk += exponent(b[c.Row][c.Col-1])
	}
	if c.Col < board.Size-1 {
		risk += exponent(b[c.Row][c.Col+1])
	}

	last := board.Size - 1
	onRowEdge := c.Row == 0 || c.Row == last
	onColEdge := c.Col == 0 || c.Col == last
	switch {
	case onRowEdge && onColEdge:
		risk += riskCornerBonus
	case onRowEdge || onColEdge:
		risk += riskEdgeBonus
	}
	return risk
}

// greedyMove is the anytime fallback when not even the base depth
// completed: best one-ply evaluation among the legal moves.
func (s *searcher) greedyMove(b board.Board, score int, legal []board.Direction) (board.Direction, float64) {
	bestDir := legal[0]
	bestVal := math.Inf(-1)
	for _, dir := range legal {
		out := board.Apply(b, dir)
		val := Evaluate(out.Board, score+out.ScoreDelta, 0, nil)
		if val > bestVal {
			bestDir, bestVal = dir, val
		}
	}
	return bestDir, bestVal
}

func (s *searcher) evaluate(b board.Board, score int) float64 {
	return Evaluate(b, score, s.cfg.Noise, s.rng)
}

// timeUp checks the deadline, reading the clock only every few nodes.
func (s *searcher) timeUp() bool {
	s.nodes++
	if s.nodes%deadlineCheckEvery != 1 {
		return s.aborted
	}
	return !s.now().Before(s.deadline)
}
