// Package engine implements the move-selection engine: a static board
// evaluator, a time-bounded expectimax search, and the ten-tier
// difficulty layer that turns the raw search into a tunable opponent.
package engine

import (
	"math"
	"math/rand"

	"github.com/ttc24/2048-Duel/internal/board"
)

// weights blends the evaluator terms for one game phase.
type weights struct {
	Empty      float64
	Mono       float64
	Smooth     float64
	Positional float64
	Corner     float64
	MaxTile    float64
	Score      float64
}

var (
	earlyWeights = weights{Empty: 3.5, Mono: 1.0, Smooth: 0.4, Positional: 0.6, Corner: 1.0, MaxTile: 0.5, Score: 0.010}
	midWeights   = weights{Empty: 2.7, Mono: 1.6, Smooth: 0.7, Positional: 1.0, Corner: 1.5, MaxTile: 0.6, Score: 0.010}
	lateWeights  = weights{Empty: 2.0, Mono: 2.6, Smooth: 1.2, Positional: 1.6, Corner: 2.4, MaxTile: 0.8, Score: 0.010}
)

// Phase boundaries on (empty cells, max tile), plus the late-phase
// roughness thresholds that escalate the smoothness penalty and the
// score level past which the score term is de-emphasized.
const (
	earlyMinEmpty  = 7
	earlyMaxTile   = 256
	lateMaxEmpty   = 3
	lateMinTile    = 1024
	roughTier1     = 14.0
	roughTier2     = 22.0
	scoreCutoff    = 50000
	lateScoreScale = 0.2
)

// posWeights favors the top-left corner and its adjacent edges.
// It is multiplied by each tile's exponent.
var posWeights = [board.Size][board.Size]float64{
	{6.0, 5.0, 4.0, 3.0},
	{5.0, 4.0, 3.0, 2.0},
	{4.0, 3.0, 2.0, 1.0},
	{3.0, 2.0, 1.0, 0.5},
}

// exponent returns log2 of a tile value, 0 for an empty cell.
func exponent(v int) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(float64(v))
}

// Evaluate scores a board position; higher is better. When noiseAmp is
// nonzero a uniform perturbation in [-noiseAmp/2, noiseAmp/2) is added
// from rng, which keeps seeded runs fully reproducible.
func Evaluate(b board.Board, score int, noiseAmp float64, rng *rand.Rand) float64 {
	empty := board.CountEmpty(b)
	maxVal := board.MaxTile(b)

	mono := monotonicity(b)
	smooth := smoothness(b)
	positional := positionalScore(b)
	corner := cornerLock(b, maxVal)

	w := phaseWeights(empty, maxVal, -smooth, score)

	v := w.Empty*float64(empty) +
		w.Mono*mono +
		w.Smooth*smooth +
		w.Positional*positional +
		w.Corner*corner +
		w.MaxTile*exponent(maxVal) +
		w.Score*float64(score)

	if noiseAmp > 0 && rng != nil {
		v += (rng.Float64() - 0.5) * noiseAmp
	}
	return v
}

// phaseWeights selects the weight set for the current game phase.
// roughness is the positive magnitude of the smoothness penalty.
func phaseWeights(empty, maxVal int, roughness float64, score int) weights {
	switch {
	case empty >= earlyMinEmpty || maxVal <= earlyMaxTile:
		return earlyWeights
	case empty <= lateMaxEmpty && maxVal >= lateMinTile:
		w := lateWeights
		if roughness > roughTier1 {
			w.Smooth *= 1.5
		}
		if roughness > roughTier2 {
			w.Smooth *= 2.0
		}
		if score > scoreCutoff {
			w.Score *= lateScoreScale
		}
		return w
	default:
		return midWeights
	}
}

// monotonicity sums, over all 8 lines, the longer of the line's
// non-decreasing and non-increasing runs of tile exponents. Empty cells
// are skipped so gaps do not break a run.
func monotonicity(b board.Board) float64 {
	total := 0
	for y := range board.Size {
		var line []float64
		for x := range board.Size {
			if b[y][x] != 0 {
				line = append(line, exponent(b[y][x]))
			}
		}
		total += longestRun(line)
	}
	for x := range board.Size {
		var line []float64
		for y := range board.Size {
			if b[y][x] != 0 {
				line = append(line, exponent(b[y][x]))
			}
		}
		total += longestRun(line)
	}
	return float64(total)
}

// longestRun returns the longer of the longest non-decreasing and
// non-increasing consecutive runs in the sequence.
func longestRun(line []float64) int {
	if len(line) == 0 {
		return 0
	}
	bestInc, bestDec := 1, 1
	inc, dec := 1, 1
	for i := 1; i < len(line); i++ {
		if line[i] >= line[i-1] {
			inc++
		} else {
			inc = 1
		}
		if line[i] <= line[i-1] {
			dec++
		} else {
			dec = 1
		}
		bestInc = max(bestInc, inc)
		bestDec = max(bestDec, dec)
	}
	return max(bestInc, bestDec)
}

// smoothness is the negative sum of absolute exponent differences
// between adjacent non-empty tiles: a penalty for rough boards.
func smoothness(b board.Board) float64 {
	penalty := 0.0
	for y := range board.Size {
		for x := range board.Size {
			v := b[y][x]
			if v == 0 {
				continue
			}
			e := exponent(v)
			if x < board.Size-1 && b[y][x+1] != 0 {
				penalty += math.Abs(e - exponent(b[y][x+1]))
			}
			if y < board.Size-1 && b[y+1][x] != 0 {
				penalty += math.Abs(e - exponent(b[y+1][x]))
			}
		}
	}
	return -penalty
}

// positionalScore weights each tile's exponent by the static position
// table anchored at the top-left corner.
func positionalScore(b board.Board) float64 {
	score := 0.0
	for y := range board.Size {
		for x := range board.Size {
			if b[y][x] != 0 {
				score += posWeights[y][x] * exponent(b[y][x])
			}
		}
	}
	return score
}

// cornerLock rewards keeping the maximum tile in a corner, most of all
// the top-left anchor, and penalizes a max tile stranded mid-board.
func cornerLock(b board.Board, maxVal int) float64 {
	if maxVal == 0 {
		return 0
	}
	e := exponent(maxVal)
	last := board.Size - 1

	if b[0][0] == maxVal {
		return 1.5 * e
	}
	if b[0][last] == maxVal || b[last][0] == maxVal || b[last][last] == maxVal {
		return e
	}
	return -e
}
