package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ttc24/2048-Duel/internal/board"
)

// blendProb is the probability that tiers at level >= blendMinLevel
// play the raw engine recommendation instead of the mixed stochastic
// choice. Fixed across levels 8-10.
const (
	blendMinLevel = 8
	blendProb     = 0.88
)

// minTemperature below which the softmax collapses to argmax.
const minTemperature = 1e-6

// Selector is the engine entry point: it resolves a difficulty tier,
// runs the search, and applies the tier's stochastic policy to produce
// a move. The random source and clock are injected so that seeded
// calls are pure functions of their inputs.
type Selector struct {
	tiers []Tier
	rng   *rand.Rand
	now   func() time.Time
}

// NewSelector creates a selector over the given tier table. A nil rng
// is seeded from the current time; a nil now defaults to time.Now.
func NewSelector(tiers []Tier, rng *rand.Rand, now func() time.Time) *Selector {
	if tiers == nil {
		tiers = DefaultTiers()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Selector{tiers: tiers, rng: rng, now: now}
}

// Pick selects a move for the board at the given difficulty level.
// The level is clamped to the tier table. With no legal move the
// sentinel Left is returned; callers detect game over independently.
func (s *Selector) Pick(b board.Board, score, level int) board.Direction {
	tier := TierFor(s.tiers, level)
	cfg := tier.Effective(score)

	best, _ := BestMove(b, score, cfg, s.rng, s.now)

	legal := board.LegalMoves(b)
	if len(legal) == 0 {
		return board.Left
	}

	values := make([]float64, len(legal))
	for i, dir := range legal {
		out := board.Apply(b, dir)
		values[i] = Evaluate(out.Board, score+out.ScoreDelta, cfg.Noise, s.rng)
	}

	choice := legal[softmaxSample(values, cfg.Temperature, s.rng)]

	// Doom fires first and short-circuits the epsilon roll: past the
	// ceiling the tier actively picks its worst option.
	if cfg.Doom > 0 && s.rng.Float64() < cfg.Doom {
		choice = legal[worstIndex(values)]
	} else if cfg.Epsilon > 0 && s.rng.Float64() < cfg.Epsilon {
		choice = legal[s.rng.Intn(len(legal))]
	}

	if tier.Level >= blendMinLevel && s.rng.Float64() < blendProb {
		choice = best
	}

	// Legality safety net: degenerate evaluations or the blend can
	// still hand back a non-moving direction.
	if !board.Legal(b, choice) {
		return legal[0]
	}
	return choice
}

// softmaxSample draws an index from the softmax distribution over the
// values at the given temperature. The max value is subtracted before
// exponentiating for numerical stability; a near-zero temperature
// degenerates to argmax.
func softmaxSample(values []float64, temperature float64, rng *rand.Rand) int {
	if temperature < minTemperature {
		return bestIndex(values)
	}

	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	weights := make([]float64, len(values))
	total := 0.0
	for i, v := range values {
		weights[i] = math.Exp((v - maxVal) / temperature)
		total += weights[i]
	}

	target := rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(values) - 1
}

func bestIndex(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func worstIndex(values []float64) int {
	worst := 0
	for i, v := range values {
		if v < values[worst] {
			worst = i
		}
	}
	return worst
}

// SelectMove is the flattened-board entry point: 16 row-major tile
// values, the running score, a difficulty level clamped to [1, 10],
// and an optional seed. Seed 0 draws from the current time; any other
// seed makes the call fully deterministic.
func SelectMove(flat []int, score, level int, seed uint64) (board.Direction, error) {
	b, ok := board.FromFlat(flat)
	if !ok {
		return board.Left, fmt.Errorf("engine: invalid board: want %d non-negative cells, got %d", board.Size*board.Size, len(flat))
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(int64(seed)))
	}
	sel := NewSelector(DefaultTiers(), rng, nil)
	return sel.Pick(b, score, level), nil
}
