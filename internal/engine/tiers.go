package engine

import "math"

// Ceiling forces a tier to degrade once its running score passes
// Threshold. Over the next Span points the stochastic knobs ramp up
// and a forced-blunder probability grows toward MaxDoom.
type Ceiling struct {
	Threshold int
	Span      int
	MaxDoom   float64
}

// Tier is the immutable configuration for one difficulty level.
type Tier struct {
	Level        int
	Depth        int  // baseline search depth
	Boost        int  // extra depth when time allows
	TimeBudgetMS int  // wall-clock search budget
	SampleK      int  // chance-node breadth when not in full-chance mode
	FullChance   bool // consider every empty cell at chance nodes
	CacheEnabled bool
	Epsilon      float64 // random-move probability
	Temperature  float64 // softmax temperature
	Noise        float64 // evaluation noise amplitude
	Ceiling      *Ceiling
}

// EpsilonCap bounds the ramped epsilon so a doomed tier still plays a
// deliberate move occasionally.
const EpsilonCap = 0.98

// Scale factors for the ceiling ramp: temperature and noise grow
// linearly from their base value to base*(1+scale) at full ramp.
const (
	rampTempScale  = 2.0
	rampNoiseScale = 3.0
)

// Effective is a tier configuration after the ceiling ramp has been
// applied for the current score. Doom is nonzero only past the ceiling.
type Effective struct {
	Tier
	Doom float64
}

// Effective applies the score-ceiling ramp. Below the threshold (or
// for tiers without a ceiling) the tier is returned unchanged.
func (t Tier) Effective(score int) Effective {
	eff := Effective{Tier: t}
	if t.Ceiling == nil || score <= t.Ceiling.Threshold {
		return eff
	}

	span := t.Ceiling.Span
	if span <= 0 {
		span = 1
	}
	k := clamp(float64(score-t.Ceiling.Threshold)/float64(span), 0, 1)

	eff.Epsilon = math.Min(t.Epsilon+k*(EpsilonCap-t.Epsilon), EpsilonCap)
	eff.Temperature = t.Temperature * (1 + k*rampTempScale)
	eff.Noise = t.Noise * (1 + k*rampNoiseScale)
	eff.Doom = t.Ceiling.MaxDoom * k
	return eff
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// DefaultTiers returns the ten difficulty tiers. Strength rises
// strictly with level: time budget and sampling breadth increase every
// step, total depth never decreases, and every stochastic knob
// (epsilon, temperature, noise, doom ceiling) shrinks. Only level 10
// plays without a score ceiling.
func DefaultTiers() []Tier {
	return []Tier{
		{Level: 1, Depth: 1, Boost: 0, TimeBudgetMS: 20, SampleK: 2,
			Epsilon: 0.55, Temperature: 3.0, Noise: 120,
			Ceiling: &Ceiling{Threshold: 1200, Span: 1800, MaxDoom: 0.50}},
		{Level: 2, Depth: 1, Boost: 1, TimeBudgetMS: 30, SampleK: 3,
			Epsilon: 0.45, Temperature: 2.6, Noise: 100,
			Ceiling: &Ceiling{Threshold: 2500, Span: 2500, MaxDoom: 0.45}},
		{Level: 3, Depth: 2, Boost: 1, TimeBudgetMS: 45, SampleK: 4,
			Epsilon: 0.35, Temperature: 2.2, Noise: 80,
			Ceiling: &Ceiling{Threshold: 5000, Span: 3500, MaxDoom: 0.40}},
		{Level: 4, Depth: 2, Boost: 1, TimeBudgetMS: 60, SampleK: 5, CacheEnabled: true,
			Epsilon: 0.26, Temperature: 1.8, Noise: 60,
			Ceiling: &Ceiling{Threshold: 9000, Span: 5000, MaxDoom: 0.35}},
		{Level: 5, Depth: 3, Boost: 1, TimeBudgetMS: 80, SampleK: 6, CacheEnabled: true,
			Epsilon: 0.18, Temperature: 1.4, Noise: 40,
			Ceiling: &Ceiling{Threshold: 14000, Span: 7000, MaxDoom: 0.30}},
		{Level: 6, Depth: 3, Boost: 2, TimeBudgetMS: 110, SampleK: 7, CacheEnabled: true,
			Epsilon: 0.12, Temperature: 1.1, Noise: 25,
			Ceiling: &Ceiling{Threshold: 20000, Span: 9000, MaxDoom: 0.25}},
		{Level: 7, Depth: 4, Boost: 2, TimeBudgetMS: 140, SampleK: 8, CacheEnabled: true,
			Epsilon: 0.07, Temperature: 0.8, Noise: 15,
			Ceiling: &Ceiling{Threshold: 27000, Span: 12000, MaxDoom: 0.20}},
		{Level: 8, Depth: 4, Boost: 2, TimeBudgetMS: 180, SampleK: 10, CacheEnabled: true,
			Epsilon: 0.04, Temperature: 0.6, Noise: 8,
			Ceiling: &Ceiling{Threshold: 36000, Span: 16000, MaxDoom: 0.15}},
		{Level: 9, Depth: 5, Boost: 2, TimeBudgetMS: 230, SampleK: 12, CacheEnabled: true,
			Epsilon: 0.02, Temperature: 0.4, Noise: 3,
			Ceiling: &Ceiling{Threshold: 48000, Span: 20000, MaxDoom: 0.08}},
		{Level: 10, Depth: 5, Boost: 3, TimeBudgetMS: 300, SampleK: 16, FullChance: true, CacheEnabled: true,
			Epsilon: 0, Temperature: 0.25, Noise: 0},
	}
}

// TierFor returns the tier for the given level, clamped to [1, 10].
func TierFor(tiers []Tier, level int) Tier {
	if level < 1 {
		level = 1
	}
	if level > len(tiers) {
		level = len(tiers)
	}
	return tiers[level-1]
}
