package engine

import (
	"math/rand"
	"testing"

	"github.com/ttc24/2048-Duel/internal/board"
)

func TestEmptyWeightPositiveInEveryPhase(t *testing.T) {
	// The empty-cell term must never punish having more room: adding
	// an empty cell never decreases that term in any phase.
	phases := []struct {
		name  string
		empty int
		max   int
	}{
		{name: "early", empty: 10, max: 64},
		{name: "mid", empty: 5, max: 512},
		{name: "late", empty: 2, max: 2048},
	}
	for _, tt := range phases {
		t.Run(tt.name, func(t *testing.T) {
			w := phaseWeights(tt.empty, tt.max, 0, 0)
			if w.Empty <= 0 {
				t.Errorf("empty weight = %v, want > 0", w.Empty)
			}
		})
	}
}

func TestEvaluateMonotonicInEmpties(t *testing.T) {
	// Same structure, one extra empty cell: isolate the empty term by
	// comparing the weighted contribution directly.
	for _, phase := range []struct {
		empty int
		max   int
	}{{8, 128}, {5, 512}, {3, 2048}} {
		w := phaseWeights(phase.empty, phase.max, 0, 0)
		more := w.Empty * float64(phase.empty+1)
		fewer := w.Empty * float64(phase.empty)
		if more < fewer {
			t.Errorf("empty term decreased with an extra empty cell: %v < %v", more, fewer)
		}
	}
}

func TestEvaluatePrefersStructuredBoard(t *testing.T) {
	structured := board.Board{
		{64, 32, 16, 8},
		{4, 2, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	scrambled := board.Board{
		{2, 64, 2, 8},
		{32, 0, 16, 0},
		{0, 4, 0, 2},
		{0, 0, 0, 0},
	}

	vs := Evaluate(structured, 0, 0, nil)
	vr := Evaluate(scrambled, 0, 0, nil)
	if vs <= vr {
		t.Errorf("structured board scored %v, scrambled %v; want structured higher", vs, vr)
	}
}

func TestEvaluateCornerLock(t *testing.T) {
	cornered := board.Board{
		{512, 8, 4, 2},
		{16, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	stranded := board.Board{
		{8, 16, 4, 2},
		{2, 512, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if cl, st := Evaluate(cornered, 0, 0, nil), Evaluate(stranded, 0, 0, nil); cl <= st {
		t.Errorf("corner-locked max scored %v, stranded max %v; want corner higher", cl, st)
	}
}

func TestMonotonicityCountsRuns(t *testing.T) {
	// A fully ordered board maxes out every line.
	ordered := board.Board{
		{256, 128, 64, 32},
		{128, 64, 32, 16},
		{64, 32, 16, 8},
		{32, 16, 8, 4},
	}
	if got := monotonicity(ordered); got != 32 {
		t.Errorf("monotonicity(ordered) = %v, want 32", got)
	}

	if got := monotonicity(board.Board{}); got != 0 {
		t.Errorf("monotonicity(empty) = %v, want 0", got)
	}
}

func TestSmoothnessPenalizesRoughness(t *testing.T) {
	flat := board.Board{
		{2, 2, 2, 2},
		{2, 2, 2, 2},
		{2, 2, 2, 2},
		{2, 2, 2, 2},
	}
	rough := board.Board{
		{2, 256, 2, 256},
		{256, 2, 256, 2},
		{2, 256, 2, 256},
		{256, 2, 256, 2},
	}
	if smoothness(flat) != 0 {
		t.Errorf("smoothness(flat) = %v, want 0", smoothness(flat))
	}
	if smoothness(rough) >= smoothness(flat) {
		t.Error("rough board should have a lower smoothness value than a flat one")
	}
}

func TestEvaluateNoiseIsSeededAndBounded(t *testing.T) {
	b := board.Board{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	base := Evaluate(b, 0, 0, nil)

	const amp = 50.0
	r1 := rand.New(rand.NewSource(7))
	r2 := rand.New(rand.NewSource(7))
	v1 := Evaluate(b, 0, amp, r1)
	v2 := Evaluate(b, 0, amp, r2)
	if v1 != v2 {
		t.Errorf("same seed gave %v and %v", v1, v2)
	}

	diff := v1 - base
	if diff < -amp/2 || diff > amp/2 {
		t.Errorf("noise %v outside [-%v, %v]", diff, amp/2, amp/2)
	}
}

func TestLateScoreWeightReduced(t *testing.T) {
	low := phaseWeights(2, 2048, 0, scoreCutoff)
	high := phaseWeights(2, 2048, 0, scoreCutoff+1)
	if high.Score >= low.Score {
		t.Errorf("score weight past cutoff = %v, want < %v", high.Score, low.Score)
	}
}

func TestLateSmoothnessEscalation(t *testing.T) {
	calm := phaseWeights(2, 2048, roughTier1-1, 0)
	rough := phaseWeights(2, 2048, roughTier1+1, 0)
	veryRough := phaseWeights(2, 2048, roughTier2+1, 0)
	if rough.Smooth <= calm.Smooth {
		t.Error("first roughness tier should raise the smoothness weight")
	}
	if veryRough.Smooth <= rough.Smooth {
		t.Error("second roughness tier should raise the smoothness weight again")
	}
}
