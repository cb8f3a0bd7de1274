package engine

import "testing"

func TestDefaultTiersCount(t *testing.T) {
	tiers := DefaultTiers()
	if len(tiers) != 10 {
		t.Fatalf("got %d tiers, want 10", len(tiers))
	}
	for i, tier := range tiers {
		if tier.Level != i+1 {
			t.Errorf("tier %d has level %d", i, tier.Level)
		}
	}
}

func TestTiersMonotonicallyStronger(t *testing.T) {
	tiers := DefaultTiers()
	for i := 1; i < len(tiers); i++ {
		prev, cur := tiers[i-1], tiers[i]

		if cur.Depth+cur.Boost < prev.Depth+prev.Boost {
			t.Errorf("level %d: total depth %d < level %d's %d",
				cur.Level, cur.Depth+cur.Boost, prev.Level, prev.Depth+prev.Boost)
		}
		if cur.TimeBudgetMS <= prev.TimeBudgetMS {
			t.Errorf("level %d: time budget %d not above level %d's %d",
				cur.Level, cur.TimeBudgetMS, prev.Level, prev.TimeBudgetMS)
		}
		if cur.SampleK <= prev.SampleK {
			t.Errorf("level %d: sample breadth %d not above level %d's %d",
				cur.Level, cur.SampleK, prev.Level, prev.SampleK)
		}
		if cur.Epsilon >= prev.Epsilon {
			t.Errorf("level %d: epsilon %v not below level %d's %v",
				cur.Level, cur.Epsilon, prev.Level, prev.Epsilon)
		}
		if cur.Temperature >= prev.Temperature {
			t.Errorf("level %d: temperature %v not below level %d's %v",
				cur.Level, cur.Temperature, prev.Level, prev.Temperature)
		}
		if cur.Noise >= prev.Noise {
			t.Errorf("level %d: noise %v not below level %d's %v",
				cur.Level, cur.Noise, prev.Level, prev.Noise)
		}

		prevDoom, curDoom := 0.0, 0.0
		if prev.Ceiling != nil {
			prevDoom = prev.Ceiling.MaxDoom
		}
		if cur.Ceiling != nil {
			curDoom = cur.Ceiling.MaxDoom
		}
		if curDoom >= prevDoom {
			t.Errorf("level %d: max doom %v not below level %d's %v",
				cur.Level, curDoom, prev.Level, prevDoom)
		}
	}
}

func TestOnlyTopTierHasNoCeiling(t *testing.T) {
	tiers := DefaultTiers()
	for _, tier := range tiers[:9] {
		if tier.Ceiling == nil {
			t.Errorf("level %d should have a ceiling", tier.Level)
		}
	}
	if tiers[9].Ceiling != nil {
		t.Error("level 10 should have no ceiling")
	}
}

func TestEffectiveBelowCeilingUnchanged(t *testing.T) {
	tier := TierFor(DefaultTiers(), 3)
	eff := tier.Effective(tier.Ceiling.Threshold)

	if eff.Epsilon != tier.Epsilon || eff.Temperature != tier.Temperature ||
		eff.Noise != tier.Noise || eff.Doom != 0 {
		t.Errorf("at the threshold the ramp should be inactive, got %+v", eff)
	}
}

func TestEffectiveRampScalesLinearly(t *testing.T) {
	tier := TierFor(DefaultTiers(), 5)
	c := tier.Ceiling

	half := tier.Effective(c.Threshold + c.Span/2)
	full := tier.Effective(c.Threshold + c.Span)

	if half.Doom <= 0 || half.Doom >= full.Doom {
		t.Errorf("half-ramp doom %v should be between 0 and full-ramp %v", half.Doom, full.Doom)
	}
	if full.Doom != c.MaxDoom {
		t.Errorf("full-ramp doom = %v, want %v", full.Doom, c.MaxDoom)
	}
	if half.Epsilon <= tier.Epsilon || full.Epsilon <= half.Epsilon {
		t.Error("epsilon should grow along the ramp")
	}
	if half.Temperature <= tier.Temperature || half.Noise <= tier.Noise {
		t.Error("temperature and noise should grow along the ramp")
	}
}

func TestEffectiveRampClampsBeyondSpan(t *testing.T) {
	tier := TierFor(DefaultTiers(), 2)
	c := tier.Ceiling

	way := tier.Effective(c.Threshold + 10*c.Span)
	if way.Doom != c.MaxDoom {
		t.Errorf("doom = %v beyond the span, want %v", way.Doom, c.MaxDoom)
	}
	if way.Epsilon > EpsilonCap {
		t.Errorf("epsilon = %v, want <= %v", way.Epsilon, EpsilonCap)
	}
	atSpan := tier.Effective(c.Threshold + c.Span)
	if way.Epsilon != atSpan.Epsilon || way.Noise != atSpan.Noise {
		t.Error("ramp should clamp at the end of the span")
	}
}

func TestTopTierUnaffectedByScore(t *testing.T) {
	tier := TierFor(DefaultTiers(), 10)
	eff := tier.Effective(10_000_000)
	if eff.Doom != 0 || eff.Epsilon != tier.Epsilon || eff.Noise != tier.Noise {
		t.Errorf("level 10 should ignore the ramp at any score, got %+v", eff)
	}
}

func TestTierForClampsLevel(t *testing.T) {
	tiers := DefaultTiers()
	if got := TierFor(tiers, -3); got.Level != 1 {
		t.Errorf("TierFor(-3) = level %d, want 1", got.Level)
	}
	if got := TierFor(tiers, 42); got.Level != 10 {
		t.Errorf("TierFor(42) = level %d, want 10", got.Level)
	}
	if got := TierFor(tiers, 6); got.Level != 6 {
		t.Errorf("TierFor(6) = level %d, want 6", got.Level)
	}
}
