package cavitation

import (
	"math"
	"testing"
)

func TestSigmaValue(t *testing.T) {
	// (100 - 2) / (100 - 60) = 2.45
	if s := SigmaValue(100, 60, 2); math.Abs(s-2.45) > 1e-12 {
		t.Fatalf("sigma = %v", s)
	}
	if s := SigmaValue(100, 100, 2); s != SigmaUndefined {
		t.Fatalf("no pressure drop should give sentinel, got %v", s)
	}
	if s := SigmaValue(100, 50, 120); s != 0 {
		t.Fatalf("negative sigma should clamp to 0, got %v", s)
	}
}

func TestLadderGlobeStandard(t *testing.T) {
	limits := GetLimits("Globe", "Standard")
	if limits != (Limits{3.0, 2.0, 1.5, 1.0, 0.8}) {
		t.Fatalf("wrong limits: %+v", limits)
	}

	cases := []struct {
		sigma float64
		level Level
		risk  string
	}{
		{3.5, LevelNone, "Low"},
		{3.0, LevelNone, "Low"},
		{2.5, LevelIncipient, "Low"},
		{1.6, LevelConstant, "Medium"},
		{1.2, LevelIncipientDamage, "High"},
		{0.9, LevelChoking, "Critical"},
		{0.5, LevelMaxVibration, "Critical"},
	}
	for _, c := range cases {
		level, _, risk := DetermineLevel(c.sigma, limits)
		if level != c.level || risk != c.risk {
			t.Fatalf("sigma %v: got %v/%v want %v/%v", c.sigma, level, risk, c.level, c.risk)
		}
	}
}

func TestLevelMonotonicInSigma(t *testing.T) {
	limits := GetLimits("Butterfly", "High-Performance")
	prev := LevelMaxVibration
	for sigma := 0.0; sigma <= 5.0; sigma += 0.01 {
		level, _, _ := DetermineLevel(sigma, limits)
		if level > prev {
			t.Fatalf("level got less safe as sigma rose: sigma=%v level=%v prev=%v", sigma, level, prev)
		}
		prev = level
	}
}

func TestStyleFallbacks(t *testing.T) {
	// Substring match: "Anti-Cav" should hit the Anti-Cavitation row.
	if l := GetLimits("Globe", "Anti-Cav"); l.Incipient != 4.0 {
		t.Fatalf("substring match failed: %+v", l)
	}
	// Unknown style falls back to first style for the type.
	if l := GetLimits("Butterfly", "Triple Offset"); l.Incipient != 2.0 {
		t.Fatalf("first-style fallback failed: %+v", l)
	}
	// Segmented ball maps onto the Ball table.
	if l := GetLimits("Ball (Segmented)", "Standard V-Notch"); l.Incipient != 2.5 {
		t.Fatalf("segmented ball lookup failed: %+v", l)
	}
	// Unknown type defaults to Globe.
	if l := GetLimits("Gate", "Standard"); l.Incipient != 3.0 {
		t.Fatalf("unknown type fallback failed: %+v", l)
	}
}

func TestAssessNominal(t *testing.T) {
	a := Assess(145.038, 72.519, 0.435, "Globe", "Standard")
	if a.Fallback {
		t.Fatal("nominal input should not fall back")
	}
	// sigma just below 2.0 lands in Constant for Globe/Standard.
	if a.Level != LevelConstant || a.Risk != "Medium" {
		t.Fatalf("got %v/%v", a.Level, a.Risk)
	}
	if !a.HasMargin {
		t.Fatal("margin to damage expected below incipient threshold")
	}
}

func TestAssessFallback(t *testing.T) {
	a := Assess(math.NaN(), 50, 1, "Globe", "Standard")
	if !a.Fallback {
		t.Fatal("NaN input must produce fallback assessment")
	}
	if a.Sigma != 2.0 || a.Risk != "Low" {
		t.Fatalf("fallback defaults wrong: %+v", a)
	}
}

func TestAssessNoPressureDrop(t *testing.T) {
	a := Assess(80, 80, 1, "Globe", "Standard")
	if !a.NoPressureDrop || a.Level != LevelNone {
		t.Fatalf("no pressure drop should be flagged safe: %+v", a)
	}
}
