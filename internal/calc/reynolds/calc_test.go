package reynolds

import (
	"math"
	"testing"
)

func TestValveReynoldsNumber(t *testing.T) {
	// 1360 * 100 * 1 / (50 * 1) = 2720
	if rev := ValveReynoldsNumber(50, 100, 1, 1); math.Abs(rev-2720) > 1e-9 {
		t.Fatalf("rev = %v", rev)
	}
	if rev := ValveReynoldsNumber(0, 100, 1, 1); rev != 10000 {
		t.Fatalf("invalid cv should assume turbulent, got %v", rev)
	}
	if rev := ValveReynoldsNumber(50, 100, 0, 1); rev != 10000 {
		t.Fatalf("invalid viscosity should assume turbulent, got %v", rev)
	}
}

func TestFactorBoundaries(t *testing.T) {
	if fr := FactorFromCurve(10000); fr != 1.0 {
		t.Fatalf("FR(10000) = %v", fr)
	}
	if fr := FactorFromCurve(20000); fr != 1.0 {
		t.Fatalf("FR(20000) = %v", fr)
	}
	if fr := FactorFromCurve(10); fr != 0.15 {
		t.Fatalf("FR(10) = %v", fr)
	}
	if fr := FactorFromCurve(5); fr != 0.15 {
		t.Fatalf("FR(5) = %v", fr)
	}
	// Midpoint between (100,0.60) and (200,0.75).
	if fr := FactorFromCurve(150); math.Abs(fr-0.675) > 1e-12 {
		t.Fatalf("FR(150) = %v", fr)
	}
}

func TestFactorMonotonic(t *testing.T) {
	prev := 0.0
	for rev := 1.0; rev <= 25000; rev *= 1.07 {
		fr := FactorFromCurve(rev)
		if fr < prev {
			t.Fatalf("FR decreased at Rev=%v: %v < %v", rev, fr, prev)
		}
		prev = fr
	}
}

func TestRegime(t *testing.T) {
	if regime, _, needed := Regime(15000); regime != "Turbulent" || needed {
		t.Fatalf("got %v needed=%v", regime, needed)
	}
	if regime, _, needed := Regime(3000); regime != "Transitional" || !needed {
		t.Fatalf("got %v needed=%v", regime, needed)
	}
	if regime, _, _ := Regime(500); regime != "Laminar" {
		t.Fatalf("got %v", regime)
	}
	if regime, _, _ := Regime(50); regime != "Highly Laminar" {
		t.Fatalf("got %v", regime)
	}
}

func TestCalculateTurbulentConvergesImmediately(t *testing.T) {
	res, err := Calculate(Input{FlowRateGpm: 440, DpPsi: 72.5, SpecificGravity: 1.0, ViscosityCp: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged || res.Iterations != 1 {
		t.Fatalf("turbulent case should converge in one pass: %+v", res)
	}
	if res.FrFactor != 1.0 {
		t.Fatalf("FR = %v", res.FrFactor)
	}
}

func TestCalculateViscousConverges(t *testing.T) {
	// High viscosity forces the laminar branch and a few iterations.
	res, err := Calculate(Input{FlowRateGpm: 50, DpPsi: 10, SpecificGravity: 0.9, ViscosityCp: 500})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatalf("expected convergence: %+v", res)
	}
	if res.FrFactor >= 1.0 {
		t.Fatalf("viscous flow should be corrected, FR = %v", res.FrFactor)
	}
	if res.CvCorrected <= 50*math.Sqrt(0.9/10) {
		t.Fatalf("corrected Cv must exceed basic Cv: %v", res.CvCorrected)
	}
	if res.Iterations > 10 {
		t.Fatalf("iteration cap exceeded: %d", res.Iterations)
	}
}

func TestCalculateReportsNonConvergence(t *testing.T) {
	// Deep in the pinned-FR region every pass divides Cv by 0.15, so the
	// fixed point never settles and the cap must be reported honestly.
	res, err := Calculate(Input{FlowRateGpm: 1, DpPsi: 1, SpecificGravity: 1, ViscosityCp: 10000})
	if err != nil {
		t.Fatal(err)
	}
	if res.Converged {
		t.Fatalf("pinned-FR case must not converge: %+v", res)
	}
	if res.Iterations != 10 {
		t.Fatalf("iterations = %d, want the cap", res.Iterations)
	}
	if res.FrFactor != 0.15 {
		t.Fatalf("fr = %v, want the 0.15 floor", res.FrFactor)
	}
	if res.FlowRegime != "Unknown" || res.RegimeDescription != "Did not converge" {
		t.Fatalf("regime must flag the failure: %+v", res)
	}
}

func TestCalculateRejectsBadDp(t *testing.T) {
	if _, err := Calculate(Input{FlowRateGpm: 10, DpPsi: 0, SpecificGravity: 1, ViscosityCp: 1}); err == nil {
		t.Fatal("zero dp must error")
	}
}

func TestCalculateDeterministic(t *testing.T) {
	in := Input{FlowRateGpm: 80, DpPsi: 25, SpecificGravity: 1.1, ViscosityCp: 200}
	a, _ := Calculate(in)
	b, _ := Calculate(in)
	if a != b {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}
