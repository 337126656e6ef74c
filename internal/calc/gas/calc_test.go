package gas

import (
	"math"
	"testing"

	"Vortex/internal/units"
)

func air(p1, p2 float64) Input {
	return Input{
		UnitSystem: units.Imperial,
		P1:         p1, P2: p2, T1: 70,
		FlowRate: 100000,
		MW:       28.97, K: 1.4, Z: 1.0,
		ValveType: "Globe", ValveStyle: "Standard",
		Xt: 0.75,
	}
}

func TestChokedDetection(t *testing.T) {
	// k=1.4 gives fk=1, so x_choked = Xt = 0.75; x = 0.8 is choked.
	res, err := Calculate(air(100, 20))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsChoked || res.FlowRegime != "Choked (Critical)" {
		t.Fatalf("x=0.8 must be choked: %+v", res)
	}
	if math.Abs(res.ChokedPressureDropRatio-0.75) > 1e-12 {
		t.Fatalf("x_choked = %v", res.ChokedPressureDropRatio)
	}
	// Y uses x_choked, not x: Y = 1 - 0.75/(3*1*0.75) = 2/3.
	if math.Abs(res.ExpansionFactorY-2.0/3.0) > 1e-9 {
		t.Fatalf("Y = %v", res.ExpansionFactorY)
	}
	if res.ChokedMassFlow <= 0 || res.ChokingWarning == "" {
		t.Fatalf("choked diagnostics missing: %+v", res)
	}
}

func TestSubsonic(t *testing.T) {
	res, err := Calculate(air(100, 80))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsChoked || res.FlowRegime != "Subsonic" {
		t.Fatalf("x=0.2 must be subsonic: %+v", res)
	}
	if math.Abs(res.PressureDropRatioX-0.2) > 1e-12 {
		t.Fatalf("x = %v", res.PressureDropRatioX)
	}
	// Y = 1 - 0.2/(3*0.75) ≈ 0.9111.
	if math.Abs(res.ExpansionFactorY-(1-0.2/2.25)) > 1e-9 {
		t.Fatalf("Y = %v", res.ExpansionFactorY)
	}
	if res.ChokedMassFlow != 0 || res.ChokingWarning != "" {
		t.Fatalf("subsonic run must not report choked flow: %+v", res)
	}
}

func TestMassFlowAndCvPositive(t *testing.T) {
	res, err := Calculate(air(100, 60))
	if err != nil {
		t.Fatal(err)
	}
	// W = 100000 * 28.97 / 379.3 lb/hr
	want := 100000 * 28.97 / 379.3
	if math.Abs(res.MassFlowRate-want) > 1e-6 {
		t.Fatalf("mass flow = %v want %v", res.MassFlowRate, want)
	}
	if res.Cv <= 0 {
		t.Fatalf("cv = %v", res.Cv)
	}
	if res.SonicVelocity <= 0 || res.GasDensity <= 0 {
		t.Fatalf("diagnostics missing: %+v", res)
	}
}

func TestYClampFloor(t *testing.T) {
	// Tiny Xt forces Y below 0.1 before clamping.
	in := air(100, 20)
	in.Xt = 0.05
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if res.ExpansionFactorY < 0.1 || res.ExpansionFactorY > 1.0 {
		t.Fatalf("Y out of bounds: %v", res.ExpansionFactorY)
	}
}

func TestXtFromTable(t *testing.T) {
	in := air(100, 80)
	in.Xt = 0 // take Xt from the valve data tables
	in.ValveStyle = "Standard, Cage-Guided"
	in.ValveOpeningPercent = 50
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if res.XtUsed != 0.75 {
		t.Fatalf("Xt from curve at 50%% = %v", res.XtUsed)
	}
}

func TestInvalidInputs(t *testing.T) {
	if _, err := Calculate(air(50, 60)); err == nil {
		t.Fatal("P2 > P1 must error")
	}
	in := air(100, 50)
	in.MW = 0
	if _, err := Calculate(in); err == nil {
		t.Fatal("zero MW must error")
	}
}

func TestPressureRecovery(t *testing.T) {
	pr := AnalyzePressureRecovery(100, 20, 1.4, 0.75)
	if pr.RecoveryRatio != 0 {
		t.Fatalf("choked recovery ratio = %v", pr.RecoveryRatio)
	}
	pr = AnalyzePressureRecovery(100, 80, 1.4, 0.75)
	if pr.RecoveryRatio <= 0 || pr.RecoveryRatio >= 1 {
		t.Fatalf("subsonic recovery ratio = %v", pr.RecoveryRatio)
	}
	if pr.VenaContractaPressure < 80 || pr.VenaContractaPressure > 100 {
		t.Fatalf("vena contracta pressure = %v", pr.VenaContractaPressure)
	}
}

func TestValidationWarnings(t *testing.T) {
	in := air(100, 20)
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	v := Validate(in, res)
	if v.Valid {
		t.Fatal("choked flow should warn")
	}
	if v.OverallAssessment != "Caution Required" {
		t.Fatalf("assessment = %v", v.OverallAssessment)
	}

	in.P2 = 5 // pressure ratio 20:1
	res2, _ := Calculate(in)
	v = Validate(in, res2)
	found := false
	for _, w := range v.Warnings {
		if w == "Very high pressure ratio - consider multi-stage design" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing pressure-ratio warning: %v", v.Warnings)
	}
}

func TestIdempotent(t *testing.T) {
	in := air(120, 40)
	a, _ := Calculate(in)
	b, _ := Calculate(in)
	if a != b {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}
