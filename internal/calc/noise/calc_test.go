package noise

import (
	"testing"

	"Vortex/internal/units"
)

func liquidInput() Input {
	return Input{
		FluidType:  "Liquid",
		UnitSystem: units.Metric,
		P1:         10, P2: 5, T1: 25,
		FlowRate:         100,
		ValveType:        "Globe",
		ValveSizeNominal: 4,
	}
}

func gasInput() Input {
	return Input{
		FluidType:  "Gas",
		UnitSystem: units.Imperial,
		P1:         100, P2: 30, T1: 70,
		FlowRate:         100000,
		MW:               28.97,
		K:                1.4,
		ValveType:        "Globe",
		ValveSizeNominal: 6,
	}
}

func TestSimplifiedBounds(t *testing.T) {
	res := Predict(liquidInput(), Sizing{Cv: 50, Sigma: 3.0}, MethodSimplified)
	if res.TotalNoiseDBA < 50 || res.TotalNoiseDBA > 120 {
		t.Fatalf("simplified result out of [50,120]: %v", res.TotalNoiseDBA)
	}
	if res.Warning == "" {
		t.Fatal("simplified model must carry its estimate warning")
	}
	if res.Method != "Simplified Empirical Estimation" {
		t.Fatalf("method = %v", res.Method)
	}
}

func TestSimplifiedCavitationRaisesNoise(t *testing.T) {
	quiet := Predict(liquidInput(), Sizing{Cv: 50, Sigma: 3.0, SigmaLevel: "No Cavitation"}, MethodSimplified)
	loud := Predict(liquidInput(), Sizing{Cv: 50, Sigma: 0.9, SigmaLevel: "Choking"}, MethodSimplified)
	if loud.TotalNoiseDBA <= quiet.TotalNoiseDBA {
		t.Fatalf("choking cavitation should be louder: %v vs %v", loud.TotalNoiseDBA, quiet.TotalNoiseDBA)
	}
}

func TestIECLiquid(t *testing.T) {
	res := Predict(liquidInput(), Sizing{Cv: 50, Sigma: 1.2}, MethodIEC)
	if res.Method != "IEC 60534-8-3 Liquid Model" {
		t.Fatalf("method = %v", res.Method)
	}
	if res.TotalNoiseDBA < 40 || res.TotalNoiseDBA > 140 {
		t.Fatalf("IEC result out of [40,140]: %v", res.TotalNoiseDBA)
	}
	if res.MechanicalStreamPower <= 0 {
		t.Fatalf("stream power = %v", res.MechanicalStreamPower)
	}
	if res.FlowRegime != "Cavitating" {
		t.Fatalf("sigma=1.2 should be cavitating, got %v", res.FlowRegime)
	}
	if res.PeakFrequency <= 0 || res.SoundPowerLevel <= 0 {
		t.Fatalf("diagnostics missing: %+v", res)
	}
}

func TestIECLiquidFlashing(t *testing.T) {
	res := Predict(liquidInput(), Sizing{Cv: 50, IsFlashing: true}, MethodIEC)
	if res.FlowRegime != "Flashing" {
		t.Fatalf("regime = %v", res.FlowRegime)
	}
	if res.PeakFrequency != 1000 {
		t.Fatalf("flashing peak frequency = %v", res.PeakFrequency)
	}
	if res.AcousticEfficiency != 0.001 {
		t.Fatalf("flashing efficiency = %v", res.AcousticEfficiency)
	}
}

func TestIECGas(t *testing.T) {
	res := Predict(gasInput(), Sizing{Cv: 120}, MethodIEC)
	if res.Method != "IEC 60534-8-3 Gas Model" {
		t.Fatalf("method = %v", res.Method)
	}
	// x = 0.7 >= x_critical(1.4) ≈ 0.528, so choked.
	if res.FlowRegime != "Choked" {
		t.Fatalf("regime = %v", res.FlowRegime)
	}
	if res.AcousticEfficiency != 0.01 {
		t.Fatalf("choked gas efficiency = %v", res.AcousticEfficiency)
	}
	if res.SpeedOfSound <= 0 || res.MachNumber <= 0 {
		t.Fatalf("gas diagnostics missing: %+v", res)
	}
	if res.TotalNoiseDBA < 40 || res.TotalNoiseDBA > 140 {
		t.Fatalf("out of bounds: %v", res.TotalNoiseDBA)
	}
}

func TestIECGasSubsonic(t *testing.T) {
	in := gasInput()
	in.P2 = 90
	res := Predict(in, Sizing{Cv: 120}, MethodIEC)
	if res.FlowRegime != "Subsonic" {
		t.Fatalf("regime = %v", res.FlowRegime)
	}
	// Subsonic efficiency follows 0.001*Mach^4, well below the choked 0.01.
	if res.AcousticEfficiency >= 0.01 {
		t.Fatalf("subsonic efficiency too high: %v", res.AcousticEfficiency)
	}
}

func TestMissingOptionalFieldsDefaulted(t *testing.T) {
	in := gasInput()
	in.MW = 0
	in.K = 0
	in.ValveSizeNominal = 0
	res := Predict(in, Sizing{Cv: 120}, MethodIEC)
	if res.TotalNoiseDBA < 40 || res.TotalNoiseDBA > 140 {
		t.Fatalf("defaults should keep result bounded: %v", res.TotalNoiseDBA)
	}
}

func TestControlRecommendations(t *testing.T) {
	recs := ControlRecommendations(120, "Gas")
	if len(recs) < 5 {
		t.Fatalf("extreme level should add the gas silencer line: %v", recs)
	}
	recs = ControlRecommendations(70, "Liquid")
	if len(recs) != 1 {
		t.Fatalf("acceptable level: %v", recs)
	}
}
