package actuator

import (
	"math"
	"testing"

	"Vortex/internal/units"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGlobeThrust(t *testing.T) {
	res, err := Calculate(Input{
		UnitSystem:       units.Imperial,
		P1:               100,
		P2:               40,
		ValveType:        "Globe",
		ValveSizeNominal: 2,
		FailPosition:     "Fail Close (FC)",
		ActuatorType:     "pneumatic_spring_diaphragm",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindLinear {
		t.Fatalf("expected linear result, got %s", res.Kind)
	}
	if res.Forces == nil || res.Spring == nil {
		t.Fatal("expected force and spring breakdowns")
	}
	if res.Torques != nil {
		t.Fatal("linear result must not carry a torque breakdown")
	}

	seatArea := math.Pi // 2" valve, radius 1
	if !almostEqual(res.Forces.SeatArea, seatArea, 1e-9) {
		t.Errorf("seat area = %v, want %v", res.Forces.SeatArea, seatArea)
	}
	if !almostEqual(res.Forces.UnbalancedForce, seatArea*60, 1e-6) {
		t.Errorf("unbalanced force = %v", res.Forces.UnbalancedForce)
	}
	if !almostEqual(res.Forces.SeatLoad, seatArea*50, 1e-6) {
		t.Errorf("seat load = %v", res.Forces.SeatLoad)
	}
	// Operating force exceeds seat load here, so it governs.
	if !almostEqual(res.Forces.GoverningForce, res.Forces.OperatingForce, 1e-9) {
		t.Errorf("governing = %v, operating = %v", res.Forces.GoverningForce, res.Forces.OperatingForce)
	}

	if res.Spring.Rate != 150 {
		t.Errorf("spring rate = %v, want 150 for small actuator area", res.Spring.Rate)
	}
	want := res.Forces.GoverningForce * 1.5
	if !almostEqual(res.RequiredForce, want, 1e-6) {
		t.Errorf("required force = %v, want %v", res.RequiredForce, want)
	}
	if res.Unit != "lbf" {
		t.Errorf("unit = %q, want lbf", res.Unit)
	}
}

func TestSeatLoadGovernsAtLowDrop(t *testing.T) {
	res, err := Calculate(Input{
		UnitSystem:       units.Imperial,
		P1:               20,
		P2:               19,
		ValveType:        "Globe",
		ValveSizeNominal: 4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Forces.GoverningForce != res.Forces.SeatLoad {
		t.Errorf("expected seat load to govern: governing=%v seatLoad=%v operating=%v",
			res.Forces.GoverningForce, res.Forces.SeatLoad, res.Forces.OperatingForce)
	}
}

func TestFailOpenSpringOpposes(t *testing.T) {
	fc, _ := Calculate(Input{
		UnitSystem: units.Imperial, P1: 100, P2: 40,
		ValveType: "Globe", ValveSizeNominal: 3,
		FailPosition: "Fail Close (FC)",
	})
	fo, _ := Calculate(Input{
		UnitSystem: units.Imperial, P1: 100, P2: 40,
		ValveType: "Globe", ValveSizeNominal: 3,
		FailPosition: "Fail Open (FO)",
	})
	if fo.Spring.AvailableForce >= 0 {
		t.Errorf("fail-open spring force should be negative, got %v", fo.Spring.AvailableForce)
	}
	if fo.NetForceRequired <= fc.NetForceRequired {
		t.Errorf("fail-open net force %v should exceed fail-close %v", fo.NetForceRequired, fc.NetForceRequired)
	}
}

func TestButterflyTorque(t *testing.T) {
	res, err := Calculate(Input{
		UnitSystem:       units.Imperial,
		P1:               100,
		P2:               40,
		ValveType:        "Butterfly",
		ValveSizeNominal: 6,
		ActuatorType:     "pneumatic_rotary",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindRotary {
		t.Fatalf("expected rotary result, got %s", res.Kind)
	}
	if res.Torques == nil {
		t.Fatal("expected a torque breakdown")
	}
	if res.Forces != nil || res.Spring != nil {
		t.Fatal("rotary result must not carry thrust breakdowns")
	}

	// factor = 0.3 + 6*0.1 = 0.9; operating = 0.9*60*6 = 324
	if !almostEqual(res.Torques.OperatingTorque, 324, 1e-9) {
		t.Errorf("operating torque = %v, want 324", res.Torques.OperatingTorque)
	}
	if !almostEqual(res.Torques.BreakawayTorque, 486, 1e-9) {
		t.Errorf("breakaway torque = %v, want 486", res.Torques.BreakawayTorque)
	}
	// total = 486 + 64.8 = 550.8, required = 550.8 * 1.75
	if !almostEqual(res.RequiredTorque, 550.8*1.75, 1e-6) {
		t.Errorf("required torque = %v, want %v", res.RequiredTorque, 550.8*1.75)
	}
	if res.SafetyFactorUsed != 1.75 {
		t.Errorf("safety factor = %v, want 1.75", res.SafetyFactorUsed)
	}
}

func TestBallTorqueExceedsButterfly(t *testing.T) {
	in := Input{
		UnitSystem: units.Imperial, P1: 100, P2: 40,
		ValveSizeNominal: 4, ActuatorType: "pneumatic_rotary",
	}
	in.ValveType = "Butterfly"
	bf, _ := Calculate(in)
	in.ValveType = "Ball (Segmented)"
	ball, _ := Calculate(in)
	if ball.RequiredTorque <= bf.RequiredTorque {
		t.Errorf("ball torque %v should exceed butterfly %v at equal size", ball.RequiredTorque, bf.RequiredTorque)
	}
}

func TestMetricOutputUnits(t *testing.T) {
	linear, err := Calculate(Input{
		UnitSystem: units.Metric, P1: 10, P2: 4,
		ValveType: "Globe", ValveSizeNominal: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if linear.Unit != "N" {
		t.Errorf("metric linear unit = %q, want N", linear.Unit)
	}

	rotary, err := Calculate(Input{
		UnitSystem: units.Metric, P1: 10, P2: 4,
		ValveType: "Butterfly", ValveSizeNominal: 6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rotary.Unit != "Nm" {
		t.Errorf("metric rotary unit = %q, want Nm", rotary.Unit)
	}
}

func TestInvalidInputs(t *testing.T) {
	if _, err := Calculate(Input{P1: 100, P2: 40, ValveType: "Globe"}); err == nil {
		t.Error("expected error for missing valve size")
	}
	if _, err := Calculate(Input{P1: 40, P2: 100, ValveType: "Globe", ValveSizeNominal: 2}); err == nil {
		t.Error("expected error when p2 >= p1")
	}
}

func TestUnknownActuatorDefaults(t *testing.T) {
	res, err := Calculate(Input{
		UnitSystem: units.Imperial, P1: 100, P2: 40,
		ValveType: "Globe", ValveSizeNominal: 2,
		ActuatorType: "steam_powered",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SafetyFactorUsed != 1.5 {
		t.Errorf("safety factor = %v, want 1.5 default", res.SafetyFactorUsed)
	}
}
