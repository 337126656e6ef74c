package actuator

import (
	"fmt"
	"math"

	"Vortex/internal/units"
)

// Kind discriminates the output: globe valves need thrust, rotary valves
// need torque. Never both.
type Kind string

const (
	KindLinear Kind = "linear"
	KindRotary Kind = "rotary"
)

var safetyFactors = map[string]float64{
	"pneumatic_spring_diaphragm": 1.5,
	"pneumatic_piston":           1.5,
	"electric_linear":            2.0,
	"pneumatic_rotary":           1.75,
	"electric_rotary":            2.0,
	"hydraulic":                  1.3,
}

// Effective area (in²) to spring rate (lbf/in).
var springRates = []struct{ size, rate float64 }{
	{25, 150},
	{50, 300},
	{100, 600},
	{200, 1200},
	{400, 2400},
}

var stemDiameters = map[int]float64{1: 0.5, 2: 0.75, 3: 1.0, 4: 1.25, 6: 1.5, 8: 2.0}

type Input struct {
	UnitSystem units.System `json:"unit_system"`

	P1 float64 `json:"p1"`
	P2 float64 `json:"p2"`

	ValveType        string `json:"valve_type"`
	ValveSizeNominal int    `json:"valve_size_nominal"`

	FailPosition string `json:"fail_position"` // "Fail Close (FC)" or "Fail Open (FO)"
	ActuatorType string `json:"actuator_type"` // defaults to pneumatic_spring_diaphragm
}

type ForceBreakdown struct {
	SeatArea        float64 `json:"seat_area"`
	StemArea        float64 `json:"stem_area"`
	UnbalancedForce float64 `json:"unbalanced_force"`
	StemForce       float64 `json:"stem_force"`
	PackingFriction float64 `json:"packing_friction"`
	SeatLoad        float64 `json:"seat_load"`
	OperatingForce  float64 `json:"operating_force"`
	ShutoffForce    float64 `json:"shutoff_force"`
	GoverningForce  float64 `json:"governing_force"`
}

type SpringAnalysis struct {
	Rate           float64 `json:"spring_rate"`
	ForceMax       float64 `json:"spring_force_max"`
	ForceMin       float64 `json:"spring_force_min"`
	AvailableForce float64 `json:"available_spring_force"`
	Energy         float64 `json:"spring_energy"`
}

type TorqueBreakdown struct {
	TorqueFactor    float64 `json:"torque_factor"`
	OperatingTorque float64 `json:"operating_torque"`
	BreakawayTorque float64 `json:"breakaway_torque"`
	BearingFriction float64 `json:"bearing_friction"`
	TotalTorque     float64 `json:"total_torque"`
	GoverningTorque float64 `json:"governing_torque"`
}

type Result struct {
	Kind             Kind    `json:"kind"`
	RequiredForce    float64 `json:"required_force"`
	RequiredTorque   float64 `json:"required_torque"`
	SafetyFactorUsed float64 `json:"safety_factor_used"`
	Recommendation   string  `json:"actuator_recommendation"`
	Unit             string  `json:"unit"`

	Forces  *ForceBreakdown  `json:"force_breakdown,omitempty"`
	Spring  *SpringAnalysis  `json:"spring_analysis,omitempty"`
	Torques *TorqueBreakdown `json:"torque_breakdown,omitempty"`

	NetForceRequired float64 `json:"net_force_required,omitempty"`
}

func Calculate(in Input) (Result, error) {
	if in.ValveSizeNominal <= 0 {
		return Result{}, fmt.Errorf("invalid valve size")
	}
	if in.P1 <= in.P2 {
		return Result{}, fmt.Errorf("inlet pressure must exceed outlet pressure")
	}

	actuatorType := in.ActuatorType
	if actuatorType == "" {
		actuatorType = "pneumatic_spring_diaphragm"
	}
	failPosition := in.FailPosition
	if failPosition == "" {
		failPosition = "Fail Close (FC)"
	}
	safetyFactor, ok := safetyFactors[actuatorType]
	if !ok {
		safetyFactor = 1.5
	}

	if in.ValveType == "Globe" {
		return sizeLinear(in, actuatorType, failPosition, safetyFactor), nil
	}
	return sizeRotary(in, actuatorType, safetyFactor), nil
}

func sizeLinear(in Input, actuatorType, failPosition string, safetyFactor float64) Result {
	size := float64(in.ValveSizeNominal)
	p1 := units.Pressure(in.P1, in.UnitSystem, "psi")
	p2 := units.Pressure(in.P2, in.UnitSystem, "psi")
	dp := p1 - p2

	seatArea := math.Pi * (size / 2) * (size / 2)
	stemDiameter, ok := stemDiameters[in.ValveSizeNominal]
	if !ok {
		stemDiameter = 1.0
	}
	stemArea := math.Pi * (stemDiameter / 2) * (stemDiameter / 2)

	unbalanced := seatArea * dp
	stemForce := stemArea * p1
	packingFriction := 0.15 * stemForce
	seatLoad := seatArea * 50 // 50 psi seating stress for tight shutoff

	operating := unbalanced + stemForce + packingFriction
	shutoff := math.Max(operating, seatLoad)

	forces := ForceBreakdown{
		SeatArea:        seatArea,
		StemArea:        stemArea,
		UnbalancedForce: unbalanced,
		StemForce:       stemForce,
		PackingFriction: packingFriction,
		SeatLoad:        seatLoad,
		OperatingForce:  operating,
		ShutoffForce:    shutoff,
		GoverningForce:  shutoff,
	}

	stroke := size * 0.25
	actuatorArea := shutoff / 60 // assumes 60 psi supply
	spring := springForce(actuatorArea, stroke, failPosition)

	var netRequired float64
	if failPosition == "Fail Close (FC)" {
		netRequired = shutoff - spring.AvailableForce
	} else {
		netRequired = shutoff + math.Abs(spring.AvailableForce)
	}

	required := math.Max(netRequired, shutoff) * safetyFactor

	unit := "lbf"
	if in.UnitSystem == units.Metric {
		required = units.Force(required, units.Imperial, "N")
		unit = "N"
	}

	var recommendation string
	switch actuatorType {
	case "pneumatic_spring_diaphragm":
		recommendation = fmt.Sprintf("Pneumatic spring-diaphragm actuator with minimum %.0f %s thrust capacity. Effective area >= %.0f cm² at 6 bar supply.", required, unit, required/87)
	case "pneumatic_piston":
		recommendation = fmt.Sprintf("Pneumatic piston actuator with minimum %.0f %s thrust capacity.", required, unit)
	default:
		recommendation = fmt.Sprintf("Electric linear actuator with minimum %.0f %s thrust capacity and %.1f safety factor.", required, unit, safetyFactor)
	}

	return Result{
		Kind:             KindLinear,
		RequiredForce:    required,
		SafetyFactorUsed: safetyFactor,
		Recommendation:   recommendation,
		Unit:             unit,
		Forces:           &forces,
		Spring:           &spring,
		NetForceRequired: netRequired,
	}
}

func springForce(actuatorArea, stroke float64, failPosition string) SpringAnalysis {
	rate := springRates[len(springRates)-1].rate
	for _, band := range springRates {
		if actuatorArea <= band.size {
			rate = band.rate
			break
		}
	}

	forceMax := rate * stroke
	available := forceMax
	if failPosition != "Fail Close (FC)" {
		// Spring opposes closing for fail-open builds.
		available = -forceMax
	}

	return SpringAnalysis{
		Rate:           rate,
		ForceMax:       forceMax,
		ForceMin:       forceMax * 0.2,
		AvailableForce: available,
		Energy:         0.5 * rate * stroke * stroke,
	}
}

func sizeRotary(in Input, actuatorType string, safetyFactor float64) Result {
	size := float64(in.ValveSizeNominal)
	p1 := units.Pressure(in.P1, in.UnitSystem, "psi")
	p2 := units.Pressure(in.P2, in.UnitSystem, "psi")
	dp := p1 - p2

	var torqueFactor, breakawayMultiplier float64
	if in.ValveType == "Butterfly" {
		torqueFactor = 0.3 + size*0.1
		breakawayMultiplier = 1.5
	} else {
		torqueFactor = 0.5 + size*0.15
		breakawayMultiplier = 2.0
	}

	operating := torqueFactor * dp * size
	breakaway := operating * breakawayMultiplier
	bearingFriction := 0.2 * operating
	total := breakaway + bearingFriction

	torques := TorqueBreakdown{
		TorqueFactor:    torqueFactor,
		OperatingTorque: operating,
		BreakawayTorque: breakaway,
		BearingFriction: bearingFriction,
		TotalTorque:     total,
		GoverningTorque: total,
	}

	required := total * safetyFactor

	unit := "ft-lbf"
	if in.UnitSystem == units.Metric {
		required = units.Torque(required, units.Imperial, "Nm")
		unit = "Nm"
	}

	var recommendation string
	if actuatorType == "pneumatic_rotary" || actuatorType == "pneumatic_spring_diaphragm" || actuatorType == "pneumatic_piston" {
		recommendation = fmt.Sprintf("Pneumatic rack-and-pinion or vane actuator with minimum %.0f %s output torque and %.1f safety factor.", required, unit, safetyFactor)
	} else {
		recommendation = fmt.Sprintf("Electric rotary actuator with minimum %.0f %s output torque and %.1f safety factor.", required, unit, safetyFactor)
	}

	return Result{
		Kind:             KindRotary,
		RequiredTorque:   required,
		SafetyFactorUsed: safetyFactor,
		Recommendation:   recommendation,
		Unit:             unit,
		Torques:          &torques,
	}
}
