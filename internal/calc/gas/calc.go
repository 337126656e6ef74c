package gas

import (
	"errors"
	"fmt"
	"math"

	"Vortex/internal/units"
	"Vortex/internal/valvedata"
)

// ErrDegenerateEquation reports a zero denominator in the Cv formula,
// which means the inputs cannot produce a meaningful size.
var ErrDegenerateEquation = errors.New("cv equation denominator is zero")

type Input struct {
	UnitSystem units.System `json:"unit_system"`

	P1       float64 `json:"p1"`
	P2       float64 `json:"p2"`
	T1       float64 `json:"t1"`
	FlowRate float64 `json:"flow_rate"`

	MW float64 `json:"mw"`
	K  float64 `json:"k"`
	Z  float64 `json:"z"`

	GasViscosity float64 `json:"gas_viscosity"` // cP, defaults to 0.018 (air)

	ValveType           string  `json:"valve_type"`
	ValveStyle          string  `json:"valve_style"`
	ValveOpeningPercent float64 `json:"valve_opening_percent"` // defaults to 70
	Xt                  float64 `json:"xt"`                    // overrides the table value when > 0
}

type Result struct {
	Cv                      float64 `json:"cv"`
	IsChoked                bool    `json:"is_choked"`
	ExpansionFactorY        float64 `json:"expansion_factor_y"`
	PressureDropRatioX      float64 `json:"pressure_drop_ratio_x"`
	ChokedPressureDropRatio float64 `json:"choked_pressure_drop_ratio"`
	FlowRegime              string  `json:"flow_regime"`

	MassFlowRate   float64 `json:"mass_flow_rate"`
	SonicVelocity  float64 `json:"sonic_velocity"`
	GasVelocity    float64 `json:"gas_velocity"`
	MachNumber     float64 `json:"mach_number"`
	ReynoldsNumber float64 `json:"reynolds_number"`
	GasDensity     float64 `json:"gas_density"`

	ChokedMassFlow  float64 `json:"choked_mass_flow"`
	ChokingWarning  string  `json:"choking_warning,omitempty"`
	VelocityWarning string  `json:"velocity_warning,omitempty"`

	ValveOpeningUsed float64 `json:"valve_opening_used"`
	XtUsed           float64 `json:"xt_used"`
}

// Calculate sizes a gas/vapor valve per ISA S75.01 / IEC 60534-2-1 with
// choked-flow detection. Velocity, Mach and Reynolds figures are rough
// engineering estimates for advisory use, not sizing-critical values.
func Calculate(in Input) (Result, error) {
	p1 := units.Pressure(in.P1, in.UnitSystem, "psia")
	p2 := units.Pressure(in.P2, in.UnitSystem, "psia")
	t1 := units.Temperature(in.T1, in.UnitSystem, "R")
	flowScfh := units.FlowGas(in.FlowRate, in.UnitSystem, "scfh")

	if p1 <= 0 || p1 <= p2 {
		return Result{}, fmt.Errorf("inlet pressure must exceed outlet pressure")
	}
	if in.MW <= 0 || in.K <= 0 || in.Z <= 0 || t1 <= 0 {
		return Result{}, fmt.Errorf("invalid gas properties")
	}

	opening := in.ValveOpeningPercent
	if opening <= 0 {
		opening = 70
	}

	xt := in.Xt
	if xt <= 0 {
		specifics := valvedata.Get(in.ValveType, in.ValveStyle, "", "")
		xt = specifics.Xt
		if v, ok := valvedata.Interpolate(opening, specifics.XtCurve); ok {
			xt = v
		}
	}

	fk := in.K / 1.40
	x := (p1 - p2) / p1
	xChoked := xt * fk

	xSizing := x
	isChoked := false
	flowRegime := "Subsonic"
	if x >= xChoked {
		xSizing = xChoked
		isChoked = true
		flowRegime = "Choked (Critical)"
	}

	y := 1.0
	if xSizing > 0 {
		y = 1 - xSizing/(3*fk*xt)
		y = math.Max(0.1, math.Min(1.0, y))
	}

	// 1 scf of ideal gas weighs MW/379.3 lb at standard conditions.
	massFlow := flowScfh * in.MW / 379.3

	denominator := 1360 * y * p1 * math.Sqrt(xSizing/(in.MW*t1*in.Z))
	if denominator == 0 {
		return Result{}, fmt.Errorf("gas sizing: %w", ErrDegenerateEquation)
	}
	cv := massFlow / denominator

	sonicVelocity := math.Sqrt(in.K * 1544 * t1 / in.MW)

	gasVelocity, machNumber := 0.0, 0.0
	if cv > 0 {
		valveArea := cv / 20 // approximate flow area (in²) from Cv
		gasVelocity = flowScfh / (valveArea * 3600)
		machNumber = gasVelocity / sonicVelocity
	}

	gasDensity := (p1 * in.MW) / (10.73 * t1)
	gasViscosity := in.GasViscosity
	if gasViscosity <= 0 {
		gasViscosity = 0.018
	}
	reynoldsNumber := 0.0
	if cv > 0 {
		characteristicLength := math.Sqrt(cv / 30) // inches
		reynoldsNumber = (gasDensity * gasVelocity * characteristicLength) / (gasViscosity * 6.72e-4)
	}

	out := Result{
		Cv:                      cv,
		IsChoked:                isChoked,
		ExpansionFactorY:        y,
		PressureDropRatioX:      x,
		ChokedPressureDropRatio: xChoked,
		FlowRegime:              flowRegime,
		MassFlowRate:            massFlow,
		SonicVelocity:           sonicVelocity,
		GasVelocity:             gasVelocity,
		MachNumber:              machNumber,
		ReynoldsNumber:          reynoldsNumber,
		GasDensity:              gasDensity,
		ValveOpeningUsed:        opening,
		XtUsed:                  xt,
	}

	if isChoked {
		out.ChokedMassFlow = chokedMassFlow(p1, t1, in.MW, in.K, xt)
		out.ChokingWarning = "Flow is choked. Valve cannot pass more flow regardless of further pressure drop."
	}
	if machNumber > 0.3 {
		out.VelocityWarning = fmt.Sprintf("High gas velocity (Mach %.2f). Consider larger valve or multi-stage design.", machNumber)
	}
	return out, nil
}

// chokedMassFlow approximates the maximum flow from critical-pressure-ratio
// theory. Full accuracy needs valve-specific geometry.
func chokedMassFlow(p1, t1, mw, k, xt float64) float64 {
	cChoked := math.Sqrt(k * math.Pow(2/(k+1), (k+1)/(k-1)))
	return xt * cChoked * p1 * math.Sqrt(mw/t1)
}

// PressureRecovery describes recovery of pressure downstream of the vena
// contracta for gas service.
type PressureRecovery struct {
	Status                string  `json:"recovery_status"`
	VenaContractaPressure float64 `json:"vena_contracta_pressure"`
	RecoveryRatio         float64 `json:"pressure_recovery_ratio"`
	CriticalRatio         float64 `json:"critical_pressure_ratio"`
}

func AnalyzePressureRecovery(p1, p2, k, xt float64) PressureRecovery {
	x := (p1 - p2) / p1
	xCritical := xt * (k / 1.4)

	if x >= xCritical {
		return PressureRecovery{
			Status:                "No pressure recovery - choked flow",
			VenaContractaPressure: p1 * (1 - xCritical),
			CriticalRatio:         xCritical,
		}
	}
	ratio := 1 - x/xCritical
	return PressureRecovery{
		Status:                fmt.Sprintf("Partial pressure recovery - %.1f%%", ratio*100),
		VenaContractaPressure: p2 + (p1-p2)*ratio,
		RecoveryRatio:         ratio,
		CriticalRatio:         xCritical,
	}
}

// Validation carries advisory warnings attached to a sizing result. These
// never block the calculation.
type Validation struct {
	Valid             bool     `json:"valid"`
	Warnings          []string `json:"warnings"`
	Recommendations   []string `json:"recommendations"`
	OverallAssessment string   `json:"overall_assessment"`
}

func Validate(in Input, res Result) Validation {
	var warnings, recommendations []string

	switch {
	case res.MachNumber > 0.7:
		warnings = append(warnings, "Extremely high gas velocity - significant pressure losses expected")
		recommendations = append(recommendations, "Consider multi-stage pressure reduction or larger valve")
	case res.MachNumber > 0.3:
		warnings = append(warnings, "High gas velocity may cause additional pressure losses")
		recommendations = append(recommendations, "Verify downstream piping design for high velocity")
	}

	if res.IsChoked {
		warnings = append(warnings, "Flow is choked - valve cannot handle flow increases")
		recommendations = append(recommendations, "Use choked flow conditions for safety calculations")
	}

	if res.ReynoldsNumber < 10000 {
		warnings = append(warnings, "Low Reynolds number - flow may not be fully turbulent")
		recommendations = append(recommendations, "Consider viscosity effects on valve performance")
	}

	if in.T1 < -50 {
		warnings = append(warnings, "Very low temperature - material selection critical")
		recommendations = append(recommendations, "Verify low-temperature material compatibility")
	} else if in.T1 > 500 {
		warnings = append(warnings, "High temperature service - thermal effects important")
		recommendations = append(recommendations, "Consider thermal expansion and high-temp materials")
	}

	if in.P2 > 0 && in.P1/in.P2 > 10 {
		warnings = append(warnings, "Very high pressure ratio - consider multi-stage design")
		recommendations = append(recommendations, "Multi-stage valve recommended for pressure ratios > 10:1")
	}

	out := Validation{
		Valid:             len(warnings) == 0,
		Warnings:          warnings,
		Recommendations:   recommendations,
		OverallAssessment: "Acceptable",
	}
	if len(warnings) > 0 {
		out.OverallAssessment = "Caution Required"
	}
	return out
}
