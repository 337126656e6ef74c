package liquid

import (
	"errors"
	"fmt"
	"math"

	"Vortex/internal/calc/cavitation"
	"Vortex/internal/calc/reynolds"
	"Vortex/internal/units"
	"Vortex/internal/valvedata"
)

// ErrInvalidPressureDrop reports a non-positive sizing pressure drop: the
// inlet pressure is at or below FF*Pv, or P2 >= P1.
var ErrInvalidPressureDrop = errors.New("sizing pressure drop must be positive")

type Input struct {
	UnitSystem units.System `json:"unit_system"`

	P1        float64 `json:"p1"`
	P2        float64 `json:"p2"`
	Pv        float64 `json:"pv"`
	Pc        float64 `json:"pc"`
	FlowRate  float64 `json:"flow_rate"`
	Rho       float64 `json:"rho"`       // kg/m3 (Metric) or SG (Imperial)
	Viscosity float64 `json:"viscosity"` // cP, defaults to 1.0

	ValveType           string  `json:"valve_type"`
	ValveStyle          string  `json:"valve_style"`
	ValveSizeNominal    int     `json:"valve_size_nominal"`
	ValveOpeningPercent float64 `json:"valve_opening_percent"` // defaults to 70

	FL      float64         `json:"fl"` // defaults to 0.9
	Kc      float64         `json:"kc"` // defaults to 0.7
	FLCurve valvedata.Curve `json:"fl_curve,omitempty"`
	KcCurve valvedata.Curve `json:"kc_curve,omitempty"`
}

type Result struct {
	Cv             float64 `json:"cv"`
	CvBasic        float64 `json:"cv_basic"`
	ReynoldsFactor float64 `json:"reynolds_factor"`
	ReynoldsNumber float64 `json:"reynolds_number"`
	FFFactor       float64 `json:"ff_factor"`
	IsFlashing     bool    `json:"is_flashing"`

	CavitationIndex    float64               `json:"cavitation_index"`
	Sigma              cavitation.Assessment `json:"sigma_analysis"`
	CavitationStatus   string                `json:"cavitation_status"`
	TrimRecommendation string                `json:"trim_recommendation"`

	DpSizing         float64 `json:"dp_sizing"`
	DpAllowable      float64 `json:"dp_allowable"`
	ValveOpeningUsed float64 `json:"valve_opening_used"`
	KcUsed           float64 `json:"kc_used"`
	FLUsed           float64 `json:"fl_used"`
}

// FFFactor computes the liquid critical pressure ratio factor per ISA S75.01,
// bounded to [0.6, 0.96]. A non-positive Pc yields the conservative default.
func FFFactor(pv, pc float64) float64 {
	if pc <= 0 {
		return 0.96
	}
	ratio := pv / pc
	if ratio > 1.0 {
		ratio = 1.0
	}
	ff := 0.96 - 0.28*math.Sqrt(ratio)
	return math.Max(0.6, math.Min(0.96, ff))
}

// Calculate sizes a liquid valve per ISA S75.01 with choked-flow clamping,
// a single-pass Reynolds correction seeded from the basic Cv, and the
// ISA RP75.23 sigma analysis.
func Calculate(in Input) (Result, error) {
	p1 := units.Pressure(in.P1, in.UnitSystem, "psi")
	p2 := units.Pressure(in.P2, in.UnitSystem, "psi")
	pv := units.Pressure(in.Pv, in.UnitSystem, "psi")
	pc := units.Pressure(in.Pc, in.UnitSystem, "psi")
	flowRate := units.FlowLiquid(in.FlowRate, in.UnitSystem, "gpm")

	gf := in.Rho
	if in.UnitSystem == units.Metric {
		gf = in.Rho / 1000.0
	}
	if gf <= 0 {
		return Result{}, fmt.Errorf("invalid density")
	}

	opening := in.ValveOpeningPercent
	if opening <= 0 {
		opening = 70
	}
	fl := in.FL
	if fl <= 0 {
		fl = 0.9
	}
	kc := in.Kc
	if kc <= 0 {
		kc = 0.7
	}
	if v, ok := valvedata.Interpolate(opening, in.FLCurve); ok {
		fl = v
	}
	if v, ok := valvedata.Interpolate(opening, in.KcCurve); ok {
		kc = v
	}

	dp := p1 - p2
	ff := FFFactor(pv, pc)

	dpAllowable := fl * fl * (p1 - ff*pv)
	dpSizing := math.Min(dp, dpAllowable)
	if dpSizing <= 0 {
		return Result{}, fmt.Errorf("liquid sizing: %w (check inlet/outlet pressures)", ErrInvalidPressureDrop)
	}

	cvBasic := flowRate * math.Sqrt(gf/dpSizing)

	viscosity := in.Viscosity
	if viscosity <= 0 {
		viscosity = 1.0
	}
	rev := reynolds.ValveReynoldsNumber(cvBasic, flowRate, viscosity, gf)
	fr := reynolds.FactorFromCurve(rev)
	cv := cvBasic / fr

	sigma := cavitation.Assess(p1, p2, pv, in.ValveType, in.ValveStyle)

	sigmaBasic := 0.0
	if dp > 0 {
		sigmaBasic = (p1 - pv) / dp
	}

	return Result{
		Cv:                 cv,
		CvBasic:            cvBasic,
		ReynoldsFactor:     fr,
		ReynoldsNumber:     rev,
		FFFactor:           ff,
		IsFlashing:         p2 < pv,
		CavitationIndex:    sigmaBasic,
		Sigma:              sigma,
		CavitationStatus:   sigma.Status,
		TrimRecommendation: sigma.Recommendation,
		DpSizing:           dpSizing,
		DpAllowable:        dpAllowable,
		ValveOpeningUsed:   opening,
		KcUsed:             kc,
		FLUsed:             fl,
	}, nil
}
