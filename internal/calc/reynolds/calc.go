package reynolds

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidPressureDrop = errors.New("pressure drop must be positive")

// FR curve points from IEC 60534-2-1. Manufacturer curves supersede these
// when available.
var (
	revPoints = []float64{10, 20, 40, 60, 100, 200, 400, 600, 1000, 2000, 4000, 6000, 10000, 20000}
	frPoints  = []float64{0.15, 0.22, 0.35, 0.45, 0.60, 0.75, 0.85, 0.90, 0.95, 0.98, 0.99, 1.00, 1.00, 1.00}
)

// ValveReynoldsNumber computes Rev = 1360 * Q * SG / (Cv * mu) with Q in gpm
// and mu in cP. Invalid Cv or viscosity assumes fully turbulent flow.
func ValveReynoldsNumber(cv, flowRateGpm, viscosityCp, specificGravity float64) float64 {
	if cv <= 0 || viscosityCp <= 0 {
		return 10000
	}
	rev := 1360 * flowRateGpm * specificGravity / (cv * viscosityCp)
	return math.Max(0, rev)
}

// FactorFromCurve interpolates FR over the standard curve. Rev >= 10000 is
// fully turbulent (FR = 1.0); Rev < 10 is pinned at the 0.15 minimum.
func FactorFromCurve(rev float64) float64 {
	if rev >= 10000 {
		return 1.0
	}
	if rev < 10 {
		return 0.15
	}
	for i := 0; i < len(revPoints)-1; i++ {
		if rev >= revPoints[i] && rev <= revPoints[i+1] {
			x1, x2 := revPoints[i], revPoints[i+1]
			y1, y2 := frPoints[i], frPoints[i+1]
			return y1 + (y2-y1)*(rev-x1)/(x2-x1)
		}
	}
	return 1.0
}

// Factor computes FR for a given Cv and flow conditions.
func Factor(cv, flowRateGpm, viscosityCp, specificGravity float64) float64 {
	return FactorFromCurve(ValveReynoldsNumber(cv, flowRateGpm, viscosityCp, specificGravity))
}

// Regime classifies the flow regime for a valve Reynolds number.
func Regime(rev float64) (regime, description string, correctionNeeded bool) {
	switch {
	case rev >= 10000:
		return "Turbulent", "Fully turbulent flow - no correction needed", false
	case rev >= 2000:
		return "Transitional", "Transition zone - moderate correction applied", true
	case rev >= 100:
		return "Laminar", "Laminar flow - significant correction required", true
	default:
		return "Highly Laminar", "Very low flow - maximum correction applied", true
	}
}

// ViscosityRecommendation summarizes the impact of the correction.
func ViscosityRecommendation(rev, fr float64) string {
	increase := (1/fr - 1) * 100
	switch {
	case rev >= 10000:
		return "Flow is fully turbulent. Standard sizing methods apply."
	case rev >= 2000:
		return fmt.Sprintf("Flow is in transition zone. Cv increased by %.1f%% due to viscous effects.", increase)
	case rev >= 100:
		return fmt.Sprintf("Laminar flow detected. Cv increased by %.1f%% to account for viscosity. Consider larger valve or heating fluid.", increase)
	default:
		return fmt.Sprintf("Highly viscous flow. Cv increased by %.1f%%. Strong recommendation to reduce viscosity or use larger valve.", increase)
	}
}

type Input struct {
	FlowRateGpm     float64 `json:"flow_rate_gpm"`
	DpPsi           float64 `json:"dp_psi"`
	SpecificGravity float64 `json:"specific_gravity"`
	ViscosityCp     float64 `json:"viscosity_cp"`
}

type Result struct {
	CvCorrected       float64 `json:"cv_corrected"`
	ReynoldsNumber    float64 `json:"reynolds_number"`
	FrFactor          float64 `json:"fr_factor"`
	Iterations        int     `json:"iterations"`
	Converged         bool    `json:"converged"`
	FlowRegime        string  `json:"flow_regime"`
	RegimeDescription string  `json:"regime_description"`
	Recommendation    string  `json:"recommendation"`
}

const (
	maxIterations = 10
	tolerance     = 0.01
)

// Calculate runs the fixed-point iteration between Cv and FR. The loop is
// hard-capped; a non-converged result is reported, not hidden.
func Calculate(in Input) (Result, error) {
	if in.DpPsi <= 0 {
		return Result{}, fmt.Errorf("reynolds correction: %w", ErrInvalidPressureDrop)
	}
	if in.FlowRateGpm <= 0 || in.SpecificGravity <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}

	cvPrev := in.FlowRateGpm * math.Sqrt(in.SpecificGravity/in.DpPsi)

	var rev, fr, cvNew float64
	for iteration := 0; iteration < maxIterations; iteration++ {
		rev = ValveReynoldsNumber(cvPrev, in.FlowRateGpm, in.ViscosityCp, in.SpecificGravity)
		fr = FactorFromCurve(rev)
		cvNew = cvPrev / fr

		if math.Abs(cvNew-cvPrev)/cvPrev < tolerance {
			regime, description, _ := Regime(rev)
			return Result{
				CvCorrected:       cvNew,
				ReynoldsNumber:    rev,
				FrFactor:          fr,
				Iterations:        iteration + 1,
				Converged:         true,
				FlowRegime:        regime,
				RegimeDescription: description,
				Recommendation:    ViscosityRecommendation(rev, fr),
			}, nil
		}
		cvPrev = cvNew
	}

	return Result{
		CvCorrected:       cvNew,
		ReynoldsNumber:    rev,
		FrFactor:          fr,
		Iterations:        maxIterations,
		Converged:         false,
		FlowRegime:        "Unknown",
		RegimeDescription: "Did not converge",
		Recommendation:    "Calculation did not converge. Check input values.",
	}, nil
}
