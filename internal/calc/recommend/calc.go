package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Opening bands per flow scenario, percent of rated travel.
var openingBands = map[string]struct{ min, max float64 }{
	"normal":    {20, 80},
	"design":    {60, 70},
	"minimum":   {20, 30},
	"maximum":   {90, 95},
	"emergency": {95, 100},
}

// Characteristic recommends an inherent flow characteristic from the
// pressure drop ratio and valve type.
func Characteristic(p1, dp float64, valveType string) string {
	dpRatio := 0.5
	if p1 > 0 {
		dpRatio = dp / p1
	}

	switch valveType {
	case "Globe":
		if dpRatio > 0.4 {
			return "Equal Percentage"
		}
		if dpRatio > 0.2 {
			return "Modified Equal Percentage"
		}
		return "Linear"
	case "Ball (Segmented)", "Ball":
		return "Equal Percentage"
	default: // Butterfly
		if dpRatio > 0.3 {
			return "Equal Percentage"
		}
		return "Linear"
	}
}

type OpeningValidation struct {
	Valid          bool    `json:"valid"`
	OpeningPercent float64 `json:"opening_percent"`
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	Recommendation string  `json:"recommendation"`
	StandardsUsed  string  `json:"standards_used"`
}

// ValidateOpening checks the required opening against the acceptable band
// for a flow scenario. Unknown scenarios use the normal band.
func ValidateOpening(calculatedCv, ratedCv float64, scenario string) OpeningValidation {
	if ratedCv <= 0 {
		return OpeningValidation{
			Status:         "Invalid",
			Message:        "Invalid rated Cv",
			Recommendation: "Check valve selection",
		}
	}

	opening := calculatedCv / ratedCv * 100
	band, ok := openingBands[scenario]
	if !ok {
		scenario = "normal"
		band = openingBands["normal"]
	}

	v := OpeningValidation{
		OpeningPercent: opening,
		StandardsUsed:  fmt.Sprintf("%.0f-%.0f%% for %s operation", band.min, band.max, scenario),
	}
	switch {
	case opening < band.min:
		v.Status = "Oversized"
		v.Message = fmt.Sprintf("Valve opening %.1f%% is below recommended minimum %.0f%%", opening, band.min)
		v.Recommendation = fmt.Sprintf("Consider smaller valve size. Poor control expected below %.0f%% opening.", band.min)
	case opening > band.max:
		v.Status = "Undersized"
		v.Message = fmt.Sprintf("Valve opening %.1f%% exceeds recommended maximum %.0f%%", opening, band.max)
		v.Recommendation = fmt.Sprintf("Select larger valve size. Valve cannot meet flow requirement above %.0f%% opening.", band.max)
	default:
		v.Valid = true
		v.Status = "Acceptable"
		v.Message = fmt.Sprintf("Valve opening %.1f%% is within recommended range %.0f-%.0f%%", opening, band.min, band.max)
		v.Recommendation = fmt.Sprintf("Good valve sizing. Operating point at %.1f%% provides good control.", opening)
	}
	return v
}

type ScenarioValidation struct {
	Scenario   string            `json:"scenario"`
	CvRequired float64           `json:"cv_required"`
	Validation OpeningValidation `json:"validation"`
}

type MultiScenarioResult struct {
	Scenarios    []ScenarioValidation `json:"scenarios"`
	OverallValid bool                 `json:"overall_valid"`
	Summary      string               `json:"summary"`
}

var scenarioMultipliers = []struct {
	name string
	mult float64
}{
	{"minimum", 0.3},
	{"normal", 1.0},
	{"design", 1.1},
	{"maximum", 1.25},
	{"emergency", 1.5},
}

// MultiScenario validates the valve across the standard flow cases, from
// turndown to emergency. Normal and design cases must pass for the
// overall result to be valid.
func MultiScenario(calculatedCv, ratedCv float64) MultiScenarioResult {
	res := MultiScenarioResult{OverallValid: true}
	for _, s := range scenarioMultipliers {
		cvRequired := calculatedCv * s.mult
		v := ValidateOpening(cvRequired, ratedCv, s.name)
		res.Scenarios = append(res.Scenarios, ScenarioValidation{
			Scenario:   s.name,
			CvRequired: cvRequired,
			Validation: v,
		})
		if !v.Valid && (s.name == "normal" || s.name == "design") {
			res.OverallValid = false
		}
	}
	res.Summary = summarize(res.Scenarios)
	return res
}

func summarize(scenarios []ScenarioValidation) string {
	var critical, warnings, acceptable []string
	for _, s := range scenarios {
		entry := fmt.Sprintf("%s: %.1f%%", s.Scenario, s.Validation.OpeningPercent)
		switch s.Validation.Status {
		case "Undersized":
			critical = append(critical, entry)
		case "Oversized":
			warnings = append(warnings, entry)
		default:
			acceptable = append(acceptable, entry)
		}
	}

	var parts []string
	if len(critical) > 0 {
		parts = append(parts, "CRITICAL: Undersized for "+strings.Join(critical, ", "))
	}
	if len(warnings) > 0 {
		parts = append(parts, "WARNING: Oversized for "+strings.Join(warnings, ", "))
	}
	if len(acceptable) > 0 {
		parts = append(parts, "ACCEPTABLE: "+strings.Join(acceptable, ", "))
	}
	if len(parts) == 0 {
		return "No validation performed"
	}
	return strings.Join(parts, "; ")
}

type AuthorityResult struct {
	Authority        float64 `json:"authority"`
	AuthorityPercent float64 `json:"authority_percent"`
	Assessment       string  `json:"assessment"`
	Recommendation   string  `json:"recommendation"`
}

// Authority computes valve authority N = valve dp / total system dp.
func Authority(valveDp, systemDp float64) AuthorityResult {
	if systemDp <= 0 {
		return AuthorityResult{Assessment: "Invalid system data"}
	}

	n := valveDp / systemDp
	res := AuthorityResult{
		Authority:        n,
		AuthorityPercent: n * 100,
		Recommendation:   "Authority is adequate",
	}
	switch {
	case n >= 0.5:
		res.Assessment = "Excellent - Good control throughout range"
	case n >= 0.3:
		res.Assessment = "Good - Acceptable control characteristics"
	case n >= 0.2:
		res.Assessment = "Fair - Some control degradation at low flows"
	default:
		res.Assessment = "Poor - Significant control problems expected"
	}
	if n < 0.3 {
		res.Recommendation = "Increase valve dp or reduce system losses"
	}
	return res
}

type SafetyFactorResult struct {
	RecommendedFactor float64 `json:"recommended_factor"`
	Justification     string  `json:"justification"`
	Category          string  `json:"category"`
}

var serviceAdders = map[string]float64{
	"continuous": 0.0,
	"batch":      0.1,
	"emergency":  0.5,
	"safety":     0.8,
}

var criticalityAdders = map[string]float64{
	"low":      0.0,
	"medium":   0.1,
	"high":     0.2,
	"critical": 0.4,
}

var expansionAdders = map[string]float64{
	"none":        0.0,
	"moderate":    0.2,
	"significant": 0.4,
}

// SafetyFactor builds a sizing safety factor from a 1.1 base plus
// service, criticality, and expansion adders, bounded to [1.1, 2.0].
func SafetyFactor(serviceType, criticality, expansion string) SafetyFactorResult {
	service, ok := serviceAdders[serviceType]
	if !ok {
		service = 0.1
	}
	crit, ok := criticalityAdders[criticality]
	if !ok {
		crit = 0.1
	}
	exp := expansionAdders[expansion]

	total := 1.1 + service + crit + exp
	total = math.Max(1.1, math.Min(2.0, total))
	total = math.Round(total*100) / 100

	category := "Standard"
	if total > 1.5 {
		category = "Conservative"
	} else if total > 1.25 {
		category = "Moderate"
	}

	return SafetyFactorResult{
		RecommendedFactor: total,
		Justification: fmt.Sprintf("Base: 1.1, Service: +%.1f, Criticality: +%.1f, Expansion: +%.1f",
			service, crit, exp),
		Category: category,
	}
}

// SizingFactors lists the stock safety factors by application, sorted by
// factor for stable output.
func SizingFactors() []SizingFactor {
	factors := []SizingFactor{
		{"general_service", 1.1, "General process applications with stable conditions"},
		{"critical_service", 1.25, "Critical process control, safety systems"},
		{"uncertain_conditions", 1.3, "When process conditions are not well defined"},
		{"future_expansion", 1.5, "Allow for future plant expansion or modifications"},
		{"emergency_service", 2.0, "Emergency shutdown or blowdown systems"},
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].Factor < factors[j].Factor })
	return factors
}

type SizingFactor struct {
	Application string  `json:"application"`
	Factor      float64 `json:"factor"`
	Description string  `json:"description"`
}
