package cavitation

import (
	"math"
	"strings"
)

// SigmaUndefined stands in for an infinite sigma when there is no pressure
// drop across the valve. Kept finite so results stay JSON-encodable.
const SigmaUndefined = 1e9

// Limits are the five ISA RP75.23 sigma thresholds, strictly decreasing.
type Limits struct {
	Incipient    float64 `json:"sigma_i"`
	Constant     float64 `json:"sigma_c"`
	Damage       float64 `json:"sigma_d"`
	Choking      float64 `json:"sigma_ch"`
	MaxVibration float64 `json:"sigma_mv"`
}

// Level orders cavitation severity: lower values are safer.
type Level int

const (
	LevelNone Level = iota
	LevelIncipient
	LevelConstant
	LevelIncipientDamage
	LevelChoking
	LevelMaxVibration
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "No Cavitation"
	case LevelIncipient:
		return "Incipient"
	case LevelConstant:
		return "Constant"
	case LevelIncipientDamage:
		return "Incipient Damage"
	case LevelChoking:
		return "Choking"
	case LevelMaxVibration:
		return "Maximum Vibration"
	}
	return "Unknown"
}

type styleLimits struct {
	name   string
	limits Limits
}

// Ordered so unknown-style fallback is deterministic: first entry wins.
var sigmaLimits = map[string][]styleLimits{
	"Globe": {
		{"Standard", Limits{3.0, 2.0, 1.5, 1.0, 0.8}},
		{"Anti-Cavitation", Limits{4.0, 3.0, 2.5, 2.0, 1.5}},
		{"Low-Noise", Limits{3.5, 2.5, 2.0, 1.5, 1.2}},
	},
	"Ball": {
		{"Standard", Limits{2.5, 1.8, 1.3, 0.9, 0.7}},
		{"Standard V-Notch", Limits{2.5, 1.8, 1.3, 0.9, 0.7}},
		{"High-Performance", Limits{3.2, 2.2, 1.7, 1.2, 1.0}},
	},
	"Butterfly": {
		{"Standard", Limits{2.0, 1.5, 1.2, 0.8, 0.6}},
		{"High-Performance", Limits{2.8, 2.0, 1.5, 1.1, 0.9}},
	},
}

// GetLimits resolves sigma limits for a valve type and style. It always
// returns a usable set: unknown styles fuzzy-match by substring, then fall
// back to the first style for the type, then to Globe/Standard.
func GetLimits(valveType, valveStyle string) Limits {
	typeClean := strings.TrimSpace(strings.ReplaceAll(valveType, " (Segmented)", ""))

	styles, ok := sigmaLimits[typeClean]
	if !ok {
		if strings.Contains(valveType, "Ball") {
			styles = sigmaLimits["Ball"]
		} else {
			styles = sigmaLimits["Globe"]
		}
	}

	for _, s := range styles {
		if s.name == valveStyle {
			return s.limits
		}
	}
	lower := strings.ToLower(valveStyle)
	for _, s := range styles {
		key := strings.ToLower(s.name)
		if lower != "" && (strings.Contains(key, lower) || strings.Contains(lower, key)) {
			return s.limits
		}
	}
	return styles[0].limits
}

// SigmaValue computes sigma = (P1 - Pv) / (P1 - P2), clamped to >= 0.
// With no pressure drop the index is unbounded and SigmaUndefined is returned.
func SigmaValue(p1, p2, pv float64) float64 {
	if p1-p2 <= 0 {
		return SigmaUndefined
	}
	sigma := (p1 - pv) / (p1 - p2)
	if sigma < 0 || math.IsNaN(sigma) {
		return 0
	}
	return sigma
}

// DetermineLevel walks the threshold ladder top-down.
func DetermineLevel(sigma float64, limits Limits) (Level, string, string) {
	switch {
	case sigma >= limits.Incipient:
		return LevelNone, "No cavitation occurs", "Low"
	case sigma >= limits.Constant:
		return LevelIncipient, "Cavitation just detectable, no damage", "Low"
	case sigma >= limits.Damage:
		return LevelConstant, "Constant cavitation, some noise/vibration", "Medium"
	case sigma >= limits.Choking:
		return LevelIncipientDamage, "Cavitation damage may begin", "High"
	case sigma >= limits.MaxVibration:
		return LevelChoking, "Severe cavitation, significant damage risk", "Critical"
	default:
		return LevelMaxVibration, "Extreme cavitation, valve damage likely", "Critical"
	}
}

var trimRecommendations = map[Level]string{
	LevelNone:            "Standard trim materials acceptable.",
	LevelIncipient:       "Standard trim acceptable. Monitor for changes in service conditions.",
	LevelConstant:        "Standard trim likely acceptable but monitor closely. Consider hardened materials for critical applications.",
	LevelIncipientDamage: "Hardened trim materials recommended (e.g., Stellite overlay). Consider anti-cavitation design.",
	LevelChoking:         "Hardened trim essential. Multi-stage pressure reduction recommended. Consider valve redesign.",
	LevelMaxVibration:    "Multi-stage anti-cavitation valve required. Single-stage valve not recommended.",
}

func TrimRecommendation(level Level) string {
	if rec, ok := trimRecommendations[level]; ok {
		return rec
	}
	return "Consult valve manufacturer for specific recommendations."
}

// Assessment is the complete RP75.23 result. Fallback marks a degraded
// default produced from unusable inputs rather than a real analysis.
type Assessment struct {
	Sigma           float64 `json:"sigma"`
	NoPressureDrop  bool    `json:"no_pressure_drop"`
	Level           Level   `json:"-"`
	LevelName       string  `json:"level"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	Risk            string  `json:"risk"`
	Recommendation  string  `json:"recommendation"`
	DamagePotential string  `json:"damage_potential"`
	MarginToDamage  float64 `json:"margin_to_damage"`
	HasMargin       bool    `json:"has_margin"`
	Limits          Limits  `json:"limits_used"`
	Fallback        bool    `json:"fallback"`
}

// Input mirrors the other engines' request shapes.
type Input struct {
	P1         float64 `json:"p1"`
	P2         float64 `json:"p2"`
	Pv         float64 `json:"pv"`
	ValveType  string  `json:"valve_type"`
	ValveStyle string  `json:"valve_style"`
}

// Assess runs the full sigma analysis. It never fails: non-finite inputs
// produce the documented safe default with Fallback set.
func Assess(p1, p2, pv float64, valveType, valveStyle string) Assessment {
	if math.IsNaN(p1) || math.IsNaN(p2) || math.IsNaN(pv) ||
		math.IsInf(p1, 0) || math.IsInf(p2, 0) || math.IsInf(pv, 0) {
		return fallbackAssessment()
	}

	sigma := SigmaValue(p1, p2, pv)
	limits := GetLimits(valveType, valveStyle)
	level, description, risk := DetermineLevel(sigma, limits)

	out := Assessment{
		Sigma:          sigma,
		NoPressureDrop: sigma == SigmaUndefined,
		Level:          level,
		LevelName:      level.String(),
		Description:    description,
		Status:         level.String() + " Cavitation",
		Risk:           risk,
		Recommendation: TrimRecommendation(level),
		Limits:         limits,
	}
	out.DamagePotential = "Low"
	if risk == "High" || risk == "Critical" {
		out.DamagePotential = "High"
	}
	if sigma < limits.Incipient {
		out.MarginToDamage = sigma - limits.Damage
		out.HasMargin = true
	}
	return out
}

func fallbackAssessment() Assessment {
	return Assessment{
		Sigma:           2.0,
		Level:           LevelNone,
		LevelName:       "Basic Calculation",
		Description:     "Fallback calculation used",
		Status:          "No Significant Cavitation",
		Risk:            "Low",
		Recommendation:  "Standard trim likely acceptable",
		DamagePotential: "Low",
		Limits:          Limits{Incipient: 3.0, Constant: 2.0, Damage: 1.5, Choking: 1.0, MaxVibration: 0.8},
		Fallback:        true,
	}
}
