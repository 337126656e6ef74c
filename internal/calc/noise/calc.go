package noise

import (
	"math"

	"Vortex/internal/units"
)

type Method string

const (
	MethodSimplified Method = "simplified"
	MethodIEC        Method = "iec_60534_8_3"
)

// Input is the process snapshot feeding either prediction model.
type Input struct {
	FluidType  string       `json:"fluid_type"` // "Liquid" or "Gas"
	UnitSystem units.System `json:"unit_system"`

	P1       float64 `json:"p1"`
	P2       float64 `json:"p2"`
	T1       float64 `json:"t1"`
	FlowRate float64 `json:"flow_rate"`
	Pv       float64 `json:"pv"`

	MW float64 `json:"mw"`
	K  float64 `json:"k"`

	ValveType        string `json:"valve_type"`
	ValveSizeNominal int    `json:"valve_size_nominal"`
}

// Sizing carries the sizing-engine outputs the noise models consume.
// Sigma <= 0 is treated as unknown and defaults to 1.0.
type Sizing struct {
	Cv         float64 `json:"cv"`
	Sigma      float64 `json:"sigma"`
	SigmaLevel string  `json:"sigma_level"`
	IsFlashing bool    `json:"is_flashing"`
	IsChoked   bool    `json:"is_choked"`
}

type Result struct {
	TotalNoiseDBA  float64 `json:"total_noise_dba"`
	Recommendation string  `json:"noise_recommendation"`
	Method         string  `json:"method"`
	Warning        string  `json:"warning,omitempty"`

	// IEC diagnostics, zero for the simplified model.
	MechanicalStreamPower float64 `json:"mechanical_stream_power,omitempty"`
	AcousticEfficiency    float64 `json:"acoustic_efficiency,omitempty"`
	SoundPowerLevel       float64 `json:"sound_power_level,omitempty"`
	TransmissionLoss      float64 `json:"transmission_loss,omitempty"`
	PeakFrequency         float64 `json:"peak_frequency,omitempty"`
	FlowRegime            string  `json:"flow_regime,omitempty"`
	MachNumber            float64 `json:"mach_number,omitempty"`
	SpeedOfSound          float64 `json:"speed_of_sound,omitempty"`
}

// Predict runs the selected model. It never fails for a valid sizing result;
// missing optional fields fall back to documented defaults.
func Predict(in Input, sz Sizing, method Method) Result {
	if method == MethodIEC {
		return predictIEC(in, sz)
	}
	return predictSimplified(in, sz)
}

var transmissionLossByType = map[string]float64{
	"Globe":            -5,
	"Ball (Segmented)": -10,
	"Butterfly":        -15,
}

func predictSimplified(in Input, sz Sizing) Result {
	dp := in.P1 - in.P2
	cv := sz.Cv

	var baseNoise float64
	if in.FluidType == "Liquid" {
		switch {
		case sz.SigmaLevel == "Choking":
			baseNoise = 85 + 10*math.Log10(math.Max(1, dp*cv))
		case sz.SigmaLevel == "Incipient Damage" || sz.SigmaLevel == "Constant":
			baseNoise = 75 + 10*math.Log10(math.Max(1, dp*cv))
		case sz.IsFlashing:
			baseNoise = 85 + 10*math.Log10(math.Max(1, dp*cv))
		default:
			baseNoise = 60 + 10*math.Log10(math.Max(1, dp*cv))
		}
	} else {
		machProxy := 0.5
		if in.P1 > 0 {
			machProxy = 0.1 + (dp/in.P1)*0.8
		}
		baseNoise = 70 + 20*math.Log10(math.Max(1, machProxy*1000)) + 10*math.Log10(math.Max(1, cv))
	}

	transmissionLoss := transmissionLossByType[in.ValveType]
	pipeCorrection := -5.0

	total := baseNoise + transmissionLoss + pipeCorrection
	total = math.Max(50, math.Min(120, total))

	var recommendation string
	switch {
	case total > 110:
		recommendation = "SIMPLIFIED ESTIMATE: Extreme noise level predicted. Professional IEC 60534-8-3 analysis required."
	case total > 85:
		recommendation = "SIMPLIFIED ESTIMATE: High noise level predicted. Consider low-noise trim or acoustic treatment."
	default:
		recommendation = "SIMPLIFIED ESTIMATE: Acceptable noise level predicted. Standard trim likely suitable."
	}

	return Result{
		TotalNoiseDBA:  total,
		Recommendation: recommendation,
		Method:         "Simplified Empirical Estimation",
		Warning:        "This is a simplified estimate. For critical applications, use IEC 60534-8-3 compliant software.",
	}
}

func predictIEC(in Input, sz Sizing) Result {
	size := in.ValveSizeNominal
	if size <= 0 {
		size = 2
	}
	dNom := float64(size) * 25.4 // mm

	if in.FluidType == "Liquid" {
		return liquidIEC(in, sz, dNom)
	}
	return gasIEC(in, sz, dNom)
}

func liquidIEC(in Input, sz Sizing, dNom float64) Result {
	dp := in.P1 - in.P2

	// Mechanical stream power in Watts from flow x pressure drop.
	var wm float64
	if in.UnitSystem == units.Metric {
		wm = (in.FlowRate * dp * 100000) / 3600
	} else {
		wm = in.FlowRate * dp * 0.0631
	}

	sigma := sz.Sigma
	if sigma <= 0 {
		sigma = 1.0
	}

	var eta float64
	switch {
	case sz.IsFlashing:
		eta = 0.001
	case sigma < 1.5:
		eta = 0.0001 * sigma * sigma
	default:
		eta = 0.00001
	}

	lw := 60.0
	if wm > 0 && eta > 0 {
		lw = 10*math.Log10(eta*wm) + 120 // dB re 1 pW
	}

	tl := 15 + 10*math.Log10(math.Max(1, dNom/25))
	lp := lw - tl - 8 // 8 dB spreading to 1 m
	lp = math.Max(40, math.Min(140, lp))

	fp := 1000.0
	if !sz.IsFlashing {
		fp = 2000 + 500*math.Log10(math.Max(1, dp))
	}

	regime := "Non-cavitating"
	if sz.IsFlashing {
		regime = "Flashing"
	} else if sigma < 2.0 {
		regime = "Cavitating"
	}

	return Result{
		TotalNoiseDBA:         lp,
		Recommendation:        iecRecommendation(lp, "Multi-stage pressure reduction required.", "Low-noise trim and acoustic treatment recommended.", "Standard design suitable."),
		Method:                "IEC 60534-8-3 Liquid Model",
		MechanicalStreamPower: wm,
		AcousticEfficiency:    eta,
		SoundPowerLevel:       lw,
		TransmissionLoss:      tl,
		PeakFrequency:         fp,
		FlowRegime:            regime,
	}
}

func gasIEC(in Input, sz Sizing, dNom float64) Result {
	dp := in.P1 - in.P2

	k := in.K
	if k <= 1 {
		k = 1.4
	}

	t1K := units.Temperature(in.T1, in.UnitSystem, "K")

	const r = 8314.5 // J/(kmol*K)
	mw := in.MW
	if mw <= 0 {
		mw = 28.97
	}
	c := math.Sqrt(k * r * t1K / mw)

	x := 0.5
	if in.P1 > 0 {
		x = dp / in.P1
	}
	xCritical := math.Pow(2/(k+1), k/(k-1))

	regime := "Subsonic"
	xEff := x
	if x >= xCritical {
		regime = "Choked"
		xEff = xCritical
	}

	var wm float64
	if in.UnitSystem == units.Metric {
		wm = (in.FlowRate * in.P1 * 100000 * xEff) / 3600
	} else {
		wm = (in.FlowRate * in.P1 * 6895 * xEff) / (3600 * 35.31)
	}

	var eta, mach float64
	if regime == "Choked" {
		eta = 0.01
		mach = math.Sqrt(2 * xEff / (k - 1))
	} else {
		mach = math.Sqrt(2 * xEff / (k - 1))
		eta = 0.001 * math.Pow(mach, 4)
	}

	lw := 60.0
	if wm > 0 && eta > 0 {
		lw = 10*math.Log10(eta*wm) + 120
	}

	tl := 10 + 5*math.Log10(math.Max(1, dNom/25))
	lp := lw - tl - 8
	lp = math.Max(40, math.Min(140, lp))

	fp := c / (2 * dNom / 1000)

	return Result{
		TotalNoiseDBA:         lp,
		Recommendation:        iecRecommendation(lp, "Multi-stage valve or silencer required.", "Low-noise trim or downstream silencer recommended.", "Acceptable noise level for gas service."),
		Method:                "IEC 60534-8-3 Gas Model",
		MechanicalStreamPower: wm,
		AcousticEfficiency:    eta,
		SoundPowerLevel:       lw,
		TransmissionLoss:      tl,
		PeakFrequency:         fp,
		FlowRegime:            regime,
		MachNumber:            mach,
		SpeedOfSound:          c,
	}
}

func iecRecommendation(lp float64, extreme, high, acceptable string) string {
	switch {
	case lp > 110:
		return "IEC 60534-8-3: Extreme noise level. " + extreme
	case lp > 85:
		return "IEC 60534-8-3: High noise level. " + high
	default:
		return "IEC 60534-8-3: " + acceptable
	}
}

// ControlRecommendations lists mitigation measures for a predicted level.
func ControlRecommendations(noiseLevel float64, service string) []string {
	var out []string
	switch {
	case noiseLevel > 110:
		out = append(out,
			"CRITICAL: Extreme noise level - immediate action required",
			"Multi-stage pressure reduction valve strongly recommended",
			"Acoustic enclosure or building isolation required",
			"Hearing protection mandatory in area")
	case noiseLevel > 95:
		out = append(out,
			"HIGH: Significant noise reduction measures needed",
			"Low-noise trim or multi-path design recommended",
			"Acoustic lagging on downstream piping",
			"Consider relocating valve to remote area")
	case noiseLevel > 85:
		out = append(out,
			"MODERATE: Some noise control measures advisable",
			"Standard low-noise trim may be sufficient",
			"Monitor for community noise complaints",
			"Consider operational time restrictions")
	default:
		out = append(out, "ACCEPTABLE: Standard valve design suitable")
	}

	if noiseLevel > 85 {
		if service == "Gas" {
			out = append(out, "Consider downstream silencer for gas service")
		} else if service == "Liquid" {
			out = append(out, "Verify cavitation control to reduce liquid noise")
		}
	}
	return out
}
