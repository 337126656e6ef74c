package valvedata

import "sort"

// Process-wide read-only tables. Loaded once, never mutated.

// Curve maps valve opening percent to a coefficient value.
type Curve map[float64]float64

// Interpolate returns the coefficient at the given opening, clamped to the
// curve endpoints, linearly interpolated between bracketing keys. The second
// return is false when the curve is empty.
func Interpolate(openingPercent float64, curve Curve) (float64, bool) {
	if len(curve) == 0 {
		return 0, false
	}
	openings := make([]float64, 0, len(curve))
	for k := range curve {
		openings = append(openings, k)
	}
	sort.Float64s(openings)

	if openingPercent <= openings[0] {
		return curve[openings[0]], true
	}
	if openingPercent >= openings[len(openings)-1] {
		return curve[openings[len(openings)-1]], true
	}
	for i := 0; i < len(openings)-1; i++ {
		x1, x2 := openings[i], openings[i+1]
		if x1 <= openingPercent && openingPercent <= x2 {
			y1, y2 := curve[x1], curve[x2]
			if x2 == x1 {
				return y1, true
			}
			return y1 + (y2-y1)*(openingPercent-x1)/(x2-x1), true
		}
	}
	return curve[openings[0]], true
}

// Coefficients describe one valve type/style combination.
type Coefficients struct {
	FL              float64    `json:"fl"`
	Kc              float64    `json:"kc"`
	Xt              float64    `json:"xt"`
	Rangeability    float64    `json:"rangeability"`
	Style           string     `json:"style"`
	CvEfficiency    float64    `json:"cv_efficiency"`
	PressureClasses []string   `json:"pressure_classes,omitempty"`
	TempRangeC      [2]float64 `json:"temp_range_c"`

	FLCurve Curve `json:"fl_curve,omitempty"`
	KcCurve Curve `json:"kc_curve,omitempty"`
	XtCurve Curve `json:"xt_curve,omitempty"`

	Vendor        string   `json:"vendor,omitempty"`
	Series        string   `json:"series,omitempty"`
	CvMultiplier  float64  `json:"cv_multiplier,omitempty"`
	TrimMaterials []string `json:"trim_materials,omitempty"`
	Sizes         []int    `json:"sizes,omitempty"`

	Generic bool `json:"generic"` // true when the fallback defaults were used
}

var travelCurves = map[string]map[string]struct{ fl, kc, xt Curve }{
	"Globe": {
		"Standard, Cage-Guided": {
			fl: Curve{10: 0.85, 30: 0.88, 50: 0.90, 70: 0.90, 90: 0.89, 100: 0.88},
			kc: Curve{10: 0.75, 30: 0.72, 50: 0.70, 70: 0.69, 90: 0.68, 100: 0.67},
			xt: Curve{10: 0.70, 30: 0.73, 50: 0.75, 70: 0.76, 90: 0.75, 100: 0.74},
		},
		"Low-Noise, Multi-Path": {
			fl: Curve{10: 0.92, 30: 0.94, 50: 0.95, 70: 0.95, 90: 0.94, 100: 0.93},
			kc: Curve{10: 0.85, 30: 0.82, 50: 0.80, 70: 0.79, 90: 0.78, 100: 0.77},
			xt: Curve{10: 0.75, 30: 0.78, 50: 0.80, 70: 0.81, 90: 0.80, 100: 0.79},
		},
		"Anti-Cavitation, Multi-Stage": {
			fl: Curve{10: 0.95, 30: 0.97, 50: 0.98, 70: 0.98, 90: 0.97, 100: 0.96},
			kc: Curve{10: 0.90, 30: 0.87, 50: 0.85, 70: 0.84, 90: 0.83, 100: 0.82},
			xt: Curve{10: 0.80, 30: 0.83, 50: 0.85, 70: 0.86, 90: 0.85, 100: 0.84},
		},
		"Port-Guided, Quick Opening": {
			fl: Curve{10: 0.80, 30: 0.83, 50: 0.85, 70: 0.85, 90: 0.84, 100: 0.83},
			kc: Curve{10: 0.70, 30: 0.67, 50: 0.65, 70: 0.64, 90: 0.63, 100: 0.62},
			xt: Curve{10: 0.65, 30: 0.68, 50: 0.70, 70: 0.71, 90: 0.70, 100: 0.69},
		},
	},
	"Ball (Segmented)": {
		"Standard V-Notch": {
			fl: Curve{10: 0.75, 30: 0.78, 50: 0.80, 70: 0.81, 90: 0.80, 100: 0.79},
			kc: Curve{10: 0.65, 30: 0.62, 50: 0.60, 70: 0.59, 90: 0.58, 100: 0.57},
			xt: Curve{10: 0.35, 30: 0.38, 50: 0.40, 70: 0.41, 90: 0.40, 100: 0.39},
		},
		"High-Performance": {
			fl: Curve{10: 0.70, 30: 0.73, 50: 0.75, 70: 0.76, 90: 0.75, 100: 0.74},
			kc: Curve{10: 0.60, 30: 0.57, 50: 0.55, 70: 0.54, 90: 0.53, 100: 0.52},
			xt: Curve{10: 0.30, 30: 0.33, 50: 0.35, 70: 0.36, 90: 0.35, 100: 0.34},
		},
	},
	"Butterfly": {
		"Standard, Centric Disc": {
			fl: Curve{10: 0.65, 30: 0.68, 50: 0.70, 70: 0.71, 90: 0.70, 100: 0.69},
			kc: Curve{10: 0.55, 30: 0.52, 50: 0.50, 70: 0.49, 90: 0.48, 100: 0.47},
			xt: Curve{10: 0.25, 30: 0.28, 50: 0.30, 70: 0.31, 90: 0.30, 100: 0.29},
		},
		"High-Performance, Double Offset": {
			fl: Curve{10: 0.80, 30: 0.83, 50: 0.85, 70: 0.86, 90: 0.85, 100: 0.84},
			kc: Curve{10: 0.70, 30: 0.67, 50: 0.65, 70: 0.64, 90: 0.63, 100: 0.62},
			xt: Curve{10: 0.50, 30: 0.53, 50: 0.55, 70: 0.56, 90: 0.55, 100: 0.54},
		},
	},
}

var coefficients = map[string]map[string]Coefficients{
	"Globe": {
		"Standard, Cage-Guided": {
			FL: 0.90, Kc: 0.70, Xt: 0.75, Rangeability: 50,
			Style:        "General purpose, excellent throttling, moderate capacity.",
			CvEfficiency: 0.85,
			PressureClasses: []string{"150", "300", "600", "900", "1500"},
			TempRangeC:   [2]float64{-29, 427},
		},
		"Low-Noise, Multi-Path": {
			FL: 0.95, Kc: 0.80, Xt: 0.80, Rangeability: 40,
			Style:        "Designed to attenuate aerodynamic noise in gas service.",
			CvEfficiency: 0.75,
			PressureClasses: []string{"150", "300", "600"},
			TempRangeC:   [2]float64{-20, 400},
		},
		"Anti-Cavitation, Multi-Stage": {
			FL: 0.98, Kc: 0.85, Xt: 0.85, Rangeability: 30,
			Style:        "Reduces pressure in multiple steps to prevent cavitation damage.",
			CvEfficiency: 0.70,
			PressureClasses: []string{"150", "300", "600", "900"},
			TempRangeC:   [2]float64{-20, 400},
		},
		"Port-Guided, Quick Opening": {
			FL: 0.85, Kc: 0.65, Xt: 0.70, Rangeability: 20,
			Style:        "Best for on/off service, poor throttling.",
			CvEfficiency: 0.90,
			PressureClasses: []string{"150", "300", "600"},
			TempRangeC:   [2]float64{-29, 427},
		},
	},
	"Ball (Segmented)": {
		"Standard V-Notch": {
			FL: 0.80, Kc: 0.60, Xt: 0.40, Rangeability: 100,
			Style:        "Good rangeability and throttling, suitable for slurries.",
			CvEfficiency: 0.95,
			PressureClasses: []string{"150", "300", "600", "900", "1500"},
			TempRangeC:   [2]float64{-46, 232},
		},
		"High-Performance": {
			FL: 0.75, Kc: 0.55, Xt: 0.35, Rangeability: 80,
			Style:        "Higher capacity, but less pressure recovery.",
			CvEfficiency: 0.98,
			PressureClasses: []string{"150", "300", "600", "900"},
			TempRangeC:   [2]float64{-46, 232},
		},
	},
	"Butterfly": {
		"Standard, Centric Disc": {
			FL: 0.70, Kc: 0.50, Xt: 0.30, Rangeability: 20,
			Style:        "Low cost, high capacity, limited throttling range.",
			CvEfficiency: 0.95,
			PressureClasses: []string{"150", "300"},
			TempRangeC:   [2]float64{-40, 200},
		},
		"High-Performance, Double Offset": {
			FL: 0.85, Kc: 0.65, Xt: 0.55, Rangeability: 50,
			Style:        "Better shutoff and control than standard butterfly valves.",
			CvEfficiency: 0.90,
			PressureClasses: []string{"150", "300", "600"},
			TempRangeC:   [2]float64{-40, 260},
		},
	},
}

var ratedCvs = map[int]map[string]float64{
	1:  {"Globe": 12, "Ball": 15, "Butterfly": 18},
	2:  {"Globe": 50, "Ball": 65, "Butterfly": 80},
	3:  {"Globe": 110, "Ball": 140, "Butterfly": 170},
	4:  {"Globe": 170, "Ball": 220, "Butterfly": 280},
	6:  {"Globe": 400, "Ball": 520, "Butterfly": 650},
	8:  {"Globe": 700, "Ball": 900, "Butterfly": 1100},
	10: {"Globe": 1080, "Ball": 1400, "Butterfly": 1700},
	12: {"Globe": 1750, "Ball": 2250, "Butterfly": 2800},
	14: {"Globe": 2400, "Ball": 3100, "Butterfly": 3800},
	16: {"Globe": 3200, "Ball": 4100, "Butterfly": 5000},
	18: {"Globe": 4100, "Ball": 5300, "Butterfly": 6500},
	20: {"Globe": 5000, "Ball": 6500, "Butterfly": 8000},
	24: {"Globe": 7200, "Ball": 9400, "Butterfly": 11500},
	30: {"Globe": 11000, "Ball": 14300, "Butterfly": 17500},
	36: {"Globe": 16000, "Ball": 20800, "Butterfly": 25500},
	42: {"Globe": 22000, "Ball": 28600, "Butterfly": 35000},
	48: {"Globe": 28000, "Ball": 36400, "Butterfly": 44500},
	54: {"Globe": 36000, "Ball": 46800, "Butterfly": 57200},
	60: {"Globe": 45000, "Ball": 58500, "Butterfly": 71500},
	66: {"Globe": 54000, "Ball": 70200, "Butterfly": 85800},
	72: {"Globe": 65000, "Ball": 84500, "Butterfly": 103000},
}

type vendorSeries struct {
	FL, Kc, Xt    float64
	Rangeability  float64
	Sizes         []int
	TrimMaterials []string
	CvMultiplier  float64
}

var vendorDatabase = map[string]map[string]map[string]vendorSeries{
	"Fisher": {
		"Globe": {
			"ED Series": {FL: 0.92, Kc: 0.72, Xt: 0.77, Rangeability: 50,
				Sizes: []int{1, 2, 3, 4, 6, 8},
				TrimMaterials: []string{"316 SS", "Stellite", "Ceramic"}, CvMultiplier: 1.05},
			"HPT Series": {FL: 0.88, Kc: 0.68, Xt: 0.73, Rangeability: 40,
				Sizes: []int{2, 3, 4, 6, 8, 10, 12},
				TrimMaterials: []string{"316 SS", "Stellite", "Hastelloy"}, CvMultiplier: 1.10},
		},
	},
	"Emerson": {
		"Globe": {
			"WhisperTrim": {FL: 0.95, Kc: 0.78, Xt: 0.82, Rangeability: 35,
				Sizes: []int{2, 3, 4, 6, 8, 10},
				TrimMaterials: []string{"316 SS", "Stellite"}, CvMultiplier: 0.95},
		},
	},
	"Samson": {
		"Globe": {
			"Type 241": {FL: 0.89, Kc: 0.69, Xt: 0.74, Rangeability: 50,
				Sizes: []int{1, 2, 3, 4, 6, 8, 10},
				TrimMaterials: []string{"316 SS", "Stellite"}, CvMultiplier: 1.02},
		},
	},
}

// Get returns coefficients for a valve type/style, never failing: unknown
// combinations degrade to generic defaults with Generic set. Vendor and
// series, when both given and known, override the generic numbers.
func Get(valveType, valveStyle, vendor, series string) Coefficients {
	out, ok := coefficients[valveType][valveStyle]
	if !ok {
		out = Coefficients{
			FL: 0.9, Kc: 0.7, Xt: 0.75, Rangeability: 30,
			Style:        "Default general purpose values.",
			CvEfficiency: 0.85,
			Generic:      true,
		}
	}

	if vendor != "" && series != "" {
		if vs, ok := vendorDatabase[vendor][valveType][series]; ok {
			out.FL, out.Kc, out.Xt = vs.FL, vs.Kc, vs.Xt
			out.Rangeability = vs.Rangeability
			out.Sizes = vs.Sizes
			out.TrimMaterials = vs.TrimMaterials
			out.CvMultiplier = vs.CvMultiplier
			out.Vendor, out.Series = vendor, series
			out.Generic = false
		}
	}

	if tc, ok := travelCurves[valveType][valveStyle]; ok {
		out.FLCurve, out.KcCurve, out.XtCurve = tc.fl, tc.kc, tc.xt
	}
	return out
}

// Styles lists the known styles for a valve type.
func Styles(valveType string) []string {
	byStyle, ok := coefficients[valveType]
	if !ok {
		return []string{"Default Style"}
	}
	names := make([]string, 0, len(byStyle))
	for name := range byStyle {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Vendors lists vendors with series data.
func Vendors() []string {
	names := make([]string, 0, len(vendorDatabase))
	for name := range vendorDatabase {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VendorSeries lists series for a vendor and valve type.
func VendorSeries(vendor, valveType string) []string {
	byType, ok := vendorDatabase[vendor]
	if !ok {
		return nil
	}
	names := make([]string, 0)
	for name := range byType[valveType] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RatedCv returns the rated Cv for a nominal size and valve type. Unknown
// sizes fall back to the Globe column (or 50) scaled by a type multiplier.
func RatedCv(size int, valveType string) float64 {
	if cv, ok := ratedCvs[size][valveType]; ok {
		return cv
	}
	base := 50.0
	if cv, ok := ratedCvs[size]["Globe"]; ok {
		base = cv
	}
	multipliers := map[string]float64{"Globe": 1.0, "Ball": 1.3, "Butterfly": 1.6}
	m, ok := multipliers[valveType]
	if !ok {
		m = 1.0
	}
	return float64(int(base * m))
}

// TravelCoefficient interpolates FL, Kc or Xt at a valve opening; when no
// curve exists the base table value is returned.
func TravelCoefficient(valveType, valveStyle, coefficient string, openingPercent float64) float64 {
	base := Get(valveType, valveStyle, "", "")
	var curve Curve
	var flat float64
	switch coefficient {
	case "FL":
		curve, flat = base.FLCurve, base.FL
	case "Kc":
		curve, flat = base.KcCurve, base.Kc
	case "Xt":
		curve, flat = base.XtCurve, base.Xt
	default:
		return 0.9
	}
	if v, ok := Interpolate(openingPercent, curve); ok {
		return v
	}
	return flat
}
