package units

// Conversion factors per ISA S75.01 working units.
const (
	BarToPsi    = 14.5038
	M3hrToGpm   = 4.40287
	Nm3hrToScfh = 37.324
	KgM3ToLbFt3 = 0.062428
	LbfToN      = 4.44822
	FtLbfToNm   = 1.35582
	CelsiusToK  = 273.15
	AtmosphereP = 14.7
)

type System string

const (
	Metric   System = "Metric"
	Imperial System = "Imperial"
)

// Unknown (system, unit) pairs pass the value through unchanged. The sizing
// engines only request units from the fixed table below, so a passthrough
// means the value is already in the requested unit.

func Pressure(value float64, from System, to string) float64 {
	switch from {
	case Metric:
		switch to {
		case "psi", "psia":
			return value * BarToPsi
		case "bar", "bara":
			return value
		}
	case Imperial:
		switch to {
		case "bar", "bara":
			return value / BarToPsi
		case "psi", "psia":
			return value
		}
	}
	return value
}

func Temperature(value float64, from System, to string) float64 {
	switch from {
	case Metric:
		switch to {
		case "F":
			return value*9/5 + 32
		case "R":
			return (value + CelsiusToK) * 9 / 5
		case "K":
			return value + CelsiusToK
		}
	case Imperial:
		switch to {
		case "C":
			return (value - 32) * 5 / 9
		case "K":
			return (value-32)*5/9 + CelsiusToK
		case "R":
			return value + 459.67
		}
	}
	return value
}

func FlowLiquid(value float64, from System, to string) float64 {
	if from == Metric && to == "gpm" {
		return value * M3hrToGpm
	}
	if from == Imperial && to == "m3/hr" {
		return value / M3hrToGpm
	}
	return value
}

func FlowGas(value float64, from System, to string) float64 {
	if from == Metric && to == "scfh" {
		return value * Nm3hrToScfh
	}
	if from == Imperial && to == "Nm3/hr" {
		return value / Nm3hrToScfh
	}
	return value
}

func Density(value float64, from System, to string) float64 {
	switch {
	case from == Metric && to == "SG":
		return value / 1000.0
	case from == Metric && to == "lb/ft3":
		return value * KgM3ToLbFt3
	case from == Imperial && to == "kg/m3":
		return value * 1000.0
	}
	return value
}

func Force(value float64, from System, to string) float64 {
	if from == Metric && to == "lbf" {
		return value / LbfToN
	}
	if from == Imperial && to == "N" {
		return value * LbfToN
	}
	return value
}

func Torque(value float64, from System, to string) float64 {
	if from == Metric && to == "ft-lbf" {
		return value / FtLbfToNm
	}
	if from == Imperial && to == "Nm" {
		return value * FtLbfToNm
	}
	return value
}

// AbsolutePressure converts a gauge reading to absolute (psi).
func AbsolutePressure(gauge float64) float64 {
	return gauge + AtmosphereP
}

// Labels describe the display units for each quantity in a unit system.
type Labels struct {
	Pressure    string `json:"pressure"`
	Temperature string `json:"temperature"`
	FlowLiquid  string `json:"flow_liquid"`
	FlowGas     string `json:"flow_gas"`
	Density     string `json:"density"`
	Viscosity   string `json:"viscosity"`
	Force       string `json:"force"`
	Torque      string `json:"torque"`
}

func LabelsFor(system System) Labels {
	if system == Imperial {
		return Labels{
			Pressure:    "psi",
			Temperature: "°F",
			FlowLiquid:  "gpm",
			FlowGas:     "scfh",
			Density:     "SG",
			Viscosity:   "cP",
			Force:       "lbf",
			Torque:      "ft-lbf",
		}
	}
	return Labels{
		Pressure:    "bar",
		Temperature: "°C",
		FlowLiquid:  "m³/hr",
		FlowGas:     "Nm³/hr",
		Density:     "kg/m³",
		Viscosity:   "cP",
		Force:       "N",
		Torque:      "Nm",
	}
}
