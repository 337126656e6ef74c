package importer

import (
	"fmt"
	"strconv"
	"strings"

	"Vortex/internal/calc/gas"
	"Vortex/internal/calc/liquid"
	"Vortex/internal/units"
)

// Row layouts match the downloadable templates:
//
//	liquid: unit_system, p1, p2, pv, pc, flow_rate, rho, viscosity, valve_type, valve_style
//	gas:    unit_system, p1, p2, t1, flow_rate, mw, k, z, valve_type, valve_style
//
// Columns after the first five are optional on both sheets.

func ParseLiquidRow(row []string) (liquid.Input, error) {
	if len(row) < 6 {
		return liquid.Input{}, fmt.Errorf("bad row")
	}

	in := liquid.Input{UnitSystem: parseSystem(row[0])}
	var err error
	if in.P1, err = toFloat(row[1]); err != nil {
		return liquid.Input{}, err
	}
	if in.P2, err = toFloat(row[2]); err != nil {
		return liquid.Input{}, err
	}
	if in.Pv, err = toFloat(row[3]); err != nil {
		return liquid.Input{}, err
	}
	if in.Pc, err = toFloat(row[4]); err != nil {
		return liquid.Input{}, err
	}
	if in.FlowRate, err = toFloat(row[5]); err != nil {
		return liquid.Input{}, err
	}

	in.Rho = optFloat(row, 6, 1000)
	in.Viscosity = optFloat(row, 7, 0)
	in.ValveType = optString(row, 8, "Globe")
	in.ValveStyle = optString(row, 9, "Standard")
	return in, nil
}

func ParseGasRow(row []string) (gas.Input, error) {
	if len(row) < 6 {
		return gas.Input{}, fmt.Errorf("bad row")
	}

	in := gas.Input{UnitSystem: parseSystem(row[0])}
	var err error
	if in.P1, err = toFloat(row[1]); err != nil {
		return gas.Input{}, err
	}
	if in.P2, err = toFloat(row[2]); err != nil {
		return gas.Input{}, err
	}
	if in.T1, err = toFloat(row[3]); err != nil {
		return gas.Input{}, err
	}
	if in.FlowRate, err = toFloat(row[4]); err != nil {
		return gas.Input{}, err
	}
	if in.MW, err = toFloat(row[5]); err != nil {
		return gas.Input{}, err
	}

	in.K = optFloat(row, 6, 1.4)
	in.Z = optFloat(row, 7, 1.0)
	in.ValveType = optString(row, 8, "Globe")
	in.ValveStyle = optString(row, 9, "Standard")
	return in, nil
}

func parseSystem(s string) units.System {
	if strings.EqualFold(strings.TrimSpace(s), "imperial") {
		return units.Imperial
	}
	return units.Metric
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func optFloat(row []string, i int, def float64) float64 {
	if i >= len(row) || strings.TrimSpace(row[i]) == "" {
		return def
	}
	v, err := toFloat(row[i])
	if err != nil {
		return def
	}
	return v
}

func optString(row []string, i int, def string) string {
	if i >= len(row) || strings.TrimSpace(row[i]) == "" {
		return def
	}
	return strings.TrimSpace(row[i])
}
