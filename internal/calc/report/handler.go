package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"Vortex/internal/calc/actuator"
	"Vortex/internal/calc/cavitation"
	"Vortex/internal/calc/gas"
	"Vortex/internal/calc/liquid"
	"Vortex/internal/calc/noise"
	"Vortex/internal/units"
)

type ProcessConditions struct {
	FluidName  string       `json:"fluid_name"`
	FluidType  string       `json:"fluid_type"` // Liquid or Gas
	UnitSystem units.System `json:"unit_system"`
	P1         float64      `json:"p1"`
	P2         float64      `json:"p2"`
	T1         float64      `json:"t1"`
	FlowRate   float64      `json:"flow_rate"`

	// Gas properties, rendered when MW is set.
	MW float64 `json:"mw,omitempty"`
	K  float64 `json:"k,omitempty"`
	Z  float64 `json:"z,omitempty"`
}

type ValveSelection struct {
	ValveType  string `json:"valve_type"`
	ValveStyle string `json:"valve_style"`
	ValveSize  int    `json:"valve_size"`
	Vendor     string `json:"vendor,omitempty"`
	Series     string `json:"series,omitempty"`
}

type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`

	Process ProcessConditions `json:"process"`
	Valve   ValveSelection    `json:"valve"`

	Sizing     *liquid.Result         `json:"sizing,omitempty"`
	SizingGas  *gas.Result            `json:"sizing_gas,omitempty"`
	Cavitation *cavitation.Assessment `json:"cavitation,omitempty"`
	Noise      *noise.Result          `json:"noise,omitempty"`
	Actuator   *actuator.Result       `json:"actuator,omitempty"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Control Valve Sizing Report"
	}

	pdf := build(input)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sizing_report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func build(input Input) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Standards: ISA S75.01 / IEC 60534-2-1, ISA RP75.23, IEC 60534-8-3")
	pdf.Ln(10)

	labels := units.LabelsFor(input.Process.UnitSystem)

	section(pdf, "PROCESS CONDITIONS")
	line(pdf, fmt.Sprintf("Fluid: %s", orDash(input.Process.FluidName)))
	line(pdf, fmt.Sprintf("Inlet pressure: %.2f %s", input.Process.P1, labels.Pressure))
	line(pdf, fmt.Sprintf("Outlet pressure: %.2f %s", input.Process.P2, labels.Pressure))
	line(pdf, fmt.Sprintf("Temperature: %.1f %s", input.Process.T1, labels.Temperature))
	flowUnit := labels.FlowLiquid
	if input.Process.FluidType == "Gas" || input.SizingGas != nil {
		flowUnit = labels.FlowGas
	}
	line(pdf, fmt.Sprintf("Flow rate: %.1f %s", input.Process.FlowRate, flowUnit))
	if input.Process.MW > 0 {
		line(pdf, fmt.Sprintf("Molecular weight: %.2f, k: %.3f, Z: %.3f", input.Process.MW, input.Process.K, input.Process.Z))
	}
	pdf.Ln(4)

	section(pdf, "VALVE SELECTION")
	line(pdf, fmt.Sprintf("Type: %s, style: %s", orDash(input.Valve.ValveType), orDash(input.Valve.ValveStyle)))
	if input.Valve.ValveSize > 0 {
		line(pdf, fmt.Sprintf("Nominal size: %d in", input.Valve.ValveSize))
	}
	if input.Valve.Vendor != "" {
		line(pdf, fmt.Sprintf("Vendor: %s %s", input.Valve.Vendor, input.Valve.Series))
	}
	pdf.Ln(4)

	if input.Sizing != nil {
		section(pdf, "SIZING RESULTS")
		line(pdf, fmt.Sprintf("Required Cv: %.2f (basic %.2f)", input.Sizing.Cv, input.Sizing.CvBasic))
		line(pdf, fmt.Sprintf("Reynolds factor FR: %.3f (Rev %.0f)", input.Sizing.ReynoldsFactor, input.Sizing.ReynoldsNumber))
		line(pdf, fmt.Sprintf("Sizing pressure drop: %.2f psi (allowable %.2f psi)", input.Sizing.DpSizing, input.Sizing.DpAllowable))
		if input.Sizing.IsFlashing {
			line(pdf, "Service is flashing: outlet pressure below vapor pressure")
		}
		pdf.Ln(4)
	}

	if input.SizingGas != nil {
		section(pdf, "SIZING RESULTS")
		line(pdf, fmt.Sprintf("Required Cv: %.2f", input.SizingGas.Cv))
		line(pdf, fmt.Sprintf("Flow regime: %s (x = %.3f, choked at %.3f)",
			input.SizingGas.FlowRegime, input.SizingGas.PressureDropRatioX, input.SizingGas.ChokedPressureDropRatio))
		line(pdf, fmt.Sprintf("Expansion factor Y: %.3f", input.SizingGas.ExpansionFactorY))
		line(pdf, fmt.Sprintf("Mass flow: %.1f lb/hr, Mach: %.2f", input.SizingGas.MassFlowRate, input.SizingGas.MachNumber))
		if input.SizingGas.ChokingWarning != "" {
			line(pdf, input.SizingGas.ChokingWarning)
		}
		if input.SizingGas.VelocityWarning != "" {
			line(pdf, input.SizingGas.VelocityWarning)
		}
		pdf.Ln(4)
	}

	if input.Cavitation != nil {
		section(pdf, "CAVITATION ANALYSIS")
		line(pdf, fmt.Sprintf("Sigma: %.3f (%s)", input.Cavitation.Sigma, input.Cavitation.LevelName))
		line(pdf, fmt.Sprintf("Status: %s, risk: %s", input.Cavitation.Status, input.Cavitation.Risk))
		line(pdf, input.Cavitation.Recommendation)
		pdf.Ln(4)
	}

	if input.Noise != nil {
		section(pdf, "NOISE ANALYSIS")
		line(pdf, fmt.Sprintf("Predicted level: %.1f dBA (%s)", input.Noise.TotalNoiseDBA, input.Noise.Method))
		if input.Noise.Warning != "" {
			line(pdf, input.Noise.Warning)
		}
		pdf.Ln(4)
	}

	if input.Actuator != nil {
		section(pdf, "ACTUATOR REQUIREMENTS")
		if input.Actuator.Kind == actuator.KindLinear {
			line(pdf, fmt.Sprintf("Required thrust: %.0f %s", input.Actuator.RequiredForce, input.Actuator.Unit))
		} else {
			line(pdf, fmt.Sprintf("Required torque: %.0f %s", input.Actuator.RequiredTorque, input.Actuator.Unit))
		}
		line(pdf, fmt.Sprintf("Safety factor: %.2f", input.Actuator.SafetyFactorUsed))
		line(pdf, input.Actuator.Recommendation)
		pdf.Ln(4)
	}

	if input.Notes != "" {
		section(pdf, "NOTES")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	return pdf
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func line(pdf *gofpdf.Fpdf, text string) {
	pdf.Cell(0, 6, text)
	pdf.Ln(6)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
