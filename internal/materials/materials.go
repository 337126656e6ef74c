// Package materials selects valve construction materials from fluid
// identity, fluid nature, and service conditions.
package materials

import (
	"fmt"
	"strings"

	"Vortex/internal/units"
)

type Input struct {
	UnitSystem  units.System `json:"unit_system"`
	FluidName   string       `json:"fluid_name"`
	FluidNature string       `json:"fluid_nature"` // Clean, Corrosive, Abrasive, Flashing/Cavitating
	T1          float64      `json:"t1"`
	P1          float64      `json:"p1"`
}

type Set struct {
	Body    string `json:"body"`
	Trim    string `json:"trim"`
	Bolting string `json:"bolting"`
	Gasket  string `json:"gasket"`
}

type Alternatives struct {
	Body []string `json:"body"`
	Trim []string `json:"trim"`
}

type Selection struct {
	Recommendations     Set          `json:"recommendations"`
	ServiceCategory     string       `json:"service_category"`
	ComplianceCheck     string       `json:"compliance_check"`
	AdditionalNotes     []string     `json:"additional_recommendations"`
	Justification       string       `json:"material_justification"`
	Alternatives        Alternatives `json:"alternative_materials"`
	TestingRequirements []string     `json:"testing_requirements"`
}

var serviceDefaults = map[string]Set{
	"Clean Water": {
		Body:    "Carbon Steel (ASTM A216 WCB)",
		Trim:    "316 SS",
		Bolting: "ASTM A193 B7 / A194 2H",
		Gasket:  "Spiral Wound 316SS/Graphite",
	},
	"Seawater": {
		Body:    "316 SS (ASTM A351 CF8M)",
		Trim:    "Super Duplex SS",
		Bolting: "ASTM A193 B8M / A194 8M",
		Gasket:  "Spiral Wound Super Duplex/PTFE",
	},
	"Sour Service": {
		Body:    "316L SS (ASTM A351 CF3M)",
		Trim:    "Inconel 625",
		Bolting: "ASTM A193 B8MLCuN / A194 8MLCuN",
		Gasket:  "Spiral Wound Inconel/PTFE",
	},
	"High Temperature": {
		Body:    "Chrome-Moly (ASTM A217 C12)",
		Trim:    "Stellite overlay on 316 SS",
		Bolting: "ASTM A193 B16 / A194 4",
		Gasket:  "RTJ or Spiral Wound 316SS/Mica",
	},
	"Cryogenic": {
		Body:    "316L SS (ASTM A351 CF3M)",
		Trim:    "316L SS",
		Bolting: "ASTM A193 B8M / A194 8M",
		Gasket:  "Spiral Wound 316L/PTFE",
	},
}

var alternatives = map[string]Alternatives{
	"Clean Water": {
		Body: []string{"Ductile Iron", "Bronze", "316 SS"},
		Trim: []string{"Bronze", "Stellite", "Hard Chrome"},
	},
	"Sour Service": {
		Body: []string{"Duplex SS", "Super Duplex SS", "Inconel 625"},
		Trim: []string{"Inconel 625", "Stellite 6", "Ceramic"},
	},
	"High Temperature": {
		Body: []string{"310 SS", "Inconel 600", "Chrome-Moly Grade 91"},
		Trim: []string{"Inconel 600", "Stellite 12", "Ceramic"},
	},
	"Cryogenic": {
		Body: []string{"304L SS", "Aluminum Bronze", "9% Nickel Steel"},
		Trim: []string{"304L SS", "316L SS", "Inconel 625"},
	},
}

// Select builds a material recommendation. Conditions are normalized to
// degrees C and bar before classification.
func Select(in Input) Selection {
	fluidName := strings.TrimSpace(in.FluidName)
	if fluidName == "" {
		fluidName = "Water"
	}
	nature := in.FluidNature
	if nature == "" {
		nature = "Clean"
	}

	tempC := in.T1
	pressureBar := in.P1
	if in.UnitSystem == units.Imperial {
		tempC = units.Temperature(in.T1, units.Imperial, "C")
		pressureBar = units.Pressure(in.P1, units.Imperial, "bar")
	}

	category := ServiceCategory(fluidName, nature, tempC)
	set, ok := serviceDefaults[category]
	if !ok {
		set = serviceDefaults["Clean Water"]
	}

	set = adjustForTemperature(set, tempC)
	set = adjustForPressure(set, pressureBar)
	set = adjustForFluid(set, fluidName, nature)

	alt, ok := alternatives[category]
	if !ok {
		alt = alternatives["Clean Water"]
	}

	return Selection{
		Recommendations:     set,
		ServiceCategory:     category,
		ComplianceCheck:     complianceCheck(category, tempC, pressureBar),
		AdditionalNotes:     additionalNotes(category, nature, tempC, pressureBar),
		Justification:       justification(set),
		Alternatives:        alt,
		TestingRequirements: testingRequirements(category, tempC, pressureBar),
	}
}

// ServiceCategory classifies the service by fluid identity first, then by
// temperature extremes, then by fluid nature.
func ServiceCategory(fluidName, fluidNature string, tempC float64) string {
	fluid := strings.ToLower(fluidName)

	switch {
	case strings.Contains(fluid, "seawater") || strings.Contains(fluid, "brine"):
		return "Seawater"
	case strings.Contains(fluid, "water"):
		if tempC > 100 {
			return "High Temperature"
		}
		if tempC < 0 {
			return "Cryogenic"
		}
		return "Clean Water"
	case containsAny(fluid, "acid", "hcl", "h2so4", "sulfuric"),
		strings.Contains(fluid, "hydrogen"),
		strings.Contains(fluid, "h2s"):
		return "Sour Service"
	case tempC > 400:
		return "High Temperature"
	case tempC < -50:
		return "Cryogenic"
	}

	switch fluidNature {
	case "Corrosive":
		return "Sour Service"
	case "Flashing/Cavitating":
		return "High Temperature"
	}
	return "Clean Water"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func adjustForTemperature(set Set, tempC float64) Set {
	switch {
	case tempC > 500:
		set.Body = "Chrome-Moly (ASTM A217 C12)"
		set.Trim = "Stellite overlay on Inconel"
		set.Bolting = "ASTM A193 B16 / A194 4"
		set.Gasket = "RTJ Inconel"
	case tempC > 400:
		set.Body = "Chrome-Moly (ASTM A217 C5)"
		set.Trim = "Stellite overlay on 316 SS"
		set.Bolting = "ASTM A193 B8T / A194 8T"
		set.Gasket = "Spiral Wound 316SS/Mica"
	case tempC < -100:
		set.Body = "316L SS (ASTM A351 CF3M)"
		set.Trim = "316L SS"
		set.Bolting = "ASTM A193 B8M / A194 8M"
		set.Gasket = "Spiral Wound 316L/PTFE"
	case tempC < -29:
		set.Body = "316 SS (ASTM A351 CF8M)"
		set.Trim = "316 SS"
		set.Bolting = "ASTM A193 B8 / A194 8"
	}
	return set
}

func adjustForPressure(set Set, pressureBar float64) Set {
	if pressureBar > 100 {
		set.Bolting = strings.ReplaceAll(set.Bolting, "B7", "B8M")
		set.Gasket = "RTJ or Metal Seal"
	} else if pressureBar > 40 {
		set.Gasket = "Spiral Wound with Centering Ring"
	}
	return set
}

func adjustForFluid(set Set, fluidName, fluidNature string) Set {
	fluid := strings.ToLower(fluidName)

	switch {
	case strings.Contains(fluid, "chlorine") || strings.Contains(fluid, "cl2"):
		set.Body = "Hastelloy C (UNS N10276)"
		set.Trim = "Hastelloy C"
		set.Bolting = "Hastelloy C bolting"
		set.Gasket = "PTFE envelope"
	case strings.Contains(fluid, "ammonia") || strings.Contains(fluid, "nh3"):
		// Copper alloys are attacked by ammonia.
		set.Body = "Carbon Steel (ASTM A216 WCB)"
		set.Trim = "316 SS"
	case fluidNature == "Abrasive":
		set.Trim = "Stellite hard facing or Ceramic"
	}
	return set
}

func complianceCheck(category string, tempC, pressureBar float64) string {
	standards := []string{"ASME B16.34", "API 6D"}
	if category == "Sour Service" {
		standards = append(standards, "NACE MR0175", "ISO 15156")
	}
	if tempC > 400 {
		standards = append(standards, "ASME VIII Div 1 High Temperature")
	}
	if pressureBar > 100 {
		standards = append(standards, "ASME B31.3 High Pressure")
	}
	return fmt.Sprintf("Materials comply with %s. Final verification against specific service conditions required.",
		strings.Join(standards, ", "))
}

func additionalNotes(category, fluidNature string, tempC, pressureBar float64) []string {
	var notes []string
	if tempC > 300 {
		notes = append(notes, "Post-weld heat treatment (PWHT) required for pressure boundary welds")
	}
	if tempC < -29 {
		notes = append(notes, "Charpy impact testing required for low-temperature service")
	}
	if category == "Sour Service" {
		notes = append(notes, "Hardness testing (HRC <= 22) required for all pressure boundary materials")
	}
	if pressureBar > 40 {
		notes = append(notes, "Hydrostatic testing at 1.5x design pressure recommended")
	}
	if fluidNature == "Abrasive" {
		notes = append(notes, "Consider replaceable wear plates or hardening treatments")
	}
	return notes
}

func justification(set Set) string {
	var parts []string

	switch {
	case strings.Contains(set.Body, "Chrome-Moly"):
		parts = append(parts, "Chrome-Moly selected for high-temperature strength and creep resistance")
	case strings.Contains(set.Body, "316L SS"):
		parts = append(parts, "316L SS selected for enhanced corrosion resistance and low-carbon content")
	case strings.Contains(set.Body, "Carbon Steel"):
		parts = append(parts, "Carbon Steel selected for cost-effectiveness in non-corrosive service")
	}

	switch {
	case strings.Contains(set.Trim, "Stellite"):
		parts = append(parts, "Stellite trim selected for cavitation and erosion resistance")
	case strings.Contains(set.Trim, "Hastelloy"):
		parts = append(parts, "Hastelloy trim selected for severe chemical service resistance")
	case strings.Contains(set.Trim, "316 SS"):
		parts = append(parts, "316 SS trim selected for good corrosion resistance and cost balance")
	}

	return strings.Join(parts, "; ")
}

func testingRequirements(category string, tempC, pressureBar float64) []string {
	tests := []string{"Hydrostatic test", "Visual inspection"}
	if tempC < -29 {
		tests = append(tests, "Charpy impact test at design temperature")
	}
	if tempC > 400 {
		tests = append(tests, "Creep and stress rupture testing")
	}
	if category == "Sour Service" {
		tests = append(tests, "Hardness testing (HRC <= 22)", "SSC testing per NACE TM0177")
	}
	if pressureBar > 100 {
		tests = append(tests, "Pneumatic test at 110% design pressure")
	}
	return tests
}
