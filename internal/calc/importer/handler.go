package importer

import (
	"encoding/json"
	"net/http"

	"github.com/xuri/excelize/v2"

	"Vortex/internal/calc/gas"
	"Vortex/internal/calc/liquid"
)

type Handler struct{}

type LiquidImportResult struct {
	Count   int             `json:"count"`
	Skipped int             `json:"skipped"`
	Results []liquid.Result `json:"results"`
}

type GasImportResult struct {
	Count   int          `json:"count"`
	Skipped int          `json:"skipped"`
	Results []gas.Result `json:"results"`
}

func (h *Handler) Liquid(w http.ResponseWriter, r *http.Request) {
	rows, ok := sheetRows(w, r)
	if !ok {
		return
	}

	out := LiquidImportResult{}
	for i := 1; i < len(rows); i++ {
		input, err := ParseLiquidRow(rows[i])
		if err != nil {
			out.Skipped++
			continue
		}
		res, err := liquid.Calculate(input)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) Gas(w http.ResponseWriter, r *http.Request) {
	rows, ok := sheetRows(w, r)
	if !ok {
		return
	}

	out := GasImportResult{}
	for i := 1; i < len(rows); i++ {
		input, err := ParseGasRow(rows[i])
		if err != nil {
			out.Skipped++
			continue
		}
		res, err := gas.Calculate(input)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// sheetRows pulls the first sheet from an uploaded xlsx. It writes the
// error response itself when the upload is unusable.
func sheetRows(w http.ResponseWriter, r *http.Request) ([][]string, bool) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return nil, false
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return nil, false
	}
	return rows, true
}
