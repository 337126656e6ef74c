// Command batchsize sizes a spreadsheet of valve cases offline and
// prints the results as JSON. Sheet layouts match the import API.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"Vortex/internal/calc/gas"
	"Vortex/internal/calc/importer"
	"Vortex/internal/calc/liquid"
)

type output struct {
	Count   int             `json:"count"`
	Skipped int             `json:"skipped"`
	Liquid  []liquid.Result `json:"liquid,omitempty"`
	Gas     []gas.Result    `json:"gas,omitempty"`
}

func main() {
	fluid := flag.String("fluid", "liquid", "sheet layout: liquid or gas")
	path := flag.String("file", "", "xlsx file with one case per row")
	flag.Parse()

	if *path == "" {
		logrus.Fatal("-file is required")
	}
	if *fluid != "liquid" && *fluid != "gas" {
		logrus.Fatalf("unknown fluid %q", *fluid)
	}

	f, err := excelize.OpenFile(*path)
	if err != nil {
		logrus.WithError(err).Fatal("cannot open workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		logrus.WithError(err).Fatal("cannot read sheet")
	}
	if len(rows) < 2 {
		logrus.Fatal("sheet has no data rows")
	}

	var out output
	for i := 1; i < len(rows); i++ {
		if *fluid == "liquid" {
			in, err := importer.ParseLiquidRow(rows[i])
			if err != nil {
				out.Skipped++
				continue
			}
			res, err := liquid.Calculate(in)
			if err != nil {
				logrus.WithError(err).WithField("row", i+1).Warn("skipping row")
				out.Skipped++
				continue
			}
			out.Liquid = append(out.Liquid, res)
		} else {
			in, err := importer.ParseGasRow(rows[i])
			if err != nil {
				out.Skipped++
				continue
			}
			res, err := gas.Calculate(in)
			if err != nil {
				logrus.WithError(err).WithField("row", i+1).Warn("skipping row")
				out.Skipped++
				continue
			}
			out.Gas = append(out.Gas, res)
		}
	}
	out.Count = len(out.Liquid) + len(out.Gas)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logrus.WithError(err).Fatal("encode results")
	}
}
