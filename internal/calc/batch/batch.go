package batch

import (
	"fmt"

	"Vortex/internal/calc/gas"
	"Vortex/internal/calc/liquid"
)

type LiquidBatchInput struct {
	Items []liquid.Input `json:"items"`
}

type LiquidBatchResult struct {
	Results []liquid.Result `json:"results"`
}

func CalculateLiquid(in LiquidBatchInput) (LiquidBatchResult, error) {
	if len(in.Items) == 0 {
		return LiquidBatchResult{}, fmt.Errorf("no items")
	}
	out := LiquidBatchResult{Results: make([]liquid.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := liquid.Calculate(item)
		if err != nil {
			return LiquidBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

type GasBatchInput struct {
	Items []gas.Input `json:"items"`
}

type GasBatchResult struct {
	Results []gas.Result `json:"results"`
}

func CalculateGas(in GasBatchInput) (GasBatchResult, error) {
	if len(in.Items) == 0 {
		return GasBatchResult{}, fmt.Errorf("no items")
	}
	out := GasBatchResult{Results: make([]gas.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := gas.Calculate(item)
		if err != nil {
			return GasBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
