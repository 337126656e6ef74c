package batch

import (
	"strings"
	"testing"

	"Vortex/internal/calc/gas"
	"Vortex/internal/calc/liquid"
	"Vortex/internal/units"
)

func waterItem() liquid.Input {
	return liquid.Input{
		UnitSystem: units.Metric,
		P1:         10, P2: 5, Pv: 0.023, Pc: 221.2,
		FlowRate: 100, Rho: 1000,
		ValveType: "Globe", ValveStyle: "Standard",
	}
}

func airItem() gas.Input {
	return gas.Input{
		UnitSystem: units.Imperial,
		P1:         100, P2: 60, T1: 70,
		FlowRate: 100000,
		MW:       28.97, K: 1.4, Z: 1.0,
		ValveType: "Globe", ValveStyle: "Standard",
	}
}

func TestLiquidBatch(t *testing.T) {
	in := LiquidBatchInput{Items: []liquid.Input{waterItem(), waterItem()}}
	res, err := CalculateLiquid(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res.Results))
	}
	if res.Results[0].Cv != res.Results[1].Cv {
		t.Error("identical items must produce identical results")
	}
	if res.Results[0].Cv <= 0 {
		t.Errorf("cv = %v", res.Results[0].Cv)
	}
}

func TestLiquidBatchAbortsOnBadItem(t *testing.T) {
	bad := waterItem()
	bad.P2 = bad.P1 + 1 // no pressure drop
	in := LiquidBatchInput{Items: []liquid.Input{waterItem(), bad}}
	_, err := CalculateLiquid(in)
	if err == nil {
		t.Fatal("expected error for invalid item")
	}
	if !strings.Contains(err.Error(), "item 1") {
		t.Errorf("error should name the failing item: %v", err)
	}
}

func TestGasBatch(t *testing.T) {
	in := GasBatchInput{Items: []gas.Input{airItem()}}
	res, err := CalculateGas(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Results) != 1 || res.Results[0].Cv <= 0 {
		t.Fatalf("bad results: %+v", res.Results)
	}
}

func TestEmptyBatches(t *testing.T) {
	if _, err := CalculateLiquid(LiquidBatchInput{}); err == nil {
		t.Error("expected error for empty liquid batch")
	}
	if _, err := CalculateGas(GasBatchInput{}); err == nil {
		t.Error("expected error for empty gas batch")
	}
}
