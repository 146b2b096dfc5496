package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

func testHistory(closes []float64, volumes []float64) *models.CandleHistory {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		var v float64
		if volumes != nil {
			v = volumes[i]
		}
		candles[i] = models.Candle{
			Start:  start.Add(time.Duration(i) * time.Hour),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: v,
			Token:  "BTC",
		}
	}
	return models.NewCandleHistory(candles)
}

func TestEvaluateRejectsOutOfLimitParameter(t *testing.T) {
	h := testHistory([]float64{1, 2, 3, 4, 5}, nil)
	_, err := Evaluate("rsi", h, map[string]float64{"timeperiod": 1})
	if err == nil {
		t.Fatalf("expected limit violation for timeperiod=1")
	}
}

func TestEvaluateRejectsUnknownIndicator(t *testing.T) {
	h := testHistory([]float64{1, 2, 3}, nil)
	if _, err := Evaluate("nope", h, nil); err == nil {
		t.Fatalf("expected unknown indicator error")
	}
}

func TestEvaluateRejectsUnknownParameter(t *testing.T) {
	h := testHistory([]float64{1, 2, 3, 4, 5}, nil)
	if _, err := Evaluate("sma", h, map[string]float64{"bogus": 3}); err == nil {
		t.Fatalf("expected unknown parameter error")
	}
}

func TestEvaluateUsesDefaults(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	h := testHistory(closes, nil)
	out, err := Evaluate("sma", h, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// default timeperiod 30 over 40 rows: defined from index 29
	if math.IsNaN(out[29]) || !math.IsNaN(out[28]) {
		t.Fatalf("default period 30 warm-up wrong around index 29: %v %v", out[28], out[29])
	}
}

func TestVolumeIndicatorOnVolumelessSeriesDegrades(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	h := testHistory(closes, nil)
	out, err := Evaluate("mfi", h, nil)
	if err != nil {
		t.Fatalf("volumeless series must not fail the batch: %v", err)
	}
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Fatalf("expected all-NaN output, got %v at %d", v, i)
		}
	}
}

func TestNamesOrderIsStable(t *testing.T) {
	a := Names()
	b := Names()
	if len(a) == 0 {
		t.Fatalf("registry is empty")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Names() order changed between calls at %d: %s vs %s", i, a[i], b[i])
		}
	}
	if a[0] != "sma" {
		t.Fatalf("canonical ordering should start at sma, got %s", a[0])
	}
}
