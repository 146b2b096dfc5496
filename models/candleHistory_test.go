package models

import (
	"math"
	"testing"
	"time"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
)

func hourlyHistory(closes []float64) *CandleHistory {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]Candle, len(closes))
	for i, c := range closes {
		candles[i] = Candle{
			Start:  start.Add(time.Duration(i) * time.Hour),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 100,
			Token:  "BTC",
		}
	}
	return NewCandleHistory(candles)
}

func TestValidateAcceptsAscendingSeries(t *testing.T) {
	h := hourlyHistory([]float64{1, 2, 3})
	if err := h.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsDuplicateTimestamps(t *testing.T) {
	h := hourlyHistory([]float64{1, 2, 3})
	h.Candles[2].Start = h.Candles[1].Start
	if err := h.Validate(); err == nil {
		t.Fatal("Validate() accepted duplicate timestamps")
	}
}

func TestValidateRejectsOutOfOrderTimestamps(t *testing.T) {
	h := hourlyHistory([]float64{1, 2, 3})
	h.Candles[0], h.Candles[2] = h.Candles[2], h.Candles[0]
	if err := h.Validate(); err == nil {
		t.Fatal("Validate() accepted out-of-order timestamps")
	}
}

func TestResampleAggregatesBuckets(t *testing.T) {
	h := hourlyHistory([]float64{10, 20, 30, 40, 50})
	coarse, err := h.Resample(enum.CandleSize1h, enum.CandleSize2h)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if coarse.Len() != 3 {
		t.Fatalf("coarse.Len() = %d, want 3", coarse.Len())
	}
	first := coarse.Candles[0]
	if first.Open != 9.5 || first.Close != 20 {
		t.Fatalf("first bucket open/close = %v/%v, want 9.5/20", first.Open, first.Close)
	}
	if first.High != 21 || first.Low != 9 {
		t.Fatalf("first bucket high/low = %v/%v, want 21/9", first.High, first.Low)
	}
	if first.Volume != 200 {
		t.Fatalf("first bucket volume = %v, want 200", first.Volume)
	}
	// Trailing partial bucket keeps the lone bar as-is.
	last := coarse.Candles[2]
	if last.Open != 49.5 || last.Close != 50 || last.Volume != 100 {
		t.Fatalf("partial bucket = %+v", last)
	}
	if !last.Start.Equal(h.Candles[4].Start) {
		t.Fatalf("partial bucket start = %v, want %v", last.Start, h.Candles[4].Start)
	}
	// each bucket opens at its first fine bar's timestamp
	starts := coarse.GetStarts()
	fineStarts := h.GetStarts()
	if !starts[0].Equal(fineStarts[0]) || !starts[1].Equal(fineStarts[2]) {
		t.Fatalf("bucket starts misaligned: %v", starts)
	}
}

func TestResampleRejectsInvertedTimeframes(t *testing.T) {
	h := hourlyHistory([]float64{1, 2})
	if _, err := h.Resample(enum.CandleSize4h, enum.CandleSize1h); err == nil {
		t.Fatal("Resample accepted a coarse size finer than the fine size")
	}
}

func TestBroadcastToFineRepeatsAndTruncates(t *testing.T) {
	out := BroadcastToFine([]float64{1, 2}, 2, 5)
	want := []float64{1, 1, 2, 2, math.NaN()}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(out[i]) {
				t.Fatalf("out[%d] = %v, want NaN", i, out[i])
			}
			continue
		}
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestHeikenAshiRecurrence(t *testing.T) {
	h := hourlyHistory([]float64{10, 12})
	ha := h.GetHeikenAshiCandleHistory()
	if len(ha.HeikenAshiCandles) != 2 {
		t.Fatalf("len = %d, want 2", len(ha.HeikenAshiCandles))
	}

	first := h.Candles[0]
	wantClose := (first.Open + first.High + first.Low + first.Close) / 4
	wantOpen := (first.Open + first.Close) / 2
	got := ha.HeikenAshiCandles[0]
	if got.Close != wantClose || got.Open != wantOpen {
		t.Fatalf("first HA open/close = %v/%v, want %v/%v", got.Open, got.Close, wantOpen, wantClose)
	}

	// Second bar's open comes from the prior HA bar, not the raw candle.
	second := h.Candles[1]
	wantOpen2 := (got.Open + got.Close) / 2
	wantClose2 := (second.Open + second.High + second.Low + second.Close) / 4
	got2 := ha.HeikenAshiCandles[1]
	if got2.Open != wantOpen2 || got2.Close != wantClose2 {
		t.Fatalf("second HA open/close = %v/%v, want %v/%v", got2.Open, got2.Close, wantOpen2, wantClose2)
	}
	highs, lows := ha.GetHeikenAshiHighs(), ha.GetHeikenAshiLows()
	for i := range highs {
		b := ha.HeikenAshiCandles[i]
		if highs[i] < math.Max(b.Open, b.Close) || lows[i] > math.Min(b.Open, b.Close) {
			t.Fatalf("HA high/low do not envelope the body at %d: %+v", i, b)
		}
	}
}

func TestGetHeikenAshiOnEmptyHistory(t *testing.T) {
	ha := NewCandleHistory(nil).GetHeikenAshiCandleHistory()
	if len(ha.HeikenAshiCandles) != 0 {
		t.Fatalf("expected no HA candles, got %d", len(ha.HeikenAshiCandles))
	}
}

func TestFrontEndCandleRoundTrip(t *testing.T) {
	c := Candle{
		Start:  time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
		Open:   1.5, High: 2, Low: 1, Close: 1.8,
		Volume: 42,
		Token:  "ETH",
	}
	back := c.GetFrontEndCandle().ToCandle()
	if !back.Start.Equal(c.Start) {
		t.Fatalf("round trip changed the start: %v vs %v", back.Start, c.Start)
	}
	back.Start = c.Start
	if back != c {
		t.Fatalf("round trip changed the candle: %+v vs %+v", back, c)
	}
}
