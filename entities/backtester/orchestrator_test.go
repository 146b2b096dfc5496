package backtester

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/entities/signaler"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
)

func waveCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/5) + float64(i)*0.05
	}
	return closes
}

func TestRecommendIsDeterministic(t *testing.T) {
	h := histFromCloses(waveCloses(120))
	a := Recommend(h, "BTC", enum.CandleSize1h, Options{})
	b := Recommend(h, "BTC", enum.CandleSize1h, Options{})
	if a.StrategyName != b.StrategyName || a.Profit != b.Profit {
		t.Fatalf("identical inputs gave different recommendations: %+v vs %+v", a, b)
	}
	if a.RunID == b.RunID {
		t.Fatalf("each run must get a fresh run id")
	}
}

func TestRecommendParallelMatchesSequential(t *testing.T) {
	h := histFromCloses(waveCloses(120))
	seq := Recommend(h, "BTC", enum.CandleSize1h, Options{Workers: 1})
	par := Recommend(h, "BTC", enum.CandleSize1h, Options{Workers: 8})
	if seq.StrategyName != par.StrategyName || seq.Profit != par.Profit {
		t.Fatalf("parallel sweep changed the outcome: %+v vs %+v", seq, par)
	}
}

func TestRecommendTieBreakPrefersFirstPair(t *testing.T) {
	// a flat series produces no signals anywhere, so every pair ties at
	// unchanged capital and the first enumerated pair must win
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}
	h := histFromCloses(closes)
	res := Recommend(h, "BTC", enum.CandleSize1h, Options{})
	ts := signaler.Templates()
	want := ts[0].Name + "+" + ts[1].Name
	if res.StrategyName != want {
		t.Fatalf("tie should go to the first enumerated pair %q, got %q", want, res.StrategyName)
	}
	if res.Profit != 0 || res.ProfitPercent != 0 {
		t.Fatalf("flat series should net zero, got %+v", res)
	}
}

func TestRecommendDegenerateSeries(t *testing.T) {
	h := histFromCloses([]float64{100})
	res := Recommend(h, "BTC", enum.CandleSize1d, Options{})
	if res.Profit != 0 || res.ProfitPercent != 0 {
		t.Fatalf("single-row series must report unchanged capital, got %+v", res)
	}
	if res.UseCase != "position" {
		t.Fatalf("daily timeframe should be labeled position, got %q", res.UseCase)
	}
	if res.RunID == "" {
		t.Fatalf("degenerate runs still get a run id")
	}
}

func TestRecommendProgressCoversAllPairs(t *testing.T) {
	h := histFromCloses(waveCloses(80))
	var calls atomic.Int64
	total := 0
	Recommend(h, "BTC", enum.CandleSize1h, Options{
		Workers: 4,
		Progress: func(done, n int) {
			calls.Add(1)
			total = n
		},
	})
	ts := signaler.Templates()
	wantPairs := len(ts) * (len(ts) - 1) / 2
	if int(calls.Load()) != wantPairs {
		t.Fatalf("expected %d progress calls, got %d", wantPairs, calls.Load())
	}
	if total != wantPairs {
		t.Fatalf("progress total should be %d, got %d", wantPairs, total)
	}
}
