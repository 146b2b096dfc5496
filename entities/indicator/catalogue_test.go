package indicator

import (
	"math"
	"testing"
)

func TestSmaWarmup(t *testing.T) {
	src := make([]float64, 40)
	for i := range src {
		src[i] = float64(i + 1)
	}
	out := Sma(src, 30)
	if len(out) != 40 {
		t.Fatalf("expected output length 40 got %d", len(out))
	}
	nans := 0
	for _, v := range out {
		if math.IsNaN(v) {
			nans++
		}
	}
	if nans != 29 {
		t.Fatalf("expected exactly 29 leading NaNs got %d", nans)
	}
	// SMA of 1..30 is 15.5
	if out[29] != 15.5 {
		t.Fatalf("expected first defined SMA 15.5 got %v", out[29])
	}
}

func TestSmaRecoversAfterNaN(t *testing.T) {
	out := Sma([]float64{1, 2, math.NaN(), 4, 6}, 2)
	if out[1] != 1.5 {
		t.Fatalf("expected sma[1] == 1.5 got %v", out[1])
	}
	// windows containing the NaN are undefined, nothing after them is
	if !math.IsNaN(out[2]) || !math.IsNaN(out[3]) {
		t.Fatalf("windows covering the NaN should be NaN, got %v %v", out[2], out[3])
	}
	if out[4] != 5 {
		t.Fatalf("expected sma[4] == 5 after the NaN left the window, got %v", out[4])
	}
}

func TestStochDRecoversAfterFlatWindow(t *testing.T) {
	n := 30
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		base := 100 + float64(i)
		highs[i], lows[i], closes[i] = base+1, base-1, base
	}
	// three bars pinned to a single price: the flat 3-bar window makes %K NaN
	for i := 5; i <= 7; i++ {
		highs[i], lows[i], closes[i] = 105, 105, 105
	}

	k, d := Stoch(highs, lows, closes, 3, 3)
	if !math.IsNaN(k[7]) {
		t.Fatalf("flat window should give NaN %%K, got %v", k[7])
	}
	if !math.IsNaN(d[9]) {
		t.Fatalf("%%D windows covering the NaN should be NaN, got %v", d[9])
	}
	for i := 23; i <= 25; i++ {
		if math.IsNaN(k[i]) {
			t.Fatalf("%%K should be defined at %d", i)
		}
	}
	want := (k[23] + k[24] + k[25]) / 3
	if math.IsNaN(d[25]) || math.Abs(d[25]-want) > 1e-12 {
		t.Fatalf("%%D should recover after the flat window: got %v want %v", d[25], want)
	}
}

func TestEmaSeedAndRecurrence(t *testing.T) {
	out := Ema([]float64{2, 4, 6}, 2)
	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Fatalf("expected NaN before index 2 got %v", out[:2])
	}
	// seed = (2+4)/2 = 3, k = 2/3, ema[2] = 6*2/3 + 3*1/3 = 5
	if math.Abs(out[2]-5) > 1e-12 {
		t.Fatalf("expected ema[2] == 5 got %v", out[2])
	}
}

func TestRsiWilderSmoothing(t *testing.T) {
	out := Rsi([]float64{10, 11, 10, 11}, 2)
	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Fatalf("expected NaN warm-up got %v", out[:2])
	}
	// seed: avgGain = 0.5, avgLoss = 0.5 -> RSI 50
	if math.Abs(out[2]-50) > 1e-12 {
		t.Fatalf("expected rsi[2] == 50 got %v", out[2])
	}
	// next delta +1: avgGain = 0.75, avgLoss = 0.25 -> RSI 75
	if math.Abs(out[3]-75) > 1e-12 {
		t.Fatalf("expected rsi[3] == 75 got %v", out[3])
	}
}

func TestRsiSaturatesAt100(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	out := Rsi(closes, 3)
	for i := 3; i < len(out); i++ {
		if out[i] != 100 {
			t.Fatalf("all-gains series should saturate at 100, got %v at %d", out[i], i)
		}
	}
}

func TestAtrSeededWithFirstClose(t *testing.T) {
	out := Atr([]float64{11, 13}, []float64{9, 11}, []float64{10, 12}, 2)
	if out[0] != 10 {
		t.Fatalf("expected atr[0] seeded with first close 10 got %v", out[0])
	}
	// tr = max(2, 3, 1) = 3; atr[1] = (10*1 + 3)/2
	if math.Abs(out[1]-6.5) > 1e-12 {
		t.Fatalf("expected atr[1] == 6.5 got %v", out[1])
	}
}

func TestStochFlatWindowYieldsNaN(t *testing.T) {
	flat := []float64{5, 5, 5, 5, 5}
	k, _ := Stoch(flat, flat, flat, 3, 2)
	for i, v := range k {
		if !math.IsNaN(v) {
			t.Fatalf("flat series should give NaN %%K, got %v at %d", v, i)
		}
	}
}

func TestStochKnownValue(t *testing.T) {
	highs := []float64{10, 12, 14}
	lows := []float64{8, 9, 10}
	closes := []float64{9, 11, 13}
	k, _ := Stoch(highs, lows, closes, 3, 1)
	// window: max high 14, min low 8 -> %K = 100*(13-8)/6
	want := 100 * 5.0 / 6.0
	if math.Abs(k[2]-want) > 1e-12 {
		t.Fatalf("expected %%K %v got %v", want, k[2])
	}
}

func TestDonchianUsesCloses(t *testing.T) {
	closes := []float64{1, 5, 3}
	upper, lower, mid := Donchian(closes, 3)
	if upper[2] != 5 || lower[2] != 1 || mid[2] != 3 {
		t.Fatalf("expected (5,1,3) got (%v,%v,%v)", upper[2], lower[2], mid[2])
	}
}

func TestMacdSignalWarmupOffsetBySlowPeriod(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	macd, signal, hist := Macd(closes, 12, 26, 9)
	if firstDefined(macd) != 26 {
		t.Fatalf("expected macd defined from index 26 got %d", firstDefined(macd))
	}
	// signal EMA runs over macd[26:], so its own warm-up starts 9 in
	if firstDefined(signal) != 26+9 {
		t.Fatalf("expected signal defined from index 35 got %d", firstDefined(signal))
	}
	if firstDefined(hist) != firstDefined(signal) {
		t.Fatalf("histogram should line up with signal warm-up")
	}
}

// fluctuationBars is the fixed 24-bar hourly fixture used to pin the band
// statistics computation.
func fluctuationBars() (opens, highs, lows, closes []float64) {
	closes = []float64{
		101.2, 102.8, 101.9, 103.4, 104.1, 103.2, 105.0, 104.2,
		106.3, 105.1, 107.2, 106.0, 108.4, 107.1, 109.5, 108.2,
		110.6, 109.0, 111.8, 110.4, 112.9, 111.2, 114.0, 112.5,
	}
	opens = make([]float64, len(closes))
	highs = make([]float64, len(closes))
	lows = make([]float64, len(closes))
	for i, c := range closes {
		opens[i] = c - 0.4
		highs[i] = c + 0.8
		lows[i] = c - 1.1
	}
	return opens, highs, lows, closes
}

func TestBollingerBandStatsRegression(t *testing.T) {
	_, _, _, closes := fluctuationBars()
	upper, mid, lower := Bollinger(closes, 24, 2)

	// independently computed mean / population std over the full window
	var sum float64
	for _, c := range closes {
		sum += c
	}
	mean := sum / 24
	var varsum float64
	for _, c := range closes {
		varsum += (c - mean) * (c - mean)
	}
	std := math.Sqrt(varsum / 24)

	last := len(closes) - 1
	if math.Abs(mid[last]-mean) > 1e-8 {
		t.Fatalf("band mid %v differs from mean %v", mid[last], mean)
	}
	if math.Abs(upper[last]-(mean+2*std)) > 1e-8 {
		t.Fatalf("band upper %v differs from mean+2std %v", upper[last], mean+2*std)
	}
	if math.Abs(lower[last]-(mean-2*std)) > 1e-8 {
		t.Fatalf("band lower %v differs from mean-2std %v", lower[last], mean-2*std)
	}
	for i := 0; i < last; i++ {
		if !math.IsNaN(mid[i]) {
			t.Fatalf("expected NaN warm-up at %d", i)
		}
	}
}

func TestIchimokuShifts(t *testing.T) {
	n := 80
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := range highs {
		highs[i] = float64(i + 2)
		lows[i] = float64(i)
		closes[i] = float64(i + 1)
	}
	conversion, base, spanA, spanB, lagging := Ichimoku(highs, lows, closes, 9, 26, 52)
	if firstDefined(conversion) != 8 {
		t.Fatalf("conversion should warm up over 9 bars, got %d", firstDefined(conversion))
	}
	if firstDefined(base) != 25 {
		t.Fatalf("base should warm up over 26 bars, got %d", firstDefined(base))
	}
	// span A = midpoint of conversion/base shifted forward by the base period
	if firstDefined(spanA) != 25+26 {
		t.Fatalf("span A should start at 51, got %d", firstDefined(spanA))
	}
	if firstDefined(spanB) != 51+26 {
		t.Fatalf("span B should start at 77, got %d", firstDefined(spanB))
	}
	// lagging span is the close shifted backward: tail is NaN
	if lagging[0] != closes[26] {
		t.Fatalf("lagging[0] should equal close[26], got %v", lagging[0])
	}
	if !math.IsNaN(lagging[n-1]) {
		t.Fatalf("lagging tail should be NaN")
	}
}
