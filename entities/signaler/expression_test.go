package signaler

import (
	"math"
	"testing"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
)

func TestCompileRejectsMalformedExpressions(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty", "   "},
		{"unbalanced paren", "(close > 10"},
		{"mismatched bracket", "[close > 10)"},
		{"consecutive operators", "close > * 10"},
		{"dangling operator", "close >"},
		{"trailing operand", "close > 10 20"},
		{"unknown identifier", "clse > 10"},
		{"unknown indicator", "xyzzy(14) > 10"},
		{"indicator without args", "rsi > 10"},
		{"out of limit parameter", "rsi(1) > 10"},
		{"too many parameters", "rsi(14, 3, 3) > 10"},
		{"non numeric argument", "sma(close) > 10"},
		{"unknown timeframe", "sma(20)@7x > close"},
		{"bare equals", "close = 10"},
	}
	for _, tc := range cases {
		if _, err := Compile(tc.src); err == nil {
			t.Errorf("%s: expected compile error for %q", tc.name, tc.src)
		}
	}
}

func TestCompileAcceptsRealisticExpressions(t *testing.T) {
	cases := []string{
		"close > 10",
		"rsi(14) < 30 and close > sma(50)",
		"(close - open) / open > 0.01 or volume > 1000000",
		"macd() > macdsignal()",
		"close > sma(20)@4h and rsi(14) < 30",
		"[close > 10] and [volume > 0]",
		"close ^ 2 > 10000",
		"-1 * rsi(14) < -70",
		"willr(14) < -80",
	}
	for _, src := range cases {
		if _, err := Compile(src); err != nil {
			t.Errorf("unexpected compile error for %q: %v", src, err)
		}
	}
}

func TestRunSimpleComparison(t *testing.T) {
	expr, err := Compile("close > 100")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	h := histFromCloses([]float64{99, 100, 101, 102})
	vals, err := expr.Run(h, enum.CandleSize1h)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []float64{0, 0, 1, 1}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("index %d: want %v got %v", i, want[i], vals[i])
		}
	}
}

func TestRunArithmeticPrecedence(t *testing.T) {
	expr, err := Compile("close + 2 * 3 == close + 6")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	h := histFromCloses([]float64{50})
	vals, err := expr.Run(h, enum.CandleSize1h)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if vals[0] != 1 {
		t.Fatalf("multiplication must bind tighter than addition")
	}
}

func TestRunDivisionByZeroYieldsNaN(t *testing.T) {
	expr, err := Compile("close / volume")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	h := histFromCloses([]float64{50})
	h.Candles[0].Volume = 0
	vals, err := expr.Run(h, enum.CandleSize1h)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !math.IsNaN(vals[0]) {
		t.Fatalf("expected NaN got %v", vals[0])
	}
}

func TestRunIndicatorWarmupPropagatesAsNaN(t *testing.T) {
	expr, err := Compile("close > sma(3)")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	h := histFromCloses([]float64{1, 2, 3, 4, 5})
	vals, err := expr.Run(h, enum.CandleSize1h)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !math.IsNaN(vals[0]) || !math.IsNaN(vals[1]) {
		t.Fatalf("comparison against a warming-up indicator must be NaN: %v", vals[:2])
	}
	if vals[2] != 1 {
		t.Fatalf("close 3 > sma 2 should hold, got %v", vals[2])
	}
}

func TestRunResampledIndicatorBroadcasts(t *testing.T) {
	expr, err := Compile("close > sma(2)@2h")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	// 8 hourly bars -> 4 two-hour buckets
	h := histFromCloses([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	vals, err := expr.Run(h, enum.CandleSize1h)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(vals) != 8 {
		t.Fatalf("broadcast output must match the fine series length, got %d", len(vals))
	}
	// first coarse sma(2) value lands on bucket 2, i.e. fine bars 2-3;
	// everything before it is warm-up NaN
	if !math.IsNaN(vals[0]) || !math.IsNaN(vals[1]) {
		t.Fatalf("fine bars under coarse warm-up must be NaN: %v", vals[:2])
	}
	// coarse closes are 2,4,6,8; sma(2) at bucket 1 is 3, bars 2-3 close 3,4
	if vals[2] != 0 || vals[3] != 1 {
		t.Fatalf("broadcast comparison wrong: %v %v", vals[2], vals[3])
	}
}

func TestSignalsBuyWinsOverSell(t *testing.T) {
	buy, err := Compile("close > 0")
	if err != nil {
		t.Fatalf("compile buy: %v", err)
	}
	sell, err := Compile("close > 0")
	if err != nil {
		t.Fatalf("compile sell: %v", err)
	}
	h := histFromCloses([]float64{10, 20})
	sig, err := Signals(buy, sell, h, enum.CandleSize1h)
	if err != nil {
		t.Fatalf("signals: %v", err)
	}
	for i, v := range sig {
		if v != 1 {
			t.Fatalf("buy should win when both fire, got %d at %d", v, i)
		}
	}
}
