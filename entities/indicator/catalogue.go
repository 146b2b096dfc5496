package indicator

import (
	"math"
)

// The functions in this file are the recurrences whose exact seeds and
// warm-up behavior the product pins down. Everything here is pure: explicit
// input arrays in, a fresh output array out, caller data never mutated.
// Division by zero yields NaN, uniformly.

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// maskWarmup overwrites the first `lookback` values with NaN. Used on talib
// outputs, which pad the unstable period with zeros instead.
func maskWarmup(vals []float64, lookback int) []float64 {
	if lookback > len(vals) {
		lookback = len(vals)
	}
	for i := 0; i < lookback; i++ {
		vals[i] = math.NaN()
	}
	return vals
}

// RollingMax over a fixed trailing window; NaN until the window fills.
func RollingMax(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	for i := period - 1; i < len(src); i++ {
		m := src[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if src[j] > m {
				m = src[j]
			}
		}
		out[i] = m
	}
	return out
}

// RollingMin over a fixed trailing window; NaN until the window fills.
func RollingMin(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	for i := period - 1; i < len(src); i++ {
		m := src[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if src[j] < m {
				m = src[j]
			}
		}
		out[i] = m
	}
	return out
}

// RollingMeanStd returns the trailing-window mean and population standard
// deviation, NaN during warm-up. A NaN input is kept out of the running sums
// so it undefines exactly the windows containing it; the output recovers as
// soon as the NaN slides out of the window.
func RollingMeanStd(src []float64, period int) (mean, std []float64) {
	n := len(src)
	mean = nanSlice(n)
	std = nanSlice(n)
	var sum, sum2 float64
	nanInWindow := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(src[i]) {
			nanInWindow++
		} else {
			sum += src[i]
			sum2 += src[i] * src[i]
		}
		if i >= period {
			if old := src[i-period]; math.IsNaN(old) {
				nanInWindow--
			} else {
				sum -= old
				sum2 -= old * old
			}
		}
		if i < period-1 || nanInWindow > 0 {
			continue
		}
		m := sum / float64(period)
		v := sum2/float64(period) - m*m
		if v < 0 {
			v = 0
		}
		mean[i] = m
		std[i] = math.Sqrt(v)
	}
	return mean, std
}

// Sma has exactly period-1 leading NaNs.
func Sma(src []float64, period int) []float64 {
	mean, _ := RollingMeanStd(src, period)
	return mean
}

// Ema is seeded by the SMA of the first `period` values; indices below
// `period` are NaN and the seed itself is never emitted.
func Ema(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	if len(src) < period+1 {
		return out
	}
	var seed float64
	for i := 0; i < period; i++ {
		seed += src[i]
	}
	prev := seed / float64(period)
	k := 2.0 / float64(period+1)
	for i := period; i < len(src); i++ {
		prev = src[i]*k + prev*(1-k)
		out[i] = prev
	}
	return out
}

// Macd returns the MACD line, its signal line and the histogram. The signal
// line's EMA runs only over the portion of the MACD series that is already
// defined, so its own warm-up is offset by the slow period.
func Macd(closes []float64, fast, slow, signal int) (macd, signalLine, hist []float64) {
	n := len(closes)
	fastEma := Ema(closes, fast)
	slowEma := Ema(closes, slow)
	macd = nanSlice(n)
	for i := 0; i < n; i++ {
		macd[i] = fastEma[i] - slowEma[i] // NaN propagates through the warm-up
	}

	signalLine = nanSlice(n)
	hist = nanSlice(n)
	offset := firstDefined(macd)
	if offset < 0 {
		return macd, signalLine, hist
	}
	sub := Ema(macd[offset:], signal)
	for i, v := range sub {
		signalLine[offset+i] = v
		hist[offset+i] = macd[offset+i] - v
	}
	return macd, signalLine, hist
}

func firstDefined(vals []float64) int {
	for i, v := range vals {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}

// Rsi uses Wilder smoothing: the first average gain/loss is the simple mean
// of the first `period` deltas, then avg = (avg*(period-1) + new)/period.
// A zero average loss saturates the oscillator at 100.
func Rsi(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if len(closes) < period+1 {
		return out
	}
	var gain, loss float64
	for i := 1; i <= period; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	out[period] = rsiValue(avgGain, avgLoss)
	for i := period + 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		g, l := 0.0, 0.0
		if d > 0 {
			g = d
		} else {
			l = -d
		}
		avgGain = (avgGain*float64(period-1) + g) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + l) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

// Atr smooths the true range recursively with Wilder weighting,
// atr[i] = (atr[i-1]*(period-1) + tr[i]) / period, seeded with the first
// close price.
func Atr(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	out[0] = closes[0]
	for i := 1; i < n; i++ {
		tr := TrueRange(highs[i], lows[i], closes[i-1])
		out[i] = (out[i-1]*float64(period-1) + tr) / float64(period)
	}
	return out
}

func TrueRange(high, low, prevClose float64) float64 {
	tr := high - low
	if v := math.Abs(high - prevClose); v > tr {
		tr = v
	}
	if v := math.Abs(low - prevClose); v > tr {
		tr = v
	}
	return tr
}

// Stoch returns the raw %K and its d-period rolling mean %D. A flat window
// (rolling high == rolling low) yields NaN.
func Stoch(highs, lows, closes []float64, kPeriod, dPeriod int) (k, d []float64) {
	n := len(closes)
	k = nanSlice(n)
	hiMax := RollingMax(highs, kPeriod)
	loMin := RollingMin(lows, kPeriod)
	for i := 0; i < n; i++ {
		width := hiMax[i] - loMin[i]
		if math.IsNaN(width) || width == 0 {
			continue
		}
		k[i] = 100 * (closes[i] - loMin[i]) / width
	}
	d = nanSlice(n)
	offset := firstDefined(k)
	if offset < 0 {
		return k, d
	}
	sub := Sma(k[offset:], dPeriod)
	for i, v := range sub {
		d[offset+i] = v
	}
	return k, d
}

// Donchian channels track the rolling max/min of the close (not high/low);
// the midline is their average.
func Donchian(closes []float64, period int) (upper, lower, mid []float64) {
	upper = RollingMax(closes, period)
	lower = RollingMin(closes, period)
	mid = nanSlice(len(closes))
	for i := range mid {
		mid[i] = (upper[i] + lower[i]) / 2
	}
	return upper, lower, mid
}

// Bollinger is the rolling mean with bands at +-2 rolling standard
// deviations.
func Bollinger(closes []float64, period int, width float64) (upper, mid, lower []float64) {
	mean, std := RollingMeanStd(closes, period)
	n := len(closes)
	upper = nanSlice(n)
	lower = nanSlice(n)
	for i := 0; i < n; i++ {
		upper[i] = mean[i] + width*std[i]
		lower[i] = mean[i] - width*std[i]
	}
	return upper, mean, lower
}

// Ichimoku returns the conversion and base lines, both leading spans
// (shifted forward by the base period) and the lagging span (shifted
// backward by the base period).
func Ichimoku(highs, lows, closes []float64, conversionPeriod, basePeriod, spanBPeriod int) (conversion, base, spanA, spanB, lagging []float64) {
	n := len(closes)
	conversion = midline(highs, lows, conversionPeriod)
	base = midline(highs, lows, basePeriod)

	rawA := nanSlice(n)
	for i := 0; i < n; i++ {
		rawA[i] = (conversion[i] + base[i]) / 2
	}
	rawB := midline(highs, lows, spanBPeriod)

	spanA = shiftForward(rawA, basePeriod)
	spanB = shiftForward(rawB, basePeriod)
	lagging = shiftBackward(closes, basePeriod)
	return conversion, base, spanA, spanB, lagging
}

func midline(highs, lows []float64, period int) []float64 {
	hi := RollingMax(highs, period)
	lo := RollingMin(lows, period)
	out := nanSlice(len(highs))
	for i := range out {
		out[i] = (hi[i] + lo[i]) / 2
	}
	return out
}

func shiftForward(vals []float64, by int) []float64 {
	out := nanSlice(len(vals))
	for i := by; i < len(vals); i++ {
		out[i] = vals[i-by]
	}
	return out
}

func shiftBackward(vals []float64, by int) []float64 {
	out := nanSlice(len(vals))
	for i := 0; i+by < len(vals); i++ {
		out[i] = vals[i+by]
	}
	return out
}
