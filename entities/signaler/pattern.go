package signaler

import "math"

// Candlestick pattern scores mirror the talib convention: +100 for a bullish
// occurrence, -100 for a bearish one, 0 otherwise. Keeping the scale makes
// the outputs interchangeable with library pattern functions.

const patternScore = 100

// EngulfingScore flags a body that fully engulfs the previous bar's body in
// the opposite direction.
func EngulfingScore(opens, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		prevBull := closes[i-1] > opens[i-1]
		currBull := closes[i] > opens[i]
		if !prevBull && currBull && opens[i] <= closes[i-1] && closes[i] >= opens[i-1] {
			out[i] = patternScore
		} else if prevBull && !currBull && opens[i] >= closes[i-1] && closes[i] <= opens[i-1] {
			out[i] = -patternScore
		}
	}
	return out
}

// MarubozuScore flags bars whose body spans nearly the whole range, leaving
// wicks of at most 5% of it on either side.
func MarubozuScore(opens, highs, lows, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		span := highs[i] - lows[i]
		if span <= 0 {
			continue
		}
		body := math.Abs(closes[i] - opens[i])
		upperWick := highs[i] - math.Max(opens[i], closes[i])
		lowerWick := math.Min(opens[i], closes[i]) - lows[i]
		if body < span*0.9 || upperWick > span*0.05 || lowerWick > span*0.05 {
			continue
		}
		if closes[i] > opens[i] {
			out[i] = patternScore
		} else if closes[i] < opens[i] {
			out[i] = -patternScore
		}
	}
	return out
}

// HaramiScore flags a small body held entirely inside the previous bar's
// body, in the opposite direction.
func HaramiScore(opens, highs, lows, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		prevHigh := math.Max(opens[i-1], closes[i-1])
		prevLow := math.Min(opens[i-1], closes[i-1])
		inside := opens[i] < prevHigh && opens[i] > prevLow && closes[i] < prevHigh && closes[i] > prevLow
		if !inside {
			continue
		}
		prevBull := closes[i-1] > opens[i-1]
		currBull := closes[i] > opens[i]
		if !prevBull && currBull {
			out[i] = patternScore
		} else if prevBull && !currBull {
			out[i] = -patternScore
		}
	}
	return out
}

// HeikenAshiFlipScore fires on the bar where the smoothed candle color flips,
// not on every bar of a run.
func HeikenAshiFlipScore(haOpens, haCloses []float64) []float64 {
	out := make([]float64, len(haCloses))
	for i := 1; i < len(haCloses); i++ {
		prevBull := haCloses[i-1] > haOpens[i-1]
		currBull := haCloses[i] > haOpens[i]
		if currBull == prevBull {
			continue
		}
		if currBull {
			out[i] = patternScore
		} else {
			out[i] = -patternScore
		}
	}
	return out
}
