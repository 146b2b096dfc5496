package models

import (
	"fmt"
	"math"
	"time"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
)

// CandleHistory is an ascending, deduplicated OHLC series. Everything
// downstream (indicators, templates, the simulator) indexes into it
// positionally, so Validate before handing one out.
type CandleHistory struct {
	Candles []Candle
}

func NewCandleHistory(candles []Candle) *CandleHistory {
	return &CandleHistory{
		Candles: candles,
	}
}

func (c *CandleHistory) Len() int {
	return len(c.Candles)
}

// Validate checks strict ascending order with no duplicate timestamps.
func (c *CandleHistory) Validate() error {
	for i := 1; i < len(c.Candles); i++ {
		prev, cur := c.Candles[i-1].Start, c.Candles[i].Start
		if cur.Equal(prev) {
			return fmt.Errorf("duplicate candle timestamp at index %d (%s)", i, cur)
		}
		if cur.Before(prev) {
			return fmt.Errorf("candle timestamps out of order at index %d (%s before %s)", i, cur, prev)
		}
	}
	return nil
}

func (c *CandleHistory) GetOpens() []float64 {
	opens := make([]float64, len(c.Candles))
	for i, candle := range c.Candles {
		opens[i] = candle.Open
	}
	return opens
}

func (c *CandleHistory) GetHighs() []float64 {
	highs := make([]float64, len(c.Candles))
	for i, candle := range c.Candles {
		highs[i] = candle.High
	}
	return highs
}

func (c *CandleHistory) GetLows() []float64 {
	lows := make([]float64, len(c.Candles))
	for i, candle := range c.Candles {
		lows[i] = candle.Low
	}
	return lows
}

func (c *CandleHistory) GetCloses() []float64 {
	closes := make([]float64, len(c.Candles))
	for i, candle := range c.Candles {
		closes[i] = candle.Close
	}
	return closes
}

func (c *CandleHistory) GetVolumes() []float64 {
	volumes := make([]float64, len(c.Candles))
	for i, candle := range c.Candles {
		volumes[i] = candle.Volume
	}
	return volumes
}

func (c *CandleHistory) GetStarts() []time.Time {
	starts := make([]time.Time, len(c.Candles))
	for i, candle := range c.Candles {
		starts[i] = candle.Start
	}
	return starts
}

// HasVolume reports whether any bar carries volume. Volume-based indicators
// degrade to all-NaN/all-zero output on a volumeless series.
func (c *CandleHistory) HasVolume() bool {
	for _, candle := range c.Candles {
		if candle.Volume != 0 {
			return true
		}
	}
	return false
}

// Resample aggregates a fine-timeframe history into a coarser one:
// open = first, high = max, low = min, close = last, volume = sum per
// bucket. A trailing partial bucket is aggregated from whatever bars it has.
func (c *CandleHistory) Resample(fine, coarse enum.CandleSize) (*CandleHistory, error) {
	ratio, err := enum.GetBucketRatio(fine, coarse)
	if err != nil {
		return nil, err
	}
	n := len(c.Candles)
	out := make([]Candle, 0, (n+ratio-1)/ratio)
	for from := 0; from < n; from += ratio {
		to := from + ratio
		if to > n {
			to = n
		}
		bucket := c.Candles[from]
		for _, candle := range c.Candles[from+1 : to] {
			if candle.High > bucket.High {
				bucket.High = candle.High
			}
			if candle.Low < bucket.Low {
				bucket.Low = candle.Low
			}
			bucket.Close = candle.Close
			bucket.Volume += candle.Volume
		}
		out = append(out, bucket)
	}
	return NewCandleHistory(out), nil
}

// BroadcastToFine repeats each coarse value ratio times so a coarse-timeframe
// indicator lines up index-for-index with the fine series, truncating any
// trailing overrun.
func BroadcastToFine(coarseValues []float64, ratio, fineLen int) []float64 {
	out := make([]float64, fineLen)
	for i := range out {
		j := i / ratio
		if j < len(coarseValues) {
			out[i] = coarseValues[j]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

type HeikenAshiCandleHistory struct {
	HeikenAshiCandles []HeikenAshiCandle
}

func (c *CandleHistory) GetHeikenAshiCandleHistory() HeikenAshiCandleHistory {
	if len(c.Candles) == 0 {
		return HeikenAshiCandleHistory{
			HeikenAshiCandles: nil,
		}
	}

	haCandles := make([]HeikenAshiCandle, len(c.Candles))

	// First candle special case
	first := c.Candles[0]
	haClose := (first.Open + first.High + first.Low + first.Close) / 4
	haOpen := (first.Open + first.Close) / 2
	haHigh := math.Max(first.High, math.Max(haOpen, haClose))
	haLow := math.Min(first.Low, math.Min(haOpen, haClose))

	haCandles[0] = HeikenAshiCandle{
		Start:  first.Start,
		Open:   haOpen,
		Close:  haClose,
		High:   haHigh,
		Low:    haLow,
		Volume: first.Volume,
	}

	// Rest of candles
	for i := 1; i < len(c.Candles); i++ {
		cur := c.Candles[i]
		haClose = (cur.Open + cur.High + cur.Low + cur.Close) / 4
		prev := haCandles[i-1]
		haOpen = (prev.Open + prev.Close) / 2
		haHigh = math.Max(cur.High, math.Max(haOpen, haClose))
		haLow = math.Min(cur.Low, math.Min(haOpen, haClose))

		haCandles[i] = HeikenAshiCandle{
			Start:  cur.Start,
			Open:   haOpen,
			Close:  haClose,
			High:   haHigh,
			Low:    haLow,
			Volume: cur.Volume,
		}
	}

	return HeikenAshiCandleHistory{
		HeikenAshiCandles: haCandles,
	}
}

func (c *HeikenAshiCandleHistory) GetHeikenAshiOpens() []float64 {
	opens := make([]float64, len(c.HeikenAshiCandles))
	for i, candle := range c.HeikenAshiCandles {
		opens[i] = candle.Open
	}
	return opens
}

func (c *HeikenAshiCandleHistory) GetHeikenAshiCloses() []float64 {
	closes := make([]float64, len(c.HeikenAshiCandles))
	for i, candle := range c.HeikenAshiCandles {
		closes[i] = candle.Close
	}
	return closes
}

func (c *HeikenAshiCandleHistory) GetHeikenAshiHighs() []float64 {
	highs := make([]float64, len(c.HeikenAshiCandles))
	for i, candle := range c.HeikenAshiCandles {
		highs[i] = candle.High
	}
	return highs
}

func (c *HeikenAshiCandleHistory) GetHeikenAshiLows() []float64 {
	lows := make([]float64, len(c.HeikenAshiCandles))
	for i, candle := range c.HeikenAshiCandles {
		lows[i] = candle.Low
	}
	return lows
}
