package backtester

import (
	"fmt"
	"math"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

// StopReason records why a simulated run stopped trading early.
type StopReason string

const (
	StopNone     StopReason = ""
	StopByLoss   StopReason = "stopped by loss"
	StopByProfit StopReason = "stopped by profit"
)

// SimulationConfig parametrizes one run. StopLoss and TakeProfit are
// thresholds on the holding value in base currency; zero disables them.
// MaxTrades caps the number of completed round trips; zero means unlimited.
type SimulationConfig struct {
	StartingCapital float64
	BaseToken       string
	StopLoss        float64
	TakeProfit      float64
	MaxTrades       int
}

// SimulationResult is the full accounting of a run: the final base-currency
// value, the trade ledger and the per-round-trip metrics.
type SimulationResult struct {
	FinalCapital    float64
	CompletedTrades int
	StopReason      StopReason
	Trades          []models.TradeRecord
	Metrics         []models.TradeMetrics
}

const (
	stateFlat = iota
	stateInvested
)

// Simulate replays a signal array over a candle history through the
// flat/invested state machine. Per bar the precedence is stop-loss, then
// take-profit, then buy, then sell, then hold. NaN price bars are skipped
// without advancing state. A mismatch between signal and series length is a
// defect in the caller and panics.
func Simulate(h *models.CandleHistory, signals models.SignalArray, cfg SimulationConfig) SimulationResult {
	if len(signals) != h.Len() {
		panic(fmt.Sprintf("signal array length %d does not match series length %d", len(signals), h.Len()))
	}
	if cfg.StartingCapital <= 0 {
		panic(fmt.Sprintf("non-positive starting capital %v", cfg.StartingCapital))
	}
	base := cfg.BaseToken
	if base == "" {
		base = "USD"
	}

	res := SimulationResult{FinalCapital: cfg.StartingCapital}
	state := stateFlat
	capital := cfg.StartingCapital
	units := 0.0

	// per-open-trade tracking, reset on every entry
	var entryCost, peakValue float64
	var maxRunUp, maxDDValue, maxDDPct float64
	var cumulativePnL float64
	frozen := false

	closeTrade := func(c models.Candle, value float64) {
		capital = value
		units = 0
		state = stateFlat
		res.Trades = append(res.Trades, models.TradeRecord{
			Timestamp:  c.Start,
			FromToken:  c.Token,
			FromAmount: value / c.Close,
			ToToken:    base,
			ToAmount:   value,
			Price:      c.Close,
		})
		pnl := value - entryCost
		cumulativePnL += pnl
		res.Metrics = append(res.Metrics, models.TradeMetrics{
			PnL:                pnl,
			CumulativePnL:      cumulativePnL,
			CumulativePnLPct:   100 * cumulativePnL / cfg.StartingCapital,
			MaxRunUp:           maxRunUp,
			MaxDrawdownValue:   maxDDValue,
			MaxDrawdownPercent: maxDDPct,
		})
	}

	for i, c := range h.Candles {
		if math.IsNaN(c.Close) || c.Close <= 0 {
			continue
		}
		if state == stateFlat && units != 0 {
			panic("flat state still holds units")
		}
		if frozen {
			continue
		}

		if state == stateInvested {
			value := units * c.Close
			if value > peakValue {
				peakValue = value
			}
			if up := value - entryCost; up > maxRunUp {
				maxRunUp = up
			}
			if dd := peakValue - value; dd > maxDDValue {
				maxDDValue = dd
				maxDDPct = 100 * dd / peakValue
			}

			if cfg.StopLoss > 0 && value <= cfg.StopLoss {
				closeTrade(c, value)
				res.CompletedTrades++
				res.StopReason = StopByLoss
				frozen = true
				continue
			}
			if cfg.TakeProfit > 0 && value >= cfg.TakeProfit {
				closeTrade(c, value)
				res.CompletedTrades++
				res.StopReason = StopByProfit
				frozen = true
				continue
			}
		}

		switch {
		case state == stateFlat && signals[i] > 0:
			if cfg.MaxTrades > 0 && res.CompletedTrades >= cfg.MaxTrades {
				continue
			}
			units = capital / c.Close
			entryCost = capital
			peakValue = capital
			maxRunUp, maxDDValue, maxDDPct = 0, 0, 0
			res.Trades = append(res.Trades, models.TradeRecord{
				Timestamp:  c.Start,
				FromToken:  base,
				FromAmount: capital,
				ToToken:    c.Token,
				ToAmount:   units,
				Price:      c.Close,
			})
			capital = 0
			state = stateInvested
		case state == stateInvested && signals[i] < 0:
			closeTrade(c, units*c.Close)
			res.CompletedTrades++
		}
	}

	// forced terminal liquidation for comparable final values; recorded as a
	// trade but not counted toward the trade limit
	if state == stateInvested {
		last := lastPricedCandle(h)
		value := units * last.Close
		if value > peakValue {
			peakValue = value
		}
		if up := value - entryCost; up > maxRunUp {
			maxRunUp = up
		}
		closeTrade(last, value)
	}

	res.FinalCapital = capital
	return res
}

func lastPricedCandle(h *models.CandleHistory) models.Candle {
	for i := h.Len() - 1; i >= 0; i-- {
		c := h.Candles[i]
		if !math.IsNaN(c.Close) && c.Close > 0 {
			return c
		}
	}
	panic("no priced candle in invested series")
}
