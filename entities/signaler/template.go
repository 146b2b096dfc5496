package signaler

import (
	"fmt"
	"math"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/entities/indicator"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

// A Template wraps one indicator with a fixed decision rule and produces a
// whole signal array aligned with the series.
//
// Two trigger policies coexist on purpose: crossover templates are
// edge-triggered (they fire once, at the bar of the cross), threshold
// templates are level-triggered (they re-assert the signal on every bar the
// condition holds). Product has confirmed the asymmetry is intended.
type Template struct {
	Name    string
	Compute func(h *models.CandleHistory) models.SignalArray
}

var templates []Template

func registerTemplate(t Template) {
	templates = append(templates, t)
}

// Templates returns the canonical, deterministic ordering used by the
// orchestrator's pair enumeration.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

func GetTemplate(name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// mustEvaluate runs a registry indicator with template-owned parameters.
// Template parameters are fixed and validated at registration time, so a
// failure here is a defect, not an input error.
func mustEvaluate(name string, h *models.CandleHistory, params map[string]float64) []float64 {
	out, err := indicator.Evaluate(name, h, params)
	if err != nil {
		panic(fmt.Sprintf("template indicator %q misconfigured: %v", name, err))
	}
	return out
}

// CrossoverSignal is edge-triggered: +1 exactly at the bar where fast
// crosses above slow (previous bar <=, current bar >), -1 on the symmetric
// downward cross, 0 otherwise. Bars where either line is NaN never fire.
func CrossoverSignal(fast, slow []float64) models.SignalArray {
	if len(fast) != len(slow) {
		panic(fmt.Sprintf("crossover inputs of different lengths: %d vs %d", len(fast), len(slow)))
	}
	out := make(models.SignalArray, len(fast))
	for i := 1; i < len(fast); i++ {
		if math.IsNaN(fast[i-1]) || math.IsNaN(slow[i-1]) || math.IsNaN(fast[i]) || math.IsNaN(slow[i]) {
			continue
		}
		if fast[i-1] <= slow[i-1] && fast[i] > slow[i] {
			out[i] = 1
		} else if fast[i-1] >= slow[i-1] && fast[i] < slow[i] {
			out[i] = -1
		}
	}
	return out
}

// ThresholdSignal is level-triggered: +1 on every bar the oscillator sits
// below its oversold threshold, -1 above the overbought one. NaN holds.
func ThresholdSignal(vals []float64, oversold, overbought float64) models.SignalArray {
	out := make(models.SignalArray, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v < oversold {
			out[i] = 1
		} else if v > overbought {
			out[i] = -1
		}
	}
	return out
}

// BandSignal fires +1 when price closes below the lower band and -1 when it
// closes above the upper band.
func BandSignal(closes, upper, lower []float64) models.SignalArray {
	out := make(models.SignalArray, len(closes))
	for i := range closes {
		if math.IsNaN(upper[i]) || math.IsNaN(lower[i]) {
			continue
		}
		if closes[i] < lower[i] {
			out[i] = 1
		} else if closes[i] > upper[i] {
			out[i] = -1
		}
	}
	return out
}

// PatternSignal takes the sign of a pattern-recognition output.
func PatternSignal(score []float64) models.SignalArray {
	out := make(models.SignalArray, len(score))
	for i, v := range score {
		if math.IsNaN(v) {
			continue
		}
		if v > 0 {
			out[i] = 1
		} else if v < 0 {
			out[i] = -1
		}
	}
	return out
}

func params(kv ...any) map[string]float64 {
	out := make(map[string]float64, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1].(float64)
	}
	return out
}

func crossoverTemplate(name, fastInd string, fastParams map[string]float64, slowInd string, slowParams map[string]float64) Template {
	return Template{
		Name: name,
		Compute: func(h *models.CandleHistory) models.SignalArray {
			return CrossoverSignal(mustEvaluate(fastInd, h, fastParams), mustEvaluate(slowInd, h, slowParams))
		},
	}
}

func thresholdTemplate(name, ind string, p map[string]float64, oversold, overbought float64) Template {
	return Template{
		Name: name,
		Compute: func(h *models.CandleHistory) models.SignalArray {
			return ThresholdSignal(mustEvaluate(ind, h, p), oversold, overbought)
		},
	}
}

func zeroCrossTemplate(name, ind string, p map[string]float64) Template {
	return Template{
		Name: name,
		Compute: func(h *models.CandleHistory) models.SignalArray {
			vals := mustEvaluate(ind, h, p)
			zero := make([]float64, len(vals))
			return CrossoverSignal(vals, zero)
		},
	}
}

func init() {
	// crossover templates (edge-triggered)
	registerTemplate(crossoverTemplate("macd-cross", "macd", nil, "macdsignal", nil))
	registerTemplate(crossoverTemplate("sma-cross", "sma", params("timeperiod", 10.0), "sma", params("timeperiod", 50.0)))
	registerTemplate(crossoverTemplate("ema-cross", "ema", params("timeperiod", 12.0), "ema", params("timeperiod", 26.0)))
	registerTemplate(crossoverTemplate("di-cross", "plusdi", nil, "minusdi", nil))
	registerTemplate(crossoverTemplate("aroon-cross", "aroonup", nil, "aroondown", nil))
	registerTemplate(crossoverTemplate("ichimoku-cross", "ichimokuconversion", nil, "ichimokubase", nil))
	registerTemplate(Template{
		Name: "psar-flip",
		Compute: func(h *models.CandleHistory) models.SignalArray {
			return CrossoverSignal(h.GetCloses(), mustEvaluate("sar", h, nil))
		},
	})
	registerTemplate(zeroCrossTemplate("mom-zero", "mom", nil))
	registerTemplate(zeroCrossTemplate("trix-zero", "trix", params("timeperiod", 15.0)))

	// threshold templates (level-triggered)
	registerTemplate(thresholdTemplate("rsi", "rsi", nil, 30, 70))
	registerTemplate(thresholdTemplate("stoch", "stochk", nil, 20, 80))
	registerTemplate(thresholdTemplate("mfi", "mfi", nil, 20, 80))
	registerTemplate(thresholdTemplate("willr", "willr", nil, -80, -20))
	registerTemplate(thresholdTemplate("cci", "cci", nil, -100, 100))
	registerTemplate(thresholdTemplate("cmo", "cmo", nil, -50, 50))
	registerTemplate(thresholdTemplate("ultosc", "ultosc", nil, 30, 70))

	// band templates
	registerTemplate(Template{
		Name: "bollinger",
		Compute: func(h *models.CandleHistory) models.SignalArray {
			return BandSignal(h.GetCloses(), mustEvaluate("bbupper", h, nil), mustEvaluate("bblower", h, nil))
		},
	})
	registerTemplate(Template{
		Name: "donchian",
		Compute: func(h *models.CandleHistory) models.SignalArray {
			return BandSignal(h.GetCloses(), mustEvaluate("donchianupper", h, nil), mustEvaluate("donchianlower", h, nil))
		},
	})

	// candlestick patterns
	registerTemplate(Template{
		Name: "engulfing",
		Compute: func(h *models.CandleHistory) models.SignalArray {
			return PatternSignal(EngulfingScore(h.GetOpens(), h.GetCloses()))
		},
	})
	registerTemplate(Template{
		Name: "marubozu",
		Compute: func(h *models.CandleHistory) models.SignalArray {
			return PatternSignal(MarubozuScore(h.GetOpens(), h.GetHighs(), h.GetLows(), h.GetCloses()))
		},
	})
	registerTemplate(Template{
		Name: "harami",
		Compute: func(h *models.CandleHistory) models.SignalArray {
			return PatternSignal(HaramiScore(h.GetOpens(), h.GetHighs(), h.GetLows(), h.GetCloses()))
		},
	})
	registerTemplate(Template{
		Name: "heikin-ashi",
		Compute: func(h *models.CandleHistory) models.SignalArray {
			ha := h.GetHeikenAshiCandleHistory()
			return PatternSignal(HeikenAshiFlipScore(ha.GetHeikenAshiOpens(), ha.GetHeikenAshiCloses()))
		},
	})
}
