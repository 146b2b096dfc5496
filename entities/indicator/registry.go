package indicator

import (
	"fmt"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
	talib "github.com/markcheno/go-talib"
)

// ParamSpec declares one named numeric parameter and its default.
type ParamSpec struct {
	Name    string  `json:"name"`
	Default float64 `json:"default"`
}

// Definition binds an indicator name to its compute function, parameter
// schema and limits. The registry is built once at startup and treated as
// immutable read-only state from then on; there is no reflection anywhere.
type Definition struct {
	Name        string
	Params      []ParamSpec
	Limits      []Limit
	NeedsVolume bool
	Compute     func(hist *models.CandleHistory, p map[string]float64) []float64
}

var (
	registry     = map[string]Definition{}
	orderedNames []string
)

func register(d Definition) {
	if _, dup := registry[d.Name]; dup {
		panic(fmt.Sprintf("indicator %q registered twice", d.Name))
	}
	registry[d.Name] = d
	orderedNames = append(orderedNames, d.Name)
}

// Get looks an indicator up by name.
func Get(name string) (Definition, bool) {
	d, ok := registry[name]
	return d, ok
}

// Names returns the canonical registration order. Enumeration order matters
// downstream, so this is a copy of a fixed list, never a map iteration.
func Names() []string {
	out := make([]string, len(orderedNames))
	copy(out, orderedNames)
	return out
}

// Evaluate validates params against the definition's limits, then computes.
// Missing params take their declared defaults; unknown params are rejected.
// A volume-based indicator on a volumeless series degrades to all-NaN output
// rather than failing the batch.
func Evaluate(name string, hist *models.CandleHistory, params map[string]float64) ([]float64, error) {
	def, merged, err := ValidateParams(name, params)
	if err != nil {
		return nil, err
	}
	if def.NeedsVolume && !hist.HasVolume() {
		return nanSlice(hist.Len()), nil
	}
	return def.Compute(hist, merged), nil
}

// ValidateParams applies defaults and checks limits without computing
// anything. Expression compilation uses it to reject bad parameters before a
// run ever starts.
func ValidateParams(name string, params map[string]float64) (Definition, map[string]float64, error) {
	def, ok := registry[name]
	if !ok {
		return Definition{}, nil, fmt.Errorf("unknown indicator %q", name)
	}
	merged := make(map[string]float64, len(def.Params))
	for _, spec := range def.Params {
		merged[spec.Name] = spec.Default
	}
	for k, v := range params {
		if _, known := merged[k]; !known {
			return Definition{}, nil, fmt.Errorf("indicator %q has no parameter %q", name, k)
		}
		merged[k] = v
	}
	for _, limit := range def.Limits {
		if err := limit.Check(merged); err != nil {
			return Definition{}, nil, fmt.Errorf("indicator %q: %w", name, err)
		}
	}
	return def, merged, nil
}

func periodLimits(min, max float64) []Limit {
	return []Limit{
		{Variable: "timeperiod", Operation: enum.OpGreaterEqual, Value: min},
		{Variable: "timeperiod", Operation: enum.OpLessEqual, Value: max},
	}
}

func p(params map[string]float64, name string) int {
	return int(params[name])
}

// talibSafe runs a go-talib computation only when the series covers the
// lookback. The C port indexes past the end of shorter inputs, so those
// degrade to an all-NaN series instead.
func talibSafe(h *models.CandleHistory, lookback int, fn func() []float64) []float64 {
	if h.Len() <= lookback {
		return nanSlice(h.Len())
	}
	return maskWarmup(fn(), lookback)
}

func init() {
	// --- moving averages -------------------------------------------------
	register(Definition{
		Name:   "sma",
		Params: []ParamSpec{{"timeperiod", 30}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			return Sma(h.GetCloses(), p(pr, "timeperiod"))
		},
	})
	register(Definition{
		Name:   "ema",
		Params: []ParamSpec{{"timeperiod", 30}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			return Ema(h.GetCloses(), p(pr, "timeperiod"))
		},
	})
	register(Definition{
		Name:   "wma",
		Params: []ParamSpec{{"timeperiod", 30}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n-1, func() []float64 { return talib.Wma(h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "dema",
		Params: []ParamSpec{{"timeperiod", 30}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, 2*(n-1), func() []float64 { return talib.Dema(h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "tema",
		Params: []ParamSpec{{"timeperiod", 30}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, 3*(n-1), func() []float64 { return talib.Tema(h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "trima",
		Params: []ParamSpec{{"timeperiod", 30}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n-1, func() []float64 { return talib.Trima(h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "kama",
		Params: []ParamSpec{{"timeperiod", 30}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.Kama(h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name: "t3",
		Params: []ParamSpec{
			{"timeperiod", 5},
			{"vfactor", 0.7},
		},
		Limits: append(periodLimits(2, 100000),
			Limit{Variable: "vfactor", Operation: enum.OpGreaterEqual, Value: 0},
			Limit{Variable: "vfactor", Operation: enum.OpLessEqual, Value: 1},
		),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, 6*(n-1)+1, func() []float64 { return talib.T3(h.GetCloses(), n, pr["vfactor"]) })
		},
	})
	register(Definition{
		Name:   "linearreg",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n-1, func() []float64 { return talib.LinearReg(h.GetCloses(), n) })
		},
	})

	// --- MACD family -----------------------------------------------------
	macdParams := []ParamSpec{
		{"fastperiod", 12},
		{"slowperiod", 26},
		{"signalperiod", 9},
	}
	macdLimits := []Limit{
		{Variable: "fastperiod", Operation: enum.OpGreaterEqual, Value: 2},
		{Variable: "slowperiod", Operation: enum.OpGreaterEqual, Value: 2},
		{Variable: "signalperiod", Operation: enum.OpGreaterEqual, Value: 1},
	}
	register(Definition{
		Name:   "macd",
		Params: macdParams,
		Limits: macdLimits,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			line, _, _ := Macd(h.GetCloses(), p(pr, "fastperiod"), p(pr, "slowperiod"), p(pr, "signalperiod"))
			return line
		},
	})
	register(Definition{
		Name:   "macdsignal",
		Params: macdParams,
		Limits: macdLimits,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			_, signal, _ := Macd(h.GetCloses(), p(pr, "fastperiod"), p(pr, "slowperiod"), p(pr, "signalperiod"))
			return signal
		},
	})
	register(Definition{
		Name:   "macdhist",
		Params: macdParams,
		Limits: macdLimits,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			_, _, hist := Macd(h.GetCloses(), p(pr, "fastperiod"), p(pr, "slowperiod"), p(pr, "signalperiod"))
			return hist
		},
	})
	register(Definition{
		Name: "apo",
		Params: []ParamSpec{
			{"fastperiod", 12},
			{"slowperiod", 26},
		},
		Limits: []Limit{
			{Variable: "fastperiod", Operation: enum.OpGreaterEqual, Value: 2},
			{Variable: "slowperiod", Operation: enum.OpGreaterEqual, Value: 2},
		},
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			slow := p(pr, "slowperiod")
			return talibSafe(h, slow-1, func() []float64 { return talib.Apo(h.GetCloses(), p(pr, "fastperiod"), slow, talib.EMA) })
		},
	})

	// --- oscillators -----------------------------------------------------
	register(Definition{
		Name:   "rsi",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			return Rsi(h.GetCloses(), p(pr, "timeperiod"))
		},
	})
	stochParams := []ParamSpec{
		{"fastk_period", 14},
		{"slowd_period", 3},
	}
	stochLimits := []Limit{
		{Variable: "fastk_period", Operation: enum.OpGreaterEqual, Value: 2},
		{Variable: "slowd_period", Operation: enum.OpGreaterEqual, Value: 1},
	}
	register(Definition{
		Name:   "stochk",
		Params: stochParams,
		Limits: stochLimits,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			k, _ := Stoch(h.GetHighs(), h.GetLows(), h.GetCloses(), p(pr, "fastk_period"), p(pr, "slowd_period"))
			return k
		},
	})
	register(Definition{
		Name:   "stochd",
		Params: stochParams,
		Limits: stochLimits,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			_, d := Stoch(h.GetHighs(), h.GetLows(), h.GetCloses(), p(pr, "fastk_period"), p(pr, "slowd_period"))
			return d
		},
	})
	register(Definition{
		Name:   "willr",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n-1, func() []float64 { return talib.WillR(h.GetHighs(), h.GetLows(), h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "cci",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n-1, func() []float64 { return talib.Cci(h.GetHighs(), h.GetLows(), h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:        "mfi",
		Params:      []ParamSpec{{"timeperiod", 14}},
		Limits:      periodLimits(2, 100000),
		NeedsVolume: true,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.Mfi(h.GetHighs(), h.GetLows(), h.GetCloses(), h.GetVolumes(), n) })
		},
	})
	register(Definition{
		Name:   "cmo",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.Cmo(h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name: "ultosc",
		Params: []ParamSpec{
			{"timeperiod1", 7},
			{"timeperiod2", 14},
			{"timeperiod3", 28},
		},
		Limits: []Limit{
			{Variable: "timeperiod1", Operation: enum.OpGreaterEqual, Value: 1},
			{Variable: "timeperiod2", Operation: enum.OpGreaterEqual, Value: 1},
			{Variable: "timeperiod3", Operation: enum.OpGreaterEqual, Value: 1},
		},
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			t3 := p(pr, "timeperiod3")
			return talibSafe(h, t3, func() []float64 { return talib.UltOsc(h.GetHighs(), h.GetLows(), h.GetCloses(), p(pr, "timeperiod1"), p(pr, "timeperiod2"), t3) })
		},
	})
	register(Definition{
		Name:   "bop",
		Params: nil,
		Limits: nil,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			return talib.Bop(h.GetOpens(), h.GetHighs(), h.GetLows(), h.GetCloses())
		},
	})

	// --- momentum / rate of change --------------------------------------
	register(Definition{
		Name:   "mom",
		Params: []ParamSpec{{"timeperiod", 10}},
		Limits: periodLimits(1, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.Mom(h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "roc",
		Params: []ParamSpec{{"timeperiod", 10}},
		Limits: periodLimits(1, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.Roc(h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "trix",
		Params: []ParamSpec{{"timeperiod", 30}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, 3*n, func() []float64 { return talib.Trix(h.GetCloses(), n) })
		},
	})

	// --- trend strength --------------------------------------------------
	register(Definition{
		Name:   "adx",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, 2*n-1, func() []float64 { return talib.Adx(h.GetHighs(), h.GetLows(), h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "plusdi",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.PlusDI(h.GetHighs(), h.GetLows(), h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "minusdi",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.MinusDI(h.GetHighs(), h.GetLows(), h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "dx",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.Dx(h.GetHighs(), h.GetLows(), h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name:   "aroonup",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 {
				_, up := talib.Aroon(h.GetHighs(), h.GetLows(), n)
				return up
			})
		},
	})
	register(Definition{
		Name:   "aroondown",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 {
				down, _ := talib.Aroon(h.GetHighs(), h.GetLows(), n)
				return down
			})
		},
	})
	register(Definition{
		Name:   "aroonosc",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.AroonOsc(h.GetHighs(), h.GetLows(), n) })
		},
	})
	register(Definition{
		Name: "sar",
		Params: []ParamSpec{
			{"acceleration", 0.02},
			{"maximum", 0.2},
		},
		Limits: []Limit{
			{Variable: "acceleration", Operation: enum.OpGreater, Value: 0},
			{Variable: "maximum", Operation: enum.OpGreater, Value: 0},
		},
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			return talibSafe(h, 1, func() []float64 { return talib.Sar(h.GetHighs(), h.GetLows(), pr["acceleration"], pr["maximum"]) })
		},
	})

	// --- volatility ------------------------------------------------------
	register(Definition{
		Name:   "atr",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			return Atr(h.GetHighs(), h.GetLows(), h.GetCloses(), p(pr, "timeperiod"))
		},
	})
	register(Definition{
		Name:   "natr",
		Params: []ParamSpec{{"timeperiod", 14}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n, func() []float64 { return talib.Natr(h.GetHighs(), h.GetLows(), h.GetCloses(), n) })
		},
	})
	register(Definition{
		Name: "stddev",
		Params: []ParamSpec{
			{"timeperiod", 5},
			{"nbdev", 1},
		},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			n := p(pr, "timeperiod")
			return talibSafe(h, n-1, func() []float64 { return talib.StdDev(h.GetCloses(), n, pr["nbdev"]) })
		},
	})

	// --- bands and channels ----------------------------------------------
	bbParams := []ParamSpec{
		{"timeperiod", 20},
		{"width", 2},
	}
	bbLimits := append(periodLimits(2, 100000),
		Limit{Variable: "width", Operation: enum.OpGreater, Value: 0},
	)
	register(Definition{
		Name:   "bbupper",
		Params: bbParams,
		Limits: bbLimits,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			upper, _, _ := Bollinger(h.GetCloses(), p(pr, "timeperiod"), pr["width"])
			return upper
		},
	})
	register(Definition{
		Name:   "bbmid",
		Params: bbParams,
		Limits: bbLimits,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			_, mid, _ := Bollinger(h.GetCloses(), p(pr, "timeperiod"), pr["width"])
			return mid
		},
	})
	register(Definition{
		Name:   "bblower",
		Params: bbParams,
		Limits: bbLimits,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			_, _, lower := Bollinger(h.GetCloses(), p(pr, "timeperiod"), pr["width"])
			return lower
		},
	})
	register(Definition{
		Name:   "donchianupper",
		Params: []ParamSpec{{"timeperiod", 20}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			upper, _, _ := Donchian(h.GetCloses(), p(pr, "timeperiod"))
			return upper
		},
	})
	register(Definition{
		Name:   "donchianlower",
		Params: []ParamSpec{{"timeperiod", 20}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			_, lower, _ := Donchian(h.GetCloses(), p(pr, "timeperiod"))
			return lower
		},
	})
	register(Definition{
		Name:   "donchianmid",
		Params: []ParamSpec{{"timeperiod", 20}},
		Limits: periodLimits(2, 100000),
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			_, _, mid := Donchian(h.GetCloses(), p(pr, "timeperiod"))
			return mid
		},
	})

	// --- ichimoku --------------------------------------------------------
	ichiParams := []ParamSpec{
		{"conversion_period", 9},
		{"base_period", 26},
		{"spanb_period", 52},
	}
	ichiLimits := []Limit{
		{Variable: "conversion_period", Operation: enum.OpGreaterEqual, Value: 2},
		{Variable: "base_period", Operation: enum.OpGreaterEqual, Value: 2},
		{Variable: "spanb_period", Operation: enum.OpGreaterEqual, Value: 2},
	}
	ichiLine := func(pick func(conversion, base, spanA, spanB, lagging []float64) []float64) func(*models.CandleHistory, map[string]float64) []float64 {
		return func(h *models.CandleHistory, pr map[string]float64) []float64 {
			conversion, base, spanA, spanB, lagging := Ichimoku(
				h.GetHighs(), h.GetLows(), h.GetCloses(),
				p(pr, "conversion_period"), p(pr, "base_period"), p(pr, "spanb_period"))
			return pick(conversion, base, spanA, spanB, lagging)
		}
	}
	register(Definition{
		Name: "ichimokuconversion", Params: ichiParams, Limits: ichiLimits,
		Compute: ichiLine(func(conversion, _, _, _, _ []float64) []float64 { return conversion }),
	})
	register(Definition{
		Name: "ichimokubase", Params: ichiParams, Limits: ichiLimits,
		Compute: ichiLine(func(_, base, _, _, _ []float64) []float64 { return base }),
	})
	register(Definition{
		Name: "ichimokuspana", Params: ichiParams, Limits: ichiLimits,
		Compute: ichiLine(func(_, _, spanA, _, _ []float64) []float64 { return spanA }),
	})
	register(Definition{
		Name: "ichimokuspanb", Params: ichiParams, Limits: ichiLimits,
		Compute: ichiLine(func(_, _, _, spanB, _ []float64) []float64 { return spanB }),
	})
	register(Definition{
		Name: "ichimokulagging", Params: ichiParams, Limits: ichiLimits,
		Compute: ichiLine(func(_, _, _, _, lagging []float64) []float64 { return lagging }),
	})

	// --- volume ----------------------------------------------------------
	register(Definition{
		Name:        "obv",
		Params:      nil,
		Limits:      nil,
		NeedsVolume: true,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			return talibSafe(h, 0, func() []float64 { return talib.Obv(h.GetCloses(), h.GetVolumes()) })
		},
	})
	register(Definition{
		Name:        "ad",
		Params:      nil,
		Limits:      nil,
		NeedsVolume: true,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			return talibSafe(h, 0, func() []float64 { return talib.Ad(h.GetHighs(), h.GetLows(), h.GetCloses(), h.GetVolumes()) })
		},
	})
	register(Definition{
		Name: "adosc",
		Params: []ParamSpec{
			{"fastperiod", 3},
			{"slowperiod", 10},
		},
		Limits: []Limit{
			{Variable: "fastperiod", Operation: enum.OpGreaterEqual, Value: 2},
			{Variable: "slowperiod", Operation: enum.OpGreaterEqual, Value: 2},
		},
		NeedsVolume: true,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			slow := p(pr, "slowperiod")
			return talibSafe(h, slow-1, func() []float64 { return talib.AdOsc(h.GetHighs(), h.GetLows(), h.GetCloses(), h.GetVolumes(), p(pr, "fastperiod"), slow) })
		},
	})

	// --- price transforms ------------------------------------------------
	register(Definition{
		Name:   "typicalprice",
		Params: nil,
		Limits: nil,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			highs, lows, closes := h.GetHighs(), h.GetLows(), h.GetCloses()
			out := make([]float64, len(closes))
			for i := range out {
				out[i] = (highs[i] + lows[i] + closes[i]) / 3
			}
			return out
		},
	})
	register(Definition{
		Name:   "medianprice",
		Params: nil,
		Limits: nil,
		Compute: func(h *models.CandleHistory, pr map[string]float64) []float64 {
			highs, lows := h.GetHighs(), h.GetLows()
			out := make([]float64, len(highs))
			for i := range out {
				out[i] = (highs[i] + lows[i]) / 2
			}
			return out
		},
	})
}
