package backtester

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/entities/signaler"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

// DefaultStartingCapital is the fixed capital every pair is simulated with
// during a recommendation run.
const DefaultStartingCapital = 10000

// Options tunes one orchestrator run. Workers <= 1 runs the pair sweep on
// the calling goroutine. Progress, when set, is invoked once per finished
// pair and must be safe for concurrent use when Workers > 1.
type Options struct {
	StartingCapital float64
	Workers         int
	DetailedLog     bool
	Progress        func(done, total int)
}

type pairOutcome struct {
	name         string
	finalCapital float64
}

// Recommend backtests every unordered pair of registered templates over one
// token/timeframe series and returns the single best strategy by final
// capital. Signal arrays are computed once per template and shared across
// all pairs. Ties are broken by enumeration order: a later pair must beat
// the incumbent strictly.
func Recommend(h *models.CandleHistory, token string, timeframe enum.CandleSize, opts Options) models.BacktestResult {
	capital := opts.StartingCapital
	if capital <= 0 {
		capital = DefaultStartingCapital
	}
	result := models.BacktestResult{
		RunID:     uuid.NewString(),
		Token:     token,
		Timeframe: timeframe.Short(),
		UseCase:   enum.GetUseCaseFromCandleSize(timeframe),
	}
	if h.Len() < 2 {
		// nothing tradeable; report an unchanged-capital outcome instead of
		// failing the batch
		return result
	}

	templates := signaler.Templates()
	signals := make([]models.SignalArray, len(templates))
	for i, t := range templates {
		signals[i] = t.Compute(h)
	}

	type pairRef struct{ a, b int }
	pairs := make([]pairRef, 0, len(templates)*(len(templates)-1)/2)
	for i := 0; i < len(templates); i++ {
		for j := i + 1; j < len(templates); j++ {
			pairs = append(pairs, pairRef{i, j})
		}
	}

	outcomes := make([]pairOutcome, len(pairs))
	var done atomic.Int64
	runPair := func(idx int) {
		p := pairs[idx]
		combined := signaler.Combine(signals[p.a], signals[p.b])
		sim := Simulate(h, combined, SimulationConfig{
			StartingCapital: capital,
			BaseToken:       "USD",
		})
		outcomes[idx] = pairOutcome{
			name:         templates[p.a].Name + "+" + templates[p.b].Name,
			finalCapital: sim.FinalCapital,
		}
		if opts.Progress != nil {
			opts.Progress(int(done.Add(1)), len(pairs))
		}
	}

	if opts.Workers > 1 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < opts.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for idx := range jobs {
					runPair(idx)
				}
			}()
		}
		for idx := range pairs {
			jobs <- idx
		}
		close(jobs)
		wg.Wait()
	} else {
		for idx := range pairs {
			runPair(idx)
		}
	}

	// single-threaded reduce in enumeration order keeps the tie-break
	// deterministic regardless of worker scheduling
	best := outcomes[0]
	for _, o := range outcomes[1:] {
		if o.finalCapital > best.finalCapital {
			best = o
		}
	}
	if opts.DetailedLog {
		for _, o := range outcomes {
			log.Printf("backtest %s %s pair %s final capital %.2f",
				token, timeframe.Short(), o.name, o.finalCapital)
		}
	}

	result.StrategyName = best.name
	result.Profit = best.finalCapital - capital
	result.ProfitPercent = 100 * (best.finalCapital - capital) / capital
	return result
}
