package signaler

import (
	"fmt"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

// Combine ANDs two signal arrays bar by bar: the pair agrees only when both
// templates emit the same non-neutral signal, otherwise the bar is neutral.
func Combine(a, b models.SignalArray) models.SignalArray {
	if len(a) != len(b) {
		panic(fmt.Sprintf("combining signal arrays of different lengths: %d vs %d", len(a), len(b)))
	}
	out := make(models.SignalArray, len(a))
	for i := range a {
		if a[i] == b[i] && a[i] != 0 {
			out[i] = a[i]
		}
	}
	return out
}

// Strategy is a named pair of templates evaluated under AND agreement.
type Strategy struct {
	Name string
	A    Template
	B    Template
}

func (s Strategy) Compute(h *models.CandleHistory) models.SignalArray {
	return Combine(s.A.Compute(h), s.B.Compute(h))
}

// PairStrategies enumerates every unordered template pair in registry order:
// (0,1), (0,2), ..., (1,2), ... The ordering is part of the contract, the
// orchestrator's tie-break depends on it.
func PairStrategies() []Strategy {
	ts := Templates()
	out := make([]Strategy, 0, len(ts)*(len(ts)-1)/2)
	for i := 0; i < len(ts); i++ {
		for j := i + 1; j < len(ts); j++ {
			out = append(out, Strategy{
				Name: ts[i].Name + "+" + ts[j].Name,
				A:    ts[i],
				B:    ts[j],
			})
		}
	}
	return out
}
