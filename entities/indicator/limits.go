package indicator

import (
	"fmt"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
)

// Limit is one declared constraint on an indicator parameter. A supplied
// parameter violating any limit is a rejected configuration, never a clamp.
type Limit struct {
	Variable  string
	Operation enum.Operation
	Value     float64
	Set       []float64 // only for OpIn
}

func (l Limit) Check(params map[string]float64) error {
	v, ok := params[l.Variable]
	if !ok {
		return fmt.Errorf("missing parameter %q", l.Variable)
	}
	switch l.Operation {
	case enum.OpGreater:
		if !(v > l.Value) {
			return l.violation(v)
		}
	case enum.OpLess:
		if !(v < l.Value) {
			return l.violation(v)
		}
	case enum.OpGreaterEqual:
		if !(v >= l.Value) {
			return l.violation(v)
		}
	case enum.OpLessEqual:
		if !(v <= l.Value) {
			return l.violation(v)
		}
	case enum.OpEqual:
		if v != l.Value {
			return l.violation(v)
		}
	case enum.OpNotEqual:
		if v == l.Value {
			return l.violation(v)
		}
	case enum.OpIn:
		for _, allowed := range l.Set {
			if v == allowed {
				return nil
			}
		}
		return fmt.Errorf("parameter %q = %v not in allowed set %v", l.Variable, v, l.Set)
	default:
		panic(fmt.Sprintf("Unknown Operation (%d)", l.Operation))
	}
	return nil
}

func (l Limit) violation(v float64) error {
	return fmt.Errorf("parameter %q = %v violates limit %s %v", l.Variable, v, l.Operation, l.Value)
}
