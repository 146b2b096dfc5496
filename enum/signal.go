package enum

import "fmt"

// SignalType represents buy/sell/hold
type SignalType int

const (
	SignalBuy SignalType = iota
	SignalSell
	SignalHold
)

// Direction maps a SignalType onto the signal-array encoding used by the
// templates and the simulator: +1 buy, -1 sell, 0 hold.
func (s SignalType) Direction() int {
	switch s {
	case SignalBuy:
		return 1
	case SignalSell:
		return -1
	default:
		return 0
	}
}

// SignalTypeFromDirection is the inverse of Direction. Any positive value is
// a buy, any negative a sell.
func SignalTypeFromDirection(d int) SignalType {
	switch {
	case d > 0:
		return SignalBuy
	case d < 0:
		return SignalSell
	default:
		return SignalHold
	}
}

func (s SignalType) String() string {
	switch s {
	case SignalBuy:
		return "SignalBuy"
	case SignalSell:
		return "SignalSell"
	case SignalHold:
		return "SignalHold"
	default:
		return ""
	}
}

func GetSignalType(s string) SignalType {
	switch s {
	case "SignalBuy":
		return SignalBuy
	case "SignalSell":
		return SignalSell
	case "SignalHold":
		return SignalHold
	default:
		panic(fmt.Sprintf("Unknown SignalType (%s)", s))
	}
}
