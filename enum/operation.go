package enum

import "fmt"

// Operation is a comparison used by indicator parameter limits.
type Operation int

const (
	OpGreater Operation = iota
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpEqual
	OpNotEqual
	OpIn
)

func (o Operation) String() string {
	switch o {
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpIn:
		return "IN"
	default:
		panic(fmt.Sprintf("Unknown Operation (%d)", o))
	}
}

func GetOperation(s string) Operation {
	switch s {
	case ">":
		return OpGreater
	case "<":
		return OpLess
	case ">=":
		return OpGreaterEqual
	case "<=":
		return OpLessEqual
	case "==":
		return OpEqual
	case "!=":
		return OpNotEqual
	case "IN":
		return OpIn
	default:
		panic(fmt.Sprintf("Unknown Operation (%s)", s))
	}
}
